package records_test

import (
	"github.com/alphios72/NewsinsightUI/internal/records"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Grid", func() {
	Describe("sorting", func() {
		rows := func() []records.Row {
			return []records.Row{
				{"id": int64(1), "stato": "attivo"},
				{"id": int64(2), "stato": nil},
				{"id": int64(3), "stato": "Bozza"},
				{"id": int64(4), "stato": nil},
				{"id": int64(5), "stato": "chiuso"},
			}
		}

		It("should place nulls last when sorting ascending", func() {
			result := records.ApplyGrid(rows(), records.GridQuery{SortBy: "stato", SortDir: records.SortAsc})
			Expect(result.Rows[0]["stato"]).To(Equal("attivo"))
			Expect(result.Rows[1]["stato"]).To(Equal("Bozza"))
			Expect(result.Rows[2]["stato"]).To(Equal("chiuso"))
			Expect(result.Rows[3]["stato"]).To(BeNil())
			Expect(result.Rows[4]["stato"]).To(BeNil())
		})

		It("should place nulls last when sorting descending", func() {
			result := records.ApplyGrid(rows(), records.GridQuery{SortBy: "stato", SortDir: records.SortDesc})
			Expect(result.Rows[0]["stato"]).To(Equal("chiuso"))
			Expect(result.Rows[1]["stato"]).To(Equal("Bozza"))
			Expect(result.Rows[2]["stato"]).To(Equal("attivo"))
			Expect(result.Rows[3]["stato"]).To(BeNil())
			Expect(result.Rows[4]["stato"]).To(BeNil())
		})

		It("should compare case-insensitively for text columns", func() {
			result := records.ApplyGrid([]records.Row{
				{"title": "banana"},
				{"title": "Apple"},
				{"title": "cherry"},
			}, records.GridQuery{SortBy: "title", SortDir: records.SortAsc})
			Expect(result.Rows[0]["title"]).To(Equal("Apple"))
			Expect(result.Rows[1]["title"]).To(Equal("banana"))
			Expect(result.Rows[2]["title"]).To(Equal("cherry"))
		})

		It("should compare numerically when both values are numeric", func() {
			// lexicographic order would put 10 before 2
			result := records.ApplyGrid([]records.Row{
				{"n": int64(10)},
				{"n": int64(2)},
				{"n": float64(1.5)},
			}, records.GridQuery{SortBy: "n", SortDir: records.SortAsc})
			Expect(result.Rows[0]["n"]).To(Equal(float64(1.5)))
			Expect(result.Rows[1]["n"]).To(Equal(int64(2)))
			Expect(result.Rows[2]["n"]).To(Equal(int64(10)))
		})

		It("should default an unknown direction to ascending", func() {
			result := records.ApplyGrid([]records.Row{
				{"n": int64(2)},
				{"n": int64(1)},
			}, records.GridQuery{SortBy: "n", SortDir: "sideways"})
			Expect(result.Rows[0]["n"]).To(Equal(int64(1)))
		})
	})

	Describe("filtering", func() {
		rows := []records.Row{
			{"id": int64(1), "domain": "example.com", "stato": "attivo"},
			{"id": int64(2), "domain": "example.org", "stato": nil},
			{"id": int64(3), "domain": "example.com", "stato": "chiuso"},
		}

		It("should keep only rows whose cell is in the accepted set", func() {
			result := records.ApplyGrid(rows, records.GridQuery{
				Filters: map[string][]string{"domain": {"example.com"}},
			})
			Expect(result.Total).To(Equal(2))
		})

		It("should match null cells with the blanks token", func() {
			result := records.ApplyGrid(rows, records.GridQuery{
				Filters: map[string][]string{"stato": {records.BlankFilterValue}},
			})
			Expect(result.Total).To(Equal(1))
			Expect(result.Rows[0]["id"]).To(Equal(int64(2)))
		})

		It("should accept multiple values per column", func() {
			result := records.ApplyGrid(rows, records.GridQuery{
				Filters: map[string][]string{"stato": {"attivo", records.BlankFilterValue}},
			})
			Expect(result.Total).To(Equal(2))
		})

		It("should intersect filters across columns", func() {
			result := records.ApplyGrid(rows, records.GridQuery{
				Filters: map[string][]string{
					"domain": {"example.com"},
					"stato":  {"chiuso"},
				},
			})
			Expect(result.Total).To(Equal(1))
			Expect(result.Rows[0]["id"]).To(Equal(int64(3)))
		})
	})

	Describe("pagination", func() {
		manyRows := func(n int) []records.Row {
			rows := make([]records.Row, 0, n)
			for i := 0; i < n; i++ {
				rows = append(rows, records.Row{"id": int64(i)})
			}
			return rows
		}

		It("should default to fifty rows per page", func() {
			result := records.ApplyGrid(manyRows(120), records.GridQuery{})
			Expect(result.PageSize).To(Equal(50))
			Expect(result.Rows).To(HaveLen(50))
			Expect(result.Total).To(Equal(120))
			Expect(result.TotalPages).To(Equal(3))
		})

		It("should return the requested page", func() {
			result := records.ApplyGrid(manyRows(120), records.GridQuery{Page: 3})
			Expect(result.Rows).To(HaveLen(20))
			Expect(result.Rows[0]["id"]).To(Equal(int64(100)))
		})

		It("should return an empty page past the end", func() {
			result := records.ApplyGrid(manyRows(10), records.GridQuery{Page: 5})
			Expect(result.Rows).To(BeEmpty())
			Expect(result.Total).To(Equal(10))
		})

		It("should report totals computed after filtering", func() {
			rows := []records.Row{
				{"stato": "attivo"},
				{"stato": "chiuso"},
				{"stato": "attivo"},
			}
			result := records.ApplyGrid(rows, records.GridQuery{
				Filters:  map[string][]string{"stato": {"attivo"}},
				PageSize: 1,
			})
			Expect(result.Total).To(Equal(2))
			Expect(result.TotalPages).To(Equal(2))
			Expect(result.Rows).To(HaveLen(1))
		})
	})
})
