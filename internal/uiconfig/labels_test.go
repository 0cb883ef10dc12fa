package uiconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alphios72/NewsinsightUI/internal/uiconfig"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLabelStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Label Store Suite")
}

var _ = Describe("LabelStore", func() {
	var (
		path  string
		store *uiconfig.LabelStore
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "table-labels.json")
		store = uiconfig.NewLabelStore(path)
	})

	Describe("Labels", func() {
		Context("when the file does not exist", func() {
			It("should return an empty map", func() {
				Expect(store.Labels()).To(BeEmpty())
			})
		})

		Context("when the file is not valid JSON", func() {
			It("should return an empty map", func() {
				Expect(os.WriteFile(path, []byte("{broken"), 0o644)).To(Succeed())
				Expect(store.Labels()).To(BeEmpty())
			})
		})

		Context("when the file holds a label map", func() {
			It("should return all entries", func() {
				content := `{"article_db": "Articoli", "rss_feed_url": "Feed RSS"}`
				Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())

				labels := store.Labels()
				Expect(labels).To(HaveLen(2))
				Expect(labels["article_db"]).To(Equal("Articoli"))
			})
		})
	})

	Describe("SaveLabel", func() {
		It("should create the file on first write", func() {
			Expect(store.SaveLabel("article_db", "Articoli")).To(Succeed())
			Expect(store.Labels()["article_db"]).To(Equal("Articoli"))
		})

		It("should preserve other entries when upserting one", func() {
			Expect(store.SaveLabel("article_db", "Articoli")).To(Succeed())
			Expect(store.SaveLabel("url", "Sorgenti URL")).To(Succeed())
			Expect(store.SaveLabel("article_db", "Articoli DB")).To(Succeed())

			labels := store.Labels()
			Expect(labels).To(HaveLen(2))
			Expect(labels["article_db"]).To(Equal("Articoli DB"))
			Expect(labels["url"]).To(Equal("Sorgenti URL"))
		})
	})

	Describe("LabelFor", func() {
		It("should return the configured label", func() {
			labels := map[string]string{"article_db": "Articoli"}
			Expect(uiconfig.LabelFor(labels, "article_db")).To(Equal("Articoli"))
		})

		It("should fall back to the table name when no label exists", func() {
			Expect(uiconfig.LabelFor(map[string]string{}, "article_db")).To(Equal("article_db"))
		})

		It("should fall back to the table name when the label is empty", func() {
			labels := map[string]string{"article_db": ""}
			Expect(uiconfig.LabelFor(labels, "article_db")).To(Equal("article_db"))
		})
	})
})
