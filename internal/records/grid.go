package records

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BlankFilterValue is the filter token matching NULL cells, mirroring the
// "(Blanks)" entry the dashboard grid offers in its filter popovers.
const BlankFilterValue = "(Blanks)"

// DefaultPageSize is the grid page size.
const DefaultPageSize = 50

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// GridQuery captures the filter/sort/paginate state applied to an
// already-fetched, bounded snapshot of rows. All of it is recomputed
// synchronously per request; nothing here touches the database.
type GridQuery struct {
	Filters  map[string][]string
	SortBy   string
	SortDir  SortDirection
	Page     int
	PageSize int
}

// GridResult is one page of the processed snapshot.
type GridResult struct {
	Rows       []Row `json:"rows"`
	Total      int   `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// ApplyGrid filters, sorts and paginates rows.
func ApplyGrid(rows []Row, q GridQuery) GridResult {
	result := filterRows(rows, q.Filters)

	if q.SortBy != "" {
		dir := q.SortDir
		if dir != SortDesc {
			dir = SortAsc
		}
		sortRows(result, q.SortBy, dir)
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	total := len(result)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return GridResult{
		Rows:       result[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// filterRows keeps rows whose cell, stringified, is in the accepted set for
// every filtered column. NULL cells match the blanks token.
func filterRows(rows []Row, filters map[string][]string) []Row {
	if len(filters) == 0 {
		return append([]Row(nil), rows...)
	}

	sets := make(map[string]map[string]bool, len(filters))
	for col, values := range filters {
		if len(values) == 0 {
			continue
		}
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		sets[col] = set
	}

	var result []Row
	for _, row := range rows {
		keep := true
		for col, set := range sets {
			if !set[cellString(row[col])] {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, row)
		}
	}
	return result
}

// sortRows orders rows by one column. NULLs sort last regardless of
// direction; when both values are numeric they compare numerically,
// otherwise as case-insensitive text.
func sortRows(rows []Row, column string, dir SortDirection) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i][column], rows[j][column]

		if a == nil && b == nil {
			return false
		}
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}

		cmp := compareValues(a, b)
		if dir == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareValues(a, b interface{}) int {
	af, aNum := toFloat(a)
	bf, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := strings.ToLower(cellString(a))
	bs := strings.ToLower(cellString(b))
	return strings.Compare(as, bs)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func cellString(v interface{}) string {
	if v == nil {
		return BlankFilterValue
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
