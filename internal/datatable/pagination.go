package datatable

import (
	"math"
	"slices"
)

// DefaultPageSize is used when no page size is requested.
const DefaultPageSize = 10

// PageSizes is the fixed set offered by the page-size selector.
var PageSizes = []int{10, 20, 50, 100}

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

// PageCount computes ceil(total / pageSize).
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// PageWindow returns the [start, end) bounds of page index within total rows.
func PageWindow(total, pageIndex, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := pageIndex * pageSize
	if start > total {
		start = total
	}
	if start < 0 {
		start = 0
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

func clampPage(index, pageCount int) int {
	if index >= pageCount {
		index = pageCount - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Pagination is the view model of the pagination control.
type Pagination struct {
	PageIndex     int
	PageSize      int
	PageCount     int
	TotalRows     int
	SelectedRows  int
	CanPrevious   bool
	CanNext       bool
	PageSizes     []int
	FirstURL      string
	PreviousURL   string
	NextURL       string
	LastURL       string
	PageSizeURLs  map[int]string
	RowsSelected  string
	SelectedLabel string
	RowsPerPage   string
	PageLabel     string
	FirstLabel    string
	PreviousLabel string
	NextLabel     string
	LastLabel     string
}

// CurrentPage is the 1-based page number shown to the user.
func (p Pagination) CurrentPage() int {
	return p.PageIndex + 1
}

// DisplayPageCount never shows "of 0" for an empty table.
func (p Pagination) DisplayPageCount() int {
	if p.PageCount < 1 {
		return 1
	}
	return p.PageCount
}
