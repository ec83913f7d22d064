package datatable

import (
	"slices"

	"golang.org/x/text/collate"
)

// Result is the derived view of a row set under a state.
type Result struct {
	// Filtered holds every row passing the column filters, in sorted order.
	Filtered []Row
	// Page holds the rows of the current page.
	Page []Row
	// PageIndex is the effective (clamped) page index.
	PageIndex int
	// PageCount is ceil(len(Filtered) / page size).
	PageCount int
}

// Derive computes the visible rows: filter, then sort, then paginate. It is a
// pure function of its inputs; rows and state are not modified.
func Derive(cols []Column, rows []Row, state State, coll *collate.Collator) Result {
	index := make(map[string]Column, len(cols))
	for _, c := range cols {
		index[c.Key] = c
	}

	filtered := FilterRows(index, rows, state.Filters)
	SortRows(index, filtered, state.Sorting, coll)

	size := state.pageSize()
	pageCount := PageCount(len(filtered), size)
	pageIndex := clampPage(state.PageIndex, pageCount)
	start, end := PageWindow(len(filtered), pageIndex, size)

	return Result{
		Filtered:  filtered,
		Page:      filtered[start:end:end],
		PageIndex: pageIndex,
		PageCount: pageCount,
	}
}

// FilterRows returns a new slice with the rows matching every active filter.
func FilterRows(cols map[string]Column, rows []Row, filters map[string]FilterValue) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matchesAll(cols, row, filters) {
			out = append(out, row)
		}
	}
	return out
}

func matchesAll(cols map[string]Column, row Row, filters map[string]FilterValue) bool {
	for key, f := range filters {
		col, ok := cols[key]
		if !ok || !col.IsData() {
			continue
		}
		value, _ := Lookup(row, col.Path())
		if !Match(col, value, f) {
			return false
		}
	}
	return true
}

// SortRows orders rows in place by the sort specs. The sort is stable, so
// equal rows keep their input order and re-sorting is idempotent.
func SortRows(cols map[string]Column, rows []Row, specs []SortSpec, coll *collate.Collator) {
	active := make([]SortSpec, 0, len(specs))
	for _, spec := range specs {
		if col, ok := cols[spec.Column]; ok && col.Sortable && col.IsData() {
			active = append(active, spec)
		}
	}
	if len(active) == 0 {
		return
	}
	slices.SortStableFunc(rows, func(a, b Row) int {
		for _, spec := range active {
			path := cols[spec.Column].Path()
			va, _ := Lookup(a, path)
			vb, _ := Lookup(b, path)
			if c := compareValues(va, vb, coll); c != 0 {
				if spec.Desc {
					return -c
				}
				return c
			}
		}
		return 0
	})
}
