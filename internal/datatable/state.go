package datatable

import (
	"maps"
	"slices"
	"sort"
)

// SortSpec orders rows by one column.
type SortSpec struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// State is the transient UI state owned by one table instance.
type State struct {
	Sorting    []SortSpec             `json:"sorting"`
	Visibility map[string]bool        `json:"visibility"`
	Selection  map[string]bool        `json:"selection"`
	Filters    map[string]FilterValue `json:"filters"`
	PageIndex  int                    `json:"pageIndex"`
	PageSize   int                    `json:"pageSize"`
}

// NewState returns the initial state of a freshly mounted table.
func NewState() State {
	return State{
		Visibility: map[string]bool{},
		Selection:  map[string]bool{},
		Filters:    map[string]FilterValue{},
		PageSize:   DefaultPageSize,
	}
}

// Clone returns a deep copy so that derived links never alias live state.
func (s State) Clone() State {
	out := State{
		Sorting:    slices.Clone(s.Sorting),
		Visibility: maps.Clone(s.Visibility),
		Selection:  maps.Clone(s.Selection),
		Filters:    make(map[string]FilterValue, len(s.Filters)),
		PageIndex:  s.PageIndex,
		PageSize:   s.PageSize,
	}
	for k, v := range s.Filters {
		out.Filters[k] = v.clone()
	}
	if out.Visibility == nil {
		out.Visibility = map[string]bool{}
	}
	if out.Selection == nil {
		out.Selection = map[string]bool{}
	}
	return out
}

// Filter returns the filter value of a column.
func (s State) Filter(key string) FilterValue {
	return s.Filters[key]
}

// SetFilter replaces one column filter and returns to the first page.
func (s *State) SetFilter(key string, f FilterValue) {
	if s.Filters == nil {
		s.Filters = map[string]FilterValue{}
	}
	if f.IsZero() {
		delete(s.Filters, key)
	} else {
		s.Filters[key] = f.clone()
	}
	s.PageIndex = 0
}

// ResetFilters clears every column filter at once. Sorting is kept.
func (s *State) ResetFilters() {
	s.Filters = map[string]FilterValue{}
	s.PageIndex = 0
}

// HasFilters reports whether any column filter is active.
func (s State) HasFilters() bool {
	for _, f := range s.Filters {
		if !f.IsZero() {
			return true
		}
	}
	return false
}

// SortDirection reports the sort position of a column: 0 unsorted,
// 1 ascending, -1 descending.
func (s State) SortDirection(key string) int {
	for _, spec := range s.Sorting {
		if spec.Column == key {
			if spec.Desc {
				return -1
			}
			return 1
		}
	}
	return 0
}

// ToggleSort cycles a column through ascending, descending and unsorted.
// With multi set, other sort keys are kept; otherwise the column becomes the
// only sort key.
func (s *State) ToggleSort(key string, multi bool) {
	next := SortSpec{Column: key}
	keep := true
	switch s.SortDirection(key) {
	case 0:
	case 1:
		next.Desc = true
	default:
		keep = false
	}
	var sorting []SortSpec
	if multi {
		for _, spec := range s.Sorting {
			if spec.Column != key {
				sorting = append(sorting, spec)
			}
		}
	}
	if keep {
		sorting = append(sorting, next)
	}
	s.Sorting = sorting
}

// SetSorting replaces the sort specification.
func (s *State) SetSorting(specs []SortSpec) {
	s.Sorting = slices.Clone(specs)
}

// IsVisible reports whether a column is shown. Columns default to visible.
func (s State) IsVisible(key string) bool {
	visible, ok := s.Visibility[key]
	return !ok || visible
}

// SetVisible shows or hides a column.
func (s *State) SetVisible(key string, visible bool) {
	if s.Visibility == nil {
		s.Visibility = map[string]bool{}
	}
	if visible {
		delete(s.Visibility, key)
		return
	}
	s.Visibility[key] = false
}

// IsSelected reports whether the row identity is selected.
func (s State) IsSelected(id string) bool {
	return s.Selection[id]
}

// SetSelected selects or deselects a row by identity.
func (s *State) SetSelected(id string, selected bool) {
	if id == "" {
		return
	}
	if s.Selection == nil {
		s.Selection = map[string]bool{}
	}
	if selected {
		s.Selection[id] = true
		return
	}
	delete(s.Selection, id)
}

// ToggleSelected flips the selection of one row.
func (s *State) ToggleSelected(id string) {
	s.SetSelected(id, !s.IsSelected(id))
}

// ClearSelection deselects every row.
func (s *State) ClearSelection() {
	s.Selection = map[string]bool{}
}

// SelectedIDs returns the selected identities in stable order.
func (s State) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selection))
	for id, ok := range s.Selection {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// SetPageSize changes the page size, keeping the first visible row on screen.
func (s *State) SetPageSize(size int) {
	if !ValidPageSize(size) {
		return
	}
	first := s.PageIndex * s.pageSize()
	s.PageSize = size
	s.PageIndex = first / size
}

// SetPageIndex jumps to a zero-based page, clamped to the available pages.
func (s *State) SetPageIndex(index, pageCount int) {
	s.PageIndex = clampPage(index, pageCount)
}

// FirstPage jumps to the first page.
func (s *State) FirstPage() {
	s.PageIndex = 0
}

// PreviousPage moves back one page; a no-op on the first page.
func (s *State) PreviousPage() {
	if s.PageIndex > 0 {
		s.PageIndex--
	}
}

// NextPage moves forward one page; a no-op on the last page.
func (s *State) NextPage(pageCount int) {
	if s.PageIndex < pageCount-1 {
		s.PageIndex++
	}
}

// LastPage jumps to the last page.
func (s *State) LastPage(pageCount int) {
	s.PageIndex = clampPage(pageCount-1, pageCount)
}

func (s State) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultPageSize
	}
	return s.PageSize
}

// prune drops state that refers to columns or rows that no longer exist.
func (s *State) prune(cols map[string]Column, ids map[string]struct{}) {
	for key := range s.Filters {
		if c, ok := cols[key]; !ok || !c.IsData() || !c.Filterable {
			delete(s.Filters, key)
		}
	}
	sorting := s.Sorting[:0:0]
	for _, spec := range s.Sorting {
		if c, ok := cols[spec.Column]; ok && c.Sortable {
			sorting = append(sorting, spec)
		}
	}
	s.Sorting = sorting
	for key := range s.Visibility {
		if c, ok := cols[key]; !ok || !c.Hideable {
			delete(s.Visibility, key)
		}
	}
	if ids != nil {
		for id := range s.Selection {
			if _, ok := ids[id]; !ok {
				delete(s.Selection, id)
			}
		}
	}
}
