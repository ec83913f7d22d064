// Package datatable implements the generic list table used by every list page:
// column descriptors, transient UI state (sorting, filters, pagination,
// selection, column visibility), the pure derivation of the visible rows, and
// the view models of the toolbar and pagination control.
//
// A Table is a per-request value and is not safe for concurrent use.
package datatable

import (
	"fmt"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Table composes column definitions, rows and UI state.
type Table struct {
	columns []Column
	index   map[string]Column
	rows    []Row
	state   State
	search  string
	coll    *collate.Collator
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithState seeds the table with existing UI state, usually decoded from the
// request query.
func WithState(s State) TableOption {
	return func(t *Table) { t.state = s.Clone() }
}

// WithSearchColumn designates the column bound to the toolbar search box.
func WithSearchColumn(key string) TableOption {
	return func(t *Table) { t.search = key }
}

// WithLanguage sorts strings with the collation rules of tag.
func WithLanguage(tag language.Tag) TableOption {
	return func(t *Table) { t.coll = collate.New(tag, collate.IgnoreCase, collate.Numeric) }
}

// New builds a table. Columns must have unique keys; the search column, when
// set, must be a filterable data column.
func New(cols []Column, rows []Row, opts ...TableOption) (*Table, error) {
	if err := ValidateColumns(cols); err != nil {
		return nil, err
	}
	t := &Table{
		columns: cols,
		index:   make(map[string]Column, len(cols)),
		state:   NewState(),
	}
	for _, c := range cols {
		t.index[c.Key] = c
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.search != "" {
		col, ok := t.index[t.search]
		if !ok || !col.IsData() || !col.Filterable {
			return nil, fmt.Errorf("%w: search column %s", ErrUnknownColumn, t.search)
		}
	}
	if t.coll == nil {
		t.coll = collate.New(language.English, collate.IgnoreCase, collate.Numeric)
	}
	t.SetRows(rows)
	return t, nil
}

// SetRows replaces the working set synchronously. Filters, sorting, pagination
// and selection are kept where their keys still apply.
func (t *Table) SetRows(rows []Row) {
	t.rows = rows
	ids := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		ids[r.RowID()] = struct{}{}
	}
	t.state.prune(t.index, ids)
	t.state.PageIndex = clampPage(t.state.PageIndex, t.PageCount())
}

// Columns returns every column definition.
func (t *Table) Columns() []Column {
	return t.columns
}

// Column returns the column with key.
func (t *Table) Column(key string) (Column, bool) {
	c, ok := t.index[key]
	return c, ok
}

// VisibleColumns returns the columns currently shown.
func (t *Table) VisibleColumns() []Column {
	out := make([]Column, 0, len(t.columns))
	for _, c := range t.columns {
		if t.state.IsVisible(c.Key) {
			out = append(out, c)
		}
	}
	return out
}

// Rows returns the raw working set.
func (t *Table) Rows() []Row {
	return t.rows
}

// State returns a copy of the current UI state.
func (t *Table) State() State {
	return t.state.Clone()
}

// SearchColumn returns the key of the column bound to the search box.
func (t *Table) SearchColumn() string {
	return t.search
}

// Result derives filtered, sorted and paginated rows from the current state.
func (t *Table) Result() Result {
	return Derive(t.columns, t.rows, t.state, t.coll)
}

// FilteredRows returns every row passing the filters, sorted.
func (t *Table) FilteredRows() []Row {
	return t.Result().Filtered
}

// PageRows returns the rows of the current page.
func (t *Table) PageRows() []Row {
	return t.Result().Page
}

// PageCount returns ceil(filtered rows / page size).
func (t *Table) PageCount() int {
	filtered := FilterRows(t.index, t.rows, t.state.Filters)
	return PageCount(len(filtered), t.state.pageSize())
}

// CanPreviousPage reports whether a previous page exists.
func (t *Table) CanPreviousPage() bool {
	return t.state.PageIndex > 0
}

// CanNextPage reports whether a next page exists.
func (t *Table) CanNextPage() bool {
	return t.state.PageIndex < t.PageCount()-1
}

// SetFilter sets one column filter.
func (t *Table) SetFilter(key string, f FilterValue) error {
	col, ok := t.index[key]
	if !ok || !col.IsData() {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	if !col.Filterable {
		return fmt.Errorf("%w: %s is not filterable", ErrUnknownColumn, key)
	}
	t.state.SetFilter(key, f)
	return nil
}

// SetSearch sets the filter text of the search column.
func (t *Table) SetSearch(text string) error {
	if t.search == "" {
		return fmt.Errorf("%w: no search column", ErrUnknownColumn)
	}
	return t.SetFilter(t.search, TextFilter(text))
}

// SearchValue returns the current search box text.
func (t *Table) SearchValue() string {
	return t.state.Filter(t.search).Text
}

// ResetFilters clears every column filter at once.
func (t *Table) ResetFilters() {
	t.state.ResetFilters()
}

// ToggleSort cycles the sort direction of a sortable column.
func (t *Table) ToggleSort(key string, multi bool) error {
	col, ok := t.index[key]
	if !ok || !col.Sortable {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	t.state.ToggleSort(key, multi)
	return nil
}

// SetPageSize changes the page size; sizes outside PageSizes are ignored.
func (t *Table) SetPageSize(size int) {
	t.state.SetPageSize(size)
	t.state.PageIndex = clampPage(t.state.PageIndex, t.PageCount())
}

// FirstPage jumps to the first page.
func (t *Table) FirstPage() { t.state.FirstPage() }

// PreviousPage moves back one page.
func (t *Table) PreviousPage() { t.state.PreviousPage() }

// NextPage moves forward one page; a no-op on the last page.
func (t *Table) NextPage() { t.state.NextPage(t.PageCount()) }

// LastPage jumps to the last page.
func (t *Table) LastPage() { t.state.LastPage(t.PageCount()) }

// SetPageIndex jumps to a zero-based page.
func (t *Table) SetPageIndex(index int) { t.state.SetPageIndex(index, t.PageCount()) }

// PageIndex returns the current zero-based page index.
func (t *Table) PageIndex() int { return t.state.PageIndex }

// ToggleRowSelected flips the selection of a row by identity.
func (t *Table) ToggleRowSelected(id string) {
	t.state.ToggleSelected(id)
}

// SelectPage selects or deselects every row of the current page.
func (t *Table) SelectPage(selected bool) {
	for _, r := range t.PageRows() {
		t.state.SetSelected(r.RowID(), selected)
	}
}

// ClearSelection deselects every row.
func (t *Table) ClearSelection() {
	t.state.ClearSelection()
}

// SelectedRows returns the selected rows in working-set order, regardless of
// filters and pagination.
func (t *Table) SelectedRows() []Row {
	var out []Row
	for _, r := range t.rows {
		if t.state.IsSelected(r.RowID()) {
			out = append(out, r)
		}
	}
	return out
}

// SetColumnVisible shows or hides a hideable column.
func (t *Table) SetColumnVisible(key string, visible bool) error {
	col, ok := t.index[key]
	if !ok || !col.Hideable {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	t.state.SetVisible(key, visible)
	return nil
}
