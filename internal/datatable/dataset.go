package datatable

import (
	"time"

	"golang.org/x/text/message"
)

// DatasetColumn is one exported column.
type DatasetColumn struct {
	Key    string
	Header string
	Kind   CellKind
}

// DatasetCell holds both the raw normalised value and the display text of a
// cell. Value is a float64, time.Time, bool, string or nil.
type DatasetCell struct {
	Value any
	Text  string
}

// Dataset is the tabular content of an export: every filtered and sorted row
// (not just the current page) restricted to the visible data columns.
type Dataset struct {
	Title   string
	Columns []DatasetColumn
	Rows    [][]DatasetCell
}

// Dataset builds the export content of the current state.
func (t *Table) Dataset(title string, opts ViewOptions) Dataset {
	p := opts.printer()
	ds := Dataset{Title: title}
	var cols []Column
	for _, col := range t.VisibleColumns() {
		if !col.IsData() {
			continue
		}
		cols = append(cols, col)
		ds.Columns = append(ds.Columns, DatasetColumn{Key: col.Key, Header: opts.Header(col), Kind: col.Kind})
	}
	for _, row := range t.FilteredRows() {
		cells := make([]DatasetCell, 0, len(cols))
		for _, col := range cols {
			value, _ := Lookup(row, col.Path())
			cells = append(cells, DatasetCell{Value: rawValue(value), Text: FormatCell(col, value, p, opts)})
		}
		ds.Rows = append(ds.Rows, cells)
	}
	return ds
}

// PlainText renders a cell without locale grouping, for machine-readable
// formats such as CSV.
func (c DatasetCell) PlainText() string {
	if t, ok := c.Value.(time.Time); ok {
		return t.Format(DateLayout)
	}
	return stringify(c.Value)
}

func rawValue(v any) any {
	class, n := normalize(v)
	switch class {
	case classNil:
		return nil
	case classList:
		return stringify(v)
	default:
		return n
	}
}

// Headers returns the header row of the dataset.
func (d Dataset) Headers() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Header
	}
	return out
}

// NewPrinter is a convenience for callers that only hold a language string.
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(message.MatchLanguage(lang))
}
