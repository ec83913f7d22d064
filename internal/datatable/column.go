package datatable

import (
	"fmt"
	"strings"
)

// CellKind tags how a column's cell is rendered.
type CellKind string

const (
	CellText    CellKind = "text"
	CellNumber  CellKind = "number"
	CellMoney   CellKind = "money"
	CellPercent CellKind = "percent"
	CellDate    CellKind = "date"
	CellBadge   CellKind = "badge"
	CellSelect  CellKind = "select"
	CellActions CellKind = "actions"
)

// FilterStrategy names how a column filter value is matched against a cell.
type FilterStrategy string

const (
	// FilterIncludes is a case-insensitive substring match. It is the default.
	FilterIncludes FilterStrategy = "includes"
	// FilterEquals is a case-insensitive exact match.
	FilterEquals FilterStrategy = "equals"
	// FilterIn keeps rows whose value is one of the selected options.
	FilterIn FilterStrategy = "in"
	// FilterRange compares numerically against inclusive min/max bounds.
	FilterRange FilterStrategy = "range"
	// FilterDateRange compares dates against inclusive from/to bounds.
	FilterDateRange FilterStrategy = "dateRange"
)

// Reserved column keys.
const (
	SelectColumnKey  = "select"
	ActionsColumnKey = "actions"
)

// Option is one choice of an "in" filter or a badge value.
type Option struct {
	Value    string `json:"value"`
	LabelKey string `json:"labelKey,omitempty"`
	Label    string `json:"label,omitempty"`
}

// Column is a data-only description of one table column. It carries no
// closures, so column sets can be built, compared and serialised in isolation.
type Column struct {
	Key        string         `json:"key"`
	Accessor   string         `json:"accessor,omitempty"`
	HeaderKey  string         `json:"headerKey,omitempty"`
	Header     string         `json:"header,omitempty"`
	Kind       CellKind       `json:"kind"`
	Filter     FilterStrategy `json:"filter,omitempty"`
	Sortable   bool           `json:"sortable"`
	Filterable bool           `json:"filterable"`
	Hideable   bool           `json:"hideable"`
	Align      string         `json:"align,omitempty"`
	Options    []Option       `json:"options,omitempty"`
	Actions    []ActionKind   `json:"actions,omitempty"`
}

// Path returns the accessor path used to read the cell value.
func (c Column) Path() string {
	if c.Accessor != "" {
		return c.Accessor
	}
	return c.Key
}

// Strategy returns the declared filter strategy or the default.
func (c Column) Strategy() FilterStrategy {
	if c.Filter == "" {
		return FilterIncludes
	}
	return c.Filter
}

// IsData reports whether the column shows row data (as opposed to the
// selection checkbox or the actions menu).
func (c Column) IsData() bool {
	return c.Kind != CellSelect && c.Kind != CellActions
}

// Text builds a sortable, filterable, hideable text column.
func Text(key, headerKey string) Column {
	return Column{Key: key, HeaderKey: headerKey, Kind: CellText, Sortable: true, Filterable: true, Hideable: true}
}

// Money builds a right-aligned amount column with a numeric range filter.
func Money(key, headerKey string) Column {
	return Column{Key: key, HeaderKey: headerKey, Kind: CellMoney, Filter: FilterRange, Sortable: true, Filterable: true, Hideable: true, Align: "right"}
}

// Number builds a right-aligned numeric column with a numeric range filter.
func Number(key, headerKey string) Column {
	return Column{Key: key, HeaderKey: headerKey, Kind: CellNumber, Filter: FilterRange, Sortable: true, Filterable: true, Hideable: true, Align: "right"}
}

// Percent builds a right-aligned rate column.
func Percent(key, headerKey string) Column {
	return Column{Key: key, HeaderKey: headerKey, Kind: CellPercent, Filter: FilterRange, Sortable: true, Filterable: true, Hideable: true, Align: "right"}
}

// Date builds a date column with a date range filter.
func Date(key, headerKey string) Column {
	return Column{Key: key, HeaderKey: headerKey, Kind: CellDate, Filter: FilterDateRange, Sortable: true, Filterable: true, Hideable: true}
}

// Badge builds a status column filtered by a fixed option set.
func Badge(key, headerKey string, options ...Option) Column {
	return Column{Key: key, HeaderKey: headerKey, Kind: CellBadge, Filter: FilterIn, Sortable: true, Filterable: true, Hideable: true, Options: options}
}

// SelectColumn builds the leading row-selection checkbox column.
func SelectColumn() Column {
	return Column{Key: SelectColumnKey, Kind: CellSelect}
}

// ActionsColumn builds the trailing actions menu column listing only the
// action kinds registered in reg. It returns false when nothing is
// registered, in which case the column should be omitted.
func ActionsColumn(reg *ActionRegistry) (Column, bool) {
	kinds := reg.Kinds()
	if len(kinds) == 0 {
		return Column{}, false
	}
	return Column{Key: ActionsColumnKey, HeaderKey: "actions.title", Kind: CellActions, Actions: kinds}, true
}

// WithActions appends the actions column to cols when reg has any handler.
func WithActions(cols []Column, reg *ActionRegistry) []Column {
	if col, ok := ActionsColumn(reg); ok {
		return append(cols, col)
	}
	return cols
}

// ValidateColumns checks keys are present and unique.
func ValidateColumns(cols []Column) error {
	seen := make(map[string]struct{}, len(cols))
	for i, c := range cols {
		key := strings.TrimSpace(c.Key)
		if key == "" {
			return fmt.Errorf("%w: column %d has no key", ErrInvalidColumn, i)
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, key)
		}
		seen[key] = struct{}{}
		if c.Kind == "" {
			return fmt.Errorf("%w: column %s has no kind", ErrInvalidColumn, key)
		}
	}
	return nil
}
