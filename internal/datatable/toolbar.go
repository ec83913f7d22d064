package datatable

import "net/url"

// ExportFormat names a toolbar export target.
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "xlsx"
	ExportPDF   ExportFormat = "pdf"
)

// ExportFormats lists formats in menu order.
var ExportFormats = []ExportFormat{ExportPDF, ExportExcel, ExportCSV}

// HiddenField carries state through a GET form.
type HiddenField struct {
	Name  string
	Value string
}

// FilterOption is one choice of an "in" filter in the popover.
type FilterOption struct {
	Value    string
	Label    string
	Selected bool
}

// FilterField is one column entry of the filter popover.
type FilterField struct {
	Key      string
	Label    string
	Strategy FilterStrategy
	Param    string
	MinParam string
	MaxParam string
	Value    FilterValue
	Options  []FilterOption
}

// IsRange reports whether the field renders min/max inputs.
func (f FilterField) IsRange() bool {
	return f.Strategy == FilterRange || f.Strategy == FilterDateRange
}

// InputType is the HTML input type of range bounds.
func (f FilterField) InputType() string {
	if f.Strategy == FilterDateRange {
		return "date"
	}
	if f.Strategy == FilterRange {
		return "number"
	}
	return "text"
}

// ExportLink is one export menu item.
type ExportLink struct {
	Format ExportFormat
	Label  string
	URL    string
}

// ColumnToggle is one entry of the column visibility menu.
type ColumnToggle struct {
	Key     string
	Label   string
	Visible bool
	URL     string
}

// Toolbar is the view model of the search/filter/export strip.
type Toolbar struct {
	SearchParam       string
	SearchValue       string
	SearchPlaceholder string
	SearchHidden      []HiddenField
	FilterHidden      []HiddenField
	Filters           []FilterField
	CanReset          bool
	ResetURL          string
	Exports           []ExportLink
	Columns           []ColumnToggle
	Labels            ToolbarTranslations
}

// HasSearch reports whether a search box is shown.
func (t Toolbar) HasSearch() bool {
	return t.SearchParam != ""
}

func (t *Table) toolbar(opts ViewOptions, tr Translations) Toolbar {
	tb := Toolbar{Labels: tr.Toolbar, CanReset: t.state.HasFilters()}

	if t.search != "" {
		tb.SearchParam = FilterParam(t.search)
		tb.SearchValue = t.SearchValue()
		tb.SearchPlaceholder = tr.Toolbar.Search
		withoutSearch := t.state.Clone()
		delete(withoutSearch.Filters, t.search)
		withoutSearch.PageIndex = 0
		tb.SearchHidden = hiddenFields(EncodeState(withoutSearch))
	}

	withoutFilters := t.state.Clone()
	withoutFilters.ResetFilters()
	tb.FilterHidden = hiddenFields(EncodeState(withoutFilters))
	tb.ResetURL = opts.link(withoutFilters)

	for _, col := range t.columns {
		if !col.IsData() || !col.Filterable || !t.state.IsVisible(col.Key) {
			continue
		}
		field := FilterField{
			Key:      col.Key,
			Label:    opts.Header(col),
			Strategy: col.Strategy(),
			Param:    FilterParam(col.Key),
			MinParam: FilterMinParam(col.Key),
			MaxParam: FilterMaxParam(col.Key),
			Value:    t.state.Filter(col.Key),
		}
		for _, o := range col.Options {
			selected := false
			for _, v := range field.Value.Values {
				if v == o.Value {
					selected = true
				}
			}
			field.Options = append(field.Options, FilterOption{Value: o.Value, Label: opts.optionLabel(o), Selected: selected})
		}
		tb.Filters = append(tb.Filters, field)
	}

	exportState := t.state.Clone()
	exportState.PageIndex = 0
	exportState.ClearSelection()
	for _, format := range ExportFormats {
		if !opts.hasExport(format) {
			continue
		}
		label := tr.Toolbar.CSV
		switch format {
		case ExportExcel:
			label = tr.Toolbar.Excel
		case ExportPDF:
			label = tr.Toolbar.PDF
		}
		u := url.URL{Path: opts.ExportBase + "/" + string(format), RawQuery: EncodeState(exportState).Encode()}
		tb.Exports = append(tb.Exports, ExportLink{Format: format, Label: label, URL: u.String()})
	}

	for _, col := range t.columns {
		if !col.Hideable {
			continue
		}
		toggled := t.state.Clone()
		visible := t.state.IsVisible(col.Key)
		toggled.SetVisible(col.Key, !visible)
		tb.Columns = append(tb.Columns, ColumnToggle{Key: col.Key, Label: opts.Header(col), Visible: visible, URL: opts.link(toggled)})
	}
	return tb
}

func hiddenFields(values url.Values) []HiddenField {
	var out []HiddenField
	for _, key := range sortedKeys(values) {
		for _, v := range values[key] {
			out = append(out, HiddenField{Name: key, Value: v})
		}
	}
	return out
}
