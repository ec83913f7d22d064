package datatable

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ViewOptions carries everything the page supplies for rendering.
type ViewOptions struct {
	// BasePath is the list page path that state links point at.
	BasePath string
	// ExportBase prefixes export links: ExportBase + "/" + format.
	ExportBase string
	// ActionBase prefixes handler action links: ActionBase + "/" + id + "/" + kind.
	ActionBase string
	// Translate resolves column header and option label keys.
	Translate func(key string) string
	// Translations holds the table chrome strings; blanks fall back to English.
	Translations Translations
	// Loading makes an empty table show the loading indicator instead of
	// the no-results message.
	Loading bool
	// Printer formats numbers for the active locale.
	Printer *message.Printer
	// Exports lists the formats that have an exporter configured.
	Exports []ExportFormat
	// Actions resolves row action handlers by kind.
	Actions *ActionRegistry
}

func (o ViewOptions) link(s State) string {
	u := url.URL{Path: o.BasePath, RawQuery: EncodeState(s).Encode()}
	if u.Path == "" {
		u.Path = "."
	}
	return u.String()
}

// Header resolves the display label of a column.
func (o ViewOptions) Header(c Column) string {
	if c.HeaderKey != "" && o.Translate != nil {
		if label := o.Translate(c.HeaderKey); label != "" && label != c.HeaderKey {
			return label
		}
	}
	if c.Header != "" {
		return c.Header
	}
	if c.HeaderKey != "" {
		return c.HeaderKey
	}
	return c.Key
}

func (o ViewOptions) optionLabel(opt Option) string {
	if opt.LabelKey != "" && o.Translate != nil {
		if label := o.Translate(opt.LabelKey); label != "" && label != opt.LabelKey {
			return label
		}
	}
	if opt.Label != "" {
		return opt.Label
	}
	return opt.Value
}

func (o ViewOptions) hasExport(format ExportFormat) bool {
	for _, f := range o.Exports {
		if f == format {
			return true
		}
	}
	return false
}

func (o ViewOptions) printer() *message.Printer {
	if o.Printer != nil {
		return o.Printer
	}
	return message.NewPrinter(language.English)
}

// HeaderCell is one column header.
type HeaderCell struct {
	Key      string
	Label    string
	Kind     CellKind
	Align    string
	Sortable bool
	SortDir  int
	SortURL  string
}

// SortedAsc reports an ascending sort on this header.
func (h HeaderCell) SortedAsc() bool { return h.SortDir > 0 }

// SortedDesc reports a descending sort on this header.
func (h HeaderCell) SortedDesc() bool { return h.SortDir < 0 }

// ActionLink is one entry of a row's actions menu.
type ActionLink struct {
	Kind        ActionKind
	Label       string
	URL         string
	Confirm     bool
	Destructive bool
	// Post marks handler actions without a confirmation step; they submit
	// directly instead of navigating.
	Post bool
}

// ViewCell is one rendered cell.
type ViewCell struct {
	Key     string
	Kind    CellKind
	Text    string
	Align   string
	Actions []ActionLink
}

// ViewRow is one rendered row.
type ViewRow struct {
	ID        string
	Selected  bool
	ToggleURL string
	Cells     []ViewCell
}

// View is the complete render model of a table.
type View struct {
	Headers         []HeaderCell
	Rows            []ViewRow
	ColumnCount     int
	Empty           bool
	Loading         bool
	EmptyMessage    string
	Toolbar         Toolbar
	Pagination      Pagination
	Translations    Translations
	Query           string
	SelectedIDs     []string
	HasSelect       bool
	AllPageSelected bool
	SelectPageURL   string
	FilteredCount   int
}

// View builds the render model of the current state.
func (t *Table) View(opts ViewOptions) View {
	tr := opts.Translations.WithDefaults()
	res := t.Result()
	p := opts.printer()

	// The effective page index may have been clamped by Derive.
	t.state.PageIndex = res.PageIndex

	v := View{
		Translations:  tr,
		Query:         EncodeState(t.state).Encode(),
		SelectedIDs:   t.state.SelectedIDs(),
		FilteredCount: len(res.Filtered),
	}
	v.Empty = len(res.Page) == 0
	v.Loading = opts.Loading && v.Empty
	if v.Loading {
		v.EmptyMessage = tr.Loading
	} else {
		v.EmptyMessage = tr.NoResults
	}

	visible := t.VisibleColumns()
	v.ColumnCount = len(visible)
	for _, col := range visible {
		h := HeaderCell{Key: col.Key, Label: opts.Header(col), Kind: col.Kind, Align: col.Align}
		if col.Kind == CellActions {
			h.Label = tr.Actions.Title
		}
		if col.Kind == CellSelect {
			v.HasSelect = true
			h.Label = tr.Actions.SelectAll
		}
		if col.Sortable && col.IsData() {
			h.Sortable = true
			h.SortDir = t.state.SortDirection(col.Key)
			next := t.state.Clone()
			next.ToggleSort(col.Key, false)
			h.SortURL = opts.link(next)
		}
		v.Headers = append(v.Headers, h)
	}

	allSelected := len(res.Page) > 0
	for _, row := range res.Page {
		id := row.RowID()
		toggled := t.state.Clone()
		toggled.ToggleSelected(id)
		vr := ViewRow{ID: id, Selected: t.state.IsSelected(id), ToggleURL: opts.link(toggled)}
		if !vr.Selected {
			allSelected = false
		}
		for _, col := range visible {
			vr.Cells = append(vr.Cells, t.cell(col, row, opts, tr, p))
		}
		v.Rows = append(v.Rows, vr)
	}
	v.AllPageSelected = allSelected
	pageToggle := t.state.Clone()
	for _, row := range res.Page {
		pageToggle.SetSelected(row.RowID(), !allSelected)
	}
	v.SelectPageURL = opts.link(pageToggle)

	v.Toolbar = t.toolbar(opts, tr)
	v.Pagination = t.pagination(opts, tr, res)
	return v
}

func (t *Table) cell(col Column, row Row, opts ViewOptions, tr Translations, p *message.Printer) ViewCell {
	c := ViewCell{Key: col.Key, Kind: col.Kind, Align: col.Align}
	switch col.Kind {
	case CellSelect:
		return c
	case CellActions:
		id := row.RowID()
		for _, kind := range col.Actions {
			a, ok := opts.Actions.Lookup(kind)
			if !ok {
				continue
			}
			link := ActionLink{Kind: kind, Label: tr.ActionLabel(kind), Confirm: a.Confirm, Destructive: a.Destructive}
			if a.Link != "" {
				link.URL = a.LinkFor(url.PathEscape(id))
			} else {
				u := url.URL{
					Path:     strings.TrimRight(opts.ActionBase, "/") + "/" + url.PathEscape(id) + "/" + string(kind),
					RawQuery: url.Values{"return": {opts.link(t.state)}}.Encode(),
				}
				link.URL = u.String()
				link.Post = !a.Confirm
			}
			c.Actions = append(c.Actions, link)
		}
		return c
	}
	value, _ := Lookup(row, col.Path())
	c.Text = FormatCell(col, value, p, opts)
	return c
}

// FormatCell renders a cell value as display text.
func FormatCell(col Column, value any, p *message.Printer, opts ViewOptions) string {
	class, n := normalize(value)
	if class == classNil {
		return ""
	}
	switch col.Kind {
	case CellMoney:
		if class == classNumber {
			return p.Sprintf("%.2f", n.(float64))
		}
	case CellNumber:
		if class == classNumber {
			return p.Sprintf("%v", n.(float64))
		}
	case CellPercent:
		if class == classNumber {
			return p.Sprintf("%.2f", n.(float64)) + "%"
		}
	case CellDate:
		if class == classTime {
			return n.(time.Time).Format("02 Jan 2006")
		}
	case CellBadge:
		s := stringify(value)
		for _, o := range col.Options {
			if strings.EqualFold(o.Value, s) {
				return opts.optionLabel(o)
			}
		}
		return s
	}
	return stringify(value)
}

func (t *Table) pagination(opts ViewOptions, tr Translations, res Result) Pagination {
	selected := 0
	for _, row := range res.Filtered {
		if t.state.IsSelected(row.RowID()) {
			selected++
		}
	}
	pg := Pagination{
		PageIndex:     res.PageIndex,
		PageSize:      t.state.pageSize(),
		PageCount:     res.PageCount,
		TotalRows:     len(res.Filtered),
		SelectedRows:  selected,
		CanPrevious:   res.PageIndex > 0,
		CanNext:       res.PageIndex < res.PageCount-1,
		PageSizes:     PageSizes,
		PageSizeURLs:  make(map[int]string, len(PageSizes)),
		RowsSelected:  tr.Pagination.RowsSelected,
		RowsPerPage:   tr.Pagination.RowsPerPage,
		SelectedLabel: strconv.Itoa(selected) + " " + tr.Pagination.Of + " " + strconv.Itoa(len(res.Filtered)) + " " + tr.Pagination.RowsSelected,
		PageLabel:     tr.Pagination.Page + " " + strconv.Itoa(res.PageIndex+1) + " " + tr.Pagination.Of + " " + strconv.Itoa(max(res.PageCount, 1)),
		FirstLabel:    tr.Pagination.FirstPage,
		PreviousLabel: tr.Pagination.PreviousPage,
		NextLabel:     tr.Pagination.NextPage,
		LastLabel:     tr.Pagination.LastPage,
	}
	move := func(fn func(*State)) string {
		next := t.state.Clone()
		next.PageIndex = res.PageIndex
		fn(&next)
		return opts.link(next)
	}
	pg.FirstURL = move(func(s *State) { s.FirstPage() })
	pg.PreviousURL = move(func(s *State) { s.PreviousPage() })
	pg.NextURL = move(func(s *State) { s.NextPage(res.PageCount) })
	pg.LastURL = move(func(s *State) { s.LastPage(res.PageCount) })
	for _, size := range PageSizes {
		pg.PageSizeURLs[size] = move(func(s *State) { s.SetPageSize(size) })
	}
	return pg
}

func sortedKeys(values url.Values) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
