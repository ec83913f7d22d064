package datatable

// Translations holds the strings the table chrome needs. Blank fields fall
// back to English through WithDefaults.
type Translations struct {
	NoResults  string                 `yaml:"noResults" json:"noResults"`
	Loading    string                 `yaml:"loading" json:"loading"`
	Toolbar    ToolbarTranslations    `yaml:"toolbar" json:"toolbar"`
	Pagination PaginationTranslations `yaml:"pagination" json:"pagination"`
	Actions    ActionTranslations     `yaml:"actions" json:"actions"`
}

// ToolbarTranslations holds toolbar strings.
type ToolbarTranslations struct {
	Search        string `yaml:"search" json:"search"`
	Filters       string `yaml:"filters" json:"filters"`
	FilterColumns string `yaml:"filterColumns" json:"filterColumns"`
	Reset         string `yaml:"reset" json:"reset"`
	Print         string `yaml:"print" json:"print"`
	Export        string `yaml:"export" json:"export"`
	Excel         string `yaml:"excel" json:"excel"`
	CSV           string `yaml:"csv" json:"csv"`
	PDF           string `yaml:"pdf" json:"pdf"`
	Columns       string `yaml:"columns" json:"columns"`
	Apply         string `yaml:"apply" json:"apply"`
	Min           string `yaml:"min" json:"min"`
	Max           string `yaml:"max" json:"max"`
}

// PaginationTranslations holds pagination strings.
type PaginationTranslations struct {
	RowsSelected string `yaml:"rowsSelected" json:"rowsSelected"`
	RowsPerPage  string `yaml:"rowsPerPage" json:"rowsPerPage"`
	Page         string `yaml:"page" json:"page"`
	Of           string `yaml:"of" json:"of"`
	FirstPage    string `yaml:"firstPage" json:"firstPage"`
	PreviousPage string `yaml:"previousPage" json:"previousPage"`
	NextPage     string `yaml:"nextPage" json:"nextPage"`
	LastPage     string `yaml:"lastPage" json:"lastPage"`
}

// ActionTranslations holds actions menu and confirmation strings.
type ActionTranslations struct {
	Title         string `yaml:"title" json:"title"`
	OpenMenu      string `yaml:"openMenu" json:"openMenu"`
	Info          string `yaml:"info" json:"info"`
	Edit          string `yaml:"edit" json:"edit"`
	Run           string `yaml:"run" json:"run"`
	Pay           string `yaml:"pay" json:"pay"`
	Delete        string `yaml:"delete" json:"delete"`
	DeleteConfirm string `yaml:"deleteConfirm" json:"deleteConfirm"`
	Confirm       string `yaml:"confirm" json:"confirm"`
	Cancel        string `yaml:"cancel" json:"cancel"`
	SelectAll     string `yaml:"selectAll" json:"selectAll"`
	SelectRow     string `yaml:"selectRow" json:"selectRow"`
	DeleteChosen  string `yaml:"deleteSelected" json:"deleteSelected"`
}

// DefaultTranslations returns the English strings.
func DefaultTranslations() Translations {
	return Translations{
		NoResults: "No results.",
		Loading:   "Loading...",
		Toolbar: ToolbarTranslations{
			Search:        "Search...",
			Filters:       "Filters",
			FilterColumns: "Filter columns",
			Reset:         "Reset",
			Print:         "Print",
			Export:        "Export",
			Excel:         "Excel",
			CSV:           "CSV",
			PDF:           "PDF",
			Columns:       "Columns",
			Apply:         "Apply",
			Min:           "Min",
			Max:           "Max",
		},
		Pagination: PaginationTranslations{
			RowsSelected: "row(s) selected",
			RowsPerPage:  "Rows per page",
			Page:         "Page",
			Of:           "of",
			FirstPage:    "Go to first page",
			PreviousPage: "Go to previous page",
			NextPage:     "Go to next page",
			LastPage:     "Go to last page",
		},
		Actions: ActionTranslations{
			Title:         "Actions",
			OpenMenu:      "Open menu",
			Info:          "Details",
			Edit:          "Edit",
			Run:           "Run",
			Pay:           "Pay",
			Delete:        "Delete",
			DeleteConfirm: "This action cannot be undone. Delete this record?",
			Confirm:       "Continue",
			Cancel:        "Cancel",
			SelectAll:     "Select all",
			SelectRow:     "Select row",
			DeleteChosen:  "Delete selected",
		},
	}
}

// WithDefaults fills every blank string from DefaultTranslations.
func (t Translations) WithDefaults() Translations {
	d := DefaultTranslations()
	fill(&t.NoResults, d.NoResults)
	fill(&t.Loading, d.Loading)

	fill(&t.Toolbar.Search, d.Toolbar.Search)
	fill(&t.Toolbar.Filters, d.Toolbar.Filters)
	fill(&t.Toolbar.FilterColumns, d.Toolbar.FilterColumns)
	fill(&t.Toolbar.Reset, d.Toolbar.Reset)
	fill(&t.Toolbar.Print, d.Toolbar.Print)
	fill(&t.Toolbar.Export, d.Toolbar.Export)
	fill(&t.Toolbar.Excel, d.Toolbar.Excel)
	fill(&t.Toolbar.CSV, d.Toolbar.CSV)
	fill(&t.Toolbar.PDF, d.Toolbar.PDF)
	fill(&t.Toolbar.Columns, d.Toolbar.Columns)
	fill(&t.Toolbar.Apply, d.Toolbar.Apply)
	fill(&t.Toolbar.Min, d.Toolbar.Min)
	fill(&t.Toolbar.Max, d.Toolbar.Max)

	fill(&t.Pagination.RowsSelected, d.Pagination.RowsSelected)
	fill(&t.Pagination.RowsPerPage, d.Pagination.RowsPerPage)
	fill(&t.Pagination.Page, d.Pagination.Page)
	fill(&t.Pagination.Of, d.Pagination.Of)
	fill(&t.Pagination.FirstPage, d.Pagination.FirstPage)
	fill(&t.Pagination.PreviousPage, d.Pagination.PreviousPage)
	fill(&t.Pagination.NextPage, d.Pagination.NextPage)
	fill(&t.Pagination.LastPage, d.Pagination.LastPage)

	fill(&t.Actions.Title, d.Actions.Title)
	fill(&t.Actions.OpenMenu, d.Actions.OpenMenu)
	fill(&t.Actions.Info, d.Actions.Info)
	fill(&t.Actions.Edit, d.Actions.Edit)
	fill(&t.Actions.Run, d.Actions.Run)
	fill(&t.Actions.Pay, d.Actions.Pay)
	fill(&t.Actions.Delete, d.Actions.Delete)
	fill(&t.Actions.DeleteConfirm, d.Actions.DeleteConfirm)
	fill(&t.Actions.Confirm, d.Actions.Confirm)
	fill(&t.Actions.Cancel, d.Actions.Cancel)
	fill(&t.Actions.SelectAll, d.Actions.SelectAll)
	fill(&t.Actions.SelectRow, d.Actions.SelectRow)
	fill(&t.Actions.DeleteChosen, d.Actions.DeleteChosen)
	return t
}

// ActionLabel returns the menu label of an action kind.
func (t Translations) ActionLabel(kind ActionKind) string {
	switch kind {
	case ActionInfo:
		return t.Actions.Info
	case ActionEdit:
		return t.Actions.Edit
	case ActionRun:
		return t.Actions.Run
	case ActionPay:
		return t.Actions.Pay
	case ActionDelete:
		return t.Actions.Delete
	default:
		return string(kind)
	}
}

func fill(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}
