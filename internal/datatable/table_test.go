package datatable

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expenseRow struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Category  string     `json:"category"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	SpentOn   time.Time  `json:"spent_on"`
	Vendor    *vendorRef `json:"vendor"`
}

type vendorRef struct {
	Name string `json:"name"`
}

func (e expenseRow) RowID() string { return e.ID }

func expenseColumns() []Column {
	return []Column{
		SelectColumn(),
		Text("reference", "expenses.reference"),
		Text("category", "expenses.category"),
		Money("amount", "expenses.amount"),
		Badge("status", "expenses.status", Option{Value: "draft", Label: "Draft"}, Option{Value: "paid", Label: "Paid"}),
		Date("spent_on", "expenses.spentOn"),
		{Key: "vendor", Accessor: "vendor.name", Header: "Vendor", Kind: CellText, Sortable: true, Filterable: true, Hideable: true},
	}
}

func makeExpenses(n int) []Row {
	rows := make([]Row, 0, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		status := "draft"
		if i%2 == 0 {
			status = "paid"
		}
		rows = append(rows, expenseRow{
			ID:        fmt.Sprintf("exp-%02d", i),
			Reference: fmt.Sprintf("REF-%02d", i),
			Category:  []string{"travel", "office", "meals"}[i%3],
			Amount:    float64(i * 100),
			Status:    status,
			SpentOn:   base.AddDate(0, 0, i),
			Vendor:    &vendorRef{Name: fmt.Sprintf("Vendor %d", i%4)},
		})
	}
	return rows
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.RowID()
	}
	return out
}

func TestPaginationNavigation(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(25))
	require.NoError(t, err)

	assert.Equal(t, 3, table.PageCount())
	assert.Len(t, table.PageRows(), 10)

	table.NextPage()
	table.NextPage()
	table.PreviousPage()
	assert.Equal(t, 1, table.PageIndex())

	table.LastPage()
	assert.Equal(t, 2, table.PageIndex())
	assert.Len(t, table.PageRows(), 5)
	assert.False(t, table.CanNextPage())

	table.NextPage()
	assert.Equal(t, 2, table.PageIndex(), "next on the last page is a no-op")

	table.FirstPage()
	assert.False(t, table.CanPreviousPage())
	table.PreviousPage()
	assert.Equal(t, 0, table.PageIndex())
}

func TestPageSizeChangeKeepsFirstRow(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(60))
	require.NoError(t, err)

	table.SetPageIndex(3)
	first := table.PageRows()[0].RowID()
	table.SetPageSize(20)
	assert.Equal(t, 1, table.PageIndex())
	assert.Contains(t, ids(table.PageRows()), first)

	table.SetPageSize(7)
	assert.Equal(t, 20, table.State().PageSize, "sizes outside the offered set are ignored")
}

func TestEmptyTableHasZeroPages(t *testing.T) {
	table, err := New(expenseColumns(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, table.PageCount())
	assert.Empty(t, table.PageRows())
	table.NextPage()
	assert.Equal(t, 0, table.PageIndex())

	view := table.View(ViewOptions{})
	assert.Equal(t, 1, view.Pagination.DisplayPageCount())
	assert.Equal(t, "Page 1 of 1", view.Pagination.PageLabel)
}

func TestSearchFiltersByReference(t *testing.T) {
	rows := []Row{
		expenseRow{ID: "1", Reference: "ACME-001"},
		expenseRow{ID: "2", Reference: "globex-7"},
		expenseRow{ID: "3", Reference: "acme-002"},
		expenseRow{ID: "4", Reference: "Initech"},
	}
	table, err := New(expenseColumns(), rows, WithSearchColumn("reference"))
	require.NoError(t, err)

	require.NoError(t, table.SetSearch("acme"))
	assert.ElementsMatch(t, []string{"1", "3"}, ids(table.FilteredRows()))
	assert.Equal(t, "acme", table.SearchValue())
}

func TestSearchColumnMustBeFilterable(t *testing.T) {
	_, err := New(expenseColumns(), nil, WithSearchColumn("select"))
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = New(expenseColumns(), nil, WithSearchColumn("missing"))
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFiltersOnlyApplyToFilterableColumns(t *testing.T) {
	cols := append(expenseColumns(), Column{Key: "memo", Kind: CellText, Sortable: true})
	table, err := New(cols, makeExpenses(5))
	require.NoError(t, err)
	assert.ErrorIs(t, table.SetFilter("memo", TextFilter("x")), ErrUnknownColumn)
	assert.ErrorIs(t, table.SetFilter("select", TextFilter("x")), ErrUnknownColumn)

	values := url.Values{
		FilterParam("memo"):      {"x"},
		FilterParam("reference"): {"REF-0"},
	}
	state, err := DecodeState(values, cols)
	require.NoError(t, err)
	assert.Equal(t, map[string]FilterValue{"reference": TextFilter("REF-0")}, state.Filters)

	state.SetFilter("memo", TextFilter("x"))
	table, err = New(cols, makeExpenses(5), WithState(state))
	require.NoError(t, err)
	assert.True(t, table.State().Filter("memo").IsZero(), "restored state drops the filter")
	assert.Len(t, table.FilteredRows(), 5)
}

func TestResetClearsAllFilters(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(25))
	require.NoError(t, err)
	require.NoError(t, table.ToggleSort("amount", false))
	require.NoError(t, table.ToggleSort("amount", false))
	unfiltered := ids(table.FilteredRows())

	require.NoError(t, table.SetFilter("category", TextFilter("travel")))
	require.NoError(t, table.SetFilter("status", FilterValue{Values: []string{"paid"}}))
	assert.Less(t, len(table.FilteredRows()), 25)

	table.ResetFilters()
	assert.Equal(t, unfiltered, ids(table.FilteredRows()))
	assert.Equal(t, -1, table.State().SortDirection("amount"), "reset keeps the sort")
	assert.False(t, table.State().HasFilters())
}

func TestFilterResultIsIntersection(t *testing.T) {
	rows := makeExpenses(30)
	cols := expenseColumns()
	index := map[string]Column{}
	for _, c := range cols {
		index[c.Key] = c
	}
	category := map[string]FilterValue{"category": TextFilter("office")}
	status := map[string]FilterValue{"status": {Values: []string{"paid"}}}
	both := map[string]FilterValue{"category": category["category"], "status": status["status"]}

	a := ids(FilterRows(index, rows, category))
	b := ids(FilterRows(index, rows, status))
	got := ids(FilterRows(index, rows, both))

	var want []string
	for _, id := range a {
		for _, other := range b {
			if id == other {
				want = append(want, id)
			}
		}
	}
	assert.Equal(t, want, got)
	assert.Len(t, rows, 30, "filtering does not modify the input")
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(12))
	require.NoError(t, err)
	require.NoError(t, table.ToggleSort("category", false))

	first := ids(table.FilteredRows())
	second := ids(table.FilteredRows())
	assert.Equal(t, first, second)

	// Rows with equal categories keep their input order.
	var travel []string
	for _, r := range table.FilteredRows() {
		if r.(expenseRow).Category == "travel" {
			travel = append(travel, r.RowID())
		}
	}
	assert.Equal(t, []string{"exp-03", "exp-06", "exp-09", "exp-12"}, travel)
}

func TestToggleSortCycles(t *testing.T) {
	s := NewState()
	s.ToggleSort("amount", false)
	assert.Equal(t, 1, s.SortDirection("amount"))
	s.ToggleSort("amount", false)
	assert.Equal(t, -1, s.SortDirection("amount"))
	s.ToggleSort("amount", false)
	assert.Equal(t, 0, s.SortDirection("amount"))

	s.ToggleSort("amount", false)
	s.ToggleSort("category", true)
	assert.Equal(t, []SortSpec{{Column: "amount"}, {Column: "category"}}, s.Sorting)
	s.ToggleSort("reference", false)
	assert.Equal(t, []SortSpec{{Column: "reference"}}, s.Sorting)
}

func TestMultiKeySort(t *testing.T) {
	rows := []Row{
		MapRow{"id": "a", "category": "b", "amount": 3},
		MapRow{"id": "b", "category": "a", "amount": 2},
		MapRow{"id": "c", "category": "b", "amount": 1},
		MapRow{"id": "d", "category": "a", "amount": 9},
	}
	cols := []Column{Text("category", ""), Number("amount", "")}
	state := NewState()
	state.SetSorting([]SortSpec{{Column: "category"}, {Column: "amount", Desc: true}})

	res := Derive(cols, rows, state, nil)
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(res.Filtered))
}

func TestNumericSortUsesNumbers(t *testing.T) {
	rows := []Row{
		MapRow{"id": "1", "amount": 100},
		MapRow{"id": "2", "amount": 9},
		MapRow{"id": "3", "amount": 25.5},
	}
	state := NewState()
	state.SetSorting([]SortSpec{{Column: "amount"}})
	res := Derive([]Column{Money("amount", "")}, rows, state, nil)
	assert.Equal(t, []string{"2", "3", "1"}, ids(res.Filtered))
}

func TestMalformedRowsDoNotBreakTheTable(t *testing.T) {
	rows := []Row{
		expenseRow{ID: "1", Reference: "with vendor", Vendor: &vendorRef{Name: "Acme"}},
		expenseRow{ID: "2", Reference: "nil vendor"},
		MapRow{"id": "3", "reference": "map row"},
	}
	table, err := New(expenseColumns(), rows)
	require.NoError(t, err)

	require.NoError(t, table.ToggleSort("vendor", false))
	got := ids(table.FilteredRows())
	assert.Equal(t, "1", got[len(got)-1], "missing values sort first")

	view := table.View(ViewOptions{})
	require.Len(t, view.Rows, 3)

	require.NoError(t, table.SetFilter("vendor", TextFilter("acme")))
	assert.Equal(t, []string{"1"}, ids(table.FilteredRows()))
}

func TestSelectionByIdentity(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(25))
	require.NoError(t, err)

	table.ToggleRowSelected("exp-03")
	table.ToggleRowSelected("exp-15")
	require.NoError(t, table.SetFilter("reference", TextFilter("REF-15")))
	assert.Equal(t, []string{"exp-03", "exp-15"}, ids(table.SelectedRows()), "selection survives filtering")

	table.ToggleRowSelected("exp-03")
	assert.Equal(t, []string{"exp-15"}, ids(table.SelectedRows()))

	table.ResetFilters()
	table.SelectPage(true)
	assert.Len(t, table.SelectedRows(), 11)
	table.ClearSelection()
	assert.Empty(t, table.SelectedRows())
}

func TestSelectionCountIsWithinFilteredRows(t *testing.T) {
	rows := []Row{
		expenseRow{ID: "1", Reference: "ACME-001"},
		expenseRow{ID: "2", Reference: "globex-7"},
		expenseRow{ID: "3", Reference: "Initech"},
	}
	table, err := New(expenseColumns(), rows)
	require.NoError(t, err)
	table.ToggleRowSelected("2")
	table.ToggleRowSelected("3")

	require.NoError(t, table.SetFilter("reference", TextFilter("acme")))
	view := table.View(ViewOptions{})
	assert.Equal(t, 0, view.Pagination.SelectedRows)
	assert.Equal(t, "0 of 1 row(s) selected", view.Pagination.SelectedLabel)
	assert.Equal(t, []string{"2", "3"}, view.SelectedIDs, "bulk actions keep the hidden selection")

	table.ToggleRowSelected("1")
	view = table.View(ViewOptions{})
	assert.Equal(t, 1, view.Pagination.SelectedRows)
	assert.Equal(t, "1 of 1 row(s) selected", view.Pagination.SelectedLabel)
}

func TestSetRowsPrunesStaleState(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(25))
	require.NoError(t, err)
	table.ToggleRowSelected("exp-25")
	table.ToggleRowSelected("exp-01")
	table.LastPage()

	table.SetRows(makeExpenses(12))
	assert.Equal(t, []string{"exp-01"}, ids(table.SelectedRows()))
	assert.Equal(t, 1, table.PageIndex())
}

func TestColumnVisibility(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(3))
	require.NoError(t, err)

	require.NoError(t, table.SetColumnVisible("category", false))
	for _, c := range table.VisibleColumns() {
		assert.NotEqual(t, "category", c.Key)
	}
	assert.ErrorIs(t, table.SetColumnVisible("select", false), ErrUnknownColumn)

	require.NoError(t, table.SetColumnVisible("category", true))
	assert.Len(t, table.VisibleColumns(), len(expenseColumns()))
}

func TestValidateColumns(t *testing.T) {
	err := ValidateColumns([]Column{Text("a", ""), Text("a", "")})
	assert.ErrorIs(t, err, ErrDuplicateColumn)

	err = ValidateColumns([]Column{{Key: " ", Kind: CellText}})
	assert.ErrorIs(t, err, ErrInvalidColumn)

	err = ValidateColumns([]Column{{Key: "a"}})
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestLoadingWinsOverNoResults(t *testing.T) {
	table, err := New(expenseColumns(), nil)
	require.NoError(t, err)

	loading := table.View(ViewOptions{Loading: true})
	assert.True(t, loading.Loading)
	assert.Equal(t, "Loading...", loading.EmptyMessage)

	idle := table.View(ViewOptions{Translations: Translations{NoResults: "Tidak ada hasil."}})
	assert.False(t, idle.Loading)
	assert.Equal(t, "Tidak ada hasil.", idle.EmptyMessage)
}

func TestViewLinksCarryState(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(25), WithSearchColumn("reference"))
	require.NoError(t, err)
	table.NextPage()

	view := table.View(ViewOptions{BasePath: "/expenses"})

	var amount HeaderCell
	for _, h := range view.Headers {
		if h.Key == "amount" {
			amount = h
		}
	}
	require.True(t, amount.Sortable)
	u, err := url.Parse(amount.SortURL)
	require.NoError(t, err)
	assert.Equal(t, "/expenses", u.Path)
	assert.Equal(t, "amount", u.Query().Get(ParamSort))
	assert.Equal(t, "2", u.Query().Get(ParamPage))

	next, err := url.Parse(view.Pagination.NextURL)
	require.NoError(t, err)
	assert.Equal(t, "3", next.Query().Get(ParamPage))

	toggle, err := url.Parse(view.Rows[0].ToggleURL)
	require.NoError(t, err)
	assert.Equal(t, []string{"exp-11"}, toggle.Query()[ParamSelect])
}

func TestFormatCell(t *testing.T) {
	p := NewPrinter("en")
	assert.Equal(t, "1,234.50", FormatCell(Money("amount", ""), 1234.5, p, ViewOptions{}))
	assert.Equal(t, "12.50%", FormatCell(Percent("rate", ""), 12.5, p, ViewOptions{}))
	assert.Equal(t, "05 Mar 2024", FormatCell(Date("d", ""), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), p, ViewOptions{}))
	assert.Equal(t, "Paid", FormatCell(Badge("s", "", Option{Value: "paid", Label: "Paid"}), "PAID", p, ViewOptions{}))
	assert.Equal(t, "", FormatCell(Text("x", ""), nil, p, ViewOptions{}))
	assert.Equal(t, "n/a", FormatCell(Money("amount", ""), "n/a", p, ViewOptions{}))
}

func TestDatasetCoversAllFilteredRows(t *testing.T) {
	table, err := New(expenseColumns(), makeExpenses(25))
	require.NoError(t, err)
	require.NoError(t, table.SetColumnVisible("vendor", false))
	require.NoError(t, table.SetFilter("status", FilterValue{Values: []string{"draft"}}))

	ds := table.Dataset("Expenses", ViewOptions{})
	assert.Len(t, ds.Rows, 13)
	assert.Equal(t, []string{"expenses.reference", "expenses.category", "expenses.amount", "expenses.status", "expenses.spentOn"}, ds.Headers())
	assert.Equal(t, 100.0, ds.Rows[0][2].Value)
	assert.Equal(t, "2024-01-02", ds.Rows[0][4].PlainText())
}
