package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

type stubRepo []Sale

func (s stubRepo) List(context.Context) ([]Sale, error) { return s, nil }
func (s stubRepo) Delete(context.Context, int64) error   { return nil }

func sale(id int64, customer string, day int, total float64) Sale {
	return Sale{
		ID:       id,
		Number:   "SO-" + customer,
		Customer: CustomerRef{ID: id, Name: customer},
		SaleDate: time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC),
		Total:    total,
		Status:   StatusConfirmed,
	}
}

func TestCustomerColumnReadsNestedName(t *testing.T) {
	res := Resource(stubRepo{sale(1, "Lestari", 1, 10), sale(2, "Maju", 2, 20)}, listing.Deps{})
	rows, err := res.Load(context.Background())
	require.NoError(t, err)

	tbl, err := datatable.New(res.ColumnSet(), rows)
	require.NoError(t, err)
	require.NoError(t, tbl.SetFilter("customer", datatable.TextFilter("maj")))
	filtered := tbl.FilteredRows()
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].RowID())
}

func TestSaleDateRangeFilter(t *testing.T) {
	rows := []datatable.Row{sale(1, "A", 1, 0), sale(2, "B", 15, 0), sale(3, "C", 28, 0)}
	tbl, err := datatable.New(Columns(nil), rows)
	require.NoError(t, err)
	require.NoError(t, tbl.SetFilter("saleDate", datatable.FilterValue{Min: "2024-03-10", Max: "2024-03-20"}))
	filtered := tbl.FilteredRows()
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].RowID())
}
