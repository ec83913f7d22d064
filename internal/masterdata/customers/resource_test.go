package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type stubRepo struct {
	items []Customer
	err   error
}

func (s stubRepo) List(context.Context) ([]Customer, error) { return s.items, s.err }
func (s stubRepo) Delete(context.Context, int64) error       { return shared.ErrInUse }

func TestCreditLimitRangeFilter(t *testing.T) {
	repo := stubRepo{items: []Customer{
		{ID: 1, Name: "Toko Maju", CreditLimit: 5_000_000},
		{ID: 2, Name: "CV Sentosa", CreditLimit: 25_000_000},
		{ID: 3, Name: "PT Lestari", CreditLimit: 100_000_000},
	}}
	res := Resource(repo, listing.Deps{FormsBaseURL: "https://forms.example"})
	rows, err := res.Load(context.Background())
	require.NoError(t, err)

	tbl, err := datatable.New(res.ColumnSet(), rows, datatable.WithSearchColumn(res.SearchColumn))
	require.NoError(t, err)
	require.NoError(t, tbl.SetFilter("creditLimit", datatable.FilterValue{Min: "10000000", Max: "50000000"}))
	filtered := tbl.FilteredRows()
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].RowID())
}

func TestDeleteSurfacesInUse(t *testing.T) {
	res := Resource(stubRepo{}, listing.Deps{})
	err := res.Actions.Invoke(context.Background(), datatable.ActionDelete, "4", true)
	assert.ErrorIs(t, err, shared.ErrInUse)
}

func TestEditLinkUsesFormsService(t *testing.T) {
	res := Resource(stubRepo{}, listing.Deps{FormsBaseURL: "https://forms.example"})
	edit, ok := res.Actions.Lookup(datatable.ActionEdit)
	require.True(t, ok)
	assert.Equal(t, "https://forms.example/customers/12/edit", edit.LinkFor("12"))
}
