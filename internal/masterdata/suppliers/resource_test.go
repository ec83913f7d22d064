package suppliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type fakeRepo struct {
	items   []Supplier
	deleted []int64
}

func (f *fakeRepo) List(context.Context) ([]Supplier, error) { return f.items, nil }

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	for i, s := range f.items {
		if s.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return shared.ErrNotFound
}

func TestResourceRegisters(t *testing.T) {
	repo := &fakeRepo{items: []Supplier{
		{ID: 1, Code: "SUP-001", Name: "Bina Karya", City: "Bandung", Status: "active"},
		{ID: 2, Code: "SUP-002", Name: "Anugrah", City: "Jakarta", Status: "inactive"},
	}}
	res := Resource(repo, listing.Deps{})
	reg, err := listing.NewRegistry(res)
	require.NoError(t, err)

	got, err := reg.Get(Name)
	require.NoError(t, err)
	rows, err := got.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].RowID())

	cols := got.ColumnSet()
	assert.Equal(t, datatable.SelectColumnKey, cols[0].Key)
	assert.Equal(t, datatable.ActionsColumnKey, cols[len(cols)-1].Key)
	assert.Equal(t, []datatable.ActionKind{datatable.ActionInfo, datatable.ActionDelete}, cols[len(cols)-1].Actions)
}

func TestDeleteActionParsesID(t *testing.T) {
	repo := &fakeRepo{items: []Supplier{{ID: 9, Name: "Sinar"}}}
	res := Resource(repo, listing.Deps{})

	err := res.Actions.Invoke(context.Background(), datatable.ActionDelete, "9", true)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, repo.deleted)

	err = res.Actions.Invoke(context.Background(), datatable.ActionDelete, "9", true)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStatusBadgeFilter(t *testing.T) {
	rows := []datatable.Row{
		Supplier{ID: 1, Name: "A", Status: "active"},
		Supplier{ID: 2, Name: "B", Status: "inactive"},
	}
	tbl, err := datatable.New(Columns(nil), rows, datatable.WithSearchColumn("name"))
	require.NoError(t, err)
	require.NoError(t, tbl.SetFilter("status", datatable.FilterValue{Values: []string{"inactive"}}))
	filtered := tbl.FilteredRows()
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].RowID())
}
