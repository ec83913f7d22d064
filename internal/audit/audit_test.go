package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

type stubRepo struct {
	entries []Entry
	calls   int
}

func (s *stubRepo) Timeline(context.Context) ([]Entry, error) {
	s.calls++
	return s.entries, nil
}

func TestAuditTimelineIsReadOnly(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	repo := &stubRepo{entries: []Entry{
		{ID: 2, At: at, Actor: "7", Action: "pay", Entity: "purchases", EntityID: "14"},
		{ID: 1, At: at.Add(-time.Hour), Actor: SystemActor, Action: "delete", Entity: "expenses", EntityID: "3"},
	}}
	res := Resource(repo)
	_, err := listing.NewRegistry(res)
	require.NoError(t, err)

	_, ok := res.Actions.Lookup(datatable.ActionDelete)
	assert.False(t, ok)
	assert.True(t, res.Lazy)

	rows, err := res.Load(context.Background())
	require.NoError(t, err)
	_, err = res.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)

	tbl, err := datatable.New(res.ColumnSet(), rows, datatable.WithSearchColumn(res.SearchColumn))
	require.NoError(t, err)
	require.NoError(t, tbl.SetFilter("action", datatable.FilterValue{Values: []string{"pay"}}))
	filtered := tbl.FilteredRows()
	require.Len(t, filtered, 1)
	assert.Equal(t, "2", filtered[0].RowID())
}
