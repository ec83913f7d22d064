package purchases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type memRepo struct {
	items map[int64]*Purchase
}

func (m *memRepo) List(context.Context) ([]Purchase, error) {
	out := make([]Purchase, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) MarkPaid(_ context.Context, id int64) error {
	p, ok := m.items[id]
	if !ok {
		return shared.ErrNotFound
	}
	if p.Status != StatusApproved {
		return fmt.Errorf("purchase %d is %s: %w", id, p.Status, shared.ErrInvalidState)
	}
	p.Status = StatusPaid
	return nil
}

func TestPayRequiresConfirmation(t *testing.T) {
	repo := &memRepo{items: map[int64]*Purchase{1: {ID: 1, Status: StatusApproved}}}
	res := Resource(repo, listing.Deps{})

	err := res.Actions.Invoke(context.Background(), datatable.ActionPay, "1", false)
	assert.ErrorIs(t, err, datatable.ErrConfirmationRequired)
	assert.Equal(t, StatusApproved, repo.items[1].Status)

	require.NoError(t, res.Actions.Invoke(context.Background(), datatable.ActionPay, "1", true))
	assert.Equal(t, StatusPaid, repo.items[1].Status)

	err = res.Actions.Invoke(context.Background(), datatable.ActionPay, "1", true)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestActionsColumnListsPay(t *testing.T) {
	res := Resource(&memRepo{}, listing.Deps{FormsBaseURL: "https://forms.example"})
	cols := res.ColumnSet()
	actions := cols[len(cols)-1]
	assert.Equal(t, []datatable.ActionKind{datatable.ActionInfo, datatable.ActionEdit, datatable.ActionPay, datatable.ActionDelete}, actions.Actions)
}

func TestMissingDueDateNeverMatchesDateFilter(t *testing.T) {
	due := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	rows := []datatable.Row{
		Purchase{ID: 1, Number: "PO-1", DueDate: &due},
		Purchase{ID: 2, Number: "PO-2"},
	}
	tbl, err := datatable.New(Columns(nil), rows)
	require.NoError(t, err)
	require.NoError(t, tbl.SetFilter("dueDate", datatable.FilterValue{Min: "2024-04-01"}))
	filtered := tbl.FilteredRows()
	require.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].RowID())
}
