package roles

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type memRepo struct{ roles []Role }

func (m *memRepo) List(context.Context) ([]Role, error) { return m.roles, nil }

func (m *memRepo) Delete(_ context.Context, id int64) error {
	for i, r := range m.roles {
		if r.ID != id {
			continue
		}
		if r.Users > 0 {
			return fmt.Errorf("role %d still assigned: %w", id, shared.ErrInUse)
		}
		m.roles = append(m.roles[:i], m.roles[i+1:]...)
		return nil
	}
	return shared.ErrNotFound
}

func TestRoleDeleteRefusesAssignedRoles(t *testing.T) {
	repo := &memRepo{roles: []Role{
		{ID: 1, Name: "admin", Permissions: 24, Users: 1},
		{ID: 2, Name: "auditor", Permissions: 12},
	}}
	res := Resource(repo, listing.Deps{})
	ctx := context.Background()

	err := res.Actions.Invoke(ctx, datatable.ActionDelete, "1", true)
	assert.ErrorIs(t, err, shared.ErrInUse)

	require.NoError(t, res.Actions.Invoke(ctx, datatable.ActionDelete, "2", true))
	rows, err := res.Load(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].RowID())
}

func TestRoleColumnsSortByCounts(t *testing.T) {
	rows := []datatable.Row{
		Role{ID: 1, Name: "admin", Permissions: 24},
		Role{ID: 2, Name: "viewer", Permissions: 11},
		Role{ID: 3, Name: "clerk", Permissions: 14},
	}
	tbl, err := datatable.New(Columns(nil), rows)
	require.NoError(t, err)
	require.NoError(t, tbl.ToggleSort("permissions", false))
	var ids []string
	for _, r := range tbl.FilteredRows() {
		ids = append(ids, r.RowID())
	}
	assert.Equal(t, []string{"2", "3", "1"}, ids)
}
