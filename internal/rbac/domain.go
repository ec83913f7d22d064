package rbac

import (
	"context"
	"strconv"
)

// Permission represents an atomic capability.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Roles       int    `json:"roles"`
}

// RowID implements datatable.Row.
func (p Permission) RowID() string {
	return strconv.FormatInt(p.ID, 10)
}

// PermissionSource resolves the permissions granted to a user.
type PermissionSource interface {
	EffectivePermissions(ctx context.Context, userID int64) ([]string, error)
}
