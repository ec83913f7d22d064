package rbac

import (
	"context"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const ResourceName = "permissions"

// PermissionLister is satisfied by Service.
type PermissionLister interface {
	ListPermissions(ctx context.Context) ([]Permission, error)
}

func PermissionColumns(actions *datatable.ActionRegistry) []datatable.Column {
	description := datatable.Text("description", "permissions.description")
	description.Sortable = false
	return datatable.WithActions([]datatable.Column{
		datatable.Text("name", "permissions.name"),
		description,
		datatable.Number("roles", "permissions.roles"),
	}, actions)
}

// PermissionsResource is the read-only permission list. Roles are granted
// in the identity service, so only the detail view is offered.
func PermissionsResource(src PermissionLister, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         ResourceName,
		TitleKey:     "permissions.title",
		SearchColumn: "name",
		Columns:      PermissionColumns,
		Load:         listing.Cached(deps.Cache, ResourceName, src.ListPermissions),
		Actions: datatable.NewActionRegistry().
			Register(datatable.Action{Kind: datatable.ActionInfo, Link: listing.InfoLink(ResourceName)}),
	}
}
