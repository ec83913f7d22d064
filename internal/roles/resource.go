package roles

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "roles"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	description := datatable.Text("description", "roles.description")
	description.Sortable = false
	return datatable.WithActions([]datatable.Column{
		datatable.Text("name", "roles.name"),
		description,
		datatable.Number("permissions", "roles.permissions"),
		datatable.Number("users", "roles.users"),
	}, actions)
}

func Resource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "roles.title",
		SearchColumn: "name",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
	}
}
