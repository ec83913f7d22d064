package suppliers

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "suppliers"

// Columns lists the supplier table columns.
func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	return datatable.WithActions([]datatable.Column{
		datatable.Text("code", "suppliers.code"),
		datatable.Text("name", "suppliers.name"),
		datatable.Text("email", "suppliers.email"),
		datatable.Text("phone", "suppliers.phone"),
		datatable.Text("city", "suppliers.city"),
		datatable.Badge("status", "suppliers.status", listing.StatusOptions("active", "inactive")...),
	}, actions)
}

// Resource builds the supplier list page.
func Resource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "suppliers.title",
		SearchColumn: "name",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
		Selectable:   true,
	}
}
