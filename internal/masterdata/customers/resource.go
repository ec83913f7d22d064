package customers

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "customers"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	return datatable.WithActions([]datatable.Column{
		datatable.Text("code", "customers.code"),
		datatable.Text("name", "customers.name"),
		datatable.Text("email", "customers.email"),
		datatable.Text("phone", "customers.phone"),
		datatable.Money("creditLimit", "customers.creditLimit"),
		datatable.Badge("status", "customers.status", listing.StatusOptions("active", "inactive")...),
	}, actions)
}

func Resource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "customers.title",
		SearchColumn: "name",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
		Selectable:   true,
	}
}
