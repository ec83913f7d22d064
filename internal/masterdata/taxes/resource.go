package taxes

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "taxes"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	return datatable.WithActions([]datatable.Column{
		datatable.Text("code", "taxes.code"),
		datatable.Text("name", "taxes.name"),
		datatable.Percent("rate", "taxes.rate"),
		datatable.Badge("status", "taxes.status", listing.StatusOptions("active", "inactive")...),
	}, actions)
}

func Resource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "taxes.title",
		SearchColumn: "name",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
	}
}
