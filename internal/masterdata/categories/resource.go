package categories

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "categories"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	description := datatable.Text("description", "categories.description")
	description.Sortable = false
	return datatable.WithActions([]datatable.Column{
		datatable.Text("name", "categories.name"),
		datatable.Badge("kind", "categories.kind", listing.KeyedOptions("kind", KindExpense, KindProduct, KindAsset)...),
		description,
	}, actions)
}

func Resource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "categories.title",
		SearchColumn: "name",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
		Selectable:   true,
	}
}
