package assets

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "assets"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	accumulated := datatable.Money("accumulated", "assets.accumulated")
	accumulated.Accessor = "accumulatedDepreciation"
	return datatable.WithActions([]datatable.Column{
		datatable.Text("code", "assets.code"),
		datatable.Text("name", "assets.name"),
		datatable.Text("category", "assets.category"),
		datatable.Date("acquiredOn", "assets.acquiredOn"),
		datatable.Money("cost", "assets.cost"),
		datatable.Number("usefulLife", "assets.usefulLife"),
		accumulated,
		datatable.Money("bookValue", "assets.bookValue"),
		datatable.Badge("status", "assets.status", listing.StatusOptions("active", "disposed")...),
	}, actions)
}

func Resource(repo Repository, svc *Service, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "assets.title",
		SearchColumn: "name",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, svc.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
		Selectable:   true,
	}
}
