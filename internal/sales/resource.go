package sales

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "sales"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	customer := datatable.Text("customer", "sales.customer")
	customer.Accessor = "customer.name"
	return datatable.WithActions([]datatable.Column{
		datatable.Text("number", "sales.number"),
		customer,
		datatable.Date("saleDate", "sales.saleDate"),
		datatable.Number("quantity", "sales.quantity"),
		datatable.Money("unitPrice", "sales.unitPrice"),
		datatable.Percent("discount", "sales.discount"),
		datatable.Percent("tax", "sales.tax"),
		datatable.Money("total", "sales.total"),
		datatable.Badge("status", "sales.status", listing.StatusOptions(StatusDraft, StatusConfirmed, StatusCancelled)...),
	}, actions)
}

func Resource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "sales.title",
		SearchColumn: "number",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
		Selectable:   true,
	}
}
