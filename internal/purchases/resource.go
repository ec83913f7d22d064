package purchases

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "purchases"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	supplier := datatable.Text("supplier", "purchases.supplier")
	supplier.Accessor = "supplier.name"
	return datatable.WithActions([]datatable.Column{
		datatable.Text("number", "purchases.number"),
		supplier,
		datatable.Date("orderDate", "purchases.orderDate"),
		datatable.Date("dueDate", "purchases.dueDate"),
		datatable.Money("total", "purchases.total"),
		datatable.Badge("status", "purchases.status", listing.StatusOptions(StatusDraft, StatusApproved, StatusPaid, StatusCancelled)...),
	}, actions)
}

// Resource builds the purchase list. Besides the standard actions a
// purchase can be paid after confirmation.
func Resource(repo Repository, deps listing.Deps) listing.Resource {
	actions := deps.StandardActions(Name, repo.Delete).
		Register(datatable.Action{Kind: datatable.ActionPay, Confirm: true, Handler: listing.ByID(repo.MarkPaid)})
	return listing.Resource{
		Name:         Name,
		TitleKey:     "purchases.title",
		SearchColumn: "number",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      actions,
		Selectable:   true,
	}
}
