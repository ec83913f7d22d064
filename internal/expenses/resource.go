package expenses

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "expenses"

// Columns follows the expense list of the dashboard: reference, category,
// description, amount, status and date.
func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	category := datatable.Text("category", "expenses.category")
	category.Accessor = "category.name"
	return datatable.WithActions([]datatable.Column{
		datatable.Text("reference", "expenses.reference"),
		category,
		datatable.Text("description", "expenses.description"),
		datatable.Money("amount", "expenses.amount"),
		datatable.Badge("status", "expenses.status", listing.StatusOptions("draft", "approved", "paid")...),
		datatable.Date("spentOn", "expenses.spentOn"),
	}, actions)
}

func Resource(repo Repository, deps listing.Deps) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "expenses.title",
		SearchColumn: "description",
		Columns:      Columns,
		Load:         listing.Cached(deps.Cache, Name, repo.List),
		Actions:      deps.StandardActions(Name, repo.Delete),
		Selectable:   true,
		Lazy:         true,
	}
}
