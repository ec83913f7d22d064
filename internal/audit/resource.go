package audit

import (
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
)

const Name = "audit"

func Columns(actions *datatable.ActionRegistry) []datatable.Column {
	requestID := datatable.Text("requestId", "audit.requestId")
	requestID.Sortable = false
	return datatable.WithActions([]datatable.Column{
		datatable.Date("at", "audit.at"),
		datatable.Text("actor", "audit.actor"),
		datatable.Badge("action", "audit.action", listing.KeyedOptions("audit.actions",
			string(datatable.ActionDelete), string(datatable.ActionPay), string(datatable.ActionRun))...),
		datatable.Text("entity", "audit.entity"),
		datatable.Text("entityId", "audit.entityId"),
		requestID,
	}, actions)
}

// Resource lists the newest audit entries. Every row action writes one, so
// rows bypass the list cache.
func Resource(repo Repository) listing.Resource {
	return listing.Resource{
		Name:         Name,
		TitleKey:     "audit.title",
		SearchColumn: "entity",
		Columns:      Columns,
		Load:         listing.Cached(nil, Name, repo.Timeline),
		Actions: datatable.NewActionRegistry().
			Register(datatable.Action{Kind: datatable.ActionInfo, Link: listing.InfoLink(Name)}),
		Lazy: true,
	}
}
