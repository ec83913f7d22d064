package listing

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

// Deps carries what entity packages need to build their resources.
type Deps struct {
	Cache *Cache
	// FormsBaseURL is where the external create/edit forms live. Empty
	// means no edit action is offered.
	FormsBaseURL string
}

// EditLink returns the edit form link template of resource, or "" when no
// forms service is configured.
func (d Deps) EditLink(resource string) string {
	if d.FormsBaseURL == "" {
		return ""
	}
	return strings.TrimRight(d.FormsBaseURL, "/") + "/" + resource + "/{id}/edit"
}

// InfoLink returns the detail page link template of resource.
func InfoLink(resource string) string {
	return "/" + resource + "/{id}"
}

// StandardActions registers info, edit (when configured) and delete.
// A nil del leaves delete out.
func (d Deps) StandardActions(resource string, del func(ctx context.Context, id int64) error) *datatable.ActionRegistry {
	reg := datatable.NewActionRegistry().
		Register(datatable.Action{Kind: datatable.ActionInfo, Link: InfoLink(resource)}).
		Register(datatable.Action{Kind: datatable.ActionEdit, Link: d.EditLink(resource)})
	if del != nil {
		reg.Register(datatable.Action{Kind: datatable.ActionDelete, Confirm: true, Destructive: true, Handler: ByID(del)})
	}
	return reg
}

// ByID adapts a handler keyed by a numeric primary key.
func ByID(fn func(ctx context.Context, id int64) error) datatable.ActionFunc {
	return func(ctx context.Context, raw string) error {
		id, err := ParseID(raw)
		if err != nil {
			return err
		}
		return fn(ctx, id)
	}
}

// ParseID parses a numeric row identity. Anything else cannot name a row.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q: %w", raw, shared.ErrNotFound)
	}
	return id, nil
}

// StatusOptions builds badge options translated under "status.".
func StatusOptions(values ...string) []datatable.Option {
	return KeyedOptions("status", values...)
}

// KeyedOptions builds badge options translated under prefix.
func KeyedOptions(prefix string, values ...string) []datatable.Option {
	out := make([]datatable.Option, 0, len(values))
	for _, v := range values {
		out = append(out, datatable.Option{Value: v, LabelKey: prefix + "." + v})
	}
	return out
}
