package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

// ErrResourceNotFound is returned for unknown resource names.
var ErrResourceNotFound = errors.New("listing: resource not found")

// Resource describes one list page: where its rows come from, which columns
// show them and which row actions apply.
type Resource struct {
	// Name is the URL segment, metrics label and permission prefix.
	Name string
	// TitleKey is the translation key of the page heading.
	TitleKey string
	// SearchColumn is the column the toolbar search box filters.
	SearchColumn string
	// Columns builds the column set. The registry is passed so the
	// actions column lists only registered kinds.
	Columns func(actions *datatable.ActionRegistry) []datatable.Column
	// Load fetches every row of the resource. Its order is the order of an
	// unsorted table.
	Load Loader
	// Actions holds the row action handlers. Shared across requests.
	Actions *datatable.ActionRegistry
	// Selectable adds the selection column and the bulk delete form.
	Selectable bool
	// Lazy renders the page shell first and fetches the table fragment.
	Lazy bool
}

// Path is the mount path of the resource.
func (r Resource) Path() string {
	return "/" + r.Name
}

// ColumnSet returns the resource columns, with the selection column first
// when the resource is selectable.
func (r Resource) ColumnSet() []datatable.Column {
	var cols []datatable.Column
	if r.Columns != nil {
		cols = r.Columns(r.Actions)
	}
	if r.Selectable && r.bulkDeletable() {
		cols = append([]datatable.Column{datatable.SelectColumn()}, cols...)
	}
	return cols
}

func (r Resource) bulkDeletable() bool {
	a, ok := r.Actions.Lookup(datatable.ActionDelete)
	return ok && a.Handler != nil
}

// PermView is the permission guarding the read routes.
func (r Resource) PermView() string { return shared.PermView(r.Name) }

// PermEdit is the permission guarding the row actions.
func (r Resource) PermEdit() string { return shared.PermEdit(r.Name) }

func (r Resource) validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.ContainsAny(r.Name, "/?#") {
		return fmt.Errorf("listing: invalid resource name %q", r.Name)
	}
	if r.Load == nil {
		return fmt.Errorf("listing: resource %s has no loader", r.Name)
	}
	if r.Columns == nil {
		return fmt.Errorf("listing: resource %s has no columns", r.Name)
	}
	_, err := datatable.New(r.ColumnSet(), nil, datatable.WithSearchColumn(r.SearchColumn))
	return err
}

// Registry keeps resources in navigation order.
type Registry struct {
	order []string
	byKey map[string]Resource
}

// NewRegistry validates and registers resources.
func NewRegistry(resources ...Resource) (*Registry, error) {
	reg := &Registry{byKey: make(map[string]Resource, len(resources))}
	for _, res := range resources {
		if err := res.validate(); err != nil {
			return nil, err
		}
		if _, dup := reg.byKey[res.Name]; dup {
			return nil, fmt.Errorf("listing: duplicate resource %s", res.Name)
		}
		reg.order = append(reg.order, res.Name)
		reg.byKey[res.Name] = res
	}
	return reg, nil
}

// Get returns a resource by name.
func (r *Registry) Get(name string) (Resource, error) {
	if r == nil {
		return Resource{}, ErrResourceNotFound
	}
	res, ok := r.byKey[name]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %s", ErrResourceNotFound, name)
	}
	return res, nil
}

// All returns resources in registration order.
func (r *Registry) All() []Resource {
	if r == nil {
		return nil
	}
	out := make([]Resource, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byKey[name])
	}
	return out
}

// Names returns resource names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Warm loads every row of resource, filling the cache on the way.
func (r *Registry) Warm(ctx context.Context, name string) (int, error) {
	res, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	rows, err := res.Load(ctx)
	return len(rows), err
}
