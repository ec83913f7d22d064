package datatable

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ActionKind identifies a row action in the actions menu.
type ActionKind string

const (
	ActionInfo   ActionKind = "info"
	ActionEdit   ActionKind = "edit"
	ActionRun    ActionKind = "run"
	ActionPay    ActionKind = "pay"
	ActionDelete ActionKind = "delete"
)

// menuOrder fixes the order actions appear in regardless of registration order.
var menuOrder = []ActionKind{ActionInfo, ActionEdit, ActionRun, ActionPay, ActionDelete}

// ActionFunc performs a row action. The context carries the values of the
// first caller but not its cancellation, because one call may serve several
// callers. Each caller stops waiting when its own context is done.
type ActionFunc func(ctx context.Context, id string) error

// Action describes one registered row action.
type Action struct {
	Kind ActionKind
	// Handler performs the action. Actions without a handler but with Link
	// are plain navigation (edit forms, detail pages).
	Handler ActionFunc
	// Link is a URL template where "{id}" is replaced by the row identity.
	Link string
	// Confirm requires an explicit confirmation step before Handler runs.
	Confirm bool
	// Destructive marks the control for warning styling.
	Destructive bool
	// LabelKey is the translation key of the menu label.
	LabelKey string
}

// ActionRegistry maps action kinds to handlers for one resource. Rendering
// looks handlers up by kind; column definitions only carry the kinds.
type ActionRegistry struct {
	actions map[ActionKind]Action
	flight  singleflight.Group
}

// NewActionRegistry returns an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[ActionKind]Action)}
}

// Register adds or replaces an action. Actions with neither a handler nor a
// link are ignored so that an omitted callback never renders a control.
func (r *ActionRegistry) Register(a Action) *ActionRegistry {
	if r == nil || a.Kind == "" || (a.Handler == nil && a.Link == "") {
		return r
	}
	if a.LabelKey == "" {
		a.LabelKey = "actions." + string(a.Kind)
	}
	r.actions[a.Kind] = a
	return r
}

// Lookup returns the action registered for kind.
func (r *ActionRegistry) Lookup(kind ActionKind) (Action, bool) {
	if r == nil {
		return Action{}, false
	}
	a, ok := r.actions[kind]
	return a, ok
}

// Kinds lists registered kinds in menu order.
func (r *ActionRegistry) Kinds() []ActionKind {
	if r == nil {
		return nil
	}
	kinds := make([]ActionKind, 0, len(r.actions))
	for _, k := range menuOrder {
		if _, ok := r.actions[k]; ok {
			kinds = append(kinds, k)
		}
	}
	var extra []ActionKind
	for k := range r.actions {
		if !slices.Contains(menuOrder, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(kinds, extra...)
}

// LinkFor expands the action link for a row, or returns "" for handler actions.
func (a Action) LinkFor(id string) string {
	if a.Link == "" {
		return ""
	}
	return strings.ReplaceAll(a.Link, "{id}", id)
}

// Invoke runs the handler of kind for row id. Destructive actions require
// confirmed to be true. Concurrent invocations for the same kind and row
// share a single handler call, so a double submission performs the action
// once. A caller that goes away returns its context error without
// cancelling the call for the callers still waiting on it.
func (r *ActionRegistry) Invoke(ctx context.Context, kind ActionKind, id string, confirmed bool) error {
	a, ok := r.Lookup(kind)
	if !ok || a.Handler == nil {
		return fmt.Errorf("%w: %s", ErrActionUnavailable, kind)
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidRowID
	}
	if a.Confirm && !confirmed {
		return ErrConfirmationRequired
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	shared := context.WithoutCancel(ctx)
	ch := r.flight.DoChan(string(kind)+":"+id, func() (any, error) {
		return nil, a.Handler(shared, id)
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}
