package listing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/i18n"
	"github.com/odyssey-erp/bizdesk/internal/platform/httpx"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

// Form fields of the confirmation form.
const (
	FieldConfirm        = "confirm"
	FieldReturn         = "return"
	FieldIdempotencyKey = "idempotency_key"
)

// ConfirmPage is the render model of an action confirmation.
type ConfirmPage struct {
	Resource       string
	Message        string
	ActionURL      string
	ReturnURL      string
	IdempotencyKey string
	ConfirmLabel   string
	CancelLabel    string
	Destructive    bool
	Selected       []string
}

func (h *Handler) confirm(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := datatable.ActionKind(chi.URLParam(r, "kind"))
		a, ok := res.Actions.Lookup(kind)
		if !ok || a.Handler == nil {
			http.NotFound(w, r)
			return
		}
		cat := h.catalog(r)
		tr := cat.Table()
		page := ConfirmPage{
			Resource:       res.Name,
			Message:        confirmMessage(cat, kind),
			ActionURL:      r.URL.Path,
			ReturnURL:      safeReturn(r.URL.Query().Get(FieldReturn), res.Path()),
			IdempotencyKey: uuid.NewString(),
			ConfirmLabel:   tr.ActionLabel(kind),
			CancelLabel:    tr.Actions.Cancel,
			Destructive:    a.Destructive,
		}
		h.render(w, r, http.StatusOK, "pages/confirm.html", "confirm.title", page)
	}
}

func confirmMessage(cat *i18n.Catalog, kind datatable.ActionKind) string {
	if kind == datatable.ActionDelete {
		return cat.Table().Actions.DeleteConfirm
	}
	key := "confirm." + string(kind)
	if cat.Has(key) {
		return cat.T(key)
	}
	return cat.T("confirm.title")
}

func (h *Handler) invoke(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		kind := datatable.ActionKind(chi.URLParam(r, "kind"))
		id := chi.URLParam(r, "id")
		ret := safeReturn(r.FormValue(FieldReturn), res.Path())
		confirmed := r.PostFormValue(FieldConfirm) == "1"

		err := h.runAction(r, res, kind, id, confirmed, r.PostFormValue(FieldIdempotencyKey))
		if wantsJSON(r) {
			h.respondActionJSON(w, err)
			return
		}
		switch {
		case errors.Is(err, datatable.ErrActionUnavailable):
			http.NotFound(w, r)
			return
		case errors.Is(err, datatable.ErrConfirmationRequired):
			u := url.URL{Path: r.URL.Path, RawQuery: url.Values{FieldReturn: {ret}}.Encode()}
			http.Redirect(w, r, u.String(), http.StatusSeeOther)
			return
		case err != nil:
			h.flash(r, "error", h.errorMessage(r, res, kind, id, err))
		default:
			h.flash(r, "success", successMessage(h.catalog(r), kind))
		}
		http.Redirect(w, r, ret, http.StatusSeeOther)
	}
}

// runAction claims the idempotency key, invokes the handler and runs the
// post-mutation hooks. A failed action releases its key so it can be retried.
func (h *Handler) runAction(r *http.Request, res Resource, kind datatable.ActionKind, id string, confirmed bool, key string) error {
	ctx := r.Context()
	if key != "" && h.idem != nil {
		if err := h.idem.CheckAndInsert(ctx, key, "listing."+res.Name+"."+string(kind)); err != nil {
			h.metrics.TableAction(res.Name, string(kind), statusOf(err))
			return err
		}
	}
	err := res.Actions.Invoke(ctx, kind, id, confirmed)
	h.metrics.TableAction(res.Name, string(kind), statusOf(err))
	if err != nil {
		if key != "" && h.idem != nil {
			if derr := h.idem.Delete(context.WithoutCancel(ctx), key); derr != nil {
				h.logger.Warn("release idempotency key", slog.String("resource", res.Name), slog.Any("error", derr))
			}
		}
		return err
	}
	h.afterMutation(r, res, kind, []string{id})
	return nil
}

func (h *Handler) afterMutation(r *http.Request, res Resource, kind datatable.ActionKind, ids []string) {
	ctx := context.WithoutCancel(r.Context())
	if h.audit != nil && len(ids) > 0 {
		actor, at := actorID(r), h.now()
		meta := map[string]any{"request_id": middleware.GetReqID(r.Context())}
		entries := make([]shared.AuditLog, 0, len(ids))
		for _, id := range ids {
			entries = append(entries, shared.AuditLog{
				ActorID:  actor,
				Action:   string(kind),
				Entity:   res.Name,
				EntityID: id,
				Meta:     meta,
				At:       at,
			})
		}
		if err := h.audit.Record(ctx, entries...); err != nil {
			h.logger.Warn("audit record", slog.String("resource", res.Name), slog.Int("rows", len(ids)), slog.Any("error", err))
		}
	}
	if err := h.cache.Bump(ctx, res.Name); err != nil {
		h.logger.Warn("bump list cache", slog.String("resource", res.Name), slog.Any("error", err))
	}
	if h.warmer != nil {
		if err := h.warmer.EnqueueListWarm(ctx, res.Name); err != nil {
			h.logger.Warn("enqueue list warm", slog.String("resource", res.Name), slog.Any("error", err))
		}
	}
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, shared.ErrIdempotencyConflict), errors.Is(err, shared.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, shared.ErrInvalidState), errors.Is(err, shared.ErrInUse):
		return "rejected"
	case errors.Is(err, datatable.ErrConfirmationRequired):
		return "unconfirmed"
	case errors.Is(err, datatable.ErrActionUnavailable):
		return "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

func successMessage(cat *i18n.Catalog, kind datatable.ActionKind) string {
	switch kind {
	case datatable.ActionDelete:
		return cat.T("flash.deleted")
	case datatable.ActionPay:
		return cat.T("flash.paid")
	case datatable.ActionRun:
		return cat.T("flash.runQueued")
	default:
		return cat.T("flash.done")
	}
}

// expectedFailure reports errors caused by the row's state or a repeated
// request rather than by the system.
func expectedFailure(err error) bool {
	return errors.Is(err, shared.ErrInUse) ||
		errors.Is(err, shared.ErrNotFound) ||
		errors.Is(err, shared.ErrInvalidState) ||
		errors.Is(err, shared.ErrDuplicate) ||
		errors.Is(err, shared.ErrIdempotencyConflict)
}

// errorMessage translates an action failure for the flash and logs the
// unexpected ones.
func (h *Handler) errorMessage(r *http.Request, res Resource, kind datatable.ActionKind, id string, err error) string {
	cat := h.catalog(r)
	switch {
	case errors.Is(err, shared.ErrIdempotencyConflict), errors.Is(err, shared.ErrDuplicate):
		return cat.T("flash.duplicate")
	case errors.Is(err, shared.ErrInUse):
		return cat.T("flash.inUse")
	case errors.Is(err, shared.ErrInvalidState):
		return cat.T("flash.invalidState")
	case errors.Is(err, shared.ErrNotFound):
		return cat.T("flash.notFound")
	}
	h.logger.Error("row action failed",
		slog.String("resource", res.Name),
		slog.String("action", string(kind)),
		slog.String("id", id),
		slog.Any("error", err))
	return cat.T("flash.actionFailed")
}

func (h *Handler) respondActionJSON(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, datatable.ErrActionUnavailable):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, datatable.ErrConfirmationRequired), errors.Is(err, datatable.ErrInvalidRowID):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unprocessable", err.Error())
	default:
		if !expectedFailure(err) {
			h.logger.Error("row action failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
	}
}

// BulkResult counts the outcome of a bulk delete.
type BulkResult struct {
	Deleted int
	Failed  int
}

func (h *Handler) bulkConfirm(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !res.bulkDeletable() {
			http.NotFound(w, r)
			return
		}
		ret := safeReturn(r.URL.Query().Get(FieldReturn), res.Path())
		selected := r.URL.Query()[datatable.ParamSelect]
		if len(selected) == 0 {
			h.flash(r, "error", h.catalog(r).T("flash.nothingSelected"))
			http.Redirect(w, r, ret, http.StatusSeeOther)
			return
		}
		cat := h.catalog(r)
		tr := cat.Table()
		page := ConfirmPage{
			Resource:       res.Name,
			Message:        cat.T("confirm.bulkDelete"),
			ActionURL:      r.URL.Path,
			ReturnURL:      ret,
			IdempotencyKey: uuid.NewString(),
			ConfirmLabel:   tr.Actions.DeleteChosen,
			CancelLabel:    tr.Actions.Cancel,
			Destructive:    true,
			Selected:       selected,
		}
		h.render(w, r, http.StatusOK, "pages/confirm.html", "confirm.title", page)
	}
}

func (h *Handler) bulkDelete(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if !res.bulkDeletable() {
			http.NotFound(w, r)
			return
		}
		cat := h.catalog(r)
		ret := safeReturn(r.PostFormValue(FieldReturn), res.Path())
		ids := uniqueIDs(r.PostForm[datatable.ParamSelect])
		if len(ids) == 0 {
			h.flash(r, "error", cat.T("flash.nothingSelected"))
			http.Redirect(w, r, withoutSelection(ret), http.StatusSeeOther)
			return
		}
		if r.PostFormValue(FieldConfirm) != "1" {
			u := url.URL{Path: r.URL.Path, RawQuery: url.Values{FieldReturn: {ret}, datatable.ParamSelect: ids}.Encode()}
			http.Redirect(w, r, u.String(), http.StatusSeeOther)
			return
		}
		key := r.PostFormValue(FieldIdempotencyKey)
		if key != "" && h.idem != nil {
			if err := h.idem.CheckAndInsert(r.Context(), key, "listing."+res.Name+".bulk"); err != nil {
				h.flash(r, "error", h.errorMessage(r, res, datatable.ActionDelete, "", err))
				http.Redirect(w, r, ret, http.StatusSeeOther)
				return
			}
		}

		result, deleted := h.deleteAll(r.Context(), res, ids)
		if len(deleted) > 0 {
			h.afterMutation(r, res, datatable.ActionDelete, deleted)
		}
		if result.Deleted == 0 && key != "" && h.idem != nil {
			_ = h.idem.Delete(context.WithoutCancel(r.Context()), key)
		}
		if wantsJSON(r) {
			httpx.JSON(w, http.StatusOK, result)
			return
		}
		if result.Failed == 0 {
			h.flash(r, "success", cat.T("flash.bulkDeleted"))
		} else {
			h.flash(r, "error", cat.T("flash.bulkPartial"))
		}
		http.Redirect(w, r, withoutSelection(ret), http.StatusSeeOther)
	}
}

// deleteAll runs the delete handler for every id with bounded concurrency.
// A failure does not stop the remaining deletes.
func (h *Handler) deleteAll(ctx context.Context, res Resource, ids []string) (BulkResult, []string) {
	var okCount, failCount atomic.Int64
	done := make([]bool, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.bulkLimit)
	for i, id := range ids {
		g.Go(func() error {
			err := res.Actions.Invoke(gctx, datatable.ActionDelete, id, true)
			h.metrics.TableAction(res.Name, string(datatable.ActionDelete), statusOf(err))
			if err != nil {
				failCount.Add(1)
				if !expectedFailure(err) {
					h.logger.Error("bulk delete", slog.String("resource", res.Name), slog.String("id", id), slog.Any("error", err))
				}
				return nil
			}
			okCount.Add(1)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()
	var deleted []string
	for i, ok := range done {
		if ok {
			deleted = append(deleted, ids[i])
		}
	}
	return BulkResult{Deleted: int(okCount.Load()), Failed: int(failCount.Load())}, deleted
}

func uniqueIDs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, id := range raw {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// withoutSelection drops the sel parameters from a list URL.
func withoutSelection(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	q.Del(datatable.ParamSelect)
	u.RawQuery = q.Encode()
	return u.String()
}
