package listing

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/export"
	"github.com/odyssey-erp/bizdesk/internal/i18n"
	"github.com/odyssey-erp/bizdesk/internal/observability"
	"github.com/odyssey-erp/bizdesk/internal/shared"
	"github.com/odyssey-erp/bizdesk/internal/view"
)

// Idempotency claims form submission keys.
type Idempotency interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// Auditor records state changing actions.
type Auditor interface {
	Record(ctx context.Context, entries ...shared.AuditLog) error
}

// Warmer schedules a background reload of a resource after a mutation.
type Warmer interface {
	EnqueueListWarm(ctx context.Context, resource string) error
}

// Authorizer guards routes by permission.
type Authorizer interface {
	RequireAny(perms ...string) func(http.Handler) http.Handler
	RequireAll(perms ...string) func(http.Handler) http.Handler
}

// Params groups handler dependencies. Only Resources, Templates and Layout
// are required.
type Params struct {
	Logger      *slog.Logger
	Resources   *Registry
	Templates   *view.Engine
	Layout      *view.Layout
	Exporters   *export.Registry
	Cache       *Cache
	Metrics     *observability.Metrics
	Idempotency Idempotency
	Audit       Auditor
	Warmer      Warmer
	RBAC        Authorizer
	// BulkLimit bounds concurrent deletes of one bulk request.
	BulkLimit int
}

// Handler serves the list, export, detail and action routes of every
// registered resource.
type Handler struct {
	logger    *slog.Logger
	resources *Registry
	templates *view.Engine
	layout    *view.Layout
	exporters *export.Registry
	cache     *Cache
	metrics   *observability.Metrics
	idem      Idempotency
	audit     Auditor
	warmer    Warmer
	rbac      Authorizer
	bulkLimit int
	now       func() time.Time
}

// NewHandler builds a Handler.
func NewHandler(p Params) *Handler {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := p.BulkLimit
	if limit <= 0 {
		limit = 4
	}
	return &Handler{
		logger:    logger,
		resources: p.Resources,
		templates: p.Templates,
		layout:    p.Layout,
		exporters: p.Exporters,
		cache:     p.Cache,
		metrics:   p.Metrics,
		idem:      p.Idempotency,
		audit:     p.Audit,
		warmer:    p.Warmer,
		rbac:      p.RBAC,
		bulkLimit: limit,
		now:       time.Now,
	}
}

// MountRoutes registers one route tree per resource.
func (h *Handler) MountRoutes(r chi.Router) {
	for _, res := range h.resources.All() {
		res := res
		r.Route(res.Path(), func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if h.rbac != nil {
					r.Use(h.rbac.RequireAny(res.PermView()))
				}
				r.Get("/", h.list(res))
				r.Get("/export/{format}", h.export(res))
				r.Get("/{id}", h.detail(res))
			})
			r.Group(func(r chi.Router) {
				if h.rbac != nil {
					r.Use(h.rbac.RequireAll(res.PermEdit()))
				}
				r.Get("/actions/{id}/{kind}", h.confirm(res))
				r.Post("/actions/{id}/{kind}", h.invoke(res))
				r.Get("/bulk/delete", h.bulkConfirm(res))
				r.Post("/bulk/delete", h.bulkDelete(res))
			})
		})
	}
}

// Nav returns sidebar entries for every resource.
func (h *Handler) Nav() []view.NavEntry {
	var out []view.NavEntry
	for _, res := range h.resources.All() {
		out = append(out, view.NavEntry{Path: res.Path(), LabelKey: res.TitleKey})
	}
	return out
}

func (h *Handler) catalog(r *http.Request) *i18n.Catalog {
	if cat := i18n.FromContext(r.Context()); cat != nil {
		return cat
	}
	if h.layout != nil && h.layout.Bundle != nil {
		return h.layout.Bundle.Default()
	}
	return nil
}

// buildTable decodes the table state of r and builds the table over rows.
func (h *Handler) buildTable(r *http.Request, res Resource, rows []datatable.Row) (*datatable.Table, *i18n.Catalog, error) {
	cols := res.ColumnSet()
	state, err := datatable.DecodeState(r.URL.Query(), cols)
	if err != nil {
		h.logger.Debug("ignored table state", slog.String("resource", res.Name), slog.Any("error", err))
	}
	cat := h.catalog(r)
	opts := []datatable.TableOption{datatable.WithState(state), datatable.WithSearchColumn(res.SearchColumn)}
	if cat != nil {
		opts = append(opts, datatable.WithLanguage(cat.Tag))
	}
	table, err := datatable.New(cols, rows, opts...)
	return table, cat, err
}

func (h *Handler) viewOptions(res Resource, cat *i18n.Catalog, loading bool) datatable.ViewOptions {
	opts := datatable.ViewOptions{
		BasePath:     res.Path(),
		ExportBase:   res.Path() + "/export",
		ActionBase:   res.Path() + "/actions",
		Translations: cat.Table(),
		Printer:      cat.Printer(),
		Exports:      h.exporters.Formats(),
		Actions:      res.Actions,
		Loading:      loading,
	}
	if cat != nil {
		opts.Translate = cat.T
	}
	return opts
}

func (h *Handler) csrfToken(r *http.Request) string {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || h.layout == nil || h.layout.CSRF == nil {
		return ""
	}
	token, _ := h.layout.CSRF.EnsureToken(r.Context(), sess)
	return token
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, titleKey string, data any) {
	td := h.layout.Data(r, titleKey, data)
	if err := h.templates.RenderStatus(w, status, name, td); err != nil {
		h.logger.Error("render template", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) flash(r *http.Request, kind, message string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: message})
	}
}

func actorID(r *http.Request) int64 {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0
	}
	id, _ := strconv.ParseInt(strings.TrimSpace(sess.User()), 10, 64)
	return id
}

func wantsJSON(r *http.Request) bool {
	return r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json")
}

// safeReturn keeps redirects on this site.
func safeReturn(raw, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return fallback
	}
	return raw
}
