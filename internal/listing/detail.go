package listing

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
)

// DetailField is one labelled value of the detail page.
type DetailField struct {
	Key   string
	Label string
	Kind  datatable.CellKind
	Text  string
}

// DetailPage renders every data column of a single row.
type DetailPage struct {
	Resource  string
	ID        string
	Fields    []DetailField
	Actions   []datatable.ActionLink
	BackURL   string
	BackLabel string
	CSRFToken string
}

func (h *Handler) detail(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rows, err := res.Load(r.Context())
		if err != nil {
			h.loadFailed(w, r, res, err)
			return
		}
		var row datatable.Row
		for _, candidate := range rows {
			if candidate.RowID() == id {
				row = candidate
				break
			}
		}
		if row == nil {
			http.NotFound(w, r)
			return
		}

		cat := h.catalog(r)
		opts := h.viewOptions(res, cat, false)
		p := cat.Printer()
		back := safeReturn(r.URL.Query().Get(FieldReturn), res.Path())
		page := DetailPage{Resource: res.Name, ID: id, BackURL: back, BackLabel: cat.T("detail.back")}
		for _, col := range res.ColumnSet() {
			if !col.IsData() {
				continue
			}
			value, _ := datatable.Lookup(row, col.Path())
			page.Fields = append(page.Fields, DetailField{
				Key:   col.Key,
				Label: opts.Header(col),
				Kind:  col.Kind,
				Text:  datatable.FormatCell(col, value, p, opts),
			})
		}
		tr := opts.Translations
		for _, kind := range res.Actions.Kinds() {
			a, _ := res.Actions.Lookup(kind)
			if kind == datatable.ActionInfo {
				continue
			}
			link := datatable.ActionLink{Kind: kind, Label: tr.ActionLabel(kind), Confirm: a.Confirm, Destructive: a.Destructive}
			if a.Link != "" {
				link.URL = a.LinkFor(url.PathEscape(id))
			} else {
				u := url.URL{
					Path:     res.Path() + "/actions/" + url.PathEscape(id) + "/" + string(kind),
					RawQuery: url.Values{FieldReturn: {res.Path()}}.Encode(),
				}
				link.URL = u.String()
				link.Post = !a.Confirm
			}
			page.Actions = append(page.Actions, link)
		}

		td := h.layout.Data(r, res.TitleKey, nil)
		page.CSRFToken = td.CSRFToken
		td.Data = page
		if err := h.templates.RenderStatus(w, http.StatusOK, "pages/detail.html", td); err != nil {
			h.logger.Error("render detail", slog.String("resource", res.Name), slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}
