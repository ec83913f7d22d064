package listing

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/platform/httpx"
)

// ListPage is the render model of a list page and of its table fragment.
type ListPage struct {
	Resource  string
	Title     string
	View      datatable.View
	CSRFToken string
	// FragmentURL is set while the page shell waits for a lazy table.
	FragmentURL string
	// BulkDeleteURL is set when selected rows can be deleted together.
	BulkDeleteURL string
	ReturnURL     string
}

// JSONColumn describes a column of the JSON view.
type JSONColumn struct {
	Key    string             `json:"key"`
	Header string             `json:"header"`
	Kind   datatable.CellKind `json:"kind"`
}

// JSONRow is one row of the JSON view.
type JSONRow struct {
	ID       string            `json:"id"`
	Selected bool              `json:"selected,omitempty"`
	Cells    map[string]string `json:"cells"`
	Actions  []string          `json:"actions,omitempty"`
}

// JSONView is the derived table for API clients.
type JSONView struct {
	Resource  string       `json:"resource"`
	Page      int          `json:"page"`
	PageSize  int          `json:"pageSize"`
	PageCount int          `json:"pageCount"`
	Total     int          `json:"total"`
	Query     string       `json:"query"`
	Selected  []string     `json:"selected"`
	Columns   []JSONColumn `json:"columns"`
	Rows      []JSONRow    `json:"rows"`
}

func (h *Handler) list(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		partial := q.Get("partial") == "1"
		asJSON := q.Get("format") == "json"
		loading := res.Lazy && !partial && !asJSON

		var rows []datatable.Row
		if !loading {
			var err error
			rows, err = res.Load(r.Context())
			if err != nil {
				h.loadFailed(w, r, res, err)
				return
			}
		}
		table, cat, err := h.buildTable(r, res, rows)
		if err != nil {
			h.loadFailed(w, r, res, err)
			return
		}
		v := table.View(h.viewOptions(res, cat, loading))

		if asJSON {
			httpx.JSON(w, http.StatusOK, jsonView(res, v))
			return
		}

		page := ListPage{
			Resource:  res.Name,
			Title:     cat.T(res.TitleKey),
			View:      v,
			ReturnURL: stateURL(res.Path(), v.Query),
		}
		if res.Selectable && res.bulkDeletable() {
			page.BulkDeleteURL = res.Path() + "/bulk/delete"
		}
		if loading {
			fq := cloneValues(q)
			fq.Set("partial", "1")
			page.FragmentURL = (&url.URL{Path: res.Path(), RawQuery: fq.Encode()}).String()
		}

		if partial {
			page.CSRFToken = h.csrfToken(r)
			if err := h.templates.RenderStatus(w, http.StatusOK, "partials/datatable.html", page); err != nil {
				h.logger.Error("render table fragment", slog.String("resource", res.Name), slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
			return
		}
		td := h.layout.Data(r, res.TitleKey, nil)
		page.CSRFToken = td.CSRFToken
		td.Data = page
		if err := h.templates.RenderStatus(w, http.StatusOK, "pages/list.html", td); err != nil {
			h.logger.Error("render list", slog.String("resource", res.Name), slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

func (h *Handler) loadFailed(w http.ResponseWriter, r *http.Request, res Resource, err error) {
	h.logger.Error("load rows", slog.String("resource", res.Name), slog.Any("error", err))
	if wantsJSON(r) {
		httpx.RespondError(w, err)
		return
	}
	status := http.StatusInternalServerError
	if r.Context().Err() != nil {
		status = http.StatusServiceUnavailable
	}
	http.Error(w, http.StatusText(status), status)
}

func jsonView(res Resource, v datatable.View) JSONView {
	out := JSONView{
		Resource:  res.Name,
		Page:      v.Pagination.CurrentPage(),
		PageSize:  v.Pagination.PageSize,
		PageCount: v.Pagination.PageCount,
		Total:     v.Pagination.TotalRows,
		Query:     v.Query,
		Selected:  v.SelectedIDs,
		Columns:   []JSONColumn{},
		Rows:      []JSONRow{},
	}
	if out.Selected == nil {
		out.Selected = []string{}
	}
	for _, hd := range v.Headers {
		if hd.Kind == datatable.CellSelect || hd.Kind == datatable.CellActions {
			continue
		}
		out.Columns = append(out.Columns, JSONColumn{Key: hd.Key, Header: hd.Label, Kind: hd.Kind})
	}
	for _, row := range v.Rows {
		jr := JSONRow{ID: row.ID, Selected: row.Selected, Cells: make(map[string]string, len(row.Cells))}
		for _, c := range row.Cells {
			switch c.Kind {
			case datatable.CellSelect:
			case datatable.CellActions:
				for _, a := range c.Actions {
					jr.Actions = append(jr.Actions, string(a.Kind))
				}
			default:
				jr.Cells[c.Key] = c.Text
			}
		}
		out.Rows = append(out.Rows, jr)
	}
	return out
}

func stateURL(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
