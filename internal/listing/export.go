package listing

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/export"
)

// export streams every filtered and sorted row of the visible data columns
// in the requested format.
func (h *Handler) export(res Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := datatable.ExportFormat(chi.URLParam(r, "format"))
		exporter, err := h.exporters.Get(format)
		if err != nil {
			if errors.Is(err, export.ErrUnsupportedFormat) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		rows, err := res.Load(r.Context())
		if err != nil {
			h.loadFailed(w, r, res, err)
			return
		}
		table, cat, err := h.buildTable(r, res, rows)
		if err != nil {
			h.loadFailed(w, r, res, err)
			return
		}
		ds := table.Dataset(cat.T(res.TitleKey), h.viewOptions(res, cat, false))

		var buf bytes.Buffer
		if err := exporter.Export(r.Context(), &buf, ds); err != nil {
			h.logger.Error("export table",
				slog.String("resource", res.Name),
				slog.String("format", string(format)),
				slog.Any("error", err))
			h.flash(r, "error", cat.T("flash.exportFailed"))
			http.Redirect(w, r, stateURL(res.Path(), datatable.EncodeState(table.State()).Encode()), http.StatusSeeOther)
			return
		}
		h.metrics.TableExport(res.Name, string(format))

		name := export.FileName(res.Name, format, h.now())
		w.Header().Set("Content-Type", exporter.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
