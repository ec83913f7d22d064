package export

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"time"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
)

// Renderer converts an HTML document into PDF bytes.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// PDFExporter renders the dataset as an HTML table and hands it to a
// Renderer (Gotenberg in production).
type PDFExporter struct {
	Renderer Renderer
	Now      func() time.Time
}

// NewPDFExporter wires a renderer.
func NewPDFExporter(r Renderer) *PDFExporter {
	return &PDFExporter{Renderer: r, Now: time.Now}
}

// Format implements Exporter.
func (*PDFExporter) Format() datatable.ExportFormat { return datatable.ExportPDF }

// ContentType implements Exporter.
func (*PDFExporter) ContentType() string { return "application/pdf" }

// Export implements Exporter.
func (p *PDFExporter) Export(ctx context.Context, w io.Writer, ds datatable.Dataset) error {
	if p == nil || p.Renderer == nil {
		return errors.New("pdf exporter not initialised")
	}
	html, err := p.HTML(ds)
	if err != nil {
		return err
	}
	pdf, err := p.Renderer.RenderHTML(ctx, html)
	if err != nil {
		return err
	}
	_, err = w.Write(pdf)
	return err
}

// HTML renders the printable document sent to the renderer.
func (p *PDFExporter) HTML(ds datatable.Dataset) (string, error) {
	now := time.Now
	if p != nil && p.Now != nil {
		now = p.Now
	}
	var buf bytes.Buffer
	err := pdfTemplate.Execute(&buf, map[string]any{
		"Dataset":     ds,
		"GeneratedAt": now().Format("02 Jan 2006 15:04"),
	})
	return buf.String(), err
}

var pdfTemplate = template.Must(template.New("pdf").Funcs(template.FuncMap{
	"numeric": func(kind datatable.CellKind) bool {
		return kind == datatable.CellMoney || kind == datatable.CellNumber || kind == datatable.CellPercent
	},
}).Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Dataset.Title}}</title>
<style>
body{font-family:sans-serif;font-size:10px;margin:24px}
h1{font-size:16px;margin:0 0 4px}
p.meta{color:#6b7280;margin:0 0 12px}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #d1d5db;padding:4px 6px;text-align:left}
th{background:#f3f4f6}
td.num{text-align:right}
</style></head>
<body>
<h1>{{.Dataset.Title}}</h1>
<p class="meta">{{.GeneratedAt}}</p>
<table>
<thead><tr>{{range .Dataset.Columns}}<th>{{.Header}}</th>{{end}}</tr></thead>
<tbody>
{{- $cols := .Dataset.Columns}}
{{- range .Dataset.Rows}}
<tr>{{range $i, $cell := .}}<td{{if numeric (index $cols $i).Kind}} class="num"{{end}}>{{$cell.Text}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</body></html>`))
