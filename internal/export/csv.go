package export

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
)

// CSVExporter writes comma separated values with a header row. Values are
// written without locale grouping so that spreadsheets can parse them.
type CSVExporter struct{}

// Format implements Exporter.
func (CSVExporter) Format() datatable.ExportFormat { return datatable.ExportCSV }

// ContentType implements Exporter.
func (CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

// Export implements Exporter.
func (CSVExporter) Export(ctx context.Context, w io.Writer, ds datatable.Dataset) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(ds.Headers()); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = cell.PlainText()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
