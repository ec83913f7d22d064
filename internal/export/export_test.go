package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/report"
)

func sampleDataset() datatable.Dataset {
	spent := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)
	return datatable.Dataset{
		Title: "Expenses: Q1/2024",
		Columns: []datatable.DatasetColumn{
			{Key: "reference", Header: "Reference", Kind: datatable.CellText},
			{Key: "amount", Header: "Amount", Kind: datatable.CellMoney},
			{Key: "spent_on", Header: "Spent on", Kind: datatable.CellDate},
		},
		Rows: [][]datatable.DatasetCell{
			{{Value: "EXP-1", Text: "EXP-1"}, {Value: 1234.5, Text: "1,234.50"}, {Value: spent, Text: "03 Feb 2024"}},
			{{Value: "EXP-2", Text: "EXP-2"}, {Value: nil, Text: ""}, {Value: nil, Text: ""}},
		},
	}
}

func TestCSVExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, CSVExporter{}.Export(context.Background(), buf, sampleDataset()))

	records, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Reference", "Amount", "Spent on"}, records[0])
	assert.Equal(t, []string{"EXP-1", "1234.5", "2024-02-03"}, records[1])
	assert.Equal(t, []string{"EXP-2", "", ""}, records[2])
}

func TestCSVExporterStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := CSVExporter{}.Export(ctx, &bytes.Buffer{}, sampleDataset())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExcelExporter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, ExcelExporter{}.Export(context.Background(), buf, sampleDataset()))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	assert.Equal(t, "Expenses  Q1 2024", sheet)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Reference", "Amount", "Spent on"}, rows[0])
	assert.Equal(t, "EXP-1", rows[1][0])

	raw, err := f.GetCellValue(sheet, "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234.5", raw)
}

func TestPDFExporterUsesGotenberg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/chromium/convert/html" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("unexpected parse error: %v", err)
		}
		_, _ = w.Write([]byte("PDF"))
	}))
	defer srv.Close()

	exporter := NewPDFExporter(report.NewClient(srv.URL))
	buf := &bytes.Buffer{}
	require.NoError(t, exporter.Export(context.Background(), buf, sampleDataset()))
	assert.Equal(t, "PDF", buf.String())
}

type failingRenderer struct{}

func (failingRenderer) RenderHTML(context.Context, string) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestPDFExporterPropagatesRendererError(t *testing.T) {
	err := NewPDFExporter(failingRenderer{}).Export(context.Background(), &bytes.Buffer{}, sampleDataset())
	assert.EqualError(t, err, "boom")
}

func TestPDFHTMLAlignsNumbers(t *testing.T) {
	p := &PDFExporter{Now: func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }}
	html, err := p.HTML(sampleDataset())
	require.NoError(t, err)
	assert.Contains(t, html, `<td class="num">1,234.50</td>`)
	assert.Contains(t, html, "01 Mar 2024 09:00")
	assert.Contains(t, html, "<th>Spent on</th>")
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(CSVExporter{}, nil, ExcelExporter{})
	assert.Equal(t, []datatable.ExportFormat{datatable.ExportExcel, datatable.ExportCSV}, reg.Formats())

	_, err := reg.Get(datatable.ExportPDF)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	e, err := reg.Get(datatable.ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", e.ContentType())

	var empty *Registry
	assert.Empty(t, empty.Formats())
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "expenses-20240131.xlsx", FileName("expenses", datatable.ExportExcel, now))
	assert.Equal(t, "payroll-schedules-20240131.csv", FileName("payroll/schedules", datatable.ExportCSV, now))
}
