package cli

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/export"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/masterdata/taxes"
)

type taxRepo []taxes.Tax

func (r taxRepo) List(context.Context) ([]taxes.Tax, error) { return r, nil }
func (r taxRepo) Delete(context.Context, int64) error       { return nil }

func testExporter(t *testing.T) Exporter {
	t.Helper()
	reg, err := listing.NewRegistry(taxes.Resource(taxRepo{
		{ID: 1, Code: "PPN", Name: "VAT", Rate: 11, Status: "active"},
		{ID: 2, Code: "PPH", Name: "Income tax", Rate: 2.5, Status: "active"},
		{ID: 3, Code: "OLD", Name: "Luxury", Rate: 20, Status: "inactive"},
	}, listing.Deps{}))
	require.NoError(t, err)
	return Exporter{Resources: reg, Exporters: export.NewRegistry(export.CSVExporter{})}
}

func csvLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestExportSortsEveryRow(t *testing.T) {
	var buf bytes.Buffer
	err := testExporter(t).Export(context.Background(), &buf, ExportOptions{
		Resource: taxes.Name,
		Format:   datatable.ExportCSV,
		Sort:     "-rate",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"taxes.code,taxes.name,taxes.rate,taxes.status",
		"OLD,Luxury,20,inactive",
		"PPN,VAT,11,active",
		"PPH,Income tax,2.5,active",
	}, csvLines(&buf))
}

func TestExportSearchAndQueryFilters(t *testing.T) {
	var buf bytes.Buffer
	err := testExporter(t).Export(context.Background(), &buf, ExportOptions{
		Resource: taxes.Name,
		Format:   datatable.ExportCSV,
		Search:   "vat",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"taxes.code,taxes.name,taxes.rate,taxes.status", "PPN,VAT,11,active"}, csvLines(&buf))

	buf.Reset()
	err = testExporter(t).Export(context.Background(), &buf, ExportOptions{
		Resource: taxes.Name,
		Format:   datatable.ExportCSV,
		Query:    url.Values{datatable.FilterParam("status"): {"inactive"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"taxes.code,taxes.name,taxes.rate,taxes.status", "OLD,Luxury,20,inactive"}, csvLines(&buf))
}

func TestExportErrors(t *testing.T) {
	exp := testExporter(t)
	ctx := context.Background()
	var buf bytes.Buffer

	err := exp.Export(ctx, &buf, ExportOptions{Resource: "nope", Format: datatable.ExportCSV})
	assert.ErrorIs(t, err, listing.ErrResourceNotFound)

	err = exp.Export(ctx, &buf, ExportOptions{Resource: taxes.Name, Format: datatable.ExportPDF})
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)

	err = exp.Export(ctx, &buf, ExportOptions{Resource: taxes.Name, Format: datatable.ExportCSV, Sort: "bogus"})
	assert.ErrorIs(t, err, datatable.ErrUnknownColumn)
	assert.Zero(t, buf.Len())
}
