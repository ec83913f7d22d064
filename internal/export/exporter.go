// Package export writes table datasets as downloadable files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
)

// ErrUnsupportedFormat indicates no exporter is configured for a format.
var ErrUnsupportedFormat = errors.New("export: unsupported format")

// Exporter renders a dataset in one file format.
type Exporter interface {
	Format() datatable.ExportFormat
	ContentType() string
	Export(ctx context.Context, w io.Writer, ds datatable.Dataset) error
}

// Registry holds the configured exporters keyed by format.
type Registry struct {
	exporters map[datatable.ExportFormat]Exporter
}

// NewRegistry builds a registry; nil exporters are skipped so that an
// unconfigured format simply disappears from the toolbar.
func NewRegistry(exporters ...Exporter) *Registry {
	r := &Registry{exporters: make(map[datatable.ExportFormat]Exporter)}
	for _, e := range exporters {
		if e == nil {
			continue
		}
		r.exporters[e.Format()] = e
	}
	return r
}

// Formats lists configured formats in menu order.
func (r *Registry) Formats() []datatable.ExportFormat {
	if r == nil {
		return nil
	}
	var out []datatable.ExportFormat
	for _, f := range datatable.ExportFormats {
		if _, ok := r.exporters[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Get returns the exporter of a format.
func (r *Registry) Get(format datatable.ExportFormat) (Exporter, error) {
	if r != nil {
		if e, ok := r.exporters[format]; ok {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// FileName builds the download name, e.g. expenses-20240131.xlsx.
func FileName(resource string, format datatable.ExportFormat, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, resource)
	if name == "" {
		name = "export"
	}
	return fmt.Sprintf("%s-%s.%s", name, now.Format("20060102"), format)
}
