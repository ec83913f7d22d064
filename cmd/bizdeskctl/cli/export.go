package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/bizdesk/internal/app"
	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/export"
	"github.com/odyssey-erp/bizdesk/internal/i18n"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/platform/db"
	"github.com/odyssey-erp/bizdesk/report"
	"github.com/odyssey-erp/bizdesk/web"
)

// ExportOptions selects what one export writes.
type ExportOptions struct {
	Resource string
	Format   datatable.ExportFormat
	// Query is table state in the list page query syntax, e.g. sort=-amount&f.status=paid.
	Query url.Values
	// Search filters the resource search column.
	Search string
	// Sort is a comma separated sort list; a leading "-" sorts descending.
	Sort string
}

// Exporter writes list resources to files outside of a browser session.
type Exporter struct {
	Resources *listing.Registry
	Exporters *export.Registry
	Catalog   *i18n.Catalog
}

// Export writes every filtered and sorted row of a resource to w.
func (e Exporter) Export(ctx context.Context, w io.Writer, opts ExportOptions) error {
	res, err := e.Resources.Get(opts.Resource)
	if err != nil {
		return err
	}
	exporter, err := e.Exporters.Get(opts.Format)
	if err != nil {
		return err
	}
	values := url.Values{}
	for k, v := range opts.Query {
		values[k] = append([]string(nil), v...)
	}
	if opts.Sort != "" {
		values.Set(datatable.ParamSort, opts.Sort)
	}
	cols := res.ColumnSet()
	state, err := datatable.DecodeState(values, cols)
	if err != nil {
		return fmt.Errorf("table state: %w", err)
	}
	if opts.Search != "" {
		if res.SearchColumn == "" {
			return fmt.Errorf("%s has no search column", res.Name)
		}
		state.SetFilter(res.SearchColumn, datatable.FilterValue{Text: opts.Search})
	}

	rows, err := res.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", res.Name, err)
	}
	tableOpts := []datatable.TableOption{datatable.WithState(state), datatable.WithSearchColumn(res.SearchColumn)}
	viewOpts := datatable.ViewOptions{BasePath: res.Path(), Actions: res.Actions}
	title := res.TitleKey
	if e.Catalog != nil {
		tableOpts = append(tableOpts, datatable.WithLanguage(e.Catalog.Tag))
		viewOpts.Translate = e.Catalog.T
		viewOpts.Printer = e.Catalog.Printer()
		title = e.Catalog.T(res.TitleKey)
	}
	table, err := datatable.New(cols, rows, tableOpts...)
	if err != nil {
		return err
	}
	return exporter.Export(ctx, w, table.Dataset(title, viewOpts))
}

func newExportCommand(cfg *Config) *cobra.Command {
	var (
		opts   ExportOptions
		format string
		query  string
		out    string
		lang   string
	)
	cmd := &cobra.Command{
		Use:   "export <resource>",
		Short: "Write a list resource to a csv, xlsx or pdf file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Resource = args[0]
			opts.Format = datatable.ExportFormat(strings.ToLower(format))
			values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
			if err != nil {
				return fmt.Errorf("--query: %w", err)
			}
			opts.Query = values

			ctx := cmd.Context()
			pool, err := db.New(ctx, cfg.PGDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			resources, err := app.BuildResources(app.ResourceDeps{Pool: pool})
			if err != nil {
				return err
			}
			bundle, err := i18n.Load(web.Locales, "i18n", cfg.DefaultLocale)
			if err != nil {
				return err
			}
			exp := Exporter{
				Resources: resources.Registry,
				Exporters: export.NewRegistry(
					export.CSVExporter{},
					export.ExcelExporter{},
					export.NewPDFExporter(report.NewClient(cfg.GotenbergURL)),
				),
				Catalog: bundle.Match(lang),
			}

			if out == "" {
				out = export.FileName(opts.Resource, opts.Format, time.Now())
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := exp.Export(ctx, w, opts); err != nil {
				return err
			}
			if out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(datatable.ExportCSV), "csv, xlsx or pdf")
	cmd.Flags().StringVar(&opts.Search, "search", "", "filter the search column")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort columns, e.g. -amount,reference")
	cmd.Flags().StringVar(&query, "query", "", "list page query string")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, - for stdout")
	cmd.Flags().StringVar(&lang, "lang", "", "header language")
	return cmd
}
