package export

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
)

const maxSheetName = 31

// ExcelExporter writes an .xlsx workbook with one sheet. Numbers and dates
// are stored as typed cells with a display format.
type ExcelExporter struct{}

// Format implements Exporter.
func (ExcelExporter) Format() datatable.ExportFormat { return datatable.ExportExcel }

// ContentType implements Exporter.
func (ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export implements Exporter.
func (ExcelExporter) Export(ctx context.Context, w io.Writer, ds datatable.Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := sheetName(ds.Title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	for i, col := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
	}
	if len(ds.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(ds.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, styles.header); err != nil {
			return err
		}
	}

	widths := make([]int, len(ds.Columns))
	for i, col := range ds.Columns {
		widths[i] = utf8.RuneCountInString(col.Header)
	}

	for r, row := range ds.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			kind := ds.Columns[c].Kind
			if err := f.SetCellValue(sheet, cell, excelValue(kind, value)); err != nil {
				return err
			}
			if style := styles.forKind(kind, value); style != 0 {
				if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
					return err
				}
			}
			if n := utf8.RuneCountInString(value.Text); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(min(width+2, 60))); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	return f.Write(w)
}

type sheetStyles struct {
	header  int
	money   int
	number  int
	percent int
	date    int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	dateFmt := "yyyy-mm-dd"
	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E5E7EB"}},
	}); err != nil {
		return s, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{NumFmt: 4}); err != nil {
		return s, err
	}
	if s.number, err = f.NewStyle(&excelize.Style{NumFmt: 3}); err != nil {
		return s, err
	}
	if s.percent, err = f.NewStyle(&excelize.Style{NumFmt: 10}); err != nil {
		return s, err
	}
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return s, err
	}
	return s, nil
}

func (s sheetStyles) forKind(kind datatable.CellKind, cell datatable.DatasetCell) int {
	switch cell.Value.(type) {
	case float64:
		switch kind {
		case datatable.CellMoney:
			return s.money
		case datatable.CellPercent:
			return s.percent
		case datatable.CellNumber:
			return s.number
		}
	case time.Time:
		return s.date
	}
	return 0
}

func excelValue(kind datatable.CellKind, cell datatable.DatasetCell) any {
	switch v := cell.Value.(type) {
	case nil:
		return ""
	case float64:
		if kind == datatable.CellPercent {
			return v / 100
		}
		if kind == datatable.CellText || kind == datatable.CellBadge {
			return cell.Text
		}
		return v
	case time.Time:
		return v
	case bool:
		return v
	}
	if kind == datatable.CellBadge {
		return cell.Text
	}
	return cell.PlainText()
}

func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return ' '
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "Export"
	}
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}
