package export

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/de-tools/statement-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet      = "Sheet1"
	maxSheetNameRunes = 31
)

// SheetName is the worksheet title for report: "<type> <period>" with the
// characters Excel rejects replaced by '-' and cut to 31 characters.
func SheetName(report *domain.ReportResult) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '?', '*', '[', ']':
			return '-'
		default:
			return r
		}
	}, fmt.Sprintf("%s %s", report.ReportType, report.Period))

	runes := []rune(name)
	if len(runes) > maxSheetNameRunes {
		runes = runes[:maxSheetNameRunes]
	}
	return strings.Trim(string(runes), "'")
}

// XLSXExporter collects reports into a workbook, one sheet per report, and
// writes it to path on Close.
type XLSXExporter struct {
	path string

	mu     sync.Mutex
	file   *excelize.File
	sheets int
}

func NewXLSXExporter(path string) *XLSXExporter {
	return &XLSXExporter{
		path: path,
		file: excelize.NewFile(),
	}
}

func (e *XLSXExporter) Export(_ context.Context, report *domain.ReportResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sheet := SheetName(report)
	index, err := e.file.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	if e.sheets == 0 {
		e.file.SetActiveSheet(index)
	}
	e.sheets++

	headers := []interface{}{"Account", "Name", "Value", "Period"}
	if err := e.file.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, item := range report.Data {
		row := []interface{}{item.AccountID, item.AccountName, item.Value, item.Period}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := e.file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	totalRow := len(report.Data) + 3
	totalCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	total := []interface{}{"TOTAL", "Total value", report.Metadata.TotalValue, report.Period}
	if err := e.file.SetSheetRow(sheet, totalCell, &total); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}

	headerStyle, err := e.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := e.file.SetCellStyle(sheet, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	numericStyle, err := e.file.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}
	if err := e.file.SetColStyle(sheet, "C", numericStyle); err != nil {
		return fmt.Errorf("failed to style values: %w", err)
	}

	for _, col := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 26},
		{"B", "B", 56},
		{"C", "D", 18},
	} {
		if err := e.file.SetColWidth(sheet, col.from, col.to, col.width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", col.from, err)
		}
	}
	return nil
}

// Close saves the workbook. Nothing is written when no report was exported.
func (e *XLSXExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.file.Close()

	if e.sheets == 0 {
		return nil
	}
	if err := e.file.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := e.file.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
