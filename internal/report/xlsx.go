// Package report renders pipeline results into XLSX workbooks.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/statementlens/pnlextract/internal/pipeline"
	"github.com/statementlens/pnlextract/internal/tables"
)

const (
	sheetStatement = "Statement"
	sheetNote      = "Note Breakup"
	sheetChecks    = "Checks"
	sheetMetrics   = "Metrics"
)

// Writer produces XLSX workbooks from pipeline results.
type Writer struct {
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// WorkbookBytes renders one result into a four-sheet workbook.
func (w *Writer) WorkbookBytes(res *pipeline.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeStatement(f, res); err != nil {
		return nil, err
	}
	w.writeNote(f, res)
	w.writeChecks(f, res)
	w.writeMetrics(f, res)

	// drop excelize's default sheet
	_ = f.DeleteSheet("Sheet1")
	if idx, _ := f.GetSheetIndex(sheetStatement); idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	w.logger.Info("report.xlsx.ok",
		"source", res.Source,
		"items", len(res.Statement.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteFile renders the workbook and saves it to path.
func (w *Writer) WriteFile(res *pipeline.Result, path string) error {
	data, err := w.WorkbookBytes(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (w *Writer) writeStatement(f *excelize.File, res *pipeline.Result) error {
	if _, err := f.NewSheet(sheetStatement); err != nil {
		return err
	}
	st := res.Statement

	setRow(f, sheetStatement, 1, "Company", st.Company)
	setRow(f, sheetStatement, 2, "Currency", st.Currency)
	setRow(f, sheetStatement, 3, "Source", res.Source)
	setRow(f, sheetStatement, 4, "Document type", string(res.PDFType))
	setRow(f, sheetStatement, 5, "Extraction engine", st.Engine)
	setRow(f, sheetStatement, 6, "Identified by", string(res.Identification.Method))
	setRow(f, sheetStatement, 7, "Confidence", fmt.Sprintf("%.0f%%", res.Identification.Confidence))

	headers := []string{"Line item", "Note", "Current year", "Previous year"}
	headerRow := 9
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheetStatement, cell, h)
	}

	row := headerRow + 1
	for _, name := range tables.ItemOrder() {
		item, ok := st.Items[name]
		if !ok {
			continue
		}
		write := cellWriter(f, sheetStatement, row)
		write(1, name)
		write(2, st.NoteRefs[name])
		write(3, item.Current)
		write(4, item.Previous)
		row++
	}

	_ = f.SetColWidth(sheetStatement, "A", "A", 36)
	_ = f.SetColWidth(sheetStatement, "B", "B", 8)
	_ = f.SetColWidth(sheetStatement, "C", "D", 16)
	return nil
}

func (w *Writer) writeNote(f *excelize.File, res *pipeline.Result) {
	if _, err := f.NewSheet(sheetNote); err != nil {
		return
	}

	if res.NoteNumber == "" || len(res.Breakup.Items) == 0 {
		setRow(f, sheetNote, 1, "Note breakup", "not extracted")
		return
	}

	setRow(f, sheetNote, 1, "Note", res.NoteNumber)
	setRow(f, sheetNote, 2, "Page", res.NotePage+1)

	headers := []string{"Item", "Current year", "Previous year"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheetNote, cell, h)
	}

	row := 5
	for _, item := range res.Breakup.Items {
		write := cellWriter(f, sheetNote, row)
		write(1, item.Label)
		write(2, item.Current)
		write(3, item.Previous)
		row++
	}
	if res.Breakup.Total != nil {
		write := cellWriter(f, sheetNote, row)
		write(1, "Total")
		write(2, res.Breakup.Total.Current)
		write(3, res.Breakup.Total.Previous)
	}

	_ = f.SetColWidth(sheetNote, "A", "A", 40)
	_ = f.SetColWidth(sheetNote, "B", "C", 16)
}

func (w *Writer) writeChecks(f *excelize.File, res *pipeline.Result) {
	if _, err := f.NewSheet(sheetChecks); err != nil {
		return
	}

	headers := []string{"Check", "Actual", "Expected", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetChecks, cell, h)
	}

	row := 2
	for _, c := range res.Checks {
		status := "PASS"
		if !c.OK {
			status = "FAIL"
		}
		write := cellWriter(f, sheetChecks, row)
		write(1, c.Name)
		write(2, c.Actual)
		write(3, c.Expected)
		write(4, status)
		row++
	}

	row++
	setRow(f, sheetChecks, row, "Warnings", "")
	for _, warning := range res.Warnings {
		row++
		setRow(f, sheetChecks, row, "", warning)
	}

	_ = f.SetColWidth(sheetChecks, "A", "A", 52)
	_ = f.SetColWidth(sheetChecks, "B", "C", 14)
}

func (w *Writer) writeMetrics(f *excelize.File, res *pipeline.Result) {
	if _, err := f.NewSheet(sheetMetrics); err != nil {
		return
	}

	headers := []string{"Metric", "Current year", "Previous year"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetMetrics, cell, h)
	}

	cur, prev := res.MetricsCurrent, res.MetricsPrevious
	rows := []struct {
		label     string
		cur, prev float64
		percent   bool
	}{
		{"Revenue", cur.Revenue, prev.Revenue, false},
		{"Other income", cur.OtherIncome, prev.OtherIncome, false},
		{"Total income", cur.TotalIncome, prev.TotalIncome, false},
		{"Operating expense", cur.OperatingExpense, prev.OperatingExpense, false},
		{"Operating profit (EBIT)", cur.OperatingProfit, prev.OperatingProfit, false},
		{"EBITDA", cur.EBITDA, prev.EBITDA, false},
		{"Finance costs", cur.FinanceCosts, prev.FinanceCosts, false},
		{"Profit before tax", cur.ProfitBeforeTax, prev.ProfitBeforeTax, false},
		{"Tax expense", cur.TaxExpense, prev.TaxExpense, false},
		{"Profit after tax", cur.ProfitAfterTax, prev.ProfitAfterTax, false},
		{"Operating margin", cur.OperatingMargin, prev.OperatingMargin, true},
		{"EBITDA margin", cur.EBITDAMargin, prev.EBITDAMargin, true},
		{"PBT margin", cur.PBTMargin, prev.PBTMargin, true},
		{"PAT margin", cur.PATMargin, prev.PATMargin, true},
	}

	for i, r := range rows {
		write := cellWriter(f, sheetMetrics, i+2)
		write(1, r.label)
		if r.percent {
			write(2, fmt.Sprintf("%.1f%%", r.cur))
			write(3, fmt.Sprintf("%.1f%%", r.prev))
		} else {
			write(2, r.cur)
			write(3, r.prev)
		}
	}

	_ = f.SetColWidth(sheetMetrics, "A", "A", 28)
	_ = f.SetColWidth(sheetMetrics, "B", "C", 16)
}

func cellWriter(f *excelize.File, sheet string, row int) func(col int, v any) {
	return func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}

func setRow(f *excelize.File, sheet string, row int, label string, value any) {
	write := cellWriter(f, sheet, row)
	write(1, label)
	write(2, value)
}
