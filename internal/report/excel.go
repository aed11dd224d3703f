package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/campuswatt/campuswatt/internal/aggregate"
	"github.com/campuswatt/campuswatt/internal/models"
)

// WriteWorkbook writes report.xlsx with Summary, Daily and Weekly sheets
// mirroring the CSV tables. The Summary sheet closes with a Totals row.
func (w *Writer) WriteWorkbook(summary []models.SummaryRow, daily, weekly []models.AggregateRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	summarySheet := "Summary"
	dailySheet := "Daily"
	weeklySheet := "Weekly"

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if _, err := f.NewSheet(dailySheet); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	if _, err := f.NewSheet(weeklySheet); err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	setSummarySheet(f, summarySheet, summary)
	setAggregateSheet(f, dailySheet, daily)
	setAggregateSheet(f, weeklySheet, weekly)

	path := w.Path(WorkbookFile)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Debug("Wrote workbook", "path", path, "buildings", len(summary))
	return nil
}

func setSummarySheet(f *excelize.File, sheet string, summary []models.SummaryRow) {
	headers := []string{"Building", "Sum (kWh)", "Mean (kWh)", "Max (kWh)", "Min (kWh)", "Median (kWh)"}
	for i, h := range headers {
		_ = f.SetCellValue(sheet, cell(i, 1), h)
	}

	for i, row := range summary {
		r := i + 2
		_ = f.SetCellValue(sheet, cell(0, r), row.Building)
		_ = f.SetCellValue(sheet, cell(1, r), row.Sum)
		_ = f.SetCellValue(sheet, cell(2, r), row.Mean)
		_ = f.SetCellValue(sheet, cell(3, r), row.Max)
		_ = f.SetCellValue(sheet, cell(4, r), row.Min)
		_ = f.SetCellValue(sheet, cell(5, r), row.Median)
	}

	totalsRow := len(summary) + 2
	_ = f.SetCellValue(sheet, cell(0, totalsRow), "Totals")
	_ = f.SetCellValue(sheet, cell(1, totalsRow), aggregate.Total(summary))
}

func setAggregateSheet(f *excelize.File, sheet string, rows []models.AggregateRow) {
	headers := []string{"Building", "Timestamp", "kWh"}
	for i, h := range headers {
		_ = f.SetCellValue(sheet, cell(i, 1), h)
	}

	for i, row := range rows {
		r := i + 2
		_ = f.SetCellValue(sheet, cell(0, r), row.Building)
		_ = f.SetCellValue(sheet, cell(1, r), row.Bucket.Format(bucketLayout))
		_ = f.SetCellValue(sheet, cell(2, r), row.KWh)
	}
}

// cell converts a zero-based column index and one-based row to an A1 address
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
