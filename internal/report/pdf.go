package report

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/campuswatt/campuswatt/internal/aggregate"
	"github.com/campuswatt/campuswatt/internal/models"
)

// WritePDF writes summary.pdf: the two headline figures followed by the
// per-building statistics table. totals is the building registry's
// name → total mapping, shown alongside the summary statistics.
func (w *Writer) WritePDF(summary []models.SummaryRow, totals map[string]float64, generatedAt time.Time) error {
	highest, ok := aggregate.Highest(summary)
	if !ok {
		return fmt.Errorf("cannot summarize zero buildings")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Campus Energy Summary")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Buildings: %d", len(summary)))
	pdf.Ln(8)

	pdf.Cell(0, 6, fmt.Sprintf("Total Campus Consumption: %.2f kWh", aggregate.Total(summary)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Highest Building: %s (%.2f kWh)", highest.Building, highest.Sum))
	pdf.Ln(8)

	// Statistics table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Building", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Total (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Mean", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Max", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Min", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Median", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range summary {
		pdf.CellFormat(40, 6, row.Building, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", totals[row.Building]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Mean), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Max), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Min), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Median), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	path := w.Path(SummaryPDFFile)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Debug("Wrote PDF summary", "path", path)
	return nil
}
