package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/campuswatt/campuswatt/internal/aggregate"
	"github.com/campuswatt/campuswatt/internal/config"
	"github.com/campuswatt/campuswatt/internal/logging"
	"github.com/campuswatt/campuswatt/internal/models"
	"github.com/campuswatt/campuswatt/internal/utils"
)

// Artifact file names. Each run overwrites the previous run's files.
const (
	CleanedDataFile = "cleaned_data.csv"
	DailyFile       = "daily.csv"
	WeeklyFile      = "weekly.csv"
	SummaryCSVFile  = "summary.csv"
	SummaryTextFile = "summary.txt"
	WorkbookFile    = "report.xlsx"
	SummaryPDFFile  = "summary.pdf"
	DashboardFile   = "dashboard.png"
	ManifestFile    = "manifest.json"
)

const (
	timestampLayout = "2006-01-02T15:04:05"
	bucketLayout    = "2006-01-02"
)

// Writer persists the run's artifacts into the output directory. Any write
// failure is fatal to the run; there is no partial-success mode.
type Writer struct {
	outputDir string
	logger    *logging.Logger
}

// New creates a writer for the configured output directory
func New(cfg config.PipelineConfig, logger *logging.Logger) *Writer {
	return &Writer{
		outputDir: cfg.OutputDir,
		logger:    logger,
	}
}

// Path returns the full path of an artifact in the output directory
func (w *Writer) Path(name string) string {
	return filepath.Join(w.outputDir, name)
}

// WriteCleanedData writes the combined series as cleaned_data.csv
func (w *Writer) WriteCleanedData(series models.Series) error {
	records := make([][]string, 0, len(series)+1)
	records = append(records, []string{"timestamp", "kwh", "building"})
	for _, r := range series {
		records = append(records, []string{
			r.Timestamp.Format(timestampLayout),
			formatKWh(r.KWh),
			r.Building,
		})
	}

	return w.writeCSV(CleanedDataFile, records)
}

// WriteDaily writes the daily aggregate as daily.csv
func (w *Writer) WriteDaily(rows []models.AggregateRow) error {
	return w.writeAggregate(DailyFile, rows)
}

// WriteWeekly writes the weekly aggregate as weekly.csv
func (w *Writer) WriteWeekly(rows []models.AggregateRow) error {
	return w.writeAggregate(WeeklyFile, rows)
}

func (w *Writer) writeAggregate(name string, rows []models.AggregateRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"building", "timestamp", "kwh"})
	for _, row := range rows {
		records = append(records, []string{
			row.Building,
			row.Bucket.Format(bucketLayout),
			formatKWh(row.KWh),
		})
	}

	return w.writeCSV(name, records)
}

// WriteSummary writes the per-building summary statistics as summary.csv
func (w *Writer) WriteSummary(rows []models.SummaryRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"building", "sum", "mean", "max", "min", "median"})
	for _, row := range rows {
		records = append(records, []string{
			row.Building,
			formatKWh(row.Sum),
			formatKWh(row.Mean),
			formatKWh(row.Max),
			formatKWh(row.Min),
			formatKWh(row.Median),
		})
	}

	return w.writeCSV(SummaryCSVFile, records)
}

// WriteTextSummary writes the two-line human-readable summary.txt: the campus
// total and the highest-consuming building, both with two decimal places.
func (w *Writer) WriteTextSummary(rows []models.SummaryRow) error {
	highest, ok := aggregate.Highest(rows)
	if !ok {
		return fmt.Errorf("cannot summarize zero buildings")
	}

	text := fmt.Sprintf("Total Campus Consumption: %.2f kWh\nHighest Building: %s (%.2f kWh)\n",
		aggregate.Total(rows), highest.Building, highest.Sum)

	path := w.Path(SummaryTextFile)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Debug("Wrote text summary", "path", path)
	return nil
}

// ReadCleanedData loads a previously written cleaned_data.csv back into a
// series, trusting the building column instead of the file name.
func ReadCleanedData(path string) (models.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	series := make(models.Series, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 3 {
			return nil, fmt.Errorf("malformed row in %s: %v", path, record)
		}

		ts, ok := utils.ParseTimestamp(record[0], nil)
		if !ok {
			return nil, fmt.Errorf("bad timestamp in %s: %q", path, record[0])
		}
		kwh, ok := utils.ToFloat64(record[1])
		if !ok {
			return nil, fmt.Errorf("bad kwh in %s: %q", path, record[1])
		}

		series = append(series, models.Reading{Timestamp: ts, KWh: kwh, Building: record[2]})
	}

	return series, nil
}

func (w *Writer) writeCSV(name string, records [][]string) error {
	path := w.Path(name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Debug("Wrote CSV", "path", path, "rows", len(records)-1)
	return nil
}

// formatKWh formats an energy value with the fewest digits that round-trip
func formatKWh(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
