package pipeline

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuswatt/campuswatt/internal/logging"
	"github.com/campuswatt/campuswatt/internal/report"
)

// Three bucketing granularities and the summary statistics all reduce the
// same series; their per-building totals must agree.
func TestAggregateTotalsAgree(t *testing.T) {
	cfg := testConfig(t)

	// Three buildings, six weeks of readings every 7 hours
	base := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for b := 0; b < 3; b++ {
		content := "timestamp,kwh\n"
		for i := 0; i < 6*24; i++ {
			ts := base.Add(time.Duration(i*7) * time.Hour)
			kwh := float64(b+1) + float64(i%11)*0.25
			content += fmt.Sprintf("%s,%s\n",
				ts.Format("2006-01-02T15:04:05"),
				strconv.FormatFloat(kwh, 'f', -1, 64))
		}
		writeFile(t, cfg.InputDir, fmt.Sprintf("bldg%c.csv", 'A'+b), content)
	}

	p := New(cfg, logging.NewWithWriter(io.Discard, zerolog.Disabled))
	p.SetOutput(io.Discard)

	result, err := p.Run(context.Background())
	require.NoError(t, err)
	require.False(t, result.NoData)

	daily := sumByBuilding(t, filepath.Join(cfg.OutputDir, report.DailyFile))
	weekly := sumByBuilding(t, filepath.Join(cfg.OutputDir, report.WeeklyFile))

	summaryRows := readCSV(t, filepath.Join(cfg.OutputDir, report.SummaryCSVFile))
	require.Greater(t, len(summaryRows), 1, "summary.csv must have data rows")

	var summaryTotal float64
	for _, row := range summaryRows[1:] {
		name := row[0]
		sum, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err, "summary sum for %s", name)
		summaryTotal += sum

		assert.InDelta(t, sum, daily[name], 1e-9, "daily total for %s", name)
		assert.InDelta(t, sum, weekly[name], 1e-9, "weekly total for %s", name)
	}

	// The text summary's campus total is the sum of the summary sums
	reported := readTextSummary(t, filepath.Join(cfg.OutputDir, report.SummaryTextFile))
	assert.InDelta(t, summaryTotal, reported, 0.005, "summary.txt campus total")
}

func sumByBuilding(t *testing.T, path string) map[string]float64 {
	t.Helper()

	records := readCSV(t, path)
	require.NotEmpty(t, records, "%s must have a header", path)

	sums := make(map[string]float64)
	for _, row := range records[1:] {
		require.Len(t, row, 3, "aggregate row in %s", path)
		kwh, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err, "kwh in %s", path)
		sums[row[0]] += kwh
	}
	return sums
}

func readTextSummary(t *testing.T, path string) float64 {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var total float64
	_, err = fmt.Sscanf(string(data), "Total Campus Consumption: %f kWh", &total)
	require.NoError(t, err, "summary.txt first line format")
	require.False(t, math.IsNaN(total))
	return total
}
