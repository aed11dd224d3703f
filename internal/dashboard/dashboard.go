package dashboard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/campuswatt/campuswatt/internal/aggregate"
	"github.com/campuswatt/campuswatt/internal/config"
	"github.com/campuswatt/campuswatt/internal/logging"
	"github.com/campuswatt/campuswatt/internal/models"
)

// Panel dimensions. Three panels stack into one 1200x1500 image.
const (
	panelWidth  = 1200
	panelHeight = 500
)

// Renderer produces the three-panel dashboard image from the aggregates
type Renderer struct {
	topPeaks int
	logger   *logging.Logger
}

// New creates a renderer for the configured peak count
func New(cfg config.PipelineConfig, logger *logging.Logger) *Renderer {
	topPeaks := cfg.TopPeaks
	if topPeaks < 1 {
		topPeaks = 1
	}

	return &Renderer{
		topPeaks: topPeaks,
		logger:   logger,
	}
}

// Render draws the three panels and composes them vertically into one PNG
func (r *Renderer) Render(daily, weekly, hourly []models.AggregateRow, w io.Writer) error {
	trend, err := renderDailyTrend(daily)
	if err != nil {
		return fmt.Errorf("failed to render daily trend panel: %w", err)
	}

	bars, err := renderWeeklyBars(weekly)
	if err != nil {
		return fmt.Errorf("failed to render weekly bars panel: %w", err)
	}

	peaks, err := renderPeakScatter(hourly, r.topPeaks)
	if err != nil {
		return fmt.Errorf("failed to render peak scatter panel: %w", err)
	}

	return composeVertical(w, trend, bars, peaks)
}

// WriteFile renders the dashboard into a PNG file at path
func (r *Renderer) WriteFile(path string, daily, weekly, hourly []models.AggregateRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dashboard file %s: %w", path, err)
	}

	if err := r.Render(daily, weekly, hourly, f); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write dashboard file %s: %w", path, err)
	}

	r.logger.Debug("Rendered dashboard", "path", path, "width", panelWidth, "height", 3*panelHeight)
	return nil
}

// renderDailyTrend draws one line per building over the daily sums
func renderDailyTrend(daily []models.AggregateRow) ([]byte, error) {
	byBuilding := groupRows(daily)

	var series []chart.Series
	for _, name := range sortedKeys(byBuilding) {
		rows := byBuilding[name]
		xs := make([]time.Time, len(rows))
		ys := make([]float64, len(rows))
		for i, row := range rows {
			xs[i] = row.Bucket
			ys[i] = row.KWh
		}

		series = append(series, chart.TimeSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 2,
				DotWidth:    3,
			},
		})
	}

	graph := chart.Chart{
		Title:  "Daily Consumption Trend",
		Width:  panelWidth,
		Height: panelHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          timeRange(daily),
		},
		YAxis: chart.YAxis{
			Name:  "kWh",
			Range: valueRange(daily),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(&graph)
}

// renderWeeklyBars draws one bar per building showing its mean weekly sum
func renderWeeklyBars(weekly []models.AggregateRow) ([]byte, error) {
	byBuilding := groupRows(weekly)

	var maxMean float64
	var bars []chart.Value
	for _, name := range sortedKeys(byBuilding) {
		rows := byBuilding[name]
		var sum float64
		for _, row := range rows {
			sum += row.KWh
		}
		mean := sum / float64(len(rows))
		if mean > maxMean {
			maxMean = mean
		}
		bars = append(bars, chart.Value{Label: name, Value: mean})
	}

	if maxMean <= 0 {
		maxMean = 1
	}

	graph := chart.BarChart{
		Title:    "Weekly Average Usage",
		Width:    panelWidth,
		Height:   panelHeight,
		BarWidth: 60,
		XAxis: chart.Style{
			TextRotationDegrees: 45.0,
		},
		YAxis: chart.YAxis{
			Name:  "kWh",
			Range: &chart.ContinuousRange{Min: 0, Max: maxMean * 1.1},
		},
		Bars: bars,
	}

	return renderPNG(&graph)
}

// renderPeakScatter draws the top hourly sums as dots by timestamp
func renderPeakScatter(hourly []models.AggregateRow, topPeaks int) ([]byte, error) {
	top := aggregate.TopN(hourly, topPeaks)

	// Plot in time order; the top-N cut already happened
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Bucket.Before(top[j].Bucket)
	})

	xs := make([]time.Time, len(top))
	ys := make([]float64, len(top))
	for i, row := range top {
		xs[i] = row.Bucket
		ys[i] = row.KWh
	}

	graph := chart.Chart{
		Title:  "Peak Hourly Consumption",
		Width:  panelWidth,
		Height: panelHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatter,
			Range:          timeRange(top),
		},
		YAxis: chart.YAxis{
			Name:  "kWh",
			Range: valueRange(top),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Peak hours",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
				},
			},
		},
	}

	return renderPNG(&graph)
}

// groupRows splits aggregate rows by building, preserving row order
func groupRows(rows []models.AggregateRow) map[string][]models.AggregateRow {
	byBuilding := make(map[string][]models.AggregateRow)
	for _, row := range rows {
		byBuilding[row.Building] = append(byBuilding[row.Building], row)
	}
	return byBuilding
}

func sortedKeys(m map[string][]models.AggregateRow) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// timeRange returns an explicit, padded x-axis range. The chart library
// rejects a zero-width range, so a run where every bucket shares one
// timestamp gets 12 hours of padding on each side.
func timeRange(rows []models.AggregateRow) chart.Range {
	if len(rows) == 0 {
		return nil
	}

	min, max := rows[0].Bucket, rows[0].Bucket
	for _, row := range rows[1:] {
		if row.Bucket.Before(min) {
			min = row.Bucket
		}
		if row.Bucket.After(max) {
			max = row.Bucket
		}
	}

	if min.Equal(max) {
		min = min.Add(-12 * time.Hour)
		max = max.Add(12 * time.Hour)
	}

	// The chart library positions time series by UnixNano
	return &chart.ContinuousRange{
		Min: float64(min.UnixNano()),
		Max: float64(max.UnixNano()),
	}
}

// valueRange returns an explicit y-axis range, padded when all values are
// equal for the same zero-width reason as timeRange.
func valueRange(rows []models.AggregateRow) chart.Range {
	if len(rows) == 0 {
		return nil
	}

	min, max := rows[0].KWh, rows[0].KWh
	for _, row := range rows[1:] {
		if row.KWh < min {
			min = row.KWh
		}
		if row.KWh > max {
			max = row.KWh
		}
	}

	if min == max {
		min--
		max++
	}

	return &chart.ContinuousRange{Min: min, Max: max}
}

func renderPNG(graph interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}) ([]byte, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// composeVertical stacks the rendered panels top to bottom on a white canvas
// and encodes the result as one PNG.
func composeVertical(w io.Writer, panels ...[]byte) error {
	images := make([]image.Image, len(panels))
	width, height := 0, 0

	for i, panel := range panels {
		img, err := png.Decode(bytes.NewReader(panel))
		if err != nil {
			return fmt.Errorf("failed to decode panel %d: %w", i, err)
		}
		images[i] = img

		if img.Bounds().Dx() > width {
			width = img.Bounds().Dx()
		}
		height += img.Bounds().Dy()
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	y := 0
	for _, img := range images {
		bounds := image.Rect(0, y, img.Bounds().Dx(), y+img.Bounds().Dy())
		draw.Draw(canvas, bounds, img, img.Bounds().Min, draw.Src)
		y += img.Bounds().Dy()
	}

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("failed to encode dashboard image: %w", err)
	}
	return nil
}
