package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/campuswatt/campuswatt/internal/aggregate"
	"github.com/campuswatt/campuswatt/internal/building"
	"github.com/campuswatt/campuswatt/internal/config"
	"github.com/campuswatt/campuswatt/internal/dashboard"
	"github.com/campuswatt/campuswatt/internal/loader"
	"github.com/campuswatt/campuswatt/internal/logging"
	"github.com/campuswatt/campuswatt/internal/models"
	"github.com/campuswatt/campuswatt/internal/report"
)

// Result summarizes one completed pipeline run
type Result struct {
	RunID        string
	NoData       bool
	Buildings    []string
	RowsLoaded   int
	RowsDropped  int
	FilesLoaded  int
	FilesSkipped int
	Duration     time.Duration
}

// Pipeline runs the whole batch: load, aggregate, report, render, write.
// One Pipeline performs one run.
type Pipeline struct {
	cfg    config.PipelineConfig
	logger *logging.Logger
	stdout io.Writer
}

// New creates a pipeline. The per-building report goes to stdout; use
// SetOutput to redirect it.
func New(cfg config.PipelineConfig, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		stdout: os.Stdout,
	}
}

// SetOutput redirects the per-building console report
func (p *Pipeline) SetOutput(w io.Writer) {
	p.stdout = w
}

// Run executes the pipeline once. An empty input directory is a graceful
// halt: no artifacts are written and the result carries NoData.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := p.logger.With("run_id", runID)

	ld, err := loader.New(p.cfg, logger)
	if err != nil {
		return nil, err
	}

	series, stats, err := ld.LoadDir(ctx)
	if errors.Is(err, loader.ErrNoFiles) {
		logger.Warn("No input files to process", "input_dir", p.cfg.InputDir)
		return &Result{RunID: runID, NoData: true, FilesSkipped: stats.FilesSkipped, Duration: time.Since(start)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load failed: %w", err)
	}

	logger.Info("Loaded meter data",
		"files", stats.FilesLoaded, "skipped", stats.FilesSkipped,
		"rows", stats.RowsLoaded, "dropped", stats.RowsDropped)

	daily := aggregate.Resample(series, aggregate.LevelDaily)
	weekly := aggregate.Resample(series, aggregate.LevelWeekly)
	hourly := aggregate.Resample(series, aggregate.LevelHourly)
	summary := aggregate.Summarize(series)
	logger.Info("Computed aggregates",
		"daily_rows", len(daily), "weekly_rows", len(weekly), "buildings", len(summary))

	manager := building.FromSeries(series)
	if err := crossCheck(manager, summary); err != nil {
		return nil, err
	}
	if err := manager.WriteReport(p.stdout); err != nil {
		return nil, err
	}

	if err := p.cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	if err := p.writeArtifacts(series, daily, weekly, hourly, summary, manager, stats, runID); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:        runID,
		Buildings:    series.Buildings(),
		RowsLoaded:   stats.RowsLoaded,
		RowsDropped:  stats.RowsDropped,
		FilesLoaded:  stats.FilesLoaded,
		FilesSkipped: stats.FilesSkipped,
		Duration:     time.Since(start),
	}
	logger.Info("Pipeline completed",
		"buildings", len(result.Buildings), "duration", result.Duration.String())
	return result, nil
}

func (p *Pipeline) writeArtifacts(
	series models.Series,
	daily, weekly, hourly []models.AggregateRow,
	summary []models.SummaryRow,
	manager *building.Manager,
	stats loader.Stats,
	runID string,
) error {
	writer := report.New(p.cfg, p.logger)
	generatedAt := time.Now().UTC()

	if err := writer.WriteCleanedData(series); err != nil {
		return err
	}
	if err := writer.WriteDaily(daily); err != nil {
		return err
	}
	if err := writer.WriteWeekly(weekly); err != nil {
		return err
	}
	if err := writer.WriteSummary(summary); err != nil {
		return err
	}
	if err := writer.WriteTextSummary(summary); err != nil {
		return err
	}
	if err := writer.WriteWorkbook(summary, daily, weekly); err != nil {
		return err
	}
	if err := writer.WritePDF(summary, manager.Report(), generatedAt); err != nil {
		return err
	}

	renderer := dashboard.New(p.cfg, p.logger)
	if err := renderer.WriteFile(writer.Path(report.DashboardFile), daily, weekly, hourly); err != nil {
		return err
	}

	// The manifest goes last so it covers every other artifact
	manifest := models.RunManifest{
		RunID:        runID,
		GeneratedAt:  generatedAt,
		InputDir:     p.cfg.InputDir,
		Buildings:    series.Buildings(),
		RowsLoaded:   stats.RowsLoaded,
		RowsDropped:  stats.RowsDropped,
		FilesLoaded:  stats.FilesLoaded,
		FilesSkipped: stats.FilesSkipped,
	}
	return writer.WriteManifest(manifest)
}

// crossCheck verifies the object view and the summary statistics agree on
// every building's total. Both replay the series in the same order, so the
// totals must match exactly.
func crossCheck(manager *building.Manager, summary []models.SummaryRow) error {
	totals := manager.Report()
	if len(totals) != len(summary) {
		return fmt.Errorf("building registry has %d buildings, summary has %d", len(totals), len(summary))
	}

	for _, row := range summary {
		if totals[row.Building] != row.Sum {
			return fmt.Errorf("building %s total %v does not match summary sum %v",
				row.Building, totals[row.Building], row.Sum)
		}
	}
	return nil
}
