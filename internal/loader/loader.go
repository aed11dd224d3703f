package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campuswatt/campuswatt/internal/config"
	"github.com/campuswatt/campuswatt/internal/logging"
	"github.com/campuswatt/campuswatt/internal/models"
	"github.com/campuswatt/campuswatt/internal/utils"
)

// Column tokens recognized during header discovery. The first column whose
// lower-cased name contains a token wins its role.
var (
	timestampTokens = []string{"time", "date"}
	energyTokens    = []string{"kwh", "energy"}
)

// Stats summarizes one load pass over the input directory
type Stats struct {
	FilesFound   int
	FilesLoaded  int
	FilesSkipped int
	RowsLoaded   int
	RowsDropped  int
}

// Loader reads meter CSV files from the input directory and produces the
// cleaned, merged series
type Loader struct {
	inputDir string
	workers  int
	loc      *time.Location
	logger   *logging.Logger
}

// New creates a loader for the configured input directory
func New(cfg config.PipelineConfig, logger *logging.Logger) (*Loader, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve timezone: %w", err)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Loader{
		inputDir: cfg.InputDir,
		workers:  workers,
		loc:      loc,
		logger:   logger,
	}, nil
}

// Discover lists the CSV files in the input directory, sorted
// lexicographically by name so processing order is platform-independent.
func (l *Loader) Discover() ([]string, error) {
	entries, err := os.ReadDir(l.inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", l.inputDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			files = append(files, filepath.Join(l.inputDir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// LoadDir discovers and loads every input file, merging the results into one
// timestamp-ordered series. Files load concurrently up to the configured
// worker count; results merge in discovery order, so the output is identical
// regardless of scheduling. Files without the required columns are skipped
// with a warning. Returns ErrNoFiles when nothing was discovered, or when
// every discovered file was skipped.
func (l *Loader) LoadDir(ctx context.Context) (models.Series, Stats, error) {
	files, err := l.Discover()
	if err != nil {
		return nil, Stats{}, err
	}
	if len(files) == 0 {
		return nil, Stats{}, ErrNoFiles
	}

	type fileResult struct {
		series  models.Series
		dropped int
		err     error
	}

	results := make([]fileResult, len(files))
	workers := l.workers
	if workers > len(files) {
		workers = len(files)
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, path := range files {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				results[i] = fileResult{err: ctx.Err()}
				return
			}

			series, dropped, err := l.LoadFile(path)
			results[i] = fileResult{series: series, dropped: dropped, err: err}
		}(i, path)
	}
	wg.Wait()

	stats := Stats{FilesFound: len(files)}
	var combined models.Series

	for i, res := range results {
		name := filepath.Base(files[i])

		if res.err != nil {
			var colErr *ColumnError
			if errors.As(res.err, &colErr) {
				stats.FilesSkipped++
				l.logger.Warn("Skipping file without required column",
					"file", name, "column", string(colErr.Role))
				continue
			}
			return nil, stats, res.err
		}

		stats.FilesLoaded++
		stats.RowsLoaded += len(res.series)
		stats.RowsDropped += res.dropped

		if res.dropped > 0 {
			l.logger.Info("Loaded file with malformed rows dropped",
				"file", name, "rows", len(res.series), "dropped", res.dropped)
		} else {
			l.logger.Debug("Loaded file", "file", name, "rows", len(res.series))
		}

		combined = append(combined, res.series...)
	}

	if stats.FilesLoaded == 0 {
		return nil, stats, fmt.Errorf("all %d files skipped: %w", stats.FilesSkipped, ErrNoFiles)
	}

	combined.Sort()
	return combined, stats, nil
}

// LoadFile reads one meter CSV into a series tagged with the building name
// (the file name without extension). Rows with an unparsable timestamp or
// energy value are dropped and counted. The returned series is sorted by
// timestamp.
func (l *Loader) LoadFile(path string) (models.Series, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)
	building := strings.TrimSuffix(name, filepath.Ext(name))

	return l.readSeries(f, name, building)
}

func (l *Loader) readSeries(r io.Reader, name, building string) (models.Series, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, &ColumnError{File: name, Role: ColumnTimestamp}
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header of %s: %w", name, err)
	}

	tsCol := findColumn(header, timestampTokens)
	if tsCol < 0 {
		return nil, 0, &ColumnError{File: name, Role: ColumnTimestamp}
	}
	kwhCol := findColumn(header, energyTokens)
	if kwhCol < 0 {
		return nil, 0, &ColumnError{File: name, Role: ColumnEnergy}
	}

	var series models.Series
	dropped := 0

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed CSV line, treat like any other bad row
			dropped++
			continue
		}

		if tsCol >= len(record) || kwhCol >= len(record) {
			dropped++
			continue
		}

		ts, ok := utils.ParseTimestamp(record[tsCol], l.loc)
		if !ok {
			dropped++
			continue
		}

		kwh, ok := utils.ToFloat64(record[kwhCol])
		if !ok {
			dropped++
			continue
		}

		series = append(series, models.Reading{Timestamp: ts, KWh: kwh, Building: building})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})

	return series, dropped, nil
}

// findColumn returns the index of the first column whose lower-cased name
// contains any of the tokens, or -1 when none match
func findColumn(header []string, tokens []string) int {
	for i, column := range header {
		lower := strings.ToLower(strings.TrimSpace(column))
		for _, token := range tokens {
			if strings.Contains(lower, token) {
				return i
			}
		}
	}
	return -1
}
