package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// genmeter writes synthetic per-building meter CSVs for exercising the
// pipeline. Each building gets one file with hourly readings following a
// simple office-hours load curve plus noise.
func main() {
	// Command line flags
	output := flag.String("output", "./data/meters", "Output directory for meter CSV files")
	buildings := flag.Int("buildings", 5, "Number of buildings to generate")
	days := flag.Int("days", 30, "Number of days of readings per building")
	start := flag.String("start", "", "Start date in yyyy-mm-dd format (default: days ago from today)")
	interval := flag.Duration("interval", time.Hour, "Spacing between readings")
	seed := flag.Int64("seed", 0, "Random seed (0 uses current time)")

	flag.Parse()

	if *buildings < 1 || *days < 1 {
		log.Fatal("Error: -buildings and -days must be at least 1")
	}
	if *interval <= 0 {
		log.Fatal("Error: -interval must be positive")
	}

	startDate := time.Now().UTC().AddDate(0, 0, -*days).Truncate(24 * time.Hour)
	if *start != "" {
		parsed, err := time.Parse("2006-01-02", *start)
		if err != nil {
			log.Fatalf("Error: Invalid start date '%s'. Expected yyyy-mm-dd\n", *start)
		}
		startDate = parsed
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	// Ensure output directory exists
	if err := os.MkdirAll(*output, 0o755); err != nil {
		log.Fatalf("Error creating output directory: %v\n", err)
	}

	end := startDate.AddDate(0, 0, *days)
	for i := 0; i < *buildings; i++ {
		name := fmt.Sprintf("building_%02d", i+1)
		path := filepath.Join(*output, name+".csv")

		rows, err := writeBuilding(path, startDate, end, *interval, rng)
		if err != nil {
			log.Fatalf("Error writing %s: %v\n", path, err)
		}

		fmt.Printf("Wrote %s (%d readings)\n", path, rows)
	}

	fmt.Printf("Generated %d buildings into %s\n", *buildings, *output)
}

// writeBuilding writes one meter file covering [start, end)
func writeBuilding(path string, start, end time.Time, interval time.Duration, rng *rand.Rand) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "kwh"}); err != nil {
		return 0, err
	}

	// Per-building character: base load and daytime amplitude
	base := 5 + rng.Float64()*20
	amplitude := 10 + rng.Float64()*40

	rows := 0
	for ts := start; ts.Before(end); ts = ts.Add(interval) {
		kwh := load(ts, base, amplitude, rng)
		record := []string{
			ts.Format("2006-01-02T15:04:05"),
			strconv.FormatFloat(kwh, 'f', 3, 64),
		}
		if err := w.Write(record); err != nil {
			return rows, err
		}
		rows++
	}

	w.Flush()
	return rows, w.Error()
}

// load models consumption: a sinusoidal office-hours curve peaking around
// 14:00, dampened on weekends, with multiplicative noise.
func load(ts time.Time, base, amplitude float64, rng *rand.Rand) float64 {
	hour := float64(ts.Hour()) + float64(ts.Minute())/60

	daytime := math.Sin((hour - 8) / 12 * math.Pi)
	if daytime < 0 {
		daytime = 0
	}

	weekday := 1.0
	if ts.Weekday() == time.Saturday || ts.Weekday() == time.Sunday {
		weekday = 0.4
	}

	noise := 0.9 + rng.Float64()*0.2
	return (base + amplitude*daytime*weekday) * noise
}
