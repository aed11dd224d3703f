package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/campuswatt/campuswatt/internal/config"
	"github.com/campuswatt/campuswatt/internal/logging"
	"github.com/campuswatt/campuswatt/internal/pipeline"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	inputDir := flag.String("input", "", "Input directory with meter CSV files (overrides config)")
	outputDir := flag.String("output", "", "Output directory for artifacts (overrides config)")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over config file and environment
	if *inputDir != "" {
		cfg.Pipeline.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.Pipeline.OutputDir = *outputDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)

	logger.Info("CampusWatt starting...",
		"version", Version, "commit", GitCommit,
		"input_dir", cfg.Pipeline.InputDir, "output_dir", cfg.Pipeline.OutputDir)

	// 3. Run the pipeline once
	result, err := pipeline.New(cfg.Pipeline, logger).Run(context.Background())
	if err != nil {
		logger.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}

	if result.NoData {
		logger.Warn("Nothing to process", "input_dir", cfg.Pipeline.InputDir)
		return
	}

	logger.Info("Run complete",
		"run_id", result.RunID,
		"buildings", len(result.Buildings),
		"rows", result.RowsLoaded,
		"dropped", result.RowsDropped,
		"duration", result.Duration.String())
}
