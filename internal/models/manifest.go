package models

import "time"

// OutputFile describes one artifact produced by a pipeline run.
type OutputFile struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// RunManifest describes a completed pipeline run and the artifacts it wrote.
// It is written last, so a manifest on disk implies the run finished.
type RunManifest struct {
	RunID        string       `json:"run_id"`
	GeneratedAt  time.Time    `json:"generated_at"`
	InputDir     string       `json:"input_dir"`
	Buildings    []string     `json:"buildings"`
	RowsLoaded   int          `json:"rows_loaded"`
	RowsDropped  int          `json:"rows_dropped"`
	FilesLoaded  int          `json:"files_loaded"`
	FilesSkipped int          `json:"files_skipped"`
	Files        []OutputFile `json:"files"`
}
