package loader

import (
	"errors"
	"fmt"
)

// ErrNoFiles signals that the input directory holds nothing to process.
// The pipeline treats it as a graceful halt, not a failure.
var ErrNoFiles = errors.New("no input files found")

// ColumnRole identifies which canonical column could not be located
type ColumnRole string

const (
	ColumnTimestamp ColumnRole = "timestamp"
	ColumnEnergy    ColumnRole = "energy"
)

// ColumnError reports a source file whose header has no column matching the
// recognized tokens for a required role. The file is skipped, not fatal.
type ColumnError struct {
	File string
	Role ColumnRole
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("no %s column found in file %s", e.Role, e.File)
}
