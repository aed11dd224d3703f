package utils

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing meter timestamps.
// Layouts without a zone are interpreted in the caller's location.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTimestamp parses a CSV cell as a timestamp, trying the recognized
// layouts in order. Returns the parsed time and true on success, or the zero
// time and false if no layout matches. loc may be nil for UTC.
func ParseTimestamp(cell string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
