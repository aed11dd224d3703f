package utils

import (
	"math"
	"strconv"
	"strings"
)

// ToFloat64 parses a CSV cell as a finite float64.
// Returns the parsed value and true if successful, or 0 and false if the cell
// is empty, not numeric, NaN, or infinite. Surrounding whitespace is ignored,
// and values with thousands separators ("1,234.5") are accepted.
func ToFloat64(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && strings.Contains(s, ",") {
		// Retry without thousands separators
		f, err = strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	}
	if err != nil {
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// MustToFloat64 parses a cell as float64, returning 0 if parsing fails.
// Use this when a default value is acceptable instead of checking ok.
func MustToFloat64(cell string) float64 {
	f, _ := ToFloat64(cell)
	return f
}

// IsNumeric checks if a cell parses as a finite float64.
func IsNumeric(cell string) bool {
	_, ok := ToFloat64(cell)
	return ok
}
