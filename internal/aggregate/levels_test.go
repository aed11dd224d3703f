package aggregate

import (
	"testing"
	"time"
)

func TestLevelConstants(t *testing.T) {
	if LevelHourly != "1h" {
		t.Errorf("Expected LevelHourly='1h', got '%s'", LevelHourly)
	}
	if LevelDaily != "1d" {
		t.Errorf("Expected LevelDaily='1d', got '%s'", LevelDaily)
	}
	if LevelWeekly != "1w" {
		t.Errorf("Expected LevelWeekly='1w', got '%s'", LevelWeekly)
	}
}

func TestTruncateToHour(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "mid-hour",
			input:    time.Date(2024, 6, 15, 14, 30, 45, 123456789, time.UTC),
			expected: time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "on the hour",
			input:    time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name:     "just before midnight",
			input:    time.Date(2024, 6, 15, 23, 59, 59, 999999999, time.UTC),
			expected: time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateToHour(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestTruncateToDay(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "midday",
			input:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "already midnight",
			input:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "end of day",
			input:    time.Date(2024, 2, 29, 23, 59, 59, 999999999, time.UTC),
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateToDay(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestWeekEnding(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-01-07 the following Sunday
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "monday",
			input:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "wednesday midday",
			input:    time.Date(2024, 1, 3, 12, 30, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "saturday just before midnight",
			input:    time.Date(2024, 1, 6, 23, 59, 59, 0, time.UTC),
			expected: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday midnight",
			input:    time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "sunday afternoon stays in same week",
			input:    time.Date(2024, 1, 7, 15, 30, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "next monday rolls to next week",
			input:    time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "month boundary",
			input:    time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WeekEnding(tt.input)
			if !result.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestWeekEnding_PreservesLocation(t *testing.T) {
	location := time.FixedZone("TEST", 7*3600) // UTC+7
	input := time.Date(2024, 1, 3, 14, 30, 45, 0, location)

	result := WeekEnding(input)

	if result.Location() != location {
		t.Errorf("Expected location %v, got %v", location, result.Location())
	}

	expected := time.Date(2024, 1, 7, 0, 0, 0, 0, location)
	if !result.Equal(expected) {
		t.Errorf("Expected %v, got %v", expected, result)
	}
}

func TestBucket(t *testing.T) {
	input := time.Date(2024, 1, 3, 14, 30, 45, 0, time.UTC)

	tests := []struct {
		level    Level
		expected time.Time
	}{
		{LevelHourly, time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC)},
		{LevelDaily, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)},
		{LevelWeekly, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)},
		{"invalid", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)}, // Default case
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			result := Bucket(input, tt.level)
			if !result.Equal(tt.expected) {
				t.Errorf("Expected %v for level=%s, got %v", tt.expected, tt.level, result)
			}
		})
	}
}
