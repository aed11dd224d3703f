package aggregate

import (
	"testing"
	"time"

	"github.com/campuswatt/campuswatt/internal/models"
)

func TestSummarize(t *testing.T) {
	rows := Summarize(campusSeries())

	if len(rows) != 2 {
		t.Fatalf("Expected 2 summary rows, got %d", len(rows))
	}

	a := rows[0]
	if a.Building != "bldgA" {
		t.Fatalf("Expected bldgA first, got %s", a.Building)
	}
	if a.Sum != 15 || a.Mean != 7.5 || a.Max != 10 || a.Min != 5 || a.Median != 7.5 {
		t.Errorf("Unexpected bldgA stats: %+v", a)
	}

	b := rows[1]
	if b.Building != "bldgB" {
		t.Fatalf("Expected bldgB second, got %s", b.Building)
	}
	if b.Sum != 20 || b.Mean != 20 || b.Max != 20 || b.Min != 20 || b.Median != 20 {
		t.Errorf("Unexpected bldgB stats: %+v", b)
	}
}

func TestSummarizeEmptySeries(t *testing.T) {
	rows := Summarize(nil)
	if len(rows) != 0 {
		t.Errorf("Expected no rows for empty series, got %d", len(rows))
	}
}

func TestTotal(t *testing.T) {
	rows := []models.SummaryRow{
		{Building: "bldgA", Sum: 15},
		{Building: "bldgB", Sum: 20},
	}

	if got := Total(rows); got != 35 {
		t.Errorf("Total = %v, want 35", got)
	}

	if got := Total(nil); got != 0 {
		t.Errorf("Total(nil) = %v, want 0", got)
	}
}

func TestHighest(t *testing.T) {
	rows := []models.SummaryRow{
		{Building: "bldgA", Sum: 15},
		{Building: "bldgB", Sum: 20},
	}

	best, ok := Highest(rows)
	if !ok {
		t.Fatal("Expected ok for non-empty rows")
	}
	if best.Building != "bldgB" || best.Sum != 20 {
		t.Errorf("Expected bldgB (20), got %s (%v)", best.Building, best.Sum)
	}
}

func TestHighestTieGoesToFirst(t *testing.T) {
	rows := []models.SummaryRow{
		{Building: "annex", Sum: 20},
		{Building: "bldgB", Sum: 20},
	}

	best, ok := Highest(rows)
	if !ok {
		t.Fatal("Expected ok for non-empty rows")
	}
	if best.Building != "annex" {
		t.Errorf("Tie should go to first row, got %s", best.Building)
	}
}

func TestHighestEmpty(t *testing.T) {
	if _, ok := Highest(nil); ok {
		t.Error("Expected ok=false for empty rows")
	}
}

func TestSummarizeMedianInterpolation(t *testing.T) {
	series := models.Series{
		{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), KWh: 1, Building: "hall"},
		{Timestamp: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), KWh: 2, Building: "hall"},
		{Timestamp: time.Date(2024, 1, 1, 2, 0, 0, 0, time.UTC), KWh: 3, Building: "hall"},
		{Timestamp: time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), KWh: 4, Building: "hall"},
	}

	rows := Summarize(series)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if !almostEqual(rows[0].Median, 2.5) {
		t.Errorf("Median = %v, want 2.5", rows[0].Median)
	}
}
