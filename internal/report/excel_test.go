package report

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/campuswatt/campuswatt/internal/aggregate"
)

func TestWriteWorkbook(t *testing.T) {
	series := campusSeries()
	summary := aggregate.Summarize(series)
	daily := aggregate.Resample(series, aggregate.LevelDaily)
	weekly := aggregate.Resample(series, aggregate.LevelWeekly)

	w := testWriter(t)
	if err := w.WriteWorkbook(summary, daily, weekly); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(w.Path(WorkbookFile))
	if err != nil {
		t.Fatalf("failed to open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	for _, sheet := range []string{"Summary", "Daily", "Weekly"} {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			t.Errorf("missing sheet %s (index %d, err %v)", sheet, idx, err)
		}
	}

	rows, err := f.GetRows("Summary")
	if err != nil {
		t.Fatalf("failed to read Summary sheet: %v", err)
	}

	// Header + one row per building + totals row
	if len(rows) != len(summary)+2 {
		t.Fatalf("Summary sheet has %d rows, want %d", len(rows), len(summary)+2)
	}

	if rows[1][0] != "bldgA" || rows[1][1] != "15" {
		t.Errorf("Summary row 1 = %v, want bldgA / 15", rows[1])
	}

	totals := rows[len(rows)-1]
	if totals[0] != "Totals" || totals[1] != "35" {
		t.Errorf("Totals row = %v, want Totals / 35", totals)
	}

	dailyRows, err := f.GetRows("Daily")
	if err != nil {
		t.Fatalf("failed to read Daily sheet: %v", err)
	}
	if len(dailyRows) != len(daily)+1 {
		t.Errorf("Daily sheet has %d rows, want %d", len(dailyRows), len(daily)+1)
	}
	if dailyRows[1][1] != "2024-01-01" {
		t.Errorf("Daily row timestamp = %q, want 2024-01-01", dailyRows[1][1])
	}
}
