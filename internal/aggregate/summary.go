package aggregate

import (
	"sort"

	"github.com/campuswatt/campuswatt/internal/models"
)

// Summarize computes the per-building summary statistics over the entire
// series. Rows are ordered by building name ascending.
func Summarize(series models.Series) []models.SummaryRow {
	byBuilding := make(map[string][]float64)
	for _, r := range series {
		byBuilding[r.Building] = append(byBuilding[r.Building], r.KWh)
	}

	names := make([]string, 0, len(byBuilding))
	for name := range byBuilding {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]models.SummaryRow, 0, len(names))
	for _, name := range names {
		values := byBuilding[name]
		rows = append(rows, models.SummaryRow{
			Building: name,
			Sum:      Sum(values),
			Mean:     Mean(values),
			Max:      Max(values),
			Min:      Min(values),
			Median:   Median(values),
		})
	}

	return rows
}

// Total returns the campus-wide consumption: the sum of every building's Sum.
func Total(rows []models.SummaryRow) float64 {
	var total float64
	for _, row := range rows {
		total += row.Sum
	}
	return total
}

// Highest returns the summary row with the largest Sum. Ties go to the first
// occurrence in row order. ok is false for an empty slice.
func Highest(rows []models.SummaryRow) (models.SummaryRow, bool) {
	if len(rows) == 0 {
		return models.SummaryRow{}, false
	}

	best := rows[0]
	for _, row := range rows[1:] {
		if row.Sum > best.Sum {
			best = row
		}
	}
	return best, true
}
