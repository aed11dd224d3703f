package aggregate

import (
	"sort"

	"github.com/campuswatt/campuswatt/internal/models"
)

// Resample groups the series by (building, bucket) at the given level and
// sums the energy in each bucket. Buckets with no readings do not appear.
// Rows are ordered by building name ascending, then bucket ascending.
func Resample(series models.Series, level Level) []models.AggregateRow {
	type key struct {
		building string
		bucket   int64
	}

	sums := make(map[key]float64)
	labels := make(map[key]models.AggregateRow)

	for _, r := range series {
		b := Bucket(r.Timestamp, level)
		k := key{building: r.Building, bucket: b.UnixNano()}
		sums[k] += r.KWh
		if _, ok := labels[k]; !ok {
			labels[k] = models.AggregateRow{Building: r.Building, Bucket: b}
		}
	}

	rows := make([]models.AggregateRow, 0, len(sums))
	for k, sum := range sums {
		row := labels[k]
		row.KWh = sum
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Building != rows[j].Building {
			return rows[i].Building < rows[j].Building
		}
		return rows[i].Bucket.Before(rows[j].Bucket)
	})

	return rows
}

// TopN returns the n largest rows by energy, descending. The sort is stable,
// so ties keep the input order. The input slice is not modified.
func TopN(rows []models.AggregateRow, n int) []models.AggregateRow {
	if n <= 0 {
		return nil
	}

	sorted := make([]models.AggregateRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].KWh > sorted[j].KWh
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
