package models

import (
	"sort"
	"time"
)

// Reading is a single cleaned meter observation: one energy value for one
// building at one point in time.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	KWh       float64   `json:"kwh"`
	Building  string    `json:"building"`
}

// Series is the combined, cleaned time series across all source files.
type Series []Reading

// Sort orders the series by timestamp, ties by building name. The sort is
// stable so rows that share both keys keep their input order.
func (s Series) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		if !s[i].Timestamp.Equal(s[j].Timestamp) {
			return s[i].Timestamp.Before(s[j].Timestamp)
		}
		return s[i].Building < s[j].Building
	})
}

// Buildings returns the distinct building names in the series, sorted.
func (s Series) Buildings() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, r := range s {
		if _, ok := seen[r.Building]; !ok {
			seen[r.Building] = struct{}{}
			names = append(names, r.Building)
		}
	}
	sort.Strings(names)
	return names
}

// AggregateRow is one time-bucketed sum for one building. Bucket is the
// bucket label (day start, hour start, or week-ending Sunday).
type AggregateRow struct {
	Building string    `json:"building"`
	Bucket   time.Time `json:"timestamp"`
	KWh      float64   `json:"kwh"`
}

// SummaryRow holds the summary statistics for one building over its entire
// reading set.
type SummaryRow struct {
	Building string  `json:"building"`
	Sum      float64 `json:"sum"`
	Mean     float64 `json:"mean"`
	Max      float64 `json:"max"`
	Min      float64 `json:"min"`
	Median   float64 `json:"median"`
}
