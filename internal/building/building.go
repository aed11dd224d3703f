package building

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/campuswatt/campuswatt/internal/models"
)

// Reading is one (timestamp, energy) observation held by a Building.
type Reading struct {
	Timestamp time.Time
	KWh       float64
}

// Building is the in-memory object view of one meter: its name and the
// ordered list of readings replayed from the combined series.
type Building struct {
	Name     string
	readings []Reading
}

// AddReading appends one observation
func (b *Building) AddReading(ts time.Time, kwh float64) {
	b.readings = append(b.readings, Reading{Timestamp: ts, KWh: kwh})
}

// Readings returns the building's observations in replay order
func (b *Building) Readings() []Reading {
	return b.readings
}

// Total returns the sum of all the building's readings. It must agree with
// the Sum column of the summary statistics for the same building.
func (b *Building) Total() float64 {
	var total float64
	for _, r := range b.readings {
		total += r.KWh
	}
	return total
}

// Manager holds the building registry, keyed by building name.
type Manager struct {
	buildings map[string]*Building
}

// NewManager creates an empty registry
func NewManager() *Manager {
	return &Manager{buildings: make(map[string]*Building)}
}

// FromSeries builds the registry by replaying the combined series once.
// Readings land on their building in series order.
func FromSeries(series models.Series) *Manager {
	m := NewManager()
	for _, r := range series {
		m.Add(r.Building, r.Timestamp, r.KWh)
	}
	return m
}

// Add records one reading for the named building, creating it on first use
func (m *Manager) Add(name string, ts time.Time, kwh float64) {
	b, ok := m.buildings[name]
	if !ok {
		b = &Building{Name: name}
		m.buildings[name] = b
	}
	b.AddReading(ts, kwh)
}

// Get returns the named building, or nil when unknown
func (m *Manager) Get(name string) *Building {
	return m.buildings[name]
}

// Names returns the registered building names, sorted
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.buildings))
	for name := range m.buildings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Report returns the building name → total consumption mapping
func (m *Manager) Report() map[string]float64 {
	report := make(map[string]float64, len(m.buildings))
	for name, b := range m.buildings {
		report[name] = b.Total()
	}
	return report
}

// WriteReport prints the per-building totals to w, one line per building in
// name order. This is program output, not logging.
func (m *Manager) WriteReport(w io.Writer) error {
	report := m.Report()
	for _, name := range m.Names() {
		if _, err := fmt.Fprintf(w, "%s: %.2f kWh\n", name, report[name]); err != nil {
			return fmt.Errorf("failed to write building report: %w", err)
		}
	}
	return nil
}
