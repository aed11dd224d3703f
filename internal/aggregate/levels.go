package aggregate

import "time"

// Level represents the time bucket size
type Level string

const (
	LevelHourly Level = "1h"
	LevelDaily  Level = "1d"
	LevelWeekly Level = "1w"
)

// TruncateToHour truncates time to the start of the hour
func TruncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// TruncateToDay truncates time to midnight of the calendar day
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekEnding returns the label of the Sunday-ending week containing t: the
// first Sunday on or after t's calendar day, at midnight. A Sunday reading,
// at any time of day, labels that same Sunday.
func WeekEnding(t time.Time) time.Time {
	d := TruncateToDay(t)
	offset := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, offset)
}

// Bucket maps a timestamp to its bucket label for the given level
func Bucket(t time.Time, level Level) time.Time {
	switch level {
	case LevelHourly:
		return TruncateToHour(t)
	case LevelWeekly:
		return WeekEnding(t)
	default:
		return TruncateToDay(t)
	}
}
