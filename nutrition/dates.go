package nutrition

import "time"

// sqliteTimeLayout matches SQLite's CURRENT_TIMESTAMP output, so range
// comparisons against stored row timestamps work as plain string compares.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// FormatSQLite renders t in the layout SQLite uses for DATETIME defaults.
// All stored timestamps are UTC.
func FormatSQLite(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

// StartOfDay returns midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns the last representable second of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Second)
}

// StartOfWeek returns midnight Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	weekday := day.Weekday()
	if weekday == time.Sunday {
		return day.AddDate(0, 0, -6)
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}

// LastWeekRange returns the [start, end] bounds of the week before the one
// containing t.
func LastWeekRange(t time.Time) (start, end time.Time) {
	thisWeek := StartOfWeek(t)
	return thisWeek.AddDate(0, 0, -7), thisWeek.Add(-time.Second)
}
