package utils

import "time"

// DayStart normalizes t to midnight UTC of its calendar date. All date
// arithmetic and range queries work in this space so the day boundary is
// stable regardless of the driver or the host timezone.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the start of the current local calendar date.
func Today() time.Time {
	return DayStart(time.Now())
}

// DaysBetween returns the number of whole calendar days from "from" to
// "to", negative when "to" is in the past.
func DaysBetween(from, to time.Time) int {
	return int(DayStart(to).Sub(DayStart(from)) / (24 * time.Hour))
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// ShortDate renders a date the way item cards show it, e.g. "Sep 14".
func ShortDate(t time.Time) string {
	return t.Format("Jan 2")
}
