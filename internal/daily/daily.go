package daily

import (
	"time"
)

// LaunchDate is the print date of puzzle #0.
var LaunchDate = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// DateKey returns YYYY-MM-DD for t as seen in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(time.DateOnly)
}

// DaysSinceLaunch returns the number of whole calendar days between the
// launch date and t's calendar date in loc.
func DaysSinceLaunch(t time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(LaunchDate) / (24 * time.Hour))
}

// Yesterday returns the date key for the calendar day before t in loc.
func Yesterday(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d-1, 12, 0, 0, 0, loc).Format(time.DateOnly)
}
