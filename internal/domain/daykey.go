package domain

import (
	"math"
	"time"
)

// DayLayout is the calendar-day key format used for day logs, plans and
// EAC dates.
const DayLayout = "2006-01-02"

// DayKey returns the calendar-day key for t in the given location.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD key into a midnight instant in loc.
func ParseDay(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, key, loc)
}

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DaysUntil returns the whole days from now to the deadline, at least 1.
// Past deadlines clamp to 1 so a required pace stays finite.
func DaysUntil(deadline, now time.Time) int {
	days := int(math.Ceil(deadline.Sub(now).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
