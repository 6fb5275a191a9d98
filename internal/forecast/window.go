package forecast

import (
	"fmt"
	"time"
)

// Window is a same-day time range in minutes since local midnight,
// half-open: Start inclusive, End exclusive.
type Window struct {
	Start int
	End   int
}

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parsing clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return h*60 + m, nil
}

// ParseWindow builds a Window from "HH:MM" start and end strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Empty reports whether the window covers no time.
func (w Window) Empty() bool {
	return w.End <= w.Start
}

// Duration returns the window length in minutes.
func (w Window) Duration() int {
	if w.Empty() {
		return 0
	}
	return w.End - w.Start
}

// Contains reports whether the minute-of-day lies inside the window.
func (w Window) Contains(minuteOfDay int) bool {
	return minuteOfDay >= w.Start && minuteOfDay < w.End
}

// At materializes the window on a concrete day in the given location.
func (w Window) At(day time.Time, loc *time.Location) (start, end time.Time) {
	d := day.In(loc)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(time.Duration(w.Start) * time.Minute),
		midnight.Add(time.Duration(w.End) * time.Minute)
}

// ResolveDayWindow intersects the "willing to be notified" and "available
// to work" windows for a day. ok is false when they do not overlap, meaning
// the user should not be prompted at all that day.
func ResolveDayWindow(notify, avail Window) (Window, bool) {
	w := Window{Start: maxIntPair(notify.Start, avail.Start), End: minInt(notify.End, avail.End)}
	if w.Empty() {
		return Window{}, false
	}
	return w, true
}

// RecommendedStart returns the earliest acceptable start inside the window
// on now's day: now itself when already inside, the window start when
// before it, and ok=false once the window has closed.
func (w Window) RecommendedStart(now time.Time, loc *time.Location) (time.Time, bool) {
	if w.Empty() {
		return time.Time{}, false
	}
	start, end := w.At(now, loc)
	if !now.Before(end) {
		return time.Time{}, false
	}
	if now.After(start) {
		return now, true
	}
	return start, true
}

func maxIntPair(a, b int) int {
	if a > b {
		return a
	}
	return b
}
