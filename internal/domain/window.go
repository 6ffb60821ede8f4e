package domain

import "time"

// Window is an inclusive [Start, End] timestamp range used for overlap filtering.
type Window struct {
	Start time.Time
	End   time.Time
}

// InstantWindow returns a zero-width window where Start and End are both t.
func InstantWindow(t time.Time) Window {
	return Window{Start: t, End: t}
}

// DayWindow returns the calendar day containing t, in t's location.
// End is the last representable instant of that day.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}
