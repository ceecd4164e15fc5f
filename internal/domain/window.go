package domain

import "time"

const dateLayout = "02.01.2006"

// DateWindow is an inclusive Monday..Sunday range of calendar dates.
// Start and End carry no meaningful time-of-day.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d's calendar date falls inside the window.
func (w DateWindow) Contains(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.Start) && !day.After(w.End)
}

func (w DateWindow) String() string {
	return w.Start.Format(dateLayout) + " - " + w.End.Format(dateLayout)
}
