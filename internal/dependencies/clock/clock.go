package clock

import "time"

// DateKeyLayout is the layout of the ISO date keys daily grids are stored under
const DateKeyLayout = "2006-01-02"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// DateKey returns the YYYY-MM-DD key for the given time in UTC
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// DisplayDate formats a time as DD,MM,YY for the daily challenge label
func DisplayDate(t time.Time) string {
	return t.UTC().Format("02,01,06")
}
