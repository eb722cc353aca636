package mocks

import (
	"time"

	"github.com/mcoot/wordgrid/internal/dependencies/clock"
)

// MockClock is a mock implementation of Clock for testing
type MockClock struct {
	CurrentTime time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// SetDate moves the clock to noon UTC on the given YYYY-MM-DD date
func (c *MockClock) SetDate(dateKey string) {
	t, err := time.Parse(clock.DateKeyLayout, dateKey)
	if err != nil {
		panic("mocks: bad date key " + dateKey)
	}
	c.CurrentTime = t.Add(12 * time.Hour)
}
