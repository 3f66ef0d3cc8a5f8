package clock

import "time"

// Clock is the source of login and enrollment timestamps
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC, so stored timestamps
// compare equal regardless of the server's zone
type RealClock struct{}

func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time, rounded to microseconds
// so it survives a postgres TIMESTAMPTZ round trip
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}
