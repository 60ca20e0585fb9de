package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// It anchors "today" and the observer's timezone when a reference time is rendered.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
