package scanengine

import "time"

// TimeProvider provides the current time for dependency injection.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider implements TimeProvider using real time functions.
type RealTimeProvider struct{}

// Now returns the current time.
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
