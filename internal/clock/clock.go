package clock

import "time"

// System reads the wall clock, in UTC.
type System struct{}

// GetNow returns the current time in UTC.
func (System) GetNow() time.Time {
	return time.Now().UTC()
}

// Stub always returns Now. Tests set Now before exercising the code under test.
type Stub struct {
	Now time.Time
}

// GetNow returns the configured time.
func (s *Stub) GetNow() time.Time {
	return s.Now
}
