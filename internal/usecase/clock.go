package usecase

import "time"

// SystemClock reads the wall clock and converts it to a fixed location so
// that calendar math does not depend on the host timezone.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock creates a clock pinned to loc. A nil loc means time.Local.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc}
}

// Now returns the current time in the clock's location.
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location returns the clock's location.
func (c *SystemClock) Location() *time.Location {
	return c.loc
}
