package store

import "time"

// Clock supplies write timestamps for created_at and updated_at columns.
// Production code uses SystemClock; tests substitute a pinned source
// through WithClock so timestamp assertions are exact.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
