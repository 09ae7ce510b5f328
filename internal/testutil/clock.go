package testutil

import (
	"sync"
	"time"
)

// Clock is a deterministic time source for tests.
//
// Each call to Now returns the current instant and then advances it by a
// fixed step, so successive writes receive strictly increasing timestamps
// the test knows in advance. Unlike the wall clock, Clock can be reset for
// test reuse.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
	step  time.Duration
}

// Epoch is the default starting instant for test clocks. A fixed UTC date
// keeps golden files and timestamp assertions stable across machines.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// NewClock creates a clock that starts at Epoch and advances by step on
// every Now call. A zero step yields a frozen clock.
func NewClock(step time.Duration) *Clock {
	return NewClockAt(Epoch, step)
}

// NewClockAt creates a clock that starts at the given instant.
func NewClockAt(start time.Time, step time.Duration) *Clock {
	return &Clock{start: start, now: start, step: step}
}

// Now returns the current instant and advances the clock by one step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Peek returns the instant the next Now call will produce, without
// advancing the clock.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d without producing a tick. Useful to
// simulate idle time between operations.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Reset returns the clock to its starting instant.
//
// Used for test reuse. After Reset, the next Now call returns the same
// value the first one did.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}
