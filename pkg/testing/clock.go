package testing

import (
	"sync"
	"time"
)

// FakeClock provides controllable wall-clock time for deterministic motion
// tests. All methods are safe for concurrent use.
type FakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFakeClock returns a FakeClock starting at a fixed epoch.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set sets the clock to an exact time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// SetTimeOfDay positions the clock at an exact time of day on its current
// date, which is what phase-machine tests care about.
func (c *FakeClock) SetTimeOfDay(hours, minutes, seconds, millis int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	year, month, day := c.now.Date()
	c.now = time.Date(year, month, day, hours, minutes, seconds,
		millis*int(time.Millisecond), c.now.Location())
}
