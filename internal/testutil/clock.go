// Package testutil holds shared helpers for csim tests.
package testutil

import "time"

// Clock provides deterministic, monotonically increasing millisecond
// timestamps for components that take caller-supplied time.
type Clock struct {
	current time.Time
	step    time.Duration
}

// NewClock returns a clock initialized to a fixed UTC start time,
// advancing one second per reading.
func NewClock() *Clock {
	return &Clock{
		current: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		step:    time.Second,
	}
}

// NowMillis returns the current reading without advancing the clock.
func (c *Clock) NowMillis() int64 {
	return c.current.UnixMilli()
}

// NextMillis advances the clock one step and returns the new reading.
func (c *Clock) NextMillis() int64 {
	c.current = c.current.Add(c.step)

	return c.current.UnixMilli()
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
