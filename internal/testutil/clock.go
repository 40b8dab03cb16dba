// Package testutil provides deterministic fixtures shared by tests:
// a fixed wall clock and a sequential transaction-id generator, so
// ledger lines and rendered reports are byte-stable across runs.
package testutil

import (
	"fmt"
	"time"
)

// Clock is a controllable time source. Now never moves unless the test
// advances it explicitly.
type Clock struct {
	t time.Time
}

// FixedClock creates a clock pinned at t.
func FixedClock(t time.Time) *Clock {
	return &Clock{t: t}
}

// Now returns the current fixed time. Pass the method itself wherever
// a component accepts a func() time.Time.
func (c *Clock) Now() time.Time {
	return c.t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// SequentialIDs returns a generator yielding "id000001", "id000002", …
// in place of random 8-hex sale transaction ids.
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%06d", n)
	}
}
