// Package clock supplies wall-clock time to the engines. Production code
// uses SystemClock; tests substitute fixed instants.
package clock

import (
	"context"
	"time"
)

// Clock is the time source every engine operation reads through.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// Tick invokes fn once per interval with the current time until ctx is
// canceled. Missed intervals are coalesced by time.Ticker; fn runs to
// completion before the next tick is delivered, which serializes
// tick-driven mutations with each other.
func Tick(ctx context.Context, c Clock, interval time.Duration, fn func(now time.Time)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(c.Now())
		}
	}
}
