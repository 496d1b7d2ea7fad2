// Package budget tracks the wall-clock allowance for a single move.
package budget

import (
	"context"
	"time"
)

// Monitor wraps a deadline. Searches call Expired at node boundaries; that is
// the only cancellation point.
type Monitor struct {
	ctx      context.Context
	cancel   context.CancelFunc
	start    time.Time
	deadline time.Time
}

// New starts a monitor that expires after d or when parent is done.
func New(parent context.Context, d time.Duration) *Monitor {
	ctx, cancel := context.WithTimeout(parent, d)
	start := time.Now()
	return &Monitor{ctx: ctx, cancel: cancel, start: start, deadline: start.Add(d)}
}

// Sub carves out a child monitor with a fraction of the remaining time. The
// child also expires when m does.
func (m *Monitor) Sub(fraction float64) *Monitor {
	d := time.Duration(float64(m.Remaining()) * fraction)
	return New(m.ctx, d)
}

func (m *Monitor) Context() context.Context {
	return m.ctx
}

func (m *Monitor) Expired() bool {
	return m.ctx.Err() != nil
}

func (m *Monitor) Remaining() time.Duration {
	return max(0, time.Until(m.deadline))
}

func (m *Monitor) Elapsed() time.Duration {
	return time.Since(m.start)
}

// Release frees the timer. It is safe to call more than once.
func (m *Monitor) Release() {
	m.cancel()
}
