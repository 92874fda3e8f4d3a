package framework

import (
	"context"
	"time"
)

// Signal is a binary, coalescing event. Any number of raises before a
// waiter consumes it collapse into a single pending wake-up.
// The zero value is not usable, use NewSignal.
type Signal struct {
	ch chan struct{}
}

// NewSignal creates a Signal with nothing pending.
func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Raise implements Notifier. It never blocks.
func (s *Signal) Raise() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Pending tells whether a raise has not been consumed yet.
func (s *Signal) Pending() bool {
	return len(s.ch) > 0
}

// C exposes the channel for use in select statements.
func (s *Signal) C() <-chan struct{} {
	return s.ch
}

// Wait blocks until the signal is raised or ctx is done.
func (s *Signal) Wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WaitTimeout waits at most d. It returns true if the signal was consumed,
// false if d expired first.
func (s *Signal) WaitTimeout(ctx context.Context, d time.Duration) (bool, error) {
	if d <= 0 {
		select {
		case <-s.ch:
			return true, nil
		default:
			return false, ctx.Err()
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.ch:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
