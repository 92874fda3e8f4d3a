package framework

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrInvalidPeriod is returned when starting a Ticker without a positive period.
var ErrInvalidPeriod = errors.New("invalid ticker period")

// Ticker invokes Notify every Period while started.
// Notify runs on the ticker goroutine and must not block; raising a
// Signal is the intended use.
type Ticker struct {
	Period time.Duration
	Notify func()

	lock   sync.Mutex
	stopCh chan struct{}
	doneCh chan struct{}
	ticks  uint64
}

// NewTicker creates a stopped Ticker.
func NewTicker(period time.Duration, notify func()) *Ticker {
	return &Ticker{Period: period, Notify: notify}
}

// Start starts ticking, the first tick fires one Period from now.
// Starting a running Ticker is a no-op.
func (t *Ticker) Start() error {
	if t.Period <= 0 {
		return ErrInvalidPeriod
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.stopCh != nil {
		return nil
	}
	t.stopCh, t.doneCh = make(chan struct{}), make(chan struct{})
	go t.tick(time.NewTicker(t.Period), t.stopCh, t.doneCh)
	return nil
}

// Stop stops ticking. No Notify is invoked after Stop returns.
func (t *Ticker) Stop() {
	t.lock.Lock()
	stopCh, doneCh := t.stopCh, t.doneCh
	t.stopCh, t.doneCh = nil, nil
	t.lock.Unlock()
	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}
}

// Ticks returns the number of ticks fired so far.
func (t *Ticker) Ticks() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.ticks
}

// Run implements Runnable, ticking until ctx is done.
func (t *Ticker) Run(ctx context.Context) error {
	if err := t.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	t.Stop()
	return ctx.Err()
}

func (t *Ticker) tick(ticker *time.Ticker, stopCh, doneCh chan struct{}) {
	defer close(doneCh)
	defer ticker.Stop()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			t.lock.Lock()
			t.ticks++
			t.lock.Unlock()
			if t.Notify != nil {
				t.Notify()
			}
		}
	}
}
