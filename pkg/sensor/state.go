package sensor

import (
	"sync/atomic"
	"time"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

// Default lock timeouts.
const (
	DefaultWriteTimeout = 100 * time.Millisecond
	DefaultReadTimeout  = 10 * time.Millisecond
)

// State is the shared sensor record: a single writer, many readers, each
// access bounded in time. Records are copied whole under the lock.
type State struct {
	WriteTimeout time.Duration
	ReadTimeout  time.Duration

	lock     *fx.TimedMutex
	current  Reading
	observed atomic.Pointer[Reading]

	dropped atomic.Uint64
	stale   atomic.Uint64
	commits atomic.Uint64
}

// NewState creates a State holding an invalid Reading.
func NewState() *State {
	return &State{
		WriteTimeout: DefaultWriteTimeout,
		ReadTimeout:  DefaultReadTimeout,
		lock:         fx.NewTimedMutex(),
	}
}

// Write commits r. It returns false and drops the update if the lock can't
// be acquired within WriteTimeout.
func (s *State) Write(r Reading) bool {
	if !s.lock.TryLockFor(s.WriteTimeout) {
		s.dropped.Add(1)
		return false
	}
	s.current = r
	s.lock.Unlock()
	s.commits.Add(1)
	return true
}

// Read returns the committed Reading, waiting at most ReadTimeout.
// On timeout it returns the last successfully observed value and false.
func (s *State) Read() (Reading, bool) {
	return s.ReadWithin(s.ReadTimeout)
}

// ReadWithin is Read with an explicit timeout.
func (s *State) ReadWithin(timeout time.Duration) (Reading, bool) {
	if !s.lock.TryLockFor(timeout) {
		s.stale.Add(1)
		return s.LastObserved(), false
	}
	r := s.current
	s.observed.Store(&r)
	s.lock.Unlock()
	return r, true
}

// LastObserved returns the value seen by the latest successful read.
func (s *State) LastObserved() Reading {
	if r := s.observed.Load(); r != nil {
		return *r
	}
	return Reading{}
}

// Stats is a snapshot of State counters.
type Stats struct {
	Commits    uint64
	Dropped    uint64
	StaleReads uint64
}

// Stats returns access counters.
func (s *State) Stats() Stats {
	return Stats{
		Commits:    s.commits.Load(),
		Dropped:    s.dropped.Load(),
		StaleReads: s.stale.Load(),
	}
}
