package framework

import "time"

// TimedMutex is a mutual exclusion lock whose acquisition can give up
// after a bounded wait. The zero value is not usable, use NewTimedMutex.
type TimedMutex struct {
	ch chan struct{}
}

// NewTimedMutex creates an unlocked TimedMutex.
func NewTimedMutex() *TimedMutex {
	return &TimedMutex{ch: make(chan struct{}, 1)}
}

// Lock acquires the lock, waiting as long as needed.
func (m *TimedMutex) Lock() {
	m.ch <- struct{}{}
}

// TryLock acquires the lock only if it is free right now.
func (m *TimedMutex) TryLock() bool {
	select {
	case m.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// TryLockFor waits at most d for the lock.
// It returns false if the lock was not acquired.
func (m *TimedMutex) TryLockFor(d time.Duration) bool {
	if d <= 0 {
		return m.TryLock()
	}
	if m.TryLock() {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case m.ch <- struct{}{}:
		return true
	case <-timer.C:
		return false
	}
}

// Unlock releases the lock. It panics if the lock is not held.
func (m *TimedMutex) Unlock() {
	select {
	case <-m.ch:
	default:
		panic("framework: unlock of unlocked TimedMutex")
	}
}
