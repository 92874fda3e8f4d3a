package framework

import (
	"context"
	"sync"

	"github.com/golang/glog"
)

// Scheduler runs task steps one at a time, highest priority first.
// Tasks block on their own primitives and hand a run-to-completion step
// to the scheduler once they are ready. A step never preempts another
// step, but whenever a step finishes the most urgent ready step runs next.
type Scheduler struct {
	ready [PriorityLevels]stepList
	lock  sync.Mutex

	wakeUpCh chan struct{}
	current  int
	running  bool
	steps    [PriorityLevels]uint64
}

type stepList struct {
	head *stepItem
	tail *stepItem
}

type stepItem struct {
	fn        func()
	done      chan struct{}
	cancelled bool
	next      *stepItem
}

func (l *stepList) append(item *stepItem) {
	if l.head == nil {
		l.head = item
	} else {
		l.tail.next = item
	}
	l.tail = item
}

func (l *stepList) pop() *stepItem {
	item := l.head
	if item != nil {
		l.head = item.next
		if l.head == nil {
			l.tail = nil
		}
		item.next = nil
	}
	return item
}

// NewScheduler creates a Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{wakeUpCh: make(chan struct{}, 1), current: -1}
}

// Execute implements Executor.
func (s *Scheduler) Execute(ctx context.Context, priorityLevel int, fn func()) error {
	item := &stepItem{fn: fn, done: make(chan struct{})}
	s.lock.Lock()
	s.ready[ClampPriority(priorityLevel)].append(item)
	s.lock.Unlock()
	s.TriggerNext()
	select {
	case <-item.done:
		return nil
	case <-ctx.Done():
		s.lock.Lock()
		select {
		case <-item.done:
			s.lock.Unlock()
			return nil
		default:
		}
		item.cancelled = true
		s.lock.Unlock()
		return ctx.Err()
	}
}

// TriggerNext wakes up the dispatch loop without blocking.
func (s *Scheduler) TriggerNext() {
	select {
	case s.wakeUpCh <- struct{}{}:
	default:
	}
}

// Run implements Runnable and dispatches steps until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.lock.Lock()
	s.running = true
	s.lock.Unlock()
	defer func() {
		s.lock.Lock()
		s.running = false
		s.lock.Unlock()
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wakeUpCh:
			s.drain(ctx)
		}
	}
}

// Running tells whether the dispatch loop is active.
func (s *Scheduler) Running() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.running
}

// StepCounts returns the number of steps run at each priority level.
func (s *Scheduler) StepCounts() [PriorityLevels]uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.steps
}

// Current returns the priority level of the running step, or -1 when idle.
func (s *Scheduler) Current() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.current
}

func (s *Scheduler) drain(ctx context.Context) {
	for ctx.Err() == nil {
		item, level := s.next()
		if item == nil {
			return
		}
		s.runStep(item, level)
	}
}

func (s *Scheduler) next() (*stepItem, int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	for level := range s.ready {
		for item := s.ready[level].pop(); item != nil; item = s.ready[level].pop() {
			if !item.cancelled {
				s.current = level
				return item, level
			}
		}
	}
	s.current = -1
	return nil, -1
}

func (s *Scheduler) runStep(item *stepItem, level int) {
	defer func() {
		if r := recover(); r != nil {
			glog.Errorf("step at priority %d panicked: %v", level, r)
		}
		s.lock.Lock()
		s.steps[level]++
		s.current = -1
		close(item.done)
		s.lock.Unlock()
	}()
	item.fn()
}
