package sensor

import (
	"errors"
	"sync"
)

// ErrSimulatedFault is returned by Sim on injected failures.
var ErrSimulatedFault = errors.New("simulated conversion fault")

// Sim is a simulated converter sweeping a triangle wave over the full
// range of Max. Every FailEvery-th read fails when FailEvery > 0.
type Sim struct {
	Max       int32
	Step      int32
	FailEvery int

	lock  sync.Mutex
	value int32
	dir   int32
	reads int
}

// NewSim creates a Sim for the given scale.
func NewSim(scale Scale, step int32, failEvery int) *Sim {
	if step <= 0 {
		step = 1
	}
	return &Sim{Max: scale.Max(), Step: step, FailEvery: failEvery, dir: 1}
}

// Read implements ADC.
func (s *Sim) Read() (int32, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.reads++
	if s.FailEvery > 0 && s.reads%s.FailEvery == 0 {
		return 0, ErrSimulatedFault
	}
	val := s.value
	if s.dir == 0 {
		s.dir = 1
	}
	s.value += s.dir * s.Step
	if s.value >= s.Max {
		s.value, s.dir = s.Max, -1
	} else if s.value <= 0 {
		s.value, s.dir = 0, 1
	}
	return val, nil
}

// Reads returns the number of conversions requested.
func (s *Sim) Reads() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.reads
}
