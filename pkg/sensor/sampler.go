package sensor

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

// Sampler performs one conversion per wake of its trigger signal and
// commits the result into State.
type Sampler struct {
	ADC         ADC
	Scale       Scale
	FullScaleMV int32
	State       *State
	Trigger     *fx.Signal
	// Render is raised after every committed conversion.
	Render   fx.Notifier
	Priority int
	Executor fx.Executor

	samples atomic.Uint64
	errors  atomic.Uint64
}

// Name implements Named.
func (s *Sampler) Name() string {
	return "adc"
}

// Run implements Runnable.
func (s *Sampler) Run(ctx context.Context) error {
	exec := s.Executor
	if exec == nil {
		exec = fx.InlineExecutor{}
	}
	for {
		if err := s.Trigger.Wait(ctx); err != nil {
			return err
		}
		var err error
		if e := exec.Execute(ctx, s.Priority, func() { err = s.SampleOnce() }); e != nil {
			return e
		}
		if err != nil {
			glog.Warningf("ADC sample skipped: %v", err)
		}
	}
}

// SampleOnce converts once and commits the reading.
// On conversion failure the state is left untouched. If the state stays
// locked past its write timeout the reading is dropped and the error wraps
// ErrTimeout.
func (s *Sampler) SampleOnce() error {
	raw, err := s.ADC.Read()
	if err != nil {
		s.errors.Add(1)
		return fmt.Errorf("ADC read: %w", err)
	}
	mv, err := s.Scale.Millivolts(raw)
	if err != nil {
		s.errors.Add(1)
		return fmt.Errorf("ADC raw %d to millivolts: %w", raw, err)
	}
	fullScale := s.FullScaleMV
	if fullScale == 0 {
		fullScale = DefaultFullScaleMV
	}
	r := NewReading(mv, fullScale)
	if !s.State.Write(r) {
		return fmt.Errorf("sensor state busy, dropped %dmV: %w", mv, fx.ErrTimeout)
	}
	s.samples.Add(1)
	glog.V(4).Infof("ADC raw %d => %dmV (%d%%)", raw, r.Millivolts, r.Percent)
	if s.Render != nil {
		s.Render.Raise()
	}
	return nil
}

// Samples returns the number of committed conversions.
func (s *Sampler) Samples() uint64 {
	return s.samples.Load()
}

// Errors returns the number of failed conversions.
func (s *Sampler) Errors() uint64 {
	return s.errors.Load()
}
