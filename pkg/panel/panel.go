// Package panel assembles the status panel task set.
package panel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/statuspanel/pkg/config"
	"github.com/robotalks/statuspanel/pkg/console"
	"github.com/robotalks/statuspanel/pkg/display"
	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/led"
	"github.com/robotalks/statuspanel/pkg/sensor"
)

// Hardware is what the panel drives.
type Hardware struct {
	ADC  sensor.ADC
	Pin  led.Pin
	Sink display.Sink
}

// Status is a snapshot of what the panel shows.
type Status struct {
	Label      string        `json:"label"`
	Mode       led.Mode      `json:"mode"`
	Fault      bool          `json:"fault,omitempty"`
	Millivolts int32         `json:"millivolts"`
	Percent    uint8         `json:"percent"`
	Valid      bool          `json:"valid"`
	Uptime     time.Duration `json:"uptime"`
}

// Panel wires the sampler, blinker, renderer and command tasks around a
// priority scheduler.
type Panel struct {
	Config     *config.Config
	Scheduler  *fx.Scheduler
	Ticker     *fx.Ticker
	State      *sensor.State
	LED        *led.Controller
	Sampler    *sensor.Sampler
	Blinker    *led.Blinker
	Renderer   *display.Renderer
	Dispatcher *console.Dispatcher
	Commands   *console.CommandTask

	sampleSig *fx.Signal
	blinkSig  *fx.Signal
	renderSig *fx.Signal
	started   time.Time

	lock      sync.RWMutex
	observers []func(Status)
	runner    *fx.Runner
}

// New creates a Panel. Nothing runs until Run.
func New(cfg *config.Config, hw Hardware) (*Panel, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if hw.ADC == nil || hw.Pin == nil || hw.Sink == nil {
		return nil, fmt.Errorf("incomplete hardware: ADC, pin and display sink are required")
	}
	scale := sensor.Scale{
		ReferenceMV: cfg.Sampling.ReferenceMV,
		Resolution:  cfg.Sampling.Resolution,
		Gain:        sensor.Gain{Num: cfg.Sampling.GainNum, Den: cfg.Sampling.GainDen},
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	desc := display.DescriptorAt(cfg.Display.XOffset, cfg.Display.YOffset)
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Priorities.Validate(); err != nil {
		return nil, err
	}

	p := &Panel{
		Config:    cfg,
		Scheduler: fx.NewScheduler(),
		State:     sensor.NewState(),
		sampleSig: fx.NewSignal(),
		blinkSig:  fx.NewSignal(),
		renderSig: fx.NewSignal(),
		started:   time.Now(),
	}
	p.State.WriteTimeout = cfg.Sampling.WriteTimeout
	p.State.ReadTimeout = cfg.Sampling.ReadTimeout
	p.Ticker = fx.NewTicker(cfg.Sampling.Period, p.sampleSig.Raise)
	p.LED = led.NewController(hw.Pin, p.blinkSig, p.renderSig)
	p.Sampler = &sensor.Sampler{
		ADC:         hw.ADC,
		Scale:       scale,
		FullScaleMV: cfg.Sampling.FullScaleMV,
		State:       p.State,
		Trigger:     p.sampleSig,
		Render:      p.renderSig,
		Priority:    cfg.Priorities.Sampler,
		Executor:    p.Scheduler,
	}
	p.Blinker = &led.Blinker{
		Controller: p.LED,
		Pin:        hw.Pin,
		Signal:     p.blinkSig,
		HalfPeriod: cfg.LED.HalfPeriod,
		Priority:   cfg.Priorities.Blink,
		Executor:   p.Scheduler,
	}
	p.Renderer = &display.Renderer{
		Sink:       hw.Sink,
		Labels:     p.LED,
		Readings:   p.State,
		Signal:     p.renderSig,
		Descriptor: desc,
		Priority:   cfg.Priorities.Renderer,
		Executor:   p.Scheduler,
		OnRender:   p.rendered,
	}
	p.Dispatcher = console.NewDispatcher(p)
	p.Commands = console.NewCommandTask(p.Dispatcher, cfg.Console.QueueSize)
	p.Commands.Priority = cfg.Priorities.Command
	p.Commands.Executor = p.Scheduler
	p.registerReports()
	return p, nil
}

// Tasks returns the fixed task table.
func (p *Panel) Tasks() []fx.TaskDescriptor {
	return []fx.TaskDescriptor{
		{Name: p.Renderer.Name(), Priority: p.Renderer.Priority, Task: p.Renderer},
		{Name: p.Sampler.Name(), Priority: p.Sampler.Priority, Task: p.Sampler},
		{Name: p.Commands.Name(), Priority: p.Commands.Priority, Task: p.Commands},
		{Name: p.Blinker.Name(), Priority: p.Blinker.Priority, Task: p.Blinker},
	}
}

// SetOutputMode applies an indicator command: 0 off, 1 on, 2 blink,
// anything else is off with an ERROR status.
func (p *Panel) SetOutputMode(command int) {
	p.LED.SetOutputMode(command)
}

// SensorSnapshot returns the latest committed reading, or (0, 0) if there
// is none yet or the state stays locked for SnapshotTimeout.
func (p *Panel) SensorSnapshot() (int32, uint8) {
	r, ok := p.State.ReadWithin(p.Config.Sampling.SnapshotTimeout)
	if !ok || !r.Valid {
		return 0, 0
	}
	return r.Millivolts, r.Percent
}

// RenderStatus composes and submits a frame showing label.
// It needs the scheduler running.
func (p *Panel) RenderStatus(ctx context.Context, label string) error {
	return p.Renderer.RenderStatus(ctx, label)
}

// RequestRender asks the renderer for a redraw.
func (p *Panel) RequestRender() {
	p.renderSig.Raise()
}

// Status returns the current status.
func (p *Panel) Status() Status {
	r, _ := p.State.ReadWithin(p.Config.Sampling.SnapshotTimeout)
	return p.status(p.LED.StatusLabel(), r)
}

// Uptime returns the time since the panel was created.
func (p *Panel) Uptime() time.Duration {
	return time.Since(p.started)
}

// Observe registers fn to be called after every rendered frame.
// fn runs inside the renderer step and must not block.
func (p *Panel) Observe(fn func(Status)) {
	p.lock.Lock()
	p.observers = append(p.observers, fn)
	p.lock.Unlock()
}

// Run starts the scheduler, the ticker, the task table and extra
// runnables, renders the initial screen and waits for all of them.
func (p *Panel) Run(ctx context.Context, extra ...fx.Runnable) error {
	runner := fx.NewRunnerWith(ctx)
	p.lock.Lock()
	p.runner = runner
	p.lock.Unlock()

	runner.Go(fx.NamedRun("scheduler", p.Scheduler))
	runner.Spawn(p.Tasks()...)
	runner.Go(fx.NamedRun("ticker", p.Ticker))
	runner.Go(extra...)

	if err := p.RenderStatus(runner.Context, led.LabelOff); err != nil {
		glog.Warningf("initial render: %v", err)
	}
	p.RequestRender()
	glog.Infof("panel running, sampling every %v", p.Config.Sampling.Period)
	return runner.Wait()
}

// TaskStates returns the states of running tasks, empty before Run.
func (p *Panel) TaskStates() []fx.TaskState {
	p.lock.RLock()
	runner := p.runner
	p.lock.RUnlock()
	if runner == nil {
		return nil
	}
	return runner.Tasks()
}

func (p *Panel) status(label string, r sensor.Reading) Status {
	st := p.LED.Status()
	return Status{
		Label:      label,
		Mode:       st.Mode,
		Fault:      st.Fault,
		Millivolts: r.Millivolts,
		Percent:    r.Percent,
		Valid:      r.Valid,
		Uptime:     p.Uptime(),
	}
}

func (p *Panel) rendered(label string, r sensor.Reading) {
	p.lock.RLock()
	observers := p.observers
	p.lock.RUnlock()
	if len(observers) == 0 {
		return
	}
	st := p.status(label, r)
	for _, fn := range observers {
		fn(st)
	}
}
