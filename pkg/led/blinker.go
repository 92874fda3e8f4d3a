package led

import (
	"context"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

// DefaultHalfPeriod is the time between toggles while blinking.
const DefaultHalfPeriod = 500 * time.Millisecond

// Blinker toggles the pin while the Controller is blinking.
type Blinker struct {
	Controller *Controller
	Pin        Pin
	Signal     *fx.Signal
	HalfPeriod time.Duration
	Priority   int
	Executor   fx.Executor

	level bool
}

// Name implements Named.
func (b *Blinker) Name() string {
	return "blink"
}

// Run implements Runnable.
func (b *Blinker) Run(ctx context.Context) error {
	exec := b.Executor
	if exec == nil {
		exec = fx.InlineExecutor{}
	}
	half := b.HalfPeriod
	if half <= 0 {
		half = DefaultHalfPeriod
	}
	for {
		var blinking bool
		if err := exec.Execute(ctx, b.Priority, func() { blinking = b.step() }); err != nil {
			return err
		}
		if blinking {
			if _, err := b.Signal.WaitTimeout(ctx, half); err != nil {
				return err
			}
		} else if err := b.Signal.Wait(ctx); err != nil {
			return err
		}
	}
}

// step drives the pin once and tells whether blinking is active.
func (b *Blinker) step() bool {
	switch b.Controller.Mode() {
	case ModeBlinking:
		b.level = !b.level
		b.set(b.level)
		return true
	case ModeOn:
		b.set(true)
	default:
		b.set(false)
	}
	return false
}

func (b *Blinker) set(high bool) {
	if err := b.Pin.Set(high); err != nil {
		glog.Warningf("blink pin: %v", err)
	}
}
