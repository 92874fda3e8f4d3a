package led

import (
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

// Commands accepted by SetOutputMode.
const (
	CommandOff   = 0
	CommandOn    = 1
	CommandBlink = 2
)

// Controller is the indicator mode state machine.
//
// The status lives in a single atomic word. Readers get an eventually
// consistent view: a load never sees a torn mode/fault pair, but there is
// no ordering with other memory beyond the load itself.
type Controller struct {
	pin    Pin
	blink  fx.Notifier
	render fx.Notifier
	status atomic.Int32
}

// NewController creates a Controller in ModeOff.
// blink and render may be nil.
func NewController(pin Pin, blink, render fx.Notifier) *Controller {
	return &Controller{pin: pin, blink: blink, render: render}
}

// SetOutputMode applies a command. Every call is a full transition:
// 0 turns off, 1 turns on, 2 starts blinking, anything else turns off and
// flags the status as ERROR. The render signal is raised in all cases.
func (c *Controller) SetOutputMode(command int) {
	var st Status
	switch command {
	case CommandOff:
		st.Mode = ModeOff
		c.drive(false)
		glog.Info("LED OFF")
	case CommandOn:
		st.Mode = ModeOn
		c.drive(true)
		glog.Info("LED ON")
	case CommandBlink:
		st.Mode = ModeBlinking
		glog.Info("LED BLINKING")
	default:
		st = Status{Mode: ModeOff, Fault: true}
		c.drive(false)
		glog.Warningf("invalid LED command %d, use 0=OFF, 1=ON, 2=BLINK", command)
	}
	c.status.Store(st.pack())
	if st.Mode == ModeBlinking && c.blink != nil {
		c.blink.Raise()
	}
	if c.render != nil {
		c.render.Raise()
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.Status().Mode
}

// Status returns mode and fault flag.
func (c *Controller) Status() Status {
	return unpack(c.status.Load())
}

// StatusLabel returns the label to display.
func (c *Controller) StatusLabel() string {
	return c.Status().Label()
}

func (c *Controller) drive(high bool) {
	if c.pin == nil {
		return
	}
	if err := c.pin.Set(high); err != nil {
		glog.Warningf("LED pin: %v", err)
	}
}
