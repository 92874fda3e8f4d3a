package comm

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/led"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/msgs"
	"github.com/robotalks/statuspanel/pkg/panel"
)

// Service answers commands on behalf of a Device and publishes its
// status after every redraw through Events.
type Service struct {
	Device link.Device
	Events link.Registrar

	signal  *fx.Signal
	latest  atomic.Pointer[panel.Status]
	sent    atomic.Uint64
	handled atomic.Uint64
}

// NewService creates a Service.
func NewService(dev link.Device, events link.Registrar) *Service {
	return &Service{Device: dev, Events: events, signal: fx.NewSignal()}
}

// HandleCommand implements link.CommandHandler.
func (s *Service) HandleCommand(ctx context.Context, cmd link.Command) {
	s.handled.Add(1)
	var reply fx.Message
	switch m := cmd.Msg().(type) {
	case *msgs.SetMode:
		if err := s.Device.SetOutputMode(ctx, int(m.Mode)); err != nil {
			reply = msgs.NewCommandErr(err)
			break
		}
		if m.Mode < led.CommandOff || m.Mode > led.CommandBlink {
			reply = msgs.NewCommandErrFromMsg(fmt.Sprintf("invalid LED command %d, use 0=OFF, 1=ON, 2=BLINK", m.Mode))
			break
		}
		reply = msgs.NewCommandOK()
	case *msgs.StatusQuery:
		reply = msgs.NewStatus(s.Device.Status())
	default:
		reply = msgs.NewCommandErr(msgs.ErrUnsupportedCommand)
	}
	if err := cmd.Done(reply); err != nil {
		glog.Warningf("reply %s: %v", msgs.Name(reply), err)
	}
}

// Publish records st as the status to send. Statuses published faster
// than they can be sent coalesce into the latest one.
func (s *Service) Publish(st panel.Status) {
	s.latest.Store(&st)
	s.signal.Raise()
}

// Sent returns the number of status events sent.
func (s *Service) Sent() uint64 {
	return s.sent.Load()
}

// Handled returns the number of commands handled.
func (s *Service) Handled() uint64 {
	return s.handled.Load()
}

// Name implements Named.
func (s *Service) Name() string {
	return "reporter"
}

// Run implements Runnable, sending status events until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.signal.Wait(ctx); err != nil {
			return err
		}
		st := s.latest.Load()
		if st == nil || s.Events == nil {
			continue
		}
		if err := s.Events.SendEvent(ctx, msgs.NewStatusEvent(*st)); err != nil {
			glog.V(2).Infof("status event: %v", err)
			continue
		}
		s.sent.Add(1)
	}
}
