package comm

import (
	"context"
	"sync"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/msgs"
)

// Registrar implements link.Registrar with Pipe.
// Received commands are passed to the handler, events are ignored.
type Registrar struct {
	pipe Pipe
}

// NewRegistrar creates a Registrar over rw.
func NewRegistrar(rw PacketReadWriter, handler link.CommandHandler) *Registrar {
	r := &Registrar{}
	r.Init(rw, handler)
	return r
}

// Init initializes the Registrar with defaults.
func (r *Registrar) Init(rw PacketReadWriter, handler link.CommandHandler) {
	r.pipe.ReadWriter = rw
	r.pipe.Handler = msgs.HandleTypedMsgFunc(func(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
		if typed.IsCommand() && !typed.IsReply() {
			cmd := &command{seq: typed.Sequence, msg: msg, pipe: &r.pipe}
			if handler == nil {
				return cmd.Done(msgs.NewCommandErr(msgs.ErrUnsupportedCommand))
			}
			handler.HandleCommand(ctx, cmd)
		}
		return nil
	})
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.pipe.SendEventMsg(msg)
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	return r.pipe.Run(ctx)
}

type command struct {
	seq  uint32
	msg  fx.Message
	pipe *Pipe
}

func (c *command) Msg() fx.Message {
	return c.msg
}

func (c *command) Done(msg fx.Message) error {
	return c.pipe.SendCommandMsg(msg, c.seq)
}

// RegistrarMux sends events through multiple Registrars.
// Registrars can come and go, e.g. one per accepted connection.
type RegistrarMux struct {
	lock       sync.RWMutex
	registrars []link.Registrar
}

// SendEvent implements Registrar.
func (r *RegistrarMux) SendEvent(ctx context.Context, msg fx.Message) error {
	r.lock.RLock()
	registrars := r.registrars
	r.lock.RUnlock()
	var errs fx.AggregatedError
	for _, reg := range registrars {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// Add adds more registrars.
func (r *RegistrarMux) Add(regs ...link.Registrar) {
	r.lock.Lock()
	r.registrars = append(append([]link.Registrar(nil), r.registrars...), regs...)
	r.lock.Unlock()
}

// Remove removes a registrar.
func (r *RegistrarMux) Remove(reg link.Registrar) {
	r.lock.Lock()
	defer r.lock.Unlock()
	registrars := make([]link.Registrar, 0, len(r.registrars))
	for _, item := range r.registrars {
		if item != reg {
			registrars = append(registrars, item)
		}
	}
	r.registrars = registrars
}

// Len returns the number of registrars.
func (r *RegistrarMux) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.registrars)
}
