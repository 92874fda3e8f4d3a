package comm

import (
	"container/list"
	"context"
	"io"
	"sync"
	"time"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/link"
	"github.com/robotalks/statuspanel/pkg/link/msgs"
)

// DeviceConn provides base implementation for link.DeviceConn using Pipe.
type DeviceConn struct {
	Expiration time.Duration

	pipe     Pipe
	seq      uint32
	commands list.List
	seqMap   map[uint32]*commandFuture
	onEvent  func(fx.Message)
	lock     sync.Mutex
}

// DefaultCommandExpiration is the default expiration expecting a result.
const DefaultCommandExpiration = 1 * time.Second

// NewDeviceConn creates a DeviceConn over rw.
func NewDeviceConn(rw PacketReadWriter) *DeviceConn {
	c := &DeviceConn{}
	c.Init(rw)
	return c
}

// Init initializes DeviceConn with defaults.
func (c *DeviceConn) Init(rw PacketReadWriter) {
	c.Expiration = DefaultCommandExpiration
	c.pipe.ReadWriter = rw
	c.pipe.Handler = msgs.HandleTypedMsgFunc(c.handleTypedMsg)
	c.seqMap = make(map[uint32]*commandFuture)
}

// DoCommand implements DeviceConn.
func (c *DeviceConn) DoCommand(msg fx.Message) link.CommandFuture {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.seq++
	if c.seq == 0 {
		c.seq++
	}
	f := &commandFuture{
		seq:      c.seq,
		expireAt: time.Now().Add(c.Expiration),
		result:   make(chan link.Result, 1),
	}
	if err := c.pipe.SendCommandMsg(msg, f.seq); err != nil {
		f.result <- link.Result{Err: err}
		close(f.result)
		return f
	}
	f.elem = c.commands.PushBack(f)
	c.seqMap[f.seq] = f
	return f
}

// OnEvent implements DeviceConn.
func (c *DeviceConn) OnEvent(fn func(fx.Message)) {
	c.lock.Lock()
	c.onEvent = fn
	c.lock.Unlock()
}

// Pending returns the number of commands waiting for a result.
func (c *DeviceConn) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.commands.Len()
}

// Run implements Runnable. Pending commands fail once it returns.
func (c *DeviceConn) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go c.purgeLoop(ctx)
	err := c.pipe.Run(ctx)
	c.failAll(io.ErrClosedPipe)
	return err
}

func (c *DeviceConn) purgeLoop(ctx context.Context) {
	period := c.Expiration / 4
	if period <= 0 {
		period = DefaultCommandExpiration / 4
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.purgeExpired(now)
		}
	}
}

func (c *DeviceConn) handleTypedMsg(ctx context.Context, msg fx.Message, typed *msgs.Typed) error {
	if typed.IsEvent() {
		c.lock.Lock()
		fn := c.onEvent
		c.lock.Unlock()
		if fn != nil {
			fn(msg)
		}
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	f := c.seqMap[typed.Sequence]
	if f == nil {
		return nil
	}
	c.commands.Remove(f.elem)
	delete(c.seqMap, typed.Sequence)
	result := link.Result{Msg: msg}
	if cmdErr, ok := msg.(*msgs.CommandErr); ok {
		result.Err = cmdErr
	}
	f.result <- result
	close(f.result)
	return nil
}

func (c *DeviceConn) purgeExpired(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for c.commands.Len() > 0 {
		elem := c.commands.Front()
		f := elem.Value.(*commandFuture)
		if f.expireAt.After(now) {
			break
		}
		c.commands.Remove(elem)
		delete(c.seqMap, f.seq)
		f.result <- link.Result{Err: context.DeadlineExceeded}
		close(f.result)
	}
}

func (c *DeviceConn) failAll(err error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for elem := c.commands.Front(); elem != nil; elem = c.commands.Front() {
		f := elem.Value.(*commandFuture)
		c.commands.Remove(elem)
		delete(c.seqMap, f.seq)
		f.result <- link.Result{Err: err}
		close(f.result)
	}
}

type commandFuture struct {
	seq      uint32
	expireAt time.Time
	elem     *list.Element
	result   chan link.Result
}

func (c *commandFuture) ResultChan() <-chan link.Result {
	return c.result
}
