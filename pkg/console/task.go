package console

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

// DefaultQueueSize is the number of lines waiting for the command task.
const DefaultQueueSize = 10

type request struct {
	line string
	out  io.Writer
	done chan error
}

// CommandTask runs queued lines through a Dispatcher at its priority.
// Producers never block: when the queue is full the line is dropped.
type CommandTask struct {
	Dispatcher *Dispatcher
	Priority   int
	Executor   fx.Executor

	queue     chan *request
	processed atomic.Uint64
	dropped   atomic.Uint64
}

// NewCommandTask creates a CommandTask with a queue of queueSize lines.
func NewCommandTask(d *Dispatcher, queueSize int) *CommandTask {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &CommandTask{Dispatcher: d, queue: make(chan *request, queueSize)}
}

// Name implements Named.
func (t *CommandTask) Name() string {
	return "command"
}

// Submit queues line without waiting. Output of the command goes to out.
// It returns false if the queue is full.
func (t *CommandTask) Submit(line string, out io.Writer) bool {
	return t.enqueue(&request{line: line, out: out})
}

// Do queues line and waits until it has been dispatched.
func (t *CommandTask) Do(ctx context.Context, line string, out io.Writer) error {
	req := &request{line: line, out: out, done: make(chan error, 1)}
	select {
	case t.queue <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *CommandTask) enqueue(req *request) bool {
	select {
	case t.queue <- req:
		return true
	default:
		t.dropped.Add(1)
		glog.Warningf("command queue full, dropped %q", req.line)
		return false
	}
}

// Run implements Runnable.
func (t *CommandTask) Run(ctx context.Context) error {
	exec := t.Executor
	if exec == nil {
		exec = fx.InlineExecutor{}
	}
	for {
		var req *request
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req = <-t.queue:
		}
		out := req.out
		if out == nil {
			out = io.Discard
		}
		var err error
		if e := exec.Execute(ctx, t.Priority, func() { err = t.Dispatcher.Dispatch(out, req.line) }); e != nil {
			return e
		}
		t.processed.Add(1)
		glog.V(2).Infof("command %q: %v", req.line, err)
		if req.done != nil {
			req.done <- err
		}
	}
}

// Processed returns the number of dispatched lines.
func (t *CommandTask) Processed() uint64 {
	return t.processed.Load()
}

// Dropped returns the number of lines rejected by a full queue.
func (t *CommandTask) Dropped() uint64 {
	return t.dropped.Load()
}

// Pending returns the number of queued lines.
func (t *CommandTask) Pending() int {
	return len(t.queue)
}
