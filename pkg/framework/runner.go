package framework

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/golang/glog"
)

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// TaskState is a snapshot of a task spawned by a Runner.
type TaskState struct {
	Name     string
	Priority int
	Started  time.Time
	Running  bool
	Err      error
}

// Runner runs multiple Runnables and collect errors.
type Runner struct {
	Context context.Context
	Runners []Runnable

	errCh  chan error
	exitCh chan struct{}

	lock  sync.Mutex
	tasks []*TaskState
}

// NewRunner creates a runner with a default background context.
func NewRunner() *Runner {
	return NewRunnerWith(context.Background())
}

// NewRunnerWith creates a runner with a specified context.
func NewRunnerWith(ctx context.Context) *Runner {
	return &Runner{
		Context: ctx,
		errCh:   make(chan error, 1),
		exitCh:  make(chan struct{}),
	}
}

// HandleSignals handles CtrlC and SIGTERM from the system.
func (r *Runner) HandleSignals() *Runner {
	ctx, cancel := context.WithCancel(r.Context)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	r.Context = ctx
	go func() {
		<-sigCh
		glog.Info("stop requested")
		cancel()
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Go spawns a Runnable with default context.
func (r *Runner) Go(runners ...Runnable) *Runner {
	return r.GoWith(r.Context, runners...)
}

// Spawn starts every task of a task table, each in its own goroutine.
func (r *Runner) Spawn(tasks ...TaskDescriptor) *Runner {
	for _, task := range tasks {
		glog.V(1).Infof("spawn task %s at priority %d", task.Name, task.Priority)
		r.spawn(r.Context, task, task.Name, task.Priority)
	}
	return r
}

// GoWith spawns a Runnable with a specified context.
func (r *Runner) GoWith(ctx context.Context, runners ...Runnable) *Runner {
	for _, runner := range runners {
		var name string
		if named, ok := runner.(Named); ok {
			name = named.Name()
		} else {
			name = strconv.Itoa(len(r.Runners))
		}
		r.spawn(ctx, runner, name, -1)
	}
	return r
}

func (r *Runner) spawn(ctx context.Context, runner Runnable, name string, priority int) {
	state := &TaskState{Name: name, Priority: priority, Started: time.Now(), Running: true}
	r.lock.Lock()
	r.Runners = append(r.Runners, runner)
	r.tasks = append(r.tasks, state)
	r.lock.Unlock()
	glog.V(4).Infof("start Runner[%s]", name)
	go func() {
		glog.V(4).Infof("Runner[%s] started", name)
		err := runner.Run(ctx)
		r.lock.Lock()
		state.Running, state.Err = false, err
		r.lock.Unlock()
		glog.V(4).Infof("Runner[%s] stopped: %v", name, err)
		r.errCh <- err
	}()
}

// Tasks returns snapshots of all spawned runnables.
func (r *Runner) Tasks() []TaskState {
	r.lock.Lock()
	defer r.lock.Unlock()
	states := make([]TaskState, 0, len(r.tasks))
	for _, state := range r.tasks {
		states = append(states, *state)
	}
	return states
}

// Wait waits until all Runnables stops and aggregate errors.
func (r *Runner) Wait() error {
	r.lock.Lock()
	count := len(r.Runners)
	r.lock.Unlock()
	var errs AggregatedError
	for i := 0; i < count; i++ {
		select {
		case <-r.exitCh:
			return ErrForcedExit
		case err := <-r.errCh:
			if err != context.Canceled {
				errs.Add(err)
			}
		}
	}
	return errs.Aggregate()
}

// RunWithContextCancel runs a func with doesn't accept a context.
// cancel is called only when the context is canceled.
func RunWithContextCancel(ctx context.Context, onCancel func(), fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case <-ctx.Done():
		if onCancel != nil {
			onCancel()
		}
		<-errCh
		return context.Canceled
	case err := <-errCh:
		return err
	}
}

// RunWithContextCloser ensures closer.Close is either called on cancel or
// exit of fn.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	var once sync.Once
	closeFn := func() { closer.Close() }
	err := RunWithContextCancel(ctx, func() { once.Do(closeFn) }, fn)
	once.Do(closeFn)
	return err
}
