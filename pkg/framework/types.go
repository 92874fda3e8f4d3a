package framework

import "context"

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Message is the abstraction of a message passed between components.
type Message interface {
	// NewMessage creates an empty message.
	NewMessage() Message
}

// Notifier is the raising side of a Signal.
type Notifier interface {
	Raise()
}

// NotifyFunc is the func form of Notifier.
type NotifyFunc func()

// Raise implements Notifier.
func (f NotifyFunc) Raise() {
	f()
}

// Executor runs a task step at a priority level.
// Execute blocks until fn has returned or ctx is done.
// fn must not call Execute itself.
type Executor interface {
	Execute(ctx context.Context, priorityLevel int, fn func()) error
}

// InlineExecutor runs steps on the calling goroutine, ignoring priority.
type InlineExecutor struct{}

// Execute implements Executor.
func (InlineExecutor) Execute(ctx context.Context, priorityLevel int, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

// PriorityLevels is the total levels of priorities.
// Lower numeric values are higher priorities.
const PriorityLevels int = 16

// Predefine priority levels
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1
)

// ClampPriority maps any int into the valid priority range.
func ClampPriority(priorityLevel int) int {
	if priorityLevel < PrLvTop {
		return PrLvTop
	}
	if priorityLevel > PrLvIdle {
		return PrLvIdle
	}
	return priorityLevel
}

// TaskDescriptor is one entry of a fixed task table.
type TaskDescriptor struct {
	Name     string
	Priority int
	Task     Runnable
}

// Run implements Runnable.
func (d TaskDescriptor) Run(ctx context.Context) error {
	return d.Task.Run(ctx)
}
