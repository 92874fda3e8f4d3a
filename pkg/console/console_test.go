package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

type recordTarget struct {
	lock     sync.Mutex
	commands []int
}

func (r *recordTarget) SetOutputMode(command int) {
	r.lock.Lock()
	r.commands = append(r.commands, command)
	r.lock.Unlock()
}

func (r *recordTarget) Commands() []int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]int(nil), r.commands...)
}

func TestDispatch(t *testing.T) {
	target := &recordTarget{}
	d := NewDispatcher(target).
		HandleReport("status", "Show current system status", func(w io.Writer) { io.WriteString(w, "STATUS\n") }).
		HandleReport("info", "Show thread information", func(w io.Writer) { io.WriteString(w, "INFO\n") })

	testCases := []struct {
		line    string
		output  string
		unknown bool
	}{
		{line: "0"},
		{line: "1"},
		{line: "2"},
		{line: "led 7"},
		{line: "status", output: "STATUS\n"},
		{line: "info", output: "INFO\n"},
		{line: "3", output: "Unknown command: 3\nType 'help' for available commands.\n", unknown: true},
		{line: "12", output: "Unknown command: 12\nType 'help' for available commands.\n", unknown: true},
		{line: "led x", output: "Unknown command: led x\nType 'help' for available commands.\n", unknown: true},
		{line: "STATUS", output: "Unknown command: STATUS\nType 'help' for available commands.\n", unknown: true},
	}
	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			var out bytes.Buffer
			err := d.Dispatch(&out, tc.line)
			if tc.unknown {
				assert.True(t, errors.Is(err, ErrUnknownCommand))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.output, out.String())
		})
	}
	assert.Equal(t, []int{0, 1, 2, 7}, target.Commands())

	reports := d.Reports()
	require.Len(t, reports, 2)
	assert.Equal(t, "info", reports[0].Keyword)
	assert.Equal(t, "Show current system status", reports[1].Help)
}

func TestDispatchToFunc(t *testing.T) {
	last := -1
	d := NewDispatcher(TargetFunc(func(command int) { last = command }))
	require.NoError(t, d.Dispatch(io.Discard, "1"))
	assert.Equal(t, 1, last)
	require.NoError(t, d.Dispatch(io.Discard, "led 2"))
	assert.Equal(t, 2, last)
	assert.True(t, errors.Is(d.Dispatch(io.Discard, "blink"), ErrUnknownCommand))
	assert.Equal(t, 2, last)
}

func TestLineAssembler(t *testing.T) {
	var a LineAssembler
	var lines []string
	feed := func(s string) {
		for i := 0; i < len(s); i++ {
			if line, ok := a.Feed(s[i]); ok {
				lines = append(lines, line)
			}
		}
	}

	feed("\r\n\n1\r\nstatus\n")
	assert.Equal(t, []string{"1", "status"}, lines)

	lines = nil
	feed("abcdefghijklmnopqrstuvwxyz\r")
	require.Len(t, lines, 1)
	assert.Equal(t, "abcdefghijklmno", lines[0])
	assert.Len(t, lines[0], LineBufferSize-1)

	feed("hel")
	assert.Equal(t, 3, a.Buffered())
	a.Reset()
	assert.Equal(t, 0, a.Buffered())
}

func TestCommandTaskDo(t *testing.T) {
	target := &recordTarget{}
	task := NewCommandTask(NewDispatcher(target), 2)
	task.Executor = fx.InlineExecutor{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go task.Run(ctx)

	var out bytes.Buffer
	require.NoError(t, task.Do(ctx, "2", &out))
	assert.Equal(t, []int{2}, target.Commands())
	err := task.Do(ctx, "bogus", &out)
	assert.True(t, errors.Is(err, ErrUnknownCommand))
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Equal(t, uint64(2), task.Processed())
}

func TestCommandTaskSubmitDropsWhenFull(t *testing.T) {
	target := &recordTarget{}
	task := NewCommandTask(NewDispatcher(target), 2)
	assert.True(t, task.Submit("0", nil))
	assert.True(t, task.Submit("1", nil))
	assert.False(t, task.Submit("2", nil))
	assert.Equal(t, uint64(1), task.Dropped())
	assert.Equal(t, 2, task.Pending())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go task.Run(ctx)
	require.Eventually(t, func() bool { return task.Processed() == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []int{0, 1}, target.Commands())
}

func TestCommandTaskRunsOnScheduler(t *testing.T) {
	sched := fx.NewScheduler()
	target := &recordTarget{}
	task := NewCommandTask(NewDispatcher(target), 0)
	task.Executor = sched
	task.Priority = 5
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)
	go task.Run(ctx)

	require.NoError(t, task.Do(ctx, "1", nil))
	assert.Equal(t, uint64(1), sched.StepCounts()[5])
}

// pipeConn is one end of an in-memory serial line.
type pipeConn struct {
	in  io.Reader
	out *safeBuffer
}

func (p *pipeConn) Read(b []byte) (int, error)  { return p.in.Read(b) }
func (p *pipeConn) Write(b []byte) (int, error) { return p.out.Write(b) }

type safeBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

func TestServe(t *testing.T) {
	target := &recordTarget{}
	d := NewDispatcher(target).HandleReport("help", "", func(w io.Writer) { io.WriteString(w, "HELP\n") })
	task := NewCommandTask(d, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go task.Run(ctx)

	out := &safeBuffer{}
	conn := &pipeConn{in: strings.NewReader("1\r\nhelp\r\nfoo\n"), out: out}
	assert.Equal(t, io.EOF, Serve(conn, task))
	require.Eventually(t, func() bool { return task.Processed() == 3 }, time.Second, time.Millisecond)

	text := out.String()
	assert.Contains(t, text, "Received command: 1\n")
	assert.Contains(t, text, "Received command: help\n")
	assert.Contains(t, text, "HELP\n")
	assert.Contains(t, text, "Unknown command: foo\n")
	assert.Equal(t, []int{1}, target.Commands())
}
