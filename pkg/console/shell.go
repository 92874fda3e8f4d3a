package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

const (
	shellKey    = "$console"
	shellPrompt = "panel > "
)

// DefaultShellTimeout bounds the wait for a command dispatched from the shell.
const DefaultShellTimeout = time.Second

// Shell is an ishell backed local console.
// Every line goes through the CommandTask, so it is dispatched at the
// command priority like lines from the serial port.
type Shell struct {
	Commands *CommandTask
	Timeout  time.Duration
	Shell    *ishell.Shell
}

// ctxWriter adapts an ishell context into an io.Writer.
type ctxWriter struct {
	c *ishell.Context
}

func (w ctxWriter) Write(p []byte) (int, error) {
	w.c.Print(string(p))
	return len(p), nil
}

// NewShell creates a Shell with a command per registered report.
func NewShell(commands *CommandTask) *Shell {
	s := &Shell{
		Commands: commands,
		Timeout:  DefaultShellTimeout,
		Shell:    ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(shellPrompt)
	s.Shell.AddCmd(&LEDCmd)
	for _, entry := range commands.Dispatcher.Reports() {
		keyword := entry.Keyword
		s.Shell.AddCmd(&ishell.Cmd{
			Name: keyword,
			Help: entry.Help,
			Func: func(c *ishell.Context) { ShellFrom(c).Do(c, keyword) },
		})
	}
	s.Shell.NotFound(func(c *ishell.Context) {
		ShellFrom(c).Do(c, strings.Join(c.RawArgs, " "))
	})
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Do dispatches line and prints its output.
func (s *Shell) Do(c *ishell.Context, line string) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultShellTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	err := s.Commands.Do(ctx, line, ctxWriter{c: c})
	if err == context.DeadlineExceeded {
		c.Err(fmt.Errorf("command timeout"))
	}
	return err
}

// Name implements Named.
func (s *Shell) Name() string {
	return "shell"
}

// Run implements Runnable. It returns nil when the user exits the shell.
func (s *Shell) Run(ctx context.Context) error {
	return fx.RunWithContextCancel(ctx, s.Shell.Close, func() error {
		s.Shell.Run()
		return nil
	})
}

// LEDCmd sets the indicator mode.
var LEDCmd = ishell.Cmd{
	Name:    "led",
	Aliases: []string{"l"},
	Help:    "0=OFF, 1=ON, 2=BLINK",
	Func: func(c *ishell.Context) {
		if len(c.Args) != 1 {
			c.Err(fmt.Errorf("usage: led 0|1|2"))
			return
		}
		ShellFrom(c).Do(c, "led "+c.Args[0])
	},
}
