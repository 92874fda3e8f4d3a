package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/golang/glog"
	"go.bug.st/serial"

	fx "github.com/robotalks/statuspanel/pkg/framework"
)

// DefaultBaudRate is the UART speed.
const DefaultBaudRate = 115200

// Ports lists the serial ports of the host.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// lockedWriter serializes writes coming from the reader and the command task.
type lockedWriter struct {
	lock sync.Mutex
	w    io.Writer
}

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.w.Write(p)
}

// Serve reads bytes from rw, assembles lines, echoes them and submits
// them to commands. Command output is written back to rw.
// It returns when reading fails, io.EOF included.
func Serve(rw io.ReadWriter, commands *CommandTask) error {
	out := &lockedWriter{w: rw}
	var lines LineAssembler
	buf := make([]byte, 64)
	for {
		n, err := rw.Read(buf)
		for _, c := range buf[:n] {
			line, ok := lines.Feed(c)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "Received command: %s\n", line)
			commands.Submit(line, out)
		}
		if err != nil {
			return err
		}
	}
}

// SerialSource feeds lines read from a serial port into a CommandTask.
type SerialSource struct {
	Port     string
	BaudRate int
	Commands *CommandTask
	// Banner is written once the port is open.
	Banner func(w io.Writer)
}

// Name implements Named.
func (s *SerialSource) Name() string {
	return "uart"
}

// Run implements Runnable.
func (s *SerialSource) Run(ctx context.Context) error {
	baud := s.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(s.Port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", s.Port, err)
	}
	glog.Infof("serial console on %s at %d baud", s.Port, baud)
	if s.Banner != nil {
		s.Banner(port)
	}
	err = fx.RunWithContextCloser(ctx, port, func() error {
		return Serve(port, s.Commands)
	})
	if errors.Is(err, io.EOF) {
		glog.Warningf("serial port %s closed", s.Port)
		return nil
	}
	return err
}
