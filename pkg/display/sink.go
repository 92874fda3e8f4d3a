package display

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang/glog"
	"tinygo.org/x/drivers"
)

// ErrBadDescriptor indicates a region descriptor inconsistent with the frame.
var ErrBadDescriptor = errors.New("bad display descriptor")

// Descriptor locates a frame on the physical panel.
type Descriptor struct {
	XOffset  int
	YOffset  int
	Width    int
	Height   int
	Pitch    int
	ByteSize int
}

// DefaultDescriptor places the frame at (10, 10).
func DefaultDescriptor() Descriptor {
	return DescriptorAt(10, 10)
}

// DescriptorAt describes a full frame at the given offset.
func DescriptorAt(x, y int) Descriptor {
	return Descriptor{
		XOffset:  x,
		YOffset:  y,
		Width:    Width,
		Height:   Height,
		Pitch:    Width,
		ByteSize: Width * Height * BytesPerPixel,
	}
}

// Validate checks the descriptor matches Frame geometry.
func (d Descriptor) Validate() error {
	if d.Width <= 0 || d.Width > Width || d.Height <= 0 || d.Height > Height {
		return fmt.Errorf("%w: %dx%d", ErrBadDescriptor, d.Width, d.Height)
	}
	if d.Pitch < d.Width || d.Pitch > Width {
		return fmt.Errorf("%w: pitch %d", ErrBadDescriptor, d.Pitch)
	}
	if d.ByteSize != d.Width*d.Height*BytesPerPixel {
		return fmt.Errorf("%w: byte size %d", ErrBadDescriptor, d.ByteSize)
	}
	return nil
}

// Sink receives completed frames.
type Sink interface {
	Write(desc Descriptor, frame Frame) error
}

// SinkFunc is the func form of Sink.
type SinkFunc func(desc Descriptor, frame Frame) error

// Write implements Sink.
func (f SinkFunc) Write(desc Descriptor, frame Frame) error {
	return f(desc, frame)
}

// MemorySink keeps the latest frame.
type MemorySink struct {
	lock   sync.Mutex
	frame  Frame
	desc   Descriptor
	writes int
}

// Write implements Sink.
func (s *MemorySink) Write(desc Descriptor, frame Frame) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	s.lock.Lock()
	s.frame, s.desc = frame, desc
	s.writes++
	s.lock.Unlock()
	return nil
}

// Last returns the latest frame, its descriptor and the number of writes.
func (s *MemorySink) Last() (Frame, Descriptor, int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.frame, s.desc, s.writes
}

// DisplayerSink blits frames onto a TinyGo display driver.
type DisplayerSink struct {
	Display drivers.Displayer
}

// Write implements Sink.
func (s *DisplayerSink) Write(desc Descriptor, frame Frame) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	w, h := s.Display.Size()
	for y := 0; y < desc.Height; y++ {
		py := y + desc.YOffset
		if py < 0 || py >= int(h) {
			continue
		}
		for x := 0; x < desc.Width; x++ {
			px := x + desc.XOffset
			if px < 0 || px >= int(w) {
				continue
			}
			s.Display.SetPixel(int16(px), int16(py), Color(frame[y*desc.Pitch+x]).RGBA())
		}
	}
	return s.Display.Display()
}

// LogSink renders frames as text art through glog at verbosity Level.
type LogSink struct {
	Level glog.Level
}

// Write implements Sink.
func (s *LogSink) Write(desc Descriptor, frame Frame) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	if glog.V(s.Level) {
		glog.Infof("frame at (%d,%d):\n%s", desc.XOffset, desc.YOffset, TextArt(&frame, desc))
	}
	return nil
}

// TextArt draws the region as rows of characters, '#' for lit pixels.
// Every other row is skipped to keep the aspect ratio readable.
func TextArt(f *Frame, desc Descriptor) string {
	var sb strings.Builder
	for y := 0; y < desc.Height; y += 2 {
		for x := 0; x < desc.Width; x++ {
			lit := f[y*desc.Pitch+x] != 0
			if y+1 < desc.Height {
				lit = lit || f[(y+1)*desc.Pitch+x] != 0
			}
			if lit {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
