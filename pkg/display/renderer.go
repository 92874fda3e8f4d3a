package display

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/sensor"
)

// LabelSource provides the status label to show.
type LabelSource interface {
	StatusLabel() string
}

// ReadingSource provides the sensor reading, with a bounded wait.
type ReadingSource interface {
	Read() (sensor.Reading, bool)
}

// Layout positions
const (
	labelX  = 5
	statusX = 50
	valueX  = 90
	row0    = 5
	row1    = 20
	row2    = 35
)

// LabelColor returns the color for a status label.
func LabelColor(label string) Color {
	switch {
	case label == "OFF":
		return Red
	case label == "ON":
		return Green
	case strings.HasPrefix(label, "BLINKING"):
		return Yellow
	}
	return White
}

// Compose draws the status screen into f.
func Compose(f *Frame, label string, r sensor.Reading) {
	f.Clear()
	DrawText(f, labelX, row0, "LED: ", White)
	DrawText(f, statusX, row0, label, LabelColor(label))
	if !r.Valid {
		DrawText(f, labelX, row1, "ADC: READING...", White)
		return
	}
	DrawText(f, labelX, row1, "VOLTAGE:", White)
	DrawText(f, valueX, row1, strconv.Itoa(int(r.Millivolts)), Cyan)
	DrawText(f, labelX, row2, "PERCENT:", White)
	DrawText(f, valueX, row2, strconv.Itoa(int(r.Percent))+" %", Cyan)
}

// Renderer redraws the panel whenever its Signal is raised.
// Raises arriving before a redraw coalesce into one.
type Renderer struct {
	Sink       Sink
	Labels     LabelSource
	Readings   ReadingSource
	Signal     *fx.Signal
	Descriptor Descriptor
	Priority   int
	Executor   fx.Executor
	// OnRender is invoked after each submitted frame.
	OnRender func(label string, r sensor.Reading)

	lock    sync.Mutex
	frame   Frame
	renders atomic.Uint64
	errors  atomic.Uint64
}

// Name implements Named.
func (r *Renderer) Name() string {
	return "display"
}

// Run implements Runnable.
func (r *Renderer) Run(ctx context.Context) error {
	for {
		if err := r.Signal.Wait(ctx); err != nil {
			return err
		}
		if err := r.execute(ctx, r.RenderCurrent); err != nil {
			return err
		}
	}
}

// RenderCurrent renders with the label from Labels.
func (r *Renderer) RenderCurrent() {
	label := "OFF"
	if r.Labels != nil {
		label = r.Labels.StatusLabel()
	}
	r.render(label)
}

// RenderStatus synchronously composes and submits a frame for label.
func (r *Renderer) RenderStatus(ctx context.Context, label string) error {
	return r.execute(ctx, func() { r.render(label) })
}

// Renders returns the number of frames submitted.
func (r *Renderer) Renders() uint64 {
	return r.renders.Load()
}

// Errors returns the number of frames the sink rejected.
func (r *Renderer) Errors() uint64 {
	return r.errors.Load()
}

func (r *Renderer) execute(ctx context.Context, fn func()) error {
	exec := r.Executor
	if exec == nil {
		exec = fx.InlineExecutor{}
	}
	return exec.Execute(ctx, r.Priority, fn)
}

func (r *Renderer) render(label string) {
	var reading sensor.Reading
	if r.Readings != nil {
		reading, _ = r.Readings.Read()
	}
	desc := r.Descriptor
	if desc == (Descriptor{}) {
		desc = DefaultDescriptor()
	}

	r.lock.Lock()
	Compose(&r.frame, label, reading)
	frame := r.frame
	r.lock.Unlock()

	if err := r.Sink.Write(desc, frame); err != nil {
		r.errors.Add(1)
		glog.Warningf("display write: %v", err)
		return
	}
	r.renders.Add(1)
	glog.V(4).Infof("rendered %s %+v", label, reading)
	if r.OnRender != nil {
		r.OnRender(label, reading)
	}
}
