package display

import (
	"context"
	"errors"
	"image/color"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/statuspanel/pkg/framework"
	"github.com/robotalks/statuspanel/pkg/sensor"
)

func TestGlyphBitOrder(t *testing.T) {
	var f Frame
	DrawGlyph(&f, 0, 0, 'L', White)
	for row := 0; row < 7; row++ {
		for col := 0; col < 8; col++ {
			lit := col == 1 || col == 2
			assert.Equal(t, lit, f.At(col, row) == White, "(%d,%d)", col, row)
		}
	}
	for col := 0; col < 8; col++ {
		assert.Equal(t, col >= 1 && col <= 6, f.At(col, 7) == White, "bottom col %d", col)
	}
}

func TestUnsupportedGlyphsAreBlank(t *testing.T) {
	for _, ch := range []rune{'Z', 'a', '!', 'é', ' '} {
		var f Frame
		DrawGlyph(&f, 10, 10, ch, White)
		assert.Zero(t, f.Lit(), "%q", ch)
	}
	for _, ch := range "ONFBLIKGERPVMDACT0123456789:-.%" {
		assert.True(t, Supported(ch), "%q", ch)
		var f Frame
		DrawGlyph(&f, 10, 10, ch, White)
		assert.NotZero(t, f.Lit(), "%q", ch)
	}
	assert.True(t, Supported(' '))
	assert.False(t, Supported('Z'))
}

func TestDrawGlyphClips(t *testing.T) {
	var f Frame
	DrawGlyph(&f, Width-3, 0, 'O', White)
	for y := 0; y < GlyphSize; y++ {
		for x := 0; x < GlyphSize; x++ {
			assert.Equal(t, Black, f.At(x, y), "wrapped into (%d,%d)", x, y)
		}
	}
	assert.NotZero(t, f.Lit())

	f.Clear()
	DrawGlyph(&f, -4, -4, '8', White)
	assert.NotZero(t, f.Lit())
	DrawGlyph(&f, Width, Height, '8', White)
	DrawGlyph(&f, -100, 1000, '8', White)
}

func TestDrawTextWraps(t *testing.T) {
	var f Frame
	DrawText(&f, 5, 5, strings.Repeat("1", 17)+"L", White)
	// the 17th glyph sits at x=149; the 18th wraps to (5, 14)
	assert.Equal(t, White, f.At(152, 5), "glyph 17 top row")
	assert.Equal(t, White, f.At(6, 14), "wrapped L top-left stroke")
	assert.Equal(t, White, f.At(6, 21), "wrapped L bottom row")
	assert.Equal(t, Black, f.At(158+1, 5))
}

func TestDrawTextNeverEscapesBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		var f Frame
		x := rnd.Intn(2*Width) - Width/2
		y := rnd.Intn(2*Height) - Height/2
		s := strings.Repeat("08%", rnd.Intn(60))
		require.NotPanics(t, func() { DrawText(&f, x, y, s, White) })
		if x >= 0 {
			for py := 0; py < Height; py++ {
				for px := 0; px < x && px < Width; px++ {
					require.Equal(t, Black, f.At(px, py), "x=%d y=%d wrote (%d,%d)", x, y, px, py)
				}
			}
		}
	}
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 0, TextWidth(""))
	assert.Equal(t, 8, TextWidth("O"))
	assert.Equal(t, 44, TextWidth("LED: "))
}

func TestLabelColor(t *testing.T) {
	assert.Equal(t, Red, LabelColor("OFF"))
	assert.Equal(t, Green, LabelColor("ON"))
	assert.Equal(t, Yellow, LabelColor("BLINKING"))
	assert.Equal(t, Yellow, LabelColor("BLINKING FAST"))
	assert.Equal(t, White, LabelColor("ERROR"))
	assert.Equal(t, White, LabelColor("on"))
}

func TestColorRGBA(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, Red.RGBA())
	assert.Equal(t, color.RGBA{G: 0xFF, B: 0xFF, A: 0xFF}, Cyan.RGBA())
	assert.Equal(t, color.RGBA{A: 0xFF}, Black.RGBA())
}

func TestComposeLayout(t *testing.T) {
	var f Frame
	Compose(&f, "ON", sensor.Reading{})
	assert.Equal(t, White, f.At(6, 5), "LED label")
	assert.Equal(t, Green, f.At(52, 5), "status label")
	assert.Equal(t, White, f.At(8, 20), "reading in progress")
	for x := 0; x < Width; x++ {
		for y := 35; y < 43; y++ {
			require.Equal(t, Black, f.At(x, y))
		}
	}

	Compose(&f, "OFF", sensor.NewReading(1650, 3300))
	assert.Equal(t, Red, f.At(52, 5))
	assert.Equal(t, White, f.At(6, 20), "VOLTAGE")
	assert.Equal(t, Cyan, f.At(93, 20), "millivolts")
	assert.Equal(t, White, f.At(6, 35), "PERCENT")
	assert.Equal(t, Cyan, f.At(91, 35), "percent digits")
	assert.Equal(t, Cyan, f.At(118, 35), "percent sign")
}

type fixedLabel string

func (l fixedLabel) StatusLabel() string { return string(l) }

type fixedReading sensor.Reading

func (r fixedReading) Read() (sensor.Reading, bool) { return sensor.Reading(r), true }

func TestRendererCoalesces(t *testing.T) {
	sink := &MemorySink{}
	sig := fx.NewSignal()
	r := &Renderer{
		Sink:     sink,
		Labels:   fixedLabel("BLINKING"),
		Readings: fixedReading(sensor.NewReading(3300, 3300)),
		Signal:   sig,
	}
	for i := 0; i < 5; i++ {
		sig.Raise()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	require.Eventually(t, func() bool { return r.Renders() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, uint64(1), r.Renders())

	frame, desc, writes := sink.Last()
	assert.Equal(t, 1, writes)
	assert.Equal(t, DefaultDescriptor(), desc)
	assert.Equal(t, 160*64*2, desc.ByteSize)
	assert.Equal(t, Yellow, frame.At(52, 5))
}

func TestRendererShowsLatestCommit(t *testing.T) {
	var lock sync.Mutex
	var frames []Frame
	sink := SinkFunc(func(_ Descriptor, f Frame) error {
		lock.Lock()
		frames = append(frames, f)
		lock.Unlock()
		return nil
	})
	state := sensor.NewState()
	sig := fx.NewSignal()
	var rendered []sensor.Reading
	r := &Renderer{
		Sink:     sink,
		Labels:   fixedLabel("ON"),
		Readings: state,
		Signal:   sig,
		OnRender: func(_ string, reading sensor.Reading) {
			lock.Lock()
			rendered = append(rendered, reading)
			lock.Unlock()
		},
	}

	first, second := sensor.NewReading(1200, 3300), sensor.NewReading(3000, 3300)
	require.True(t, state.Write(first))
	sig.Raise()
	require.True(t, state.Write(second))
	sig.Raise()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)
	require.Eventually(t, func() bool { return r.Renders() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, uint64(1), r.Renders())

	var expect Frame
	Compose(&expect, "ON", second)
	lock.Lock()
	defer lock.Unlock()
	require.Len(t, frames, 1)
	assert.Equal(t, expect, frames[0])
	assert.Equal(t, []sensor.Reading{{Millivolts: 3000, Percent: 91, Valid: true}}, rendered)
}

func TestRenderStatus(t *testing.T) {
	sink := &MemorySink{}
	var rendered []string
	r := &Renderer{
		Sink:     sink,
		Signal:   fx.NewSignal(),
		Executor: fx.InlineExecutor{},
		OnRender: func(label string, _ sensor.Reading) { rendered = append(rendered, label) },
	}
	require.NoError(t, r.RenderStatus(context.Background(), "WHATEVER"))
	frame, _, _ := sink.Last()
	assert.Equal(t, White, frame.At(8, 20), "no sensor means reading in progress")
	assert.Equal(t, []string{"WHATEVER"}, rendered)
}

func TestRendererRejectedFrame(t *testing.T) {
	r := &Renderer{
		Sink:       &MemorySink{},
		Signal:     fx.NewSignal(),
		Descriptor: Descriptor{Width: Width, Height: Height, Pitch: Width, ByteSize: 1},
	}
	r.RenderCurrent()
	assert.Equal(t, uint64(0), r.Renders())
	assert.Equal(t, uint64(1), r.Errors())
}

func TestDescriptorValidate(t *testing.T) {
	require.NoError(t, DefaultDescriptor().Validate())
	bad := DefaultDescriptor()
	bad.ByteSize = Width * Height
	assert.True(t, errors.Is(bad.Validate(), ErrBadDescriptor))
	bad = DefaultDescriptor()
	bad.Pitch = Width - 1
	assert.True(t, errors.Is(bad.Validate(), ErrBadDescriptor))
	bad = DefaultDescriptor()
	bad.Height = Height + 1
	assert.True(t, errors.Is(bad.Validate(), ErrBadDescriptor))
}

type fakeDisplayer struct {
	w, h     int16
	pixels   map[[2]int16]color.RGBA
	displays int
}

func (d *fakeDisplayer) Size() (x, y int16) { return d.w, d.h }

func (d *fakeDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.pixels[[2]int16{x, y}] = c
}

func (d *fakeDisplayer) Display() error {
	d.displays++
	return nil
}

func TestDisplayerSink(t *testing.T) {
	d := &fakeDisplayer{w: Width + 20, h: Height + 20, pixels: make(map[[2]int16]color.RGBA)}
	sink := &DisplayerSink{Display: d}
	var f Frame
	f.Set(0, 0, Red)
	f.Set(Width-1, Height-1, Green)
	require.NoError(t, sink.Write(DefaultDescriptor(), f))
	assert.Equal(t, 1, d.displays)
	assert.Equal(t, Red.RGBA(), d.pixels[[2]int16{10, 10}])
	assert.Equal(t, Green.RGBA(), d.pixels[[2]int16{Width + 9, Height + 9}])
	assert.Len(t, d.pixels, Width*Height)

	small := &fakeDisplayer{w: 20, h: 20, pixels: make(map[[2]int16]color.RGBA)}
	require.NoError(t, (&DisplayerSink{Display: small}).Write(DefaultDescriptor(), f))
	assert.Len(t, small.pixels, 100)
}

func TestTextArt(t *testing.T) {
	var f Frame
	DrawText(&f, 0, 0, "O", White)
	art := TextArt(&f, DefaultDescriptor())
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	require.Len(t, lines, Height/2)
	assert.Equal(t, " ###### ", lines[0][:8])
	assert.NoError(t, (&LogSink{Level: 5}).Write(DefaultDescriptor(), f))
}
