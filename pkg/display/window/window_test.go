package window

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/statuspanel/pkg/display"
)

func TestWindowPublishesOnDisplay(t *testing.T) {
	w := New(display.Width+20, display.Height+20)
	x, y := w.Size()
	assert.Equal(t, int16(display.Width+20), x)
	assert.Equal(t, int16(display.Height+20+CaptionHeight), y)

	sink := &display.DisplayerSink{Display: w}
	var f display.Frame
	display.DrawText(&f, 5, 5, "ON", display.Green)
	w.SetPixel(15+2, 15, color.RGBA{R: 1, A: 0xFF})
	assert.Equal(t, color.RGBA{}, w.Snapshot().RGBAAt(17, 15), "not published before Display")

	require.NoError(t, sink.Write(display.DefaultDescriptor(), f))
	img := w.Snapshot()
	assert.Equal(t, display.Green.RGBA(), img.RGBAAt(17, 15))
	assert.Equal(t, display.Black.RGBA(), img.RGBAAt(10, 10))
}

func TestWindowCaption(t *testing.T) {
	w := New(display.Width+20, display.Height+20)
	w.SetCaption("PANEL 1")
	require.NoError(t, w.Display())
	img := w.Snapshot()
	top := img.Rect.Dy() - CaptionHeight
	lit := 0
	for y := top; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			if img.RGBAAt(x, y) == captionColor {
				lit++
			}
		}
	}
	assert.NotZero(t, lit)
}
