package display

import (
	"image"
	"image/color"
)

// Frame geometry
const (
	Width         = 160
	Height        = 64
	BytesPerPixel = 2
)

// Color is an RGB565 pixel value.
type Color uint16

// Palette
const (
	Black  Color = 0x0000
	Red    Color = 0xF800
	Green  Color = 0x07E0
	Yellow Color = 0xFFE0
	White  Color = 0xFFFF
	Cyan   Color = 0x07FF
)

// RGBA expands the RGB565 value to 8 bits per channel.
func (c Color) RGBA() color.RGBA {
	r := uint8(c>>11) & 0x1F
	g := uint8(c>>5) & 0x3F
	b := uint8(c) & 0x1F
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xFF,
	}
}

// Frame is a row-major RGB565 raster. It is a plain array so passing it
// by value hands over a complete copy.
type Frame [Width * Height]uint16

// InBounds tells whether (x, y) lies within the frame.
func InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Clear fills the frame with black.
func (f *Frame) Clear() {
	*f = Frame{}
}

// Set writes c at (x, y) and reports whether it was in bounds.
// Out-of-bounds writes are dropped.
func (f *Frame) Set(x, y int, c Color) bool {
	if !InBounds(x, y) {
		return false
	}
	f[y*Width+x] = uint16(c)
	return true
}

// At returns the color at (x, y), Black when out of bounds.
func (f *Frame) At(x, y int) Color {
	if !InBounds(x, y) {
		return Black
	}
	return Color(f[y*Width+x])
}

// Lit counts non-black pixels.
func (f *Frame) Lit() int {
	n := 0
	for _, px := range f {
		if px != 0 {
			n++
		}
	}
	return n
}

// Image converts the frame to an RGBA image.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			img.SetRGBA(x, y, Color(f[y*Width+x]).RGBA())
		}
	}
	return img
}
