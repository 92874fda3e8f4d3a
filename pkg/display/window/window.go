// Package window shows the panel in a desktop window.
package window

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// CaptionHeight is the strip below the panel area reserved for the caption.
const CaptionHeight = 12

var captionColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

// Window is a drivers.Displayer backed by an ebiten window.
// Pixels are drawn into a back buffer and published on Display.
type Window struct {
	Title string
	Scale int

	lock    sync.Mutex
	width   int
	height  int
	back    *image.RGBA
	front   *image.RGBA
	caption string
	img     *ebiten.Image
}

// New creates a Window whose panel area is width x height.
func New(width, height int) *Window {
	rect := image.Rect(0, 0, width, height+CaptionHeight)
	return &Window{
		Title:  "statuspanel",
		Scale:  3,
		width:  width,
		height: height + CaptionHeight,
		back:   image.NewRGBA(rect),
		front:  image.NewRGBA(rect),
	}
}

// Size implements drivers.Displayer.
func (w *Window) Size() (x, y int16) {
	return int16(w.width), int16(w.height)
}

// SetPixel implements drivers.Displayer.
func (w *Window) SetPixel(x, y int16, c color.RGBA) {
	w.lock.Lock()
	w.back.SetRGBA(int(x), int(y), c)
	w.lock.Unlock()
}

// SetCaption sets the text drawn under the panel on the next Display.
func (w *Window) SetCaption(s string) {
	w.lock.Lock()
	w.caption = s
	w.lock.Unlock()
}

// Display implements drivers.Displayer.
func (w *Window) Display() error {
	w.lock.Lock()
	caption := w.caption
	top := w.height - CaptionHeight
	for y := top; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			w.back.SetRGBA(x, y, color.RGBA{A: 0xFF})
		}
	}
	w.lock.Unlock()

	if caption != "" {
		tinyfont.WriteLine(w, &proggy.TinySZ8pt7b, 2, int16(w.height-3), caption, captionColor)
	}

	w.lock.Lock()
	copy(w.front.Pix, w.back.Pix)
	w.lock.Unlock()
	return nil
}

// Snapshot returns a copy of the published image.
func (w *Window) Snapshot() *image.RGBA {
	w.lock.Lock()
	defer w.lock.Unlock()
	img := image.NewRGBA(w.front.Rect)
	copy(img.Pix, w.front.Pix)
	return img
}

// Run opens the window and blocks until it is closed.
// It must be called from the main goroutine.
func (w *Window) Run() error {
	scale := w.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.width*scale, w.height*scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(&game{w: w})
}

type game struct {
	w *Window
}

func (g *game) Update() error {
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w := g.w
	w.lock.Lock()
	if w.img == nil {
		w.img = ebiten.NewImage(w.width, w.height)
	}
	w.img.WritePixels(w.front.Pix)
	w.lock.Unlock()
	screen.DrawImage(w.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w.width, g.w.height
}
