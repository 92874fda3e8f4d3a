package display

// DrawGlyph draws ch with its top-left corner at (x, y).
// Pixels outside the frame are dropped.
func DrawGlyph(f *Frame, x, y int, ch rune, c Color) {
	g := GlyphFor(ch)
	for row := 0; row < GlyphSize; row++ {
		if g[row] == 0 {
			continue
		}
		for col := 0; col < GlyphSize; col++ {
			if g.Set(col, row) {
				f.Set(x+col, y+row, c)
			}
		}
	}
}

// DrawText draws s starting at (x, y). The cursor advances by GlyphPitch
// and wraps back to x one GlyphPitch lower when the next glyph would not
// fit the frame width. Text past the bottom is clipped.
func DrawText(f *Frame, x, y int, s string, c Color) {
	cx := x
	for _, ch := range s {
		DrawGlyph(f, cx, y, ch, c)
		cx += GlyphPitch
		if cx+GlyphSize > Width {
			y += GlyphPitch
			cx = x
		}
	}
}

// TextWidth returns the pixels covered by s on a single line.
func TextWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return 0
	}
	return n*GlyphPitch - 1
}
