package display

// Glyph geometry
const (
	GlyphSize  = 8
	GlyphPitch = GlyphSize + 1
)

// Glyph is an 8x8 bitmap, one byte per row, MSB is the leftmost column.
type Glyph [GlyphSize]byte

// Set tells whether the pixel at (col, row) is lit.
func (g *Glyph) Set(col, row int) bool {
	return g[row]&(0x80>>uint(col)) != 0
}

const blankGlyph = 10

var glyphs = [...]Glyph{
	{0x3C, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x3C}, // O
	{0x66, 0x76, 0x7E, 0x7E, 0x6E, 0x66, 0x66, 0x66}, // N
	{0x7E, 0x60, 0x60, 0x7C, 0x60, 0x60, 0x60, 0x60}, // F
	{0x7C, 0x66, 0x66, 0x7C, 0x66, 0x66, 0x66, 0x7C}, // B
	{0x60, 0x60, 0x60, 0x60, 0x60, 0x60, 0x60, 0x7E}, // L
	{0x3C, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3C}, // I
	{0x66, 0x6C, 0x78, 0x70, 0x78, 0x6C, 0x66, 0x66}, // K
	{0x3C, 0x66, 0x60, 0x60, 0x6E, 0x66, 0x66, 0x3C}, // G
	{0x7E, 0x60, 0x60, 0x7C, 0x60, 0x60, 0x60, 0x7E}, // E
	{0x7C, 0x66, 0x66, 0x7C, 0x78, 0x6C, 0x66, 0x66}, // R
	{},                                               // space
	{0x00, 0x18, 0x00, 0x00, 0x00, 0x00, 0x18, 0x00}, // :
	{0x00, 0x00, 0x00, 0x7E, 0x00, 0x00, 0x00, 0x00}, // -
	{0x7E, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18}, // T
	{0x00, 0x00, 0x60, 0x60, 0x00, 0x00, 0x00, 0x00}, // .
	{0x63, 0x66, 0x0C, 0x18, 0x30, 0x60, 0xC6, 0xC6}, // %
	{0x7C, 0x66, 0x66, 0x7C, 0x60, 0x60, 0x60, 0x60}, // P
	{0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x3C, 0x18}, // V
	{0x66, 0x66, 0x66, 0x7E, 0x7E, 0x5A, 0x42, 0x42}, // M
	{0x7C, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x7C}, // D
	{0x18, 0x24, 0x42, 0x42, 0x7E, 0x42, 0x42, 0x42}, // A
	{0x3C, 0x66, 0x60, 0x60, 0x60, 0x60, 0x66, 0x3C}, // C
	{0x3C, 0x66, 0x66, 0x66, 0x66, 0x66, 0x66, 0x3C}, // 0
	{0x18, 0x38, 0x18, 0x18, 0x18, 0x18, 0x18, 0x7E}, // 1
	{0x3C, 0x66, 0x06, 0x0C, 0x18, 0x30, 0x60, 0x7E}, // 2
	{0x3C, 0x66, 0x06, 0x1C, 0x06, 0x66, 0x66, 0x3C}, // 3
	{0x0C, 0x1C, 0x3C, 0x6C, 0x6C, 0x7E, 0x0C, 0x0C}, // 4
	{0x7E, 0x60, 0x60, 0x7C, 0x06, 0x06, 0x66, 0x3C}, // 5
	{0x3C, 0x66, 0x60, 0x7C, 0x66, 0x66, 0x66, 0x3C}, // 6
	{0x7E, 0x06, 0x06, 0x0C, 0x18, 0x30, 0x30, 0x30}, // 7
	{0x3C, 0x66, 0x66, 0x3C, 0x66, 0x66, 0x66, 0x3C}, // 8
	{0x3C, 0x66, 0x66, 0x3E, 0x06, 0x06, 0x66, 0x3C}, // 9
}

func glyphIndex(ch rune) (int, bool) {
	switch ch {
	case 'O':
		return 0, true
	case 'N':
		return 1, true
	case 'F':
		return 2, true
	case 'B':
		return 3, true
	case 'L':
		return 4, true
	case 'I':
		return 5, true
	case 'K':
		return 6, true
	case 'G':
		return 7, true
	case 'E':
		return 8, true
	case 'R':
		return 9, true
	case ' ':
		return blankGlyph, true
	case ':':
		return 11, true
	case '-':
		return 12, true
	case 'T':
		return 13, true
	case '.':
		return 14, true
	case '%':
		return 15, true
	case 'P':
		return 16, true
	case 'V':
		return 17, true
	case 'M':
		return 18, true
	case 'D':
		return 19, true
	case 'A':
		return 20, true
	case 'C':
		return 21, true
	}
	if ch >= '0' && ch <= '9' {
		return 22 + int(ch-'0'), true
	}
	return blankGlyph, false
}

// GlyphFor returns the bitmap of ch, blank when unsupported.
func GlyphFor(ch rune) *Glyph {
	idx, _ := glyphIndex(ch)
	return &glyphs[idx]
}

// Supported tells whether ch has its own glyph.
func Supported(ch rune) bool {
	_, ok := glyphIndex(ch)
	return ok
}
