package console

// LineBufferSize is the size of the receive buffer, including the
// terminator slot, so at most LineBufferSize-1 bytes are kept per line.
const LineBufferSize = 16

// LineAssembler collects bytes into lines.
// CR or LF ends a line only when something is buffered, so CRLF and
// blank lines produce nothing. Bytes past the buffer are dropped.
type LineAssembler struct {
	buf [LineBufferSize - 1]byte
	n   int
}

// Feed adds one byte. It returns the completed line, if any.
func (a *LineAssembler) Feed(c byte) (string, bool) {
	if c == '\r' || c == '\n' {
		if a.n == 0 {
			return "", false
		}
		line := string(a.buf[:a.n])
		a.n = 0
		return line, true
	}
	if a.n < len(a.buf) {
		a.buf[a.n] = c
		a.n++
	}
	return "", false
}

// Reset discards the partial line.
func (a *LineAssembler) Reset() {
	a.n = 0
}

// Buffered returns the number of bytes of the partial line.
func (a *LineAssembler) Buffered() int {
	return a.n
}
