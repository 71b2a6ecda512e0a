package tui

import "strings"

// ScreenCapture is a snapshot cell grid produced by AnsiParser, with query
// operations for deterministic testing. It is the virtual-side read path
// mirroring the real-side write path (FrameBuffer.EndFrame).
type ScreenCapture struct {
	width, height int
	cells         []Cell
}

func newScreenCapture(w, h int) *ScreenCapture {
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = blankCell
	}
	return &ScreenCapture{width: w, height: h, cells: cells}
}

func (s *ScreenCapture) idx(x, y int) int { return y*s.width + x }

func (s *ScreenCapture) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// At returns the cell at (x, y).
func (s *ScreenCapture) At(x, y int) Cell {
	if !s.inBounds(x, y) {
		return Cell{}
	}
	return s.cells[s.idx(x, y)]
}

// TextAt returns the rune at (x, y) as a one-character string, or "" if
// out of bounds.
func (s *ScreenCapture) TextAt(x, y int) string {
	if !s.inBounds(x, y) {
		return ""
	}
	return string(s.cells[s.idx(x, y)].Rune)
}

// Line returns the full text of row y, trailing spaces included.
func (s *ScreenCapture) Line(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < s.width; x++ {
		b.WriteRune(s.cells[s.idx(x, y)].Rune)
	}
	return b.String()
}

// Region returns the text of a rectangular region, one string per row.
func (s *ScreenCapture) Region(x, y, w, h int) []string {
	out := make([]string, 0, h)
	for row := y; row < y+h; row++ {
		var b strings.Builder
		for col := x; col < x+w; col++ {
			b.WriteRune(s.At(col, row).Rune)
		}
		out = append(out, b.String())
	}
	return out
}

// Contains reports whether needle appears anywhere in the capture.
func (s *ScreenCapture) Contains(needle string) bool {
	for y := 0; y < s.height; y++ {
		if strings.Contains(s.Line(y), needle) {
			return true
		}
	}
	return false
}

// Find returns the (x, y) of the first occurrence of needle, scanning
// top-to-bottom, left-to-right, or ok == false if not present.
func (s *ScreenCapture) Find(needle string) (x, y int, ok bool) {
	runes := []rune(needle)
	if len(runes) == 0 {
		return 0, 0, false
	}
	for row := 0; row < s.height; row++ {
		line := []rune(s.Line(row))
		for col := 0; col+len(runes) <= len(line); col++ {
			if string(line[col:col+len(runes)]) == needle {
				return col, row, true
			}
		}
	}
	return 0, 0, false
}

// ColorAt returns the style token in effect at (x, y).
func (s *ScreenCapture) ColorAt(x, y int) string {
	return s.At(x, y).Style
}

// AnsiParser consumes the same byte stream the renderer emits and
// produces ScreenCapture snapshots. It implements a minimal VT100 subset
// deliberately narrower than a general terminal emulator — spec.md §4.4:
// "This parser exists only to make testing deterministic."
//
// Hand-rolled rather than built on a general VT100/xterm library: the
// subset here (cursor moves, two clear variants, SGR-as-opaque-token,
// printable write-with-wrap) is a few dozen lines, while the general
// libraries in the retrieval pack model scrollback buffers and DEC
// private modes this parser has no use for.
type AnsiParser struct {
	width, height int
	cursorX       int
	cursorY       int
	curStyle      string
}

// NewAnsiParser returns a parser for a screen of the given size.
func NewAnsiParser(width, height int) *AnsiParser {
	return &AnsiParser{width: width, height: height}
}

// Parse consumes data and returns the resulting ScreenCapture.
func (p *AnsiParser) Parse(data []byte) *ScreenCapture {
	capture := newScreenCapture(p.width, p.height)
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == 0x1b:
			i = p.parseEscape(data, i, capture)
		case b == '\n':
			p.cursorY = clampInt(p.cursorY+1, 0, p.height-1)
			p.cursorX = 0
			i++
		case b == '\r':
			p.cursorX = 0
			i++
		case b == '\t':
			p.cursorX = ((p.cursorX / 8) + 1) * 8
			if p.cursorX >= p.width {
				p.cursorX = p.width - 1
			}
			i++
		case b < 0x20:
			// other controls ignored, per spec.md §4.4
			i++
		default:
			i = p.writeRune(data, i, capture)
		}
	}
	return capture
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// writeRune decodes one UTF-8 rune starting at i, writes it at the
// cursor, advances the cursor, wrapping at the right edge, and returns
// the index just past the rune.
func (p *AnsiParser) writeRune(data []byte, i int, capture *ScreenCapture) int {
	r, size := decodeRune(data[i:])
	if capture.inBounds(p.cursorX, p.cursorY) {
		capture.cells[capture.idx(p.cursorX, p.cursorY)] = Cell{Rune: r, Style: p.curStyle}
	}
	p.cursorX++
	if p.cursorX >= p.width {
		p.cursorX = 0
		p.cursorY = clampInt(p.cursorY+1, 0, p.height-1)
	}
	return i + size
}

func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 1
	}
	if b[0] < 0x80 {
		return rune(b[0]), 1
	}
	// Minimal UTF-8 continuation handling; malformed sequences degrade to
	// one byte at a time rather than panicking.
	n := utf8Len(b[0])
	if n == 0 || n > len(b) {
		return rune(b[0]), 1
	}
	r := rune(b[0] & (0xff >> uint(n+1)))
	for k := 1; k < n; k++ {
		if b[k]&0xc0 != 0x80 {
			return rune(b[0]), 1
		}
		r = r<<6 | rune(b[k]&0x3f)
	}
	return r, n
}

func utf8Len(lead byte) int {
	switch {
	case lead&0xe0 == 0xc0:
		return 2
	case lead&0xf0 == 0xe0:
		return 3
	case lead&0xf8 == 0xf0:
		return 4
	default:
		return 0
	}
}

// parseEscape handles one escape sequence starting at data[i] == 0x1b,
// returning the index just past it.
func (p *AnsiParser) parseEscape(data []byte, i int, capture *ScreenCapture) int {
	if i+1 >= len(data) {
		return i + 1
	}
	if data[i+1] != '[' {
		// Other escapes (cursor show/hide, alt screen) are skipped to the
		// terminator, per spec.md §4.4.
		return p.skipToTerminator(data, i+1)
	}

	j := i + 2
	params := j
	for j < len(data) && (data[j] >= '0' && data[j] <= '9' || data[j] == ';') {
		j++
	}
	if j >= len(data) {
		return j
	}
	if data[j] < 0x40 || data[j] > 0x7e {
		// Private-mode marker or other intermediate byte (the '?' in
		// "CSI ? 25 l" for cursor show/hide, or "CSI ? 1049 h" for the
		// alternate screen), not a final byte this parser understands.
		// Skip to the real terminator instead of misreading it as one.
		return p.skipToTerminator(data, j)
	}
	final := data[j]
	paramStr := string(data[params:j])

	switch final {
	case 'H', 'f':
		row, col := parseTwoInts(paramStr, 1, 1)
		p.cursorY = clampInt(row-1, 0, p.height-1)
		p.cursorX = clampInt(col-1, 0, p.width-1)
	case 'A':
		n := parseOneInt(paramStr, 1)
		p.cursorY = clampInt(p.cursorY-n, 0, p.height-1)
	case 'B':
		n := parseOneInt(paramStr, 1)
		p.cursorY = clampInt(p.cursorY+n, 0, p.height-1)
	case 'C':
		n := parseOneInt(paramStr, 1)
		p.cursorX = clampInt(p.cursorX+n, 0, p.width-1)
	case 'D':
		n := parseOneInt(paramStr, 1)
		p.cursorX = clampInt(p.cursorX-n, 0, p.width-1)
	case 'J':
		if parseOneInt(paramStr, 0) == 2 {
			for k := range capture.cells {
				capture.cells[k] = blankCell
			}
			p.cursorX, p.cursorY = 0, 0
		}
	case 'K':
		p.clearLine(parseOneInt(paramStr, 0), capture)
	case 'm':
		p.curStyle = "\x1b[" + paramStr + "m"
	}
	return j + 1
}

func (p *AnsiParser) clearLine(mode int, capture *ScreenCapture) {
	switch mode {
	case 0:
		for x := p.cursorX; x < p.width; x++ {
			capture.cells[capture.idx(x, p.cursorY)] = blankCell
		}
	case 1:
		for x := 0; x <= p.cursorX && x < p.width; x++ {
			capture.cells[capture.idx(x, p.cursorY)] = blankCell
		}
	case 2:
		for x := 0; x < p.width; x++ {
			capture.cells[capture.idx(x, p.cursorY)] = blankCell
		}
	}
}

func (p *AnsiParser) skipToTerminator(data []byte, i int) int {
	for i < len(data) {
		if data[i] >= 0x40 && data[i] <= 0x7e {
			return i + 1
		}
		i++
	}
	return i
}

func parseOneInt(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func parseTwoInts(s string, defA, defB int) (a, b int) {
	parts := strings.SplitN(s, ";", 2)
	a, b = defA, defB
	if len(parts) > 0 && parts[0] != "" {
		a = parseOneInt(parts[0], defA)
	}
	if len(parts) > 1 && parts[1] != "" {
		b = parseOneInt(parts[1], defB)
	}
	return a, b
}
