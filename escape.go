package tui

import (
	"strconv"
	"unicode/utf8"
)

// escBuilder efficiently builds ANSI escape sequences into a reusable
// buffer. Grounded on grindlemire-go-tui's pkg/tui/escape.go, adapted to
// write pre-resolved style tokens (opaque strings) rather than resolving
// a Style struct against Capabilities at emission time.
type escBuilder struct {
	buf []byte
}

func newEscBuilder(capacity int) *escBuilder {
	return &escBuilder{buf: make([]byte, 0, capacity)}
}

func (e *escBuilder) Reset()       { e.buf = e.buf[:0] }
func (e *escBuilder) Bytes() []byte { return e.buf }
func (e *escBuilder) Len() int     { return len(e.buf) }

func (e *escBuilder) writeCSI() { e.buf = append(e.buf, '\x1b', '[') }

func (e *escBuilder) writeInt(n int) { e.buf = strconv.AppendInt(e.buf, int64(n), 10) }

// MoveTo moves the cursor to (x, y), 0-indexed; ANSI uses 1-indexed rows/cols.
func (e *escBuilder) MoveTo(x, y int) {
	e.writeCSI()
	e.writeInt(y + 1)
	e.buf = append(e.buf, ';')
	e.writeInt(x + 1)
	e.buf = append(e.buf, 'H')
}

func (e *escBuilder) ClearScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '2', 'J')
}

func (e *escBuilder) ClearLine(mode int) {
	e.writeCSI()
	e.writeInt(mode)
	e.buf = append(e.buf, 'K')
}

func (e *escBuilder) HideCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'l')
}

func (e *escBuilder) ShowCursor() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '2', '5', 'h')
}

func (e *escBuilder) EnterAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'h')
}

func (e *escBuilder) ExitAltScreen() {
	e.writeCSI()
	e.buf = append(e.buf, '?', '1', '0', '4', '9', 'l')
}

// WriteStyle writes a pre-resolved style token verbatim. Style tokens are
// opaque ANSI SGR strings produced by ThemeContext (theme.go); the
// renderer never interprets their contents, only compares them for
// equality (spec.md §3: "the only equality that matters is (char, style)").
func (e *escBuilder) WriteStyle(token string) {
	e.buf = append(e.buf, token...)
}

// ResetStyle resets all text attributes to terminal defaults.
func (e *escBuilder) ResetStyle() {
	e.writeCSI()
	e.buf = append(e.buf, '0', 'm')
}

func (e *escBuilder) WriteRune(r rune) {
	var b [utf8.UTFMax]byte
	n := utf8.EncodeRune(b[:], r)
	e.buf = append(e.buf, b[:n]...)
}

func (e *escBuilder) WriteString(s string) { e.buf = append(e.buf, s...) }
func (e *escBuilder) WriteBytes(b []byte)  { e.buf = append(e.buf, b...) }
