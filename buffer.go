package tui

import (
	"github.com/mctui/tui/internal/debug"
)

// FrameBuffer is the double-buffered cell grid of spec.md §3/§4.3: back is
// the scratchpad for the frame under construction, front is what the
// terminal is believed to currently display. Grounded on
// grindlemire-go-tui's buffer.go, trimmed of wide-character/continuation
// handling and gradient fills per spec.md's Non-goals.
type FrameBuffer struct {
	driver Driver
	theme  *ThemeContext

	width, height int
	back, front   []Cell

	cursorX, cursorY int
	cursorValid      bool
	curStyle         string

	esc *escBuilder
}

// NewFrameBuffer constructs a frame buffer sized to the driver's current
// dimensions, using theme for the normal-text fill style.
func NewFrameBuffer(driver Driver, theme *ThemeContext) *FrameBuffer {
	w, h := driver.Size()
	fb := &FrameBuffer{
		driver: driver,
		theme:  theme,
		width:  w,
		height: h,
		esc:    newEscBuilder(4096),
	}
	fb.back = make([]Cell, w*h)
	fb.front = make([]Cell, w*h)
	fb.Invalidate()
	return fb
}

// Size returns the buffer's current logical dimensions.
func (fb *FrameBuffer) Size() (w, h int) { return fb.width, fb.height }

// ThemeContext returns the theme this buffer renders with.
func (fb *FrameBuffer) ThemeContext() *ThemeContext { return fb.theme }

func (fb *FrameBuffer) idx(x, y int) int { return y*fb.width + x }

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.width && y < fb.height
}

// BeginFrame fills back with space characters in the theme's normal style,
// per spec.md §4.3.
func (fb *FrameBuffer) BeginFrame() {
	blank := Cell{Rune: ' ', Style: fb.theme.Style("normal-text")}
	for i := range fb.back {
		fb.back[i] = blank
	}
}

// WriteAt writes text starting at (x, y) in the given style, one rune per
// cell, left to right. Cells that fall outside the grid are silently
// dropped (spec.md §8: "no observable change to either buffer").
func (fb *FrameBuffer) WriteAt(x, y int, text string, style string) {
	if y < 0 || y >= fb.height {
		return
	}
	cx := x
	for _, r := range text {
		if cx >= fb.width {
			break
		}
		if cx >= 0 {
			fb.back[fb.idx(cx, y)] = Cell{Rune: r, Style: style}
		}
		cx++
	}
}

// box-drawing characters, single-line Unicode per spec.md §4.3.
const (
	boxTopLeft     = '┌'
	boxTopRight    = '┐'
	boxBottomLeft  = '└'
	boxBottomRight = '┘'
	boxHorizontal  = '─'
	boxVertical    = '│'
)

// DrawBox draws a single-line box border. Defined only for w ≥ 2 ∧ h ≥ 2;
// otherwise it is a no-op, per spec.md §4.3.
func (fb *FrameBuffer) DrawBox(x, y, w, h int, style string) {
	if w < 2 || h < 2 {
		return
	}
	fb.setCell(x, y, boxTopLeft, style)
	fb.setCell(x+w-1, y, boxTopRight, style)
	fb.setCell(x, y+h-1, boxBottomLeft, style)
	fb.setCell(x+w-1, y+h-1, boxBottomRight, style)
	for i := 1; i < w-1; i++ {
		fb.setCell(x+i, y, boxHorizontal, style)
		fb.setCell(x+i, y+h-1, boxHorizontal, style)
	}
	for i := 1; i < h-1; i++ {
		fb.setCell(x, y+i, boxVertical, style)
		fb.setCell(x+w-1, y+i, boxVertical, style)
	}
}

// FillRect fills a rectangle with the given character and style.
func (fb *FrameBuffer) FillRect(x, y, w, h int, ch rune, style string) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			fb.setCell(x+col, y+row, ch, style)
		}
	}
}

func (fb *FrameBuffer) setCell(x, y int, r rune, style string) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.back[fb.idx(x, y)] = Cell{Rune: r, Style: style}
}

// EndFrame compares back to front cell-by-cell, emits the minimal ANSI
// sequence to bring the terminal from front to back, and sets front equal
// to back, per spec.md §4.3.
func (fb *FrameBuffer) EndFrame() error {
	fb.esc.Reset()
	fb.curStyle = ""
	fb.cursorValid = false

	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			i := fb.idx(x, y)
			if fb.back[i].Equal(fb.front[i]) {
				continue
			}
			if !fb.cursorValid || fb.cursorX != x || fb.cursorY != y {
				fb.esc.MoveTo(x, y)
			}
			if fb.back[i].Style != fb.curStyle {
				fb.esc.WriteStyle(fb.back[i].Style)
				fb.curStyle = fb.back[i].Style
			}
			fb.esc.WriteRune(fb.back[i].Rune)
			fb.cursorX, fb.cursorY = x+1, y
			fb.cursorValid = true
		}
	}

	copy(fb.front, fb.back)

	if fb.esc.Len() == 0 {
		return nil
	}
	return fb.driver.Write(fb.esc.Bytes())
}

// Invalidate sets every front cell's style to the sentinel empty string,
// which never equals a legal style token (legal tokens always begin with
// "\x1b["), forcing a full redraw on the next EndFrame. Grounded on
// spec.md §4.3/§9: the source relies on this implicitly; here it is a
// documented invariant.
func (fb *FrameBuffer) Invalidate() {
	for i := range fb.front {
		fb.front[i] = Cell{Rune: 0, Style: ""}
	}
	debug.Log("FrameBuffer.Invalidate: %dx%d marked dirty", fb.width, fb.height)
}

// HandleResize queries the driver for its current size; if it differs
// from the stored size, both buffers are reallocated and the terminal is
// cleared.
func (fb *FrameBuffer) HandleResize() {
	w, h := fb.driver.Size()
	if w == fb.width && h == fb.height {
		return
	}
	fb.width, fb.height = w, h
	fb.back = make([]Cell, w*h)
	fb.front = make([]Cell, w*h)

	clear := newEscBuilder(16)
	clear.ClearScreen()
	clear.MoveTo(0, 0)
	_ = fb.driver.Write(clear.Bytes())

	fb.Invalidate()
	debug.Log("FrameBuffer.HandleResize: resized to %dx%d", w, h)
}
