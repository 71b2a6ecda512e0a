package tui

import "testing"

func TestAnsiParserRoundTripsFrameBufferOutput(t *testing.T) {
	v := NewVirtualDriver(80, 24)
	fb := NewFrameBuffer(v, DefaultThemeContext())
	fb.BeginFrame()
	fb.WriteAt(2, 3, "HELLO", "\x1b[1;35m")
	if err := fb.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}

	parser := NewAnsiParser(80, 24)
	capture := parser.Parse(v.Output())

	if got := capture.TextAt(2, 3); got != "H" {
		t.Fatalf("TextAt(2,3) = %q, want H", got)
	}
	if !capture.Contains("HELLO") {
		t.Fatalf("capture does not contain HELLO")
	}
	x, y, ok := capture.Find("HELLO")
	if !ok || x != 2 || y != 3 {
		t.Fatalf("Find(HELLO) = (%d,%d,%v), want (2,3,true)", x, y, ok)
	}
	if got := capture.ColorAt(2, 3); got != "\x1b[1;35m" {
		t.Fatalf("ColorAt(2,3) = %q, want the applied style token", got)
	}
}

func TestAnsiParserClearScreen(t *testing.T) {
	parser := NewAnsiParser(5, 2)
	capture := parser.Parse([]byte("AB\x1b[2Jxy"))
	if capture.TextAt(0, 0) != "x" {
		t.Fatalf("expected clear-screen to home the cursor before writing xy")
	}
}

func TestAnsiParserCursorMoveClamped(t *testing.T) {
	parser := NewAnsiParser(5, 5)
	capture := parser.Parse([]byte("\x1b[99;99HZ"))
	if capture.TextAt(4, 4) != "Z" {
		t.Fatalf("expected an out-of-range CSI H to clamp into bounds")
	}
}

func TestAnsiParserSkipsPrivateModeSequences(t *testing.T) {
	parser := NewAnsiParser(10, 2)
	// Cursor-hide, cursor-show, and alt-screen-enter private-mode
	// sequences interleaved with real text; none of them should leak
	// into the capture as printable runes.
	capture := parser.Parse([]byte("\x1b[?25lAB\x1b[?25hC\x1b[?1049hD"))
	if got := capture.Line(0); got[:4] != "ABCD" {
		t.Fatalf("Line(0) = %q, want it to start with ABCD (private-mode sequences leaked through)", got)
	}
}
