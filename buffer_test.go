package tui

import (
	"strings"
	"testing"
)

func TestRenderDiffMinimality(t *testing.T) {
	// scenario 1: render diff minimality.
	v := NewVirtualDriver(80, 24)
	theme := DefaultThemeContext()
	fb := NewFrameBuffer(v, theme)

	fb.BeginFrame()
	fb.WriteAt(0, 0, "HELLO", "S1")
	if err := fb.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}

	out := string(v.Output())
	if !strings.Contains(out, "\x1b[1;1H") {
		t.Errorf("output %q missing cursor move to (0,0)", out)
	}
	if !strings.Contains(out, "S1") {
		t.Errorf("output %q missing style S1", out)
	}
	if !strings.Contains(out, "HELLO") {
		t.Errorf("output %q missing text HELLO", out)
	}

	v.ClearOutput()
	fb.BeginFrame()
	fb.WriteAt(0, 0, "HELLO", "S1")
	if err := fb.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if len(v.Output()) != 0 {
		t.Errorf("second identical frame emitted %q, want empty", v.Output())
	}
}

func TestWriteAtOutOfBoundsIsNoOp(t *testing.T) {
	v := NewVirtualDriver(10, 10)
	fb := NewFrameBuffer(v, DefaultThemeContext())
	fb.BeginFrame()
	before := make([]Cell, len(fb.back))
	copy(before, fb.back)

	fb.WriteAt(-5, -5, "X", "S1")
	fb.WriteAt(100, 100, "X", "S1")

	for i := range fb.back {
		if !fb.back[i].Equal(before[i]) {
			t.Fatalf("out-of-bounds WriteAt changed cell %d", i)
		}
	}
}

func TestInvalidateForcesFullRedraw(t *testing.T) {
	v := NewVirtualDriver(3, 2)
	fb := NewFrameBuffer(v, DefaultThemeContext())

	fb.BeginFrame()
	_ = fb.EndFrame()
	v.ClearOutput()

	fb.Invalidate()
	fb.BeginFrame()
	_ = fb.EndFrame()

	// every one of the 3x2 cells must have been re-emitted.
	w, h := fb.Size()
	out := string(v.Output())
	count := strings.Count(out, " ") // BeginFrame fills with spaces
	if count < w*h {
		t.Errorf("expected at least %d re-emitted space characters, got %d in %q", w*h, count, out)
	}
}

func TestHandleResizeReallocatesAndInvalidates(t *testing.T) {
	v := NewVirtualDriver(10, 10)
	fb := NewFrameBuffer(v, DefaultThemeContext())

	v.SetSize(20, 5)
	fb.HandleResize()

	w, h := fb.Size()
	if w != 20 || h != 5 {
		t.Fatalf("Size() = %d,%d want 20,5", w, h)
	}

	v.ClearOutput()
	fb.BeginFrame()
	fb.WriteAt(0, 0, "X", "S1")
	_ = fb.EndFrame()
	if len(v.Output()) == 0 {
		t.Errorf("expected output after resize-triggered invalidate, got none")
	}
}

func TestDrawBoxNoOpBelowMinimumSize(t *testing.T) {
	v := NewVirtualDriver(10, 10)
	fb := NewFrameBuffer(v, DefaultThemeContext())
	fb.BeginFrame()
	before := make([]Cell, len(fb.back))
	copy(before, fb.back)

	fb.DrawBox(0, 0, 1, 1, "S1")

	for i := range fb.back {
		if !fb.back[i].Equal(before[i]) {
			t.Fatalf("DrawBox with w,h < 2 mutated the buffer")
		}
	}
}
