package highlight

import (
	"testing"

	"github.com/mctui/tui"
)

func TestHighlightSourceFallsBackOnUnknownLanguage(t *testing.T) {
	spans := highlightSource("package main\n", "not-a-real-language")
	if len(spans) == 0 {
		t.Fatalf("expected at least one span from the fallback lexer")
	}
}

func TestSplitSpansByLineGroupsMultilineSpan(t *testing.T) {
	lines := splitSpansByLine([]span{{text: "a\nb\nc", style: "\x1b[0m"}})
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0][0].text != "a" || lines[1][0].text != "b" || lines[2][0].text != "c" {
		t.Fatalf("lines = %v, want [a] [b] [c]", lines)
	}
}

func TestFileContentViewerMetadataAndTitle(t *testing.T) {
	v := NewFileContentViewer("main.go", "go", "package main\n\nfunc main() {}\n")
	if v.Title() != "main.go" {
		t.Errorf("Title() = %q, want main.go", v.Title())
	}
	if got := v.Metadata().Name; got != "file-content-viewer:main.go" {
		t.Errorf("Metadata().Name = %q, want file-content-viewer:main.go", got)
	}
}

func TestFileContentViewerScrollsAndClampsAtBounds(t *testing.T) {
	code := "line0\nline1\nline2\nline3\nline4\n"
	v := NewFileContentViewer("f.go", "go", code)

	if v.HandleInput(tui.KeyEvent{Kind: tui.KeyNamed, Named: tui.Up}) != true {
		t.Fatalf("expected Up to be handled")
	}
	if v.top != 0 {
		t.Fatalf("top = %d, want 0 (clamped at the start)", v.top)
	}

	if !v.HandleInput(tui.KeyEvent{Kind: tui.KeyNamed, Named: tui.End}) {
		t.Fatalf("expected End to be handled")
	}
	if v.top != v.maxTop() {
		t.Fatalf("top = %d, want maxTop() = %d", v.top, v.maxTop())
	}

	if !v.HandleInput(tui.KeyEvent{Kind: tui.KeyNamed, Named: tui.Home}) {
		t.Fatalf("expected Home to be handled")
	}
	if v.top != 0 {
		t.Fatalf("top = %d, want 0 after Home", v.top)
	}
}

func TestFileContentViewerIgnoresNonNamedKeys(t *testing.T) {
	v := NewFileContentViewer("f.go", "go", "a\nb\n")
	if v.HandleInput(tui.KeyEvent{Kind: tui.KeyChar, Rune: 'x'}) {
		t.Fatalf("expected a character key to be left unhandled")
	}
}

func TestFileContentViewerRenderDrawsWithinExtent(t *testing.T) {
	v := NewFileContentViewer("f.go", "go", "package main\n")
	driver := tui.NewVirtualDriver(40, 10)
	fb := tui.NewFrameBuffer(driver, tui.DefaultThemeContext())
	fb.BeginFrame()
	v.Render(fb, 0, 0, 40, 10)
	if err := fb.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
}
