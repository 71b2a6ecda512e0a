package tui

import "testing"

type recordingScreen struct {
	BaseComponent
	name        string
	activated   int
	deactivated int
	fillRune    rune
	handled     bool
}

func newRecordingScreen(name string, fillRune rune) *recordingScreen {
	return &recordingScreen{name: name, fillRune: fillRune}
}

func (s *recordingScreen) Title() string { return s.name }
func (s *recordingScreen) Metadata() ScreenMetadata {
	return ScreenMetadata{Name: s.name}
}
func (s *recordingScreen) OnActivate()   { s.activated++ }
func (s *recordingScreen) OnDeactivate() { s.deactivated++ }
func (s *recordingScreen) Render(fb *FrameBuffer, x, y, w, h int) {
	fb.FillRect(x, y, w, h, s.fillRune, "")
}
func (s *recordingScreen) HandleInput(key KeyEvent) bool { return s.handled }

func TestScreenStackPushActivatesAndDeactivatesPrior(t *testing.T) {
	stack := NewScreenStack()
	root := newRecordingScreen("root", 'R')
	detail := newRecordingScreen("detail", 'D')

	stack.Push(root)
	if root.activated != 1 {
		t.Fatalf("root.activated = %d, want 1", root.activated)
	}

	stack.Push(detail)
	if root.deactivated != 1 {
		t.Fatalf("root.deactivated = %d, want 1", root.deactivated)
	}
	if detail.activated != 1 {
		t.Fatalf("detail.activated = %d, want 1", detail.activated)
	}
	if stack.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", stack.Depth())
	}
}

func TestScreenPopOnEscape(t *testing.T) {
	// scenario 4: screen pop on Escape.
	app := newTestApp(t)
	stack := app.stack
	root := newRecordingScreen("root", 'R')
	detail := newRecordingScreen("detail", 'D')
	detail.handled = false // handle_input returns false, so P4 (Escape pop) fires

	stack.Push(root)
	stack.Push(detail)

	if detail.HandleInput(namedEvent(Escape)) {
		t.Fatalf("detail.HandleInput should report unhandled for this scenario")
	}
	app.dispatchKey(namedEvent(Escape))

	if stack.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", stack.Depth())
	}
	if stack.Current() != Screen(root) {
		t.Fatalf("Current() = %v, want root", stack.Current())
	}
	if detail.deactivated != 1 {
		t.Fatalf("detail.deactivated = %d, want 1", detail.deactivated)
	}
	if root.activated != 2 {
		t.Fatalf("root.activated = %d, want 2 (initial push + re-activation on pop)", root.activated)
	}
}

func TestScreenStackPopUntil(t *testing.T) {
	stack := NewScreenStack()
	root := newRecordingScreen("root", 'R')
	mid := newRecordingScreen("mid", 'M')
	top := newRecordingScreen("top", 'T')
	stack.Push(root)
	stack.Push(mid)
	stack.Push(top)

	stack.PopUntil(func(s Screen) bool { return s.Title() == "root" })

	if stack.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", stack.Depth())
	}
	if mid.deactivated != 2 || top.deactivated != 1 {
		t.Fatalf("mid.deactivated = %d, top.deactivated = %d; want 2 (push of top + pop) and 1 (pop)", mid.deactivated, top.deactivated)
	}
	if root.activated != 2 {
		t.Fatalf("root.activated = %d, want 2 (initial push + PopUntil re-activation)", root.activated)
	}
}

func TestScreenStackReplaceFiresNoActivationOnReplaced(t *testing.T) {
	stack := NewScreenStack()
	a := newRecordingScreen("a", 'A')
	b := newRecordingScreen("b", 'B')
	stack.Push(a)

	stack.Replace(b)

	if a.deactivated != 1 {
		t.Fatalf("a.deactivated = %d, want 1", a.deactivated)
	}
	if a.activated != 1 {
		t.Fatalf("a.activated = %d, want 1 (no activation on the replaced screen)", a.activated)
	}
	if b.activated != 1 {
		t.Fatalf("b.activated = %d, want 1", b.activated)
	}
	if stack.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", stack.Depth())
	}
}
