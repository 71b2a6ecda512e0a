package tui

import "testing"

type leafComponent struct {
	BaseComponent
	handleReturn bool
	handleCalls  int
}

func (l *leafComponent) Render(fb *FrameBuffer, x, y, w, h int) {}
func (l *leafComponent) HandleInput(key KeyEvent) bool {
	l.handleCalls++
	return l.handleReturn
}

func TestContainerOffersInputToFocusedChildOnly(t *testing.T) {
	c := NewContainer()
	unfocused := &leafComponent{handleReturn: true}
	focused := &leafComponent{handleReturn: true}
	c.Add(unfocused)
	c.Add(focused)
	focused.SetFocused(true)

	if !c.HandleInput(charEvent('x')) {
		t.Fatalf("expected the container to report the key handled")
	}
	if unfocused.handleCalls != 0 {
		t.Fatalf("unfocused child should not have been offered the key")
	}
	if focused.handleCalls != 1 {
		t.Fatalf("focused child should have been offered the key exactly once")
	}
}

func TestContainerStopsOnFirstHandled(t *testing.T) {
	c := NewContainer()
	first := &leafComponent{handleReturn: true}
	second := &leafComponent{handleReturn: true}
	first.SetFocused(true)
	second.SetFocused(true)
	c.Add(first)
	c.Add(second)

	c.HandleInput(charEvent('x'))

	if second.handleCalls != 0 {
		t.Fatalf("second child should not be offered the key once the first handles it")
	}
}

func TestContainerLosingFocusPropagatesToChildren(t *testing.T) {
	c := NewContainer()
	child := &leafComponent{}
	c.Add(child)
	child.SetFocused(true)

	c.SetFocused(false)

	if child.IsFocused() {
		t.Fatalf("child should have lost focus when the container lost focus")
	}
}

func TestContainerGainingFocusDoesNotAutoFocusChildren(t *testing.T) {
	c := NewContainer()
	child := &leafComponent{}
	c.Add(child)

	c.SetFocused(true)

	if child.IsFocused() {
		t.Fatalf("gaining focus must not auto-focus a child")
	}
}
