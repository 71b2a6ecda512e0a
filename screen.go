package tui

import "github.com/mctui/tui/internal/debug"

// ScreenMetadata is the explicit metadata accessor spec.md §9 calls for,
// replacing the source's reflection-visible annotations: "re-express as
// explicit metadata() accessors on each screen type, registered by
// whoever constructs the screen." This is a supplemented addition beyond
// spec.md's minimal Screen contract.
type ScreenMetadata struct {
	Name        string
	Description string
}

// Screen extends Component with the activation lifecycle of spec.md
// §4.5: "between on_activate and the matching on_deactivate, a screen is
// authorised to assume it is the top-of-stack."
type Screen interface {
	Component

	OnActivate()
	OnDeactivate()
	Title() string
	Metadata() ScreenMetadata
}

// ScreenManagerAware is the optional capability of spec.md §6: a screen
// that wants to navigate implements this to receive a reference to the
// owning ScreenStack at registration.
type ScreenManagerAware interface {
	SetScreenManager(stack *ScreenStack)
}

// ScreenStack is the LIFO stack of spec.md §4.6. All operations are
// synchronous; exactly one on_activate has fired without a matching
// on_deactivate for any non-empty stack, and it is always on the top.
type ScreenStack struct {
	screens []Screen
}

// NewScreenStack returns an empty stack.
func NewScreenStack() *ScreenStack {
	return &ScreenStack{}
}

// Depth returns the number of screens currently on the stack.
func (s *ScreenStack) Depth() int { return len(s.screens) }

// HasScreens reports whether the stack is non-empty.
func (s *ScreenStack) HasScreens() bool { return len(s.screens) > 0 }

// Current returns the top screen, or nil if the stack is empty.
func (s *ScreenStack) Current() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Stack returns the screens bottom-to-top. The returned slice is owned by
// the caller; mutating it does not affect the stack.
func (s *ScreenStack) Stack() []Screen {
	out := make([]Screen, len(s.screens))
	copy(out, s.screens)
	return out
}

// Push deactivates the current top (if any), appends screen, and
// activates it.
func (s *ScreenStack) Push(screen Screen) {
	if top := s.Current(); top != nil {
		top.OnDeactivate()
		debug.Log("ScreenStack.Push: deactivated %s", top.Title())
	}
	s.screens = append(s.screens, screen)
	screen.OnActivate()
	debug.Log("ScreenStack.Push: activated %s, depth=%d", screen.Title(), len(s.screens))
}

// Pop deactivates and removes the top screen, then activates the new top
// if any. Returns the popped screen, or nil if the stack was empty.
func (s *ScreenStack) Pop() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	popped := s.screens[len(s.screens)-1]
	popped.OnDeactivate()
	s.screens = s.screens[:len(s.screens)-1]
	if top := s.Current(); top != nil {
		top.OnActivate()
	}
	debug.Log("ScreenStack.Pop: popped %s, depth=%d", popped.Title(), len(s.screens))
	return popped
}

// Replace deactivates the current top, swaps it for screen at the same
// depth, and activates the replacement. The replaced screen is removed
// from the stack with only on_deactivate; no on_activate fires on it.
func (s *ScreenStack) Replace(screen Screen) {
	if len(s.screens) == 0 {
		s.screens = append(s.screens, screen)
		screen.OnActivate()
		return
	}
	old := s.screens[len(s.screens)-1]
	old.OnDeactivate()
	s.screens[len(s.screens)-1] = screen
	screen.OnActivate()
	debug.Log("ScreenStack.Replace: %s -> %s", old.Title(), screen.Title())
}

// PopUntil pops repeatedly until predicate(top) is true or the stack is
// empty. on_deactivate fires on each popped screen; on_activate fires
// once at the end, on the final top (if any).
func (s *ScreenStack) PopUntil(predicate func(Screen) bool) {
	for len(s.screens) > 0 && !predicate(s.Current()) {
		top := s.screens[len(s.screens)-1]
		top.OnDeactivate()
		s.screens = s.screens[:len(s.screens)-1]
	}
	if top := s.Current(); top != nil {
		top.OnActivate()
	}
}

// Clear empties the stack without firing on_deactivate; it is intended
// for shutdown paths where there is no next frame to observe the screen.
func (s *ScreenStack) Clear() {
	s.screens = nil
}

// HandleInput delegates to the top screen only.
func (s *ScreenStack) HandleInput(key KeyEvent) bool {
	top := s.Current()
	if top == nil {
		return false
	}
	return top.HandleInput(key)
}

// Update delegates to the top screen only.
func (s *ScreenStack) Update() {
	if top := s.Current(); top != nil {
		top.Update()
	}
}

// Render delegates to the top screen only.
func (s *ScreenStack) Render(fb *FrameBuffer, x, y, w, h int) {
	if top := s.Current(); top != nil {
		top.Render(fb, x, y, w, h)
	}
}

// FindByName searches the stack, top-down, for a screen whose Metadata
// name matches. Used by the F-key navigation helper (app.go).
func (s *ScreenStack) FindByName(name string) (Screen, bool) {
	for i := len(s.screens) - 1; i >= 0; i-- {
		if s.screens[i].Metadata().Name == name {
			return s.screens[i], true
		}
	}
	return nil, false
}
