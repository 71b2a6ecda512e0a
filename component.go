package tui

// Component is the recursive contract of spec.md §4.5: render draws into
// the frame buffer at the given offset, handle_input offers a key event
// and reports whether it was consumed, update runs once per frame before
// rendering, set_focused/is_focused track the boolean focus flag, and
// min_size reports the component's minimum layout footprint.
//
// Grounded on grindlemire-go-tui's Focusable/Renderable interfaces
// (focus.go, app.go), re-expressed per spec.md §9 as a single capability
// interface rather than the source's dynamic class inheritance.
type Component interface {
	Render(fb *FrameBuffer, x, y, w, h int)
	HandleInput(key KeyEvent) bool
	Update()
	SetFocused(focused bool)
	IsFocused() bool
	MinSize() (w, h int)
}

// BaseComponent is an embeddable helper implementing the focus flag and
// no-op Update/MinSize, for leaf components that only need to supply
// Render and HandleInput.
type BaseComponent struct {
	focused bool
}

func (b *BaseComponent) SetFocused(focused bool) { b.focused = focused }
func (b *BaseComponent) IsFocused() bool         { return b.focused }
func (b *BaseComponent) Update()                 {}
func (b *BaseComponent) MinSize() (w, h int)     { return 0, 0 }

// Container is the base for components that hold children by value (no
// parent back-pointers, per spec.md §9). A container's default
// HandleInput offers the key to each focused child in turn and returns on
// the first "handled"; losing focus propagates SetFocused(false) to every
// child, but gaining focus does not auto-focus a child — the concrete
// container decides which child to focus.
type Container struct {
	BaseComponent
	children []Component
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{}
}

// Add appends a child component.
func (c *Container) Add(child Component) {
	c.children = append(c.children, child)
}

// Children returns the container's children in insertion order.
func (c *Container) Children() []Component {
	return c.children
}

// SetFocused propagates false to every child when the container itself
// loses focus; gaining focus does not auto-focus any child.
func (c *Container) SetFocused(focused bool) {
	c.BaseComponent.SetFocused(focused)
	if !focused {
		for _, child := range c.children {
			child.SetFocused(false)
		}
	}
}

// HandleInput offers the key to each focused child in turn, returning on
// the first child that reports it handled the key.
func (c *Container) HandleInput(key KeyEvent) bool {
	for _, child := range c.children {
		if child.IsFocused() && child.HandleInput(key) {
			return true
		}
	}
	return false
}

// Update runs every child's Update once per frame.
func (c *Container) Update() {
	for _, child := range c.children {
		child.Update()
	}
}

// Render renders every child at the container's offset and extent.
// Concrete containers that need per-child layout should override Render
// rather than relying on this default.
func (c *Container) Render(fb *FrameBuffer, x, y, w, h int) {
	for _, child := range c.children {
		child.Render(fb, x, y, w, h)
	}
}
