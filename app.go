package tui

import (
	"fmt"
	"time"

	"github.com/mctui/tui/internal/debug"
)

const (
	defaultFPS = 30
	minFPS     = 1
	maxFPS     = 60
)

// ActionHandler is the thunk signature the App's action map dispatches
// to: action_id -> thunk, receiving the screen stack so it can navigate.
type ActionHandler func(stack *ScreenStack)

// App is the Application main loop of spec.md §4.9: single-threaded,
// cooperative, frame-based. Grounded on grindlemire-go-tui's app_loop.go
// Run/Stop/QueueUpdate shape, generalized from its single dispatch table
// into the spec's four-priority dispatch chain (menu, bindings, screen,
// escape-pop).
type App struct {
	driver   Driver
	decoder  *KeyDecoder
	fb       *FrameBuffer
	stack    *ScreenStack
	menu     *MenuSystem
	bindings *KeyBindingRegistry
	actions  map[string]ActionHandler

	fps      int
	running  bool
	resizeCh chan struct{}
}

// AppOption configures an App at construction time.
type AppOption func(*App)

// WithFPS sets the target frame rate, clamped to 1..60 per spec.md §4.9.
func WithFPS(fps int) AppOption {
	return func(a *App) {
		if fps < minFPS {
			fps = minFPS
		}
		if fps > maxFPS {
			fps = maxFPS
		}
		a.fps = fps
	}
}

// NewApp constructs an App. driver, stack, and bindings are required;
// menu may be nil (MenuSystem absent is permitted by spec.md §4.9's "if
// present"). Per spec.md §7, "set_menu_system called before
// set_screen_registry" is a programmer error; this constructor sidesteps
// that failure mode entirely by requiring every dependency up front,
// per spec.md §9's call to "make the precondition representable in the
// type rather than enforced at runtime."
func NewApp(driver Driver, theme *ThemeContext, stack *ScreenStack, bindings *KeyBindingRegistry, opts ...AppOption) *App {
	a := &App{
		driver:   driver,
		decoder:  NewKeyDecoder(decoderTimeout(driver)),
		fb:       NewFrameBuffer(driver, theme),
		stack:    stack,
		bindings: bindings,
		actions:  make(map[string]ActionHandler),
		fps:      defaultFPS,
		resizeCh: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// decoderTimeout picks the per-byte escape reassembly timeout: real
// terminals get the 100ms of spec.md §4.2, the virtual driver (used in
// tests) gets the 1ms variant so test suites run fast.
func decoderTimeout(driver Driver) time.Duration {
	if driver.IsInteractive() {
		return 100 * time.Millisecond
	}
	return time.Millisecond
}

// SetMenuSystem installs the menu system.
func (a *App) SetMenuSystem(menu *MenuSystem) { a.menu = menu }

// RegisterAction maps an action_id to a handler thunk.
func (a *App) RegisterAction(actionID string, handler ActionHandler) {
	a.actions[actionID] = handler
}

// Stack returns the underlying screen stack, so callers can push an
// initial screen before calling Run.
func (a *App) Stack() *ScreenStack { return a.stack }

// Stop sets running = false; observed at the next loop iteration. Safe to
// call from RegisterAction handlers or Run's own signal-handling
// goroutine.
func (a *App) Stop() { a.running = false }

// Run starts the cooperative main loop and blocks until the screen stack
// empties, an action calls Stop, or a terminating signal arrives. It
// installs the driver, and guarantees Cleanup runs on every exit path —
// normal, panicking, or signalled — per spec.md §5's resource discipline.
func (a *App) Run() (err error) {
	if err := a.driver.Initialize(); err != nil {
		return fmt.Errorf("tui: initialize driver: %w", err)
	}
	defer func() {
		if cleanupErr := a.driver.Cleanup(); cleanupErr != nil && err == nil {
			err = fmt.Errorf("tui: cleanup driver: %w", cleanupErr)
		}
	}()

	stopSignals := a.watchSignals()
	defer stopSignals()

	a.running = true
	frameDuration := time.Second / time.Duration(a.fps)
	lastDepth := a.stack.Depth()

	for a.running && a.stack.HasScreens() {
		frameStart := time.Now()

		select {
		case <-a.resizeCh:
			a.fb.HandleResize()
		default:
		}

		a.drainInput(&lastDepth)

		if top := a.stack.Current(); top != nil {
			a.safeUpdate(top)
		}

		a.fb.HandleResize()
		a.fb.BeginFrame()
		if a.menu != nil {
			a.menu.RenderBar(a.fb)
		}
		a.renderScreen()
		_ = a.fb.EndFrame()

		elapsed := time.Since(frameStart)
		if sleep := frameDuration - elapsed; sleep > 0 {
			time.Sleep(sleep)
		}
	}

	return nil
}

// drainInput repeatedly decodes keys until none remain, dispatching each
// through the four-priority chain of spec.md §4.9 step 2.
func (a *App) drainInput(lastDepth *int) {
	for {
		key, ok := a.decoder.Next(a.driver)
		if !ok {
			return
		}
		a.dispatchKey(key)
		a.detectScreenChange(lastDepth)
	}
}

func (a *App) dispatchKey(key KeyEvent) {
	// P1: MenuSystem.
	if a.menu != nil && a.menu.HandleInput(key) {
		return
	}

	// P2: KeyBindingRegistry.
	if a.bindings != nil {
		if binding, ok := a.bindings.Match(key); ok {
			if handler, ok := a.actions[binding.ActionID]; ok {
				a.safeInvoke(func() { handler(a.stack) })
				return
			}
		}
	}

	// P3: active screen.
	if top := a.stack.Current(); top != nil {
		if a.safeHandleInput(top, key) {
			return
		}
	}

	// P4: Escape pop.
	if key.Kind == KeyNamed && key.Named == Escape && a.stack.Depth() > 1 {
		a.stack.Pop()
	}
}

func (a *App) renderScreen() {
	w, h := a.fb.Size()
	a.stack.Render(a.fb, 0, 1, w, h-1)
	if a.menu != nil && a.menu.IsOpen() {
		a.menu.renderDropdown(a.fb)
	}
}

// detectScreenChange compares stack depth against the previous frame's
// value and invalidates the renderer on any change, per spec.md §4.9.
func (a *App) detectScreenChange(lastDepth *int) {
	depth := a.stack.Depth()
	if depth != *lastDepth {
		a.fb.Invalidate()
		*lastDepth = depth
	}
}

// safeUpdate, safeHandleInput, and safeInvoke implement spec.md §7's
// "Handler exception: must not crash the loop; the loop catches, logs,
// forces an invalidate, and continues."
func (a *App) safeUpdate(s Screen) {
	defer a.recoverInto("Update")
	s.Update()
}

func (a *App) safeHandleInput(s Screen, key KeyEvent) (handled bool) {
	defer a.recoverInto("HandleInput")
	return s.HandleInput(key)
}

func (a *App) safeInvoke(fn func()) {
	defer a.recoverInto("action handler")
	fn()
}

func (a *App) recoverInto(where string) {
	if r := recover(); r != nil {
		debug.Log("App: recovered panic in %s: %v", where, r)
		a.fb.Invalidate()
	}
}

// NavigateToScreen is the F-key navigation helper of spec.md §4.9. Screens
// are identified by Metadata().Name: if the current screen's name equals
// name, no-op; else if a screen with that name is already present deeper
// in the stack, pop_until to it; else push a fresh copy built by factory.
func NavigateToScreen(stack *ScreenStack, name string, factory func() Screen) {
	if top := stack.Current(); top != nil && top.Metadata().Name == name {
		return
	}
	if _, ok := stack.FindByName(name); ok {
		stack.PopUntil(func(s Screen) bool { return s.Metadata().Name == name })
		return
	}
	fresh := factory()
	if fresh == nil {
		debug.Log("NavigateToScreen: no factory result for %q, screen not found", name)
		return
	}
	stack.Push(fresh)
}
