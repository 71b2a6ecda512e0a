package tui

// Capabilities describes what the terminal reports about itself.
// spec.md §6 says TERM is consulted "only to decide colour support".
type Capabilities struct {
	Colors256 bool
	TrueColor bool
}

// Driver is the TerminalDriver abstraction of spec.md §4.1. There are two
// variants: the real driver (terminal_unix.go) and the in-memory virtual
// driver (virtual_terminal.go) used for deterministic tests.
type Driver interface {
	// Size returns the current terminal dimensions.
	Size() (w, h int)

	// ReadInput is non-blocking: it returns one byte if available,
	// otherwise (0, false) immediately.
	ReadInput() (b byte, ok bool)

	// HasInput peeks whether ReadInput would return a byte right now.
	HasInput() bool

	// Write appends bytes to the output stream; must be flushed before
	// returning so a caller can rely on visibility for interactive echo.
	Write(p []byte) error

	// Initialize enables raw mode, enters the alternate screen, hides
	// the cursor, and clears the screen.
	Initialize() error

	// Cleanup is the exact inverse of Initialize, in reverse order. It
	// must succeed even if Initialize only partially completed.
	Cleanup() error

	// IsInteractive reports whether this driver is backed by a real
	// terminal (true) or a virtual/test double (false).
	IsInteractive() bool

	// Caps reports detected terminal capabilities.
	Caps() Capabilities
}
