//go:build windows

package tui

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/windows"

	"github.com/mctui/tui/internal/debug"
)

// pollTimeout mirrors terminal_unix.go's microsecond-scale poll bound.
const pollTimeout = 200 * time.Microsecond

// rawModeState stores the original console mode for restoration.
// Grounded on grindlemire-go-tui's root terminal_windows.go.
type rawModeState struct {
	handle windows.Handle
	mode   uint32
}

// RealDriver is the real TerminalDriver on Windows consoles.
type RealDriver struct {
	in, out windows.Handle
	raw     *rawModeState
	altScreen bool
}

// NewRealDriver constructs a real driver over the process console.
func NewRealDriver() *RealDriver {
	return &RealDriver{
		in:  windows.Handle(os.Stdin.Fd()),
		out: windows.Handle(os.Stdout.Fd()),
	}
}

func (r *RealDriver) Size() (w, h int) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(r.out, &info); err != nil {
		return 80, 24
	}
	width := int(info.Window.Right-info.Window.Left) + 1
	height := int(info.Window.Bottom-info.Window.Top) + 1
	if width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}

func (r *RealDriver) ReadInput() (byte, bool) {
	var buf [1]byte
	var n uint32
	overlapped := windows.Overlapped{}
	err := windows.ReadFile(r.in, buf[:], &n, &overlapped)
	if err != nil || n != 1 {
		return 0, false
	}
	return buf[0], true
}

func (r *RealDriver) HasInput() bool {
	var n uint32
	if err := windows.GetNumberOfConsoleInputEvents(r.in, &n); err != nil {
		return false
	}
	return n > 0
}

func (r *RealDriver) Write(p []byte) error {
	var n uint32
	return windows.WriteFile(r.out, p, &n, nil)
}

func (r *RealDriver) Initialize() error {
	state, err := enableRawMode(r.in)
	if err != nil {
		return fmt.Errorf("tui: enable raw mode: %w", err)
	}
	r.raw = state

	esc := newEscBuilder(64)
	esc.EnterAltScreen()
	esc.HideCursor()
	esc.ClearScreen()
	esc.MoveTo(0, 0)
	if err := r.Write(esc.Bytes()); err != nil {
		return err
	}
	r.altScreen = true
	debug.Log("RealDriver.Initialize: raw mode + alt screen enabled")
	return nil
}

func (r *RealDriver) Cleanup() error {
	esc := newEscBuilder(64)
	esc.ShowCursor()
	if r.altScreen {
		esc.ExitAltScreen()
	}
	_ = r.Write(esc.Bytes())
	r.altScreen = false

	if r.raw != nil {
		err := disableRawMode(r.raw)
		r.raw = nil
		if err != nil {
			return fmt.Errorf("tui: disable raw mode: %w", err)
		}
	}
	debug.Log("RealDriver.Cleanup: terminal restored")
	return nil
}

func (r *RealDriver) IsInteractive() bool { return true }

func (r *RealDriver) Caps() Capabilities {
	return Capabilities{Colors256: true, TrueColor: true}
}

// enableRawMode puts the console into raw-ish mode and returns the
// previous mode for restoration. Grounded on the teacher's
// terminal_windows.go.
func enableRawMode(h windows.Handle) (*rawModeState, error) {
	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return nil, err
	}

	raw := mode
	raw &^= windows.ENABLE_ECHO_INPUT | windows.ENABLE_LINE_INPUT | windows.ENABLE_PROCESSED_INPUT
	raw |= windows.ENABLE_EXTENDED_FLAGS | windows.ENABLE_WINDOW_INPUT | windows.ENABLE_VIRTUAL_TERMINAL_INPUT

	if err := windows.SetConsoleMode(h, raw); err != nil {
		return nil, err
	}
	return &rawModeState{handle: h, mode: mode}, nil
}

// disableRawMode restores the console to its previous mode.
func disableRawMode(state *rawModeState) error {
	if state == nil {
		return nil
	}
	return windows.SetConsoleMode(state.handle, state.mode)
}
