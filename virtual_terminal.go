package tui

import "fmt"

// VirtualDriver is the in-memory TerminalDriver used for deterministic
// tests, per spec.md §4.1. Test code feeds input with QueueInput (logical
// key names) or QueueRawInput (raw bytes); ReadInput drains one byte at a
// time. Output accumulates in an in-memory buffer read via Output().
type VirtualDriver struct {
	input  []byte
	output []byte
	width  int
	height int
	caps   Capabilities
}

// NewVirtualDriver returns a virtual driver with the given logical size.
func NewVirtualDriver(width, height int) *VirtualDriver {
	return &VirtualDriver{
		width:  width,
		height: height,
		caps:   Capabilities{Colors256: true, TrueColor: true},
	}
}

// SetSize changes the reported terminal size, as spec.md §4.1 allows
// ("A size is settable").
func (v *VirtualDriver) SetSize(w, h int) { v.width, v.height = w, h }

func (v *VirtualDriver) Size() (w, h int) { return v.width, v.height }

func (v *VirtualDriver) ReadInput() (byte, bool) {
	if len(v.input) == 0 {
		return 0, false
	}
	b := v.input[0]
	v.input = v.input[1:]
	return b, true
}

func (v *VirtualDriver) HasInput() bool { return len(v.input) > 0 }

func (v *VirtualDriver) Write(p []byte) error {
	v.output = append(v.output, p...)
	return nil
}

func (v *VirtualDriver) Initialize() error { return nil } // no-op, per spec.md §4.1
func (v *VirtualDriver) Cleanup() error    { return nil } // no-op, per spec.md §4.1

func (v *VirtualDriver) IsInteractive() bool { return false }

func (v *VirtualDriver) Caps() Capabilities { return v.caps }

// Output returns everything written to the driver since construction (or
// the last ClearOutput).
func (v *VirtualDriver) Output() []byte { return v.output }

// ClearOutput empties the captured output buffer, useful between
// assertions within a single test.
func (v *VirtualDriver) ClearOutput() { v.output = nil }

// QueueRawInput appends raw bytes directly to the input FIFO.
func (v *VirtualDriver) QueueRawInput(b []byte) {
	v.input = append(v.input, b...)
}

// QueueInput translates a logical key name (e.g. "UP", "F3", "CTRL_C",
// "ENTER", "a") to the exact byte sequence a real terminal emits for that
// key, and appends it to the input FIFO. This is the canonical mapping
// table of spec.md §4.1, so that the decoder downstream runs unchanged.
func (v *VirtualDriver) QueueInput(name string) error {
	seq, err := keyNameToBytes(name)
	if err != nil {
		return err
	}
	v.input = append(v.input, seq...)
	return nil
}

// keyNameToBytes implements the translation table of spec.md §4.1.
func keyNameToBytes(name string) ([]byte, error) {
	switch name {
	case "UP":
		return []byte{0x1b, '[', 'A'}, nil
	case "DOWN":
		return []byte{0x1b, '[', 'B'}, nil
	case "RIGHT":
		return []byte{0x1b, '[', 'C'}, nil
	case "LEFT":
		return []byte{0x1b, '[', 'D'}, nil
	case "HOME":
		return []byte{0x1b, '[', '1', '~'}, nil
	case "END":
		return []byte{0x1b, '[', '4', '~'}, nil
	case "PAGE_UP":
		return []byte{0x1b, '[', '5', '~'}, nil
	case "PAGE_DOWN":
		return []byte{0x1b, '[', '6', '~'}, nil
	case "INSERT":
		return []byte{0x1b, '[', '2', '~'}, nil
	case "DELETE":
		return []byte{0x1b, '[', '3', '~'}, nil
	case "F1":
		return []byte{0x1b, 'O', 'P'}, nil
	case "F2":
		return []byte{0x1b, 'O', 'Q'}, nil
	case "F3":
		return []byte{0x1b, 'O', 'R'}, nil
	case "F4":
		return []byte{0x1b, 'O', 'S'}, nil
	case "F5":
		return []byte{0x1b, '[', '1', '5', '~'}, nil
	case "F6":
		return []byte{0x1b, '[', '1', '7', '~'}, nil
	case "F7":
		return []byte{0x1b, '[', '1', '8', '~'}, nil
	case "F8":
		return []byte{0x1b, '[', '1', '9', '~'}, nil
	case "F9":
		return []byte{0x1b, '[', '2', '0', '~'}, nil
	case "F10":
		return []byte{0x1b, '[', '2', '1', '~'}, nil
	case "F11":
		return []byte{0x1b, '[', '2', '3', '~'}, nil
	case "F12":
		return []byte{0x1b, '[', '2', '4', '~'}, nil
	case "ENTER":
		return []byte{0x0a}, nil
	case "TAB":
		return []byte{0x09}, nil
	case "BACKSPACE":
		return []byte{0x7f}, nil
	case "ESCAPE":
		return []byte{0x1b}, nil
	case "SPACE":
		return []byte{0x20}, nil
	}

	if len(name) >= len("CTRL_") && name[:5] == "CTRL_" {
		letter := name[5:]
		if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
			return nil, fmt.Errorf("tui: invalid CTRL_ key name %q", name)
		}
		return []byte{letter[0] & 0x1f}, nil
	}

	if len([]rune(name)) == 1 {
		return []byte(name), nil
	}

	return nil, fmt.Errorf("tui: unknown virtual key name %q", name)
}
