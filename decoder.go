package tui

import "time"

// pollGranularity bounds how often the decoder re-checks a non-blocking
// driver while waiting out an escape-sequence timeout.
const pollGranularity = 200 * time.Microsecond

// maxEscapeBytes bounds how many bytes an escape sequence may accumulate
// before the decoder gives up and yields Unknown, per spec.md §4.2.
const maxEscapeBytes = 10

// KeyDecoder is a stateful consumer of bytes that yields KeyEvent values.
// Escape sequences are reassembled in a buffer local to each Next call,
// so no partial sequence is carried over between calls; an instance must
// not be shared across concurrent readers.
type KeyDecoder struct {
	// EscapeTimeout is the per-byte wait while assembling an escape
	// sequence. spec.md §4.1/§4.2: ~100ms for a real driver, ~1ms for
	// the virtual driver.
	EscapeTimeout time.Duration
}

// NewKeyDecoder returns a decoder configured with the given per-byte
// escape-reassembly timeout.
func NewKeyDecoder(escapeTimeout time.Duration) *KeyDecoder {
	return &KeyDecoder{EscapeTimeout: escapeTimeout}
}

// Next reads and decodes at most one KeyEvent from the driver. It returns
// (event, true) if a byte was available, or (zero, false) if the driver
// had no input (spec.md §4.2 step 1: "If none, yield nothing").
func (d *KeyDecoder) Next(drv Driver) (KeyEvent, bool) {
	b, ok := drv.ReadInput()
	if !ok {
		return KeyEvent{}, false
	}

	if b != 0x1b {
		return decodeSingleByte(b), true
	}

	return d.assembleEscape(drv), true
}

// decodeSingleByte maps one non-ESC byte to a KeyEvent per the single-byte
// map in spec.md §4.2 step 2.
func decodeSingleByte(b byte) KeyEvent {
	switch b {
	case 0x0a, 0x0d: // LF or CR -> Enter ("both ENTER representations")
		return namedEvent(Enter)
	case 0x09:
		return namedEvent(Tab)
	case 0x7f:
		return namedEvent(Backspace)
	case 0x20:
		return namedEvent(Space)
	}
	if b >= 0x01 && b <= 0x1a {
		// Ctrl+letter: 0x01 = Ctrl+A ... 0x1a = Ctrl+Z
		return ctrlEvent(rune('a' + b - 1))
	}
	if b < 0x20 {
		return unknownEvent([]byte{b})
	}
	return charEvent(rune(b))
}

// assembleEscape runs the escape-sequence reassembly algorithm of
// spec.md §4.2 step 3. The leading ESC byte has already been consumed.
func (d *KeyDecoder) assembleEscape(drv Driver) KeyEvent {
	seq := make([]byte, 0, maxEscapeBytes+1)
	seq = append(seq, 0x1b)

	first, ok := d.waitByte(drv)
	if !ok {
		// Bare ESC with no follow-up within the timeout.
		return namedEvent(Escape)
	}
	seq = append(seq, first)

	switch first {
	case '[':
		return d.assembleCSI(drv, seq)
	case 'O':
		return d.assembleSS3(drv, seq)
	default:
		// Alt+key is out of this spec's scope; an ESC followed by an
		// unrecognised byte is Unknown, per spec.md §4.2 ("If it
		// matched nothing known: yield Unknown(bytes)").
		return unknownEvent(seq)
	}
}

// assembleCSI continues a "ESC [" sequence: digits and ';' extend it,
// an ASCII letter or '~' terminates it.
func (d *KeyDecoder) assembleCSI(drv Driver, seq []byte) KeyEvent {
	params := make([]byte, 0, 4)
	for len(seq) < maxEscapeBytes {
		b, ok := d.waitByte(drv)
		if !ok {
			return unknownEvent(seq)
		}
		seq = append(seq, b)

		if (b >= '0' && b <= '9') || b == ';' {
			params = append(params, b)
			continue
		}

		// CSI terminator: '~' or an ASCII letter, per spec.md §4.2.
		if b == '~' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') {
			if ev, ok := decodeCSI(params, b); ok {
				return ev
			}
			return unknownEvent(seq)
		}

		// Unexpected intermediate byte: not a recognised CSI shape.
		return unknownEvent(seq)
	}
	return unknownEvent(seq)
}

// assembleSS3 continues a "ESC O" sequence: exactly one more letter
// completes it, per spec.md §4.2.
func (d *KeyDecoder) assembleSS3(drv Driver, seq []byte) KeyEvent {
	b, ok := d.waitByte(drv)
	if !ok {
		return unknownEvent(seq)
	}
	seq = append(seq, b)

	switch b {
	case 'P':
		return namedEvent(F1)
	case 'Q':
		return namedEvent(F2)
	case 'R':
		return namedEvent(F3)
	case 'S':
		return namedEvent(F4)
	default:
		return unknownEvent(seq)
	}
}

// decodeCSI interprets a complete "ESC [ <params> <final>" sequence.
func decodeCSI(params []byte, final byte) (KeyEvent, bool) {
	switch final {
	case 'A':
		return namedEvent(Up), true
	case 'B':
		return namedEvent(Down), true
	case 'C':
		return namedEvent(Right), true
	case 'D':
		return namedEvent(Left), true
	case '~':
		switch string(params) {
		case "1":
			return namedEvent(Home), true
		case "4":
			return namedEvent(End), true
		case "2":
			return namedEvent(Insert), true
		case "3":
			return namedEvent(Delete), true
		case "5":
			return namedEvent(PageUp), true
		case "6":
			return namedEvent(PageDown), true
		case "15":
			return namedEvent(F5), true
		case "17":
			return namedEvent(F6), true
		case "18":
			return namedEvent(F7), true
		case "19":
			return namedEvent(F8), true
		case "20":
			return namedEvent(F9), true
		case "21":
			return namedEvent(F10), true
		case "23":
			return namedEvent(F11), true
		case "24":
			return namedEvent(F12), true
		}
	}
	return KeyEvent{}, false
}

// waitByte polls the driver for the next byte, honoring EscapeTimeout. It
// returns (0, false) if the timeout elapses with no byte available.
func (d *KeyDecoder) waitByte(drv Driver) (byte, bool) {
	deadline := time.Now().Add(d.EscapeTimeout)
	for {
		if b, ok := drv.ReadInput(); ok {
			return b, true
		}
		if time.Now().After(deadline) {
			return 0, false
		}
		time.Sleep(pollGranularity)
	}
}
