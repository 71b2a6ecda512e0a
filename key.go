package tui

import (
	"fmt"
	"strings"
)

// Key identifies the shape of a KeyEvent without carrying its payload.
type Key uint8

const (
	// KeyNone is the zero value; never produced by the decoder.
	KeyNone Key = iota
	// KeyChar carries a printable code point in KeyEvent.Rune.
	KeyChar
	// KeyNamed carries one of the named keys in KeyEvent.Named.
	KeyNamed
	// KeyCtrl carries a Ctrl-combination base letter in KeyEvent.Rune.
	KeyCtrl
	// KeyUnknown carries the raw undecoded bytes in KeyEvent.Raw.
	KeyUnknown
)

// NamedKey enumerates the non-printable keys the decoder recognizes.
type NamedKey uint8

const (
	NamedNone NamedKey = iota
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Insert
	Delete
	Enter
	Tab
	Backspace
	Escape
	Space
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

func (n NamedKey) String() string {
	switch n {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Home:
		return "Home"
	case End:
		return "End"
	case PageUp:
		return "PageUp"
	case PageDown:
		return "PageDown"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case Enter:
		return "Enter"
	case Tab:
		return "Tab"
	case Backspace:
		return "Backspace"
	case Escape:
		return "Escape"
	case Space:
		return "Space"
	case F1:
		return "F1"
	case F2:
		return "F2"
	case F3:
		return "F3"
	case F4:
		return "F4"
	case F5:
		return "F5"
	case F6:
		return "F6"
	case F7:
		return "F7"
	case F8:
		return "F8"
	case F9:
		return "F9"
	case F10:
		return "F10"
	case F11:
		return "F11"
	case F12:
		return "F12"
	default:
		return "None"
	}
}

// KeyEvent is a tagged value produced by the KeyDecoder. Exactly one of
// Rune/Named/Raw is meaningful, selected by Kind.
type KeyEvent struct {
	Kind  Key
	Rune  rune   // valid when Kind == KeyChar or KeyCtrl
	Named NamedKey // valid when Kind == KeyNamed
	Raw   []byte // valid when Kind == KeyUnknown
}

func charEvent(r rune) KeyEvent   { return KeyEvent{Kind: KeyChar, Rune: r} }
func namedEvent(n NamedKey) KeyEvent { return KeyEvent{Kind: KeyNamed, Named: n} }
func ctrlEvent(base rune) KeyEvent { return KeyEvent{Kind: KeyCtrl, Rune: base} }
func unknownEvent(raw []byte) KeyEvent {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return KeyEvent{Kind: KeyUnknown, Raw: cp}
}

// String renders the event for diagnostics and test failure messages.
func (e KeyEvent) String() string {
	switch e.Kind {
	case KeyChar:
		return fmt.Sprintf("Char(%q)", e.Rune)
	case KeyNamed:
		return e.Named.String()
	case KeyCtrl:
		return fmt.Sprintf("Ctrl(%c)", e.Rune)
	case KeyUnknown:
		return fmt.Sprintf("Unknown(% x)", e.Raw)
	default:
		return "None"
	}
}

// Modifier is a bitset of modifier keys recognized by KeyCombination.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << 0
)

func (m Modifier) String() string {
	if m&ModCtrl != 0 {
		return "Ctrl"
	}
	return ""
}

// BaseKey identifies the non-modifier half of a KeyCombination: either a
// named key or an uppercased printable character.
type BaseKey struct {
	Named NamedKey // NamedNone when this is a character key
	Char  rune     // 0 when this is a named key
}

func (b BaseKey) String() string {
	if b.Named != NamedNone {
		return b.Named.String()
	}
	return string(b.Char)
}

// KeyCombination is a canonicalised (modifiers, base key) pair used as a
// lookup key by the KeyBindingRegistry. Equality is structural, so two
// KeyCombination values are comparable with ==.
type KeyCombination struct {
	Mod  Modifier
	Base BaseKey
}

// String renders a combination as e.g. "Ctrl+Enter" or "F3" or "Q".
func (k KeyCombination) String() string {
	if k.Mod == ModNone {
		return k.Base.String()
	}
	return k.Mod.String() + "+" + k.Base.String()
}

// NamedCombo builds a KeyCombination for a named key with no modifiers.
func NamedCombo(n NamedKey) KeyCombination {
	return KeyCombination{Base: BaseKey{Named: n}}
}

// CharCombo builds a KeyCombination for a printable character with no
// modifiers. The character is canonicalised to uppercase.
func CharCombo(r rune) KeyCombination {
	return KeyCombination{Base: BaseKey{Char: upperRune(r)}}
}

// CtrlCombo builds a KeyCombination for Ctrl+<letter>.
func CtrlCombo(base rune) KeyCombination {
	return KeyCombination{Mod: ModCtrl, Base: BaseKey{Char: upperRune(base)}}
}

func upperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// ToCombination normalises a KeyEvent into a KeyCombination for binding
// lookup, per spec.md §4.2. KeyUnknown events have no combination.
func (e KeyEvent) ToCombination() (KeyCombination, bool) {
	switch e.Kind {
	case KeyCtrl:
		return CtrlCombo(e.Rune), true
	case KeyNamed:
		return NamedCombo(e.Named), true
	case KeyChar:
		return CharCombo(e.Rune), true
	default:
		return KeyCombination{}, false
	}
}

// ParseCombination parses a human-written combination string such as
// "Ctrl+G", "F3", or "q" into a KeyCombination. Used by config loaders.
func ParseCombination(s string) (KeyCombination, error) {
	parts := strings.Split(s, "+")
	mod := ModNone
	last := parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "ctrl":
			mod |= ModCtrl
		default:
			return KeyCombination{}, fmt.Errorf("tui: unknown modifier %q in combination %q", p, s)
		}
	}
	if n, ok := namedKeyByName(last); ok {
		return KeyCombination{Mod: mod, Base: BaseKey{Named: n}}, nil
	}
	r := []rune(strings.TrimSpace(last))
	if len(r) != 1 {
		return KeyCombination{}, fmt.Errorf("tui: invalid base key %q in combination %q", last, s)
	}
	return KeyCombination{Mod: mod, Base: BaseKey{Char: upperRune(r[0])}}, nil
}

func namedKeyByName(s string) (NamedKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	case "home":
		return Home, true
	case "end":
		return End, true
	case "pageup", "page_up":
		return PageUp, true
	case "pagedown", "page_down":
		return PageDown, true
	case "insert":
		return Insert, true
	case "delete":
		return Delete, true
	case "enter":
		return Enter, true
	case "tab":
		return Tab, true
	case "backspace":
		return Backspace, true
	case "escape", "esc":
		return Escape, true
	case "space":
		return Space, true
	case "f1":
		return F1, true
	case "f2":
		return F2, true
	case "f3":
		return F3, true
	case "f4":
		return F4, true
	case "f5":
		return F5, true
	case "f6":
		return F6, true
	case "f7":
		return F7, true
	case "f8":
		return F8, true
	case "f9":
		return F9, true
	case "f10":
		return F10, true
	case "f11":
		return F11, true
	case "f12":
		return F12, true
	default:
		return NamedNone, false
	}
}
