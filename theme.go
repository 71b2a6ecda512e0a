package tui

import (
	"fmt"
	"strings"
)

// ColorType distinguishes between color representations. Grounded on
// grindlemire-go-tui's color.go.
type ColorType uint8

const (
	ColorDefault ColorType = iota
	ColorANSI
	ColorRGB
)

// Color represents a terminal color: default, ANSI 256, or true color.
type Color struct {
	typ  ColorType
	r, g, b uint8
}

func DefaultColor() Color               { return Color{typ: ColorDefault} }
func ANSIColor(index uint8) Color       { return Color{typ: ColorANSI, r: index} }
func RGBColor(r, g, b uint8) Color      { return Color{typ: ColorRGB, r: r, g: g, b: b} }

// Attr is a text-attribute bitfield.
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrReverse
)

// Style is a foreground/background/attribute triple that compiles down to
// an opaque SGR style token. The rest of the engine (Cell, FrameBuffer,
// escBuilder) never sees a Style; it only ever sees the resolved string.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

func (s Style) Foreground(c Color) Style { s.Fg = c; return s }
func (s Style) Background(c Color) Style { s.Bg = c; return s }
func (s Style) Bold() Style              { s.Attrs |= AttrBold; return s }
func (s Style) Dim() Style               { s.Attrs |= AttrDim; return s }
func (s Style) Underline() Style         { s.Attrs |= AttrUnderline; return s }
func (s Style) Reverse() Style           { s.Attrs |= AttrReverse; return s }

// token compiles a Style into its opaque ANSI SGR escape sequence. Every
// legal token begins with "\x1b[", which is the basis of the
// invalidate-sentinel invariant documented in buffer.go.
func (s Style) token() string {
	var codes []string
	if s.Attrs&AttrBold != 0 {
		codes = append(codes, "1")
	}
	if s.Attrs&AttrDim != 0 {
		codes = append(codes, "2")
	}
	if s.Attrs&AttrUnderline != 0 {
		codes = append(codes, "4")
	}
	if s.Attrs&AttrReverse != 0 {
		codes = append(codes, "7")
	}
	if !s.Fg.IsDefault() {
		codes = append(codes, fgCode(s.Fg))
	}
	if !s.Bg.IsDefault() {
		codes = append(codes, bgCode(s.Bg))
	}
	if len(codes) == 0 {
		return "\x1b[0m"
	}
	return "\x1b[0;" + strings.Join(codes, ";") + "m"
}

func (c Color) IsDefault() bool { return c.typ == ColorDefault }

// ToANSI approximates an RGB color to the nearest ANSI 256 palette entry
// using the 6x6x6 color cube plus grayscale. Grounded on
// grindlemire-go-tui's color.go.
func (c Color) ToANSI() Color {
	if c.typ != ColorRGB {
		return c
	}
	r, g, b := c.r, c.g, c.b
	if r == g && g == b {
		if r < 8 {
			return ANSIColor(16)
		}
		if r > 248 {
			return ANSIColor(231)
		}
		return ANSIColor(uint8(232 + (int(r)-8)*24/240))
	}
	ri := int(r) * 5 / 255
	gi := int(g) * 5 / 255
	bi := int(b) * 5 / 255
	return ANSIColor(uint8(16 + 36*ri + 6*gi + bi))
}

func fgCode(c Color) string {
	c = c.ToANSI()
	if c.typ == ColorANSI {
		return fmt.Sprintf("38;5;%d", c.r)
	}
	return fmt.Sprintf("38;2;%d;%d;%d", c.r, c.g, c.b)
}

func bgCode(c Color) string {
	c = c.ToANSI()
	if c.typ == ColorANSI {
		return fmt.Sprintf("48;5;%d", c.r)
	}
	return fmt.Sprintf("48;2;%d;%d;%d", c.r, c.g, c.b)
}

// named theme slots, per spec.md §6.
const (
	SlotNormalText    = "normal-text"
	SlotMenuText      = "menu-text"
	SlotMenuHotkey    = "menu-hotkey"
	SlotStatusText    = "status-text"
	SlotStatusKey     = "status-key"
	SlotSelectedText  = "selected-text"
	SlotActiveBorder  = "active-border"
	SlotInactiveBorder = "inactive-border"
	SlotInputText     = "input-text"
	SlotInputCursor   = "input-cursor"
	SlotScrollbar     = "scrollbar"
	SlotErrorText     = "error-text"
	SlotWarningText   = "warning-text"
	SlotHighlightText = "highlight-text"
	SlotMutedText     = "muted-text"
)

// ThemeContext is the read-only bundle of opaque style strings spec.md §6
// describes: "components access it via renderer.theme_context()". It is
// immutable once constructed, redesigned away from the source's
// statically-held mutable theme globals per spec.md §9's REDESIGN FLAG.
type ThemeContext struct {
	slots map[string]string
}

// NewThemeContext compiles a map of slot name -> Style into a ThemeContext
// of resolved, opaque style tokens.
func NewThemeContext(slots map[string]Style) *ThemeContext {
	tc := &ThemeContext{slots: make(map[string]string, len(slots))}
	for name, s := range slots {
		tc.slots[name] = s.token()
	}
	return tc
}

// Style returns the opaque style token for a named slot, or the empty
// string if the slot is undefined. An undefined slot deliberately
// resolves to the same sentinel FrameBuffer.Invalidate uses; callers that
// depend on a slot existing should check DefaultThemeContext's coverage.
func (tc *ThemeContext) Style(slot string) string {
	return tc.slots[slot]
}

// DefaultThemeContext returns the built-in theme used when no config
// override is supplied, covering every named slot in spec.md §6.
func DefaultThemeContext() *ThemeContext {
	return NewThemeContext(map[string]Style{
		SlotNormalText:     {Fg: DefaultColor(), Bg: DefaultColor()},
		SlotMenuText:       {Fg: ANSIColor(0), Bg: ANSIColor(7)},
		SlotMenuHotkey:     {Fg: ANSIColor(1), Bg: ANSIColor(7), Attrs: AttrBold},
		SlotStatusText:     {Fg: ANSIColor(0), Bg: ANSIColor(6)},
		SlotStatusKey:      {Fg: ANSIColor(0), Bg: ANSIColor(6), Attrs: AttrBold},
		SlotSelectedText:   {Fg: ANSIColor(7), Bg: ANSIColor(4)},
		SlotActiveBorder:   {Fg: ANSIColor(6)},
		SlotInactiveBorder: {Fg: ANSIColor(8)},
		SlotInputText:      {Fg: DefaultColor(), Bg: DefaultColor()},
		SlotInputCursor:    {Fg: ANSIColor(0), Bg: ANSIColor(7), Attrs: AttrReverse},
		SlotScrollbar:      {Fg: ANSIColor(8)},
		SlotErrorText:      {Fg: ANSIColor(1), Attrs: AttrBold},
		SlotWarningText:    {Fg: ANSIColor(3), Attrs: AttrBold},
		SlotHighlightText:  {Fg: ANSIColor(3)},
		SlotMutedText:      {Fg: ANSIColor(8), Attrs: AttrDim},
	})
}
