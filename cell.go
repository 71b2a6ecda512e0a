package tui

// Cell is a single terminal grid position: one code point plus an opaque
// pre-resolved style token (spec.md §3). Unlike grindlemire-go-tui's Cell,
// there is no wide-character width or continuation-cell tracking: spec.md
// §1 makes "one display cell per code point" an explicit Non-goal.
type Cell struct {
	Rune  rune
	Style string
}

// blankCell is what an empty screen position looks like: a space with no
// style applied.
var blankCell = Cell{Rune: ' ', Style: ""}

// Equal reports whether two cells would render identically. Style tokens
// are compared as opaque strings, per spec.md §3: "the only equality that
// matters is (char, style)".
func (c Cell) Equal(other Cell) bool {
	return c.Rune == other.Rune && c.Style == other.Style
}

// IsBlank reports whether the cell is an unstyled space.
func (c Cell) IsBlank() bool {
	return c.Rune == ' ' && c.Style == ""
}
