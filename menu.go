package tui

import (
	"strings"
	"unicode"

	"github.com/mctui/tui/internal/debug"
)

// MenuItemKind discriminates the MenuItem sum type of spec.md §3.
type MenuItemKind uint8

const (
	MenuItemScreen MenuItemKind = iota
	MenuItemAction
	MenuItemSubmenu
	MenuItemSeparator
)

// MenuItem is the sum type `Screen | Action | Submenu | Separator` of
// spec.md §3. Hotkey is lowercase; for non-separators the default hotkey
// is the first code point of the label, applied by the New*Item
// constructors.
type MenuItem struct {
	Kind       MenuItemKind
	Label      string
	Hotkey     rune
	ScreenName string   // valid when Kind == MenuItemScreen
	Action     func()   // valid when Kind == MenuItemAction
	Submenu    []MenuItem // valid when Kind == MenuItemSubmenu
}

func defaultHotkey(label string) rune {
	for _, r := range label {
		return unicode.ToLower(r)
	}
	return 0
}

// NewScreenItem returns a MenuItem that navigates to screenName when
// activated. Activation pops back to a screen of that name if one is on
// the stack; if none is, activation does nothing (no screen is created or
// pushed) and a diagnostic is logged.
func NewScreenItem(label, screenName string) MenuItem {
	return MenuItem{Kind: MenuItemScreen, Label: label, Hotkey: defaultHotkey(label), ScreenName: screenName}
}

// NewActionItem returns a MenuItem that runs thunk when activated.
func NewActionItem(label string, thunk func()) MenuItem {
	return MenuItem{Kind: MenuItemAction, Label: label, Hotkey: defaultHotkey(label), Action: thunk}
}

// NewSubmenuItem returns a MenuItem that opens a nested dropdown.
func NewSubmenuItem(label string, items []MenuItem) MenuItem {
	return MenuItem{Kind: MenuItemSubmenu, Label: label, Hotkey: defaultHotkey(label), Submenu: items}
}

// NewSeparatorItem returns a non-selectable horizontal rule item.
func NewSeparatorItem() MenuItem {
	return MenuItem{Kind: MenuItemSeparator}
}

// MenuDefinition is a top-level menu-bar entry: `(label, fkey, items,
// priority)`. Menus are ordered left-to-right by Priority, ascending,
// stable.
type MenuDefinition struct {
	Label    string
	FKey     *KeyCombination
	Items    []MenuItem
	Priority int
}

// menuState is the MenuSystemState sum type of spec.md §3: closed, or
// open(menu_ix, item_ix). A stack of open dropdowns supports Submenu
// activation replacing the current dropdown, per spec.md §4.8.
type menuState struct {
	open    bool
	menuIx  int
	itemIx  int
	// path holds the chain of item slices currently displayed, from the
	// top-level menu's Items down through any opened Submenu. The last
	// element is the dropdown currently on screen.
	path [][]MenuItem
}

// MenuSystem owns the menu-bar row and its single optional dropdown, per
// spec.md §4.8. Grounded conceptually on the other_examples/ bubbletea
// menu sketch for naming only (bubbletea/lipgloss are not imported — this
// module renders through FrameBuffer/ThemeContext like the rest of the
// engine).
type MenuSystem struct {
	menus []MenuDefinition
	state menuState
	stack *ScreenStack
}

// NewMenuSystem returns a MenuSystem with menus sorted left-to-right by
// Priority (ascending, stable).
func NewMenuSystem(menus []MenuDefinition, stack *ScreenStack) *MenuSystem {
	sorted := make([]MenuDefinition, len(menus))
	copy(sorted, menus)
	stableSortByPriority(sorted)
	return &MenuSystem{menus: sorted, stack: stack}
}

func stableSortByPriority(menus []MenuDefinition) {
	for i := 1; i < len(menus); i++ {
		for j := i; j > 0 && menus[j].Priority < menus[j-1].Priority; j-- {
			menus[j], menus[j-1] = menus[j-1], menus[j]
		}
	}
}

// IsOpen reports whether a dropdown is currently showing.
func (m *MenuSystem) IsOpen() bool { return m.state.open }

// HandleInput dispatches a key per spec.md §4.8's closed/open rules. It
// returns whether the key was consumed.
func (m *MenuSystem) HandleInput(key KeyEvent) bool {
	if !m.state.open {
		return m.handleClosed(key)
	}
	return m.handleOpen(key)
}

func (m *MenuSystem) handleClosed(key KeyEvent) bool {
	combo, ok := key.ToCombination()
	if !ok {
		return false
	}
	for i, menu := range m.menus {
		if menu.FKey != nil && *menu.FKey == combo {
			m.openMenu(i)
			return true
		}
	}
	return false
}

func (m *MenuSystem) openMenu(menuIx int) {
	items := m.menus[menuIx].Items
	m.state = menuState{
		open:   true,
		menuIx: menuIx,
		itemIx: firstNonSeparator(items, 0, 1),
		path:   [][]MenuItem{items},
	}
	debug.Log("MenuSystem.openMenu: %s", m.menus[menuIx].Label)
}

func (m *MenuSystem) currentItems() []MenuItem {
	return m.state.path[len(m.state.path)-1]
}

// firstNonSeparator finds the first non-separator index at or after
// start, advancing by step and wrapping within items. Returns start if
// every item is a separator.
func firstNonSeparator(items []MenuItem, start, step int) int {
	n := len(items)
	if n == 0 {
		return 0
	}
	ix := ((start % n) + n) % n
	for i := 0; i < n; i++ {
		if items[ix].Kind != MenuItemSeparator {
			return ix
		}
		ix = ((ix+step)%n + n) % n
	}
	return start
}

func (m *MenuSystem) handleOpen(key KeyEvent) bool {
	items := m.currentItems()

	if key.Kind == KeyNamed && key.Named == Escape {
		m.close()
		return true
	}
	if key.Kind == KeyNamed && key.Named == Down {
		m.state.itemIx = firstNonSeparator(items, m.state.itemIx+1, 1)
		return true
	}
	if key.Kind == KeyNamed && key.Named == Up {
		m.state.itemIx = firstNonSeparator(items, m.state.itemIx-1, -1)
		return true
	}
	if key.Kind == KeyNamed && (key.Named == Enter || key.Named == Space) {
		m.activate(items[m.state.itemIx])
		return true
	}
	if key.Kind == KeyChar {
		lower := unicode.ToLower(key.Rune)
		for i, it := range items {
			if it.Kind != MenuItemSeparator && unicode.ToLower(it.Hotkey) == lower {
				m.state.itemIx = i
				m.activate(it)
				return true
			}
		}
	}

	// All input while open is consumed, matched or not.
	return true
}

// activate runs the effect of an item and then closes the dropdown, per
// spec.md §4.8: "Any activation closes the current dropdown afterwards."
// Submenu activation is the one exception: it replaces the dropdown
// in-place rather than closing.
func (m *MenuSystem) activate(item MenuItem) {
	switch item.Kind {
	case MenuItemScreen:
		if m.stack != nil {
			NavigateToScreen(m.stack, item.ScreenName, func() Screen { return nil })
		}
		m.close()
	case MenuItemAction:
		if item.Action != nil {
			item.Action()
		}
		m.close()
	case MenuItemSubmenu:
		m.state.path = append(m.state.path, item.Submenu)
		m.state.itemIx = firstNonSeparator(item.Submenu, 0, 1)
	case MenuItemSeparator:
		// not selectable; no-op
	}
}

func (m *MenuSystem) close() {
	m.state = menuState{}
}

// RenderBar draws just the menu bar at y=0. Callers that render the
// screen stack between the bar and the dropdown overlay (the App main
// loop) call this instead of Render to avoid drawing the bar twice.
func (m *MenuSystem) RenderBar(fb *FrameBuffer) {
	theme := fb.ThemeContext()
	w, _ := fb.Size()

	fb.FillRect(0, 0, w, 1, ' ', theme.Style(SlotMenuText))

	x := 1
	for i, menu := range m.menus {
		label := menuBarLabel(menu)
		style := theme.Style(SlotMenuText)
		if m.state.open && m.state.menuIx == i {
			style = theme.Style(SlotSelectedText)
		}
		fb.WriteAt(x, 0, label, style)
		x += len([]rune(label)) + 2
	}
}

// Render draws the menu bar at y=0 in closed state, or the bar plus an
// overlay dropdown in open state. The dropdown is drawn last so it
// overlays screen content beneath, per spec.md §4.8.
func (m *MenuSystem) Render(fb *FrameBuffer) {
	m.RenderBar(fb)
	if !m.state.open {
		return
	}
	m.renderDropdown(fb)
}

func menuBarLabel(menu MenuDefinition) string {
	if menu.FKey == nil {
		return menu.Label
	}
	return menu.FKey.Base.String() + "-" + menu.Label
}

func (m *MenuSystem) renderDropdown(fb *FrameBuffer) {
	theme := fb.ThemeContext()
	items := m.currentItems()

	dropX := 1
	for i := 0; i < m.state.menuIx; i++ {
		dropX += len([]rune(menuBarLabel(m.menus[i]))) + 2
	}
	dropY := 1

	width := 4
	for _, it := range items {
		if l := len([]rune(itemLabel(it))) + 2; l > width {
			width = l
		}
	}
	height := len(items) + 2

	fb.DrawBox(dropX, dropY, width, height, theme.Style(SlotActiveBorder))
	fb.FillRect(dropX+1, dropY+1, width-2, height-2, ' ', theme.Style(SlotNormalText))

	for i, it := range items {
		style := theme.Style(SlotNormalText)
		if i == m.state.itemIx {
			style = theme.Style(SlotSelectedText)
		}
		if it.Kind == MenuItemSeparator {
			fb.FillRect(dropX+1, dropY+1+i, width-2, 1, '─', theme.Style(SlotInactiveBorder))
			continue
		}
		fb.WriteAt(dropX+1, dropY+1+i, itemLabel(it), style)
	}
}

func itemLabel(it MenuItem) string {
	if it.Kind == MenuItemSubmenu {
		return it.Label + " " + string(rune('▸'))
	}
	return it.Label
}

// hotkeyIndex finds an item's hotkey position in its label, for callers
// that want to underline or highlight it. Unused labels fall back to -1.
func hotkeyIndex(label string, hotkey rune) int {
	return strings.IndexRune(strings.ToLower(label), unicode.ToLower(hotkey))
}
