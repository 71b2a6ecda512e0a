package tui

import "github.com/mctui/tui/internal/debug"

// KeyBinding associates a KeyCombination with a dispatchable action id,
// per spec.md §3/§4.7. Description and Category are presentation-layer
// metadata (used by help overlays and the registry's AllByCategory
// grouping) and play no role in matching.
type KeyBinding struct {
	Combination KeyCombination
	ActionID    string
	Description string
	Category    string
}

// KeyBindingRegistry is the registry of spec.md §4.7. match normalises
// the incoming key to a KeyCombination and looks it up; ties are broken
// by insertion order. Registering two bindings with the same combination
// is permitted — the later one is shadowed — but emits a diagnostic.
type KeyBindingRegistry struct {
	bindings []KeyBinding
	byCombo  map[KeyCombination]int // index of the first-registered binding
}

// NewKeyBindingRegistry returns an empty registry.
func NewKeyBindingRegistry() *KeyBindingRegistry {
	return &KeyBindingRegistry{byCombo: make(map[KeyCombination]int)}
}

// Register adds a binding. If another binding already occupies the same
// combination, the new one is shadowed (the earlier registration still
// wins at Match time) and a diagnostic is logged.
func (r *KeyBindingRegistry) Register(b KeyBinding) {
	if _, exists := r.byCombo[b.Combination]; exists {
		debug.Log("KeyBindingRegistry.Register: %s shadowed by earlier binding for %s", b.ActionID, b.Combination)
	} else {
		r.byCombo[b.Combination] = len(r.bindings)
	}
	r.bindings = append(r.bindings, b)
}

// Match normalises key to a KeyCombination and returns the first-
// registered binding for it, if any.
func (r *KeyBindingRegistry) Match(key KeyEvent) (KeyBinding, bool) {
	combo, ok := key.ToCombination()
	if !ok {
		return KeyBinding{}, false
	}
	idx, ok := r.byCombo[combo]
	if !ok {
		return KeyBinding{}, false
	}
	return r.bindings[idx], true
}

// PrimaryByActionID returns the first-registered binding for action_id,
// regardless of whether its combination is shadowed by an earlier
// registration for another action.
func (r *KeyBindingRegistry) PrimaryByActionID(actionID string) (KeyBinding, bool) {
	for _, b := range r.bindings {
		if b.ActionID == actionID {
			return b, true
		}
	}
	return KeyBinding{}, false
}

// AllByCategory returns every registered binding in the given category,
// in insertion order, e.g. for a help-overlay screen grouping bindings by
// category.
func (r *KeyBindingRegistry) AllByCategory(category string) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.Category == category {
			out = append(out, b)
		}
	}
	return out
}

// RemoveByActionID removes every binding registered under action_id, so
// that a module can be unloaded without leaving stale bindings behind.
func (r *KeyBindingRegistry) RemoveByActionID(actionID string) {
	kept := r.bindings[:0]
	for _, b := range r.bindings {
		if b.ActionID != actionID {
			kept = append(kept, b)
		}
	}
	r.bindings = kept
	r.rebuildIndex()
}

func (r *KeyBindingRegistry) rebuildIndex() {
	r.byCombo = make(map[KeyCombination]int, len(r.bindings))
	for i, b := range r.bindings {
		if _, exists := r.byCombo[b.Combination]; !exists {
			r.byCombo[b.Combination] = i
		}
	}
}
