// Package config loads the default key bindings and menu bar from an
// embedded YAML document, grounded on gazed-vu's load/shd.go pattern of
// struct-tagged yaml.Unmarshal into a config struct.
package config

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mctui/tui"
)

//go:embed bindings.yaml
var defaultConfigYAML []byte

type bindingSpec struct {
	Combination string `yaml:"combination"`
	ActionID    string `yaml:"action_id"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

type menuItemSpec struct {
	Kind       string `yaml:"kind"`
	Label      string `yaml:"label"`
	ScreenName string `yaml:"screen_name"`
	ActionID   string `yaml:"action_id"`
}

type menuSpec struct {
	Label      string         `yaml:"label"`
	FKeyAction string         `yaml:"fkey_action"`
	Priority   int            `yaml:"priority"`
	Items      []menuItemSpec `yaml:"items"`
}

type documentSpec struct {
	Bindings []bindingSpec `yaml:"bindings"`
	Menus    []menuSpec    `yaml:"menus"`
}

func parseDocument() (documentSpec, error) {
	var doc documentSpec
	if err := yaml.Unmarshal(defaultConfigYAML, &doc); err != nil {
		return documentSpec{}, fmt.Errorf("config: parse embedded bindings.yaml: %w", err)
	}
	return doc, nil
}

// DefaultBindings returns the built-in key bindings, parsed from the
// embedded bindings.yaml.
func DefaultBindings() ([]tui.KeyBinding, error) {
	doc, err := parseDocument()
	if err != nil {
		return nil, err
	}

	bindings := make([]tui.KeyBinding, 0, len(doc.Bindings))
	for _, b := range doc.Bindings {
		combo, err := tui.ParseCombination(b.Combination)
		if err != nil {
			return nil, fmt.Errorf("config: binding %q: %w", b.ActionID, err)
		}
		bindings = append(bindings, tui.KeyBinding{
			Combination: combo,
			ActionID:    b.ActionID,
			Description: b.Description,
			Category:    b.Category,
		})
	}
	return bindings, nil
}

// DefaultMenuBar returns the built-in menu definitions, parsed from the
// embedded bindings.yaml. Each menu's F-key is resolved by looking up its
// fkey_action in registry — the registry is the single source of truth
// for which physical key opens a menu, rather than a second hardcoded
// copy in the menu config. actionHandlers supplies the thunk for every
// "action" menu item by action_id.
func DefaultMenuBar(registry *tui.KeyBindingRegistry, actionHandlers map[string]func()) ([]tui.MenuDefinition, error) {
	doc, err := parseDocument()
	if err != nil {
		return nil, err
	}

	menus := make([]tui.MenuDefinition, 0, len(doc.Menus))
	for _, m := range doc.Menus {
		items, err := buildItems(m.Items, actionHandlers)
		if err != nil {
			return nil, fmt.Errorf("config: menu %q: %w", m.Label, err)
		}

		var fkey *tui.KeyCombination
		if m.FKeyAction != "" {
			if binding, ok := registry.PrimaryByActionID(m.FKeyAction); ok {
				combo := binding.Combination
				fkey = &combo
			}
		}

		menus = append(menus, tui.MenuDefinition{
			Label:    m.Label,
			FKey:     fkey,
			Items:    items,
			Priority: m.Priority,
		})
	}
	return menus, nil
}

func buildItems(specs []menuItemSpec, actionHandlers map[string]func()) ([]tui.MenuItem, error) {
	items := make([]tui.MenuItem, 0, len(specs))
	for _, it := range specs {
		switch it.Kind {
		case "separator":
			items = append(items, tui.NewSeparatorItem())
		case "screen":
			items = append(items, tui.NewScreenItem(it.Label, it.ScreenName))
		case "action":
			thunk := actionHandlers[it.ActionID]
			if thunk == nil {
				return nil, fmt.Errorf("no handler registered for action_id %q", it.ActionID)
			}
			items = append(items, tui.NewActionItem(it.Label, thunk))
		default:
			return nil, fmt.Errorf("unknown menu item kind %q", it.Kind)
		}
	}
	return items, nil
}
