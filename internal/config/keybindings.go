package config

import (
	"fmt"
	"slices"
	"strings"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// ActionDescriptions describes every bindable action.
var ActionDescriptions = map[string]string{
	"quit":            "Quit deskfolio",
	"toggle_help":     "Toggle help",
	"toggle_logs":     "Toggle log viewer",
	"close_window":    "Close focused window",
	"minimize_window": "Minimize focused window",
	"maximize_window": "Maximize or restore focused window",
	"restore_all":     "Restore all minimized windows",
	"next_window":     "Focus next window",
	"prev_window":     "Focus previous window",
	"toggle_sticky":   "Expand or collapse the top sticky note",
	"clear_selection": "Clear icon selection and close overlays",
}

func init() {
	for i := 1; i <= 9; i++ {
		ActionDescriptions[fmt.Sprintf("open_item_%d", i)] = fmt.Sprintf("Open dock item %d", i)
	}
}

// DefaultKeybindings returns the built-in action to keys map.
func DefaultKeybindings() map[string][]string {
	kb := map[string][]string{
		"quit":            {"q", "ctrl+c"},
		"toggle_help":     {"?"},
		"toggle_logs":     {"ctrl+l"},
		"close_window":    {"x"},
		"minimize_window": {"m"},
		"maximize_window": {"f"},
		"restore_all":     {"M"},
		"next_window":     {"tab"},
		"prev_window":     {"shift+tab"},
		"toggle_sticky":   {"s"},
		"clear_selection": {"esc"},
	}
	for i := 1; i <= 9; i++ {
		kb[fmt.Sprintf("open_item_%d", i)] = []string{fmt.Sprint(i)}
	}
	return kb
}

// KeybindRegistry resolves actions to keys and keys to actions.
type KeybindRegistry struct {
	actionToKeys map[string][]string
	keyToAction  map[string]string
	normalizer   *KeyNormalizer
}

// NewKeybindRegistry builds a registry from the user config. Actions missing
// from the config fall back to the defaults.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	r := &KeybindRegistry{
		actionToKeys: make(map[string][]string),
		keyToAction:  make(map[string]string),
		normalizer:   NewKeyNormalizer(),
	}
	bindings := DefaultKeybindings()
	if cfg != nil {
		for action, keys := range cfg.Keybindings {
			bindings[action] = keys
		}
	}
	for action, keys := range bindings {
		for _, key := range keys {
			if ok, _ := r.normalizer.ValidateKey(key); !ok {
				continue
			}
			r.actionToKeys[action] = append(r.actionToKeys[action], key)
			for _, k := range r.normalizer.NormalizeKey(key) {
				r.keyToAction[k] = action
			}
		}
	}
	return r
}

// GetKeys returns the keys bound to an action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionToKeys[action]
}

// GetAction returns the action bound to a key, or "" if none.
func (r *KeybindRegistry) GetAction(key string) string {
	for _, k := range r.normalizer.NormalizeKey(key) {
		if action, ok := r.keyToAction[k]; ok {
			return action
		}
	}
	return ""
}

// GetKeysForDisplay returns the keys for an action joined for help output.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	if len(keys) == 0 {
		return ""
	}
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = displayKey(k)
	}
	return strings.Join(display, ", ")
}

// Actions returns every bound action, sorted.
func (r *KeybindRegistry) Actions() []string {
	actions := make([]string, 0, len(r.actionToKeys))
	for action := range r.actionToKeys {
		actions = append(actions, action)
	}
	slices.Sort(actions)
	return actions
}

func displayKey(k string) string {
	parts := strings.Split(k, "+")
	for i, p := range parts {
		switch p {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		case "tab":
			parts[i] = "Tab"
		case "esc":
			parts[i] = "Esc"
		}
	}
	return strings.Join(parts, "+")
}

// KeyNormalizer canonicalizes key strings so "Ctrl+A" and "ctrl+a" match.
type KeyNormalizer struct {
	aliases map[string]string
}

// NewKeyNormalizer creates a normalizer with the common key aliases.
func NewKeyNormalizer() *KeyNormalizer {
	return &KeyNormalizer{
		aliases: map[string]string{
			"return": "enter",
			"escape": "esc",
			"del":    "delete",
			" ":      "space",
		},
	}
}

// NormalizeKey returns the canonical spellings of key. Modifiers are lower
// cased; a single-character key keeps its case so "M" and "m" stay distinct.
func (n *KeyNormalizer) NormalizeKey(key string) []string {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, "+")
	last := parts[len(parts)-1]
	for i := range parts[:len(parts)-1] {
		parts[i] = strings.ToLower(parts[i])
	}
	if len(parts) > 1 || len(last) > 1 {
		last = strings.ToLower(last)
	}
	parts[len(parts)-1] = last
	canonical := strings.Join(parts, "+")

	out := []string{canonical}
	if alias, ok := n.aliases[last]; ok {
		parts[len(parts)-1] = alias
		out = append(out, strings.Join(parts, "+"))
	}
	return out
}

// ValidateKey reports whether key can be bound.
func (n *KeyNormalizer) ValidateKey(key string) (bool, string) {
	if strings.TrimSpace(key) == "" {
		return false, "empty key"
	}
	parts := strings.Split(key, "+")
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(p) {
		case "ctrl", "alt", "shift", "super", "hyper", "meta":
		default:
			return false, fmt.Sprintf("unknown modifier %q", p)
		}
	}
	if parts[len(parts)-1] == "" {
		return false, "missing key after modifier"
	}
	return true, ""
}

// GetKeybindings returns the help sections generated from the registry.
// A nil registry uses the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	windows := KeybindingSection{Title: "WINDOWS"}
	addBinding(&windows, registry, "close_window")
	addBinding(&windows, registry, "minimize_window")
	addBinding(&windows, registry, "maximize_window")
	addBinding(&windows, registry, "restore_all")
	addBinding(&windows, registry, "next_window")
	addBinding(&windows, registry, "prev_window")

	desktop := KeybindingSection{Title: "DESKTOP"}
	desktop.Bindings = append(desktop.Bindings, Keybinding{"1-9", "Open dock item"})
	addBinding(&desktop, registry, "toggle_sticky")
	addBinding(&desktop, registry, "clear_selection")

	system := KeybindingSection{Title: "SYSTEM"}
	addBinding(&system, registry, "toggle_help")
	addBinding(&system, registry, "toggle_logs")
	addBinding(&system, registry, "quit")

	sections := []KeybindingSection{windows, desktop, system}
	return append(sections, getStaticHelpSections()...)
}

func addBinding(section *KeybindingSection, registry *KeybindRegistry, action string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: ActionDescriptions[action],
		})
	}
}

// getStaticHelpSections returns the mouse help, which is not rebindable.
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Drag title bar", "Move window"},
				{"Drag border", "Resize window"},
				{"[_] [□] [×]", "Minimize, maximize, close"},
				{"Double-click icon", "Open window"},
				{"Click dock", "Open, focus or restore"},
				{"[+] on note", "Expand or collapse sticky"},
			},
		},
	}
}
