package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/tape"
)

// keyMap holds the bindings resolved from the keybind registry.
type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Logs       key.Binding
	Close      key.Binding
	Minimize   key.Binding
	Maximize   key.Binding
	RestoreAll key.Binding
	Next       key.Binding
	Prev       key.Binding
	Sticky     key.Binding
	Clear      key.Binding
	Open       [9]key.Binding

	// Overlay navigation is fixed.
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Search key.Binding
	Back   key.Binding
}

func binding(r *config.KeybindRegistry, action string) key.Binding {
	keys := r.GetKeys(action)
	b := key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(r.GetKeysForDisplay(action), config.ActionDescriptions[action]),
	)
	if len(keys) == 0 {
		b.SetEnabled(false)
	}
	return b
}

func newKeyMap(r *config.KeybindRegistry) keyMap {
	km := keyMap{
		Quit:       binding(r, "quit"),
		Help:       binding(r, "toggle_help"),
		Logs:       binding(r, "toggle_logs"),
		Close:      binding(r, "close_window"),
		Minimize:   binding(r, "minimize_window"),
		Maximize:   binding(r, "maximize_window"),
		RestoreAll: binding(r, "restore_all"),
		Next:       binding(r, "next_window"),
		Prev:       binding(r, "prev_window"),
		Sticky:     binding(r, "toggle_sticky"),
		Clear:      binding(r, "clear_selection"),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous tab")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close")),
	}
	for i := range km.Open {
		km.Open[i] = binding(r, fmt.Sprintf("open_item_%d", i+1))
	}
	return km
}

// handleKey maps a key press onto desktop commands.
func (m *OS) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.ShowHelp {
		return m.handleHelpKey(msg)
	}
	if m.ShowLogs {
		return m.handleLogKey(msg)
	}

	k := m.keys
	focused := m.focusedWindow()
	onFocused := func(kind tape.CommandType, fn func(string) error) {
		if focused == "" {
			return
		}
		fn(focused)
		m.record(kind, focused)
	}
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Help):
		m.ShowHelp = true
		m.HelpCategory, m.HelpSearchQuery, m.HelpSearchMode = 0, "", false
	case key.Matches(msg, k.Logs):
		m.ShowLogs = true
		m.LogScrollOffset = 0
	case key.Matches(msg, k.Close):
		onFocused(tape.CommandType_Close, m.Desktop.CloseWindow)
	case key.Matches(msg, k.Minimize):
		onFocused(tape.CommandType_Minimize, m.Desktop.MinimizeWindow)
	case key.Matches(msg, k.Maximize):
		onFocused(tape.CommandType_Maximize, m.Desktop.MaximizeWindow)
	case key.Matches(msg, k.RestoreAll):
		m.Desktop.RestoreAll()
		m.record(tape.CommandType_RestoreAll)
	case key.Matches(msg, k.Next):
		m.Desktop.FocusNext()
		m.record(tape.CommandType_FocusNext)
	case key.Matches(msg, k.Prev):
		m.Desktop.FocusPrev()
		m.record(tape.CommandType_FocusPrev)
	case key.Matches(msg, k.Sticky):
		if notes := m.Desktop.Snapshot().Stickies; len(notes) > 0 {
			id := notes[len(notes)-1].ID
			m.Desktop.ToggleSticky(id)
			m.record(tape.CommandType_ToggleSticky, id)
		}
	case key.Matches(msg, k.Clear):
		m.Desktop.CancelGestures()
		m.Desktop.ClearSelection()
	case key.Matches(msg, k.Up):
		m.scrollWindow(focused, -1)
	case key.Matches(msg, k.Down):
		m.scrollWindow(focused, 1)
	default:
		for i, b := range k.Open {
			if key.Matches(msg, b) && i < len(m.Desktop.DockSlots()) {
				m.Desktop.OpenIndex(i + 1)
				m.record(tape.CommandType_Open, m.Desktop.Focused())
				break
			}
		}
	}
	return nil
}

func (m *OS) handleHelpKey(msg tea.KeyPressMsg) tea.Cmd {
	k := m.keys
	if m.HelpSearchMode {
		switch msg.String() {
		case "esc":
			m.HelpSearchMode, m.HelpSearchQuery = false, ""
		case "enter":
			m.HelpSearchMode = false
		case "backspace":
			if r := []rune(m.HelpSearchQuery); len(r) > 0 {
				m.HelpSearchQuery = string(r[:len(r)-1])
			}
		default:
			if msg.Text != "" {
				m.HelpSearchQuery += msg.Text
			}
		}
		return nil
	}
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.Help):
		m.ShowHelp = false
	case key.Matches(msg, k.Search):
		m.HelpSearchMode = true
	case key.Matches(msg, k.Left):
		m.HelpCategory--
	case key.Matches(msg, k.Right):
		m.HelpCategory++
	case key.Matches(msg, k.Quit):
		return tea.Quit
	}
	return nil
}

func (m *OS) handleLogKey(msg tea.KeyPressMsg) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.Logs):
		m.ShowLogs = false
	case key.Matches(msg, k.Up):
		m.LogScrollOffset++
	case key.Matches(msg, k.Down):
		m.LogScrollOffset = max(0, m.LogScrollOffset-1)
	}
	return nil
}

// scrollWindow scrolls the content of window id by delta lines.
func (m *OS) scrollWindow(id string, delta int) {
	if id == "" {
		return
	}
	m.Scroll[id] = max(0, m.Scroll[id]+delta)
}
