// Package app provides the deskfolio bubbletea model: it feeds terminal
// input to the desktop engine and draws the result as layered cells.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/desktop"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/tape"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// Notification is a transient toast in the top-right corner.
type Notification struct {
	ID        string
	Message   string
	Type      string // info, success, warning, error
	StartTime time.Time
	Duration  time.Duration
}

// NotificationDuration is how long toasts stay up.
const NotificationDuration = 3 * time.Second

// Options configure a new OS model.
type Options struct {
	Config *config.UserConfig
	// Overrides are reapplied whenever the config reloads.
	Overrides config.Overrides
	Width     int
	Height    int
	Logger    *slog.Logger
	// Ring backs the log viewer. Nil disables it.
	Ring      *logging.Ring
	IsSSHMode bool
	// Script is played back in real time once the program starts.
	Script   []tape.Command
	Recorder *tape.Recorder
	// Clock drives double clicks and animations. Nil uses time.Now.
	Clock func() time.Time
}

// OS is the main application state. The Desktop owns every window, icon and
// note; OS adds overlays, input mapping and drawing on top.
type OS struct {
	Desktop *desktop.Desktop
	Config  *config.UserConfig
	Width   int
	Height  int

	KeybindRegistry *config.KeybindRegistry
	keys            keyMap
	overrides       config.Overrides
	logger          *slog.Logger
	Ring            *logging.Ring
	IsSSHMode       bool

	ShowHelp        bool
	HelpCategory    int
	HelpSearchMode  bool
	HelpSearchQuery string
	ShowLogs        bool
	LogScrollOffset int

	Notifications []Notification
	Bounces       []*Bounce
	// Scroll holds the content scroll offset of each window.
	Scroll map[string]int

	CPUHistory []float64
	RAMUsage   float64

	ScriptPlayer       *tape.Player
	scriptRunner       *tape.Runner
	scriptPending      int
	ScriptSleepUntil   time.Time
	ScriptFinishedTime time.Time
	Recorder           *tape.Recorder

	content *contentCache
	now     func() time.Time
}

// New creates the model and its desktop.
func New(opts Options) *OS {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	m := &OS{
		Config:    cfg,
		Width:     opts.Width,
		Height:    opts.Height,
		logger:    logger,
		Ring:      opts.Ring,
		IsSSHMode: opts.IsSSHMode,
		Recorder:  opts.Recorder,
		overrides: opts.Overrides,
		Scroll:    make(map[string]int),
		content:   newContentCache(),
		now:       now,
	}
	m.SetKeybindings(config.NewKeybindRegistry(cfg))

	m.Desktop = desktop.New(desktop.Options{
		Metrics:  cfg.Metrics,
		Items:    cfg.Dock,
		Stickies: cfg.Stickies,
		Viewport: geom.Size{Width: opts.Width, Height: opts.Height},
		Clock:    now,
		OnEvent:  m.handleEvent,
		Logger:   logger,
	})

	if len(opts.Script) > 0 {
		m.ScriptPlayer = tape.NewPlayer(opts.Script)
		m.scriptRunner = tape.NewRunner(nil, m.Desktop, nil)
		m.scriptRunner.SetLogger(logger)
	}
	if m.Recorder != nil && m.Recorder.IsRecording() {
		m.Recorder.RecordViewport(opts.Width, opts.Height)
	}
	return m
}

// SetKeybindings swaps the key registry, for example after a config reload.
func (m *OS) SetKeybindings(r *config.KeybindRegistry) {
	m.KeybindRegistry = r
	m.keys = newKeyMap(r)
}

// handleEvent reacts to desktop state changes.
func (m *OS) handleEvent(ev desktop.Event) {
	switch ev.Kind {
	case desktop.EventMinimized:
		m.startBounce(ev.ID)
	case desktop.EventClosed:
		delete(m.Scroll, ev.ID)
	case desktop.EventModeChanged:
		mode := m.Desktop.Mode()
		switch {
		case mode.Compact:
			m.ShowNotification("Compact layout", "info", NotificationDuration)
		case mode.AutoMaximize:
			m.ShowNotification("Windows maximized to fit", "info", NotificationDuration)
		default:
			m.ShowNotification("Desktop layout", "info", NotificationDuration)
		}
	}
	m.logger.Debug("desktop event", "kind", ev.Kind.String(), "id", ev.ID)
}

// ShowNotification queues a toast. Type is info, success, warning or error.
func (m *OS) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      notifType,
		StartTime: m.now(),
		Duration:  duration,
	})
	if len(m.Notifications) > 4 {
		m.Notifications = m.Notifications[len(m.Notifications)-4:]
	}
}

// CleanupNotifications drops expired toasts.
func (m *OS) CleanupNotifications() {
	now := m.now()
	kept := m.Notifications[:0]
	for _, n := range m.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			kept = append(kept, n)
		}
	}
	m.Notifications = kept
}

// ApplyConfig swaps in a reloaded config. The desktop keeps its windows;
// appearance, keybindings and content take effect immediately.
func (m *OS) ApplyConfig(cfg *config.UserConfig) {
	if cfg == nil {
		return
	}
	m.Config = cfg
	m.SetKeybindings(config.NewKeybindRegistry(cfg))
	config.ApplyOverrides(m.overrides, cfg)
	if err := theme.Initialize(config.ThemeName); err != nil {
		m.logger.Warn("theme not found", "theme", config.ThemeName, "err", err)
	}
	m.content.Reset()
	m.ShowNotification("Config reloaded", "success", NotificationDuration)
}

// focusedWindow returns the id of the focused window or "".
func (m *OS) focusedWindow() string {
	return m.Desktop.Focused()
}

// stickyConfig returns the config for note id.
func (m *OS) stickyConfig(id string) config.StickyConfig {
	for _, s := range m.Config.Stickies {
		if s.ID == id {
			return s
		}
	}
	return config.StickyConfig{ID: id, Title: id}
}

// StatusLine summarises script playback for the menu bar.
func (m *OS) StatusLine() string {
	if m.ScriptPlayer == nil {
		return ""
	}
	st := m.ScriptPlayer.Status()
	if m.ScriptPlayer.IsFinished() {
		if n := len(m.scriptRunner.Failures()); n > 0 {
			return fmt.Sprintf("tape: %d failed", n)
		}
		return "tape: done"
	}
	return fmt.Sprintf("tape %d%%", st.Progress)
}
