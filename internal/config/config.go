// Package config loads the deskfolio user configuration: desktop metrics,
// appearance, dock content, sticky notes, keybindings and server settings.
//
// The configuration lives in a TOML file under the XDG config directory. A
// missing file is not an error; defaults are used and the file can be
// created with `deskfolio config reset`.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

const (
	// NormalFPS is the render and gesture-flush rate of the TUI.
	NormalFPS = 60
	// MaxLogMessages bounds the in-app log viewer.
	MaxLogMessages = 500
	// EnvPrefix prefixes environment overrides (DESKFOLIO_THEME, ...).
	EnvPrefix = "DESKFOLIO_"
)

// Runtime appearance settings. They start from the user config and can be
// overridden by flags through ApplyOverrides.
var (
	UseASCIIOnly = false
	BorderStyle  = "rounded"
	HideClock    = false
	HideSysInfo  = false
	ThemeName    = ""
)

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Appearance  AppearanceConfig    `toml:"appearance"`
	Metrics     Metrics             `toml:"metrics"`
	Dock        []DockItemConfig    `toml:"dock"`
	Stickies    []StickyConfig      `toml:"stickies"`
	Keybindings map[string][]string `toml:"keybindings"`
	Server      ServerConfig        `toml:"server"`
}

// AppearanceConfig controls how the desktop is drawn.
type AppearanceConfig struct {
	Theme       string `toml:"theme"`
	BorderStyle string `toml:"border_style"` // rounded, normal, thick, double, hidden
	Wallpaper   string `toml:"wallpaper"`    // Single glyph tiled across the desktop
	HideClock   bool   `toml:"hide_clock"`
	HideSysInfo bool   `toml:"hide_sysinfo"`
	ASCIIOnly   bool   `toml:"ascii_only"`
}

// DockItemConfig is one launchable dock entry and the markdown shown in its
// window.
type DockItemConfig struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
	Glyph string `toml:"glyph"`
	Body  string `toml:"body"`
}

// StickyConfig seeds a sticky note.
type StickyConfig struct {
	ID     string `toml:"id"`
	Type   string `toml:"type"`
	Title  string `toml:"title"`
	Body   string `toml:"body"`
	Z      int    `toml:"z"`
	Anchor string `toml:"anchor"` // "bottom-right" pins the note in compact mode
}

// ServerConfig holds the SSH server defaults.
type ServerConfig struct {
	Host        string `toml:"host"`
	Port        string `toml:"port"`
	HostKeyPath string `toml:"host_key_path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:       "",
			BorderStyle: "rounded",
			Wallpaper:   "·",
		},
		Metrics:     TerminalMetrics(),
		Dock:        defaultDock(),
		Stickies:    defaultStickies(),
		Keybindings: DefaultKeybindings(),
		Server: ServerConfig{
			Host: "localhost",
			Port: "2222",
		},
	}
}

func defaultDock() []DockItemConfig {
	return []DockItemConfig{
		{ID: "about", Title: "About", Glyph: "☺", Body: "# About\n\nHi! This desktop is a portfolio you can **drag**, **resize** and **minimize**.\n\nDouble-click an icon or use the dock to open a window."},
		{ID: "work", Title: "Work", Glyph: "⚒", Body: "# Work\n\nSelected projects and the problems they solved."},
		{ID: "blog", Title: "Blog", Glyph: "✎", Body: "# Blog\n\nNotes on systems, tools and teaching."},
		{ID: "community", Title: "Community", Glyph: "☷", Body: "# Community\n\nMeetups, talks and open source."},
		{ID: "activities", Title: "Activities", Glyph: "✦", Body: "# Activities\n\nThings that happen away from the keyboard."},
		{ID: "music", Title: "Music", Glyph: "♪", Body: "# Music\n\nCurrently on repeat."},
		{ID: "mentorship", Title: "Mentorship", Glyph: "☂", Body: "# Mentorship\n\nOffice hours and how to book them."},
		{ID: "guestbook", Title: "Guestbook", Glyph: "✉", Body: "# Guestbook\n\nSay hi over SSH next time."},
	}
}

func defaultStickies() []StickyConfig {
	return []StickyConfig{
		{ID: "analytics", Type: "analytics", Title: "Visitors", Body: "Thanks for stopping by. Drag me around or expand me.", Z: 1000},
		{ID: "privacy", Type: "privacy", Title: "Privacy", Body: "Nothing you do here is stored. Close the session and it is gone.", Z: 1001, Anchor: "bottom-right"},
	}
}

// GetConfigPath returns the path of the user config file.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p, nil
	}
	return xdg.ConfigFile(filepath.Join("deskfolio", "config.toml"))
}

// LoadUserConfig reads the user config, falling back to defaults when the
// file does not exist. Values absent from the file keep their defaults.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config at path.
func LoadFile(path string) (*UserConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over cfg and validates the result.
func Parse(data []byte, cfg *UserConfig) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks the config for values the desktop cannot work with.
func (c *UserConfig) Validate() error {
	var errs []error
	if err := c.Metrics.Validate(); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[string]bool, len(c.Dock))
	for i, item := range c.Dock {
		switch {
		case item.ID == "":
			errs = append(errs, fmt.Errorf("%w: dock item %d has no id", ErrInvalidConfig, i))
		case strings.ContainsAny(item.ID, "/ \t"):
			errs = append(errs, fmt.Errorf("%w: dock id %q contains separators", ErrInvalidConfig, item.ID))
		case seen[item.ID]:
			errs = append(errs, fmt.Errorf("%w: duplicate dock id %q", ErrInvalidConfig, item.ID))
		}
		seen[item.ID] = true
	}
	if bs := c.Appearance.BorderStyle; bs != "" && !slices.Contains(BorderStyles, bs) {
		errs = append(errs, fmt.Errorf("%w: unknown border style %q", ErrInvalidConfig, bs))
	}
	return errors.Join(errs...)
}

// DockItem returns the dock entry with the given id.
func (c *UserConfig) DockItem(id string) (DockItemConfig, bool) {
	for _, item := range c.Dock {
		if item.ID == id {
			return item, true
		}
	}
	return DockItemConfig{}, false
}

// Marshal renders the config as TOML with a short header.
func (c *UserConfig) Marshal() ([]byte, error) {
	body, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	header := "# deskfolio configuration\n# Metrics are in terminal cells. Delete a key to fall back to its default.\n\n"
	return append([]byte(header), body...), nil
}

// Save writes the config to path, creating parent directories.
func (c *UserConfig) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Overrides are command-line values that take precedence over the file.
type Overrides struct {
	ASCIIOnly   bool
	BorderStyle string
	HideClock   bool
	HideSysInfo bool
	ThemeName   string
}

// ApplyOverrides sets the runtime appearance globals from cfg and then from
// o. Environment variables (DESKFOLIO_THEME, DESKFOLIO_BORDER_STYLE) sit
// between the two. A nil cfg uses defaults.
func ApplyOverrides(o Overrides, cfg *UserConfig) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	UseASCIIOnly = cfg.Appearance.ASCIIOnly || o.ASCIIOnly
	HideClock = cfg.Appearance.HideClock || o.HideClock
	HideSysInfo = cfg.Appearance.HideSysInfo || o.HideSysInfo

	BorderStyle = firstNonEmpty(o.BorderStyle, os.Getenv(EnvPrefix+"BORDER_STYLE"), cfg.Appearance.BorderStyle, "rounded")
	ThemeName = firstNonEmpty(o.ThemeName, os.Getenv(EnvPrefix+"THEME"), cfg.Appearance.Theme)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
