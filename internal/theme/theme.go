// Package theme provides color themes and styling for the deskfolio desktop.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming is disabled and the built-in palette is used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	if !tint.SetTintID(themeName) {
		tint.SetTintID("default")
		return fmt.Errorf("unknown theme %q, using default", themeName)
	}
	return nil
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// pick returns the theme color chosen by fn, or fallback when theming is off.
func pick(fallback string, fn func(t *tint.Tint) color.Color) color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color(fallback)
	}
	if c := fn(t); c != nil {
		return c
	}
	return lipgloss.Color(fallback)
}

// Wallpaper colors
func DesktopBg() color.Color {
	return pick("#1e1e2e", func(t *tint.Tint) color.Color { return t.Bg })
}

func DesktopPattern() color.Color {
	return pick("#313244", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

// Window chrome colors
func BorderUnfocused() color.Color {
	return pick("#6c7086", func(t *tint.Tint) color.Color { return t.BrightBlack })
}

func BorderFocused() color.Color {
	return pick("#89b4fa", func(t *tint.Tint) color.Color { return t.BrightBlue })
}

func TitleBarFg() color.Color {
	return pick("#cdd6f4", func(t *tint.Tint) color.Color { return t.Fg })
}

func WindowBg() color.Color {
	return pick("#181825", func(t *tint.Tint) color.Color { return t.Bg })
}

func WindowFg() color.Color {
	return pick("#cdd6f4", func(t *tint.Tint) color.Color { return t.Fg })
}

// ControlColor returns the color of a title bar button: close, maximize or
// minimize.
func ControlColor(name string) color.Color {
	switch name {
	case "close":
		return pick("#f38ba8", func(t *tint.Tint) color.Color { return t.Red })
	case "maximize":
		return pick("#a6e3a1", func(t *tint.Tint) color.Color { return t.Green })
	default:
		return pick("#f9e2af", func(t *tint.Tint) color.Color { return t.Yellow })
	}
}

// Menu bar colors
func MenuBarBg() color.Color {
	return lipgloss.Color("#11111b")
}

func MenuBarFg() color.Color {
	return pick("#bac2de", func(t *tint.Tint) color.Color { return t.Fg })
}

func MenuBarAccent() color.Color {
	return pick("#cba6f7", func(t *tint.Tint) color.Color { return t.Purple })
}

// Sticky note colors, by note type.
func StickyBg(kind string) color.Color {
	switch kind {
	case "privacy":
		return pick("#94e2d5", func(t *tint.Tint) color.Color { return t.Cyan })
	default:
		return pick("#f9e2af", func(t *tint.Tint) color.Color { return t.Yellow })
	}
}

func StickyFg() color.Color {
	return pick("#11111b", func(t *tint.Tint) color.Color { return t.Black })
}

// Desktop icon colors
func IconFg() color.Color {
	return pick("#cdd6f4", func(t *tint.Tint) color.Color { return t.BrightWhite })
}

func IconSelectedBg() color.Color {
	return pick("#45475a", func(t *tint.Tint) color.Color { return t.Blue })
}

// Dock styling colors
func DockBg() color.Color {
	return lipgloss.Color("#2a2a3e")
}

func DockFg() color.Color {
	return lipgloss.Color("#a0a0a8")
}

func DockHighlight() color.Color {
	return pick("#00ff00", func(t *tint.Tint) color.Color { return t.BrightGreen })
}

func DockBounce() color.Color {
	return pick("#fab387", func(t *tint.Tint) color.Color { return t.BrightCyan })
}

// Log viewer colors
func LogViewerTitle() color.Color {
	return lipgloss.Color("14")
}

func LogViewerError() color.Color {
	return lipgloss.Color("9")
}

func LogViewerWarn() color.Color {
	return lipgloss.Color("11")
}

func LogViewerInfo() color.Color {
	return lipgloss.Color("10")
}

func LogViewerDebug() color.Color {
	return lipgloss.Color("12")
}

func LogViewerBg() color.Color {
	return lipgloss.Color("#1a1a2a")
}

// Notification colors
func NotificationError() color.Color {
	return pick("#cd0000", func(t *tint.Tint) color.Color { return t.Red })
}

func NotificationWarning() color.Color {
	return pick("#cdcd00", func(t *tint.Tint) color.Color { return t.Yellow })
}

func NotificationSuccess() color.Color {
	return pick("#00cd00", func(t *tint.Tint) color.Color { return t.Green })
}

func NotificationInfo() color.Color {
	return pick("#0000ee", func(t *tint.Tint) color.Color { return t.Blue })
}

func NotificationBg() color.Color {
	return pick("#000000", func(t *tint.Tint) color.Color { return t.Bg })
}

func NotificationFg() color.Color {
	return pick("#e5e5e5", func(t *tint.Tint) color.Color { return t.Fg })
}

// Help overlay colors
func HelpKeyBadge() color.Color {
	return lipgloss.Color("5")
}

func HelpGray() color.Color {
	return lipgloss.Color("8")
}

func HelpBorder() color.Color {
	return lipgloss.Color("14")
}

func HelpTableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLI table colors
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
