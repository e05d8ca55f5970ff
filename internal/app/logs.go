package app

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// renderLogViewer draws the captured log entries, newest at the bottom.
// LogScrollOffset counts lines scrolled back from the end.
func (m *OS) renderLogViewer() string {
	boxW := max(20, m.Width-4)
	boxH := max(5, m.Height-4)
	innerW := boxW - 4
	visible := max(1, boxH-4)

	var entries []string
	if m.Ring != nil {
		for _, e := range m.Ring.Entries() {
			entries = append(entries, logLevelStyle(e.Level).Render(ansi.Truncate(e.String(), innerW, "…")))
		}
	}

	maxScroll := max(0, len(entries)-visible)
	if m.LogScrollOffset > maxScroll {
		m.LogScrollOffset = maxScroll
	}
	end := len(entries) - m.LogScrollOffset
	lines := entries[max(0, end-visible):end]
	if len(lines) == 0 {
		lines = []string{lipgloss.NewStyle().Foreground(theme.HelpGray()).Italic(true).Render("No log messages")}
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(theme.LogViewerTitle()).
		Render(fmt.Sprintf("Logs (%d/%d)", len(entries), config.MaxLogMessages))
	footer := lipgloss.NewStyle().Foreground(theme.HelpGray()).Italic(true).
		Render("↑/↓: Scroll  •  esc: Close")

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.LogViewerTitle()).
		Background(theme.LogViewerBg()).
		Padding(0, 1).
		Width(boxW).
		Height(boxH).
		MaxHeight(boxH).
		Render(title + "\n\n" + strings.Join(lines, "\n") + "\n" + footer)
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, box)
}

func logLevelStyle(l slog.Level) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch {
	case l >= slog.LevelError:
		return s.Foreground(theme.LogViewerError())
	case l >= slog.LevelWarn:
		return s.Foreground(theme.LogViewerWarn())
	case l >= slog.LevelInfo:
		return s.Foreground(theme.LogViewerInfo())
	}
	return s.Foreground(theme.LogViewerDebug())
}
