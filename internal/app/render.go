package app

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/desktop"
	"github.com/Gaurav-Gosain/deskfolio/internal/icons"
	"github.com/Gaurav-Gosain/deskfolio/internal/sticky"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// Compositor z-indices. Every layer gets its own z so equal values never
// depend on sort stability.
const (
	zWallpaper = 0
	zIcons     = 10
	zStack     = 1000
	zDock      = 5000
	zMenuBar   = 5500
	zNotify    = 6000
	zHelp      = 7000
	zLogs      = 7001
)

// menuLogoWidth is the clickable logo at the left of the menu bar.
const menuLogoWidth = 13

// View renders the desktop.
func (m *OS) View() tea.View {
	view := tea.NewView(lipgloss.Sprint(m.Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	view.WindowTitle = m.windowTitle()
	return view
}

func (m *OS) windowTitle() string {
	if id := m.focusedWindow(); id != "" {
		if w, ok := m.Desktop.Window(id); ok {
			return w.Title + " - deskfolio"
		}
	}
	return "deskfolio"
}

// Render draws every layer onto a canvas the size of the terminal.
func (m *OS) Render() string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}
	snap := m.Desktop.Snapshot()

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(m.renderWallpaper()).X(0).Y(0).Z(zWallpaper).ID("wallpaper"),
	}
	if !snap.Mode.Compact {
		for i, ic := range snap.Icons {
			layers = append(layers, m.iconLayer(ic, zIcons+i))
		}
	}

	for i, l := range snap.Stack() {
		var content string
		switch l.Kind {
		case desktop.LayerWindow:
			w, _ := snap.Window(l.ID)
			content = m.renderWindow(w, l.ID == snap.Focused)
		case desktop.LayerSticky:
			n, _ := snap.Sticky(l.ID)
			content = m.renderSticky(n)
		}
		layers = append(layers, lipgloss.NewLayer(content).
			X(l.Rect.X).Y(l.Rect.Y).Z(zStack+i).ID(l.ID))
	}

	layers = append(layers, m.dockLayers(snap)...)
	layers = append(layers, lipgloss.NewLayer(m.renderMenuBar()).X(0).Y(0).Z(zMenuBar).ID("menubar"))
	layers = append(layers, m.notificationLayers()...)

	if m.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(m.RenderHelpMenu(m.Width, m.Height)).
			X(0).Y(0).Z(zHelp).ID("help"))
	}
	if m.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(m.renderLogViewer()).
			X(0).Y(0).Z(zLogs).ID("logs"))
	}

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas.Render()
}

// =============================================================================
// Desktop surface
// =============================================================================

func (m *OS) renderWallpaper() string {
	glyph := m.Config.Appearance.Wallpaper
	if glyph == "" || config.UseASCIIOnly {
		glyph = "."
	}
	glyph = ansi.Truncate(glyph, 1, "")
	style := lipgloss.NewStyle().Foreground(theme.DesktopPattern()).Background(theme.DesktopBg())

	rows := make([]string, m.Height)
	var b strings.Builder
	for y := range rows {
		b.Reset()
		for x := 0; x < m.Width; x++ {
			if (x+2*y)%6 == 0 {
				b.WriteString(glyph)
			} else {
				b.WriteByte(' ')
			}
		}
		rows[y] = style.Render(b.String())
	}
	return strings.Join(rows, "\n")
}

func (m *OS) iconLayer(ic icons.Icon, z int) *lipgloss.Layer {
	hit := m.Desktop.Metrics().IconHit
	item, _ := m.Desktop.Item(ic.ID)

	bg := theme.DesktopBg()
	if ic.Selected {
		bg = theme.IconSelectedBg()
	}
	style := lipgloss.NewStyle().
		Foreground(theme.IconFg()).
		Background(bg).
		Width(hit.Width).
		Height(hit.Height).
		MaxHeight(hit.Height).
		Align(lipgloss.Center)

	content := style.Render(iconGlyph(item) + "\n" + ansi.Truncate(item.Title, hit.Width, "…"))
	return lipgloss.NewLayer(content).
		X(ic.Position.X - hit.Width/2).
		Y(ic.Position.Y - hit.Height/2).
		Z(z).
		ID("icon-" + ic.ID)
}

func iconGlyph(item config.DockItemConfig) string {
	if item.Glyph == "" || config.UseASCIIOnly {
		if item.Title == "" {
			return "#"
		}
		return strings.ToUpper(item.Title[:1])
	}
	return item.Glyph
}

// =============================================================================
// Windows and notes
// =============================================================================

// renderWindow draws w with its title bar controls exactly where the desktop
// hit test expects them: controls end HandleSize cells before the right edge
// of a framed window and at the edge otherwise.
func (m *OS) renderWindow(w window.Window, focused bool) string {
	met := m.Desktop.Metrics()
	width, height := w.Size.Width, w.Size.Height
	if width <= 0 || height <= 0 {
		return ""
	}
	framed := !m.Desktop.Mode().Compact && !w.IsMaximized && met.HandleSize > 0
	border := config.GetBorderForStyle()

	borderFg := theme.BorderUnfocused()
	if focused {
		borderFg = theme.BorderFocused()
	}
	bg := theme.WindowBg()
	edge := lipgloss.NewStyle().Foreground(borderFg).Background(bg)
	titleStyle := lipgloss.NewStyle().Foreground(theme.TitleBarFg()).Background(bg).Bold(focused)

	inset := 0
	if framed {
		inset = max(1, min(met.HandleSize, width/2))
	}
	controls := m.renderControls(w, bg)
	titleW := max(0, width-2*inset-lipgloss.Width(controls))
	label := ansi.Truncate(" "+w.Title+" ", titleW, "…")
	fill := " "
	if framed {
		fill = border.Top
	}

	var row strings.Builder
	if framed {
		row.WriteString(edge.Render(border.TopLeft + strings.Repeat(border.Top, inset-1)))
	}
	row.WriteString(titleStyle.Render(label))
	row.WriteString(edge.Render(strings.Repeat(fill, titleW-lipgloss.Width(label))))
	row.WriteString(controls)
	if framed {
		row.WriteString(edge.Render(strings.Repeat(border.Top, inset-1) + border.TopRight))
	}

	titleRows := min(max(1, met.TitleBar), height)
	rows := []string{ansi.Truncate(row.String(), width, "")}
	for range titleRows - 1 {
		rows = append(rows, titleStyle.Render(strings.Repeat(" ", width)))
	}

	bodyH := height - titleRows
	if bodyH > 0 {
		style := lipgloss.NewStyle().
			Foreground(theme.WindowFg()).
			Background(bg).
			Width(width).
			Height(bodyH).
			MaxHeight(bodyH)
		innerW, innerH := width, bodyH
		if framed {
			style = style.
				Border(border, false, true, true, true).
				BorderForeground(borderFg).
				BorderBackground(bg)
			innerW, innerH = width-2, bodyH-1
		}
		lines := m.windowLines(w, innerW)
		scroll := min(m.Scroll[w.ID], max(0, len(lines)-innerH))
		visible := lines[scroll:min(len(lines), scroll+max(0, innerH))]
		rows = append(rows, style.Render(strings.Join(visible, "\n")))
	}
	return strings.Join(rows, "\n")
}

// renderControls draws minimize, maximize and close, left to right.
func (m *OS) renderControls(w window.Window, bg color.Color) string {
	cw := m.Desktop.Metrics().ControlWidth
	if cw <= 0 {
		return ""
	}
	glyphs := map[string]string{"minimize": "−", "maximize": "□", "close": "×"}
	if w.IsMaximized {
		glyphs["maximize"] = "❐"
	}
	if config.UseASCIIOnly {
		glyphs = map[string]string{"minimize": "-", "maximize": "+", "close": "x"}
	}

	var b strings.Builder
	for _, name := range []string{"minimize", "maximize", "close"} {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.ControlColor(name)).
			Background(bg).
			Width(cw).
			Align(lipgloss.Center).
			Render(glyphs[name]))
	}
	return b.String()
}

func (m *OS) windowLines(w window.Window, width int) []string {
	switch c := w.Content.(type) {
	case string:
		return m.content.Lines(w.ID, c, width)
	case nil:
		return nil
	default:
		return wrapText(fmt.Sprint(c), width)
	}
}

// renderSticky draws a note with its expand toggle in the top-right corner.
func (m *OS) renderSticky(n sticky.Note) string {
	met := m.Desktop.Metrics()
	width, height := n.Size.Width, n.Size.Height
	if width <= 0 || height <= 0 {
		return ""
	}
	cfg := m.stickyConfig(n.ID)
	base := lipgloss.NewStyle().Foreground(theme.StickyFg()).Background(theme.StickyBg(n.Type))

	toggle := "+"
	if n.IsExpanded {
		toggle = "−"
		if config.UseASCIIOnly {
			toggle = "-"
		}
	}
	cw := min(max(1, met.ControlWidth), width)
	titleW := width - cw
	head := base.Bold(true).Width(titleW).MaxWidth(titleW).Render(ansi.Truncate(" "+cfg.Title, titleW, "…")) +
		base.Width(cw).Align(lipgloss.Center).Render(toggle)

	rows := []string{head}
	if bodyH := height - 1; bodyH > 0 {
		lines := wrapText(cfg.Body, max(1, width-2))
		rows = append(rows, base.
			Width(width).
			Height(bodyH).
			MaxHeight(bodyH).
			Padding(0, 1).
			Render(strings.Join(lines[:min(len(lines), bodyH)], "\n")))
	}
	return strings.Join(rows, "\n")
}

// =============================================================================
// Chrome
// =============================================================================

func (m *OS) dockLayers(snap desktop.Snapshot) []*lipgloss.Layer {
	b := snap.Mode
	bounds := m.Desktop.Bounds()
	if bounds.Dock <= 0 {
		return nil
	}
	y := m.Height - bounds.Dock
	bar := lipgloss.NewStyle().Background(theme.DockBg()).Width(m.Width).Height(bounds.Dock).Render("")
	layers := []*lipgloss.Layer{lipgloss.NewLayer(bar).X(0).Y(y).Z(zDock).ID("dock")}

	for i, slot := range m.Desktop.DockSlots() {
		it, _ := snap.DockItem(slot.ID)
		cfg, _ := m.Desktop.Item(slot.ID)
		h, w := slot.Rect.Height, slot.Rect.Width

		rows := make([]string, h)
		glyphRow := max(0, min(1, h-1)-m.bounceOffset(slot.ID))
		rows[glyphRow] = iconGlyph(cfg)
		if h > 2 && !b.Compact {
			rows[h-1] = ansi.Truncate(it.Title, w, "")
		}

		style := lipgloss.NewStyle().
			Background(theme.DockBg()).
			Foreground(theme.DockFg()).
			Width(w).
			Height(h).
			MaxHeight(h).
			Align(lipgloss.Center)
		switch {
		case m.bounceOffset(slot.ID) > 0:
			style = style.Foreground(theme.DockBounce())
		case it.Active:
			style = style.Foreground(theme.DockHighlight()).Bold(true)
		}
		layers = append(layers, lipgloss.NewLayer(style.Render(strings.Join(rows, "\n"))).
			X(slot.Rect.X).Y(slot.Rect.Y).Z(zDock+1+i).ID("dock-"+slot.ID))
	}
	return layers
}

func (m *OS) renderMenuBar() string {
	bg := theme.MenuBarBg()
	base := lipgloss.NewStyle().Foreground(theme.MenuBarFg()).Background(bg)

	logo := " ◆ deskfolio "
	if config.UseASCIIOnly {
		logo = " * deskfolio "
	}
	left := lipgloss.NewStyle().Foreground(theme.MenuBarAccent()).Background(bg).Bold(true).Render(logo)
	if id := m.focusedWindow(); id != "" {
		if w, ok := m.Desktop.Window(id); ok {
			left += base.Bold(true).Render(" " + w.Title)
		}
	}

	var right []string
	if s := m.StatusLine(); s != "" {
		right = append(right, s)
	}
	if m.Recorder != nil && m.Recorder.IsRecording() {
		right = append(right, "● REC")
	}
	if !config.HideSysInfo && !m.Desktop.Mode().Compact {
		right = append(right, m.GetCPUGraph(), m.GetRAMUsage())
	}
	if !config.HideClock {
		right = append(right, m.now().Format("Mon 15:04"))
	}
	rightStr := base.Render(strings.Join(right, "  ") + " ")

	gap := max(0, m.Width-lipgloss.Width(left)-lipgloss.Width(rightStr))
	bar := left + base.Render(strings.Repeat(" ", gap)) + rightStr
	return ansi.Truncate(bar, m.Width, "")
}

func (m *OS) notificationLayers() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	y := m.Desktop.Bounds().TopBar
	for i, n := range m.Notifications {
		var fg color.Color
		icon := "ℹ"
		switch n.Type {
		case "error":
			fg, icon = theme.NotificationError(), "✗"
		case "warning":
			fg, icon = theme.NotificationWarning(), "⚠"
		case "success":
			fg, icon = theme.NotificationSuccess(), "✓"
		default:
			fg = theme.NotificationInfo()
		}
		if config.UseASCIIOnly {
			icon = "!"
		}
		box := lipgloss.NewStyle().
			Border(config.GetBorderForStyle()).
			BorderForeground(fg).
			Foreground(theme.NotificationFg()).
			Background(theme.NotificationBg()).
			Padding(0, 1).
			MaxWidth(max(10, m.Width/2)).
			Render(lipgloss.NewStyle().Foreground(fg).Render(icon) + " " + n.Message)
		x := max(0, m.Width-lipgloss.Width(box)-1)
		layers = append(layers, lipgloss.NewLayer(box).X(x).Y(y).Z(zNotify+i).ID("notification-"+n.ID))
		y += lipgloss.Height(box)
	}
	return layers
}
