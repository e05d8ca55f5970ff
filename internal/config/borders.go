package config

import "charm.land/lipgloss/v2"

// BorderStyles lists the accepted border_style values.
var BorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "ascii"}

// GetBorderForStyle returns the lipgloss border for the active BorderStyle.
// ASCII-only mode always wins.
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly {
		return lipgloss.ASCIIBorder()
	}
	return BorderFor(BorderStyle)
}

// BorderFor maps a border_style name to a border. Unknown names are rounded.
func BorderFor(name string) lipgloss.Border {
	switch name {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
