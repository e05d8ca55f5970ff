package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// HelpBinding is one row of the help menu.
type HelpBinding struct {
	Keys        []string
	Description string
	Category    string
}

// HelpCategory is one tab of the help menu.
type HelpCategory struct {
	Name     string
	Bindings []HelpBinding
}

// helpRows is the fixed table height so tabs never jump.
const helpRows = 10

// GetHelpCategories builds the help tabs from the keybind registry.
func GetHelpCategories(registry *config.KeybindRegistry) []HelpCategory {
	var categories []HelpCategory
	for _, section := range config.GetKeybindings(registry) {
		cat := HelpCategory{Name: formatSectionName(section.Title)}
		for _, b := range section.Bindings {
			cat.Bindings = append(cat.Bindings, HelpBinding{
				Keys:        strings.Split(b.Key, ", "),
				Description: b.Description,
				Category:    cat.Name,
			})
		}
		if len(cat.Bindings) > 0 {
			categories = append(categories, cat)
		}
	}
	return categories
}

// formatSectionName turns "WINDOWS" into "Windows".
func formatSectionName(s string) string {
	if s == "" {
		return s
	}
	return s[:1] + strings.ToLower(s[1:])
}

// FuzzyMatch reports whether every rune of query appears in target in order,
// ignoring case, and where.
func FuzzyMatch(query, target string) (bool, []int) {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return true, nil
	}
	var idx []int
	qi := 0
	for i, r := range []rune(strings.ToLower(target)) {
		if r == q[qi] {
			idx = append(idx, i)
			qi++
			if qi == len(q) {
				return true, idx
			}
		}
	}
	return false, idx
}

// SearchBindings returns the bindings whose description or keys match query.
func SearchBindings(query string, categories []HelpCategory) []HelpBinding {
	if query == "" {
		return nil
	}
	var results []HelpBinding
	for _, cat := range categories {
		for _, b := range cat.Bindings {
			if ok, _ := FuzzyMatch(query, b.Description); ok {
				results = append(results, b)
				continue
			}
			for _, k := range b.Keys {
				if ok, _ := FuzzyMatch(query, k); ok {
					results = append(results, b)
					break
				}
			}
		}
	}
	return results
}

// RenderHelpMenu draws the help overlay centered in width x height.
func (m *OS) RenderHelpMenu(width, height int) string {
	categories := GetHelpCategories(m.KeybindRegistry)
	m.HelpCategory = min(max(0, m.HelpCategory), max(0, len(categories)-1))

	boxW := min(72, max(20, width-4))
	center := lipgloss.NewStyle().Width(boxW).Align(lipgloss.Center)
	dim := lipgloss.NewStyle().Foreground(theme.HelpGray()).Italic(true)

	var header, body string
	switch {
	case m.HelpSearchMode && m.HelpSearchQuery != "":
		header = renderSearchBox(m.HelpSearchQuery)
		results := SearchBindings(m.HelpSearchQuery, categories)
		if len(results) == 0 {
			body = dim.Render("No matching keybindings")
		} else {
			body = renderBindingTable(results, true, boxW)
		}
	case m.HelpSearchMode:
		header = renderSearchBox("")
		body = dim.Render("Type to search across all keybindings...")
	case len(categories) > 0:
		header = renderCategoryTabs(categories, m.HelpCategory)
		body = renderBindingTable(categories[m.HelpCategory].Bindings, false, boxW)
	}

	content := strings.Join([]string{
		center.Render(header),
		"",
		center.Render(body),
		"",
		center.Render(renderHelpFooter(m.HelpSearchMode)),
	}, "\n")

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		MaxHeight(height).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func renderCategoryTabs(categories []HelpCategory, active int) string {
	tabs := make([]string, 0, len(categories))
	for i, cat := range categories {
		style := lipgloss.NewStyle().Foreground(theme.HelpGray()).Padding(0, 1)
		if i == active {
			style = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("0")).
				Background(theme.HelpTableHeader()).
				Padding(0, 1)
		}
		tabs = append(tabs, style.Render(cat.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderSearchBox(query string) string {
	label := lipgloss.NewStyle().Foreground(theme.HelpTableHeader()).Render("Search: ")
	cursor := "█"
	if config.UseASCIIOnly {
		cursor = "_"
	}
	return label + query + cursor
}

// formatKeysWithStyle renders each key as a badge.
func formatKeysWithStyle(keys []string) string {
	badge := lipgloss.NewStyle().
		Background(theme.HelpKeyBadge()).
		Foreground(lipgloss.Color("0"))
	styled := make([]string, 0, len(keys))
	for _, k := range keys {
		if config.UseASCIIOnly {
			styled = append(styled, "["+k+"]")
			continue
		}
		styled = append(styled, badge.Render(" "+k+" "))
	}
	return strings.Join(styled, " ")
}

// renderBindingTable renders bindings padded to helpRows rows.
func renderBindingTable(bindings []HelpBinding, withCategory bool, width int) string {
	headers := []string{"Keys", "Action"}
	if withCategory {
		headers = append(headers, "Category")
	}
	rows := make([][]string, 0, helpRows)
	for _, b := range bindings[:min(len(bindings), helpRows)] {
		row := []string{formatKeysWithStyle(b.Keys), ansi.Truncate(b.Description, width/2, "…")}
		if withCategory {
			row = append(row, b.Category)
		}
		rows = append(rows, row)
	}
	for len(rows) < helpRows {
		rows = append(rows, make([]string, len(headers)))
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.HelpTableHeader()).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(config.GetBorderForStyle()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.HelpBorder())).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return cell.Foreground(theme.HelpGray())
			}
			return cell
		})
	out := t.Render()
	if extra := len(bindings) - helpRows; extra > 0 {
		out += "\n" + lipgloss.NewStyle().Foreground(theme.HelpGray()).Render(fmt.Sprintf("+%d more", extra))
	}
	return out
}

func renderHelpFooter(searchMode bool) string {
	instructions := []string{"←/→: Categories", "/: Search", "esc: Close"}
	if searchMode {
		instructions = []string{"Type to search", "enter: Keep results", "esc: Clear"}
	}
	return lipgloss.NewStyle().
		Foreground(theme.HelpGray()).
		Italic(true).
		Render(strings.Join(instructions, "  •  "))
}
