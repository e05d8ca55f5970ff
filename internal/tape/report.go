package tape

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sergi/go-diff/diffmatchpatch"
	"gopkg.in/yaml.v3"

	"github.com/Gaurav-Gosain/deskfolio/internal/desktop"
)

// Format is a snapshot output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Encode renders s in format f. Text output carries ANSI styling; Encode
// never downsamples it.
func Encode(s desktop.Snapshot, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var sb strings.Builder
		enc := yaml.NewEncoder(&sb)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return []byte(sb.String()), nil
	default:
		return []byte(RenderText(s)), nil
	}
}

// WriteSnapshot writes s to w, downsampling colors to what w supports.
func WriteSnapshot(w io.Writer, s desktop.Snapshot, f Format) error {
	out, err := Encode(s, f)
	if err != nil {
		return err
	}
	if f == FormatText {
		w = colorprofile.NewWriter(w, os.Environ())
	}
	_, err = w.Write(out)
	return err
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
)

// RenderText renders a human readable summary of s.
func RenderText(s desktop.Snapshot) string {
	var b strings.Builder
	mode := "desktop"
	switch {
	case s.Mode.Compact:
		mode = "compact"
	case s.Mode.AutoMaximize:
		mode = "auto-maximize"
	}
	fmt.Fprintf(&b, "%s %dx%d %s\n", headingStyle.Render("viewport"),
		s.Viewport.Width, s.Viewport.Height, dimStyle.Render("("+mode+")"))
	fmt.Fprintf(&b, "%s %s  %s %s\n",
		headingStyle.Render("focused"), orNone(s.Focused),
		headingStyle.Render("selected"), orNone(s.Selected))

	b.WriteString(headingStyle.Render("windows") + "\n")
	if len(s.Windows) == 0 {
		b.WriteString(dimStyle.Render("  none") + "\n")
	}
	for _, w := range s.Windows {
		var flags []string
		if w.IsMinimized {
			flags = append(flags, "minimized")
		}
		if w.IsMaximized {
			flags = append(flags, "maximized")
		}
		if w.AutoMaximized {
			flags = append(flags, "auto")
		}
		fmt.Fprintf(&b, "  %s z=%d pos=(%d,%d) size=%dx%d %s\n",
			idStyle.Render(pad(w.ID)), w.Z, w.Position.X, w.Position.Y,
			w.Size.Width, w.Size.Height, flagStyle.Render(strings.Join(flags, ",")))
	}

	b.WriteString(headingStyle.Render("stickies") + "\n")
	for _, n := range s.Stickies {
		flag := ""
		if n.IsExpanded {
			flag = "expanded"
		}
		fmt.Fprintf(&b, "  %s z=%d pos=(%d,%d) size=%dx%d %s\n",
			idStyle.Render(pad(n.ID)), n.Z, n.Position.X, n.Position.Y,
			n.Size.Width, n.Size.Height, flagStyle.Render(flag))
	}

	b.WriteString(headingStyle.Render("icons") + "\n")
	for _, ic := range s.Icons {
		flag := ""
		if ic.Selected {
			flag = "selected"
		}
		fmt.Fprintf(&b, "  %s z=%d pos=(%d,%d) %s\n",
			idStyle.Render(pad(ic.ID)), ic.Z, ic.Position.X, ic.Position.Y, flagStyle.Render(flag))
	}

	b.WriteString(headingStyle.Render("dock") + "\n")
	for _, it := range s.Dock {
		state := dimStyle.Render("idle")
		if it.Active {
			state = flagStyle.Render("active")
		}
		fmt.Fprintf(&b, "  %s %s bounces=%s\n", idStyle.Render(pad(it.ID)), state, strconv.Itoa(it.Bounces))
	}
	return b.String()
}

func pad(id string) string {
	return fmt.Sprintf("%-12s", id)
}

// CompareGolden compares got with the golden file at path and returns the
// changed lines, or "" when they match. With update set
// the golden file is rewritten instead.
func CompareGolden(path string, got []byte, update bool) (string, error) {
	if update {
		if err := os.WriteFile(path, got, 0o644); err != nil {
			return "", fmt.Errorf("write golden: %w", err)
		}
		return "", nil
	}
	want, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read golden: %w", err)
	}
	return Diff(string(want), string(got)), nil
}

// Diff returns the changed lines between want and got, prefixed with - and
// +, or "" when they are equal.
func Diff(want, got string) string {
	if want == got {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := ""
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(prefix + line + "\n")
		}
	}
	return sb.String()
}
