package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
)

type contentKey struct {
	id    string
	width int
	ascii bool
}

// contentCache renders window markdown once per id and width.
type contentCache struct {
	renderers map[contentKey]*glamour.TermRenderer
	rendered  map[contentKey][]string
}

func newContentCache() *contentCache {
	return &contentCache{
		renderers: make(map[contentKey]*glamour.TermRenderer),
		rendered:  make(map[contentKey][]string),
	}
}

// Reset forgets every rendered body.
func (c *contentCache) Reset() {
	clear(c.rendered)
}

// Lines returns body rendered as markdown at width, one entry per row.
// Rendering errors fall back to plain wrapped text.
func (c *contentCache) Lines(id, body string, width int) []string {
	width = max(1, width)
	k := contentKey{id: id, width: width, ascii: config.UseASCIIOnly}
	if lines, ok := c.rendered[k]; ok {
		return lines
	}

	out, err := c.render(body, width)
	if err != nil {
		out = wordwrap.String(body, width)
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	c.rendered[k] = lines
	return lines
}

func (c *contentCache) render(body string, width int) (string, error) {
	rk := contentKey{width: width, ascii: config.UseASCIIOnly}
	r, ok := c.renderers[rk]
	if !ok {
		style := "dark"
		if rk.ascii {
			style = "ascii"
		}
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		c.renderers[rk] = r
	}
	return r.Render(body)
}

// wrapText wraps plain text to width, cutting anything that still overflows.
func wrapText(s string, width int) []string {
	width = max(1, width)
	lines := strings.Split(wordwrap.String(s, width), "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return lines
}
