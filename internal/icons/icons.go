// Package icons manages the desktop icons: their bagel layout, drag
// gestures, selection and double-click activation.
package icons

import (
	"math"
	"slices"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
)

// ClickResult is what a click on an icon did.
type ClickResult int

const (
	ClickIgnored ClickResult = iota
	ClickSuppressed
	ClickSelected
	ClickActivated
)

func (c ClickResult) String() string {
	switch c {
	case ClickSuppressed:
		return "suppressed"
	case ClickSelected:
		return "selected"
	case ClickActivated:
		return "activated"
	default:
		return "ignored"
	}
}

// Options are the icon metrics.
type Options struct {
	Threshold     float64 // Pointer travel that turns a press into a drag
	MarginX       int
	MarginTop     int
	MarginBottom  int
	DoubleClick   time.Duration
	ClickSuppress time.Duration
	Hit           geom.Size // Hit box centred on the hotspot
	Bagel         Bagel
}

// Gesture is the in-flight icon press.
type Gesture struct {
	IconID       string
	PointerStart geom.Point
	IconStart    geom.Point
	Dragging     bool
}

// Icon is a snapshot of one desktop icon.
type Icon struct {
	ID       string     `json:"id" yaml:"id"`
	Position geom.Point `json:"position" yaml:"position"`
	Z        int        `json:"z" yaml:"z"`
	Selected bool       `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Controller owns icon positions and the press/drag/click state machine.
type Controller struct {
	// OnActivate is called with the icon id on a double-click.
	OnActivate func(id string)

	opts     Options
	now      func() time.Time
	ids      []string
	pos      map[string]geom.Point
	z        map[string]int
	viewport geom.Size
	dock     int
	compact  bool

	gesture    Gesture
	hasDragged bool
	dragEnd    time.Time
	selected   string
	lastClick  time.Time
}

// New creates a controller for ids. A nil clock uses time.Now.
func New(ids []string, opts Options, clock func() time.Time) *Controller {
	if clock == nil {
		clock = time.Now
	}
	c := &Controller{
		opts: opts,
		now:  clock,
		ids:  slices.Clone(ids),
		pos:  make(map[string]geom.Point, len(ids)),
		z:    make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		c.z[id] = i + 1
	}
	return c
}

// Resize records the new viewport. Compact mode hides the icons and drops
// any gesture and selection; otherwise the layout is recomputed.
func (c *Controller) Resize(viewport geom.Size, mode geom.Mode) {
	c.dock = mode.DockHeight
	c.SetCompact(mode.Compact)
	c.Relayout(viewport)
}

// Relayout recomputes the bagel layout. It does nothing in compact mode.
func (c *Controller) Relayout(viewport geom.Size) {
	c.viewport = viewport
	if c.compact {
		return
	}
	c.pos = Layout(c.ids, viewport, c.opts.Bagel)
}

// SetCompact switches icon handling off or on.
func (c *Controller) SetCompact(compact bool) {
	c.compact = compact
	if compact {
		c.Cancel()
		c.selected = ""
	}
}

// PointerDown arms a gesture on icon id.
func (c *Controller) PointerDown(id string, at geom.Point) bool {
	p, ok := c.pos[id]
	if c.compact || !ok {
		return false
	}
	c.hasDragged = false
	c.gesture = Gesture{IconID: id, PointerStart: at, IconStart: p}
	return true
}

// PointerMove advances the gesture. The move that crosses the drag threshold
// only promotes the gesture; later moves reposition the icon. It reports
// whether the icon moved.
func (c *Controller) PointerMove(at geom.Point) bool {
	g := &c.gesture
	if g.IconID == "" {
		return false
	}
	d := at.Sub(g.PointerStart)
	if !g.Dragging {
		if math.Hypot(float64(d.X), float64(d.Y)) > c.opts.Threshold {
			g.Dragging = true
			c.hasDragged = true
		}
		return false
	}
	next := c.clamp(g.IconStart.Add(d))
	if next == c.pos[g.IconID] {
		return false
	}
	c.pos[g.IconID] = next
	return true
}

// PointerUp ends the gesture at pointer position at and returns the icon it
// was on and whether it turned into a drag. A drag lands on the release
// position.
func (c *Controller) PointerUp(at geom.Point) (string, bool) {
	if c.gesture.Dragging {
		c.PointerMove(at)
	}
	id, dragged := c.gesture.IconID, c.gesture.Dragging
	c.gesture = Gesture{}
	if id != "" {
		c.dragEnd = c.now()
	}
	return id, dragged
}

// Cancel drops the gesture without stamping a drag end.
func (c *Controller) Cancel() {
	c.gesture = Gesture{}
}

// Click handles a click on icon id. Clicks right after a drag are
// suppressed; a second click on the selected icon within the double-click
// window activates it.
func (c *Controller) Click(id string) ClickResult {
	if c.compact {
		return ClickIgnored
	}
	if _, ok := c.pos[id]; !ok {
		return ClickIgnored
	}
	now := c.now()
	if c.hasDragged {
		if now.Sub(c.dragEnd) < c.opts.ClickSuppress {
			return ClickSuppressed
		}
		c.hasDragged = false
	}

	c.Raise(id)
	if c.selected == id && now.Sub(c.lastClick) < c.opts.DoubleClick {
		c.selected = ""
		if c.OnActivate != nil {
			c.OnActivate(id)
		}
		return ClickActivated
	}
	c.selected = id
	c.lastClick = now
	return ClickSelected
}

// ClearSelection deselects the selected icon.
func (c *Controller) ClearSelection() {
	c.selected = ""
}

// Raise stacks icon id above the other icons.
func (c *Controller) Raise(id string) {
	if _, ok := c.z[id]; !ok {
		return
	}
	top := 0
	for other, z := range c.z {
		if other != id {
			top = max(top, z)
		}
	}
	if c.z[id] <= top {
		c.z[id] = top + 1
	}
}

// At returns the topmost icon whose hit box contains p.
func (c *Controller) At(p geom.Point) (string, bool) {
	if c.compact {
		return "", false
	}
	best, bestZ := "", 0
	for _, id := range c.ids {
		pos, ok := c.pos[id]
		if !ok || !c.hitBox(pos).Contains(p) {
			continue
		}
		if best == "" || c.z[id] > bestZ {
			best, bestZ = id, c.z[id]
		}
	}
	return best, best != ""
}

func (c *Controller) hitBox(p geom.Point) geom.Rect {
	w, h := c.opts.Hit.Width, c.opts.Hit.Height
	return geom.Rect{X: p.X - w/2, Y: p.Y - h/2, Width: w, Height: h}
}

func (c *Controller) clamp(p geom.Point) geom.Point {
	o := c.opts
	return geom.Point{
		X: max(o.MarginX, min(p.X, c.viewport.Width-o.MarginX)),
		Y: max(o.MarginTop, min(p.Y, c.viewport.Height-c.dock-o.MarginBottom)),
	}
}

// Position returns the hotspot of icon id.
func (c *Controller) Position(id string) (geom.Point, bool) {
	p, ok := c.pos[id]
	return p, ok
}

// Selected returns the selected icon id, or "".
func (c *Controller) Selected() string { return c.selected }

// Gesture returns the in-flight gesture.
func (c *Controller) Gesture() Gesture { return c.gesture }

// Phase maps the gesture onto the shared gesture lifecycle.
func (c *Controller) Phase() input.Phase {
	switch {
	case c.gesture.Dragging:
		return input.Active
	case c.gesture.IconID != "":
		return input.Armed
	}
	return input.Idle
}

// Compact reports whether icons are hidden.
func (c *Controller) Compact() bool { return c.compact }

// Snapshot returns the icons in bottom to top order. It is empty in compact
// mode.
func (c *Controller) Snapshot() []Icon {
	if c.compact {
		return nil
	}
	out := make([]Icon, 0, len(c.pos))
	for _, id := range c.ids {
		p, ok := c.pos[id]
		if !ok {
			continue
		}
		out = append(out, Icon{ID: id, Position: p, Z: c.z[id], Selected: id == c.selected})
	}
	slices.SortStableFunc(out, func(a, b Icon) int { return a.Z - b.Z })
	return out
}
