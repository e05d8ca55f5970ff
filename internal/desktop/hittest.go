package desktop

import (
	"slices"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// TargetKind classifies what lies under the pointer.
type TargetKind int

const (
	TargetDesktop TargetKind = iota
	TargetMenuBar
	TargetDock
	TargetControl
	TargetHandle
	TargetTitleBar
	TargetContent
	TargetStickyToggle
	TargetSticky
	TargetIcon
)

var targetNames = [...]string{
	TargetDesktop:      "desktop",
	TargetMenuBar:      "menubar",
	TargetDock:         "dock",
	TargetControl:      "control",
	TargetHandle:       "handle",
	TargetTitleBar:     "titlebar",
	TargetContent:      "content",
	TargetStickyToggle: "sticky-toggle",
	TargetSticky:       "sticky",
	TargetIcon:         "icon",
}

func (k TargetKind) String() string {
	if int(k) < len(targetNames) {
		return targetNames[k]
	}
	return "unknown"
}

// Control is a title bar button.
type Control int

const (
	ControlNone Control = iota
	ControlMinimize
	ControlMaximize
	ControlClose
)

func (c Control) String() string {
	switch c {
	case ControlMinimize:
		return "minimize"
	case ControlMaximize:
		return "maximize"
	case ControlClose:
		return "close"
	}
	return "none"
}

// Target is the result of a hit test.
type Target struct {
	Kind      TargetKind
	ID        string
	Control   Control
	Direction input.Direction
}

// Region maps a window target onto the region the pointer controllers
// understand.
func (t Target) Region() input.Region {
	switch t.Kind {
	case TargetTitleBar:
		return input.RegionTitleBar
	case TargetContent:
		return input.RegionContent
	case TargetControl:
		return input.RegionControl
	case TargetHandle:
		return input.RegionHandle
	}
	return input.RegionNone
}

// HitTest returns the topmost thing under p. The menu bar and the dock are
// always on top, then windows and notes by z, then icons.
func (d *Desktop) HitTest(p geom.Point) Target {
	b := d.detector.Bounds()
	if p.Y < b.TopBar {
		return Target{Kind: TargetMenuBar}
	}
	if d.dock.Area(b).Contains(p) {
		id, _ := d.dock.At(p, b)
		return Target{Kind: TargetDock, ID: id}
	}

	snap := d.Snapshot()
	stack := snap.Stack()
	for _, l := range slices.Backward(stack) {
		if !l.Rect.Contains(p) {
			continue
		}
		if l.Kind == LayerSticky {
			return d.stickyTarget(l, p)
		}
		w, _ := snap.Window(l.ID)
		return d.windowTarget(w, p, b.Compact)
	}

	if id, ok := d.icons.At(p); ok {
		return Target{Kind: TargetIcon, ID: id}
	}
	return Target{Kind: TargetDesktop}
}

func (d *Desktop) stickyTarget(l Layer, p geom.Point) Target {
	m := d.metrics
	toggle := geom.Rect{
		X:      l.Rect.X + l.Rect.Width - m.ControlWidth,
		Y:      l.Rect.Y,
		Width:  m.ControlWidth,
		Height: m.TitleBar,
	}
	if toggle.Contains(p) {
		return Target{Kind: TargetStickyToggle, ID: l.ID}
	}
	return Target{Kind: TargetSticky, ID: l.ID}
}

// windowTarget classifies p inside window w. Edges and corners are resize
// handles unless the window cannot be resized; the top edge only gets a
// handle when it is thinner than the title bar. Controls sit at the right end
// of the title bar.
func (d *Desktop) windowTarget(w window.Window, p geom.Point, compact bool) Target {
	m := d.metrics
	r := w.Rect()
	t := Target{ID: w.ID}
	rel := p.Sub(r.Pos())

	if !compact && !w.IsMaximized && m.HandleSize > 0 {
		h := m.HandleSize
		var dir input.Direction
		if rel.X < h {
			dir |= input.DirW
		} else if rel.X >= r.Width-h {
			dir |= input.DirE
		}
		if rel.Y >= r.Height-h {
			dir |= input.DirS
		} else if rel.Y < h && h < m.TitleBar {
			dir |= input.DirN
		}
		if dir != input.DirNone {
			t.Kind, t.Direction = TargetHandle, dir
			return t
		}
	}

	if rel.Y < m.TitleBar {
		inset := 0
		if !compact && !w.IsMaximized {
			inset = m.HandleSize
		}
		right := r.Width - inset
		for i, c := range []Control{ControlClose, ControlMaximize, ControlMinimize} {
			lo := right - (i+1)*m.ControlWidth
			if rel.X >= lo && rel.X < lo+m.ControlWidth {
				t.Kind, t.Control = TargetControl, c
				return t
			}
		}
		t.Kind = TargetTitleBar
		return t
	}
	t.Kind = TargetContent
	return t
}

// ControlPoint returns a point on control c of window id, for scripted
// clicks.
func (d *Desktop) ControlPoint(id string, c Control) (geom.Point, bool) {
	w, ok := d.windows.Get(id)
	if !ok || c == ControlNone {
		return geom.Point{}, false
	}
	m := d.metrics
	inset := 0
	if !d.detector.Mode().Compact && !w.IsMaximized {
		inset = m.HandleSize
	}
	slot := map[Control]int{ControlClose: 1, ControlMaximize: 2, ControlMinimize: 3}[c]
	x := w.Position.X + w.Size.Width - inset - slot*m.ControlWidth + m.ControlWidth/2
	return geom.Point{X: x, Y: w.Position.Y + m.TitleBar/2}, true
}

// TitlePoint returns a point on the draggable part of the title bar of
// window id.
func (d *Desktop) TitlePoint(id string) (geom.Point, bool) {
	w, ok := d.windows.Get(id)
	if !ok {
		return geom.Point{}, false
	}
	return geom.Point{
		X: w.Position.X + w.Size.Width/3,
		Y: w.Position.Y + d.metrics.TitleBar/2,
	}, true
}

// HandlePoint returns a point on the resize handle dir of window id.
func (d *Desktop) HandlePoint(id string, dir input.Direction) (geom.Point, bool) {
	w, ok := d.windows.Get(id)
	if !ok {
		return geom.Point{}, false
	}
	r := w.Rect()
	p := geom.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
	switch {
	case dir.Has(input.DirE):
		p.X = r.X + r.Width - 1
	case dir.Has(input.DirW):
		p.X = r.X
	}
	switch {
	case dir.Has(input.DirS):
		p.Y = r.Y + r.Height - 1
	case dir.Has(input.DirN):
		p.Y = r.Y
	}
	return p, true
}
