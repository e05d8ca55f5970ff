package input

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

// Direction is the edge or corner a resize handle drags.
type Direction uint8

const (
	DirNone Direction = 0
	DirN    Direction = 1 << iota
	DirS
	DirE
	DirW
	DirNE = DirN | DirE
	DirNW = DirN | DirW
	DirSE = DirS | DirE
	DirSW = DirS | DirW
)

var directionNames = map[Direction]string{
	DirN:  "n",
	DirS:  "s",
	DirE:  "e",
	DirW:  "w",
	DirNE: "ne",
	DirNW: "nw",
	DirSE: "se",
	DirSW: "sw",
}

// ParseDirection parses one of n, s, e, w, ne, nw, se, sw.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == s {
			return d, nil
		}
	}
	return DirNone, fmt.Errorf("invalid resize direction %q", s)
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "none"
}

// Has reports whether d includes edge.
func (d Direction) Has(edge Direction) bool {
	return d&edge != 0
}

// ResizeState is the in-flight resize descriptor.
type ResizeState struct {
	WindowID      string
	Direction     Direction
	PointerStart  geom.Point
	StartSize     geom.Size
	StartPosition geom.Point
}

// Resize changes window geometry from an edge or corner handle.
type Resize struct {
	windows Windows
	bounds  BoundsFunc
	phase   Phase
	state   ResizeState
	frame   Frame[geom.Point]
}

// NewResize creates a resize controller over windows.
func NewResize(windows Windows, bounds BoundsFunc) *Resize {
	return &Resize{windows: windows, bounds: bounds}
}

// Start begins resizing window id along dir. It is refused in compact mode
// and for maximized or missing windows.
func (r *Resize) Start(id string, dir Direction, at geom.Point) bool {
	r.Cancel()
	if _, ok := directionNames[dir]; !ok || r.bounds().Compact {
		return false
	}
	w, ok := r.windows.Get(id)
	if !ok || w.IsMaximized || w.IsMinimized {
		return false
	}
	r.windows.Focus(id)
	r.state = ResizeState{
		WindowID:      id,
		Direction:     dir,
		PointerStart:  at,
		StartSize:     w.Size,
		StartPosition: w.Position,
	}
	r.phase = Armed
	return true
}

// Move records the latest pointer position for the next flush.
func (r *Resize) Move(at geom.Point) {
	if r.phase == Idle {
		return
	}
	r.frame.Schedule(at)
}

// Flush applies the pending pointer position and reports whether the window
// geometry changed.
func (r *Resize) Flush() bool {
	at, ok := r.frame.Take()
	if !ok || r.phase == Idle {
		return false
	}
	b := r.bounds()
	w, exists := r.windows.Get(r.state.WindowID)
	if b.Compact || !exists || w.IsMaximized || w.IsMinimized {
		r.Cancel()
		return false
	}
	r.phase = Active
	pos, size := ResizeGeometry(r.state, at, b)
	if pos == w.Position && size == w.Size {
		return false
	}
	return r.windows.SetGeometry(w.ID, pos, size)
}

// End applies the final pointer position and clears the resize.
func (r *Resize) End(at geom.Point) {
	if r.phase == Idle {
		return
	}
	r.Move(at)
	r.Flush()
	r.Cancel()
}

// Cancel clears the resize without applying anything.
func (r *Resize) Cancel() {
	r.phase = Idle
	r.state = ResizeState{}
	r.frame.Cancel()
}

// Phase returns the gesture phase.
func (r *Resize) Phase() Phase { return r.phase }

// InFlight reports whether a resize is armed or active.
func (r *Resize) InFlight() bool { return r.phase != Idle }

// State returns the current descriptor.
func (r *Resize) State() ResizeState { return r.state }

// ResizeGeometry computes the geometry for pointer position at. Each axis is
// resized from the start snapshot; west and north edges keep the opposite
// edge anchored until they hit the left edge or the top bar.
func ResizeGeometry(st ResizeState, at geom.Point, b geom.Bounds) (geom.Point, geom.Size) {
	d := at.Sub(st.PointerStart)
	sx, sy := st.StartPosition.X, st.StartPosition.Y
	sw, sh := st.StartSize.Width, st.StartSize.Height
	x, y, w, h := sx, sy, sw, sh
	vw, vh := b.Viewport.Width, b.Viewport.Height

	switch {
	case st.Direction.Has(DirE):
		w = max(b.MinSize.Width, min(sw+d.X, vw-sx))
	case st.Direction.Has(DirW):
		nw := max(b.MinSize.Width, sw-d.X)
		if nx := sx + (sw - nw); nx >= 0 {
			x, w = nx, nw
		} else {
			x, w = 0, sx+sw
		}
	}

	switch {
	case st.Direction.Has(DirS):
		h = max(b.MinSize.Height, min(sh+d.Y, vh-sy))
	case st.Direction.Has(DirN):
		nh := max(b.MinSize.Height, sh-d.Y)
		if ny := sy + (sh - nh); ny >= b.TopBar {
			y, h = ny, nh
		} else {
			y, h = b.TopBar, sy+sh-b.TopBar
		}
	}

	pos := geom.Point{X: x, Y: y}
	size := geom.ConstrainSize(geom.Size{Width: w, Height: h}, pos, b)
	return geom.ConstrainPosition(pos, size, b), size
}
