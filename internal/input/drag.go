package input

import "github.com/Gaurav-Gosain/deskfolio/internal/geom"

// DragState is the in-flight window drag descriptor.
type DragState struct {
	WindowID     string
	PointerStart geom.Point
	WindowStart  geom.Point
}

// Drag moves windows by their title bar. Only one drag is in flight at a
// time; starting a new one discards whatever an interrupted gesture left
// behind.
type Drag struct {
	windows Windows
	bounds  BoundsFunc
	phase   Phase
	state   DragState
	frame   Frame[geom.Point]
}

// NewDrag creates a drag controller over windows.
func NewDrag(windows Windows, bounds BoundsFunc) *Drag {
	return &Drag{windows: windows, bounds: bounds}
}

// Start begins dragging window id from pointer position at. It is refused in
// compact mode, for maximized or hidden windows, and when the pointer is not
// on the title bar. The window is focused when the drag starts.
func (d *Drag) Start(id string, at geom.Point, region Region) bool {
	d.Cancel()
	if region != RegionTitleBar || d.bounds().Compact {
		return false
	}
	w, ok := d.windows.Get(id)
	if !ok || w.IsMaximized || w.IsMinimized {
		return false
	}
	d.windows.Focus(id)
	d.state = DragState{WindowID: id, PointerStart: at, WindowStart: w.Position}
	d.phase = Armed
	return true
}

// Move records the latest pointer position for the next flush.
func (d *Drag) Move(at geom.Point) {
	if d.phase == Idle {
		return
	}
	d.frame.Schedule(at)
}

// Flush applies the pending pointer position, if any. It reports whether the
// window moved. A drag whose window disappeared, got maximized or was caught
// by a switch to compact mode is cancelled instead.
func (d *Drag) Flush() bool {
	at, ok := d.frame.Take()
	if !ok || d.phase == Idle {
		return false
	}
	b := d.bounds()
	w, exists := d.windows.Get(d.state.WindowID)
	if b.Compact || !exists || w.IsMaximized || w.IsMinimized {
		d.Cancel()
		return false
	}
	candidate := d.state.WindowStart.Add(at.Sub(d.state.PointerStart))
	pos := geom.ConstrainPosition(candidate, w.Size, b)
	d.phase = Active
	if pos == w.Position {
		return false
	}
	return d.windows.SetGeometry(w.ID, pos, w.Size)
}

// End applies the final pointer position and clears the drag.
func (d *Drag) End(at geom.Point) {
	if d.phase == Idle {
		return
	}
	d.Move(at)
	d.Flush()
	d.Cancel()
}

// Cancel clears the drag without applying anything.
func (d *Drag) Cancel() {
	d.phase = Idle
	d.state = DragState{}
	d.frame.Cancel()
}

// Phase returns the gesture phase.
func (d *Drag) Phase() Phase { return d.phase }

// InFlight reports whether a drag is armed or active.
func (d *Drag) InFlight() bool { return d.phase != Idle }

// State returns the current descriptor.
func (d *Drag) State() DragState { return d.state }
