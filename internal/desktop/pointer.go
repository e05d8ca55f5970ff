package desktop

import (
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/icons"
)

type pressKind int

const (
	pressNone pressKind = iota
	pressDrag
	pressResize
	pressIcon
	pressSticky
	pressButton // Control, sticky toggle or dock slot; fires on release
	pressDesktop
)

// press remembers which controller owns the pointer between down and up.
type press struct {
	kind   pressKind
	target Target
}

// PointerDown routes a button press to the controller under p.
func (d *Desktop) PointerDown(p geom.Point) {
	d.CancelGestures()
	t := d.HitTest(p)

	switch t.Kind {
	case TargetTitleBar:
		if d.drag.Start(t.ID, p, t.Region()) {
			d.press = press{kind: pressDrag, target: t}
			return
		}
		d.FocusWindow(t.ID)

	case TargetHandle:
		if d.resize.Start(t.ID, t.Direction, p) {
			d.press = press{kind: pressResize, target: t}
			return
		}
		d.FocusWindow(t.ID)

	case TargetContent:
		d.FocusWindow(t.ID)

	case TargetControl:
		d.FocusWindow(t.ID)
		d.press = press{kind: pressButton, target: t}

	case TargetStickyToggle:
		d.stickies.BringToFront(t.ID)
		d.press = press{kind: pressButton, target: t}

	case TargetSticky:
		d.stickies.BringToFront(t.ID)
		if d.stickies.StartDrag(t.ID, p) {
			d.press = press{kind: pressSticky, target: t}
		}

	case TargetIcon:
		if d.icons.PointerDown(t.ID, p) {
			d.press = press{kind: pressIcon, target: t}
		}

	case TargetDock:
		if t.ID != "" {
			d.press = press{kind: pressButton, target: t}
		}

	case TargetDesktop:
		d.press = press{kind: pressDesktop, target: t}
	}
}

// PointerMove feeds pointer motion to the active gesture. Window drags and
// resizes are only queued; Tick applies them. It reports whether something
// moved right away.
func (d *Desktop) PointerMove(p geom.Point) bool {
	switch d.press.kind {
	case pressDrag:
		d.drag.Move(p)
	case pressResize:
		d.resize.Move(p)
	case pressIcon:
		return d.icons.PointerMove(p)
	case pressSticky:
		return d.stickies.Move(p)
	}
	return false
}

// PointerUp finishes the gesture started by PointerDown. Buttons fire only
// when released over the control they were pressed on, and a release over
// the pressed icon delivers an icon click.
func (d *Desktop) PointerUp(p geom.Point) {
	pr := d.press
	d.press = press{}

	switch pr.kind {
	case pressDrag:
		d.drag.End(p)

	case pressResize:
		d.resize.End(p)

	case pressSticky:
		d.stickies.Move(p)
		d.stickies.EndDrag()

	case pressIcon:
		id, _ := d.icons.PointerUp(p)
		if t := d.HitTest(p); t.Kind == TargetIcon && t.ID == id {
			d.clickIcon(id)
		}

	case pressButton:
		t := d.HitTest(p)
		if t.Kind != pr.target.Kind || t.ID != pr.target.ID || t.Control != pr.target.Control {
			return
		}
		d.activate(t)

	case pressDesktop:
		if d.HitTest(p).Kind == TargetDesktop {
			d.icons.ClearSelection()
		}
	}
}

// Click is a press and release at the same point.
func (d *Desktop) Click(p geom.Point) {
	d.PointerDown(p)
	d.PointerUp(p)
}

func (d *Desktop) activate(t Target) {
	switch t.Kind {
	case TargetControl:
		switch t.Control {
		case ControlMinimize:
			d.MinimizeWindow(t.ID)
		case ControlMaximize:
			d.MaximizeWindow(t.ID)
		case ControlClose:
			d.CloseWindow(t.ID)
		}
	case TargetStickyToggle:
		d.ToggleSticky(t.ID)
	case TargetDock:
		d.DockClick(t.ID)
	}
}

func (d *Desktop) clickIcon(id string) icons.ClickResult {
	res := d.icons.Click(id)
	d.logger.Debug("icon click", "id", id, "result", res.String())
	return res
}
