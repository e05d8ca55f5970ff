// Package window holds the registry of open desktop windows: identity,
// geometry, stacking order and the minimized/maximized state machine.
package window

import "github.com/Gaurav-Gosain/deskfolio/internal/geom"

// Geometry is a saved position/size pair.
type Geometry struct {
	Position geom.Point `json:"position" yaml:"position"`
	Size     geom.Size  `json:"size" yaml:"size"`
}

// Window represents one simulated application window.
// The Content payload is owned by the caller and never inspected here.
// Saved is set only while the window is maximized; AutoMaximized marks a
// maximize caused by responsive reflow rather than by the user.
type Window struct {
	ID            string     `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Content       any        `json:"-" yaml:"-"`
	IsOpen        bool       `json:"is_open" yaml:"is_open"`
	IsMinimized   bool       `json:"is_minimized" yaml:"is_minimized"`
	IsMaximized   bool       `json:"is_maximized" yaml:"is_maximized"`
	Z             int        `json:"z" yaml:"z"`
	Position      geom.Point `json:"position" yaml:"position"`
	Size          geom.Size  `json:"size" yaml:"size"`
	Saved         *Geometry  `json:"saved,omitempty" yaml:"saved,omitempty"`
	AutoMaximized bool       `json:"auto_maximized,omitempty" yaml:"auto_maximized,omitempty"`
}

// Rect returns the window's current bounding rectangle.
func (w *Window) Rect() geom.Rect {
	return geom.RectOf(w.Position, w.Size)
}

// Launch describes a window to open.
type Launch struct {
	ID      string
	Title   string
	Size    geom.Size  // Preferred desktop size
	Content func() any // Invoked only when a new window is created
}

// Outcome reports what Open did.
type Outcome int

const (
	// OutcomeNone means nothing happened (empty id).
	OutcomeNone Outcome = iota
	// OutcomeCreated means a new window was added.
	OutcomeCreated
	// OutcomeFocused means an existing visible window was brought to front.
	OutcomeFocused
	// OutcomeRestored means a minimized window was shown and focused.
	OutcomeRestored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeFocused:
		return "focused"
	case OutcomeRestored:
		return "restored"
	default:
		return "none"
	}
}
