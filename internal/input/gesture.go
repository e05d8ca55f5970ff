// Package input turns pointer sequences into window geometry changes.
//
// Every gesture is a small state machine (Idle -> Armed -> Active -> Idle)
// driven by discrete pointer events. Pointer moves are not applied
// immediately: they replace a pending frame that the host flushes at most once
// per tick, so a burst of motion events costs one geometry update.
package input

import (
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// Phase is the lifecycle of a pointer gesture.
type Phase int

const (
	// Idle means no gesture is in flight.
	Idle Phase = iota
	// Armed means the pointer went down on a target but nothing moved yet.
	Armed
	// Active means the gesture is applying geometry.
	Active
)

func (p Phase) String() string {
	switch p {
	case Armed:
		return "armed"
	case Active:
		return "active"
	default:
		return "idle"
	}
}

// Region classifies the part of a window under the pointer.
type Region int

const (
	RegionNone Region = iota
	RegionTitleBar
	RegionContent
	RegionControl
	RegionHandle
)

func (r Region) String() string {
	switch r {
	case RegionTitleBar:
		return "titlebar"
	case RegionContent:
		return "content"
	case RegionControl:
		return "control"
	case RegionHandle:
		return "handle"
	default:
		return "none"
	}
}

// Windows is the part of the window registry the controllers need.
type Windows interface {
	Get(id string) (window.Window, bool)
	Focus(id string) bool
	SetGeometry(id string, p geom.Point, s geom.Size) bool
}

// BoundsFunc returns the constraint bounds in effect right now.
type BoundsFunc func() geom.Bounds

// Frame coalesces high-frequency updates: Schedule replaces whatever is
// pending and Take hands out at most one value per flush.
type Frame[T any] struct {
	pending T
	ok      bool
}

// Schedule replaces the pending value.
func (f *Frame[T]) Schedule(v T) {
	f.pending = v
	f.ok = true
}

// Take returns the pending value and clears it.
func (f *Frame[T]) Take() (T, bool) {
	v, ok := f.pending, f.ok
	f.Cancel()
	return v, ok
}

// Pending reports whether a value is waiting.
func (f *Frame[T]) Pending() bool {
	return f.ok
}

// Cancel drops the pending value.
func (f *Frame[T]) Cancel() {
	var zero T
	f.pending = zero
	f.ok = false
}
