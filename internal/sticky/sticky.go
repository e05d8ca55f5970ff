// Package sticky implements the draggable, expandable notes pinned to the
// desktop.
package sticky

import (
	"slices"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// AnchorBottomRight pins a note to the bottom-right corner in compact mode.
const AnchorBottomRight = "bottom-right"

// Seed describes a note as it appears when the board is reset.
type Seed struct {
	ID     string
	Type   string
	Z      int
	Origin geom.Point
	Anchor string
}

// Options are the note metrics.
type Options struct {
	Size         geom.Size
	Margin       int
	TopBar       int
	BottomOffset int // Distance of anchored notes from the bottom edge in compact mode
}

// Note is a sticky note.
type Note struct {
	ID         string      `json:"id" yaml:"id"`
	Type       string      `json:"type" yaml:"type"`
	Position   geom.Point  `json:"position" yaml:"position"`
	Size       geom.Size   `json:"size" yaml:"size"`
	Z          int         `json:"z" yaml:"z"`
	IsExpanded bool        `json:"is_expanded" yaml:"is_expanded"`
	Saved      *geom.Point `json:"saved,omitempty" yaml:"saved,omitempty"`
	Anchor     string      `json:"anchor,omitempty" yaml:"anchor,omitempty"`
}

// Rect returns the note's screen rectangle.
func (n *Note) Rect() geom.Rect {
	return geom.RectOf(n.Position, n.Size)
}

type dragState struct {
	NoteID       string
	PointerStart geom.Point
	NoteStart    geom.Point
}

// Board owns the notes and their drag gesture.
type Board struct {
	opts     Options
	z        *window.ZOrder
	seeds    []Seed
	notes    []*Note
	viewport geom.Size
	mode     geom.Mode

	phase input.Phase
	drag  dragState
}

// NewBoard creates an empty board sharing the stacking counter z.
func NewBoard(opts Options, z *window.ZOrder, seeds []Seed) *Board {
	if z == nil {
		z = window.NewZOrder(window.DefaultBaseZ)
	}
	return &Board{opts: opts, z: z, seeds: slices.Clone(seeds)}
}

// Reset rebuilds every note from the seeds for the given viewport and mode,
// dropping expansion state and any drag.
func (b *Board) Reset(viewport geom.Size, mode geom.Mode) {
	b.Cancel()
	b.viewport, b.mode = viewport, mode
	b.notes = b.notes[:0]
	for _, s := range b.seeds {
		n := &Note{
			ID:       s.ID,
			Type:     s.Type,
			Position: s.Origin,
			Size:     b.opts.Size,
			Z:        s.Z,
			Anchor:   s.Anchor,
		}
		if mode.Compact && s.Anchor == AnchorBottomRight {
			n.Position = b.anchored()
		}
		b.notes = append(b.notes, n)
	}
}

func (b *Board) find(id string) *Note {
	for _, n := range b.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (b *Board) anchored() geom.Point {
	return geom.Point{
		X: b.viewport.Width - b.opts.Size.Width - b.opts.Margin,
		Y: b.viewport.Height - b.opts.Size.Height - b.opts.BottomOffset,
	}
}

func (b *Board) pinned() geom.Point {
	return geom.Point{X: b.opts.Margin, Y: b.opts.TopBar + b.opts.Margin}
}

func (b *Board) expandedSize() geom.Size {
	m := b.opts.Margin
	return geom.Size{
		Width:  max(b.opts.Size.Width, b.viewport.Width-2*m),
		Height: max(b.opts.Size.Height, b.viewport.Height-b.opts.TopBar-b.mode.DockHeight-2*m),
	}
}

// clamp keeps a collapsed note between the top bar and the dock.
func (b *Board) clamp(p geom.Point) geom.Point {
	s := b.opts.Size
	return geom.Point{
		X: max(0, min(p.X, b.viewport.Width-s.Width)),
		Y: max(b.opts.TopBar, min(p.Y, b.viewport.Height-b.mode.DockHeight-s.Height-b.opts.Margin)),
	}
}

// StartDrag begins dragging note id. Expanded notes and compact mode refuse
// drags.
func (b *Board) StartDrag(id string, at geom.Point) bool {
	b.Cancel()
	n := b.find(id)
	if n == nil || n.IsExpanded || b.mode.Compact {
		return false
	}
	b.drag = dragState{NoteID: id, PointerStart: at, NoteStart: n.Position}
	b.phase = input.Armed
	return true
}

// Move drags the note to follow the pointer and reports whether it moved.
func (b *Board) Move(at geom.Point) bool {
	if b.phase == input.Idle {
		return false
	}
	n := b.find(b.drag.NoteID)
	if n == nil || n.IsExpanded {
		b.Cancel()
		return false
	}
	b.phase = input.Active
	next := b.clamp(b.drag.NoteStart.Add(at.Sub(b.drag.PointerStart)))
	if next == n.Position {
		return false
	}
	n.Position = next
	return true
}

// EndDrag finishes the drag.
func (b *Board) EndDrag() {
	b.Cancel()
}

// Cancel drops the drag.
func (b *Board) Cancel() {
	b.phase = input.Idle
	b.drag = dragState{}
}

// Dragging reports whether a note drag is in flight.
func (b *Board) Dragging() bool { return b.phase != input.Idle }

// ToggleExpand expands a collapsed note to the top-left of the desktop or
// collapses an expanded one back to where it was.
func (b *Board) ToggleExpand(id string) bool {
	n := b.find(id)
	if n == nil {
		return false
	}
	if b.drag.NoteID == id {
		b.Cancel()
	}
	if n.IsExpanded {
		if n.Saved != nil {
			n.Position = *n.Saved
		}
		n.Saved = nil
		n.IsExpanded = false
		n.Size = b.opts.Size
		return true
	}
	saved := n.Position
	n.Saved = &saved
	n.IsExpanded = true
	n.Position = b.pinned()
	n.Size = b.expandedSize()
	return true
}

// Resize refits the notes to a new viewport within the same mode. Expanded
// notes re-pin, anchored notes in compact mode re-anchor and the rest are
// clamped like a drag.
func (b *Board) Resize(viewport geom.Size, mode geom.Mode) {
	b.viewport, b.mode = viewport, mode
	for _, n := range b.notes {
		switch {
		case n.IsExpanded:
			n.Position = b.pinned()
			n.Size = b.expandedSize()
		case mode.Compact && n.Anchor == AnchorBottomRight:
			n.Position = b.anchored()
		default:
			n.Position = b.clamp(n.Position)
		}
	}
}

// BringToFront stacks note id above everything drawn so far.
func (b *Board) BringToFront(id string) bool {
	n := b.find(id)
	if n == nil {
		return false
	}
	n.Z = b.z.Next()
	return true
}

// Get returns a copy of note id.
func (b *Board) Get(id string) (Note, bool) {
	n := b.find(id)
	if n == nil {
		return Note{}, false
	}
	return copyNote(n), true
}

// Snapshot returns copies of the notes sorted by Z ascending.
func (b *Board) Snapshot() []Note {
	out := make([]Note, 0, len(b.notes))
	for _, n := range b.notes {
		out = append(out, copyNote(n))
	}
	slices.SortStableFunc(out, func(a, b Note) int { return a.Z - b.Z })
	return out
}

func copyNote(n *Note) Note {
	c := *n
	if n.Saved != nil {
		saved := *n.Saved
		c.Saved = &saved
	}
	return c
}

// Topmost returns the id of the highest note, or "".
func (b *Board) Topmost() string {
	snap := b.Snapshot()
	if len(snap) == 0 {
		return ""
	}
	return snap[len(snap)-1].ID
}
