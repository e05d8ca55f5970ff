package desktop

import (
	"slices"

	"github.com/Gaurav-Gosain/deskfolio/internal/dock"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/icons"
	"github.com/Gaurav-Gosain/deskfolio/internal/sticky"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// Snapshot is a read-only copy of the whole desktop state.
type Snapshot struct {
	Viewport geom.Size       `json:"viewport" yaml:"viewport"`
	Mode     geom.Mode       `json:"mode" yaml:"mode"`
	Windows  []window.Window `json:"windows" yaml:"windows"`
	Icons    []icons.Icon    `json:"icons" yaml:"icons"`
	Stickies []sticky.Note   `json:"stickies" yaml:"stickies"`
	Dock     []dock.Item     `json:"dock" yaml:"dock"`
	Focused  string          `json:"focused,omitempty" yaml:"focused,omitempty"`
	Selected string          `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Snapshot captures the desktop. Windows and notes are in draw order.
func (d *Desktop) Snapshot() Snapshot {
	return Snapshot{
		Viewport: d.detector.Viewport(),
		Mode:     d.detector.Mode(),
		Windows:  d.windows.Snapshot(),
		Icons:    d.icons.Snapshot(),
		Stickies: d.stickies.Snapshot(),
		Dock:     d.dock.Snapshot(),
		Focused:  d.windows.Topmost(),
		Selected: d.icons.Selected(),
	}
}

// DockSlots returns the dock item rectangles for the current bounds.
func (d *Desktop) DockSlots() []dock.Slot {
	return d.dock.Slots(d.detector.Bounds())
}

// LayerKind says whether a layer is a window or a note.
type LayerKind int

const (
	LayerSticky LayerKind = iota
	LayerWindow
)

// Layer is one stacked surface above the icons.
type Layer struct {
	Kind LayerKind
	ID   string
	Z    int
	Rect geom.Rect
}

// Stack merges visible windows and notes into draw order. Windows draw
// above notes that share their z.
func (s Snapshot) Stack() []Layer {
	layers := make([]Layer, 0, len(s.Windows)+len(s.Stickies))
	for _, n := range s.Stickies {
		layers = append(layers, Layer{Kind: LayerSticky, ID: n.ID, Z: n.Z, Rect: n.Rect()})
	}
	for _, w := range s.Windows {
		if w.IsMinimized {
			continue
		}
		layers = append(layers, Layer{Kind: LayerWindow, ID: w.ID, Z: w.Z, Rect: w.Rect()})
	}
	slices.SortStableFunc(layers, func(a, b Layer) int {
		if a.Z != b.Z {
			return a.Z - b.Z
		}
		return int(a.Kind) - int(b.Kind)
	})
	return layers
}

// Window returns the snapshot copy of window id.
func (s Snapshot) Window(id string) (window.Window, bool) {
	for _, w := range s.Windows {
		if w.ID == id {
			return w, true
		}
	}
	return window.Window{}, false
}

// Sticky returns the snapshot copy of note id.
func (s Snapshot) Sticky(id string) (sticky.Note, bool) {
	for _, n := range s.Stickies {
		if n.ID == id {
			return n, true
		}
	}
	return sticky.Note{}, false
}

// Icon returns the snapshot copy of icon id.
func (s Snapshot) Icon(id string) (icons.Icon, bool) {
	for _, ic := range s.Icons {
		if ic.ID == id {
			return ic, true
		}
	}
	return icons.Icon{}, false
}

// DockItem returns the snapshot copy of dock item id.
func (s Snapshot) DockItem(id string) (dock.Item, bool) {
	for _, it := range s.Dock {
		if it.ID == id {
			return it, true
		}
	}
	return dock.Item{}, false
}
