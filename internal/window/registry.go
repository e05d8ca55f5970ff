package window

import (
	"math/rand/v2"
	"slices"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

// Placer picks the unconstrained top-left corner for a new desktop window.
type Placer func(size geom.Size) geom.Point

// Scatter describes the randomized placement band for new windows:
// x = Base.X + rand*Spread.X, y = Base.Y + rand*Spread.Y.
type Scatter struct {
	Base   geom.Point
	Spread geom.Point
}

// RandomPlacer returns a Placer scattering windows within s. A nil rng uses
// the global source.
func RandomPlacer(s Scatter, rng *rand.Rand) Placer {
	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}
	return func(geom.Size) geom.Point {
		p := s.Base
		if s.Spread.X > 0 {
			p.X += intn(s.Spread.X)
		}
		if s.Spread.Y > 0 {
			p.Y += intn(s.Spread.Y)
		}
		return p
	}
}

// Registry is the authoritative collection of open windows.
// It is not safe for concurrent use; the desktop drives it from a single
// event loop.
type Registry struct {
	windows []*Window
	z       *ZOrder
	place   Placer
}

// NewRegistry creates an empty registry sharing the given stacking counter.
func NewRegistry(z *ZOrder, place Placer) *Registry {
	if z == nil {
		z = NewZOrder(DefaultBaseZ)
	}
	if place == nil {
		place = RandomPlacer(Scatter{Base: geom.Point{X: 100, Y: 80}, Spread: geom.Point{X: 200, Y: 100}}, nil)
	}
	return &Registry{z: z, place: place}
}

func (r *Registry) find(id string) *Window {
	for _, w := range r.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Open shows the window described by l. An existing visible window is
// focused, a minimized one is restored and focused, and otherwise a new window
// is created on top of the stack.
//
// On desktop the new window is scattered by the placer and clamped to b. When
// the mode auto-maximizes, the window starts maximized with its would-be
// desktop geometry (clamped to desktop) saved for later restore.
func (r *Registry) Open(l Launch, b, desktop geom.Bounds, mode geom.Mode) (Window, Outcome) {
	if l.ID == "" {
		return Window{}, OutcomeNone
	}
	if w := r.find(l.ID); w != nil {
		outcome := OutcomeFocused
		if w.IsMinimized {
			unminimize(w, b, mode)
			outcome = OutcomeRestored
		}
		w.Z = r.z.Next()
		return *w, outcome
	}

	size := l.Size
	if size.Width <= 0 || size.Height <= 0 {
		size = desktop.MinSize
	}
	pos := r.place(size)
	pos, size = geom.Constrain(pos, size, desktop)

	w := &Window{
		ID:       l.ID,
		Title:    l.Title,
		IsOpen:   true,
		Position: pos,
		Size:     size,
	}
	if l.Content != nil {
		w.Content = l.Content()
	}
	if mode.AutoMaximize {
		w.Saved = &Geometry{Position: pos, Size: size}
		w.IsMaximized = true
		w.AutoMaximized = true
		u := b.Usable()
		w.Position, w.Size = u.Pos(), u.Size()
	}
	w.Z = r.z.Next()
	r.windows = append(r.windows, w)
	return *w, OutcomeCreated
}

// Close removes the window. It reports whether a window was removed.
func (r *Registry) Close(id string) bool {
	i := slices.IndexFunc(r.windows, func(w *Window) bool { return w.ID == id })
	if i < 0 {
		return false
	}
	r.windows = slices.Delete(r.windows, i, i+1)
	return true
}

// Minimize hides the window, keeping its geometry. It is refused in compact
// mode and for maximized windows, which must be restored first.
func (r *Registry) Minimize(id string, mode geom.Mode) bool {
	if mode.Compact {
		return false
	}
	w := r.find(id)
	if w == nil || w.IsMaximized || w.IsMinimized {
		return false
	}
	w.IsMinimized = true
	return true
}

// Restore un-minimizes and focuses the window, fitting it to b the way
// Reflow would have if it had been visible.
func (r *Registry) Restore(id string, b geom.Bounds, mode geom.Mode) bool {
	w := r.find(id)
	if w == nil || !w.IsMinimized {
		return false
	}
	unminimize(w, b, mode)
	w.Z = r.z.Next()
	return true
}

// ToggleMaximize maximizes a restored window or restores a maximized one.
// The saved geometry is re-clamped to b on restore. Compact mode is already
// implicitly maximized, so the toggle is refused there.
func (r *Registry) ToggleMaximize(id string, b geom.Bounds) bool {
	if b.Compact {
		return false
	}
	w := r.find(id)
	if w == nil {
		return false
	}
	if w.IsMaximized {
		restore(w, b)
		return true
	}
	maximize(w, b)
	return true
}

// Focus brings the window to the top of the stack.
func (r *Registry) Focus(id string) bool {
	w := r.find(id)
	if w == nil {
		return false
	}
	w.Z = r.z.Next()
	return true
}

// SetGeometry stores geometry computed by a controller. Callers are
// responsible for having constrained it.
func (r *Registry) SetGeometry(id string, p geom.Point, s geom.Size) bool {
	w := r.find(id)
	if w == nil {
		return false
	}
	w.Position, w.Size = p, s
	return true
}

// Reflow re-applies the responsive rules after a mode transition.
//
// Entering the auto-maximize band force-maximizes every visible window and
// flags it as auto-maximized. Leaving it returns auto-maximized windows to
// their saved geometry; windows the user maximized stay maximized. Everything
// is then fitted to b.
func (r *Registry) Reflow(b geom.Bounds, mode geom.Mode) {
	for _, w := range r.windows {
		switch {
		case mode.AutoMaximize && !w.IsMinimized && !w.IsMaximized:
			maximize(w, b)
			w.AutoMaximized = true
		case !mode.AutoMaximize && w.IsMaximized && w.AutoMaximized:
			restore(w, b)
		}
	}
	r.Fit(b)
}

// Fit keeps every window valid for b after a viewport change within the same
// mode: maximized windows take the new usable area and the rest are clamped.
// Minimized windows keep their desktop geometry in compact mode; they are
// fitted when restored.
func (r *Registry) Fit(b geom.Bounds) {
	for _, w := range r.windows {
		if w.IsMinimized && b.Compact {
			continue
		}
		fit(w, b)
	}
}

func fit(w *Window, b geom.Bounds) {
	if w.IsMaximized {
		u := b.Usable()
		w.Position, w.Size = u.Pos(), u.Size()
		return
	}
	w.Position, w.Size = geom.Constrain(w.Position, w.Size, b)
}

// unminimize shows w again. In the auto-maximize band it is maximized with
// its geometry saved, like the windows Reflow maximized.
func unminimize(w *Window, b geom.Bounds, mode geom.Mode) {
	w.IsMinimized = false
	if mode.AutoMaximize && !w.IsMaximized {
		maximize(w, b)
		w.AutoMaximized = true
		return
	}
	fit(w, b)
}

func maximize(w *Window, b geom.Bounds) {
	if w.Saved == nil {
		w.Saved = &Geometry{Position: w.Position, Size: w.Size}
	}
	u := b.Usable()
	w.Position, w.Size = u.Pos(), u.Size()
	w.IsMaximized = true
	w.IsMinimized = false
}

func restore(w *Window, b geom.Bounds) {
	if w.Saved != nil {
		w.Position, w.Size = geom.Constrain(w.Saved.Position, w.Saved.Size, b)
	} else {
		w.Position, w.Size = geom.Constrain(w.Position, w.Size, b)
	}
	w.Saved = nil
	w.IsMaximized = false
	w.AutoMaximized = false
}

// Get returns a copy of the window with the given id.
func (r *Registry) Get(id string) (Window, bool) {
	w := r.find(id)
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// Has reports whether a window with the id is open.
func (r *Registry) Has(id string) bool {
	return r.find(id) != nil
}

// Len returns the number of open windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// Topmost returns the id of the highest visible window, or "" if none.
func (r *Registry) Topmost() string {
	top, id := 0, ""
	for _, w := range r.windows {
		if w.IsMinimized {
			continue
		}
		if id == "" || w.Z > top {
			top, id = w.Z, w.ID
		}
	}
	return id
}

// Snapshot returns copies of all open windows sorted by Z ascending, which
// is draw order.
func (r *Registry) Snapshot() []Window {
	out := make([]Window, 0, len(r.windows))
	for _, w := range r.windows {
		c := *w
		if w.Saved != nil {
			saved := *w.Saved
			c.Saved = &saved
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b Window) int { return a.Z - b.Z })
	return out
}

// Visible returns the ids of non-minimized windows from top to bottom.
func (r *Registry) Visible() []string {
	snap := r.Snapshot()
	ids := make([]string, 0, len(snap))
	for i := len(snap) - 1; i >= 0; i-- {
		if !snap[i].IsMinimized {
			ids = append(ids, snap[i].ID)
		}
	}
	return ids
}
