package window

import (
	"math/rand/v2"
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

var (
	desktopMode = geom.Mode{DockHeight: 64}
	compactMode = geom.Mode{Compact: true, AutoMaximize: true, DockHeight: 70}
)

func bounds(compact bool) geom.Bounds {
	b := geom.Bounds{
		Viewport: geom.Size{Width: 1280, Height: 800},
		TopBar:   40,
		Dock:     64,
		MinSize:  geom.Size{Width: 400, Height: 200},
	}
	if compact {
		b.Viewport.Width = 600
		b.Dock = 70
		b.Compact = true
	}
	return b
}

func fixedPlacer(p geom.Point) Placer {
	return func(geom.Size) geom.Point { return p }
}

func newTestRegistry() *Registry {
	return NewRegistry(NewZOrder(DefaultBaseZ), fixedPlacer(geom.Point{X: 50, Y: 50}))
}

func launch(id string) Launch {
	return Launch{ID: id, Title: id, Size: geom.Size{Width: 600, Height: 500}}
}

func openDesktop(r *Registry, id string) Window {
	w, _ := r.Open(launch(id), bounds(false), bounds(false), desktopMode)
	return w
}

// =============================================================================
// Lifecycle Tests
// =============================================================================

func TestOpenThenClose(t *testing.T) {
	r := newTestRegistry()

	w, outcome := r.Open(launch("about"), bounds(false), bounds(false), desktopMode)
	if outcome != OutcomeCreated {
		t.Fatalf("expected created, got %v", outcome)
	}
	if !w.IsOpen || r.Len() != 1 {
		t.Fatalf("expected one open window, got %d (open=%v)", r.Len(), w.IsOpen)
	}

	if !r.Close("about") {
		t.Error("expected Close to report removal")
	}
	if r.Has("about") || r.Len() != 0 {
		t.Error("expected registry to be empty after close")
	}
	if r.Close("about") {
		t.Error("expected second Close to be a no-op")
	}
}

func TestOpenIsUniquePerID(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "about")
	_, outcome := r.Open(launch("about"), bounds(false), bounds(false), desktopMode)
	if outcome != OutcomeFocused {
		t.Errorf("expected focused, got %v", outcome)
	}
	if r.Len() != 1 {
		t.Errorf("expected one window, got %d", r.Len())
	}
}

func TestOpenRunsContentFactoryOnce(t *testing.T) {
	r := newTestRegistry()
	calls := 0
	l := launch("blog")
	l.Content = func() any { calls++; return "payload" }

	r.Open(l, bounds(false), bounds(false), desktopMode)
	r.Open(l, bounds(false), bounds(false), desktopMode)

	if calls != 1 {
		t.Errorf("content factory called %d times, want 1", calls)
	}
	w, _ := r.Get("blog")
	if w.Content != "payload" {
		t.Errorf("unexpected content %v", w.Content)
	}
}

func TestOpenRestoresMinimized(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "work")
	openDesktop(r, "music")
	r.Minimize("work", desktopMode)

	w, outcome := r.Open(launch("work"), bounds(false), bounds(false), desktopMode)
	if outcome != OutcomeRestored {
		t.Fatalf("expected restored, got %v", outcome)
	}
	if w.IsMinimized {
		t.Error("expected window to be visible")
	}
	if r.Topmost() != "work" {
		t.Errorf("expected work on top, got %q", r.Topmost())
	}
}

func TestOpenCompactIsFullScreen(t *testing.T) {
	r := newTestRegistry()
	b := bounds(true)
	desktop := b
	desktop.Compact = false
	desktop.Dock = 64

	w, _ := r.Open(launch("about"), b, desktop, compactMode)

	if w.Position != (geom.Point{X: 0, Y: 40}) || w.Size != (geom.Size{Width: 600, Height: 690}) {
		t.Errorf("unexpected compact geometry %v %v", w.Position, w.Size)
	}
	if !w.IsMaximized || !w.AutoMaximized || w.Saved == nil {
		t.Errorf("expected auto-maximized with saved geometry, got %+v", w)
	}
}

func TestRandomPlacerStaysInBand(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	place := RandomPlacer(Scatter{Base: geom.Point{X: 100, Y: 80}, Spread: geom.Point{X: 200, Y: 100}}, rng)
	for range 100 {
		p := place(geom.Size{})
		if p.X < 100 || p.X >= 300 || p.Y < 80 || p.Y >= 180 {
			t.Fatalf("placement %v outside band", p)
		}
	}
}

// =============================================================================
// Stacking Tests
// =============================================================================

func TestDoubleFocusOrdering(t *testing.T) {
	r := newTestRegistry()

	work := openDesktop(r, "work")
	music := openDesktop(r, "music")
	if work.Z != 1001 || music.Z != 1002 {
		t.Fatalf("unexpected z values work=%d music=%d", work.Z, music.Z)
	}

	r.Focus("work")
	work, _ = r.Get("work")
	music, _ = r.Get("music")
	if work.Z != 1003 || work.Z <= music.Z {
		t.Errorf("expected work=1003 above music=%d, got %d", music.Z, work.Z)
	}
}

func TestStackingMonotonic(t *testing.T) {
	r := newTestRegistry()
	ids := []string{"about", "work", "blog", "music"}
	for _, id := range ids {
		openDesktop(r, id)
	}

	sequence := []string{"blog", "about", "about", "music", "work", "blog"}
	for _, id := range sequence {
		r.Focus(id)
		last, _ := r.Get(id)
		for _, w := range r.Snapshot() {
			if w.ID != id && w.Z >= last.Z {
				t.Fatalf("after focusing %s, %s has z %d >= %d", id, w.ID, w.Z, last.Z)
			}
		}
	}

	seen := map[int]bool{}
	for _, w := range r.Snapshot() {
		if seen[w.Z] {
			t.Errorf("duplicate z %d", w.Z)
		}
		seen[w.Z] = true
	}
}

func TestSnapshotSortedByZ(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "a")
	openDesktop(r, "b")
	openDesktop(r, "c")
	r.Focus("a")

	snap := r.Snapshot()
	want := []string{"b", "c", "a"}
	for i, w := range snap {
		if w.ID != want[i] {
			t.Errorf("snapshot[%d] = %s, want %s", i, w.ID, want[i])
		}
	}
	if got := r.Visible(); got[0] != "a" {
		t.Errorf("expected a first in visible order, got %v", got)
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	r := newTestRegistry()
	if r.Focus("ghost") || r.Minimize("ghost", desktopMode) ||
		r.ToggleMaximize("ghost", bounds(false)) || r.Close("ghost") ||
		r.SetGeometry("ghost", geom.Point{}, geom.Size{}) {
		t.Error("expected all operations on unknown ids to report false")
	}
}

// =============================================================================
// Minimize / Maximize Tests
// =============================================================================

func TestMinimizeRules(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "about")

	if r.Minimize("about", compactMode) {
		t.Error("expected minimize to be refused in compact mode")
	}

	r.ToggleMaximize("about", bounds(false))
	if r.Minimize("about", desktopMode) {
		t.Error("expected minimize to be refused while maximized")
	}

	r.ToggleMaximize("about", bounds(false))
	if !r.Minimize("about", desktopMode) {
		t.Fatal("expected minimize to succeed")
	}
	w, _ := r.Get("about")
	if !w.IsMinimized || w.IsMaximized {
		t.Errorf("unexpected flags %+v", w)
	}
	if w.Position != (geom.Point{X: 50, Y: 50}) {
		t.Errorf("expected geometry retained, got %v", w.Position)
	}
}

func TestMaximizeRoundTrip(t *testing.T) {
	r := newTestRegistry()
	before := openDesktop(r, "about")

	r.ToggleMaximize("about", bounds(false))
	w, _ := r.Get("about")
	if !w.IsMaximized || w.Saved == nil {
		t.Fatalf("expected maximized with saved geometry, got %+v", w)
	}
	if w.Position != (geom.Point{X: 0, Y: 40}) || w.Size != (geom.Size{Width: 1280, Height: 696}) {
		t.Errorf("unexpected maximized geometry %v %v", w.Position, w.Size)
	}

	r.ToggleMaximize("about", bounds(false))
	w, _ = r.Get("about")
	if w.IsMaximized || w.Saved != nil {
		t.Errorf("expected restored without saved geometry, got %+v", w)
	}
	if w.Position != before.Position || w.Size != before.Size {
		t.Errorf("round trip changed geometry: %v %v -> %v %v",
			before.Position, before.Size, w.Position, w.Size)
	}
}

func TestMaximizeRefusedInCompact(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "about")
	if r.ToggleMaximize("about", bounds(true)) {
		t.Error("expected maximize to be refused in compact mode")
	}
}

func TestMinimizedAndMaximizedExclusive(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "about")
	ops := []func(){
		func() { r.Minimize("about", desktopMode) },
		func() { r.ToggleMaximize("about", bounds(false)) },
		func() { r.Minimize("about", desktopMode) },
		func() { r.Restore("about", bounds(false), desktopMode) },
		func() { r.ToggleMaximize("about", bounds(false)) },
		func() { r.Reflow(bounds(true), compactMode) },
		func() { r.Reflow(bounds(false), desktopMode) },
	}
	for i, op := range ops {
		op()
		w, _ := r.Get("about")
		if w.IsMinimized && w.IsMaximized {
			t.Fatalf("step %d: window both minimized and maximized", i)
		}
		if (w.Saved != nil) != w.IsMaximized {
			t.Fatalf("step %d: saved=%v but maximized=%v", i, w.Saved != nil, w.IsMaximized)
		}
	}
}

// =============================================================================
// Reflow Tests
// =============================================================================

func TestResponsiveMaximizeRestore(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "about")

	r.Reflow(bounds(true), compactMode)
	w, _ := r.Get("about")
	if !w.IsMaximized || !w.AutoMaximized {
		t.Fatalf("expected auto-maximized, got %+v", w)
	}
	if w.Position != (geom.Point{X: 0, Y: 40}) || w.Size != (geom.Size{Width: 600, Height: 690}) {
		t.Errorf("unexpected compact geometry %v %v", w.Position, w.Size)
	}

	r.Reflow(bounds(false), desktopMode)
	w, _ = r.Get("about")
	if w.IsMaximized || w.AutoMaximized || w.Saved != nil {
		t.Errorf("expected restored window, got %+v", w)
	}
	if w.Position != (geom.Point{X: 50, Y: 50}) || w.Size != (geom.Size{Width: 600, Height: 500}) {
		t.Errorf("expected (50,50,600,500), got %v %v", w.Position, w.Size)
	}
}

func TestReflowKeepsUserMaximize(t *testing.T) {
	r := newTestRegistry()
	openDesktop(r, "about")
	r.ToggleMaximize("about", bounds(false))

	r.Reflow(bounds(true), compactMode)
	r.Reflow(bounds(false), desktopMode)

	w, _ := r.Get("about")
	if !w.IsMaximized || w.AutoMaximized {
		t.Errorf("expected user maximize to survive reflow, got %+v", w)
	}
}

func TestFitClampsToShrunkViewport(t *testing.T) {
	r := NewRegistry(nil, fixedPlacer(geom.Point{X: 600, Y: 200}))
	openDesktop(r, "about")

	b := bounds(false)
	b.Viewport = geom.Size{Width: 1100, Height: 700}
	r.Fit(b)

	w, _ := r.Get("about")
	if w.Position.X+w.Size.Width > 1100 {
		t.Errorf("window overflows shrunk viewport: %v %v", w.Position, w.Size)
	}
	if got := geom.ConstrainPosition(w.Position, w.Size, b); got != w.Position {
		t.Errorf("window not within constraints: %v vs %v", w.Position, got)
	}
}

func TestMinimizedKeepsGeometryAcrossCompact(t *testing.T) {
	r := newTestRegistry()
	before := openDesktop(r, "about")
	r.Minimize("about", desktopMode)

	r.Reflow(bounds(true), compactMode)
	w, _ := r.Get("about")
	if !w.IsMinimized || w.IsMaximized {
		t.Fatalf("minimized window changed state in compact mode: %+v", w)
	}
	if w.Position != before.Position || w.Size != before.Size {
		t.Errorf("compact reflow moved a minimized window: %v %v", w.Position, w.Size)
	}

	r.Fit(bounds(true))
	r.Reflow(bounds(false), desktopMode)
	w, _ = r.Get("about")
	if w.Position != before.Position || w.Size != before.Size {
		t.Errorf("desktop geometry lost: got %v %v, want %v %v",
			w.Position, w.Size, before.Position, before.Size)
	}
}

func TestRestoreInCompactMaximizes(t *testing.T) {
	r := newTestRegistry()
	before := openDesktop(r, "about")
	r.Minimize("about", desktopMode)
	r.Reflow(bounds(true), compactMode)

	if !r.Restore("about", bounds(true), compactMode) {
		t.Fatal("expected restore to succeed")
	}
	w, _ := r.Get("about")
	if w.IsMinimized || !w.IsMaximized || !w.AutoMaximized {
		t.Fatalf("expected an auto-maximized window, got %+v", w)
	}
	if w.Position != (geom.Point{X: 0, Y: 40}) || w.Size != (geom.Size{Width: 600, Height: 690}) {
		t.Errorf("unexpected compact geometry %v %v", w.Position, w.Size)
	}

	r.Reflow(bounds(false), desktopMode)
	w, _ = r.Get("about")
	if w.IsMaximized || w.Position != before.Position || w.Size != before.Size {
		t.Errorf("expected desktop geometry back, got %+v", w)
	}
}
