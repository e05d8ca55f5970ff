package input_test

import (
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

type fixture struct {
	reg     *window.Registry
	z       *window.ZOrder
	desktop geom.Bounds
	compact bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	z := window.NewZOrder(window.DefaultBaseZ)
	f := &fixture{
		z: z,
		reg: window.NewRegistry(z, func(geom.Size) geom.Point {
			return geom.Point{X: 100, Y: 100}
		}),
		desktop: geom.Bounds{
			Viewport: geom.Size{Width: 1280, Height: 800},
			TopBar:   40,
			Dock:     64,
			MinSize:  geom.Size{Width: 400, Height: 200},
		},
	}
	return f
}

func (f *fixture) bounds() geom.Bounds {
	b := f.desktop
	if f.compact {
		b.Compact = true
		b.Dock = 70
	}
	return b
}

func (f *fixture) open(t *testing.T, id string) window.Window {
	t.Helper()
	w, _ := f.reg.Open(window.Launch{ID: id, Size: geom.Size{Width: 600, Height: 500}},
		f.desktop, f.desktop, geom.Mode{DockHeight: 64})
	if w.Position != (geom.Point{X: 100, Y: 100}) {
		t.Fatalf("unexpected start position %+v", w.Position)
	}
	return w
}

func (f *fixture) get(t *testing.T, id string) window.Window {
	t.Helper()
	w, ok := f.reg.Get(id)
	if !ok {
		t.Fatalf("window %q missing", id)
	}
	return w
}

func pt(x, y int) geom.Point { return geom.Point{X: x, Y: y} }

// =============================================================================
// Drag Tests
// =============================================================================

func TestDragClampsToDesktop(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	d := input.NewDrag(f.reg, f.bounds)

	if !d.Start("about", pt(150, 110), input.RegionTitleBar) {
		t.Fatal("drag refused")
	}
	d.Move(pt(5150, 5110))
	d.End(pt(5150, 5110))

	got := f.get(t, "about").Position
	if want := pt(680, 276); got != want {
		t.Errorf("position = %+v, want %+v", got, want)
	}
	if d.InFlight() {
		t.Error("drag still in flight after End")
	}
}

func TestDragCoalescesMoves(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	d := input.NewDrag(f.reg, f.bounds)
	d.Start("about", pt(100, 100), input.RegionTitleBar)

	d.Move(pt(110, 110))
	d.Move(pt(120, 130))
	d.Move(pt(130, 150))
	if got := f.get(t, "about").Position; got != pt(100, 100) {
		t.Fatalf("moves applied before flush: %+v", got)
	}
	if !d.Flush() {
		t.Fatal("flush reported no change")
	}
	if got := f.get(t, "about").Position; got != pt(130, 150) {
		t.Errorf("position = %+v, want last pending move", got)
	}
	if d.Flush() {
		t.Error("second flush without new moves applied something")
	}
	if d.Phase() != input.Active {
		t.Errorf("phase = %v, want active", d.Phase())
	}
}

func TestDragStartRefused(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(f *fixture)
		id     string
		region input.Region
	}{
		{"control region", func(*fixture) {}, "about", input.RegionControl},
		{"resize handle", func(*fixture) {}, "about", input.RegionHandle},
		{"content", func(*fixture) {}, "about", input.RegionContent},
		{"unknown window", func(*fixture) {}, "ghost", input.RegionTitleBar},
		{"compact mode", func(f *fixture) { f.compact = true }, "about", input.RegionTitleBar},
		{"maximized", func(f *fixture) { f.reg.ToggleMaximize("about", f.desktop) }, "about", input.RegionTitleBar},
		{"minimized", func(f *fixture) { f.reg.Minimize("about", geom.Mode{}) }, "about", input.RegionTitleBar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.open(t, "about")
			tt.setup(f)
			d := input.NewDrag(f.reg, f.bounds)
			if d.Start(tt.id, pt(0, 0), tt.region) {
				t.Fatal("drag should be refused")
			}
			if d.InFlight() {
				t.Error("refused drag left a descriptor behind")
			}
		})
	}
}

func TestDragStartFocuses(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	f.open(t, "work")
	d := input.NewDrag(f.reg, f.bounds)

	d.Start("about", pt(120, 110), input.RegionTitleBar)
	if top := f.reg.Topmost(); top != "about" {
		t.Errorf("topmost = %q, want about", top)
	}
}

func TestDragTerminatesWhenWindowCloses(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	d := input.NewDrag(f.reg, f.bounds)
	d.Start("about", pt(120, 110), input.RegionTitleBar)

	f.reg.Close("about")
	d.Move(pt(200, 200))
	if d.Flush() {
		t.Error("flush applied to a closed window")
	}
	if d.InFlight() {
		t.Error("drag not terminated after the window vanished")
	}
}

func TestDragTerminatesOnCompact(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	d := input.NewDrag(f.reg, f.bounds)
	d.Start("about", pt(120, 110), input.RegionTitleBar)

	f.compact = true
	d.Move(pt(300, 300))
	d.Flush()
	if d.InFlight() {
		t.Error("drag survived the switch to compact mode")
	}
	if got := f.get(t, "about").Position; got != pt(100, 100) {
		t.Errorf("position changed to %+v", got)
	}
}

func TestDragCancelDiscardsPending(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	d := input.NewDrag(f.reg, f.bounds)
	d.Start("about", pt(120, 110), input.RegionTitleBar)
	d.Move(pt(400, 400))
	d.Cancel()

	if d.Flush() {
		t.Error("cancelled drag still flushed")
	}
	if got := f.get(t, "about").Position; got != pt(100, 100) {
		t.Errorf("position = %+v after cancel", got)
	}
}

// =============================================================================
// Frame Tests
// =============================================================================

func TestFrameLastWins(t *testing.T) {
	var fr input.Frame[int]
	if _, ok := fr.Take(); ok {
		t.Fatal("empty frame returned a value")
	}
	fr.Schedule(1)
	fr.Schedule(2)
	if !fr.Pending() {
		t.Fatal("frame not pending")
	}
	v, ok := fr.Take()
	if !ok || v != 2 {
		t.Errorf("Take() = %d, %v; want 2, true", v, ok)
	}
	if fr.Pending() {
		t.Error("frame still pending after Take")
	}
}
