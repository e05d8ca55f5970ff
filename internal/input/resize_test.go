package input_test

import (
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
)

var desktopBounds = geom.Bounds{
	Viewport: geom.Size{Width: 1280, Height: 800},
	TopBar:   40,
	Dock:     64,
	MinSize:  geom.Size{Width: 400, Height: 200},
}

func state(dir input.Direction, x, y, w, h int) input.ResizeState {
	return input.ResizeState{
		Direction:     dir,
		PointerStart:  pt(0, 0),
		StartPosition: pt(x, y),
		StartSize:     geom.Size{Width: w, Height: h},
	}
}

// =============================================================================
// Geometry Tests
// =============================================================================

func TestResizeGeometry(t *testing.T) {
	tests := []struct {
		name     string
		st       input.ResizeState
		delta    geom.Point
		wantPos  geom.Point
		wantSize geom.Size
	}{
		{
			name:     "east grows",
			st:       state(input.DirE, 100, 100, 600, 500),
			delta:    pt(50, 0),
			wantPos:  pt(100, 100),
			wantSize: geom.Size{Width: 650, Height: 500},
		},
		{
			name:     "east stops at viewport",
			st:       state(input.DirE, 100, 100, 600, 500),
			delta:    pt(5000, 0),
			wantPos:  pt(100, 100),
			wantSize: geom.Size{Width: 1180, Height: 500},
		},
		{
			name:     "east shrink floors at minimum",
			st:       state(input.DirE, 100, 100, 600, 500),
			delta:    pt(-500, 0),
			wantPos:  pt(100, 100),
			wantSize: geom.Size{Width: 400, Height: 500},
		},
		{
			name:     "west keeps right edge anchored",
			st:       state(input.DirW, 300, 100, 600, 500),
			delta:    pt(-100, 0),
			wantPos:  pt(200, 100),
			wantSize: geom.Size{Width: 700, Height: 500},
		},
		{
			name:     "west past left edge absorbs excess",
			st:       state(input.DirW, 300, 100, 600, 500),
			delta:    pt(-1000, 0),
			wantPos:  pt(0, 100),
			wantSize: geom.Size{Width: 900, Height: 500},
		},
		{
			name:     "west shrink moves x by the lost width",
			st:       state(input.DirW, 300, 100, 600, 500),
			delta:    pt(400, 0),
			wantPos:  pt(500, 100),
			wantSize: geom.Size{Width: 400, Height: 500},
		},
		{
			name:     "south grows to the dock",
			st:       state(input.DirS, 100, 100, 600, 300),
			delta:    pt(0, 5000),
			wantPos:  pt(100, 100),
			wantSize: geom.Size{Width: 600, Height: 636},
		},
		{
			name:     "north stops at top bar",
			st:       state(input.DirN, 100, 100, 600, 300),
			delta:    pt(0, -500),
			wantPos:  pt(100, 40),
			wantSize: geom.Size{Width: 600, Height: 360},
		},
		{
			name:     "north within range",
			st:       state(input.DirN, 100, 200, 600, 300),
			delta:    pt(0, -50),
			wantPos:  pt(100, 150),
			wantSize: geom.Size{Width: 600, Height: 350},
		},
		{
			name:     "south east corner",
			st:       state(input.DirSE, 100, 100, 600, 300),
			delta:    pt(40, 30),
			wantPos:  pt(100, 100),
			wantSize: geom.Size{Width: 640, Height: 330},
		},
		{
			name:     "north west corner",
			st:       state(input.DirNW, 300, 200, 600, 300),
			delta:    pt(-20, -10),
			wantPos:  pt(280, 190),
			wantSize: geom.Size{Width: 620, Height: 310},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, size := input.ResizeGeometry(tt.st, tt.delta, desktopBounds)
			if pos != tt.wantPos || size != tt.wantSize {
				t.Errorf("got %+v %+v, want %+v %+v", pos, size, tt.wantPos, tt.wantSize)
			}
		})
	}
}

func TestResizeGeometryStaysValid(t *testing.T) {
	st := state(input.DirSE, 700, 300, 500, 400)
	for dx := -2000; dx <= 2000; dx += 250 {
		for dy := -2000; dy <= 2000; dy += 250 {
			pos, size := input.ResizeGeometry(st, pt(dx, dy), desktopBounds)
			if pos.X < 0 || pos.Y < desktopBounds.TopBar {
				t.Fatalf("delta (%d,%d): position %+v out of range", dx, dy, pos)
			}
			if pos.X+size.Width > desktopBounds.Viewport.Width {
				t.Fatalf("delta (%d,%d): right edge %d past viewport", dx, dy, pos.X+size.Width)
			}
			if pos.Y+size.Height > desktopBounds.Viewport.Height-desktopBounds.Dock {
				t.Fatalf("delta (%d,%d): bottom edge %d under dock", dx, dy, pos.Y+size.Height)
			}
		}
	}
}

// =============================================================================
// Controller Tests
// =============================================================================

func TestResizeControllerCommits(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	r := input.NewResize(f.reg, f.bounds)

	if !r.Start("about", input.DirSE, pt(700, 600)) {
		t.Fatal("resize refused")
	}
	r.Move(pt(720, 610))
	r.Move(pt(750, 620))
	r.End(pt(750, 620))

	w := f.get(t, "about")
	if w.Size != (geom.Size{Width: 650, Height: 520}) {
		t.Errorf("size = %+v, want 650x520", w.Size)
	}
	if r.InFlight() {
		t.Error("resize still in flight after End")
	}
}

func TestResizeRefused(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	r := input.NewResize(f.reg, f.bounds)

	if r.Start("about", input.DirNone, pt(0, 0)) {
		t.Error("resize accepted without a direction")
	}
	if r.Start("ghost", input.DirE, pt(0, 0)) {
		t.Error("resize accepted for unknown window")
	}

	f.reg.ToggleMaximize("about", f.desktop)
	if r.Start("about", input.DirE, pt(0, 0)) {
		t.Error("resize accepted for maximized window")
	}

	f.reg.ToggleMaximize("about", f.desktop)
	f.compact = true
	if r.Start("about", input.DirE, pt(0, 0)) {
		t.Error("resize accepted in compact mode")
	}
}

func TestResizeNoopOnceMaximized(t *testing.T) {
	f := newFixture(t)
	f.open(t, "about")
	r := input.NewResize(f.reg, f.bounds)
	r.Start("about", input.DirE, pt(700, 300))

	f.reg.ToggleMaximize("about", f.desktop)
	before := f.get(t, "about")
	r.Move(pt(800, 300))
	if r.Flush() {
		t.Error("resize applied to a maximized window")
	}
	if after := f.get(t, "about"); after.Size != before.Size {
		t.Errorf("size changed from %+v to %+v", before.Size, after.Size)
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"n", "s", "e", "w", "ne", "nw", "se", "sw"} {
		d, err := input.ParseDirection(s)
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", s, err)
		}
		if d.String() != s {
			t.Errorf("round trip %q -> %q", s, d.String())
		}
	}
	if _, err := input.ParseDirection("up"); err == nil {
		t.Error("expected error for invalid direction")
	}
}
