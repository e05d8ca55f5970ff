package geom

import "testing"

func desktopBounds() Bounds {
	return Bounds{
		Viewport: Size{Width: 1280, Height: 800},
		TopBar:   40,
		Dock:     64,
		MinSize:  Size{Width: 400, Height: 200},
	}
}

// =============================================================================
// Constraint Tests
// =============================================================================

func TestConstrainPosition(t *testing.T) {
	b := desktopBounds()
	size := Size{Width: 600, Height: 500}

	tests := []struct {
		name string
		in   Point
		want Point
	}{
		{"inside", Point{100, 100}, Point{100, 100}},
		{"far bottom right", Point{5100, 5100}, Point{680, 276}},
		{"negative", Point{-50, -50}, Point{0, 40}},
		{"under top bar", Point{10, 10}, Point{10, 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConstrainPosition(tt.in, size, b)
			if got != tt.want {
				t.Errorf("ConstrainPosition(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConstrainPositionCompact(t *testing.T) {
	b := desktopBounds()
	b.Compact = true
	got := ConstrainPosition(Point{300, 300}, Size{600, 500}, b)
	if got != (Point{0, 40}) {
		t.Errorf("compact position = %v, want {0 40}", got)
	}
}

func TestConstrainSize(t *testing.T) {
	b := desktopBounds()

	tests := []struct {
		name string
		size Size
		pos  Point
		want Size
	}{
		{"fits", Size{600, 500}, Point{100, 100}, Size{600, 500}},
		{"below minimum", Size{10, 10}, Point{100, 100}, Size{400, 200}},
		{"too wide", Size{2000, 300}, Point{100, 100}, Size{1180, 300}},
		{"too tall", Size{500, 2000}, Point{0, 40}, Size{500, 696}},
		{"edge beats minimum", Size{500, 300}, Point{1000, 40}, Size{280, 300}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConstrainSize(tt.size, tt.pos, b)
			if got != tt.want {
				t.Errorf("ConstrainSize(%v, %v) = %v, want %v", tt.size, tt.pos, got, tt.want)
			}
		})
	}
}

func TestConstrainSizeCompact(t *testing.T) {
	b := desktopBounds()
	b.Compact = true
	b.Dock = 70
	got := ConstrainSize(Size{100, 100}, Point{5, 5}, b)
	if got != (Size{1280, 690}) {
		t.Errorf("compact size = %v, want {1280 690}", got)
	}
}

func TestConstrainIdempotent(t *testing.T) {
	points := []Point{{-100, -100}, {0, 0}, {640, 400}, {5000, 5000}, {1279, 799}}
	sizes := []Size{{0, 0}, {400, 200}, {600, 500}, {5000, 5000}}

	for _, compact := range []bool{false, true} {
		b := desktopBounds()
		b.Compact = compact
		for _, p := range points {
			for _, s := range sizes {
				once := ConstrainPosition(p, s, b)
				if twice := ConstrainPosition(once, s, b); twice != once {
					t.Errorf("position not idempotent: %v -> %v -> %v (compact=%v)", p, once, twice, compact)
				}
				sOnce := ConstrainSize(s, p, b)
				if sTwice := ConstrainSize(sOnce, p, b); sTwice != sOnce {
					t.Errorf("size not idempotent: %v -> %v -> %v (compact=%v)", s, sOnce, sTwice, compact)
				}
				if sOnce.Width < 0 || sOnce.Height < 0 {
					t.Errorf("negative size %v", sOnce)
				}
			}
		}
	}
}

func TestConstrainKeepsWindowOnScreen(t *testing.T) {
	points := []Point{{-50, 0}, {-100, -100}, {0, 0}, {640, 400}, {5000, 5000}, {1279, 799}}
	sizes := []Size{{0, 0}, {400, 200}, {600, 500}, {5000, 5000}}

	for _, compact := range []bool{false, true} {
		b := desktopBounds()
		b.Compact = compact
		for _, p := range points {
			for _, s := range sizes {
				p1, s1 := Constrain(p, s, b)
				if p2, s2 := Constrain(p1, s1, b); p2 != p1 || s2 != s1 {
					t.Errorf("Constrain(%v, %v) not idempotent: (%v %v) -> (%v %v) (compact=%v)",
						p, s, p1, s1, p2, s2, compact)
				}
				if p1.X < 0 || p1.X+s1.Width > b.Viewport.Width {
					t.Errorf("Constrain(%v, %v) = (%v %v) overflows horizontally", p, s, p1, s1)
				}
				if p1.Y < b.TopBar {
					t.Errorf("Constrain(%v, %v) = (%v %v) sits above the top bar", p, s, p1, s1)
				}
				if ConstrainPosition(p1, s1, b) != p1 || ConstrainSize(s1, p1, b) != s1 {
					t.Errorf("Constrain(%v, %v) = (%v %v) violates the constraints", p, s, p1, s1)
				}
			}
		}
	}

	p, s := Constrain(Point{-50, 0}, Size{5000, 5000}, desktopBounds())
	if p != (Point{0, 40}) || s != (Size{1280, 696}) {
		t.Errorf("oversized window at (-50, 0) = (%v %v), want (0,40) 1280x696", p, s)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	if !r.Contains(Point{10, 10}) {
		t.Error("expected top-left corner to be inside")
	}
	if r.Contains(Point{15, 12}) {
		t.Error("expected right edge to be exclusive")
	}
}

// =============================================================================
// Responsive Detector Tests
// =============================================================================

func testLayout() Layout {
	return Layout{
		TopBar:      40,
		DockDesktop: 64,
		DockCompact: 70,
		MinSize:     Size{400, 200},
		Breakpoints: Breakpoints{Compact: 768, Buffer: 5, AutoMaximize: 1024},
	}
}

func TestDetectorClassify(t *testing.T) {
	tests := []struct {
		width      int
		compact    bool
		autoMax    bool
		dockHeight int
	}{
		{375, true, true, 70},
		{768, true, true, 70},
		{773, true, true, 70},
		{774, false, true, 64},
		{1024, false, true, 64},
		{1025, false, false, 64},
		{1920, false, false, 64},
	}

	for _, tt := range tests {
		d := NewDetector(testLayout(), Size{tt.width, 800})
		m := d.Mode()
		if m.Compact != tt.compact || m.AutoMaximize != tt.autoMax || m.DockHeight != tt.dockHeight {
			t.Errorf("width %d: got %+v, want compact=%v auto=%v dock=%d",
				tt.width, m, tt.compact, tt.autoMax, tt.dockHeight)
		}
	}
}

func TestDetectorUpdateReportsChange(t *testing.T) {
	d := NewDetector(testLayout(), Size{1280, 800})

	if _, changed := d.Update(1200, 800); changed {
		t.Error("expected no mode change between two desktop widths")
	}
	m, changed := d.Update(600, 800)
	if !changed || !m.Compact {
		t.Errorf("expected change into compact, got %+v changed=%v", m, changed)
	}
	b := d.Bounds()
	if !b.Compact || b.Dock != 70 || b.Viewport.Width != 600 {
		t.Errorf("unexpected bounds %+v", b)
	}
	if db := d.DesktopBounds(); db.Compact || db.Dock != 64 {
		t.Errorf("unexpected desktop bounds %+v", db)
	}
}
