// Package geom provides the geometry primitives and clamp functions that keep
// windows inside the visible desktop area.
//
// The desktop area is the viewport minus a fixed top bar and a bottom dock whose
// height depends on the layout mode. In compact mode every window is implicitly
// full-screen, so both clamp functions return the usable area regardless of
// their input.
package geom

// Point is a position in desktop units (pixels or terminal cells).
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair in desktop units.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// RectOf builds a Rect from a position and a size.
func RectOf(p Point, s Size) Rect {
	return Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// Pos returns the top-left corner.
func (r Rect) Pos() Point { return Point{X: r.X, Y: r.Y} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Bounds are the parameters every constraint is evaluated against.
type Bounds struct {
	Viewport Size
	TopBar   int
	Dock     int
	Compact  bool
	MinSize  Size
}

// Usable returns the area between the top bar and the dock. This is the
// geometry of a maximized (or compact-mode) window.
func (b Bounds) Usable() Rect {
	return Rect{
		X:      0,
		Y:      b.TopBar,
		Width:  max(0, b.Viewport.Width),
		Height: max(0, b.Viewport.Height-b.TopBar-b.Dock),
	}
}

// ConstrainPosition clamps a window's top-left corner so the window stays
// inside the desktop area for its size. Each axis is clamped independently.
// If s exceeds the viewport the lower bound wins, which can leave the result
// negative; callers apply ConstrainSize first.
func ConstrainPosition(p Point, s Size, b Bounds) Point {
	if b.Compact {
		return b.Usable().Pos()
	}
	return Point{
		X: clamp(p.X, 0, b.Viewport.Width-s.Width),
		Y: clamp(p.Y, b.TopBar, b.Viewport.Height-b.Dock-s.Height+b.TopBar),
	}
}

// ConstrainSize clamps a window's size to the space left between its position
// and the right/bottom edges of the desktop area, never going under the
// minimum size. Compact mode always yields the usable area.
func ConstrainSize(s Size, p Point, b Bounds) Size {
	if b.Compact {
		return b.Usable().Size()
	}
	maxW := b.Viewport.Width - p.X
	maxH := b.Viewport.Height - b.TopBar - b.Dock - (p.Y - b.TopBar)
	return Size{
		Width:  max(0, clampMin(s.Width, b.MinSize.Width, maxW)),
		Height: max(0, clampMin(s.Height, b.MinSize.Height, maxH)),
	}
}

// Constrain applies ConstrainSize then ConstrainPosition. The position's
// lower bounds are applied first, so the size is measured from where the
// window will sit.
func Constrain(p Point, s Size, b Bounds) (Point, Size) {
	if !b.Compact {
		p = Point{X: max(p.X, 0), Y: max(p.Y, b.TopBar)}
	}
	s = ConstrainSize(s, p, b)
	return ConstrainPosition(p, s, b), s
}

// clamp is max(lo, min(v, hi)): when hi < lo the lower bound wins.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// clampMin keeps v within [lo, hi] with hi taking precedence, so a window
// pressed against an edge shrinks below the minimum instead of overflowing.
func clampMin(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
