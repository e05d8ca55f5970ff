package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

// Dimensions is a width/height pair in metric units.
type Dimensions struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Size converts d to a geometry size.
func (d Dimensions) Size() geom.Size {
	return geom.Size{Width: d.Width, Height: d.Height}
}

// Offset is an x/y pair in metric units.
type Offset struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// Point converts o to a geometry point.
func (o Offset) Point() geom.Point {
	return geom.Point{X: o.X, Y: o.Y}
}

// Metrics holds every size, breakpoint and timing the desktop engine uses.
// Units are whatever the host draws in: pixels for the browser-compatible
// set, cells for the terminal.
type Metrics struct {
	Units string `toml:"units"`

	TopBar      int `toml:"top_bar"`
	DockDesktop int `toml:"dock_desktop"`
	DockCompact int `toml:"dock_compact"`
	DockSlot    int `toml:"dock_slot"`

	MinWindow     Dimensions            `toml:"min_window"`
	DefaultWindow Dimensions            `toml:"default_window"`
	WindowSizes   map[string]Dimensions `toml:"window_sizes"` // Per dock id

	CompactBreakpoint      int `toml:"compact_breakpoint"`
	CompactBuffer          int `toml:"compact_buffer"`
	AutoMaximizeBreakpoint int `toml:"auto_maximize_breakpoint"`

	BaseZ          int    `toml:"base_z"`
	PlacementBase  Offset `toml:"placement_base"`
	PlacementRange Offset `toml:"placement_range"`

	// Desktop icons
	DragThreshold    float64    `toml:"drag_threshold"`
	IconMarginX      int        `toml:"icon_margin_x"`
	IconMarginTop    int        `toml:"icon_margin_top"`
	IconMarginBottom int        `toml:"icon_margin_bottom"`
	DoubleClickMS    int        `toml:"double_click_ms"`
	ClickSuppressMS  int        `toml:"click_suppress_ms"`
	IconHit          Dimensions `toml:"icon_hit"`

	// Bagel icon layout
	SmallScreen      int     `toml:"small_screen"`
	RadiusScaleSmall float64 `toml:"radius_scale_small"`
	RadiusScaleLarge float64 `toml:"radius_scale_large"`
	RadiusMax        float64 `toml:"radius_max"`
	RadiusMinX       float64 `toml:"radius_min_x"`
	RadiusMinY       float64 `toml:"radius_min_y"`
	RadiusStretchY   float64 `toml:"radius_stretch_y"`
	CellAspect       float64 `toml:"cell_aspect"` // Height of one unit relative to its width
	RelativeDistance float64 `toml:"relative_distance"`

	// Sticky notes
	Sticky             Dimensions        `toml:"sticky"`
	StickyMargin       int               `toml:"sticky_margin"`
	StickyBottomOffset int               `toml:"sticky_bottom_offset"`
	StickyOrigins      map[string]Offset `toml:"sticky_origins"`

	// Window chrome used for hit testing
	TitleBar     int `toml:"title_bar"`
	HandleSize   int `toml:"handle_size"`
	ControlWidth int `toml:"control_width"`
}

// PixelMetrics returns the browser-compatible metric set.
func PixelMetrics() Metrics {
	return Metrics{
		Units:       "pixel",
		TopBar:      40,
		DockDesktop: 64,
		DockCompact: 70,
		DockSlot:    56,

		MinWindow:     Dimensions{Width: 400, Height: 200},
		DefaultWindow: Dimensions{Width: 600, Height: 500},
		WindowSizes:   map[string]Dimensions{"music": {Width: 400, Height: 600}},

		CompactBreakpoint:      768,
		CompactBuffer:          5,
		AutoMaximizeBreakpoint: 1024,

		BaseZ:          1000,
		PlacementBase:  Offset{X: 100, Y: 80},
		PlacementRange: Offset{X: 200, Y: 100},

		DragThreshold:    5,
		IconMarginX:      32,
		IconMarginTop:    72,
		IconMarginBottom: 32,
		DoubleClickMS:    500,
		ClickSuppressMS:  100,
		IconHit:          Dimensions{Width: 64, Height: 80},

		SmallScreen:      600,
		RadiusScaleSmall: 0.15,
		RadiusScaleLarge: 0.21,
		RadiusMax:        200,
		RadiusMinX:       60,
		RadiusMinY:       65,
		RadiusStretchY:   1.05,
		CellAspect:       1,
		RelativeDistance: 70,

		Sticky:             Dimensions{Width: 264, Height: 208},
		StickyMargin:       16,
		StickyBottomOffset: 80,
		StickyOrigins: map[string]Offset{
			"analytics": {X: 16, Y: 64},
			"privacy":   {X: 116, Y: 264},
		},

		TitleBar:     32,
		HandleSize:   6,
		ControlWidth: 20,
	}
}

// TerminalMetrics returns the metric set for a cell grid.
func TerminalMetrics() Metrics {
	return Metrics{
		Units:       "cell",
		TopBar:      1,
		DockDesktop: 3,
		DockCompact: 3,
		DockSlot:    7,

		MinWindow:     Dimensions{Width: 28, Height: 8},
		DefaultWindow: Dimensions{Width: 56, Height: 16},
		WindowSizes:   map[string]Dimensions{"music": {Width: 36, Height: 18}},

		CompactBreakpoint:      80,
		CompactBuffer:          0,
		AutoMaximizeBreakpoint: 100,

		BaseZ:          1000,
		PlacementBase:  Offset{X: 4, Y: 2},
		PlacementRange: Offset{X: 30, Y: 6},

		DragThreshold:    1,
		IconMarginX:      6,
		IconMarginTop:    3,
		IconMarginBottom: 2,
		DoubleClickMS:    500,
		ClickSuppressMS:  100,
		IconHit:          Dimensions{Width: 12, Height: 3},

		SmallScreen:      60,
		RadiusScaleSmall: 0.15,
		RadiusScaleLarge: 0.21,
		RadiusMax:        40,
		RadiusMinX:       20,
		RadiusMinY:       20,
		RadiusStretchY:   1.05,
		CellAspect:       2,
		RelativeDistance: 14,

		Sticky:             Dimensions{Width: 26, Height: 7},
		StickyMargin:       1,
		StickyBottomOffset: 4,
		StickyOrigins: map[string]Offset{
			"analytics": {X: 2, Y: 3},
			"privacy":   {X: 12, Y: 11},
		},

		TitleBar:     1,
		HandleSize:   1,
		ControlWidth: 3,
	}
}

// MetricsByName returns the named built-in metric set.
func MetricsByName(name string) (Metrics, error) {
	switch name {
	case "pixel", "px", "browser":
		return PixelMetrics(), nil
	case "cell", "terminal", "":
		return TerminalMetrics(), nil
	}
	return Metrics{}, fmt.Errorf("%w: unknown metrics %q", ErrInvalidConfig, name)
}

// Validate reports metrics that would make the clamp functions degenerate.
func (m Metrics) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}
	check(m.TopBar >= 0, "top_bar must not be negative")
	check(m.DockDesktop >= 0 && m.DockCompact >= 0, "dock heights must not be negative")
	check(m.DockSlot > 0, "dock_slot must be positive")
	check(m.MinWindow.Width > 0 && m.MinWindow.Height > 0, "min_window must be positive")
	check(m.DefaultWindow.Width >= m.MinWindow.Width && m.DefaultWindow.Height >= m.MinWindow.Height,
		"default_window must be at least min_window")
	check(m.AutoMaximizeBreakpoint >= m.CompactBreakpoint, "auto_maximize_breakpoint must be >= compact_breakpoint")
	check(m.DragThreshold >= 0, "drag_threshold must not be negative")
	check(m.DoubleClickMS > 0, "double_click_ms must be positive")
	check(m.Sticky.Width > 0 && m.Sticky.Height > 0, "sticky size must be positive")
	check(m.CellAspect > 0, "cell_aspect must be positive")
	check(m.HandleSize >= 0 && m.TitleBar > 0, "title_bar must be positive and handle_size not negative")
	return errors.Join(errs...)
}

// Layout returns the geometry layout the responsive detector works from.
func (m Metrics) Layout() geom.Layout {
	return geom.Layout{
		TopBar:      m.TopBar,
		DockDesktop: m.DockDesktop,
		DockCompact: m.DockCompact,
		MinSize:     m.MinWindow.Size(),
		Breakpoints: geom.Breakpoints{
			Compact:      m.CompactBreakpoint,
			Buffer:       m.CompactBuffer,
			AutoMaximize: m.AutoMaximizeBreakpoint,
		},
	}
}

// WindowSize returns the preferred window size for a dock id.
func (m Metrics) WindowSize(id string) geom.Size {
	if d, ok := m.WindowSizes[id]; ok {
		return d.Size()
	}
	return m.DefaultWindow.Size()
}

// DoubleClick returns the double-click window.
func (m Metrics) DoubleClick() time.Duration {
	return time.Duration(m.DoubleClickMS) * time.Millisecond
}

// ClickSuppress returns how long a finished icon drag keeps suppressing
// clicks.
func (m Metrics) ClickSuppress() time.Duration {
	return time.Duration(m.ClickSuppressMS) * time.Millisecond
}
