package geom

// Breakpoints are the viewport widths at which the layout changes.
type Breakpoints struct {
	// Compact is the widest viewport still laid out in compact mode.
	Compact int
	// Buffer widens the compact band to avoid flicker around the breakpoint.
	Buffer int
	// AutoMaximize is the widest viewport on which windows are maximized
	// automatically. It is never narrower than the compact band.
	AutoMaximize int
}

// Mode is the derived responsive layout state.
type Mode struct {
	Compact      bool `json:"compact" yaml:"compact"`
	AutoMaximize bool `json:"auto_maximize" yaml:"auto_maximize"`
	DockHeight   int  `json:"dock_height" yaml:"dock_height"`
}

// Layout holds the fixed chrome sizes the detector derives bounds from.
type Layout struct {
	TopBar      int
	DockDesktop int
	DockCompact int
	MinSize     Size
	Breakpoints Breakpoints
}

// Detector tracks the viewport and derives the responsive mode from it. It
// owns no window state; every controller consults it.
type Detector struct {
	layout   Layout
	viewport Size
	mode     Mode
}

// NewDetector creates a detector and classifies the initial viewport.
func NewDetector(layout Layout, viewport Size) *Detector {
	d := &Detector{layout: layout}
	d.viewport = viewport
	d.mode = d.classify(viewport.Width)
	return d
}

// Update records a new viewport and reports whether the mode changed.
func (d *Detector) Update(width, height int) (Mode, bool) {
	d.viewport = Size{Width: max(0, width), Height: max(0, height)}
	next := d.classify(d.viewport.Width)
	changed := next != d.mode
	d.mode = next
	return next, changed
}

func (d *Detector) classify(width int) Mode {
	bp := d.layout.Breakpoints
	compact := width <= bp.Compact+bp.Buffer
	m := Mode{
		Compact:      compact,
		AutoMaximize: compact || width <= bp.AutoMaximize,
		DockHeight:   d.layout.DockDesktop,
	}
	if compact {
		m.DockHeight = d.layout.DockCompact
	}
	return m
}

// Mode returns the current responsive mode.
func (d *Detector) Mode() Mode { return d.mode }

// Viewport returns the last recorded viewport.
func (d *Detector) Viewport() Size { return d.viewport }

// Bounds returns the constraint parameters for the current viewport and mode.
func (d *Detector) Bounds() Bounds {
	return Bounds{
		Viewport: d.viewport,
		TopBar:   d.layout.TopBar,
		Dock:     d.mode.DockHeight,
		Compact:  d.mode.Compact,
		MinSize:  d.layout.MinSize,
	}
}

// DesktopBounds returns the bounds the current viewport would have outside
// compact mode. New windows opened on a small screen save this geometry so
// they can be restored when the viewport grows.
func (d *Detector) DesktopBounds() Bounds {
	b := d.Bounds()
	b.Compact = false
	b.Dock = d.layout.DockDesktop
	return b
}
