// Package desktop wires the window registry, dock, icons, sticky notes and
// pointer controllers into a single desktop driven by discrete events.
//
// A Desktop is not safe for concurrent use. Hosts (the TUI model, the SSH
// session, the tape runner) own one each and call it from a single loop.
package desktop

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/dock"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/icons"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/sticky"
	"github.com/Gaurav-Gosain/deskfolio/internal/window"
)

// Options configure a Desktop. Zero values fall back to the terminal metrics
// and the default dock and notes.
type Options struct {
	Metrics  config.Metrics
	Items    []config.DockItemConfig
	Stickies []config.StickyConfig
	Viewport geom.Size

	// Placer picks where new windows appear. Nil scatters them randomly.
	Placer window.Placer
	// Rand seeds the default placer.
	Rand *rand.Rand
	// Clock drives icon double-click timing. Nil uses time.Now.
	Clock func() time.Time
	// Content builds the payload of a new window.
	Content func(item config.DockItemConfig) any
	OnEvent func(Event)
	Logger  *slog.Logger
}

// Desktop is the interaction engine.
type Desktop struct {
	metrics config.Metrics
	logger  *slog.Logger
	onEvent func(Event)
	content func(item config.DockItemConfig) any
	items   map[string]config.DockItemConfig

	detector *geom.Detector
	z        *window.ZOrder
	windows  *window.Registry
	dock     *dock.Dock
	icons    *icons.Controller
	stickies *sticky.Board
	drag     *input.Drag
	resize   *input.Resize

	press press
}

// New creates a desktop laid out for opts.Viewport.
func New(opts Options) *Desktop {
	m := opts.Metrics
	if m.Units == "" {
		m = config.TerminalMetrics()
	}
	items := opts.Items
	if items == nil {
		items = config.DefaultConfig().Dock
	}
	seeds := opts.Stickies
	if seeds == nil {
		seeds = config.DefaultConfig().Stickies
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	content := opts.Content
	if content == nil {
		content = func(item config.DockItemConfig) any { return item.Body }
	}
	placer := opts.Placer
	if placer == nil {
		placer = window.RandomPlacer(window.Scatter{
			Base:   m.PlacementBase.Point(),
			Spread: m.PlacementRange.Point(),
		}, opts.Rand)
	}

	d := &Desktop{
		metrics:  m,
		logger:   logger.With("component", "desktop"),
		onEvent:  opts.OnEvent,
		content:  content,
		items:    make(map[string]config.DockItemConfig, len(items)),
		detector: geom.NewDetector(m.Layout(), opts.Viewport),
		z:        window.NewZOrder(m.BaseZ),
	}
	d.windows = window.NewRegistry(d.z, placer)

	dockItems := make([]dock.Item, 0, len(items))
	for _, it := range items {
		d.items[it.ID] = it
		dockItems = append(dockItems, dock.Item{ID: it.ID, Title: it.Title, Glyph: it.Glyph})
	}
	d.dock = dock.New(dockItems, m.DockSlot)

	d.icons = icons.New(d.dock.IDs(), iconOptions(m), opts.Clock)
	d.icons.OnActivate = func(id string) {
		d.emit(EventActivated, id)
		d.OpenWindow(id)
	}

	d.stickies = sticky.NewBoard(sticky.Options{
		Size:         m.Sticky.Size(),
		Margin:       m.StickyMargin,
		TopBar:       m.TopBar,
		BottomOffset: m.StickyBottomOffset,
	}, d.z, stickySeeds(m, seeds))

	d.drag = input.NewDrag(d.windows, d.detector.Bounds)
	d.resize = input.NewResize(d.windows, d.detector.Bounds)

	vp, mode := d.detector.Viewport(), d.detector.Mode()
	d.icons.Resize(vp, mode)
	d.stickies.Reset(vp, mode)
	return d
}

func iconOptions(m config.Metrics) icons.Options {
	return icons.Options{
		Threshold:     m.DragThreshold,
		MarginX:       m.IconMarginX,
		MarginTop:     m.IconMarginTop,
		MarginBottom:  m.IconMarginBottom,
		DoubleClick:   m.DoubleClick(),
		ClickSuppress: m.ClickSuppress(),
		Hit:           m.IconHit.Size(),
		Bagel: icons.Bagel{
			SmallScreen: m.SmallScreen,
			ScaleSmall:  m.RadiusScaleSmall,
			ScaleLarge:  m.RadiusScaleLarge,
			RadiusMax:   m.RadiusMax,
			RadiusMinX:  m.RadiusMinX,
			RadiusMinY:  m.RadiusMinY,
			StretchY:    m.RadiusStretchY,
			Aspect:      m.CellAspect,
			Relative:    m.RelativeDistance,
		},
	}
}

func stickySeeds(m config.Metrics, cfg []config.StickyConfig) []sticky.Seed {
	seeds := make([]sticky.Seed, 0, len(cfg))
	for i, s := range cfg {
		origin, ok := m.StickyOrigins[s.ID]
		if !ok {
			origin = config.Offset{
				X: m.StickyMargin + i*m.Sticky.Width/2,
				Y: m.TopBar + m.StickyMargin + i*m.Sticky.Height,
			}
		}
		z := s.Z
		if z == 0 {
			z = m.BaseZ + i
		}
		seeds = append(seeds, sticky.Seed{ID: s.ID, Type: s.Type, Z: z, Origin: origin.Point(), Anchor: s.Anchor})
	}
	return seeds
}

// Metrics returns the metric set the desktop runs with.
func (d *Desktop) Metrics() config.Metrics { return d.metrics }

// Mode returns the current responsive mode.
func (d *Desktop) Mode() geom.Mode { return d.detector.Mode() }

// Bounds returns the current constraint bounds.
func (d *Desktop) Bounds() geom.Bounds { return d.detector.Bounds() }

// Item returns the dock item configuration for id.
func (d *Desktop) Item(id string) (config.DockItemConfig, bool) {
	it, ok := d.items[id]
	return it, ok
}

// SetContent replaces how new windows build their payload. Windows that are
// already open keep theirs.
func (d *Desktop) SetContent(fn func(item config.DockItemConfig) any) {
	if fn != nil {
		d.content = fn
	}
}

// =============================================================================
// Window commands
// =============================================================================

// OpenWindow opens the dock item id, or focuses or restores its window.
// Unknown ids are ignored.
func (d *Desktop) OpenWindow(id string) error {
	item, ok := d.items[id]
	if !ok {
		return nil
	}
	w, outcome := d.windows.Open(window.Launch{
		ID:      id,
		Title:   item.Title,
		Size:    d.metrics.WindowSize(id),
		Content: func() any { return d.content(item) },
	}, d.detector.Bounds(), d.detector.DesktopBounds(), d.detector.Mode())

	switch outcome {
	case window.OutcomeCreated:
		d.dock.SetActive(id, true)
		d.logger.Info("window opened", "id", id, "x", w.Position.X, "y", w.Position.Y,
			"width", w.Size.Width, "height", w.Size.Height, "z", w.Z)
		d.emit(EventOpened, id)
	case window.OutcomeRestored:
		d.emit(EventRestored, id)
	case window.OutcomeFocused:
		d.emit(EventFocused, id)
	}
	return nil
}

// CloseWindow removes window id and deactivates its dock item.
func (d *Desktop) CloseWindow(id string) error {
	d.cancelFor(id)
	if !d.windows.Close(id) {
		return nil
	}
	d.dock.SetActive(id, false)
	d.logger.Info("window closed", "id", id)
	d.emit(EventClosed, id)
	return nil
}

// MinimizeWindow hides window id. It is ignored in compact mode and for
// maximized windows.
func (d *Desktop) MinimizeWindow(id string) error {
	if !d.windows.Minimize(id, d.detector.Mode()) {
		return nil
	}
	d.cancelFor(id)
	d.dock.Bounce(id)
	d.emit(EventMinimized, id)
	return nil
}

// MaximizeWindow toggles window id between maximized and restored.
func (d *Desktop) MaximizeWindow(id string) error {
	if !d.windows.ToggleMaximize(id, d.detector.Bounds()) {
		return nil
	}
	d.cancelFor(id)
	if w, ok := d.windows.Get(id); ok && w.IsMaximized {
		d.emit(EventMaximized, id)
	} else {
		d.emit(EventUnmaximized, id)
	}
	return nil
}

// FocusWindow raises window id above everything else.
func (d *Desktop) FocusWindow(id string) error {
	if d.windows.Focus(id) {
		d.emit(EventFocused, id)
	}
	return nil
}

// RestoreWindow un-minimizes window id.
func (d *Desktop) RestoreWindow(id string) error {
	if d.windows.Restore(id, d.detector.Bounds(), d.detector.Mode()) {
		d.emit(EventRestored, id)
	}
	return nil
}

// RestoreAll un-minimizes every minimized window.
func (d *Desktop) RestoreAll() {
	for _, w := range d.windows.Snapshot() {
		if w.IsMinimized {
			d.RestoreWindow(w.ID)
		}
	}
}

// FocusNext raises the bottom-most visible window, cycling through the stack.
func (d *Desktop) FocusNext() {
	if vis := d.windows.Visible(); len(vis) > 1 {
		d.FocusWindow(vis[len(vis)-1])
	}
}

// FocusPrev raises the window directly under the focused one.
func (d *Desktop) FocusPrev() {
	if vis := d.windows.Visible(); len(vis) > 1 {
		d.FocusWindow(vis[1])
	}
}

// Focused returns the id of the topmost visible window, or "".
func (d *Desktop) Focused() string {
	return d.windows.Topmost()
}

// Window returns a copy of window id.
func (d *Desktop) Window(id string) (window.Window, bool) {
	return d.windows.Get(id)
}

// PlaceWindow moves and resizes window id to r, constrained to the current
// bounds. Maximized windows are left alone.
func (d *Desktop) PlaceWindow(id string, r geom.Rect) error {
	w, ok := d.windows.Get(id)
	if !ok || w.IsMaximized {
		return nil
	}
	d.cancelFor(id)
	p, s := geom.Constrain(r.Pos(), r.Size(), d.detector.Bounds())
	d.windows.SetGeometry(id, p, s)
	return nil
}

// DockClick is the dock's open, focus or restore action.
func (d *Desktop) DockClick(id string) error {
	return d.OpenWindow(id)
}

// OpenIndex opens the n-th dock item, counting from 1.
func (d *Desktop) OpenIndex(n int) error {
	if id, ok := d.dock.Index(n); ok {
		return d.OpenWindow(id)
	}
	return nil
}

// Navigate opens the dock item named by the first segment of path and
// maximizes its window, like following a deep link.
func (d *Desktop) Navigate(path string) error {
	id, _, _ := strings.Cut(strings.TrimLeft(path, "/"), "/")
	if id == "" || !d.dock.Has(id) {
		return nil
	}
	d.OpenWindow(id)
	if w, ok := d.windows.Get(id); ok && !w.IsMaximized {
		return d.MaximizeWindow(id)
	}
	return nil
}

// =============================================================================
// Sticky notes
// =============================================================================

// ToggleSticky expands or collapses note id and brings it to the front.
func (d *Desktop) ToggleSticky(id string) error {
	if d.stickies.ToggleExpand(id) {
		d.stickies.BringToFront(id)
		d.emit(EventStickyToggled, id)
	}
	return nil
}

// ToggleTopSticky toggles the highest note.
func (d *Desktop) ToggleTopSticky() error {
	if id := d.stickies.Topmost(); id != "" {
		return d.ToggleSticky(id)
	}
	return nil
}

// =============================================================================
// Environment
// =============================================================================

// SetViewport records a new viewport size. A mode transition cancels every
// gesture, reflows windows, resets the notes and re-lays the icons out.
// Within a mode everything is refitted in place.
func (d *Desktop) SetViewport(width, height int) {
	prev := d.detector.Mode()
	mode, changed := d.detector.Update(width, height)
	b := d.detector.Bounds()
	vp := d.detector.Viewport()

	if !changed {
		d.windows.Fit(b)
		d.stickies.Resize(vp, mode)
		d.icons.Resize(vp, mode)
		return
	}

	d.CancelGestures()
	d.windows.Reflow(b, mode)
	if mode.Compact != prev.Compact {
		d.stickies.Reset(vp, mode)
	} else {
		d.stickies.Resize(vp, mode)
	}
	d.icons.Resize(vp, mode)
	d.logger.Info("layout mode changed",
		"width", vp.Width, "height", vp.Height,
		"compact", mode.Compact, "auto_maximize", mode.AutoMaximize)
	d.emit(EventModeChanged, "")
}

// Tick applies the coalesced pointer frames and reports whether anything
// moved.
func (d *Desktop) Tick() bool {
	moved := d.drag.Flush()
	if d.resize.Flush() {
		moved = true
	}
	return moved
}

// Busy reports whether a pointer gesture is in flight. Hosts use it to decide
// whether motion events are worth delivering.
func (d *Desktop) Busy() bool {
	return d.press.kind != pressNone
}

// ClearSelection deselects the selected icon.
func (d *Desktop) ClearSelection() {
	d.icons.ClearSelection()
}

// CancelGestures drops every in-flight gesture without applying it.
func (d *Desktop) CancelGestures() {
	d.drag.Cancel()
	d.resize.Cancel()
	d.icons.Cancel()
	d.stickies.Cancel()
	d.press = press{}
}

// cancelFor drops gestures that target window id.
func (d *Desktop) cancelFor(id string) {
	if d.drag.InFlight() && d.drag.State().WindowID == id {
		d.drag.Cancel()
		d.press = press{}
	}
	if d.resize.InFlight() && d.resize.State().WindowID == id {
		d.resize.Cancel()
		d.press = press{}
	}
}
