package tape

import (
	"sync"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/desktop"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
)

// Executor is the desktop surface a script drives. *desktop.Desktop
// implements it.
type Executor interface {
	SetViewport(width, height int)
	Tick() bool

	OpenWindow(id string) error
	CloseWindow(id string) error
	MinimizeWindow(id string) error
	MaximizeWindow(id string) error
	FocusWindow(id string) error
	RestoreWindow(id string) error
	RestoreAll()
	FocusNext()
	FocusPrev()
	PlaceWindow(id string, r geom.Rect) error
	DockClick(id string) error
	Navigate(path string) error
	ToggleSticky(id string) error

	PointerDown(p geom.Point)
	PointerMove(p geom.Point) bool
	PointerUp(p geom.Point)
	HitTest(p geom.Point) desktop.Target
	TitlePoint(id string) (geom.Point, bool)
	HandlePoint(id string, dir input.Direction) (geom.Point, bool)

	Snapshot() desktop.Snapshot
}

var _ Executor = (*desktop.Desktop)(nil)

// Clock is the virtual time a script runs on. Sleep advances it, so double
// clicks and click suppression behave the same on every run.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current virtual time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
