package app

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/tape"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestOS(t *testing.T, width, height int, script string) (*OS, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	opts := Options{
		Width:  width,
		Height: height,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Clock:  clock.Now,
	}
	if script != "" {
		commands, errs := tape.ParseFile(script)
		if len(errs) > 0 {
			t.Fatalf("parse: %v", errs)
		}
		opts.Script = commands
	}
	return New(opts), clock
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestKeysOpenMinimizeAndClose(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")

	m.Update(press("1"))
	if got := m.Desktop.Focused(); got != "about" {
		t.Fatalf("focused = %q, want about", got)
	}

	m.Update(press("m"))
	w, ok := m.Desktop.Window("about")
	if !ok || !w.IsMinimized {
		t.Fatalf("about should be minimized: %+v", w)
	}
	if len(m.Bounces) != 1 || m.Bounces[0].ID != "about" {
		t.Fatalf("minimize should bounce the dock item, got %+v", m.Bounces)
	}

	m.Update(press("M"))
	m.Update(press("x"))
	if _, ok := m.Desktop.Window("about"); ok {
		t.Fatal("about should be closed")
	}
}

func TestKeysWithoutFocusAreIgnored(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	m.Update(press("x"))
	m.Update(press("f"))
	if n := len(m.Desktop.Snapshot().Windows); n != 0 {
		t.Fatalf("windows = %d, want 0", n)
	}
}

func TestHelpOverlayCapturesKeys(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")

	m.Update(press("?"))
	if !m.ShowHelp {
		t.Fatal("help should be open")
	}
	m.Update(press("1"))
	if m.Desktop.Focused() != "" {
		t.Fatal("keys must not reach the desktop while help is open")
	}

	m.Update(press("/"))
	m.Update(press("c"))
	m.Update(press("l"))
	if m.HelpSearchQuery != "cl" {
		t.Fatalf("query = %q", m.HelpSearchQuery)
	}
	m.Update(press("esc"))
	if m.HelpSearchMode || m.HelpSearchQuery != "" {
		t.Fatal("esc should leave search mode")
	}
	m.Update(press("esc"))
	if m.ShowHelp {
		t.Fatal("esc should close help")
	}
}

func TestRecorderCapturesKeyCommands(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	m.Recorder = tape.NewRecorder()
	m.Recorder.Start()

	m.Update(press("2"))
	m.Update(press("f"))

	out := m.Recorder.String("")
	for _, want := range []string{"Open work", "Maximize work"} {
		if !strings.Contains(out, want) {
			t.Errorf("recording missing %q:\n%s", want, out)
		}
	}
}

func TestMouseFilterDropsIdleMotion(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	motion := tea.MouseMotionMsg{X: 10, Y: 10}
	if got := MouseFilter(m, motion); got != nil {
		t.Fatalf("idle motion should be dropped, got %T", got)
	}
	click := tea.MouseClickMsg{X: 10, Y: 10, Button: tea.MouseLeft}
	if got := MouseFilter(m, click); got == nil {
		t.Fatal("clicks must pass through")
	}
}

func TestMenuLogoOpensHelp(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	m.Update(tea.MouseClickMsg{X: 2, Y: 0, Button: tea.MouseLeft})
	if !m.ShowHelp {
		t.Fatal("clicking the logo should open help")
	}
	m.Update(tea.MouseClickMsg{X: 50, Y: 20, Button: tea.MouseLeft})
	if m.ShowHelp {
		t.Fatal("clicking anywhere should close help")
	}
}

func TestWheelScrollsWindowContent(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	m.Update(press("1"))
	w, _ := m.Desktop.Window("about")
	p := tea.MouseWheelMsg{X: w.Position.X + 4, Y: w.Position.Y + 4, Button: tea.MouseWheelDown}
	m.Update(p)
	if got := m.Scroll["about"]; got != wheelStep {
		t.Fatalf("scroll = %d, want %d", got, wheelStep)
	}
	p.Button = tea.MouseWheelUp
	m.Update(p)
	m.Update(p)
	if got := m.Scroll["about"]; got != 0 {
		t.Fatalf("scroll = %d, want 0", got)
	}
}

func TestBounceOffset(t *testing.T) {
	start := time.Unix(0, 0)
	b := &Bounce{ID: "about", Start: start, Duration: BounceDuration}
	if got := b.Offset(start.Add(BounceDuration / 4)); got != 1 {
		t.Errorf("offset at first peak = %d, want 1", got)
	}
	if got := b.Offset(start.Add(BounceDuration / 2)); got != 0 {
		t.Errorf("offset between hops = %d, want 0", got)
	}
	if got := b.Offset(start.Add(BounceDuration)); got != 0 {
		t.Errorf("offset after end = %d, want 0", got)
	}
	if !b.Update(start.Add(BounceDuration)) {
		t.Error("bounce should complete")
	}
}

func TestAnimationsExpire(t *testing.T) {
	m, clock := newTestOS(t, 120, 40, "")
	m.startBounce("about")
	if !m.HasActiveAnimations() {
		t.Fatal("expected an active bounce")
	}
	clock.Advance(BounceDuration)
	m.UpdateAnimations()
	if m.HasActiveAnimations() {
		t.Fatal("bounce should be gone")
	}
}

func TestNotificationsExpire(t *testing.T) {
	m, clock := newTestOS(t, 120, 40, "")
	for i := range 6 {
		m.ShowNotification(strings.Repeat("n", i+1), "info", NotificationDuration)
	}
	if len(m.Notifications) != 4 {
		t.Fatalf("notifications = %d, want 4", len(m.Notifications))
	}
	clock.Advance(NotificationDuration)
	m.CleanupNotifications()
	if len(m.Notifications) != 0 {
		t.Fatalf("notifications = %d, want 0", len(m.Notifications))
	}
}

func TestModeChangeNotifies(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	if !m.Desktop.Mode().Compact {
		t.Fatal("60 columns should be compact")
	}
	if len(m.Notifications) == 0 || m.Notifications[len(m.Notifications)-1].Message != "Compact layout" {
		t.Fatalf("notifications = %+v", m.Notifications)
	}
}

// drain runs ticks and the commands they produce until playback settles.
func drain(t *testing.T, m *OS, clock *fakeClock) {
	t.Helper()
	for range 50 {
		clock.Advance(50 * time.Millisecond)
		if cmd := m.advanceScript(); cmd != nil {
			m.Update(cmd())
		}
		if !m.ScriptFinishedTime.IsZero() {
			return
		}
	}
	t.Fatal("script did not finish")
}

func TestScriptPlayback(t *testing.T) {
	m, clock := newTestOS(t, 120, 40, `
Open about
Sleep 100ms
Open work
Expect desktop windows 2
`)
	drain(t, m, clock)
	if n := len(m.Desktop.Snapshot().Windows); n != 2 {
		t.Fatalf("windows = %d, want 2", n)
	}
	if got := m.StatusLine(); got != "tape: done" {
		t.Fatalf("status = %q", got)
	}
}

func TestScriptFailureIsReported(t *testing.T) {
	m, clock := newTestOS(t, 120, 40, `
Open about
Expect desktop windows 3
`)
	drain(t, m, clock)
	if got := m.StatusLine(); got != "tape: 1 failed" {
		t.Fatalf("status = %q", got)
	}
	last := m.Notifications[len(m.Notifications)-1]
	if last.Type != "error" {
		t.Fatalf("last notification = %+v", last)
	}
}

func TestRenderSizes(t *testing.T) {
	for _, size := range [][2]int{{120, 40}, {90, 30}, {60, 20}, {30, 10}} {
		m, _ := newTestOS(t, size[0], size[1], "")
		m.Update(press("1"))
		out := m.Render()
		lines := strings.Split(out, "\n")
		if len(lines) > size[1] {
			t.Errorf("%dx%d: %d lines", size[0], size[1], len(lines))
		}
		for i, l := range lines {
			if w := ansi.StringWidth(l); w > size[0] {
				t.Errorf("%dx%d: line %d is %d wide", size[0], size[1], i, w)
			}
		}
	}
}

func TestRenderShowsDesktop(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	out := ansi.Strip(m.Render())
	for _, want := range []string{"deskfolio", "About", "Visitors"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	m.Update(press("?"))
	if out := ansi.Strip(m.Render()); !strings.Contains(out, "Windows") {
		t.Error("help overlay should list the Windows category")
	}
}

func TestRenderZeroSize(t *testing.T) {
	m, _ := newTestOS(t, 0, 0, "")
	if got := m.Render(); got != "" {
		t.Fatalf("render = %q, want empty", got)
	}
}

func TestGetCPUGraphWidth(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	empty := ansi.StringWidth(m.GetCPUGraph())
	for i := range cpuHistoryLen + 3 {
		m.recordSysInfo(SysInfoMsg{CPU: float64(i * 10), RAM: 42})
	}
	if got := ansi.StringWidth(m.GetCPUGraph()); got != empty {
		t.Fatalf("graph width changed from %d to %d", empty, got)
	}
	if len(m.CPUHistory) != cpuHistoryLen {
		t.Fatalf("history = %d, want %d", len(m.CPUHistory), cpuHistoryLen)
	}
	if got := m.GetRAMUsage(); got != "RAM: 42%" {
		t.Fatalf("ram = %q", got)
	}
}

func TestApplyConfigReloadsKeys(t *testing.T) {
	m, _ := newTestOS(t, 120, 40, "")
	cfg := config.DefaultConfig()
	cfg.Keybindings["close_window"] = []string{"w"}
	m.ApplyConfig(cfg)

	m.Update(press("1"))
	m.Update(press("x"))
	if _, ok := m.Desktop.Window("about"); !ok {
		t.Fatal("x is no longer bound to close")
	}
	m.Update(press("w"))
	if _, ok := m.Desktop.Window("about"); ok {
		t.Fatal("w should close the window")
	}
}
