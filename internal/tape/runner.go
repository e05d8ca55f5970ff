package tape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/desktop"
	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
)

// ErrExpectation is wrapped by the error Run returns when an Expect fails.
var ErrExpectation = errors.New("expectation failed")

// Runner plays a tape script against an Executor without rendering a TUI.
// It records a transcript, the snapshots the script asked for and any failed
// expectations.
type Runner struct {
	player     *Player
	exec       Executor
	clock      *Clock
	logger     *slog.Logger
	output     strings.Builder
	outputLock sync.Mutex
	verbose    bool
	snapshots  []desktop.Snapshot
	failures   []string
	stats      Stats
}

// Stats holds statistics about a script run
type Stats struct {
	TotalCommands int           `json:"total_commands" yaml:"total_commands"`
	ExecutedCount int           `json:"executed" yaml:"executed"`
	Expectations  int           `json:"expectations" yaml:"expectations"`
	Failed        int           `json:"failed" yaml:"failed"`
	VirtualTime   time.Duration `json:"virtual_time" yaml:"virtual_time"`
	WallTime      time.Duration `json:"wall_time" yaml:"wall_time"`
	Success       bool          `json:"success" yaml:"success"`
	ErrorMessage  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRunner creates a runner for commands. clock must be the clock the
// executor reads; Sleep advances it.
func NewRunner(commands []Command, exec Executor, clock *Clock) *Runner {
	if clock == nil {
		clock = NewClock(time.Now())
	}
	return &Runner{
		player: NewPlayer(commands),
		exec:   exec,
		clock:  clock,
		logger: slog.Default(),
		stats:  Stats{TotalCommands: len(commands)},
	}
}

// SetVerbose enables the per-command transcript
func (r *Runner) SetVerbose(verbose bool) {
	r.verbose = verbose
}

// SetLogger replaces the logger used for command failures.
func (r *Runner) SetLogger(l *slog.Logger) {
	if l != nil {
		r.logger = l
	}
}

// Run executes all commands in order. Expect failures do not stop the run;
// they are collected and reported together at the end.
func (r *Runner) Run(ctx context.Context) error {
	start, virtualStart := time.Now(), r.clock.Now()
	total := r.player.TotalCommands()
	if r.verbose {
		r.logf("Starting script with %d commands\n", total)
	}

	var runErr error
	for !r.player.IsFinished() {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		cmd := r.player.NextCommand()
		if r.verbose {
			r.logf("[%d/%d] %s\n", r.player.CurrentIndex()+1, total, cmd.String())
		}
		if err := r.Execute(cmd); err != nil {
			runErr = fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
			break
		}
		r.stats.ExecutedCount++
		r.player.Advance()
	}

	r.stats.VirtualTime = r.clock.Now().Sub(virtualStart)
	r.stats.WallTime = time.Since(start)
	r.stats.Failed = len(r.failures)

	if runErr == nil && len(r.failures) > 0 {
		runErr = fmt.Errorf("%w: %d of %d\n  %s", ErrExpectation,
			len(r.failures), r.stats.Expectations, strings.Join(r.failures, "\n  "))
	}
	r.stats.Success = runErr == nil
	if runErr != nil {
		r.stats.ErrorMessage = runErr.Error()
	}
	if r.verbose {
		r.logf("Finished: %d/%d commands in %v virtual time\n",
			r.stats.ExecutedCount, total, r.stats.VirtualTime)
	}
	return runErr
}

// Execute runs a single command.
func (r *Runner) Execute(cmd *Command) error {
	x := r.exec
	arg := func(i int) string { return cmd.Args[i] }
	num := func(i int) int { return atoi(cmd.Args[i]) }
	pt := func(i int) geom.Point { return geom.Point{X: num(i), Y: num(i + 1)} }

	switch cmd.Type {
	case CommandType_Viewport:
		x.SetViewport(num(0), num(1))
	case CommandType_Tick:
		x.Tick()
	case CommandType_Sleep:
		r.clock.Advance(cmd.Delay)
		x.Tick()

	case CommandType_Open:
		return x.OpenWindow(arg(0))
	case CommandType_Close:
		return x.CloseWindow(arg(0))
	case CommandType_Minimize:
		return x.MinimizeWindow(arg(0))
	case CommandType_Maximize:
		return x.MaximizeWindow(arg(0))
	case CommandType_Focus:
		return x.FocusWindow(arg(0))
	case CommandType_Restore:
		return x.RestoreWindow(arg(0))
	case CommandType_RestoreAll:
		x.RestoreAll()
	case CommandType_FocusNext:
		x.FocusNext()
	case CommandType_FocusPrev:
		x.FocusPrev()
	case CommandType_Place:
		return x.PlaceWindow(arg(0), geom.Rect{X: num(1), Y: num(2), Width: num(3), Height: num(4)})
	case CommandType_DockClick:
		return x.DockClick(arg(0))
	case CommandType_Navigate:
		return x.Navigate(arg(0))

	case CommandType_PointerDown:
		x.PointerDown(pt(0))
	case CommandType_PointerMove:
		x.PointerMove(pt(0))
	case CommandType_PointerUp:
		x.PointerUp(pt(0))
	case CommandType_Click:
		x.PointerDown(pt(0))
		x.PointerUp(pt(0))

	case CommandType_Drag:
		if from, ok := x.TitlePoint(arg(0)); ok {
			r.gesture(from, pt(1))
		}
	case CommandType_Resize:
		dir, err := input.ParseDirection(arg(1))
		if err != nil {
			return err
		}
		if from, ok := x.HandlePoint(arg(0), dir); ok {
			r.gesture(from, pt(2))
		}
	case CommandType_DragIcon:
		if ic, ok := x.Snapshot().Icon(arg(0)); ok {
			r.gesture(ic.Position, pt(1))
		}
	case CommandType_ClickIcon:
		if ic, ok := x.Snapshot().Icon(arg(0)); ok {
			x.PointerDown(ic.Position)
			x.PointerUp(ic.Position)
		}
	case CommandType_ClickDesktop:
		if p, ok := r.emptyPoint(); ok {
			x.PointerDown(p)
			x.PointerUp(p)
		}
	case CommandType_DragSticky:
		if n, ok := x.Snapshot().Sticky(arg(0)); ok {
			from := geom.Point{X: n.Position.X + n.Size.Width/3, Y: n.Position.Y + n.Size.Height/2}
			r.gesture(from, pt(1))
		}
	case CommandType_ToggleSticky:
		return x.ToggleSticky(arg(0))

	case CommandType_Snapshot:
		r.snapshots = append(r.snapshots, x.Snapshot())
	case CommandType_Expect:
		r.stats.Expectations++
		got, err := Evaluate(x.Snapshot(), cmd.Args)
		if err != nil {
			return err
		}
		if want := cmd.Args[len(cmd.Args)-1]; got != want {
			msg := fmt.Sprintf("line %d: %s: got %s", cmd.Line, cmd.String(), got)
			r.failures = append(r.failures, msg)
			r.logger.Warn("expectation failed", "line", cmd.Line, "expect", cmd.String(), "got", got)
		}

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Type)
	}
	return nil
}

// gesture presses at from, moves by delta in one frame and releases.
func (r *Runner) gesture(from, delta geom.Point) {
	to := from.Add(delta)
	r.exec.PointerDown(from)
	r.exec.PointerMove(to)
	r.exec.Tick()
	r.exec.PointerUp(to)
}

// emptyPoint finds a spot of bare desktop to click on.
func (r *Runner) emptyPoint() (geom.Point, bool) {
	vp := r.exec.Snapshot().Viewport
	step := max(1, min(vp.Width, vp.Height)/40)
	for y := 0; y < vp.Height; y += step {
		for x := 0; x < vp.Width; x += step {
			p := geom.Point{X: x, Y: y}
			if r.exec.HitTest(p).Kind == desktop.TargetDesktop {
				return p, true
			}
		}
	}
	return geom.Point{}, false
}

// Evaluate looks up the value an Expect command names in s. Booleans are
// "true" or "false" and an empty id is "none".
func Evaluate(s desktop.Snapshot, args []string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("%w: Expect needs a scope, key and value", ErrUnknownCommand)
	}
	scope := args[0]
	if scope == "desktop" {
		switch args[1] {
		case "windows":
			return strconv.Itoa(len(s.Windows)), nil
		case "focused":
			return orNone(s.Focused), nil
		case "selected":
			return orNone(s.Selected), nil
		case "compact":
			return strconv.FormatBool(s.Mode.Compact), nil
		case "auto_maximize":
			return strconv.FormatBool(s.Mode.AutoMaximize), nil
		case "width":
			return strconv.Itoa(s.Viewport.Width), nil
		case "height":
			return strconv.Itoa(s.Viewport.Height), nil
		}
		return "", fmt.Errorf("unknown desktop key %q", args[1])
	}

	id, key := args[1], args[2]
	switch scope {
	case "window":
		w, ok := s.Window(id)
		if key == "open" {
			return strconv.FormatBool(ok && w.IsOpen), nil
		}
		if !ok {
			return "absent", nil
		}
		switch key {
		case "minimized":
			return strconv.FormatBool(w.IsMinimized), nil
		case "maximized":
			return strconv.FormatBool(w.IsMaximized), nil
		case "auto_maximized":
			return strconv.FormatBool(w.AutoMaximized), nil
		}
		return rectValue(key, geom.RectOf(w.Position, w.Size), w.Z)
	case "icon":
		ic, ok := s.Icon(id)
		if !ok {
			return "absent", nil
		}
		if key == "selected" {
			return strconv.FormatBool(ic.Selected), nil
		}
		return rectValue(key, geom.Rect{X: ic.Position.X, Y: ic.Position.Y}, ic.Z)
	case "sticky":
		n, ok := s.Sticky(id)
		if !ok {
			return "absent", nil
		}
		if key == "expanded" {
			return strconv.FormatBool(n.IsExpanded), nil
		}
		return rectValue(key, n.Rect(), n.Z)
	case "dock":
		it, ok := s.DockItem(id)
		if !ok {
			return "absent", nil
		}
		switch key {
		case "active":
			return strconv.FormatBool(it.Active), nil
		case "bounces":
			return strconv.Itoa(it.Bounces), nil
		}
	}
	return "", fmt.Errorf("unknown %s key %q", scope, key)
}

func rectValue(key string, r geom.Rect, z int) (string, error) {
	switch key {
	case "x":
		return strconv.Itoa(r.X), nil
	case "y":
		return strconv.Itoa(r.Y), nil
	case "width":
		return strconv.Itoa(r.Width), nil
	case "height":
		return strconv.Itoa(r.Height), nil
	case "z":
		return strconv.Itoa(z), nil
	}
	return "", fmt.Errorf("unknown key %q", key)
}

func orNone(id string) string {
	if id == "" {
		return "none"
	}
	return id
}

// Snapshots returns the snapshots taken by Snapshot commands.
func (r *Runner) Snapshots() []desktop.Snapshot {
	return r.snapshots
}

// Final returns the desktop state after the run.
func (r *Runner) Final() desktop.Snapshot {
	return r.exec.Snapshot()
}

// Failures returns the failed expectations.
func (r *Runner) Failures() []string {
	return r.failures
}

// Stats returns the run statistics.
func (r *Runner) Stats() Stats {
	return r.stats
}

// GetOutput returns the transcript
func (r *Runner) GetOutput() string {
	r.outputLock.Lock()
	defer r.outputLock.Unlock()
	return r.output.String()
}

// WriteOutput writes the transcript to w
func (r *Runner) WriteOutput(w io.Writer) error {
	_, err := io.WriteString(w, r.GetOutput())
	return err
}

// logf appends a line to the transcript
func (r *Runner) logf(format string, args ...any) {
	r.outputLock.Lock()
	defer r.outputLock.Unlock()
	fmt.Fprintf(&r.output, format, args...)
}

// ValidateScript parses content and reports whether it is a runnable script
func ValidateScript(content string) (bool, []string) {
	commands, errors := ParseFile(content)
	if len(errors) > 0 {
		return false, errors
	}
	if len(commands) == 0 {
		return false, []string{"no commands found in script"}
	}
	return true, nil
}
