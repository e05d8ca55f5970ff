package tape

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/geom"
)

// Recorder records desktop interactions as tape commands so a session can
// be replayed with `deskfolio tape run`.
type Recorder struct {
	commands      []Command
	startTime     time.Time
	lastEventTime time.Time
	enabled       bool
	minMove       time.Duration // Motion closer together than this is dropped
	now           func() time.Time
}

// NewRecorder creates a new tape recorder
func NewRecorder() *Recorder {
	return &Recorder{
		minMove: 16 * time.Millisecond,
		now:     time.Now,
	}
}

// Start begins recording
func (r *Recorder) Start() {
	r.enabled = true
	r.startTime = r.now()
	r.lastEventTime = r.startTime
	r.commands = nil
}

// Stop ends recording
func (r *Recorder) Stop() {
	r.enabled = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.enabled
}

// RecordViewport records a terminal or window resize
func (r *Recorder) RecordViewport(width, height int) {
	r.record(CommandType_Viewport, strconvs(width, height)...)
}

// RecordPointer records a pointer event. Motion events arriving faster than
// the frame rate are dropped since the desktop coalesces them anyway.
func (r *Recorder) RecordPointer(kind CommandType, p geom.Point) {
	if !r.enabled {
		return
	}
	if kind == CommandType_PointerMove && r.now().Sub(r.lastEventTime) < r.minMove {
		return
	}
	r.record(kind, strconvs(p.X, p.Y)...)
}

// RecordCommand records a keyboard-driven desktop command such as
// Minimize or FocusNext.
func (r *Recorder) RecordCommand(kind CommandType, args ...string) {
	r.record(kind, args...)
}

func (r *Recorder) record(kind CommandType, args ...string) {
	if !r.enabled {
		return
	}
	now := r.now()
	cmd := Command{
		Type:   kind,
		Args:   args,
		Delay:  now.Sub(r.lastEventTime),
		Line:   len(r.commands) + 1,
		Column: 1,
	}
	cmd.Raw = cmd.String()
	r.commands = append(r.commands, cmd)
	r.lastEventTime = now
}

func strconvs(values ...int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

// GetCommands returns all recorded commands
func (r *Recorder) GetCommands() []Command {
	return r.commands
}

// WriteToFile saves the recorded tape to a file
func (r *Recorder) WriteToFile(filename string, header string) error {
	if err := os.WriteFile(filename, []byte(r.String(header)), 0o644); err != nil {
		return fmt.Errorf("write tape: %w", err)
	}
	return nil
}

// String returns the tape content. Pauses longer than 100ms become Sleep
// commands so double clicks replay faithfully.
func (r *Recorder) String(header string) string {
	var sb strings.Builder

	if header != "" {
		fmt.Fprintf(&sb, "# %s\n", header)
		fmt.Fprintf(&sb, "# Recorded: %s\n\n", r.startTime.Format(time.RFC3339))
	}

	for _, cmd := range r.commands {
		if cmd.Delay > 100*time.Millisecond {
			fmt.Fprintf(&sb, "Sleep %dms\n", cmd.Delay.Milliseconds())
		}
		sb.WriteString(cmd.Raw)
		sb.WriteByte('\n')
		if cmd.Type == CommandType_PointerMove {
			sb.WriteString("Tick\n")
		}
	}

	return sb.String()
}

// CommandCount returns the number of recorded commands
func (r *Recorder) CommandCount() int {
	return len(r.commands)
}

// Clear clears all recorded commands
func (r *Recorder) Clear() {
	r.commands = nil
	r.startTime = r.now()
	r.lastEventTime = r.startTime
}
