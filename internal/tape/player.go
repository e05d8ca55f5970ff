package tape

import (
	"fmt"
	"time"
)

// PlayState is where a Player is in its script.
type PlayState string

const (
	StatePlaying  PlayState = "playing"
	StatePaused   PlayState = "paused"
	StateFinished PlayState = "finished"
)

// Player walks a script one command at a time. The headless Runner drives it
// in a tight loop; the TUI drives it from ticks so Sleep takes real time.
type Player struct {
	commands []Command
	pos      int
	paused   bool
}

// NewPlayer returns a player positioned at the first command.
func NewPlayer(commands []Command) *Player {
	return &Player{commands: commands}
}

// NextCommand peeks at the command Advance would step past, or nil at the
// end of the script.
func (p *Player) NextCommand() *Command {
	if p.IsFinished() {
		return nil
	}
	return &p.commands[p.pos]
}

// Advance steps past the current command.
func (p *Player) Advance() {
	if !p.IsFinished() {
		p.pos++
	}
}

func (p *Player) IsFinished() bool { return p.pos >= len(p.commands) }

func (p *Player) IsPaused() bool { return p.paused }

func (p *Player) SetPaused(paused bool) { p.paused = paused }

// Reset rewinds to the first command and resumes playback.
func (p *Player) Reset() {
	p.pos, p.paused = 0, false
}

func (p *Player) CurrentIndex() int { return p.pos }

func (p *Player) TotalCommands() int { return len(p.commands) }

// Progress is the share of commands already stepped past, 0 to 100. An empty
// script is complete.
func (p *Player) Progress() int {
	if len(p.commands) == 0 {
		return 100
	}
	return p.pos * 100 / len(p.commands)
}

// CommandStr describes the next command for the menu bar.
func (p *Player) CommandStr() string {
	if cmd := p.NextCommand(); cmd != nil {
		return cmd.String()
	}
	return "Script finished"
}

// Delay is how long the host waits before the next command. Only Sleep
// waits.
func (p *Player) Delay() time.Duration {
	if cmd := p.NextCommand(); cmd != nil && cmd.Type == CommandType_Sleep {
		return cmd.Delay
	}
	return 0
}

// Status is a point-in-time view of playback.
type Status struct {
	State    PlayState
	Index    int
	Total    int
	Progress int
	Current  string
}

func (p *Player) Status() Status {
	state := StatePlaying
	switch {
	case p.paused:
		state = StatePaused
	case p.IsFinished():
		state = StateFinished
	}
	return Status{
		State:    state,
		Index:    p.pos,
		Total:    len(p.commands),
		Progress: p.Progress(),
		Current:  p.CommandStr(),
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("Player{%d/%d %s}", p.pos, len(p.commands), p.Status().State)
}
