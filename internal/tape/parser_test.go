package tape

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseCommands(t *testing.T) {
	script := `# open two windows and drag one
Viewport 1280 800
Open about
Drag about -20 15
Resize about se 40 30
Sleep 250ms
Sleep 100
Navigate /blog/hello
Navigate "/work"
Expect window about x 680
Expect desktop focused none
Snapshot
`

	commands, errs := ParseFile(script)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	tests := []struct {
		typ  CommandType
		args []string
		line int
	}{
		{CommandType_Viewport, []string{"1280", "800"}, 2},
		{CommandType_Open, []string{"about"}, 3},
		{CommandType_Drag, []string{"about", "-20", "15"}, 4},
		{CommandType_Resize, []string{"about", "se", "40", "30"}, 5},
		{CommandType_Sleep, []string{"250ms"}, 6},
		{CommandType_Sleep, []string{"100ms"}, 7},
		{CommandType_Navigate, []string{"/blog/hello"}, 8},
		{CommandType_Navigate, []string{"/work"}, 9},
		{CommandType_Expect, []string{"window", "about", "x", "680"}, 10},
		{CommandType_Expect, []string{"desktop", "focused", "none"}, 11},
		{CommandType_Snapshot, nil, 12},
	}

	if len(commands) != len(tests) {
		t.Fatalf("got %d commands, want %d: %v", len(commands), len(tests), commands)
	}
	for i, tt := range tests {
		cmd := commands[i]
		if cmd.Type != tt.typ {
			t.Errorf("command %d: type = %s, want %s", i, cmd.Type, tt.typ)
		}
		if !slices.Equal(cmd.Args, tt.args) {
			t.Errorf("command %d: args = %v, want %v", i, cmd.Args, tt.args)
		}
		if cmd.Line != tt.line {
			t.Errorf("command %d: line = %d, want %d", i, cmd.Line, tt.line)
		}
	}

	if commands[4].Delay != 250*time.Millisecond {
		t.Errorf("Sleep delay = %v, want 250ms", commands[4].Delay)
	}
	if commands[5].Delay != 100*time.Millisecond {
		t.Errorf("bare Sleep delay = %v, want 100ms", commands[5].Delay)
	}
	if got := commands[3].String(); got != "Resize about se 40 30" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown command", "Fly about", `line 1: unknown command "Fly"`},
		{"missing argument", "Open", "Open expects 1 argument(s), got 0"},
		{"extra argument", "Open about work", `unexpected "work"`},
		{"number expected", "Viewport wide 800", "must be an integer"},
		{"fraction is not an integer", "Viewport 1280.5 800", "must be an integer"},
		{"bad direction", "Resize about up 10 10", "must be a resize direction"},
		{"negative sleep", "Sleep -5ms", "must not be negative"},
		{"sleep needs duration", "Sleep about", "expects a duration"},
		{"navigate needs path", "Navigate 12", "expects a path"},
		{"unknown expect scope", "Expect planet mars x 1", `unknown scope "planet"`},
		{"unknown expect key", "Expect window about colour red", `unknown key "colour"`},
		{"expect arity", "Expect window about x", "takes 3 argument(s), got 2"},
		{"error line", "Open about\n\nClose", "line 3:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ParseFile(tt.script)
			if len(errs) == 0 {
				t.Fatalf("expected an error containing %q", tt.want)
			}
			if !strings.Contains(errs[0], tt.want) {
				t.Errorf("error = %q, want it to contain %q", errs[0], tt.want)
			}
		})
	}
}

func TestParseRecoversAfterError(t *testing.T) {
	commands, errs := ParseFile("Open\nOpen about\nBogus 1 2\nTick")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if len(commands) != 2 || commands[0].Type != CommandType_Open || commands[1].Type != CommandType_Tick {
		t.Errorf("commands = %v, want [Open about, Tick]", commands)
	}
}

func TestValidateScript(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"valid", "Open about\nTick", true},
		{"empty", "# nothing here\n", false},
		{"invalid", "Open about\nOpen", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := ValidateScript(tt.content)
			if valid != tt.valid {
				t.Errorf("valid = %v, want %v (errors %v)", valid, tt.valid, errs)
			}
			if !valid && len(errs) == 0 {
				t.Error("invalid script returned no errors")
			}
		})
	}
}

func TestCommandTypeIsCommand(t *testing.T) {
	if !CommandType_DragSticky.IsCommand() {
		t.Error("DragSticky should be a command")
	}
	if CommandType("Teleport").IsCommand() {
		t.Error("Teleport should not be a command")
	}
}

func TestPlayer(t *testing.T) {
	commands, _ := ParseFile("Open about\nSleep 2s\nTick")
	p := NewPlayer(commands)

	if p.IsFinished() || p.TotalCommands() != 3 {
		t.Fatalf("new player: %s", p)
	}
	if p.Delay() != 0 {
		t.Errorf("Delay before Open = %v, want 0", p.Delay())
	}
	p.Advance()
	if p.Delay() != 2*time.Second {
		t.Errorf("Delay before Sleep = %v, want 2s", p.Delay())
	}
	if p.Progress() != 33 {
		t.Errorf("Progress = %d, want 33", p.Progress())
	}
	p.Advance()
	p.Advance()
	if !p.IsFinished() || p.Status().State != "finished" || p.CommandStr() != "Script finished" {
		t.Errorf("finished player: %+v", p.Status())
	}
	p.Reset()
	if p.IsFinished() || p.CurrentIndex() != 0 {
		t.Errorf("after Reset: %s", p)
	}

	if empty := NewPlayer(nil); !empty.IsFinished() || empty.NextCommand() != nil {
		t.Error("empty player should start finished")
	}
}
