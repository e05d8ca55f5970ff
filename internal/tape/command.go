package tape

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownCommand is returned when a command cannot be executed.
var ErrUnknownCommand = errors.New("unknown command")

// CommandType represents the type of a tape command
type CommandType string

const (
	// Environment
	CommandType_Viewport CommandType = "Viewport"
	CommandType_Tick     CommandType = "Tick"
	CommandType_Sleep    CommandType = "Sleep"

	// Windows
	CommandType_Open       CommandType = "Open"
	CommandType_Close      CommandType = "Close"
	CommandType_Minimize   CommandType = "Minimize"
	CommandType_Maximize   CommandType = "Maximize"
	CommandType_Focus      CommandType = "Focus"
	CommandType_Restore    CommandType = "Restore"
	CommandType_RestoreAll CommandType = "RestoreAll"
	CommandType_FocusNext  CommandType = "FocusNext"
	CommandType_FocusPrev  CommandType = "FocusPrev"
	CommandType_Place      CommandType = "Place"
	CommandType_DockClick  CommandType = "DockClick"
	CommandType_Navigate   CommandType = "Navigate"

	// Raw pointer events
	CommandType_PointerDown CommandType = "PointerDown"
	CommandType_PointerMove CommandType = "PointerMove"
	CommandType_PointerUp   CommandType = "PointerUp"
	CommandType_Click       CommandType = "Click"

	// Gestures addressed by id
	CommandType_Drag         CommandType = "Drag"
	CommandType_Resize       CommandType = "Resize"
	CommandType_DragIcon     CommandType = "DragIcon"
	CommandType_ClickIcon    CommandType = "ClickIcon"
	CommandType_ClickDesktop CommandType = "ClickDesktop"
	CommandType_DragSticky   CommandType = "DragSticky"
	CommandType_ToggleSticky CommandType = "ToggleSticky"

	// Inspection
	CommandType_Snapshot CommandType = "Snapshot"
	CommandType_Expect   CommandType = "Expect"
)

// Command represents a parsed tape command
type Command struct {
	Type   CommandType
	Args   []string      // Command arguments
	Delay  time.Duration // Virtual time to advance before the command (Sleep)
	Line   int           // Line number in source file
	Column int           // Column number in source file
	Raw    string        // Raw command text
}

// String returns a string representation of the command
func (c *Command) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	if len(c.Args) == 0 {
		return string(c.Type)
	}
	return string(c.Type) + " " + strings.Join(c.Args, " ")
}

// IsCommand returns true if this is a valid command type
func (ct CommandType) IsCommand() bool {
	return LookupKeyword(string(ct)).IsCommand()
}

// ParseDuration parses a duration string (e.g., "500ms", "1s")
func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid duration %q: must not be negative", s)
	}
	return d, nil
}
