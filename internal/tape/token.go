package tape

// TokenType represents the type of a token in a .tape file
type TokenType string

const (
	// Special tokens
	TOKEN_EOF     TokenType = "EOF"
	TOKEN_ILLEGAL TokenType = "ILLEGAL"
	TOKEN_NEWLINE TokenType = "NEWLINE"

	// Literals
	TOKEN_STRING     TokenType = "STRING"
	TOKEN_NUMBER     TokenType = "NUMBER"
	TOKEN_DURATION   TokenType = "DURATION"
	TOKEN_IDENTIFIER TokenType = "IDENTIFIER"
	TOKEN_PATH       TokenType = "PATH"

	// Commands - Environment
	TOKEN_VIEWPORT TokenType = "Viewport"
	TOKEN_TICK     TokenType = "Tick"
	TOKEN_SLEEP    TokenType = "Sleep"

	// Commands - Windows
	TOKEN_OPEN        TokenType = "Open"
	TOKEN_CLOSE       TokenType = "Close"
	TOKEN_MINIMIZE    TokenType = "Minimize"
	TOKEN_MAXIMIZE    TokenType = "Maximize"
	TOKEN_FOCUS       TokenType = "Focus"
	TOKEN_RESTORE     TokenType = "Restore"
	TOKEN_RESTORE_ALL TokenType = "RestoreAll"
	TOKEN_FOCUS_NEXT  TokenType = "FocusNext"
	TOKEN_FOCUS_PREV  TokenType = "FocusPrev"
	TOKEN_PLACE       TokenType = "Place"
	TOKEN_DOCK_CLICK  TokenType = "DockClick"
	TOKEN_NAVIGATE    TokenType = "Navigate"

	// Commands - Pointer
	TOKEN_POINTER_DOWN TokenType = "PointerDown"
	TOKEN_POINTER_MOVE TokenType = "PointerMove"
	TOKEN_POINTER_UP   TokenType = "PointerUp"
	TOKEN_CLICK        TokenType = "Click"

	// Commands - Gestures
	TOKEN_DRAG          TokenType = "Drag"
	TOKEN_RESIZE        TokenType = "Resize"
	TOKEN_DRAG_ICON     TokenType = "DragIcon"
	TOKEN_CLICK_ICON    TokenType = "ClickIcon"
	TOKEN_CLICK_DESKTOP TokenType = "ClickDesktop"
	TOKEN_DRAG_STICKY   TokenType = "DragSticky"
	TOKEN_TOGGLE_STICKY TokenType = "ToggleSticky"

	// Commands - Inspection
	TOKEN_SNAPSHOT TokenType = "Snapshot"
	TOKEN_EXPECT   TokenType = "Expect"

	// Keywords
	TOKEN_TRUE  TokenType = "true"
	TOKEN_FALSE TokenType = "false"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// IsCommand returns true if the token type is a command
func (tt TokenType) IsCommand() bool {
	switch tt {
	case TOKEN_VIEWPORT, TOKEN_TICK, TOKEN_SLEEP,
		TOKEN_OPEN, TOKEN_CLOSE, TOKEN_MINIMIZE, TOKEN_MAXIMIZE, TOKEN_FOCUS,
		TOKEN_RESTORE, TOKEN_RESTORE_ALL, TOKEN_FOCUS_NEXT, TOKEN_FOCUS_PREV,
		TOKEN_PLACE, TOKEN_DOCK_CLICK, TOKEN_NAVIGATE,
		TOKEN_POINTER_DOWN, TOKEN_POINTER_MOVE, TOKEN_POINTER_UP, TOKEN_CLICK,
		TOKEN_DRAG, TOKEN_RESIZE, TOKEN_DRAG_ICON, TOKEN_CLICK_ICON,
		TOKEN_CLICK_DESKTOP, TOKEN_DRAG_STICKY, TOKEN_TOGGLE_STICKY,
		TOKEN_SNAPSHOT, TOKEN_EXPECT:
		return true
	}
	return false
}

// IsPointer returns true if the token is a raw pointer event
func (tt TokenType) IsPointer() bool {
	switch tt {
	case TOKEN_POINTER_DOWN, TOKEN_POINTER_MOVE, TOKEN_POINTER_UP, TOKEN_CLICK:
		return true
	}
	return false
}

// KeywordTokenMap maps string keywords to token types
var KeywordTokenMap = map[string]TokenType{
	// Environment
	"Viewport": TOKEN_VIEWPORT,
	"Tick":     TOKEN_TICK,
	"Sleep":    TOKEN_SLEEP,

	// Windows
	"Open":       TOKEN_OPEN,
	"Close":      TOKEN_CLOSE,
	"Minimize":   TOKEN_MINIMIZE,
	"Maximize":   TOKEN_MAXIMIZE,
	"Focus":      TOKEN_FOCUS,
	"Restore":    TOKEN_RESTORE,
	"RestoreAll": TOKEN_RESTORE_ALL,
	"FocusNext":  TOKEN_FOCUS_NEXT,
	"FocusPrev":  TOKEN_FOCUS_PREV,
	"Place":      TOKEN_PLACE,
	"DockClick":  TOKEN_DOCK_CLICK,
	"Navigate":   TOKEN_NAVIGATE,

	// Pointer
	"PointerDown": TOKEN_POINTER_DOWN,
	"PointerMove": TOKEN_POINTER_MOVE,
	"PointerUp":   TOKEN_POINTER_UP,
	"Click":       TOKEN_CLICK,

	// Gestures
	"Drag":         TOKEN_DRAG,
	"Resize":       TOKEN_RESIZE,
	"DragIcon":     TOKEN_DRAG_ICON,
	"ClickIcon":    TOKEN_CLICK_ICON,
	"ClickDesktop": TOKEN_CLICK_DESKTOP,
	"DragSticky":   TOKEN_DRAG_STICKY,
	"ToggleSticky": TOKEN_TOGGLE_STICKY,

	// Inspection
	"Snapshot": TOKEN_SNAPSHOT,
	"Expect":   TOKEN_EXPECT,

	// Keywords
	"true":  TOKEN_TRUE,
	"false": TOKEN_FALSE,
}

// LookupKeyword returns the token type for a keyword, or IDENTIFIER if not found
func LookupKeyword(ident string) TokenType {
	if tok, ok := KeywordTokenMap[ident]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}
