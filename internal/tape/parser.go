package tape

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/deskfolio/internal/input"
)

// argKind describes what a positional argument must look like.
type argKind int

const (
	argID argKind = iota
	argInt
	argDirection
)

func (k argKind) String() string {
	switch k {
	case argInt:
		return "an integer"
	case argDirection:
		return "a resize direction"
	}
	return "an id"
}

// signatures lists the positional arguments of the fixed-arity commands.
var signatures = map[CommandType][]argKind{
	CommandType_Viewport:     {argInt, argInt},
	CommandType_Tick:         nil,
	CommandType_Open:         {argID},
	CommandType_Close:        {argID},
	CommandType_Minimize:     {argID},
	CommandType_Maximize:     {argID},
	CommandType_Focus:        {argID},
	CommandType_Restore:      {argID},
	CommandType_RestoreAll:   nil,
	CommandType_FocusNext:    nil,
	CommandType_FocusPrev:    nil,
	CommandType_Place:        {argID, argInt, argInt, argInt, argInt},
	CommandType_DockClick:    {argID},
	CommandType_PointerDown:  {argInt, argInt},
	CommandType_PointerMove:  {argInt, argInt},
	CommandType_PointerUp:    {argInt, argInt},
	CommandType_Click:        {argInt, argInt},
	CommandType_Drag:         {argID, argInt, argInt},
	CommandType_Resize:       {argID, argDirection, argInt, argInt},
	CommandType_DragIcon:     {argID, argInt, argInt},
	CommandType_ClickIcon:    {argID},
	CommandType_ClickDesktop: nil,
	CommandType_DragSticky:   {argID, argInt, argInt},
	CommandType_ToggleSticky: {argID},
	CommandType_Snapshot:     nil,
}

// Expect scopes and the keys each one understands.
var expectKeys = map[string][]string{
	"window":  {"x", "y", "width", "height", "z", "open", "minimized", "maximized", "auto_maximized"},
	"icon":    {"x", "y", "z", "selected"},
	"sticky":  {"x", "y", "width", "height", "z", "expanded"},
	"dock":    {"active", "bounces"},
	"desktop": {"windows", "focused", "selected", "compact", "auto_maximize", "width", "height"},
}

// Parser parses tape commands from tokens
type Parser struct {
	lexer   *Lexer
	curTok  Token
	peekTok Token
	errors  []string
}

// NewParser creates a new parser
func NewParser(l *Lexer) *Parser {
	p := &Parser{
		lexer:  l,
		errors: []string{},
	}
	// Read two tokens to initialize curTok and peekTok
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lexer.NextToken()
}

// Parse parses all commands from the input
func (p *Parser) Parse() []Command {
	var commands []Command

	for p.curTok.Type != TOKEN_EOF {
		if p.curTok.Type == TOKEN_NEWLINE {
			p.nextToken()
			continue
		}

		cmd, ok := p.parseCommand()
		if ok {
			commands = append(commands, cmd)
		}
	}

	return commands
}

// parseCommand parses a single command
func (p *Parser) parseCommand() (Command, bool) {
	switch p.curTok.Type {
	case TOKEN_SLEEP:
		return p.parseSleepCommand()
	case TOKEN_NAVIGATE:
		return p.parseNavigateCommand()
	case TOKEN_EXPECT:
		return p.parseExpectCommand()
	}

	cmdType := CommandType(p.curTok.Type)
	kinds, ok := signatures[cmdType]
	if !ok {
		p.addError(fmt.Sprintf("unknown command %q", p.curTok.Literal))
		p.skipToNextLine()
		return Command{}, false
	}
	return p.parseArgsCommand(cmdType, kinds)
}

// parseArgsCommand parses a command with fixed positional arguments
func (p *Parser) parseArgsCommand(cmdType CommandType, kinds []argKind) (Command, bool) {
	cmd := Command{
		Type:   cmdType,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}

	p.nextToken() // consume command

	for i, kind := range kinds {
		if p.atLineEnd() {
			p.addError(fmt.Sprintf("%s expects %d argument(s), got %d", cmdType, len(kinds), i))
			p.skipToNextLine()
			return cmd, false
		}
		lit := p.curTok.Literal
		if !p.matches(kind) {
			p.addError(fmt.Sprintf("%s argument %d must be %s, got %q", cmdType, i+1, kind, lit))
			p.skipToNextLine()
			return cmd, false
		}
		cmd.Args = append(cmd.Args, lit)
		p.nextToken()
	}

	if !p.atLineEnd() {
		p.addError(fmt.Sprintf("%s takes %d argument(s), unexpected %q", cmdType, len(kinds), p.curTok.Literal))
		p.skipToNextLine()
		return cmd, false
	}

	cmd.Raw = cmd.String()
	return cmd, true
}

// matches reports whether the current token can serve as an argument of kind
func (p *Parser) matches(kind argKind) bool {
	switch kind {
	case argInt:
		if p.curTok.Type != TOKEN_NUMBER {
			return false
		}
		_, err := strconv.Atoi(p.curTok.Literal)
		return err == nil
	case argDirection:
		if p.curTok.Type != TOKEN_IDENTIFIER {
			return false
		}
		_, err := input.ParseDirection(p.curTok.Literal)
		return err == nil
	default:
		return p.curTok.Type == TOKEN_IDENTIFIER || p.curTok.Type == TOKEN_STRING
	}
}

// parseSleepCommand parses Sleep <duration>. A bare number is milliseconds.
func (p *Parser) parseSleepCommand() (Command, bool) {
	cmd := Command{
		Type:   CommandType_Sleep,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}

	p.nextToken() // consume Sleep

	lit := p.curTok.Literal
	switch p.curTok.Type {
	case TOKEN_DURATION:
	case TOKEN_NUMBER:
		lit += "ms"
	default:
		p.addError("Sleep command expects a duration")
		p.skipToNextLine()
		return cmd, false
	}

	d, err := ParseDuration(lit)
	if err != nil {
		p.addError(err.Error())
		p.skipToNextLine()
		return cmd, false
	}
	cmd.Args = []string{lit}
	cmd.Delay = d
	cmd.Raw = fmt.Sprintf("Sleep %s", lit)
	p.nextToken()

	if !p.atLineEnd() {
		p.skipToNextLine()
	}
	return cmd, true
}

// parseNavigateCommand parses Navigate /path or Navigate "/path"
func (p *Parser) parseNavigateCommand() (Command, bool) {
	cmd := Command{
		Type:   CommandType_Navigate,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}

	p.nextToken() // consume Navigate

	if p.curTok.Type != TOKEN_PATH && p.curTok.Type != TOKEN_STRING {
		p.addError("Navigate command expects a path")
		p.skipToNextLine()
		return cmd, false
	}
	cmd.Args = []string{p.curTok.Literal}
	cmd.Raw = fmt.Sprintf("Navigate %s", p.curTok.Literal)
	p.nextToken()

	if !p.atLineEnd() {
		p.skipToNextLine()
	}
	return cmd, true
}

// parseExpectCommand parses Expect <scope> [id] <key> <value>. The desktop
// scope has no id.
func (p *Parser) parseExpectCommand() (Command, bool) {
	cmd := Command{
		Type:   CommandType_Expect,
		Line:   p.curTok.Line,
		Column: p.curTok.Column,
	}

	p.nextToken() // consume Expect

	var words []string
	for !p.atLineEnd() {
		switch p.curTok.Type {
		case TOKEN_IDENTIFIER, TOKEN_STRING, TOKEN_NUMBER, TOKEN_TRUE, TOKEN_FALSE:
			words = append(words, p.curTok.Literal)
		default:
			p.addError(fmt.Sprintf("Expect: unexpected %q", p.curTok.Literal))
			p.skipToNextLine()
			return cmd, false
		}
		p.nextToken()
	}

	if len(words) == 0 {
		p.addError("Expect command expects a scope")
		return cmd, false
	}
	scope := words[0]
	keys, ok := expectKeys[scope]
	if !ok {
		p.addError(fmt.Sprintf("Expect: unknown scope %q", scope))
		return cmd, false
	}
	want := 4
	if scope == "desktop" {
		want = 3
	}
	if len(words) != want {
		p.addError(fmt.Sprintf("Expect %s takes %d argument(s), got %d", scope, want-1, len(words)-1))
		return cmd, false
	}
	if key := words[want-2]; !slices.Contains(keys, key) {
		p.addError(fmt.Sprintf("Expect %s: unknown key %q (want one of %s)", scope, key, strings.Join(keys, ", ")))
		return cmd, false
	}

	cmd.Args = words
	cmd.Raw = cmd.String()
	return cmd, true
}

// atLineEnd reports whether the current token ends the command
func (p *Parser) atLineEnd() bool {
	return p.curTok.Type == TOKEN_NEWLINE || p.curTok.Type == TOKEN_EOF
}

// skipToNextLine skips tokens until the next newline
func (p *Parser) skipToNextLine() {
	for !p.atLineEnd() {
		p.nextToken()
	}
}

// addError adds an error to the parser's error list
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, fmt.Sprintf("line %d: %s", p.curTok.Line, msg))
}

// Errors returns the list of parser errors
func (p *Parser) Errors() []string {
	return p.errors
}

// ParseFile parses a tape file from a string
func ParseFile(content string) ([]Command, []string) {
	l := New(content)
	p := NewParser(l)
	commands := p.Parse()
	return commands, p.Errors()
}

// atoi converts an argument the parser already validated as a number.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
