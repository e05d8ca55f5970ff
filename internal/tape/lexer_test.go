package tape

import (
	"testing"
)

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "Open command",
			input:    `Open about`,
			expected: []TokenType{TOKEN_OPEN, TOKEN_IDENTIFIER, TOKEN_EOF},
		},
		{
			name:     "Sleep command",
			input:    `Sleep 500ms`,
			expected: []TokenType{TOKEN_SLEEP, TOKEN_DURATION, TOKEN_EOF},
		},
		{
			name:     "Viewport command",
			input:    `Viewport 1280 800`,
			expected: []TokenType{TOKEN_VIEWPORT, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Negative delta",
			input:    `Drag about -40 12`,
			expected: []TokenType{TOKEN_DRAG, TOKEN_IDENTIFIER, TOKEN_NUMBER, TOKEN_NUMBER, TOKEN_EOF},
		},
		{
			name:     "Navigate path",
			input:    `Navigate /blog/first-post`,
			expected: []TokenType{TOKEN_NAVIGATE, TOKEN_PATH, TOKEN_EOF},
		},
		{
			name:     "Expect boolean",
			input:    `Expect window about maximized true`,
			expected: []TokenType{TOKEN_EXPECT, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_TRUE, TOKEN_EOF},
		},
		{
			name:     "Illegal character",
			input:    `Open $`,
			expected: []TokenType{TOKEN_OPEN, TOKEN_ILLEGAL, TOKEN_EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := Tokenize(tt.input)

			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}

			for i, expectedType := range tt.expected {
				if tokens[i].Type != expectedType {
					t.Errorf("Token %d: expected %v, got %v", i, expectedType, tokens[i].Type)
				}
			}
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		tokenType     TokenType
		expectedValue string
	}{
		{"Double quoted string", `Navigate "/work"`, TOKEN_STRING, "/work"},
		{"Single quoted string", `Open 'about'`, TOKEN_STRING, "about"},
		{"Escaped quotes", `Open "a \"b\""`, TOKEN_STRING, `a "b"`},
		{"Negative number", `Drag about -5000 3`, TOKEN_NUMBER, "-5000"},
		{"Milliseconds", `Sleep 500ms`, TOKEN_DURATION, "500ms"},
		{"Decimal seconds", `Sleep 1.5s`, TOKEN_DURATION, "1.5s"},
		{"Path stops at comment", `Navigate /music#x`, TOKEN_PATH, "/music"},
		{"Dashed identifier", `Open bottom-right`, TOKEN_IDENTIFIER, "bottom-right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var found Token
			for _, tok := range Tokenize(tt.input) {
				if tok.Type == tt.tokenType {
					found = tok
					break
				}
			}

			if found.Literal != tt.expectedValue {
				t.Errorf("Expected %q, got %q", tt.expectedValue, found.Literal)
			}
		})
	}
}

func TestLexerComments(t *testing.T) {
	input := `# This is a comment
Open about
# Another comment
Tick`

	var types []TokenType
	for _, tok := range Tokenize(input) {
		if tok.Type != TOKEN_NEWLINE {
			types = append(types, tok.Type)
		}
	}

	expected := []TokenType{TOKEN_OPEN, TOKEN_IDENTIFIER, TOKEN_TICK, TOKEN_EOF}

	if len(types) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), len(types))
	}

	for i, expectedType := range expected {
		if types[i] != expectedType {
			t.Errorf("Token %d: expected %v, got %v", i, expectedType, types[i])
		}
	}
}

func TestLexerLineNumbers(t *testing.T) {
	input := `Open about
Open work

Open music`

	var opens []Token
	for _, tok := range Tokenize(input) {
		if tok.Type == TOKEN_OPEN {
			opens = append(opens, tok)
		}
	}

	expectedLines := []int{1, 2, 4}

	if len(opens) != len(expectedLines) {
		t.Fatalf("Expected %d OPEN tokens, got %d", len(expectedLines), len(opens))
	}

	for i, expectedLine := range expectedLines {
		if opens[i].Line != expectedLine {
			t.Errorf("Token %d: expected line %d, got %d", i, expectedLine, opens[i].Line)
		}
		if opens[i].Column != 1 {
			t.Errorf("Token %d: expected column 1, got %d", i, opens[i].Column)
		}
	}
}

func TestKeywordTokenMap(t *testing.T) {
	tests := []struct {
		name     string
		keyword  string
		expected TokenType
	}{
		{"Open", "Open", TOKEN_OPEN},
		{"Sleep", "Sleep", TOKEN_SLEEP},
		{"PointerDown", "PointerDown", TOKEN_POINTER_DOWN},
		{"ToggleSticky", "ToggleSticky", TOKEN_TOGGLE_STICKY},
		{"Lowercase is not a keyword", "open", TOKEN_IDENTIFIER},
		{"Unknown", "UnknownKeyword", TOKEN_IDENTIFIER},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenType := LookupKeyword(tt.keyword)
			if tokenType != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tokenType)
			}
		})
	}
}

func TestTokenTypeHelpers(t *testing.T) {
	t.Run("IsCommand", func(t *testing.T) {
		if !TOKEN_OPEN.IsCommand() {
			t.Error("TOKEN_OPEN should be a command")
		}
		if TOKEN_STRING.IsCommand() {
			t.Error("TOKEN_STRING should not be a command")
		}
		for keyword, tok := range KeywordTokenMap {
			if tok == TOKEN_TRUE || tok == TOKEN_FALSE {
				continue
			}
			if !tok.IsCommand() {
				t.Errorf("%s is in the keyword map but is not a command", keyword)
			}
		}
	})

	t.Run("IsPointer", func(t *testing.T) {
		if !TOKEN_POINTER_MOVE.IsPointer() {
			t.Error("TOKEN_POINTER_MOVE should be a pointer event")
		}
		if TOKEN_DRAG.IsPointer() {
			t.Error("TOKEN_DRAG should not be a pointer event")
		}
	})
}
