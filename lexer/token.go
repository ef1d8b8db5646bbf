package lexer

import (
	"fmt"
)

// Position is the line and column (both starting at 1) of the first
// character of a lexical unit. Columns are counted in runes.
type Position struct {
	Line   int
	Column int
}

// Pos returns the position itself, it allows tokens to expose the position
// they embed.
func (p Position) Pos() Position {
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a known sequence of characters (lexical unit). The set of
// tokens is closed: OpeningParenthesis, ClosingParenthesis, Number, String
// and Identifier.
type Token interface {
	// Type returns the type of the lexical unit
	Type() TokenType
	// Text returns the raw text of the lexical unit
	Text() string
	// Pos returns the line and column of the lexical unit
	Pos() Position

	String() string

	token()
}

// OpeningParenthesis is the "(" token.
type OpeningParenthesis struct {
	Position
}

// ClosingParenthesis is the ")" token.
type ClosingParenthesis struct {
	Position
}

// Number is a run of decimal digits, kept verbatim.
type Number struct {
	Position
	Digits string
}

// String is the text between two double quotes, without the quotes.
type String struct {
	Position
	Value string
}

// Identifier is a run of letters.
type Identifier struct {
	Position
	Name string
}

func (OpeningParenthesis) Type() TokenType { return TokenOpeningParenthesis }
func (ClosingParenthesis) Type() TokenType { return TokenClosingParenthesis }
func (Number) Type() TokenType             { return TokenNumber }
func (String) Type() TokenType             { return TokenString }
func (Identifier) Type() TokenType         { return TokenIdentifier }

func (OpeningParenthesis) Text() string { return "(" }
func (ClosingParenthesis) Text() string { return ")" }
func (t Number) Text() string           { return t.Digits }
func (t String) Text() string           { return t.Value }
func (t Identifier) Text() string       { return t.Name }

func (t OpeningParenthesis) String() string { return format(t) }
func (t ClosingParenthesis) String() string { return format(t) }
func (t Number) String() string             { return format(t) }
func (t String) String() string             { return format(t) }
func (t Identifier) String() string         { return format(t) }

func (OpeningParenthesis) token() {}
func (ClosingParenthesis) token() {}
func (Number) token()             {}
func (String) token()             {}
func (Identifier) token()         {}

func format(t Token) string {
	pos := t.Pos()
	return fmt.Sprintf("(:%v %q [%d %d])", t.Type(), t.Text(), pos.Line, pos.Column)
}

// NewToken creates a lexical unit of the given type. It returns nil if tt is
// not a valid token type.
func NewToken(tt TokenType, text string, line int, col int) Token {
	pos := Position{Line: line, Column: col}
	switch tt {
	case TokenOpeningParenthesis:
		return OpeningParenthesis{Position: pos}
	case TokenClosingParenthesis:
		return ClosingParenthesis{Position: pos}
	case TokenNumber:
		return Number{Position: pos, Digits: text}
	case TokenString:
		return String{Position: pos, Value: text}
	case TokenIdentifier:
		return Identifier{Position: pos, Name: text}
	}
	return nil
}

var (
	_ = Token(OpeningParenthesis{})
	_ = Token(ClosingParenthesis{})
	_ = Token(Number{})
	_ = Token(String{})
	_ = Token(Identifier{})
)
