package parser

import (
	"errors"
	"fmt"

	"github.com/xiam/callexpr/lexer"
)

var (
	ErrMissingIdentifier            = errors.New("missing identifier in call expression")
	ErrExpectedIdentifier           = errors.New("expected identifier in call expression")
	ErrMissingClosingParenthesis    = errors.New("missing closing parenthesis")
	ErrUnexpectedClosingParenthesis = errors.New("unexpected closing parenthesis")
	ErrUnexpectedIdentifier         = errors.New("unexpected identifier")
	ErrInvalidToken                 = errors.New("invalid token")
)

// Error is returned by the parser. It wraps one of the Err* values above.
type Error struct {
	Err error

	// Token is the offending token, nil when the error is about a missing
	// token.
	Token lexer.Token

	// Pos is the position of the offending token, or of the unclosed opening
	// parenthesis when there's no token to blame. It is zero for
	// ErrInvalidToken.
	Pos lexer.Position

	// Offset is the index of the offending token in the input.
	Offset int
}

func newError(err error, tok lexer.Token, pos lexer.Position) *Error {
	return &Error{Err: err, Token: tok, Pos: pos}
}

func newInvalidTokenError(tok lexer.Token, offset int) *Error {
	return &Error{Err: ErrInvalidToken, Token: tok, Offset: offset}
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrInvalidToken):
		return fmt.Sprintf("%v %T at offset %d", e.Err, e.Token, e.Offset)
	case errors.Is(e.Err, ErrExpectedIdentifier):
		return fmt.Sprintf("%v at %v, but got %v %q", e.Err, e.Pos, e.Token.Type(), e.Token.Text())
	case errors.Is(e.Err, ErrUnexpectedIdentifier):
		return fmt.Sprintf("%v %q at %v", e.Err, e.Token.Text(), e.Pos)
	}
	return fmt.Sprintf("%v at %v", e.Err, e.Pos)
}

func (e *Error) Unwrap() error {
	return e.Err
}
