package lexer

import (
	"errors"
	"fmt"
)

// ErrUnexpectedCharacter is the only kind of error the lexer reports.
var ErrUnexpectedCharacter = errors.New("unexpected character")

// Error carries the character the lexer could not classify.
type Error struct {
	Character rune
	Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot understand character %q at %v", e.Character, e.Position)
}

func (e *Error) Unwrap() error {
	return ErrUnexpectedCharacter
}
