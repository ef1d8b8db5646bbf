package lexer

import (
	"unicode"
)

// TokenType represents all the possible types of a lexical unit
type TokenType uint8

// List of types of lexical units
const (
	TokenInvalid            TokenType = iota
	TokenOpeningParenthesis           // Opening parenthesis: "("
	TokenClosingParenthesis           // Closing parenthesis: ")"
	TokenNumber                       // Decimal digits: [0-9]+
	TokenString                       // Anything between double quotes
	TokenIdentifier                   // Alphabetic characters only
)

var tokenValues = map[TokenType][]rune{
	TokenOpeningParenthesis: []rune{'('},
	TokenClosingParenthesis: []rune{')'},
	TokenNumber:             []rune("0123456789"),
}

var tokenNames = map[TokenType]string{
	TokenInvalid:            "invalid",
	TokenOpeningParenthesis: "opening_parenthesis",
	TokenClosingParenthesis: "closing_parenthesis",
	TokenNumber:             "number",
	TokenString:             "string",
	TokenIdentifier:         "identifier",
}

func (tt TokenType) String() string {
	if v, ok := tokenNames[tt]; ok {
		return v
	}
	return tokenNames[TokenInvalid]
}

func isTokenType(tt TokenType) func(r rune) bool {
	return func(r rune) bool {
		for _, v := range tokenValues[tt] {
			if v == r {
				return true
			}
		}
		return false
	}
}

var (
	isOpeningParenthesis = isTokenType(TokenOpeningParenthesis)
	isClosingParenthesis = isTokenType(TokenClosingParenthesis)
	isDigit              = isTokenType(TokenNumber)
)

func isDoubleQuote(r rune) bool {
	return r == '"'
}

func isWhitespace(r rune) bool {
	return unicode.IsSpace(r)
}

// isLetter reports whether r has the Unicode Alphabetic property.
func isLetter(r rune) bool {
	return unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_Alphabetic)
}
