// Package callexpr reads programs written as call expressions, such as
// (add 2 (subtract 4 2)), and returns their abstract syntax tree.
//
// Reading happens in two stages: package lexer turns text into tokens and
// package parser turns tokens into ast nodes. This package chains both.
package callexpr

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"

	"github.com/xiam/callexpr/ast"
	"github.com/xiam/callexpr/lexer"
	"github.com/xiam/callexpr/parser"
)

// Option configures a Reader.
type Option func(*Reader)

// WithLogger sets the logger used by both the lexer and the parser.
func WithLogger(l slog.Logger) Option {
	return func(r *Reader) {
		r.log = l
	}
}

// Reader reads a whole program from an io.Reader.
type Reader struct {
	r   io.Reader
	log slog.Logger

	tokens []lexer.Token
}

// NewReader creates a Reader.
func NewReader(r io.Reader, opts ...Option) *Reader {
	rd := &Reader{
		r:   r,
		log: logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Parse reads the program and returns its top-level nodes.
func (r *Reader) Parse() ([]ast.Node, error) {
	tokens, err := lexer.New(r.r, lexer.WithLogger(r.log)).Scan()
	if err != nil {
		return nil, err
	}
	r.tokens = tokens

	return parser.Parse(tokens, parser.WithLogger(r.log))
}

// Tokens returns the tokens read by the last call to Parse.
func (r *Reader) Tokens() []lexer.Token {
	return r.tokens
}

// Parse reads a program from a slice of bytes.
func Parse(in []byte, opts ...Option) ([]ast.Node, error) {
	return NewReader(bytes.NewReader(in), opts...).Parse()
}

// ParseString reads a program from a string.
func ParseString(in string, opts ...Option) ([]ast.Node, error) {
	return NewReader(strings.NewReader(in), opts...).Parse()
}

// Position returns the source position of an error returned by the lexer or
// the parser.
func Position(err error) (lexer.Position, bool) {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Position, true
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Pos, parseErr.Pos.Line > 0
	}
	return lexer.Position{}, false
}
