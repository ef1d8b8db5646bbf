package lexer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
)

type lexState func(*Lexer) lexState

// Option configures a Lexer.
type Option func(*Lexer)

// WithLogger sets the logger that receives debug traces of the scan.
func WithLogger(l slog.Logger) Option {
	return func(lx *Lexer) {
		lx.log = l
	}
}

// New initializes a Lexer object
func New(r io.Reader, opts ...Option) *Lexer {
	lx := &Lexer{
		in:  bufio.NewReader(r),
		log: logger.NewNopLogger(),
		buf: []rune{},

		start: Position{Line: 1, Column: 1},
		pos:   Position{Line: 1, Column: 1},
	}
	for _, opt := range opts {
		opt(lx)
	}
	return lx
}

// Lexer represents a lexical analyzer
type Lexer struct {
	in  *bufio.Reader
	log slog.Logger

	tokens  []Token
	lastErr error

	buf   []rune
	width int

	start Position
	pos   Position
}

// Scan reads the whole input and returns the tokens found in it, in input
// order. Scanning stops at the first character that can't be classified, in
// that case no tokens are returned.
func (lx *Lexer) Scan() ([]Token, error) {
	lx.tokens = []Token{}

	for state := lexDefaultState; state != nil; {
		state = state(lx)
	}

	if lx.lastErr != nil {
		return nil, lx.lastErr
	}

	lx.log.Debugf("lexer: %d tokens", len(lx.tokens))
	return lx.tokens, nil
}

func (lx *Lexer) emit(tt TokenType) {
	tok := NewToken(tt, string(lx.buf), lx.start.Line, lx.start.Column)
	lx.log.Debugf("lexer: emit %v", tok)

	lx.tokens = append(lx.tokens, tok)
	lx.ignore()
}

// ignore discards the buffered runes.
func (lx *Lexer) ignore() {
	lx.start = lx.pos
	lx.buf = lx.buf[0:0]
}

func (lx *Lexer) peek() (rune, error) {
	r, _, err := lx.in.ReadRune()
	if err != nil {
		return 0, err
	}
	if err := lx.in.UnreadRune(); err != nil {
		return 0, err
	}
	return r, nil
}

func (lx *Lexer) next() (rune, error) {
	r, width, err := lx.in.ReadRune()
	if err != nil {
		return 0, err
	}
	lx.width = width

	if r == '\n' {
		lx.pos.Line++
		lx.pos.Column = 1
	} else {
		lx.pos.Column++
	}

	lx.buf = append(lx.buf, r)
	return r, nil
}

func lexDefaultState(lx *Lexer) lexState {
	r, err := lx.next()
	if err != nil {
		return lexStateError(err)
	}

	switch {
	case isOpeningParenthesis(r):
		return lexEmit(TokenOpeningParenthesis)
	case isClosingParenthesis(r):
		return lexEmit(TokenClosingParenthesis)

	case isWhitespace(r):
		lx.ignore()
		return lexDefaultState

	case isDigit(r):
		return lexCollectStream(TokenNumber, isDigit)
	case isDoubleQuote(r):
		return lexString
	case isLetter(r):
		return lexCollectStream(TokenIdentifier, isLetter)
	}

	return lexStateError(&Error{Character: r, Position: lx.start})
}

// lexString collects everything up to the closing quote. Reaching the end of
// the input before the closing quote ends the string. Bytes that are not valid
// UTF-8 are rejected.
func lexString(lx *Lexer) lexState {
	// Drop the opening quote but keep the token position on it.
	lx.buf = lx.buf[0:0]

	for {
		pos := lx.pos
		r, err := lx.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return lexStateError(err)
		}
		if r == utf8.RuneError && lx.width == 1 {
			return lexStateError(&Error{Character: r, Position: pos})
		}
		if isDoubleQuote(r) {
			lx.buf = lx.buf[:len(lx.buf)-1]
			break
		}
	}

	return lexEmit(TokenString)
}

func lexEmit(tt TokenType) lexState {
	return func(lx *Lexer) lexState {
		lx.emit(tt)
		return lexDefaultState
	}
}

func lexCollectStream(tt TokenType, accept func(rune) bool) lexState {
	return func(lx *Lexer) lexState {
		for {
			p, err := lx.peek()
			if err == io.EOF || (err == nil && !accept(p)) {
				break
			}
			if err != nil {
				return lexStateError(err)
			}
			if _, err := lx.next(); err != nil {
				return lexStateError(err)
			}
		}
		return lexEmit(tt)
	}
}

func lexStateError(err error) lexState {
	if err == io.EOF {
		return nil
	}
	return func(lx *Lexer) lexState {
		lx.log.Debugf("lexer error: %v", err)
		if _, ok := err.(*Error); !ok {
			err = fmt.Errorf("lexer: %w", err)
		}
		lx.lastErr = err
		return nil
	}
}

// Tokenize takes a source text and returns all the tokens within it, or an
// error if a character can't be identified.
func Tokenize(in string, opts ...Option) ([]Token, error) {
	return New(strings.NewReader(in), opts...).Scan()
}

// TokenizeBytes is like Tokenize but reads from a slice of bytes.
func TokenizeBytes(in []byte, opts ...Option) ([]Token, error) {
	return New(bytes.NewReader(in), opts...).Scan()
}
