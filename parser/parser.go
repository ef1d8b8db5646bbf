package parser

import (
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"

	"github.com/xiam/callexpr/ast"
	"github.com/xiam/callexpr/lexer"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger that receives debug traces of the parse.
func WithLogger(l slog.Logger) Option {
	return func(p *Parser) {
		p.log = l
	}
}

// Parser builds a list of top-level nodes out of a list of tokens. A Parser
// reads its tokens only once, it is not safe for concurrent use.
type Parser struct {
	tokens []lexer.Token
	offset int

	log slog.Logger
}

// New creates a parser for the given tokens.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		log:    logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse consumes all the tokens and returns the top-level nodes in source
// order. The first error aborts the parse and no nodes are returned.
func (p *Parser) Parse() ([]ast.Node, error) {
	nodes := []ast.Node{}

	for {
		node, err := p.walk()
		if err != nil {
			p.log.Debugf("parser error: %v", err)
			return nil, err
		}
		if node == nil {
			break
		}
		nodes = append(nodes, node)
	}

	p.log.Debugf("parser: %d top-level nodes", len(nodes))
	return nodes, nil
}

// more reports whether there are tokens left.
func (p *Parser) more() bool {
	return p.offset < len(p.tokens)
}

// peek returns the current token without consuming it, or nil after the last
// token.
func (p *Parser) peek() lexer.Token {
	if p.more() {
		return p.tokens[p.offset]
	}
	return nil
}

// next consumes and returns the current token, or nil after the last token.
func (p *Parser) next() lexer.Token {
	tok := p.peek()
	if p.more() {
		p.offset++
	}
	return tok
}

// valid reports whether tok is one of the token values produced by the lexer.
// Nil entries and pointers to tokens are not.
func valid(tok lexer.Token) bool {
	switch tok.(type) {
	case lexer.OpeningParenthesis, lexer.ClosingParenthesis, lexer.Number, lexer.String, lexer.Identifier:
		return true
	}
	return false
}

// walk returns the node that starts at the current token. A nil node with a
// nil error means there are no more tokens.
func (p *Parser) walk() (ast.Node, error) {
	if !p.more() {
		return nil, nil
	}

	switch tok := p.peek().(type) {
	case lexer.Number:
		p.next()
		return ast.NewNumberLiteral(tok), nil

	case lexer.String:
		p.next()
		return ast.NewStringLiteral(tok), nil

	case lexer.OpeningParenthesis:
		p.next()
		return p.walkCallExpression(tok)

	case lexer.ClosingParenthesis:
		return nil, newError(ErrUnexpectedClosingParenthesis, tok, tok.Pos())

	case lexer.Identifier:
		return nil, newError(ErrUnexpectedIdentifier, tok, tok.Pos())
	}

	return nil, newInvalidTokenError(p.peek(), p.offset)
}

// walkCallExpression parses a call expression, open is the opening
// parenthesis that was already consumed.
func (p *Parser) walkCallExpression(open lexer.OpeningParenthesis) (ast.Node, error) {
	if !p.more() {
		return nil, newError(ErrMissingIdentifier, nil, open.Pos())
	}

	offset := p.offset
	tok := p.next()
	if !valid(tok) {
		return nil, newInvalidTokenError(tok, offset)
	}

	ident, ok := tok.(lexer.Identifier)
	if !ok {
		return nil, newError(ErrExpectedIdentifier, tok, tok.Pos())
	}

	call := ast.NewCallExpression(ident.Name, open.Pos())

	for {
		if !p.more() {
			return nil, newError(ErrMissingClosingParenthesis, nil, open.Pos())
		}
		if _, ok := p.peek().(lexer.ClosingParenthesis); ok {
			p.next()
			p.log.Debugf("parser: %v", call)
			return call, nil
		}

		param, err := p.walk()
		if err != nil {
			return nil, err
		}
		call.Push(param)
	}
}

// Parse builds the list of top-level nodes out of a list of tokens.
func Parse(tokens []lexer.Token, opts ...Option) ([]ast.Node, error) {
	return New(tokens, opts...).Parse()
}

// ParseBytes tokenizes and parses the given source.
func ParseBytes(in []byte, opts ...Option) ([]ast.Node, error) {
	p := New(nil, opts...)

	tokens, err := lexer.TokenizeBytes(in, lexer.WithLogger(p.log))
	if err != nil {
		return nil, err
	}
	p.tokens = tokens

	return p.Parse()
}
