package ast

import (
	"fmt"

	"github.com/xiam/callexpr/lexer"
)

// Node represents a leaf or a branch of the AST. The set of nodes is closed:
// *CallExpression, *NumberLiteral and *StringLiteral.
type Node interface {
	// Type returns the type of the node
	Type() NodeType
	// Position returns the position of the token that started the node
	Position() lexer.Position

	String() string

	node()
}

// CallExpression is a parenthesized form: (name param*). A call expression
// exclusively owns its params.
type CallExpression struct {
	Name   string
	Params []Node

	// Pos is the position of the opening parenthesis.
	Pos lexer.Position
}

// NumberLiteral holds the raw digits of a number.
type NumberLiteral struct {
	Digits string
	Pos    lexer.Position
}

// StringLiteral holds the raw text of a string, without quotes.
type StringLiteral struct {
	Value string
	Pos   lexer.Position
}

// NewCallExpression creates a call expression with no params.
func NewCallExpression(name string, pos lexer.Position) *CallExpression {
	return &CallExpression{
		Name:   name,
		Params: []Node{},
		Pos:    pos,
	}
}

// NewNumberLiteral creates a number literal from a number token.
func NewNumberLiteral(tok lexer.Number) *NumberLiteral {
	return &NumberLiteral{Digits: tok.Digits, Pos: tok.Pos()}
}

// NewStringLiteral creates a string literal from a string token.
func NewStringLiteral(tok lexer.String) *StringLiteral {
	return &StringLiteral{Value: tok.Value, Pos: tok.Pos()}
}

// Push appends a param to the call expression.
func (c *CallExpression) Push(n Node) {
	c.Params = append(c.Params, n)
}

func (*CallExpression) Type() NodeType { return NodeTypeCallExpression }
func (*NumberLiteral) Type() NodeType  { return NodeTypeNumberLiteral }
func (*StringLiteral) Type() NodeType  { return NodeTypeStringLiteral }

func (c *CallExpression) Position() lexer.Position { return c.Pos }
func (n *NumberLiteral) Position() lexer.Position  { return n.Pos }
func (s *StringLiteral) Position() lexer.Position  { return s.Pos }

func (c *CallExpression) String() string {
	return fmt.Sprintf("(%v %s)[%d]", c.Type(), c.Name, len(c.Params))
}

func (n *NumberLiteral) String() string {
	return fmt.Sprintf("(%v): %s", n.Type(), n.Digits)
}

func (s *StringLiteral) String() string {
	return fmt.Sprintf("(%v): %q", s.Type(), s.Value)
}

func (*CallExpression) node() {}
func (*NumberLiteral) node()  {}
func (*StringLiteral) node()  {}

// Inspect traverses the tree rooted at n in depth-first order. It calls fn
// for every node; if fn returns false the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	if c, ok := n.(*CallExpression); ok {
		for _, param := range c.Params {
			Inspect(param, fn)
		}
	}
}

// Count returns the number of nodes of the given type within the given trees.
func Count(nodes []Node, nt NodeType) int {
	count := 0
	for _, n := range nodes {
		Inspect(n, func(n Node) bool {
			if n.Type() == nt {
				count++
			}
			return true
		})
	}
	return count
}

var (
	_ = Node(&CallExpression{})
	_ = Node(&NumberLiteral{})
	_ = Node(&StringLiteral{})
)
