package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes a human-readable representation of the given nodes to w.
func Print(w io.Writer, nodes ...Node) error {
	for _, n := range nodes {
		if err := printLevel(w, n, 0); err != nil {
			return err
		}
	}
	return nil
}

func printLevel(w io.Writer, n Node, level int) error {
	indent := strings.Repeat("    ", level)

	switch n := n.(type) {
	case *CallExpression:
		if _, err := fmt.Fprintf(w, "%s(%s): %s [%v]\n", indent, n.Type(), n.Name, n.Pos); err != nil {
			return err
		}
		for i := range n.Params {
			if err := printLevel(w, n.Params[i], level+1); err != nil {
				return err
			}
		}
		return nil

	case *NumberLiteral:
		_, err := fmt.Fprintf(w, "%s(%s): %s [%v]\n", indent, n.Type(), n.Digits, n.Pos)
		return err

	case *StringLiteral:
		_, err := fmt.Fprintf(w, "%s(%s): %q [%v]\n", indent, n.Type(), n.Value, n.Pos)
		return err

	case nil:
		_, err := fmt.Fprintf(w, "%s:nil\n", indent)
		return err
	}

	panic("unknown node type")
}

// Encode transforms the given nodes into source text. Parsing the result
// yields the same nodes.
func Encode(nodes []Node) []byte {
	var b strings.Builder
	for i := range nodes {
		if i > 0 {
			b.WriteByte(' ')
		}
		encodeNode(&b, nodes[i])
	}
	return []byte(b.String())
}

func encodeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *CallExpression:
		b.WriteByte('(')
		b.WriteString(n.Name)
		for i := range n.Params {
			b.WriteByte(' ')
			encodeNode(b, n.Params[i])
		}
		b.WriteByte(')')

	case *NumberLiteral:
		b.WriteString(n.Digits)

	case *StringLiteral:
		// No escaping, strings can't contain double quotes.
		b.WriteByte('"')
		b.WriteString(n.Value)
		b.WriteByte('"')

	default:
		panic("unknown node type")
	}
}
