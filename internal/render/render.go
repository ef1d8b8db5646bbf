// Package render writes trees and tokens in the formats supported by the
// callexpr command.
package render

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/Jeffail/gabs/v2"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/xiam/callexpr/ast"
	"github.com/xiam/callexpr/lexer"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatSExpr Format = "sexpr"
	FormatTree  Format = "tree"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatXML   Format = "xml"
	FormatDump  Format = "dump"
	FormatText  Format = "text"
)

// ErrUnknownFormat is returned for formats that can't render the requested
// value.
var ErrUnknownFormat = errors.New("unknown format")

// TreeFormats lists the formats accepted by Tree.
var TreeFormats = []Format{FormatTree, FormatSExpr, FormatJSON, FormatYAML, FormatXML, FormatDump}

// TokenFormats lists the formats accepted by Tokens.
var TokenFormats = []Format{FormatText, FormatJSON, FormatYAML}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Tree writes the given nodes to w.
func Tree(w io.Writer, format Format, nodes []ast.Node) error {
	switch format {
	case FormatTree:
		return ast.Print(w, nodes...)

	case FormatSExpr:
		_, err := fmt.Fprintf(w, "%s\n", ast.Encode(nodes))
		return err

	case FormatJSON, FormatYAML:
		items := make([]interface{}, 0, len(nodes))
		for _, n := range nodes {
			c, err := nodeContainer(n)
			if err != nil {
				return err
			}
			items = append(items, c.Data())
		}
		return structured(w, format, items)

	case FormatXML:
		return writeXML(w, nodes)

	case FormatDump:
		dumper.Fdump(w, nodes)
		return nil
	}

	return errors.Wrapf(ErrUnknownFormat, "%q for trees (want one of %s)", format, join(TreeFormats))
}

// Tokens writes the given tokens to w.
func Tokens(w io.Writer, format Format, tokens []lexer.Token) error {
	switch format {
	case FormatText:
		for i, tok := range tokens {
			pos := tok.Pos()
			if _, err := fmt.Fprintf(w, "%d\t%d:%d\t%v\t%q\n", i, pos.Line, pos.Column, tok.Type(), tok.Text()); err != nil {
				return err
			}
		}
		return nil

	case FormatJSON, FormatYAML:
		items := make([]interface{}, 0, len(tokens))
		for _, tok := range tokens {
			c := gabs.New()
			pos := tok.Pos()
			for _, kv := range []struct {
				value interface{}
				key   string
			}{
				{tok.Type().String(), "type"},
				{tok.Text(), "text"},
				{pos.Line, "line"},
				{pos.Column, "column"},
			} {
				if _, err := c.Set(kv.value, kv.key); err != nil {
					return errors.Wrap(err, "building token")
				}
			}
			items = append(items, c.Data())
		}
		return structured(w, format, items)
	}

	return errors.Wrapf(ErrUnknownFormat, "%q for tokens (want one of %s)", format, join(TokenFormats))
}

func nodeContainer(n ast.Node) (*gabs.Container, error) {
	c := gabs.New()
	pos := n.Position()

	if _, err := c.Set(n.Type().String(), "type"); err != nil {
		return nil, err
	}
	if _, err := c.Set(pos.Line, "line"); err != nil {
		return nil, err
	}
	if _, err := c.Set(pos.Column, "column"); err != nil {
		return nil, err
	}

	switch n := n.(type) {
	case *ast.CallExpression:
		if _, err := c.Set(n.Name, "name"); err != nil {
			return nil, err
		}
		if _, err := c.Array("params"); err != nil {
			return nil, err
		}
		for _, param := range n.Params {
			child, err := nodeContainer(param)
			if err != nil {
				return nil, err
			}
			if err := c.ArrayAppend(child.Data(), "params"); err != nil {
				return nil, err
			}
		}

	case *ast.NumberLiteral:
		if _, err := c.Set(n.Digits, "value"); err != nil {
			return nil, err
		}

	case *ast.StringLiteral:
		if _, err := c.Set(n.Value, "value"); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func structured(w io.Writer, format Format, items []interface{}) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return enc.Close()
	}

	_, err := fmt.Fprintln(w, gabs.Wrap(items).StringIndent("", "  "))
	return err
}

func writeXML(w io.Writer, nodes []ast.Node) error {
	var b strings.Builder

	b.WriteString("<program>\n")
	for _, n := range nodes {
		if err := writeXMLNode(&b, n, 1); err != nil {
			return err
		}
	}
	b.WriteString("</program>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeXMLNode(b *strings.Builder, n ast.Node, level int) error {
	indent := strings.Repeat("  ", level)

	switch n := n.(type) {
	case *ast.CallExpression:
		fmt.Fprintf(b, "%s<%s name=\"", indent, n.Type())
		if err := xml.EscapeText(b, []byte(n.Name)); err != nil {
			return err
		}
		if len(n.Params) == 0 {
			b.WriteString("\"/>\n")
			return nil
		}
		b.WriteString("\">\n")
		for _, param := range n.Params {
			if err := writeXMLNode(b, param, level+1); err != nil {
				return err
			}
		}
		fmt.Fprintf(b, "%s</%s>\n", indent, n.Type())

	case *ast.NumberLiteral:
		fmt.Fprintf(b, "%s<%s>%s</%s>\n", indent, n.Type(), n.Digits, n.Type())

	case *ast.StringLiteral:
		fmt.Fprintf(b, "%s<%s>", indent, n.Type())
		if err := xml.EscapeText(b, []byte(n.Value)); err != nil {
			return err
		}
		fmt.Fprintf(b, "</%s>\n", n.Type())
	}

	return nil
}

// ParseFormat validates a format name.
func ParseFormat(s string, accepted []Format) (Format, error) {
	for _, f := range accepted {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q (want one of %s)", s, join(accepted))
}

func join(formats []Format) string {
	s := make([]string, 0, len(formats))
	for _, f := range formats {
		s = append(s, string(f))
	}
	return strings.Join(s, ", ")
}
