package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiam/callexpr/ast"
	"github.com/xiam/callexpr/lexer"
)

var cmpOpts = []cmp.Option{
	cmpopts.IgnoreTypes(lexer.Position{}),
	cmpopts.EquateEmpty(),
}

func call(name string, params ...ast.Node) *ast.CallExpression {
	return &ast.CallExpression{Name: name, Params: params}
}

func num(digits string) *ast.NumberLiteral {
	return &ast.NumberLiteral{Digits: digits}
}

func str(value string) *ast.StringLiteral {
	return &ast.StringLiteral{Value: value}
}

func TestParseTokens(t *testing.T) {
	tokens := []lexer.Token{
		lexer.OpeningParenthesis{},
		lexer.Identifier{Name: "add"},
		lexer.Number{Digits: "2"},
		lexer.OpeningParenthesis{},
		lexer.Identifier{Name: "subtract"},
		lexer.Number{Digits: "4"},
		lexer.Number{Digits: "2"},
		lexer.ClosingParenthesis{},
		lexer.ClosingParenthesis{},
	}

	nodes, err := Parse(tokens)
	require.NoError(t, err)

	want := []ast.Node{
		call("add", num("2"), call("subtract", num("4"), num("2"))),
	}
	if diff := cmp.Diff(want, nodes, cmpOpts...); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParserBuildTree(t *testing.T) {
	testCases := []struct {
		In  string
		Out []ast.Node
	}{
		{
			In:  ``,
			Out: []ast.Node{},
		},
		{
			In:  "  \n\t",
			Out: []ast.Node{},
		},
		{
			In:  `1`,
			Out: []ast.Node{num("1")},
		},
		{
			In:  `1 22 "three"`,
			Out: []ast.Node{num("1"), num("22"), str("three")},
		},
		{
			In:  `(f)`,
			Out: []ast.Node{call("f")},
		},
		{
			In:  `(f) (g) (h)`,
			Out: []ast.Node{call("f"), call("g"), call("h")},
		},
		{
			In:  `(add 2 (subtract 4 2))`,
			Out: []ast.Node{call("add", num("2"), call("subtract", num("4"), num("2")))},
		},
		{
			In:  `(concat "hello" " " "world")`,
			Out: []ast.Node{call("concat", str("hello"), str(" "), str("world"))},
		},
		{
			In:  `(a (b (c (d 1))))`,
			Out: []ast.Node{call("a", call("b", call("c", call("d", num("1")))))},
		},
		{
			In:  "(print\n\t\"x\"\n\t(len \"abc\"))\n(exit 0)",
			Out: []ast.Node{
				call("print", str("x"), call("len", str("abc"))),
				call("exit", num("0")),
			},
		},
		{
			In:  `(f 12abc)`,
			Out: nil, // bare identifier after a number
		},
		{
			In:  `(f "unterminated`,
			Out: nil,
		},
	}

	for _, tc := range testCases {
		nodes, err := ParseBytes([]byte(tc.In))
		if tc.Out == nil {
			assert.Error(t, err, tc.In)
			assert.Nil(t, nodes, tc.In)
			continue
		}

		require.NoError(t, err, tc.In)
		assert.NotNil(t, nodes)
		if diff := cmp.Diff(tc.Out, nodes, cmpOpts...); diff != "" {
			t.Errorf("ParseBytes(%q) mismatch (-want +got):\n%s", tc.In, diff)
		}
	}
}

func TestParserPositions(t *testing.T) {
	nodes, err := ParseBytes([]byte("(add 2\n  (neg 4))"))
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	add := nodes[0].(*ast.CallExpression)
	assert.Equal(t, lexer.Position{Line: 1, Column: 1}, add.Pos)
	assert.Equal(t, lexer.Position{Line: 1, Column: 6}, add.Params[0].Position())
	assert.Equal(t, lexer.Position{Line: 2, Column: 3}, add.Params[1].Position())
}

func TestParserErrors(t *testing.T) {
	testCases := []struct {
		Name   string
		Tokens []lexer.Token
		Err    error
		Token  lexer.Token
	}{
		{
			Name:   "stray closing parenthesis",
			Tokens: []lexer.Token{lexer.ClosingParenthesis{}},
			Err:    ErrUnexpectedClosingParenthesis,
			Token:  lexer.ClosingParenthesis{},
		},
		{
			Name:   "closing parenthesis instead of identifier",
			Tokens: []lexer.Token{lexer.OpeningParenthesis{}, lexer.ClosingParenthesis{}},
			Err:    ErrExpectedIdentifier,
			Token:  lexer.ClosingParenthesis{},
		},
		{
			Name:   "number instead of identifier",
			Tokens: []lexer.Token{lexer.OpeningParenthesis{}, lexer.Number{Digits: "1"}, lexer.ClosingParenthesis{}},
			Err:    ErrExpectedIdentifier,
			Token:  lexer.Number{Digits: "1"},
		},
		{
			Name:   "nested call instead of identifier",
			Tokens: []lexer.Token{lexer.OpeningParenthesis{}, lexer.OpeningParenthesis{}},
			Err:    ErrExpectedIdentifier,
			Token:  lexer.OpeningParenthesis{},
		},
		{
			Name:   "lone opening parenthesis",
			Tokens: []lexer.Token{lexer.OpeningParenthesis{}},
			Err:    ErrMissingIdentifier,
		},
		{
			Name:   "unclosed call",
			Tokens: []lexer.Token{lexer.OpeningParenthesis{}, lexer.Identifier{Name: "f"}},
			Err:    ErrMissingClosingParenthesis,
		},
		{
			Name: "unclosed outer call",
			Tokens: []lexer.Token{
				lexer.OpeningParenthesis{}, lexer.Identifier{Name: "f"},
				lexer.OpeningParenthesis{}, lexer.Identifier{Name: "g"}, lexer.ClosingParenthesis{},
			},
			Err: ErrMissingClosingParenthesis,
		},
		{
			Name:   "bare identifier",
			Tokens: []lexer.Token{lexer.Identifier{Name: "foo"}},
			Err:    ErrUnexpectedIdentifier,
			Token:  lexer.Identifier{Name: "foo"},
		},
		{
			Name: "identifier as param",
			Tokens: []lexer.Token{
				lexer.OpeningParenthesis{}, lexer.Identifier{Name: "f"},
				lexer.Identifier{Name: "x"}, lexer.ClosingParenthesis{},
			},
			Err:   ErrUnexpectedIdentifier,
			Token: lexer.Identifier{Name: "x"},
		},
		{
			Name: "extra closing parenthesis after a call",
			Tokens: []lexer.Token{
				lexer.OpeningParenthesis{}, lexer.Identifier{Name: "f"}, lexer.ClosingParenthesis{},
				lexer.ClosingParenthesis{},
			},
			Err:   ErrUnexpectedClosingParenthesis,
			Token: lexer.ClosingParenthesis{},
		},
		{
			Name: "first error wins",
			Tokens: []lexer.Token{
				lexer.Identifier{Name: "a"},
				lexer.ClosingParenthesis{},
			},
			Err:   ErrUnexpectedIdentifier,
			Token: lexer.Identifier{Name: "a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			nodes, err := Parse(tc.Tokens)

			assert.Nil(t, nodes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.Err), "got %v, want %v", err, tc.Err)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.Token, perr.Token)
		})
	}
}

func TestParserInvalidTokens(t *testing.T) {
	testCases := []struct {
		Name   string
		Tokens []lexer.Token
		Offset int
	}{
		{
			Name:   "pointer to a number",
			Tokens: []lexer.Token{&lexer.Number{Digits: "1"}},
			Offset: 0,
		},
		{
			Name: "pointer to a closing parenthesis",
			Tokens: []lexer.Token{
				lexer.OpeningParenthesis{}, lexer.Identifier{Name: "f"},
				&lexer.ClosingParenthesis{},
			},
			Offset: 2,
		},
		{
			Name: "pointer to an identifier",
			Tokens: []lexer.Token{
				lexer.OpeningParenthesis{}, &lexer.Identifier{Name: "f"},
				lexer.ClosingParenthesis{},
			},
			Offset: 1,
		},
		{
			Name:   "nil before more tokens",
			Tokens: []lexer.Token{nil, lexer.Number{Digits: "1"}, lexer.ClosingParenthesis{}},
			Offset: 0,
		},
		{
			Name: "nil inside a call",
			Tokens: []lexer.Token{
				lexer.OpeningParenthesis{}, lexer.Identifier{Name: "f"},
				lexer.Number{Digits: "1"}, nil, lexer.ClosingParenthesis{},
			},
			Offset: 3,
		},
		{
			Name:   "nil instead of identifier",
			Tokens: []lexer.Token{lexer.OpeningParenthesis{}, nil},
			Offset: 1,
		},
		{
			Name:   "typed nil pointer",
			Tokens: []lexer.Token{(*lexer.String)(nil)},
			Offset: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var nodes []ast.Node
			var err error
			require.NotPanics(t, func() {
				nodes, err = Parse(tc.Tokens)
			})

			assert.Nil(t, nodes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tc.Offset, perr.Offset)
			assert.Equal(t, lexer.Position{}, perr.Pos)
		})
	}
}

func TestParserInvalidTokenMessage(t *testing.T) {
	_, err := Parse([]lexer.Token{lexer.Number{Digits: "1"}, &lexer.Number{Digits: "2"}})
	require.Error(t, err)
	assert.Equal(t, "invalid token *lexer.Number at offset 1", err.Error())

	_, err = Parse([]lexer.Token{nil})
	require.Error(t, err)
	assert.Equal(t, "invalid token <nil> at offset 0", err.Error())
}

func TestParserErrorPositions(t *testing.T) {
	testCases := []struct {
		In  string
		Err error
		Pos lexer.Position
	}{
		{`(f 1))`, ErrUnexpectedClosingParenthesis, lexer.Position{Line: 1, Column: 6}},
		{"(f\n  (g 1)", ErrMissingClosingParenthesis, lexer.Position{Line: 1, Column: 1}},
		{"1 (", ErrMissingIdentifier, lexer.Position{Line: 1, Column: 3}},
		{`(1 2)`, ErrExpectedIdentifier, lexer.Position{Line: 1, Column: 2}},
		{`(f x)`, ErrUnexpectedIdentifier, lexer.Position{Line: 1, Column: 4}},
	}

	for _, tc := range testCases {
		_, err := ParseBytes([]byte(tc.In))
		require.Error(t, err, tc.In)
		assert.True(t, errors.Is(err, tc.Err), tc.In)

		var perr *Error
		require.True(t, errors.As(err, &perr), tc.In)
		assert.Equal(t, tc.Pos, perr.Pos, tc.In)
	}
}

func TestParserErrorMessages(t *testing.T) {
	testCases := []struct {
		In  string
		Out string
	}{
		{`)`, `unexpected closing parenthesis at 1:1`},
		{`(`, `missing identifier in call expression at 1:1`},
		{`(f`, `missing closing parenthesis at 1:1`},
		{`(1)`, `expected identifier in call expression at 1:2, but got number "1"`},
		{`(f bar)`, `unexpected identifier "bar" at 1:4`},
	}

	for _, tc := range testCases {
		_, err := ParseBytes([]byte(tc.In))
		require.Error(t, err, tc.In)
		assert.Equal(t, tc.Out, err.Error())
	}
}

func TestParseBytesLexerError(t *testing.T) {
	nodes, err := ParseBytes([]byte(`(f #)`))
	assert.Nil(t, nodes)
	assert.True(t, errors.Is(err, lexer.ErrUnexpectedCharacter))
}

func TestParserDeterminism(t *testing.T) {
	inputs := []string{
		`(add 2 (subtract 4 2))`,
		`(a "b" 1) (c) 33 "x"`,
		"(f\n(g\n(h 1 2 3)))",
	}

	for _, in := range inputs {
		tokens, err := lexer.Tokenize(in)
		require.NoError(t, err)

		first, err := Parse(tokens)
		require.NoError(t, err)

		second, err := Parse(tokens)
		require.NoError(t, err)

		assert.True(t, cmp.Equal(first, second), in)
	}
}

func TestCallExpressionsNeverExceedOpeningParentheses(t *testing.T) {
	inputs := []string{
		``,
		`1 2 3`,
		`(f)`,
		`(f (g) (h (i 1)) "x")`,
		`(f) (g) (h 1 (j))`,
		`(f (g`,
		`)(f)`,
		`(f (1))`,
	}

	for _, in := range inputs {
		tokens, err := lexer.Tokenize(in)
		require.NoError(t, err)

		opening := 0
		for _, tok := range tokens {
			if tok.Type() == lexer.TokenOpeningParenthesis {
				opening++
			}
		}

		nodes, _ := Parse(tokens)
		assert.LessOrEqual(t, ast.Count(nodes, ast.NodeTypeCallExpression), opening, in)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	inputs := []string{
		`(add 2 (subtract 4 2))`,
		"(print\n  \"hello  world\"\n  (len \"\"))   7",
		`"a" "b" (c)`,
	}

	for _, in := range inputs {
		nodes, err := ParseBytes([]byte(in))
		require.NoError(t, err)

		encoded := ast.Encode(nodes)
		assert.False(t, strings.Contains(string(encoded), "\n"))

		again, err := ParseBytes(encoded)
		require.NoError(t, err)

		if diff := cmp.Diff(nodes, again, cmpOpts...); diff != "" {
			t.Errorf("round trip of %q mismatch (-want +got):\n%s", in, diff)
		}
	}
}
