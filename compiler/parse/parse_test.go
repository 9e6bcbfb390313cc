package parse

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/tiny/compiler/ast"
	"github.com/slowlang/tiny/compiler/lex"
	"github.com/slowlang/tiny/compiler/token"
)

var ignoreLines = cmpopts.IgnoreTypes(ast.Base{})

func parseText(t testing.TB, src string) (*ast.Program, error) {
	t.Helper()

	ctx := context.Background()

	toks, errs := lex.All(ctx, []byte(src))
	require.Empty(t, errs, "lexical errors")

	return Parse(ctx, toks)
}

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }
func num(v int64) *ast.NumberLiteral { return &ast.NumberLiteral{Value: strconv.FormatInt(v, 10)} }

func bin(l ast.Expr, op ast.Op, r ast.Expr) *ast.BinaryOp {
	return &ast.BinaryOp{Left: l, Op: op, Right: r}
}

func prog(stmts ...ast.Stmt) *ast.Program { return &ast.Program{Stmts: stmts} }

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		want *ast.Program
	}{
		{"decl", "int a = 3;", prog(
			&ast.Declaration{Type: "int", Name: "a", Init: num(3)},
		)},
		{"increment", "a++;", prog(
			&ast.Increment{Name: "a"},
		)},
		{"print", "print(a);", prog(
			&ast.Print{Expr: id("a")},
		)},
		{"precedence", "int x = 1 + 2 * 3;", prog(
			&ast.Declaration{Type: "int", Name: "x", Init: bin(num(1), ast.Add, bin(num(2), ast.Mul, num(3)))},
		)},
		{"left_assoc", "print(10 - 3 - 2);", prog(
			&ast.Print{Expr: bin(bin(num(10), ast.Sub, num(3)), ast.Sub, num(2))},
		)},
		{"left_assoc_mul", "print(a / b * c);", prog(
			&ast.Print{Expr: bin(bin(id("a"), ast.Div, id("b")), ast.Mul, id("c"))},
		)},
		{"parens", "print((1 + 2) * 3);", prog(
			&ast.Print{Expr: bin(bin(num(1), ast.Add, num(2)), ast.Mul, num(3))},
		)},
		{"right_parens", "print(10 - (3 - 2));", prog(
			&ast.Print{Expr: bin(num(10), ast.Sub, bin(num(3), ast.Sub, num(2)))},
		)},
		{"if", "int a = 3;\nif (a < 7) {\n    a++;\n}\n", prog(
			&ast.Declaration{Type: "int", Name: "a", Init: num(3)},
			&ast.If{
				Cond: bin(id("a"), ast.Less, num(7)),
				Body: prog(&ast.Increment{Name: "a"}),
			},
		)},
		{"cond_exprs", "if (a + 1 < b * 2) { print(a); }", prog(
			&ast.If{
				Cond: bin(bin(id("a"), ast.Add, num(1)), ast.Less, bin(id("b"), ast.Mul, num(2))),
				Body: prog(&ast.Print{Expr: id("a")}),
			},
		)},
		{"nested_if", "if (a < 1) { if (b < 2) { b++; } a++; }", prog(
			&ast.If{
				Cond: bin(id("a"), ast.Less, num(1)),
				Body: prog(
					&ast.If{
						Cond: bin(id("b"), ast.Less, num(2)),
						Body: prog(&ast.Increment{Name: "b"}),
					},
					&ast.Increment{Name: "a"},
				),
			},
		)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p, err := parseText(t, tc.src)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, p, ignoreLines); diff != "" {
				t.Errorf("ast mismatch (-want +got):\n%s\ndump:\n%s", diff, ast.Dump(nil, p))
			}
		})
	}
}

func TestLines(t *testing.T) {
	p, err := parseText(t, "int a = 3;\n\nif (a < 7) {\n    a++;\n}\n")
	require.NoError(t, err)
	require.Len(t, p.Stmts, 2)

	assert.Equal(t, 1, p.Stmts[0].Start())
	assert.Equal(t, 3, p.Stmts[1].Start())
	assert.Equal(t, 4, p.Stmts[1].(*ast.If).Body.Stmts[0].Start())
}

func TestSyntaxErrors(t *testing.T) {
	for _, tc := range []struct {
		src  string
		kind token.Kind
		want string
	}{
		{"int a = 3", token.EOF, `";" expected`},
		{"", token.EOF, "statement expected"},
		{"int = 3;", token.Assign, "identifier expected"},
		{"int a = ;", token.Semicolon, "expression expected"},
		{"a = 5;", token.Assign, `"++" expected`},
		{"a++; }", token.RBrace, "statement or end of input expected"},
		{"if (a < 1 < 2) { a++; }", token.Less, `")" expected`},
		{"if (a) { a++; }", token.RParen, `"<" expected`},
		{"if (a < 1) { }", token.RBrace, "statement expected"},
		{"if (a < 1) { a++;", token.EOF, `"}" expected`},
		{"print(1 + );", token.RParen, "expression expected"},
		{"print((1);", token.Semicolon, `")" expected`},
		{"print 1;", token.Number, `"(" expected`},
		{"3;", token.Number, "statement expected"},
		{"int a = 1; int", token.EOF, "identifier expected"},
	} {
		t.Run(tc.src, func(t *testing.T) {
			p, err := parseText(t, tc.src)
			require.Error(t, err)
			assert.Nil(t, p)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)

			assert.Equal(t, tc.kind, se.Token.Kind)
			assert.Contains(t, se.Error(), tc.want)
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := parseText(t, "int a = 3;\nint b = 4")
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)

	assert.Equal(t, `line 2: unexpected end of input, ";" expected`, se.Error())
}

func TestMissingEOFImplied(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Ident, Text: "a", Line: 1, Col: 1},
		{Kind: token.Incr, Text: "++", Line: 1, Col: 2},
		{Kind: token.Semicolon, Text: ";", Line: 1, Col: 4},
	}

	p, err := Parse(context.Background(), toks)
	require.NoError(t, err)
	assert.Len(t, p.Stmts, 1)
	assert.Len(t, toks, 3)
}

func TestMaxDepth(t *testing.T) {
	nest := func(n int) string {
		return strings.Repeat("if (a < 1) { ", n) + "a++; " + strings.Repeat("} ", n)
	}

	s := New()
	s.MaxDepth = 10

	ctx := context.Background()

	toks, _ := lex.All(ctx, []byte(nest(10)))
	_, err := s.Parse(ctx, toks)
	require.NoError(t, err)

	toks, _ = lex.All(ctx, []byte(nest(11)))
	_, err = s.Parse(ctx, toks)
	require.Error(t, err)

	var te *TooDeepError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 10, te.Max)

	parens := "print(" + strings.Repeat("(", 11) + "1" + strings.Repeat(")", 11) + ");"

	toks, _ = lex.All(ctx, []byte(parens))
	_, err = s.Parse(ctx, toks)
	require.ErrorAs(t, err, &te)
}

func TestDefaultDepthIsEnough(t *testing.T) {
	src := strings.Repeat("if (a < 1) { ", 100) + "a++; " + strings.Repeat("} ", 100)

	p, err := parseText(t, src)
	require.NoError(t, err)

	depth := 0

	ast.Inspect(p, func(n ast.Node) bool {
		if _, ok := n.(*ast.If); ok {
			depth++
		}

		return true
	})

	assert.Equal(t, 100, depth)
}

func TestLongChainIsLeftDeep(t *testing.T) {
	src := "print(1" + strings.Repeat(" - 1", 1000) + ");"

	p, err := parseText(t, src)
	require.NoError(t, err)

	e := p.Stmts[0].(*ast.Print).Expr

	n := 0

	for {
		b, ok := e.(*ast.BinaryOp)
		if !ok {
			break
		}

		_, ok = b.Right.(*ast.NumberLiteral)
		require.True(t, ok)

		e = b.Left
		n++
	}

	assert.Equal(t, 1000, n)
}
