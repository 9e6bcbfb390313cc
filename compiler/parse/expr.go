package parse

import (
	"context"

	"github.com/slowlang/tiny/compiler/ast"
	"github.com/slowlang/tiny/compiler/token"
)

type (
	// Condition is expression "<" expression. It does not chain.
	Condition struct{}

	Expr struct{}

	Term struct{}

	Factor struct{}

	Paren struct{}

	Number struct{}

	Ident struct{}
)

func (p Condition) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AllOf{
		Expr{},
		Op(token.Less),
		Expr{},
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)

	x, err = xt[1].(Op).BinOp(xt[0].(ast.Expr), xt[2].(ast.Expr))
	if err != nil {
		return nil, i, err
	}

	return x, i, nil
}

func (p Expr) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := LeftToRight{
		Op:  AnyOf{Op(token.Add), Op(token.Sub)},
		Arg: Term{},
	}

	return r.Parse(ctx, t, st)
}

func (p Term) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := LeftToRight{
		Op:  AnyOf{Op(token.Mul), Op(token.Div)},
		Arg: Factor{},
	}

	return r.Parse(ctx, t, st)
}

func (p Factor) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AnyOf{
		Paren{},
		Number{},
		Ident{},
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil && i == st {
		return nil, st, NewSyntaxError(t[st], p.String())
	}

	return x, i, err
}

func (p Paren) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AllOf{
		Tok(token.LParen),
		Nested{Of: Expr{}},
		Tok(token.RParen),
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	return x.([]any)[1], i, nil
}

func (p Number) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	x, i, err = Tok(token.Number).Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	tk := x.(token.Token)

	return &ast.NumberLiteral{
		Base:  ast.Base{Line: tk.Line},
		Value: tk.Value,
	}, i, nil
}

func (p Ident) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	x, i, err = Tok(token.Ident).Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	tk := x.(token.Token)

	return &ast.Identifier{
		Base: ast.Base{Line: tk.Line},
		Name: tk.Text,
	}, i, nil
}

func (Condition) String() string { return "condition" }
func (Expr) String() string      { return "expression" }
func (Term) String() string      { return "expression" }
func (Factor) String() string    { return "expression" }
func (Paren) String() string     { return `"("` }
func (Number) String() string    { return "number" }
func (Ident) String() string     { return "identifier" }
