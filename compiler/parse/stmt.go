package parse

import (
	"context"

	"github.com/slowlang/tiny/compiler/ast"
	"github.com/slowlang/tiny/compiler/token"
)

type (
	// Program is statement+.
	Program struct{}

	Statement struct{}

	Declaration struct{}

	IfStmt struct{}

	Increment struct{}

	PrintStmt struct{}
)

func (p Program) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := Many{
		Of:  Statement{},
		Min: 1,
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)

	res := &ast.Program{
		Base:  ast.Base{Line: t[st].Line},
		Stmts: make([]ast.Stmt, len(xt)),
	}

	for j, s := range xt {
		res.Stmts[j] = s.(ast.Stmt)
	}

	return res, i, nil
}

func (p Statement) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AnyOf{
		Declaration{},
		IfStmt{},
		Increment{},
		PrintStmt{},
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil && i == st {
		return nil, st, NewSyntaxError(t[st], p.String())
	}

	return x, i, err
}

func (p Declaration) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AllOf{
		Tok(token.Int),
		Tok(token.Ident),
		Tok(token.Assign),
		Expr{},
		Tok(token.Semicolon),
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)
	typ := xt[0].(token.Token)

	return &ast.Declaration{
		Base: ast.Base{Line: typ.Line},
		Type: typ.Text,
		Name: xt[1].(token.Token).Text,
		Init: xt[3].(ast.Expr),
	}, i, nil
}

func (p IfStmt) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AllOf{
		Tok(token.If),
		Tok(token.LParen),
		Condition{},
		Tok(token.RParen),
		Tok(token.LBrace),
		Nested{Of: Program{}},
		Tok(token.RBrace),
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)

	return &ast.If{
		Base: ast.Base{Line: xt[0].(token.Token).Line},
		Cond: xt[2].(ast.Expr),
		Body: xt[5].(*ast.Program),
	}, i, nil
}

func (p Increment) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AllOf{
		Tok(token.Ident),
		Tok(token.Incr),
		Tok(token.Semicolon),
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	id := x.([]any)[0].(token.Token)

	return &ast.Increment{
		Base: ast.Base{Line: id.Line},
		Name: id.Text,
	}, i, nil
}

func (p PrintStmt) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	r := AllOf{
		Tok(token.Print),
		Tok(token.LParen),
		Expr{},
		Tok(token.RParen),
		Tok(token.Semicolon),
	}

	x, i, err = r.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	xt := x.([]any)

	return &ast.Print{
		Base: ast.Base{Line: xt[0].(token.Token).Line},
		Expr: xt[2].(ast.Expr),
	}, i, nil
}

func (Program) String() string     { return "statement" }
func (Statement) String() string   { return "statement" }
func (Declaration) String() string { return "declaration" }
func (IfStmt) String() string      { return "if statement" }
func (Increment) String() string   { return "increment" }
func (PrintStmt) String() string   { return "print statement" }
