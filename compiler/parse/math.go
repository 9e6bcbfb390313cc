package parse

import (
	"context"

	"tlog.app/go/errors"

	"github.com/slowlang/tiny/compiler/ast"
	"github.com/slowlang/tiny/compiler/token"
)

type (
	// LeftToRight parses Arg (Op Arg)* folding to the left,
	// so a - b - c is (a - b) - c.
	LeftToRight struct {
		Op  Parser
		Arg Parser
	}

	BinOper interface {
		BinOp(l, r ast.Expr) (ast.Expr, error)
	}

	// Op matches an operator token and builds a BinaryOp of it.
	Op token.Kind
)

func (p LeftToRight) Parse(ctx context.Context, t []token.Token, st int) (_ any, i int, err error) {
	x, i, err := p.Arg.Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	l, ok := x.(ast.Expr)
	if !ok {
		return nil, i, errors.New("expression expected, got %T", x)
	}

	for {
		var op any
		opst := i
		op, i, err = p.Op.Parse(ctx, t, i)
		if i == opst && err != nil {
			break
		}
		if err != nil {
			return nil, i, err
		}

		c, ok := op.(BinOper)
		if !ok {
			return nil, i, errors.New("BinOper expected, got %T", op)
		}

		var r any
		r, i, err = p.Arg.Parse(ctx, t, i)
		if err != nil {
			return nil, i, err
		}

		re, ok := r.(ast.Expr)
		if !ok {
			return nil, i, errors.New("expression expected, got %T", r)
		}

		l, err = c.BinOp(l, re)
		if err != nil {
			return nil, i, errors.Wrap(err, "%T", c)
		}
	}

	return l, i, nil
}

func (p Op) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	_, i, err = Tok(p).Parse(ctx, t, st)
	if err != nil {
		return nil, i, err
	}

	return p, i, nil
}

func (p Op) String() string { return token.Kind(p).Describe() }

func (p Op) BinOp(l, r ast.Expr) (ast.Expr, error) {
	var op ast.Op

	switch token.Kind(p) {
	case token.Add:
		op = ast.Add
	case token.Sub:
		op = ast.Sub
	case token.Mul:
		op = ast.Mul
	case token.Div:
		op = ast.Div
	case token.Less:
		op = ast.Less
	default:
		return nil, errors.New("not a binary operator: %v", token.Kind(p))
	}

	return &ast.BinaryOp{
		Base:  ast.Base{Line: l.Start()},
		Left:  l,
		Op:    op,
		Right: r,
	}, nil
}
