package format

import (
	"context"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"

	"github.com/slowlang/tiny/compiler/ast"
)

// Format appends p as canonical source text.
// Parentheses are kept only where the tree needs them.
func Format(ctx context.Context, b []byte, p *ast.Program) ([]byte, error) {
	return formatBlock(ctx, b, p, 0)
}

func formatBlock(ctx context.Context, b []byte, x *ast.Program, d int) (_ []byte, err error) {
	if x == nil {
		return nil, errors.New("no block")
	}

	for _, s := range x.Stmts {
		switch s := s.(type) {
		case *ast.Declaration:
			b = app(b, d, "%s %s = ", s.Type, s.Name)

			b, err = formatExpr(ctx, b, s.Init, 0)
			if err != nil {
				return nil, errors.Wrap(err, "init")
			}

			b = append(b, ";\n"...)
		case *ast.If:
			b = app(b, d, "if (")

			b, err = formatExpr(ctx, b, s.Cond, 0)
			if err != nil {
				return nil, errors.Wrap(err, "cond")
			}

			b = append(b, ") {\n"...)

			b, err = formatBlock(ctx, b, s.Body, d+1)
			if err != nil {
				return nil, errors.Wrap(err, "then block")
			}

			b = app(b, d, "}\n")
		case *ast.Increment:
			b = app(b, d, "%s++;\n", s.Name)
		case *ast.Print:
			b = app(b, d, "print(")

			b, err = formatExpr(ctx, b, s.Expr, 0)
			if err != nil {
				return nil, errors.Wrap(err, "print")
			}

			b = append(b, ");\n"...)
		default:
			return nil, errors.New("unsupported stmt: %T", s)
		}
	}

	return b, nil
}

// formatExpr writes x, parenthesized if it binds looser than prec.
func formatExpr(ctx context.Context, b []byte, x ast.Expr, prec int) (_ []byte, err error) {
	switch x := x.(type) {
	case *ast.Identifier:
		b = append(b, x.Name...)
	case *ast.NumberLiteral:
		b = append(b, x.Value...)
	case *ast.BinaryOp:
		p := x.Op.Prec()
		paren := p < prec

		if paren {
			b = append(b, '(')
		}

		b, err = formatExpr(ctx, b, x.Left, p)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = append(b, ' ', byte(x.Op), ' ')

		// same precedence on the right only comes from explicit parentheses
		b, err = formatExpr(ctx, b, x.Right, p+1)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		if paren {
			b = append(b, ')')
		}
	default:
		return nil, errors.New("unsupported expr: %T", x)
	}

	return b, nil
}

func app(b []byte, d int, f string, args ...any) []byte {
	for i := 0; i < d; i++ {
		b = append(b, "    "...)
	}

	return hfmt.Appendf(b, f, args...)
}
