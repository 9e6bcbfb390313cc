package back

import (
	"context"
	"fmt"

	"github.com/nikandfor/hacked/hfmt"
	"tlog.app/go/errors"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/tiny/compiler/ast"
)

type (
	// Compiler generates C++ text out of the syntax tree.
	// It keeps no state between calls.
	Compiler struct{}

	UnsupportedNodeError struct {
		Node ast.Node
		PC   loc.PC
	}
)

const indent = "    "

const (
	prologue = "#include <iostream>\n\nint main() {\n"
	epilogue = indent + "return 0;\n}\n"
)

func New() *Compiler {
	return &Compiler{}
}

// CompileProgram appends the translation unit for p to b.
func (c *Compiler) CompileProgram(ctx context.Context, b []byte, p *ast.Program) (_ []byte, err error) {
	if p == nil {
		return nil, unsupported(p)
	}

	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "back: compile program", "stmts", len(p.Stmts))
	defer tr.Finish("err", &err)

	st := len(b)

	b = append(b, prologue...)

	b, err = c.compileBlock(ctx, b, p, 1)
	if err != nil {
		return nil, err
	}

	b = append(b, epilogue...)

	if tr.If("dump_code") {
		tr.Printw("generated", "code", b[st:])
	}

	return b, nil
}

func (c *Compiler) compileBlock(ctx context.Context, b []byte, p *ast.Program, d int) (_ []byte, err error) {
	if p == nil {
		return nil, unsupported(p)
	}

	for i, s := range p.Stmts {
		b, err = c.compileStmt(ctx, b, s, d)
		if err != nil {
			return nil, errors.Wrap(err, "stmt %d (line %d)", i, line(s))
		}
	}

	return b, nil
}

func (c *Compiler) compileStmt(ctx context.Context, b []byte, s ast.Stmt, d int) (_ []byte, err error) {
	if isNil(s) {
		return nil, unsupported(s)
	}

	switch s := s.(type) {
	case *ast.Declaration:
		b = app(b, d, "%s %s = ", s.Type, s.Name)

		b, err = c.compileExpr(ctx, b, s.Init)
		if err != nil {
			return nil, errors.Wrap(err, "init")
		}

		b = append(b, ";\n"...)
	case *ast.If:
		b = app(b, d, "if (")

		b, err = c.compileExpr(ctx, b, s.Cond)
		if err != nil {
			return nil, errors.Wrap(err, "cond")
		}

		b = append(b, ") {\n"...)

		b, err = c.compileBlock(ctx, b, s.Body, d+1)
		if err != nil {
			return nil, errors.Wrap(err, "body")
		}

		b = app(b, d, "}\n")
	case *ast.Increment:
		b = app(b, d, "%s++;\n", s.Name)
	case *ast.Print:
		b = app(b, d, "std::cout << ")

		b, err = c.compileExpr(ctx, b, s.Expr)
		if err != nil {
			return nil, errors.Wrap(err, "print")
		}

		b = append(b, " << std::endl;\n"...)
	default:
		return nil, unsupported(s)
	}

	return b, nil
}

func (c *Compiler) compileExpr(ctx context.Context, b []byte, e ast.Expr) (_ []byte, err error) {
	if isNil(e) {
		return nil, unsupported(e)
	}

	switch e := e.(type) {
	case *ast.BinaryOp:
		b = append(b, '(')

		b, err = c.compileExpr(ctx, b, e.Left)
		if err != nil {
			return nil, errors.Wrap(err, "left")
		}

		b = append(b, ' ', byte(e.Op), ' ')

		b, err = c.compileExpr(ctx, b, e.Right)
		if err != nil {
			return nil, errors.Wrap(err, "right")
		}

		b = append(b, ')')
	case *ast.NumberLiteral:
		b = append(b, e.Value...)
	case *ast.Identifier:
		b = append(b, e.Name...)
	default:
		return nil, unsupported(e)
	}

	return b, nil
}

func unsupported(n ast.Node) *UnsupportedNodeError {
	return &UnsupportedNodeError{
		Node: n,
		PC:   loc.Caller(1),
	}
}

func line(s ast.Stmt) int {
	if isNil(s) {
		return 0
	}

	return s.Start()
}

// isNil reports whether n is nil or a typed nil pointer to a node.
func isNil(n ast.Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *ast.Program:
		return n == nil
	case *ast.Declaration:
		return n == nil
	case *ast.If:
		return n == nil
	case *ast.Increment:
		return n == nil
	case *ast.Print:
		return n == nil
	case *ast.BinaryOp:
		return n == nil
	case *ast.NumberLiteral:
		return n == nil
	case *ast.Identifier:
		return n == nil
	}

	return false
}

func app(b []byte, d int, f string, args ...any) []byte {
	for i := 0; i < d; i++ {
		b = append(b, indent...)
	}

	return hfmt.Appendf(b, f, args...)
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node: %T (raised at %v)", e.Node, e.PC)
}
