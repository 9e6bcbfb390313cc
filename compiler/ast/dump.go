package ast

import (
	"github.com/nikandfor/hacked/hfmt"
)

// Dump appends an indented description of the tree rooted at n.
func Dump(b []byte, n Node) []byte {
	return dump(b, n, 0)
}

func dump(b []byte, n Node, d int) []byte {
	switch n := n.(type) {
	case *Program:
		b = app(b, d, "Program\n")

		if n == nil {
			break
		}

		for _, s := range n.Stmts {
			b = dump(b, s, d+1)
		}
	case *Declaration:
		b = app(b, d, "Declaration %s %s\n", n.Type, n.Name)
		b = dump(b, n.Init, d+1)
	case *If:
		b = app(b, d, "If\n")
		b = app(b, d+1, "Cond:\n")
		b = dump(b, n.Cond, d+2)
		b = app(b, d+1, "Body:\n")
		b = dump(b, n.Body, d+2)
	case *Increment:
		b = app(b, d, "Increment %s\n", n.Name)
	case *Print:
		b = app(b, d, "Print\n")
		b = dump(b, n.Expr, d+1)
	case *BinaryOp:
		b = app(b, d, "BinaryOp %v\n", n.Op)
		b = dump(b, n.Left, d+1)
		b = dump(b, n.Right, d+1)
	case *NumberLiteral:
		b = app(b, d, "NumberLiteral %s\n", n.Value)
	case *Identifier:
		b = app(b, d, "Identifier %s\n", n.Name)
	default:
		b = app(b, d, "<%T>\n", n)
	}

	return b
}

func app(b []byte, d int, f string, args ...any) []byte {
	for i := 0; i < d; i++ {
		b = append(b, "  "...)
	}

	return hfmt.Appendf(b, f, args...)
}
