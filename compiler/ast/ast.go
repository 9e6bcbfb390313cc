package ast

type (
	// Node is one of the node types declared in this package.
	// The set is closed by the unexported marker methods.
	Node interface {
		Start() int
		node()
	}

	Expr interface {
		Node
		expr()
	}

	Stmt interface {
		Node
		stmt()
	}

	Base struct {
		Line int
	}

	Op byte

	Program struct {
		Base

		Stmts []Stmt
	}

	Declaration struct {
		Base

		Type string
		Name string
		Init Expr
	}

	If struct {
		Base

		Cond Expr
		Body *Program
	}

	Increment struct {
		Base

		Name string
	}

	Print struct {
		Base

		Expr Expr
	}

	BinaryOp struct {
		Base

		Left  Expr
		Op    Op
		Right Expr
	}

	NumberLiteral struct {
		Base

		// Value is the decimal representation, any length.
		Value string
	}

	Identifier struct {
		Base

		Name string
	}
)

const (
	Add  Op = '+'
	Sub  Op = '-'
	Mul  Op = '*'
	Div  Op = '/'
	Less Op = '<'
)

// Start returns the source line of the node's first token.
func (b Base) Start() int { return b.Line }

func (*Program) node()       {}
func (*Declaration) node()   {}
func (*If) node()            {}
func (*Increment) node()     {}
func (*Print) node()         {}
func (*BinaryOp) node()      {}
func (*NumberLiteral) node() {}
func (*Identifier) node()    {}

func (*Declaration) stmt() {}
func (*If) stmt()          {}
func (*Increment) stmt()   {}
func (*Print) stmt()       {}

func (*BinaryOp) expr()      {}
func (*NumberLiteral) expr() {}
func (*Identifier) expr()    {}

func (op Op) String() string { return string(rune(op)) }

// Prec is the binding strength of op, higher binds tighter.
func (op Op) Prec() int {
	switch op {
	case Less:
		return 1
	case Add, Sub:
		return 2
	case Mul, Div:
		return 3
	}

	return 0
}

// Inspect traverses the tree rooted at n in depth-first order.
// Children of a node are skipped if f returns false for it.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *Declaration:
		Inspect(n.Init, f)
	case *If:
		Inspect(n.Cond, f)

		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *Print:
		Inspect(n.Expr, f)
	case *BinaryOp:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	}
}
