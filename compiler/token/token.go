package token

import (
	"fmt"
	"strconv"

	"tlog.app/go/tlog/tlwire"
)

type (
	Kind int

	Token struct {
		Kind  Kind
		Text  string // exact source text, empty for EOF
		Value string // Number only: decimal digits without leading zeros

		Line int // 1-based
		Col  int // 1-based, in bytes
	}
)

const (
	EOF Kind = iota

	Ident
	Number

	// keywords
	Int
	If
	Print

	Assign    // =
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Less      // <
	Incr      // ++
	Semicolon // ;

	Add // +
	Sub // -
	Mul // *
	Div // /

	numKinds
)

var names = [numKinds]string{
	EOF:       "EOF",
	Ident:     "IDENT",
	Number:    "NUMBER",
	Int:       "INT",
	If:        "IF",
	Print:     "PRINT",
	Assign:    "ASSIGN",
	LParen:    "LPAREN",
	RParen:    "RPAREN",
	LBrace:    "LBRACE",
	RBrace:    "RBRACE",
	Less:      "LT",
	Incr:      "INCREMENT",
	Semicolon: "SEMICOLON",
	Add:       "ADD",
	Sub:       "SUB",
	Mul:       "MUL",
	Div:       "DIV",
}

// literals holds the fixed spelling of keyword, punctuation and operator kinds.
var literals = [numKinds]string{
	Int:       "int",
	If:        "if",
	Print:     "print",
	Assign:    "=",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Less:      "<",
	Incr:      "++",
	Semicolon: ";",
	Add:       "+",
	Sub:       "-",
	Mul:       "*",
	Div:       "/",
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return names[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Literal returns the fixed spelling of k or "" for EOF, Ident and Number.
func (k Kind) Literal() string {
	if k >= 0 && k < numKinds {
		return literals[k]
	}

	return ""
}

// Describe returns k the way diagnostics name it.
func (k Kind) Describe() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	}

	if l := k.Literal(); l != "" {
		return strconv.Quote(l)
	}

	return k.String()
}

// Describe names the token in a diagnostic.
func (t Token) Describe() string {
	if t.Kind == EOF {
		return t.Kind.Describe()
	}

	return strconv.Quote(t.Text)
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return fmt.Sprintf("%-9s %-8s line %d", t.Kind, "", t.Line)
	case Number:
		return fmt.Sprintf("%-9s %-8s line %d", t.Kind, t.Value, t.Line)
	}

	return fmt.Sprintf("%-9s %-8q line %d", t.Kind, t.Text, t.Line)
}

func (t Token) TlogAppend(b []byte) []byte {
	var e tlwire.Encoder

	b = e.AppendMap(b, 4)

	b = e.AppendString(b, "kind")
	b = e.AppendString(b, t.Kind.String())

	b = e.AppendString(b, "text")
	b = e.AppendString(b, t.Text)

	b = e.AppendKeyInt(b, "line", t.Line)
	b = e.AppendKeyInt(b, "col", t.Col)

	return b
}
