package lex

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"tlog.app/go/tlog"

	"github.com/slowlang/tiny/compiler/token"
)

type (
	Lexer struct {
		b []byte
		i int

		line int
		bol  int // offset of the current line start

		errs []*Error
	}

	// Error is a lexical error. The lexer reports it and goes on
	// after skipping the offending character.
	Error struct {
		Char   rune
		Text   string
		Line   int
		Col    int
		Reason string
	}
)

const IllegalChar = "illegal character"

func New(text []byte) *Lexer {
	return &Lexer{
		b:    text,
		line: 1,
	}
}

// Tokens returns the token sequence of text. The sequence always ends with
// exactly one EOF token, and every range over it scans text from the start.
func Tokens(text []byte) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		New(text).All()(yield)
	}
}

// All returns the rest of l's tokens up to and including EOF.
// Unlike Tokens the sequence is single-use: it advances l.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			t := l.Next()

			if !yield(t) || t.Kind == token.EOF {
				return
			}
		}
	}
}

// All scans the whole text.
func All(ctx context.Context, text []byte) (toks []token.Token, errs []*Error) {
	tr, _ := tlog.SpawnFromContextAndWrap(ctx, "lex: tokenize", "size", len(text))
	defer func() {
		tr.Finish("tokens", len(toks), "errors", len(errs))
	}()

	l := New(text)

	for t := range l.All() {
		toks = append(toks, t)
	}

	errs = l.Errors()

	for _, e := range errs {
		tr.Printw("lexical error", "char", e.Text, "line", e.Line, "col", e.Col, "reason", e.Reason)
	}

	if tr.If("dump_tokens") {
		for i, t := range toks {
			tr.Printw("token", "i", i, "tok", t)
		}
	}

	return toks, errs
}

// Errors returns lexical errors met so far.
func (l *Lexer) Errors() []*Error {
	return l.errs
}

// Next returns the next token. Once the input is exhausted it keeps returning EOF.
func (l *Lexer) Next() token.Token {
	for {
		l.skipSpaces()

		if l.i == len(l.b) {
			return l.tok(token.EOF, l.i, l.i)
		}

		if t, ok := l.scan(); ok {
			return t
		}
	}
}

func (l *Lexer) scan() (t token.Token, ok bool) {
	st := l.i
	c := l.b[st]

	switch {
	case isIdentStart(c):
		l.i = skipIdent(l.b, st+1)

		t = l.tok(token.Ident, st, l.i)

		if kw, ok := keyword(t.Text); ok {
			t.Kind = kw
		}

		return t, true
	case isDigit(c):
		l.i = skipDigits(l.b, st)

		t = l.tok(token.Number, st, l.i)

		t.Value = strings.TrimLeft(t.Text, "0")
		if t.Value == "" {
			t.Value = "0"
		}

		return t, true
	}

	var k token.Kind

	switch c {
	case '=':
		k = token.Assign
	case '(':
		k = token.LParen
	case ')':
		k = token.RParen
	case '{':
		k = token.LBrace
	case '}':
		k = token.RBrace
	case '<':
		k = token.Less
	case ';':
		k = token.Semicolon
	case '+':
		k = token.Add

		if st+1 < len(l.b) && l.b[st+1] == '+' {
			k = token.Incr
		}
	case '-':
		k = token.Sub
	case '*':
		k = token.Mul
	case '/':
		k = token.Div
	default:
		_, w := utf8.DecodeRune(l.b[st:])
		l.i = st + w

		l.report(st, l.i, IllegalChar)

		return t, false
	}

	l.i = st + len(k.Literal())

	return l.tok(k, st, l.i), true
}

func (l *Lexer) skipSpaces() {
	for l.i < len(l.b) {
		switch l.b[l.i] {
		case ' ', '\t':
		case '\n':
			l.line++
			l.bol = l.i + 1
		default:
			return
		}

		l.i++
	}
}

func (l *Lexer) tok(k token.Kind, st, end int) token.Token {
	return token.Token{
		Kind: k,
		Text: string(l.b[st:end]),
		Line: l.line,
		Col:  st - l.bol + 1,
	}
}

func (l *Lexer) report(st, end int, reason string) {
	r, _ := utf8.DecodeRune(l.b[st:end])

	l.errs = append(l.errs, &Error{
		Char:   r,
		Text:   string(l.b[st:end]),
		Line:   l.line,
		Col:    st - l.bol + 1,
		Reason: reason,
	})
}

func keyword(s string) (token.Kind, bool) {
	switch s {
	case "int":
		return token.Int, true
	case "if":
		return token.If, true
	case "print":
		return token.Print, true
	}

	return 0, false
}

func skipIdent(b []byte, i int) int {
	for i < len(b) && (isIdentStart(b[i]) || isDigit(b[i])) {
		i++
	}

	return i
}

func skipDigits(b []byte, i int) int {
	for i < len(b) && isDigit(b[i]) {
		i++
	}

	return i
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (e *Error) Error() string {
	if e.Reason == IllegalChar {
		return fmt.Sprintf("line %d col %d: illegal character %q", e.Line, e.Col, e.Char)
	}

	return fmt.Sprintf("line %d col %d: %s: %s", e.Line, e.Col, e.Reason, e.Text)
}
