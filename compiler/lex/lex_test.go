package lex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slowlang/tiny/compiler/token"
)

func kinds(toks []token.Token) (r []token.Kind) {
	for _, t := range toks {
		r = append(r, t.Kind)
	}

	return r
}

func TestTokens(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want []token.Kind
	}{
		{"", []token.Kind{token.EOF}},
		{" \t\n ", []token.Kind{token.EOF}},
		{"int a = 3;", []token.Kind{token.Int, token.Ident, token.Assign, token.Number, token.Semicolon, token.EOF}},
		{"if (a < 7) { a++; }", []token.Kind{
			token.If, token.LParen, token.Ident, token.Less, token.Number, token.RParen,
			token.LBrace, token.Ident, token.Incr, token.Semicolon, token.RBrace, token.EOF,
		}},
		{"print(1+2*3-4/5);", []token.Kind{
			token.Print, token.LParen, token.Number, token.Add, token.Number, token.Mul, token.Number,
			token.Sub, token.Number, token.Div, token.Number, token.RParen, token.Semicolon, token.EOF,
		}},
		{"a+++b", []token.Kind{token.Ident, token.Incr, token.Add, token.Ident, token.EOF}},
		{"integer iff printer _x1", []token.Kind{token.Ident, token.Ident, token.Ident, token.Ident, token.EOF}},
		{"12ab", []token.Kind{token.Number, token.Ident, token.EOF}},
	} {
		toks, errs := All(context.Background(), []byte(tc.src))
		assert.Empty(t, errs, "src %q", tc.src)
		assert.Equal(t, tc.want, kinds(toks), "src %q", tc.src)
	}
}

func TestValuesAndPositions(t *testing.T) {
	src := "int abc = 042;\n  print(abc);\n"

	toks, errs := All(context.Background(), []byte(src))
	require.Empty(t, errs)
	require.Len(t, toks, 11)

	assert.Equal(t, token.Token{Kind: token.Ident, Text: "abc", Line: 1, Col: 5}, toks[1])
	assert.Equal(t, token.Token{Kind: token.Number, Text: "042", Value: "42", Line: 1, Col: 11}, toks[3])
	assert.Equal(t, token.Token{Kind: token.Print, Text: "print", Line: 2, Col: 3}, toks[5])
	assert.Equal(t, token.Token{Kind: token.EOF, Line: 3, Col: 1}, toks[10])
}

func TestIllegalCharRecovery(t *testing.T) {
	src := "int a = 3 $;\nb@++;\n"

	toks, errs := All(context.Background(), []byte(src))

	assert.Equal(t, []token.Kind{
		token.Int, token.Ident, token.Assign, token.Number, token.Semicolon,
		token.Ident, token.Incr, token.Semicolon, token.EOF,
	}, kinds(toks))

	require.Len(t, errs, 2)

	assert.Equal(t, &Error{Char: '$', Text: "$", Line: 1, Col: 11, Reason: IllegalChar}, errs[0])
	assert.Equal(t, &Error{Char: '@', Text: "@", Line: 2, Col: 2, Reason: IllegalChar}, errs[1])

	assert.EqualError(t, errs[0], `line 1 col 11: illegal character '$'`)
}

func TestMultibyteSkippedAsOneChar(t *testing.T) {
	toks, errs := All(context.Background(), []byte("a£b"))

	assert.Equal(t, []token.Kind{token.Ident, token.Ident, token.EOF}, kinds(toks))
	require.Len(t, errs, 1)
	assert.Equal(t, '£', errs[0].Char)
	assert.Equal(t, "b", toks[1].Text)
}

func TestCarriageReturnIsIllegal(t *testing.T) {
	_, errs := All(context.Background(), []byte("a++;\r\n"))

	require.Len(t, errs, 1)
	assert.Equal(t, '\r', errs[0].Char)
}

func TestLongInteger(t *testing.T) {
	toks, errs := All(context.Background(), []byte("print(00099999999999999999999 + 000);"))
	require.Empty(t, errs)

	assert.Equal(t, []token.Kind{
		token.Print, token.LParen, token.Number, token.Add, token.Number, token.RParen, token.Semicolon, token.EOF,
	}, kinds(toks))

	assert.Equal(t, "00099999999999999999999", toks[2].Text)
	assert.Equal(t, "99999999999999999999", toks[2].Value)
	assert.Equal(t, "0", toks[4].Value)
}

func TestSequenceRestartable(t *testing.T) {
	seq := Tokens([]byte("a++; b++;"))

	var first, second []token.Token

	for tok := range seq {
		first = append(first, tok)
	}

	for tok := range seq {
		second = append(second, tok)
	}

	require.Len(t, first, 7)
	assert.Equal(t, first, second)
	assert.Equal(t, token.EOF, first[len(first)-1].Kind)

	n := 0

	for range seq {
		n++
		if n == 2 {
			break
		}
	}

	assert.Equal(t, 2, n)
}

func TestNextAfterEOF(t *testing.T) {
	l := New([]byte("x"))

	assert.Equal(t, token.Ident, l.Next().Kind)
	assert.Equal(t, token.EOF, l.Next().Kind)
	assert.Equal(t, token.EOF, l.Next().Kind)
}

func TestAllMatchesTokens(t *testing.T) {
	src := []byte("int a = 3; $\nif (a < 7) {\n    a++;\n}\n")

	var seq []token.Token
	for tok := range Tokens(src) {
		seq = append(seq, tok)
	}

	toks, errs := All(context.Background(), src)
	assert.Equal(t, seq, toks)
	assert.Len(t, errs, 1)

	l := New(src)

	for tok := range l.All() {
		if tok.Kind == token.Semicolon {
			break
		}
	}

	assert.Equal(t, token.If, l.Next().Kind)
	assert.Len(t, l.Errors(), 1)
}
