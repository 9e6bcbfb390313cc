package compiler

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tiny/compiler/ast"
	"github.com/slowlang/tiny/compiler/back"
	"github.com/slowlang/tiny/compiler/diag"
	"github.com/slowlang/tiny/compiler/lex"
	"github.com/slowlang/tiny/compiler/parse"
	"github.com/slowlang/tiny/compiler/token"
)

type (
	Compiler struct {
		// Strict makes lexical errors fail the compilation
		// instead of skipping the offending characters.
		Strict bool

		// MaxDepth limits if and parentheses nesting.
		// parse.DefaultMaxDepth is used if zero.
		MaxDepth int
	}

	Result struct {
		Code []byte

		Tokens []token.Token
		AST    *ast.Program

		// Diags holds lexical warnings and the error which stopped
		// the compilation if any, in source order.
		Diags []diag.Diagnostic
	}
)

func CompileFile(ctx context.Context, name string) (obj []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Compile(ctx, name, text)
}

// Compile translates text into a C++ translation unit.
func Compile(ctx context.Context, name string, text []byte) (obj []byte, err error) {
	var c Compiler

	res, err := c.Build(ctx, name, text)
	if err != nil {
		return nil, err
	}

	return res.Code, nil
}

// Build runs the whole pipeline keeping the intermediate results.
// On error res is still returned with everything produced before the failure
// but res.Code is nil.
func (c *Compiler) Build(ctx context.Context, name string, text []byte) (res *Result, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "compile", "name", name, "size", len(text), "strict", c.Strict)
	defer tr.Finish("err", &err)

	res = &Result{}
	q := diag.NewQueue()

	defer func() {
		res.Diags = q.Drain()
	}()

	toks, lerrs := lex.All(ctx, text)
	res.Tokens = toks

	for _, e := range lerrs {
		sev := diag.Warning
		if c.Strict {
			sev = diag.Error
		}

		q.Add(diag.Diagnostic{File: name, Line: e.Line, Col: e.Col, Severity: sev, Msg: lexMsg(e)})
	}

	if c.Strict && len(lerrs) != 0 {
		return res, errors.Wrap(lerrs[0], "lexical errors: %d", len(lerrs))
	}

	p := parse.New()
	if c.MaxDepth != 0 {
		p.MaxDepth = c.MaxDepth
	}

	prog, err := p.Parse(ctx, toks)
	if err != nil {
		q.Add(parseDiag(name, err))

		return res, errors.Wrap(err, "parse")
	}

	res.AST = prog

	obj, err := back.New().CompileProgram(ctx, nil, prog)
	if err != nil {
		q.Add(diag.Diagnostic{File: name, Severity: diag.Error, Msg: err.Error()})

		return res, errors.Wrap(err, "generate")
	}

	res.Code = obj

	return res, nil
}

func lexMsg(e *lex.Error) string {
	if e.Reason == lex.IllegalChar {
		return e.Reason + " " + strconv.QuoteRune(e.Char)
	}

	return e.Reason + ": " + e.Text
}

func parseDiag(name string, err error) diag.Diagnostic {
	d := diag.Diagnostic{
		File:     name,
		Severity: diag.Error,
		Msg:      err.Error(),
	}

	var se *parse.SyntaxError
	var te *parse.TooDeepError

	switch {
	case errors.As(err, &se):
		d.Line, d.Col = se.Token.Line, se.Token.Col
		d.Msg = "unexpected " + se.Token.Describe() + ", " + se.Want + " expected"
	case errors.As(err, &te):
		d.Line, d.Col = te.Token.Line, te.Token.Col
		d.Msg = fmt.Sprintf("nesting deeper than %d", te.Max)
	}

	return d
}
