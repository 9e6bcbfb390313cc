package parse

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tiny/compiler/ast"
	"github.com/slowlang/tiny/compiler/token"
)

type (
	State struct {
		Grammar Parser

		// MaxDepth limits nesting of if bodies and parentheses.
		MaxDepth int

		depth int
	}

	// Parser consumes tokens starting at st. On failure i is the position
	// where the error was found, i == st means nothing was consumed.
	Parser interface {
		Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error)
	}

	SyntaxError struct {
		Token token.Token
		Want  string
	}

	TooDeepError struct {
		Token token.Token
		Max   int
	}

	stateCtxKey struct{}
)

const DefaultMaxDepth = 256

// Parse builds the program out of toks. A missing trailing EOF token is implied.
func Parse(ctx context.Context, toks []token.Token) (*ast.Program, error) {
	return New().Parse(ctx, toks)
}

func New() *State {
	return &State{
		Grammar:  Program{},
		MaxDepth: DefaultMaxDepth,
	}
}

func (s *State) Parse(ctx context.Context, toks []token.Token) (p *ast.Program, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "parse: program", "tokens", len(toks))
	defer tr.Finish("err", &err)

	if l := len(toks); l == 0 || toks[l-1].Kind != token.EOF {
		var eof token.Token

		if l != 0 {
			eof.Line = toks[l-1].Line
		}

		toks = append(toks[:l:l], eof)
	}

	s.depth = 0
	ctx = context.WithValue(ctx, stateCtxKey{}, s)

	x, i, err := s.Grammar.Parse(ctx, toks, 0)
	if err != nil {
		return nil, errors.Wrap(err, "parse as grammar")
	}

	if toks[i].Kind != token.EOF {
		return nil, NewSyntaxError(toks[i], "statement or end of input")
	}

	p, ok := x.(*ast.Program)
	if !ok {
		return nil, errors.New("grammar produced %T, *ast.Program expected", x)
	}

	if tr.If("dump_ast") {
		tr.Printw("ast", "dump", ast.Dump(nil, p))
	}

	return p, nil
}

func StateFromContext(ctx context.Context) *State {
	s, _ := ctx.Value(stateCtxKey{}).(*State)
	return s
}

func NewSyntaxError(t token.Token, want string) *SyntaxError {
	return &SyntaxError{
		Token: t,
		Want:  want,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: unexpected %s, %s expected", e.Token.Line, e.Token.Describe(), e.Want)
}

func (e *TooDeepError) Error() string {
	return fmt.Sprintf("line %d: nesting deeper than %d at %s", e.Token.Line, e.Max, e.Token.Describe())
}
