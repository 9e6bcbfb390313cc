package parse

import (
	"context"
	"fmt"
	"strings"

	"tlog.app/go/loc"
	"tlog.app/go/tlog"

	"github.com/slowlang/tiny/compiler/token"
)

type (
	// Tok matches a single token of the kind.
	Tok token.Kind

	AllOf []Parser

	// AnyOf tries alternatives in order. An alternative that fails
	// after consuming tokens is committed to and its error returned.
	AnyOf []Parser

	// Many repeats Of until it fails without consuming anything.
	Many struct {
		Of  Parser
		Min int
	}

	// Nested counts one level of nesting around Of.
	// It goes after the opening token so that exceeding
	// State.MaxDepth is an error the caller is committed to.
	Nested struct {
		Of Parser
	}
)

func (p Tok) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	if k := t[st].Kind; k == token.Kind(p) && k != token.EOF {
		return t[st], st + 1, nil
	}

	return nil, st, NewSyntaxError(t[st], p.String())
}

func (p Tok) String() string { return token.Kind(p).Describe() }

func (p AllOf) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	i = st

	res := make([]any, len(p))

	for j, r := range p {
		x, i, err = r.Parse(ctx, t, i)
		if err != nil {
			return nil, i, err
		}

		res[j] = x
	}

	return res, i, nil
}

func (p AnyOf) Parse(ctx context.Context, t []token.Token, st int) (_ any, i int, err error) {
	for _, r := range p {
		x, j, e := r.Parse(ctx, t, st)
		if e == nil {
			return x, j, nil
		}
		if j == st {
			continue
		}

		return nil, j, e
	}

	return nil, st, NewSyntaxError(t[st], joinHuman(p...))
}

func (p Many) Parse(ctx context.Context, t []token.Token, st int) (_ any, i int, err error) {
	var res []any

	i = st

	for {
		x, j, err := p.Of.Parse(ctx, t, i)
		if err != nil && j == i && len(res) >= p.Min {
			break
		}
		if err != nil {
			return nil, j, err
		}
		if j == i {
			break
		}

		res = append(res, x)
		i = j
	}

	return res, i, nil
}

func (p Nested) Parse(ctx context.Context, t []token.Token, st int) (x any, i int, err error) {
	s := StateFromContext(ctx)
	if s == nil {
		return p.Of.Parse(ctx, t, st)
	}

	s.depth++
	defer func() {
		s.depth--
	}()

	tlog.V("parse_depth").Printw("nested", "depth", s.depth, "tok", t[st], "from", loc.Caller(1))

	if s.MaxDepth > 0 && s.depth > s.MaxDepth {
		return nil, st, &TooDeepError{Token: t[st], Max: s.MaxDepth}
	}

	return p.Of.Parse(ctx, t, st)
}

func joinHuman(l ...Parser) string {
	switch len(l) {
	case 0:
		return "<none>"
	case 1:
		return describe(l[0])
	}

	var b strings.Builder

	for i, r := range l {
		if i+1 == len(l) {
			b.WriteString(" or ")
		} else if i != 0 {
			b.WriteString(", ")
		}

		b.WriteString(describe(r))
	}

	return b.String()
}

func describe(p Parser) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprintf("%T", p)
}
