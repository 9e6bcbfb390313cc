package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/slowlang/tiny/compiler"
	"github.com/slowlang/tiny/compiler/ast"
	"github.com/slowlang/tiny/compiler/format"
	"github.com/slowlang/tiny/compiler/lex"
)

func main() {
	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "translate tiny source into C++",
		Action:      compileAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("output,o", "", "output file, stdout if empty"),
			cli.NewFlag("strict", false, "fail on lexical errors instead of skipping bad characters"),
			cli.NewFlag("max-depth", 0, "if and parentheses nesting limit, 0 for default"),
		},
	}

	tokensCmd := &cli.Command{
		Name:        "tokens",
		Description: "dump token sequence",
		Action:      tokensAct,
		Args:        cli.Args{},
	}

	astCmd := &cli.Command{
		Name:        "ast",
		Description: "dump syntax tree",
		Action:      astAct,
		Args:        cli.Args{},
	}

	fmtCmd := &cli.Command{
		Name:        "fmt",
		Description: "reformat source files",
		Action:      fmtAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			cli.NewFlag("write,w", false, "write result to the source file"),
		},
	}

	app := &cli.Command{
		Name:        "tiny",
		Description: "tiny is a compiler of a tiny imperative language into C++",
		Before:      before,
		After:       after,
		Flags: []*cli.Flag{
			cli.NewFlag("log", "", "log destination: stderr, file name, or empty for none"),
			cli.NewFlag("v", "", "verbosity topics: dump_tokens, dump_ast, dump_code, parse_depth"),
			cli.HelpFlag,
		},
		Commands: []*cli.Command{
			compileCmd,
			tokensCmd,
			astCmd,
			fmtCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

// logFile is the --log destination opened by before, closed by after.
var logFile *os.File

func before(c *cli.Command) error {
	w, err := openLog(c.String("log"))
	if err != nil {
		return err
	}

	tlog.DefaultLogger = tlog.New(w)
	tlog.SetVerbosity(c.String("v"))

	return nil
}

func after(c *cli.Command) error {
	return closeLog()
}

func openLog(dst string) (io.Writer, error) {
	switch dst {
	case "":
		return io.Discard, nil
	case "stderr":
		return tlog.NewConsoleWriter(os.Stderr, tlog.LstdFlags), nil
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open log file")
	}

	logFile = f

	return tlog.NewConsoleWriter(f, tlog.LstdFlags), nil
}

func closeLog() error {
	if logFile == nil {
		return nil
	}

	f := logFile
	logFile = nil

	err := f.Close()
	if err != nil {
		return errors.Wrap(err, "close log file")
	}

	return nil
}

func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	out := c.String("output")
	if out != "" && len(c.Args) > 1 {
		return errors.New("--output is only allowed with a single file")
	}

	comp := &compiler.Compiler{
		Strict:   c.Bool("strict"),
		MaxDepth: c.Int("max-depth"),
	}

	for _, a := range c.Args {
		res, err := build(ctx, comp, a)
		if err != nil {
			return errors.Wrap(err, "compile %v", a)
		}

		if out != "" {
			err = os.WriteFile(out, res.Code, 0o644)
			if err != nil {
				return errors.Wrap(err, "write output")
			}

			continue
		}

		_, err = os.Stdout.Write(res.Code)
		if err != nil {
			return errors.Wrap(err, "write output")
		}
	}

	return nil
}

func tokensAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		text, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read file")
		}

		toks, errs := lex.All(ctx, text)

		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "%s:%v\n", a, e)
		}

		for _, t := range toks {
			fmt.Printf("%v\n", t)
		}
	}

	return nil
}

func astAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	var comp compiler.Compiler

	for _, a := range c.Args {
		res, err := build(ctx, &comp, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		fmt.Printf("%s", ast.Dump(nil, res.AST))
	}

	return nil
}

func fmtAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	comp := compiler.Compiler{Strict: true}

	for _, a := range c.Args {
		res, err := build(ctx, &comp, a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}

		b, err := format.Format(ctx, nil, res.AST)
		if err != nil {
			return errors.Wrap(err, "format %v", a)
		}

		if !c.Bool("write") {
			fmt.Printf("%s", b)
			continue
		}

		err = os.WriteFile(a, b, 0o644)
		if err != nil {
			return errors.Wrap(err, "write %v", a)
		}
	}

	return nil
}

func build(ctx context.Context, comp *compiler.Compiler, name string) (*compiler.Result, error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	res, err := comp.Build(ctx, name, text)

	for _, d := range res.Diags {
		fmt.Fprintf(os.Stderr, "%v\n", d)
	}

	return res, err
}
