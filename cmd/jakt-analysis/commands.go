package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/driver"
)

func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// runTypes prints the type of every top-level declaration of a file.
func runTypes(args []string) int {
	var common commonFlags
	fs := newFlagSet("types", &common, true)
	rest, code := parseArgs(fs, args, 1)
	if code >= 0 {
		return code
	}
	path := rest[0]
	session, code := openSession(&common, path)
	if code >= 0 {
		return code
	}
	file, err := session.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	ctx, stop := interruptible()
	defer stop()
	for _, decl := range file.Declarations {
		if _, ok := decl.(*ast.ImportStatement); ok {
			continue
		}
		text, err := session.Describe(ctx, decl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", decl.DeclName(), err)
			return 1
		}
		fmt.Fprintln(os.Stdout, text)
	}
	if err := session.Errors(path); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

// runInfer prints the type of an expression typed in a file's top level.
func runInfer(args []string) int {
	var common commonFlags
	fs := newFlagSet("infer", &common, true)
	rest, code := parseArgs(fs, args, 2)
	if code >= 0 {
		return code
	}
	session, code := openSession(&common, rest[0])
	if code >= 0 {
		return code
	}
	ctx, stop := interruptible()
	defer stop()
	text, err := inferExpression(ctx, session, rest[0], rest[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, text)
	return 0
}

func inferExpression(ctx context.Context, session *driver.Session, path, src string) (string, error) {
	typ, err := session.InferIn(ctx, path, src)
	if err != nil {
		return "", err
	}
	return session.Render(ctx, typ)
}

// runDump writes the type structure behind a declaration.
func runDump(args []string) int {
	var common commonFlags
	fs := newFlagSet("dump", &common, false)
	depth := fs.Int("depth", 4, "maximum nesting to print")
	rest, code := parseArgs(fs, args, 2)
	if code >= 0 {
		return code
	}
	session, code := openSession(&common, rest[0])
	if code >= 0 {
		return code
	}
	decl, err := session.Lookup(rest[0], rest[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	ctx, stop := interruptible()
	defer stop()
	typ, err := session.TypeOf(ctx, decl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	dumper := spew.ConfigState{
		Indent:                  "  ",
		MaxDepth:                *depth,
		DisableMethods:          true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	dumper.Fdump(os.Stdout, typ)
	return 0
}

// runPrelude reports where the prelude comes from.
func runPrelude(args []string) int {
	var common commonFlags
	fs := newFlagSet("prelude", &common, false)
	printText := fs.Bool("print", false, "print the prelude source")
	if _, code := parseArgs(fs, args, 0); code >= 0 {
		return code
	}
	cfg, err := loadConfig(&common, ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	prelude, err := driver.AcquirePrelude(cfg, newLogger(common.verbose))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if *printText {
		os.Stdout.Write(prelude.Text)
		return 0
	}
	fmt.Fprintf(os.Stdout, "source: %s\n", prelude.Source)
	if prelude.Path != "" {
		fmt.Fprintf(os.Stdout, "path: %s\n", prelude.Path)
	}
	if prelude.Revision != "" {
		fmt.Fprintf(os.Stdout, "revision: %s\n", prelude.Revision)
	}
	return 0
}
