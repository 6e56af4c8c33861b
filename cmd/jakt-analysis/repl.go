package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"jakt/analysis-go/pkg/driver"
)

const (
	historyFile = ".jakt_analysis_history"
	promptMain  = "jakt> "
)

func runRepl(args []string) int {
	var common commonFlags
	fs := newFlagSet("repl", &common, true)
	rest, code := parseArgs(fs, args, 1)
	if code >= 0 {
		return code
	}
	path := rest[0]
	session, code := openSession(&common, path)
	if code >= 0 {
		return code
	}
	if _, err := session.Open(path); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(completer(session, path))

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(os.Stdout, "Type an expression to see its type. :help lists commands.")
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(os.Stdout)
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if evalReplLine(context.Background(), session, path, line, os.Stdout) {
			return 0
		}
	}
}

// evalReplLine handles one line of input and reports whether to exit.
func evalReplLine(ctx context.Context, session *driver.Session, path, line string, out io.Writer) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		text, err := inferExpression(ctx, session, path, line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintln(out, text)
		return false
	}

	command, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch command {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Fprintln(out, ":type <name>   describe a declaration")
		fmt.Fprintln(out, ":names         list visible names")
		fmt.Fprintln(out, ":quit          leave")
	case ":names":
		names, err := session.Names(path)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintln(out, strings.Join(names, " "))
	case ":type":
		decl, err := session.Lookup(path, arg)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		text, err := session.Describe(ctx, decl)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			return false
		}
		fmt.Fprintln(out, text)
	default:
		fmt.Fprintf(out, "unknown command %s. Type :help for a list.\n", command)
	}
	return false
}

// completer offers the names visible at the top level of path for the
// identifier under the cursor.
func completer(session *driver.Session, path string) liner.Completer {
	return func(line string) []string {
		start := strings.LastIndexFunc(line, func(r rune) bool {
			return !(r == '_' || r == ':' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
		}) + 1
		prefix := line[start:]
		names, err := session.Names(path)
		if err != nil {
			return nil
		}
		var out []string
		for _, name := range names {
			if strings.HasPrefix(name, prefix) {
				out = append(out, line[:start]+name)
			}
		}
		return out
	}
}
