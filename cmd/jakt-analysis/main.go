package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"jakt/analysis-go/pkg/driver"
)

const cliToolVersion = "jakt-analysis 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "types":
		return runTypes(args[1:])
	case "infer":
		return runInfer(args[1:])
	case "dump":
		return runDump(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "prelude":
		return runPrelude(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  jakt-analysis types [--html|--ansi] [--short] [--expr] <file.jakt>")
	fmt.Fprintln(os.Stderr, "  jakt-analysis infer [--html|--ansi] [--short] [--expr] <file.jakt> <expression>")
	fmt.Fprintln(os.Stderr, "  jakt-analysis dump [--depth n] <file.jakt> <name>")
	fmt.Fprintln(os.Stderr, "  jakt-analysis repl <file.jakt>")
	fmt.Fprintln(os.Stderr, "  jakt-analysis prelude [--print]")
	fmt.Fprintln(os.Stderr, "Common flags: --config <jakt-analysis.yml> --offline --verbose")
}

// commonFlags are shared by every subcommand.
type commonFlags struct {
	config  string
	offline bool
	verbose bool
	html    bool
	ansi    bool
	short   bool
	expr    bool
}

func newFlagSet(name string, common *commonFlags, render bool) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = printUsage
	fs.StringVar(&common.config, "config", "", "path to "+driver.ConfigFileName)
	fs.BoolVar(&common.offline, "offline", false, "never fetch the prelude")
	fs.BoolVar(&common.verbose, "verbose", false, "log session activity to stderr")
	if render {
		fs.BoolVar(&common.html, "html", false, "render as HTML spans")
		fs.BoolVar(&common.ansi, "ansi", false, "render with terminal colors")
		fs.BoolVar(&common.short, "short", false, "omit namespace qualifiers")
		fs.BoolVar(&common.expr, "expr", false, "omit declaration keywords")
	}
	return fs
}

// parseArgs parses flags and checks the positional argument count. It
// returns a non-negative exit code when the command should stop.
func parseArgs(fs *flag.FlagSet, args []string, want int) ([]string, int) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, 0
		}
		return nil, 2
	}
	rest := fs.Args()
	if len(rest) != want {
		fmt.Fprintf(os.Stderr, "%s expects %d argument(s), got %d\n", fs.Name(), want, len(rest))
		printUsage()
		return nil, 2
	}
	return rest, -1
}

// loadConfig reads --config, or the nearest jakt-analysis.yml above start,
// or falls back to the defaults.
func loadConfig(common *commonFlags, start string) (*driver.Config, error) {
	var cfg *driver.Config
	switch {
	case common.config != "":
		loaded, err := driver.LoadConfig(common.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		path, err := driver.FindConfig(start)
		switch {
		case err == nil:
			loaded, loadErr := driver.LoadConfig(path)
			if loadErr != nil {
				return nil, loadErr
			}
			cfg = loaded
		case errors.Is(err, driver.ErrConfigNotFound):
			cfg = driver.DefaultConfig()
		default:
			return nil, err
		}
	}

	if common.offline {
		cfg.Prelude.Offline = true
	}
	switch {
	case common.html:
		cfg.Render.Mode = driver.RenderHTML
	case common.ansi:
		cfg.Render.Mode = driver.RenderANSI
	}
	cfg.Render.Short = cfg.Render.Short || common.short
	cfg.Render.Expression = cfg.Render.Expression || common.expr
	return cfg, nil
}

func openSession(common *commonFlags, target string) (*driver.Session, int) {
	if common.html && common.ansi {
		fmt.Fprintln(os.Stderr, "--html and --ansi are mutually exclusive")
		return nil, 2
	}
	start := "."
	if target != "" {
		start = filepath.Dir(target)
	}
	cfg, err := loadConfig(common, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return nil, 1
	}
	session, err := driver.NewSession(cfg, newLogger(common.verbose))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return nil, 1
	}
	return session, -1
}

func newLogger(verbose bool) *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "jakt-analysis: ", 0)
}
