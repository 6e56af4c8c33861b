package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jakt/analysis-go/pkg/driver"
)

const sampleSource = `struct Point {
    x: i64
}

enum Color {
    Red
    Green
}

function area(r: f64) -> f64 => r
`

// writeWorkspace lays out a source file next to an offline config.
func writeWorkspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	config := filepath.Join(dir, driver.ConfigFileName)
	cache := filepath.Join(dir, ".cache")
	if err := os.WriteFile(config, []byte("prelude:\n  offline: true\ncache_dir: "+cache+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	source := filepath.Join(dir, "main.jakt")
	if err := os.WriteFile(source, []byte(sampleSource), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return config, source
}

func TestTypesCommand(t *testing.T) {
	_, source := writeWorkspace(t)
	code, stdout, stderr := captureCLI(t, []string{"types", source})
	if code != 0 {
		t.Fatalf("types exited %d: %s", code, stderr)
	}
	want := "struct Point\nenum Color\nfunction area(r: f64): f64\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}

	code, stdout, _ = captureCLI(t, []string{"types", "--expr", source})
	if code != 0 || !strings.HasPrefix(stdout, "Point\nColor\n") {
		t.Fatalf("types --expr exited %d with %q", code, stdout)
	}

	code, stdout, _ = captureCLI(t, []string{"types", "--html", source})
	if code != 0 || !strings.Contains(stdout, `<span class="struct-name">Point</span>`) {
		t.Fatalf("types --html exited %d with %q", code, stdout)
	}
}

func TestTypesCommandReportsSyntaxErrors(t *testing.T) {
	config, _ := writeWorkspace(t)
	broken := filepath.Join(filepath.Dir(config), "broken.jakt")
	if err := os.WriteFile(broken, []byte("struct Ok {}\nstruct {\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	code, stdout, stderr := captureCLI(t, []string{"types", broken})
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if stdout != "struct Ok\n" || stderr == "" {
		t.Fatalf("stdout = %q, stderr = %q", stdout, stderr)
	}
}

func TestInferCommand(t *testing.T) {
	_, source := writeWorkspace(t)
	cases := []struct {
		expr string
		want string
	}{
		{"(Point(x: 1), 2).1", "i64"},
		{"area(r: 2.0)", "f64"},
		{"Color::Green", "Color::Green"},
		{"[1u8: true]", "[u8:bool]"},
	}
	for _, tc := range cases {
		code, stdout, stderr := captureCLI(t, []string{"infer", source, tc.expr})
		if code != 0 {
			t.Fatalf("infer %s exited %d: %s", tc.expr, code, stderr)
		}
		if got := strings.TrimSpace(stdout); got != tc.want {
			t.Fatalf("infer %s = %q, want %q", tc.expr, got, tc.want)
		}
	}

	code, _, stderr := captureCLI(t, []string{"infer", source, "1 +"})
	if code != 1 || stderr == "" {
		t.Fatalf("expected a parse failure, got %d %q", code, stderr)
	}
}

func TestDumpCommand(t *testing.T) {
	_, source := writeWorkspace(t)
	code, stdout, stderr := captureCLI(t, []string{"dump", "--depth", "2", source, "Point"})
	if code != 0 {
		t.Fatalf("dump exited %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "StructName") || !strings.Contains(stdout, `"Point"`) {
		t.Fatalf("unexpected dump output:\n%s", stdout)
	}

	code, _, stderr = captureCLI(t, []string{"dump", source, "Missing"})
	if code != 1 || !strings.Contains(stderr, "Missing") {
		t.Fatalf("expected lookup failure, got %d %q", code, stderr)
	}
}

func TestPreludeCommand(t *testing.T) {
	config, _ := writeWorkspace(t)
	code, stdout, stderr := captureCLI(t, []string{"prelude", "--config", config})
	if code != 0 {
		t.Fatalf("prelude exited %d: %s", code, stderr)
	}
	if stdout != "source: embedded\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	code, stdout, _ = captureCLI(t, []string{"prelude", "--config", config, "--print"})
	if code != 0 || !strings.Contains(stdout, "struct Array<T>") {
		t.Fatalf("prelude --print exited %d", code)
	}
}

func TestUsageErrors(t *testing.T) {
	_, source := writeWorkspace(t)
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"no arguments", nil, 2},
		{"unknown command", []string{"frobnicate"}, 2},
		{"missing expression", []string{"infer", source}, 2},
		{"unknown flag", []string{"types", "--bogus", source}, 2},
		{"conflicting renderers", []string{"types", "--html", "--ansi", source}, 2},
		{"missing config", []string{"types", "--config", filepath.Join(t.TempDir(), "none.yml"), source}, 1},
		{"missing file", []string{"types", filepath.Join(filepath.Dir(source), "none.jakt")}, 1},
	}
	for _, tc := range cases {
		code, _, stderr := captureCLI(t, tc.args)
		if code != tc.code {
			t.Fatalf("%s: exit %d, want %d (stderr %q)", tc.name, code, tc.code, stderr)
		}
		if stderr == "" {
			t.Fatalf("%s: expected a message on stderr", tc.name)
		}
	}

	code, stdout, _ := captureCLI(t, []string{"--version"})
	if code != 0 || strings.TrimSpace(stdout) != cliToolVersion {
		t.Fatalf("--version exited %d with %q", code, stdout)
	}
}

func TestEvalReplLine(t *testing.T) {
	config, source := writeWorkspace(t)
	cfg, err := driver.LoadConfig(config)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	session, err := driver.NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	ctx := context.Background()
	cases := []struct {
		line string
		want string
	}{
		{"Point(x: 1)", "struct Point\n"},
		{":type Point", "struct Point\n"},
		{":type Missing", "error: "},
		{":bogus", "unknown command :bogus"},
		{"1 +", "error: "},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		if evalReplLine(ctx, session, source, tc.line, &out) {
			t.Fatalf("%q should not exit", tc.line)
		}
		if !strings.HasPrefix(out.String(), tc.want) {
			t.Fatalf("%q printed %q, want prefix %q", tc.line, out.String(), tc.want)
		}
	}
	var out bytes.Buffer
	if !evalReplLine(ctx, session, source, ":quit", &out) {
		t.Fatalf(":quit should exit")
	}
	evalReplLine(ctx, session, source, ":names", &out)
	if !strings.Contains(out.String(), "Point") || !strings.Contains(out.String(), "Array") {
		t.Fatalf(":names = %q", out.String())
	}

	complete := completer(session, source)
	if got := complete("Po"); len(got) != 1 || got[0] != "Point" {
		t.Fatalf("complete(Po) = %v", got)
	}
	if got := complete("area(r: Po"); len(got) != 1 || got[0] != "area(r: Point" {
		t.Fatalf("complete(area(r: Po) = %v", got)
	}
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	outCh := drain(rOut)
	errCh := drain(rErr)

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	os.Stdout = stdout
	os.Stderr = stderr

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}
	return code, <-outCh, <-errCh
}

func drain(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(r)
		_ = r.Close()
		ch <- string(data)
	}()
	return ch
}
