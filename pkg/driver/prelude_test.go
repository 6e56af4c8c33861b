package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"jakt/analysis-go/pkg/parser"
)

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Jakt Analysis",
			Email: "jakt-analysis@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func TestEmbeddedPreludeParses(t *testing.T) {
	file, err := parser.ParseFile("prelude.jakt", embeddedPrelude)
	if err != nil {
		t.Fatalf("embedded prelude: %v", err)
	}
	names := map[string]bool{}
	for _, decl := range file.Declarations {
		names[decl.DeclName()] = true
	}
	for _, want := range []string{"String", "Array", "Dictionary", "Set", "Optional", "Error"} {
		if !names[want] {
			t.Fatalf("embedded prelude lacks %s", want)
		}
	}
}

func TestAcquirePreludeFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prelude.jakt")
	writeFile(t, path, "struct Local {}\n")
	cfg := DefaultConfig()
	cfg.Prelude.Path = path
	prelude, err := AcquirePrelude(cfg, nil)
	if err != nil {
		t.Fatalf("AcquirePrelude: %v", err)
	}
	if prelude.Source != PreludeFromPath || string(prelude.Text) != "struct Local {}\n" {
		t.Fatalf("unexpected prelude %#v", prelude)
	}

	cfg.Prelude.Path = filepath.Join(t.TempDir(), "missing.jakt")
	if _, err := AcquirePrelude(cfg, nil); err == nil {
		t.Fatalf("missing configured prelude should be an error")
	}
}

func TestAcquirePreludeClonesAndReusesCheckout(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "runtime", "prelude.jakt"), "struct FromGit {}\n")
	commit := initGitRepo(t, repoDir)

	cfg := DefaultConfig()
	cfg.CacheDir = t.TempDir()
	cfg.Prelude.Git = repoDir
	cfg.Prelude.Ref = "master"

	prelude, err := AcquirePrelude(cfg, nil)
	if err != nil {
		t.Fatalf("AcquirePrelude: %v", err)
	}
	if prelude.Source != PreludeFromGit {
		t.Fatalf("expected git prelude, got %s", prelude.Source)
	}
	if prelude.Revision != commit {
		t.Fatalf("revision = %s, want %s", prelude.Revision, commit)
	}
	if !strings.HasPrefix(prelude.Path, PreludeCheckoutDir(cfg.CacheDir, "master")) {
		t.Fatalf("checkout not cached under the ref directory: %s", prelude.Path)
	}

	// The cached checkout is reused even when the network is off.
	if err := os.RemoveAll(repoDir); err != nil {
		t.Fatalf("remove repo: %v", err)
	}
	cfg.Prelude.Offline = true
	again, err := AcquirePrelude(cfg, nil)
	if err != nil {
		t.Fatalf("AcquirePrelude (cached): %v", err)
	}
	if again.Source != PreludeFromGit || string(again.Text) != "struct FromGit {}\n" {
		t.Fatalf("cached checkout not reused: %#v", again)
	}
}

func TestAcquirePreludeFallsBackToEmbedded(t *testing.T) {
	repoDir := t.TempDir()
	writeFile(t, filepath.Join(repoDir, "runtime", "prelude.jakt"), "struct FromGit {}\n")
	initGitRepo(t, repoDir)

	cases := []struct {
		name   string
		adjust func(*Config)
	}{
		{"offline without cache", func(cfg *Config) { cfg.Prelude.Offline = true }},
		{"unknown ref", func(cfg *Config) { cfg.Prelude.Ref = "no-such-branch" }},
		{"missing file", func(cfg *Config) { cfg.Prelude.File = "runtime/missing.jakt" }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.CacheDir = t.TempDir()
		cfg.Prelude.Git = repoDir
		cfg.Prelude.Ref = "master"
		tc.adjust(cfg)
		prelude, err := AcquirePrelude(cfg, nil)
		if err != nil {
			t.Fatalf("%s: AcquirePrelude: %v", tc.name, err)
		}
		if prelude.Source != PreludeFromEmbedded {
			t.Fatalf("%s: expected embedded prelude, got %s", tc.name, prelude.Source)
		}
	}
}

func TestSanitizePathSegment(t *testing.T) {
	cases := map[string]string{
		"main":        "main",
		"release/1.0": "release_1.0",
		"  ":          "head",
		"feature@{1}": "feature__1_",
	}
	for in, want := range cases {
		if got := sanitizePathSegment(in); got != want {
			t.Fatalf("sanitizePathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
