package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
prelude:
  path: vendor/prelude.jakt
cache_dir: .cache
search_paths: [lib, /opt/jakt]
render:
  mode: HTML
  short: true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Prelude.Path != filepath.Join(dir, "vendor", "prelude.jakt") {
		t.Fatalf("prelude path = %q", cfg.Prelude.Path)
	}
	if cfg.CacheDir != filepath.Join(dir, ".cache") {
		t.Fatalf("cache dir = %q", cfg.CacheDir)
	}
	if len(cfg.SearchPaths) != 2 || cfg.SearchPaths[0] != filepath.Join(dir, "lib") || cfg.SearchPaths[1] != "/opt/jakt" {
		t.Fatalf("search paths = %#v", cfg.SearchPaths)
	}
	if cfg.Render.Mode != RenderHTML || !cfg.Render.Short || cfg.Render.Expression {
		t.Fatalf("render = %#v", cfg.Render)
	}
	if cfg.Prelude.Git != DefaultPreludeGit || cfg.Prelude.Ref != DefaultPreludeRef || cfg.Prelude.File != DefaultPreludeFile {
		t.Fatalf("prelude defaults not applied: %#v", cfg.Prelude)
	}
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Render.Mode != RenderPlain || cfg.CacheDir == "" {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, "prelude:\n  branch: main\n")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "branch") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	writeFile(t, path, `
prelude:
  file: ../outside.jakt
search_paths: [""]
render:
  mode: pdf
`)
	_, err := LoadConfig(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %#v", verr.Issues)
	}
	if !strings.HasPrefix(verr.Error(), "config validation failed:") {
		t.Fatalf("unexpected message %q", verr.Error())
	}
}

func TestFindConfigWalksUpwards(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ConfigFileName)
	writeFile(t, path, "")
	nested := filepath.Join(root, "a", "b")
	writeFile(t, filepath.Join(nested, "main.jakt"), "")

	found, err := FindConfig(filepath.Join(nested, "main.jakt"))
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if found != path {
		t.Fatalf("FindConfig = %q, want %q", found, path)
	}

	_, err = FindConfig(t.TempDir())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}
