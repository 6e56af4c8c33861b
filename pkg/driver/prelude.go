package driver

import (
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

//go:embed prelude.jakt
var embeddedPrelude []byte

// Prelude sources.
const (
	PreludeFromPath     = "path"
	PreludeFromGit      = "git"
	PreludeFromEmbedded = "embedded"
)

// Prelude is the acquired prelude source.
type Prelude struct {
	Source   string // one of the PreludeFrom constants
	Path     string // file read, empty when embedded
	Revision string // commit hash for git checkouts
	Text     []byte
}

// ErrOffline is reported when a checkout is needed but the network is off.
var ErrOffline = errors.New("prelude: offline and no cached checkout")

// AcquirePrelude finds the prelude: the configured file, then a cached or
// fresh git checkout, then the embedded copy. Only an unreadable configured
// file is an error; git problems fall back to the embedded prelude.
func AcquirePrelude(cfg *Config, logger *log.Logger) (*Prelude, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger = orDiscard(logger)

	if cfg.Prelude.Path != "" {
		text, err := os.ReadFile(cfg.Prelude.Path)
		if err != nil {
			return nil, fmt.Errorf("prelude: read %s: %w", cfg.Prelude.Path, err)
		}
		logger.Printf("prelude: using %s", cfg.Prelude.Path)
		return &Prelude{Source: PreludeFromPath, Path: cfg.Prelude.Path, Text: text}, nil
	}

	checkout, revision, err := ensurePreludeCheckout(cfg.CacheDir, cfg.Prelude, logger)
	if err == nil {
		path := filepath.Join(checkout, filepath.FromSlash(cfg.Prelude.File))
		text, readErr := os.ReadFile(path)
		if readErr == nil {
			return &Prelude{Source: PreludeFromGit, Path: path, Revision: revision, Text: text}, nil
		}
		err = fmt.Errorf("prelude: read %s: %w", path, readErr)
	}
	logger.Printf("prelude: falling back to embedded copy: %v", err)
	return &Prelude{Source: PreludeFromEmbedded, Text: embeddedPrelude}, nil
}

// PreludeCheckoutDir is where the checkout for ref is cached.
func PreludeCheckoutDir(cacheDir, ref string) string {
	return filepath.Join(cacheDir, "prelude", sanitizePathSegment(ref))
}

// ensurePreludeCheckout returns a working tree of the prelude repository at
// the configured ref, reusing the cache when it is already present.
func ensurePreludeCheckout(cacheDir string, cfg PreludeConfig, logger *log.Logger) (string, string, error) {
	targetDir := PreludeCheckoutDir(cacheDir, cfg.Ref)
	if repo, err := git.PlainOpen(targetDir); err == nil {
		revision := ""
		if head, err := repo.Head(); err == nil {
			revision = head.Hash().String()
		}
		logger.Printf("prelude: reusing checkout %s", targetDir)
		return targetDir, revision, nil
	}
	if cfg.Offline {
		return "", "", ErrOffline
	}

	baseDir := filepath.Dir(targetDir)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", fmt.Errorf("prelude: create %s: %w", baseDir, err)
	}
	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	logger.Printf("prelude: cloning %s", cfg.Git)
	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{
		URL:  cfg.Git,
		Tags: git.AllTags,
	})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("prelude: git clone %s: %w", cfg.Git, err)
	}

	hash, err := resolveRef(repo, cfg.Ref)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("prelude: git checkout %s: %w", cfg.Ref, err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return targetDir, hash.String(), nil
}

// resolveRef accepts a branch, tag or commit.
func resolveRef(repo *git.Repository, ref string) (*plumbing.Hash, error) {
	candidates := []plumbing.Revision{
		plumbing.Revision("refs/remotes/origin/" + ref),
		plumbing.Revision("refs/tags/" + ref),
		plumbing.Revision("refs/heads/" + ref),
		plumbing.Revision(ref),
	}
	var lastErr error
	for _, rev := range candidates {
		hash, err := repo.ResolveRevision(rev)
		if err == nil {
			return hash, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("prelude: resolve revision %s: %w", ref, lastErr)
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
