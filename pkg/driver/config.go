// Package driver hosts analysis sessions: it loads configuration, acquires
// the prelude, resolves imports on disk and exposes the type queries.
package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file FindConfig searches for.
const ConfigFileName = "jakt-analysis.yml"

const (
	DefaultPreludeGit  = "https://github.com/SerenityOS/jakt.git"
	DefaultPreludeRef  = "main"
	DefaultPreludeFile = "runtime/prelude.jakt"
)

// ErrConfigNotFound is returned by FindConfig when no config file exists.
var ErrConfigNotFound = errors.New("driver: " + ConfigFileName + " not found")

// Config is the parsed contents of jakt-analysis.yml.
type Config struct {
	Path        string
	Prelude     PreludeConfig
	CacheDir    string
	SearchPaths []string
	Render      RenderConfig
}

// PreludeConfig says where the prelude source comes from.
type PreludeConfig struct {
	Path    string
	Git     string
	Ref     string
	File    string
	Offline bool
}

type RenderConfig struct {
	Mode       string
	Short      bool
	Expression bool
}

// Render modes.
const (
	RenderPlain = "plain"
	RenderHTML  = "html"
	RenderANSI  = "ansi"
)

type configFile struct {
	Prelude *struct {
		Path    string `yaml:"path"`
		Git     string `yaml:"git"`
		Ref     string `yaml:"ref"`
		File    string `yaml:"file"`
		Offline bool   `yaml:"offline"`
	} `yaml:"prelude"`
	CacheDir    string   `yaml:"cache_dir"`
	SearchPaths []string `yaml:"search_paths"`
	Render      *struct {
		Mode       string `yaml:"mode"`
		Short      bool   `yaml:"short"`
		Expression bool   `yaml:"expression"`
	} `yaml:"render"`
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses and validates a configuration file. Relative paths in
// the file are taken relative to its directory.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeConfig(file, absPath)
}

func decodeConfig(r io.Reader, absPath string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (raw *configFile) toConfig(absPath string) *Config {
	cfg := &Config{Path: absPath, CacheDir: strings.TrimSpace(raw.CacheDir)}
	if raw.Prelude != nil {
		cfg.Prelude = PreludeConfig{
			Path:    strings.TrimSpace(raw.Prelude.Path),
			Git:     strings.TrimSpace(raw.Prelude.Git),
			Ref:     strings.TrimSpace(raw.Prelude.Ref),
			File:    strings.TrimSpace(raw.Prelude.File),
			Offline: raw.Prelude.Offline,
		}
	}
	if raw.Render != nil {
		cfg.Render = RenderConfig{
			Mode:       strings.ToLower(strings.TrimSpace(raw.Render.Mode)),
			Short:      raw.Render.Short,
			Expression: raw.Render.Expression,
		}
	}
	cfg.SearchPaths = append(cfg.SearchPaths, raw.SearchPaths...)
	cfg.applyDefaults()

	base := filepath.Dir(absPath)
	if cfg.Prelude.Path != "" {
		cfg.Prelude.Path = resolveRelative(base, cfg.Prelude.Path)
	}
	cfg.CacheDir = resolveRelative(base, cfg.CacheDir)
	for i, dir := range cfg.SearchPaths {
		if strings.TrimSpace(dir) != "" {
			cfg.SearchPaths[i] = resolveRelative(base, strings.TrimSpace(dir))
		}
	}
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Prelude.Git == "" {
		cfg.Prelude.Git = DefaultPreludeGit
	}
	if cfg.Prelude.Ref == "" {
		cfg.Prelude.Ref = DefaultPreludeRef
	}
	if cfg.Prelude.File == "" {
		cfg.Prelude.File = DefaultPreludeFile
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}
	if cfg.Render.Mode == "" {
		cfg.Render.Mode = RenderPlain
	}
}

func (cfg *Config) validate() error {
	var errs ValidationError
	switch cfg.Render.Mode {
	case RenderPlain, RenderHTML, RenderANSI:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("render.mode %q must be one of plain, html, ansi", cfg.Render.Mode))
	}
	if filepath.IsAbs(cfg.Prelude.File) {
		errs.Issues = append(errs.Issues, "prelude.file must be relative to the repository root")
	}
	if strings.Contains(filepath.ToSlash(cfg.Prelude.File), "..") {
		errs.Issues = append(errs.Issues, "prelude.file must not leave the repository")
	}
	for i, dir := range cfg.SearchPaths {
		if strings.TrimSpace(dir) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("search_paths[%d] must be a non-empty string", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindConfig walks up from start to the nearest jakt-analysis.yml.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

func defaultCacheDir() string {
	if dir := strings.TrimSpace(os.Getenv("JAKT_ANALYSIS_CACHE")); dir != "" {
		return dir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "jakt-analysis")
	}
	return filepath.Join(os.TempDir(), "jakt-analysis")
}

func resolveRelative(base, path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
