package driver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-set/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/parser"
	"jakt/analysis-go/pkg/render"
	"jakt/analysis-go/pkg/scope"
	"jakt/analysis-go/pkg/typechecker"
	"jakt/analysis-go/pkg/types"
)

// Session is one analysis workspace: the open files, the prelude and a
// shared type cache. It is safe for concurrent use.
type Session struct {
	cfg      *Config
	logger   *log.Logger
	prelude  *Prelude
	resolver *scope.Resolver
	checker  *typechecker.Checker
	renderer *render.Renderer

	mu    sync.RWMutex
	files map[string]*sourceFile
}

type sourceFile struct {
	file *ast.File
	err  error
}

// NewSession acquires the prelude and prepares an empty workspace. A nil
// cfg uses DefaultConfig; a nil logger discards output.
func NewSession(cfg *Config, logger *log.Logger) (*Session, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	logger = orDiscard(logger)
	prelude, err := AcquirePrelude(cfg, logger)
	if err != nil {
		return nil, err
	}
	preludeFile, err := parser.ParseFile("prelude.jakt", prelude.Text)
	if err != nil {
		logger.Printf("prelude: keeping %d parsed declarations: %v", len(preludeFile.Declarations), err)
	}
	preludeFile.Path = prelude.Path

	s := &Session{
		cfg:      cfg,
		logger:   logger,
		prelude:  prelude,
		renderer: NewRenderer(cfg.Render),
		files:    make(map[string]*sourceFile),
	}
	s.resolver = scope.NewResolver(s, preludeFile)
	s.checker = typechecker.New(s.resolver)
	return s, nil
}

// NewRenderer builds the renderer cfg describes.
func NewRenderer(cfg RenderConfig) *render.Renderer {
	opts := render.Options{OmitKeywords: cfg.Expression, OmitNamespaces: cfg.Short}
	switch cfg.Mode {
	case RenderHTML:
		return render.HTML(opts)
	case RenderANSI:
		return render.ANSI(opts)
	}
	return render.Plain(opts)
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return logger
}

func (s *Session) Config() *Config            { return s.cfg }
func (s *Session) Prelude() *Prelude          { return s.prelude }
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Open parses the file at path, or returns the already open copy. Syntax
// errors do not fail Open; see Errors.
func (s *Session) Open(path string) (*ast.File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	s.mu.RLock()
	open, ok := s.files[absPath]
	s.mu.RUnlock()
	if ok {
		return open.file, nil
	}
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("driver: read %s: %w", absPath, err)
	}
	return s.store(absPath, src, false), nil
}

// Update replaces the contents of path and drops cached types of the
// previous version.
func (s *Session) Update(path string, src []byte) (*ast.File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	return s.store(absPath, src, true), nil
}

func (s *Session) store(absPath string, src []byte, replace bool) *ast.File {
	file, err := parser.ParseFile(filepath.Base(absPath), src)
	file.Path = absPath
	if err != nil {
		s.logger.Printf("parse %s: %v", absPath, err)
	}

	s.mu.Lock()
	old, ok := s.files[absPath]
	if ok && !replace {
		s.mu.Unlock()
		return old.file
	}
	s.files[absPath] = &sourceFile{file: file, err: err}
	s.mu.Unlock()

	if ok {
		s.checker.Evict(old.file)
	}
	if replace {
		for _, dependent := range s.dependents(absPath) {
			s.logger.Printf("evict %s: imports %s", dependent.Path, absPath)
			s.checker.Evict(dependent)
		}
	}
	return file
}

// dependents returns the open files importing absPath, directly or through
// other open files.
func (s *Session) dependents(absPath string) []*ast.File {
	s.mu.RLock()
	open := make(map[string]*ast.File, len(s.files))
	for path, sf := range s.files {
		open[path] = sf.file
	}
	s.mu.RUnlock()

	affected := set.New[string](len(open))
	queue := []string{absPath}
	for len(queue) > 0 {
		target := queue[0]
		queue = queue[1:]
		for path, file := range open {
			if path == absPath || affected.Contains(path) {
				continue
			}
			if s.importsPath(file, target) {
				affected.Insert(path)
				queue = append(queue, path)
			}
		}
	}

	paths := affected.Slice()
	slices.Sort(paths)
	out := make([]*ast.File, len(paths))
	for i, path := range paths {
		out[i] = open[path]
	}
	return out
}

func (s *Session) importsPath(file *ast.File, target string) bool {
	found := false
	ast.Walk(file, func(n ast.Node) bool {
		if imp, ok := n.(*ast.ImportStatement); ok && s.locate(imp.Module, file) == target {
			found = true
		}
		return !found
	})
	return found
}

// File returns an open file, or nil.
func (s *Session) File(path string) *ast.File {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if open, ok := s.files[absPath]; ok {
		return open.file
	}
	return nil
}

// Errors returns the syntax errors of an open file.
func (s *Session) Errors(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if open, ok := s.files[absPath]; ok {
		return open.err
	}
	return nil
}

// Files lists the paths of open files in sorted order.
func (s *Session) Files() []string {
	s.mu.RLock()
	paths := maps.Keys(s.files)
	s.mu.RUnlock()
	slices.Sort(paths)
	return paths
}

// Load implements scope.Loader: `import a::b` reads a/b.jakt next to the
// importing file, then under each search path.
func (s *Session) Load(module string, from *ast.File) *ast.File {
	path := s.locate(module, from)
	if path == "" {
		return nil
	}
	file, err := s.Open(path)
	if err != nil {
		s.logger.Printf("import %s: %v", module, err)
		return nil
	}
	return file
}

// locate returns the absolute path module resolves to from the importing
// file. Open files win over the disk so updated buffers stay visible.
func (s *Session) locate(module string, from *ast.File) string {
	rel := filepath.Join(strings.Split(module, "::")...) + ".jakt"
	var dirs []string
	if from != nil && from.Path != "" {
		dirs = append(dirs, filepath.Dir(from.Path))
	}
	dirs = append(dirs, s.cfg.SearchPaths...)
	for _, dir := range dirs {
		candidate, err := filepath.Abs(filepath.Join(dir, rel))
		if err != nil {
			continue
		}
		s.mu.RLock()
		_, open := s.files[candidate]
		s.mu.RUnlock()
		if open {
			return candidate
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func (s *Session) TypeOf(ctx context.Context, decl ast.Declaration) (types.Type, error) {
	return s.checker.TypeOf(ctx, decl)
}

func (s *Session) InferType(ctx context.Context, expr ast.Expression) (types.Type, error) {
	return s.checker.InferType(ctx, expr)
}

// InferIn parses src as an expression and types it in the top-level scope
// of the file at path.
func (s *Session) InferIn(ctx context.Context, path, src string) (types.Type, error) {
	file, err := s.Open(path)
	if err != nil {
		return types.Unknown, err
	}
	expr, err := parser.ParseExpression(src)
	if err != nil {
		return types.Unknown, fmt.Errorf("driver: parse expression: %w", err)
	}
	ast.Attach(expr, file)
	return s.checker.InferType(ctx, expr)
}

// Lookup resolves a possibly qualified name (`a::b`) in the top-level scope
// of the file at path.
func (s *Session) Lookup(path, name string) (ast.Declaration, error) {
	file, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	decl := s.resolver.Resolve(strings.Split(name, "::"), topLevel(file))
	if decl == nil {
		return nil, fmt.Errorf("driver: %s not found in %s", name, file.Path)
	}
	return decl, nil
}

// Names lists every name visible at the top level of the file at path.
func (s *Session) Names(path string) ([]string, error) {
	file, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	return s.resolver.Environment(topLevel(file)).Names(), nil
}

// topLevel returns a detached node whose scope is the file's top level.
func topLevel(file *ast.File) ast.Node {
	probe := ast.NewQualifiedName()
	ast.Attach(probe, file)
	return probe
}

// Render renders t with the session's renderer.
func (s *Session) Render(ctx context.Context, t types.Type) (string, error) {
	return s.renderer.RenderContext(ctx, t)
}

// Describe renders hover text for a declaration. Fields, parameters and
// bindings are shown as `name: Type`.
func (s *Session) Describe(ctx context.Context, decl ast.Declaration) (string, error) {
	t, err := s.checker.TypeOf(ctx, decl)
	if err != nil {
		return "", err
	}
	switch decl.(type) {
	case *ast.StructField, *ast.VariantField, *ast.Parameter, *ast.VariableDeclaration, *ast.PatternBinding:
		return s.renderer.RenderField(decl.DeclName(), t), nil
	}
	return s.renderer.RenderContext(ctx, t)
}
