// Package typechecker computes the types of Jakt declarations and infers the
// types of expressions.
package typechecker

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

// Resolver locates declarations for the checker. Implementations must not
// call back into the Checker.
type Resolver interface {
	// Resolve finds the declaration a possibly qualified name refers to when
	// written at from, or nil.
	Resolve(path []string, from ast.Node) ast.Declaration
	// ResolveImport returns the file an import statement names, or nil.
	ResolveImport(imp *ast.ImportStatement) *ast.File
}

// Checker caches declaration types for one analysis session. It is safe for
// concurrent use.
type Checker struct {
	mu       sync.RWMutex
	resolver Resolver
	cache    map[ast.Node]cacheEntry
}

type cacheEntry struct {
	revision   uint64
	owner      uint64
	typ        types.Type
	inProgress bool
}

// New returns a checker that resolves names through resolver.
func New(resolver Resolver) *Checker {
	return &Checker{
		resolver: resolver,
		cache:    make(map[ast.Node]cacheEntry),
	}
}

// TypeOf returns the type of a declaration. Nominal declarations return the
// same instance until their revision changes.
func (c *Checker) TypeOf(ctx context.Context, decl ast.Declaration) (types.Type, error) {
	if decl == nil {
		return types.Unknown, fmt.Errorf("typechecker: declaration is nil")
	}
	if err := ctx.Err(); err != nil {
		return types.Unknown, err
	}
	q := c.newQuery(ctx)
	return q.run(func() types.Type { return q.declType(decl) })
}

// InferType returns the type of an expression. Inference never fails for
// user source problems; those yield types.Unknown.
func (c *Checker) InferType(ctx context.Context, expr ast.Expression) (types.Type, error) {
	if expr == nil {
		return types.Unknown, fmt.Errorf("typechecker: expression is nil")
	}
	if err := ctx.Err(); err != nil {
		return types.Unknown, err
	}
	q := c.newQuery(ctx)
	return q.run(func() types.Type { return q.infer(expr) })
}

// Evict drops cached results for root and everything below it.
func (c *Checker) Evict(root ast.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ast.Walk(root, func(n ast.Node) bool {
		delete(c.cache, n)
		return true
	})
}

// CacheSize reports how many declarations currently have cached types.
func (c *Checker) CacheSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// query is the state of one TypeOf or InferType call.
type query struct {
	c        *Checker
	ctx      context.Context
	locked   bool
	added    []ast.Node
	visiting *set.Set[ast.Node]
}

func (c *Checker) newQuery(ctx context.Context) *query {
	return &query{c: c, ctx: ctx, visiting: set.New[ast.Node](4)}
}

func (q *query) run(fn func() types.Type) (result types.Type, err error) {
	defer func() {
		if r := recover(); r != nil {
			q.rollback()
			result = types.Unknown
			switch v := r.(type) {
			case cancellation:
				err = v.err
			case *InvariantError:
				err = v
			default:
				err = &InvariantError{Err: errors.Errorf("unexpected panic: %v", r)}
			}
		}
		q.unlock()
	}()
	return fn(), nil
}

// lock takes the checker's write lock for the rest of the query.
func (q *query) lock() {
	if q.locked {
		return
	}
	q.c.mu.Lock()
	q.locked = true
}

func (q *query) unlock() {
	if !q.locked {
		return
	}
	q.locked = false
	q.c.mu.Unlock()
}

func (q *query) rollback() {
	if !q.locked {
		return
	}
	for _, node := range q.added {
		delete(q.c.cache, node)
	}
	q.added = nil
}

// cached returns a valid cache entry for decl. Once the query owns the write
// lock, in-progress shells registered by it are returned too.
func (q *query) cached(decl ast.Declaration) (types.Type, bool) {
	var entry cacheEntry
	var ok bool
	if q.locked {
		entry, ok = q.c.cache[decl]
	} else {
		q.c.mu.RLock()
		entry, ok = q.c.cache[decl]
		q.c.mu.RUnlock()
		if entry.inProgress {
			return nil, false
		}
	}
	if !ok || entry.revision != decl.Revision() || entry.owner != ownerRevision(decl) {
		return nil, false
	}
	return entry.typ, true
}

// ownerRevision is the revision of the struct or enum a variant or method
// belongs to. Members are typed against their owner's instance, so an edit
// to a sibling invalidates them too.
func ownerRevision(decl ast.Declaration) uint64 {
	switch d := decl.(type) {
	case *ast.EnumVariant:
		if enum := d.Enum(); enum != nil {
			return enum.Revision()
		}
	case *ast.FunctionDeclaration:
		switch owner := d.Parent().(type) {
		case *ast.StructDeclaration:
			return owner.Revision()
		case *ast.EnumDeclaration:
			return owner.Revision()
		}
	}
	return 0
}

// guarded computes the type of a self-referential declaration in two phases.
// shell builds the placeholder that is registered before fill runs, so any
// reentrant request for decl made while filling observes the shell.
func (q *query) guarded(decl ast.Declaration, shell func() types.Type, fill func()) types.Type {
	if t, ok := q.cached(decl); ok {
		return t
	}
	q.lock()
	if t, ok := q.cached(decl); ok {
		return t
	}
	revision, owner := decl.Revision(), ownerRevision(decl)
	t := shell()
	q.c.cache[decl] = cacheEntry{revision: revision, owner: owner, typ: t, inProgress: true}
	q.added = append(q.added, decl)
	if fill != nil {
		fill()
	}
	q.c.cache[decl] = cacheEntry{revision: revision, owner: owner, typ: t}
	return t
}

func (q *query) checkCancelled() {
	if err := q.ctx.Err(); err != nil {
		panic(cancellation{err: err})
	}
}
