package scope

import (
	"github.com/hashicorp/go-set/v2"
	"golang.org/x/exp/slices"

	"jakt/analysis-go/pkg/ast"
)

// Environment is one lexical scope of declaration names.
type Environment struct {
	parent  *Environment
	symbols map[string]ast.Declaration
}

// NewEnvironment creates a new environment with an optional parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent:  parent,
		symbols: make(map[string]ast.Declaration),
	}
}

// Define binds a name in the current scope, shadowing outer bindings.
func (e *Environment) Define(name string, decl ast.Declaration) {
	if name == "" || decl == nil {
		return
	}
	e.symbols[name] = decl
}

// Lookup searches for a name in the current scope chain.
func (e *Environment) Lookup(name string) (ast.Declaration, bool) {
	if decl, ok := e.symbols[name]; ok {
		return decl, true
	}
	if e.parent != nil {
		return e.parent.Lookup(name)
	}
	return nil, false
}

// Extend returns a child environment.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Names lists every visible name once, sorted.
func (e *Environment) Names() []string {
	seen := set.New[string](len(e.symbols))
	for env := e; env != nil; env = env.parent {
		for name := range env.symbols {
			seen.Insert(name)
		}
	}
	names := seen.Slice()
	slices.Sort(names)
	return names
}
