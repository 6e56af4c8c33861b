// Package scope resolves names to declarations by walking the lexical scope
// chain of a syntax tree, with a prelude injected at the root.
package scope

import (
	"jakt/analysis-go/pkg/ast"
)

// Loader finds the file an import names, relative to the importing file.
type Loader interface {
	Load(module string, from *ast.File) *ast.File
}

// Files is an in-memory Loader keyed by module name.
type Files map[string]*ast.File

func (f Files) Load(module string, _ *ast.File) *ast.File { return f[module] }

// Resolver implements name and import resolution. The prelude files are
// read-only and visible from everywhere.
type Resolver struct {
	loader  Loader
	prelude []*ast.File
}

func NewResolver(loader Loader, prelude ...*ast.File) *Resolver {
	return &Resolver{loader: loader, prelude: prelude}
}

// Resolve finds the declaration path refers to when written at from.
func (r *Resolver) Resolve(path []string, from ast.Node) ast.Declaration {
	if len(path) == 0 {
		return nil
	}
	decl, ok := r.Environment(from).Lookup(path[0])
	if !ok {
		return nil
	}
	for _, segment := range path[1:] {
		decl = r.member(decl, segment)
		if decl == nil {
			return nil
		}
	}
	return decl
}

// ResolveImport returns the file imp names, or nil.
func (r *Resolver) ResolveImport(imp *ast.ImportStatement) *ast.File {
	if r.loader == nil || imp == nil {
		return nil
	}
	return r.loader.Load(imp.Module, ast.EnclosingFile(imp))
}

// Environment builds the scope chain visible at node.
func (r *Resolver) Environment(node ast.Node) *Environment {
	env := NewEnvironment(nil)
	for _, file := range r.prelude {
		defineItems(env, file.Declarations, false)
	}
	var chain []ast.Node
	for cur := node; cur != nil; cur = cur.Parent() {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 1; i-- {
		env = env.Extend()
		defineScope(env, chain[i], chain[i-1])
	}
	return env
}

// defineScope binds the names scope makes visible to its child.
func defineScope(env *Environment, scope, child ast.Node) {
	switch s := scope.(type) {
	case *ast.File:
		defineItems(env, s.Declarations, true)
	case *ast.NamespaceDeclaration:
		defineItems(env, s.Declarations, true)
	case *ast.StructDeclaration:
		defineGenerics(env, s.GenericParams)
		for _, method := range s.Methods {
			env.Define(method.Name, method)
		}
	case *ast.EnumDeclaration:
		defineGenerics(env, s.GenericParams)
		for _, variant := range s.Variants {
			env.Define(variant.Name, variant)
		}
		for _, method := range s.Methods {
			env.Define(method.Name, method)
		}
	case *ast.FunctionDeclaration:
		defineGenerics(env, s.GenericParams)
		if s.This != nil {
			env.Define("this", s.This)
		}
		for _, param := range s.Params {
			env.Define(param.Name, param)
		}
	case *ast.Block:
		for _, stmt := range s.Statements {
			if stmt == child {
				break
			}
			if decl, ok := stmt.(*ast.VariableDeclaration); ok {
				env.Define(decl.Name, decl)
			}
		}
	case *ast.ForStatement:
		if s.Binding != nil && child == ast.Node(s.Body) {
			env.Define(s.Binding.Name, s.Binding)
		}
	case *ast.MatchCase:
		if child != s.Body {
			return
		}
		for _, pattern := range s.Patterns {
			for _, binding := range pattern.Bindings {
				env.Define(binding.Name, binding)
			}
		}
	}
}

func defineGenerics(env *Environment, params []*ast.GenericParameter) {
	for _, param := range params {
		env.Define(param.Name, param)
	}
}

func defineItems(env *Environment, decls []ast.Declaration, withImports bool) {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.ImportStatement:
			if !withImports {
				continue
			}
			if len(d.Entries) == 0 {
				env.Define(d.DeclName(), d)
				continue
			}
			for _, entry := range d.Entries {
				env.Define(entry.Name, entry)
			}
		default:
			env.Define(decl.DeclName(), decl)
		}
	}
}

// member resolves a `::` segment inside decl.
func (r *Resolver) member(decl ast.Declaration, name string) ast.Declaration {
	switch d := decl.(type) {
	case *ast.File:
		return findItem(d.Declarations, name)
	case *ast.NamespaceDeclaration:
		return findItem(d.Declarations, name)
	case *ast.ImportStatement:
		if file := r.ResolveImport(d); file != nil {
			return findItem(file.Declarations, name)
		}
	case *ast.ImportEntry:
		if imp := d.Import(); imp != nil {
			if file := r.ResolveImport(imp); file != nil {
				if target := findItem(file.Declarations, d.Name); target != nil {
					return r.member(target, name)
				}
			}
		}
	case *ast.StructDeclaration:
		for _, method := range d.Methods {
			if method.Name == name {
				return method
			}
		}
	case *ast.EnumDeclaration:
		for _, variant := range d.Variants {
			if variant.Name == name {
				return variant
			}
		}
		for _, method := range d.Methods {
			if method.Name == name {
				return method
			}
		}
	}
	return nil
}

func findItem(decls []ast.Declaration, name string) ast.Declaration {
	for _, decl := range decls {
		if _, ok := decl.(*ast.ImportStatement); ok {
			continue
		}
		if decl.DeclName() == name {
			return decl
		}
	}
	return nil
}
