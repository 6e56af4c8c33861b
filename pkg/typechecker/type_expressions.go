package typechecker

import (
	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

// typeExpr types a type annotation directly; annotations are never inferred.
func (q *query) typeExpr(expr ast.TypeExpression) types.Type {
	if expr == nil {
		return types.Unknown
	}
	q.checkCancelled()
	switch te := expr.(type) {
	case *ast.NamedTypeExpression:
		return q.namedType(te)
	case *ast.OptionalTypeExpression:
		return types.OptionalType{Inner: q.typeExpr(te.Inner)}
	case *ast.WeakTypeExpression:
		return types.WeakType{Inner: q.typeExpr(te.Inner)}
	case *ast.RawTypeExpression:
		return types.RawType{Inner: q.typeExpr(te.Inner)}
	case *ast.ArrayTypeExpression:
		return types.ArrayType{Element: q.typeExpr(te.Element)}
	case *ast.SetTypeExpression:
		return types.SetType{Element: q.typeExpr(te.Element)}
	case *ast.DictionaryTypeExpression:
		return types.DictionaryType{Key: q.typeExpr(te.Key), Value: q.typeExpr(te.Value)}
	case *ast.TupleTypeExpression:
		elems := make([]types.Type, len(te.Elements))
		for i, elem := range te.Elements {
			elems[i] = q.typeExpr(elem)
		}
		return types.TupleType{Elements: elems}
	default:
		invariant(expr, "unhandled type expression %T", expr)
	}
	return types.Unknown
}

func (q *query) namedType(te *ast.NamedTypeExpression) types.Type {
	if len(te.Path) == 0 {
		return types.Unknown
	}
	if len(te.Path) == 1 && len(te.Args) == 0 {
		if prim, ok := types.LookupPrimitive(te.Path[0]); ok {
			return prim
		}
		if te.Path[0] == "Self" {
			return q.ownerType(te)
		}
	}
	decl := q.c.resolver.Resolve(te.Path, te)
	if decl == nil {
		return types.Unknown
	}
	var base types.Type
	switch d := decl.(type) {
	case *ast.StructDeclaration, *ast.EnumDeclaration, *ast.GenericParameter, *ast.NamespaceDeclaration, *ast.EnumVariant:
		base = q.declType(d)
	case *ast.ImportEntry:
		base = q.importEntryType(d)
	default:
		return types.Unknown
	}
	if len(te.Args) == 0 {
		return base
	}
	args := make([]types.Type, len(te.Args))
	for i, arg := range te.Args {
		args[i] = q.typeExpr(arg)
	}
	return specializeWith(base, args)
}

// specializeWith binds a generic type's parameters positionally. A wrong
// number of arguments, or a non-generic base, yields Unknown.
func specializeWith(base types.Type, args []types.Type) types.Type {
	generic, ok := base.(*types.ParameterizedType)
	if !ok || len(generic.TypeParameters) != len(args) {
		return types.Unknown
	}
	subst := make(types.Specializations, len(args))
	for i, param := range generic.TypeParameters {
		subst[param] = args[i]
	}
	return types.Specialize(generic, subst)
}
