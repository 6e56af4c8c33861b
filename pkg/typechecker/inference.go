package typechecker

import (
	"strconv"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

func (q *query) infer(expr ast.Expression) types.Type {
	if expr == nil {
		return types.Unknown
	}
	q.checkCancelled()
	switch e := expr.(type) {
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral, *ast.StringLiteral, *ast.CharLiteral:
		return literalType(e)
	case *ast.OptionalSome:
		return types.OptionalType{Inner: q.infer(e.Value)}
	case *ast.OptionalNone:
		return types.OptionalType{Inner: types.Unknown}
	case *ast.CallExpression:
		return q.callType(e)
	case *ast.BinaryExpression:
		return q.binaryType(e)
	case *ast.PrefixUnaryExpression:
		return q.prefixType(e)
	case *ast.PostfixUnaryExpression:
		return q.infer(e.Operand)
	case *ast.ParenExpression:
		return q.infer(e.Inner)
	case *ast.AccessExpression:
		return q.accessType(e)
	case *ast.ArrayLiteral:
		return q.arrayType(e)
	case *ast.DictionaryLiteral:
		if len(e.Entries) == 0 {
			return types.DictionaryType{Key: types.Unknown, Value: types.Unknown}
		}
		first := e.Entries[0]
		return types.DictionaryType{Key: q.infer(first.Key), Value: q.infer(first.Value)}
	case *ast.SetLiteral:
		if len(e.Elements) == 0 {
			return types.SetType{Element: types.Unknown}
		}
		return types.SetType{Element: q.infer(e.Elements[0])}
	case *ast.TupleLiteral:
		elems := make([]types.Type, len(e.Elements))
		for i, elem := range e.Elements {
			elems[i] = q.infer(elem)
		}
		return types.TupleType{Elements: elems}
	case *ast.QualifiedName:
		return q.nameType(e)
	case *ast.IndexedAccessExpression, *ast.FieldAccessExpression, *ast.RangeExpression, *ast.MatchExpression:
		// Not inferred yet.
		return types.Unknown
	default:
		invariant(expr, "unhandled expression kind %T", expr)
	}
	return types.Unknown
}

func (q *query) nameType(name *ast.QualifiedName) types.Type {
	decl := q.c.resolver.Resolve(name.Segments, name)
	if decl == nil {
		return types.Unknown
	}
	return q.declType(decl)
}

// callType applies explicit generic arguments to a generic callee, then
// takes the result of calling it: a function yields its return type, a
// struct constructs itself and an enum variant constructs its enum.
func (q *query) callType(call *ast.CallExpression) types.Type {
	callee := q.infer(call.Callee)
	if generic, ok := callee.(*types.ParameterizedType); ok {
		args := make([]types.Type, len(call.TypeArgs))
		for i, arg := range call.TypeArgs {
			args[i] = q.typeExpr(arg)
		}
		callee = specializeWith(generic, args)
	}
	return q.calledType(callee)
}

func (q *query) calledType(callee types.Type) types.Type {
	switch c := callee.(type) {
	case *types.StructType:
		return c
	case *types.FunctionType:
		return c.ReturnType
	case *types.EnumVariantType:
		if c.Parent != nil && c.Parent.Decl != nil {
			return q.declType(c.Parent.Decl)
		}
	case *types.BoundType:
		switch g := c.Generic.(type) {
		case *types.StructType:
			return c
		case *types.EnumVariantType:
			if g.Parent != nil {
				return types.Specialize(g.Parent, c.Specializations)
			}
		}
	}
	return types.Unknown
}

// accessType indexes tuples by decimal member; other accesses are Unknown.
func (q *query) accessType(access *ast.AccessExpression) types.Type {
	base := q.infer(access.Base)
	tuple, ok := base.(types.TupleType)
	if !ok {
		return types.Unknown
	}
	index, err := strconv.Atoi(access.Member)
	if err != nil || index < 0 || index >= len(tuple.Elements) {
		return types.Unknown
	}
	return tuple.Elements[index]
}

func (q *query) arrayType(array *ast.ArrayLiteral) types.Type {
	switch {
	case array.Fill != nil:
		return types.ArrayType{Element: q.infer(array.Fill)}
	case len(array.Elements) > 0:
		return types.ArrayType{Element: q.infer(array.Elements[0])}
	}
	return types.ArrayType{Element: types.Unknown}
}
