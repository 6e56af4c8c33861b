package ast

// Helpers for building syntax trees by hand, mostly in tests.

func Name(segments ...string) *QualifiedName { return NewQualifiedName(segments...) }

func Int(text string) *IntegerLiteral { return NewIntegerLiteral(text, "") }

func Str(value string) *StringLiteral { return NewStringLiteral(value) }

func Bool(value bool) *BooleanLiteral { return NewBooleanLiteral(value) }

func Tuple(elems ...Expression) *TupleLiteral { return NewTupleLiteral(elems) }

func Arr(elems ...Expression) *ArrayLiteral { return NewArrayLiteral(elems) }

func Some(value Expression) *OptionalSome { return NewOptionalSome(value) }

func Call(callee Expression, args ...Expression) *CallExpression {
	wrapped := make([]*Argument, len(args))
	for i, arg := range args {
		wrapped[i] = NewArgument("", arg)
	}
	return NewCallExpression(callee, nil, wrapped)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Access(base Expression, member string) *AccessExpression {
	return NewAccessExpression(base, member)
}

// Ty builds a single-segment named type; Path builds qualified ones.
func Ty(name string, args ...TypeExpression) *NamedTypeExpression {
	return NewNamedTypeExpression([]string{name}, args)
}

func Path(segments ...string) *NamedTypeExpression {
	return NewNamedTypeExpression(segments, nil)
}

func Opt(inner TypeExpression) *OptionalTypeExpression { return NewOptionalTypeExpression(inner) }

func ArrTy(elem TypeExpression) *ArrayTypeExpression { return NewArrayTypeExpression(elem) }

func Gen(names ...string) []*GenericParameter {
	out := make([]*GenericParameter, len(names))
	for i, name := range names {
		out[i] = NewGenericParameter(name)
	}
	return out
}

func Field(name string, typ TypeExpression) *StructField { return NewStructField(name, typ) }

func Param(name string, typ TypeExpression) *Parameter { return NewParameter(name, typ) }
