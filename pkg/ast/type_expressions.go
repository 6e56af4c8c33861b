package ast

// NamedTypeExpression is a possibly qualified type name with generic arguments,
// e.g. `i64`, `Self`, `ns::Box<String>`.
type NamedTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Path []string
	Args []TypeExpression
}

func NewNamedTypeExpression(path []string, args []TypeExpression) *NamedTypeExpression {
	return &NamedTypeExpression{nodeImpl: newNodeImpl(NodeNamedTypeExpression), Path: path, Args: args}
}

type OptionalTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Inner TypeExpression
}

func NewOptionalTypeExpression(inner TypeExpression) *OptionalTypeExpression {
	return &OptionalTypeExpression{nodeImpl: newNodeImpl(NodeOptionalTypeExpression), Inner: inner}
}

// WeakTypeExpression is `weak T?`; Inner is T.
type WeakTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Inner TypeExpression
}

func NewWeakTypeExpression(inner TypeExpression) *WeakTypeExpression {
	return &WeakTypeExpression{nodeImpl: newNodeImpl(NodeWeakTypeExpression), Inner: inner}
}

type RawTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Inner TypeExpression
}

func NewRawTypeExpression(inner TypeExpression) *RawTypeExpression {
	return &RawTypeExpression{nodeImpl: newNodeImpl(NodeRawTypeExpression), Inner: inner}
}

type ArrayTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Element TypeExpression
}

func NewArrayTypeExpression(elem TypeExpression) *ArrayTypeExpression {
	return &ArrayTypeExpression{nodeImpl: newNodeImpl(NodeArrayTypeExpression), Element: elem}
}

type SetTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Element TypeExpression
}

func NewSetTypeExpression(elem TypeExpression) *SetTypeExpression {
	return &SetTypeExpression{nodeImpl: newNodeImpl(NodeSetTypeExpression), Element: elem}
}

type DictionaryTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Key   TypeExpression
	Value TypeExpression
}

func NewDictionaryTypeExpression(key, value TypeExpression) *DictionaryTypeExpression {
	return &DictionaryTypeExpression{nodeImpl: newNodeImpl(NodeDictionaryTypeExpression), Key: key, Value: value}
}

type TupleTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Elements []TypeExpression
}

func NewTupleTypeExpression(elems []TypeExpression) *TupleTypeExpression {
	return &TupleTypeExpression{nodeImpl: newNodeImpl(NodeTupleTypeExpression), Elements: elems}
}
