package ast

// Literals

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Text   string
	Suffix string
}

func NewIntegerLiteral(text, suffix string) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Text: text, Suffix: suffix}
}

type FloatLiteral struct {
	nodeImpl
	expressionMarker

	Text   string
	Suffix string
}

func NewFloatLiteral(text, suffix string) *FloatLiteral {
	return &FloatLiteral{nodeImpl: newNodeImpl(NodeFloatLiteral), Text: text, Suffix: suffix}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

// CharLiteral is 'c', or b'c' when IsByte is set.
type CharLiteral struct {
	nodeImpl
	expressionMarker

	Value  string
	IsByte bool
}

func NewCharLiteral(value string, isByte bool) *CharLiteral {
	return &CharLiteral{nodeImpl: newNodeImpl(NodeCharLiteral), Value: value, IsByte: isByte}
}

type OptionalSome struct {
	nodeImpl
	expressionMarker

	Value Expression
}

func NewOptionalSome(value Expression) *OptionalSome {
	return &OptionalSome{nodeImpl: newNodeImpl(NodeOptionalSome), Value: value}
}

type OptionalNone struct {
	nodeImpl
	expressionMarker
}

func NewOptionalNone() *OptionalNone {
	return &OptionalNone{nodeImpl: newNodeImpl(NodeOptionalNone)}
}

// Calls and operators

type Argument struct {
	nodeImpl

	Label string
	Value Expression
}

func NewArgument(label string, value Expression) *Argument {
	return &Argument{nodeImpl: newNodeImpl(NodeArgument), Label: label, Value: value}
}

// CallExpression is `callee<TypeArgs>(args)`.
type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee   Expression
	TypeArgs []TypeExpression
	Args     []*Argument
}

func NewCallExpression(callee Expression, typeArgs []TypeExpression, args []*Argument) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, TypeArgs: typeArgs, Args: args}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryExpression(op string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: op, Left: left, Right: right}
}

type PrefixUnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string
	Operand  Expression
}

func NewPrefixUnaryExpression(op string, operand Expression) *PrefixUnaryExpression {
	return &PrefixUnaryExpression{nodeImpl: newNodeImpl(NodePrefixUnaryExpression), Operator: op, Operand: operand}
}

type PostfixUnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator string
	Operand  Expression
}

func NewPostfixUnaryExpression(op string, operand Expression) *PostfixUnaryExpression {
	return &PostfixUnaryExpression{nodeImpl: newNodeImpl(NodePostfixUnaryExpression), Operator: op, Operand: operand}
}

type ParenExpression struct {
	nodeImpl
	expressionMarker

	Inner Expression
}

func NewParenExpression(inner Expression) *ParenExpression {
	return &ParenExpression{nodeImpl: newNodeImpl(NodeParenExpression), Inner: inner}
}

// Access

// AccessExpression is `base.member`; tuple indexing uses a decimal member.
type AccessExpression struct {
	nodeImpl
	expressionMarker

	Base     Expression
	Member   string
	Optional bool
}

func NewAccessExpression(base Expression, member string) *AccessExpression {
	return &AccessExpression{nodeImpl: newNodeImpl(NodeAccessExpression), Base: base, Member: member}
}

// FieldAccessExpression is the `.name` shorthand for `this.name`.
type FieldAccessExpression struct {
	nodeImpl
	expressionMarker

	Name string
}

func NewFieldAccessExpression(name string) *FieldAccessExpression {
	return &FieldAccessExpression{nodeImpl: newNodeImpl(NodeFieldAccessExpression), Name: name}
}

type IndexedAccessExpression struct {
	nodeImpl
	expressionMarker

	Base  Expression
	Index Expression
}

func NewIndexedAccessExpression(base, index Expression) *IndexedAccessExpression {
	return &IndexedAccessExpression{nodeImpl: newNodeImpl(NodeIndexedAccessExpression), Base: base, Index: index}
}

type RangeExpression struct {
	nodeImpl
	expressionMarker

	From Expression
	To   Expression
}

func NewRangeExpression(from, to Expression) *RangeExpression {
	return &RangeExpression{nodeImpl: newNodeImpl(NodeRangeExpression), From: from, To: to}
}

// Collections

// ArrayLiteral is `[a, b]`, or the sized form `[fill; count]` when Fill is set.
type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression
	Fill     Expression
	Count    Expression
}

func NewArrayLiteral(elems []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elems}
}

func NewSizedArrayLiteral(fill, count Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Fill: fill, Count: count}
}

type DictionaryEntry struct {
	nodeImpl

	Key   Expression
	Value Expression
}

func NewDictionaryEntry(key, value Expression) *DictionaryEntry {
	return &DictionaryEntry{nodeImpl: newNodeImpl(NodeDictionaryEntry), Key: key, Value: value}
}

type DictionaryLiteral struct {
	nodeImpl
	expressionMarker

	Entries []*DictionaryEntry
}

func NewDictionaryLiteral(entries []*DictionaryEntry) *DictionaryLiteral {
	return &DictionaryLiteral{nodeImpl: newNodeImpl(NodeDictionaryLiteral), Entries: entries}
}

type SetLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression
}

func NewSetLiteral(elems []Expression) *SetLiteral {
	return &SetLiteral{nodeImpl: newNodeImpl(NodeSetLiteral), Elements: elems}
}

type TupleLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression
}

func NewTupleLiteral(elems []Expression) *TupleLiteral {
	return &TupleLiteral{nodeImpl: newNodeImpl(NodeTupleLiteral), Elements: elems}
}

// Match

type MatchPattern struct {
	nodeImpl

	Head     *QualifiedName
	Bindings []*PatternBinding
	IsElse   bool
}

func NewMatchPattern(head *QualifiedName, bindings []*PatternBinding) *MatchPattern {
	return &MatchPattern{nodeImpl: newNodeImpl(NodeMatchPattern), Head: head, Bindings: bindings}
}

// MatchCase holds its patterns and a body that is an Expression or a *Block.
type MatchCase struct {
	nodeImpl

	Patterns []*MatchPattern
	Body     Node
}

func NewMatchCase(patterns []*MatchPattern, body Node) *MatchCase {
	return &MatchCase{nodeImpl: newNodeImpl(NodeMatchCase), Patterns: patterns, Body: body}
}

type MatchExpression struct {
	nodeImpl
	expressionMarker

	Subject Expression
	Cases   []*MatchCase
}

func NewMatchExpression(subject Expression, cases []*MatchCase) *MatchExpression {
	return &MatchExpression{nodeImpl: newNodeImpl(NodeMatchExpression), Subject: subject, Cases: cases}
}

// Names

// QualifiedName is a bare or `::`-qualified name, including `this`.
type QualifiedName struct {
	nodeImpl
	expressionMarker

	Segments []string
}

func NewQualifiedName(segments ...string) *QualifiedName {
	return &QualifiedName{nodeImpl: newNodeImpl(NodeQualifiedName), Segments: segments}
}

// Last returns the final segment.
func (q *QualifiedName) Last() string {
	if len(q.Segments) == 0 {
		return ""
	}
	return q.Segments[len(q.Segments)-1]
}

func (q *QualifiedName) IsThis() bool {
	return len(q.Segments) == 1 && q.Segments[0] == "this"
}
