package ast

type NodeType string

const (
	NodeFile                     NodeType = "File"
	NodeNamespaceDeclaration     NodeType = "NamespaceDeclaration"
	NodeImportStatement          NodeType = "ImportStatement"
	NodeImportEntry              NodeType = "ImportEntry"
	NodeStructDeclaration        NodeType = "StructDeclaration"
	NodeStructField              NodeType = "StructField"
	NodeEnumDeclaration          NodeType = "EnumDeclaration"
	NodeEnumVariant              NodeType = "EnumVariant"
	NodeVariantField             NodeType = "VariantField"
	NodeFunctionDeclaration      NodeType = "FunctionDeclaration"
	NodeThisParameter            NodeType = "ThisParameter"
	NodeParameter                NodeType = "Parameter"
	NodeGenericParameter         NodeType = "GenericParameter"
	NodeVariableDeclaration      NodeType = "VariableDeclaration"
	NodePatternBinding           NodeType = "PatternBinding"
	NodeBlock                    NodeType = "Block"
	NodeExpressionStatement      NodeType = "ExpressionStatement"
	NodeReturnStatement          NodeType = "ReturnStatement"
	NodeIfStatement              NodeType = "IfStatement"
	NodeWhileStatement           NodeType = "WhileStatement"
	NodeForStatement             NodeType = "ForStatement"
	NodeIntegerLiteral           NodeType = "IntegerLiteral"
	NodeFloatLiteral             NodeType = "FloatLiteral"
	NodeBooleanLiteral           NodeType = "BooleanLiteral"
	NodeStringLiteral            NodeType = "StringLiteral"
	NodeCharLiteral              NodeType = "CharLiteral"
	NodeOptionalSome             NodeType = "OptionalSome"
	NodeOptionalNone             NodeType = "OptionalNone"
	NodeCallExpression           NodeType = "CallExpression"
	NodeArgument                 NodeType = "Argument"
	NodeBinaryExpression         NodeType = "BinaryExpression"
	NodePrefixUnaryExpression    NodeType = "PrefixUnaryExpression"
	NodePostfixUnaryExpression   NodeType = "PostfixUnaryExpression"
	NodeParenExpression          NodeType = "ParenExpression"
	NodeAccessExpression         NodeType = "AccessExpression"
	NodeFieldAccessExpression    NodeType = "FieldAccessExpression"
	NodeIndexedAccessExpression  NodeType = "IndexedAccessExpression"
	NodeRangeExpression          NodeType = "RangeExpression"
	NodeArrayLiteral             NodeType = "ArrayLiteral"
	NodeDictionaryLiteral        NodeType = "DictionaryLiteral"
	NodeDictionaryEntry          NodeType = "DictionaryEntry"
	NodeSetLiteral               NodeType = "SetLiteral"
	NodeTupleLiteral             NodeType = "TupleLiteral"
	NodeMatchExpression          NodeType = "MatchExpression"
	NodeMatchCase                NodeType = "MatchCase"
	NodeMatchPattern             NodeType = "MatchPattern"
	NodeQualifiedName            NodeType = "QualifiedName"
	NodeNamedTypeExpression      NodeType = "NamedTypeExpression"
	NodeOptionalTypeExpression   NodeType = "OptionalTypeExpression"
	NodeWeakTypeExpression       NodeType = "WeakTypeExpression"
	NodeRawTypeExpression        NodeType = "RawTypeExpression"
	NodeArrayTypeExpression      NodeType = "ArrayTypeExpression"
	NodeSetTypeExpression        NodeType = "SetTypeExpression"
	NodeDictionaryTypeExpression NodeType = "DictionaryTypeExpression"
	NodeTupleTypeExpression      NodeType = "TupleTypeExpression"
)

// Position is a 1-based line/column location in a source file.
type Position struct {
	Line   int
	Column int
}

// Span is the half-open source range covered by a node.
type Span struct {
	Start Position
	End   Position
}

type Node interface {
	NodeType() NodeType
	Span() Span
	Parent() Node
	isNode()
}

type nodeImpl struct {
	Type   NodeType
	span   Span
	parent Node
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n *nodeImpl) NodeType() NodeType  { return n.Type }
func (n *nodeImpl) Span() Span          { return n.span }
func (n *nodeImpl) Parent() Node        { return n.parent }
func (n *nodeImpl) setSpan(span Span)   { n.span = span }
func (n *nodeImpl) setParent(node Node) { n.parent = node }
func (*nodeImpl) isNode()               {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type TypeExpression interface {
	Node
	typeExpressionNode()
}

type typeExpressionMarker struct{}

func (typeExpressionMarker) typeExpressionNode() {}

// Declaration is a node that introduces a name and carries a modification
// revision used to key cached analysis results.
type Declaration interface {
	Node
	DeclName() string
	Revision() uint64
	bump()
}

// FindAncestor returns the closest enclosing node (excluding node itself)
// for which match reports true.
func FindAncestor(node Node, match func(Node) bool) Node {
	if node == nil {
		return nil
	}
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// EnclosingFile returns the file containing node, or nil when the node is detached.
func EnclosingFile(node Node) *File {
	for cur := node; cur != nil; cur = cur.Parent() {
		if file, ok := cur.(*File); ok {
			return file
		}
	}
	return nil
}
