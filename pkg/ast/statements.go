package ast

type Block struct {
	nodeImpl
	statementMarker

	Statements []Statement
}

func NewBlock(stmts []Statement) *Block {
	return &Block{nodeImpl: newNodeImpl(NodeBlock), Statements: stmts}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Then      *Block
	Else      Statement
}

func NewIfStatement(cond Expression, then *Block, elseStmt Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: cond, Then: then, Else: elseStmt}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression
	Body      *Block
}

func NewWhileStatement(cond Expression, body *Block) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: cond, Body: body}
}

type ForStatement struct {
	nodeImpl
	statementMarker

	Binding  *VariableDeclaration
	Iterable Expression
	Body     *Block
}

func NewForStatement(binding *VariableDeclaration, iterable Expression, body *Block) *ForStatement {
	return &ForStatement{nodeImpl: newNodeImpl(NodeForStatement), Binding: binding, Iterable: iterable, Body: body}
}
