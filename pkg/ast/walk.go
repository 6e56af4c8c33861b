package ast

// Children returns the direct sub-nodes of node in source order.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	switch n := node.(type) {
	case *File:
		for _, decl := range n.Declarations {
			add(decl)
		}
	case *NamespaceDeclaration:
		for _, decl := range n.Declarations {
			add(decl)
		}
	case *ImportStatement:
		for _, entry := range n.Entries {
			add(entry)
		}
	case *StructDeclaration:
		for _, g := range n.GenericParams {
			add(g)
		}
		for _, f := range n.Fields {
			add(f)
		}
		for _, m := range n.Methods {
			add(m)
		}
	case *StructField:
		add(n.Type)
	case *EnumDeclaration:
		for _, g := range n.GenericParams {
			add(g)
		}
		add(n.UnderlyingType)
		for _, v := range n.Variants {
			add(v)
		}
		for _, m := range n.Methods {
			add(m)
		}
	case *EnumVariant:
		for _, t := range n.Types {
			add(t)
		}
		for _, f := range n.Fields {
			add(f)
		}
		add(n.Value)
	case *VariantField:
		add(n.Type)
	case *FunctionDeclaration:
		for _, g := range n.GenericParams {
			add(g)
		}
		if n.This != nil {
			add(n.This)
		}
		for _, p := range n.Params {
			add(p)
		}
		add(n.ReturnType)
		if n.Body != nil {
			add(n.Body)
		}
	case *Parameter:
		add(n.Type)
	case *VariableDeclaration:
		add(n.Type)
		add(n.Value)
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *ExpressionStatement:
		add(n.Expression)
	case *ReturnStatement:
		add(n.Value)
	case *IfStatement:
		add(n.Condition)
		if n.Then != nil {
			add(n.Then)
		}
		add(n.Else)
	case *WhileStatement:
		add(n.Condition)
		if n.Body != nil {
			add(n.Body)
		}
	case *ForStatement:
		if n.Binding != nil {
			add(n.Binding)
		}
		add(n.Iterable)
		if n.Body != nil {
			add(n.Body)
		}
	case *OptionalSome:
		add(n.Value)
	case *CallExpression:
		add(n.Callee)
		for _, t := range n.TypeArgs {
			add(t)
		}
		for _, a := range n.Args {
			add(a)
		}
	case *Argument:
		add(n.Value)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *PrefixUnaryExpression:
		add(n.Operand)
	case *PostfixUnaryExpression:
		add(n.Operand)
	case *ParenExpression:
		add(n.Inner)
	case *AccessExpression:
		add(n.Base)
	case *IndexedAccessExpression:
		add(n.Base)
		add(n.Index)
	case *RangeExpression:
		add(n.From)
		add(n.To)
	case *ArrayLiteral:
		for _, e := range n.Elements {
			add(e)
		}
		add(n.Fill)
		add(n.Count)
	case *DictionaryLiteral:
		for _, e := range n.Entries {
			add(e)
		}
	case *DictionaryEntry:
		add(n.Key)
		add(n.Value)
	case *SetLiteral:
		for _, e := range n.Elements {
			add(e)
		}
	case *TupleLiteral:
		for _, e := range n.Elements {
			add(e)
		}
	case *MatchExpression:
		add(n.Subject)
		for _, c := range n.Cases {
			add(c)
		}
	case *MatchCase:
		for _, p := range n.Patterns {
			add(p)
		}
		add(n.Body)
	case *MatchPattern:
		if n.Head != nil {
			add(n.Head)
		}
		for _, b := range n.Bindings {
			add(b)
		}
	case *NamedTypeExpression:
		for _, a := range n.Args {
			add(a)
		}
	case *OptionalTypeExpression:
		add(n.Inner)
	case *WeakTypeExpression:
		add(n.Inner)
	case *RawTypeExpression:
		add(n.Inner)
	case *ArrayTypeExpression:
		add(n.Element)
	case *SetTypeExpression:
		add(n.Element)
	case *DictionaryTypeExpression:
		add(n.Key)
		add(n.Value)
	case *TupleTypeExpression:
		for _, e := range n.Elements {
			add(e)
		}
	}
	return out
}

// Walk visits node and its descendants depth-first. Returning false from fn
// skips the children of the current node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Link sets the parent of every node reachable from root.
func Link(root Node) {
	for _, child := range Children(root) {
		if setter, ok := child.(interface{ setParent(Node) }); ok {
			setter.setParent(root)
		}
		Link(child)
	}
}

// Attach links a detached subtree under parent without adding it to the
// parent's children, so it sees parent's scope. Used for expressions typed
// in the context of an existing file.
func Attach(child, parent Node) {
	if setter, ok := child.(interface{ setParent(Node) }); ok {
		setter.setParent(parent)
	}
	Link(child)
}
