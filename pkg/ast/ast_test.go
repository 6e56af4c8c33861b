package ast

import "testing"

func TestNewFileLinksParents(t *testing.T) {
	field := Field("next", Opt(ArrTy(Ty("Node"))))
	strct := NewStructDeclaration("Node", nil, []*StructField{field}, nil)
	file := NewFile("main.jakt", []Declaration{strct})

	if got := strct.Parent(); got != file {
		t.Fatalf("struct parent = %#v, want file", got)
	}
	if got := field.Parent(); got != strct {
		t.Fatalf("field parent = %#v, want struct", got)
	}
	inner := field.Type.(*OptionalTypeExpression).Inner
	if inner.Parent() != field.Type {
		t.Fatalf("nested type expression not linked")
	}
	if EnclosingFile(inner) != file {
		t.Fatalf("EnclosingFile did not reach the file")
	}
}

func TestTouchBumpsEnclosingDeclarations(t *testing.T) {
	field := Field("value", Ty("T"))
	strct := NewStructDeclaration("Box", Gen("T"), []*StructField{field}, nil)
	other := NewStructDeclaration("Other", nil, nil, nil)
	file := NewFile("box.jakt", []Declaration{strct, other})

	Touch(field.Type)

	if field.Revision() != 1 || strct.Revision() != 1 || file.Revision() != 1 {
		t.Fatalf("revisions = field %d, struct %d, file %d; want 1 each", field.Revision(), strct.Revision(), file.Revision())
	}
	if other.Revision() != 0 {
		t.Fatalf("sibling revision = %d, want 0", other.Revision())
	}
}

func TestWalkVisitsInSourceOrder(t *testing.T) {
	expr := Bin("+", Int("1"), Call(Name("f"), Str("x")))
	var kinds []NodeType
	Walk(expr, func(n Node) bool {
		kinds = append(kinds, n.NodeType())
		return true
	})
	want := []NodeType{
		NodeBinaryExpression,
		NodeIntegerLiteral,
		NodeCallExpression,
		NodeQualifiedName,
		NodeArgument,
		NodeStringLiteral,
	}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestChildrenSkipsMissingOptionalNodes(t *testing.T) {
	fn := NewFunctionDeclaration("f", nil, nil, nil, nil)
	if got := Children(fn); len(got) != 0 {
		t.Fatalf("Children(empty function) = %#v, want none", got)
	}
}

func TestSpanContains(t *testing.T) {
	span := Span{Start: Position{Line: 2, Column: 3}, End: Position{Line: 2, Column: 8}}
	if !span.Contains(Position{Line: 2, Column: 5}) {
		t.Fatalf("expected span to contain 2:5")
	}
	if span.Contains(Position{Line: 2, Column: 8}) {
		t.Fatalf("span end should be exclusive")
	}
	node := Int("1")
	SetSpan(node, span)
	if node.Span() != span {
		t.Fatalf("SetSpan did not record span")
	}
}

func TestAttachLinksDetachedSubtree(t *testing.T) {
	file := NewFile("main.jakt", nil)
	call := Call(Name("f"), Int("1"))
	Attach(call, file)
	if call.Parent() != file {
		t.Fatalf("attached node should point at its new parent")
	}
	if call.Args[0].Parent() != call {
		t.Fatalf("descendants should be linked")
	}
	if len(Children(file)) != 0 {
		t.Fatalf("attaching must not change the parent's children")
	}
}
