package scope

import (
	"reflect"
	"testing"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/parser"
)

func parse(t *testing.T, name, src string) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(name+".jakt", []byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", name, err)
	}
	return file
}

func TestEnvironmentShadowing(t *testing.T) {
	outer := NewEnvironment(nil)
	a := ast.NewGenericParameter("a")
	b := ast.NewGenericParameter("b")
	outer.Define("a", a)
	outer.Define("b", b)

	inner := outer.Extend()
	shadow := ast.NewGenericParameter("a")
	inner.Define("a", shadow)
	inner.Define("", shadow)

	if got, _ := inner.Lookup("a"); got != shadow {
		t.Fatalf("inner a should shadow outer a")
	}
	if got, _ := inner.Lookup("b"); got != b {
		t.Fatalf("outer b should be visible")
	}
	if got, _ := outer.Lookup("a"); got != a {
		t.Fatalf("outer scope should be unaffected")
	}
	if _, ok := inner.Lookup("missing"); ok {
		t.Fatalf("missing name should not resolve")
	}
	if names := inner.Names(); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Fatalf("Names() = %v", names)
	}
}

func TestResolveLexicalScopes(t *testing.T) {
	file := parse(t, "main", `
struct Box<T> {
    value: T
    function get(this) -> T => .value
}
enum Tree<K> {
    Leaf(K)
    function leaf(anon k: K) -> Tree<K> => Leaf(k)
}
function run(count: i64) {
    let before = 1
    before
    let after = 2
    match x {
        Tree::Leaf(inner) => inner
    }
}
`)
	r := NewResolver(Files{"main": file})
	box := file.Declarations[0].(*ast.StructDeclaration)
	tree := file.Declarations[1].(*ast.EnumDeclaration)
	run := file.Declarations[2].(*ast.FunctionDeclaration)

	valueType := box.Fields[0].Type
	if got := r.Resolve([]string{"T"}, valueType); got != box.GenericParams[0] {
		t.Fatalf("T should resolve to the struct's generic parameter, got %v", got)
	}
	get := box.Methods[0]
	if got := r.Resolve([]string{"this"}, get.Body); got != get.This {
		t.Fatalf("this should resolve to the receiver")
	}
	leafMethod := tree.Methods[0]
	if got := r.Resolve([]string{"Leaf"}, leafMethod.Body); got != tree.Variants[0] {
		t.Fatalf("variants should be visible inside enum methods")
	}
	if got := r.Resolve([]string{"k"}, leafMethod.Body); got != leafMethod.Params[0] {
		t.Fatalf("parameters should be visible in the body")
	}

	use := run.Body.Statements[1]
	if got := r.Resolve([]string{"before"}, use); got != ast.Node(run.Body.Statements[0]) {
		t.Fatalf("earlier variables should be visible")
	}
	if got := r.Resolve([]string{"after"}, use); got != nil {
		t.Fatalf("later variables should not be visible, got %v", got)
	}
	if got := r.Resolve([]string{"count"}, use); got != run.Params[0] {
		t.Fatalf("function parameters should be visible")
	}

	match := run.Body.Statements[3].(*ast.ExpressionStatement).Expression.(*ast.MatchExpression)
	matchCase := match.Cases[0]
	binding := matchCase.Patterns[0].Bindings[0]
	if got := r.Resolve([]string{"inner"}, matchCase.Body); got != binding {
		t.Fatalf("pattern bindings should be visible in the case body")
	}
	if got := r.Resolve([]string{"inner"}, match.Subject); got != nil {
		t.Fatalf("pattern bindings should not leak into the subject")
	}
	if got := r.Resolve([]string{"Tree", "Leaf"}, match); got != tree.Variants[0] {
		t.Fatalf("qualified variant lookup failed")
	}
	if got := r.Resolve([]string{"Tree", "leaf"}, match); got != leafMethod {
		t.Fatalf("qualified method lookup failed")
	}
	if got := r.Resolve([]string{"Box", "missing"}, match); got != nil {
		t.Fatalf("missing member should not resolve")
	}
}

func TestResolveForBinding(t *testing.T) {
	file := parse(t, "main", `
function run() {
    for item in [1] {
        item
    }
}
`)
	r := NewResolver(Files{"main": file})
	loop := file.Declarations[0].(*ast.FunctionDeclaration).Body.Statements[0].(*ast.ForStatement)
	if got := r.Resolve([]string{"item"}, loop.Body.Statements[0]); got != loop.Binding {
		t.Fatalf("loop binding should be visible in the body")
	}
	if got := r.Resolve([]string{"item"}, loop.Iterable); got != nil {
		t.Fatalf("loop binding should not be visible in the iterable")
	}
}

func TestResolveNamespacesAndImports(t *testing.T) {
	shapes := parse(t, "shapes", `
namespace geo {
    struct Point {}
}
struct Circle {}
`)
	file := parse(t, "main", `
import shapes { Circle }
import shapes as s
function run() {}
`)
	r := NewResolver(Files{"main": file, "shapes": shapes})
	run := file.Declarations[2]
	circle := shapes.Declarations[1]
	point := shapes.Declarations[0].(*ast.NamespaceDeclaration).Declarations[0]

	entry := file.Declarations[0].(*ast.ImportStatement).Entries[0]
	if got := r.Resolve([]string{"Circle"}, run); got != entry {
		t.Fatalf("import entries should be bound by name, got %v", got)
	}
	if got := r.Resolve([]string{"s", "Circle"}, run); got != circle {
		t.Fatalf("alias member lookup failed")
	}
	if got := r.Resolve([]string{"s", "geo", "Point"}, run); got != point {
		t.Fatalf("nested namespace lookup through alias failed")
	}
	if got := r.ResolveImport(file.Declarations[1].(*ast.ImportStatement)); got != shapes {
		t.Fatalf("ResolveImport should find the shapes file")
	}
	if got := r.Resolve(nil, run); got != nil {
		t.Fatalf("empty path should not resolve")
	}
}

func TestPreludeIsVisibleAndShadowable(t *testing.T) {
	prelude := parse(t, "prelude", "struct Error {}\nstruct Array<T> {}\n")
	file := parse(t, "main", "struct Error {}\nfunction run() {}\n")
	r := NewResolver(nil, prelude)
	run := file.Declarations[1]
	if got := r.Resolve([]string{"Array"}, run); got != prelude.Declarations[1] {
		t.Fatalf("prelude names should be visible")
	}
	if got := r.Resolve([]string{"Error"}, run); got != file.Declarations[0] {
		t.Fatalf("file declarations should shadow the prelude")
	}
	names := r.Environment(run).Names()
	if !reflect.DeepEqual(names, []string{"Array", "Error", "run"}) {
		t.Fatalf("Names() = %v", names)
	}
}
