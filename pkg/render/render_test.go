package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

func genericBox() (*types.StructType, *types.TypeParameterType) {
	decl := ast.NewStructDeclaration("Box", ast.Gen("T"), nil, nil)
	param := &types.TypeParameterType{ParameterName: "T", Decl: decl.GenericParams[0]}
	box := &types.StructType{StructName: "Box", Decl: decl, TypeParameters: []*types.TypeParameterType{param}}
	box.Fields.Set("value", param)
	return box, param
}

func TestRenderPlain(t *testing.T) {
	box, param := genericBox()
	file := &types.NamespaceType{NamespaceName: "main.jakt", IsFile: true}
	geo := &types.NamespaceType{NamespaceName: "geo", Parent: file}
	deep := &types.NamespaceType{NamespaceName: "deep", Parent: geo}
	point := &types.StructType{StructName: "Point", Namespace: deep}
	shape := &types.EnumType{EnumName: "Shape", Namespace: geo}
	circle := &types.EnumVariantType{VariantName: "Circle", Parent: shape}
	add := &types.FunctionType{
		FunctionName: "add",
		Parameters: []types.Parameter{
			{Name: "a", Type: types.I64},
			{Name: "b", Type: types.I64},
		},
		ReturnType: types.I64,
	}
	noop := &types.FunctionType{FunctionName: "noop", ReturnType: types.Void}

	cases := []struct {
		name string
		typ  types.Type
		want string
	}{
		{"unknown", types.Unknown, "??"},
		{"void", types.Void, ""},
		{"primitive", types.U8, "u8"},
		{"optional array", types.ArrayType{Element: types.OptionalType{Inner: types.I64}}, "[i64?]"},
		{"set", types.SetType{Element: types.String}, "{String}"},
		{"dictionary", types.DictionaryType{Key: types.String, Value: types.Bool}, "[String:bool]"},
		{"tuple", types.TupleType{Elements: []types.Type{types.I32, types.F64}}, "(i32, f64)"},
		{"raw", types.RawType{Inner: types.CChar}, "raw c_char"},
		{"weak", types.WeakType{Inner: point}, "weak struct geo::deep::Point?"},
		{"generic struct", box, "struct Box<T>"},
		{"bound struct", types.Specialize(box, types.Specializations{param: types.String}), "struct Box<String>"},
		{"parameter", param, "T"},
		{"namespaced struct", point, "struct geo::deep::Point"},
		{"namespace", deep, "geo::deep"},
		{"file namespace", file, "main.jakt"},
		{"variant", circle, "geo::Shape::Circle"},
		{"function", add, "function add(a: i64, b: i64): i64"},
		{"void function", noop, "function noop()"},
	}
	r := Plain(Options{})
	for _, tc := range cases {
		if got := r.Render(tc.typ); got != tc.want {
			t.Fatalf("%s: Render = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRenderOptions(t *testing.T) {
	geo := &types.NamespaceType{NamespaceName: "geo"}
	point := &types.StructType{StructName: "Point", Namespace: geo}
	cases := []struct {
		opts Options
		want string
	}{
		{Options{}, "struct geo::Point"},
		{Options{OmitKeywords: true}, "geo::Point"},
		{Options{OmitNamespaces: true}, "struct Point"},
		{Options{OmitKeywords: true, OmitNamespaces: true}, "Point"},
	}
	for _, tc := range cases {
		if got := Plain(tc.opts).Render(point); got != tc.want {
			t.Fatalf("%+v: Render = %q, want %q", tc.opts, got, tc.want)
		}
	}
}

func TestRenderGenericFunctionThroughBound(t *testing.T) {
	decl := ast.NewFunctionDeclaration("id", ast.Gen("T"), nil, nil, nil)
	param := &types.TypeParameterType{ParameterName: "T", Decl: decl.GenericParams[0]}
	id := &types.FunctionType{
		FunctionName:   "id",
		TypeParameters: []*types.TypeParameterType{param},
		Parameters:     []types.Parameter{{Name: "x", Type: param}},
		ReturnType:     types.OptionalType{Inner: param},
	}
	bound := &types.BoundType{Generic: id, Specializations: types.Specializations{param: types.Bool}}
	want := "function id<bool>(x: bool): bool?"
	if got := Plain(Options{}).Render(bound); got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderInnerBoundWins(t *testing.T) {
	box, param := genericBox()
	inner := &types.BoundType{Generic: box, Specializations: types.Specializations{param: types.I64}}
	outer := &types.BoundType{Generic: inner, Specializations: types.Specializations{param: types.String}}
	if got := Plain(Options{OmitKeywords: true}).Render(outer); got != "Box<i64>" {
		t.Fatalf("Render = %q, want Box<i64>", got)
	}
}

func TestRenderGenericArgumentsInIsolation(t *testing.T) {
	box, param := genericBox()
	other := &types.TypeParameterType{ParameterName: "U"}
	// Box<U> inside a context that also maps U: the argument is not
	// substituted again.
	bound := &types.BoundType{Generic: box, Specializations: types.Specializations{param: other}}
	outer := &types.BoundType{Generic: bound, Specializations: types.Specializations{other: types.Bool}}
	if got := Plain(Options{OmitKeywords: true}).Render(outer); got != "Box<U>" {
		t.Fatalf("Render = %q, want Box<U>", got)
	}
}

func TestRenderSelfReferentialSubstitution(t *testing.T) {
	_, param := genericBox()
	specs := types.Specializations{param: types.ArrayType{Element: param}}
	tuple := types.TupleType{Elements: []types.Type{param}}
	w := &walker{ctx: context.Background(), e: NewPlainEmitter()}
	w.typ(tuple, specs)
	if got := w.e.String(); got != "([T])" {
		t.Fatalf("render = %q, want ([T])", got)
	}
}

func TestRenderField(t *testing.T) {
	got := Plain(Options{}).RenderField("value", types.OptionalType{Inner: types.String})
	if got != "value: String?" {
		t.Fatalf("RenderField = %q", got)
	}
}

func TestHTMLEmitter(t *testing.T) {
	box, param := genericBox()
	got := HTML(Options{OmitKeywords: true}).Render(types.Specialize(box, types.Specializations{param: types.String}))
	want := `<span class="struct-name">Box</span><span class="delimiter">&lt;</span>` +
		`<span class="type-name">String</span><span class="delimiter">&gt;</span>`
	if got != want {
		t.Fatalf("HTML = %q\nwant %q", got, want)
	}
}

func TestTokenEmitter(t *testing.T) {
	e := NewTokenEmitter()
	if err := Plain(Options{}).Emit(context.Background(), e, types.OptionalType{Inner: types.I64}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	tokens := e.Tokens()
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %#v", tokens)
	}
	if tokens[0] != (Token{Category: CategoryTypeName, Text: "i64"}) ||
		tokens[1] != (Token{Category: CategoryOptionalQualifier, Text: "?"}) {
		t.Fatalf("unexpected tokens %#v", tokens)
	}
	if e.String() != "i64?" {
		t.Fatalf("String() = %q", e.String())
	}
}

func TestVoidReturnIsOmitted(t *testing.T) {
	log := &types.FunctionType{
		FunctionName: "log",
		Parameters:   []types.Parameter{{Name: "message", Type: types.String}},
		ReturnType:   types.Void,
	}
	unset := &types.FunctionType{FunctionName: "unset"}
	cases := []struct {
		typ  types.Type
		want string
	}{
		{log, "function log(message: String)"},
		{unset, "function unset()"},
	}
	for _, tc := range cases {
		if got := Plain(Options{}).Render(tc.typ); got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}

	e := NewTokenEmitter()
	if err := Plain(Options{}).Emit(context.Background(), e, log); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	tokens := e.Tokens()
	if last := tokens[len(tokens)-1]; last != (Token{Category: CategoryDelimiter, Text: ")"}) {
		t.Fatalf("a Void function should end at its parameter list, got %#v", last)
	}
}

func TestANSIEmitter(t *testing.T) {
	got := ANSI(Options{}).Render(types.ArrayType{Element: types.Bool})
	if !strings.Contains(got, "\033[") {
		t.Fatalf("expected colour escapes in %q", got)
	}
	if plain := StripANSI(got); plain != "[bool]" {
		t.Fatalf("StripANSI = %q", plain)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Plain(Options{}).RenderContext(ctx, types.I64)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
