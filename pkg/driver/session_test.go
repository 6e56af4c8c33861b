package driver

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

func offlineConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CacheDir = t.TempDir()
	cfg.Prelude.Offline = true
	return cfg
}

func newSession(t *testing.T, cfg *Config) *Session {
	t.Helper()
	session, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session
}

type workspace struct {
	session *Session
	main    string
}

func setupWorkspace(t *testing.T) *workspace {
	t.Helper()
	root := t.TempDir()
	lib := t.TempDir()
	main := filepath.Join(root, "main.jakt")
	writeFile(t, main, `
import shapes { Circle }
import util
namespace geo {
    struct Point {
        x: i64
        y: i64
    }
}
struct Holder {
    circle: Circle
    helper: util::Helper
}
`)
	writeFile(t, filepath.Join(root, "shapes.jakt"), "struct Circle {\n    r: f64\n}\n")
	writeFile(t, filepath.Join(lib, "util.jakt"), "struct Helper {}\n")

	cfg := offlineConfig(t)
	cfg.SearchPaths = []string{lib}
	return &workspace{session: newSession(t, cfg), main: main}
}

func (w *workspace) lookup(t *testing.T, name string) ast.Declaration {
	t.Helper()
	decl, err := w.session.Lookup(w.main, name)
	if err != nil {
		t.Fatalf("Lookup(%s): %v", name, err)
	}
	return decl
}

func (w *workspace) describe(t *testing.T, decl ast.Declaration) string {
	t.Helper()
	text, err := w.session.Describe(context.Background(), decl)
	if err != nil {
		t.Fatalf("Describe(%s): %v", decl.DeclName(), err)
	}
	return text
}

func TestSessionUsesEmbeddedPreludeOffline(t *testing.T) {
	w := setupWorkspace(t)
	if w.session.Prelude().Source != PreludeFromEmbedded {
		t.Fatalf("expected embedded prelude, got %s", w.session.Prelude().Source)
	}
	names, err := w.session.Names(w.main)
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	joined := " " + strings.Join(names, " ") + " "
	for _, want := range []string{"Array", "Circle", "Holder", "geo", "util"} {
		if !strings.Contains(joined, " "+want+" ") {
			t.Fatalf("Names missing %s: %v", want, names)
		}
	}
}

func TestSessionResolvesImportsOnDisk(t *testing.T) {
	w := setupWorkspace(t)
	holder := w.lookup(t, "Holder")
	typ, err := w.session.TypeOf(context.Background(), holder)
	if err != nil {
		t.Fatalf("TypeOf: %v", err)
	}
	st, ok := typ.(*types.StructType)
	if !ok {
		t.Fatalf("Holder = %T", typ)
	}
	circle, _ := st.Fields.Get("circle")
	helper, _ := st.Fields.Get("helper")
	if _, ok := circle.(*types.StructType); !ok {
		t.Fatalf("circle should resolve through the sibling file, got %s", circle.Name())
	}
	if _, ok := helper.(*types.StructType); !ok {
		t.Fatalf("helper should resolve through the search path, got %s", helper.Name())
	}
	if got := len(w.session.Files()); got != 3 {
		t.Fatalf("expected main, shapes and util open, got %v", w.session.Files())
	}
}

func TestSessionLookupAndDescribe(t *testing.T) {
	w := setupWorkspace(t)
	point := w.lookup(t, "geo::Point")
	if got := w.describe(t, point); got != "struct geo::Point" {
		t.Fatalf("Describe(Point) = %q", got)
	}
	x := point.(*ast.StructDeclaration).Fields[0]
	if got := w.describe(t, x); got != "x: i64" {
		t.Fatalf("Describe(x) = %q", got)
	}
	if _, err := w.session.Lookup(w.main, "geo::Missing"); err == nil {
		t.Fatalf("expected an error for a missing name")
	}
}

func TestSessionInferIn(t *testing.T) {
	w := setupWorkspace(t)
	ctx := context.Background()
	cases := []struct {
		src  string
		want string
	}{
		{"Circle(r: 1.0)", "struct Circle"},
		{"geo::Point(x: 1, y: 2)", "struct geo::Point"},
		{"(Circle(r: 1.0), true).1", "bool"},
		{"[1, 2, 3]", "[i64]"},
		{`"text"`, "String"},
	}
	for _, tc := range cases {
		typ, err := w.session.InferIn(ctx, w.main, tc.src)
		if err != nil {
			t.Fatalf("InferIn(%s): %v", tc.src, err)
		}
		got, err := w.session.Render(ctx, typ)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if got != tc.want {
			t.Fatalf("InferIn(%s) = %q, want %q", tc.src, got, tc.want)
		}
	}
	if _, err := w.session.InferIn(ctx, w.main, "1 +"); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestSessionUpdateReplacesFile(t *testing.T) {
	w := setupWorkspace(t)
	ctx := context.Background()
	before := w.lookup(t, "Holder")
	if _, err := w.session.TypeOf(ctx, before); err != nil {
		t.Fatalf("TypeOf: %v", err)
	}

	opened, err := w.session.Open(w.main)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if again, _ := w.session.Open(w.main); again != opened {
		t.Fatalf("Open should return the cached file")
	}

	updated, err := w.session.Update(w.main, []byte("struct Holder {\n    count: u8\n}\n"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated == opened || w.session.File(w.main) != updated {
		t.Fatalf("Update should replace the open file")
	}
	after := w.lookup(t, "Holder")
	if got := w.describe(t, after.(*ast.StructDeclaration).Fields[0]); got != "count: u8" {
		t.Fatalf("Describe(count) = %q", got)
	}
}

func TestSessionUpdateRetypesImporters(t *testing.T) {
	root := t.TempDir()
	main := filepath.Join(root, "main.jakt")
	dep := filepath.Join(root, "m.jakt")
	top := filepath.Join(root, "top.jakt")
	writeFile(t, dep, "struct Foo {\n    v: i64\n}\n")
	writeFile(t, main, "import m { Foo }\nstruct Holder {\n    a: Foo\n}\n")
	writeFile(t, top, "import main { Holder }\nstruct Top {\n    h: Holder\n}\n")
	session := newSession(t, offlineConfig(t))
	ctx := context.Background()

	typeOf := func(path, name string) types.Type {
		t.Helper()
		decl, err := session.Lookup(path, name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		typ, err := session.TypeOf(ctx, decl)
		if err != nil {
			t.Fatalf("TypeOf(%s): %v", name, err)
		}
		return typ
	}
	fieldOf := func(typ types.Type, name string) types.Type {
		t.Helper()
		ft, ok := types.FieldType(typ, name)
		if !ok {
			t.Fatalf("%s has no field %s", typ.Name(), name)
		}
		return ft
	}

	before := fieldOf(typeOf(main, "Holder"), "a")
	viaTop := fieldOf(fieldOf(typeOf(top, "Top"), "h"), "a")
	if before != viaTop {
		t.Fatalf("Top should see the same Foo as Holder")
	}

	updated, err := session.Update(dep, []byte("struct Foo {\n    v: String\n}\n"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	foo, err := session.TypeOf(ctx, updated.Declarations[0])
	if err != nil {
		t.Fatalf("TypeOf(Foo): %v", err)
	}

	after := fieldOf(typeOf(main, "Holder"), "a")
	if after == before || after != foo {
		t.Fatalf("Holder.a should be the updated Foo")
	}
	if !types.Equal(fieldOf(after, "v"), types.String) {
		t.Fatalf("Holder.a.v should reflect the update")
	}
	if got := fieldOf(fieldOf(typeOf(top, "Top"), "h"), "a"); got != foo {
		t.Fatalf("transitive importer kept the previous Foo")
	}
}

func TestSessionKeepsSyntaxErrors(t *testing.T) {
	w := setupWorkspace(t)
	broken := filepath.Join(filepath.Dir(w.main), "broken.jakt")
	writeFile(t, broken, "struct Ok {}\nstruct {\n")
	file, err := w.session.Open(broken)
	if err != nil {
		t.Fatalf("Open should not fail on syntax errors: %v", err)
	}
	if w.session.Errors(broken) == nil {
		t.Fatalf("expected syntax errors to be recorded")
	}
	if len(file.Declarations) == 0 || file.Declarations[0].DeclName() != "Ok" {
		t.Fatalf("declarations before the error should survive")
	}
}

func TestNewRendererModes(t *testing.T) {
	point := &types.StructType{StructName: "Point"}
	cases := []struct {
		cfg  RenderConfig
		want string
	}{
		{RenderConfig{Mode: RenderPlain}, "struct Point"},
		{RenderConfig{Mode: RenderPlain, Expression: true}, "Point"},
		{RenderConfig{Mode: RenderHTML}, `<span class="keyword-declaration">struct </span><span class="struct-name">Point</span>`},
	}
	for _, tc := range cases {
		if got := NewRenderer(tc.cfg).Render(point); got != tc.want {
			t.Fatalf("%#v: got %q, want %q", tc.cfg, got, tc.want)
		}
	}
}
