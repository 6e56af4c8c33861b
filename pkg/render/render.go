// Package render prints types as display text. One traversal drives every
// output form; emitters decide how each categorized token is written.
package render

import (
	"context"

	"jakt/analysis-go/pkg/types"
)

// Options adjust what a rendering includes.
type Options struct {
	// OmitKeywords drops the struct, enum and function keywords, as when a
	// type is shown in expression position.
	OmitKeywords bool
	// OmitNamespaces drops namespace qualification.
	OmitNamespaces bool
}

// Renderer renders types with a fresh emitter per call. It holds no mutable
// state and is safe for concurrent use.
type Renderer struct {
	newEmitter func() Emitter
	opts       Options
}

func New(newEmitter func() Emitter, opts Options) *Renderer {
	return &Renderer{newEmitter: newEmitter, opts: opts}
}

func Plain(opts Options) *Renderer {
	return New(func() Emitter { return NewPlainEmitter() }, opts)
}

func HTML(opts Options) *Renderer {
	return New(func() Emitter { return NewHTMLEmitter() }, opts)
}

func ANSI(opts Options) *Renderer {
	return New(func() Emitter { return NewANSIEmitter() }, opts)
}

// Render returns the text for t.
func (r *Renderer) Render(t types.Type) string {
	out, _ := r.RenderContext(context.Background(), t)
	return out
}

// RenderContext renders t, stopping early once ctx is done.
func (r *Renderer) RenderContext(ctx context.Context, t types.Type) (string, error) {
	e := r.newEmitter()
	if err := r.Emit(ctx, e, t); err != nil {
		return "", err
	}
	return e.String(), nil
}

// RenderField renders hover text for a field: `name: Type`.
func (r *Renderer) RenderField(name string, t types.Type) string {
	e := r.newEmitter()
	e.FieldName(name)
	e.Colon(": ")
	_ = r.Emit(context.Background(), e, t)
	return e.String()
}

// Emit writes the tokens of t to e.
func (r *Renderer) Emit(ctx context.Context, e Emitter, t types.Type) error {
	w := &walker{ctx: ctx, e: e, opts: r.opts}
	w.typ(t, nil)
	return w.err
}

type walker struct {
	ctx  context.Context
	e    Emitter
	opts Options
	err  error
}

func (w *walker) typ(t types.Type, specs types.Specializations) {
	if w.err != nil {
		return
	}
	if err := w.ctx.Err(); err != nil {
		w.err = err
		return
	}

	switch v := t.(type) {
	case nil, types.UnknownType:
		w.e.Unknown("??")
	case types.PrimitiveType:
		if v.Kind != types.PrimitiveVoid {
			w.e.TypeName(string(v.Kind))
		}
	case *types.NamespaceType:
		w.namespaces(v.Parent)
		w.e.NamespaceName(v.NamespaceName)
	case types.WeakType:
		w.e.ModifierKeyword("weak ")
		w.typ(v.Inner, specs)
		w.e.OptionalQualifier("?")
	case types.RawType:
		w.e.ModifierKeyword("raw ")
		w.typ(v.Inner, specs)
	case types.OptionalType:
		w.typ(v.Inner, specs)
		w.e.OptionalQualifier("?")
	case types.ArrayType:
		w.e.Delimiter("[")
		w.typ(v.Element, specs)
		w.e.Delimiter("]")
	case types.SetType:
		w.e.Delimiter("{")
		w.typ(v.Element, specs)
		w.e.Delimiter("}")
	case types.DictionaryType:
		w.e.Delimiter("[")
		w.typ(v.Key, specs)
		w.e.Colon(":")
		w.typ(v.Value, specs)
		w.e.Delimiter("]")
	case types.TupleType:
		w.e.Delimiter("(")
		for i, elem := range v.Elements {
			if i > 0 {
				w.e.Text(", ")
			}
			w.typ(elem, specs)
		}
		w.e.Delimiter(")")
	case *types.TypeParameterType:
		if value, ok := specs.Lookup(v); ok {
			// The parameter's own entry is dropped so a value mentioning
			// the parameter prints its name instead of recursing.
			w.typ(value, specs.Without(v))
			return
		}
		w.e.GenericName(v.ParameterName)
	case *types.StructType:
		w.keyword("struct ")
		w.namespaces(v.Namespace)
		w.e.StructName(v.StructName)
		w.generics(v.TypeParameters, specs)
	case *types.EnumType:
		w.keyword("enum ")
		w.namespaces(v.Namespace)
		w.e.EnumName(v.EnumName)
		w.generics(v.TypeParameters, specs)
	case *types.EnumVariantType:
		if v.Parent != nil {
			w.namespaces(v.Parent.Namespace)
			w.e.EnumName(v.Parent.EnumName)
			w.e.NamespaceQualifier("::")
		}
		w.e.EnumVariantName(v.VariantName)
	case *types.FunctionType:
		w.function(v, specs)
	case *types.ParameterizedType:
		w.typ(v.Underlying, specs)
	case *types.BoundType:
		w.typ(v.Generic, specs.Merge(v.Specializations))
	default:
		w.e.Unknown("??")
	}
}

func (w *walker) keyword(kw string) {
	if !w.opts.OmitKeywords {
		w.e.DeclarationKeyword(kw)
	}
}

func (w *walker) function(fn *types.FunctionType, specs types.Specializations) {
	w.keyword("function ")
	w.namespaces(fn.Namespace)
	w.e.FunctionName(fn.FunctionName)
	w.generics(fn.TypeParameters, specs)
	w.e.Delimiter("(")
	for i, param := range fn.Parameters {
		if i > 0 {
			w.e.Text(", ")
		}
		w.e.ParameterName(param.Name)
		w.e.Colon(": ")
		w.typ(param.Type, specs)
	}
	w.e.Delimiter(")")
	if fn.ReturnType != nil && !types.Equal(fn.ReturnType, types.Void) {
		w.e.Colon(": ")
		w.typ(fn.ReturnType, specs)
	}
}

// generics prints a declaration's parameter list; each argument is rendered
// on its own, without the surrounding substitutions.
func (w *walker) generics(params []*types.TypeParameterType, specs types.Specializations) {
	if len(params) == 0 {
		return
	}
	w.e.Delimiter("<")
	for i, param := range params {
		if i > 0 {
			w.e.Text(", ")
		}
		var arg types.Type = param
		if value, ok := specs.Lookup(param); ok {
			arg = value
		}
		w.typ(arg, nil)
	}
	w.e.Delimiter(">")
}

// namespaces prints ns and its parents outermost first, each followed by
// `::`, between a nominal type's keyword and its name. Reaching a file
// stops the qualification.
func (w *walker) namespaces(ns *types.NamespaceType) {
	if w.opts.OmitNamespaces || ns == nil || ns.IsFile {
		return
	}
	w.namespaces(ns.Parent)
	w.e.NamespaceName(ns.NamespaceName)
	w.e.NamespaceQualifier("::")
}
