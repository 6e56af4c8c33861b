// Package types defines the Jakt type model: the closed set of type values
// produced by declaration typing and expression inference.
package types

import (
	"strings"

	"jakt/analysis-go/pkg/ast"
)

// Type represents a Jakt type. Name is a debug identifier, not display text;
// use package render for that.
type Type interface {
	Name() string
}

type UnknownType struct{}

func (UnknownType) Name() string { return "Unknown" }

// Unknown is the shared unknown value. Any UnknownType compares unequal to
// everything, itself included.
var Unknown Type = UnknownType{}

type PrimitiveKind string

const (
	PrimitiveVoid   PrimitiveKind = "void"
	PrimitiveBool   PrimitiveKind = "bool"
	PrimitiveI8     PrimitiveKind = "i8"
	PrimitiveI16    PrimitiveKind = "i16"
	PrimitiveI32    PrimitiveKind = "i32"
	PrimitiveI64    PrimitiveKind = "i64"
	PrimitiveU8     PrimitiveKind = "u8"
	PrimitiveU16    PrimitiveKind = "u16"
	PrimitiveU32    PrimitiveKind = "u32"
	PrimitiveU64    PrimitiveKind = "u64"
	PrimitiveUsize  PrimitiveKind = "usize"
	PrimitiveF32    PrimitiveKind = "f32"
	PrimitiveF64    PrimitiveKind = "f64"
	PrimitiveCChar  PrimitiveKind = "c_char"
	PrimitiveCInt   PrimitiveKind = "c_int"
	PrimitiveString PrimitiveKind = "String"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

var (
	Void   = PrimitiveType{Kind: PrimitiveVoid}
	Bool   = PrimitiveType{Kind: PrimitiveBool}
	I8     = PrimitiveType{Kind: PrimitiveI8}
	I16    = PrimitiveType{Kind: PrimitiveI16}
	I32    = PrimitiveType{Kind: PrimitiveI32}
	I64    = PrimitiveType{Kind: PrimitiveI64}
	U8     = PrimitiveType{Kind: PrimitiveU8}
	U16    = PrimitiveType{Kind: PrimitiveU16}
	U32    = PrimitiveType{Kind: PrimitiveU32}
	U64    = PrimitiveType{Kind: PrimitiveU64}
	Usize  = PrimitiveType{Kind: PrimitiveUsize}
	F32    = PrimitiveType{Kind: PrimitiveF32}
	F64    = PrimitiveType{Kind: PrimitiveF64}
	CChar  = PrimitiveType{Kind: PrimitiveCChar}
	CInt   = PrimitiveType{Kind: PrimitiveCInt}
	String = PrimitiveType{Kind: PrimitiveString}
)

var primitivesByName = map[string]PrimitiveType{
	"void":   Void,
	"bool":   Bool,
	"i8":     I8,
	"i16":    I16,
	"i32":    I32,
	"i64":    I64,
	"u8":     U8,
	"u16":    U16,
	"u32":    U32,
	"u64":    U64,
	"usize":  Usize,
	"f32":    F32,
	"f64":    F64,
	"c_char": CChar,
	"c_int":  CInt,
	"String": String,
}

// LookupPrimitive maps a builtin type name to its primitive.
func LookupPrimitive(name string) (PrimitiveType, bool) {
	prim, ok := primitivesByName[name]
	return prim, ok
}

type OptionalType struct {
	Inner Type
}

func (o OptionalType) Name() string { return "Optional(" + typeName(o.Inner) + ")" }

// RawType is an unchecked pointer-like reference.
type RawType struct {
	Inner Type
}

func (r RawType) Name() string { return "Raw(" + typeName(r.Inner) + ")" }

// WeakType is an optional non-owning reference.
type WeakType struct {
	Inner Type
}

func (w WeakType) Name() string { return "Weak(" + typeName(w.Inner) + ")" }

type ArrayType struct {
	Element Type
}

func (a ArrayType) Name() string { return "Array[" + typeName(a.Element) + "]" }

type SetType struct {
	Element Type
}

func (s SetType) Name() string { return "Set{" + typeName(s.Element) + "}" }

type DictionaryType struct {
	Key   Type
	Value Type
}

func (d DictionaryType) Name() string {
	return "Dictionary[" + typeName(d.Key) + ":" + typeName(d.Value) + "]"
}

type TupleType struct {
	Elements []Type
}

func (t TupleType) Name() string {
	parts := make([]string, len(t.Elements))
	for i, elem := range t.Elements {
		parts[i] = typeName(elem)
	}
	return "Tuple(" + strings.Join(parts, ", ") + ")"
}

// TypeParameterType is a placeholder bound by a generic declaration. Decl is
// the declaring generic parameter node.
type TypeParameterType struct {
	ParameterName string
	Decl          ast.Node
}

func (t *TypeParameterType) Name() string { return "TypeParam:" + t.ParameterName }

// NamespaceType is a named scope of declared types. Source files are
// namespaces with IsFile set.
type NamespaceType struct {
	NamespaceName string
	IsFile        bool
	Parent        *NamespaceType
	Members       Members
	Decl          ast.Declaration
}

func (n *NamespaceType) Name() string { return "Namespace:" + n.NamespaceName }

type StructType struct {
	StructName     string
	Decl           ast.Declaration
	Namespace      *NamespaceType
	TypeParameters []*TypeParameterType
	Fields         Members
	Methods        Members
	IsClass        bool
	IsExtern       bool
}

func (s *StructType) Name() string { return "Struct:" + s.StructName }

type EnumType struct {
	EnumName       string
	Decl           ast.Declaration
	Namespace      *NamespaceType
	IsBoxed        bool
	UnderlyingType Type
	TypeParameters []*TypeParameterType
	Variants       Members
	Methods        Members
}

func (e *EnumType) Name() string { return "Enum:" + e.EnumName }

type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadTyped
	PayloadStruct
)

type EnumVariantType struct {
	VariantName string
	Decl        ast.Declaration
	Parent      *EnumType
	Payload     PayloadKind
	Types       []Type
	Fields      Members
}

func (v *EnumVariantType) Name() string {
	parent := "<detached>"
	if v.Parent != nil {
		parent = v.Parent.EnumName
	}
	return "EnumVariant:" + parent + "::" + v.VariantName
}

type Parameter struct {
	Name        string
	Type        Type
	IsAnonymous bool
	IsMutable   bool
}

type FunctionType struct {
	FunctionName   string
	Decl           ast.Declaration
	Namespace      *NamespaceType
	TypeParameters []*TypeParameterType
	HasThis        bool
	ThisIsMutable  bool
	ThisParameter  *Parameter
	Parameters     []Parameter
	ReturnType     Type
	IsExtern       bool
}

func (f *FunctionType) Name() string { return "Function:" + f.FunctionName }

// ParameterizedType pairs a generic struct, enum or function with its unbound
// type parameters.
type ParameterizedType struct {
	Underlying     Type
	TypeParameters []*TypeParameterType
}

func (p *ParameterizedType) Name() string { return "Parameterized(" + typeName(p.Underlying) + ")" }

// BoundType is a generic type with some or all of its parameters substituted.
type BoundType struct {
	Generic         Type
	Specializations Specializations
}

func (b *BoundType) Name() string { return "Bound(" + typeName(b.Generic) + ")" }

func typeName(t Type) string {
	if t == nil {
		return "unknown"
	}
	return t.Name()
}
