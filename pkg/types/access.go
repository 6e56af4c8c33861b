package types

import (
	"fmt"

	"github.com/hashicorp/go-set/v2"
)

// NewParameterized wraps underlying with its type parameters. Parameter names
// must be unique within one declaration.
func NewParameterized(underlying Type, params []*TypeParameterType) (*ParameterizedType, error) {
	seen := set.New[string](len(params))
	for _, param := range params {
		if !seen.Insert(param.ParameterName) {
			return nil, fmt.Errorf("types: duplicate type parameter %q on %s", param.ParameterName, typeName(underlying))
		}
	}
	return &ParameterizedType{Underlying: underlying, TypeParameters: params}, nil
}

// Unwrap strips Parameterized and Bound layers down to the generic type.
func Unwrap(t Type) Type {
	for {
		switch v := t.(type) {
		case *ParameterizedType:
			t = v.Underlying
		case *BoundType:
			t = v.Generic
		default:
			return t
		}
	}
}

// layers unwraps t and collects the substitutions of every Bound layer,
// outermost first.
func layers(t Type) (Type, []Specializations) {
	var substs []Specializations
	for {
		switch v := t.(type) {
		case *ParameterizedType:
			t = v.Underlying
		case *BoundType:
			substs = append(substs, v.Specializations)
			t = v.Generic
		default:
			return t, substs
		}
	}
}

func applyLayers(t Type, substs []Specializations) Type {
	for i := len(substs) - 1; i >= 0; i-- {
		t = Specialize(t, substs[i])
	}
	return t
}

// FieldType returns the type of field name on a struct or struct-payload enum
// variant, with any bound specializations applied.
func FieldType(t Type, name string) (Type, bool) {
	base, substs := layers(t)
	var field Type
	var ok bool
	switch v := base.(type) {
	case *StructType:
		field, ok = v.Fields.Get(name)
	case *EnumVariantType:
		field, ok = v.Fields.Get(name)
	}
	if !ok {
		return nil, false
	}
	return applyLayers(field, substs), true
}

// MethodType returns the type of method name on a struct or enum.
func MethodType(t Type, name string) (Type, bool) {
	base, substs := layers(t)
	var method Type
	var ok bool
	switch v := base.(type) {
	case *StructType:
		method, ok = v.Methods.Get(name)
	case *EnumType:
		method, ok = v.Methods.Get(name)
	}
	if !ok {
		return nil, false
	}
	return applyLayers(method, substs), true
}

// VariantType returns the variant name of an enum, bound to the enum's
// specializations when it has any.
func VariantType(t Type, name string) (Type, bool) {
	base, substs := layers(t)
	enum, ok := base.(*EnumType)
	if !ok {
		return nil, false
	}
	variant, ok := enum.Variants.Get(name)
	if !ok {
		return nil, false
	}
	return applyLayers(variant, substs), true
}

// PayloadTypes returns the positional payload of a typed enum variant.
func PayloadTypes(t Type) []Type {
	base, substs := layers(t)
	variant, ok := base.(*EnumVariantType)
	if !ok {
		return nil
	}
	out := make([]Type, len(variant.Types))
	for i, elem := range variant.Types {
		out[i] = applyLayers(elem, substs)
	}
	return out
}

// DeclaredName returns the source name of a named type, or "".
func DeclaredName(t Type) string {
	switch v := Unwrap(t).(type) {
	case *StructType:
		return v.StructName
	case *EnumType:
		return v.EnumName
	case *EnumVariantType:
		return v.VariantName
	case *FunctionType:
		return v.FunctionName
	case *NamespaceType:
		return v.NamespaceName
	case *TypeParameterType:
		return v.ParameterName
	case PrimitiveType:
		return string(v.Kind)
	}
	return ""
}
