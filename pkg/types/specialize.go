package types

// Specialize substitutes the type parameters found in t using subst.
// Structural types are rebuilt. Nominal structs, enums and enum variants are
// never entered: they are wrapped in a BoundType carrying the substitutions
// for their own parameters, which keeps self-referential declarations finite.
// Parameters missing from subst are left in place.
func Specialize(t Type, subst Specializations) Type {
	if t == nil || len(subst) == 0 {
		return t
	}
	switch v := t.(type) {
	case *TypeParameterType:
		if replacement, ok := subst.Lookup(v); ok {
			return replacement
		}
		return v
	case OptionalType:
		return OptionalType{Inner: Specialize(v.Inner, subst)}
	case RawType:
		return RawType{Inner: Specialize(v.Inner, subst)}
	case WeakType:
		return WeakType{Inner: Specialize(v.Inner, subst)}
	case ArrayType:
		return ArrayType{Element: Specialize(v.Element, subst)}
	case SetType:
		return SetType{Element: Specialize(v.Element, subst)}
	case DictionaryType:
		return DictionaryType{Key: Specialize(v.Key, subst), Value: Specialize(v.Value, subst)}
	case TupleType:
		elems := make([]Type, len(v.Elements))
		for i, elem := range v.Elements {
			elems[i] = Specialize(elem, subst)
		}
		return TupleType{Elements: elems}
	case *StructType:
		return bind(v, subst.Restrict(v.TypeParameters))
	case *EnumType:
		return bind(v, subst.Restrict(v.TypeParameters))
	case *EnumVariantType:
		if v.Parent == nil {
			return v
		}
		return bind(v, subst.Restrict(v.Parent.TypeParameters))
	case *FunctionType:
		return specializeFunction(v, subst)
	case *ParameterizedType:
		return specializeParameterized(v, subst)
	case *BoundType:
		return specializeBound(v, subst)
	}
	return t
}

func bind(generic Type, subst Specializations) Type {
	if len(subst) == 0 {
		return generic
	}
	return &BoundType{Generic: generic, Specializations: subst}
}

func specializeFunction(fn *FunctionType, subst Specializations) *FunctionType {
	out := *fn
	out.Parameters = make([]Parameter, len(fn.Parameters))
	for i, param := range fn.Parameters {
		param.Type = Specialize(param.Type, subst)
		out.Parameters[i] = param
	}
	if fn.ThisParameter != nil {
		this := *fn.ThisParameter
		this.Type = Specialize(this.Type, subst)
		out.ThisParameter = &this
	}
	out.ReturnType = Specialize(fn.ReturnType, subst)
	return &out
}

func specializeParameterized(p *ParameterizedType, subst Specializations) Type {
	var remaining []*TypeParameterType
	for _, param := range p.TypeParameters {
		if _, ok := subst.Lookup(param); !ok {
			remaining = append(remaining, param)
		}
	}
	underlying := Specialize(p.Underlying, subst)
	if len(remaining) == 0 {
		return underlying
	}
	if len(remaining) == len(p.TypeParameters) && sameInstance(underlying, p.Underlying) {
		return p
	}
	return &ParameterizedType{Underlying: underlying, TypeParameters: remaining}
}

func specializeBound(b *BoundType, subst Specializations) Type {
	out := make(Specializations, len(b.Specializations))
	for key, value := range b.Specializations {
		out[key] = Specialize(value, subst)
	}
	for _, param := range OwnTypeParameters(b.Generic) {
		if _, ok := out.Lookup(param); ok {
			continue
		}
		if value, ok := subst.Lookup(param); ok {
			out[param] = value
		}
	}
	return &BoundType{Generic: b.Generic, Specializations: out}
}

// OwnTypeParameters returns the parameters declared by a generic nominal type.
// Enum variants answer with their enum's parameters.
func OwnTypeParameters(t Type) []*TypeParameterType {
	switch v := t.(type) {
	case *StructType:
		return v.TypeParameters
	case *EnumType:
		return v.TypeParameters
	case *EnumVariantType:
		if v.Parent != nil {
			return v.Parent.TypeParameters
		}
	case *FunctionType:
		return v.TypeParameters
	case *ParameterizedType:
		return v.TypeParameters
	case *BoundType:
		return OwnTypeParameters(v.Generic)
	}
	return nil
}

func sameInstance(a, b Type) bool {
	switch av := a.(type) {
	case *StructType:
		bv, ok := b.(*StructType)
		return ok && av == bv
	case *EnumType:
		bv, ok := b.(*EnumType)
		return ok && av == bv
	case *EnumVariantType:
		bv, ok := b.(*EnumVariantType)
		return ok && av == bv
	case *FunctionType:
		bv, ok := b.(*FunctionType)
		return ok && av == bv
	}
	return false
}
