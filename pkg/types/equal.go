package types

// IsUnknown reports whether t is missing or Unknown.
func IsUnknown(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(UnknownType)
	return ok
}

// Equal compares two types. Structural types compare component-wise, nominal
// types by originating declaration. Unknown is never equal to anything.
func Equal(a, b Type) bool {
	if IsUnknown(a) || IsUnknown(b) {
		return false
	}
	switch av := a.(type) {
	case PrimitiveType:
		bv, ok := b.(PrimitiveType)
		return ok && av.Kind == bv.Kind
	case OptionalType:
		bv, ok := b.(OptionalType)
		return ok && Equal(av.Inner, bv.Inner)
	case RawType:
		bv, ok := b.(RawType)
		return ok && Equal(av.Inner, bv.Inner)
	case WeakType:
		bv, ok := b.(WeakType)
		return ok && Equal(av.Inner, bv.Inner)
	case ArrayType:
		bv, ok := b.(ArrayType)
		return ok && Equal(av.Element, bv.Element)
	case SetType:
		bv, ok := b.(SetType)
		return ok && Equal(av.Element, bv.Element)
	case DictionaryType:
		bv, ok := b.(DictionaryType)
		return ok && Equal(av.Key, bv.Key) && Equal(av.Value, bv.Value)
	case TupleType:
		bv, ok := b.(TupleType)
		return ok && equalLists(av.Elements, bv.Elements)
	case *TypeParameterType:
		bv, ok := b.(*TypeParameterType)
		return ok && (av == bv || (av.Decl != nil && av.Decl == bv.Decl))
	case *NamespaceType:
		bv, ok := b.(*NamespaceType)
		return ok && (av == bv || (av.Decl != nil && av.Decl == bv.Decl))
	case *StructType:
		bv, ok := b.(*StructType)
		return ok && (av == bv || (av.Decl != nil && av.Decl == bv.Decl))
	case *EnumType:
		bv, ok := b.(*EnumType)
		return ok && (av == bv || (av.Decl != nil && av.Decl == bv.Decl))
	case *EnumVariantType:
		bv, ok := b.(*EnumVariantType)
		return ok && (av == bv || (av.Decl != nil && av.Decl == bv.Decl))
	case *FunctionType:
		bv, ok := b.(*FunctionType)
		if !ok {
			return false
		}
		if av == bv {
			return true
		}
		if av.Decl != bv.Decl {
			return false
		}
		return equalSignatures(av, bv)
	case *ParameterizedType:
		bv, ok := b.(*ParameterizedType)
		if !ok || !Equal(av.Underlying, bv.Underlying) || len(av.TypeParameters) != len(bv.TypeParameters) {
			return false
		}
		for i := range av.TypeParameters {
			if !Equal(av.TypeParameters[i], bv.TypeParameters[i]) {
				return false
			}
		}
		return true
	case *BoundType:
		bv, ok := b.(*BoundType)
		if !ok || !Equal(av.Generic, bv.Generic) || len(av.Specializations) != len(bv.Specializations) {
			return false
		}
		for key, value := range av.Specializations {
			other, ok := bv.Specializations.Lookup(key)
			if !ok || !Equal(value, other) {
				return false
			}
		}
		return true
	}
	return false
}

func equalLists(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalSignatures(a, b *FunctionType) bool {
	if len(a.Parameters) != len(b.Parameters) || a.HasThis != b.HasThis {
		return false
	}
	for i := range a.Parameters {
		if !Equal(a.Parameters[i].Type, b.Parameters[i].Type) {
			return false
		}
	}
	return Equal(a.ReturnType, b.ReturnType)
}
