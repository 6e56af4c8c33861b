package typechecker

import (
	"github.com/hashicorp/go-set/v2"

	"jakt/analysis-go/pkg/ast"
	"jakt/analysis-go/pkg/types"
)

func (q *query) declType(decl ast.Declaration) types.Type {
	q.checkCancelled()
	switch d := decl.(type) {
	case *ast.File:
		return q.fileType(d)
	case *ast.NamespaceDeclaration:
		return q.namespaceType(d)
	case *ast.ImportStatement:
		return q.importType(d)
	case *ast.ImportEntry:
		return q.importEntryType(d)
	case *ast.StructDeclaration:
		return q.structType(d)
	case *ast.StructField:
		return q.typeExpr(d.Type)
	case *ast.EnumDeclaration:
		return q.enumType(d)
	case *ast.EnumVariant:
		return q.variantType(d)
	case *ast.VariantField:
		return q.typeExpr(d.Type)
	case *ast.FunctionDeclaration:
		return q.functionType(d)
	case *ast.ThisParameter:
		return q.ownerType(d)
	case *ast.Parameter:
		return q.typeExpr(d.Type)
	case *ast.GenericParameter:
		return q.typeParameter(d)
	case *ast.VariableDeclaration:
		return q.variableType(d)
	case *ast.PatternBinding:
		return q.patternBindingType(d)
	default:
		invariant(decl, "unhandled declaration kind %T", decl)
	}
	return types.Unknown
}

func (q *query) typeParameter(decl *ast.GenericParameter) types.Type {
	return q.guarded(decl, func() types.Type {
		return &types.TypeParameterType{ParameterName: decl.Name, Decl: decl}
	}, nil)
}

func (q *query) typeParameters(params []*ast.GenericParameter) []*types.TypeParameterType {
	if len(params) == 0 {
		return nil
	}
	out := make([]*types.TypeParameterType, 0, len(params))
	for _, param := range params {
		out = append(out, q.typeParameter(param).(*types.TypeParameterType))
	}
	return out
}

// parameterized wraps a generic shell. Duplicate parameter names keep their
// first occurrence.
func parameterized(underlying types.Type, params []*types.TypeParameterType) types.Type {
	if len(params) == 0 {
		return underlying
	}
	if wrapped, err := types.NewParameterized(underlying, params); err == nil {
		return wrapped
	}
	seen := set.New[string](len(params))
	unique := make([]*types.TypeParameterType, 0, len(params))
	for _, param := range params {
		if seen.Insert(param.ParameterName) {
			unique = append(unique, param)
		}
	}
	return &types.ParameterizedType{Underlying: underlying, TypeParameters: unique}
}

func (q *query) structType(decl *ast.StructDeclaration) types.Type {
	var st *types.StructType
	return q.guarded(decl, func() types.Type {
		st = &types.StructType{
			StructName:     decl.Name,
			Decl:           decl,
			TypeParameters: q.typeParameters(decl.GenericParams),
			IsClass:        decl.IsClass,
			IsExtern:       decl.IsExtern,
		}
		return parameterized(st, st.TypeParameters)
	}, func() {
		st.Namespace = q.enclosingNamespace(decl)
		for _, field := range decl.Fields {
			st.Fields.Set(field.Name, q.typeExpr(field.Type))
		}
		for _, method := range decl.Methods {
			st.Methods.Set(method.Name, q.methodType(decl, method))
		}
	})
}

// methodType types a method and makes sure an instance method's receiver
// is present in its signature.
func (q *query) methodType(owner ast.Declaration, method *ast.FunctionDeclaration) types.Type {
	t := q.functionType(method)
	fn, ok := types.Unwrap(t).(*types.FunctionType)
	if ok && fn.HasThis && fn.ThisParameter == nil {
		fn.ThisParameter = &types.Parameter{Name: "this", Type: q.declType(owner), IsMutable: fn.ThisIsMutable}
	}
	return t
}

func (q *query) enumType(decl *ast.EnumDeclaration) types.Type {
	var en *types.EnumType
	return q.guarded(decl, func() types.Type {
		en = &types.EnumType{
			EnumName:       decl.Name,
			Decl:           decl,
			IsBoxed:        decl.IsBoxed,
			TypeParameters: q.typeParameters(decl.GenericParams),
		}
		return parameterized(en, en.TypeParameters)
	}, func() {
		en.Namespace = q.enclosingNamespace(decl)
		if decl.UnderlyingType != nil {
			if prim, ok := q.typeExpr(decl.UnderlyingType).(types.PrimitiveType); ok {
				en.UnderlyingType = prim
			} else {
				en.UnderlyingType = types.Unknown
			}
		}
		for _, variant := range decl.Variants {
			en.Variants.Set(variant.Name, q.variantType(variant))
		}
		for _, method := range decl.Methods {
			en.Methods.Set(method.Name, q.methodType(decl, method))
		}
	})
}

func (q *query) variantType(decl *ast.EnumVariant) types.Type {
	var vt *types.EnumVariantType
	return q.guarded(decl, func() types.Type {
		vt = &types.EnumVariantType{VariantName: decl.Name, Decl: decl}
		return vt
	}, func() {
		if enum := decl.Enum(); enum != nil {
			vt.Parent, _ = types.Unwrap(q.enumType(enum)).(*types.EnumType)
			if enum.UnderlyingType != nil {
				return
			}
		}
		switch decl.Kind {
		case ast.VariantTyped:
			vt.Payload = types.PayloadTyped
			vt.Types = make([]types.Type, len(decl.Types))
			for i, elem := range decl.Types {
				vt.Types[i] = q.typeExpr(elem)
			}
		case ast.VariantStruct:
			vt.Payload = types.PayloadStruct
			for _, field := range decl.Fields {
				vt.Fields.Set(field.Name, q.typeExpr(field.Type))
			}
		}
	})
}

func (q *query) functionType(decl *ast.FunctionDeclaration) types.Type {
	var fn *types.FunctionType
	return q.guarded(decl, func() types.Type {
		fn = &types.FunctionType{
			FunctionName:   decl.Name,
			Decl:           decl,
			TypeParameters: q.typeParameters(decl.GenericParams),
			IsExtern:       decl.IsExtern,
		}
		if decl.This != nil {
			fn.HasThis = true
			fn.ThisIsMutable = decl.This.IsMutable
		}
		return parameterized(fn, fn.TypeParameters)
	}, func() {
		switch decl.Parent().(type) {
		case *ast.File, *ast.NamespaceDeclaration:
			fn.Namespace = q.enclosingNamespace(decl)
		}
		if decl.This != nil {
			if owner := q.ownerType(decl.This); !types.IsUnknown(owner) {
				fn.ThisParameter = &types.Parameter{Name: "this", Type: owner, IsMutable: decl.This.IsMutable}
			}
		}
		fn.Parameters = make([]types.Parameter, len(decl.Params))
		for i, param := range decl.Params {
			fn.Parameters[i] = types.Parameter{
				Name:        param.Name,
				Type:        q.typeExpr(param.Type),
				IsAnonymous: param.IsAnonymous,
				IsMutable:   param.IsMutable,
			}
		}
		if decl.ReturnType != nil {
			fn.ReturnType = q.typeExpr(decl.ReturnType)
		} else {
			fn.ReturnType = types.Void
		}
	})
}

// ownerType returns the type of the struct or enum enclosing node
// (for `this` and `Self`), or Unknown outside of one.
func (q *query) ownerType(node ast.Node) types.Type {
	owner := ast.FindAncestor(node, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.StructDeclaration, *ast.EnumDeclaration:
			return true
		}
		return false
	})
	if owner == nil {
		return types.Unknown
	}
	return q.declType(owner.(ast.Declaration))
}

// enclosingNamespace returns the namespace or file type directly holding decl.
func (q *query) enclosingNamespace(decl ast.Node) *types.NamespaceType {
	parent, ok := decl.Parent().(ast.Declaration)
	if !ok {
		return nil
	}
	switch parent.(type) {
	case *ast.File, *ast.NamespaceDeclaration:
		ns, _ := q.declType(parent).(*types.NamespaceType)
		return ns
	}
	return nil
}

func (q *query) namespaceType(decl *ast.NamespaceDeclaration) types.Type {
	var ns *types.NamespaceType
	return q.guarded(decl, func() types.Type {
		ns = &types.NamespaceType{NamespaceName: decl.Name, Decl: decl}
		return ns
	}, func() {
		ns.Parent = q.enclosingNamespace(decl)
		q.fillMembers(ns, decl.Declarations)
	})
}

func (q *query) fileType(decl *ast.File) types.Type {
	var ns *types.NamespaceType
	return q.guarded(decl, func() types.Type {
		ns = &types.NamespaceType{NamespaceName: decl.Name, IsFile: true, Decl: decl}
		return ns
	}, func() {
		q.fillMembers(ns, decl.Declarations)
	})
}

// fillMembers records every type-bearing declaration. Imports contribute
// their entries, or the imported namespace itself when they have none.
func (q *query) fillMembers(ns *types.NamespaceType, decls []ast.Declaration) {
	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.StructDeclaration, *ast.EnumDeclaration, *ast.FunctionDeclaration, *ast.NamespaceDeclaration:
			ns.Members.Set(d.DeclName(), q.declType(d))
		case *ast.ImportStatement:
			if len(d.Entries) == 0 {
				ns.Members.Set(d.DeclName(), q.importType(d))
				continue
			}
			for _, entry := range d.Entries {
				ns.Members.Set(entry.Name, q.importEntryType(entry))
			}
		}
	}
}

func (q *query) importType(decl *ast.ImportStatement) types.Type {
	file := q.c.resolver.ResolveImport(decl)
	if file == nil {
		return types.Unknown
	}
	return q.fileType(file)
}

// importEntryType looks the entry up among the imported file's top-level
// declarations rather than its namespace, which may still be filling when
// files import each other.
func (q *query) importEntryType(decl *ast.ImportEntry) types.Type {
	imp := decl.Import()
	if imp == nil {
		return types.Unknown
	}
	file := q.c.resolver.ResolveImport(imp)
	if file == nil {
		return types.Unknown
	}
	for _, member := range file.Declarations {
		switch member.(type) {
		case *ast.StructDeclaration, *ast.EnumDeclaration, *ast.FunctionDeclaration, *ast.NamespaceDeclaration:
			if member.DeclName() == decl.Name {
				return q.declType(member)
			}
		}
	}
	return types.Unknown
}

// variableType types a binding from its annotation, else its initializer.
// Structural results are not cached; a binding reached again while its own
// initializer is being inferred is Unknown.
func (q *query) variableType(decl *ast.VariableDeclaration) types.Type {
	if decl.Type != nil {
		return q.typeExpr(decl.Type)
	}
	if !q.visiting.Insert(decl) {
		return types.Unknown
	}
	defer q.visiting.Remove(decl)
	if decl.Value != nil {
		return q.infer(decl.Value)
	}
	if loop, ok := decl.Parent().(*ast.ForStatement); ok && loop.Iterable != nil {
		return elementType(q.infer(loop.Iterable))
	}
	return types.Unknown
}

func elementType(t types.Type) types.Type {
	switch v := t.(type) {
	case types.ArrayType:
		return v.Element
	case types.SetType:
		return v.Element
	case types.DictionaryType:
		return types.TupleType{Elements: []types.Type{v.Key, v.Value}}
	}
	return types.Unknown
}

// patternBindingType types a destructured payload name. The pattern head must
// resolve to an enum variant; anything else is Unknown.
func (q *query) patternBindingType(decl *ast.PatternBinding) types.Type {
	pattern := decl.Pattern()
	if pattern == nil || pattern.Head == nil {
		return types.Unknown
	}
	variantDecl, ok := q.c.resolver.Resolve(pattern.Head.Segments, pattern).(*ast.EnumVariant)
	if !ok {
		return types.Unknown
	}
	variant := q.variantType(variantDecl)
	if subject := matchSubject(pattern); subject != nil {
		if specialized, ok := q.specializedVariant(subject, variantDecl); ok {
			variant = specialized
		}
	}
	vt, ok := types.Unwrap(variant).(*types.EnumVariantType)
	if !ok {
		return types.Unknown
	}
	switch vt.Payload {
	case types.PayloadStruct:
		if field, ok := types.FieldType(variant, decl.Label); ok {
			return field
		}
	case types.PayloadTyped:
		payload := types.PayloadTypes(variant)
		if decl.Index >= 0 && decl.Index < len(payload) {
			return payload[decl.Index]
		}
	}
	return types.Unknown
}

func matchSubject(pattern *ast.MatchPattern) ast.Expression {
	node := ast.FindAncestor(pattern, func(n ast.Node) bool {
		_, ok := n.(*ast.MatchExpression)
		return ok
	})
	if node == nil {
		return nil
	}
	return node.(*ast.MatchExpression).Subject
}

// specializedVariant returns the variant as seen through the match subject's
// enum specializations.
func (q *query) specializedVariant(subject ast.Expression, variant *ast.EnumVariant) (types.Type, bool) {
	subjectType := q.infer(subject)
	en, ok := types.Unwrap(subjectType).(*types.EnumType)
	if !ok || en.Decl != variant.Enum() {
		return nil, false
	}
	return types.VariantType(subjectType, variant.Name)
}
