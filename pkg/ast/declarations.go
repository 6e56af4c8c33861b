package ast

// File is a parsed source file. Its declarations are the top-level items in
// source order.
type File struct {
	nodeImpl
	Tracker

	Name         string
	Path         string
	Declarations []Declaration
}

func NewFile(name string, decls []Declaration) *File {
	file := &File{nodeImpl: newNodeImpl(NodeFile), Name: name, Declarations: decls}
	Link(file)
	return file
}

func (f *File) DeclName() string { return f.Name }

type NamespaceDeclaration struct {
	nodeImpl
	Tracker

	Name         string
	Declarations []Declaration
}

func NewNamespaceDeclaration(name string, decls []Declaration) *NamespaceDeclaration {
	return &NamespaceDeclaration{nodeImpl: newNodeImpl(NodeNamespaceDeclaration), Name: name, Declarations: decls}
}

func (n *NamespaceDeclaration) DeclName() string { return n.Name }

// ImportStatement covers `import m`, `import m as a` and `import m { x, y }`.
type ImportStatement struct {
	nodeImpl
	Tracker

	Module  string
	Alias   string
	Entries []*ImportEntry
}

func NewImportStatement(module, alias string, entries []*ImportEntry) *ImportStatement {
	return &ImportStatement{nodeImpl: newNodeImpl(NodeImportStatement), Module: module, Alias: alias, Entries: entries}
}

func (i *ImportStatement) DeclName() string {
	if i.Alias != "" {
		return i.Alias
	}
	return i.Module
}

type ImportEntry struct {
	nodeImpl
	Tracker

	Name string
}

func NewImportEntry(name string) *ImportEntry {
	return &ImportEntry{nodeImpl: newNodeImpl(NodeImportEntry), Name: name}
}

func (i *ImportEntry) DeclName() string { return i.Name }

// Import returns the statement the entry belongs to.
func (i *ImportEntry) Import() *ImportStatement {
	imp, _ := i.Parent().(*ImportStatement)
	return imp
}

type GenericParameter struct {
	nodeImpl
	Tracker

	Name string
}

func NewGenericParameter(name string) *GenericParameter {
	return &GenericParameter{nodeImpl: newNodeImpl(NodeGenericParameter), Name: name}
}

func (g *GenericParameter) DeclName() string { return g.Name }

// StructDeclaration covers `struct`, `class` and their `extern` forms.
type StructDeclaration struct {
	nodeImpl
	Tracker

	Name          string
	GenericParams []*GenericParameter
	Fields        []*StructField
	Methods       []*FunctionDeclaration
	IsClass       bool
	IsExtern      bool
}

func NewStructDeclaration(name string, generics []*GenericParameter, fields []*StructField, methods []*FunctionDeclaration) *StructDeclaration {
	return &StructDeclaration{
		nodeImpl:      newNodeImpl(NodeStructDeclaration),
		Name:          name,
		GenericParams: generics,
		Fields:        fields,
		Methods:       methods,
	}
}

func (s *StructDeclaration) DeclName() string { return s.Name }

type StructField struct {
	nodeImpl
	Tracker

	Name string
	Type TypeExpression
}

func NewStructField(name string, typ TypeExpression) *StructField {
	return &StructField{nodeImpl: newNodeImpl(NodeStructField), Name: name, Type: typ}
}

func (f *StructField) DeclName() string { return f.Name }

// EnumDeclaration is either a normal enum (variants with optional payloads)
// or an underlying-type enum when UnderlyingType is set.
type EnumDeclaration struct {
	nodeImpl
	Tracker

	Name           string
	IsBoxed        bool
	GenericParams  []*GenericParameter
	UnderlyingType TypeExpression
	Variants       []*EnumVariant
	Methods        []*FunctionDeclaration
}

func NewEnumDeclaration(name string, generics []*GenericParameter, variants []*EnumVariant, methods []*FunctionDeclaration) *EnumDeclaration {
	return &EnumDeclaration{
		nodeImpl:      newNodeImpl(NodeEnumDeclaration),
		Name:          name,
		GenericParams: generics,
		Variants:      variants,
		Methods:       methods,
	}
}

func (e *EnumDeclaration) DeclName() string { return e.Name }

type VariantKind int

const (
	VariantUnit VariantKind = iota
	VariantTyped
	VariantStruct
)

type EnumVariant struct {
	nodeImpl
	Tracker

	Name   string
	Kind   VariantKind
	Types  []TypeExpression
	Fields []*VariantField
	Value  Expression
}

func NewEnumVariant(name string) *EnumVariant {
	return &EnumVariant{nodeImpl: newNodeImpl(NodeEnumVariant), Name: name, Kind: VariantUnit}
}

func NewTypedEnumVariant(name string, payload []TypeExpression) *EnumVariant {
	return &EnumVariant{nodeImpl: newNodeImpl(NodeEnumVariant), Name: name, Kind: VariantTyped, Types: payload}
}

func NewStructEnumVariant(name string, fields []*VariantField) *EnumVariant {
	return &EnumVariant{nodeImpl: newNodeImpl(NodeEnumVariant), Name: name, Kind: VariantStruct, Fields: fields}
}

func (v *EnumVariant) DeclName() string { return v.Name }

// Enum returns the declaring enum.
func (v *EnumVariant) Enum() *EnumDeclaration {
	enum, _ := v.Parent().(*EnumDeclaration)
	return enum
}

type VariantField struct {
	nodeImpl
	Tracker

	Name string
	Type TypeExpression
}

func NewVariantField(name string, typ TypeExpression) *VariantField {
	return &VariantField{nodeImpl: newNodeImpl(NodeVariantField), Name: name, Type: typ}
}

func (f *VariantField) DeclName() string { return f.Name }

type FunctionDeclaration struct {
	nodeImpl
	Tracker

	Name          string
	GenericParams []*GenericParameter
	This          *ThisParameter
	Params        []*Parameter
	ReturnType    TypeExpression
	Body          *Block
	IsExtern      bool
}

func NewFunctionDeclaration(name string, generics []*GenericParameter, params []*Parameter, ret TypeExpression, body *Block) *FunctionDeclaration {
	return &FunctionDeclaration{
		nodeImpl:      newNodeImpl(NodeFunctionDeclaration),
		Name:          name,
		GenericParams: generics,
		Params:        params,
		ReturnType:    ret,
		Body:          body,
	}
}

func (f *FunctionDeclaration) DeclName() string { return f.Name }

// ThisParameter is the `this` / `mut this` receiver of a method.
type ThisParameter struct {
	nodeImpl
	Tracker

	IsMutable bool
}

func NewThisParameter(mutable bool) *ThisParameter {
	return &ThisParameter{nodeImpl: newNodeImpl(NodeThisParameter), IsMutable: mutable}
}

func (*ThisParameter) DeclName() string { return "this" }

type Parameter struct {
	nodeImpl
	Tracker

	Name        string
	Type        TypeExpression
	IsAnonymous bool
	IsMutable   bool
}

func NewParameter(name string, typ TypeExpression) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, Type: typ}
}

func (p *Parameter) DeclName() string { return p.Name }

// VariableDeclaration is a `let` or `mut` binding. It is also used for the
// binding introduced by a `for` loop, which has neither Type nor Value.
type VariableDeclaration struct {
	nodeImpl
	statementMarker
	Tracker

	Name      string
	IsMutable bool
	Type      TypeExpression
	Value     Expression
}

func NewVariableDeclaration(name string, mutable bool, typ TypeExpression, value Expression) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, IsMutable: mutable, Type: typ, Value: value}
}

func (v *VariableDeclaration) DeclName() string { return v.Name }

// PatternBinding is a name bound by destructuring an enum variant in a match
// pattern: `A(label: name)`, `A(name)` or positional `A(name)` for typed payloads.
type PatternBinding struct {
	nodeImpl
	Tracker

	Label string
	Name  string
	Index int
}

func NewPatternBinding(label, name string, index int) *PatternBinding {
	return &PatternBinding{nodeImpl: newNodeImpl(NodePatternBinding), Label: label, Name: name, Index: index}
}

func (p *PatternBinding) DeclName() string { return p.Name }

// Pattern returns the match pattern the binding belongs to.
func (p *PatternBinding) Pattern() *MatchPattern {
	pattern, _ := p.Parent().(*MatchPattern)
	return pattern
}
