// Package parser turns Jakt source text into pkg/ast syntax trees.
package parser

import (
	"fmt"

	"jakt/analysis-go/pkg/ast"
)

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos ast.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// ErrorList collects the syntax errors of one parse.
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns nil for an empty list.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// ParseFile parses a source file. A malformed top-level declaration is
// skipped; the returned file holds every declaration that parsed, alongside
// an ErrorList describing the rest.
func ParseFile(name string, src []byte) (*ast.File, error) {
	p := newParser(string(src))
	decls := p.parseDeclarations()
	file := ast.NewFile(name, decls)
	return file, p.errors.Err()
}

// ParseExpression parses a single expression.
func ParseExpression(src string) (expr ast.Expression, err error) {
	p := newParser(src)
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			expr, err = nil, p.errors.Err()
		}
	}()
	expr = p.expr()
	if p.tok.kind != tokEOF {
		p.syntaxError("unexpected " + p.describe() + " after expression")
	}
	ast.Link(expr)
	return expr, p.errors.Err()
}

// bailout unwinds the parse of the current top-level declaration.
type bailout struct{}

// backtrack unwinds a speculative parse.
type backtrack struct{}

type parser struct {
	toks        []token
	idx         int
	tok         token
	prev        token
	errors      ErrorList
	speculating int
}

func newParser(src string) *parser {
	p := &parser{}
	sc := newScanner(src, func(pos ast.Position, msg string) {
		p.errors = append(p.errors, &SyntaxError{Pos: pos, Msg: msg})
	})
	p.toks = sc.scanAll()
	p.tok = p.toks[0]
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *parser) next() {
	if p.idx < len(p.toks)-1 {
		p.prev = p.tok
		p.idx++
		p.tok = p.toks[p.idx]
	}
}

func (p *parser) reset(idx int) {
	p.idx = idx
	p.tok = p.toks[idx]
	if idx > 0 {
		p.prev = p.toks[idx-1]
	}
}

func (p *parser) peek(n int) token {
	if p.idx+n < len(p.toks) {
		return p.toks[p.idx+n]
	}
	return p.toks[len(p.toks)-1]
}

// is reports whether the current token is the punctuation or keyword lit.
func (p *parser) is(lit string) bool {
	return (p.tok.kind == tokPunct || p.tok.kind == tokIdent) && p.tok.lit == lit
}

func (p *parser) isIdent() bool {
	return p.tok.kind == tokIdent && !keywords[p.tok.lit]
}

// got consumes the current token if it is lit.
func (p *parser) got(lit string) bool {
	if p.is(lit) {
		p.next()
		return true
	}
	return false
}

// want consumes lit or reports an error.
func (p *parser) want(lit string) {
	if !p.got(lit) {
		p.syntaxError("expected " + lit + ", found " + p.describe())
	}
}

func (p *parser) ident() string {
	if !p.isIdent() {
		p.syntaxError("expected identifier, found " + p.describe())
	}
	name := p.tok.lit
	p.next()
	return name
}

func (p *parser) describe() string {
	if p.tok.kind == tokEOF {
		return p.tok.kind.String()
	}
	return fmt.Sprintf("%q", p.tok.lit)
}

func (p *parser) finish(node ast.Node, start ast.Position) {
	ast.SetSpan(node, ast.Span{Start: start, End: p.prev.end})
}

// ----------------------------------------------------------------------------
// Error handling

func (p *parser) syntaxError(msg string) {
	if p.speculating > 0 {
		panic(backtrack{})
	}
	p.errors = append(p.errors, &SyntaxError{Pos: p.tok.start, Msg: msg})
	if len(p.errors) >= maxErrors {
		p.reset(len(p.toks) - 1)
	}
	panic(bailout{})
}

var declarationStarts = map[string]bool{
	"import": true, "namespace": true, "struct": true, "class": true,
	"enum": true, "boxed": true, "function": true, "extern": true, "comptime": true,
}

// advance skips tokens until the next top-level declaration keyword.
func (p *parser) advance() {
	for p.tok.kind != tokEOF {
		if p.tok.kind == tokIdent && declarationStarts[p.tok.lit] {
			return
		}
		p.next()
	}
}

// ----------------------------------------------------------------------------
// Declarations

func (p *parser) parseDeclarations() []ast.Declaration {
	var decls []ast.Declaration
	for p.tok.kind != tokEOF {
		if decl := p.topLevel(); decl != nil {
			decls = append(decls, decl)
		}
	}
	return decls
}

func (p *parser) topLevel() (decl ast.Declaration) {
	start := p.idx
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			decl = nil
			if p.idx == start {
				p.next()
			}
			p.advance()
		}
	}()
	return p.declaration()
}

func (p *parser) skipModifiers() {
	for {
		switch {
		case p.is("public"), p.is("private"), p.is("virtual"), p.is("override"):
			p.next()
		case p.is("restricted"):
			p.next()
			p.skipBalanced("(", ")")
		default:
			return
		}
	}
}

// skipBalanced consumes a bracketed group starting at open.
func (p *parser) skipBalanced(open, close string) {
	p.want(open)
	depth := 1
	for depth > 0 && p.tok.kind != tokEOF {
		switch {
		case p.is(open):
			depth++
		case p.is(close):
			depth--
		}
		p.next()
	}
}

func (p *parser) declaration() ast.Declaration {
	p.skipModifiers()
	switch {
	case p.is("import"):
		if imp := p.importStatement(); imp != nil {
			return imp
		}
		return nil
	case p.is("namespace"):
		return p.namespaceDecl()
	case p.is("struct"), p.is("class"):
		return p.structDecl(false)
	case p.is("enum"), p.is("boxed"):
		return p.enumDecl()
	case p.is("function"), p.is("comptime"):
		return p.functionDecl(false)
	case p.is("extern"):
		p.next()
		if p.is("function") {
			return p.functionDecl(true)
		}
		return p.structDecl(true)
	}
	p.syntaxError("expected declaration, found " + p.describe())
	return nil
}

func (p *parser) importStatement() *ast.ImportStatement {
	start := p.tok.start
	p.want("import")
	if p.got("extern") {
		if p.tok.kind == tokString {
			p.next()
		}
		if p.is("{") {
			p.skipBalanced("{", "}")
		}
		return nil
	}
	module := p.ident()
	for p.got("::") {
		module += "::" + p.ident()
	}
	var alias string
	if p.got("as") {
		alias = p.ident()
	}
	var entries []*ast.ImportEntry
	if p.got("{") {
		for !p.is("}") && p.tok.kind != tokEOF {
			entryStart := p.tok.start
			entry := ast.NewImportEntry(p.ident())
			p.finish(entry, entryStart)
			entries = append(entries, entry)
			if !p.got(",") {
				break
			}
		}
		p.want("}")
	}
	imp := ast.NewImportStatement(module, alias, entries)
	p.finish(imp, start)
	return imp
}

func (p *parser) namespaceDecl() *ast.NamespaceDeclaration {
	start := p.tok.start
	p.want("namespace")
	name := p.ident()
	p.want("{")
	var decls []ast.Declaration
	for !p.is("}") && p.tok.kind != tokEOF {
		if decl := p.declaration(); decl != nil {
			decls = append(decls, decl)
		}
	}
	p.want("}")
	ns := ast.NewNamespaceDeclaration(name, decls)
	p.finish(ns, start)
	return ns
}

func (p *parser) genericParams() []*ast.GenericParameter {
	if !p.got("<") {
		return nil
	}
	var params []*ast.GenericParameter
	for !p.is(">") && p.tok.kind != tokEOF {
		start := p.tok.start
		param := ast.NewGenericParameter(p.ident())
		if p.is("requires") {
			p.next()
			p.skipBalanced("(", ")")
		}
		p.finish(param, start)
		params = append(params, param)
		if !p.got(",") {
			break
		}
	}
	p.want(">")
	return params
}

func (p *parser) structDecl(extern bool) *ast.StructDeclaration {
	start := p.tok.start
	isClass := p.is("class")
	if !p.got("class") {
		p.want("struct")
	}
	name := p.ident()
	generics := p.genericParams()
	p.want("{")
	var fields []*ast.StructField
	var methods []*ast.FunctionDeclaration
	for !p.is("}") && p.tok.kind != tokEOF {
		p.skipModifiers()
		switch {
		case p.is("function"), p.is("comptime"):
			methods = append(methods, p.functionDecl(extern))
		case p.is("extern"):
			p.next()
			methods = append(methods, p.functionDecl(true))
		default:
			fields = append(fields, p.structField())
		}
		p.got(",")
	}
	p.want("}")
	decl := ast.NewStructDeclaration(name, generics, fields, methods)
	decl.IsClass = isClass
	decl.IsExtern = extern
	p.finish(decl, start)
	return decl
}

func (p *parser) structField() *ast.StructField {
	start := p.tok.start
	name := p.ident()
	p.want(":")
	field := ast.NewStructField(name, p.typeExpr())
	if p.got("=") {
		p.expr()
	}
	p.finish(field, start)
	return field
}

func (p *parser) enumDecl() *ast.EnumDeclaration {
	start := p.tok.start
	boxed := p.got("boxed")
	p.want("enum")
	name := p.ident()
	generics := p.genericParams()
	var underlying ast.TypeExpression
	if p.got(":") {
		underlying = p.typeExpr()
	}
	p.want("{")
	var variants []*ast.EnumVariant
	var methods []*ast.FunctionDeclaration
	for !p.is("}") && p.tok.kind != tokEOF {
		p.skipModifiers()
		if p.is("function") || p.is("comptime") {
			methods = append(methods, p.functionDecl(false))
		} else {
			variants = append(variants, p.enumVariant())
		}
		p.got(",")
	}
	p.want("}")
	decl := ast.NewEnumDeclaration(name, generics, variants, methods)
	decl.IsBoxed = boxed
	decl.UnderlyingType = underlying
	p.finish(decl, start)
	return decl
}

func (p *parser) enumVariant() *ast.EnumVariant {
	start := p.tok.start
	name := p.ident()
	variant := ast.NewEnumVariant(name)
	if p.got("(") {
		if p.isIdent() && p.peek(1).kind == tokPunct && p.peek(1).lit == ":" {
			variant.Kind = ast.VariantStruct
			for !p.is(")") && p.tok.kind != tokEOF {
				fieldStart := p.tok.start
				fieldName := p.ident()
				p.want(":")
				field := ast.NewVariantField(fieldName, p.typeExpr())
				p.finish(field, fieldStart)
				variant.Fields = append(variant.Fields, field)
				if !p.got(",") {
					break
				}
			}
		} else {
			variant.Kind = ast.VariantTyped
			for !p.is(")") && p.tok.kind != tokEOF {
				variant.Types = append(variant.Types, p.typeExpr())
				if !p.got(",") {
					break
				}
			}
		}
		p.want(")")
	}
	if p.got("=") {
		variant.Value = p.expr()
	}
	p.finish(variant, start)
	return variant
}

func (p *parser) functionDecl(extern bool) *ast.FunctionDeclaration {
	start := p.tok.start
	if !p.got("function") {
		p.want("comptime")
	}
	name := p.ident()
	generics := p.genericParams()
	p.want("(")
	var this *ast.ThisParameter
	var params []*ast.Parameter
	for !p.is(")") && p.tok.kind != tokEOF {
		paramStart := p.tok.start
		switch {
		case p.is("this"):
			p.next()
			this = ast.NewThisParameter(false)
			p.finish(this, paramStart)
		case p.is("mut") && p.peek(1).lit == "this":
			p.next()
			p.next()
			this = ast.NewThisParameter(true)
			p.finish(this, paramStart)
		default:
			params = append(params, p.parameter())
		}
		if !p.got(",") {
			break
		}
	}
	p.want(")")
	p.got("throws")
	var ret ast.TypeExpression
	if p.got("->") {
		ret = p.typeExpr()
	}
	var body *ast.Block
	switch {
	case p.is("{"):
		body = p.block()
	case p.is("=>"):
		arrowStart := p.tok.start
		p.next()
		value := p.expr()
		stmt := ast.NewReturnStatement(value)
		p.finish(stmt, arrowStart)
		body = ast.NewBlock([]ast.Statement{stmt})
		p.finish(body, arrowStart)
	case !extern:
		p.syntaxError("expected function body, found " + p.describe())
	}
	decl := ast.NewFunctionDeclaration(name, generics, params, ret, body)
	decl.This = this
	decl.IsExtern = extern
	p.finish(decl, start)
	return decl
}

func (p *parser) parameter() *ast.Parameter {
	start := p.tok.start
	anon := p.got("anon")
	mutable := p.got("mut")
	name := p.ident()
	p.want(":")
	param := ast.NewParameter(name, p.typeExpr())
	param.IsAnonymous = anon
	param.IsMutable = mutable
	if p.got("=") {
		p.expr()
	}
	p.finish(param, start)
	return param
}
