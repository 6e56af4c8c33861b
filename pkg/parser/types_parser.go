package parser

import "jakt/analysis-go/pkg/ast"

func (p *parser) typeExpr() ast.TypeExpression {
	start := p.tok.start
	var t ast.TypeExpression
	switch {
	case p.got("raw"):
		t = ast.NewRawTypeExpression(p.typeExpr())
	case p.got("weak"):
		inner := p.baseType()
		p.want("?")
		t = ast.NewWeakTypeExpression(inner)
	default:
		t = p.baseType()
	}
	p.finish(t, start)
	for p.is("?") {
		p.next()
		t = ast.NewOptionalTypeExpression(t)
		p.finish(t, start)
	}
	return t
}

func (p *parser) baseType() ast.TypeExpression {
	start := p.tok.start
	var t ast.TypeExpression
	switch {
	case p.got("["):
		elem := p.typeExpr()
		if p.got(":") {
			t = ast.NewDictionaryTypeExpression(elem, p.typeExpr())
		} else {
			t = ast.NewArrayTypeExpression(elem)
		}
		p.want("]")
	case p.got("{"):
		t = ast.NewSetTypeExpression(p.typeExpr())
		p.want("}")
	case p.got("("):
		var elems []ast.TypeExpression
		for !p.is(")") && p.tok.kind != tokEOF {
			elems = append(elems, p.typeExpr())
			if !p.got(",") {
				break
			}
		}
		p.want(")")
		t = ast.NewTupleTypeExpression(elems)
	default:
		path := []string{p.typeName()}
		for p.got("::") {
			path = append(path, p.typeName())
		}
		var args []ast.TypeExpression
		if p.is("<") {
			args = p.typeArgs()
		}
		t = ast.NewNamedTypeExpression(path, args)
	}
	p.finish(t, start)
	return t
}

func (p *parser) typeName() string {
	if !p.isIdent() {
		p.syntaxError("expected type, found " + p.describe())
	}
	name := p.tok.lit
	p.next()
	return name
}

func (p *parser) typeArgs() []ast.TypeExpression {
	p.want("<")
	var args []ast.TypeExpression
	for !p.closesAngle() && p.tok.kind != tokEOF {
		args = append(args, p.typeExpr())
		if !p.got(",") {
			break
		}
	}
	p.closeAngle()
	return args
}

func (p *parser) closesAngle() bool {
	return p.is(">") || p.is(">>")
}

// closeAngle consumes a '>' ending a type argument list, splitting '>>'
// so nested lists can each close.
func (p *parser) closeAngle() {
	if p.is(">>") {
		first := p.tok
		first.lit = ">"
		first.end = first.start
		first.end.Column++
		second := first
		second.start = first.end
		second.end = p.tok.end
		second.newline = false
		rest := append([]token{first, second}, p.toks[p.idx+1:]...)
		p.toks = append(p.toks[:p.idx], rest...)
		p.tok = p.toks[p.idx]
	}
	p.want(">")
}
