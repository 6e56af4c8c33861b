package parser

import "jakt/analysis-go/pkg/ast"

var binaryPrecedence = map[string]int{
	"??":  1,
	"or":  2,
	"and": 3,
	"|":   4,
	"^":   5,
	"&":   6,
	"==":  7, "!=": 7,
	"<": 8, "<=": 8, ">": 8, ">=": 8,
	"..": 9,
	"<<": 10, ">>": 10,
	"+": 11, "-": 11,
	"*": 12, "/": 12, "%": 12,
}

var assignmentOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

func (p *parser) expr() ast.Expression {
	start := p.tok.start
	left := p.binary(1)
	if p.tok.kind == tokPunct && assignmentOperators[p.tok.lit] {
		op := p.tok.lit
		p.next()
		assign := ast.NewBinaryExpression(op, left, p.expr())
		p.finish(assign, start)
		return assign
	}
	return left
}

func (p *parser) binaryOperator() (string, int, bool) {
	switch p.tok.kind {
	case tokPunct:
	case tokIdent:
		if p.tok.lit != "and" && p.tok.lit != "or" {
			return "", 0, false
		}
	default:
		return "", 0, false
	}
	prec, ok := binaryPrecedence[p.tok.lit]
	return p.tok.lit, prec, ok
}

func (p *parser) binary(minPrec int) ast.Expression {
	start := p.tok.start
	left := p.unary()
	for {
		op, prec, ok := p.binaryOperator()
		if !ok || prec < minPrec {
			return left
		}
		p.next()
		right := p.binary(prec + 1)
		if op == ".." {
			left = ast.NewRangeExpression(left, right)
		} else {
			left = ast.NewBinaryExpression(op, left, right)
		}
		p.finish(left, start)
	}
}

func (p *parser) unary() ast.Expression {
	start := p.tok.start
	switch {
	case p.is("-"), p.is("~"), p.is("++"), p.is("--"), p.is("*"), p.is("not"), p.is("raw"):
		op := p.tok.lit
		p.next()
		expr := ast.NewPrefixUnaryExpression(op, p.unary())
		p.finish(expr, start)
		return expr
	}
	return p.postfix(p.primary(), start)
}

func (p *parser) postfix(expr ast.Expression, start ast.Position) ast.Expression {
	for {
		switch {
		case p.is("(") && !p.tok.newline:
			expr = ast.NewCallExpression(expr, nil, p.callArgs())
		case p.is("[") && !p.tok.newline:
			p.next()
			index := p.expr()
			p.want("]")
			expr = ast.NewIndexedAccessExpression(expr, index)
		case p.is(".") || p.is("?."):
			optional := p.is("?.")
			p.next()
			member := p.tok.lit
			if p.tok.kind != tokInt && !p.isIdent() {
				p.syntaxError("expected member name, found " + p.describe())
			}
			p.next()
			access := ast.NewAccessExpression(expr, member)
			access.Optional = optional
			expr = access
		case (p.is("++") || p.is("--") || p.is("!")) && !p.tok.newline:
			op := p.tok.lit
			p.next()
			expr = ast.NewPostfixUnaryExpression(op, expr)
		default:
			return expr
		}
		p.finish(expr, start)
	}
}

func (p *parser) callArgs() []*ast.Argument {
	p.want("(")
	var args []*ast.Argument
	for !p.is(")") && p.tok.kind != tokEOF {
		start := p.tok.start
		var label string
		if p.isIdent() && p.peek(1).kind == tokPunct && p.peek(1).lit == ":" {
			label = p.tok.lit
			p.next()
			p.next()
		}
		arg := ast.NewArgument(label, p.expr())
		p.finish(arg, start)
		args = append(args, arg)
		if !p.got(",") {
			break
		}
	}
	p.want(")")
	return args
}

func (p *parser) primary() ast.Expression {
	start := p.tok.start
	var expr ast.Expression
	switch {
	case p.tok.kind == tokInt:
		expr = ast.NewIntegerLiteral(p.tok.lit, p.tok.suffix)
		p.next()
	case p.tok.kind == tokFloat:
		expr = ast.NewFloatLiteral(p.tok.lit, p.tok.suffix)
		p.next()
	case p.tok.kind == tokString:
		expr = ast.NewStringLiteral(p.tok.lit)
		p.next()
	case p.tok.kind == tokChar, p.tok.kind == tokByteChar:
		expr = ast.NewCharLiteral(p.tok.lit, p.tok.kind == tokByteChar)
		p.next()
	case p.is("true"), p.is("false"):
		expr = ast.NewBooleanLiteral(p.tok.lit == "true")
		p.next()
	case p.is("Some") && p.peek(1).lit == "(":
		p.next()
		p.want("(")
		value := p.expr()
		p.want(")")
		expr = ast.NewOptionalSome(value)
	case p.is("None"):
		p.next()
		expr = ast.NewOptionalNone()
	case p.is("("):
		expr = p.parenOrTuple()
	case p.is("["):
		expr = p.arrayOrDictionary()
	case p.is("{"):
		p.next()
		expr = ast.NewSetLiteral(p.expressionList("}"))
	case p.is("."):
		p.next()
		expr = ast.NewFieldAccessExpression(p.ident())
	case p.is("match"):
		expr = p.matchExpr()
	case p.is("this"):
		p.next()
		expr = ast.NewQualifiedName("this")
	case p.isIdent():
		return p.nameOrGenericCall()
	default:
		p.syntaxError("expected expression, found " + p.describe())
	}
	p.finish(expr, start)
	return expr
}

// expressionList parses comma-separated expressions up to and including close.
func (p *parser) expressionList(close string) []ast.Expression {
	var elems []ast.Expression
	for !p.is(close) && p.tok.kind != tokEOF {
		elems = append(elems, p.expr())
		if !p.got(",") {
			break
		}
	}
	p.want(close)
	return elems
}

func (p *parser) parenOrTuple() ast.Expression {
	p.want("(")
	if p.got(")") {
		return ast.NewTupleLiteral(nil)
	}
	first := p.expr()
	if p.got(")") {
		return ast.NewParenExpression(first)
	}
	p.want(",")
	return ast.NewTupleLiteral(append([]ast.Expression{first}, p.expressionList(")")...))
}

func (p *parser) arrayOrDictionary() ast.Expression {
	p.want("[")
	if p.got("]") {
		return ast.NewArrayLiteral(nil)
	}
	if p.is(":") && p.peek(1).lit == "]" {
		p.next()
		p.next()
		return ast.NewDictionaryLiteral(nil)
	}
	first := p.expr()
	switch {
	case p.got(";"):
		count := p.expr()
		p.want("]")
		return ast.NewSizedArrayLiteral(first, count)
	case p.is(":"):
		var entries []*ast.DictionaryEntry
		key := first
		for {
			p.want(":")
			entry := ast.NewDictionaryEntry(key, p.expr())
			ast.SetSpan(entry, ast.Span{Start: key.Span().Start, End: p.prev.end})
			entries = append(entries, entry)
			if !p.got(",") || p.is("]") {
				break
			}
			key = p.expr()
		}
		p.want("]")
		return ast.NewDictionaryLiteral(entries)
	}
	if p.got("]") {
		return ast.NewArrayLiteral([]ast.Expression{first})
	}
	p.want(",")
	return ast.NewArrayLiteral(append([]ast.Expression{first}, p.expressionList("]")...))
}

// nameOrGenericCall parses a qualified name, and a call with explicit
// generic arguments when `<...>(` follows it.
func (p *parser) nameOrGenericCall() ast.Expression {
	start := p.tok.start
	segments := []string{p.ident()}
	for p.is("::") {
		p.next()
		segments = append(segments, p.ident())
	}
	name := ast.NewQualifiedName(segments...)
	p.finish(name, start)
	if !p.is("<") || p.tok.newline {
		return p.postfix(name, start)
	}
	typeArgs, ok := p.tryTypeArgs()
	if !ok {
		return p.postfix(name, start)
	}
	call := ast.NewCallExpression(name, typeArgs, p.callArgs())
	p.finish(call, start)
	return p.postfix(call, start)
}

// tryTypeArgs speculatively parses `<T, ...>` directly followed by '('.
// On failure the parser is left where it started.
func (p *parser) tryTypeArgs() (args []ast.TypeExpression, ok bool) {
	saved := p.idx
	p.speculating++
	defer func() {
		p.speculating--
		if r := recover(); r != nil {
			if _, isBacktrack := r.(backtrack); !isBacktrack {
				panic(r)
			}
			p.reset(saved)
			args, ok = nil, false
		}
	}()
	args = p.typeArgs()
	if !p.is("(") {
		p.reset(saved)
		return nil, false
	}
	return args, true
}

func (p *parser) matchExpr() ast.Expression {
	p.want("match")
	subject := p.expr()
	p.want("{")
	var cases []*ast.MatchCase
	for !p.is("}") && p.tok.kind != tokEOF {
		start := p.tok.start
		patterns := []*ast.MatchPattern{p.matchPattern()}
		for p.got("|") {
			patterns = append(patterns, p.matchPattern())
		}
		p.want("=>")
		var body ast.Node
		if p.is("{") {
			body = p.block()
		} else {
			body = p.expr()
		}
		c := ast.NewMatchCase(patterns, body)
		p.finish(c, start)
		cases = append(cases, c)
		p.got(",")
	}
	p.want("}")
	return ast.NewMatchExpression(subject, cases)
}

func (p *parser) matchPattern() *ast.MatchPattern {
	start := p.tok.start
	if p.got("else") {
		pattern := ast.NewMatchPattern(nil, nil)
		pattern.IsElse = true
		p.finish(pattern, start)
		return pattern
	}
	if !p.isIdent() {
		p.binary(1)
		pattern := ast.NewMatchPattern(nil, nil)
		p.finish(pattern, start)
		return pattern
	}
	segments := []string{p.ident()}
	for p.got("::") {
		segments = append(segments, p.ident())
	}
	head := ast.NewQualifiedName(segments...)
	p.finish(head, start)
	var bindings []*ast.PatternBinding
	if p.got("(") {
		for i := 0; !p.is(")") && p.tok.kind != tokEOF; i++ {
			bindingStart := p.tok.start
			label := p.ident()
			name := label
			if p.got(":") {
				name = p.ident()
			}
			binding := ast.NewPatternBinding(label, name, i)
			p.finish(binding, bindingStart)
			bindings = append(bindings, binding)
			if !p.got(",") {
				break
			}
		}
		p.want(")")
	}
	pattern := ast.NewMatchPattern(head, bindings)
	p.finish(pattern, start)
	return pattern
}
