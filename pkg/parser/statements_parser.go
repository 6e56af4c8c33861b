package parser

import "jakt/analysis-go/pkg/ast"

func (p *parser) block() *ast.Block {
	start := p.tok.start
	p.want("{")
	var stmts []ast.Statement
	for !p.is("}") && p.tok.kind != tokEOF {
		if stmt := p.statement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.got(";")
	}
	p.want("}")
	block := ast.NewBlock(stmts)
	p.finish(block, start)
	return block
}

func (p *parser) statement() ast.Statement {
	start := p.tok.start
	switch {
	case p.is("let"), p.is("mut"):
		return p.variableDecl()
	case p.is("return"):
		p.next()
		var value ast.Expression
		if !p.is("}") && !p.is(";") && !p.tok.newline {
			value = p.expr()
		}
		stmt := ast.NewReturnStatement(value)
		p.finish(stmt, start)
		return stmt
	case p.is("if"):
		return p.ifStatement()
	case p.is("while"):
		p.next()
		cond := p.expr()
		stmt := ast.NewWhileStatement(cond, p.block())
		p.finish(stmt, start)
		return stmt
	case p.is("loop"):
		p.next()
		stmt := ast.NewWhileStatement(nil, p.block())
		p.finish(stmt, start)
		return stmt
	case p.is("for"):
		p.next()
		bindingStart := p.tok.start
		binding := ast.NewVariableDeclaration(p.ident(), false, nil, nil)
		p.finish(binding, bindingStart)
		p.want("in")
		iterable := p.expr()
		stmt := ast.NewForStatement(binding, iterable, p.block())
		p.finish(stmt, start)
		return stmt
	case p.is("defer"):
		p.next()
		return p.statement()
	case p.is("unsafe"):
		p.next()
		return p.block()
	case p.is("break"), p.is("continue"):
		p.next()
		return nil
	case p.is("throw"), p.is("yield"):
		p.next()
		stmt := ast.NewExpressionStatement(p.expr())
		p.finish(stmt, start)
		return stmt
	case p.is("{"):
		return p.block()
	}
	stmt := ast.NewExpressionStatement(p.expr())
	p.finish(stmt, start)
	return stmt
}

func (p *parser) variableDecl() *ast.VariableDeclaration {
	start := p.tok.start
	mutable := p.is("mut")
	p.next()
	name := p.ident()
	var typ ast.TypeExpression
	if p.got(":") {
		typ = p.typeExpr()
	}
	p.want("=")
	decl := ast.NewVariableDeclaration(name, mutable, typ, p.expr())
	p.finish(decl, start)
	return decl
}

func (p *parser) ifStatement() *ast.IfStatement {
	start := p.tok.start
	p.want("if")
	cond := p.expr()
	then := p.block()
	var elseStmt ast.Statement
	if p.got("else") {
		if p.is("if") {
			elseStmt = p.ifStatement()
		} else {
			elseStmt = p.block()
		}
	}
	stmt := ast.NewIfStatement(cond, then, elseStmt)
	p.finish(stmt, start)
	return stmt
}
