package parser

import (
	"github.com/pontaoski/cfront/ast"
	"github.com/pontaoski/cfront/errors"
	"github.com/pontaoski/cfront/types"
)

func (p *Parser) parseBlock() *ast.Block {
	start := p.lexExpecting(types.LBRACE).Location
	var items []ast.BlockItem
	for !p.PeekIs(types.RBRACE, types.EOF) {
		items = append(items, p.parseBlockItem())
	}
	p.lexExpecting(types.RBRACE)
	return &ast.Block{Items: items, Loc: ast.Loc{Pos: p.spanFrom(start)}}
}

func (p *Parser) parseBlockItem() ast.BlockItem {
	if p.peek().Kind.IsSpecifier() {
		return p.parseDeclaration()
	}
	return p.parseStatement()
}

func (p *Parser) parseStatement() ast.Statement {
	tok := p.peek()
	loc := func() ast.Loc { return ast.Loc{Pos: p.spanFrom(tok.Location)} }

	switch tok.Kind {
	case types.SEMICOLON:
		p.next()
		return &ast.Null{Loc: loc()}

	case types.RETURN:
		p.next()
		var e ast.Expression
		if !p.PeekIs(types.SEMICOLON) {
			e = p.parseExpression()
		}
		p.lexExpecting(types.SEMICOLON)
		return &ast.Return{Expr: e, Loc: loc()}

	case types.IF:
		p.next()
		cond := p.parseCondition()
		then := p.parseStatement()
		var els ast.Statement
		if p.PeekIs(types.ELSE) {
			p.next()
			els = p.parseStatement()
		}
		return &ast.If{Cond: cond, Then: then, Else: els, Loc: loc()}

	case types.LBRACE:
		b := p.parseBlock()
		return &ast.CompoundStmt{Block: b, Loc: ast.Loc{Pos: b.Pos}}

	case types.FOR:
		return p.parseFor()

	case types.WHILE:
		p.next()
		cond := p.parseCondition()
		body := p.parseStatement()
		return &ast.While{Cond: cond, Body: body, Loc: loc()}

	case types.DO:
		p.next()
		body := p.parseStatement()
		p.lexExpecting(types.WHILE)
		cond := p.parseCondition()
		p.lexExpecting(types.SEMICOLON)
		return &ast.DoWhile{Body: body, Cond: cond, Loc: loc()}

	case types.SWITCH:
		p.next()
		e := p.parseCondition()
		body := p.parseStatement()
		return &ast.Switch{Expr: e, Body: body, Loc: loc()}

	case types.CASE:
		p.next()
		v := p.parseExpression()
		p.lexExpecting(types.COLON)
		body := p.parseStatement()
		return &ast.Case{Value: v, Body: body, Loc: loc()}

	case types.DEFAULT:
		p.next()
		p.lexExpecting(types.COLON)
		body := p.parseStatement()
		return &ast.Default{Body: body, Loc: loc()}

	case types.GOTO:
		p.next()
		label := p.lexExpecting(types.IDENT)
		p.lexExpecting(types.SEMICOLON)
		return &ast.Goto{Label: label.Text, Loc: loc()}

	case types.BREAK:
		p.next()
		p.lexExpecting(types.SEMICOLON)
		return &ast.Break{Loc: loc()}

	case types.CONTINUE:
		p.next()
		p.lexExpecting(types.SEMICOLON)
		return &ast.Continue{Loc: loc()}

	case types.IDENT:
		if p.peekAt(1).Kind == types.COLON {
			p.next()
			p.next()
			body := p.parseStatement()
			return &ast.Labeled{Label: tok.Text, Body: body, Loc: loc()}
		}
	}

	if tok.Kind.IsSpecifier() {
		p.expected("statement")
	}

	e := p.parseExpression()
	p.lexExpecting(types.SEMICOLON)
	return &ast.ExprStmt{Expr: e, Loc: loc()}
}

// parseCondition reads a parenthesized controlling expression.
func (p *Parser) parseCondition() ast.Expression {
	p.lexExpecting(types.LPAREN)
	e := p.parseExpression()
	p.lexExpecting(types.RPAREN)
	return e
}

func (p *Parser) parseFor() ast.Statement {
	start := p.lexExpecting(types.FOR).Location
	p.lexExpecting(types.LPAREN)

	var init ast.ForInit
	if p.peek().Kind.IsSpecifier() {
		decl := p.parseDeclaration()
		v, ok := decl.(*ast.VarDecl)
		if !ok {
			panic(errors.InvalidDeclarator{
				Reason:   "Function declarations aren't permitted in for loop headers",
				Location: decl.Span(),
			})
		}
		init = &ast.InitDecl{Decl: v, Loc: v.Loc}
	} else {
		initStart := p.peek().Location
		var e ast.Expression
		if !p.PeekIs(types.SEMICOLON) {
			e = p.parseExpression()
		}
		p.lexExpecting(types.SEMICOLON)
		init = &ast.InitExpr{Expr: e, Loc: ast.Loc{Pos: p.spanFrom(initStart)}}
	}

	var cond, post ast.Expression
	if !p.PeekIs(types.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.lexExpecting(types.SEMICOLON)
	if !p.PeekIs(types.RPAREN) {
		post = p.parseExpression()
	}
	p.lexExpecting(types.RPAREN)

	body := p.parseStatement()
	return &ast.For{
		Init: init,
		Cond: cond,
		Post: post,
		Body: body,
		Loc:  ast.Loc{Pos: p.spanFrom(start)},
	}
}
