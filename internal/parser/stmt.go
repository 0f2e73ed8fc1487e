package parser

import (
	"github.com/faber-lang/faber/pkg/ast"
	"github.com/faber-lang/faber/pkg/token"
)

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.next() // si
	// The condition may be written with or without surrounding parens; a
	// parenthesized condition is unwrapped so both forms yield the same node.
	cond := p.parseExpression(LOWEST)
	if g, ok := cond.(*ast.GroupedExpression); ok {
		cond = g.Inner
	}
	then := p.parseBlock()
	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}

	if p.curIsKw("aliter") {
		p.next()
		if p.curIs(token.LPAREN) {
			p.next()
			stmt.CatchBind = p.expect(token.IDENT).Text
			p.expect(token.RPAREN)
		}
		if p.curIsKw("si") {
			stmt.Else = p.parseIfStatement()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.next() // dum
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseIterationStatement() ast.Statement {
	tok := p.cur()
	oneLiner := false
	if tok.Keyword == "ergo" {
		oneLiner = true
		p.next()
		tok = p.cur()
	}

	kind := ast.IterEx
	switch tok.Keyword {
	case "de":
		kind = ast.IterDe
	case "in":
		kind = ast.IterIn
	}
	p.next() // ex/de/in

	source := p.parseExpression(RANGE - 1) // folds an ante/usque range into the source

	var transform *ast.IterationTransform
	if p.curIsKw("prima") || p.curIsKw("ultima") {
		name := p.cur().Keyword
		p.next()
		count := p.parseExpression(SUM)
		transform = &ast.IterationTransform{Kind: name, Count: count}
	} else if p.curIsKw("summa") {
		p.next()
		transform = &ast.IterationTransform{Kind: "summa"}
	}

	verb := ast.VerbFit
	if p.curIsKw("fiet") {
		verb = ast.VerbFiet
		p.next()
	} else if p.curIsKw("pro") || p.curIsKw("fit") {
		p.next()
	}

	stmt := &ast.IterationStatement{Token: tok, Kind: kind, Source: source, Transform: transform, Verb: verb, OneLiner: oneLiner}
	if p.curIs(token.LBRACE) || p.curIs(token.LBRACK) {
		stmt.Pattern = p.parseDestructurePattern()
	} else {
		stmt.Binding = p.expect(token.IDENT).Text
	}

	if oneLiner {
		inner := p.parseStatement()
		stmt.Body = &ast.BlockStatement{Token: tok, Statements: []ast.Statement{inner}}
	} else {
		stmt.Body = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	tok := p.next() // elige
	p.expect(token.LPAREN)
	subject := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	stmt := &ast.SwitchStatement{Token: tok, Subject: subject}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIsKw("aliter") {
			p.next()
			body := p.parseBlock()
			stmt.Cases = append(stmt.Cases, ast.SwitchCase{Body: body})
			continue
		}
		p.expectKeyword("casus")
		val := p.parseExpression(LOWEST)
		body := p.parseBlock()
		stmt.Cases = append(stmt.Cases, ast.SwitchCase{Value: val, Body: body})
	}
	p.expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseDiscerneStatement() ast.Statement {
	tok := p.next() // discerne
	p.expect(token.LPAREN)
	subject := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	stmt := &ast.DiscerneStatement{Token: tok, Subject: subject}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIsKw("aliter") {
			p.next()
			stmt.DefaultBody = p.parseBlock()
			continue
		}
		p.expectKeyword("casus")
		variantName := p.expect(token.IDENT).Text
		var bindings []string
		if p.curIs(token.LPAREN) {
			p.next()
			for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
				bindings = append(bindings, p.expect(token.IDENT).Text)
				if p.curIs(token.COMMA) {
					p.next()
				}
			}
			p.expect(token.RPAREN)
		}
		body := p.parseBlock()
		stmt.Cases = append(stmt.Cases, ast.VariantCase{VariantName: variantName, Bindings: bindings, Body: body})
	}
	p.expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseDispatchStatement() ast.Statement {
	tok := p.next() // ad
	p.expect(token.LPAREN)
	subject := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	stmt := &ast.DispatchStatement{Token: tok, Subject: subject}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIsKw("aliter") {
			p.next()
			stmt.DefaultBody = p.parseBlock()
			continue
		}
		p.expectKeyword("casus")
		typ := p.parseTypeAnnotation()
		p.expectKeyword("ut")
		binding := p.expect(token.IDENT).Text
		body := p.parseBlock()
		stmt.Cases = append(stmt.Cases, ast.DispatchCase{Type: typ, Binding: binding, Body: body})
	}
	p.expect(token.RBRACE)
	return stmt
}

func (p *Parser) parseGuardStatement() ast.Statement {
	tok := p.next() // custodi
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	p.expectKeyword("aliter")
	els := p.parseBlock()
	return &ast.GuardStatement{Token: tok, Condition: cond, Else: els}
}

func (p *Parser) parseAssertStatement() ast.Statement {
	tok := p.next() // adfirma
	p.expect(token.LPAREN)
	cond := p.parseExpression(LOWEST)
	stmt := &ast.AssertStatement{Token: tok, Condition: cond}
	if p.curIs(token.COMMA) {
		p.next()
		stmt.Message = p.parseExpression(LOWEST)
	}
	p.expect(token.RPAREN)
	p.consumeSemi()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.next() // redde
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) {
		stmt.Value = p.parseExpression(LOWEST)
	}
	p.consumeSemi()
	return stmt
}

func (p *Parser) parseThrowStatement(fatal bool) ast.Statement {
	tok := p.next() // iace/mori
	val := p.parseExpression(LOWEST)
	p.consumeSemi()
	return &ast.ThrowStatement{Token: tok, Value: val, Fatal: fatal}
}

func (p *Parser) parseTryStatement() ast.Statement {
	tok := p.next() // tempta
	body := p.parseBlock()
	stmt := &ast.TryStatement{Token: tok, Body: body}
	if p.curIsKw("cape") {
		p.next()
		p.expect(token.LPAREN)
		stmt.CatchName = p.expect(token.IDENT).Text
		p.expect(token.RPAREN)
		stmt.Handler = p.parseBlock()
	}
	if p.curIsKw("demum") {
		p.next()
		stmt.Finally = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseCuraStatement() ast.Statement {
	tok := p.next() // cura
	binding := p.expect(token.IDENT).Text
	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	body := p.parseBlock()
	return &ast.CuraStatement{Token: tok, Binding: binding, Value: value, Body: body}
}

func (p *Parser) parseExplicitBlockStatement() ast.Statement {
	tok := p.next() // fac
	body := p.parseBlock()
	stmt := &ast.ExplicitBlockStatement{Token: tok, Body: body}
	if p.curIsKw("cape") {
		p.next()
		p.expect(token.LPAREN)
		stmt.CatchName = p.expect(token.IDENT).Text
		p.expect(token.RPAREN)
		stmt.Handler = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseIOStatement() ast.Statement {
	tok := p.next() // scribe/vide/mone
	stmt := &ast.IOStatement{Token: tok, Verb: tok.Keyword}
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		stmt.Arguments = append(stmt.Arguments, p.parseExpression(ASSIGN))
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	p.consumeSemi()
	return stmt
}
