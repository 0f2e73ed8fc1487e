package parser

import (
	"github.com/faber-lang/faber/pkg/ast"
	"github.com/faber-lang/faber/pkg/token"
)

// parseExpression is the Pratt-parsing core: parse a prefix expression, then
// repeatedly fold in infix/postfix operators whose precedence exceeds
// minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	left := p.parsePrefix()
	if left == nil {
		return nil
	}
	for !p.curIs(token.SEMI) && minPrec < p.peekPrecedence() {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expression {
	tok := p.cur()

	switch tok.Kind {
	case token.IDENT:
		p.next()
		return p.maybeLambdaOrArrow(&ast.Identifier{Token: tok, Value: tok.Text})
	case token.NUMBER:
		p.next()
		if tok.IsFloat {
			return &ast.FloatLiteral{Token: tok, Value: tok.FltValue}
		}
		return &ast.IntegerLiteral{Token: tok, Value: tok.IntValue}
	case token.BIGINT:
		p.next()
		return &ast.BigIntLiteral{Token: tok, Value: tok.IntValue}
	case token.STRING:
		p.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Text}
	case token.TEMPLATE:
		p.next()
		return p.parseTemplateLiteral(tok)
	case token.MINUS, token.TILDE, token.BANG:
		p.next()
		operand := p.parseExpression(UNARY)
		return &ast.UnaryExpression{Token: tok, Operator: tok.Text, Operand: operand}
	case token.LPAREN:
		return p.parseParenOrArrow()
	case token.LBRACK:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseObjectLiteral()
	}

	if tok.Kind != token.KEYWORD {
		p.addError(CodeNoPrefixParse, "no prefix parse function for "+tok.Kind.String())
		p.next()
		return nil
	}

	switch tok.Keyword {
	case "ego":
		p.next()
		return &ast.SelfExpression{Token: tok}
	case "verum":
		p.next()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case "falsum":
		p.next()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case "nihil":
		p.next()
		// "nihil" alone is the null literal; followed by an operand it is
		// the is-empty unary predicate.
		if p.startsExpression(p.cur()) {
			operand := p.parseExpression(UNARY)
			return &ast.UnaryExpression{Token: tok, Operator: "nihil", Operand: operand}
		}
		return &ast.NilLiteral{Token: tok}
	case "non":
		p.next()
		if p.curIsKw("est") {
			// "non est Type" applied without an explicit subject is invalid;
			// subjects always precede "est"/"non est" via the infix path,
			// so a leading "non" here is always the logical-not prefix.
		}
		operand := p.parseExpression(UNARY)
		return &ast.UnaryExpression{Token: tok, Operator: "non", Operand: operand}
	case "nulla", "nonnulla", "nonnihil", "negativum", "positivum":
		p.next()
		operand := p.parseExpression(UNARY)
		return &ast.UnaryExpression{Token: tok, Operator: tok.Keyword, Operand: operand}
	case "cede":
		p.next()
		operand := p.parseExpression(UNARY)
		return &ast.AwaitExpression{Token: tok, Argument: operand}
	case "novum":
		return p.parseNewExpression()
	case "praefixum":
		p.next()
		body := p.parseBlock()
		return &ast.PrefixBlockExpression{Token: tok, Keyword: "praefixum", Body: body}
	case "scriptum":
		p.next()
		if p.curIs(token.LBRACE) {
			body := p.parseBlock()
			return &ast.PrefixBlockExpression{Token: tok, Keyword: "scriptum", Body: body}
		}
		p.expect(token.LPAREN)
		var args []ast.Expression
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			args = append(args, p.parseExpression(ASSIGN))
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RPAREN)
		return &ast.PrefixBlockExpression{Token: tok, Keyword: "scriptum", Arguments: args}
	case "pro", "fiet":
		return p.parseLambdaExpression()
	}

	p.addError(CodeNoPrefixParse, "no prefix parse function for keyword '"+tok.Keyword+"'")
	p.next()
	return nil
}

// startsExpression reports whether tok can begin an expression, used to
// disambiguate the bare "nihil" null literal from the "nihil operand"
// is-empty predicate.
func (p *Parser) startsExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.IDENT, token.NUMBER, token.BIGINT, token.STRING, token.TEMPLATE,
		token.LPAREN, token.LBRACK, token.LBRACE, token.MINUS, token.TILDE, token.BANG:
		return true
	case token.KEYWORD:
		switch tok.Keyword {
		case "ego", "verum", "falsum", "nihil", "non", "nulla", "nonnulla",
			"nonnihil", "negativum", "positivum", "cede", "novum", "praefixum",
			"scriptum", "pro", "fiet":
			return true
		}
	}
	return false
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	tok := p.cur()

	if tok.Kind == token.KEYWORD {
		switch tok.Keyword {
		case "et", "aut", "vel":
			p.next()
			right := p.parseExpression(p.peekPrecedenceOf(tok))
			if tok.Keyword == "vel" {
				for _, side := range []ast.Expression{left, right} {
					if b, ok := side.(*ast.BinaryExpression); ok && (b.Operator == "aut" || b.Operator == "||") {
						p.addErrorAt(CodeMixedOperators, "'vel' cannot be mixed with 'aut'/'||' without parentheses", tok.Pos)
						break
					}
				}
			}
			return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Keyword, Right: right}
		case "est":
			p.next()
			typ := p.parseTypeAnnotation()
			return &ast.TypeTestExpression{Token: tok, Value: left, Type: typ, Negative: false}
		case "non":
			p.next()
			p.expectKeyword("est")
			typ := p.parseTypeAnnotation()
			return &ast.TypeTestExpression{Token: tok, Value: left, Type: typ, Negative: true}
		case "qua":
			p.next()
			typ := p.parseTypeAnnotation()
			return &ast.CastExpression{Token: tok, Value: left, Type: typ}
		case "ante", "usque":
			inclusive := tok.Keyword == "usque"
			p.next()
			end := p.parseExpression(RANGE)
			rangeExpr := &ast.RangeExpression{Token: tok, Start: left, End: end, Inclusive: inclusive}
			if p.curIsKw("per") {
				p.next()
				rangeExpr.Step = p.parseExpression(RANGE)
			}
			return rangeExpr
		}
	}

	switch tok.Kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.EQ_STRICT, token.NOT_STRICT,
		token.LT, token.GT, token.LT_EQ, token.GT_EQ,
		token.AND_AND, token.OR_OR, token.AMP, token.PIPE, token.CARET,
		token.SHL, token.SHR:
		prec := p.peekPrecedence()
		p.next()
		right := p.parseExpression(prec)
		return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Text, Right: right}

	case token.ASSIGN, token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ,
		token.SLASH_EQ, token.AMP_EQ, token.PIPE_EQ, token.PERCENT_EQ:
		p.next()
		right := p.parseExpression(ASSIGN - 1)
		return &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Text, Right: right}

	case token.QUESTION:
		p.next()
		then := p.parseExpression(ASSIGN)
		p.expectKeyword("secus")
		els := p.parseExpression(ASSIGN)
		return &ast.TernaryExpression{Token: tok, Condition: left, Then: then, Else: els}

	case token.DOT:
		p.next()
		name := p.expect(token.IDENT).Text
		return &ast.MemberExpression{Token: tok, Object: left, Property: name}
	case token.OPT_DOT:
		p.next()
		name := p.expect(token.IDENT).Text
		return &ast.MemberExpression{Token: tok, Object: left, Property: name, Optional: true}
	case token.BANG_DOT:
		p.next()
		name := p.expect(token.IDENT).Text
		return &ast.MemberExpression{Token: tok, Object: left, Property: name, NonNull: true}

	case token.LBRACK, token.OPT_LBRACK, token.BANG_LBRACK:
		opt := tok.Kind == token.OPT_LBRACK
		nn := tok.Kind == token.BANG_LBRACK
		p.next()
		idx := p.parseExpression(LOWEST)
		p.expect(token.RBRACK)
		return &ast.ComputedMemberExpression{Token: tok, Object: left, Index: idx, Optional: opt, NonNull: nn}

	case token.LPAREN, token.OPT_LPAREN, token.BANG_LPAREN:
		return p.parseCallArguments(left, tok)
	}

	// Reached for a keyword that has a precedence but no case above (a "per"
	// outside a range); skipping it keeps parseExpression from looping forever.
	p.next()
	return left
}

func (p *Parser) peekPrecedenceOf(tok token.Token) int {
	if tok.Kind == token.KEYWORD {
		if prec, ok := keywordPrecedence[tok.Keyword]; ok {
			return prec
		}
	}
	return LOWEST
}

func (p *Parser) parseCallArguments(callee ast.Expression, tok token.Token) ast.Expression {
	opt := tok.Kind == token.OPT_LPAREN
	nn := tok.Kind == token.BANG_LPAREN
	p.next()
	call := &ast.CallExpression{Token: tok, Callee: callee, Optional: opt, NonNull: nn}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		spread := false
		if p.curIs(token.DOTDOT) {
			p.next()
			spread = true
		}
		call.Arguments = append(call.Arguments, p.parseExpression(ASSIGN))
		call.Spreads = append(call.Spreads, spread)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return call
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.next() // novum
	typ := p.parseTypeAnnotation()
	if p.curIsKw("de") {
		p.next()
		from := p.parseExpression(UNARY)
		return &ast.NewExpression{Token: tok, Type: typ, From: from}
	}
	expr := &ast.NewExpression{Token: tok, Type: typ}
	if p.curIs(token.LPAREN) {
		p.next()
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			expr.Arguments = append(expr.Arguments, p.parseExpression(ASSIGN))
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.RPAREN)
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.expect(token.LBRACK)
	lit := &ast.ArrayLiteral{Token: tok}
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		spread := false
		if p.curIs(token.DOTDOT) {
			p.next()
			spread = true
		}
		lit.Elements = append(lit.Elements, p.parseExpression(ASSIGN))
		lit.Spreads = append(lit.Spreads, spread)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RBRACK)
	return lit
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.expect(token.LBRACE)
	lit := &ast.ObjectLiteral{Token: tok}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.DOTDOT) {
			p.next()
			val := p.parseExpression(ASSIGN)
			lit.Properties = append(lit.Properties, ast.ObjectProperty{Value: val, Spread: true})
		} else {
			key := p.expect(token.IDENT).Text
			var val ast.Expression = &ast.Identifier{Token: tok, Value: key}
			if p.curIs(token.COLON) {
				p.next()
				val = p.parseExpression(ASSIGN)
			}
			lit.Properties = append(lit.Properties, ast.ObjectProperty{Key: key, Value: val})
		}
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return lit
}

func (p *Parser) parseTemplateLiteral(tok token.Token) ast.Expression {
	lit := &ast.TemplateLiteral{Token: tok}
	raw := tok.Text
	if len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	i := 0
	var buf []byte
	flush := func() {
		if len(buf) > 0 {
			lit.Parts = append(lit.Parts, ast.TemplatePart{Text: string(buf)})
			buf = nil
		}
	}
	for i < len(raw) {
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			flush()
			depth := 1
			j := i + 2
			for j < len(raw) && depth > 0 {
				if raw[j] == '{' {
					depth++
				} else if raw[j] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				j++
			}
			inner := raw[i+2 : j]
			sub, errs, _ := Parse(inner + ";")
			if len(sub.Statements) > 0 {
				if es, ok := sub.Statements[0].(*ast.ExpressionStatement); ok {
					lit.Parts = append(lit.Parts, ast.TemplatePart{Expr: es.Expr})
				}
			}
			_ = errs
			i = j + 1
			continue
		}
		buf = append(buf, raw[i])
		i++
	}
	flush()
	return lit
}

// parseParenOrArrow disambiguates "(expr)" grouping from "(params) => body"
// by scanning ahead to the matching ')' and checking whether "=>" follows,
// backtracking via cursor.Mark/ResetTo if it is a plain grouped expression.
func (p *Parser) parseParenOrArrow() ast.Expression {
	mark := p.cursor.Mark()
	tok := p.cur()

	if p.looksLikeArrowParams() {
		params := p.parseParamList()
		p.expect(token.ARROW_FAT)
		return p.finishArrowBody(tok, params, false)
	}

	p.cursor.ResetTo(mark)
	p.expect(token.LPAREN)
	inner := p.parseExpression(LOWEST)
	p.expect(token.RPAREN)
	return &ast.GroupedExpression{Token: tok, Inner: inner}
}

// looksLikeArrowParams scans forward from the current '(' to its matching
// ')' without consuming, then checks whether '=>' immediately follows.
func (p *Parser) looksLikeArrowParams() bool {
	depth := 0
	i := 0
	for {
		tok := p.cursor.Peek(i)
		if tok.Kind == token.EOF {
			return false
		}
		if tok.Kind == token.LPAREN {
			depth++
		} else if tok.Kind == token.RPAREN {
			depth--
			if depth == 0 {
				return p.cursor.Peek(i+1).Kind == token.ARROW_FAT
			}
		}
		i++
	}
}

func (p *Parser) finishArrowBody(tok token.Token, params []*ast.Parameter, async bool) ast.Expression {
	var body ast.Node
	if p.curIs(token.LBRACE) {
		body = p.parseBlock()
	} else {
		body = p.parseExpression(ASSIGN)
	}
	return &ast.ArrowFunctionExpression{Token: tok, Params: params, Body: body, Async: async}
}

// maybeLambdaOrArrow handles the single-identifier-parameter arrow shorthand
// "x => expr" that parseParenOrArrow's paren-scanning path does not cover.
func (p *Parser) maybeLambdaOrArrow(ident *ast.Identifier) ast.Expression {
	if p.curIs(token.ARROW_FAT) {
		tok := p.next()
		params := []*ast.Parameter{{Token: ident.Token, Name: ident.Value}}
		return p.finishArrowBody(tok, params, false)
	}
	return ident
}

func (p *Parser) parseLambdaExpression() ast.Expression {
	tok := p.next() // pro/fiet
	async := tok.Keyword == "fiet"
	var params []*ast.Parameter
	for {
		ptok := p.cur()
		name := p.expect(token.IDENT).Text
		params = append(params, &ast.Parameter{Token: ptok, Name: name})
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	p.expect(token.COLON)
	var body ast.Node
	if p.curIs(token.LBRACE) {
		body = p.parseBlock()
	} else {
		body = p.parseExpression(ASSIGN)
	}
	return &ast.LambdaExpression{Token: tok, Params: params, Body: body, Async: async}
}
