package parser

import (
	"github.com/faber-lang/faber/internal/lexicon"
	"github.com/faber-lang/faber/pkg/ast"
	"github.com/faber-lang/faber/pkg/token"
)

// parseStatement dispatches on the current token to the right
// statement/declaration parser. The overloaded keywords ex and cura are
// disambiguated here by inspecting the tokens that follow, per spec.md §4.3;
// pro and fit are not inspected here and reach the expression parser.
func (p *Parser) parseStatement() ast.Statement {
	tok := p.cur()

	if tok.Kind == token.LBRACE {
		return p.parseBlock()
	}

	if tok.Kind != token.KEYWORD {
		return p.parseExpressionStatement()
	}

	switch tok.Keyword {
	case "varia", "fixum", "figendum", "variandum":
		return p.parseVarDeclaration()
	case "functio":
		return p.parseFunctionDeclaration()
	case "genus":
		return p.parseGenusDeclaration()
	case "pactum":
		return p.parsePactumDeclaration()
	case "typus":
		return p.parseTypeAliasDeclaration()
	case "ordo":
		return p.parseOrdoDeclaration()
	case "discretio":
		return p.parseDiscretioDeclaration()
	case "probatio":
		return p.parseProbatioDeclaration()
	case "si":
		return p.parseIfStatement()
	case "dum":
		return p.parseWhileStatement()
	case "ex", "de", "in":
		// "ex" is also the import opener ("ex <src> importa ...") and the
		// destructuring-declaration opener; disambiguate by what follows.
		if tok.Keyword == "ex" && p.looksLikeImport() {
			return p.parseImportDeclaration()
		}
		return p.parseIterationStatement()
	case "ergo":
		return p.parseIterationStatement()
	case "elige":
		return p.parseSwitchStatement()
	case "discerne":
		return p.parseDiscerneStatement()
	case "ad":
		return p.parseDispatchStatement()
	case "custodi":
		return p.parseGuardStatement()
	case "adfirma":
		return p.parseAssertStatement()
	case "redde":
		return p.parseReturnStatement()
	case "iace":
		return p.parseThrowStatement(false)
	case "mori":
		return p.parseThrowStatement(true)
	case "frange":
		t := p.next()
		p.consumeSemi()
		return &ast.BreakStatement{Token: t}
	case "perge":
		t := p.next()
		p.consumeSemi()
		return &ast.ContinueStatement{Token: t}
	case "tempta":
		return p.parseTryStatement()
	case "cura":
		if p.inProbatio && (p.peekIsKw(1, "ante") || p.peekIsKw(1, "post")) {
			return p.parseTestHookDeclaration()
		}
		return p.parseCuraStatement()
	case "fac":
		return p.parseExplicitBlockStatement()
	case "scribe", "vide", "mone":
		return p.parseIOStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) consumeSemi() {
	if p.curIs(token.SEMI) {
		p.next()
	}
}

// looksLikeImport reports whether the upcoming tokens after "ex" form the
// "ex <source> importa ..." shape rather than a destructuring declaration or
// an iteration source. It scans without consuming: a bare identifier/string
// immediately followed by the "importa" keyword.
func (p *Parser) looksLikeImport() bool {
	n1 := p.cursor.Peek(1)
	if n1.Kind != token.IDENT && n1.Kind != token.STRING {
		return false
	}
	n2 := p.cursor.Peek(2)
	return n2.Kind == token.KEYWORD && n2.Keyword == "importa"
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(LOWEST)
	p.consumeSemi()
	return &ast.ExpressionStatement{Token: tok, Expr: expr}
}

func (p *Parser) parseVarKind(kw string) ast.VarKind {
	switch kw {
	case "fixum":
		return ast.VarFixum
	case "figendum":
		return ast.VarFigendum
	case "variandum":
		return ast.VarVariandum
	default:
		return ast.VarVaria
	}
}

func (p *Parser) parseVarDeclaration() ast.Statement {
	tok := p.next() // consume varia/fixum/figendum/variandum
	decl := &ast.VarDeclaration{Token: tok, Kind: p.parseVarKind(tok.Keyword)}

	switch {
	case p.curIs(token.LBRACE) || p.curIs(token.LBRACK):
		decl.Pattern = p.parseDestructurePattern()
	case p.looksLikeTypeFirst():
		// Type-first: "varia numerus x = 1;" (spec.md §4.3's
		// type-first lookahead).
		decl.Type = p.parseTypeAnnotation()
		decl.Name = p.expect(token.IDENT).Text
	default:
		decl.Name = p.expect(token.IDENT).Text
		if p.curIs(token.COLON) {
			p.next()
			decl.Type = p.parseTypeAnnotation()
		}
	}

	if p.curIs(token.ASSIGN) {
		p.next()
		decl.Value = p.parseExpression(ASSIGN)
	}
	p.consumeSemi()
	return decl
}

// looksLikeTypeFirst reports whether the upcoming identifier names a type
// rather than a binding, per spec.md §4.3's type-first lookahead: a known
// builtin type name, or any identifier immediately followed by another
// identifier, "<", or "[" — shapes a bare binding name can never precede.
func (p *Parser) looksLikeTypeFirst() bool {
	if !p.curIs(token.IDENT) {
		return false
	}
	if lexicon.IsBuiltinType(p.cur().Text) {
		return true
	}
	switch p.cursor.Peek(1).Kind {
	case token.IDENT, token.LT, token.LBRACK:
		return true
	}
	return false
}

func (p *Parser) parseDestructurePattern() *ast.DestructurePattern {
	tok := p.cur()
	if tok.Kind == token.LBRACK {
		return p.parseArrayPattern()
	}
	return p.parseObjectPattern()
}

func (p *Parser) parseArrayPattern() *ast.DestructurePattern {
	tok := p.expect(token.LBRACK)
	pat := &ast.DestructurePattern{Token: tok, IsArray: true}
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		if p.curIsKw("ceteri") {
			p.next()
			pat.Rest = p.expect(token.IDENT).Text
		} else if p.cur().Text == "_" && p.curIs(token.IDENT) {
			p.next()
			pat.Elements = append(pat.Elements, &ast.DestructurePattern{Token: tok, Skip: true})
		} else if p.curIs(token.LBRACK) || p.curIs(token.LBRACE) {
			pat.Elements = append(pat.Elements, p.parseDestructurePattern())
		} else {
			name := p.expect(token.IDENT).Text
			pat.Elements = append(pat.Elements, &ast.DestructurePattern{Token: tok, Name: name})
		}
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RBRACK)
	return pat
}

func (p *Parser) parseObjectPattern() *ast.DestructurePattern {
	tok := p.expect(token.LBRACE)
	pat := &ast.DestructurePattern{Token: tok, IsObject: true}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIsKw("ceteri") {
			p.next()
			pat.Rest = p.expect(token.IDENT).Text
		} else {
			key := p.expect(token.IDENT).Text
			field := &ast.PatternField{Key: key, Alias: key}
			switch {
			case p.curIsKw("ut"):
				p.next()
				field.Alias = p.expect(token.IDENT).Text
			case p.curIs(token.COLON):
				// "{ key: alias }" rename, e.g. "fixum { nomen: localName } = user;".
				p.next()
				field.Alias = p.expect(token.IDENT).Text
			}
			if p.curIs(token.ASSIGN) {
				p.next()
				field.Default = p.parseExpression(ASSIGN)
			}
			pat.Fields = append(pat.Fields, field)
		}
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return pat
}

func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	tok := p.cur()
	name := p.expect(token.IDENT).Text
	ta := &ast.TypeAnnotation{Token: tok, Name: name}

	if p.curIs(token.LT) {
		p.next()
		for !p.curIs(token.GT) && !p.curIs(token.EOF) {
			ta.TypeParameters = append(ta.TypeParameters, p.parseTypeAnnotation())
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.GT)
	}
	for p.curIs(token.LBRACK) && p.peekIs(1, token.RBRACK) {
		p.next()
		p.next()
		ta.ArrayShorthand = true
	}
	if p.curIs(token.QUESTION) {
		p.next()
		ta.Nullable = true
	}
	if p.curIsKw("aut") {
		union := []*ast.TypeAnnotation{ta}
		for p.curIsKw("aut") {
			p.next()
			union = append(union, p.parseTypeAnnotation())
		}
		return &ast.TypeAnnotation{Token: tok, Union: union}
	}
	return ta
}

func (p *Parser) parseParamList() []*ast.Parameter {
	p.expect(token.LPAREN)
	var params []*ast.Parameter
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		tok := p.cur()
		param := &ast.Parameter{Token: tok}
		if p.curIs(token.DOTDOT) || (p.curIs(token.KEYWORD) && p.cur().Keyword == "ceteri") {
			p.next()
			param.Rest = true
		}
		param.Name = p.expect(token.IDENT).Text
		if p.curIs(token.COLON) {
			p.next()
			param.Type = p.parseTypeAnnotation()
		}
		if p.curIs(token.ASSIGN) {
			p.next()
			param.DefaultValue = p.parseExpression(ASSIGN)
		}
		params = append(params, param)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseReturnVerb() ast.ReturnVerb {
	switch p.cur().Keyword {
	case "fiet":
		p.next()
		return ast.VerbFiet
	case "fiunt":
		p.next()
		return ast.VerbFiunt
	case "fient":
		p.next()
		return ast.VerbFient
	case "fit":
		p.next()
		return ast.VerbFit
	default:
		return ast.VerbFit
	}
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	tok := p.next() // functio
	name := p.expect(token.IDENT).Text
	params := p.parseParamList()
	verb := p.parseReturnVerb()
	var retType *ast.TypeAnnotation
	if !p.curIs(token.LBRACE) {
		retType = p.parseTypeAnnotation()
	}
	body := p.parseBlock()
	return &ast.FunctionDeclaration{Token: tok, Name: name, Params: params, Verb: verb, ReturnType: retType, Body: body}
}

func (p *Parser) parseVisibility() ast.Visibility {
	switch {
	case p.curIsKw("publicus"):
		p.next()
		return ast.VisibilityPublicus
	case p.curIsKw("privatus"):
		p.next()
		return ast.VisibilityPrivatus
	default:
		return ast.VisibilityDefault
	}
}

func (p *Parser) parseGenusDeclaration() ast.Statement {
	tok := p.next() // genus
	name := p.expect(token.IDENT).Text
	decl := &ast.GenusDeclaration{Token: tok, Name: name}

	if p.curIsKw("prae") {
		for p.curIsKw("prae") {
			p.next()
			p.expectKeyword("typus")
			tpTok := p.cur()
			tp := &ast.TypeParamDeclaration{Token: tpTok, Name: p.expect(token.IDENT).Text}
			if p.curIs(token.COLON) {
				p.next()
				tp.Constraint = p.parseTypeAnnotation()
			}
			decl.TypeParams = append(decl.TypeParams, tp)
			if p.curIs(token.COMMA) {
				p.next()
			}
		}
	}
	if p.curIsKw("pactum") {
		p.next()
		decl.Conforms = append(decl.Conforms, p.parseTypeAnnotation())
		for p.curIs(token.COMMA) {
			p.next()
			decl.Conforms = append(decl.Conforms, p.parseTypeAnnotation())
		}
	}

	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		start := p.cursor.Mark()
		p.parseGenusMember(decl)
		if p.cursor.Mark() == start {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseGenusMember(decl *ast.GenusDeclaration) {
	vis := p.parseVisibility()
	static := false
	if p.curIsKw("generis") {
		p.next()
		static = true
	}
	reactive := false
	if p.curIsKw("nexum") {
		p.next()
		reactive = true
	}

	if p.curIsKw("creo") {
		tok := p.next()
		params := p.parseParamList()
		body := p.parseBlock()
		decl.Methods = append(decl.Methods, &ast.MethodDeclaration{
			Token: tok, Visibility: vis, Static: static, IsConstructor: true,
			Params: params, Body: body,
		})
		return
	}
	if p.curIsKw("functio") {
		tok := p.next()
		// "functio creo" declares the constructor.
		isCtor := p.curIsKw("creo")
		var name string
		if isCtor {
			name = p.next().Text
		} else {
			name = p.expect(token.IDENT).Text
		}
		params := p.parseParamList()
		verb := p.parseReturnVerb()
		var retType *ast.TypeAnnotation
		if !p.curIs(token.LBRACE) {
			retType = p.parseTypeAnnotation()
		}
		body := p.parseBlock()
		decl.Methods = append(decl.Methods, &ast.MethodDeclaration{
			Token: tok, Visibility: vis, Static: static, IsConstructor: isCtor, Name: name,
			Params: params, Verb: verb, ReturnType: retType, Body: body,
		})
		return
	}

	// Field: Type name [: default] — spec.md §4.3's "Struct members"
	// algorithm: a type-then-name field with an optional default
	// introduced by ":" (not a second type annotation).
	tok := p.cur()
	fieldType := p.parseTypeAnnotation()
	name := p.expect(token.IDENT).Text
	field := &ast.FieldDeclaration{Token: tok, Visibility: vis, Static: static, Reactive: reactive, Name: name, Type: fieldType}
	if p.curIs(token.COLON) {
		p.next()
		field.Default = p.parseExpression(ASSIGN)
	}
	p.consumeSemi()
	decl.Fields = append(decl.Fields, field)
}

func (p *Parser) parsePactumDeclaration() ast.Statement {
	tok := p.next() // pactum
	name := p.expect(token.IDENT).Text
	decl := &ast.PactumDeclaration{Token: tok, Name: name}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		mtok := p.cur()
		p.expectKeyword("functio")
		mname := p.expect(token.IDENT).Text
		params := p.parseParamList()
		verb := p.parseReturnVerb()
		var retType *ast.TypeAnnotation
		if !p.curIs(token.SEMI) {
			retType = p.parseTypeAnnotation()
		}
		p.consumeSemi()
		decl.Methods = append(decl.Methods, &ast.PactumMethod{Token: mtok, Name: mname, Params: params, Verb: verb, ReturnType: retType})
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseTypeAliasDeclaration() ast.Statement {
	tok := p.next() // typus
	name := p.expect(token.IDENT).Text
	p.expect(token.ASSIGN)
	typ := p.parseTypeAnnotation()
	p.consumeSemi()
	return &ast.TypeAliasDeclaration{Token: tok, Name: name, Type: typ}
}

func (p *Parser) parseOrdoDeclaration() ast.Statement {
	tok := p.next() // ordo
	name := p.expect(token.IDENT).Text
	decl := &ast.OrdoDeclaration{Token: tok, Name: name}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		memberName := p.expect(token.IDENT).Text
		member := ast.EnumMember{Name: memberName}
		if p.curIs(token.ASSIGN) {
			p.next()
			member.Value = p.parseExpression(ASSIGN)
		}
		decl.Members = append(decl.Members, member)
		if p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseDiscretioDeclaration() ast.Statement {
	tok := p.next() // discretio
	name := p.expect(token.IDENT).Text
	decl := &ast.DiscretioDeclaration{Token: tok, Name: name}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		variantName := p.expect(token.IDENT).Text
		variant := ast.DiscretioVariant{Name: variantName}
		if p.curIs(token.LPAREN) {
			p.next()
			for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
				ftok := p.cur()
				fname := p.expect(token.IDENT).Text
				p.expect(token.COLON)
				ftype := p.parseTypeAnnotation()
				variant.Fields = append(variant.Fields, &ast.Parameter{Token: ftok, Name: fname, Type: ftype})
				if p.curIs(token.COMMA) {
					p.next()
				}
			}
			p.expect(token.RPAREN)
		}
		decl.Variants = append(decl.Variants, variant)
		if p.curIs(token.PIPE) || p.curIs(token.COMMA) {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	// Empty discretio (zero variants) is accepted without a diagnostic; see
	// DESIGN.md Open Question decisions.
	return decl
}

func (p *Parser) parseImportDeclaration() ast.Statement {
	tok := p.next() // ex
	var source string
	if p.curIs(token.STRING) {
		source = p.cur().Text
		p.next()
	} else {
		source = p.expect(token.IDENT).Text
	}
	p.expectKeyword("importa")
	decl := &ast.ImportDeclaration{Token: tok, Source: source}
	for {
		name := p.expect(token.IDENT).Text
		alias := name
		if p.curIsKw("ut") {
			p.next()
			alias = p.expect(token.IDENT).Text
		}
		decl.Names = append(decl.Names, name)
		decl.Aliases = append(decl.Aliases, alias)
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	p.consumeSemi()
	return decl
}

func (p *Parser) parseProbatioDeclaration() ast.Statement {
	tok := p.next() // probatio
	desc := p.expect(token.STRING).Text
	decl := &ast.ProbatioDeclaration{Token: tok, Description: desc}

	wasIn := p.inProbatio
	p.inProbatio = true
	defer func() { p.inProbatio = wasIn }()

	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIsKw("cura") {
			decl.Hooks = append(decl.Hooks, p.parseTestHookDeclaration().(*ast.TestHookDeclaration))
			continue
		}
		if p.curIsKw("casus") {
			ctok := p.next()
			cdesc := p.expect(token.STRING).Text
			body := p.parseBlock()
			decl.Cases = append(decl.Cases, &ast.TestCaseDeclaration{Token: ctok, Description: cdesc, Body: body})
			continue
		}
		p.next()
	}
	p.expect(token.RBRACE)
	return decl
}

func (p *Parser) parseTestHookDeclaration() ast.Statement {
	tok := p.next() // cura
	kind := ast.HookAnte
	if p.curIsKw("post") || p.cur().Text == "post" {
		kind = ast.HookPost
	}
	p.next() // ante/post
	body := p.parseBlock()
	return &ast.TestHookDeclaration{Token: tok, Kind: kind, Body: body}
}
