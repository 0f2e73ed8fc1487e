// Package parser implements a recursive-descent / Pratt parser for
// faber-romanus source, producing a pkg/ast.Program and a list of
// non-fatal diagnostics (it never panics on malformed input).
package parser

import (
	"github.com/faber-lang/faber/internal/lexer"
	"github.com/faber-lang/faber/pkg/ast"
	"github.com/faber-lang/faber/pkg/token"
)

// Parser is a single-use recursive-descent parser over one token stream.
type Parser struct {
	l      *lexer.Lexer
	cursor *TokenCursor
	errors []*Error

	// inProbatio is set while parsing the body of a probatio suite so that
	// a leading "cura ante"/"cura post" is parsed as a test hook instead of
	// the general scoped-resource "cura" statement.
	inProbatio bool
}

// New creates a Parser over l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{l: l, cursor: NewTokenCursor(l)}
}

// Parse lexes and parses src to completion and returns the resulting program
// together with the parse and lex diagnostics; Parse never panics.
func Parse(src string) (*ast.Program, []*Error, []*lexer.Error) {
	l := lexer.New(src)
	p := New(l)
	prog := p.ParseProgram()
	return prog, p.Errors(), l.Errors()
}

// Errors returns every diagnostic accumulated during parsing.
func (p *Parser) Errors() []*Error {
	return p.errors
}

func (p *Parser) addError(code, msg string) {
	p.errors = append(p.errors, &Error{Code: code, Message: msg, Pos: p.cursor.Current().Pos})
}

func (p *Parser) addErrorAt(code, msg string, pos token.Position) {
	p.errors = append(p.errors, &Error{Code: code, Message: msg, Pos: pos})
}

func (p *Parser) cur() token.Token  { return p.cursor.Current() }
func (p *Parser) next() token.Token { return p.cursor.Advance() }

func (p *Parser) curIs(k token.Kind) bool  { return p.cursor.Is(k) }
func (p *Parser) curIsKw(kw string) bool   { return p.cursor.IsKeyword(kw) }
func (p *Parser) peekIs(n int, k token.Kind) bool {
	return p.cursor.Peek(n).Kind == k
}
func (p *Parser) peekIsKw(n int, kw string) bool {
	t := p.cursor.Peek(n)
	return t.Kind == token.KEYWORD && t.Keyword == kw
}

// expect advances past the current token if it has kind k; otherwise it
// records a diagnostic but still advances, guaranteeing forward progress
// (the expect()-always-advances invariant, P3 in spec.md §8).
func (p *Parser) expect(k token.Kind) token.Token {
	tok := p.cur()
	if tok.Kind != k {
		p.addError(CodeExpectedToken, "expected "+k.String()+", got "+tok.Kind.String())
	}
	p.next()
	return tok
}

func (p *Parser) expectKeyword(kw string) token.Token {
	tok := p.cur()
	if !(tok.Kind == token.KEYWORD && tok.Keyword == kw) {
		p.addError(CodeExpectedToken, "expected '"+kw+"', got "+tok.Text)
	}
	p.next()
	return tok
}

// ParseProgram parses the entire token stream into a Program without
// aborting on malformed statements: their diagnostics are recorded and
// parsing resumes wherever the statement parser stopped, and a statement
// that consumed no tokens has one token skipped to force progress.
// synchronize is not called, so no tokens are skipped to a statement boundary.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curIs(token.EOF) {
		start := p.cursor.Mark()
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.cursor.Mark() == start {
			// Guard against an accidental infinite loop: force progress.
			p.next()
		}
	}
	return prog
}

// synchronize discards tokens until a plausible statement boundary (a ';'
// just consumed, or a token that starts a new declaration/statement) so
// that one malformed statement does not cascade into spurious errors for
// everything after it.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			p.next()
			return
		}
		if p.curIs(token.RBRACE) {
			return
		}
		if p.curIs(token.KEYWORD) {
			switch p.cur().Keyword {
			case "varia", "fixum", "figendum", "variandum", "functio", "genus",
				"pactum", "typus", "ordo", "discretio", "si", "dum", "ex",
				"redde", "iace", "mori", "elige", "discerne":
				return
			}
		}
		p.next()
	}
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	tok := p.cur()
	block := &ast.BlockStatement{Token: tok}
	p.expect(token.LBRACE)
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		start := p.cursor.Mark()
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.cursor.Mark() == start {
			p.next()
		}
	}
	p.expect(token.RBRACE)
	return block
}
