package parser_test

import (
	"testing"

	"github.com/faber-lang/faber/internal/parser"
	"github.com/faber-lang/faber/pkg/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, perrs, lerrs := parser.Parse(src)
	if len(lerrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lerrs)
	}
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	return prog
}

func TestParseVarDeclaration(t *testing.T) {
	prog := parseOK(t, `varia x: numerus = 1;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VarDeclaration, got %T", prog.Statements[0])
	}
	if decl.Kind != ast.VarVaria || decl.Name != "x" || decl.Type.Name != "numerus" {
		t.Fatalf("unexpected decl shape: %+v", decl)
	}
}

func TestParseVarDeclarationKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.VarKind
	}{
		{`varia a: numerus = 1;`, ast.VarVaria},
		{`fixum a: numerus = 1;`, ast.VarFixum},
		{`figendum a: numerus = 1;`, ast.VarFigendum},
		{`variandum a: numerus = 1;`, ast.VarVariandum},
	}
	for _, tt := range tests {
		prog := parseOK(t, tt.src)
		decl := prog.Statements[0].(*ast.VarDeclaration)
		if decl.Kind != tt.kind {
			t.Errorf("%s: Kind = %v, want %v", tt.src, decl.Kind, tt.kind)
		}
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseOK(t, `functio adde(a: numerus, b: numerus) fit numerus { redde a + b; }`)
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", prog.Statements[0])
	}
	if fn.Name != "adde" || len(fn.Params) != 2 || fn.ReturnType.Name != "numerus" {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected *ast.ReturnStatement, got %T", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected a + b, got %+v", ret.Value)
	}
}

func TestParseIOStatementRequiresParens(t *testing.T) {
	prog := parseOK(t, `scribe(1, 2);`)
	io, ok := prog.Statements[0].(*ast.IOStatement)
	if !ok {
		t.Fatalf("expected *ast.IOStatement, got %T", prog.Statements[0])
	}
	if io.Verb != "scribe" || len(io.Arguments) != 2 {
		t.Fatalf("unexpected io shape: %+v", io)
	}
}

func TestParseIfElseChain(t *testing.T) {
	prog := parseOK(t, `si (verum) { scribe(1); } aliter si (falsum) { scribe(2); } aliter { scribe(3); }`)
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected *ast.IfStatement, got %T", prog.Statements[0])
	}
	elseIf, ok := stmt.Else.(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected else branch to be another *ast.IfStatement, got %T", stmt.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockStatement); !ok {
		t.Fatalf("expected final else to be a block, got %T", elseIf.Else)
	}
}

func TestParseWhileAndBreakContinue(t *testing.T) {
	prog := parseOK(t, `dum (verum) { frange; perge; }`)
	stmt := prog.Statements[0].(*ast.WhileStatement)
	if len(stmt.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements in while body, got %d", len(stmt.Body.Statements))
	}
	if _, ok := stmt.Body.Statements[0].(*ast.BreakStatement); !ok {
		t.Fatalf("expected *ast.BreakStatement, got %T", stmt.Body.Statements[0])
	}
	if _, ok := stmt.Body.Statements[1].(*ast.ContinueStatement); !ok {
		t.Fatalf("expected *ast.ContinueStatement, got %T", stmt.Body.Statements[1])
	}
}

func TestParseDiscretioAndDiscerne(t *testing.T) {
	prog := parseOK(t, `
discretio Forma {
    Circulus(radius: numerus)
    Quadratum(latus: numerus)
}
varia f: Forma;
discerne (f) {
    casus Circulus(r) { scribe(r); }
    casus Quadratum(l) { scribe(l); }
    aliter { scribe(0); }
}
`)
	decl, ok := prog.Statements[0].(*ast.DiscretioDeclaration)
	if !ok {
		t.Fatalf("expected *ast.DiscretioDeclaration, got %T", prog.Statements[0])
	}
	if decl.Name != "Forma" || len(decl.Variants) != 2 {
		t.Fatalf("unexpected discretio shape: %+v", decl)
	}

	switchStmt, ok := prog.Statements[2].(*ast.DiscerneStatement)
	if !ok {
		t.Fatalf("expected *ast.DiscerneStatement, got %T", prog.Statements[2])
	}
	if len(switchStmt.Cases) != 2 || switchStmt.DefaultBody == nil {
		t.Fatalf("unexpected discerne shape: %+v", switchStmt)
	}
	if switchStmt.Cases[0].VariantName != "Circulus" || switchStmt.Cases[0].Bindings[0] != "r" {
		t.Fatalf("unexpected first case shape: %+v", switchStmt.Cases[0])
	}
}

func TestParseCuraStatementHasNoParens(t *testing.T) {
	prog := parseOK(t, `cura h = 1 { scribe(h); }`)
	stmt, ok := prog.Statements[0].(*ast.CuraStatement)
	if !ok {
		t.Fatalf("expected *ast.CuraStatement, got %T", prog.Statements[0])
	}
	if stmt.Binding != "h" {
		t.Fatalf("unexpected binding: %q", stmt.Binding)
	}
	if _, ok := stmt.Value.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected integer literal value, got %T", stmt.Value)
	}
}

func TestParseLambdaNoParensNoTypes(t *testing.T) {
	prog := parseOK(t, `varia f = pro x, y: x + y;`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	lambda, ok := decl.Value.(*ast.LambdaExpression)
	if !ok {
		t.Fatalf("expected *ast.LambdaExpression, got %T", decl.Value)
	}
	if len(lambda.Params) != 2 || lambda.Params[0].Name != "x" || lambda.Params[1].Name != "y" {
		t.Fatalf("unexpected lambda params: %+v", lambda.Params)
	}
	if lambda.Async {
		t.Fatal("pro lambda should not be async")
	}
}

func TestParseAsyncLambdaFiet(t *testing.T) {
	prog := parseOK(t, `varia f = fiet x: x;`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	lambda := decl.Value.(*ast.LambdaExpression)
	if !lambda.Async {
		t.Fatal("fiet lambda should be async")
	}
}

func TestParseArrayAndObjectLiterals(t *testing.T) {
	prog := parseOK(t, `varia xs = [1, 2, 3]; varia o = { a: 1, b: 2 };`)
	xs := prog.Statements[0].(*ast.VarDeclaration).Value.(*ast.ArrayLiteral)
	if len(xs.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(xs.Elements))
	}
	obj := prog.Statements[1].(*ast.VarDeclaration).Value.(*ast.ObjectLiteral)
	if len(obj.Properties) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Properties))
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := parseOK(t, `tempta { iace "boom"; } cape (e) { scribe(e); } demum { scribe(0); }`)
	stmt, ok := prog.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected *ast.TryStatement, got %T", prog.Statements[0])
	}
	if stmt.CatchName != "e" || stmt.Handler == nil || stmt.Finally == nil {
		t.Fatalf("unexpected try shape: %+v", stmt)
	}
}

func TestParseThrowFatalVsRecoverable(t *testing.T) {
	prog := parseOK(t, `iace "oops"; mori "fatal";`)
	first := prog.Statements[0].(*ast.ThrowStatement)
	second := prog.Statements[1].(*ast.ThrowStatement)
	if first.Fatal {
		t.Fatal("iace should not be fatal")
	}
	if !second.Fatal {
		t.Fatal("mori should be fatal")
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parseOK(t, `varia x = 1 + 2 * 3;`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	bin := decl.Value.(*ast.BinaryExpression)
	if bin.Operator != "+" {
		t.Fatalf("expected top-level + , got %q", bin.Operator)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || rhs.Operator != "*" {
		t.Fatalf("expected right-hand side to be a *, got %+v", bin.Right)
	}
}

func TestParseCallExpression(t *testing.T) {
	prog := parseOK(t, `varia x = adde(1, 2);`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	call, ok := decl.Value.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", decl.Value)
	}
	if len(call.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(call.Arguments))
	}
}

func TestParseErrorRecoveryReportsDiagnosticAndContinues(t *testing.T) {
	prog, perrs, lerrs := parser.Parse(`varia x: numerus = ; scribe(1);`)
	if len(lerrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lerrs)
	}
	if len(perrs) == 0 {
		t.Fatal("expected at least one parse error for a missing expression")
	}
	if prog == nil {
		t.Fatal("expected a non-nil program even after a recoverable parse error")
	}
}

func TestParseGenusFieldIsTypeThenNameWithColonDefault(t *testing.T) {
	prog := parseOK(t, `
genus persona {
    textus nomen: "anon"
    numerus aetas: 0
    functio creo() { si ego.aetas < 0 { ego.aetas = 0 } }
}
`)
	decl, ok := prog.Statements[0].(*ast.GenusDeclaration)
	if !ok {
		t.Fatalf("expected *ast.GenusDeclaration, got %T", prog.Statements[0])
	}
	if len(decl.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d: %+v", len(decl.Fields), decl.Fields)
	}
	nomen := decl.Fields[0]
	if nomen.Name != "nomen" || nomen.Type == nil || nomen.Type.Name != "textus" {
		t.Fatalf("unexpected nomen field shape: %+v", nomen)
	}
	if _, ok := nomen.Default.(*ast.StringLiteral); !ok {
		t.Fatalf("expected string default, got %T", nomen.Default)
	}
	aetas := decl.Fields[1]
	if aetas.Name != "aetas" || aetas.Type == nil || aetas.Type.Name != "numerus" {
		t.Fatalf("unexpected aetas field shape: %+v", aetas)
	}
	if _, ok := aetas.Default.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected integer default, got %T", aetas.Default)
	}
	if len(decl.Methods) != 1 || decl.Methods[0].Name != "creo" {
		t.Fatalf("expected one method named creo, got %+v", decl.Methods)
	}
}

func TestParseObjectPatternColonRename(t *testing.T) {
	prog := parseOK(t, `fixum { nomen: localName } = user;`)
	decl, ok := prog.Statements[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VarDeclaration, got %T", prog.Statements[0])
	}
	if decl.Pattern == nil || !decl.Pattern.IsObject || len(decl.Pattern.Fields) != 1 {
		t.Fatalf("unexpected pattern shape: %+v", decl.Pattern)
	}
	field := decl.Pattern.Fields[0]
	if field.Key != "nomen" || field.Alias != "localName" {
		t.Fatalf("unexpected field shape: %+v", field)
	}
}

func TestParseVarDeclarationTypeFirst(t *testing.T) {
	prog := parseOK(t, `varia numerus x = 1;`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	if decl.Name != "x" || decl.Type == nil || decl.Type.Name != "numerus" {
		t.Fatalf("unexpected decl shape: %+v", decl)
	}
}

func TestParseEmptyDiscretioIsAccepted(t *testing.T) {
	prog, perrs, lerrs := parser.Parse(`discretio Vacuum { }`)
	if len(lerrs) != 0 || len(perrs) != 0 {
		t.Fatalf("expected no diagnostics for an empty discretio, got parse=%v lex=%v", perrs, lerrs)
	}
	decl := prog.Statements[0].(*ast.DiscretioDeclaration)
	if len(decl.Variants) != 0 {
		t.Fatalf("expected zero variants, got %d", len(decl.Variants))
	}
}
