package zig_test

import (
	"strings"
	"testing"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/internal/codegen/zig"
	"github.com/faber-lang/faber/internal/parser"
	"github.com/faber-lang/faber/internal/semantic"
	"github.com/faber-lang/faber/pkg/ast"
	"github.com/faber-lang/faber/pkg/token"
)

func generate(t *testing.T, program *ast.Program, info *semantic.Info) string {
	t.Helper()
	if info == nil {
		info = semantic.NewInfo()
	}
	out, errs := codegen.Generate(program, info, zig.New(), codegen.Options{})
	if len(errs) != 0 {
		t.Fatalf("Generate: unexpected errors: %v", errs)
	}
	return out
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Value: name}
}

func TestThrowStatement_IaceVsMori(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.ThrowStatement{Value: ident("boom"), Fatal: false},
		&ast.ThrowStatement{Value: ident("boom"), Fatal: true},
	}}
	out := generate(t, program, nil)

	if !strings.Contains(out, "std.log.err") || !strings.Contains(out, "return error.Thrown;") {
		t.Fatalf("iace throw did not lower to std.log.err + return error.Thrown, got:\n%s", out)
	}
	if !strings.Contains(out, "std.debug.panic") {
		t.Fatalf("mori throw did not lower to std.debug.panic, got:\n%s", out)
	}
}

func TestIOStatement_VerbsMapToDistinctCalls(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.IOStatement{Verb: "scribe", Arguments: []ast.Expression{ident("x")}},
		&ast.IOStatement{Verb: "vide", Arguments: []ast.Expression{ident("x")}},
		&ast.IOStatement{Verb: "mone", Arguments: []ast.Expression{ident("x")}},
	}}
	out := generate(t, program, nil)

	for _, want := range []string{"std.debug.print", "std.log.debug", "std.log.warn"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestStringEquality_LowersToMemEql(t *testing.T) {
	src := `
varia a: textus = "x";
varia b: textus = "y";
scribe(a == b);
`
	program, parseErrs, lexErrs := parser.Parse(src)
	if len(parseErrs) != 0 || len(lexErrs) != 0 {
		t.Fatalf("unexpected parse/lex errors: %v %v", parseErrs, lexErrs)
	}
	annotated, semErrs := semantic.Analyze(program, semantic.Context{})
	if len(semErrs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", semErrs)
	}

	out := generate(t, annotated.Program, annotated.Info)
	if !strings.Contains(out, "std.mem.eql(u8, a, b)") {
		t.Fatalf("expected std.mem.eql lowering for string equality, got:\n%s", out)
	}
}

func TestModuleScopeFixumGetsMPrefix(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.VarDeclaration{Kind: ast.VarFixum, Name: "limit", Value: &ast.IntegerLiteral{Token: token.New(token.NUMBER, "10", token.Position{})}},
	}}
	out := generate(t, program, nil)
	if !strings.Contains(out, "m_limit") {
		t.Fatalf("expected module-scope fixum to get m_ prefix, got:\n%s", out)
	}
}

func TestNewExpressionFrom_PlainCopy(t *testing.T) {
	program := &ast.Program{Statements: []ast.Statement{
		&ast.VarDeclaration{Kind: ast.VarVaria, Name: "clone", Value: &ast.NewExpression{From: ident("original")}},
	}}
	out := generate(t, program, nil)
	if !strings.Contains(out, "= original;") {
		t.Fatalf("expected novum-de to lower to a plain value copy, got:\n%s", out)
	}
}

func TestStringConcat_LowersToPlusPlus(t *testing.T) {
	src := `
varia a: textus = "x";
varia b: textus = "y";
varia c = a + b;
`
	program, parseErrs, lexErrs := parser.Parse(src)
	if len(parseErrs) != 0 || len(lexErrs) != 0 {
		t.Fatalf("unexpected parse/lex errors: %v %v", parseErrs, lexErrs)
	}
	annotated, semErrs := semantic.Analyze(program, semantic.Context{})
	if len(semErrs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", semErrs)
	}

	out := generate(t, annotated.Program, annotated.Info)
	if !strings.Contains(out, "a ++ b") {
		t.Fatalf("expected string concatenation to lower to ++, got:\n%s", out)
	}
}
