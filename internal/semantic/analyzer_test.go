package semantic_test

import (
	"testing"

	"github.com/faber-lang/faber/internal/parser"
	"github.com/faber-lang/faber/internal/semantic"
	"github.com/faber-lang/faber/pkg/ast"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, perrs, lerrs := parser.Parse(src)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	if len(lerrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lerrs)
	}
	return prog
}

func TestAnalyze_KnownIdentifierNoError(t *testing.T) {
	prog := parseProgram(t, `varia x: numerus = 1; scribe(x);`)
	_, errs := semantic.Analyze(prog, semantic.Context{FilePath: "<test>"})
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
}

func TestAnalyze_UnknownIdentifier(t *testing.T) {
	prog := parseProgram(t, `scribe(y);`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 1 || errs[0].Code != semantic.CodeUnknownIdentifier {
		t.Fatalf("expected one %s error, got %v", semantic.CodeUnknownIdentifier, errs)
	}
}

func TestAnalyze_ReassignImmutable(t *testing.T) {
	prog := parseProgram(t, `fixum x: numerus = 1; x = 2;`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 1 || errs[0].Code != semantic.CodeReassignImmutable {
		t.Fatalf("expected one %s error, got %v", semantic.CodeReassignImmutable, errs)
	}
}

func TestAnalyze_ReassignMutableIsFine(t *testing.T) {
	prog := parseProgram(t, `varia x: numerus = 1; x = 2;`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
}

func TestAnalyze_UnresolvedType(t *testing.T) {
	prog := parseProgram(t, `varia x: Nusquam = nihil;`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 1 || errs[0].Code != semantic.CodeUnresolvedType {
		t.Fatalf("expected one %s error, got %v", semantic.CodeUnresolvedType, errs)
	}
}

func TestAnalyze_BreakOutsideLoop(t *testing.T) {
	prog := parseProgram(t, `frange;`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 1 || errs[0].Code != semantic.CodeBreakOutsideLoop {
		t.Fatalf("expected one %s error, got %v", semantic.CodeBreakOutsideLoop, errs)
	}
}

func TestAnalyze_BreakInsideLoopIsFine(t *testing.T) {
	prog := parseProgram(t, `dum (verum) { frange; }`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
}

func TestAnalyze_StringEqualityHint(t *testing.T) {
	prog := parseProgram(t, `varia a: textus = "x"; varia b: textus = "y"; a == b;`)
	annotated, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	last := prog.Statements[len(prog.Statements)-1].(*ast.ExpressionStatement)
	bin := last.Expr.(*ast.BinaryExpression)
	if !annotated.Info.IsStringComparison(bin) {
		t.Fatalf("expected a == b to be flagged as a string comparison")
	}
}

func TestAnalyze_NumericEqualityHasNoStringHint(t *testing.T) {
	prog := parseProgram(t, `varia a: numerus = 1; varia b: numerus = 2; a == b;`)
	annotated, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	last := prog.Statements[len(prog.Statements)-1].(*ast.ExpressionStatement)
	bin := last.Expr.(*ast.BinaryExpression)
	if annotated.Info.IsStringComparison(bin) {
		t.Fatalf("did not expect a == b over numerus operands to be flagged as a string comparison")
	}
}

func TestAnalyze_DuplicateCaseLabelsUnderCollationAreFlagged(t *testing.T) {
	prog := parseProgram(t, `
varia status = "active";
elige (status) {
    casus "café" { scribe(1); }
    casus "café" { scribe(2); }
}
`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	found := false
	for _, e := range errs {
		if e.Code == semantic.CodeDuplicateCaseLabel {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a %s error for collation-duplicate case labels, got %v", semantic.CodeDuplicateCaseLabel, errs)
	}
}

func TestAnalyze_DistinctCaseLabelsNotFlagged(t *testing.T) {
	prog := parseProgram(t, `
varia status = "active";
elige (status) {
    casus "active" { scribe(1); }
    casus "inactive" { scribe(2); }
}
`)
	_, errs := semantic.Analyze(prog, semantic.Context{})
	for _, e := range errs {
		if e.Code == semantic.CodeDuplicateCaseLabel {
			t.Fatalf("did not expect distinct case labels to be flagged, got %v", errs)
		}
	}
}

func TestAnalyze_IdentifierKindRecorded(t *testing.T) {
	prog := parseProgram(t, `varia x: numerus = 1; scribe(x);`)
	annotated, errs := semantic.Analyze(prog, semantic.Context{})
	if len(errs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", errs)
	}
	io := prog.Statements[1].(*ast.IOStatement)
	id := io.Arguments[0].(*ast.Identifier)
	kind, ok := annotated.Info.IdentifierKind(id)
	if !ok || kind != semantic.SymbolGlobal {
		t.Fatalf("expected top-level x to be recorded as global, got %v (ok=%v)", kind, ok)
	}
}
