package py_test

import (
	"strings"
	"testing"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/internal/codegen/py"
	"github.com/faber-lang/faber/internal/parser"
	"github.com/faber-lang/faber/internal/semantic"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	program, parseErrs, lexErrs := parser.Parse(src)
	if len(parseErrs) != 0 || len(lexErrs) != 0 {
		t.Fatalf("unexpected parse/lex errors: %v %v", parseErrs, lexErrs)
	}
	annotated, semErrs := semantic.Analyze(program, semantic.Context{})
	if len(semErrs) != 0 {
		t.Fatalf("unexpected semantic errors: %v", semErrs)
	}
	out, errs := codegen.Generate(annotated.Program, annotated.Info, py.New(), codegen.Options{})
	if len(errs) != 0 {
		t.Fatalf("Generate: unexpected errors: %v", errs)
	}
	return out
}

func TestDiscretio_VariantsCarryKindTag(t *testing.T) {
	src := `
discretio Forma {
    Circulus(radius: numerus)
    Quadratum(latus: numerus)
}
`
	out := generate(t, src)
	if !strings.Contains(out, `kind: ClassVar[str] = "Circulus"`) {
		t.Fatalf("expected Circulus variant to carry a kind tag, got:\n%s", out)
	}
	if !strings.Contains(out, `kind: ClassVar[str] = "Quadratum"`) {
		t.Fatalf("expected Quadratum variant to carry a kind tag, got:\n%s", out)
	}
}

func TestDiscerne_MatchesOnKindAndUnpacksPositionally(t *testing.T) {
	src := `
discretio Forma {
    Circulus(radius: numerus)
    Quadratum(latus: numerus)
}
varia f: Forma;
discerne (f) {
    casus Circulus(r) { scribe(r); }
    casus Quadratum(l) { scribe(l); }
}
`
	out := generate(t, src)
	if !strings.Contains(out, `match f.kind:`) {
		t.Fatalf("expected a match on f.kind, got:\n%s", out)
	}
	if !strings.Contains(out, `case "Circulus":`) {
		t.Fatalf("expected a case for Circulus, got:\n%s", out)
	}
	if !strings.Contains(out, "dataclasses.astuple(f)") {
		t.Fatalf("expected positional unpacking via dataclasses.astuple, got:\n%s", out)
	}
}

func TestCura_LowersToWithStatement(t *testing.T) {
	src := `
cura h = 1 {
    scribe(h);
}
`
	out := generate(t, src)
	if !strings.Contains(out, "with ") || !strings.Contains(out, " as h:") {
		t.Fatalf("expected cura to lower to a with-statement, got:\n%s", out)
	}
}

func TestLambdaWithBlockBody_EvaluatesFinalReturnOnly(t *testing.T) {
	src := `
varia f = pro x: {
    varia y: numerus = x;
    redde y;
};
`
	out := generate(t, src)
	if !strings.Contains(out, "lambda x: y") {
		t.Fatalf("expected lambda body to evaluate only the final return expression, got:\n%s", out)
	}
}
