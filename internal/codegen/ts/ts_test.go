package ts_test

import (
	"strings"
	"testing"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/internal/codegen/ts"
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
	out, errs := codegen.Generate(annotated.Program, annotated.Info, ts.New(), codegen.Options{})
	if len(errs) != 0 {
		t.Fatalf("Generate: unexpected errors: %v", errs)
	}
	return out
}

func TestVarDeclaration_FixumIsConstVariaIsLet(t *testing.T) {
	out := generate(t, `varia x: numerus = 1; fixum y: numerus = 2;`)
	if !strings.Contains(out, "let x: number = 1;") {
		t.Fatalf("expected varia to lower to let, got:\n%s", out)
	}
	if !strings.Contains(out, "const y: number = 2;") {
		t.Fatalf("expected fixum to lower to const, got:\n%s", out)
	}
}

func TestIOStatement_VerbsMapToConsoleMethods(t *testing.T) {
	out := generate(t, `scribe(1); vide(2); mone(3);`)
	for _, want := range []string{"console.log(1);", "console.debug(2);", "console.warn(3);"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestThrowStatement_IaceVsMori(t *testing.T) {
	out := generate(t, `iace "boom"; mori "fatal";`)
	if !strings.Contains(out, `throw "boom";`) {
		t.Fatalf("expected iace to lower to a plain throw, got:\n%s", out)
	}
	if !strings.Contains(out, "fatal: true") {
		t.Fatalf("expected mori to lower to a fatal-tagged throw, got:\n%s", out)
	}
}

func TestDiscretioDeclaration_VariantsBecomeDiscriminatedUnion(t *testing.T) {
	out := generate(t, `
discretio Forma {
    Circulus(radius: numerus)
    Quadratum(latus: numerus)
}
`)
	if !strings.Contains(out, `type Forma =`) {
		t.Fatalf("expected a type alias for Forma, got:\n%s", out)
	}
	if !strings.Contains(out, `kind: "Circulus"`) || !strings.Contains(out, `kind: "Quadratum"`) {
		t.Fatalf("expected both variants to carry a kind discriminant, got:\n%s", out)
	}
}

func TestDiscretio_EmptyVariantsLowersToNever(t *testing.T) {
	out := generate(t, `discretio Vacuum { }`)
	if !strings.Contains(out, "type Vacuum = never;") {
		t.Fatalf("expected empty discretio to lower to never, got:\n%s", out)
	}
}

func TestDiscerne_LowersToSwitchOnKind(t *testing.T) {
	out := generate(t, `
discretio Forma {
    Circulus(radius: numerus)
    Quadratum(latus: numerus)
}
varia f: Forma;
discerne (f) {
    casus Circulus(r) { scribe(r); }
    casus Quadratum(l) { scribe(l); }
}
`)
	if !strings.Contains(out, "switch (f.kind) {") {
		t.Fatalf("expected a switch on f.kind, got:\n%s", out)
	}
	if !strings.Contains(out, `case "Circulus": {`) {
		t.Fatalf("expected a case for Circulus, got:\n%s", out)
	}
	if !strings.Contains(out, "const { r } = f;") {
		t.Fatalf("expected bindings destructured from the subject, got:\n%s", out)
	}
}

func TestCura_LowersToTryFinallyWithOptionalClose(t *testing.T) {
	out := generate(t, `cura h = 1 { scribe(h); }`)
	if !strings.Contains(out, "const h = ") || !strings.Contains(out, "finally {") || !strings.Contains(out, "h.close?.();") {
		t.Fatalf("expected cura to lower to try/finally with optional close, got:\n%s", out)
	}
}

func TestAssertStatement_LowersToThrowOnFailure(t *testing.T) {
	out := generate(t, `adfirma(verum);`)
	if !strings.Contains(out, "if (!(true)) throw new Error(") {
		t.Fatalf("expected adfirma to lower to a negated guard that throws, got:\n%s", out)
	}
}

func TestObjectPattern_ColonRenameLowersToColonAlias(t *testing.T) {
	out := generate(t, `varia user = { nomen: "x" }; fixum { nomen: localName } = user;`)
	if !strings.Contains(out, "const { nomen: localName } = user;") {
		t.Fatalf("expected colon-rename destructuring, got:\n%s", out)
	}
}

func TestGuardStatement_LowersToNegatedIf(t *testing.T) {
	out := generate(t, `custodi (verum) aliter { scribe(0); }`)
	if !strings.Contains(out, "if (!(true)) {") {
		t.Fatalf("expected custodi to lower to a negated if, got:\n%s", out)
	}
}
