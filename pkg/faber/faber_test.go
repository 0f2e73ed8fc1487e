package faber_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/pkg/faber"
)

const source = `
varia x: numerus = 1;
fixum y: numerus = 2;
scribe(x + y);
`

func TestTokenize(t *testing.T) {
	tokens, errs := faber.Tokenize(source)
	if len(errs) != 0 {
		t.Fatalf("Tokenize: unexpected errors: %v", errs)
	}
	if len(tokens) == 0 {
		t.Fatal("Tokenize: expected at least one token")
	}
}

func TestParse(t *testing.T) {
	program, parseErrs, lexErrs := faber.Parse(source)
	if len(lexErrs) != 0 {
		t.Fatalf("Parse: unexpected lex errors: %v", lexErrs)
	}
	if len(parseErrs) != 0 {
		t.Fatalf("Parse: unexpected parse errors: %v", parseErrs)
	}
	if program == nil || len(program.Statements) == 0 {
		t.Fatal("Parse: expected a non-empty program")
	}
}

func TestCompile_AllTargets(t *testing.T) {
	for name := range faber.Backends() {
		name := name
		t.Run(name, func(t *testing.T) {
			res := faber.Compile("fixture.fbr", source, name, codegen.Options{})
			if res.Diagnostics.HasErrors() {
				t.Fatalf("Compile(%s): unexpected diagnostics: %+v", name, res.Diagnostics)
			}
			snaps.MatchSnapshot(t, name+"_output", res.Text)
		})
	}
}

func TestCompile_UnknownTarget(t *testing.T) {
	res := faber.Compile("fixture.fbr", source, "cobol", codegen.Options{})
	if !res.Diagnostics.HasErrors() {
		t.Fatal("Compile: expected a diagnostic for an unknown target")
	}
}

func TestCompile_LexError(t *testing.T) {
	res := faber.Compile("fixture.fbr", "varia x = \"unterminated", "ts", codegen.Options{})
	if !res.Diagnostics.HasErrors() {
		t.Fatal("Compile: expected a lex diagnostic for an unterminated string")
	}
}
