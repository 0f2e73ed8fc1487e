// Package faber is the public facade spec.md §6 describes: four
// programmatic entry points (tokenize/parse/analyze/generate) wrapping the
// internal pipeline stages, named and shaped after the teacher's
// pkg/dwscript test-file API surface.
package faber

import (
	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/internal/codegen/py"
	"github.com/faber-lang/faber/internal/codegen/ts"
	"github.com/faber-lang/faber/internal/codegen/zig"
	"github.com/faber-lang/faber/internal/lexer"
	"github.com/faber-lang/faber/internal/parser"
	"github.com/faber-lang/faber/internal/semantic"
	"github.com/faber-lang/faber/pkg/ast"
	"github.com/faber-lang/faber/pkg/token"
)

// Tokenize runs the lexer alone, for the "tokenize" tooling surface
// (spec.md §6: tokenize(text) -> (tokens, errors)).
func Tokenize(text string) ([]token.Token, []*lexer.Error) {
	return lexer.TokenizeAll(text)
}

// Parse runs the lexer and parser, returning the AST plus any diagnostics
// from either stage (spec.md §6: parse(tokens) -> (program, errors); here
// taking source text directly, since internal/parser.Parse already owns
// tokenization internally).
func Parse(src string) (*ast.Program, []*parser.Error, []*lexer.Error) {
	return parser.Parse(src)
}

// Analyze runs the semantic annotator over a parsed program (spec.md §6:
// analyze(program, ctx) -> (annotated, errors)).
func Analyze(program *ast.Program, ctx semantic.Context) (*semantic.AnnotatedProgram, []*semantic.Error) {
	return semantic.Analyze(program, ctx)
}

// Backends lists every target dialect this facade can generate, keyed by
// the name passed on the CLI or in a config file.
func Backends() map[string]codegen.Backend {
	return map[string]codegen.Backend{
		"ts":  ts.New(),
		"zig": zig.New(),
		"py":  py.New(),
	}
}

// Backend resolves a target name to its Backend, or nil if unknown.
func Backend(name string) codegen.Backend {
	return Backends()[name]
}

// Generate runs a code generation backend over an annotated program
// (spec.md §6: generate(program, opts) -> text).
func Generate(program *ast.Program, info *semantic.Info, backend codegen.Backend, opts codegen.Options) (string, []*codegen.Error) {
	return codegen.Generate(program, info, backend, opts)
}

// Diagnostics bundles every diagnostic produced while compiling one source,
// split by stage so a caller can tell where the pipeline stopped.
type Diagnostics struct {
	Lex      []*lexer.Error
	Parse    []*parser.Error
	Semantic []*semantic.Error
	Codegen  []*codegen.Error
}

// HasErrors reports whether any stage recorded a diagnostic.
func (d Diagnostics) HasErrors() bool {
	return len(d.Lex) > 0 || len(d.Parse) > 0 || len(d.Semantic) > 0 || len(d.Codegen) > 0
}

// Result is the outcome of compiling one source file to one target: either
// Text is populated, or Diagnostics.HasErrors() is true (or both, since a
// partial AST still generates best-effort placeholder text per
// codegen.Generate's "never panics" contract).
type Result struct {
	File        string
	Text        string
	Diagnostics Diagnostics
	ReadErr     error // set by CompileBatch when the file itself could not be read
}

// Compile runs the full tokenize -> parse -> analyze -> generate pipeline
// over one source file's text. It stops early only for an unknown target or
// when the parser returns no program; lex and parse diagnostics do not stop
// it, so a partially recovered AST is still analyzed and generated and Text
// holds best-effort output alongside the diagnostics.
func Compile(file, src, target string, opts codegen.Options) Result {
	res := Result{File: file}

	backend := Backend(target)
	if backend == nil {
		res.Diagnostics.Codegen = []*codegen.Error{{
			Code:    codegen.CodeUnsupported,
			Message: "unknown target: " + target,
		}}
		return res
	}

	program, parseErrs, lexErrs := Parse(src)
	res.Diagnostics.Parse = parseErrs
	res.Diagnostics.Lex = lexErrs
	if program == nil {
		return res
	}

	annotated, semErrs := Analyze(program, semantic.Context{FilePath: file})
	res.Diagnostics.Semantic = semErrs

	text, genErrs := Generate(annotated.Program, annotated.Info, backend, opts)
	res.Diagnostics.Codegen = genErrs
	res.Text = text
	return res
}
