package semantic

import (
	"github.com/faber-lang/faber/internal/lexicon"
	"github.com/faber-lang/faber/pkg/ast"
)

// Context carries the ambient information a single Analyze call needs,
// matching spec.md §6's `ctx: { filePath: String }`.
type Context struct {
	FilePath string
}

// analyzer is the single walker that performs the whole pass: symbol-kind
// population, the handful of S### diagnostics spec.md §4.4 calls for, and
// the string-equality hint. One analyzer is used per Analyze call and is
// not reused, mirroring the teacher's per-run Pass instances.
type analyzer struct {
	info      *Info
	errors    []*Error
	scope     *Scope
	typeEnv   map[string]bool // declared type names (genus/pactum/typus/ordo/discretio), for unresolved-type checks
	loopDepth int
}

// Analyze runs the thin annotator over program and returns the annotated
// result plus any diagnostics. It never panics: malformed or partial ASTs
// (e.g. from a recovered parse) are walked best-effort, skipping nil nodes.
func Analyze(program *ast.Program, ctx Context) (*AnnotatedProgram, []*Error) {
	a := &analyzer{
		info:    NewInfo(),
		scope:   NewScope(nil),
		typeEnv: make(map[string]bool),
	}
	for _, name := range lexicon.BuiltinTypeNames() {
		a.typeEnv[name] = true
	}

	a.collectGlobals(program)
	for _, stmt := range program.Statements {
		a.walkStatement(stmt)
	}

	return &AnnotatedProgram{Program: program, Info: a.info}, a.errors
}

func (a *analyzer) errorf(code, msg string, n ast.Node) {
	a.errors = append(a.errors, &Error{Code: code, Message: msg, Pos: n.Pos()})
}

// collectGlobals performs the forward-declaration sweep: every top-level
// declaration's name is registered before any body is walked, so mutual
// references between top-level declarations (a function calling one
// declared later) resolve without a dedicated ordering pass.
func (a *analyzer) collectGlobals(program *ast.Program) {
	for _, stmt := range program.Statements {
		switch d := stmt.(type) {
		case *ast.FunctionDeclaration:
			a.defineGlobal(d.Name, SymbolGlobal, false)
		case *ast.GenusDeclaration:
			a.defineGlobal(d.Name, SymbolType, true)
			a.typeEnv[d.Name] = true
		case *ast.PactumDeclaration:
			a.defineGlobal(d.Name, SymbolType, true)
			a.typeEnv[d.Name] = true
		case *ast.TypeAliasDeclaration:
			a.defineGlobal(d.Name, SymbolType, true)
			a.typeEnv[d.Name] = true
		case *ast.OrdoDeclaration:
			a.defineGlobal(d.Name, SymbolType, true)
			a.typeEnv[d.Name] = true
		case *ast.DiscretioDeclaration:
			a.defineGlobal(d.Name, SymbolType, true)
			a.typeEnv[d.Name] = true
		case *ast.ImportDeclaration:
			for _, alias := range d.Aliases {
				a.defineGlobal(alias, SymbolImport, true)
			}
		case *ast.VarDeclaration:
			a.defineVarNames(d, SymbolGlobal)
		}
	}
}

func (a *analyzer) defineGlobal(name string, kind SymbolKind, immutable bool) {
	if name == "" {
		return
	}
	a.scope.Define(&Symbol{Name: name, Kind: kind, Immutable: immutable})
}

func (a *analyzer) defineVarNames(d *ast.VarDeclaration, kind SymbolKind) {
	immutable := d.Kind == ast.VarFixum || d.Kind == ast.VarFigendum
	if d.Pattern != nil {
		a.definePatternNames(d.Pattern, kind, immutable)
		return
	}
	a.defineGlobal(d.Name, kind, immutable)
}

func (a *analyzer) definePatternNames(p *ast.DestructurePattern, kind SymbolKind, immutable bool) {
	if p == nil || p.Skip {
		return
	}
	if p.Name != "" {
		a.scope.Define(&Symbol{Name: p.Name, Kind: kind, Immutable: immutable})
	}
	if p.Rest != "" {
		a.scope.Define(&Symbol{Name: p.Rest, Kind: kind, Immutable: immutable})
	}
	for _, el := range p.Elements {
		a.definePatternNames(el, kind, immutable)
	}
	for _, f := range p.Fields {
		if f.Nested != nil {
			a.definePatternNames(f.Nested, kind, immutable)
		} else if f.Alias != "" {
			a.scope.Define(&Symbol{Name: f.Alias, Kind: kind, Immutable: immutable})
		}
	}
}
