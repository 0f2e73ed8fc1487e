package semantic

import (
	"sync"

	"github.com/faber-lang/faber/pkg/ast"
)

// Info is the side-annotation table produced by Analyze: a map-based
// overlay keyed by AST node identity rather than fields mutated onto the
// nodes themselves, grounded on the teacher's pkg/ast.SemanticInfo
// (map-per-expression metadata store, safe for concurrent reads once
// analysis has finished — spec.md §5 batch-compiles files in parallel, and
// each file's Info is read-only after Analyze returns).
type Info struct {
	mu          sync.RWMutex
	identifiers map[*ast.Identifier]SymbolKind
	stringHints map[*ast.BinaryExpression]bool
	typeTests   map[*ast.TypeTestExpression]bool // true when Value is statically known string-typed
}

// NewInfo creates an empty annotation table.
func NewInfo() *Info {
	return &Info{
		identifiers: make(map[*ast.Identifier]SymbolKind),
		stringHints: make(map[*ast.BinaryExpression]bool),
		typeTests:   make(map[*ast.TypeTestExpression]bool),
	}
}

func (info *Info) setIdentifier(id *ast.Identifier, kind SymbolKind) {
	info.mu.Lock()
	defer info.mu.Unlock()
	info.identifiers[id] = kind
}

// IdentifierKind returns the symbol kind recorded for id, if analysis saw it.
func (info *Info) IdentifierKind(id *ast.Identifier) (SymbolKind, bool) {
	info.mu.RLock()
	defer info.mu.RUnlock()
	k, ok := info.identifiers[id]
	return k, ok
}

func (info *Info) setStringHint(expr *ast.BinaryExpression, isString bool) {
	info.mu.Lock()
	defer info.mu.Unlock()
	info.stringHints[expr] = isString
}

// IsStringComparison reports whether both operands of expr were inferred to
// be string-typed. It is recorded for equality comparisons and for "+" — the
// hint codegen needs to choose between "===" and "std.mem.eql", and between
// "+" and "++" (spec.md §4.4, §8 scenario 4).
func (info *Info) IsStringComparison(expr *ast.BinaryExpression) bool {
	info.mu.RLock()
	defer info.mu.RUnlock()
	return info.stringHints[expr]
}

// AnnotatedProgram is the result of Analyze: the (unmodified) program plus
// its side-annotations, matching spec.md §6's
// `analyze(program, ctx) -> (AnnotatedProgram, []SemError)` contract.
type AnnotatedProgram struct {
	Program *ast.Program
	Info    *Info
}
