// Package semantic implements the thin single-pass AST annotator: it
// populates symbol-kind information on identifiers, flags a small set of
// obvious errors, and attaches target-relevant hints the code generator
// needs (principally, whether an "est"/"non est" comparison involves
// strings). Grounded on the teacher's internal/semantic/passes package
// (PassContext/Pass idiom, SymbolTable/SemanticError naming) but trimmed to
// the single pass this domain actually needs.
package semantic

import "github.com/faber-lang/faber/pkg/token"

// Error is one semantic diagnostic, carrying an S### code.
type Error struct {
	Code    string
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Code + ": " + e.Message
}

const (
	CodeUnknownIdentifier    = "S001"
	CodeReassignImmutable    = "S002"
	CodeUnresolvedType       = "S003"
	CodeDuplicateDeclaration = "S004"
	CodeBreakOutsideLoop     = "S005"
	CodeContinueOutsideLoop  = "S006"
	CodeDuplicateCaseLabel   = "S007"
)
