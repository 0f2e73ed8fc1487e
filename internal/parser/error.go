package parser

import "github.com/faber-lang/faber/pkg/token"

// Error is a single parse diagnostic, carrying a P### code per spec.md's
// error-code scheme.
type Error struct {
	Code    string
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Code + ": " + e.Message
}

const (
	CodeUnexpectedToken  = "P001"
	CodeExpectedToken    = "P002"
	CodeNoPrefixParse    = "P003"
	CodeInvalidLHS       = "P004"
	CodeMixedOperators   = "P005" // vel mixed with aut/|| without parens
	CodeEmptyDiscretio   = "P006" // informational only, never raised (see DESIGN.md)
	CodeMalformedPattern = "P007"
	CodeUnterminatedBody = "P008"
)
