package lexer

import "github.com/faber-lang/faber/pkg/token"

// Error is a single lexical diagnostic, carrying an L### code per
// spec.md's error-code scheme.
type Error struct {
	Code    string
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Code + ": " + e.Message
}

const (
	CodeInvalidUTF8         = "L001"
	CodeUnterminatedString   = "L002"
	CodeUnterminatedTemplate = "L003"
	CodeUnterminatedComment  = "L004"
	CodeInvalidEscape        = "L005"
	CodeUnexpectedChar       = "L006"
	CodeMalformedNumber      = "L007"
)
