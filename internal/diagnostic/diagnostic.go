// Package diagnostic formats compiler diagnostics with source context and
// caret positioning, adapted from the teacher's internal/errors package, and
// renders them as JSON for tooling via sjson.
package diagnostic

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/faber-lang/faber/pkg/token"
)

// Diagnostic is one compiler finding, per spec.md §6's diagnostic record:
// { code, message, position, help? }. Code is drawn from the L###/P###/
// S###/G### families (lex, parse, semantic, generation).
type Diagnostic struct {
	Code    string
	Message string
	Pos     token.Position
	Help    string
	Source  string // the full source text, used only for caret rendering
	File    string
}

func New(code, message string, pos token.Position) *Diagnostic {
	return &Diagnostic{Code: code, Message: message, Pos: pos}
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a source line and caret, matching the
// teacher's CompilerError.Format layout generalized with a leading code tag.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		sb.WriteString(fmt.Sprintf("%s: %s in %s:%d:%d\n", d.Code, d.Message, d.File, d.Pos.Line, d.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s at %d:%d\n", d.Code, d.Message, d.Pos.Line, d.Pos.Column))
	}

	sourceLine := d.sourceLine(d.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if d.Help != "" {
		if color {
			sb.WriteString("\033[2m")
		}
		sb.WriteString("help: " + d.Help)
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// JSON renders a diagnostic as a single JSON object via sjson, matching
// spec.md §6's diagnostic shape exactly (code/message/position/help).
func (d *Diagnostic) JSON() (string, error) {
	doc := "{}"
	var err error
	doc, err = sjson.Set(doc, "code", d.Code)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "message", d.Message)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "position.line", d.Pos.Line)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "position.column", d.Pos.Column)
	if err != nil {
		return "", err
	}
	doc, err = sjson.Set(doc, "position.offset", d.Pos.Offset)
	if err != nil {
		return "", err
	}
	if d.Help != "" {
		doc, err = sjson.Set(doc, "help", d.Help)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

// FormatAll renders every diagnostic in order, numbering them when there is
// more than one, matching the teacher's FormatErrors multi-error banner.
func FormatAll(diags []*Diagnostic, color bool) string {
	if len(diags) == 0 {
		return ""
	}
	if len(diags) == 1 {
		return diags[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation failed with %d diagnostic(s):\n\n", len(diags)))
	for i, d := range diags {
		sb.WriteString(fmt.Sprintf("[%d of %d] ", i+1, len(diags)))
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// JSONAll renders every diagnostic as a JSON array via sjson.
func JSONAll(diags []*Diagnostic) (string, error) {
	doc := "[]"
	for i, d := range diags {
		obj, err := d.JSON()
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, fmt.Sprintf("%d", i), obj)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
