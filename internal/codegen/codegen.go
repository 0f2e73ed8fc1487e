// Package codegen drives AST-to-target-text generation. Per spec.md §9's
// "target-dispatch" redesign note, there is no giant per-node switch: each
// target implements the Backend capability set (emit-expression,
// emit-statement, emit-type) and Generate dispatches to whichever value of
// that set the caller selects, mirroring the teacher's pkg/printer
// Options/Style split generalized from "one style, one language" to "one
// Backend, one language".
package codegen

import (
	"strings"

	"github.com/faber-lang/faber/internal/semantic"
	"github.com/faber-lang/faber/pkg/ast"
	"github.com/faber-lang/faber/pkg/token"
)

// Error is a generation diagnostic, code family G###.
type Error struct {
	Code    string
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return e.Pos.String() + ": " + e.Code + ": " + e.Message }

const (
	CodeMalformedNode = "G001"
	CodeUnsupported   = "G002"
)

// Options configures a generation run. IndentWidth is fixed per target by
// the Backend itself (spec.md §4.5 "Block bodies are indented uniformly …
// fixed per target") but may still be overridden by a config file per
// SPEC_FULL.md §4.6; zero means "use the backend's default".
type Options struct {
	IndentWidth int
}

// Backend is one target language's emission rules. A Backend is stateless
// and safe to share across concurrent Generate calls (SPEC_FULL.md §5: the
// core stages hold no shared mutable state).
type Backend interface {
	// Name is the target identifier used in CLI flags and config files
	// ("ts", "zig", "py").
	Name() string
	// DefaultIndent is the backend's fixed indent width, used when Options
	// does not override it.
	DefaultIndent() int
	// EmitProgram writes every top-level statement of program into w.
	EmitProgram(w *Writer, program *ast.Program)
	// EmitStatement writes one statement, including its trailing newline.
	EmitStatement(w *Writer, s ast.Statement)
	// EmitExpression writes expr as a value-producing fragment (no
	// trailing newline, no statement terminator).
	EmitExpression(w *Writer, e ast.Expression)
	// EmitType renders a type annotation as the target's type syntax.
	EmitType(t *ast.TypeAnnotation) string
}

// Generate runs backend over program and returns the emitted text plus any
// generation diagnostics recorded while walking it. It never panics: a
// malformed node aborts only the subtree under it (spec.md §4.5 "Error
// reporting"), recording CodeMalformedNode and emitting a placeholder.
func Generate(program *ast.Program, info *semantic.Info, backend Backend, opts Options) (string, []*Error) {
	indent := opts.IndentWidth
	if indent <= 0 {
		indent = backend.DefaultIndent()
	}
	w := &Writer{indentWidth: indent, info: info}
	backend.EmitProgram(w, program)
	return w.buf.String(), w.errors
}

// Writer accumulates emitted text with indent tracking and the generation
// error sink, the codegen-package analogue of the teacher's printer buffer.
type Writer struct {
	buf         strings.Builder
	depth       int
	indentWidth int
	info        *semantic.Info
	errors      []*Error
}

// Info exposes the semantic annotation a backend needs to pick a lowering
// (e.g. the string-equality hint for est/non est and ==/!=).
func (w *Writer) Info() *semantic.Info { return w.info }

// Fragment returns a fresh Writer sharing w's Info and indent settings, for
// rendering an isolated expression into its own string (default parameter
// values, enum/case labels) without disturbing w's buffer.
func (w *Writer) Fragment() *Writer {
	return &Writer{depth: w.depth, indentWidth: w.indentWidth, info: w.info}
}

// String returns the text accumulated so far.
func (w *Writer) String() string { return w.buf.String() }

func (w *Writer) Indent() { w.depth++ }
func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

// Pad writes the current indent (depth * indentWidth spaces).
func (w *Writer) Pad() {
	w.buf.WriteString(strings.Repeat(" ", w.depth*w.indentWidth))
}

func (w *Writer) WriteString(s string) { w.buf.WriteString(s) }
func (w *Writer) WriteLine(s string) {
	w.Pad()
	w.buf.WriteString(s)
	w.buf.WriteString("\n")
}

// Errorf records a generation diagnostic without aborting the whole run.
func (w *Writer) Errorf(code, msg string, n ast.Node) {
	pos := token.Position{}
	if n != nil {
		pos = n.Pos()
	}
	w.errors = append(w.errors, &Error{Code: code, Message: msg, Pos: pos})
}

// Placeholder emits a recognizable stand-in for a node shape a backend does
// not know how to translate, after recording the diagnostic.
func (w *Writer) Placeholder(code, msg string, n ast.Node) {
	w.Errorf(code, msg, n)
	w.buf.WriteString("/* unsupported */")
}

// RenameIfReserved returns name unchanged unless it collides with one of the
// target's reserved words, in which case it appends suffix (spec.md §4.5
// "identifiers … renamed by a pinned suffix rule").
func RenameIfReserved(name string, reserved map[string]bool, suffix string) string {
	if reserved[name] {
		return name + suffix
	}
	return name
}

// IsSimpleOperand reports whether e is atomic enough to need no wrapping
// parens when nested inside another expression: literals, identifiers,
// member/call/index chains and grouped expressions (which already carry
// their own parens). Everything else (binary, unary, ternary, range,
// cast, type-test, lambda) is wrapped for safety per spec.md §4.5's
// "parenthesizing non-trivial binary expressions" rule, generalized to
// every multi-token operator form rather than binary alone.
func IsSimpleOperand(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.SelfExpression, *ast.IntegerLiteral, *ast.BigIntLiteral,
		*ast.FloatLiteral, *ast.StringLiteral, *ast.TemplateLiteral, *ast.BooleanLiteral,
		*ast.NilLiteral, *ast.GroupedExpression, *ast.MemberExpression,
		*ast.ComputedMemberExpression, *ast.CallExpression, *ast.NewExpression,
		*ast.ArrayLiteral, *ast.ObjectLiteral:
		return true
	default:
		return false
	}
}
