// Package ts implements the TypeScript codegen.Backend, grounded on
// spec.md §4.5's "Target: TypeScript" mapping table.
package ts

import (
	"strconv"
	"strings"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/internal/lexicon"
	"github.com/faber-lang/faber/pkg/ast"
)

// Backend is the TypeScript target. Stateless: safe to share across
// concurrent Generate calls.
type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) Name() string       { return "ts" }
func (b *Backend) DefaultIndent() int { return 2 }

// reserved is the set of TypeScript/JavaScript reserved words an emitted
// identifier must not collide with.
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "let": true, "static": true, "yield": true,
	"await": true, "async": true, "interface": true, "package": true,
	"private": true, "protected": true, "public": true, "implements": true,
}

func tsName(name string) string { return codegen.RenameIfReserved(name, reserved, "_") }

var builtinType = map[string]string{
	lexicon.TypeInteger:  "number",
	lexicon.TypeBigInt:   "bigint",
	lexicon.TypeString:   "string",
	lexicon.TypeFloat:    "number",
	lexicon.TypeVoid:     "void",
	lexicon.TypeArray:    "Array",
	lexicon.TypeMap:      "Map",
	lexicon.TypeDateTime: "Date",
	lexicon.TypeBool:     "boolean",
	lexicon.TypeAny:      "any",
}

func (b *Backend) EmitType(t *ast.TypeAnnotation) string {
	if t == nil {
		return "any"
	}
	if len(t.Union) > 0 {
		parts := make([]string, len(t.Union))
		for i, u := range t.Union {
			parts[i] = b.EmitType(u)
		}
		return strings.Join(parts, " | ")
	}
	name := t.Name
	if mapped, ok := builtinType[name]; ok {
		name = mapped
	}
	if len(t.TypeParameters) > 0 {
		parts := make([]string, len(t.TypeParameters))
		for i, p := range t.TypeParameters {
			parts[i] = b.EmitType(p)
		}
		name += "<" + strings.Join(parts, ", ") + ">"
	}
	if t.ArrayShorthand {
		name += "[]"
	}
	if t.Nullable {
		name += " | null"
	}
	return name
}

func (b *Backend) EmitProgram(w *codegen.Writer, program *ast.Program) {
	for _, s := range program.Statements {
		b.EmitStatement(w, s)
	}
}

func emitParams(b *Backend, w *codegen.Writer, params []*ast.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		prefix := ""
		if p.Rest {
			prefix = "..."
		}
		s := prefix + tsName(p.Name)
		if p.Type != nil {
			s += ": " + b.EmitType(p.Type)
		}
		if p.DefaultValue != nil {
			s += " = " + exprString(b, w, p.DefaultValue)
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

// exprString renders e in isolation against a fragment of w, used for small
// fragments (default parameter values, case labels, for-loop headers) that
// share w's semantic Info but shouldn't disturb its buffer.
func exprString(b *Backend, w *codegen.Writer, e ast.Expression) string {
	fw := w.Fragment()
	b.EmitExpression(fw, e)
	return fw.String()
}

func verbPrefix(v ast.ReturnVerb) string {
	switch v {
	case ast.VerbFiet:
		return "async function"
	case ast.VerbFiunt:
		return "function*"
	case ast.VerbFient:
		return "async function*"
	default:
		return "function"
	}
}

func (b *Backend) emitFunctionHead(w *codegen.Writer, name string, params []*ast.Parameter, verb ast.ReturnVerb, ret *ast.TypeAnnotation) {
	w.WriteString(verbPrefix(verb))
	w.WriteString(" ")
	w.WriteString(tsName(name))
	w.WriteString("(")
	w.WriteString(emitParams(b, w, params))
	w.WriteString(")")
	if ret != nil {
		w.WriteString(": " + b.EmitType(ret))
	}
	w.WriteString(" ")
}

func (b *Backend) emitBlock(w *codegen.Writer, blk *ast.BlockStatement) {
	w.WriteString("{\n")
	w.Indent()
	if blk != nil {
		for _, s := range blk.Statements {
			b.EmitStatement(w, s)
		}
	}
	w.Dedent()
	w.Pad()
	w.WriteString("}")
}

func (b *Backend) EmitStatement(w *codegen.Writer, stmt ast.Statement) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		w.Pad()
		b.emitBlock(w, s)
		w.WriteString("\n")

	case *ast.ExpressionStatement:
		w.Pad()
		if s.Expr != nil {
			b.EmitExpression(w, s.Expr)
		}
		w.WriteString(";\n")

	case *ast.VarDeclaration:
		w.Pad()
		keyword := "let"
		if s.Kind == ast.VarFixum || s.Kind == ast.VarFigendum {
			keyword = "const"
		}
		w.WriteString(keyword + " ")
		if s.Pattern != nil {
			w.WriteString(emitPattern(b, s.Pattern))
		} else {
			w.WriteString(tsName(s.Name))
		}
		if s.Type != nil {
			w.WriteString(": " + b.EmitType(s.Type))
		}
		if s.Value != nil {
			w.WriteString(" = ")
			if s.Kind == ast.VarFigendum || s.Kind == ast.VarVariandum {
				w.WriteString("await ")
			}
			b.EmitExpression(w, s.Value)
		}
		w.WriteString(";\n")

	case *ast.FunctionDeclaration:
		w.Pad()
		b.emitFunctionHead(w, s.Name, s.Params, s.Verb, s.ReturnType)
		b.emitBlock(w, s.Body)
		w.WriteString("\n")

	case *ast.GenusDeclaration:
		b.emitGenus(w, s)

	case *ast.PactumDeclaration:
		w.Pad()
		w.WriteString("interface " + s.Name + " {\n")
		w.Indent()
		for _, m := range s.Methods {
			w.Pad()
			w.WriteString(tsName(m.Name) + "(" + emitParams(b, w, m.Params) + ")")
			if m.ReturnType != nil {
				w.WriteString(": " + b.EmitType(m.ReturnType))
			}
			w.WriteString(";\n")
		}
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")

	case *ast.TypeAliasDeclaration:
		w.Pad()
		w.WriteString("type " + s.Name + " = " + b.EmitType(s.Type) + ";\n")

	case *ast.OrdoDeclaration:
		w.Pad()
		w.WriteString("enum " + s.Name + " {\n")
		w.Indent()
		for _, m := range s.Members {
			w.Pad()
			w.WriteString(m.Name)
			if m.Value != nil {
				w.WriteString(" = " + exprString(b, w, m.Value))
			}
			w.WriteString(",\n")
		}
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")

	case *ast.DiscretioDeclaration:
		w.Pad()
		if len(s.Variants) == 0 {
			w.WriteString("type " + s.Name + " = never;\n")
			return
		}
		parts := make([]string, len(s.Variants))
		for i, v := range s.Variants {
			fields := make([]string, len(v.Fields))
			for j, f := range v.Fields {
				fields[j] = tsName(f.Name) + ": " + b.EmitType(f.Type)
			}
			body := ""
			if len(fields) > 0 {
				body = "; " + strings.Join(fields, "; ")
			}
			parts[i] = "{ kind: " + strconv.Quote(v.Name) + body + " }"
		}
		w.WriteString("type " + s.Name + " = " + strings.Join(parts, " | ") + ";\n")

	case *ast.ImportDeclaration:
		w.Pad()
		names := make([]string, len(s.Names))
		for i, n := range s.Names {
			if s.Aliases[i] != "" && s.Aliases[i] != n {
				names[i] = n + " as " + s.Aliases[i]
			} else {
				names[i] = n
			}
		}
		w.WriteString("import { " + strings.Join(names, ", ") + " } from " + strconv.Quote(s.Source) + ";\n")

	case *ast.IfStatement:
		b.emitIf(w, s)

	case *ast.WhileStatement:
		w.Pad()
		w.WriteString("while (")
		b.EmitExpression(w, s.Condition)
		w.WriteString(") ")
		b.emitBlock(w, s.Body)
		w.WriteString("\n")

	case *ast.IterationStatement:
		b.emitIteration(w, s)

	case *ast.SwitchStatement:
		w.Pad()
		w.WriteString("switch (")
		b.EmitExpression(w, s.Subject)
		w.WriteString(") {\n")
		w.Indent()
		for _, c := range s.Cases {
			w.Pad()
			if c.Value == nil {
				w.WriteString("default: {\n")
			} else {
				w.WriteString("case " + exprString(b, w, c.Value) + ": {\n")
			}
			w.Indent()
			for _, st := range c.Body.Statements {
				b.EmitStatement(w, st)
			}
			w.Pad()
			w.WriteString("break;\n")
			w.Dedent()
			w.Pad()
			w.WriteString("}\n")
		}
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")

	case *ast.DiscerneStatement:
		b.emitDiscerne(w, s)

	case *ast.DispatchStatement:
		b.emitDispatch(w, s)

	case *ast.GuardStatement:
		w.Pad()
		w.WriteString("if (!(")
		b.EmitExpression(w, s.Condition)
		w.WriteString(")) ")
		b.emitBlock(w, s.Else)
		w.WriteString("\n")

	case *ast.AssertStatement:
		w.Pad()
		w.WriteString("if (!(")
		b.EmitExpression(w, s.Condition)
		w.WriteString(")) throw new Error(")
		if s.Message != nil {
			b.EmitExpression(w, s.Message)
			w.WriteString(" ?? \"Assertion failed\"")
		} else {
			w.WriteString("\"Assertion failed\"")
		}
		w.WriteString(");\n")

	case *ast.ReturnStatement:
		w.Pad()
		if s.Value != nil {
			w.WriteString("return ")
			b.EmitExpression(w, s.Value)
			w.WriteString(";\n")
		} else {
			w.WriteString("return;\n")
		}

	case *ast.ThrowStatement:
		w.Pad()
		if s.Fatal {
			w.WriteString("throw Object.assign(new Error(String(")
			b.EmitExpression(w, s.Value)
			w.WriteString(")), { fatal: true });\n")
		} else {
			w.WriteString("throw ")
			b.EmitExpression(w, s.Value)
			w.WriteString(";\n")
		}

	case *ast.BreakStatement:
		w.WriteLine("break;")

	case *ast.ContinueStatement:
		w.WriteLine("continue;")

	case *ast.TryStatement:
		w.Pad()
		w.WriteString("try ")
		b.emitBlock(w, s.Body)
		if s.Handler != nil {
			w.WriteString(" catch (" + tsName(s.CatchName) + ") ")
			b.emitBlock(w, s.Handler)
		}
		if s.Finally != nil {
			w.WriteString(" finally ")
			b.emitBlock(w, s.Finally)
		}
		w.WriteString("\n")

	case *ast.CuraStatement:
		w.Pad()
		w.WriteString("const " + tsName(s.Binding) + " = ")
		b.EmitExpression(w, s.Value)
		w.WriteString(";\n")
		w.Pad()
		w.WriteString("try ")
		b.emitBlock(w, s.Body)
		w.WriteString(" finally {\n")
		w.Indent()
		w.WriteLine(tsName(s.Binding) + ".close?.();")
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")

	case *ast.ExplicitBlockStatement:
		w.Pad()
		if s.Handler != nil {
			w.WriteString("try ")
			b.emitBlock(w, s.Body)
			w.WriteString(" catch (" + tsName(s.CatchName) + ") ")
			b.emitBlock(w, s.Handler)
			w.WriteString("\n")
		} else {
			b.emitBlock(w, s.Body)
			w.WriteString("\n")
		}

	case *ast.IOStatement:
		w.Pad()
		fn := map[string]string{"scribe": "console.log", "vide": "console.debug", "mone": "console.warn"}[s.Verb]
		if fn == "" {
			fn = "console.log"
		}
		w.WriteString(fn + "(")
		for i, a := range s.Arguments {
			if i > 0 {
				w.WriteString(", ")
			}
			b.EmitExpression(w, a)
		}
		w.WriteString(");\n")

	case *ast.ProbatioDeclaration:
		b.emitProbatio(w, s)

	default:
		w.Pad()
		w.Placeholder(codegen.CodeMalformedNode, "unsupported statement kind", s)
		w.WriteString("\n")
	}
}

func (b *Backend) emitIf(w *codegen.Writer, s *ast.IfStatement) {
	if s.CatchBind != "" {
		// spec.md §4.5: "a conditional with a cape clause emits
		// try { if(...) {...} } catch(e) { ... }".
		w.Pad()
		w.WriteString("try {\n")
		w.Indent()
		w.Pad()
		w.WriteString("if (")
		b.EmitExpression(w, s.Condition)
		w.WriteString(") ")
		b.emitBlock(w, s.Then)
		w.WriteString("\n")
		w.Dedent()
		w.Pad()
		w.WriteString("} catch (" + tsName(s.CatchBind) + ") {\n")
		w.Indent()
		b.EmitStatement(w, s.Else)
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")
		return
	}
	w.Pad()
	w.WriteString("if (")
	b.EmitExpression(w, s.Condition)
	w.WriteString(") ")
	b.emitBlock(w, s.Then)
	if s.Else != nil {
		w.WriteString(" else ")
		switch e := s.Else.(type) {
		case *ast.IfStatement:
			// else-if chain: drop the "else " prefix's own indent/newline.
			w.WriteString("if (")
			b.EmitExpression(w, e.Condition)
			w.WriteString(") ")
			b.emitBlock(w, e.Then)
			if e.Else != nil {
				w.WriteString(" else ")
				b.emitBlock(w, asBlock(e.Else))
			}
		case *ast.BlockStatement:
			b.emitBlock(w, e)
		default:
			b.emitBlock(w, asBlock(e))
		}
	}
	w.WriteString("\n")
}

func asBlock(s ast.Statement) *ast.BlockStatement {
	if blk, ok := s.(*ast.BlockStatement); ok {
		return blk
	}
	return &ast.BlockStatement{Statements: []ast.Statement{s}}
}

func (b *Backend) emitIteration(w *codegen.Writer, s *ast.IterationStatement) {
	w.Pad()
	if rng, ok := s.Source.(*ast.RangeExpression); ok {
		name := s.Binding
		op := "<"
		if rng.Inclusive {
			op = "<="
		}
		step := "1"
		if rng.Step != nil {
			step = exprString(b, w, rng.Step)
		}
		w.WriteString("for (let " + tsName(name) + " = " + exprString(b, w, rng.Start) + "; " +
			tsName(name) + " " + op + " " + exprString(b, w, rng.End) + "; " +
			tsName(name) + " += " + step + ") ")
		b.emitBlock(w, s.Body)
		w.WriteString("\n")
		return
	}

	source := exprString(b, w, s.Source)
	if s.Transform != nil {
		source = applyTransform(b, w, source, s.Transform)
	}

	keyword := "of"
	if s.Kind == ast.IterDe {
		keyword = "in"
	}
	forKw := "for"
	if s.Verb == ast.VerbFiet {
		forKw = "for await"
	}
	binding := tsName(s.Binding)
	if s.Pattern != nil {
		binding = emitPattern(b, s.Pattern)
	}
	w.WriteString(forKw + " (const " + binding + " " + keyword + " " + source + ") ")
	b.emitBlock(w, s.Body)
	w.WriteString("\n")
}

func applyTransform(b *Backend, w *codegen.Writer, source string, t *ast.IterationTransform) string {
	switch t.Kind {
	case "prima":
		return source + ".slice(0, " + exprString(b, w, t.Count) + ")"
	case "ultima":
		return source + ".slice(-" + exprString(b, w, t.Count) + ")"
	case "summa":
		return source + ".reduce((a, b) => a + b, 0)"
	default:
		return source
	}
}

func emitPattern(b *Backend, p *ast.DestructurePattern) string {
	switch {
	case p.Skip:
		return "_"
	case p.Name != "":
		return tsName(p.Name)
	case p.IsArray:
		parts := make([]string, len(p.Elements))
		for i, el := range p.Elements {
			parts[i] = emitPattern(b, el)
		}
		if p.Rest != "" {
			parts = append(parts, "..."+tsName(p.Rest))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case p.IsObject:
		parts := make([]string, len(p.Fields))
		for i, f := range p.Fields {
			if f.Nested != nil {
				parts[i] = f.Key + ": " + emitPattern(b, f.Nested)
			} else if f.Alias != "" && f.Alias != f.Key {
				parts[i] = f.Key + ": " + tsName(f.Alias)
			} else {
				parts[i] = tsName(f.Key)
			}
		}
		if p.Rest != "" {
			parts = append(parts, "..."+tsName(p.Rest))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}
	return ""
}

// emitDiscerne lowers "discerne" (switch on discretio variant) using the
// "{ kind, ...fields }" tagged-object representation DiscretioDeclaration
// is generated as (see DESIGN.md): switch on .kind, destructure the bound
// field names directly from the subject.
func (b *Backend) emitDiscerne(w *codegen.Writer, s *ast.DiscerneStatement) {
	w.Pad()
	subject := exprString(b, w, s.Subject)
	w.WriteString("switch (" + subject + ".kind) {\n")
	w.Indent()
	for _, c := range s.Cases {
		w.Pad()
		w.WriteString("case " + strconv.Quote(c.VariantName) + ": {\n")
		w.Indent()
		if len(c.Bindings) > 0 {
			w.Pad()
			w.WriteString("const { " + strings.Join(renameAll(c.Bindings), ", ") + " } = " + subject + ";\n")
		}
		for _, st := range c.Body.Statements {
			b.EmitStatement(w, st)
		}
		w.Pad()
		w.WriteString("break;\n")
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")
	}
	if s.DefaultBody != nil {
		w.Pad()
		w.WriteString("default: {\n")
		w.Indent()
		for _, st := range s.DefaultBody.Statements {
			b.EmitStatement(w, st)
		}
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")
	}
	w.Dedent()
	w.Pad()
	w.WriteString("}\n")
}

func renameAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = tsName(n)
	}
	return out
}

// emitDispatch lowers "ad" (runtime-type dispatch) as an instanceof chain.
func (b *Backend) emitDispatch(w *codegen.Writer, s *ast.DispatchStatement) {
	subject := exprString(b, w, s.Subject)
	for i, c := range s.Cases {
		w.Pad()
		if i > 0 {
			w.WriteString("} else ")
		}
		w.WriteString("if (" + subject + " instanceof " + b.EmitType(c.Type) + ") {\n")
		w.Indent()
		w.Pad()
		w.WriteString("const " + tsName(c.Binding) + " = " + subject + ";\n")
		for _, st := range c.Body.Statements {
			b.EmitStatement(w, st)
		}
		w.Dedent()
		if i == len(s.Cases)-1 && s.DefaultBody == nil {
			w.Pad()
			w.WriteString("}\n")
		}
	}
	if s.DefaultBody != nil {
		w.Pad()
		w.WriteString("} else {\n")
		w.Indent()
		for _, st := range s.DefaultBody.Statements {
			b.EmitStatement(w, st)
		}
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")
	}
}

func (b *Backend) emitGenus(w *codegen.Writer, s *ast.GenusDeclaration) {
	w.Pad()
	w.WriteString("class " + s.Name)
	if len(s.Conforms) > 0 {
		parts := make([]string, len(s.Conforms))
		for i, c := range s.Conforms {
			parts[i] = b.EmitType(c)
		}
		w.WriteString(" implements " + strings.Join(parts, ", "))
	}
	w.WriteString(" {\n")
	w.Indent()
	for _, f := range s.Fields {
		w.Pad()
		if f.Visibility == ast.VisibilityPrivatus {
			w.WriteString("private ")
		}
		if f.Static {
			w.WriteString("static ")
		}
		w.WriteString(tsName(f.Name))
		if f.Type != nil {
			w.WriteString(": " + b.EmitType(f.Type))
		}
		if f.Default != nil {
			w.WriteString(" = " + exprString(b, w, f.Default))
		}
		w.WriteString(";\n")
	}
	for _, m := range s.Methods {
		w.Pad()
		if m.Visibility == ast.VisibilityPrivatus {
			w.WriteString("private ")
		}
		if m.Static {
			w.WriteString("static ")
		}
		if m.Verb.Async() {
			w.WriteString("async ")
		}
		if m.IsConstructor {
			w.WriteString("constructor(")
		} else {
			w.WriteString(tsName(m.Name) + "(")
		}
		w.WriteString(emitParams(b, w, m.Params))
		w.WriteString(")")
		if !m.IsConstructor && m.ReturnType != nil {
			w.WriteString(": " + b.EmitType(m.ReturnType))
		}
		w.WriteString(" ")
		b.emitBlock(w, m.Body)
		w.WriteString("\n")
	}
	w.Dedent()
	w.Pad()
	w.WriteString("}\n")
}

func (b *Backend) emitProbatio(w *codegen.Writer, s *ast.ProbatioDeclaration) {
	w.Pad()
	w.WriteString("describe(" + strconv.Quote(s.Description) + ", () => {\n")
	w.Indent()
	for _, h := range s.Hooks {
		w.Pad()
		fn := "beforeEach"
		if h.Kind == ast.HookPost {
			fn = "afterEach"
		}
		w.WriteString(fn + "(() => ")
		b.emitBlock(w, h.Body)
		w.WriteString(");\n")
	}
	for _, c := range s.Cases {
		w.Pad()
		w.WriteString("it(" + strconv.Quote(c.Description) + ", () => ")
		b.emitBlock(w, c.Body)
		w.WriteString(");\n")
	}
	w.Dedent()
	w.Pad()
	w.WriteString("});\n")
}

func (b *Backend) EmitExpression(w *codegen.Writer, expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		w.WriteString(tsName(e.Value))
	case *ast.SelfExpression:
		w.WriteString("this")
	case *ast.IntegerLiteral:
		w.WriteString(e.String())
	case *ast.BigIntLiteral:
		w.WriteString(e.String())
	case *ast.FloatLiteral:
		w.WriteString(e.String())
	case *ast.StringLiteral:
		w.WriteString(strconv.Quote(e.Value))
	case *ast.BooleanLiteral:
		if e.Value {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case *ast.NilLiteral:
		w.WriteString("null")
	case *ast.TemplateLiteral:
		w.WriteString("`")
		for _, p := range e.Parts {
			if p.Expr != nil {
				w.WriteString("${")
				b.EmitExpression(w, p.Expr)
				w.WriteString("}")
			} else {
				w.WriteString(p.Text)
			}
		}
		w.WriteString("`")
	case *ast.BinaryExpression:
		b.emitBinary(w, e)
	case *ast.UnaryExpression:
		b.emitUnary(w, e)
	case *ast.GroupedExpression:
		w.WriteString("(")
		b.EmitExpression(w, e.Inner)
		w.WriteString(")")
	case *ast.TernaryExpression:
		b.wrap(w, e.Condition)
		w.WriteString(" ? ")
		b.wrap(w, e.Then)
		w.WriteString(" : ")
		b.wrap(w, e.Else)
	case *ast.RangeExpression:
		// Only meaningful inside an iteration statement; as a bare
		// expression there is no direct TS equivalent, emit an array range.
		w.WriteString("Array.from({ length: ")
		b.EmitExpression(w, e.End)
		w.WriteString(" - ")
		b.EmitExpression(w, e.Start)
		w.WriteString(" }, (_, i) => i + ")
		b.EmitExpression(w, e.Start)
		w.WriteString(")")
	case *ast.MemberExpression:
		b.wrap(w, e.Object)
		if e.Optional {
			w.WriteString("?.")
		} else if e.NonNull {
			w.WriteString("!.")
		} else {
			w.WriteString(".")
		}
		w.WriteString(e.Property)
	case *ast.ComputedMemberExpression:
		b.wrap(w, e.Object)
		if e.Optional {
			w.WriteString("?.[")
		} else {
			w.WriteString("[")
		}
		b.EmitExpression(w, e.Index)
		w.WriteString("]")
	case *ast.CallExpression:
		b.wrap(w, e.Callee)
		if e.Optional {
			w.WriteString("?.(")
		} else {
			w.WriteString("(")
		}
		for i, a := range e.Arguments {
			if i > 0 {
				w.WriteString(", ")
			}
			if i < len(e.Spreads) && e.Spreads[i] {
				w.WriteString("...")
			}
			b.EmitExpression(w, a)
		}
		w.WriteString(")")
	case *ast.NewExpression:
		if e.From != nil {
			w.WriteString("Object.assign(Object.create(Object.getPrototypeOf(")
			b.EmitExpression(w, e.From)
			w.WriteString(")), ")
			b.EmitExpression(w, e.From)
			w.WriteString(")")
			return
		}
		w.WriteString("new " + b.EmitType(e.Type) + "(")
		for i, a := range e.Arguments {
			if i > 0 {
				w.WriteString(", ")
			}
			b.EmitExpression(w, a)
		}
		w.WriteString(")")
	case *ast.AwaitExpression:
		w.WriteString("await ")
		b.wrap(w, e.Argument)
	case *ast.CastExpression:
		w.WriteString("(")
		b.EmitExpression(w, e.Value)
		w.WriteString(" as " + b.EmitType(e.Type) + ")")
	case *ast.TypeTestExpression:
		if e.Negative {
			w.WriteString("!(")
		}
		b.EmitExpression(w, e.Value)
		w.WriteString(" instanceof " + b.EmitType(e.Type))
		if e.Negative {
			w.WriteString(")")
		}
	case *ast.PrefixBlockExpression:
		if e.Body != nil {
			w.WriteString("(() => ")
			b.emitBlock(w, e.Body)
			w.WriteString(")()")
			return
		}
		w.WriteString("`")
		for i, a := range e.Arguments {
			if i > 0 {
				w.WriteString(" ")
			}
			w.WriteString("${")
			b.EmitExpression(w, a)
			w.WriteString("}")
		}
		w.WriteString("`")
	case *ast.ArrayLiteral:
		w.WriteString("[")
		for i, el := range e.Elements {
			if i > 0 {
				w.WriteString(", ")
			}
			if i < len(e.Spreads) && e.Spreads[i] {
				w.WriteString("...")
			}
			b.EmitExpression(w, el)
		}
		w.WriteString("]")
	case *ast.ObjectLiteral:
		w.WriteString("{ ")
		for i, p := range e.Properties {
			if i > 0 {
				w.WriteString(", ")
			}
			if p.Spread {
				w.WriteString("...")
				b.EmitExpression(w, p.Value)
			} else {
				w.WriteString(p.Key + ": ")
				b.EmitExpression(w, p.Value)
			}
		}
		w.WriteString(" }")
	case *ast.ArrowFunctionExpression:
		if e.Async {
			w.WriteString("async ")
		}
		w.WriteString("(" + emitParams(b, w, e.Params) + ") => ")
		b.emitArrowBody(w, e.Body)
	case *ast.LambdaExpression:
		if e.Async {
			w.WriteString("async ")
		}
		w.WriteString("(" + emitParams(b, w, e.Params) + ") => ")
		b.emitArrowBody(w, e.Body)
	default:
		w.Placeholder(codegen.CodeMalformedNode, "unsupported expression kind", e)
	}
}

func (b *Backend) emitArrowBody(w *codegen.Writer, body ast.Node) {
	switch bd := body.(type) {
	case *ast.BlockStatement:
		b.emitBlock(w, bd)
	case ast.Expression:
		b.EmitExpression(w, bd)
	}
}

// wrap emits e, adding parens when e is not atomic enough to be safely
// nested (spec.md §4.5 "parenthesizing non-trivial … expressions").
func (b *Backend) wrap(w *codegen.Writer, e ast.Expression) {
	if codegen.IsSimpleOperand(e) {
		b.EmitExpression(w, e)
		return
	}
	w.WriteString("(")
	b.EmitExpression(w, e)
	w.WriteString(")")
}

var wordOp = map[string]string{"et": "&&", "aut": "||", "vel": "??"}

func (b *Backend) emitBinary(w *codegen.Writer, e *ast.BinaryExpression) {
	op := e.Operator
	if mapped, ok := wordOp[op]; ok {
		op = mapped
	}
	isAssign := strings.HasSuffix(op, "=") && op != "==" && op != "!=" && op != "===" && op != "!==" && op != "<=" && op != ">="
	if isAssign {
		b.EmitExpression(w, e.Left)
		w.WriteString(" " + op + " ")
		b.EmitExpression(w, e.Right)
		return
	}
	if op == "==" || op == "!=" {
		if w.Info() != nil && w.Info().IsStringComparison(e) {
			op = map[string]string{"==": "===", "!=": "!=="}[op]
		}
	}
	b.wrap(w, e.Left)
	w.WriteString(" " + op + " ")
	b.wrap(w, e.Right)
}

var predicateOp = map[string]string{
	"nulla": "== null", "nonnulla": "!= null",
	"nihil": "== null", "nonnihil": "!= null",
	"negativum": "< 0", "positivum": "> 0",
}

func (b *Backend) emitUnary(w *codegen.Writer, e *ast.UnaryExpression) {
	switch e.Operator {
	case "-":
		w.WriteString("-")
		b.wrap(w, e.Operand)
	case "~":
		w.WriteString("~")
		b.wrap(w, e.Operand)
	case "non":
		w.WriteString("!")
		b.wrap(w, e.Operand)
	default:
		if suffix, ok := predicateOp[e.Operator]; ok {
			w.WriteString("(")
			b.EmitExpression(w, e.Operand)
			w.WriteString(" " + suffix + ")")
			return
		}
		b.wrap(w, e.Operand)
	}
}
