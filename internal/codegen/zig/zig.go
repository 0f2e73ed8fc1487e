// Package zig implements the Zig codegen.Backend, grounded on spec.md
// §4.5's "Target: Zig" mapping table.
package zig

import (
	"strconv"
	"strings"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/internal/lexicon"
	"github.com/faber-lang/faber/pkg/ast"
)

type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) Name() string       { return "zig" }
func (b *Backend) DefaultIndent() int { return 4 }

var reserved = map[string]bool{
	"const": true, "var": true, "fn": true, "pub": true, "struct": true,
	"enum": true, "union": true, "error": true, "try": true, "catch": true,
	"defer": true, "errdefer": true, "return": true, "if": true, "else": true,
	"while": true, "for": true, "switch": true, "break": true, "continue": true,
	"null": true, "undefined": true, "true": true, "false": true, "and": true,
	"or": true, "orelse": true, "test": true, "comptime": true, "anytype": true,
	"void": true, "type": true, "async": true, "await": true, "suspend": true,
}

func zigName(name string) string { return codegen.RenameIfReserved(name, reserved, "_z") }

var builtinType = map[string]string{
	lexicon.TypeInteger:  "i64",
	lexicon.TypeBigInt:   "i128",
	lexicon.TypeString:   "[]const u8",
	lexicon.TypeFloat:    "f64",
	lexicon.TypeVoid:     "void",
	lexicon.TypeArray:    "[]",
	lexicon.TypeMap:      "std.StringHashMap",
	lexicon.TypeDateTime: "i64",
	lexicon.TypeBool:     "bool",
	lexicon.TypeAny:      "anytype",
}

func (b *Backend) EmitType(t *ast.TypeAnnotation) string {
	if t == nil {
		return "void"
	}
	if len(t.Union) > 0 {
		// Zig has no ad-hoc unions; fall back to the first arm and record
		// the loss as the generator's permitted lossy behavior (spec.md
		// §4.5 notes Python, not Zig, as the designated lossy target, but
		// a source union with no direct Zig analogue must still emit
		// something rather than abort the whole declaration).
		return b.EmitType(t.Union[0])
	}
	name := t.Name
	if mapped, ok := builtinType[name]; ok {
		name = mapped
	}
	if t.ArrayShorthand {
		name = "[]" + name
	}
	if t.Nullable {
		name = "?" + name
	}
	return name
}

func (b *Backend) EmitProgram(w *codegen.Writer, program *ast.Program) {
	w.WriteLine("const std = @import(\"std\");")
	for _, s := range program.Statements {
		if v, ok := s.(*ast.VarDeclaration); ok {
			b.emitVarDecl(w, v, true)
			continue
		}
		b.EmitStatement(w, s)
	}
}

// emitVarDecl renders a var declaration; moduleScope adds the m_ prefix
// spec.md §4.5 calls for on module-scope fixum, so a later function
// parameter of the same name never shadows it silently.
func (b *Backend) emitVarDecl(w *codegen.Writer, s *ast.VarDeclaration, moduleScope bool) {
	w.Pad()
	prefix := "var "
	if s.Kind == ast.VarFixum || s.Kind == ast.VarFigendum {
		prefix = "const "
	}
	name := s.Name
	if moduleScope && s.Kind == ast.VarFixum {
		name = "m_" + name
	}
	w.WriteString(prefix)
	if s.Pattern != nil {
		w.WriteString(emitPattern(b, s.Pattern))
	} else {
		w.WriteString(zigName(name))
	}
	if s.Value != nil {
		w.WriteString(" = ")
		if s.Kind == ast.VarFigendum || s.Kind == ast.VarVariandum {
			w.WriteString("try ")
		}
		b.EmitExpression(w, s.Value)
	}
	w.WriteString(";\n")
}

func exprString(b *Backend, w *codegen.Writer, e ast.Expression) string {
	fw := w.Fragment()
	b.EmitExpression(fw, e)
	return fw.String()
}

func emitParams(b *Backend, w *codegen.Writer, params []*ast.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		typ := "anytype"
		if p.Type != nil {
			typ = b.EmitType(p.Type)
		}
		parts[i] = zigName(p.Name) + ": " + typ
	}
	return strings.Join(parts, ", ")
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

// errorUnionReturn reports whether verb requires the function's declared
// return type to be wrapped in Zig's "!T" error union, per spec.md's
// "async/verb semantics expand to error-unions" rule.
func errorUnionReturn(verb ast.ReturnVerb) bool {
	return verb.Async()
}

func (b *Backend) emitFunctionHead(w *codegen.Writer, name string, params []*ast.Parameter, verb ast.ReturnVerb, ret *ast.TypeAnnotation) {
	w.WriteString("pub fn " + zigName(name) + "(" + emitParams(b, w, params) + ") ")
	retType := "void"
	if ret != nil {
		retType = b.EmitType(ret)
	}
	if errorUnionReturn(verb) {
		w.WriteString("!" + retType + " ")
	} else {
		w.WriteString(retType + " ")
	}
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
		b.emitVarDecl(w, s, false)

	case *ast.FunctionDeclaration:
		w.Pad()
		b.emitFunctionHead(w, s.Name, s.Params, s.Verb, s.ReturnType)
		b.emitBlock(w, s.Body)
		w.WriteString("\n")

	case *ast.GenusDeclaration:
		b.emitGenus(w, s)

	case *ast.PactumDeclaration:
		w.Pad()
		w.WriteString("// pactum " + s.Name + ": required methods\n")
		for _, m := range s.Methods {
			w.Pad()
			w.WriteString("//   " + m.Name + "(" + emitParams(b, w, m.Params) + ")")
			if m.ReturnType != nil {
				w.WriteString(" " + b.EmitType(m.ReturnType))
			}
			w.WriteString("\n")
		}

	case *ast.TypeAliasDeclaration:
		w.Pad()
		w.WriteString("const " + s.Name + " = " + b.EmitType(s.Type) + ";\n")

	case *ast.OrdoDeclaration:
		w.Pad()
		w.WriteString("const " + s.Name + " = enum {\n")
		w.Indent()
		for _, m := range s.Members {
			w.Pad()
			w.WriteString(m.Name + ",\n")
		}
		w.Dedent()
		w.Pad()
		w.WriteString("};\n")

	case *ast.DiscretioDeclaration:
		b.emitDiscretio(w, s)

	case *ast.ImportDeclaration:
		w.Pad()
		w.WriteString("const " + s.Source + " = @import(\"" + s.Source + ".zig\");\n")

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
				w.WriteString("else => ")
			} else {
				w.WriteString(exprString(b, w, c.Value) + " => ")
			}
			b.emitBlock(w, c.Body)
			w.WriteString(",\n")
		}
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")

	case *ast.DiscerneStatement:
		b.emitDiscerne(w, s)

	case *ast.DispatchStatement:
		// Zig has no runtime type dispatch without a pre-existing tagged
		// union; emitted as a comment placeholder naming the cases.
		w.Pad()
		w.WriteString("// ad-dispatch: ")
		names := make([]string, len(s.Cases))
		for i, c := range s.Cases {
			names[i] = c.Type.String()
		}
		w.WriteString(strings.Join(names, ", ") + "\n")

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
		w.WriteString(")) return error.AssertionFailed;\n")

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
			w.WriteString("std.debug.panic(\"{any}\", .{")
			b.EmitExpression(w, s.Value)
			w.WriteString("});\n")
		} else {
			w.WriteString("std.log.err(\"{any}\", .{")
			b.EmitExpression(w, s.Value)
			w.WriteString("});\n")
			w.Pad()
			w.WriteString("return error.Thrown;\n")
		}

	case *ast.BreakStatement:
		w.WriteLine("break;")

	case *ast.ContinueStatement:
		w.WriteLine("continue;")

	case *ast.TryStatement:
		// No direct try/catch in Zig; lower to an error-union capture.
		w.Pad()
		w.WriteString("(")
		b.emitBlock(w, s.Body)
		w.WriteString(") catch |" + zigName(s.CatchName) + "| ")
		if s.Handler != nil {
			b.emitBlock(w, s.Handler)
		} else {
			w.WriteString("{}")
		}
		w.WriteString(";\n")
		if s.Finally != nil {
			w.Pad()
			w.WriteString("defer ")
			b.emitBlock(w, s.Finally)
			w.WriteString("\n")
		}

	case *ast.CuraStatement:
		w.Pad()
		w.WriteString("const " + zigName(s.Binding) + " = ")
		b.EmitExpression(w, s.Value)
		w.WriteString(";\n")
		w.Pad()
		w.WriteString("defer " + zigName(s.Binding) + ".deinit();\n")
		for _, st := range s.Body.Statements {
			b.EmitStatement(w, st)
		}

	case *ast.ExplicitBlockStatement:
		w.Pad()
		if s.Handler != nil {
			w.WriteString("(")
			b.emitBlock(w, s.Body)
			w.WriteString(") catch |" + zigName(s.CatchName) + "| ")
			b.emitBlock(w, s.Handler)
			w.WriteString(";\n")
		} else {
			b.emitBlock(w, s.Body)
			w.WriteString("\n")
		}

	case *ast.IOStatement:
		w.Pad()
		fn := map[string]string{"scribe": "std.debug.print", "vide": "std.log.debug", "mone": "std.log.warn"}[s.Verb]
		if fn == "" {
			fn = "std.debug.print"
		}
		fmtParts := make([]string, len(s.Arguments))
		args := make([]string, len(s.Arguments))
		for i, a := range s.Arguments {
			fmtParts[i] = "{any}"
			args[i] = exprString(b, w, a)
		}
		format := strings.Join(fmtParts, " ")
		if fn == "std.debug.print" {
			format += "\\n"
		}
		w.WriteString(fn + "(\"" + format + "\", .{ " + strings.Join(args, ", ") + " });\n")

	case *ast.ProbatioDeclaration:
		b.emitProbatio(w, s)

	default:
		w.Pad()
		w.Placeholder(codegen.CodeMalformedNode, "unsupported statement kind", s)
		w.WriteString("\n")
	}
}

// emitIf mirrors the TS backend's handling of a cape-bound else branch: a
// conditional whose else clause binds a caught value is wrapped in a
// catch-capture, generalizing spec.md §4.5's literal TS wording
// ("try { if(...) {...} } catch(e) { ... }") to Zig's catch-capture form.
func (b *Backend) emitIf(w *codegen.Writer, s *ast.IfStatement) {
	if s.CatchBind != "" {
		w.Pad()
		w.WriteString("(")
		w.WriteString("if (")
		b.EmitExpression(w, s.Condition)
		w.WriteString(") ")
		b.emitBlock(w, s.Then)
		w.WriteString(") catch |" + zigName(s.CatchBind) + "| ")
		switch e := s.Else.(type) {
		case *ast.BlockStatement:
			b.emitBlock(w, e)
		default:
			b.emitBlock(w, asBlock(e))
		}
		w.WriteString(";\n")
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
	name := zigName(s.Binding)
	if rng, ok := s.Source.(*ast.RangeExpression); ok {
		op := "<"
		if rng.Inclusive {
			op = "<="
		}
		step := "1"
		if rng.Step != nil {
			step = exprString(b, w, rng.Step)
		}
		w.WriteString("var " + name + ": usize = " + exprString(b, w, rng.Start) + ";\n")
		w.Pad()
		w.WriteString("while (" + name + " " + op + " " + exprString(b, w, rng.End) + ") : (" + name + " += " + step + ") ")
		b.emitBlock(w, s.Body)
		w.WriteString("\n")
		return
	}
	source := exprString(b, w, s.Source)
	w.WriteString("for (" + source + ") |" + name + "| ")
	b.emitBlock(w, s.Body)
	w.WriteString("\n")
}

func emitPattern(b *Backend, p *ast.DestructurePattern) string {
	if p.Name != "" {
		return zigName(p.Name)
	}
	return "_"
}

func (b *Backend) emitDiscretio(w *codegen.Writer, s *ast.DiscretioDeclaration) {
	w.Pad()
	w.WriteString("const " + s.Name + " = union(enum) {\n")
	w.Indent()
	for _, v := range s.Variants {
		w.Pad()
		if len(v.Fields) == 0 {
			w.WriteString(v.Name + ",\n")
			continue
		}
		w.WriteString(v.Name + ": struct {\n")
		w.Indent()
		for _, f := range v.Fields {
			w.Pad()
			w.WriteString(zigName(f.Name) + ": " + b.EmitType(f.Type) + ",\n")
		}
		w.Dedent()
		w.Pad()
		w.WriteString("},\n")
	}
	w.Dedent()
	w.Pad()
	w.WriteString("};\n")
}

func (b *Backend) emitDiscerne(w *codegen.Writer, s *ast.DiscerneStatement) {
	w.Pad()
	subject := exprString(b, w, s.Subject)
	w.WriteString("switch (" + subject + ") {\n")
	w.Indent()
	for _, c := range s.Cases {
		w.Pad()
		w.WriteString("." + c.VariantName + " => |payload| {\n")
		w.Indent()
		for i, bind := range c.Bindings {
			w.Pad()
			w.WriteString("const " + zigName(bind) + " = payload[" + strconv.Itoa(i) + "];\n")
		}
		for _, st := range c.Body.Statements {
			b.EmitStatement(w, st)
		}
		w.Dedent()
		w.Pad()
		w.WriteString("},\n")
	}
	if s.DefaultBody != nil {
		w.Pad()
		w.WriteString("else => {\n")
		w.Indent()
		for _, st := range s.DefaultBody.Statements {
			b.EmitStatement(w, st)
		}
		w.Dedent()
		w.Pad()
		w.WriteString("},\n")
	}
	w.Dedent()
	w.Pad()
	w.WriteString("}\n")
}

// emitGenus lowers a genus into the struct shape spec.md §4.5 and scenario 5
// specify exactly: Self alias, pub fn init(overrides: anytype) Self using
// @hasField per field, user creo called after population.
func (b *Backend) emitGenus(w *codegen.Writer, s *ast.GenusDeclaration) {
	w.Pad()
	w.WriteString("const " + s.Name + " = struct {\n")
	w.Indent()
	w.Pad()
	w.WriteString("const Self = @This();\n\n")
	for _, f := range s.Fields {
		w.Pad()
		typ := "anytype"
		if f.Type != nil {
			typ = b.EmitType(f.Type)
		}
		w.WriteString(zigName(f.Name) + ": " + typ)
		if f.Default != nil {
			w.WriteString(" = " + exprString(b, w, f.Default))
		}
		w.WriteString(",\n")
	}
	w.WriteString("\n")
	w.Pad()
	w.WriteString("pub fn init(overrides: anytype) Self {\n")
	w.Indent()
	w.Pad()
	w.WriteString("var self = Self{};\n")
	var ctor *ast.MethodDeclaration
	for _, f := range s.Fields {
		w.Pad()
		w.WriteString("if (@hasField(@TypeOf(overrides), \"" + f.Name + "\")) {\n")
		w.Indent()
		w.Pad()
		w.WriteString("self." + zigName(f.Name) + " = overrides." + f.Name + ";\n")
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")
	}
	for _, m := range s.Methods {
		if m.IsConstructor {
			ctor = m
		}
	}
	if ctor != nil {
		w.Pad()
		w.WriteString("self.creo();\n")
	}
	w.Pad()
	w.WriteString("return self;\n")
	w.Dedent()
	w.Pad()
	w.WriteString("}\n")
	for _, m := range s.Methods {
		if m.IsConstructor {
			w.Pad()
			w.WriteString("fn creo(self: *Self) void ")
			b.emitBlock(w, m.Body)
			w.WriteString("\n")
			continue
		}
		w.Pad()
		recv := "self: *Self"
		if len(m.Params) > 0 {
			recv += ", "
		}
		w.WriteString("pub fn " + zigName(m.Name) + "(" + recv + emitParams(b, w, m.Params) + ") ")
		retType := "void"
		if m.ReturnType != nil {
			retType = b.EmitType(m.ReturnType)
		}
		if errorUnionReturn(m.Verb) {
			w.WriteString("!" + retType + " ")
		} else {
			w.WriteString(retType + " ")
		}
		b.emitBlock(w, m.Body)
		w.WriteString("\n")
	}
	w.Dedent()
	w.Pad()
	w.WriteString("};\n")
}

// Zig's test blocks have no hook lifecycle, so cura ante/post bodies are
// inlined at the start/end of every casus rather than registered separately.
func (b *Backend) emitProbatio(w *codegen.Writer, s *ast.ProbatioDeclaration) {
	for _, c := range s.Cases {
		w.Pad()
		w.WriteString("test \"" + s.Description + ": " + c.Description + "\" {\n")
		w.Indent()
		for _, h := range s.Hooks {
			if h.Kind == ast.HookAnte {
				for _, st := range h.Body.Statements {
					b.EmitStatement(w, st)
				}
			}
		}
		for _, st := range c.Body.Statements {
			b.EmitStatement(w, st)
		}
		for _, h := range s.Hooks {
			if h.Kind == ast.HookPost {
				for _, st := range h.Body.Statements {
					b.EmitStatement(w, st)
				}
			}
		}
		w.Dedent()
		w.Pad()
		w.WriteString("}\n")
	}
}

func (b *Backend) EmitExpression(w *codegen.Writer, expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		w.WriteString(zigName(e.Value))
	case *ast.SelfExpression:
		w.WriteString("self")
	case *ast.IntegerLiteral:
		w.WriteString(e.String())
	case *ast.BigIntLiteral:
		w.WriteString(strconv.FormatInt(e.Value, 10))
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
		w.WriteString("\"")
		for _, p := range e.Parts {
			if p.Expr != nil {
				w.WriteString("{any}")
			} else {
				w.WriteString(p.Text)
			}
		}
		w.WriteString("\"")
	case *ast.BinaryExpression:
		b.emitBinary(w, e)
	case *ast.UnaryExpression:
		b.emitUnary(w, e)
	case *ast.GroupedExpression:
		w.WriteString("(")
		b.EmitExpression(w, e.Inner)
		w.WriteString(")")
	case *ast.TernaryExpression:
		w.WriteString("if (")
		b.EmitExpression(w, e.Condition)
		w.WriteString(") ")
		b.wrap(w, e.Then)
		w.WriteString(" else ")
		b.wrap(w, e.Else)
	case *ast.RangeExpression:
		w.WriteString("(")
		b.EmitExpression(w, e.Start)
		w.WriteString("..")
		b.EmitExpression(w, e.End)
		w.WriteString(")")
	case *ast.MemberExpression:
		b.wrap(w, e.Object)
		w.WriteString(".")
		w.WriteString(e.Property)
	case *ast.ComputedMemberExpression:
		b.wrap(w, e.Object)
		w.WriteString("[")
		b.EmitExpression(w, e.Index)
		w.WriteString("]")
	case *ast.CallExpression:
		b.wrap(w, e.Callee)
		w.WriteString("(")
		for i, a := range e.Arguments {
			if i > 0 {
				w.WriteString(", ")
			}
			b.EmitExpression(w, a)
		}
		w.WriteString(")")
	case *ast.NewExpression:
		if e.From != nil {
			// "novum Type de expr" shallow-clones an existing value; Zig
			// structs are value types, so a plain copy already does this.
			b.EmitExpression(w, e.From)
			return
		}
		w.WriteString(b.EmitType(e.Type) + ".init(")
		if len(e.Arguments) == 0 {
			w.WriteString(".{}")
		} else {
			w.WriteString(".{ ")
			for i, a := range e.Arguments {
				if i > 0 {
					w.WriteString(", ")
				}
				b.EmitExpression(w, a)
			}
			w.WriteString(" }")
		}
		w.WriteString(")")
	case *ast.AwaitExpression:
		w.WriteString("try ")
		b.wrap(w, e.Argument)
	case *ast.CastExpression:
		w.WriteString("@as(" + b.EmitType(e.Type) + ", ")
		b.EmitExpression(w, e.Value)
		w.WriteString(")")
	case *ast.TypeTestExpression:
		if e.Negative {
			w.WriteString("!(")
		}
		w.WriteString("@TypeOf(")
		b.EmitExpression(w, e.Value)
		w.WriteString(") == " + b.EmitType(e.Type))
		if e.Negative {
			w.WriteString(")")
		}
	case *ast.PrefixBlockExpression:
		if e.Body != nil {
			w.WriteString("comptime ")
			b.emitBlock(w, e.Body)
			return
		}
		parts := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			parts[i] = exprString(b, w, a)
		}
		w.WriteString("std.fmt.allocPrint(allocator, \"" + strings.Repeat("{any} ", len(parts)) + "\", .{ " + strings.Join(parts, ", ") + " })")
	case *ast.ArrayLiteral:
		w.WriteString(".{ ")
		for i, el := range e.Elements {
			if i > 0 {
				w.WriteString(", ")
			}
			b.EmitExpression(w, el)
		}
		w.WriteString(" }")
	case *ast.ObjectLiteral:
		if len(e.Properties) == 0 {
			w.WriteString(".{}")
			return
		}
		w.WriteString(".{ ")
		for i, p := range e.Properties {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString("." + p.Key + " = ")
			b.EmitExpression(w, p.Value)
		}
		w.WriteString(" }")
	case *ast.ArrowFunctionExpression:
		w.WriteString("(" + emitParams(b, w, e.Params) + ") ")
		switch bd := e.Body.(type) {
		case *ast.BlockStatement:
			b.emitBlock(w, bd)
		case ast.Expression:
			w.WriteString("=> ")
			b.EmitExpression(w, bd)
		}
	case *ast.LambdaExpression:
		w.WriteString("(" + emitParams(b, w, e.Params) + ") ")
		switch bd := e.Body.(type) {
		case *ast.BlockStatement:
			b.emitBlock(w, bd)
		case ast.Expression:
			w.WriteString("=> ")
			b.EmitExpression(w, bd)
		}
	default:
		w.Placeholder(codegen.CodeMalformedNode, "unsupported expression kind", e)
	}
}

func (b *Backend) wrap(w *codegen.Writer, e ast.Expression) {
	if codegen.IsSimpleOperand(e) {
		b.EmitExpression(w, e)
		return
	}
	w.WriteString("(")
	b.EmitExpression(w, e)
	w.WriteString(")")
}

// emitBinary consumes the same string-typed hint the TS backend reads from
// semantic.Info, but lowers string equality to std.mem.eql/!std.mem.eql
// instead of ===/!== and string "+" to "++" (spec.md §4.5 Zig: "string
// equality → std.mem.eql(u8,a,b)").
func (b *Backend) emitBinary(w *codegen.Writer, e *ast.BinaryExpression) {
	switch e.Operator {
	case "et":
		b.wrap(w, e.Left)
		w.WriteString(" and ")
		b.wrap(w, e.Right)
		return
	case "aut":
		b.wrap(w, e.Left)
		w.WriteString(" or ")
		b.wrap(w, e.Right)
		return
	case "vel":
		b.wrap(w, e.Left)
		w.WriteString(" orelse ")
		b.wrap(w, e.Right)
		return
	}
	if (e.Operator == "==" || e.Operator == "!=" || e.Operator == "===" || e.Operator == "!==") &&
		w.Info() != nil && w.Info().IsStringComparison(e) {
		if e.Operator == "!=" || e.Operator == "!==" {
			w.WriteString("!")
		}
		w.WriteString("std.mem.eql(u8, ")
		b.EmitExpression(w, e.Left)
		w.WriteString(", ")
		b.EmitExpression(w, e.Right)
		w.WriteString(")")
		return
	}
	op := e.Operator
	switch op {
	case "===":
		op = "=="
	case "!==":
		op = "!="
	}
	if op == "+" && w.Info() != nil && w.Info().IsStringComparison(e) {
		b.wrap(w, e.Left)
		w.WriteString(" ++ ")
		b.wrap(w, e.Right)
		return
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
