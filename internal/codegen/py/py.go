// Package py implements the Python codegen.Backend, grounded on spec.md
// §4.5's "Target: Python (and related)" section: the most lossy target
// (types elided, destructuring unpacked structurally) but permitted because
// the source language is dynamically-typable.
package py

import (
	"strconv"
	"strings"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/pkg/ast"
)

type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) Name() string       { return "py" }
func (b *Backend) DefaultIndent() int { return 4 }

var reserved = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true, "class": true,
	"continue": true, "def": true, "del": true, "elif": true, "else": true,
	"except": true, "finally": true, "for": true, "from": true, "global": true,
	"if": true, "import": true, "in": true, "is": true, "lambda": true,
	"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
	"return": true, "try": true, "while": true, "with": true, "yield": true,
	"self": true,
}

func pyName(name string) string { return codegen.RenameIfReserved(name, reserved, "_") }

// EmitType renders a Python type expression: the annotation's name as
// written, wrapped as list[...] for the array shorthand and Optional[...]
// when nullable.
func (b *Backend) EmitType(t *ast.TypeAnnotation) string {
	if t == nil {
		return ""
	}
	name := t.Name
	if t.ArrayShorthand {
		name = "list[" + name + "]"
	}
	if t.Nullable {
		name = "Optional[" + name + "]"
	}
	return name
}

func (b *Backend) EmitProgram(w *codegen.Writer, program *ast.Program) {
	w.WriteLine("import sys")
	w.WriteLine("import copy")
	w.WriteLine("import dataclasses")
	w.WriteLine("import unittest")
	w.WriteLine("from dataclasses import dataclass")
	w.WriteLine("from enum import Enum")
	w.WriteLine("from typing import ClassVar, Optional, Protocol, cast")
	w.WriteLine("")
	for _, s := range program.Statements {
		b.EmitStatement(w, s)
	}
}

func exprString(b *Backend, w *codegen.Writer, e ast.Expression) string {
	fw := w.Fragment()
	b.EmitExpression(fw, e)
	return fw.String()
}

func emitParams(b *Backend, w *codegen.Writer, params []*ast.Parameter, withSelf bool) string {
	parts := []string{}
	if withSelf {
		parts = append(parts, "self")
	}
	for _, p := range params {
		prefix := ""
		if p.Rest {
			prefix = "*"
		}
		s := prefix + pyName(p.Name)
		if p.DefaultValue != nil {
			s += "=" + exprString(b, w, p.DefaultValue)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (b *Backend) emitBlock(w *codegen.Writer, blk *ast.BlockStatement) {
	w.Indent()
	if blk == nil || len(blk.Statements) == 0 {
		w.WriteLine("pass")
	} else {
		for _, s := range blk.Statements {
			b.EmitStatement(w, s)
		}
	}
	w.Dedent()
}

func verbPrefix(verb ast.ReturnVerb) string {
	switch {
	case verb.Async() && verb.Generator():
		return "async def"
	case verb.Generator():
		return "def"
	case verb.Async():
		return "async def"
	default:
		return "def"
	}
}

func (b *Backend) emitFunctionHead(w *codegen.Writer, name string, params []*ast.Parameter, verb ast.ReturnVerb, withSelf bool) {
	w.Pad()
	w.WriteString(verbPrefix(verb) + " " + pyName(name) + "(" + emitParams(b, w, params, withSelf) + "):\n")
}

func (b *Backend) EmitStatement(w *codegen.Writer, stmt ast.Statement) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		for _, st := range s.Statements {
			b.EmitStatement(w, st)
		}

	case *ast.ExpressionStatement:
		if s.Expr != nil {
			w.Pad()
			b.EmitExpression(w, s.Expr)
			w.WriteString("\n")
		}

	case *ast.VarDeclaration:
		w.Pad()
		if s.Pattern != nil {
			w.WriteString(emitPattern(s.Pattern))
		} else {
			w.WriteString(pyName(s.Name))
		}
		w.WriteString(" = ")
		if s.Value != nil {
			b.EmitExpression(w, s.Value)
		} else {
			w.WriteString("None")
		}
		w.WriteString("\n")

	case *ast.FunctionDeclaration:
		b.emitFunctionHead(w, s.Name, s.Params, s.Verb, false)
		b.emitBlock(w, s.Body)

	case *ast.GenusDeclaration:
		b.emitGenus(w, s)

	case *ast.PactumDeclaration:
		w.Pad()
		w.WriteString("class " + s.Name + "(Protocol):\n")
		w.Indent()
		for _, m := range s.Methods {
			w.Pad()
			w.WriteString("def " + pyName(m.Name) + "(self" + func() string {
				if len(m.Params) == 0 {
					return ""
				}
				return ", " + emitParams(b, w, m.Params, false)
			}() + ") -> ...: ...\n")
		}
		if len(s.Methods) == 0 {
			w.Pad()
			w.WriteString("pass\n")
		}
		w.Dedent()

	case *ast.TypeAliasDeclaration:
		w.Pad()
		w.WriteString(s.Name + " = " + b.EmitType(s.Type) + "\n")

	case *ast.OrdoDeclaration:
		w.Pad()
		w.WriteString("class " + s.Name + "(Enum):\n")
		w.Indent()
		for i, m := range s.Members {
			w.Pad()
			if m.Value != nil {
				w.WriteString(m.Name + " = " + exprString(b, w, m.Value) + "\n")
			} else {
				w.WriteString(m.Name + " = " + strconv.Itoa(i) + "\n")
			}
		}
		w.Dedent()

	case *ast.DiscretioDeclaration:
		b.emitDiscretio(w, s)

	case *ast.ImportDeclaration:
		w.Pad()
		names := make([]string, len(s.Names))
		for i, n := range s.Names {
			if s.Aliases[i] != n {
				names[i] = n + " as " + s.Aliases[i]
			} else {
				names[i] = n
			}
		}
		w.WriteString("from " + s.Source + " import " + strings.Join(names, ", ") + "\n")

	case *ast.IfStatement:
		b.emitIf(w, s)

	case *ast.WhileStatement:
		w.Pad()
		w.WriteString("while " + exprString(b, w, s.Condition) + ":\n")
		b.emitBlock(w, s.Body)

	case *ast.IterationStatement:
		b.emitIteration(w, s)

	case *ast.SwitchStatement:
		w.Pad()
		subj := exprString(b, w, s.Subject)
		w.WriteString("match " + subj + ":\n")
		w.Indent()
		for _, c := range s.Cases {
			w.Pad()
			if c.Value == nil {
				w.WriteString("case _:\n")
			} else {
				w.WriteString("case " + exprString(b, w, c.Value) + ":\n")
			}
			b.emitBlock(w, c.Body)
		}
		w.Dedent()

	case *ast.DiscerneStatement:
		b.emitDiscerne(w, s)

	case *ast.DispatchStatement:
		b.emitDispatch(w, s)

	case *ast.GuardStatement:
		w.Pad()
		w.WriteString("if not (" + exprString(b, w, s.Condition) + "):\n")
		b.emitBlock(w, s.Else)

	case *ast.AssertStatement:
		w.Pad()
		w.WriteString("assert " + exprString(b, w, s.Condition))
		if s.Message != nil {
			w.WriteString(", " + exprString(b, w, s.Message))
		}
		w.WriteString("\n")

	case *ast.ReturnStatement:
		w.Pad()
		if s.Value != nil {
			w.WriteString("return " + exprString(b, w, s.Value) + "\n")
		} else {
			w.WriteString("return\n")
		}

	case *ast.ThrowStatement:
		w.Pad()
		w.WriteString("raise RuntimeError(" + exprString(b, w, s.Value) + ")\n")

	case *ast.BreakStatement:
		w.WriteLine("break")

	case *ast.ContinueStatement:
		w.WriteLine("continue")

	case *ast.TryStatement:
		w.Pad()
		w.WriteString("try:\n")
		b.emitBlock(w, s.Body)
		if s.Handler != nil {
			w.Pad()
			w.WriteString("except Exception as " + pyName(s.CatchName) + ":\n")
			b.emitBlock(w, s.Handler)
		}
		if s.Finally != nil {
			w.Pad()
			w.WriteString("finally:\n")
			b.emitBlock(w, s.Finally)
		}

	case *ast.CuraStatement:
		w.Pad()
		w.WriteString("with " + exprString(b, w, s.Value) + " as " + pyName(s.Binding) + ":\n")
		b.emitBlock(w, s.Body)

	case *ast.ExplicitBlockStatement:
		if s.Handler != nil {
			w.Pad()
			w.WriteString("try:\n")
			b.emitBlock(w, s.Body)
			w.Pad()
			w.WriteString("except Exception as " + pyName(s.CatchName) + ":\n")
			b.emitBlock(w, s.Handler)
		} else {
			for _, st := range s.Body.Statements {
				b.EmitStatement(w, st)
			}
		}

	case *ast.IOStatement:
		w.Pad()
		fn := map[string]string{"scribe": "print", "vide": "print", "mone": "print"}[s.Verb]
		if fn == "" {
			fn = "print"
		}
		args := make([]string, len(s.Arguments))
		for i, a := range s.Arguments {
			args[i] = exprString(b, w, a)
		}
		if s.Verb == "mone" {
			w.WriteString(fn + "(" + strings.Join(args, ", ") + ", file=sys.stderr)\n")
		} else {
			w.WriteString(fn + "(" + strings.Join(args, ", ") + ")\n")
		}

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
		w.Pad()
		w.WriteString("try:\n")
		w.Indent()
		w.Pad()
		w.WriteString("if " + exprString(b, w, s.Condition) + ":\n")
		b.emitBlock(w, s.Then)
		w.Dedent()
		w.Pad()
		w.WriteString("except Exception as " + pyName(s.CatchBind) + ":\n")
		switch e := s.Else.(type) {
		case *ast.BlockStatement:
			b.emitBlock(w, e)
		default:
			b.emitBlock(w, asBlock(e))
		}
		return
	}
	w.Pad()
	w.WriteString("if " + exprString(b, w, s.Condition) + ":\n")
	b.emitBlock(w, s.Then)
	if s.Else != nil {
		switch e := s.Else.(type) {
		case *ast.BlockStatement:
			w.Pad()
			w.WriteString("else:\n")
			b.emitBlock(w, e)
		case *ast.IfStatement:
			w.Pad()
			w.WriteString("el")
			b.emitElif(w, e)
		default:
			w.Pad()
			w.WriteString("else:\n")
			b.emitBlock(w, asBlock(e))
		}
	}
}

func (b *Backend) emitElif(w *codegen.Writer, s *ast.IfStatement) {
	w.WriteString("if " + exprString(b, w, s.Condition) + ":\n")
	b.emitBlock(w, s.Then)
	if s.Else != nil {
		switch e := s.Else.(type) {
		case *ast.BlockStatement:
			w.Pad()
			w.WriteString("else:\n")
			b.emitBlock(w, e)
		case *ast.IfStatement:
			w.Pad()
			w.WriteString("el")
			b.emitElif(w, e)
		default:
			w.Pad()
			w.WriteString("else:\n")
			b.emitBlock(w, asBlock(e))
		}
	}
}

func asBlock(s ast.Statement) *ast.BlockStatement {
	if blk, ok := s.(*ast.BlockStatement); ok {
		return blk
	}
	return &ast.BlockStatement{Statements: []ast.Statement{s}}
}

func (b *Backend) emitIteration(w *codegen.Writer, s *ast.IterationStatement) {
	w.Pad()
	name := pyName(s.Binding)
	if s.Pattern != nil {
		name = emitPattern(s.Pattern)
	}
	if rng, ok := s.Source.(*ast.RangeExpression); ok {
		end := exprString(b, w, rng.End)
		if rng.Inclusive {
			end = end + " + 1"
		}
		step := "1"
		if rng.Step != nil {
			step = exprString(b, w, rng.Step)
		}
		w.WriteString("for " + name + " in range(" + exprString(b, w, rng.Start) + ", " + end + ", " + step + "):\n")
		b.emitBlock(w, s.Body)
		return
	}
	source := exprString(b, w, s.Source)
	if s.Transform != nil {
		source = applyTransform(b, w, source, s.Transform)
	}
	switch s.Kind {
	case ast.IterIn:
		w.WriteString("for " + name + " in " + source + ".keys():\n")
	default:
		w.WriteString("for " + name + " in " + source + ":\n")
	}
	b.emitBlock(w, s.Body)
}

func applyTransform(b *Backend, w *codegen.Writer, source string, t *ast.IterationTransform) string {
	switch t.Kind {
	case "prima":
		return source + "[:" + exprString(b, w, t.Count) + "]"
	case "ultima":
		return source + "[-" + exprString(b, w, t.Count) + ":]"
	case "summa":
		return "sum(" + source + ")"
	default:
		return source
	}
}

func emitPattern(p *ast.DestructurePattern) string {
	if p.Name != "" {
		return pyName(p.Name)
	}
	if p.IsArray {
		parts := make([]string, len(p.Elements))
		for i, el := range p.Elements {
			if el.Skip {
				parts[i] = "_"
			} else {
				parts[i] = emitPattern(el)
			}
		}
		if p.Rest != "" {
			parts = append(parts, "*"+pyName(p.Rest))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	if p.IsObject {
		names := make([]string, len(p.Fields))
		for i, f := range p.Fields {
			alias := f.Key
			if f.Alias != "" {
				alias = f.Alias
			}
			names[i] = pyName(alias)
		}
		return "(" + strings.Join(names, ", ") + ")"
	}
	return "_"
}

// emitDiscretio gives every variant a "kind" tag field (mirroring the TS
// backend's tagged union), so discerne can match on subject.kind without
// needing the discretio's own declared name in scope at the match site.
func (b *Backend) emitDiscretio(w *codegen.Writer, s *ast.DiscretioDeclaration) {
	w.Pad()
	w.WriteString("# discretio " + s.Name + "\n")
	for _, v := range s.Variants {
		w.Pad()
		w.WriteString("@dataclass\n")
		w.Pad()
		w.WriteString("class " + s.Name + "_" + v.Name + ":\n")
		w.Indent()
		w.Pad()
		w.WriteString("kind: ClassVar[str] = " + strconv.Quote(v.Name) + "\n")
		for _, f := range v.Fields {
			w.Pad()
			w.WriteString(pyName(f.Name))
			if f.Type != nil {
				if t := b.EmitType(f.Type); t != "" {
					w.WriteString(": " + t)
				}
			}
			w.WriteString("\n")
		}
		w.Dedent()
	}
}

// emitDiscerne matches on the subject's "kind" tag (set by emitDiscretio)
// rather than the variant's class name, so it needs no lookup back to the
// owning discretio's declared name.
func (b *Backend) emitDiscerne(w *codegen.Writer, s *ast.DiscerneStatement) {
	subject := exprString(b, w, s.Subject)
	w.Pad()
	w.WriteString("match " + subject + ".kind:\n")
	w.Indent()
	for _, c := range s.Cases {
		w.Pad()
		w.WriteString("case " + strconv.Quote(c.VariantName) + ":\n")
		w.Indent()
		if len(c.Bindings) > 0 {
			bindings := make([]string, len(c.Bindings))
			for i, bn := range c.Bindings {
				bindings[i] = pyName(bn)
			}
			w.Pad()
			w.WriteString("(" + strings.Join(bindings, ", ") + ") = dataclasses.astuple(" + subject + ")\n")
		}
		for _, st := range c.Body.Statements {
			b.EmitStatement(w, st)
		}
		w.Dedent()
	}
	if s.DefaultBody != nil {
		w.Pad()
		w.WriteString("case _:\n")
		b.emitBlock(w, s.DefaultBody)
	}
	w.Dedent()
}

func (b *Backend) emitDispatch(w *codegen.Writer, s *ast.DispatchStatement) {
	subject := exprString(b, w, s.Subject)
	for i, c := range s.Cases {
		w.Pad()
		kw := "if"
		if i > 0 {
			kw = "elif"
		}
		w.WriteString(kw + " isinstance(" + subject + ", " + b.EmitType(c.Type) + "):\n")
		w.Indent()
		w.Pad()
		w.WriteString(pyName(c.Binding) + " = " + subject + "\n")
		w.Dedent()
		for _, st := range c.Body.Statements {
			b.EmitStatement(w, st)
		}
	}
	if s.DefaultBody != nil {
		w.Pad()
		if len(s.Cases) > 0 {
			w.WriteString("else:\n")
		} else {
			w.WriteString("if True:\n")
		}
		b.emitBlock(w, s.DefaultBody)
	}
}

func (b *Backend) emitGenus(w *codegen.Writer, s *ast.GenusDeclaration) {
	w.Pad()
	w.WriteString("@dataclass\n")
	w.Pad()
	w.WriteString("class " + s.Name + ":\n")
	w.Indent()
	if len(s.Fields) == 0 && len(s.Methods) == 0 {
		w.Pad()
		w.WriteString("pass\n")
	}
	for _, f := range s.Fields {
		w.Pad()
		w.WriteString(pyName(f.Name))
		if t := b.EmitType(f.Type); t != "" {
			w.WriteString(": " + t)
		}
		if f.Default != nil {
			w.WriteString(" = " + exprString(b, w, f.Default))
		}
		w.WriteString("\n")
	}
	for _, m := range s.Methods {
		if m.IsConstructor {
			b.emitFunctionHead(w, "__post_init__", m.Params, m.Verb, true)
			b.emitBlock(w, m.Body)
			continue
		}
		b.emitFunctionHead(w, m.Name, m.Params, m.Verb, true)
		b.emitBlock(w, m.Body)
	}
	w.Dedent()
}

func (b *Backend) emitProbatio(w *codegen.Writer, s *ast.ProbatioDeclaration) {
	className := "Test" + strings.ReplaceAll(strings.Title(s.Description), " ", "")
	w.Pad()
	w.WriteString("class " + className + "(unittest.TestCase):\n")
	w.Indent()
	for _, h := range s.Hooks {
		w.Pad()
		fn := "setUp"
		if h.Kind == ast.HookPost {
			fn = "tearDown"
		}
		w.WriteString("def " + fn + "(self):\n")
		b.emitBlock(w, h.Body)
	}
	for i, c := range s.Cases {
		w.Pad()
		w.WriteString("def test_" + strconv.Itoa(i) + "(self):\n")
		w.Indent()
		w.Pad()
		w.WriteString("\"\"\"" + c.Description + "\"\"\"\n")
		w.Dedent()
		b.emitBlock(w, c.Body)
	}
	w.Dedent()
}

func (b *Backend) EmitExpression(w *codegen.Writer, expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		w.WriteString(pyName(e.Value))
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
			w.WriteString("True")
		} else {
			w.WriteString("False")
		}
	case *ast.NilLiteral:
		w.WriteString("None")
	case *ast.TemplateLiteral:
		w.WriteString("f\"")
		for _, p := range e.Parts {
			if p.Expr != nil {
				w.WriteString("{" + exprString(b, w, p.Expr) + "}")
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
		b.wrap(w, e.Then)
		w.WriteString(" if ")
		b.wrap(w, e.Condition)
		w.WriteString(" else ")
		b.wrap(w, e.Else)
	case *ast.RangeExpression:
		end := exprString(b, w, e.End)
		if e.Inclusive {
			end += " + 1"
		}
		step := "1"
		if e.Step != nil {
			step = exprString(b, w, e.Step)
		}
		w.WriteString("range(" + exprString(b, w, e.Start) + ", " + end + ", " + step + ")")
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
			if i < len(e.Spreads) && e.Spreads[i] {
				w.WriteString("*")
			}
			b.EmitExpression(w, a)
		}
		w.WriteString(")")
	case *ast.NewExpression:
		if e.From != nil {
			w.WriteString("copy.deepcopy(" + exprString(b, w, e.From) + ")")
			return
		}
		w.WriteString(b.EmitType(e.Type) + "(")
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
		w.WriteString("cast(" + b.EmitType(e.Type) + ", " + exprString(b, w, e.Value) + ")")
	case *ast.TypeTestExpression:
		if e.Negative {
			w.WriteString("not ")
		}
		w.WriteString("isinstance(" + exprString(b, w, e.Value) + ", " + b.EmitType(e.Type) + ")")
	case *ast.PrefixBlockExpression:
		if e.Body != nil {
			// No compile-time block in Python; inline as a plain nested
			// block evaluated eagerly.
			w.WriteString("(lambda: (")
			for _, st := range e.Body.Statements {
				if ret, ok := st.(*ast.ReturnStatement); ok && ret.Value != nil {
					b.EmitExpression(w, ret.Value)
				}
			}
			w.WriteString("))()")
			return
		}
		parts := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			parts[i] = exprString(b, w, a)
		}
		w.WriteString("f\"" + strings.Join(parts, " {} ") + "\"")
	case *ast.ArrayLiteral:
		w.WriteString("[")
		for i, el := range e.Elements {
			if i > 0 {
				w.WriteString(", ")
			}
			if i < len(e.Spreads) && e.Spreads[i] {
				w.WriteString("*")
			}
			b.EmitExpression(w, el)
		}
		w.WriteString("]")
	case *ast.ObjectLiteral:
		w.WriteString("{")
		for i, p := range e.Properties {
			if i > 0 {
				w.WriteString(", ")
			}
			if p.Spread {
				w.WriteString("**" + exprString(b, w, p.Value))
				continue
			}
			w.WriteString(strconv.Quote(p.Key) + ": ")
			b.EmitExpression(w, p.Value)
		}
		w.WriteString("}")
	case *ast.ArrowFunctionExpression:
		b.emitLambdaLike(w, e.Params, e.Body)
	case *ast.LambdaExpression:
		b.emitLambdaLike(w, e.Params, e.Body)
	default:
		w.Placeholder(codegen.CodeMalformedNode, "unsupported expression kind", e)
	}
}

// emitLambdaLike renders both arrow functions and lambda-DSL forms as a
// Python `lambda`; a block body is unsupported by Python's lambda syntax,
// so it is approximated by evaluating only its final return expression.
func (b *Backend) emitLambdaLike(w *codegen.Writer, params []*ast.Parameter, body ast.Node) {
	plist := make([]string, len(params))
	for i, p := range params {
		plist[i] = pyName(p.Name)
	}
	w.WriteString("lambda " + strings.Join(plist, ", ") + ": ")
	switch bd := body.(type) {
	case *ast.BlockStatement:
		for _, st := range bd.Statements {
			if ret, ok := st.(*ast.ReturnStatement); ok && ret.Value != nil {
				b.EmitExpression(w, ret.Value)
				return
			}
		}
		w.WriteString("None")
	case ast.Expression:
		b.EmitExpression(w, bd)
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

var wordOp = map[string]string{
	"et": "and", "aut": "or", "vel": "or",
}

func (b *Backend) emitBinary(w *codegen.Writer, e *ast.BinaryExpression) {
	if op, ok := wordOp[e.Operator]; ok {
		b.wrap(w, e.Left)
		w.WriteString(" " + op + " ")
		b.wrap(w, e.Right)
		return
	}
	op := e.Operator
	switch op {
	case "===":
		op = "=="
	case "!==":
		op = "!="
	}
	if op == "==" || op == "!=" {
		b.wrap(w, e.Left)
		w.WriteString(" " + op + " ")
		b.wrap(w, e.Right)
		return
	}
	b.wrap(w, e.Left)
	w.WriteString(" " + op + " ")
	b.wrap(w, e.Right)
}

var predicateOp = map[string]string{
	"nulla": "is None", "nonnulla": "is not None",
	"nihil": "is None", "nonnihil": "is not None",
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
		w.WriteString("not ")
		b.wrap(w, e.Operand)
	case "negativum":
		b.wrap(w, e.Operand)
		w.WriteString(" < 0")
	case "positivum":
		b.wrap(w, e.Operand)
		w.WriteString(" > 0")
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
