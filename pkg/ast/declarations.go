package ast

import (
	"strings"

	"github.com/faber-lang/faber/pkg/token"
)

// VarKind distinguishes the four declaration openers.
type VarKind int

const (
	VarVaria     VarKind = iota // mutable, synchronous
	VarFixum                    // immutable, synchronous
	VarFigendum                 // immutable, awaited at declaration
	VarVariandum                // mutable, awaited at declaration
)

func (k VarKind) String() string {
	switch k {
	case VarVaria:
		return "varia"
	case VarFixum:
		return "fixum"
	case VarFigendum:
		return "figendum"
	case VarVariandum:
		return "variandum"
	default:
		return "varia"
	}
}

// VarDeclaration is "varia|fixum|figendum|variandum <pattern>[: Type] = expr;".
// Name is set for a plain identifier binding; Pattern is set instead for a
// destructuring binding (only one of the two is non-zero).
type VarDeclaration struct {
	Token   token.Token
	Kind    VarKind
	Name    string
	Pattern *DestructurePattern
	Type    *TypeAnnotation
	Value   Expression
}

func (d *VarDeclaration) statementNode()        {}
func (d *VarDeclaration) declarationNode()       {}
func (d *VarDeclaration) TokenLiteral() string   { return d.Token.Text }
func (d *VarDeclaration) Pos() token.Position    { return d.Token.Pos }
func (d *VarDeclaration) String() string {
	var out strings.Builder
	out.WriteString(d.Kind.String())
	out.WriteString(" ")
	if d.Pattern != nil {
		out.WriteString(d.Pattern.String())
	} else {
		out.WriteString(d.Name)
	}
	if d.Type != nil {
		out.WriteString(": ")
		out.WriteString(d.Type.String())
	}
	if d.Value != nil {
		out.WriteString(" = ")
		out.WriteString(d.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// ReturnVerb classifies a function's declared return/async-generator shape:
// fit (sync), fiet (async), fiunt (sync generator), fient (async generator).
type ReturnVerb int

const (
	VerbFit ReturnVerb = iota
	VerbFiet
	VerbFiunt
	VerbFient
)

func (v ReturnVerb) String() string {
	switch v {
	case VerbFit:
		return "fit"
	case VerbFiet:
		return "fiet"
	case VerbFiunt:
		return "fiunt"
	case VerbFient:
		return "fient"
	default:
		return "fit"
	}
}

func (v ReturnVerb) Async() bool {
	return v == VerbFiet || v == VerbFient
}

func (v ReturnVerb) Generator() bool {
	return v == VerbFiunt || v == VerbFient
}

// FunctionDeclaration is "functio name(params) fit|fiet|fiunt|fient [Type] { body }".
type FunctionDeclaration struct {
	Token      token.Token
	Name       string
	Params     []*Parameter
	Verb       ReturnVerb
	ReturnType *TypeAnnotation
	Body       *BlockStatement
}

func (d *FunctionDeclaration) statementNode()      {}
func (d *FunctionDeclaration) declarationNode()    {}
func (d *FunctionDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *FunctionDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *FunctionDeclaration) String() string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.String()
	}
	s := "functio " + d.Name + "(" + strings.Join(params, ", ") + ") " + d.Verb.String()
	if d.ReturnType != nil {
		s += " " + d.ReturnType.String()
	}
	return s + " " + d.Body.String()
}

// Visibility is a genus member's access modifier.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityPublicus
	VisibilityPrivatus
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublicus:
		return "publicus"
	case VisibilityPrivatus:
		return "privatus"
	default:
		return ""
	}
}

// FieldDeclaration is one field of a genus, with modifiers for static
// ("generis") and reactive ("nexum") fields.
type FieldDeclaration struct {
	Token      token.Token
	Visibility Visibility
	Static     bool // generis
	Reactive   bool // nexum
	Name       string
	Type       *TypeAnnotation
	Default    Expression
}

func (f *FieldDeclaration) TokenLiteral() string { return f.Token.Text }
func (f *FieldDeclaration) Pos() token.Position  { return f.Token.Pos }
func (f *FieldDeclaration) String() string {
	var parts []string
	if f.Visibility != VisibilityDefault {
		parts = append(parts, f.Visibility.String())
	}
	if f.Static {
		parts = append(parts, "generis")
	}
	if f.Reactive {
		parts = append(parts, "nexum")
	}
	typ := "?"
	if f.Type != nil {
		typ = f.Type.String()
	}
	parts = append(parts, typ+" "+f.Name)
	s := strings.Join(parts, " ")
	if f.Default != nil {
		s += ": " + f.Default.String()
	}
	return s + ";"
}

// MethodDeclaration is one method (or the constructor, marked via
// IsConstructor, introduced by "creo") of a genus.
type MethodDeclaration struct {
	Token        token.Token
	Visibility   Visibility
	Static       bool
	IsConstructor bool
	Name         string
	Params       []*Parameter
	Verb         ReturnVerb
	ReturnType   *TypeAnnotation
	Body         *BlockStatement
}

func (m *MethodDeclaration) TokenLiteral() string { return m.Token.Text }
func (m *MethodDeclaration) Pos() token.Position  { return m.Token.Pos }
func (m *MethodDeclaration) String() string {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.String()
	}
	head := "creo"
	if !m.IsConstructor {
		head = "functio " + m.Name
	}
	return head + "(" + strings.Join(params, ", ") + ") " + m.Body.String()
}

// TypeParamDeclaration is "prae typus T [: Constraint]".
type TypeParamDeclaration struct {
	Token      token.Token
	Name       string
	Constraint *TypeAnnotation
}

func (t *TypeParamDeclaration) TokenLiteral() string { return t.Token.Text }
func (t *TypeParamDeclaration) Pos() token.Position  { return t.Token.Pos }
func (t *TypeParamDeclaration) String() string {
	s := "prae typus " + t.Name
	if t.Constraint != nil {
		s += ": " + t.Constraint.String()
	}
	return s
}

// GenusDeclaration is a struct-like type: fields, an optional constructor
// method, further methods, and optional pactum (interface) conformances.
type GenusDeclaration struct {
	Token      token.Token
	Name       string
	TypeParams []*TypeParamDeclaration
	Conforms   []*TypeAnnotation
	Fields     []*FieldDeclaration
	Methods    []*MethodDeclaration
}

func (d *GenusDeclaration) statementNode()       {}
func (d *GenusDeclaration) declarationNode()      {}
func (d *GenusDeclaration) TokenLiteral() string  { return d.Token.Text }
func (d *GenusDeclaration) Pos() token.Position   { return d.Token.Pos }
func (d *GenusDeclaration) String() string {
	var out strings.Builder
	out.WriteString("genus ")
	out.WriteString(d.Name)
	out.WriteString(" {\n")
	for _, f := range d.Fields {
		out.WriteString("  ")
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	for _, m := range d.Methods {
		out.WriteString("  ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// PactumMethod is one method signature inside a pactum (interface).
type PactumMethod struct {
	Token      token.Token
	Name       string
	Params     []*Parameter
	Verb       ReturnVerb
	ReturnType *TypeAnnotation
}

func (m *PactumMethod) TokenLiteral() string { return m.Token.Text }
func (m *PactumMethod) Pos() token.Position  { return m.Token.Pos }
func (m *PactumMethod) String() string {
	params := make([]string, len(m.Params))
	for i, p := range m.Params {
		params[i] = p.String()
	}
	s := m.Name + "(" + strings.Join(params, ", ") + ") " + m.Verb.String()
	if m.ReturnType != nil {
		s += " " + m.ReturnType.String()
	}
	return s
}

// PactumDeclaration is an interface: a set of method signatures a genus may
// conform to.
type PactumDeclaration struct {
	Token   token.Token
	Name    string
	Methods []*PactumMethod
}

func (d *PactumDeclaration) statementNode()      {}
func (d *PactumDeclaration) declarationNode()     {}
func (d *PactumDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *PactumDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *PactumDeclaration) String() string {
	var out strings.Builder
	out.WriteString("pactum ")
	out.WriteString(d.Name)
	out.WriteString(" {\n")
	for _, m := range d.Methods {
		out.WriteString("  ")
		out.WriteString(m.String())
		out.WriteString(";\n")
	}
	out.WriteString("}")
	return out.String()
}

// TypeAliasDeclaration is "typus Name = Type;".
type TypeAliasDeclaration struct {
	Token token.Token
	Name  string
	Type  *TypeAnnotation
}

func (d *TypeAliasDeclaration) statementNode()      {}
func (d *TypeAliasDeclaration) declarationNode()     {}
func (d *TypeAliasDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *TypeAliasDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *TypeAliasDeclaration) String() string {
	return "typus " + d.Name + " = " + d.Type.String() + ";"
}

// EnumMember is one "Name" or "Name = value" entry of an ordo.
type EnumMember struct {
	Name  string
	Value Expression // nil when no explicit value given
}

// OrdoDeclaration is an enum.
type OrdoDeclaration struct {
	Token   token.Token
	Name    string
	Members []EnumMember
}

func (d *OrdoDeclaration) statementNode()      {}
func (d *OrdoDeclaration) declarationNode()     {}
func (d *OrdoDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *OrdoDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *OrdoDeclaration) String() string {
	names := make([]string, len(d.Members))
	for i, m := range d.Members {
		if m.Value != nil {
			names[i] = m.Name + " = " + m.Value.String()
		} else {
			names[i] = m.Name
		}
	}
	return "ordo " + d.Name + " { " + strings.Join(names, ", ") + " }"
}

// DiscretioVariant is one tagged variant of a discretio: a name plus the
// payload fields carried with that tag.
type DiscretioVariant struct {
	Name   string
	Fields []*Parameter // reuse Parameter for "name: Type" payload fields
}

// DiscretioDeclaration is a tagged union ("discretio"). An empty variant
// list is permitted (see DESIGN.md Open Question decisions).
type DiscretioDeclaration struct {
	Token    token.Token
	Name     string
	Variants []DiscretioVariant
}

func (d *DiscretioDeclaration) statementNode()      {}
func (d *DiscretioDeclaration) declarationNode()     {}
func (d *DiscretioDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *DiscretioDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *DiscretioDeclaration) String() string {
	names := make([]string, len(d.Variants))
	for i, v := range d.Variants {
		fields := make([]string, len(v.Fields))
		for j, f := range v.Fields {
			fields[j] = f.String()
		}
		names[i] = v.Name + "(" + strings.Join(fields, ", ") + ")"
	}
	return "discretio " + d.Name + " { " + strings.Join(names, " | ") + " }"
}

// ImportDeclaration is "ex <source> importa name[, name ut alias]*;" where
// Source is either a bare module identifier or a string literal path.
type ImportDeclaration struct {
	Token   token.Token
	Source  string
	Names   []string
	Aliases []string // Aliases[i] == Names[i] unless renamed via "ut"
}

func (d *ImportDeclaration) statementNode()      {}
func (d *ImportDeclaration) declarationNode()     {}
func (d *ImportDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *ImportDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *ImportDeclaration) String() string {
	parts := make([]string, len(d.Names))
	for i, n := range d.Names {
		if d.Aliases[i] != "" && d.Aliases[i] != n {
			parts[i] = n + " ut " + d.Aliases[i]
		} else {
			parts[i] = n
		}
	}
	return "ex " + d.Source + " importa " + strings.Join(parts, ", ") + ";"
}

// TestHookKind distinguishes a "cura ante" (before) from a "cura post" (after) hook.
type TestHookKind int

const (
	HookAnte TestHookKind = iota
	HookPost
)

// TestHookDeclaration is "cura ante { block }" or "cura post { block }"
// inside a probatio suite.
type TestHookDeclaration struct {
	Token token.Token
	Kind  TestHookKind
	Body  *BlockStatement
}

func (d *TestHookDeclaration) statementNode()      {}
func (d *TestHookDeclaration) declarationNode()     {}
func (d *TestHookDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *TestHookDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *TestHookDeclaration) String() string {
	kw := "ante"
	if d.Kind == HookPost {
		kw = "post"
	}
	return "cura " + kw + " " + d.Body.String()
}

// TestCaseDeclaration is "casus \"description\" { block }" inside a probatio suite.
type TestCaseDeclaration struct {
	Token       token.Token
	Description string
	Body        *BlockStatement
}

func (d *TestCaseDeclaration) statementNode()      {}
func (d *TestCaseDeclaration) declarationNode()     {}
func (d *TestCaseDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *TestCaseDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *TestCaseDeclaration) String() string {
	return "casus \"" + d.Description + "\" " + d.Body.String()
}

// ProbatioDeclaration is a test suite: "probatio \"description\" { hooks and casus }".
type ProbatioDeclaration struct {
	Token       token.Token
	Description string
	Hooks       []*TestHookDeclaration
	Cases       []*TestCaseDeclaration
}

func (d *ProbatioDeclaration) statementNode()      {}
func (d *ProbatioDeclaration) declarationNode()     {}
func (d *ProbatioDeclaration) TokenLiteral() string { return d.Token.Text }
func (d *ProbatioDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *ProbatioDeclaration) String() string {
	var out strings.Builder
	out.WriteString("probatio \"")
	out.WriteString(d.Description)
	out.WriteString("\" {\n")
	for _, h := range d.Hooks {
		out.WriteString("  " + h.String() + "\n")
	}
	for _, c := range d.Cases {
		out.WriteString("  " + c.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}
