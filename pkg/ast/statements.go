package ast

import (
	"strings"

	"github.com/faber-lang/faber/pkg/token"
)

// BlockStatement is "{ statements }".
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()      {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Text }
func (b *BlockStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var out strings.Builder
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionStatement wraps a bare expression used in statement position.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Text }
func (s *ExpressionStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExpressionStatement) String() string {
	if s.Expr != nil {
		return s.Expr.String() + ";"
	}
	return ";"
}

// IfStatement is "si (cond) then [aliter else]", with an optional catch
// binding name captured from a thrown value in the else branch (spec.md §3
// "if/else with optional catch binding").
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Then        *BlockStatement
	CatchBind   string // non-empty when the else branch binds a caught value
	Else        Statement // *BlockStatement or *IfStatement (else-if chain), nil if absent
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Text }
func (s *IfStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IfStatement) String() string {
	out := "si (" + s.Condition.String() + ") " + s.Then.String()
	if s.Else != nil {
		out += " aliter "
		if s.CatchBind != "" {
			out += "(" + s.CatchBind + ") "
		}
		out += s.Else.String()
	}
	return out
}

// WhileStatement is "dum (cond) { body }".
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (s *WhileStatement) statementNode()      {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Text }
func (s *WhileStatement) Pos() token.Position  { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return "dum (" + s.Condition.String() + ") " + s.Body.String()
}

// IterationKind distinguishes "ex" (values), "de" (keys/entries) and "in"
// (membership-style) iteration sources.
type IterationKind int

const (
	IterEx IterationKind = iota
	IterDe
	IterIn
)

func (k IterationKind) String() string {
	switch k {
	case IterDe:
		return "de"
	case IterIn:
		return "in"
	default:
		return "ex"
	}
}

// IterationTransform is an optional DSL pipeline transform applied to the
// iteration source before binding: "prima N", "ultima N" or "summa".
type IterationTransform struct {
	Kind  string // "prima", "ultima", "summa"
	Count Expression // nil for "summa"
}

// IterationStatement is "ex|de|in <source> [transform] pro|fit|fiet <binding> <body>",
// optionally introduced by a leading "ergo" for a one-liner body.
type IterationStatement struct {
	Token     token.Token
	Kind      IterationKind
	Source    Expression
	Transform *IterationTransform
	Verb      ReturnVerb // only VerbFit (sync) and VerbFiet (async) are meaningful here
	Binding   string
	Pattern   *DestructurePattern // set instead of Binding when the verb binds a destructuring pattern
	Body      *BlockStatement
	OneLiner  bool // true when introduced by "ergo" with a single-statement body
}

func (s *IterationStatement) statementNode()      {}
func (s *IterationStatement) TokenLiteral() string { return s.Token.Text }
func (s *IterationStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IterationStatement) String() string {
	var out strings.Builder
	if s.OneLiner {
		out.WriteString("ergo ")
	}
	out.WriteString(s.Kind.String())
	out.WriteString(" ")
	out.WriteString(s.Source.String())
	if s.Transform != nil {
		out.WriteString(" " + s.Transform.Kind)
		if s.Transform.Count != nil {
			out.WriteString(" " + s.Transform.Count.String())
		}
	}
	out.WriteString(" " + s.Verb.String() + " ")
	if s.Pattern != nil {
		out.WriteString(s.Pattern.String())
	} else {
		out.WriteString(s.Binding)
	}
	out.WriteString(" " + s.Body.String())
	return out.String()
}

// SwitchCase is one "casus value { body }" arm of an elige statement; a nil
// Value marks the "aliter" default arm.
type SwitchCase struct {
	Value Expression
	Body  *BlockStatement
}

// SwitchStatement is "elige (subject) { casus v1 {...} ... aliter {...} }".
type SwitchStatement struct {
	Token   token.Token
	Subject Expression
	Cases   []SwitchCase
}

func (s *SwitchStatement) statementNode()      {}
func (s *SwitchStatement) TokenLiteral() string { return s.Token.Text }
func (s *SwitchStatement) Pos() token.Position  { return s.Token.Pos }
func (s *SwitchStatement) String() string {
	var out strings.Builder
	out.WriteString("elige (" + s.Subject.String() + ") {\n")
	for _, c := range s.Cases {
		if c.Value == nil {
			out.WriteString("  aliter " + c.Body.String() + "\n")
		} else {
			out.WriteString("  casus " + c.Value.String() + " " + c.Body.String() + "\n")
		}
	}
	out.WriteString("}")
	return out.String()
}

// VariantCase is one "casus VariantName(pattern) { body }" arm of a discerne
// statement, matching a discretio variant and binding its payload fields.
type VariantCase struct {
	VariantName string
	Bindings    []string // payload field binding names, positional
	Body        *BlockStatement
}

// DiscerneStatement is "discerne (subject) { casus V1(a, b) {...} ... aliter {...} }",
// the switch-on-variant form over a discretio value.
type DiscerneStatement struct {
	Token        token.Token
	Subject      Expression
	Cases        []VariantCase
	DefaultBody  *BlockStatement // "aliter" arm, nil if absent
}

func (s *DiscerneStatement) statementNode()      {}
func (s *DiscerneStatement) TokenLiteral() string { return s.Token.Text }
func (s *DiscerneStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DiscerneStatement) String() string {
	var out strings.Builder
	out.WriteString("discerne (" + s.Subject.String() + ") {\n")
	for _, c := range s.Cases {
		out.WriteString("  casus " + c.VariantName + "(" + strings.Join(c.Bindings, ", ") + ") " + c.Body.String() + "\n")
	}
	if s.DefaultBody != nil {
		out.WriteString("  aliter " + s.DefaultBody.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// DispatchCase is one "casus Type ut binding { body }" arm of an ad statement.
type DispatchCase struct {
	Type    *TypeAnnotation
	Binding string
	Body    *BlockStatement
}

// DispatchStatement is "ad (subject) { casus Type ut binding {...} ... aliter {...} }",
// dispatching on the runtime type of subject.
type DispatchStatement struct {
	Token       token.Token
	Subject     Expression
	Cases       []DispatchCase
	DefaultBody *BlockStatement
}

func (s *DispatchStatement) statementNode()      {}
func (s *DispatchStatement) TokenLiteral() string { return s.Token.Text }
func (s *DispatchStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DispatchStatement) String() string {
	var out strings.Builder
	out.WriteString("ad (" + s.Subject.String() + ") {\n")
	for _, c := range s.Cases {
		out.WriteString("  casus " + c.Type.String() + " ut " + c.Binding + " " + c.Body.String() + "\n")
	}
	if s.DefaultBody != nil {
		out.WriteString("  aliter " + s.DefaultBody.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// GuardStatement is "custodi (cond) aliter { body }": when cond is false,
// run body, which must exit the enclosing function/loop.
type GuardStatement struct {
	Token     token.Token
	Condition Expression
	Else      *BlockStatement
}

func (s *GuardStatement) statementNode()      {}
func (s *GuardStatement) TokenLiteral() string { return s.Token.Text }
func (s *GuardStatement) Pos() token.Position  { return s.Token.Pos }
func (s *GuardStatement) String() string {
	return "custodi (" + s.Condition.String() + ") aliter " + s.Else.String()
}

// AssertStatement is "adfirma (cond)[, message];".
type AssertStatement struct {
	Token     token.Token
	Condition Expression
	Message   Expression // nil if omitted
}

func (s *AssertStatement) statementNode()      {}
func (s *AssertStatement) TokenLiteral() string { return s.Token.Text }
func (s *AssertStatement) Pos() token.Position  { return s.Token.Pos }
func (s *AssertStatement) String() string {
	if s.Message != nil {
		return "adfirma (" + s.Condition.String() + ", " + s.Message.String() + ");"
	}
	return "adfirma (" + s.Condition.String() + ");"
}

// ReturnStatement is "redde [expr];".
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare "redde;"
}

func (s *ReturnStatement) statementNode()      {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Text }
func (s *ReturnStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.Value != nil {
		return "redde " + s.Value.String() + ";"
	}
	return "redde;"
}

// ThrowStatement is "iace expr;" (recoverable) or "mori expr;" (fatal).
type ThrowStatement struct {
	Token  token.Token
	Value  Expression
	Fatal  bool
}

func (s *ThrowStatement) statementNode()      {}
func (s *ThrowStatement) TokenLiteral() string { return s.Token.Text }
func (s *ThrowStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ThrowStatement) String() string {
	kw := "iace"
	if s.Fatal {
		kw = "mori"
	}
	return kw + " " + s.Value.String() + ";"
}

// BreakStatement is "frange;".
type BreakStatement struct {
	Token token.Token
}

func (s *BreakStatement) statementNode()      {}
func (s *BreakStatement) TokenLiteral() string { return s.Token.Text }
func (s *BreakStatement) Pos() token.Position  { return s.Token.Pos }
func (s *BreakStatement) String() string       { return "frange;" }

// ContinueStatement is "perge;".
type ContinueStatement struct {
	Token token.Token
}

func (s *ContinueStatement) statementNode()      {}
func (s *ContinueStatement) TokenLiteral() string { return s.Token.Text }
func (s *ContinueStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ContinueStatement) String() string       { return "perge;" }

// TryStatement is "tempta { body } cape (name) { handler } [demum { final }]".
type TryStatement struct {
	Token       token.Token
	Body        *BlockStatement
	CatchName   string
	Handler     *BlockStatement // nil if no "cape" clause
	Finally     *BlockStatement // nil if no "demum" clause
}

func (s *TryStatement) statementNode()      {}
func (s *TryStatement) TokenLiteral() string { return s.Token.Text }
func (s *TryStatement) Pos() token.Position  { return s.Token.Pos }
func (s *TryStatement) String() string {
	out := "tempta " + s.Body.String()
	if s.Handler != nil {
		out += " cape (" + s.CatchName + ") " + s.Handler.String()
	}
	if s.Finally != nil {
		out += " demum " + s.Finally.String()
	}
	return out
}

// CuraStatement is the scoped-resource form "cura <binding> = <expr> { body }":
// binding is released/closed automatically at block exit. (Distinguished
// from the test-hook use of "cura" by the parser, which only treats "cura
// ante"/"cura post" at the top of a probatio body as hooks.)
type CuraStatement struct {
	Token   token.Token
	Binding string
	Value   Expression
	Body    *BlockStatement
}

func (s *CuraStatement) statementNode()      {}
func (s *CuraStatement) TokenLiteral() string { return s.Token.Text }
func (s *CuraStatement) Pos() token.Position  { return s.Token.Pos }
func (s *CuraStatement) String() string {
	return "cura " + s.Binding + " = " + s.Value.String() + " " + s.Body.String()
}

// ExplicitBlockStatement is the "fac { body } [cape (name) { handler }]" form:
// an explicit nested block, optionally with its own catch clause.
type ExplicitBlockStatement struct {
	Token     token.Token
	Body      *BlockStatement
	CatchName string
	Handler   *BlockStatement
}

func (s *ExplicitBlockStatement) statementNode()      {}
func (s *ExplicitBlockStatement) TokenLiteral() string { return s.Token.Text }
func (s *ExplicitBlockStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExplicitBlockStatement) String() string {
	out := "fac " + s.Body.String()
	if s.Handler != nil {
		out += " cape (" + s.CatchName + ") " + s.Handler.String()
	}
	return out
}

// IOStatement covers the three console-output shorthands: "scribe" (log),
// "vide" (debug) and "mone" (warn).
type IOStatement struct {
	Token     token.Token
	Verb      string // "scribe", "vide" or "mone"
	Arguments []Expression
}

func (s *IOStatement) statementNode()      {}
func (s *IOStatement) TokenLiteral() string { return s.Token.Text }
func (s *IOStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IOStatement) String() string {
	args := make([]string, len(s.Arguments))
	for i, a := range s.Arguments {
		args[i] = a.String()
	}
	return s.Verb + "(" + strings.Join(args, ", ") + ");"
}
