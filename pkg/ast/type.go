package ast

import (
	"strings"

	"github.com/faber-lang/faber/pkg/token"
)

// TypeAnnotation is a type reference as written in source: a name, optional
// generic type arguments, an optional nullable marker ("?"), an optional
// array shorthand ("[]") and, for function parameters, the preposition
// introducing it (used only for documentation/diagnostics, not semantics).
type TypeAnnotation struct {
	Token          token.Token
	Name           string
	TypeParameters []*TypeAnnotation
	Nullable       bool
	ArrayShorthand bool
	Preposition    string // e.g. "pro", "ex" — set only on parameter types that use one
	Union          []*TypeAnnotation
}

func (t *TypeAnnotation) TokenLiteral() string { return t.Token.Text }
func (t *TypeAnnotation) Pos() token.Position  { return t.Token.Pos }
func (t *TypeAnnotation) String() string {
	if len(t.Union) > 0 {
		parts := make([]string, len(t.Union))
		for i, u := range t.Union {
			parts[i] = u.String()
		}
		return strings.Join(parts, " aut ")
	}
	s := t.Name
	if len(t.TypeParameters) > 0 {
		parts := make([]string, len(t.TypeParameters))
		for i, p := range t.TypeParameters {
			parts[i] = p.String()
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	if t.ArrayShorthand {
		s += "[]"
	}
	if t.Nullable {
		s += "?"
	}
	return s
}

// Parameter is a function/method/lambda parameter: name, type, optional
// default value and an optional "..." rest marker.
type Parameter struct {
	Token        token.Token
	Name         string
	Type         *TypeAnnotation
	DefaultValue Expression
	Rest         bool
}

func (p *Parameter) TokenLiteral() string { return p.Token.Text }
func (p *Parameter) Pos() token.Position  { return p.Token.Pos }
func (p *Parameter) String() string {
	prefix := ""
	if p.Rest {
		prefix = "..."
	}
	s := prefix + p.Name
	if p.Type != nil {
		s += ": " + p.Type.String()
	}
	if p.DefaultValue != nil {
		s += " = " + p.DefaultValue.String()
	}
	return s
}

// DestructurePattern is a binding target that may be a plain identifier or a
// nested array/object destructuring pattern, per spec.md's "ex-destructuring"
// form and the object/array pattern declarations.
type DestructurePattern struct {
	Token    token.Token
	IsArray  bool
	IsObject bool
	Name     string               // set when this pattern is a plain identifier
	Elements []*DestructurePattern // array pattern elements
	Fields   []*PatternField       // object pattern fields
	Rest     string                // name bound by a trailing "ceteri x", empty if absent
	Skip     bool                  // true for a bare "_" array-pattern slot
}

// PatternField is one "key" or "key ut alias" entry of an object destructuring pattern.
type PatternField struct {
	Key     string
	Alias   string // set when renamed via "ut alias" or "key: alias"; equals Key otherwise
	Nested  *DestructurePattern
	Default Expression
}

func (d *DestructurePattern) TokenLiteral() string { return d.Token.Text }
func (d *DestructurePattern) Pos() token.Position  { return d.Token.Pos }
func (d *DestructurePattern) String() string {
	switch {
	case d.Skip:
		return "_"
	case d.Name != "":
		return d.Name
	case d.IsArray:
		parts := make([]string, len(d.Elements))
		for i, e := range d.Elements {
			parts[i] = e.String()
		}
		if d.Rest != "" {
			parts = append(parts, "ceteri "+d.Rest)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case d.IsObject:
		parts := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			if f.Alias != "" && f.Alias != f.Key {
				parts[i] = f.Key + " ut " + f.Alias
			} else {
				parts[i] = f.Key
			}
		}
		if d.Rest != "" {
			parts = append(parts, "ceteri "+d.Rest)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}
