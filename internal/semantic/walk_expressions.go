package semantic

import (
	"github.com/faber-lang/faber/internal/lexicon"
	"github.com/faber-lang/faber/pkg/ast"
)

// walkExpr recurses through expr, recording identifier symbol kinds,
// flagging reassignment of immutable bindings, and attaching the
// string-typed hint to equality comparisons and "+" concatenation.
func (a *analyzer) walkExpr(expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		a.resolveIdentifier(e)
	case *ast.SelfExpression, *ast.IntegerLiteral, *ast.BigIntLiteral,
		*ast.FloatLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.NilLiteral:
		// Leaf nodes, nothing to resolve.
	case *ast.TemplateLiteral:
		for _, part := range e.Parts {
			a.walkExpr(part.Expr)
		}
	case *ast.BinaryExpression:
		a.walkBinary(e)
	case *ast.UnaryExpression:
		a.walkExpr(e.Operand)
	case *ast.GroupedExpression:
		a.walkExpr(e.Inner)
	case *ast.TernaryExpression:
		a.walkExpr(e.Condition)
		a.walkExpr(e.Then)
		a.walkExpr(e.Else)
	case *ast.RangeExpression:
		a.walkExpr(e.Start)
		a.walkExpr(e.End)
		a.walkExpr(e.Step)
	case *ast.MemberExpression:
		a.walkExpr(e.Object)
	case *ast.ComputedMemberExpression:
		a.walkExpr(e.Object)
		a.walkExpr(e.Index)
	case *ast.CallExpression:
		a.walkExpr(e.Callee)
		for _, arg := range e.Arguments {
			a.walkExpr(arg)
		}
	case *ast.NewExpression:
		a.checkTypeName(e.Type)
		a.walkExpr(e.From)
		for _, arg := range e.Arguments {
			a.walkExpr(arg)
		}
	case *ast.AwaitExpression:
		a.walkExpr(e.Argument)
	case *ast.CastExpression:
		a.walkExpr(e.Value)
		a.checkTypeName(e.Type)
	case *ast.TypeTestExpression:
		a.walkExpr(e.Value)
		a.checkTypeName(e.Type)
	case *ast.PrefixBlockExpression:
		if e.Body != nil {
			a.withScope(func() { a.walkBlock(e.Body) })
		}
		for _, arg := range e.Arguments {
			a.walkExpr(arg)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			a.walkExpr(el)
		}
	case *ast.ObjectLiteral:
		for _, p := range e.Properties {
			a.walkExpr(p.Value)
		}
	case *ast.ArrowFunctionExpression:
		a.walkArrowLike(e.Params, e.Body)
	case *ast.LambdaExpression:
		a.walkArrowLike(e.Params, e.Body)
	}
}

func (a *analyzer) walkArrowLike(params []*ast.Parameter, body ast.Node) {
	a.withScope(func() {
		for _, p := range params {
			if p.Type != nil {
				a.checkTypeName(p.Type)
			}
			a.walkExpr(p.DefaultValue)
			a.scope.Define(&Symbol{Name: p.Name, Kind: SymbolParam, DeclaredType: simpleTypeName(p.Type)})
		}
		switch b := body.(type) {
		case *ast.BlockStatement:
			a.walkBlock(b)
		case ast.Expression:
			a.walkExpr(b)
		}
	})
}

// resolveIdentifier looks up name, recording its symbol kind for the
// generator and raising S001 when it is unknown: the restricted context
// spec.md §4.4 names is any bare value reference — builtin type names used
// as identifiers (e.g. casting syntax that reads a type as a value) are
// exempted since the parser routes those through TypeAnnotation instead.
func (a *analyzer) resolveIdentifier(id *ast.Identifier) {
	if sym, ok := a.scope.Lookup(id.Value); ok {
		a.info.setIdentifier(id, sym.Kind)
		return
	}
	if lexicon.IsBuiltinType(id.Value) {
		a.info.setIdentifier(id, SymbolType)
		return
	}
	a.errorf(CodeUnknownIdentifier, "unknown identifier '"+id.Value+"'", id)
}

// assignOperators is the set of BinaryExpression operators that mutate
// their left-hand operand.
var assignOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true,
	"&=": true, "|=": true, "%=": true,
}

func (a *analyzer) walkBinary(e *ast.BinaryExpression) {
	a.walkExpr(e.Left)
	a.walkExpr(e.Right)

	if assignOperators[e.Operator] {
		if target, ok := e.Left.(*ast.Identifier); ok {
			if sym, ok := a.scope.Lookup(target.Value); ok && sym.Immutable {
				a.errorf(CodeReassignImmutable, "cannot reassign immutable binding '"+target.Value+"'", e)
			}
		}
		return
	}

	switch e.Operator {
	case "==", "===", "!=", "!==", "+":
		if a.isStringTyped(e.Left) && a.isStringTyped(e.Right) {
			a.info.setStringHint(e, true)
		}
	}
}

// isStringTyped performs the narrow syntactic inference the thin annotator
// is permitted: a string literal is obviously string-typed, and a bare
// identifier is string-typed when its declared type annotation says so.
// Anything else (calls, member access, arithmetic) is left unresolved
// rather than guessed at — the generator falls back to "===" in that case.
func (a *analyzer) isStringTyped(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.StringLiteral, *ast.TemplateLiteral:
		return true
	case *ast.Identifier:
		if sym, ok := a.scope.Lookup(e.Value); ok {
			return sym.DeclaredType == lexicon.TypeString
		}
	case *ast.GroupedExpression:
		return a.isStringTyped(e.Inner)
	}
	return false
}
