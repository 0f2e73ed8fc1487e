package semantic

import "github.com/faber-lang/faber/pkg/ast"

// walkStatement dispatches on statement kind, entering/leaving child scopes
// around constructs that introduce bindings.
func (a *analyzer) walkStatement(stmt ast.Statement) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.BlockStatement:
		a.withScope(func() { a.walkBlock(s) })
	case *ast.ExpressionStatement:
		a.walkExpr(s.Expr)
	case *ast.VarDeclaration:
		a.walkVarDeclaration(s)
	case *ast.FunctionDeclaration:
		a.walkFunction(s.Params, s.Body)
	case *ast.GenusDeclaration:
		a.walkGenus(s)
	case *ast.PactumDeclaration, *ast.TypeAliasDeclaration, *ast.OrdoDeclaration:
		// Declarations with no expression bodies to walk; names already
		// registered in collectGlobals.
	case *ast.DiscretioDeclaration:
		a.checkDiscretioFieldTypes(s)
	case *ast.ImportDeclaration:
		// Names already registered in collectGlobals.
	case *ast.IfStatement:
		a.walkExpr(s.Condition)
		a.withScope(func() { a.walkBlock(s.Then) })
		if s.Else != nil {
			a.withScope(func() {
				if s.CatchBind != "" {
					a.scope.Define(&Symbol{Name: s.CatchBind, Kind: SymbolLocal})
				}
				a.walkStatement(s.Else)
			})
		}
	case *ast.WhileStatement:
		a.walkExpr(s.Condition)
		a.withLoop(func() { a.withScope(func() { a.walkBlock(s.Body) }) })
	case *ast.IterationStatement:
		a.walkExpr(s.Source)
		if s.Transform != nil {
			a.walkExpr(s.Transform.Count)
		}
		a.withLoop(func() {
			a.withScope(func() {
				if s.Pattern != nil {
					a.definePatternNames(s.Pattern, SymbolLocal, false)
				} else if s.Binding != "" {
					a.scope.Define(&Symbol{Name: s.Binding, Kind: SymbolLocal})
				}
				a.walkBlock(s.Body)
			})
		})
	case *ast.SwitchStatement:
		a.walkExpr(s.Subject)
		for _, c := range s.Cases {
			a.walkExpr(c.Value)
			a.withScope(func() { a.walkBlock(c.Body) })
		}
		a.checkDuplicateCaseLabels(s)
	case *ast.DiscerneStatement:
		a.walkExpr(s.Subject)
		for _, c := range s.Cases {
			a.withScope(func() {
				for _, b := range c.Bindings {
					a.scope.Define(&Symbol{Name: b, Kind: SymbolLocal})
				}
				a.walkBlock(c.Body)
			})
		}
		if s.DefaultBody != nil {
			a.withScope(func() { a.walkBlock(s.DefaultBody) })
		}
	case *ast.DispatchStatement:
		a.walkExpr(s.Subject)
		for _, c := range s.Cases {
			a.checkTypeName(c.Type)
			a.withScope(func() {
				a.scope.Define(&Symbol{Name: c.Binding, Kind: SymbolLocal})
				a.walkBlock(c.Body)
			})
		}
		if s.DefaultBody != nil {
			a.withScope(func() { a.walkBlock(s.DefaultBody) })
		}
	case *ast.GuardStatement:
		a.walkExpr(s.Condition)
		a.withScope(func() { a.walkBlock(s.Else) })
	case *ast.AssertStatement:
		a.walkExpr(s.Condition)
		a.walkExpr(s.Message)
	case *ast.ReturnStatement:
		a.walkExpr(s.Value)
	case *ast.ThrowStatement:
		a.walkExpr(s.Value)
	case *ast.BreakStatement:
		if a.loopDepth == 0 {
			a.errorf(CodeBreakOutsideLoop, "'frange' used outside a loop", s)
		}
	case *ast.ContinueStatement:
		if a.loopDepth == 0 {
			a.errorf(CodeContinueOutsideLoop, "'perge' used outside a loop", s)
		}
	case *ast.TryStatement:
		a.withScope(func() { a.walkBlock(s.Body) })
		if s.Handler != nil {
			a.withScope(func() {
				if s.CatchName != "" {
					a.scope.Define(&Symbol{Name: s.CatchName, Kind: SymbolLocal})
				}
				a.walkBlock(s.Handler)
			})
		}
		if s.Finally != nil {
			a.withScope(func() { a.walkBlock(s.Finally) })
		}
	case *ast.CuraStatement:
		a.walkExpr(s.Value)
		a.withScope(func() {
			a.scope.Define(&Symbol{Name: s.Binding, Kind: SymbolLocal})
			a.walkBlock(s.Body)
		})
	case *ast.ExplicitBlockStatement:
		a.withScope(func() { a.walkBlock(s.Body) })
		if s.Handler != nil {
			a.withScope(func() {
				if s.CatchName != "" {
					a.scope.Define(&Symbol{Name: s.CatchName, Kind: SymbolLocal})
				}
				a.walkBlock(s.Handler)
			})
		}
	case *ast.IOStatement:
		for _, arg := range s.Arguments {
			a.walkExpr(arg)
		}
	case *ast.ProbatioDeclaration:
		a.walkProbatio(s)
	}
}

func (a *analyzer) walkBlock(b *ast.BlockStatement) {
	if b == nil {
		return
	}
	for _, s := range b.Statements {
		a.walkStatement(s)
	}
}

func (a *analyzer) withScope(fn func()) {
	outer := a.scope
	a.scope = NewScope(outer)
	fn()
	a.scope = outer
}

func (a *analyzer) withLoop(fn func()) {
	a.loopDepth++
	fn()
	a.loopDepth--
}

func (a *analyzer) walkVarDeclaration(d *ast.VarDeclaration) {
	a.walkExpr(d.Value)
	if d.Type != nil {
		a.checkTypeName(d.Type)
	}
	// collectGlobals already registered top-level names as SymbolGlobal so
	// forward references resolve; re-defining here at the same (parentless)
	// scope must preserve that, only nested declarations are SymbolLocal.
	kind := SymbolLocal
	if a.scope.parent == nil {
		kind = SymbolGlobal
	}
	immutable := d.Kind == ast.VarFixum || d.Kind == ast.VarFigendum
	if d.Pattern != nil {
		a.definePatternNames(d.Pattern, kind, immutable)
		return
	}
	if d.Name != "" {
		sym := &Symbol{Name: d.Name, Kind: kind, Immutable: immutable}
		sym.DeclaredType = simpleTypeName(d.Type)
		a.scope.Define(sym)
	}
}

func (a *analyzer) walkFunction(params []*ast.Parameter, body *ast.BlockStatement) {
	a.withScope(func() {
		for _, p := range params {
			if p.Type != nil {
				a.checkTypeName(p.Type)
			}
			a.walkExpr(p.DefaultValue)
			a.scope.Define(&Symbol{Name: p.Name, Kind: SymbolParam, DeclaredType: simpleTypeName(p.Type)})
		}
		a.walkBlock(body)
	})
}

// simpleTypeName returns t.Name when t is a plain, non-union type reference,
// and "" otherwise — the only shape the string-equality hint needs.
func simpleTypeName(t *ast.TypeAnnotation) string {
	if t == nil || len(t.Union) > 0 {
		return ""
	}
	return t.Name
}

func (a *analyzer) walkGenus(d *ast.GenusDeclaration) {
	for _, c := range d.Conforms {
		a.checkTypeName(c)
	}
	for _, f := range d.Fields {
		if f.Type != nil {
			a.checkTypeName(f.Type)
		}
		a.withScope(func() {
			a.scope.Define(&Symbol{Name: "ego", Kind: SymbolLocal})
			a.walkExpr(f.Default)
		})
	}
	for _, m := range d.Methods {
		a.withScope(func() {
			a.scope.Define(&Symbol{Name: "ego", Kind: SymbolLocal})
			for _, p := range m.Params {
				if p.Type != nil {
					a.checkTypeName(p.Type)
				}
				a.walkExpr(p.DefaultValue)
				a.scope.Define(&Symbol{Name: p.Name, Kind: SymbolParam, DeclaredType: simpleTypeName(p.Type)})
			}
			a.walkBlock(m.Body)
		})
	}
}

func (a *analyzer) checkDiscretioFieldTypes(d *ast.DiscretioDeclaration) {
	for _, v := range d.Variants {
		for _, f := range v.Fields {
			if f.Type != nil {
				a.checkTypeName(f.Type)
			}
		}
	}
}

func (a *analyzer) walkProbatio(d *ast.ProbatioDeclaration) {
	a.withScope(func() {
		for _, h := range d.Hooks {
			a.walkBlock(h.Body)
		}
		for _, c := range d.Cases {
			a.withScope(func() { a.walkBlock(c.Body) })
		}
	})
}

// checkTypeName flags a type annotation naming something that is neither a
// builtin type nor a declared genus/pactum/typus/ordo/discretio.
func (a *analyzer) checkTypeName(t *ast.TypeAnnotation) {
	if t == nil {
		return
	}
	if len(t.Union) > 0 {
		for _, u := range t.Union {
			a.checkTypeName(u)
		}
		return
	}
	if t.Name == "" {
		return
	}
	if !a.typeEnv[t.Name] {
		a.errorf(CodeUnresolvedType, "unresolved type name '"+t.Name+"'", t)
	}
	for _, tp := range t.TypeParameters {
		a.checkTypeName(tp)
	}
}
