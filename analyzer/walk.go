package analyzer

import (
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/scope"
)

// walkStmt is pass 2: it walks stmt in source order,
// resolving references and, for the statements deviating from the hoisted
// subset (var/let/const, parameters), declaring their bindings at the
// point of declaration rather than up-front.
func (a *analyzer) walkStmt(st jsast.Stmt) {
	switch d := st.(type) {
	case *jsast.ImportDecl:
		// Bindings were declared up front in AnalyzeFile; nothing to do.
	case *jsast.ExportNamedDecl:
		if d.Source != "" {
			a.handleReExport(d)
		} else {
			a.deferredNamedExports = append(a.deferredNamedExports, d)
		}
	case *jsast.ExportDeclDecl:
		a.walkStmt(d.Decl)
		a.markExportedDecl(d.Decl, d.Loc)
	case *jsast.ExportDefaultDecl:
		a.handleExportDefault(d)
	case *jsast.ExportAllDecl:
		a.handleExportAll(d)
	case *jsast.VarDecl:
		a.walkVarDecl(d)
	case *jsast.FuncDecl:
		a.walkFuncBody(d.TypeParams, d.Params, d.ReturnType, d.Body)
	case *jsast.ClassDecl:
		a.walkClassDecl(d)
	case *jsast.InterfaceDecl:
		a.walkInterfaceDecl(d)
	case *jsast.TypeAliasDecl:
		a.walkTypeAliasDecl(d)
	case *jsast.EnumDecl:
		// Members are plain strings; no nested scope or references.
	case *jsast.BlockStmt:
		a.analyzeBlockStmt(d)
	case *jsast.ExprStmt:
		a.resolveExpr(d.X)
	case *jsast.ReturnStmt:
		if d.Value != nil {
			a.resolveExpr(d.Value)
		}
	case *jsast.IfStmt:
		a.resolveExpr(d.Cond)
		a.analyzeBlockStmt(d.Then)

		if d.Else != nil {
			a.walkStmt(d.Else)
		}
	case *jsast.ForStmt:
		a.tree.Open(scope.KindBlock)

		if d.Init != nil {
			a.walkStmt(d.Init)
		}

		if d.Cond != nil {
			a.resolveExpr(d.Cond)
		}

		if d.Post != nil {
			a.walkStmt(d.Post)
		}

		a.analyzeScopeBody(d.Body.Stmts)
		a.tree.Close()
	case *jsast.TryStmt:
		a.analyzeBlockStmt(d.Body)

		if d.Catch != nil {
			a.walkCatch(d.Catch)
		}

		if d.Finally != nil {
			a.analyzeBlockStmt(d.Finally)
		}
	}
}

func (a *analyzer) walkVarDecl(d *jsast.VarDecl) {
	kind := scope.KindVariable
	if d.VarKind == jsast.VarConst {
		kind = scope.KindConstant
	}

	for _, decl := range d.Declarators {
		if decl.Annotation != nil {
			a.resolveType(decl.Annotation)
		}

		if decl.Init != nil {
			a.resolveExpr(decl.Init)
		}

		// Declared only now — NOT in pass 1 — so a reference earlier in
		// source order in the same scope fails to resolve or resolves to
		// an outer binding, matching the asymmetric hoisting values require.
		a.declare(decl.Name, scope.Value, kind, decl.Loc)
	}
}

func (a *analyzer) declareTypeParams(tps []*jsast.TypeParam) {
	for _, tp := range tps {
		if tp.Constraint != nil {
			a.resolveType(tp.Constraint)
		}

		a.declare(tp.Name, scope.Type, scope.KindTypeParameter, tp.Loc)
	}
}

// declareParams declares each parameter at its own point in the parameter
// list, then resolves its default-value expression. A default expression
// can therefore see the parameter it defaults (and any earlier parameter):
// shadowing by a parameter is respected from the moment the function
// scope opens, including inside nested default-value expressions.
func (a *analyzer) declareParams(params []*jsast.Param) {
	for _, p := range params {
		if p.Annotation != nil {
			a.resolveType(p.Annotation)
		}

		a.declare(p.Name, scope.Value, scope.KindParameter, p.Loc)

		if p.Default != nil {
			a.resolveExpr(p.Default)
		}
	}
}

// walkFuncBody opens the single scope a function requires: type
// parameters, parameters, and the body all share it, so a parameter and a
// local variable of the same name collide rather than shadow.
func (a *analyzer) walkFuncBody(typeParams []*jsast.TypeParam, params []*jsast.Param, ret jsast.TypeExpr, body *jsast.BlockStmt) {
	a.tree.Open(scope.KindFunctionScope)
	a.declareTypeParams(typeParams)
	a.declareParams(params)

	if ret != nil {
		a.resolveType(ret)
	}

	if body != nil {
		a.analyzeScopeBody(body.Stmts)
	}

	a.tree.Close()
}

func (a *analyzer) walkClassDecl(d *jsast.ClassDecl) {
	a.tree.Open(scope.KindClassScope)
	a.declareTypeParams(d.TypeParams)

	if d.Extends != nil {
		a.resolveType(d.Extends)
	}

	for _, impl := range d.Implements {
		a.resolveType(impl)
	}

	for _, m := range d.Members {
		a.walkClassMember(m)
	}

	a.tree.Close()
}

func (a *analyzer) walkClassMember(m *jsast.ClassMember) {
	if m.Annotation != nil {
		a.resolveType(m.Annotation)
	}

	if m.IsMethod {
		a.walkFuncBody(nil, m.Params, nil, m.Body)
		return
	}

	if m.Init != nil {
		a.resolveExpr(m.Init)
	}
}

// walkInterfaceDecl opens a class-shaped scope for the interface's own type
// parameters; an interface's generics are the same construct as a class's.
func (a *analyzer) walkInterfaceDecl(d *jsast.InterfaceDecl) {
	a.tree.Open(scope.KindClassScope)
	a.declareTypeParams(d.TypeParams)

	for _, ext := range d.Extends {
		a.resolveType(ext)
	}

	for _, m := range d.Members {
		a.resolveType(m.Annotation)
	}

	a.tree.Close()
}

func (a *analyzer) walkTypeAliasDecl(d *jsast.TypeAliasDecl) {
	a.tree.Open(scope.KindBlock)
	a.declareTypeParams(d.TypeParams)

	if d.Value != nil {
		a.resolveType(d.Value)
	}

	a.tree.Close()
}

func (a *analyzer) walkCatch(c *jsast.CatchClause) {
	a.tree.Open(scope.KindCatch)

	if c.Param != nil {
		a.declare(c.Param, scope.Value, scope.KindParameter, c.Loc)
	}

	if c.Body != nil {
		a.analyzeScopeBody(c.Body.Stmts)
	}

	a.tree.Close()
}
