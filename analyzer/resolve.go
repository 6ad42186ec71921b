// resolve.go is the resolver: namespace-by-syntactic-position
// identifier resolution. resolveExpr walks Value-namespace positions,
// resolveType walks Type-namespace positions; the only position that
// switches namespace mid-construct is TypeOfExpr's operand (the
// "type-of-a-value" operator), which is Value-namespace even though it
// only ever appears inside a type.
package analyzer

import (
	"github.com/modsweep/modsweep/internal/intern"
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/scope"
)

func (a *analyzer) resolveExpr(e jsast.Expr) {
	if e == nil {
		return
	}

	switch x := e.(type) {
	case *jsast.Ident:
		a.resolveIdent(x, scope.Value)
	case *jsast.CallExpr:
		a.resolveExpr(x.Callee)

		for _, arg := range x.Args {
			a.resolveExpr(arg)
		}
	case *jsast.MemberExpr:
		a.resolveExpr(x.Object)
	case *jsast.BinaryExpr:
		a.resolveExpr(x.Left)
		a.resolveExpr(x.Right)
	case *jsast.UnaryExpr:
		a.resolveExpr(x.Operand)
	case *jsast.AsExpr:
		a.resolveExpr(x.X)
		a.resolveType(x.Type)
	case *jsast.NewExpr:
		a.resolveType(x.Callee)

		for _, arg := range x.Args {
			a.resolveExpr(arg)
		}
	case *jsast.FuncExpr:
		a.walkFuncExpr(x)
	case *jsast.ArrowFuncExpr:
		a.walkFuncBody(x.TypeParams, x.Params, x.ReturnType, x.Body)
	case *jsast.Literal:
		// no identifiers to resolve
	}
}

// walkFuncExpr opens the function scope and, when the expression is named
// (`const f = function self() {...}`), declares the name inside that scope
// only, so the function can recurse by its own name without leaking it to
// the enclosing scope.
func (a *analyzer) walkFuncExpr(x *jsast.FuncExpr) {
	a.tree.Open(scope.KindFunctionScope)

	if x.Name != nil {
		a.declare(x.Name, scope.Value, scope.KindFunction, x.Loc)
	}

	a.declareTypeParams(x.TypeParams)
	a.declareParams(x.Params)

	if x.ReturnType != nil {
		a.resolveType(x.ReturnType)
	}

	if x.Body != nil {
		a.analyzeScopeBody(x.Body.Stmts)
	}

	a.tree.Close()
}

func (a *analyzer) resolveIdent(id *jsast.Ident, ns scope.Namespace) {
	b := a.tree.Lookup(intern.Intern(id.Name), ns)
	if b == nil {
		a.recordUnresolved(id.Name, id.Loc)
		return
	}

	b.RefCount++
}

func (a *analyzer) resolveType(t jsast.TypeExpr) {
	if t == nil {
		return
	}

	switch x := t.(type) {
	case *jsast.TypeRef:
		a.resolveIdent(&jsast.Ident{Name: x.Name, Loc: x.Loc}, scope.Type)

		for _, arg := range x.Args {
			a.resolveType(arg)
		}
	case *jsast.ArrayTypeExpr:
		a.resolveType(x.Elem)
	case *jsast.UnionTypeExpr:
		for _, m := range x.Members {
			a.resolveType(m)
		}
	case *jsast.FuncTypeExpr:
		for _, p := range x.Params {
			if p.Annotation != nil {
				a.resolveType(p.Annotation)
			}
		}

		if x.Return != nil {
			a.resolveType(x.Return)
		}
	case *jsast.ConditionalTypeExpr:
		a.resolveType(x.Check)

		// The conditional-type introducer opens a scope for its `infer`
		// type parameter; it's visible in the Extends clause that binds it
		// and in the True branch, not in False.
		a.tree.Open(scope.KindBlock)

		if x.InferVar != "" {
			a.declare(&jsast.Ident{Name: x.InferVar, Loc: x.Loc}, scope.Type, scope.KindTypeParameter, x.Loc)
		}

		a.resolveType(x.Extends)
		a.resolveType(x.True)
		a.tree.Close()

		a.resolveType(x.False)
	case *jsast.ObjectTypeExpr:
		for _, m := range x.Members {
			a.resolveType(m.Annotation)
		}
	case *jsast.MappedTypeExpr:
		a.tree.Open(scope.KindBlock)
		a.declare(&jsast.Ident{Name: x.TypeParam, Loc: x.Loc}, scope.Type, scope.KindTypeParameter, x.Loc)

		if x.Constraint != nil {
			a.resolveType(x.Constraint)
		}

		if x.Value != nil {
			a.resolveType(x.Value)
		}

		a.tree.Close()
	case *jsast.TypeOfExpr:
		// The operand of `typeof` is Value-namespace even though the
		// enclosing construct is a type.
		a.resolveIdent(x.Operand, scope.Value)
	}
}
