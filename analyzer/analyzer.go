// Package analyzer implements the module analyzer and resolver: a two-pass
// syntax-directed traversal over one module's AST that builds its scope
// tree, resolves every identifier occurrence, and emits a
// summary.ModuleSummary. One Analyzer instance analyzes exactly one module
// and touches no shared mutable state besides the process-wide intern
// table, so the loader's worker pool runs many of them concurrently.
package analyzer

import (
	"github.com/modsweep/modsweep/internal/intern"
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/scope"
	"github.com/modsweep/modsweep/summary"
)

// UnresolvedGlobal is recorded, not treated as an error: the input is
// assumed well-typed, so a name found in no ancestor scope is assumed to
// be provided by the host environment.
type UnresolvedGlobal struct {
	Name string
	Loc  jsast.Range
}

type analyzer struct {
	path string
	tree *scope.Tree

	imports []*summary.Import
	exports []*summary.Export

	// deferredNamedExports holds `export { a, b as c }` specifiers (no
	// `from` clause) encountered during the pass-2 walk. They're resolved
	// against root scope only after the whole module has been walked,
	// because a named export list may legally name a binding declared
	// later in the file (ES modules resolve exports statically, not in
	// source order) — unlike an ordinary value reference, which may not.
	deferredNamedExports []*jsast.ExportNamedDecl

	unresolved []UnresolvedGlobal
}

// AnalyzeFile runs the two-phase pass over file and returns its
// ModuleSummary. It panics on a structural inconsistency — a duplicate
// declaration in the same scope and namespace, which the input is assumed
// never to contain; callers driving untrusted ASTs should recover around
// this call the way loader.Pool does.
func AnalyzeFile(file *jsast.File) *summary.ModuleSummary {
	a := &analyzer{
		path: file.Path,
		tree: scope.NewTree(),
	}

	for _, st := range file.Stmts {
		if imp, ok := st.(*jsast.ImportDecl); ok {
			a.declareImport(imp)
		}
	}

	a.hoistScope(file.Stmts)

	for _, st := range file.Stmts {
		a.walkStmt(st)
	}

	a.resolveDeferredNamedExports()

	return a.buildSummary()
}

// hoistScope is pass 1: it registers only the hoisted subset of stmts'
// direct declarations — type aliases, interfaces, function declarations,
// class/enum names — before any statement body is visited. It recurses
// lazily: an inner scope's declarations are hoisted only when the
// analyzer later enters that scope via walkStmt, never here.
func (a *analyzer) hoistScope(stmts []jsast.Stmt) {
	for _, st := range stmts {
		a.hoistOne(st)
	}
}

func (a *analyzer) hoistOne(st jsast.Stmt) {
	switch d := st.(type) {
	case *jsast.FuncDecl:
		a.declare(d.Name, scope.Value, scope.KindFunction, d.Loc)
	case *jsast.ClassDecl:
		a.declare(d.Name, scope.Both, scope.KindClass, d.Loc)
	case *jsast.InterfaceDecl:
		a.declare(d.Name, scope.Type, scope.KindInterface, d.Loc)
	case *jsast.TypeAliasDecl:
		a.declare(d.Name, scope.Type, scope.KindTypeAlias, d.Loc)
	case *jsast.EnumDecl:
		a.declare(d.Name, scope.Both, scope.KindEnum, d.Loc)
	case *jsast.ExportDeclDecl:
		a.hoistOne(d.Decl)
	case *jsast.ExportDefaultDecl:
		switch inner := d.Decl.(type) {
		case *jsast.FuncDecl:
			if inner.Name != nil {
				a.declare(inner.Name, scope.Value, scope.KindFunction, inner.Loc)
			}
		case *jsast.ClassDecl:
			if inner.Name != nil {
				a.declare(inner.Name, scope.Both, scope.KindClass, inner.Loc)
			}
		}
	}
}

// declare installs a binding for id in the current scope, panicking if it
// structurally conflicts with an existing one.
func (a *analyzer) declare(id *jsast.Ident, ns scope.Namespace, kind scope.Kind, loc jsast.Range) *scope.Binding {
	b := &scope.Binding{
		Name:      intern.Intern(id.Name),
		Namespace: ns,
		Kind:      kind,
		Loc:       loc,
	}

	if err := a.tree.Declare(b); err != nil {
		panic("analyzer: " + a.path + ": " + err.Error())
	}

	return b
}

func (a *analyzer) recordUnresolved(name string, loc jsast.Range) {
	a.unresolved = append(a.unresolved, UnresolvedGlobal{Name: name, Loc: loc})
}

// analyzeScopeBody runs pass 1 then pass 2 over stmts in whatever scope is
// currently open. Callers open (and later close) the scope itself; this is
// the shared body used for function bodies, blocks, loops and catch
// clauses. AnalyzeFile runs the same two passes over the root scope itself.
func (a *analyzer) analyzeScopeBody(stmts []jsast.Stmt) {
	a.hoistScope(stmts)

	for _, st := range stmts {
		a.walkStmt(st)
	}
}

func (a *analyzer) analyzeBlockStmt(b *jsast.BlockStmt) {
	if b == nil {
		return
	}

	a.tree.Open(scope.KindBlock)
	a.analyzeScopeBody(b.Stmts)
	a.tree.Close()
}
