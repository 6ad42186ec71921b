package analyzer

import (
	"github.com/modsweep/modsweep/internal/intern"
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/scope"
	"github.com/modsweep/modsweep/summary"
)

// declareImport installs the local binding(s) an import introduces. Import
// bindings behave like hoisted declarations — visible throughout the
// module regardless of where the import statement sits — so this runs
// before pass 1's hoisting and pass 2's walk, exactly once per module.
func (a *analyzer) declareImport(d *jsast.ImportDecl) {
	if d.Default != nil {
		b := a.declare(d.Default, scope.Value, scope.KindImportAlias, d.Loc)
		a.imports = append(a.imports, &summary.Import{
			Kind:       summary.ImportDefault,
			LocalName:  d.Default.Name,
			ModulePath: d.Source,
			TypeOnly:   d.TypeOnly,
			Loc:        d.Loc,
			Binding:    b,
		})
	}

	if d.Namespace != nil {
		ns := scope.Value
		if d.TypeOnly {
			ns = scope.Type
		}

		b := a.declare(d.Namespace, ns, scope.KindImportAlias, d.Loc)
		a.imports = append(a.imports, &summary.Import{
			Kind:       summary.ImportWildcard,
			LocalName:  d.Namespace.Name,
			ModulePath: d.Source,
			TypeOnly:   d.TypeOnly,
			Loc:        d.Loc,
			Binding:    b,
		})
	}

	if len(d.Specifiers) > 0 {
		for _, spec := range d.Specifiers {
			ns := scope.Value
			if d.TypeOnly || spec.TypeOnly {
				ns = scope.Type
			}

			b := a.declare(spec.Local, ns, scope.KindImportAlias, spec.Loc)
			a.imports = append(a.imports, &summary.Import{
				Kind:         summary.ImportNamed,
				LocalName:    spec.Local.Name,
				ImportedName: spec.Imported.Name,
				ModulePath:   d.Source,
				TypeOnly:     d.TypeOnly || spec.TypeOnly,
				Loc:          spec.Loc,
				Binding:      b,
			})
		}
	}

	if d.Default == nil && d.Namespace == nil && len(d.Specifiers) == 0 {
		a.imports = append(a.imports, &summary.Import{
			Kind:       summary.ImportSideEffect,
			ModulePath: d.Source,
			Loc:        d.Loc,
		})
	}
}

// markExportedDecl marks the root binding(s) a declaration-prefixed export
// (`export const x = 1`, `export class C {}`, ...) names, and emits the
// corresponding Export record(s).
func (a *analyzer) markExportedDecl(decl jsast.Stmt, loc jsast.Range) {
	switch d := decl.(type) {
	case *jsast.VarDecl:
		for _, declr := range d.Declarators {
			a.exportRootBinding(declr.Name.Name, summary.ExportNamedValue, loc)
		}
	case *jsast.FuncDecl:
		a.exportRootBinding(d.Name.Name, summary.ExportNamedValue, loc)
	case *jsast.ClassDecl:
		a.exportRootBinding(d.Name.Name, summary.ExportNamedValue, loc)
	case *jsast.InterfaceDecl:
		a.exportRootBinding(d.Name.Name, summary.ExportNamedType, loc)
	case *jsast.TypeAliasDecl:
		a.exportRootBinding(d.Name.Name, summary.ExportNamedType, loc)
	case *jsast.EnumDecl:
		a.exportRootBinding(d.Name.Name, summary.ExportNamedValue, loc)
	}
}

func (a *analyzer) exportRootBinding(name string, kind summary.ExportKind, loc jsast.Range) {
	ns := scope.Value
	if kind == summary.ExportNamedType {
		ns = scope.Type
	}

	b := a.tree.Root.LookupLocal(intern.Intern(name), ns)
	if b == nil {
		return
	}

	b.IsExported = true
	a.exports = append(a.exports, &summary.Export{
		Kind:         kind,
		ExportedName: name,
		Binding:      b,
		TypeOnly:     kind == summary.ExportNamedType,
		Loc:          loc,
	})
}

// resolveDeferredNamedExports processes `export { a, b as c }` (no `from`)
// once the whole module has been walked, since a named export list may
// legally name a binding declared anywhere in the file, including one
// ambiguous across both namespaces.
func (a *analyzer) resolveDeferredNamedExports() {
	for _, d := range a.deferredNamedExports {
		for _, spec := range d.Specifiers {
			a.resolveOneNamedExport(spec)
		}
	}
}

func (a *analyzer) resolveOneNamedExport(spec *jsast.ExportSpecifier) {
	name := intern.Intern(spec.Local.Name)

	if !spec.TypeOnly {
		if vb := a.tree.Root.LookupLocal(name, scope.Value); vb != nil {
			vb.IsExported = true
			a.exports = append(a.exports, &summary.Export{
				Kind:         summary.ExportNamedValue,
				ExportedName: spec.Exported.Name,
				Binding:      vb,
				Loc:          spec.Loc,
			})
		}
	}

	if tb := a.tree.Root.LookupLocal(name, scope.Type); tb != nil {
		tb.IsExported = true
		a.exports = append(a.exports, &summary.Export{
			Kind:         summary.ExportNamedType,
			ExportedName: spec.Exported.Name,
			Binding:      tb,
			TypeOnly:     true,
			Loc:          spec.Loc,
		})
	}
}

// handleReExport records `export { a, b as c } from "./m"` — a pure
// forwarding edge with no local binding.
func (a *analyzer) handleReExport(d *jsast.ExportNamedDecl) {
	for _, spec := range d.Specifiers {
		a.exports = append(a.exports, &summary.Export{
			Kind:         summary.ExportReExport,
			ExportedName: spec.Exported.Name,
			SourceName:   spec.Local.Name,
			SourceModule: d.Source,
			TypeOnly:     spec.TypeOnly,
			Loc:          spec.Loc,
		})
	}
}

// handleExportAll records `export * from "./m"` / `export * as ns from
// "./m"`. Member-access tracking through a re-exported namespace is out
// of scope, so this is modeled the same way a wildcard import is:
// conservatively, every export of the source module is considered
// reachable through this edge (see linker.Link).
func (a *analyzer) handleExportAll(d *jsast.ExportAllDecl) {
	name := "*"
	if d.Alias != nil {
		name = d.Alias.Name
	}

	a.exports = append(a.exports, &summary.Export{
		Kind:         summary.ExportReExport,
		ExportedName: name,
		SourceName:   "*",
		SourceModule: d.Source,
		Loc:          d.Loc,
	})
}

// handleExportDefault records `export default <expr-or-decl>`. A named
// function/class default export is walked here (pass 1 only
// hoisted its name); an anonymous one, or a bare expression, has no local
// binding to attach the default slot to.
func (a *analyzer) handleExportDefault(d *jsast.ExportDefaultDecl) {
	switch inner := d.Decl.(type) {
	case *jsast.FuncDecl:
		var b *scope.Binding
		if inner.Name != nil {
			b = a.tree.Root.LookupLocal(intern.Intern(inner.Name.Name), scope.Value)
			if b != nil {
				b.IsExported = true
			}
		}

		a.walkFuncBody(inner.TypeParams, inner.Params, inner.ReturnType, inner.Body)
		a.exports = append(a.exports, &summary.Export{Kind: summary.ExportDefault, ExportedName: "default", Binding: b, Loc: d.Loc})
	case *jsast.ClassDecl:
		var b *scope.Binding
		if inner.Name != nil {
			b = a.tree.Root.LookupLocal(intern.Intern(inner.Name.Name), scope.Value)
			if b != nil {
				b.IsExported = true
			}
		}

		a.walkClassDecl(inner)
		a.exports = append(a.exports, &summary.Export{Kind: summary.ExportDefault, ExportedName: "default", Binding: b, Loc: d.Loc})
	default:
		if expr, ok := d.Decl.(jsast.Expr); ok {
			a.resolveExpr(expr)
		}

		a.exports = append(a.exports, &summary.Export{Kind: summary.ExportDefault, ExportedName: "default", Loc: d.Loc})
	}
}
