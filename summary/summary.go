// Package summary defines the per-module output the analyzer hands to the
// linker: exports, imports, and the locally-used flag for every root-scope
// binding.
package summary

import (
	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/scope"
)

// ImportKind is one of the four import specifier shapes: named, default,
// wildcard, or side-effect-only.
type ImportKind int

const (
	ImportNamed ImportKind = iota
	ImportDefault
	ImportWildcard
	ImportSideEffect
)

// Import is a single import specifier resolved to its module path (still
// as written; the linker's resolver canonicalizes it).
type Import struct {
	Kind ImportKind

	// LocalName is the binding introduced in the importing module. Empty
	// for ImportSideEffect.
	LocalName string

	// ImportedName is the name as exported by the target module. Only set
	// for ImportNamed.
	ImportedName string

	ModulePath string
	TypeOnly   bool
	Loc        jsast.Range

	// Binding is the import-alias Binding this specifier introduced in the
	// importing module's root scope (nil for ImportSideEffect). The linker
	// does not read it; the analyzer keeps the pointer here so diagnostics can report ref counts
	// on imported names too.
	Binding *scope.Binding
}

// ExportKind is one of the export specifier variants: a named value, a
// named type, a default export, or a re-export.
type ExportKind int

const (
	ExportNamedValue ExportKind = iota
	ExportNamedType
	ExportDefault
	ExportReExport
)

// Export is one exported name. A single `export { P }` where P exists in
// both namespaces at root scope yields two Export records — one
// ExportNamedValue and one ExportNamedType, both with the same
// ExportedName.
type Export struct {
	Kind ExportKind

	ExportedName string

	// Binding is the root-scope binding this export names. Nil for
	// ExportReExport (a pure forwarding edge) and for an ExportDefault of a
	// bare expression (no local binding to point at).
	Binding *scope.Binding

	// SourceName and SourceModule are set only for ExportReExport: the name
	// as exported by SourceModule, which this module re-exports under
	// ExportedName without introducing a local binding.
	SourceName   string
	SourceModule string

	// TypeOnly marks an `export type { X }` or `export type { X } from "m"`
	// specifier: it lives in the Type namespace only.
	TypeOnly bool

	Loc jsast.Range
}

// ExternalUse is mutated by the linker only, after all analyzer workers
// have finished. It lives on Export rather than Binding because a
// re-export's "usedness" belongs to the forwarding edge, not to any
// binding in this module.
type ExternalUse struct {
	Used bool
}

// ModuleSummary is the per-module record fed to the linker.
type ModuleSummary struct {
	Path string

	Exports []*Export
	Imports []*Import

	// RootBindings is every binding declared at root scope (value or type
	// namespace, class/enum contributing one entry for its shared Both
	// binding), in source order. The linker does not read it: it reports
	// from Exports and Uses, flagging an export that is not externally
	// used, and classing it by whether its binding is locally used.
	RootBindings []*scope.Binding

	// Uses, parallel to Exports, tracks which exports the linker has so far
	// proven externally used. Index-aligned with Exports.
	Uses []ExternalUse

	// ParseError is set when the loader could not produce an AST for this
	// path at all. Every export this module WOULD have had must then be
	// treated as conservatively used, which is impossible without exports —
	// so linker.Link instead treats every import that targets this path as
	// resolved-but-unknown (counts as used, logs once).
	ParseError error
}

// MarkUsed records that the export at index i was reached by some import
// elsewhere in the project.
func (m *ModuleSummary) MarkUsed(i int) {
	m.Uses[i].Used = true
}

// FindExport returns the index of the first export named name, or -1. With
// wantType it matches only an ExportNamedType record; without it, only a
// named value, default, or re-export record.
func (m *ModuleSummary) FindExport(name string, wantType bool) int {
	for i, e := range m.Exports {
		if e.ExportedName != name {
			continue
		}

		switch e.Kind {
		case ExportNamedType:
			if wantType {
				return i
			}
		case ExportNamedValue, ExportDefault, ExportReExport:
			if !wantType {
				return i
			}
		}
	}

	return -1
}
