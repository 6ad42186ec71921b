package analyzer

import (
	"sort"

	"github.com/modsweep/modsweep/scope"
	"github.com/modsweep/modsweep/summary"
)

// buildSummary collects the root scope's bindings (deduplicated across the
// Value/Type maps — a class or enum binding sits in both) and assembles the
// ModuleSummary the loader hands to the linker.
func (a *analyzer) buildSummary() *summary.ModuleSummary {
	seen := make(map[*scope.Binding]bool)
	var roots []*scope.Binding

	for _, b := range a.tree.Root.ValueBindings() {
		if !seen[b] {
			seen[b] = true
			roots = append(roots, b)
		}
	}

	for _, b := range a.tree.Root.TypeBindings() {
		if !seen[b] {
			seen[b] = true
			roots = append(roots, b)
		}
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Loc.Start.Offset < roots[j].Loc.Start.Offset
	})

	return &summary.ModuleSummary{
		Path:         a.path,
		Exports:      a.exports,
		Imports:      a.imports,
		RootBindings: roots,
		Uses:         make([]summary.ExternalUse, len(a.exports)),
	}
}
