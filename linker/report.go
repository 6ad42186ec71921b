package linker

import (
	"sort"

	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/scope"
	"github.com/modsweep/modsweep/summary"
)

// FindingKind classifies one Report entry: unused export,
// locally-used-only export, or unused dependency.
type FindingKind int

const (
	FindingUnusedExport FindingKind = iota
	FindingLocallyUsedOnlyExport
	FindingUnusedDependency
)

func (k FindingKind) String() string {
	switch k {
	case FindingUnusedExport:
		return "unused export"
	case FindingLocallyUsedOnlyExport:
		return "locally-used-only export"
	case FindingUnusedDependency:
		return "unused dependency"
	default:
		return "unknown"
	}
}

// Finding is one record of the final report: a file, a span, a name, a
// namespace, and a classification. Namespace and Loc are zero for
// FindingUnusedDependency, which isn't anchored to a source position.
type Finding struct {
	Kind      FindingKind
	Path      string
	Name      string
	Namespace scope.Namespace
	Loc       jsast.Range
}

// Report is the full set of findings, sorted for deterministic output:
// summaries are collected into a map keyed by canonical path, then the
// linker iterates in sorted order.
type Report struct {
	Findings []Finding
}

func buildReport(modules map[string]*summary.ModuleSummary, sortedPaths []string, dependencies []string, usedDeps map[string]struct{}) *Report {
	r := &Report{}

	for _, path := range sortedPaths {
		sum := modules[path]
		if sum.ParseError != nil {
			continue
		}

		for i, exp := range sum.Exports {
			if sum.Uses[i].Used {
				continue
			}

			ns := exportNamespace(exp)

			if exp.Binding != nil && exp.Binding.IsLocallyUsed() {
				r.Findings = append(r.Findings, Finding{
					Kind:      FindingLocallyUsedOnlyExport,
					Path:      path,
					Name:      exp.ExportedName,
					Namespace: ns,
					Loc:       exp.Loc,
				})

				continue
			}

			r.Findings = append(r.Findings, Finding{
				Kind:      FindingUnusedExport,
				Path:      path,
				Name:      exp.ExportedName,
				Namespace: ns,
				Loc:       exp.Loc,
			})
		}
	}

	for _, dep := range dependencies {
		if _, ok := usedDeps[dep]; ok {
			continue
		}

		r.Findings = append(r.Findings, Finding{Kind: FindingUnusedDependency, Name: dep})
	}

	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}

		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}

		return a.Name < b.Name
	})

	return r
}

func exportNamespace(exp *summary.Export) scope.Namespace {
	if exp.TypeOnly {
		return scope.Type
	}

	if exp.Binding != nil {
		return exp.Binding.Namespace
	}

	return scope.Value
}
