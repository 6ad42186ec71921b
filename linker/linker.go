// Package linker implements the cross-module phase of analysis: given
// every module's summary, it matches each import to the export it targets,
// marks that export externally used, and reports exports that end up
// neither externally nor locally used, plus manifest dependencies no
// in-project import ever reaches. It runs single-threaded, after the
// loader's worker pool has finished every module.
package linker

import (
	"sort"
	"strings"

	"github.com/modsweep/modsweep/summary"
	"go.uber.org/multierr"
)

// Resolver turns an import specifier, relative to the importing module's
// path, into the canonical path keying Link's modules map. loader.Resolver
// satisfies this; the linker depends only on the interface so it can be
// tested without a real filesystem.
type Resolver interface {
	Resolve(importPath, fromFile string) (resolved string, ok bool)
}

// Link matches every import to the export it targets and returns a Report
// plus an aggregated error (built with multierr) describing every
// module-level parse failure and every import that targeted a module this
// run never discovered. Neither kind of error aborts the run: both are
// conservative overestimates of usage, so the returned Report is always
// complete even when err is non-nil.
func Link(modules map[string]*summary.ModuleSummary, resolver Resolver, dependencies []string) (*Report, error) {
	var errs error

	paths := make([]string, 0, len(modules))
	for p := range modules {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	depNames := make(map[string]struct{})

	for _, path := range paths {
		sum := modules[path]
		if sum.ParseError != nil {
			errs = multierr.Append(errs, sum.ParseError)
			continue
		}

		for _, imp := range sum.Imports {
			if resolveErr := linkImport(modules, resolver, path, imp, depNames); resolveErr != nil {
				errs = multierr.Append(errs, resolveErr)
			}
		}
	}

	report := buildReport(modules, paths, dependencies, depNames)

	return report, errs
}

// linkImport resolves one import specifier against modules and marks the
// export(s) it reaches as externally used. A bare-specifier import (not
// starting with "." or "/") contributes its package name to depNames
// instead.
func linkImport(modules map[string]*summary.ModuleSummary, resolver Resolver, fromPath string, imp *summary.Import, depNames map[string]struct{}) error {
	if !strings.HasPrefix(imp.ModulePath, ".") && !strings.HasPrefix(imp.ModulePath, "/") {
		depNames[packageName(imp.ModulePath)] = struct{}{}
	}

	if strings.HasPrefix(imp.ModulePath, ".") || strings.HasPrefix(imp.ModulePath, "/") {
		target, ok := resolver.Resolve(imp.ModulePath, fromPath)
		if !ok {
			return &MissError{FromPath: fromPath, ModulePath: imp.ModulePath}
		}

		targetSum, found := modules[target]
		if !found {
			return &MissError{FromPath: fromPath, ModulePath: imp.ModulePath}
		}

		// A module that failed to parse contributes no export records at
		// all; per summary.ModuleSummary.ParseError's documented policy
		// every import that reaches it is treated as resolved-but-unknown,
		// not as a miss, since flagging it would produce a false-positive
		// unused export elsewhere for no useful signal.
		if targetSum.ParseError != nil {
			return nil
		}

		markImport(modules, resolver, target, targetSum, imp, make(map[string]bool))
	}

	return nil
}

func markImport(modules map[string]*summary.ModuleSummary, resolver Resolver, targetPath string, targetSum *summary.ModuleSummary, imp *summary.Import, visited map[string]bool) {
	switch imp.Kind {
	case summary.ImportWildcard:
		for i := range targetSum.Exports {
			markExport(modules, resolver, targetPath, i, visited)
		}
	case summary.ImportDefault:
		if i := targetSum.FindExport("default", false); i >= 0 {
			markExport(modules, resolver, targetPath, i, visited)
		}
	case summary.ImportNamed:
		if i := targetSum.FindExport(imp.ImportedName, imp.TypeOnly); i >= 0 {
			markExport(modules, resolver, targetPath, i, visited)
		}
	case summary.ImportSideEffect:
		// No export usage to mark; the import runs the module for effect.
	}
}

// markExport marks the export at modules[path].Exports[idx] used, then
// follows it if it's a re-export, continuing through as many hops as the
// chain has. visited guards against a cyclic re-export chain, which a
// cyclic module graph makes legal.
func markExport(modules map[string]*summary.ModuleSummary, resolver Resolver, path string, idx int, visited map[string]bool) {
	sum := modules[path]
	if sum == nil || idx < 0 || idx >= len(sum.Exports) {
		return
	}

	sum.MarkUsed(idx)

	exp := sum.Exports[idx]
	if exp.Kind != summary.ExportReExport {
		return
	}

	key := path + "\x00" + exp.SourceName
	if visited[key] {
		return
	}

	visited[key] = true

	target, ok := resolver.Resolve(exp.SourceModule, path)
	if !ok {
		return
	}

	targetSum, found := modules[target]
	if !found || targetSum.ParseError != nil {
		return
	}

	if exp.SourceName == "*" {
		for i := range targetSum.Exports {
			markExport(modules, resolver, target, i, visited)
		}

		return
	}

	if i := targetSum.FindExport(exp.SourceName, exp.TypeOnly); i >= 0 {
		markExport(modules, resolver, target, i, visited)
	}
}

// packageName reduces a bare import specifier to the manifest-dependency
// name it corresponds to, accounting for scoped packages (`@scope/pkg/sub`
// reduces to `@scope/pkg`, not `@scope`).
func packageName(specifier string) string {
	parts := strings.Split(specifier, "/")

	if strings.HasPrefix(specifier, "@") && len(parts) >= 2 {
		return parts[0] + "/" + parts[1]
	}

	return parts[0]
}

// MissError is a linker miss: an import whose module path never resolved
// to a discovered module. It contributes no usage mark and
// is reported via the aggregated error rather than a Finding, since it
// describes a resolution gap, not a property of any particular export.
type MissError struct {
	FromPath   string
	ModulePath string
}

func (e *MissError) Error() string {
	return "linker: " + e.FromPath + ": import " + e.ModulePath + " does not resolve to a known module"
}
