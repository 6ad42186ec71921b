package linker

import (
	"errors"
	"testing"

	"github.com/modsweep/modsweep/analyzer"
	"github.com/modsweep/modsweep/jsparser"
	"github.com/modsweep/modsweep/summary"
)

// fakeResolver maps an as-written relative specifier straight onto a path
// keying modules, the way loader.Resolver would after walking a real
// project tree, without needing one here.
type fakeResolver map[string]string

func (f fakeResolver) Resolve(importPath, fromFile string) (string, bool) {
	p, ok := f[importPath]
	return p, ok
}

func analyze(t *testing.T, path, src string) *summary.ModuleSummary {
	t.Helper()

	file, errs := jsparser.ParseFile(src, path)
	if len(errs) != 0 {
		t.Fatalf("parsing %s: %v", path, errs)
	}

	return analyzer.AnalyzeFile(file)
}

func TestImportedExportIsNotReportedUnused(t *testing.T) {
	a := analyze(t, "/proj/a.ts", `export function foo() { return 1; }`)
	b := analyze(t, "/proj/b.ts", `
import { foo } from "./a";
foo();
`)

	modules := map[string]*summary.ModuleSummary{"/proj/a.ts": a, "/proj/b.ts": b}
	resolver := fakeResolver{"./a": "/proj/a.ts"}

	report, err := Link(modules, resolver, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range report.Findings {
		if f.Path == "/proj/a.ts" && f.Name == "foo" {
			t.Fatalf("foo should not be reported unused: %+v", f)
		}
	}
}

func TestWildcardImportMarksEveryExportUsed(t *testing.T) {
	a := analyze(t, "/proj/a.ts", `
export function foo() { return 1; }
export const bar = 2;
`)
	b := analyze(t, "/proj/b.ts", `
import * as A from "./a";
console.log(A.foo);
`)

	modules := map[string]*summary.ModuleSummary{"/proj/a.ts": a, "/proj/b.ts": b}
	resolver := fakeResolver{"./a": "/proj/a.ts"}

	report, err := Link(modules, resolver, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range report.Findings {
		if f.Path == "/proj/a.ts" && f.Kind == FindingUnusedExport {
			t.Fatalf("wildcard import should conservatively mark %q used", f.Name)
		}
	}
}

func TestExportedButNeverImportedIsUnusedEvenIfLocallyUsed(t *testing.T) {
	sum := analyze(t, "/proj/a.ts", `
const x = 1;
export const y = 2;
console.log(y);
`)

	modules := map[string]*summary.ModuleSummary{"/proj/a.ts": sum}

	report, err := Link(modules, fakeResolver{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool

	for _, f := range report.Findings {
		if f.Name == "x" {
			t.Fatalf("non-exported x must never appear in the report")
		}

		if f.Name == "y" {
			found = true

			if f.Kind != FindingLocallyUsedOnlyExport {
				t.Fatalf("expected y to be locally-used-only, got %v", f.Kind)
			}
		}
	}

	if !found {
		t.Fatal("expected a finding for y")
	}
}

func TestAmbiguousExportSpecifierYieldsTwoIndependentFindings(t *testing.T) {
	sum := analyze(t, "/proj/a.ts", `
type P = number;
const P = 1;
export { P };
`)

	modules := map[string]*summary.ModuleSummary{"/proj/a.ts": sum}

	report, err := Link(modules, fakeResolver{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var valueFindings, typeFindings int

	for _, f := range report.Findings {
		if f.Name != "P" {
			continue
		}

		if f.Namespace.String() == "type" {
			typeFindings++
		} else {
			valueFindings++
		}
	}

	if valueFindings != 1 || typeFindings != 1 {
		t.Fatalf("expected one value and one type finding for P, got value=%d type=%d", valueFindings, typeFindings)
	}
}

func TestUnusedManifestDependencyIsReported(t *testing.T) {
	sum := analyze(t, "/proj/a.ts", `import { z } from "lodash/fp";`)

	modules := map[string]*summary.ModuleSummary{"/proj/a.ts": sum}

	report, err := Link(modules, fakeResolver{}, []string{"lodash", "react"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var unused []string

	for _, f := range report.Findings {
		if f.Kind == FindingUnusedDependency {
			unused = append(unused, f.Name)
		}
	}

	if len(unused) != 1 || unused[0] != "react" {
		t.Fatalf("expected only react reported unused, got %v", unused)
	}
}

func TestSideEffectImportCountsAsDependencyUsage(t *testing.T) {
	sum := analyze(t, "/proj/a.ts", `import "reflect-metadata";`)

	modules := map[string]*summary.ModuleSummary{"/proj/a.ts": sum}

	report, err := Link(modules, fakeResolver{}, []string{"reflect-metadata"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range report.Findings {
		if f.Kind == FindingUnusedDependency && f.Name == "reflect-metadata" {
			t.Fatalf("a bare side-effect import should count as dependency usage: %+v", f)
		}
	}
}

func TestScopedPackageNameReduction(t *testing.T) {
	if got := packageName("@scope/pkg/subpath"); got != "@scope/pkg" {
		t.Fatalf("expected @scope/pkg, got %q", got)
	}

	if got := packageName("lodash/fp"); got != "lodash" {
		t.Fatalf("expected lodash, got %q", got)
	}
}

func TestReExportChainFollowsMultipleHops(t *testing.T) {
	c := analyze(t, "/proj/c.ts", `export const deep = 1;`)
	b := analyze(t, "/proj/b.ts", `export { deep } from "./c";`)
	a := analyze(t, "/proj/a.ts", `
import { deep } from "./b";
console.log(deep);
`)

	modules := map[string]*summary.ModuleSummary{
		"/proj/a.ts": a,
		"/proj/b.ts": b,
		"/proj/c.ts": c,
	}

	resolver := fakeResolver{"./b": "/proj/b.ts", "./c": "/proj/c.ts"}

	report, err := Link(modules, resolver, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range report.Findings {
		if f.Path == "/proj/c.ts" && f.Name == "deep" {
			t.Fatalf("deep should be marked used through the two-hop re-export chain: %+v", f)
		}

		if f.Path == "/proj/b.ts" && f.Name == "deep" {
			t.Fatalf("the forwarding export in b.ts should also be marked used: %+v", f)
		}
	}
}

func TestParseErrorModuleIsTreatedConservatively(t *testing.T) {
	a := analyze(t, "/proj/a.ts", `
import { foo } from "./broken";
console.log(foo);
`)

	broken := &summary.ModuleSummary{Path: "/proj/broken.ts", ParseError: errors.New("loader: reading /proj/broken.ts: permission denied")}

	modules := map[string]*summary.ModuleSummary{
		"/proj/a.ts":      a,
		"/proj/broken.ts": broken,
	}

	resolver := fakeResolver{"./broken": "/proj/broken.ts"}

	report, err := Link(modules, resolver, nil)
	if err == nil {
		t.Fatal("expected the aggregated error to surface the parse failure")
	}

	for _, f := range report.Findings {
		if f.Path == "/proj/a.ts" {
			t.Fatalf("a module importing from a broken one should not itself produce findings: %+v", f)
		}
	}
}
