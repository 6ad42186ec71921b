package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/modsweep/modsweep/jsast"
	"github.com/modsweep/modsweep/linker"
	"github.com/modsweep/modsweep/scope"
)

func sampleReport() *linker.Report {
	return &linker.Report{
		Findings: []linker.Finding{
			{
				Kind:      linker.FindingUnusedExport,
				Path:      "/proj/a.ts",
				Name:      "foo",
				Namespace: scope.Value,
				Loc:       jsast.Range{Start: jsast.Position{Line: 3, Column: 1}},
			},
			{Kind: linker.FindingUnusedDependency, Name: "lodash"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"compact": Compact,
		"clean":   Clean,
		"json":    JSON,
		"":        Compact,
		"bogus":   Compact,
	}

	for input, want := range cases {
		if got := ParseFormat(input); got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestWriteCompact(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), Compact); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "/proj/a.ts:3:1") {
		t.Errorf("expected a location line, got %q", out)
	}

	if !strings.Contains(out, "dependency lodash unused") {
		t.Errorf("expected an unused-dependency line, got %q", out)
	}
}

func TestWriteClean(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), Clean); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "/proj/a.ts") {
		t.Errorf("expected file heading, got %q", out)
	}

	if !strings.Contains(out, "dependencies") {
		t.Errorf("expected dependencies section, got %q", out)
	}
}

func TestWriteCleanEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, &linker.Report{}, Clean); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(buf.String(), "no unused") {
		t.Errorf("expected the empty-report message, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleReport(), JSON); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, `"name": "foo"`) {
		t.Errorf("expected foo in json output, got %q", out)
	}

	if !strings.Contains(out, `"kind": "unused-dependency"`) {
		t.Errorf("expected unused-dependency kind, got %q", out)
	}
}
