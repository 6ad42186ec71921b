package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	c, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Analysis.Format != "compact" || c.Analysis.Analyze != "all" {
		t.Errorf("got %+v, want DefaultConfig()", c)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()

	toml := `
[analysis]
format = "json"
analyze = "types"
ignore = ["**/*.generated.ts"]
`
	if err := os.WriteFile(filepath.Join(dir, "modsweep.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Analysis.Format != "json" {
		t.Errorf("Format = %q, want json", c.Analysis.Format)
	}

	if c.Analysis.Analyze != "types" {
		t.Errorf("Analyze = %q, want types", c.Analysis.Analyze)
	}

	if len(c.Analysis.Ignore) != 1 || c.Analysis.Ignore[0] != "**/*.generated.ts" {
		t.Errorf("Ignore = %v, want one glob", c.Analysis.Ignore)
	}
}

func TestLoadConfigRejectsUnrecognizedKeys(t *testing.T) {
	dir := t.TempDir()

	toml := `
[analysis]
format = "compact"

[bogus]
field = 1
`
	if err := os.WriteFile(filepath.Join(dir, "modsweep.toml"), []byte(toml), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Fatal("expected an error for an unrecognized top-level table")
	}
}
