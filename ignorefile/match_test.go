package ignorefile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeIgnoreFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ".customsignore")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing ignore file: %v", err)
	}

	return path
}

func TestMatchSimpleGlob(t *testing.T) {
	tmp := t.TempDir()
	path := writeIgnoreFile(t, tmp, "*.test.ts\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !m.Match("foo.test.ts") {
		t.Fatal("expected foo.test.ts to be ignored")
	}

	if m.Match("foo.ts") {
		t.Fatal("did not expect foo.ts to be ignored")
	}
}

func TestMatchDoubleStarCrossesDirectories(t *testing.T) {
	tmp := t.TempDir()
	path := writeIgnoreFile(t, tmp, "**/generated/**\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !m.Match("src/api/generated/client.ts") {
		t.Fatal("expected nested generated/ path to be ignored")
	}
}

func TestMatchDirectoryOnlyPattern(t *testing.T) {
	tmp := t.TempDir()
	path := writeIgnoreFile(t, tmp, "dist/\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !m.Match("dist/") {
		t.Fatal("expected dist/ directory entry to be ignored")
	}

	if m.Match("dist") {
		t.Fatal("a bare file named dist should not match a directory-only pattern")
	}
}

func TestMatchExtglobNegativeLookahead(t *testing.T) {
	tmp := t.TempDir()
	path := writeIgnoreFile(t, tmp, "!(keep).generated.ts\n")

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if m.Match("keep.generated.ts") {
		t.Fatal("keep.generated.ts should be excluded from the ignore match by the negative lookahead")
	}

	if !m.Match("drop.generated.ts") {
		t.Fatal("expected drop.generated.ts to be ignored")
	}
}

func TestMissingIgnoreFileMatchesNothing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), ".customsignore"))
	if err != nil {
		t.Fatalf("expected a missing ignore file to be tolerated, got %v", err)
	}

	if m.Match("anything.ts") {
		t.Fatal("expected an empty matcher to match nothing")
	}
}
