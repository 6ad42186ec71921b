package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadDependenciesMissingFile(t *testing.T) {
	deps, err := ReadDependencies(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if deps != nil {
		t.Errorf("expected nil deps for a manifestless project, got %v", deps)
	}
}

func TestReadDependenciesUnionAndSort(t *testing.T) {
	dir := t.TempDir()

	content := `{
		"name": "sample",
		"dependencies": { "lodash": "^4.0.0", "@scope/pkg": "^1.0.0" },
		"devDependencies": { "typescript": "^5.0.0" }
	}`

	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	deps, err := ReadDependencies(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"@scope/pkg", "lodash", "typescript"}

	if len(deps) != len(want) {
		t.Fatalf("got %v, want %v", deps, want)
	}

	for i, name := range want {
		if deps[i] != name {
			t.Errorf("deps[%d] = %q, want %q", i, deps[i], name)
		}
	}
}
