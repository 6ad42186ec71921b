package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveRelativeModule(t *testing.T) {
	tmpDir := t.TempDir()

	mathFile := filepath.Join(tmpDir, "math.ts")
	os.WriteFile(mathFile, []byte("export function add(x: number, y: number) { return x + y; }"), 0644)

	mainFile := filepath.Join(tmpDir, "main.ts")
	os.WriteFile(mainFile, []byte(`import { add } from "./math";`), 0644)

	resolver := NewResolver(tmpDir)

	resolved, ok := resolver.Resolve("./math", mainFile)
	if !ok {
		t.Fatal("expected ./math to resolve")
	}

	if resolved != mathFile {
		t.Errorf("wrong path. expected=%q, got=%q", mathFile, resolved)
	}
}

func TestResolveRelativeIndex(t *testing.T) {
	tmpDir := t.TempDir()

	os.Mkdir(filepath.Join(tmpDir, "utils"), 0755)

	indexFile := filepath.Join(tmpDir, "utils", "index.ts")
	os.WriteFile(indexFile, []byte("export const x = 1;"), 0644)

	mainFile := filepath.Join(tmpDir, "main.ts")
	os.WriteFile(mainFile, []byte(`import { x } from "./utils";`), 0644)

	resolver := NewResolver(tmpDir)

	resolved, ok := resolver.Resolve("./utils", mainFile)
	if !ok {
		t.Fatal("expected ./utils to resolve to its index file")
	}

	if resolved != indexFile {
		t.Errorf("wrong path. expected=%q, got=%q", indexFile, resolved)
	}
}

func TestResolveBarePackageNameLeftUnresolved(t *testing.T) {
	tmpDir := t.TempDir()

	mainFile := filepath.Join(tmpDir, "main.ts")
	os.WriteFile(mainFile, []byte(`import { z } from "lodash";`), 0644)

	resolver := NewResolver(tmpDir)

	if _, ok := resolver.Resolve("lodash", mainFile); ok {
		t.Fatal("expected a bare package specifier to be left unresolved")
	}
}

func TestDiscoverSkipsNodeModulesAndDeclarationFiles(t *testing.T) {
	tmpDir := t.TempDir()

	os.Mkdir(filepath.Join(tmpDir, "node_modules"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "node_modules", "pkg.ts"), []byte("export const x = 1;"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "a.ts"), []byte("export const a = 1;"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "a.d.ts"), []byte("export declare const a: number;"), 0644)

	files, err := Discover(tmpDir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "a.ts" {
		t.Fatalf("expected only a.ts discovered, got %v", files)
	}
}
