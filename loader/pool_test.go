package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestPoolRunAnalyzesEveryFile(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "a.ts"), []byte(`
export const used = 1;
export const unused = 2;
`), 0644)

	os.WriteFile(filepath.Join(tmpDir, "b.ts"), []byte(`
import { used } from "./a";
console.log(used);
`), 0644)

	paths, err := Discover(tmpDir, nil)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}

	pool := NewPool(2)
	modules := pool.Run(context.Background(), paths)

	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}

	aPath := filepath.Join(tmpDir, "a.ts")

	aSum, ok := modules[aPath]
	if !ok {
		t.Fatalf("missing summary for %s", aPath)
	}

	if aSum.ParseError != nil {
		t.Fatalf("unexpected parse error for a.ts: %v", aSum.ParseError)
	}

	if len(aSum.Exports) != 2 {
		t.Fatalf("expected 2 exports from a.ts, got %d", len(aSum.Exports))
	}

	stats := pool.Stats(len(paths))
	if stats.Completed != 2 || stats.Failed != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestPoolRunRecoversFromUnreadableFile(t *testing.T) {
	pool := NewPool(1)
	modules := pool.Run(context.Background(), []string{"/nonexistent/path/does-not-exist.ts"})

	sum := modules["/nonexistent/path/does-not-exist.ts"]
	if sum == nil || sum.ParseError == nil {
		t.Fatalf("expected a ParseError for an unreadable file, got %+v", sum)
	}
}
