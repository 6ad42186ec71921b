package loader

import (
	"context"

	"github.com/modsweep/modsweep/summary"
)

// Graph is the full result of one analysis run: every discovered module's
// summary, plus the Resolver needed to turn an Import's as-written
// ModulePath into the absolute path keying Modules — the linker needs
// every module's summary plus a way to resolve one module's import to
// another module's path.
type Graph struct {
	Root     string
	Modules  map[string]*summary.ModuleSummary
	Resolver *Resolver
}

// Load discovers every source file under root, excluding anything matcher
// reports as ignored, and analyzes all of them concurrently through a Pool
// sized to workers. A workers value <= 0 uses GOMAXPROCS.
func Load(ctx context.Context, root string, matcher IgnoreMatcher, workers int) (*Graph, error) {
	paths, err := Discover(root, matcher)
	if err != nil {
		return nil, err
	}

	pool := NewPool(workers)
	modules := pool.Run(ctx, paths)

	return &Graph{
		Root:     root,
		Modules:  modules,
		Resolver: NewResolver(root),
	}, nil
}
