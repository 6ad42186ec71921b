// Package loader discovers every source file under a project root, resolves
// import specifiers to absolute paths, and drives a worker pool that parses
// and analyzes each module concurrently. The linker then runs
// single-threaded over the resulting map of summary.ModuleSummary.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// candidateExtensions is tried in order when an import specifier omits an
// extension, mirroring how a real TS/JS resolver prefers a same-name
// source file over an index file in the target directory.
var candidateExtensions = []string{".ts", ".tsx", ".d.ts", ".js", ".jsx", ".mjs", ".cjs"}

// Resolver maps a relative import specifier, relative to the importing
// file, to an absolute path on disk. A specifier that does not start with
// "." (a package name, an absolute path) is never resolved, even when a
// matching file exists under the project root; the linker counts a bare
// package specifier toward dependency usage and records any other
// unresolved import as a MissError.
type Resolver struct {
	root string
}

// NewResolver creates a Resolver rooted at root (the directory containing
// the project's manifest file).
func NewResolver(root string) *Resolver {
	return &Resolver{root: root}
}

// Resolve maps importPath as written in fromFile to an absolute file path.
// It returns ok=false for every specifier that does not start with "." and
// for a relative one that matches no file.
func (r *Resolver) Resolve(importPath, fromFile string) (resolved string, ok bool) {
	if !strings.HasPrefix(importPath, ".") {
		return "", false
	}

	dir := filepath.Dir(fromFile)
	base := filepath.Join(dir, importPath)

	if p, ok := r.withExtension(base); ok {
		return p, true
	}

	if p, ok := r.withExtension(filepath.Join(base, "index")); ok {
		return p, true
	}

	return "", false
}

func (r *Resolver) withExtension(base string) (string, bool) {
	if hasKnownExtension(base) {
		if st, err := os.Stat(base); err == nil && !st.IsDir() {
			return base, true
		}

		return "", false
	}

	for _, ext := range candidateExtensions {
		candidate := base + ext
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, true
		}
	}

	return "", false
}

func hasKnownExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range candidateExtensions {
		if ext == known {
			return true
		}
	}

	return false
}

// IgnoreMatcher decides whether a discovered path should be excluded before
// it ever reaches the worker pool. The loader depends only on this
// interface, not on the ignorefile package directly, so it can be driven
// by a no-op matcher in tests.
type IgnoreMatcher interface {
	Match(relPath string) bool
}

type noopMatcher struct{}

func (noopMatcher) Match(string) bool { return false }

// Discover walks root for every file with a known source extension,
// skipping node_modules and anything IgnoreMatcher reports as ignored. A
// nil matcher discovers everything.
func Discover(root string, matcher IgnoreMatcher) ([]string, error) {
	if matcher == nil {
		matcher = noopMatcher{}
	}

	var files []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == ".git" || (rel != "." && matcher.Match(rel+"/")) {
				return filepath.SkipDir
			}

			return nil
		}

		if !hasKnownExtension(path) || strings.HasSuffix(path, ".d.ts") {
			return nil
		}

		if matcher.Match(rel) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: discovering sources under %s: %w", root, err)
	}

	return files, nil
}
