package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/modsweep/modsweep/ignorefile"
	"github.com/modsweep/modsweep/internal/logging"
	"github.com/modsweep/modsweep/linker"
	"github.com/modsweep/modsweep/loader"
	"github.com/modsweep/modsweep/manifest"
	"github.com/modsweep/modsweep/report"
	"github.com/modsweep/modsweep/scope"
	"go.uber.org/zap"
)

// options holds the CLI flags: --format, --analyze, --workers, plus -v for
// verbose logging.
type options struct {
	targetDir string
	format    string
	analyze   string
	verbose   bool
	workers   int
}

func parseArgs(args []string) (*options, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("missing <target-dir>")
	}

	opts := &options{format: "", analyze: "all"}

	var positional []string

	for i := 0; i < len(args); i++ {
		switch a := args[i]; a {
		case "--format":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--format requires a value")
			}

			opts.format = args[i]
		case "--analyze":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--analyze requires a value")
			}

			opts.analyze = args[i]
		case "-v", "--verbose":
			opts.verbose = true
		case "--workers":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--workers requires a value")
			}

			fmt.Sscanf(args[i], "%d", &opts.workers)
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) != 1 {
		return nil, fmt.Errorf("expected exactly one <target-dir>, got %d", len(positional))
	}

	opts.targetDir = positional[0]

	switch opts.analyze {
	case "types", "values", "all":
	default:
		return nil, fmt.Errorf("--analyze must be one of types|values|all, got %q", opts.analyze)
	}

	return opts, nil
}

// runAnalyze implements the one-shot `modsweep <target-dir>` invocation:
// load the ignore file and manifest, run the loader's worker pool over
// every discovered module, link the summaries, and print the report.
// Exit code is 0 for a completed run (findings are not errors); a
// non-zero exit is reserved for I/O/parse failure that prevented any
// analysis at all.
func runAnalyze(args []string) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(opts.targetDir)
	if err != nil {
		return err
	}

	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("target-dir %s: %w", root, err)
	}

	logger := logging.New(opts.verbose)
	defer logger.Sync() //nolint:errcheck

	cfg, err := manifest.LoadConfig(root)
	if err != nil {
		return err
	}

	if opts.format == "" {
		opts.format = cfg.Analysis.Format
	}

	matcher, err := ignorefile.Load(filepath.Join(root, ".customsignore"))
	if err != nil {
		return err
	}

	for _, glob := range cfg.Analysis.Ignore {
		if err := matcher.AddGlob(glob); err != nil {
			return err
		}
	}

	start := time.Now()

	ctx := context.Background()

	graph, err := loader.Load(ctx, root, matcher, opts.workers)
	if err != nil {
		return fmt.Errorf("loading %s: %w", root, err)
	}

	logger.Debug("modules discovered", zap.Int("count", len(graph.Modules)), zap.Duration("elapsed", time.Since(start)))

	for path, sum := range graph.Modules {
		if sum.ParseError != nil {
			logger.Warn("module skipped", zap.String("path", path), zap.Error(sum.ParseError))
		}
	}

	deps, err := manifest.ReadDependencies(root)
	if err != nil {
		return fmt.Errorf("reading package.json: %w", err)
	}

	rep, linkErr := linker.Link(graph.Modules, graph.Resolver, deps)
	if linkErr != nil {
		logger.Debug("linker diagnostics", zap.Error(linkErr))
	}

	filterNamespace(rep, opts.analyze)

	return report.Write(os.Stdout, rep, report.ParseFormat(opts.format))
}

// filterNamespace drops findings that don't match --analyze; unused-
// dependency findings (no namespace) always survive, since --analyze
// governs export namespaces only. A class or enum finding (namespace Both)
// survives both "types" and "values".
func filterNamespace(r *linker.Report, mode string) {
	if mode == "all" {
		return
	}

	want := scope.Value
	if mode == "types" {
		want = scope.Type
	}

	kept := r.Findings[:0]

	for _, f := range r.Findings {
		if f.Kind == linker.FindingUnusedDependency || f.Namespace == want || f.Namespace == scope.Both {
			kept = append(kept, f)
		}
	}

	r.Findings = kept
}
