package loader

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/modsweep/modsweep/analyzer"
	"github.com/modsweep/modsweep/jsparser"
	"github.com/modsweep/modsweep/summary"
)

// Stats is a point-in-time snapshot of a Pool's progress.
type Stats struct {
	Total     int
	Completed int64
	Failed    int64
}

// Pool drives a fixed number of worker goroutines over a list of module
// paths; each module is read, parsed, and analyzed independently by one
// worker, with no shared mutable state besides the intern table.
// It runs a single batch per Run call rather than streaming jobs/results
// over long-lived channels, since modsweep's CLI and LSP both want
// "analyze this fixed set of files and wait for the full result".
type Pool struct {
	workers int

	completed atomic.Int64
	failed    atomic.Int64
}

// NewPool creates a Pool with the given worker count. A count <= 0 falls
// back to runtime.GOMAXPROCS(0), since module analysis is pure CPU work with
// no I/O wait worth overlapping beyond that.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Pool{workers: workers}
}

// Stats returns a snapshot safe to read while Run is still in flight.
func (p *Pool) Stats(total int) Stats {
	return Stats{
		Total:     total,
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
	}
}

type job struct {
	path string
}

type outcome struct {
	path string
	sum  *summary.ModuleSummary
}

// Run reads and analyzes every path concurrently and returns a map keyed by
// path. ctx cancellation stops handing out new jobs but lets in-flight ones
// finish — a loader run here may be backing an LSP session the editor can
// cancel mid-analysis, unlike a one-shot CLI invocation.
func (p *Pool) Run(ctx context.Context, paths []string) map[string]*summary.ModuleSummary {
	jobs := make(chan job, len(paths))
	results := make(chan outcome, len(paths))

	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			p.worker(ctx, jobs, results)
		}()
	}

	for _, path := range paths {
		jobs <- job{path: path}
	}

	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make(map[string]*summary.ModuleSummary, len(paths))

	for o := range results {
		out[o.path] = o.sum
	}

	return out
}

func (p *Pool) worker(ctx context.Context, jobs <-chan job, results chan<- outcome) {
	for j := range jobs {
		select {
		case <-ctx.Done():
			p.failed.Add(1)
			results <- outcome{path: j.path, sum: &summary.ModuleSummary{Path: j.path, ParseError: ctx.Err()}}
			continue
		default:
		}

		sum := p.analyzeOne(j.path)

		if sum.ParseError != nil {
			p.failed.Add(1)
		} else {
			p.completed.Add(1)
		}

		results <- outcome{path: j.path, sum: sum}
	}
}

// analyzeOne reads, parses, and analyzes a single file, recovering around
// analyzer.AnalyzeFile: a panic here (a structural assertion failing on a
// malformed AST) becomes a ModuleSummary.ParseError instead of taking down
// the whole run, isolating one file's failure from the rest of the batch.
func (p *Pool) analyzeOne(path string) (sum *summary.ModuleSummary) {
	defer func() {
		if r := recover(); r != nil {
			sum = &summary.ModuleSummary{
				Path:       path,
				ParseError: fmt.Errorf("loader: analyzing %s: %v", path, r),
			}
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		return &summary.ModuleSummary{Path: path, ParseError: fmt.Errorf("loader: reading %s: %w", path, err)}
	}

	file, errs := jsparser.ParseFile(string(src), path)
	if len(errs) != 0 {
		return &summary.ModuleSummary{
			Path:       path,
			ParseError: fmt.Errorf("loader: parsing %s: %s", path, strings.Join(errs, "; ")),
		}
	}

	return analyzer.AnalyzeFile(file)
}
