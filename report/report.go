// Package report renders a linker.Report as text for the CLI's --format
// flag. Two human formats (compact, clean) and a third, json, for
// editor/CI integrations, encoded with github.com/segmentio/encoding/json
// the same way manifest/packagejson.go reads package.json.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/modsweep/modsweep/linker"
	"github.com/segmentio/encoding/json"
)

// Format selects how Write renders a linker.Report.
type Format string

const (
	Compact Format = "compact"
	Clean   Format = "clean"
	JSON    Format = "json"
)

// ParseFormat validates a --format flag value, defaulting unknown/empty
// input to Compact rather than erroring, since a bad format string is a
// cosmetic problem, not one that should abort a run that already computed
// real findings.
func ParseFormat(s string) Format {
	switch Format(s) {
	case Clean:
		return Clean
	case JSON:
		return JSON
	default:
		return Compact
	}
}

// Write renders r to w in the given format.
func Write(w io.Writer, r *linker.Report, format Format) error {
	switch format {
	case Clean:
		return writeClean(w, r)
	case JSON:
		return writeJSON(w, r)
	default:
		return writeCompact(w, r)
	}
}

// writeCompact emits one line per finding: "path:line:col kind name
// [namespace]", grep-friendly and the default a CI log tails.
func writeCompact(w io.Writer, r *linker.Report) error {
	for _, f := range r.Findings {
		if f.Kind == linker.FindingUnusedDependency {
			if _, err := fmt.Fprintf(w, "dependency %s unused\n", f.Name); err != nil {
				return err
			}

			continue
		}

		if _, err := fmt.Fprintf(w, "%s:%d:%d %s %s [%s]\n",
			f.Path, f.Loc.Start.Line, f.Loc.Start.Column, f.Kind, f.Name, f.Namespace); err != nil {
			return err
		}
	}

	return nil
}

// writeClean groups findings by file under a heading, a reviewer-facing
// layout grouped by file rather than emitted as a flat stream.
func writeClean(w io.Writer, r *linker.Report) error {
	var deps []linker.Finding

	byPath := make(map[string][]linker.Finding)
	var paths []string

	for _, f := range r.Findings {
		if f.Kind == linker.FindingUnusedDependency {
			deps = append(deps, f)
			continue
		}

		if _, seen := byPath[f.Path]; !seen {
			paths = append(paths, f.Path)
		}

		byPath[f.Path] = append(byPath[f.Path], f)
	}

	for _, path := range paths {
		if _, err := fmt.Fprintf(w, "%s\n", path); err != nil {
			return err
		}

		for _, f := range byPath[path] {
			label := "unused export"
			if f.Kind == linker.FindingLocallyUsedOnlyExport {
				label = "used only locally"
			}

			if _, err := fmt.Fprintf(w, "  %d:%d  %-18s  %s (%s)\n",
				f.Loc.Start.Line, f.Loc.Start.Column, label, f.Name, f.Namespace); err != nil {
				return err
			}
		}
	}

	if len(deps) > 0 {
		if _, err := fmt.Fprintf(w, "\ndependencies\n"); err != nil {
			return err
		}

		for _, f := range deps {
			if _, err := fmt.Fprintf(w, "  unused  %s\n", f.Name); err != nil {
				return err
			}
		}
	}

	if len(paths) == 0 && len(deps) == 0 {
		_, err := fmt.Fprintln(w, "no unused exports or dependencies found")
		return err
	}

	return nil
}

// jsonFinding is the wire shape of one report record for --format json.
type jsonFinding struct {
	Kind      string `json:"kind"`
	Path      string `json:"path,omitempty"`
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
}

func writeJSON(w io.Writer, r *linker.Report) error {
	out := make([]jsonFinding, 0, len(r.Findings))

	for _, f := range r.Findings {
		jf := jsonFinding{
			Kind: strings.ReplaceAll(f.Kind.String(), " ", "-"),
			Name: f.Name,
		}

		if f.Kind != linker.FindingUnusedDependency {
			jf.Path = f.Path
			jf.Namespace = f.Namespace.String()
			jf.Line = f.Loc.Start.Line
			jf.Column = f.Loc.Start.Column
		}

		out = append(out, jf)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))

	return err
}
