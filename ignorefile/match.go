// Package ignorefile reads a `.customsignore` file — one gitignore-style
// glob per line — and matches discovered paths against it. This sits
// outside the analysis core; it is the thin collaborator loader.Discover
// consults.
package ignorefile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// pattern is one compiled glob line. Most lines compile to Go's RE2 engine;
// a pattern using an extglob negative-lookahead group (`!(foo)`) falls back
// to regexp2, which can express what RE2 can't.
type pattern struct {
	raw     string
	re      *regexp.Regexp
	re2     *regexp2.Regexp
	dirOnly bool
}

func (p *pattern) match(relPath string) bool {
	if p.dirOnly && !strings.HasSuffix(relPath, "/") {
		return false
	}

	if p.re != nil {
		return p.re.MatchString(relPath)
	}

	if p.re2 != nil {
		ok, _ := p.re2.MatchString(relPath)
		return ok
	}

	return false
}

// Matcher excludes paths matched by any of its compiled patterns. It
// satisfies loader.IgnoreMatcher.
type Matcher struct {
	patterns []*pattern
}

// Match reports whether relPath (slash-separated, relative to the project
// root; a trailing "/" marks a directory) should be excluded.
func (m *Matcher) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, p := range m.patterns {
		if p.match(relPath) {
			return true
		}
	}

	return false
}

// Load reads path (a `.customsignore` file) and compiles each non-blank,
// non-comment line into a pattern. A missing file yields an empty, always-
// non-matching Matcher rather than an error, since the ignore file is
// optional.
func Load(path string) (*Matcher, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Matcher{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("ignorefile: opening %s: %w", path, err)
	}

	defer f.Close()

	m := &Matcher{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p, err := compile(line)
		if err != nil {
			return nil, fmt.Errorf("ignorefile: %s: invalid pattern %q: %w", path, line, err)
		}

		m.patterns = append(m.patterns, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ignorefile: reading %s: %w", path, err)
	}

	return m, nil
}

// AddGlob compiles and appends one extra glob pattern, for config-supplied
// ignores (modsweep.toml's `analysis.ignore`) that sit alongside whatever
// .customsignore already contributed.
func (m *Matcher) AddGlob(glob string) error {
	p, err := compile(glob)
	if err != nil {
		return fmt.Errorf("ignorefile: invalid pattern %q: %w", glob, err)
	}

	m.patterns = append(m.patterns, p)

	return nil
}

// compile translates one gitignore-style glob line into a pattern. Extglob
// negative-lookahead groups (`!(sub)`) need regexp2's lookahead support,
// which Go's RE2-based regexp package deliberately omits; every other glob
// compiles straight to RE2.
func compile(glob string) (*pattern, error) {
	dirOnly := strings.HasSuffix(glob, "/")
	glob = strings.TrimSuffix(glob, "/")
	anchored := strings.HasPrefix(glob, "/")
	glob = strings.TrimPrefix(glob, "/")

	if strings.Contains(glob, "!(") {
		reSrc := globToRegexp2(glob, anchored)

		re2, err := regexp2.Compile(reSrc, regexp2.None)
		if err != nil {
			return nil, err
		}

		return &pattern{raw: glob, re2: re2, dirOnly: dirOnly}, nil
	}

	reSrc := globToRE2(glob, anchored)

	re, err := regexp.Compile(reSrc)
	if err != nil {
		return nil, err
	}

	return &pattern{raw: glob, re: re, dirOnly: dirOnly}, nil
}

// globToRE2 and globToRegexp2 share the same translation rules (`**`
// crosses "/", `*` doesn't, `?` matches one non-separator rune); they differ
// only in how a literal `!(sub)` extglob group is rendered, since that's the
// one construct RE2 can't express as a negative-lookahead group at all.
func globToRE2(glob string, anchored bool) string {
	return wrapAnchors(translateGlob(glob, false), anchored)
}

func globToRegexp2(glob string, anchored bool) string {
	return wrapAnchors(translateGlob(glob, true), anchored)
}

func wrapAnchors(body string, anchored bool) string {
	if anchored {
		return "^" + body + "(?:/.*)?$"
	}

	return "(?:^|.*/)" + body + "(?:/.*)?$"
}

func translateGlob(glob string, allowExtglob bool) string {
	var b strings.Builder

	runes := []rune(glob)

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch {
		case allowExtglob && c == '!' && i+1 < len(runes) && runes[i+1] == '(':
			end := matchingParen(runes, i+1)
			if end < 0 {
				b.WriteString(regexp2QuoteMeta(string(c)))
				continue
			}

			// "!(inner)" matches any run of non-separator characters that
			// isn't exactly inner: a zero-width negative lookahead rules
			// out inner at this position, then [^/]* consumes whatever the
			// actual segment is. Only regexp2's backtracking engine can
			// resolve the resulting ambiguity against what follows in the
			// pattern; RE2 has no lookahead at all.
			inner := string(runes[i+2 : end])
			b.WriteString("(?!" + translateGlob(inner, allowExtglob) + ")[^/]*")
			i = end
		case c == '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				b.WriteString(".*")
				i++
			} else {
				b.WriteString("[^/]*")
			}
		case c == '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	return b.String()
}

func matchingParen(runes []rune, open int) int {
	depth := 0

	for i := open; i < len(runes); i++ {
		switch runes[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// regexp2QuoteMeta mirrors regexp.QuoteMeta; regexp2 understands the same
// metacharacter set for literal escaping purposes.
func regexp2QuoteMeta(s string) string {
	return regexp.QuoteMeta(s)
}
