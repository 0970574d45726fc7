package ignore

import (
	"fmt"
	"regexp"
	"strings"
)

// matchAll is the compiled form of patterns like "**/" that exclude everything.
var matchAll = regexp.MustCompile(`^.*`)

// matcher is the compiled comparison strategy of a rule. Exactly one
// implementation backs every valid rule: an exact string or a regexp.
type matcher interface {
	match(name string) bool
}

type literalMatcher string

func (m literalMatcher) match(name string) bool { return name == string(m) }

type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) match(name string) bool { return m.re.MatchString(name) }

// Rule is one compiled ignore pattern. A rule is either valid and usable for
// matching, or carries Invalid and is kept only for diagnostics.
type Rule struct {
	// Raw is the pattern text as it appeared in the ignore file.
	Raw string
	// Description identifies the rule as basename:line:pattern.
	Description string
	// DirOnly means the rule excludes directories, never files.
	DirOnly bool
	// BasenameOnly means the rule compares the final path segment instead
	// of the path relative to the ignore root.
	BasenameOnly bool
	// Invalid holds the reason the pattern could not be compiled.
	Invalid string

	m matcher
}

// Compile turns one ignore-file line into a rule. It never fails: patterns
// that cannot be supported come back with Invalid set so the caller can keep
// processing the remaining lines.
func Compile(pattern string) *Rule {
	return compile(pattern, "", 0)
}

func compile(pattern, basename string, line int) *Rule {
	r := &Rule{
		Raw:         pattern,
		Description: fmt.Sprintf("%s:%2d:%s", basename, line, pattern),
	}

	// A trailing slash restricts the rule to directories.
	if strings.HasSuffix(pattern, "/") && !strings.HasSuffix(pattern, "*/") {
		r.DirOnly = true
		pattern = pattern[:len(pattern)-1]
	}

	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		if hasGlob(rest) {
			r.Invalid = "too complex"
			return r
		}
		switch {
		case rest == "":
			r.BasenameOnly = true
			r.m = regexpMatcher{matchAll}
		case strings.Contains(rest, "/"):
			// **/foo/bar: relative path ends with /foo/bar
			r.m = regexpMatcher{regexp.MustCompile(`^.*/` + regexp.QuoteMeta(rest) + `$`)}
		default:
			// **/foo is the same as ignoring basename foo
			r.BasenameOnly = true
			r.m = literalMatcher(rest)
		}
		return r
	}

	if rest, ok := strings.CutSuffix(pattern, "/**"); ok {
		if hasGlob(rest) {
			r.Invalid = "too complex"
			return r
		}
		r.DirOnly = true
		if rest == "" {
			r.BasenameOnly = true
			r.m = regexpMatcher{matchAll}
			return r
		}
		pattern = rest
	}

	if first, second, ok := strings.Cut(pattern, "/**/"); ok {
		if hasGlob(first + second) {
			r.Invalid = "too complex"
			return r
		}
		// first/**/second: zero or more intermediate segments
		expr := `^` + regexp.QuoteMeta(first) + `(/.*/|/)?` + regexp.QuoteMeta(second) + `$`
		r.m = regexpMatcher{regexp.MustCompile(expr)}
		return r
	}

	if strings.Contains(pattern, "**") {
		r.Invalid = "not supported"
		return r
	}

	if rest, ok := strings.CutPrefix(pattern, "/"); ok {
		// Anchored: compare against the path relative to root.
		pattern = rest
	} else if !strings.Contains(pattern, "/") {
		r.BasenameOnly = true
	}

	if hasGlob(pattern) {
		r.m = regexpMatcher{regexp.MustCompile(translateGlob(pattern))}
		return r
	}
	r.m = literalMatcher(pattern)
	return r
}

// hasGlob reports whether pattern contains a shell glob that translateGlob
// can turn into a regexp.
func hasGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

// translateGlob converts a shell glob to an anchored regexp. Only "*" and
// "?" are special; both may cross path separators.
func translateGlob(pattern string) string {
	var b strings.Builder
	b.WriteString(`^`)
	for _, c := range pattern {
		switch c {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteString(`$`)
	return b.String()
}

// Valid reports whether the rule can be used for matching.
func (r *Rule) Valid() bool { return r.Invalid == "" }

func (r *Rule) String() string { return r.Raw }

// matches compares a rule against a candidate. rel is the path relative to
// the ignore root, base its final segment. isDir is evaluated lazily so that
// callers supplying a hint never pay for a stat.
func (r *Rule) matches(rel, base string, isDir func() bool) bool {
	if !r.Valid() {
		return false
	}
	if r.DirOnly && !isDir() {
		return false
	}
	name := rel
	if r.BasenameOnly {
		name = base
	}
	return r.m.match(name)
}
