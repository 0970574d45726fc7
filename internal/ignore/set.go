package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBasename is the conventional name of the ignore file, looked up at
// the parent of the walk root.
const DefaultBasename = ".contentignore"

// Set holds every valid rule for one root directory. It is populated during
// Load and read-only afterwards, so concurrent walks may share one Set.
type Set struct {
	root        string
	basename    string
	rules       map[*Rule]struct{}
	diagnostics []string
}

// Load builds a Set for root from the ignore file <parent(root)>/<basename>.
// A missing or partially unparseable ignore file is never an error; problems
// are collected as diagnostics and whatever rules compiled cleanly are used.
// When useDefaults is true the usual version-control metadata rule (".git/")
// is added regardless of file contents.
func Load(root, basename string, useDefaults bool) *Set {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	s := &Set{
		root:     abs,
		basename: basename,
		rules:    make(map[*Rule]struct{}),
	}
	s.parseFile(filepath.Join(filepath.Dir(abs), basename))
	if useDefaults {
		s.Add(".git/")
	}
	return s
}

func (s *Set) parseFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.diagnostics = append(s.diagnostics, fmt.Sprintf("no ignore file %s", path))
		} else {
			s.diagnostics = append(s.diagnostics, fmt.Sprintf("reading %s: %v", path, err))
		}
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, "!") {
			// Negation patterns are additive-ordering poison; reject
			// rather than misapply.
			s.diagnostics = append(s.diagnostics, fmt.Sprintf("negation pattern line %d not supported", line))
			continue
		}
		s.AddLine(text, line)
	}
	if err := scanner.Err(); err != nil {
		s.diagnostics = append(s.diagnostics, fmt.Sprintf("reading %s: %v", path, err))
	}
}

// Add compiles pattern and adds it to the set; invalid patterns become
// diagnostics instead.
func (s *Set) Add(pattern string) {
	s.AddLine(pattern, 0)
}

// AddLine is Add with the ignore-file line number for diagnostics.
func (s *Set) AddLine(pattern string, line int) {
	r := compile(pattern, s.basename, line)
	if !r.Valid() {
		s.diagnostics = append(s.diagnostics, fmt.Sprintf("%s: %s", r.Description, r.Invalid))
		return
	}
	s.rules[r] = struct{}{}
}

// Root returns the absolute path the set anchors relative matching to.
func (s *Set) Root() string { return s.root }

// Len returns the number of active rules.
func (s *Set) Len() int { return len(s.rules) }

// Diagnostics returns every problem recorded while building the set, in
// the order encountered.
func (s *Set) Diagnostics() []string {
	out := make([]string, len(s.diagnostics))
	copy(out, s.diagnostics)
	return out
}

func (s *Set) String() string {
	return fmt.Sprintf("%d ignores, %d invalid", len(s.rules), len(s.diagnostics))
}

// Match returns a rule excluding path, or nil. Rules form an unordered set of
// purely additive exclusions, so any single match is sufficient and no
// precedence exists between rules. isDir tells directory-only rules whether
// path is a directory; pass nil to have the set stat the path on demand (a
// failed stat counts as not-a-directory).
func (s *Set) Match(path string, isDir *bool) *Rule {
	rel := s.relative(path)
	base := filepath.Base(path)

	known := isDir != nil
	var dir bool
	if known {
		dir = *isDir
	}
	isDirFn := func() bool {
		if !known {
			known = true
			info, err := os.Stat(path)
			dir = err == nil && info.IsDir()
		}
		return dir
	}

	for r := range s.rules {
		if r.matches(rel, base, isDirFn) {
			return r
		}
	}
	return nil
}

// PruneChildDirectories filters names down to the child directories of parent
// that are not excluded, letting a walk skip whole subtrees before descending.
func (s *Set) PruneChildDirectories(parent string, names []string) []string {
	isDir := true
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if s.Match(filepath.Join(parent, name), &isDir) == nil {
			kept = append(kept, name)
		}
	}
	return kept
}

// Describe walks the whole root and reports every entry the set excludes,
// annotated with the rule responsible. Debugging aid only.
func (s *Set) Describe() string {
	var lines []string
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			full := filepath.Join(dir, e.Name())
			isDir := e.IsDir()
			if m := s.Match(full, &isDir); m != nil {
				lines = append(lines, fmt.Sprintf("%-30s: %s", m.Description, s.relative(full)))
				continue
			}
			if isDir {
				walk(full)
			}
		}
	}
	walk(s.root)
	return strings.Join(lines, "\n")
}

// relative strips the root (and its separator) from path. Paths outside the
// root are compared as given.
func (s *Set) relative(path string) string {
	rel := strings.TrimPrefix(path, s.root+string(os.PathSeparator))
	return filepath.ToSlash(rel)
}
