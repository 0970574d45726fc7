package ignore

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ruleMatches runs a compiled rule against a slash-relative path.
func ruleMatches(r *Rule, rel string, isDir bool) bool {
	return r.matches(rel, path.Base(rel), func() bool { return isDir })
}

func TestCompileDirectoryOnly(t *testing.T) {
	tests := []struct {
		pattern string
		dirOnly bool
	}{
		{"build/", true},
		{"build", false},
		{"a/b/", true},
		{"*/", false}, // trailing */ is a glob, not a directory marker
		{"build/**", true},
		{"/**", true},
	}

	for _, tt := range tests {
		r := Compile(tt.pattern)
		require.True(t, r.Valid(), "pattern %q", tt.pattern)
		assert.Equal(t, tt.dirOnly, r.DirOnly, "pattern %q", tt.pattern)
	}
}

func TestDirectoryOnlyNeverMatchesFile(t *testing.T) {
	r := Compile("build/")
	require.True(t, r.Valid())

	assert.True(t, ruleMatches(r, "build", true))
	assert.False(t, ruleMatches(r, "build", false))
	assert.False(t, ruleMatches(r, "src/build", false))
}

func TestCompileLeadingDoubleStar(t *testing.T) {
	r := Compile("**/foo")
	require.True(t, r.Valid())
	assert.True(t, r.BasenameOnly)

	assert.True(t, ruleMatches(r, "foo", false))
	assert.True(t, ruleMatches(r, "a/b/foo", false))
	assert.False(t, ruleMatches(r, "a/b/foobar", false))
	assert.False(t, ruleMatches(r, "a/foo/b", false))
}

func TestCompileLeadingDoubleStarWithPath(t *testing.T) {
	r := Compile("**/foo/bar")
	require.True(t, r.Valid())
	assert.False(t, r.BasenameOnly)

	assert.True(t, ruleMatches(r, "x/foo/bar", false))
	assert.True(t, ruleMatches(r, "a/b/foo/bar", false))
	assert.False(t, ruleMatches(r, "foo/bar", false))
	assert.False(t, ruleMatches(r, "x/foo/barbaz", false))
}

func TestCompileBareDoubleStarSlash(t *testing.T) {
	r := Compile("**/")
	require.True(t, r.Valid())
	assert.True(t, r.BasenameOnly)
	assert.False(t, r.DirOnly)
	assert.True(t, ruleMatches(r, "anything", false))
}

func TestCompileTrailingDoubleStar(t *testing.T) {
	r := Compile("build/**")
	require.True(t, r.Valid())
	assert.True(t, r.DirOnly)
	assert.True(t, r.BasenameOnly)

	assert.True(t, ruleMatches(r, "build", true))
	assert.False(t, ruleMatches(r, "build", false))
}

func TestCompileMiddleDoubleStar(t *testing.T) {
	r := Compile("a/**/b")
	require.True(t, r.Valid())

	tests := []struct {
		rel  string
		want bool
	}{
		{"a/b", true},
		{"a/x/b", true},
		{"a/x/y/b", true},
		{"ax/b", false},
		{"a/bx", false},
		{"xa/b", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ruleMatches(r, tt.rel, false), "path %q", tt.rel)
	}
}

func TestCompileInvalidPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		reason  string
	}{
		{"**/fo*o", "too complex"},
		{"**/a?b", "too complex"},
		{"fo*o/**", "too complex"},
		{"a*/**/b", "too complex"},
		{"a/**/b?", "too complex"},
		{"a**b", "not supported"},
		{"foo/**bar", "not supported"},
	}

	for _, tt := range tests {
		r := Compile(tt.pattern)
		assert.False(t, r.Valid(), "pattern %q", tt.pattern)
		assert.Equal(t, tt.reason, r.Invalid, "pattern %q", tt.pattern)
	}
}

func TestCompileAnchored(t *testing.T) {
	r := Compile("/build")
	require.True(t, r.Valid())
	assert.False(t, r.BasenameOnly)

	assert.True(t, ruleMatches(r, "build", false))
	assert.False(t, ruleMatches(r, "src/build", false))
}

func TestCompileBasenameGlob(t *testing.T) {
	r := Compile("*.log")
	require.True(t, r.Valid())
	assert.True(t, r.BasenameOnly)

	assert.True(t, ruleMatches(r, "x.log", false))
	assert.True(t, ruleMatches(r, "temp/x.log", false))
	assert.False(t, ruleMatches(r, "x.log.bak", false))
}

func TestCompilePathGlob(t *testing.T) {
	r := Compile("src/*.log")
	require.True(t, r.Valid())
	assert.False(t, r.BasenameOnly)

	assert.True(t, ruleMatches(r, "src/x.log", false))
	assert.False(t, ruleMatches(r, "other/x.log", false))
}

func TestCompileQuestionMark(t *testing.T) {
	r := Compile("file?.txt")
	require.True(t, r.Valid())

	assert.True(t, ruleMatches(r, "file1.txt", false))
	assert.False(t, ruleMatches(r, "file12.txt", false))
	assert.False(t, ruleMatches(r, "file.txt", false))
}

func TestCompileIdempotent(t *testing.T) {
	patterns := []string{
		"build/", "**/foo", "**/foo/bar", "a/**/b", "/anchor", "*.log", "plain", "build/**",
	}
	paths := []string{
		"build", "foo", "a/b/foo", "x/foo/bar", "a/b", "a/x/b", "anchor",
		"x.log", "plain", "src/plain", "deep/nested/x.log",
	}

	for _, p := range patterns {
		first, second := Compile(p), Compile(p)
		require.Equal(t, first.Valid(), second.Valid(), "pattern %q", p)
		assert.Equal(t, first.DirOnly, second.DirOnly, "pattern %q", p)
		assert.Equal(t, first.BasenameOnly, second.BasenameOnly, "pattern %q", p)
		for _, rel := range paths {
			for _, isDir := range []bool{false, true} {
				assert.Equal(t,
					ruleMatches(first, rel, isDir),
					ruleMatches(second, rel, isDir),
					"pattern %q path %q isDir %v", p, rel, isDir)
			}
		}
	}
}

func TestRuleDescription(t *testing.T) {
	r := compile("build/", ".contentignore", 3)
	assert.Equal(t, ".contentignore: 3:build/", r.Description)
	assert.Equal(t, "build/", r.String())
}
