// Package classify decides which files are test code and which workspace
// package a file belongs to.
package classify

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultTestGlobs はテストコードとみなす既定のパス glob です。
var DefaultTestGlobs = []string{
	"**/tests/**",
	"**/test/**",
	"**/benches/**",
	"benches/**",
	"**/test_utils.*",
	"test_utils.*",
	"**/*_test.*",
	"**/*_tests.*",
	"**/*.test.*",
	"**/*.spec.*",
	"spec/**/*_spec.rb",
	"**/spec/**/*_spec.rb",
	"features/**/*.rb",
	"**/features/**/*.rb",
}

// TestMatcher matches repo-relative paths against test globs.
type TestMatcher struct {
	globs []string
}

// NewTestMatcher validates globs. A nil slice selects DefaultTestGlobs; an
// empty non-nil slice disables test detection.
func NewTestMatcher(globs []string) (*TestMatcher, error) {
	if globs == nil {
		globs = DefaultTestGlobs
	}
	out := make([]string, 0, len(globs))
	for _, g := range globs {
		g = filepath.ToSlash(g)
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("invalid test glob %q", g)
		}
		out = append(out, g)
	}
	return &TestMatcher{globs: out}, nil
}

// IsTest reports whether rel is a test file.
func (m *TestMatcher) IsTest(rel string) bool {
	if m == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}
