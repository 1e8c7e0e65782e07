package escapes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phyten/hatchgate/internal/cfgtest"
	"github.com/phyten/hatchgate/internal/suppress"
)

func TestCodeMatches(t *testing.T) {
	assert.True(t, codeMatches("dead_code", "dead_code"))
	assert.True(t, codeMatches("clippy::unwrap_used", "clippy"))
	assert.False(t, codeMatches("clippyx::a", "clippy"))
	assert.False(t, codeMatches("clippy", "clippy::unwrap_used"))
}

func TestCheckDirectiveOrder(t *testing.T) {
	scope := Scope{
		Allow:  []string{"clippy"},
		Forbid: []string{"unsafe_code"},
	}
	d := suppress.Directive{Codes: []string{"clippy::unwrap_used", "unsafe_code"}}

	v, bad := checkDirective(scope, LevelForbid, "", d)
	require.True(t, bad)
	assert.Equal(t, violationForbidden, v.kind)
	assert.Equal(t, "unsafe_code", v.code)

	_, bad = checkDirective(scope, LevelForbid, "", suppress.Directive{Codes: []string{"clippy::unwrap_used"}})
	assert.False(t, bad, "allow list short-circuits the level")

	v, bad = checkDirective(Scope{}, LevelForbid, "", suppress.Directive{Codes: []string{"x"}, HasComment: true})
	require.True(t, bad)
	assert.Equal(t, violationAllForbidden, v.kind)

	_, bad = checkDirective(Scope{}, LevelAllow, "", suppress.Directive{Codes: []string{"x"}})
	assert.False(t, bad)
}

func TestCheckDirectiveComment(t *testing.T) {
	scope := DefaultSuppress("rust").Source

	d := suppress.Directive{Codes: []string{"dead_code"}, HasComment: true, CommentText: "just because"}
	v, bad := checkDirective(scope, LevelComment, "", d)
	require.True(t, bad)
	assert.Equal(t, violationMissingComment, v.kind)
	assert.Equal(t, "dead_code", v.lintCode)
	assert.Len(t, v.patterns, 4)

	d.CommentText = "KEEP UNTIL: v2 ships"
	_, bad = checkDirective(scope, LevelComment, "", d)
	assert.False(t, bad)

	// no per-code pattern and no global comment: any comment is enough
	_, bad = checkDirective(scope, LevelComment, "", suppress.Directive{Codes: []string{"unused"}, HasComment: true, CommentText: "x"})
	assert.False(t, bad)

	v, bad = checkDirective(scope, LevelComment, "// REASON:", suppress.Directive{Codes: []string{"unused"}, HasComment: true, CommentText: "x"})
	require.True(t, bad)
	assert.Equal(t, []string{"// REASON:"}, v.patterns)
	assert.Equal(t, "unused", v.lintCode)

	_, bad = checkDirective(scope, LevelComment, "// REASON:", suppress.Directive{Codes: []string{"unused"}, HasComment: true, CommentText: "REASON: ffi"})
	assert.False(t, bad)
}

func TestMissingCommentAdvice(t *testing.T) {
	got := missingCommentAdvice("rust", "dead_code", []string{"// KEEP UNTIL:", "// NOTE(compat):"})
	want := "Lint suppression requires justification.\n" +
		"Is this code still needed?\n" +
		"If it should be kept, add one of:\n  // KEEP UNTIL: ...\n  // NOTE(compat): ..."
	assert.Equal(t, want, got)

	got = missingCommentAdvice("rust", "clippy::too_many_arguments", []string{"// TODO(refactor):"})
	assert.True(t, strings.HasSuffix(got, "If not, add:\n  // TODO(refactor): ..."), got)

	got = missingCommentAdvice("rust", "clippy::cast_possible_truncation", []string{"// SAFETY:"})
	assert.Contains(t, got, "If so, add:")

	got = missingCommentAdvice("shell", "SC9999", nil)
	assert.Equal(t, "Lint suppression requires justification.\nIs this ShellCheck finding a false positive?\nAdd a comment above the directive.", got)

	got = missingCommentAdvice("go", "", nil)
	assert.Contains(t, got, "Is this suppression necessary?")
	assert.Contains(t, got, "(//nolint:code // reason)")

	got = missingCommentAdvice("javascript", "@typescript-eslint/no-explicit-any", nil)
	assert.Contains(t, got, "Can this be properly typed instead?")
	assert.Contains(t, got, "(-- reason)")
}

func TestCheckSuppressScopes(t *testing.T) {
	content := strings.Join([]string{
		"#[allow(dead_code)]",
		"fn a() {}",
		"",
		"#[cfg(test)]",
		"mod tests {",
		"    #[allow(dead_code)]",
		"    fn helper() {}",
		"}",
	}, "\n")
	pol := DefaultSuppress("rust")
	info := cfgtest.Parse(content)

	got := checkSuppress("rust", "src/lib.rs", content, suppress.ParseRust, pol, false, &info)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, TypeSuppressMissingComment, got[0].Type)
	assert.Equal(t, "#[allow(dead_code)]", got[0].Pattern)

	// test file: default test scope allows everything
	assert.Empty(t, checkSuppress("rust", "tests/it.rs", content, suppress.ParseRust, pol, true, &info))

	pol.Test.Check = LevelForbid
	got = checkSuppress("rust", "src/lib.rs", content, suppress.ParseRust, pol, false, &info)
	require.Len(t, got, 2)
	assert.Equal(t, TypeSuppressForbidden, got[1].Type)
	assert.Equal(t, 6, got[1].Line)
}

func TestCheckSuppressShellForbidByDefault(t *testing.T) {
	content := "#!/bin/bash\n# shellcheck disable=SC2086\necho $x\n"
	got := checkSuppress("shell", "run.sh", content, suppress.ParseShell, DefaultSuppress("shell"), false, nil)
	require.Len(t, got, 1)
	assert.Equal(t, TypeSuppressForbidden, got[0].Type)
	assert.Equal(t, "# shellcheck disable=SC2086", got[0].Pattern)
	assert.Equal(t, 2, got[0].Line)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel(" Forbid ")
	require.NoError(t, err)
	assert.Equal(t, LevelForbid, l)
	_, err = ParseLevel("warn")
	assert.Error(t, err)
}
