package suppress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRustAllowWithoutComment(t *testing.T) {
	got := ParseRust("#[allow(dead_code)]\nfn unused() {}", "")
	require.Len(t, got, 1)
	assert.Equal(t, KindAllow, got[0].Kind)
	assert.Equal(t, []string{"dead_code"}, got[0].Codes)
	assert.False(t, got[0].HasComment)
	assert.Equal(t, 0, got[0].Line)
}

func TestParseRustCommentAbove(t *testing.T) {
	got := ParseRust("// This is needed for FFI\n#[allow(unsafe_code)]\nfn f(){}", "")
	require.Len(t, got, 1)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "This is needed for FFI", got[0].CommentText)
}

func TestParseRustForms(t *testing.T) {
	content := "#![allow(clippy::all)]\n\n    #[expect(unused, dead_code , )]\n#[allow()]\n#[derive(Debug)]\n"
	got := ParseRust(content, "")
	require.Len(t, got, 2)
	assert.Equal(t, KindAllow, got[0].Kind)
	assert.Equal(t, []string{"clippy::all"}, got[0].Codes)
	assert.Equal(t, KindExpect, got[1].Kind)
	assert.Equal(t, []string{"unused", "dead_code"}, got[1].Codes)
	assert.Equal(t, 2, got[1].Line)
}

func TestParseRustAttributeBetweenCommentAndDirective(t *testing.T) {
	got := ParseRust("// KEEP UNTIL: v2\n#[inline]\n#[allow(dead_code)]\nfn f() {}", "// KEEP UNTIL:")
	require.Len(t, got, 1)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "KEEP UNTIL: v2", got[0].CommentText)
}

func TestParseGoNolintInlineReason(t *testing.T) {
	got := ParseGo("//nolint:errcheck // reason here\nfoo()", "")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"errcheck"}, got[0].Codes)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "reason here", got[0].CommentText)
}

func TestParseGoNolintInlineBypassesRequired(t *testing.T) {
	got := ParseGo("x() //nolint:gosec // whatever", "// OK:")
	require.Len(t, got, 1)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "whatever", got[0].CommentText)
}

func TestParseGoNolintForms(t *testing.T) {
	content := "// explain\n//nolint\nfoo()\n\nbar() //nolint:errcheck,gosec\n//nolintx\n"
	got := ParseGo(content, "")
	require.Len(t, got, 3)
	assert.Empty(t, got[0].Codes)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "explain", got[0].CommentText)
	assert.Equal(t, []string{"errcheck", "gosec"}, got[1].Codes)
	assert.False(t, got[1].HasComment)
	// "//nolintx" still carries the marker but has no codes
	assert.Empty(t, got[2].Codes)
}

func TestParseShellBlankLineBlocks(t *testing.T) {
	got := ParseShell("# Comment\n\n# shellcheck disable=SC2034\nfoo", "")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"SC2034"}, got[0].Codes)
	assert.False(t, got[0].HasComment)
}

func TestParseShellForms(t *testing.T) {
	content := "#!/bin/bash\n# OK: exported for callers\n#shellcheck disable=SC2034,SC2086  # trailing\n# shellcheck source=lib.sh\n# shellcheck disable=\n"
	got := ParseShell(content, "# OK:")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"SC2034", "SC2086"}, got[0].Codes)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "OK: exported for callers", got[0].CommentText)
}

func TestParseJavaScriptESLint(t *testing.T) {
	got := ParseJavaScript("// eslint-disable-next-line no-console, no-debugger -- debug only\nconsole.log('x');", "")
	require.Len(t, got, 1)
	assert.Equal(t, KindDisableNextLine, got[0].Kind)
	assert.Equal(t, []string{"no-console", "no-debugger"}, got[0].Codes)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "debug only", got[0].CommentText)

	got = ParseJavaScript("// eslint-disable-next-line -- just a reason\nconsole.log('test');", "")
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Codes)
	assert.Equal(t, "just a reason", got[0].CommentText)
}

func TestParseJavaScriptDirectiveLinesSkipped(t *testing.T) {
	got := ParseJavaScript("// @ts-ignore\n// eslint-disable-next-line no-console\nconsole.log('test');", "")
	require.Len(t, got, 1)
	assert.False(t, got[0].HasComment)

	got = ParseJavaScript("// This is needed because...\n// @ts-ignore\n// eslint-disable-next-line no-console\nx();", "")
	require.Len(t, got, 1)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "This is needed because...", got[0].CommentText)
}

func TestParseJavaScriptBlockKinds(t *testing.T) {
	got := ParseJavaScript("/* eslint-disable no-console, no-alert */\nconst x = 1;\n/* eslint-enable */", "")
	require.Len(t, got, 1)
	assert.Equal(t, KindDisableBlock, got[0].Kind)
	assert.Equal(t, []string{"no-console", "no-alert"}, got[0].Codes)

	got = ParseJavaScript("/* eslint-disable */\nconst x = 1;", "")
	require.Len(t, got, 1)
	assert.Equal(t, KindDisableFile, got[0].Kind)

	got = ParseJavaScript("a\nb\nc\nd\ne\n/* eslint-disable */\nconst x = 1;", "")
	require.Len(t, got, 1)
	assert.Equal(t, KindDisableBlock, got[0].Kind)
}

func TestParseJavaScriptBiome(t *testing.T) {
	got := ParseJavaScript("// biome-ignore lint/suspicious/noExplicitAny: API boundary\nconst x: any = {};", "")
	require.Len(t, got, 1)
	assert.Equal(t, KindBiomeIgnore, got[0].Kind)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "API boundary", got[0].CommentText)

	got = ParseJavaScript("// biome-ignore lint/suspicious/noExplicitAny:\nconst x: any = {};", "")
	require.Len(t, got, 1)
	assert.False(t, got[0].HasComment)

	got = ParseJavaScript("// Legacy code needs this\n// biome-ignore lint/a lint/b\nx", "")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"lint/a", "lint/b"}, got[0].Codes)
	assert.Equal(t, "Legacy code needs this", got[0].CommentText)

	assert.Empty(t, ParseJavaScript("// biome-ignore format: generated\n// biome-ignorelint/a\n", ""))
}

func TestParseJavaScriptSortedByLine(t *testing.T) {
	content := "// biome-ignore lint/a: x\nfoo();\n// eslint-disable-next-line no-console\nbar();\n// biome-ignore lint/b: y\nbaz();"
	got := ParseJavaScript(content, "")
	require.Len(t, got, 3)
	assert.Equal(t, []int{0, 2, 4}, []int{got[0].Line, got[1].Line, got[2].Line})
	assert.Equal(t, KindDisableNextLine, got[1].Kind)
}

func TestParsePythonForms(t *testing.T) {
	content := "import os  # noqa: F401, E501\nx = 1  # NOQA\ny = 2  # noqaX\nz = f()  # type: ignore[arg-type, return-value]\n# pylint: disable=line-too-long\n# pylint: disable=\ndef f():  # pragma: no cover\n    pass\n"
	got := ParsePython(content, "")
	require.Len(t, got, 5)
	assert.Equal(t, KindNoqa, got[0].Kind)
	assert.Equal(t, []string{"F401", "E501"}, got[0].Codes)
	assert.Equal(t, KindNoqa, got[1].Kind)
	assert.Empty(t, got[1].Codes)
	assert.Equal(t, KindTypeIgnore, got[2].Kind)
	assert.Equal(t, []string{"arg-type", "return-value"}, got[2].Codes)
	assert.Equal(t, KindPylintDisable, got[3].Kind)
	assert.Equal(t, []string{"line-too-long"}, got[3].Codes)
	assert.Equal(t, KindPragmaNoCover, got[4].Kind)
	assert.Equal(t, []string{"coverage"}, got[4].Codes)
}

func TestParsePythonJustification(t *testing.T) {
	got := ParsePython("# Needed for re-export\nfrom x import *  # noqa: F403\n", "")
	require.Len(t, got, 1)
	assert.True(t, got[0].HasComment)
	assert.Equal(t, "Needed for re-export", got[0].CommentText)

	got = ParsePython("# unrelated\n# type: ignore\n", "# TYPE:")
	require.Len(t, got, 1)
	assert.False(t, got[0].HasComment)
}

func TestParseRubyForms(t *testing.T) {
	content := "# rubocop:disable Style/A, Style/B , Style/C\nfoo\n# rubocop:todo Metrics/MethodLength\nx = foo() # standard:disable Lint/UselessAssignment\n# rubocop:enable Style/A\n"
	got := ParseRuby(content, "")
	require.Len(t, got, 3)
	assert.Equal(t, KindRubocopDisable, got[0].Kind)
	assert.Equal(t, []string{"Style/A", "Style/B", "Style/C"}, got[0].Codes)
	assert.True(t, got[1].Todo)
	assert.Equal(t, 2, got[1].Line)
	assert.Equal(t, KindStandardDisable, got[2].Kind)
	assert.Equal(t, []string{"Lint/UselessAssignment"}, got[2].Codes)
}

func TestParseRubyJustification(t *testing.T) {
	got := ParseRuby("# Random comment\n# rubocop:disable Style/StringLiterals\nfoo = 'bar'", "# LEGACY:")
	require.Len(t, got, 1)
	assert.False(t, got[0].HasComment)

	got = ParseRuby("# LEGACY: old code\n# rubocop:disable Style/StringLiterals\nfoo = 'bar'", "# LEGACY:")
	require.Len(t, got, 1)
	assert.True(t, got[0].HasComment)

	got = ParseRuby("foo = 1\n# rubocop:disable Style/StringLiterals\nbar = 'baz'", "")
	require.Len(t, got, 1)
	assert.False(t, got[0].HasComment)

	got = ParseRuby("# rubocop:disable Style/A\nfoo\n\n# rubocop:disable Style/B\nbar", "")
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[1].Line)
}

func TestForLanguageAndDisplay(t *testing.T) {
	for _, lang := range Languages() {
		p, ok := ForLanguage(lang)
		require.True(t, ok, lang)
		require.NotNil(t, p)
		_, ok = StyleFor(lang)
		assert.True(t, ok, lang)
	}
	_, ok := ForLanguage("cobol")
	assert.False(t, ok)

	assert.Equal(t, "#[allow(dead_code)]", Directive{Kind: KindAllow, Codes: []string{"dead_code"}}.Display())
	assert.Equal(t, "//nolint", Directive{Kind: KindNolint}.Display())
	assert.Equal(t, "//nolint:errcheck,gosec", Directive{Kind: KindNolint, Codes: []string{"errcheck", "gosec"}}.Display())
	assert.Equal(t, "# rubocop:todo Metrics/AbcSize", Directive{Kind: KindRubocopDisable, Todo: true, Codes: []string{"Metrics/AbcSize"}}.Display())
}
