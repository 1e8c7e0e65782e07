package pattern

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileClassifiesLiteral(t *testing.T) {
	for _, spec := range []string{"unwrap", "unsafe", "TODO here", "foo-bar", "a/b", ""} {
		c, err := Compile(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, KindLiteral, c.Kind(), spec)
	}
}

func TestCompileClassifiesMultiLiteral(t *testing.T) {
	for _, spec := range []string{"TODO|FIXME|XXX", "a|b", "unwrap|expect"} {
		c, err := Compile(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, KindMultiLiteral, c.Kind(), spec)
	}
}

func TestCompileClassifiesRegex(t *testing.T) {
	for _, spec := range []string{`unsafe\s*\{`, `a|b.c`, `(a|b)`, `^import`, `mem::transmute\b`} {
		c, err := Compile(spec)
		require.NoError(t, err, spec)
		assert.Equal(t, KindRegex, c.Kind(), spec)
	}
}

func TestCompileInvalidRegexReturnsPatternError(t *testing.T) {
	_, err := Compile(`unsafe\s*(`)
	require.Error(t, err)
	var pe *PatternError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, `unsafe\s*(`, pe.Pattern)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestFindAllLiteralNonOverlapping(t *testing.T) {
	c := MustCompile("aa")
	got := c.FindAll("aaaaa")
	require.Len(t, got, 2)
	assert.Equal(t, Match{Start: 0, End: 2, Text: "aa"}, got[0])
	assert.Equal(t, Match{Start: 2, End: 4, Text: "aa"}, got[1])
}

func TestFindAllEmptyLiteralNeverMatches(t *testing.T) {
	assert.Empty(t, MustCompile("").FindAll("anything"))
}

func TestFindAllMultiLiteralScenario(t *testing.T) {
	c := MustCompile("TODO|FIXME|XXX")
	got := c.FindAllWithLines("TODO here\nFIXME there")
	require.Len(t, got, 2)
	assert.Equal(t, "TODO", got[0].Text)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, "FIXME", got[1].Text)
	assert.Equal(t, 2, got[1].Line)
}

func TestFindAllMultiLiteralLeftmostFirst(t *testing.T) {
	// both arms start at 0; the earlier arm wins
	c := MustCompile("ab|abc")
	got := c.FindAll("abcd")
	require.Len(t, got, 1)
	assert.Equal(t, "ab", got[0].Text)

	c = MustCompile("abc|ab")
	got = c.FindAll("abcd")
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].Text)
}

func TestFindAllMultiLiteralAgreesWithRegex(t *testing.T) {
	content := "foo bar foobar barfoo\nbaz foo\n"
	multi := MustCompile("foo|bar|baz")
	re := MustCompile("(?:foo|bar|baz)")
	require.Equal(t, KindRegex, re.Kind())
	assert.Equal(t, re.FindAll(content), multi.FindAll(content))
}

func TestFindAllMultiLiteralSkipsEmptyArm(t *testing.T) {
	c := MustCompile("a||b")
	assert.Equal(t, KindMultiLiteral, c.Kind())
	got := c.FindAll("xaxb")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Start)
	assert.Equal(t, 3, got[1].Start)
}

func TestFindAllRegex(t *testing.T) {
	c := MustCompile(`unsafe\s*\{`)
	got := c.FindAllWithLines("fn a() {}\nunsafe {\n}\nlet x = unsafe{ y };\n")
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Line)
	assert.Equal(t, 4, got[1].Line)
	assert.Equal(t, "unsafe{", got[1].Text)
}

func TestFindAllWithLinesNonDecreasing(t *testing.T) {
	content := strings.Repeat("x y\n\nx\n", 50)
	for _, spec := range []string{"x", "x|y", `x\b`} {
		got := MustCompile(spec).FindAllWithLines(content)
		require.NotEmpty(t, got, spec)
		prev := 1
		for _, m := range got {
			assert.GreaterOrEqual(t, m.Line, prev, spec)
			assert.Equal(t, ByteOffsetToLine(content, m.Start), m.Line, spec)
			prev = m.Line
		}
	}
}

func TestFindAllMultiLiteralAllEmptyArms(t *testing.T) {
	c := MustCompile("|")
	assert.Equal(t, KindMultiLiteral, c.Kind())
	assert.Empty(t, c.FindAll("anything | at all"))
}

func TestFindAllMultiLiteralOverlappingArms(t *testing.T) {
	// the automaton resumes after each match, so "abab" is two matches of "ab"
	got := MustCompile("ab|ba").FindAll("abab")
	require.Len(t, got, 2)
	assert.Equal(t, Match{Start: 0, End: 2, Text: "ab"}, got[0])
	assert.Equal(t, Match{Start: 2, End: 4, Text: "ab"}, got[1])

	content := "dbg!(x); println!(\"{}\", y); dbg!(z)\n"
	multi := MustCompile("dbg!|println!|print!")
	re := MustCompile("(?:dbg!|println!|print!)")
	assert.Equal(t, re.FindAll(content), multi.FindAll(content))
}
