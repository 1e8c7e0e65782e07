package suppress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTransitions(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		required string
		style    CommentStyle
		step     Step
		text     string
	}{
		{"blank", "   ", "", StyleRust, StepStop, ""},
		{"code", "let x = 1;", "", StyleRust, StepStop, ""},
		{"comment", "// needed for FFI", "", StyleRust, StepFound, "needed for FFI"},
		{"doc comment", "/// docs here", "", StyleRust, StepFound, "docs here"},
		{"empty comment", "//", "", StyleRust, StepContinue, ""},
		{"attribute", "#[inline]", "", StyleRust, StepContinue, ""},
		{"directive marker", "//nolint:errcheck", "", StyleGo, StepContinue, ""},
		{"go directive", "//go:generate stringer", "", StyleGo, StepContinue, ""},
		{"required match", "// SAFETY: aligned", "// SAFETY:", StyleRust, StepFound, "SAFETY: aligned"},
		{"required miss", "// other", "// SAFETY:", StyleRust, StepContinue, ""},
		{"shell directive", "# shellcheck source=lib.sh", "", StyleShell, StepContinue, ""},
		{"shell comment", "# explain", "", StyleShell, StepFound, "explain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			step, text := Classify(tc.line, tc.required, tc.style)
			assert.Equal(t, tc.step, step)
			assert.Equal(t, tc.text, text)
		})
	}
}

func TestScanBlankLineBlocksJustification(t *testing.T) {
	lines := []string{"// valid reason", "", "#[allow(dead_code)]"}
	found, text := Scan(lines, 2, "", StyleRust)
	assert.False(t, found)
	assert.Empty(t, text)
}

func TestScanRequiredKeepsLookingPastOtherComments(t *testing.T) {
	lines := []string{
		"// JUSTIFIED: kept for plugins",
		"// some other note",
		"#[allow(dead_code)]",
	}
	found, text := Scan(lines, 2, "// JUSTIFIED:", StyleRust)
	require.True(t, found)
	assert.Equal(t, "JUSTIFIED: kept for plugins", text)

	found, _ = Scan(lines[1:], 1, "// JUSTIFIED:", StyleRust)
	assert.False(t, found)
}

func TestScanAtFirstLine(t *testing.T) {
	found, _ := Scan([]string{"#[allow(dead_code)]"}, 0, "", StyleRust)
	assert.False(t, found)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
}
