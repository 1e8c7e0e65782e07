package suppress

import "strings"

// CommentStyle は正当化コメント探索に使う言語ごとの行コメント記法です。
// Markers に一致する行はディレクティブ自体なので、正当化コメントとしては扱いません。
type CommentStyle struct {
	Prefix  string
	Markers []string
}

var (
	StyleRust  = CommentStyle{Prefix: "//", Markers: []string{"#["}}
	StyleGo    = CommentStyle{Prefix: "//", Markers: []string{"//go:", "//nolint"}}
	StyleShell = CommentStyle{Prefix: "#", Markers: []string{"shellcheck"}}

	StyleJavaScript = CommentStyle{Prefix: "//", Markers: []string{
		"eslint-disable",
		"eslint-enable",
		"biome-ignore",
		"@ts-ignore",
		"@ts-expect-error",
	}}

	StylePython = CommentStyle{Prefix: "#", Markers: []string{"noqa", "type:", "pylint:", "pragma:"}}
	StyleRuby   = CommentStyle{Prefix: "#", Markers: []string{"rubocop:", "standard:"}}
)

func (s CommentStyle) isDirective(line string) bool {
	for _, m := range s.Markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// Step is the outcome of inspecting one line above a directive.
type Step int

const (
	// StepStop ends the search without a justification.
	StepStop Step = iota
	// StepContinue skips the line and keeps walking upward.
	StepContinue
	// StepFound ends the search with a justification.
	StepFound
)

func (s Step) String() string {
	switch s {
	case StepStop:
		return "stop"
	case StepContinue:
		return "continue"
	default:
		return "found"
	}
}

// Classify decides what a single line means for the backward search.
// The returned text is the comment body when the step is StepFound.
func Classify(line, required string, style CommentStyle) (Step, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return StepStop, ""
	}
	if strings.HasPrefix(trimmed, style.Prefix) {
		if style.isDirective(trimmed) {
			return StepContinue, ""
		}
		text := strings.TrimSpace(trimPrefixAll(trimmed, style.Prefix))
		if required != "" {
			want := strings.TrimSpace(trimPrefixAll(required, style.Prefix))
			if strings.HasPrefix(text, want) || strings.HasPrefix(trimmed, required) {
				return StepFound, text
			}
			// stacked comments: keep looking for the required marker
			return StepContinue, ""
		}
		if text != "" {
			return StepFound, text
		}
		return StepContinue, ""
	}
	if strings.HasPrefix(trimmed, "#") {
		// attribute line such as #[inline] between comment and directive
		return StepContinue, ""
	}
	return StepStop, ""
}

// Scan walks backward from directiveLine-1 (0-indexed) and reports whether an
// adjacent justification comment exists. Blank lines and code end the search.
func Scan(lines []string, directiveLine int, required string, style CommentStyle) (bool, string) {
	if directiveLine > len(lines) {
		directiveLine = len(lines)
	}
	for i := directiveLine - 1; i >= 0; i-- {
		step, text := Classify(lines[i], required, style)
		switch step {
		case StepStop:
			return false, ""
		case StepFound:
			return true, text
		}
	}
	return false, ""
}

func trimPrefixAll(s, prefix string) string {
	if prefix == "" {
		return s
	}
	for strings.HasPrefix(s, prefix) {
		s = s[len(prefix):]
	}
	return s
}

// SplitLines splits content on '\n', dropping a trailing '\r' per line and the
// empty element after a final newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
