package escapes

import "strings"

// defaultMarker は comment アクションの既定の正当化コメントです。
const defaultMarker = "// JUSTIFIED:"

// hasJustificationComment looks for marker at the start of the trailing
// comment on matchLine (1-indexed), then upward through comment and blank
// lines until the first code line. A marker embedded mid-comment does not count.
func hasJustificationComment(lines []string, matchLine int, marker string) bool {
	idx := matchLine - 1
	if idx >= 0 && idx < len(lines) {
		line := lines[idx]
		if start := findCommentStart(line); start >= 0 && commentStartsWith(line[start:], marker) {
			return true
		}
	}
	if idx > len(lines) {
		idx = len(lines)
	}
	for i := idx - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		comment := isCommentLine(line)
		if comment && commentStartsWith(line, marker) {
			return true
		}
		if line != "" && !comment {
			break
		}
	}
	return false
}

func commentStartsWith(comment, marker string) bool {
	return strings.HasPrefix(stripCommentMarkers(comment), stripCommentMarkers(marker))
}

var commentMarkers = []string{"///", "//!", "//", "/*", "#", "--", ";;", "*"}

// stripCommentMarkers removes one leading comment marker and the whitespace after it.
func stripCommentMarkers(s string) string {
	s = strings.TrimSpace(s)
	for _, m := range commentMarkers {
		if rest, ok := strings.CutPrefix(s, m); ok {
			s = rest
			break
		}
	}
	return strings.TrimLeft(s, " \t\r\n")
}

// findCommentStart returns the byte offset of "//", or of a '#' that starts
// the line or follows a space, or -1.
func findCommentStart(line string) int {
	if i := strings.Index(line, "//"); i >= 0 {
		return i
	}
	if i := strings.IndexByte(line, '#'); i >= 0 {
		if i == 0 || line[i-1] == ' ' {
			return i
		}
	}
	return -1
}

func isCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	for _, p := range []string{"//", "#", "/*", "*", "--", ";;"} {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

// isMatchInComment reports whether a match at offset lies in the line's
// comment. A //go: directive matched at its own start is treated as code.
func isMatchInComment(line string, offset int) bool {
	start := findCommentStart(line)
	if start < 0 {
		return false
	}
	if offset == start && strings.HasPrefix(strings.TrimSpace(line), "//go:") {
		return false
	}
	return offset >= start
}
