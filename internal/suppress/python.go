package suppress

import (
	"strings"
	"unicode"
)

// ParsePython は noqa / type: ignore / pylint: disable / pragma: no cover を抽出します。
// コメントはコード行の末尾にあっても構いません。
func ParsePython(content, required string) []Directive {
	lines := SplitLines(content)
	var out []Directive
	for i, line := range lines {
		kind, codes, ok := parsePythonComment(line)
		if !ok {
			continue
		}
		found, text := Scan(lines, i, required, StylePython)
		out = append(out, Directive{
			Line:        i,
			Kind:        kind,
			Codes:       codes,
			HasComment:  found,
			CommentText: text,
		})
	}
	return out
}

func parsePythonComment(line string) (Kind, []string, bool) {
	trimmed := strings.TrimSpace(line)
	start := strings.IndexByte(trimmed, '#')
	if start < 0 {
		return "", nil, false
	}
	body := strings.TrimSpace(strings.TrimLeft(trimmed[start:], "#"))

	if hasPrefixFold(body, "noqa") {
		rest := body[len("noqa"):]
		switch {
		case strings.HasPrefix(rest, ":"):
			return KindNoqa, pythonCodes(rest[1:]), true
		case rest == "" || unicode.IsSpace([]rune(rest)[0]):
			return KindNoqa, nil, true
		default:
			// noqaX などは対象外
			return "", nil, false
		}
	}
	if rest, ok := cutPrefixFold(body, "type: ignore", "type:ignore"); ok {
		var codes []string
		if open := strings.IndexByte(rest, '['); open >= 0 {
			if end := strings.IndexByte(rest, ']'); end > open {
				codes = pythonCodes(rest[open+1 : end])
			}
		}
		return KindTypeIgnore, codes, true
	}
	if rest, ok := cutPrefixFold(body, "pylint: disable=", "pylint:disable="); ok {
		codes := pythonCodes(rest)
		if len(codes) == 0 {
			return "", nil, false
		}
		return KindPylintDisable, codes, true
	}
	if _, ok := cutPrefixFold(body, "pragma: no cover", "pragma:no cover"); ok {
		return KindPragmaNoCover, []string{"coverage"}, true
	}
	return "", nil, false
}

func pythonCodes(s string) []string {
	s, _, _ = strings.Cut(s, "#")
	return splitCodes(s)
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func cutPrefixFold(s string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if hasPrefixFold(s, p) {
			return s[len(p):], true
		}
	}
	return "", false
}
