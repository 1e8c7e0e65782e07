package suppress

import "strings"

// ParseRust は #[allow(...)] / #[expect(...)] 属性（内部属性 #![...] を含む）を抽出します。
func ParseRust(content, required string) []Directive {
	lines := SplitLines(content)
	var out []Directive
	for i, line := range lines {
		kind, codes, ok := parseRustAttr(strings.TrimSpace(line))
		if !ok {
			continue
		}
		found, text := Scan(lines, i, required, StyleRust)
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

func parseRustAttr(line string) (Kind, []string, bool) {
	var kind Kind
	switch {
	case strings.HasPrefix(line, "#[allow("), strings.HasPrefix(line, "#![allow("):
		kind = KindAllow
	case strings.HasPrefix(line, "#[expect("), strings.HasPrefix(line, "#![expect("):
		kind = KindExpect
	default:
		return "", nil, false
	}
	start := strings.IndexByte(line, '(') + 1
	end := strings.LastIndexByte(line, ')')
	if end < 0 || start >= end {
		return "", nil, false
	}
	return kind, splitCodes(line[start:end]), true
}
