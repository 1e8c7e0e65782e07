package suppress

import "strings"

// ParseShell は "# shellcheck disable=SC2034,SC2086" 形式を抽出します。
func ParseShell(content, required string) []Directive {
	lines := SplitLines(content)
	var out []Directive
	for i, line := range lines {
		codes := parseShellcheckDisable(strings.TrimSpace(line))
		if len(codes) == 0 {
			continue
		}
		found, text := Scan(lines, i, required, StyleShell)
		out = append(out, Directive{
			Line:        i,
			Kind:        KindShellcheckDisable,
			Codes:       codes,
			HasComment:  found,
			CommentText: text,
		})
	}
	return out
}

func parseShellcheckDisable(line string) []string {
	line = strings.TrimSpace(strings.TrimLeft(line, "#"))
	rest, ok := strings.CutPrefix(line, "shellcheck")
	if !ok {
		return nil
	}
	list, ok := strings.CutPrefix(strings.TrimSpace(rest), "disable=")
	if !ok {
		return nil
	}
	// trailing "# explanation"
	list, _, _ = strings.Cut(list, "#")
	return splitCodes(list)
}
