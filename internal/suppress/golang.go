package suppress

import "strings"

// ParseGo extracts //nolint directives. A trailing "// reason" on the same
// line counts as the justification and skips the scan above.
func ParseGo(content, required string) []Directive {
	lines := SplitLines(content)
	var out []Directive
	for i, line := range lines {
		codes, inline, ok := parseNolint(strings.TrimSpace(line))
		if !ok {
			continue
		}
		d := Directive{Line: i, Kind: KindNolint, Codes: codes}
		if inline != "" {
			d.HasComment, d.CommentText = true, inline
		} else {
			d.HasComment, d.CommentText = Scan(lines, i, required, StyleGo)
		}
		out = append(out, d)
	}
	return out
}

func parseNolint(line string) (codes []string, inline string, ok bool) {
	pos := strings.Index(line, "//nolint")
	if pos < 0 {
		return nil, "", false
	}
	rest := line[pos+len("//nolint"):]
	if c := strings.Index(rest, " //"); c >= 0 {
		inline = strings.TrimSpace(rest[c+3:])
		rest = rest[:c]
	}
	if list, found := strings.CutPrefix(rest, ":"); found {
		for _, code := range strings.Split(list, ",") {
			code = strings.TrimSpace(code)
			if code != "" && !strings.HasPrefix(code, "//") {
				codes = append(codes, code)
			}
		}
	}
	return codes, inline, true
}
