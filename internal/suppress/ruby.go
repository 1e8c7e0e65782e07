package suppress

import "strings"

// ParseRuby extracts "# rubocop:disable|todo Cops" and "# standard:disable Cops".
// The comment may trail code; enable directives are ignored.
func ParseRuby(content, required string) []Directive {
	lines := SplitLines(content)
	var out []Directive
	for i, line := range lines {
		d, ok := parseRubyLine(line)
		if !ok {
			continue
		}
		d.Line = i
		d.HasComment, d.CommentText = Scan(lines, i, required, StyleRuby)
		out = append(out, d)
	}
	return out
}

func parseRubyLine(line string) (Directive, bool) {
	for rest := line; ; {
		idx := strings.IndexByte(rest, '#')
		if idx < 0 {
			return Directive{}, false
		}
		rest = rest[idx:]
		body := strings.TrimSpace(strings.TrimLeft(rest, "#"))
		if d, ok := parseRubyComment(body); ok {
			return d, true
		}
		rest = strings.TrimLeft(rest, "#")
	}
}

func parseRubyComment(body string) (Directive, bool) {
	var d Directive
	var rest string
	switch {
	case strings.HasPrefix(body, "rubocop:"):
		d.Kind, rest = KindRubocopDisable, body[len("rubocop:"):]
	case strings.HasPrefix(body, "standard:"):
		d.Kind, rest = KindStandardDisable, body[len("standard:"):]
	default:
		return d, false
	}
	verb, cops, _ := strings.Cut(strings.TrimSpace(rest), " ")
	switch verb {
	case "disable":
	case "todo":
		d.Todo = true
	default:
		return d, false
	}
	// "-- reason" 以降はコップ名ではない
	cops, _, _ = strings.Cut(cops, "--")
	d.Codes = splitCodes(cops)
	if len(d.Codes) == 0 {
		return d, false
	}
	return d, true
}
