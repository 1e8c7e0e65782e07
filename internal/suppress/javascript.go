package suppress

import (
	"sort"
	"strings"
	"unicode"
)

// ParseJavaScript extracts ESLint and Biome directives, ordered by line.
func ParseJavaScript(content, required string) []Directive {
	lines := SplitLines(content)
	out := parseESLint(lines, required)
	out = append(out, parseBiome(lines, required)...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

func parseESLint(lines []string, required string) []Directive {
	var out []Directive
	for i, line := range lines {
		rest, ok := eslintNextLine(line)
		if !ok {
			continue
		}
		codes, reason := parseESLintRules(rest)
		d := Directive{Line: i, Kind: KindDisableNextLine, Codes: codes}
		if reason != "" {
			d.HasComment, d.CommentText = true, reason
		} else {
			d.HasComment, d.CommentText = Scan(lines, i, required, StyleJavaScript)
		}
		out = append(out, d)
	}

	type blockStart struct {
		line  int
		codes []string
	}
	var starts []blockStart
	anyEnable := false
	for i, line := range lines {
		if rules, ok := eslintBlockDisable(line); ok {
			codes, _ := parseESLintRules(rules)
			starts = append(starts, blockStart{line: i, codes: codes})
		}
		if hasESLintEnable(line) {
			anyEnable = true
		}
	}
	for _, s := range starts {
		kind := KindDisableBlock
		if !anyEnable && s.line < 5 {
			// 先頭付近で enable がなければファイル全体の無効化とみなす
			kind = KindDisableFile
		}
		found, text := Scan(lines, s.line, required, StyleJavaScript)
		out = append(out, Directive{
			Line:        s.line,
			Kind:        kind,
			Codes:       s.codes,
			HasComment:  found,
			CommentText: text,
		})
	}
	return out
}

// parseESLintRules splits "rule-a, rule-b -- reason" into codes and reason.
func parseESLintRules(text string) ([]string, string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ""
	}
	rules, reason := text, ""
	if idx := strings.Index(text, " -- "); idx >= 0 {
		rules = strings.TrimSpace(text[:idx])
		reason = strings.TrimSpace(text[idx+4:])
	} else if r, ok := strings.CutPrefix(text, "-- "); ok {
		return nil, strings.TrimSpace(r)
	}
	var codes []string
	for _, c := range strings.Split(rules, ",") {
		c = strings.TrimSpace(c)
		if c != "" && !strings.HasPrefix(c, "--") {
			codes = append(codes, c)
		}
	}
	return codes, reason
}

func eslintNextLine(line string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "//")
	if !ok {
		return "", false
	}
	return strings.CutPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), "eslint-disable-next-line")
}

func eslintBlockDisable(line string) (string, bool) {
	pos := strings.Index(line, "/*")
	if pos < 0 {
		return "", false
	}
	rest, ok := strings.CutPrefix(strings.TrimLeftFunc(line[pos+2:], unicode.IsSpace), "eslint-disable")
	if !ok || strings.HasPrefix(rest, "-next-line") {
		return "", false
	}
	end := strings.Index(rest, "*/")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func hasESLintEnable(line string) bool {
	pos := strings.Index(line, "/*")
	if pos < 0 {
		return false
	}
	after, ok := strings.CutPrefix(strings.TrimLeftFunc(line[pos+2:], unicode.IsSpace), "eslint-enable")
	return ok && strings.HasPrefix(strings.TrimLeftFunc(after, unicode.IsSpace), "*")
}

// parseBiome handles "// biome-ignore lint/a lint/b: explanation". Either the
// explanation or a comment above counts as the justification.
func parseBiome(lines []string, required string) []Directive {
	var out []Directive
	for i, line := range lines {
		codes, explanation, ok := biomeIgnore(line)
		if !ok {
			continue
		}
		found, text := Scan(lines, i, required, StyleJavaScript)
		d := Directive{Line: i, Kind: KindBiomeIgnore, Codes: codes, HasComment: found || explanation != ""}
		if explanation != "" {
			d.CommentText = explanation
		} else {
			d.CommentText = text
		}
		out = append(out, d)
	}
	return out
}

func biomeIgnore(line string) ([]string, string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "//")
	if !ok {
		return nil, "", false
	}
	rest, ok = strings.CutPrefix(strings.TrimLeftFunc(rest, unicode.IsSpace), "biome-ignore")
	if !ok || rest == "" {
		return nil, "", false
	}
	if r := []rune(rest)[0]; !unicode.IsSpace(r) {
		return nil, "", false
	}
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	codesPart, explanation := rest, ""
	if before, after, found := strings.Cut(rest, ":"); found {
		codesPart, explanation = before, strings.TrimSpace(after)
	}
	var codes []string
	for _, f := range strings.Fields(codesPart) {
		if strings.HasPrefix(f, "lint/") {
			codes = append(codes, f)
		}
	}
	if len(codes) == 0 {
		return nil, "", false
	}
	return codes, explanation, true
}
