// Package cfgtest finds inline #[cfg(test)] blocks in Rust source so that
// matches inside them can be treated as test code.
//
// Brace counting is heuristic. Raw strings (r"..."), char literals holding
// quotes or braces, attributes spread over several lines, and test modules
// declared in another file are not recognised.
package cfgtest

import (
	"strings"
	"unicode"
)

// Range is a half-open 0-indexed line range [Start, End).
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) contains(line int) bool { return line >= r.Start && line < r.End }

// Info はファイル内のテストブロック範囲（昇順・非重複）です。
type Info struct {
	Ranges []Range `json:"ranges"`
}

type lexState int

const (
	stateNormal lexState = iota
	stateInString
)

type scanner struct {
	state   lexState
	escaped bool
	depth   int
	opened  bool
}

// feed consumes one line and reports whether the block closed on it.
func (s *scanner) feed(line string) bool {
	for _, r := range line {
		switch s.state {
		case stateInString:
			switch {
			case s.escaped:
				s.escaped = false
			case r == '\\':
				s.escaped = true
			case r == '"':
				s.state = stateNormal
			}
		default:
			switch r {
			case '"':
				s.state = stateInString
			case '{':
				s.depth++
				s.opened = true
			case '}':
				if s.opened {
					s.depth--
					if s.depth == 0 {
						return true
					}
				}
			}
		}
	}
	return false
}

// Parse scans content and returns every #[cfg(test)] block it can close.
func Parse(content string) Info {
	var info Info
	var sc *scanner
	start := 0
	for idx, raw := range splitLines(content) {
		trimmed := strings.TrimSpace(raw)
		if sc == nil {
			rest, ok := cutCfgTestMarker(trimmed)
			if !ok {
				continue
			}
			sc = &scanner{}
			start = idx
			if trimmed = strings.TrimSpace(rest); trimmed == "" {
				continue
			}
		}
		if !sc.opened {
			if strings.HasPrefix(trimmed, "#[") {
				continue
			}
			if strings.HasSuffix(trimmed, ";") && !strings.Contains(trimmed, "{") {
				// mod tests; は別ファイルのモジュール
				sc = nil
				continue
			}
		}
		if sc.feed(trimmed) {
			info.Ranges = append(info.Ranges, Range{Start: start, End: idx + 1})
			sc = nil
		}
	}
	return info
}

// IsTestLine reports whether the 0-indexed line lies inside a test block.
func (i Info) IsTestLine(line int) bool {
	for _, r := range i.Ranges {
		if r.contains(line) {
			return true
		}
	}
	return false
}

// HasInlineTests reports whether any block was found.
func (i Info) HasInlineTests() bool { return len(i.Ranges) > 0 }

// cutCfgTestMarker matches "#[cfg(test)]" (spaces allowed inside) at the start
// of a trimmed line and returns whatever follows the closing bracket.
func cutCfgTestMarker(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "#[") {
		return "", false
	}
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimmed)
	if !strings.HasPrefix(compact, "#[cfg(test)]") {
		return "", false
	}
	return trimmed[strings.IndexByte(trimmed, ']')+1:], true
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
