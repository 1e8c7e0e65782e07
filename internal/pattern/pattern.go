package pattern

import (
	"fmt"
	"regexp"
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Kind はパターンの照合方式を表します。
type Kind int

const (
	KindLiteral Kind = iota
	KindMultiLiteral
	KindRegex
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindMultiLiteral:
		return "multi_literal"
	default:
		return "regex"
	}
}

// Match は 1 件の一致をバイトオフセットで表します。
type Match struct {
	Start int
	End   int
	Text  string
}

// LineMatch は行番号 (1 始まり) を解決済みの一致です。
type LineMatch struct {
	Match
	Line int
}

// PatternError は正規表現としてコンパイルできないパターンを表します。
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compiled はコンパイル済みのパターンです。生成後は不変で、複数 goroutine から共有できます。
type Compiled struct {
	source  string
	kind    Kind
	literal string
	// multi は空でない選択肢だけから作った leftmost-first オートマトンです。
	// 全選択肢が空なら nil で、何にも一致しません。
	multi *ahocorasick.AhoCorasick
	re    *regexp.Regexp
}

const metaChars = `\.*+?()[]{}^$|`

// Compile は spec を最も安価に照合できる形に変換します。
//
// メタ文字を含まなければ Literal、メタ文字を含まない選択肢だけの a|b|c なら MultiLiteral、
// それ以外は正規表現 (RE2) としてコンパイルします。
func Compile(spec string) (*Compiled, error) {
	if isLiteral(spec) {
		return &Compiled{source: spec, kind: KindLiteral, literal: spec}, nil
	}
	if arms, ok := alternationLiterals(spec); ok {
		return &Compiled{source: spec, kind: KindMultiLiteral, multi: buildMulti(arms)}, nil
	}
	re, err := regexp.Compile(spec)
	if err != nil {
		return nil, &PatternError{Pattern: spec, Err: err}
	}
	return &Compiled{source: spec, kind: KindRegex, re: re}, nil
}

// MustCompile is like Compile but panics on error. Only for built-in tables and tests.
func MustCompile(spec string) *Compiled {
	c, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Compiled) Kind() Kind { return c.kind }

func (c *Compiled) Source() string { return c.source }

// FindAll returns non-overlapping leftmost-first matches in file order.
func (c *Compiled) FindAll(content string) []Match {
	switch c.kind {
	case KindLiteral:
		return findLiteral(content, c.literal)
	case KindMultiLiteral:
		return findMulti(content, c.multi)
	default:
		locs := c.re.FindAllStringIndex(content, -1)
		if len(locs) == 0 {
			return nil
		}
		out := make([]Match, 0, len(locs))
		for _, loc := range locs {
			out = append(out, Match{Start: loc[0], End: loc[1], Text: content[loc[0]:loc[1]]})
		}
		return out
	}
}

// FindAllWithLines is FindAll with 1-indexed line numbers resolved.
func (c *Compiled) FindAllWithLines(content string) []LineMatch {
	matches := c.FindAll(content)
	if len(matches) == 0 {
		return nil
	}
	out := make([]LineMatch, len(matches))
	line, prev := 1, 0
	for i, m := range matches {
		// matches are ordered, so newlines are counted once per file
		line += strings.Count(content[prev:m.Start], "\n")
		prev = m.Start
		out[i] = LineMatch{Match: m, Line: line}
	}
	return out
}

func isLiteral(s string) bool {
	return !strings.ContainsAny(s, metaChars)
}

func alternationLiterals(spec string) ([]string, bool) {
	parts := strings.Split(spec, "|")
	if len(parts) < 2 {
		return nil, false
	}
	for _, p := range parts {
		if !isLiteral(p) {
			return nil, false
		}
	}
	return parts, true
}

func findLiteral(content, lit string) []Match {
	if lit == "" {
		return nil
	}
	var out []Match
	pos := 0
	for {
		idx := indexFrom(content, lit, pos)
		if idx < 0 {
			return out
		}
		end := idx + len(lit)
		out = append(out, Match{Start: idx, End: end, Text: lit})
		pos = end
	}
}

// buildMulti compiles the non-empty arms in declaration order. With
// LeftMostFirstMatch the earlier arm wins when two arms start at the same
// offset, which is what the equivalent regex alternation does.
func buildMulti(arms []string) *ahocorasick.AhoCorasick {
	nonEmpty := make([]string, 0, len(arms))
	for _, arm := range arms {
		if arm != "" {
			nonEmpty = append(nonEmpty, arm)
		}
	}
	if len(nonEmpty) == 0 {
		return nil
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		MatchKind: ahocorasick.LeftMostFirstMatch,
		DFA:       true,
	})
	ac := builder.Build(nonEmpty)
	return &ac
}

func findMulti(content string, ac *ahocorasick.AhoCorasick) []Match {
	if ac == nil || content == "" {
		return nil
	}
	found := ac.FindAll(content)
	if len(found) == 0 {
		return nil
	}
	out := make([]Match, 0, len(found))
	for _, m := range found {
		out = append(out, Match{Start: m.Start(), End: m.End(), Text: content[m.Start():m.End()]})
	}
	return out
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	idx := strings.Index(s[from:], sub)
	if idx < 0 {
		return -1
	}
	return from + idx
}
