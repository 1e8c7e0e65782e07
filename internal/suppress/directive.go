package suppress

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the syntactic form of a suppression directive.
type Kind string

const (
	KindAllow             Kind = "allow"
	KindExpect            Kind = "expect"
	KindNolint            Kind = "nolint"
	KindShellcheckDisable Kind = "shellcheck-disable"
	KindDisableNextLine   Kind = "eslint-disable-next-line"
	KindDisableBlock      Kind = "eslint-disable-block"
	KindDisableFile       Kind = "eslint-disable-file"
	KindBiomeIgnore       Kind = "biome-ignore"
	KindNoqa              Kind = "noqa"
	KindTypeIgnore        Kind = "type-ignore"
	KindPylintDisable     Kind = "pylint-disable"
	KindPragmaNoCover     Kind = "pragma-no-cover"
	KindRubocopDisable    Kind = "rubocop"
	KindStandardDisable   Kind = "standard"
)

// Directive はソース中の抑制ディレクティブ 1 件です。Line は 0 始まり。
type Directive struct {
	Line        int      `json:"line"`
	Kind        Kind     `json:"kind"`
	Codes       []string `json:"codes"`
	HasComment  bool     `json:"has_comment"`
	CommentText string   `json:"comment_text,omitempty"`
	// Todo marks a rubocop:todo directive.
	Todo bool `json:"todo,omitempty"`
}

// Display renders the directive for findings. Forms that only show one code
// use the first one.
func (d Directive) Display() string {
	first := "unknown"
	if len(d.Codes) > 0 {
		first = d.Codes[0]
	}
	switch d.Kind {
	case KindAllow, KindExpect:
		return fmt.Sprintf("#[%s(%s)]", d.Kind, first)
	case KindNolint:
		if len(d.Codes) == 0 {
			return "//nolint"
		}
		return "//nolint:" + strings.Join(d.Codes, ",")
	case KindShellcheckDisable:
		return "# shellcheck disable=" + first
	case KindDisableNextLine, KindDisableBlock, KindDisableFile:
		if len(d.Codes) == 0 {
			return "eslint-disable"
		}
		return "eslint-disable-next-line " + strings.Join(d.Codes, ", ")
	case KindBiomeIgnore:
		return "biome-ignore " + strings.Join(d.Codes, " ")
	case KindNoqa:
		if len(d.Codes) == 0 {
			return "# noqa"
		}
		return "# noqa: " + strings.Join(d.Codes, ", ")
	case KindTypeIgnore:
		if len(d.Codes) == 0 {
			return "# type: ignore"
		}
		return "# type: ignore[" + strings.Join(d.Codes, ", ") + "]"
	case KindPylintDisable:
		return "# pylint: disable=" + strings.Join(d.Codes, ",")
	case KindPragmaNoCover:
		return "# pragma: no cover"
	case KindRubocopDisable, KindStandardDisable:
		verb := "disable"
		if d.Todo {
			verb = "todo"
		}
		return fmt.Sprintf("# %s:%s %s", d.Kind, verb, first)
	default:
		return string(d.Kind)
	}
}

// Parser extracts directives from file content. required is the optional
// justification prefix a comment above the directive must carry.
type Parser func(content, required string) []Directive

type language struct {
	parse Parser
	style CommentStyle
}

var registry = map[string]language{
	"rust":       {parse: ParseRust, style: StyleRust},
	"go":         {parse: ParseGo, style: StyleGo},
	"shell":      {parse: ParseShell, style: StyleShell},
	"javascript": {parse: ParseJavaScript, style: StyleJavaScript},
	"python":     {parse: ParsePython, style: StylePython},
	"ruby":       {parse: ParseRuby, style: StyleRuby},
}

// ForLanguage returns the directive parser for a canonical language name.
func ForLanguage(lang string) (Parser, bool) {
	l, ok := registry[lang]
	if !ok {
		return nil, false
	}
	return l.parse, true
}

// StyleFor returns the comment style used for justification scans.
func StyleFor(lang string) (CommentStyle, bool) {
	l, ok := registry[lang]
	return l.style, ok
}

// Languages lists registered languages in sorted order.
func Languages() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
