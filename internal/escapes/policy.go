package escapes

import (
	"fmt"
	"strings"

	"github.com/phyten/hatchgate/internal/cfgtest"
	"github.com/phyten/hatchgate/internal/suppress"
)

// Level is how strictly lint suppressions are treated in a scope.
type Level string

const (
	LevelAllow   Level = "allow"
	LevelComment Level = "comment"
	LevelForbid  Level = "forbid"
)

// ParseLevel accepts allow, comment or forbid. "" is returned unchanged and
// means "inherit".
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case "", LevelAllow, LevelComment, LevelForbid:
		return l, nil
	default:
		return "", fmt.Errorf("invalid suppress level: %q (want allow|comment|forbid)", s)
	}
}

// Scope は source / test それぞれの抑制ポリシーです。
type Scope struct {
	Check    Level
	Allow    []string
	Forbid   []string
	Patterns map[string][]string
}

// SuppressPolicy configures suppression checks for one language. Comment is
// the global justification prefix used when no per-code pattern applies.
type SuppressPolicy struct {
	Check   Level
	Comment string
	Source  Scope
	Test    Scope
}

func (p SuppressPolicy) sourceLevel() Level {
	if p.Source.Check != "" {
		return p.Source.Check
	}
	if p.Check != "" {
		return p.Check
	}
	return LevelComment
}

func (p SuppressPolicy) testLevel() Level {
	if p.Test.Check != "" {
		return p.Test.Check
	}
	return LevelAllow
}

// parserRequired is the prefix handed to the directive parser. Languages
// whose checks rely on per-code patterns get "" so every adjacent comment is
// captured and validated afterwards.
func (p SuppressPolicy) parserRequired(lang string) string {
	switch lang {
	case "go", "javascript", "python":
		return p.Comment
	default:
		return ""
	}
}

// DefaultSuppress returns the built-in suppress policy for lang.
func DefaultSuppress(lang string) SuppressPolicy {
	p := SuppressPolicy{Check: LevelComment, Test: Scope{Check: LevelAllow}}
	switch lang {
	case "shell":
		p.Check = LevelForbid
	case "rust":
		p.Source.Patterns = map[string][]string{
			"dead_code":                        {"// KEEP UNTIL:", "// NOTE(compat):", "// NOTE(compatibility):", "// NOTE(lifetime):"},
			"clippy::too_many_arguments":       {"// TODO(refactor):"},
			"clippy::cast_possible_truncation": {"// CORRECTNESS:", "// SAFETY:"},
			"deprecated":                       {"// TODO(refactor):", "// NOTE(compat):", "// NOTE(compatibility):"},
		}
	}
	return p
}

type violationKind int

const (
	violationForbidden violationKind = iota
	violationAllForbidden
	violationMissingComment
)

type violation struct {
	kind     violationKind
	code     string
	lintCode string
	patterns []string
}

// checkDirective applies the scope rules in order: forbid list, allow list,
// forbid level, then the comment requirement.
func checkDirective(scope Scope, level Level, globalComment string, d suppress.Directive) (violation, bool) {
	for _, code := range d.Codes {
		if codeInList(code, scope.Forbid) {
			return violation{kind: violationForbidden, code: code}, true
		}
	}
	for _, code := range d.Codes {
		if codeInList(code, scope.Allow) {
			return violation{}, false
		}
	}
	switch level {
	case LevelForbid:
		return violation{kind: violationAllForbidden}, true
	case LevelComment:
		lintCode, patterns := requiredPatterns(scope, globalComment, d.Codes)
		if !hasValidComment(d, patterns) {
			return violation{kind: violationMissingComment, lintCode: lintCode, patterns: patterns}, true
		}
	}
	return violation{}, false
}

// requiredPatterns returns the first code with its own patterns, falling back
// to the global comment keyed by the first code.
func requiredPatterns(scope Scope, globalComment string, codes []string) (string, []string) {
	for _, code := range codes {
		if patterns, ok := scope.Patterns[code]; ok {
			return code, patterns
		}
	}
	var patterns []string
	if globalComment != "" {
		patterns = []string{globalComment}
	}
	first := ""
	if len(codes) > 0 {
		first = codes[0]
	}
	return first, patterns
}

func hasValidComment(d suppress.Directive, patterns []string) bool {
	if !d.HasComment {
		return false
	}
	if len(patterns) == 0 {
		return true
	}
	text := normalizeComment(d.CommentText)
	for _, p := range patterns {
		if strings.HasPrefix(text, normalizeComment(p)) {
			return true
		}
	}
	return false
}

func normalizeComment(s string) string {
	s = strings.TrimSpace(s)
	for strings.HasPrefix(s, "//") {
		s = s[2:]
	}
	s = strings.TrimLeft(s, "#")
	return strings.TrimSpace(s)
}

func codeInList(code string, list []string) bool {
	for _, p := range list {
		if codeMatches(code, p) {
			return true
		}
	}
	return false
}

// codeMatches は完全一致か "pattern::" 前方一致で判定します (clippy が clippy::unwrap_used に一致)。
func codeMatches(code, pattern string) bool {
	return code == pattern || strings.HasPrefix(code, pattern+"::")
}

// checkSuppress parses the directives of one file and evaluates them.
func checkSuppress(lang, rel, content string, parse suppress.Parser, pol SuppressPolicy, isTestFile bool, cfg *cfgtest.Info) []Finding {
	effective := pol.sourceLevel()
	if isTestFile {
		effective = pol.testLevel()
	}
	if effective == LevelAllow {
		return nil
	}

	var out []Finding
	for _, d := range parse(content, pol.parserRequired(lang)) {
		testLine := cfg != nil && cfg.IsTestLine(d.Line)
		if testLine && pol.testLevel() == LevelAllow {
			continue
		}
		scope, level := pol.Source, pol.sourceLevel()
		if isTestFile || testLine {
			scope, level = pol.Test, pol.testLevel()
		}
		v, bad := checkDirective(scope, level, pol.Comment, d)
		if !bad {
			continue
		}
		f := Finding{File: rel, Line: d.Line + 1, Pattern: d.Display()}
		switch v.kind {
		case violationForbidden:
			f.Type = TypeSuppressForbidden
			f.Advice = fmt.Sprintf("Suppressing `%s` is forbidden. Remove the suppression or address the issue.", v.code)
		case violationAllForbidden:
			f.Type = TypeSuppressForbidden
			f.Advice = "Lint suppressions are forbidden. Remove and fix the underlying issue."
		default:
			f.Type = TypeSuppressMissingComment
			f.Advice = missingCommentAdvice(lang, v.lintCode, v.patterns)
		}
		out = append(out, f)
	}
	return out
}

const genericGuidance = "Is this suppression necessary?"

var lintGuidance = map[string]map[string]string{
	"rust": {
		"dead_code":                        "Is this code still needed?",
		"clippy::too_many_arguments":       "Can this function be refactored?",
		"clippy::cast_possible_truncation": "Is this cast safe?",
		"deprecated":                       "Can this deprecated API be replaced?",
	},
	"shell": {
		"SC2034": "Is this unused variable needed?",
		"SC2086": "Is unquoted expansion intentional here?",
		"SC2154": "Is this variable defined externally?",
	},
	"go": {
		"errcheck": "Is this error handling necessary to skip?",
		"gosec":    "Is this security finding a false positive?",
	},
	"javascript": {
		"no-console":                         "Is this console output needed in production?",
		"no-explicit-any":                    "Can this be properly typed instead?",
		"@typescript-eslint/no-explicit-any": "Can this be properly typed instead?",
		"lint/suspicious/noExplicitAny":      "Can this be properly typed instead?",
		"no-unused-vars":                     "Is this variable still needed?",
		"@typescript-eslint/no-unused-vars":  "Is this variable still needed?",
	},
}

func guidanceFor(lang, code string) string {
	if code == "" {
		return genericGuidance
	}
	if g, ok := lintGuidance[lang][code]; ok {
		return g
	}
	if lang == "shell" {
		return "Is this ShellCheck finding a false positive?"
	}
	return genericGuidance
}

func patternInstructions(patterns []string, guidance string) string {
	var cond string
	switch {
	case strings.HasPrefix(guidance, "Can this function be refactored"):
		cond = "not"
	case strings.Contains(guidance, "still needed"), strings.Contains(guidance, "unused variable needed"):
		cond = "it should be kept"
	case strings.HasPrefix(guidance, "Is this"), strings.HasPrefix(guidance, "Is unquoted"):
		cond = "so"
	default:
		cond = "it should be kept"
	}
	if len(patterns) == 1 {
		return fmt.Sprintf("If %s, add:\n  %s ...", cond, patterns[0])
	}
	lines := make([]string, len(patterns))
	for i, p := range patterns {
		lines[i] = "  " + p + " ..."
	}
	return fmt.Sprintf("If %s, add one of:\n%s", cond, strings.Join(lines, "\n"))
}

// missingCommentAdvice builds the statement, lint guidance and instruction lines.
func missingCommentAdvice(lang, lintCode string, patterns []string) string {
	guidance := guidanceFor(lang, lintCode)
	var howTo string
	if len(patterns) > 0 {
		howTo = patternInstructions(patterns, guidance)
	} else {
		switch lang {
		case "rust":
			howTo = "Add a comment above the attribute."
		case "go":
			howTo = "Add a comment above the directive or inline (//nolint:code // reason)."
		case "javascript":
			howTo = "Add a comment above the directive or use inline reason (-- reason)."
		default:
			howTo = "Add a comment above the directive."
		}
	}
	return strings.Join([]string{"Lint suppression requires justification.", guidance, howTo}, "\n")
}
