// Package catalog holds the built-in escape-hatch patterns per language and
// the rules for combining them with configured patterns.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Action is what a match of an escape pattern requires.
type Action string

const (
	ActionCount   Action = "count"
	ActionComment Action = "comment"
	ActionForbid  Action = "forbid"
)

// ParseAction は設定値の文字列を Action に変換します。
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionCount, ActionComment, ActionForbid:
		return a, nil
	case "":
		return ActionForbid, nil
	default:
		return "", fmt.Errorf("invalid action: %q (want count|comment|forbid)", s)
	}
}

// TestAction overrides the behaviour of a pattern inside test code.
type TestAction string

const (
	TestDefault TestAction = ""
	TestAllow   TestAction = "allow"
	TestComment TestAction = "comment"
	TestForbid  TestAction = "forbid"
)

// ParseTestAction accepts "", allow, comment or forbid.
func ParseTestAction(s string) (TestAction, error) {
	switch a := TestAction(strings.ToLower(strings.TrimSpace(s))); a {
	case TestDefault, TestAllow, TestComment, TestForbid:
		return a, nil
	default:
		return "", fmt.Errorf("invalid in_tests: %q (want allow|comment|forbid)", s)
	}
}

// EscapePattern is one escape hatch definition. Threshold applies to count
// patterns: more source matches than this fail the check.
type EscapePattern struct {
	Name      string     `json:"name"`
	Pattern   string     `json:"pattern"`
	Action    Action     `json:"action"`
	Comment   string     `json:"comment,omitempty"`
	Advice    string     `json:"advice,omitempty"`
	Threshold int        `json:"threshold,omitempty"`
	InTests   TestAction `json:"in_tests,omitempty"`
}

// EffectiveName returns Name, or the pattern itself when unnamed.
func (p EscapePattern) EffectiveName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Pattern
}

// ResolvedAdvice returns Advice or the default advice for the action.
func (p EscapePattern) ResolvedAdvice() string {
	if p.Advice != "" {
		return p.Advice
	}
	return DefaultAdvice(p.Action)
}

const genericCommentAdvice = "Add a justification comment."

// DefaultAdvice はアクションごとの既定アドバイスを返します。
func DefaultAdvice(a Action) string {
	switch a {
	case ActionForbid:
		return "Remove this escape hatch from production code."
	case ActionComment:
		return genericCommentAdvice
	default:
		return "Reduce escape hatch usage."
	}
}

// CommentAdvice builds the advice for a missing justification comment. Custom
// advice wins unless it is empty or the generic comment advice.
func CommentAdvice(advice, marker string) string {
	if advice == "" || advice == genericCommentAdvice {
		return fmt.Sprintf("Add a %s comment explaining why this is necessary.", marker)
	}
	return advice
}

// Defaults returns a copy of the built-in patterns for lang.
func Defaults(lang string) []EscapePattern {
	table, ok := builtins[lang]
	if !ok {
		return nil
	}
	out := make([]EscapePattern, len(table))
	copy(out, table)
	return out
}

// Languages lists the languages that have a built-in table.
func Languages() []string {
	out := make([]string, 0, len(builtins))
	for k := range builtins {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge overrides defaults by name. Defaults that are not overridden come
// first, followed by every configured pattern in order.
func Merge(defaults, overrides []EscapePattern) []EscapePattern {
	names := make(map[string]struct{}, len(overrides))
	for _, p := range overrides {
		names[p.EffectiveName()] = struct{}{}
	}
	out := make([]EscapePattern, 0, len(defaults)+len(overrides))
	for _, p := range defaults {
		if _, ok := names[p.EffectiveName()]; !ok {
			out = append(out, p)
		}
	}
	return append(out, overrides...)
}

// Disable drops patterns whose effective name is listed.
func Disable(patterns []EscapePattern, names []string) []EscapePattern {
	if len(names) == 0 {
		return patterns
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[strings.TrimSpace(n)] = struct{}{}
	}
	out := patterns[:0:0]
	for _, p := range patterns {
		if _, ok := drop[p.EffectiveName()]; !ok {
			out = append(out, p)
		}
	}
	return out
}
