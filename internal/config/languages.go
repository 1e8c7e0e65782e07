package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phyten/hatchgate/internal/catalog"
	"github.com/phyten/hatchgate/internal/escapes"
)

func decodeLanguage(value any) (LanguageConfig, error) {
	var lc LanguageConfig
	section, err := toStringKeyMap(value)
	if err != nil {
		return lc, err
	}
	for key, v := range section {
		switch normalizeKey(key) {
		case "disabled":
			b, err := expectBool(v, key)
			if err != nil {
				return lc, err
			}
			lc.Disabled = &b
		case "escapes":
			esc, err := decodeEscapes(v, true)
			if err != nil {
				return lc, fmt.Errorf("escapes: %w", err)
			}
			lc.Escapes = esc
		case "suppress":
			sc, err := decodeSuppress(v)
			if err != nil {
				return lc, fmt.Errorf("suppress: %w", err)
			}
			lc.Suppress = sc
		default:
			return lc, fmt.Errorf("unknown key: %s", key)
		}
	}
	return lc, nil
}

// decodeEscapes reads {patterns = [...], disable = [...]}. disable is only
// meaningful where built-in patterns exist.
func decodeEscapes(value any, allowDisable bool) (EscapesConfig, error) {
	var out EscapesConfig
	section, err := toStringKeyMap(value)
	if err != nil {
		return out, err
	}
	for key, v := range section {
		switch norm := normalizeKey(key); {
		case norm == "patterns":
			items, ok := v.([]any)
			if !ok {
				return out, fmt.Errorf("expected list for patterns, got %T", v)
			}
			seen := make(map[string]struct{}, len(items))
			for i, item := range items {
				p, err := decodePattern(item)
				if err != nil {
					return out, fmt.Errorf("patterns[%d]: %w", i, err)
				}
				name := p.EffectiveName()
				if _, dup := seen[name]; dup {
					return out, fmt.Errorf("patterns[%d]: duplicate name %q", i, name)
				}
				seen[name] = struct{}{}
				out.Patterns = append(out.Patterns, p)
			}
		case norm == "disable" && allowDisable:
			list, err := expectStringList(v, key)
			if err != nil {
				return out, err
			}
			out.Disable = list
		default:
			return out, fmt.Errorf("unknown key: %s", key)
		}
	}
	return out, nil
}

func decodePattern(value any) (catalog.EscapePattern, error) {
	var p catalog.EscapePattern
	section, err := toStringKeyMap(value)
	if err != nil {
		return p, err
	}
	action := ""
	inTests := ""
	for key, v := range section {
		norm := normalizeKey(key)
		switch norm {
		case "name", "pattern", "comment", "advice", "action", "in_tests":
			str, err := expectString(v, norm)
			if err != nil {
				return p, err
			}
			switch norm {
			case "name":
				p.Name = strings.TrimSpace(str)
			case "pattern":
				p.Pattern = str
			case "comment":
				p.Comment = str
			case "advice":
				p.Advice = str
			case "action":
				action = str
			case "in_tests":
				inTests = str
			}
		case "threshold":
			n, err := expectInt(v, norm)
			if err != nil {
				return p, err
			}
			if n < 0 {
				return p, fmt.Errorf("threshold must be >= 0")
			}
			p.Threshold = n
		default:
			return p, fmt.Errorf("unknown key: %s", key)
		}
	}
	if p.Pattern == "" {
		return p, fmt.Errorf("pattern is required")
	}
	if p.Action, err = catalog.ParseAction(action); err != nil {
		return p, err
	}
	if p.InTests, err = catalog.ParseTestAction(inTests); err != nil {
		return p, err
	}
	return p, nil
}

func decodeSuppress(value any) (SuppressConfig, error) {
	var sc SuppressConfig
	section, err := toStringKeyMap(value)
	if err != nil {
		return sc, err
	}
	for key, v := range section {
		switch normalizeKey(key) {
		case "check":
			lvl, err := expectLevel(v, key)
			if err != nil {
				return sc, err
			}
			sc.Check = &lvl
		case "comment":
			str, err := expectString(v, key)
			if err != nil {
				return sc, err
			}
			sc.Comment = &str
		case "source":
			scope, err := decodeScope(v)
			if err != nil {
				return sc, fmt.Errorf("source: %w", err)
			}
			sc.Source = scope
		case "test", "tests":
			scope, err := decodeScope(v)
			if err != nil {
				return sc, fmt.Errorf("test: %w", err)
			}
			sc.Test = scope
		default:
			return sc, fmt.Errorf("unknown key: %s", key)
		}
	}
	return sc, nil
}

// decodeScope accepts check/allow/forbid plus lint codes of the form
// code = "// PREFIX:", code = ["// A:", "// B:"] or code = {comment = ...}.
func decodeScope(value any) (ScopeConfig, error) {
	var scope ScopeConfig
	section, err := toStringKeyMap(value)
	if err != nil {
		return scope, err
	}
	for key, v := range section {
		switch normalizeKey(key) {
		case "check":
			lvl, err := expectLevel(v, key)
			if err != nil {
				return scope, err
			}
			scope.Check = &lvl
		case "allow":
			list, err := expectStringList(v, key)
			if err != nil {
				return scope, err
			}
			scope.Allow = &list
		case "forbid":
			list, err := expectStringList(v, key)
			if err != nil {
				return scope, err
			}
			scope.Forbid = &list
		default:
			code := strings.TrimSpace(key)
			prefixes, err := expectCommentPatterns(v, code)
			if err != nil {
				return scope, err
			}
			if scope.Patterns == nil {
				scope.Patterns = make(map[string][]string)
			}
			scope.Patterns[code] = prefixes
		}
	}
	return scope, nil
}

func expectCommentPatterns(value any, code string) ([]string, error) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("empty comment pattern for %s", code)
		}
		return []string{v}, nil
	case []any, []string:
		list, err := expectStringList(v, code)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("empty comment pattern list for %s", code)
		}
		return list, nil
	case nil:
		return nil, fmt.Errorf("%s cannot be null", code)
	default:
		inner, err := toStringKeyMap(v)
		if err != nil {
			return nil, fmt.Errorf("expected string, list or {comment} for %s, got %T", code, value)
		}
		comment, ok := inner["comment"]
		if !ok || len(inner) != 1 {
			return nil, fmt.Errorf("expected {comment = ...} for %s", code)
		}
		return expectCommentPatterns(comment, code)
	}
}

func expectLevel(value any, field string) (string, error) {
	str, err := expectString(value, field)
	if err != nil {
		return "", err
	}
	lvl, err := escapes.ParseLevel(str)
	if err != nil {
		return "", err
	}
	return string(lvl), nil
}

// ResolveLanguages は設定された言語ごとに既定値へ上書きを重ねた結果を返します。
// 設定のない言語は含まれません。
func (c Config) ResolveLanguages() map[string]escapes.Language {
	if len(c.Languages) == 0 {
		return nil
	}
	out := make(map[string]escapes.Language, len(c.Languages))
	for lang, lc := range c.Languages {
		out[lang] = resolveLanguage(lang, lc)
	}
	return out
}

func resolveLanguage(lang string, lc LanguageConfig) escapes.Language {
	out := escapes.DefaultLanguage(lang)
	out.Disabled = ResolveBool(out.Disabled, lc.Disabled)
	out.Escapes = catalog.Disable(catalog.Merge(out.Escapes, lc.Escapes.Patterns), lc.Escapes.Disable)

	s := &out.Suppress
	if lc.Suppress.Check != nil {
		s.Check = escapes.Level(*lc.Suppress.Check)
	}
	s.Comment = ResolveString(s.Comment, lc.Suppress.Comment)
	s.Source = mergeScope(s.Source, lc.Suppress.Source)
	s.Test = mergeScope(s.Test, lc.Suppress.Test)
	return out
}

// mergeScope overlays user settings on a default scope. Per-code patterns
// replace matching defaults, while allow/forbid lists replace the defaults
// only when non-empty.
func mergeScope(def escapes.Scope, user ScopeConfig) escapes.Scope {
	out := escapes.Scope{
		Check:  def.Check,
		Allow:  cloneStrings(def.Allow),
		Forbid: cloneStrings(def.Forbid),
	}
	if len(def.Patterns)+len(user.Patterns) > 0 {
		out.Patterns = make(map[string][]string, len(def.Patterns)+len(user.Patterns))
		for code, p := range def.Patterns {
			out.Patterns[code] = cloneStrings(p)
		}
		for code, p := range user.Patterns {
			out.Patterns[code] = cloneStrings(p)
		}
	}
	if user.Check != nil {
		out.Check = escapes.Level(*user.Check)
	}
	if user.Allow != nil && len(*user.Allow) > 0 {
		out.Allow = cloneStrings(*user.Allow)
	}
	if user.Forbid != nil && len(*user.Forbid) > 0 {
		out.Forbid = cloneStrings(*user.Forbid)
	}
	return out
}

// LanguageNames returns the configured language names in sorted order.
func (c Config) LanguageNames() []string {
	out := make([]string, 0, len(c.Languages))
	for k := range c.Languages {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
