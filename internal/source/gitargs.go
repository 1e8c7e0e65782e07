package source

import (
	"path/filepath"
	"regexp"
	"strings"
)

var typicalExcludePatterns = []string{
	":(glob,exclude)vendor/**",
	":(glob,exclude)node_modules/**",
	":(glob,exclude)dist/**",
	":(glob,exclude)build/**",
	":(glob,exclude)target/**",
	":(glob,exclude)*.min.*",
}

// buildPathspecs builds the list to append after "--" for `git ls-files`.
func buildPathspecs(includes, excludes []string, typical bool) []string {
	normalizedIncludes := make([]string, 0, len(includes))
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		normalizedIncludes = append(normalizedIncludes, filepath.ToSlash(trimmed))
	}

	out := make([]string, 0, len(normalizedIncludes)+len(excludes)+len(typicalExcludePatterns)+1)
	if len(normalizedIncludes) == 0 {
		out = append(out, ".")
	} else {
		out = append(out, normalizedIncludes...)
	}

	if typical {
		out = append(out, typicalExcludePatterns...)
	}

	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if isExcludeSpec(trimmed) {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

func isExcludeSpec(s string) bool {
	return strings.HasPrefix(s, ":!") || strings.HasPrefix(s, ":(exclude)") || strings.HasPrefix(s, ":(glob,exclude)")
}

// stripMagic turns a pathspec back into a plain glob for the filesystem walk.
func stripMagic(spec string) string {
	for _, p := range []string{":(glob,exclude)", ":(exclude)", ":(glob)", ":!", ":^"} {
		if strings.HasPrefix(spec, p) {
			return spec[len(p):]
		}
	}
	return spec
}

// walkExcludes はファイルシステム走査用の除外 glob を返します。
func walkExcludes(excludes []string, typical bool) []string {
	var out []string
	if typical {
		for _, p := range typicalExcludePatterns {
			out = append(out, stripMagic(p))
		}
	}
	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		out = append(out, stripMagic(filepath.ToSlash(trimmed)))
	}
	return out
}

// CompilePathRegex compiles --path-regex values; blank entries are ignored.
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		rx, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

func filterByPathRegex(files []string, rx []*regexp.Regexp) []string {
	if len(rx) == 0 {
		return files
	}
	out := files[:0]
	for _, f := range files {
		for _, r := range rx {
			if r.MatchString(f) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}
