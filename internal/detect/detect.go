// Package detect maps files to the languages whose escape hatches and
// suppression directives are analyzed.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Canonical language names.
const (
	Rust       = "rust"
	Go         = "go"
	Shell      = "shell"
	JavaScript = "javascript"
	Python     = "python"
	Ruby       = "ruby"
)

// Info は 1 ファイルの判定結果です。Name は解析対象言語 (なければ "")、
// Source はソースコード拡張子かどうかを表します。
type Info struct {
	Name   string
	Source bool
}

// FromPathAndContent detects by basename, then extension, then shebang.
func FromPathAndContent(p string, data []byte) Info {
	name := detectByPath(p)
	source := isSourceExt(p)
	if name == "" {
		if name = detectByShebang(data); name != "" {
			source = true
		}
	}
	return Info{Name: name, Source: source}
}

func detectByPath(p string) string {
	base := strings.ToLower(filepath.Base(p))
	if lang, ok := basenameLanguages[base]; ok {
		return lang
	}
	ext := filepath.Ext(base)
	if ext == "" {
		return ""
	}
	return extensionLanguages[ext]
}

// detectByShebang は #! 行のインタプリタ名から言語を判定します。
// "/usr/bin/env -S python3 -u" のような env 経由の指定も扱います。
func detectByShebang(data []byte) string {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	fields := strings.Fields(string(data[2:end]))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" {
		interp = ""
		for _, f := range fields[1:] {
			if strings.HasPrefix(f, "-") || strings.Contains(f, "=") {
				continue
			}
			interp = filepath.Base(f)
			break
		}
	}
	interp = strings.TrimRight(strings.ToLower(interp), "0123456789.")
	return shebangLanguages[interp]
}

func isSourceExt(p string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(p)), ".")
	_, ok := sourceExtensions[ext]
	return ok
}

// NormalizeLangName maps aliases such as "ts" or "bash" to a canonical name.
func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

// MatchesLang reports whether info is one of allow. An empty allow list matches everything.
func MatchesLang(info Info, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	if info.Name == "" {
		return false
	}
	for _, raw := range allow {
		if NormalizeLangName(raw) == info.Name {
			return true
		}
	}
	return false
}

// KnownLanguage reports whether name resolves to an analyzed language.
func KnownLanguage(name string) bool {
	_, ok := analyzed[NormalizeLangName(name)]
	return ok
}

// CanonicalDetectLangs normalizes and dedupes values, keeping first-seen order.
func CanonicalDetectLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

var analyzed = map[string]struct{}{
	Rust:       {},
	Go:         {},
	Shell:      {},
	JavaScript: {},
	Python:     {},
	Ruby:       {},
}

var basenameLanguages = map[string]string{
	"gemfile":     Ruby,
	"rakefile":    Ruby,
	"podfile":     Ruby,
	"vagrantfile": Ruby,
	"berksfile":   Ruby,
	"config.ru":   Ruby,
	"gradlew":     Shell,
	".bashrc":     Shell,
	".zshrc":      Shell,
	".profile":    Shell,
}

var extensionLanguages = map[string]string{
	".rs":      Rust,
	".go":      Go,
	".sh":      Shell,
	".bash":    Shell,
	".bats":    Shell,
	".zsh":     Shell,
	".ksh":     Shell,
	".js":      JavaScript,
	".mjs":     JavaScript,
	".cjs":     JavaScript,
	".jsx":     JavaScript,
	".ts":      JavaScript,
	".mts":     JavaScript,
	".cts":     JavaScript,
	".tsx":     JavaScript,
	".py":      Python,
	".pyw":     Python,
	".pyi":     Python,
	".rb":      Ruby,
	".rake":    Ruby,
	".gemspec": Ruby,
}

var shebangLanguages = map[string]string{
	"python": Python,
	"pypy":   Python,
	"node":   JavaScript,
	"deno":   JavaScript,
	"bun":    JavaScript,
	"ruby":   Ruby,
	"bash":   Shell,
	"sh":     Shell,
	"dash":   Shell,
	"zsh":    Shell,
	"ksh":    Shell,
}

// sourceExtensions はエスケープ検出の対象とするソース拡張子です。設定・文書・データは含めません。
var sourceExtensions = map[string]struct{}{
	"rs": {}, "c": {}, "cpp": {}, "h": {}, "hpp": {}, "go": {},
	"java": {}, "kt": {}, "scala": {},
	"py": {}, "pyi": {}, "rb": {}, "rake": {}, "php": {}, "lua": {}, "pl": {}, "pm": {}, "r": {},
	"js": {}, "mjs": {}, "cjs": {}, "ts": {}, "mts": {}, "cts": {}, "jsx": {}, "tsx": {},
	"swift": {}, "m": {}, "mm": {},
	"cs": {},
	"sh": {}, "bash": {}, "bats": {}, "zsh": {},
	"html": {}, "css": {}, "vue": {}, "svelte": {},
	"sql": {}, "ex": {}, "exs": {}, "erl": {}, "clj": {}, "hs": {}, "ml": {},
}

var langAliases = map[string]string{
	"rs":              Rust,
	"golang":          Go,
	"sh":              Shell,
	"bash":            Shell,
	"zsh":             Shell,
	"js":              JavaScript,
	"mjs":             JavaScript,
	"cjs":             JavaScript,
	"jsx":             JavaScript,
	"ts":              JavaScript,
	"tsx":             JavaScript,
	"typescript":      JavaScript,
	"javascriptreact": JavaScript,
	"typescriptreact": JavaScript,
	"py":              Python,
	"python3":         Python,
	"rb":              Ruby,
}
