package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/phyten/hatchgate/internal/detect"
	engineopts "github.com/phyten/hatchgate/internal/escapes/opts"
)

var engineKeyMap = map[string]string{
	"repo":             "repo",
	"path":             "path",
	"paths":            "path",
	"exclude":          "exclude",
	"excludes":         "exclude",
	"path_regex":       "path_regex",
	"path_regexes":     "path_regex",
	"exclude_typical":  "exclude_typical",
	"detect_langs":     "detect_langs",
	"detect_languages": "detect_langs",
	"no_git":           "no_git",
	"progress":         "progress",
	"jobs":             "jobs",
	"limit":            "limit",
	"max_file_bytes":   "max_file_bytes",
	"max_bytes":        "max_file_bytes",
	"output":           "output",
	"color":            "color",
}

var projectKeyMap = map[string]string{
	"packages":          "packages",
	"tests":             "tests",
	"test_patterns":     "tests",
	"discover_packages": "discover_packages",
}

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	raw, err := decodeRaw(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeRaw(data []byte, ext string) (map[string]any, error) {
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return raw, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	engineSection := make(map[string]any)
	projectSection := make(map[string]any)

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "engine":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("engine: %w", err)
			}
			if err := fillSection(engineSection, sub, engineKeyMap, "engine"); err != nil {
				return cfg, err
			}
		case "project":
			sub, err := toStringKeyMap(value)
			if err != nil {
				return cfg, fmt.Errorf("project: %w", err)
			}
			if err := fillSection(projectSection, sub, projectKeyMap, "project"); err != nil {
				return cfg, err
			}
		case "escapes":
			esc, err := decodeEscapes(value, false)
			if err != nil {
				return cfg, fmt.Errorf("escapes: %w", err)
			}
			cfg.Escapes = esc
		default:
			if canonical, ok := engineKeyMap[norm]; ok {
				engineSection[canonical] = value
				continue
			}
			if lang := detect.NormalizeLangName(norm); detect.KnownLanguage(lang) {
				lc, err := decodeLanguage(value)
				if err != nil {
					return cfg, fmt.Errorf("%s: %w", lang, err)
				}
				if cfg.Languages == nil {
					cfg.Languages = make(map[string]LanguageConfig)
				}
				if _, dup := cfg.Languages[lang]; dup {
					return cfg, fmt.Errorf("duplicate language section: %s", key)
				}
				cfg.Languages[lang] = lc
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignEngine(engineSection, &cfg.Engine); err != nil {
		return cfg, fmt.Errorf("engine: %w", err)
	}
	if err := assignProject(projectSection, &cfg.Project); err != nil {
		return cfg, fmt.Errorf("project: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignEngine(section map[string]any, dst *EngineConfig) error {
	for key, value := range section {
		switch key {
		case "repo":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			dst.Repo = &str
		case "path":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Paths = &list
		case "exclude":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Excludes = &list
		case "path_regex":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.PathRegex = &list
		case "detect_langs":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.DetectLangs = &list
		case "exclude_typical":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.ExcludeTypical = &b
		case "no_git":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.NoGit = &b
		case "progress":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.Progress = &b
		case "jobs":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Jobs = &n
		case "limit":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.Limit = &n
		case "max_file_bytes":
			n, err := expectInt(value, key)
			if err != nil {
				return err
			}
			dst.MaxFileBytes = &n
		case "output":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Output = &trimmed
		case "color":
			str, err := expectString(value, key)
			if err != nil {
				return err
			}
			trimmed := strings.TrimSpace(str)
			dst.Color = &trimmed
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func assignProject(section map[string]any, dst *ProjectConfig) error {
	for key, value := range section {
		switch key {
		case "packages":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Packages = &list
		case "tests":
			list, err := expectStringList(value, key)
			if err != nil {
				return err
			}
			dst.Tests = &list
		case "discover_packages":
			b, err := expectBool(value, key)
			if err != nil {
				return err
			}
			dst.DiscoverPackages = &b
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	return nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		n, err := strconv.Atoi(trimmed)
		if trimmed == "" || err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		parts := engineopts.SplitMulti([]string{v})
		return normalizeList(parts), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	case nil:
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}
