package config

import (
	"strings"

	"github.com/phyten/hatchgate/internal/catalog"
	"github.com/phyten/hatchgate/internal/escapes"
)

type EngineConfig struct {
	Repo           *string   `yaml:"repo" toml:"repo" json:"repo"`
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex      *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	DetectLangs    *[]string `yaml:"detect_langs" toml:"detect_langs" json:"detect_langs"`
	NoGit          *bool     `yaml:"no_git" toml:"no_git" json:"no_git"`
	Progress       *bool     `yaml:"progress" toml:"progress" json:"progress"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	Limit          *int      `yaml:"limit" toml:"limit" json:"limit"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	Output         *string   `yaml:"output" toml:"output" json:"output"`
	Color          *string   `yaml:"color" toml:"color" json:"color"`
}

type ProjectConfig struct {
	Packages         *[]string `yaml:"packages" toml:"packages" json:"packages"`
	Tests            *[]string `yaml:"tests" toml:"tests" json:"tests"`
	DiscoverPackages *bool     `yaml:"discover_packages" toml:"discover_packages" json:"discover_packages"`
}

// EscapesConfig は escapes セクション。Patterns は同名の既定パターンを置き換えます。
type EscapesConfig struct {
	Patterns []catalog.EscapePattern
	Disable  []string
}

// ScopeConfig is one of suppress.source / suppress.test. Any key that is not
// check, allow or forbid is a lint code mapped to its accepted comment prefixes.
type ScopeConfig struct {
	Check    *string
	Allow    *[]string
	Forbid   *[]string
	Patterns map[string][]string
}

type SuppressConfig struct {
	Check   *string
	Comment *string
	Source  ScopeConfig
	Test    ScopeConfig
}

type LanguageConfig struct {
	Disabled *bool
	Escapes  EscapesConfig
	Suppress SuppressConfig
}

type Config struct {
	Engine    EngineConfig
	Project   ProjectConfig
	Escapes   EscapesConfig
	Languages map[string]LanguageConfig
}

type EngineSettings struct {
	Repo           string
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	DetectLangs    []string
	NoGit          bool
	Progress       bool
	Jobs           int
	Limit          int
	MaxFileBytes   int
	Output         string
	Color          string
}

type ProjectSettings struct {
	Packages []string
	// Tests が nil の場合は既定のテストグロブを使う
	Tests            []string
	DiscoverPackages bool
}

func EngineSettingsFromOptions(opts escapes.Options) EngineSettings {
	return EngineSettings{
		Repo:           opts.Root,
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		PathRegex:      cloneStrings(opts.PathRegex),
		ExcludeTypical: opts.ExcludeTypical,
		DetectLangs:    cloneStrings(opts.DetectLangs),
		NoGit:          opts.NoGit,
		Progress:       opts.Progress,
		Jobs:           opts.Jobs,
		Limit:          opts.Limit,
		MaxFileBytes:   int(opts.MaxFileBytes),
		Output:         "text",
		Color:          "auto",
	}
}

func (s EngineSettings) ApplyToOptions(opts *escapes.Options) {
	if opts == nil {
		return
	}
	if trimmed := strings.TrimSpace(s.Repo); trimmed != "" {
		opts.Root = trimmed
	}
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.DetectLangs = cloneStrings(s.DetectLangs)
	opts.NoGit = s.NoGit
	opts.Progress = s.Progress
	opts.Jobs = s.Jobs
	opts.Limit = s.Limit
	opts.MaxFileBytes = int64(s.MaxFileBytes)
}

func (s ProjectSettings) ApplyToOptions(opts *escapes.Options) {
	if opts == nil {
		return
	}
	opts.Packages = cloneStrings(s.Packages)
	if s.Tests != nil {
		opts.TestGlobs = append([]string{}, s.Tests...)
	} else {
		opts.TestGlobs = nil
	}
	opts.DiscoverPackages = s.DiscoverPackages
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
