package escapes

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/phyten/hatchgate/internal/cache"
	"github.com/phyten/hatchgate/internal/catalog"
	"github.com/phyten/hatchgate/internal/execx"
	"github.com/phyten/hatchgate/internal/metrics"
)

// Finding types.
const (
	TypeMissingComment         = "missing_comment"
	TypeForbidden              = "forbidden"
	TypeThresholdExceeded      = "threshold_exceeded"
	TypeSuppressForbidden      = "suppress_forbidden"
	TypeSuppressMissingComment = "suppress_missing_comment"
)

// Finding は 1 件の違反を表す。threshold_exceeded は File/Line を持たない。
type Finding struct {
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Type      string `json:"type"`
	Pattern   string `json:"pattern"`
	Advice    string `json:"advice"`
	Value     int    `json:"value,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
}

type findingJSON struct {
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Type      string `json:"type"`
	Pattern   string `json:"pattern"`
	Advice    string `json:"advice"`
	Value     *int   `json:"value,omitempty"`
	Threshold *int   `json:"threshold,omitempty"`
}

// MarshalJSON emits value and threshold only for threshold_exceeded, where a
// zero threshold is meaningful.
func (f Finding) MarshalJSON() ([]byte, error) {
	out := findingJSON{File: f.File, Line: f.Line, Type: f.Type, Pattern: f.Pattern, Advice: f.Advice}
	if f.Type == TypeThresholdExceeded {
		v, th := f.Value, f.Threshold
		out.Value, out.Threshold = &v, &th
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Language is the effective configuration for one analyzed language.
type Language struct {
	Disabled bool
	Escapes  []catalog.EscapePattern
	Suppress SuppressPolicy
}

// DefaultLanguage returns the built-in catalog and suppress policy for lang.
func DefaultLanguage(lang string) Language {
	return Language{
		Escapes:  catalog.Defaults(lang),
		Suppress: DefaultSuppress(lang),
	}
}

// FileReport is everything one file contributes to a run. It is what the
// content cache stores.
type FileReport struct {
	File    string
	Lang    string
	Package string
	// Test is the file-level test classification the report was built with.
	Test     bool
	Hits     []Hit
	Findings []Finding
}

// Hit is one counted escape match.
type Hit struct {
	Name string
	Test bool
}

// Options は実行オプション
type Options struct {
	Root             string
	Languages        map[string]Language // 未指定の言語は DefaultLanguage
	Global           []catalog.EscapePattern
	DetectLangs      []string
	TestGlobs        []string
	Packages         []string
	DiscoverPackages bool
	Jobs             int
	Limit            int
	Paths            []string
	Excludes         []string
	PathRegex        []string
	ExcludeTypical   bool
	NoGit            bool
	MaxFileBytes     int64
	Progress         bool
	Logger           *slog.Logger
	Cache            *cache.Cache[FileReport]
	Runner           execx.Runner
}

// Result は出力
type Result struct {
	Findings   []Finding                 `json:"findings"`
	Metrics    metrics.Scoped            `json:"metrics"`
	ByPackage  map[string]metrics.Scoped `json:"by_package,omitempty"`
	Thresholds map[string]int            `json:"thresholds,omitempty"`
	Files      int                       `json:"files"`
	Total      int                       `json:"total"`
	Truncated  bool                      `json:"truncated,omitempty"`
	Warnings   []string                  `json:"warnings,omitempty"`
	Errors     []ItemError               `json:"errors,omitempty"`
	ErrorCount int                       `json:"error_count"`
	ElapsedMS  int64                     `json:"elapsed_ms"`
}

// Passed reports whether the run produced no findings.
func (r *Result) Passed() bool {
	return len(r.Findings) == 0 && !r.Truncated
}
