package opts

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/hatchgate/internal/detect"
	"github.com/phyten/hatchgate/internal/escapes"
	"github.com/phyten/hatchgate/internal/source"
)

const (
	maxJobs = escapes.MaxJobs
	// DefaultMaxFileBytes は読み込むファイルサイズの既定上限です。
	DefaultMaxFileBytes = 10 << 20
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Defaults returns the shared baseline options for the CLI and config layers.
func Defaults(repoDir string) escapes.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return escapes.Options{
		Root:           repoDir,
		Jobs:           jobs,
		Limit:          0,
		ExcludeTypical: false,
		NoGit:          false,
		MaxFileBytes:   DefaultMaxFileBytes,
		Progress:       false,
		DetectLangs:    nil,
	}
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *escapes.Options) error {
	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if o.Limit < 0 {
		return fmt.Errorf("limit must be >= 0")
	}
	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}
	if strings.TrimSpace(o.Root) == "" {
		o.Root = "."
	}

	o.Paths = trimSlice(o.Paths)
	o.Excludes = trimSlice(o.Excludes)
	o.PathRegex = trimSlice(o.PathRegex)
	o.Packages = trimSlice(o.Packages)
	o.DetectLangs = trimSlice(o.DetectLangs)
	if len(o.DetectLangs) > 0 {
		for _, l := range o.DetectLangs {
			if !detect.KnownLanguage(l) {
				return fmt.Errorf("invalid --detect-langs: %s", l)
			}
		}
		o.DetectLangs = detect.CanonicalDetectLangs(o.DetectLangs)
	}

	if _, err := source.CompilePathRegex(o.PathRegex); err != nil {
		return fmt.Errorf("invalid --path-regex: %w", err)
	}
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the --output value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "text":
		return "text", nil
	case "json", "ndjson", "markdown", "csv":
		return v, nil
	case "md":
		return "markdown", nil
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti turns repeated flag values (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
