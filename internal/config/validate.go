package config

import (
	"fmt"
	"strings"

	"github.com/phyten/hatchgate/internal/classify"
	engineopts "github.com/phyten/hatchgate/internal/escapes/opts"
	"github.com/phyten/hatchgate/internal/termcolor"
)

func CanonicalizeColor(raw string) (string, error) {
	mode, err := termcolor.ParseMode(raw)
	if err != nil {
		return "", fmt.Errorf("invalid color: %s", raw)
	}
	return mode.String(), nil
}

// NormalizeEngine canonicalizes the output and color values.
func NormalizeEngine(values EngineSettings) (EngineSettings, error) {
	var err error
	values.Output, err = engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	values.Repo = strings.TrimSpace(values.Repo)
	return values, nil
}

// NormalizeProject validates test globs so a typo fails before the scan starts.
func NormalizeProject(values ProjectSettings) (ProjectSettings, error) {
	values.Packages = normalizeList(values.Packages)
	if values.Tests != nil {
		values.Tests = normalizeList(values.Tests)
		if _, err := classify.NewTestMatcher(values.Tests); err != nil {
			return values, fmt.Errorf("invalid tests glob: %w", err)
		}
	}
	return values, nil
}
