package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/hatchgate/internal/escapes/opts"
)

// EnvPrefix は環境変数のプレフィックスです。
const EnvPrefix = "HATCHGATE_"

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	lookup := func(key string) string {
		return strings.TrimSpace(getenv(EnvPrefix + key))
	}
	setString := func(target **string, key string) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if len(list) == 0 {
			empty := make([]string, 0)
			*target = &empty
			return
		}
		copyVals := make([]string, len(list))
		copy(copyVals, list)
		*target = &copyVals
	}
	setBool := func(target **bool, key string) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, EnvPrefix+key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, EnvPrefix+key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	setString(&cfg.Engine.Repo, "REPO")
	setList(&cfg.Engine.Paths, "PATH")
	setList(&cfg.Engine.Excludes, "EXCLUDE")
	setList(&cfg.Engine.PathRegex, "PATH_REGEX")
	setList(&cfg.Engine.DetectLangs, "DETECT_LANGS")
	setBool(&cfg.Engine.ExcludeTypical, "EXCLUDE_TYPICAL")
	setBool(&cfg.Engine.NoGit, "NO_GIT")
	setBool(&cfg.Engine.Progress, "PROGRESS")
	setString(&cfg.Engine.Output, "OUTPUT")
	setString(&cfg.Engine.Color, "COLOR")
	// 上限は NormalizeAndValidate 側で検証する
	setInt(&cfg.Engine.Jobs, "JOBS", 0, math.MaxInt)
	setInt(&cfg.Engine.Limit, "LIMIT", 0, math.MaxInt)
	setInt(&cfg.Engine.MaxFileBytes, "MAX_FILE_BYTES", 0, math.MaxInt)

	setList(&cfg.Project.Packages, "PACKAGES")
	setList(&cfg.Project.Tests, "TESTS")
	setBool(&cfg.Project.DiscoverPackages, "DISCOVER_PACKAGES")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
