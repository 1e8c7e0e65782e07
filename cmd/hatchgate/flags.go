package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/hatchgate/internal/config"
	engineopts "github.com/phyten/hatchgate/internal/escapes/opts"
)

// stringList collects a repeatable flag. Comma separated values are split later.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type checkArgs struct {
	configPath string
	watch      bool
	noProgress bool
	showHelp   bool
	engine     config.EngineConfig
	project    config.ProjectConfig
}

// parseCheckArgs はフラグを解釈します。明示されたフラグだけが設定レイヤに入ります。
func parseCheckArgs(args []string) (checkArgs, error) {
	fs := flag.NewFlagSet("hatchgate check", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		out checkArgs

		repo           = fs.String("repo", ".", "repository root")
		output         = fs.String("output", "text", "text|json|ndjson|markdown|csv")
		color          = fs.String("color", "auto", "auto|always|never")
		jobs           = fs.Int("jobs", 0, "max parallel workers (1-64)")
		limit          = fs.Int("limit", 0, "stop after N findings (0=unlimited)")
		maxFileBytes   = fs.Int("max-file-bytes", engineopts.DefaultMaxFileBytes, "skip files larger than N bytes (0=unlimited)")
		excludeTypical = fs.Bool("exclude-typical", false, "exclude vendor, node_modules, dist, build, target and minified files")
		noGit          = fs.Bool("no-git", false, "walk the filesystem instead of git ls-files")
		progress       = fs.Bool("progress", false, "force progress output")
		discover       = fs.Bool("discover-packages", false, "read workspace manifests for package roots")

		paths, excludes, pathRegex, detectLangs, packages, tests stringList
	)
	fs.StringVar(&out.configPath, "config", "", "config file path")
	fs.BoolVar(&out.watch, "watch", false, "re-run on file changes")
	fs.BoolVar(&out.noProgress, "no-progress", false, "disable progress output")
	fs.Var(&paths, "path", "limit to pathspec (repeatable, comma separated)")
	fs.Var(&excludes, "exclude", "exclude glob (repeatable, comma separated)")
	fs.Var(&pathRegex, "path-regex", "keep only paths matching the regexp (repeatable)")
	fs.Var(&detectLangs, "detect-langs", "only analyze these languages")
	fs.Var(&packages, "packages", "package roots such as crates/*")
	fs.Var(&tests, "tests", "test file globs (replaces the defaults)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return checkArgs{showHelp: true}, nil
		}
		return checkArgs{}, err
	}
	if fs.NArg() > 0 {
		return checkArgs{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	e := &out.engine
	if set["repo"] {
		e.Repo = ptr(*repo)
	}
	if set["output"] {
		e.Output = ptr(*output)
	}
	if set["color"] {
		e.Color = ptr(*color)
	}
	if set["jobs"] {
		e.Jobs = ptr(*jobs)
	}
	if set["limit"] {
		e.Limit = ptr(*limit)
	}
	if set["max-file-bytes"] {
		e.MaxFileBytes = ptr(*maxFileBytes)
	}
	if set["exclude-typical"] {
		e.ExcludeTypical = ptr(*excludeTypical)
	}
	if set["no-git"] {
		e.NoGit = ptr(*noGit)
	}
	if set["progress"] {
		e.Progress = ptr(*progress)
	}
	if set["path"] {
		e.Paths = listPtr(paths)
	}
	if set["exclude"] {
		e.Excludes = listPtr(excludes)
	}
	if set["path-regex"] {
		// 正規表現はカンマを含みうるので分割しない
		v := append([]string{}, pathRegex...)
		e.PathRegex = &v
	}
	if set["detect-langs"] {
		e.DetectLangs = listPtr(detectLangs)
	}

	p := &out.project
	if set["packages"] {
		p.Packages = listPtr(packages)
	}
	if set["tests"] {
		p.Tests = listPtr(tests)
	}
	if set["discover-packages"] {
		p.DiscoverPackages = ptr(*discover)
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }

func listPtr(values stringList) *[]string {
	v := engineopts.SplitMulti(values)
	if v == nil {
		v = []string{}
	}
	return &v
}

const usageText = `Usage:
  hatchgate [check] [flags]     check escape hatches and lint suppressions
  hatchgate patterns [flags]    list the effective escape patterns

Check flags:
  --repo DIR               repository root (default .)
  --config PATH            config file (default: .hatchgate.{toml,yaml,yml,json} found upward)
  --output FORMAT          text|json|ndjson|markdown|csv
  --color MODE             auto|always|never
  --jobs N                 parallel workers (1-64)
  --limit N                stop after N findings
  --path SPEC              limit to pathspec (repeatable)
  --exclude GLOB           exclude paths (repeatable)
  --exclude-typical        exclude vendor, node_modules, dist, build, target
  --path-regex RE          keep only matching paths (repeatable)
  --detect-langs LIST      only analyze these languages
  --packages LIST          package roots such as crates/*
  --tests LIST             test file globs
  --discover-packages      read Cargo/go.work/package.json workspaces
  --max-file-bytes N       skip larger files (0=unlimited)
  --no-git                 walk the filesystem instead of git ls-files
  --watch                  re-run on file changes
  --progress/--no-progress force or disable progress output

Patterns flags:
  --lang NAME              only this language
  --json                   emit JSON

Exit codes: 0 passed, 1 findings, 2 usage or configuration error.
Environment: HATCHGATE_* overrides the config file, flags override both.
`

func printUsage(w io.Writer) {
	_, _ = io.WriteString(w, usageText)
}
