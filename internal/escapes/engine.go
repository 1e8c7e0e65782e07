// Package escapes runs the escape-hatch and lint-suppression checks over a
// repository and turns matches into findings and metrics.
package escapes

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phyten/hatchgate/internal/catalog"
	"github.com/phyten/hatchgate/internal/classify"
	"github.com/phyten/hatchgate/internal/detect"
	"github.com/phyten/hatchgate/internal/metrics"
	"github.com/phyten/hatchgate/internal/pattern"
	"github.com/phyten/hatchgate/internal/source"
	"github.com/phyten/hatchgate/internal/suppress"
	"github.com/phyten/hatchgate/internal/util"
)

// MaxJobs は並列ワーカー数の上限です。
const MaxJobs = 64

// Run は指定されたオプションに従ってリポジトリを走査し、違反とメトリクスを返します。
//
// 読み込めないファイルは Result.Errors に集約され、走査は継続します。
// 不正なパターンは警告としてスキップされます。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	nw := opts.Jobs
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	if nw > MaxJobs {
		nw = MaxJobs
	}

	tests, err := classify.NewTestMatcher(opts.TestGlobs)
	if err != nil {
		return nil, err
	}

	cache := pattern.NewCache()
	langs, global, names, warnings := compile(cache, opts)
	for _, w := range warnings {
		logger.Warn("skipping escape pattern", "reason", w)
	}

	files, err := source.List(ctx, source.ListOptions{
		Root:           opts.Root,
		Paths:          opts.Paths,
		Excludes:       opts.Excludes,
		PathRegex:      opts.PathRegex,
		ExcludeTypical: opts.ExcludeTypical,
		NoGit:          opts.NoGit,
		Runner:         opts.Runner,
	})
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if opts.Cache != nil {
		opts.Cache.Retain(files)
	}

	packages := append([]string(nil), opts.Packages...)
	if opts.DiscoverPackages {
		found, derr := classify.DiscoverPackages(ctx, opts.Root, files)
		if derr != nil {
			logger.Warn("package discovery", "err", derr)
			warnings = append(warnings, derr.Error())
		}
		packages = append(packages, found...)
	}

	reader := source.NewReader(opts.Root, opts.MaxFileBytes)
	prog := util.NewProgress(len(files), opts.Progress)
	agg := metrics.New()
	reports := make([]*FileReport, len(files))
	var errsMu sync.Mutex
	var errs []ItemError

	type job struct {
		idx  int
		file string
	}
	jobs := make(chan job)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		local := metrics.New()
		for j := range jobs {
			rep, itemErr := processOne(ctx, reader, opts, langs, global, tests, packages, j.file, logger)
			if itemErr != nil {
				errsMu.Lock()
				errs = append(errs, *itemErr)
				errsMu.Unlock()
			}
			if rep != nil {
				for _, h := range rep.Hits {
					local.Increment(h.Name, h.Test)
					if rep.Package != "" {
						local.IncrementPackage(rep.Package, h.Name, h.Test)
					}
				}
				reports[j.idx] = rep
			}
			prog.Advance()
		}
		agg.Merge(local)
	}

	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
dispatch:
	for i, f := range files {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- job{idx: i, file: f}:
		}
	}
	close(jobs)
	wg.Wait()
	prog.Done()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var findings []Finding
	scanned := 0
	for _, rep := range reports {
		if rep == nil {
			continue
		}
		scanned++
		findings = append(findings, rep.Findings...)
	}
	counted := countPatterns(langs, global)
	findings = append(findings, thresholdFindings(counted, agg)...)

	// stable order by file:line
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if (a.File == "") != (b.File == "") {
			return b.File == ""
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Type < b.Type
	})
	total := len(findings)
	truncated := false
	if opts.Limit > 0 && len(findings) > opts.Limit {
		findings = findings[:opts.Limit]
		truncated = true
	}

	sort.Slice(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			if errs[i].Line == errs[j].Line {
				return errs[i].Stage < errs[j].Stage
			}
			return errs[i].Line < errs[j].Line
		}
		return errs[i].File < errs[j].File
	})

	return &Result{
		Findings:   findings,
		Metrics:    agg.ToJSON(names),
		ByPackage:  agg.ToByPackage(names),
		Thresholds: thresholdMap(counted),
		Files:      scanned,
		Total:      total,
		Truncated:  truncated,
		Warnings:   warnings,
		Errors:     errs,
		ErrorCount: len(errs),
		ElapsedMS:  msSince(start),
	}, nil
}

func newItemError(file string, line int, stage string, err error) ItemError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Line: line, Stage: stage, Message: msg}
}

// processOne reads and scans one file. A nil report means the file is not analyzed.
func processOne(
	ctx context.Context,
	reader *source.Reader,
	opts Options,
	langs map[string]*compiledLanguage,
	global []compiledPattern,
	tests *classify.TestMatcher,
	packages []string,
	rel string,
	logger *slog.Logger,
) (*FileReport, *ItemError) {
	info := detect.FromPathAndContent(rel, nil)
	// 拡張子のないファイルだけ shebang を見るために読み込む
	if info.Name == "" && !info.Source && filepath.Ext(rel) != "" {
		return nil, nil
	}
	if info.Name != "" && !detect.MatchesLang(info, opts.DetectLangs) {
		return nil, nil
	}
	if info.Name != "" || info.Source {
		if langs[info.Name] == nil && (!info.Source || len(global) == 0) {
			return nil, nil
		}
	}

	content, err := reader.Read(ctx, rel)
	if err != nil {
		switch {
		case source.IsSkippable(err):
			logger.Debug("skipping file", "file", rel, "reason", err)
			return nil, nil
		default:
			logger.Debug("read failed", "file", rel, "err", err)
			ie := newItemError(rel, 0, "read", err)
			return nil, &ie
		}
	}
	if info.Name == "" && !info.Source {
		info = detect.FromPathAndContent(rel, []byte(content))
		if info.Name == "" || !detect.MatchesLang(info, opts.DetectLangs) {
			return nil, nil
		}
	}

	lang := langs[info.Name]
	if lang == nil && (!info.Source || len(global) == 0) {
		return nil, nil
	}
	isTest := tests.IsTest(rel)
	pkg := classify.FindPackage(rel, packages)
	if opts.Cache != nil {
		// パッケージやテスト判定が変わったら内容が同じでも再スキャンする
		if rep, ok := opts.Cache.Get(rel, content); ok && rep.Package == pkg && rep.Test == isTest {
			return &rep, nil
		}
	}

	rep := scanFile(fileInput{
		rel:      rel,
		content:  content,
		lang:     lang,
		isTest:   isTest,
		pkg:      pkg,
		isSource: info.Source,
	}, global)
	if opts.Cache != nil {
		opts.Cache.Put(rel, content, rep)
	}
	return &rep, nil
}

// compile builds the per-language pattern sets once per run. Invalid patterns
// are reported as warnings and left out.
func compile(cache *pattern.Cache, opts Options) (map[string]*compiledLanguage, []compiledPattern, []string, []string) {
	var warnings []string
	var names []string
	seen := make(map[string]bool)
	addName := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}

	build := func(lang string, defs []catalog.EscapePattern) []compiledPattern {
		specs := make([]pattern.Spec, len(defs))
		for i, d := range defs {
			specs[i] = pattern.Spec{Name: d.EffectiveName(), Pattern: d.Pattern}
		}
		set, errs := pattern.CompileAll(cache, specs)
		for _, e := range errs {
			warnings = append(warnings, fmt.Sprintf("%s: %v", lang, e))
		}
		byName := make(map[string]catalog.EscapePattern, len(defs))
		for _, d := range defs {
			byName[d.EffectiveName()] = d
		}
		out := make([]compiledPattern, 0, set.Len())
		for _, e := range set.Entries {
			d := byName[e.Name]
			out = append(out, compiledPattern{
				name:      e.Name,
				matcher:   e.Matcher,
				action:    d.Action,
				advice:    d.ResolvedAdvice(),
				comment:   d.Comment,
				threshold: d.Threshold,
				inTests:   d.InTests,
			})
			addName(e.Name)
		}
		return out
	}

	langs := make(map[string]*compiledLanguage)
	for _, name := range suppress.Languages() {
		cfg, ok := opts.Languages[name]
		if !ok {
			cfg = DefaultLanguage(name)
		}
		if cfg.Disabled {
			continue
		}
		if len(opts.DetectLangs) > 0 && !detect.MatchesLang(detect.Info{Name: name}, opts.DetectLangs) {
			continue
		}
		parse, _ := suppress.ForLanguage(name)
		langs[name] = &compiledLanguage{
			name:     name,
			patterns: build(name, cfg.Escapes),
			parse:    parse,
			policy:   cfg.Suppress,
		}
	}
	global := build("global", opts.Global)
	return langs, global, names, warnings
}

// countPatterns returns the count patterns of every language plus the global
// ones, first definition per name only.
func countPatterns(langs map[string]*compiledLanguage, global []compiledPattern) []compiledPattern {
	keys := make([]string, 0, len(langs))
	for k := range langs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var all []compiledPattern
	for _, k := range keys {
		all = append(all, langs[k].patterns...)
	}
	all = append(all, global...)

	var out []compiledPattern
	done := make(map[string]bool)
	for _, p := range all {
		if p.action != catalog.ActionCount || done[p.name] {
			continue
		}
		done[p.name] = true
		out = append(out, p)
	}
	return out
}

// thresholdFindings は count アクションのソース件数がしきい値を超えたものを返します。
func thresholdFindings(counted []compiledPattern, agg *metrics.Aggregator) []Finding {
	var out []Finding
	for _, p := range counted {
		if n := agg.SourceCount(p.name); n > p.threshold {
			out = append(out, Finding{
				Type:      TypeThresholdExceeded,
				Pattern:   p.name,
				Advice:    p.advice,
				Value:     n,
				Threshold: p.threshold,
			})
		}
	}
	return out
}

func thresholdMap(counted []compiledPattern) map[string]int {
	if len(counted) == 0 {
		return nil
	}
	out := make(map[string]int, len(counted))
	for _, p := range counted {
		out[p.name] = p.threshold
	}
	return out
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
