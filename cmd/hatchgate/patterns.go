package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/phyten/hatchgate/internal/catalog"
	"github.com/phyten/hatchgate/internal/config"
	"github.com/phyten/hatchgate/internal/detect"
	"github.com/phyten/hatchgate/internal/escapes"
)

// globalKey は言語に依存しないパターンの表示名です。
const globalKey = "*"

func runPatterns(args []string, env cliEnv, errLog *log.Logger) int {
	fs := flag.NewFlagSet("hatchgate patterns", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	lang := fs.String("lang", "", "only this language")
	repo := fs.String("repo", "", "repository root")
	cfgPath := fs.String("config", "", "config file path")
	jsonOut := fs.Bool("json", false, "emit JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(env.stdout)
			return exitPassed
		}
		errLog.Print(err)
		return exitUsage
	}

	var engineFlags config.EngineConfig
	if *repo != "" {
		engineFlags.Repo = repo
	}
	r, err := loadSettings(*cfgPath, engineFlags, config.ProjectConfig{}, env)
	if err != nil {
		errLog.Print(err)
		return exitUsage
	}

	names := languageNames(r.file)
	if *lang != "" {
		l := detect.NormalizeLangName(*lang)
		if !detect.KnownLanguage(l) {
			errLog.Printf("unknown language: %s", *lang)
			return exitUsage
		}
		names = []string{l}
	}
	table := effectivePatterns(names, r.opts.Languages, r.opts.Global)

	if *jsonOut {
		enc := json.NewEncoder(env.stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(table); err != nil {
			errLog.Print(err)
			return exitUsage
		}
		return exitPassed
	}
	if err := printPatterns(env.stdout, table); err != nil {
		errLog.Print(err)
		return exitUsage
	}
	return exitPassed
}

func languageNames(cfg config.Config) []string {
	seen := map[string]bool{}
	var out []string
	for _, l := range append(catalog.Languages(), cfg.LanguageNames()...) {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

// effectivePatterns resolves each language against the configured overrides.
// Disabled languages are left out.
func effectivePatterns(names []string, langs map[string]escapes.Language, global []catalog.EscapePattern) map[string][]catalog.EscapePattern {
	out := make(map[string][]catalog.EscapePattern, len(names)+1)
	for _, l := range names {
		cfg, ok := langs[l]
		if !ok {
			cfg = escapes.DefaultLanguage(l)
		}
		if cfg.Disabled || len(cfg.Escapes) == 0 {
			continue
		}
		out[l] = cfg.Escapes
	}
	if len(global) > 0 {
		out[globalKey] = global
	}
	return out
}

func printPatterns(w io.Writer, table map[string][]catalog.EscapePattern) error {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LANG\tNAME\tACTION\tIN_TESTS\tTHRESHOLD\tPATTERN")
	for _, k := range keys {
		for _, p := range table[k] {
			inTests := string(p.InTests)
			if inTests == "" {
				inTests = "-"
			}
			threshold := "-"
			if p.Action == catalog.ActionCount {
				threshold = strconv.Itoa(p.Threshold)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", k, p.EffectiveName(), p.Action, inTests, threshold, p.Pattern)
		}
	}
	return tw.Flush()
}
