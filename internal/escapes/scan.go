package escapes

import (
	"github.com/phyten/hatchgate/internal/catalog"
	"github.com/phyten/hatchgate/internal/cfgtest"
	"github.com/phyten/hatchgate/internal/pattern"
	"github.com/phyten/hatchgate/internal/suppress"
)

type compiledPattern struct {
	name      string
	matcher   *pattern.Compiled
	action    catalog.Action
	advice    string
	comment   string
	threshold int
	inTests   catalog.TestAction
}

type compiledLanguage struct {
	name     string
	patterns []compiledPattern
	parse    suppress.Parser
	policy   SuppressPolicy
}

// fileInput is one file ready to scan.
type fileInput struct {
	rel      string
	content  string
	lang     *compiledLanguage // nil: only global patterns apply
	isTest   bool
	pkg      string
	isSource bool
}

// scanFile evaluates directives and escape patterns for one file.
func scanFile(in fileInput, global []compiledPattern) FileReport {
	rep := FileReport{File: in.rel, Package: in.pkg, Test: in.isTest}

	var cfg *cfgtest.Info
	if in.lang != nil {
		rep.Lang = in.lang.name
		if in.lang.name == "rust" {
			info := cfgtest.Parse(in.content)
			cfg = &info
		}
		if in.lang.parse != nil {
			rep.Findings = append(rep.Findings,
				checkSuppress(in.lang.name, in.rel, in.content, in.lang.parse, in.lang.policy, in.isTest, cfg)...)
		}
	}

	var lines []string
	var idx *pattern.LineIndex
	run := func(p compiledPattern) {
		matches := p.matcher.FindAllWithLines(in.content)
		if len(matches) == 0 {
			return
		}
		if lines == nil {
			lines = suppress.SplitLines(in.content)
			idx = pattern.NewLineIndex(in.content)
		}
		seen := make(map[int]bool, len(matches))
		for _, m := range matches {
			if seen[m.Line] {
				continue
			}
			seen[m.Line] = true

			lineText := ""
			if m.Line-1 < len(lines) {
				lineText = lines[m.Line-1]
			}
			offset := m.Start - idx.LineStart(m.Line)
			if (p.action == catalog.ActionComment || p.action == catalog.ActionForbid) && isMatchInComment(lineText, offset) {
				continue
			}

			test := in.isTest || (cfg != nil && cfg.IsTestLine(m.Line-1))
			rep.Hits = append(rep.Hits, Hit{Name: p.name, Test: test})

			action := p.action
			if test {
				switch p.inTests {
				case catalog.TestComment:
					action = catalog.ActionComment
				case catalog.TestForbid:
					action = catalog.ActionForbid
				default:
					continue
				}
			}

			switch action {
			case catalog.ActionComment:
				marker := p.comment
				if marker == "" {
					marker = defaultMarker
				}
				if !hasJustificationComment(lines, m.Line, marker) {
					rep.Findings = append(rep.Findings, Finding{
						File:    in.rel,
						Line:    m.Line,
						Type:    TypeMissingComment,
						Pattern: p.name,
						Advice:  catalog.CommentAdvice(p.advice, marker),
					})
				}
			case catalog.ActionForbid:
				rep.Findings = append(rep.Findings, Finding{
					File:    in.rel,
					Line:    m.Line,
					Type:    TypeForbidden,
					Pattern: p.name,
					Advice:  p.advice,
				})
			}
		}
	}

	if in.lang != nil {
		for _, p := range in.lang.patterns {
			run(p)
		}
	}
	if in.isSource {
		for _, p := range global {
			run(p)
		}
	}
	return rep
}
