package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phyten/hatchgate/internal/escapes"
	"github.com/phyten/hatchgate/internal/termcolor"
	"github.com/phyten/hatchgate/internal/textutil"
)

// DefaultWidth is used when the terminal width is unknown.
const DefaultWidth = 100

const (
	adviceIndent    = "    "
	maxPatternWidth = 60
)

// TextOptions は人間向け出力の設定です。
type TextOptions struct {
	Color termcolor.Settings
	Width int
	// Quiet suppresses the metrics table.
	Quiet bool
}

// WriteText renders findings, metrics and a summary for terminals.
func WriteText(w io.Writer, res *escapes.Result, opts TextOptions) error {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	c := opts.Color
	paint := func(s termcolor.Style, text string) string {
		return s.Paint(text, c.Enabled)
	}

	var b strings.Builder
	for _, f := range res.Findings {
		loc := f.File
		if loc == "" {
			loc = "(repository)"
		} else if f.Line > 0 {
			loc += ":" + strconv.Itoa(f.Line)
		}
		b.WriteString(paint(termcolor.LocationStyle(), loc))
		b.WriteString("  ")
		b.WriteString(paint(termcolor.TypeStyle(f.Type, c.Scheme, c.Profile), f.Type))
		b.WriteString("  ")
		b.WriteString(textutil.TruncateByWidth(f.Pattern, maxPatternWidth, "…"))
		if f.Type == escapes.TypeThresholdExceeded {
			fmt.Fprintf(&b, "  %d > %d", f.Value, f.Threshold)
		}
		b.WriteString("\n")
		for _, line := range textutil.WrapByWidth(f.Advice, width-len(adviceIndent)) {
			b.WriteString(adviceIndent)
			b.WriteString(paint(termcolor.AdviceStyle(c.Scheme), line))
			b.WriteString("\n")
		}
	}

	if names := MetricNames(res.Metrics); len(names) > 0 && !opts.Quiet {
		if len(res.Findings) > 0 {
			b.WriteString("\n")
		}
		nameW := len("pattern")
		for _, n := range names {
			if vw := textutil.VisibleWidth(n); vw > nameW {
				nameW = vw
			}
		}
		header := textutil.PadRight("pattern", nameW) + "  " +
			textutil.PadLeft("source", 7) + "  " +
			textutil.PadLeft("test", 7) + "  " +
			textutil.PadLeft("limit", 7)
		b.WriteString(paint(termcolor.HeaderStyle(), header))
		b.WriteString("\n")
		for _, n := range names {
			src := res.Metrics.Source[n]
			th, ok := res.Thresholds[n]
			limit := "-"
			if ok {
				limit = strconv.Itoa(th)
			} else {
				th = -1
			}
			b.WriteString(textutil.PadRight(n, nameW))
			b.WriteString("  ")
			b.WriteString(paint(termcolor.CountStyle(src, th, c.Profile), textutil.PadLeft(strconv.Itoa(src), 7)))
			b.WriteString("  ")
			b.WriteString(textutil.PadLeft(strconv.Itoa(res.Metrics.Test[n]), 7))
			b.WriteString("  ")
			b.WriteString(textutil.PadLeft(limit, 7))
			b.WriteString("\n")
		}
	}

	for _, warn := range res.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", warn)
	}
	for _, e := range res.Errors {
		fmt.Fprintf(&b, "error: %s (%s): %s\n", e.File, e.Stage, e.Message)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(summaryLine(res))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func summaryLine(res *escapes.Result) string {
	var s string
	switch {
	case res.Truncated:
		s = fmt.Sprintf("showing %d of %d findings in %s", len(res.Findings), res.Total, plural(res.Files, "file"))
	case len(res.Findings) == 0:
		s = fmt.Sprintf("no findings in %s", plural(res.Files, "file"))
	default:
		s = fmt.Sprintf("%s in %s", plural(len(res.Findings), "finding"), plural(res.Files, "file"))
	}
	if res.ErrorCount > 0 {
		s += fmt.Sprintf(", %s", plural(res.ErrorCount, "error"))
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
