package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/phyten/hatchgate/internal/escapes"
	"github.com/phyten/hatchgate/internal/metrics"
)

// WriteMarkdownTable renders findings as a GitHub Flavored Markdown table.
func WriteMarkdownTable(w io.Writer, findings []escapes.Finding) error {
	headers := Titles()
	if err := writeRow(w, headers); err != nil {
		return err
	}
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	if err := writeRow(w, sep); err != nil {
		return err
	}
	for _, f := range findings {
		row := RowValues(f)
		for i := range row {
			row[i] = escapeMarkdownCell(row[i])
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteMarkdownReport renders a summary, the findings table and the metrics
// table. Suitable for CI job summaries.
func WriteMarkdownReport(w io.Writer, res *escapes.Result) error {
	status := "passed"
	if !res.Passed() {
		status = "failed"
	}
	if _, err := fmt.Fprintf(w, "## hatchgate: %s\n\n%s\n\n", status, summaryLine(res)); err != nil {
		return err
	}
	if len(res.Findings) > 0 {
		if _, err := io.WriteString(w, "### Findings\n\n"); err != nil {
			return err
		}
		if err := WriteMarkdownTable(w, res.Findings); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	names := MetricNames(res.Metrics)
	if len(names) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, "### Metrics\n\n"); err != nil {
		return err
	}
	if err := writeRow(w, []string{"Pattern", "Source", "Test", "Threshold"}); err != nil {
		return err
	}
	if err := writeRow(w, []string{"---", "---:", "---:", "---:"}); err != nil {
		return err
	}
	for _, name := range names {
		th := ""
		if v, ok := res.Thresholds[name]; ok {
			th = strconv.Itoa(v)
		}
		row := []string{
			escapeMarkdownCell(name),
			strconv.Itoa(res.Metrics.Source[name]),
			strconv.Itoa(res.Metrics.Test[name]),
			th,
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

// MetricNames returns every counted pattern name in sorted order.
func MetricNames(m metrics.Scoped) []string {
	seen := make(map[string]struct{}, len(m.Source)+len(m.Test))
	for k := range m.Source {
		seen[k] = struct{}{}
	}
	for k := range m.Test {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func writeRow(w io.Writer, cells []string) error {
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	return err
}

func escapeMarkdownCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = strings.ReplaceAll(s, "|", "\\|")
	return s
}
