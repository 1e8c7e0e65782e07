package output

import (
	"strconv"

	"github.com/phyten/hatchgate/internal/escapes"
)

// Column は表形式出力の 1 列です。
type Column struct {
	Key   string
	Title string
	value func(escapes.Finding) string
}

// Columns is the fixed column order shared by CSV and Markdown output.
var Columns = []Column{
	{Key: "file", Title: "File", value: func(f escapes.Finding) string { return f.File }},
	{Key: "line", Title: "Line", value: func(f escapes.Finding) string { return positive(f.Line) }},
	{Key: "type", Title: "Type", value: func(f escapes.Finding) string { return f.Type }},
	{Key: "pattern", Title: "Pattern", value: func(f escapes.Finding) string { return f.Pattern }},
	{Key: "value", Title: "Value", value: func(f escapes.Finding) string { return thresholdOnly(f, f.Value) }},
	{Key: "threshold", Title: "Threshold", value: func(f escapes.Finding) string { return thresholdOnly(f, f.Threshold) }},
	{Key: "advice", Title: "Advice", value: func(f escapes.Finding) string { return f.Advice }},
}

// Headers returns the CSV header keys.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Key
	}
	return out
}

// Titles returns the human readable headers used by Markdown.
func Titles() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Title
	}
	return out
}

// RowValues renders one finding in column order.
func RowValues(f escapes.Finding) []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.value(f)
	}
	return out
}

func positive(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func thresholdOnly(f escapes.Finding, n int) string {
	if f.Type != escapes.TypeThresholdExceeded {
		return ""
	}
	return strconv.Itoa(n)
}
