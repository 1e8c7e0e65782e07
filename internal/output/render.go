package output

import (
	"fmt"
	"io"

	"github.com/phyten/hatchgate/internal/escapes"
)

// Render writes res in the given normalized format.
func Render(w io.Writer, format string, res *escapes.Result, opts TextOptions) error {
	switch format {
	case "", "text":
		return WriteText(w, res, opts)
	case "json":
		return WriteJSON(w, res)
	case "ndjson":
		return WriteNDJSON(w, res.Findings)
	case "markdown":
		return WriteMarkdownReport(w, res)
	case "csv":
		return WriteCSV(w, res.Findings)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
