package output

import (
	"encoding/json"
	"io"

	"github.com/phyten/hatchgate/internal/escapes"
)

// WriteNDJSON streams findings as newline-delimited JSON objects.
func WriteNDJSON(w io.Writer, findings []escapes.Finding) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, f := range findings {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the whole result as one indented document.
func WriteJSON(w io.Writer, res *escapes.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	out := *res
	if out.Findings == nil {
		out.Findings = []escapes.Finding{}
	}
	return enc.Encode(&out)
}
