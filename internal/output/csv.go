package output

import (
	"encoding/csv"
	"io"

	"github.com/phyten/hatchgate/internal/escapes"
)

// WriteCSV renders findings as RFC 4180 compliant CSV (including CRLF endings).
func WriteCSV(w io.Writer, findings []escapes.Finding) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(Headers()); err != nil {
		return err
	}
	for _, f := range findings {
		if err := writer.Write(RowValues(f)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
