package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

var noteBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// EncodeCSV writes "# " prefixed notes followed by the header and data rows.
func EncodeCSV(_ *Input, t Table) ([]byte, error) {
	var buf bytes.Buffer
	for _, line := range t.Notes {
		buf.WriteString("# " + noteBreaks.Replace(line) + "\n")
	}
	if len(t.Notes) > 0 {
		buf.WriteString("\n")
	}

	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(stringRow(row)); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
