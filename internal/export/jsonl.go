package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chatguard/internal"
)

// JSONLExporter exports one message row per line. Each line carries the
// session id when known so lines from several reports can be concatenated.
type JSONLExporter struct{}

type jsonlRow struct {
	SessionID *int64 `json:"session_id,omitempty"`
	Index     int    `json:"index"`
	internal.MessageRow
}

// Export writes every row of the report. A report without data writes nothing.
func (e *JSONLExporter) Export(report *internal.Report, w io.Writer) error {
	if !report.HasData() {
		return nil
	}
	enc := json.NewEncoder(w)

	for i, row := range report.View.Rows {
		line := jsonlRow{
			SessionID:  report.SessionID,
			Index:      i + 1,
			MessageRow: row,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
