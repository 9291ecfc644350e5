package testutil

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// DirectPayloadJSON is a synchronous audit response: metrics under "meta",
// rows under "data", processing time at the top level
const DirectPayloadJSON = `{
  "meta": {"total_messages": 3, "toxic_count": 1, "safety_score": 66.7, "session_id": 12},
  "data": [
    {"sender": "Andi", "time": "19:02", "content": "halo semua", "analysis": {"label": "safe", "score": 0.98, "is_toxic": false}},
    {"sender": "Budi", "time": "19:03", "content": "dasar bodoh", "analysis": {"label": "toxic", "score": 0.91, "is_toxic": true}},
    {"sender": "Andi", "time": "19:04", "content": "santai aja", "analysis": {"label": "safe", "score": 0.95, "is_toxic": false}}
  ],
  "processing_time_seconds": 2.4
}`

// StoredPayloadJSON is the audit_result of a stored session: metrics under
// "summary", rows under "details"
const StoredPayloadJSON = `{
  "summary": {"total_messages": 3, "toxic_messages": 1, "safety_score": 66.7, "processing_time_seconds": 2.4},
  "details": [
    {"sender": "Andi", "timestamp": "19:02", "message": "halo semua", "analysis": {"is_toxic": false}},
    {"sender": "Budi", "timestamp": "19:03", "raw_text": "dasar bodoh", "analysis": {"is_toxic": true}},
    {"sender": "Andi", "timestamp": "19:04", "content": "santai aja", "analysis": {"is_toxic": false}}
  ]
}`

// HistoryListJSON is a two-session history page
const HistoryListJSON = `[
  {"id": 12, "source": "image", "created_at": "2024-05-01T09:30:00.123456", "total_messages": 3, "toxic_messages": 1, "safety_score": 66.7, "processing_time_seconds": 2.4},
  {"id": 11, "source": "text", "created_at": "2024-04-30T18:00:00", "total_messages": 5, "toxic_messages": 0, "safety_score": 100, "processing_time_seconds": 0.8}
]`

// HistoryDetailJSON wraps StoredPayloadJSON as session 12
const HistoryDetailJSON = `{"id": 12, "source": "image", "created_at": "2024-05-01T09:30:00", "audit_result": ` + StoredPayloadJSON + `}`

// HistoryDetailNoResultJSON is a stored session without analysis data
const HistoryDetailNoResultJSON = `{"id": 13, "source": "text", "created_at": "2024-05-02T10:00:00", "audit_result": null}`

// PNGHeader is enough of a PNG file for content sniffing
var PNGHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// CreateImageFixture writes a PNG-looking file padded to size bytes
func CreateImageFixture(t *testing.T, dir, name string, size int) string {
	t.Helper()
	data := make([]byte, 0, size)
	data = append(data, PNGHeader...)
	if size > len(data) {
		data = append(data, bytes.Repeat([]byte{0}, size-len(data))...)
	}
	return WriteFile(t, dir, name, data)
}

// CreatePreferencesFixture creates a preferences database at dbPath holding
// the given key/value pairs
func CreatePreferencesFixture(t *testing.T, dbPath string, values map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(createPreferencesTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	for k, v := range values {
		if _, err := db.Exec("INSERT INTO preferences (key, value) VALUES (?, ?)", k, v); err != nil {
			t.Fatalf("Failed to insert %s: %v", k, err)
		}
	}
}
