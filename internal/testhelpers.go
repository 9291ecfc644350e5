package internal

import (
	"context"
	"sync"
	"time"
)

// Float returns a pointer to v, for building raw payloads in tests
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v
func Bool(v bool) *bool {
	return &v
}

// CreateTestMessage creates a raw message carrying its text under "content"
func CreateTestMessage(sender, text string, toxic bool) RawMessage {
	return RawMessage{
		Content:  text,
		Sender:   sender,
		Time:     "10:00",
		Analysis: &RawAnalysis{Label: labelFor(toxic), IsToxic: Bool(toxic)},
	}
}

func labelFor(toxic bool) string {
	if toxic {
		return "toxic"
	}
	return "safe"
}

// CreateTestDirectPayload creates a direct-shape payload with two messages,
// one of them toxic
func CreateTestDirectPayload() *Payload {
	return NewDirectPayload(&DirectPayload{
		Meta: &RawSummary{
			TotalMessages: Float(2),
			ToxicCount:    Float(1),
			SafetyScore:   Float(50),
		},
		Data: []RawMessage{
			CreateTestMessage("Andi", "halo semua", false),
			CreateTestMessage("Budi", "dasar bodoh", true),
		},
		ProcessingTimeSeconds: Float(1.5),
	})
}

// CreateTestStoredPayload creates a stored-shape payload equivalent to
// CreateTestDirectPayload
func CreateTestStoredPayload() *Payload {
	return NewStoredPayload(&StoredPayload{
		Summary: &RawSummary{
			TotalMessages:         Float(2),
			ToxicMessages:         Float(1),
			SafetyScore:           Float(50),
			ProcessingTimeSeconds: Float(1.5),
		},
		Details: []RawMessage{
			CreateTestMessage("Andi", "halo semua", false),
			CreateTestMessage("Budi", "dasar bodoh", true),
		},
	})
}

// CreateTestReport creates a report for stored session id
func CreateTestReport(id int64) *Report {
	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	view := Normalize(CreateTestStoredPayload())
	return &Report{
		SessionID: &id,
		Source:    "text",
		CreatedAt: &created,
		View:      &view,
	}
}

// CreateTestReportWithRows creates a report without session metadata
func CreateTestReportWithRows(rows []MessageRow) *Report {
	return &Report{
		View: &AuditView{
			Summary: AuditSummary{TotalMessages: len(rows), SafetyScore: DefaultSafetyScore},
			Rows:    rows,
		},
	}
}

// CreateTestNoDataReport creates a report for stored session id that has no
// analysis result
func CreateTestNoDataReport(id int64) *Report {
	created := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	return &Report{SessionID: &id, Source: "text", CreatedAt: &created}
}

// FakeBackend is an in-memory backend for controller tests. Every method
// records its call and returns the configured result.
type FakeBackend struct {
	mu sync.Mutex

	Payload  *Payload
	Sessions []HistorySessionSummary
	Detail   *HistorySessionDetail
	Err      error
	// DeleteErr is returned by DeleteHistory; Err is not consulted there.
	DeleteErr error

	ImageCalls  int
	TextCalls   int
	ListCalls   int
	DetailCalls int
	DeleteCalls int
	DeletedIDs  []int64
	// Block, when set, is waited on by the submit methods.
	Block chan struct{}
}

func (f *FakeBackend) SubmitImageAudit(ctx context.Context, img ImageUpload) (*Payload, error) {
	f.mu.Lock()
	f.ImageCalls++
	block := f.Block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.Payload, f.Err
}

func (f *FakeBackend) SubmitTextAudit(ctx context.Context, text string) (*Payload, error) {
	f.mu.Lock()
	f.TextCalls++
	block := f.Block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.Payload, f.Err
}

func (f *FakeBackend) ListHistory(ctx context.Context, skip, limit int) ([]HistorySessionSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	return f.Sessions, f.Err
}

func (f *FakeBackend) GetHistoryDetail(ctx context.Context, id int64) (*HistorySessionDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DetailCalls++
	return f.Detail, f.Err
}

func (f *FakeBackend) DeleteHistory(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeleteCalls++
	f.DeletedIDs = append(f.DeletedIDs, id)
	return f.DeleteErr
}

// Calls returns a snapshot of the submit counters
func (f *FakeBackend) Calls() (image, text int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ImageCalls, f.TextCalls
}
