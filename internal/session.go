package internal

import "time"

// AuditSummary holds the aggregate metrics of one analysis run
type AuditSummary struct {
	TotalMessages         int     `json:"total_messages" yaml:"total_messages"`
	ToxicMessages         int     `json:"toxic_messages" yaml:"toxic_messages"`
	SafetyScore           float64 `json:"safety_score" yaml:"safety_score"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds" yaml:"processing_time_seconds"`
}

// MessageRow is one chat line and its verdict
type MessageRow struct {
	Sender    string `json:"sender" yaml:"sender"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Content   string `json:"content" yaml:"content"`
	IsToxic   bool   `json:"is_toxic" yaml:"is_toxic"`
}

// AuditView is the canonical result consumed by renderers and exporters.
// len(Rows) and Summary.TotalMessages are not reconciled.
type AuditView struct {
	Summary AuditSummary `json:"summary" yaml:"summary"`
	Rows    []MessageRow `json:"rows" yaml:"rows"`
}

// IsOverallToxic classifies the whole run for display
func (v AuditView) IsOverallToxic() bool {
	return v.Summary.ToxicMessages > 0 || v.Summary.SafetyScore < 50
}

// HistorySessionSummary is one row of the history list
type HistorySessionSummary struct {
	ID                    int64     `json:"id"`
	Source                string    `json:"source"` // "image" or "text"
	CreatedAt             time.Time `json:"created_at"`
	TotalMessages         int       `json:"total_messages"`
	ToxicMessages         int       `json:"toxic_messages"`
	SafetyScore           float64   `json:"safety_score"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds"`
}

// HistorySessionDetail is a stored session. AuditResult is nil when the
// backend has no analysis data for it.
type HistorySessionDetail struct {
	ID          int64
	Source      string
	CreatedAt   time.Time
	AuditResult *Payload
}

// AuditView normalizes the stored result. The boolean is false when the
// session carries no analysis data.
func (d *HistorySessionDetail) AuditView() (AuditView, bool) {
	if d == nil || d.AuditResult == nil {
		return AuditView{}, false
	}
	return Normalize(d.AuditResult), true
}

// Report is the export unit: a normalized view plus whatever session
// metadata is known. View is nil for a stored session without analysis data.
type Report struct {
	SessionID *int64     `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Source    string     `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	View      *AuditView `json:"result" yaml:"result"`
}

// HasData reports whether the report carries an analysis result
func (r *Report) HasData() bool {
	return r != nil && r.View != nil
}

// NewReportFromDetail builds a report for a stored session
func NewReportFromDetail(d *HistorySessionDetail) *Report {
	id := d.ID
	created := d.CreatedAt
	r := &Report{SessionID: &id, Source: d.Source}
	if view, ok := d.AuditView(); ok {
		r.View = &view
	}
	if !created.IsZero() {
		r.CreatedAt = &created
	}
	return r
}

// NewReportFromPayload builds a report for a fresh submission
func NewReportFromPayload(p *Payload, source string) *Report {
	view := Normalize(p)
	return &Report{
		SessionID: p.SessionID(),
		Source:    source,
		View:      &view,
	}
}
