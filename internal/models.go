package internal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RawSummary is the metrics container of both payload shapes: "meta" in the
// direct shape, "summary" in the stored shape. Numbers are decoded as float64
// because the backend is not strict about integer encoding.
type RawSummary struct {
	TotalMessages         *float64 `json:"total_messages,omitempty"`
	ToxicCount            *float64 `json:"toxic_count,omitempty"`
	ToxicMessages         *float64 `json:"toxic_messages,omitempty"`
	SafetyScore           *float64 `json:"safety_score,omitempty"`
	ProcessingTimeSeconds *float64 `json:"processing_time_seconds,omitempty"`
	SessionID             *int64   `json:"session_id,omitempty"`
}

// RawAnalysis is the per-message verdict
type RawAnalysis struct {
	Label   string  `json:"label,omitempty"`
	Score   float64 `json:"score,omitempty"`
	IsToxic *bool   `json:"is_toxic,omitempty"`
}

// RawMessage is one message object as sent by the backend. Content may sit
// under content, message or raw_text depending on where it came from.
type RawMessage struct {
	ID             *int64       `json:"id,omitempty"`
	Content        string       `json:"content,omitempty"`
	Message        string       `json:"message,omitempty"`
	RawText        string       `json:"raw_text,omitempty"`
	NormalizedText string       `json:"normalized_text,omitempty"`
	Sender         string       `json:"sender,omitempty"`
	Time           string       `json:"time,omitempty"`
	Timestamp      string       `json:"timestamp,omitempty"`
	Analysis       *RawAnalysis `json:"analysis,omitempty"`
}

// DirectPayload is returned by the synchronous audit endpoints
type DirectPayload struct {
	Meta                  *RawSummary  `json:"meta,omitempty"`
	Data                  []RawMessage `json:"data,omitempty"`
	ProcessingTimeSeconds *float64     `json:"processing_time_seconds,omitempty"`
}

// StoredPayload is returned for a previously persisted session. Meta and Data
// are only read when Summary or Details is missing.
type StoredPayload struct {
	Summary               *RawSummary  `json:"summary,omitempty"`
	Details               []RawMessage `json:"details,omitempty"`
	Meta                  *RawSummary  `json:"meta,omitempty"`
	Data                  []RawMessage `json:"data,omitempty"`
	ProcessingTimeSeconds *float64     `json:"processing_time_seconds,omitempty"`
}

// rawHistorySession mirrors a history list row before timestamp parsing
type rawHistorySession struct {
	ID                    int64   `json:"id"`
	Source                string  `json:"source"`
	CreatedAt             string  `json:"created_at"`
	TotalMessages         int     `json:"total_messages"`
	ToxicMessages         int     `json:"toxic_messages"`
	SafetyScore           float64 `json:"safety_score"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
}

type rawHistoryDetail struct {
	ID          int64           `json:"id"`
	Source      string          `json:"source"`
	CreatedAt   string          `json:"created_at"`
	AuditResult json.RawMessage `json:"audit_result"`
}

// ParseHistoryList decodes the body of GET /api/history
func ParseHistoryList(data []byte) ([]HistorySessionSummary, error) {
	var raw []rawHistorySession
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse history list: %w", err)
	}

	sessions := make([]HistorySessionSummary, 0, len(raw))
	for _, r := range raw {
		sessions = append(sessions, HistorySessionSummary{
			ID:                    r.ID,
			Source:                r.Source,
			CreatedAt:             parseBackendTime(r.CreatedAt),
			TotalMessages:         r.TotalMessages,
			ToxicMessages:         r.ToxicMessages,
			SafetyScore:           r.SafetyScore,
			ProcessingTimeSeconds: r.ProcessingTimeSeconds,
		})
	}
	return sessions, nil
}

// ParseHistoryDetail decodes the body of GET /api/history/{id}. A missing or
// null audit_result yields a detail without analysis data.
func ParseHistoryDetail(data []byte) (*HistorySessionDetail, error) {
	var raw rawHistoryDetail
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse history detail: %w", err)
	}

	detail := &HistorySessionDetail{
		ID:        raw.ID,
		Source:    raw.Source,
		CreatedAt: parseBackendTime(raw.CreatedAt),
	}
	if isPresent(raw.AuditResult) {
		payload, err := ParsePayload(raw.AuditResult)
		if err != nil {
			return nil, fmt.Errorf("failed to parse audit_result: %w", err)
		}
		detail.AuditResult = payload
	}
	return detail, nil
}

// backendTimeLayouts lists the timestamp encodings seen from the backend.
// Stored sessions carry naive datetimes without a zone.
var backendTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// parseBackendTime returns the zero time when s matches no known layout
func parseBackendTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range backendTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	LogDebug("unrecognized timestamp %q", s)
	return time.Time{}
}
