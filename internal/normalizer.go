package internal

const (
	// UnknownSender is shown when a message has no sender
	UnknownSender = "Unknown"
	// UnknownTime is shown when a message has no time or timestamp
	UnknownTime = "--:--"
	// DefaultSafetyScore applies when the backend sends no score; nothing was flagged
	DefaultSafetyScore = 100.0
)

// Normalize maps a classified payload to the canonical view. It never fails:
// missing containers, lists and fields fall back to their documented defaults.
func Normalize(p *Payload) AuditView {
	if p == nil {
		return normalizeEmpty()
	}
	switch p.Kind {
	case PayloadDirect:
		return normalizeDirect(p.Direct)
	case PayloadStored:
		return normalizeStored(p.Stored)
	default:
		return normalizeEmpty()
	}
}

// NormalizeJSON classifies and normalizes a raw body in one step
func NormalizeJSON(data []byte) (AuditView, error) {
	p, err := ParsePayload(data)
	if err != nil {
		return AuditView{}, err
	}
	return Normalize(p), nil
}

func normalizeDirect(d *DirectPayload) AuditView {
	if d == nil {
		return normalizeEmpty()
	}
	return AuditView{
		Summary: normalizeSummary(d.Meta, d.ProcessingTimeSeconds),
		Rows:    normalizeRows(d.Data),
	}
}

func normalizeStored(s *StoredPayload) AuditView {
	if s == nil {
		return normalizeEmpty()
	}
	summary := s.Summary
	if summary == nil {
		summary = s.Meta
	}
	details := s.Details
	if details == nil {
		details = s.Data
	}
	return AuditView{
		Summary: normalizeSummary(summary, s.ProcessingTimeSeconds),
		Rows:    normalizeRows(details),
	}
}

func normalizeEmpty() AuditView {
	return AuditView{
		Summary: AuditSummary{SafetyScore: DefaultSafetyScore},
		Rows:    []MessageRow{},
	}
}

// normalizeSummary resolves each metric in order:
//
//	toxic:   toxic_count, toxic_messages, 0
//	total:   total_messages, 0
//	time:    container processing_time_seconds (non-zero), top-level processing_time_seconds, 0
//	score:   safety_score, 100
//
// Values are passed through as reported, even when toxic exceeds total.
func normalizeSummary(s *RawSummary, topLevelTime *float64) AuditSummary {
	if s == nil {
		s = &RawSummary{}
	}

	out := AuditSummary{SafetyScore: DefaultSafetyScore}

	switch {
	case s.ToxicCount != nil:
		out.ToxicMessages = int(*s.ToxicCount)
	case s.ToxicMessages != nil:
		out.ToxicMessages = int(*s.ToxicMessages)
	}

	if s.TotalMessages != nil {
		out.TotalMessages = int(*s.TotalMessages)
	}

	switch {
	case s.ProcessingTimeSeconds != nil && *s.ProcessingTimeSeconds != 0:
		out.ProcessingTimeSeconds = *s.ProcessingTimeSeconds
	case topLevelTime != nil:
		out.ProcessingTimeSeconds = *topLevelTime
	}

	if s.SafetyScore != nil {
		out.SafetyScore = *s.SafetyScore
	}

	return out
}

// normalizeRows keeps backend order; rows are chronological
func normalizeRows(msgs []RawMessage) []MessageRow {
	rows := make([]MessageRow, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, normalizeMessage(m))
	}
	return rows
}

// normalizeMessage resolves:
//
//	content: content, message, raw_text, ""
//	sender:  sender, "Unknown"
//	time:    time, timestamp, "--:--"
//	toxic:   analysis.is_toxic, false
//
// Empty strings count as absent.
func normalizeMessage(m RawMessage) MessageRow {
	row := MessageRow{
		Content:   firstNonEmpty(m.Content, m.Message, m.RawText),
		Sender:    firstNonEmpty(m.Sender, UnknownSender),
		Timestamp: firstNonEmpty(m.Time, m.Timestamp, UnknownTime),
	}
	if m.Analysis != nil && m.Analysis.IsToxic != nil {
		row.IsToxic = *m.Analysis.IsToxic
	}
	return row
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
