package internal

import (
	"testing"
	"time"

	"github.com/iksnae/chatguard/testutil"
)

func TestParseHistoryList(t *testing.T) {
	sessions, err := ParseHistoryList([]byte(testutil.HistoryListJSON))
	if err != nil {
		t.Fatalf("ParseHistoryList() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(sessions))
	}

	first := sessions[0]
	if first.ID != 12 || first.Source != "image" {
		t.Errorf("first = %+v", first)
	}
	if first.TotalMessages != 3 || first.ToxicMessages != 1 || first.SafetyScore != 66.7 {
		t.Errorf("first metrics = %+v", first)
	}
	wantCreated := time.Date(2024, 5, 1, 9, 30, 0, 123456000, time.UTC)
	if !first.CreatedAt.Equal(wantCreated) {
		t.Errorf("CreatedAt = %v, want %v", first.CreatedAt, wantCreated)
	}

	if sessions[1].ID != 11 || sessions[1].Source != "text" {
		t.Errorf("second = %+v", sessions[1])
	}
}

func TestParseHistoryList_Empty(t *testing.T) {
	sessions, err := ParseHistoryList([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseHistoryList() error = %v", err)
	}
	if sessions == nil || len(sessions) != 0 {
		t.Errorf("sessions = %#v, want empty slice", sessions)
	}

	if _, err := ParseHistoryList([]byte(`{"detail": "boom"}`)); err == nil {
		t.Error("ParseHistoryList() should reject a non-array body")
	}
}

func TestParseHistoryDetail(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantID     int64
		wantResult bool
		wantErr    bool
	}{
		{name: "with stored result", body: testutil.HistoryDetailJSON, wantID: 12, wantResult: true},
		{name: "null result", body: testutil.HistoryDetailNoResultJSON, wantID: 13, wantResult: false},
		{name: "missing result", body: `{"id": 14, "source": "text"}`, wantID: 14, wantResult: false},
		{name: "result is not an object", body: `{"id": 15, "audit_result": "oops"}`, wantErr: true},
		{name: "malformed", body: `{"id":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail, err := ParseHistoryDetail([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHistoryDetail() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if detail.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", detail.ID, tt.wantID)
			}
			if (detail.AuditResult != nil) != tt.wantResult {
				t.Errorf("AuditResult present = %v, want %v", detail.AuditResult != nil, tt.wantResult)
			}

			view, ok := detail.AuditView()
			if ok != tt.wantResult {
				t.Errorf("AuditView() ok = %v, want %v", ok, tt.wantResult)
			}
			if ok && len(view.Rows) != 3 {
				t.Errorf("len(Rows) = %d, want 3", len(view.Rows))
			}
		})
	}
}

func TestParseBackendTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2024-05-01T09:30:00Z", want: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{in: "2024-05-01T09:30:00.5", want: time.Date(2024, 5, 1, 9, 30, 0, 500000000, time.UTC)},
		{in: "2024-05-01T09:30:00", want: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{in: "2024-05-01 09:30:00", want: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)},
		{in: "", want: time.Time{}},
		{in: "yesterday", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseBackendTime(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseBackendTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewReportFromDetail(t *testing.T) {
	detail, err := ParseHistoryDetail([]byte(testutil.HistoryDetailJSON))
	if err != nil {
		t.Fatalf("ParseHistoryDetail() error = %v", err)
	}

	report := NewReportFromDetail(detail)
	if report.SessionID == nil || *report.SessionID != 12 {
		t.Errorf("SessionID = %v, want 12", report.SessionID)
	}
	if report.CreatedAt == nil {
		t.Error("CreatedAt should be set")
	}
	if !report.HasData() {
		t.Fatal("report for session 12 should carry data")
	}
	if report.View.Summary.ToxicMessages != 1 {
		t.Errorf("ToxicMessages = %d, want 1", report.View.Summary.ToxicMessages)
	}

	empty := NewReportFromDetail(&HistorySessionDetail{ID: 3})
	if empty.CreatedAt != nil {
		t.Error("zero CreatedAt should be omitted")
	}
	if empty.HasData() {
		t.Errorf("report without data should have a nil view, got %+v", empty.View)
	}

	nullResult, err := ParseHistoryDetail([]byte(testutil.HistoryDetailNoResultJSON))
	if err != nil {
		t.Fatalf("ParseHistoryDetail() error = %v", err)
	}
	if NewReportFromDetail(nullResult).HasData() {
		t.Error("null audit_result should produce a report without data")
	}
}
