package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iksnae/chatguard/testutil"
)

func newTestClient(url string) *Client {
	return NewClient(Options{BaseURL: url})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Options{})
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if c.opts.ImageTimeout != DefaultImageTimeout || c.opts.TextTimeout != DefaultTextTimeout || c.opts.DefaultTimeout != DefaultTimeout {
		t.Errorf("timeouts = %+v", c.opts)
	}

	trimmed := NewClient(Options{BaseURL: "http://backend:8000/"})
	if trimmed.BaseURL() != "http://backend:8000" {
		t.Errorf("BaseURL() = %q, want trailing slash trimmed", trimmed.BaseURL())
	}
}

func TestClient_SubmitImageAudit(t *testing.T) {
	srv := testutil.NewBackendServer(t)
	srv.Handle(http.MethodPost, "/api/audit/upload", http.StatusOK, testutil.DirectPayloadJSON)

	img := ImageUpload{
		Name:     "chat.png",
		MimeType: "image/png",
		Size:     int64(len(testutil.PNGHeader)),
		Data:     bytes.NewReader(testutil.PNGHeader),
	}
	p, err := newTestClient(srv.URL).SubmitImageAudit(context.Background(), img)
	if err != nil {
		t.Fatalf("SubmitImageAudit() error = %v", err)
	}
	if p.Kind != PayloadDirect {
		t.Errorf("Kind = %v, want direct", p.Kind)
	}

	reqs := srv.Requests()
	if len(reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs))
	}
	if reqs[0].FormFile != "chat.png" || reqs[0].FormFileLen != len(testutil.PNGHeader) {
		t.Errorf("multipart file = %q (%d bytes)", reqs[0].FormFile, reqs[0].FormFileLen)
	}
	if reqs[0].Header.Get("X-Request-ID") == "" {
		t.Error("request should carry X-Request-ID")
	}
}

func TestClient_SubmitTextAudit(t *testing.T) {
	srv := testutil.NewBackendServer(t)
	srv.Handle(http.MethodPost, "/api/audit/text", http.StatusOK, testutil.DirectPayloadJSON)

	p, err := newTestClient(srv.URL).SubmitTextAudit(context.Background(), "Andi: halo")
	if err != nil {
		t.Fatalf("SubmitTextAudit() error = %v", err)
	}
	if view := Normalize(p); view.Summary.TotalMessages != 3 {
		t.Errorf("TotalMessages = %d, want 3", view.Summary.TotalMessages)
	}

	var body map[string]string
	if err := json.Unmarshal(srv.Requests()[0].Body, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body["text"] != "Andi: halo" {
		t.Errorf("text = %q", body["text"])
	}
}

func TestClient_SubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		errType string
	}{
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"detail":"model crashed"}`,
			check:   func(err error) bool { var e *HTTPError; return errors.As(err, &e) && e.Status == 500 },
			errType: "*HTTPError 500",
		},
		{
			name:    "unprocessable",
			status:  http.StatusUnprocessableEntity,
			body:    `{"detail":"bad"}`,
			check:   func(err error) bool { var e *HTTPError; return errors.As(err, &e) && e.Status == 422 },
			errType: "*HTTPError 422",
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>`,
			check:   func(err error) bool { var e *ParseError; return errors.As(err, &e) },
			errType: "*ParseError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewBackendServer(t)
			srv.Handle(http.MethodPost, "/api/audit/text", tt.status, tt.body)

			_, err := newTestClient(srv.URL).SubmitTextAudit(context.Background(), "hi")
			if err == nil || !tt.check(err) {
				t.Errorf("error = %v, want %s", err, tt.errType)
			}
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(url)
	_, err := c.SubmitTextAudit(context.Background(), "hi")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Errorf("SubmitTextAudit() error = %v, want *NetworkError", err)
	}

	if c.CheckHealth(context.Background()) {
		t.Error("CheckHealth() = true for a closed server")
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Options{BaseURL: srv.URL, TextTimeout: 50 * time.Millisecond})
	start := time.Now()
	_, err := c.SubmitTextAudit(context.Background(), "hi")

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want wrapped deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestClient_ListHistory(t *testing.T) {
	srv := testutil.NewBackendServer(t)
	srv.Handle(http.MethodGet, "/api/history", http.StatusOK, testutil.HistoryListJSON)

	tests := []struct {
		name      string
		skip      int
		limit     int
		wantSkip  string
		wantLimit string
	}{
		{name: "explicit page", skip: 20, limit: 10, wantSkip: "20", wantLimit: "10"},
		{name: "defaults", skip: -1, limit: 0, wantSkip: "0", wantLimit: "20"},
	}

	c := newTestClient(srv.URL)
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := c.ListHistory(context.Background(), tt.skip, tt.limit)
			if err != nil {
				t.Fatalf("ListHistory() error = %v", err)
			}
			if len(sessions) != 2 {
				t.Errorf("len(sessions) = %d, want 2", len(sessions))
			}
			q := srv.Requests()[i].Query
			if q.Get("skip") != tt.wantSkip || q.Get("limit") != tt.wantLimit {
				t.Errorf("query = %v, want skip=%s limit=%s", q, tt.wantSkip, tt.wantLimit)
			}
		})
	}
}

func TestClient_GetHistoryDetail(t *testing.T) {
	srv := testutil.NewBackendServer(t)
	srv.Handle(http.MethodGet, "/api/history/12", http.StatusOK, testutil.HistoryDetailJSON)
	srv.Handle(http.MethodGet, "/api/history/13", http.StatusOK, testutil.HistoryDetailNoResultJSON)
	srv.Handle(http.MethodGet, "/api/history/50", http.StatusInternalServerError, `{}`)
	c := newTestClient(srv.URL)

	detail, err := c.GetHistoryDetail(context.Background(), 12)
	if err != nil {
		t.Fatalf("GetHistoryDetail(12) error = %v", err)
	}
	if detail.AuditResult == nil || detail.AuditResult.Kind != PayloadStored {
		t.Errorf("AuditResult = %+v, want stored payload", detail.AuditResult)
	}

	noData, err := c.GetHistoryDetail(context.Background(), 13)
	if err != nil {
		t.Fatalf("GetHistoryDetail(13) error = %v", err)
	}
	if noData.AuditResult != nil {
		t.Error("null audit_result should decode to nil")
	}

	_, err = c.GetHistoryDetail(context.Background(), 99)
	if !IsNotFound(err) {
		t.Errorf("GetHistoryDetail(99) error = %v, want NotFoundError", err)
	}

	_, err = c.GetHistoryDetail(context.Background(), 50)
	var connErr *ConnectionError
	if !errors.As(err, &connErr) || IsNotFound(err) {
		t.Errorf("GetHistoryDetail(50) error = %v, want ConnectionError", err)
	}
}

func TestClient_DeleteHistory(t *testing.T) {
	srv := testutil.NewBackendServer(t)
	srv.Handle(http.MethodDelete, "/api/history/12", http.StatusOK, `{"message":"deleted"}`)
	c := newTestClient(srv.URL)

	if err := c.DeleteHistory(context.Background(), 12); err != nil {
		t.Errorf("DeleteHistory(12) error = %v", err)
	}

	err := c.DeleteHistory(context.Background(), 77)
	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Errorf("DeleteHistory(77) error = %v, want ConnectionError", err)
	}
}

func TestClient_CheckHealth(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "ok", status: http.StatusOK, want: true},
		{name: "no content is not healthy", status: http.StatusNoContent, want: false},
		{name: "unavailable", status: http.StatusServiceUnavailable, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewBackendServer(t)
			srv.Handle(http.MethodGet, "/api/health", tt.status, `{"status":"ok"}`)

			if got := newTestClient(srv.URL).CheckHealth(context.Background()); got != tt.want {
				t.Errorf("CheckHealth() = %v, want %v", got, tt.want)
			}
		})
	}
}
