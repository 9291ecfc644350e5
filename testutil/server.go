package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// RecordedRequest is what BackendServer saw for one call
type RecordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        []byte
	FormFile    string // filename of the "file" multipart field, if any
	FormFileLen int
}

type cannedResponse struct {
	status int
	body   string
}

// BackendServer is an httptest server answering canned responses per route.
// Unregistered routes answer 404.
type BackendServer struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	requests  []RecordedRequest
}

// NewBackendServer starts a server closed when the test ends
func NewBackendServer(t *testing.T) *BackendServer {
	t.Helper()
	b := &BackendServer{responses: make(map[string]cannedResponse)}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// Handle registers the response for method and path (query excluded)
func (b *BackendServer) Handle(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[method+" "+path] = cannedResponse{status: status, body: body}
}

// Requests returns every request received so far
func (b *BackendServer) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]RecordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *BackendServer) serve(w http.ResponseWriter, r *http.Request) {
	rec := RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	}

	if file, header, err := r.FormFile("file"); err == nil {
		data, _ := io.ReadAll(file)
		_ = file.Close()
		rec.FormFile = header.Filename
		rec.FormFileLen = len(data)
	} else {
		rec.Body, _ = io.ReadAll(r.Body)
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	resp, ok := b.responses[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not Found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}
