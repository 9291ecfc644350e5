package internal

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNetworkError(t *testing.T) {
	originalErr := context.DeadlineExceeded
	err := &NetworkError{Op: "submit text", Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "network error") || !strings.Contains(errorMsg, "submit text") {
		t.Errorf("NetworkError.Error() = %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("NetworkError.Unwrap() should return original error")
	}
}

func TestHTTPError(t *testing.T) {
	err := &HTTPError{Op: "list history", Status: 502, Body: "bad gateway"}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "502") || !strings.Contains(errorMsg, "bad gateway") {
		t.Errorf("HTTPError.Error() = %q", errorMsg)
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{ID: 42}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("NotFoundError.Error() = %q, want id", err.Error())
	}
}

func TestConnectionError(t *testing.T) {
	inner := &HTTPError{Op: "history detail", Status: 500}
	err := &ConnectionError{Op: "history detail", Err: inner}

	if !strings.Contains(err.Error(), "connection error") {
		t.Errorf("ConnectionError.Error() = %q", err.Error())
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != 500 {
		t.Error("ConnectionError.Unwrap() should expose the HTTPError")
	}
}

func TestParseError(t *testing.T) {
	originalErr := errors.New("invalid JSON")
	err := &ParseError{Source: "history", Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "parse error") || !strings.Contains(errorMsg, "history") {
		t.Errorf("ParseError.Error() = %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("ParseError.Unwrap() should return original error")
	}
}

func TestValidationError(t *testing.T) {
	originalErr := errors.New("too big")
	err := &ValidationError{Field: "size", Key: KeyImageErrSize, Err: originalErr}

	if !strings.Contains(err.Error(), "size") {
		t.Errorf("ValidationError.Error() = %q", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("ValidationError.Unwrap() should return original error")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("disk full")
	err := &ExportError{Format: "md", Path: "/tmp/out.md", Err: originalErr}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "export error") || !strings.Contains(errorMsg, "/tmp/out.md") {
		t.Errorf("ExportError.Error() = %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "direct", err: &NotFoundError{ID: 1}, want: true},
		{name: "wrapped", err: &ConnectionError{Err: &NotFoundError{ID: 1}}, want: true},
		{name: "http 500", err: &HTTPError{Status: 500}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.want {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.want)
			}
		})
	}
}
