package internal

import (
	"errors"
	"fmt"
)

// ErrSubmissionInFlight is returned when a controller is asked to submit while
// its previous submission is still loading.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// NetworkError represents a request that never got a response from the backend
// (dial failure, reset connection, timeout)
type NetworkError struct {
	Op  string // "submit image", "list history", ...
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error [%s]: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError represents a non-2xx answer from the backend
type HTTPError struct {
	Op     string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error [%s] status %d: %s", e.Op, e.Status, e.Body)
}

// NotFoundError is returned by GetHistoryDetail when the backend reports 404
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("history session %d not found", e.ID)
}

// ConnectionError wraps any history failure that has no more specific mapping
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error [%s]: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding a backend body
type ParseError struct {
	Source string // "audit", "history", "history detail"
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s]: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a local input rejection that never reaches the network
type ValidationError struct {
	Field string // "type", "size"
	Key   string // translation key for the user-facing message
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error [%s]: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
