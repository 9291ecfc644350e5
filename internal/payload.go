package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// PayloadKind tags which backend shape a payload was classified as
type PayloadKind int

const (
	PayloadUnknown PayloadKind = iota
	PayloadDirect
	PayloadStored
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadDirect:
		return "direct"
	case PayloadStored:
		return "stored"
	default:
		return "unknown"
	}
}

// Payload is a classified, not yet normalized, backend result. Exactly one
// of Direct and Stored is set unless Kind is PayloadUnknown.
type Payload struct {
	Kind   PayloadKind
	Direct *DirectPayload
	Stored *StoredPayload
}

// NewDirectPayload wraps a direct-shape result
func NewDirectPayload(d *DirectPayload) *Payload {
	return &Payload{Kind: PayloadDirect, Direct: d}
}

// NewStoredPayload wraps a stored-shape result
func NewStoredPayload(s *StoredPayload) *Payload {
	return &Payload{Kind: PayloadStored, Stored: s}
}

// SessionID returns the id the backend assigned to a fresh submission, if any
func (p *Payload) SessionID() *int64 {
	if p == nil || p.Kind != PayloadDirect || p.Direct == nil || p.Direct.Meta == nil {
		return nil
	}
	return p.Direct.Meta.SessionID
}

// MarshalJSON emits the payload in its original shape
func (p *Payload) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PayloadDirect:
		return json.Marshal(p.Direct)
	case PayloadStored:
		return json.Marshal(p.Stored)
	default:
		return []byte("{}"), nil
	}
}

// ParsePayload classifies a raw backend object. A non-null "summary" or
// "details" key marks the stored shape; otherwise a non-null "meta" or "data"
// key marks the direct shape; anything else is PayloadUnknown. A stored
// payload still carries "meta" and "data" for whichever of its own
// containers is missing.
func ParsePayload(data []byte) (*Payload, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	if probe == nil {
		return nil, errors.New("payload is null")
	}

	switch {
	case isPresent(probe["summary"]) || isPresent(probe["details"]):
		var stored StoredPayload
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode stored payload: %w", err)
		}
		return NewStoredPayload(&stored), nil
	case isPresent(probe["meta"]) || isPresent(probe["data"]):
		var direct DirectPayload
		if err := json.Unmarshal(data, &direct); err != nil {
			return nil, fmt.Errorf("failed to decode direct payload: %w", err)
		}
		return NewDirectPayload(&direct), nil
	default:
		LogDebug("payload has neither summary/details nor meta/data keys")
		return &Payload{Kind: PayloadUnknown}, nil
	}
}

func isPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
