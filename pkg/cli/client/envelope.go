package client

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Shape is the response layout the server chose for a 2xx body.
type Shape int

const (
	// ShapeRaw is a bare payload with no envelope
	ShapeRaw Shape = iota
	// ShapeInline is {"success": true, <primary>: ..., ...}; the whole body is the payload
	ShapeInline
	// ShapeWrapped is {"success": ..., "data": <payload>}
	ShapeWrapped
)

func (s Shape) String() string {
	switch s {
	case ShapeInline:
		return "inline"
	case ShapeWrapped:
		return "wrapped"
	default:
		return "raw"
	}
}

var errEmptyBody = errors.New("empty response body")

// normalizeEnvelope classifies body and returns the bytes to decode.
// Inline wins when success is true and primaryKey is present and non-null;
// otherwise a non-null data field is unwrapped; otherwise the body is used
// as is. An empty primaryKey disables the inline check.
func normalizeEnvelope(body []byte, primaryKey string) (Shape, json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ShapeRaw, nil, errEmptyBody
	}
	if !json.Valid(trimmed) {
		var v interface{}
		return ShapeRaw, nil, json.Unmarshal(trimmed, &v)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		// arrays and scalars have no envelope
		return ShapeRaw, json.RawMessage(trimmed), nil
	}

	if primaryKey != "" && isTrue(fields["success"]) && present(fields[primaryKey]) {
		return ShapeInline, json.RawMessage(trimmed), nil
	}
	if data, ok := fields["data"]; ok && present(data) {
		return ShapeWrapped, data, nil
	}
	return ShapeRaw, json.RawMessage(trimmed), nil
}

func isTrue(raw json.RawMessage) bool {
	var b bool
	return json.Unmarshal(raw, &b) == nil && b
}

func present(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) > 0 && !bytes.Equal(v, []byte("null"))
}
