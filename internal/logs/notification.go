package logs

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the outer notification wrapper carried in a queue message
// body. Its Message field holds a further JSON-encoded string: the actual
// application payload.
type Envelope struct {
	Type      string `json:"Type,omitempty"`
	Message   string `json:"Message"`
	Timestamp string `json:"Timestamp,omitempty"`
}

// Record is the flattened result of unwrapping one queue message body.
// Payload is empty (never nil) when the inner message is not valid JSON;
// RawMessage keeps the inner string for fallback use.
type Record struct {
	Payload    map[string]any
	RawMessage string
	Timestamp  string
}

// Unwrap parses the double-encoded notification body. A malformed outer
// body is an error; a malformed inner payload degrades to an empty Payload
// so the envelope fields stay usable.
func Unwrap(body string, now time.Time) (Record, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return Record{}, fmt.Errorf("failed to parse envelope: %w", err)
	}

	rec := Record{
		RawMessage: env.Message,
		Timestamp:  env.Timestamp,
		Payload:    map[string]any{},
	}
	if rec.Timestamp == "" {
		rec.Timestamp = now.UTC().Format(time.RFC3339)
	}

	if env.Message != "" {
		// Inner payloads are not always JSON; keep the raw string around
		// and carry on with an empty payload when this fails.
		payload := map[string]any{}
		if err := json.Unmarshal([]byte(env.Message), &payload); err == nil {
			rec.Payload = payload
		}
	}

	return rec, nil
}

// Encode builds the double-encoded notification body the queue delivers,
// mirroring what the notification service produces. The seed tool uses it
// to publish sample entries.
func Encode(payload map[string]any, ts time.Time) (string, error) {
	inner, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	body, err := json.Marshal(Envelope{
		Type:      "Notification",
		Message:   string(inner),
		Timestamp: ts.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode envelope: %w", err)
	}
	return string(body), nil
}
