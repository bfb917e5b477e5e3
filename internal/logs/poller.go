package logs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cichowlasp/s3-demo/internal/domain"
	"github.com/cichowlasp/s3-demo/internal/queue"
	"github.com/rs/zerolog/log"
)

const (
	noMessageContent = "No message content"
	unknownField     = "unknown"
	excerptLength    = 100
)

// Poller retrieves one batch of queue messages per invocation and turns
// every message into exactly one LogEntry. It is stateless across
// invocations; a mutex keeps polls from overlapping.
type Poller struct {
	receiver    queue.Receiver
	maxMessages int32
	waitSeconds int32

	mu  sync.Mutex
	now func() time.Time
}

// NewPoller creates a Poller. A nil receiver means no queue is configured;
// Poll then returns placeholder guidance entries instead of log data.
func NewPoller(receiver queue.Receiver, maxMessages, waitSeconds int) *Poller {
	if maxMessages <= 0 {
		maxMessages = 10
	}
	if waitSeconds < 0 {
		waitSeconds = 0
	}
	return &Poller{
		receiver:    receiver,
		maxMessages: int32(maxMessages),
		waitSeconds: int32(waitSeconds),
		now:         time.Now,
	}
}

// Poll fetches one batch and normalizes it. Per-message parse failures are
// folded into synthetic ERROR entries; only a transport-level failure is
// returned as an error, and then no entries are emitted at all.
func (p *Poller) Poll(ctx context.Context) ([]domain.LogEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.receiver == nil {
		return p.placeholderEntries(), nil
	}

	messages, err := p.receiver.Receive(ctx, p.maxMessages, p.waitSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(messages))
	for i, msg := range messages {
		entries = append(entries, p.entryFor(msg, i))
	}
	return entries, nil
}

func (p *Poller) entryFor(msg queue.Message, index int) domain.LogEntry {
	id := msg.ID
	if id == "" {
		id = fmt.Sprintf("msg-%d", index)
	}

	rec, err := Unwrap(msg.Body, p.now())
	if err != nil {
		log.Debug().Err(err).Str("messageId", id).Msg("unparseable queue message")
		return p.parseFailureEntry(msg, id)
	}

	return domain.LogEntry{
		ID:             id,
		Timestamp:      rec.Timestamp,
		Level:          Classify(rec.Payload),
		Message:        fallback(stringField(rec.Payload, "message"), rec.RawMessage, noMessageContent),
		LambdaFunction: fallback(stringField(rec.Payload, "lambdaFunction"), stringField(rec.Payload, "function"), unknownField),
		RequestID:      fallback(stringField(rec.Payload, "requestId"), unknownField),
	}
}

// parseFailureEntry substitutes a synthetic ERROR entry for a message whose
// outer body is not valid JSON, carrying a truncated excerpt of the body.
func (p *Poller) parseFailureEntry(msg queue.Message, id string) domain.LogEntry {
	excerpt := "No content"
	if msg.Body != "" {
		body := msg.Body
		if len(body) > excerptLength {
			body = body[:excerptLength]
		}
		excerpt = body + "..."
	}

	return domain.LogEntry{
		ID:             id,
		Timestamp:      p.now().UTC().Format(time.RFC3339),
		Level:          domain.LevelError,
		Message:        "Error parsing message: " + excerpt,
		LambdaFunction: "parser",
		RequestID:      fallback(msg.ID, unknownField),
	}
}

// placeholderEntries describes the missing queue configuration. This is a
// degraded/demo mode, not an error.
func (p *Poller) placeholderEntries() []domain.LogEntry {
	ts := p.now().UTC().Format(time.RFC3339)
	return []domain.LogEntry{
		{
			ID:             "placeholder-1",
			Timestamp:      ts,
			Level:          domain.LevelInfo,
			Message:        "No log queue configured. Set SQS_QUEUE_URL to stream operational logs.",
			LambdaFunction: "system",
			RequestID:      unknownField,
		},
		{
			ID:             "placeholder-2",
			Timestamp:      ts,
			Level:          domain.LevelWarn,
			Message:        "Showing placeholder entries only; no log messages are being received.",
			LambdaFunction: "system",
			RequestID:      unknownField,
		},
	}
}

func stringField(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// fallback returns the first non-empty candidate. The last candidate is the
// documented default and is returned even when empty.
func fallback(candidates ...string) string {
	for _, c := range candidates[:len(candidates)-1] {
		if c != "" {
			return c
		}
	}
	return candidates[len(candidates)-1]
}
