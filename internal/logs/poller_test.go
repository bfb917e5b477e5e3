package logs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cichowlasp/s3-demo/internal/domain"
	"github.com/cichowlasp/s3-demo/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReceiver struct {
	messages []queue.Message
	err      error

	gotMax  int32
	gotWait int32
}

func (f *fakeReceiver) Receive(_ context.Context, maxMessages, waitSeconds int32) ([]queue.Message, error) {
	f.gotMax = maxMessages
	f.gotWait = waitSeconds
	return f.messages, f.err
}

func newTestPoller(r queue.Receiver) *Poller {
	p := NewPoller(r, 10, 2)
	p.now = func() time.Time { return fixedNow }
	return p
}

func TestPollNoQueueConfigured(t *testing.T) {
	p := newTestPoller(nil)

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, domain.LevelInfo, entries[0].Level)
	assert.Equal(t, domain.LevelWarn, entries[1].Level)
}

func TestPollEmptyBatch(t *testing.T) {
	p := newTestPoller(&fakeReceiver{})

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestPollTransportFailure(t *testing.T) {
	p := newTestPoller(&fakeReceiver{err: errors.New("connection refused")})

	entries, err := p.Poll(context.Background())
	assert.Error(t, err)
	assert.Nil(t, entries)
}

func TestPollBatchParameters(t *testing.T) {
	r := &fakeReceiver{}
	p := newTestPoller(r)

	_, err := p.Poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(10), r.gotMax)
	assert.Equal(t, int32(2), r.gotWait)
}

func TestPollNormalizesEveryMessage(t *testing.T) {
	r := &fakeReceiver{messages: []queue.Message{
		{ID: "m1", Body: `{"Message":"{\"level\":\"warn\",\"requestId\":\"r1\"}","Timestamp":"2023-01-01T00:00:00Z"}`},
		{ID: "m2", Body: `not json at all`},
		{ID: "m3", Body: `{"Message":"plain text"}`},
	}}
	p := newTestPoller(r)

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// well-formed message, explicit level
	assert.Equal(t, "m1", entries[0].ID)
	assert.Equal(t, domain.LevelWarn, entries[0].Level)
	assert.Equal(t, "r1", entries[0].RequestID)
	assert.Equal(t, "2023-01-01T00:00:00Z", entries[0].Timestamp)

	// malformed outer body becomes a synthetic parser error
	assert.Equal(t, domain.LevelError, entries[1].Level)
	assert.Equal(t, "parser", entries[1].LambdaFunction)
	assert.Equal(t, "m2", entries[1].RequestID)
	assert.True(t, strings.HasPrefix(entries[1].Message, "Error parsing message: "))

	// malformed inner payload degrades gracefully, not an error entry
	assert.Equal(t, domain.LevelInfo, entries[2].Level)
	assert.Equal(t, "plain text", entries[2].Message)
	assert.NotEqual(t, "parser", entries[2].LambdaFunction)
}

func TestPollParseFailureExcerptTruncated(t *testing.T) {
	long := strings.Repeat("x", 250)
	p := newTestPoller(&fakeReceiver{messages: []queue.Message{{ID: "m1", Body: long}}})

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "Error parsing message: "+strings.Repeat("x", 100)+"...", entries[0].Message)
}

func TestPollParseFailureEmptyBody(t *testing.T) {
	p := newTestPoller(&fakeReceiver{messages: []queue.Message{{ID: "m1", Body: ""}}})

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "Error parsing message: No content", entries[0].Message)
	assert.Equal(t, domain.LevelError, entries[0].Level)
}

func TestPollSyntheticIDForMissingMessageID(t *testing.T) {
	p := newTestPoller(&fakeReceiver{messages: []queue.Message{
		{Body: `{"Message":"{}"}`},
		{Body: `{"Message":"{}"}`},
	}})

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "msg-0", entries[0].ID)
	assert.Equal(t, "msg-1", entries[1].ID)
}

func TestPollFieldDefaults(t *testing.T) {
	p := newTestPoller(&fakeReceiver{messages: []queue.Message{
		{ID: "m1", Body: `{"Message":"{\"foo\":1}"}`},
	}})

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "unknown", entries[0].LambdaFunction)
	assert.Equal(t, "unknown", entries[0].RequestID)
	assert.Equal(t, fixedNow.Format(time.RFC3339), entries[0].Timestamp)
	assert.NotEmpty(t, entries[0].Level)
}

func TestPollMessageFallbackChain(t *testing.T) {
	p := newTestPoller(&fakeReceiver{messages: []queue.Message{
		{ID: "m1", Body: `{"Message":"{\"message\":\"from payload\"}"}`},
		{ID: "m2", Body: `{"Message":"raw inner text"}`},
		{ID: "m3", Body: `{"Message":""}`},
	}})

	entries, err := p.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "from payload", entries[0].Message)
	assert.Equal(t, "raw inner text", entries[1].Message)
	assert.Equal(t, "No message content", entries[2].Message)
}
