package queue

import "context"

// Message is one queue delivery: the queue-assigned identifier and the raw
// body string.
type Message struct {
	ID   string
	Body string
}

// Receiver fetches a bounded batch of messages. Implementations must not
// consume (delete) messages; the console is a read-only observer and
// redelivery is acceptable.
type Receiver interface {
	Receive(ctx context.Context, maxMessages int32, waitSeconds int32) ([]Message, error)
}
