package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSQueue implements Receiver against an AWS SQS queue.
type SQSQueue struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSQueue creates a new SQSQueue for the given queue URL. Credentials
// come from the default AWS credential chain.
func NewSQSQueue(ctx context.Context, queueURL, region string) (*SQSQueue, error) {
	if queueURL == "" {
		return nil, fmt.Errorf("queue url must be provided")
	}

	var configOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		configOpts = append(configOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return &SQSQueue{
		client:   sqs.NewFromConfig(cfg),
		queueURL: queueURL,
	}, nil
}

// Receive fetches up to maxMessages messages, waiting at most waitSeconds
// for any to become available. Received messages stay on the queue.
func (q *SQSQueue) Receive(ctx context.Context, maxMessages int32, waitSeconds int32) ([]Message, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitSeconds,
	})
	if err != nil {
		return nil, fmt.Errorf("sqs receive failed: %w", err)
	}

	messages := make([]Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		messages = append(messages, Message{
			ID:   aws.ToString(m.MessageId),
			Body: aws.ToString(m.Body),
		})
	}
	return messages, nil
}

// Send publishes a raw body to the queue. Used by the seed tool to feed the
// console sample notifications.
func (q *SQSQueue) Send(ctx context.Context, body string) error {
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("sqs send failed: %w", err)
	}
	return nil
}

var _ Receiver = (*SQSQueue)(nil)
