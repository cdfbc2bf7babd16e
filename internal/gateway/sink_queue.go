package gateway

import (
	"context"

	"notigw/internal/broker"
	"notigw/pkg/errors"
)

// QueueSink hands the encoded action to the broker producer on the egress
// topic. A successful handoff to the client counts as forwarding success; the
// broker acknowledges asynchronously and is not awaited here.
type QueueSink struct {
	producer broker.Producer
	topic    string
}

func NewQueueSink(producer broker.Producer, topic string) *QueueSink {
	return &QueueSink{
		producer: producer,
		topic:    topic,
	}
}

func (s *QueueSink) Send(ctx context.Context, payload string, accountID string) error {
	if err := s.producer.Publish(ctx, s.topic, accountID, []byte(payload)); err != nil {
		return errors.ErrDispatch.WithCause(err)
	}
	return nil
}
