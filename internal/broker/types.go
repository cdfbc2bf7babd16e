package broker

import (
	"context"
)

// Producer hands an already-serialized payload to the outgoing channel.
// Delivery past the local client is asynchronous and best-effort.
type Producer interface {
	Publish(ctx context.Context, topic string, key string, value []byte) error
	Close() error
}
