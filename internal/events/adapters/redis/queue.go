package redis

import (
	"context"
	"fmt"

	"pulseboard/internal/events/core/ports"

	"github.com/redis/go-redis/v9"
)

// QueueProducer pushes envelopes onto the head of a Redis list. Consumers
// BRPOP from the other end, which keeps the list FIFO.
type QueueProducer struct {
	rdb redis.Cmdable
	key string
}

func NewQueueProducer(rdb redis.Cmdable, key string) *QueueProducer {
	return &QueueProducer{rdb: rdb, key: key}
}

var _ ports.EventQueuePort = (*QueueProducer)(nil)

func (q *QueueProducer) Push(ctx context.Context, payload []byte) error {
	if err := q.rdb.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", q.key, err)
	}
	return nil
}
