package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulseboard/internal/worker/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultPopBlock = 5 * time.Second

// QueueConsumer pops envelopes from the tail of the list the gateway pushes
// onto. It owns its client: BRPOP keeps the connection busy for the whole
// block window, and cancelling a Pop closes the client to break that wait.
type QueueConsumer struct {
	rdb   redis.UniversalClient
	key   string
	block time.Duration
}

func NewQueueConsumer(rdb redis.UniversalClient, key string, block time.Duration) *QueueConsumer {
	if block <= 0 {
		block = DefaultPopBlock
	}
	return &QueueConsumer{rdb: rdb, key: key, block: block}
}

var _ ports.QueuePort = (*QueueConsumer)(nil)

// Pop waits until an item arrives or ctx is done. go-redis only maps a ctx
// deadline onto the socket, so a plain cancel is turned into a client close;
// the consumer cannot pop again after that.
func (q *QueueConsumer) Pop(ctx context.Context) ([]byte, error) {
	stop := context.AfterFunc(ctx, func() { _ = q.rdb.Close() })
	defer stop()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := q.rdb.BRPop(ctx, q.block, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("brpop %s: %w", q.key, err)
		}
		if len(res) != 2 {
			return nil, fmt.Errorf("brpop %s: unexpected reply of %d elements", q.key, len(res))
		}
		return []byte(res[1]), nil
	}
}

func (q *QueueConsumer) Ping(ctx context.Context) error {
	return q.rdb.Ping(ctx).Err()
}
