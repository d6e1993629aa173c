package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulseboard/internal/worker/core/ports"

	"github.com/redis/go-redis/v9"
)

type deadLetterRecord struct {
	Payload  string `json:"payload"`
	Error    string `json:"error"`
	FailedAt int64  `json:"failed_at"`
}

// DeadLetterList parks discarded items on a side list for manual replay.
type DeadLetterList struct {
	rdb redis.Cmdable
	key string
	now func() time.Time
}

func NewDeadLetterList(rdb redis.Cmdable, key string) *DeadLetterList {
	return &DeadLetterList{rdb: rdb, key: key, now: time.Now}
}

var _ ports.DeadLetterPort = (*DeadLetterList)(nil)

func (d *DeadLetterList) DeadLetter(ctx context.Context, payload []byte, cause error) error {
	rec := deadLetterRecord{
		Payload:  string(payload),
		FailedAt: d.now().UnixMilli(),
	}
	if cause != nil {
		rec.Error = cause.Error()
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}
	if err := d.rdb.LPush(ctx, d.key, b).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", d.key, err)
	}
	return nil
}
