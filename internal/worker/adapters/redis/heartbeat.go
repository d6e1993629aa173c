package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pulseboard/internal/worker/core/domain"
	"pulseboard/internal/worker/core/ports"

	"github.com/redis/go-redis/v9"
)

const DefaultHeartbeatKey = "pulseboard:worker:heartbeat"

// HeartbeatStore keeps the liveness key. The value is the unix millisecond
// time of the last beat and the key expires after the TTL.
type HeartbeatStore struct {
	rdb redis.Cmdable
	key string
}

func NewHeartbeatStore(rdb redis.Cmdable, key string) *HeartbeatStore {
	if key == "" {
		key = DefaultHeartbeatKey
	}
	return &HeartbeatStore{rdb: rdb, key: key}
}

var (
	_ ports.HeartbeatWriterPort = (*HeartbeatStore)(nil)
	_ ports.HeartbeatReaderPort = (*HeartbeatStore)(nil)
)

func (s *HeartbeatStore) Beat(ctx context.Context, at time.Time, ttl time.Duration) error {
	v := strconv.FormatInt(at.UnixMilli(), 10)
	if err := s.rdb.Set(ctx, s.key, v, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

// Read fetches existence, TTL and value in one round trip.
func (s *HeartbeatStore) Read(ctx context.Context) (domain.HeartbeatRecord, error) {
	pipe := s.rdb.Pipeline()
	exists := pipe.Exists(ctx, s.key)
	ttl := pipe.TTL(ctx, s.key)
	val := pipe.Get(ctx, s.key)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return domain.HeartbeatRecord{}, fmt.Errorf("read %s: %w", s.key, err)
	}

	rec := domain.HeartbeatRecord{
		Exists: exists.Val() > 0,
		TTL:    ttl.Val(),
	}
	if rec.Exists {
		rec.Value = val.Val()
	}
	return rec, nil
}
