// Package redisx builds go-redis clients from a connection URL.
package redisx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 2 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 5 * time.Second
)

// NewClient parses redis:// or rediss:// URLs. Each call opens its own
// pool, so callers that need an independent connection ask for a second
// client instead of sharing one.
func NewClient(url string) (*redis.Client, error) {
	if url == "" {
		return nil, errors.New("redis url is empty")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if opt.DialTimeout == 0 {
		opt.DialTimeout = dialTimeout
	}
	if opt.ReadTimeout == 0 {
		opt.ReadTimeout = ioTimeout
	}
	if opt.WriteTimeout == 0 {
		opt.WriteTimeout = ioTimeout
	}
	// a ctx deadline becomes the socket deadline; cancel alone is not seen
	opt.ContextTimeoutEnabled = true

	return redis.NewClient(opt), nil
}

// Ping checks the connection with a bounded wait.
func Ping(ctx context.Context, rdb redis.Cmdable) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}
