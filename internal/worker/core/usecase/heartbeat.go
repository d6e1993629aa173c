package usecase

import (
	"context"
	"log"
	"time"

	"github.com/coder/quartz"

	"pulseboard/internal/telemetry"
	"pulseboard/internal/worker/core/ports"
)

const (
	DefaultHeartbeatInterval = 10 * time.Second
	DefaultHeartbeatTTL      = 20 * time.Second
)

// Heartbeat refreshes the liveness record right away and then on every
// interval. The TTL must exceed the interval so one missed beat does not
// flip liveness; two consecutive misses do.
type Heartbeat struct {
	writer   ports.HeartbeatWriterPort
	clock    quartz.Clock
	interval time.Duration
	ttl      time.Duration
}

func NewHeartbeat(writer ports.HeartbeatWriterPort, clock quartz.Clock, interval, ttl time.Duration) *Heartbeat {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	if ttl <= interval {
		ttl = 2 * interval
	}
	return &Heartbeat{writer: writer, clock: clock, interval: interval, ttl: ttl}
}

func (h *Heartbeat) Run(ctx context.Context) {
	log.Printf("heartbeat: started interval=%s ttl=%s", h.interval, h.ttl)

	h.beat(ctx)

	ticker := h.clock.NewTicker(h.interval, "heartbeat")
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.beat(ctx)
		}
	}
}

// beat never fails the caller; the next tick is the retry.
func (h *Heartbeat) beat(ctx context.Context) {
	bctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	if err := h.writer.Beat(bctx, h.clock.Now(), h.ttl); err != nil {
		if ctx.Err() != nil {
			return
		}
		telemetry.Heartbeats.WithLabelValues(telemetry.StatusError).Inc()
		log.Printf("heartbeat: write failed: %v", err)
		return
	}
	telemetry.Heartbeats.WithLabelValues(telemetry.StatusOK).Inc()
}
