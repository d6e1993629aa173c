package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coder/quartz"

	eventsDomain "pulseboard/internal/events/core/domain"
	"pulseboard/internal/telemetry"
	"pulseboard/internal/worker/core/ports"
)

const (
	defaultRetryDelay = time.Second
	maxLoggedPayload  = 512
)

// Consumer moves envelopes from the queue into the event store. Delivery is
// at-least-once up to the pop: an item that fails to decode or store after
// it was popped is discarded (and handed to the dead-letter hook, if any).
type Consumer struct {
	queue      ports.QueuePort
	sink       ports.EventSinkPort
	deadLetter ports.DeadLetterPort
	clock      quartz.Clock
	retryDelay time.Duration
}

type ConsumerOption func(*Consumer)

func WithDeadLetter(dl ports.DeadLetterPort) ConsumerOption {
	return func(c *Consumer) {
		c.deadLetter = dl
	}
}

func WithConsumerClock(clock quartz.Clock) ConsumerOption {
	return func(c *Consumer) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithRetryDelay sets the pause after a failed pop before trying again.
func WithRetryDelay(d time.Duration) ConsumerOption {
	return func(c *Consumer) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

func NewConsumer(queue ports.QueuePort, sink ports.EventSinkPort, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		queue:      queue,
		sink:       sink,
		clock:      quartz.NewReal(),
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Run pops and handles items until ctx is done. Item failures never end the
// loop; a failing pop is logged and retried after the retry delay.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		raw, err := c.queue.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			telemetry.QueuePopErrors.Inc()
			log.Printf("consumer: pop: %v", err)
			if !c.pause(ctx) {
				return nil
			}
			continue
		}

		_ = c.Handle(ctx, raw)
	}
}

func (c *Consumer) pause(ctx context.Context) bool {
	t := c.clock.NewTimer(c.retryDelay, "consumer", "retry")
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Handle decodes and stores a single payload. The returned error is only
// informational; the item has already been discarded when it is non-nil.
func (c *Consumer) Handle(ctx context.Context, raw []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic handling item: %v", r)
			c.discard(ctx, raw, err)
		}
	}()

	e, err := eventsDomain.DecodeEnvelope(raw)
	if err != nil {
		c.discard(ctx, raw, err)
		return err
	}

	start := time.Now()
	err = c.sink.InsertEvent(ctx, &e)
	telemetry.StoreDuration.WithLabelValues(telemetry.PathQueue).Observe(time.Since(start).Seconds())
	if err != nil {
		err = fmt.Errorf("store event: %w", err)
		c.discard(ctx, raw, err)
		return err
	}

	telemetry.EventsConsumed.WithLabelValues(telemetry.ResultStored).Inc()
	return nil
}

func (c *Consumer) discard(ctx context.Context, raw []byte, cause error) {
	telemetry.EventsConsumed.WithLabelValues(telemetry.ResultDiscarded).Inc()
	log.Printf("consumer: discard item err=%v payload=%q", cause, truncate(raw, maxLoggedPayload))

	if c.deadLetter == nil {
		return
	}
	if err := c.deadLetter.DeadLetter(ctx, raw, cause); err != nil {
		log.Printf("consumer: dead letter: %v", err)
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
