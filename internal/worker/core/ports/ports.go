package ports

import (
	"context"
	"time"

	eventsDomain "pulseboard/internal/events/core/domain"
	"pulseboard/internal/worker/core/domain"
)

// QueuePort blocks until the next payload is available or ctx is done.
// A returned payload has already been removed from the queue.
type QueuePort interface {
	Pop(ctx context.Context) ([]byte, error)
}

type EventSinkPort interface {
	InsertEvent(ctx context.Context, e *eventsDomain.Event) error
}

type HeartbeatWriterPort interface {
	Beat(ctx context.Context, at time.Time, ttl time.Duration) error
}

type HeartbeatReaderPort interface {
	Read(ctx context.Context) (domain.HeartbeatRecord, error)
}

// DeadLetterPort receives items the consumer gave up on.
type DeadLetterPort interface {
	DeadLetter(ctx context.Context, payload []byte, cause error) error
}
