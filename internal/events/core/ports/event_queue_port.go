package ports

import "context"

// EventQueuePort pushes a serialized envelope onto the tail of the durable queue.
type EventQueuePort interface {
	Push(ctx context.Context, payload []byte) error
}
