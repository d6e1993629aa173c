package ports

import (
	"context"
	"errors"

	"pulseboard/internal/events/core/domain"
)

// ErrEventRejected is returned by stores when the database refuses the row
// itself (constraint or data error) as opposed to being unavailable.
var ErrEventRejected = errors.New("event rejected by store")

type EventRepositoryPort interface {
	InsertEvent(ctx context.Context, e *domain.Event) error
}
