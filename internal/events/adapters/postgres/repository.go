package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pulseboard/internal/events/core/domain"
	"pulseboard/internal/events/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

// created_at is left to the column default (now() at UTC).
const insertEventSQL = `
INSERT INTO events (
    id,
    project_id,
    event_name,
    user_id,
    session_id,
    properties
) VALUES (
    $1, $2, $3, $4, $5, $6
);
`

func (r *EventRepository) InsertEvent(ctx context.Context, e *domain.Event) error {
	var properties any
	if e.Properties != nil {
		b, err := json.Marshal(e.Properties)
		if err != nil {
			return fmt.Errorf("%w: properties: %v", ports.ErrEventRejected, err)
		}
		properties = b
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		uuid.NewString(),
		e.ProjectID,
		nullable(e.EventName),
		nullable(e.UserID),
		nullable(e.SessionID),
		properties,
	)
	if err != nil {
		return classify(err)
	}
	return nil
}

// Ping reports whether the store is reachable.
func (r *EventRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// classify separates rows the database refuses (class 22 data exception,
// class 23 integrity violation) from availability failures.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "22", "23":
			return fmt.Errorf("%w: %s", ports.ErrEventRejected, pqErr.Message)
		}
	}
	return fmt.Errorf("insert event: %w", err)
}
