package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pulseboard/internal/stats/core/domain"
	"pulseboard/internal/stats/core/ports"
)

type EventReader struct {
	db DB
}

func NewEventReader(db DB) *EventReader {
	return &EventReader{db: db}
}

var _ ports.EventReaderPort = (*EventReader)(nil)

// ListEvents reads event_name and created_at for the project. NULL columns
// come back as zero values so the caller can drop the row.
func (r *EventReader) ListEvents(ctx context.Context, f ports.StatsFilter) ([]domain.Event, error) {
	where := "project_id = $1"
	args := []any{f.ProjectID}

	if f.Range != nil {
		where += " AND created_at >= $2 AND created_at <= $3"
		args = append(args, f.Range.From.UTC(), f.Range.To.UTC())
	}

	query := `
SELECT
    event_name,
    created_at
FROM events
WHERE ` + where + `
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var name sql.NullString
		var createdAt sql.NullTime

		if err := rows.Scan(&name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		e := domain.Event{EventName: name.String}
		if createdAt.Valid {
			e.CreatedAt = createdAt.Time.UTC()
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	return events, nil
}
