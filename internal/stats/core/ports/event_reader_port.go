package ports

import (
	"context"

	"pulseboard/internal/stats/core/domain"
)

type StatsFilter struct {
	ProjectID string
	Range     *domain.TimeRange // nil means all time
}

// EventReaderPort returns the project's events ordered by created_at.
type EventReaderPort interface {
	ListEvents(ctx context.Context, f StatsFilter) ([]domain.Event, error)
}
