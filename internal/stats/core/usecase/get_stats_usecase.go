package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pulseboard/internal/stats/core/domain"
	"pulseboard/internal/stats/core/ports"
)

var (
	ErrInvalidStatsQuery = errors.New("invalid stats query")
	ErrInvalidTimeRange  = errors.New("invalid time range")
)

const dateLayout = "2006-01-02"

// timestampLayouts are tried in order for bounds that carry a time part.
// Values without an offset are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

type GetStatsInput struct {
	ProjectID string
	From      string // "2024-01-01" or a full timestamp
	To        string
}

type GetStatsUseCase struct {
	reader ports.EventReaderPort
}

func NewGetStatsUseCase(reader ports.EventReaderPort) *GetStatsUseCase {
	return &GetStatsUseCase{reader: reader}
}

// RawEvents returns the well-formed events of the project inside the range,
// in the order the reader produced them.
func (uc *GetStatsUseCase) RawEvents(ctx context.Context, in GetStatsInput) ([]domain.Event, error) {
	if strings.TrimSpace(in.ProjectID) == "" {
		return nil, ErrInvalidStatsQuery
	}

	rng, err := ExpandRange(in.From, in.To)
	if err != nil {
		return nil, err
	}

	rows, err := uc.reader.ListEvents(ctx, ports.StatsFilter{ProjectID: in.ProjectID, Range: rng})
	if err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(rows))
	for _, e := range rows {
		if !e.WellFormed() {
			continue
		}
		if rng != nil && !rng.Contains(e.CreatedAt) {
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

func (uc *GetStatsUseCase) TopEvents(ctx context.Context, in GetStatsInput) (*domain.TopEvents, error) {
	events, err := uc.RawEvents(ctx, in)
	if err != nil {
		return nil, err
	}

	return &domain.TopEvents{
		Top:    GroupEvents(events),
		Events: events,
	}, nil
}

// GroupEvents makes one row per distinct event name, in order of first
// appearance. Sorting the rows is left to the caller.
func GroupEvents(events []domain.Event) []domain.TopEventRow {
	idx := make(map[string]int)
	rows := make([]domain.TopEventRow, 0)

	for _, e := range events {
		if !e.WellFormed() {
			continue
		}

		i, ok := idx[e.EventName]
		if !ok {
			idx[e.EventName] = len(rows)
			rows = append(rows, domain.TopEventRow{EventName: e.EventName, Count: 1, LastSeen: e.CreatedAt})
			continue
		}

		rows[i].Count++
		if e.CreatedAt.After(rows[i].LastSeen) {
			rows[i].LastSeen = e.CreatedAt
		}
	}
	return rows
}

// ExpandRange turns the query bounds into an inclusive range. It returns nil
// unless both bounds are given. A date-only from starts at 00:00:00.000 UTC
// and a date-only to ends at 23:59:59.999 UTC of that day; bounds with a
// time part are used as given.
func ExpandRange(from, to string) (*domain.TimeRange, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return nil, nil
	}

	f, err := parseBound(from, false)
	if err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrInvalidTimeRange, err)
	}
	t, err := parseBound(to, true)
	if err != nil {
		return nil, fmt.Errorf("%w: to: %v", ErrInvalidTimeRange, err)
	}
	if f.After(t) {
		return nil, fmt.Errorf("%w: from is after to", ErrInvalidTimeRange)
	}

	return &domain.TimeRange{From: f, To: t}, nil
}

func parseBound(s string, endOfDay bool) (time.Time, error) {
	if !strings.Contains(s, "T") {
		d, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return time.Time{}, err
		}
		if endOfDay {
			d = d.Add(24*time.Hour - time.Millisecond)
		}
		return d, nil
	}

	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return ts.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
