package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"pulseboard/internal/stats/core/domain"
	"pulseboard/internal/stats/core/ports"
	"pulseboard/internal/stats/core/usecase"
)

// fakeEventReader hands back rows and keeps the last filter it saw.
type fakeEventReader struct {
	ListFn     func(ctx context.Context, f ports.StatsFilter) ([]domain.Event, error)
	lastFilter ports.StatsFilter
	calls      int
}

func (f *fakeEventReader) ListEvents(ctx context.Context, flt ports.StatsFilter) ([]domain.Event, error) {
	f.calls++
	f.lastFilter = flt
	if f.ListFn != nil {
		return f.ListFn(ctx, flt)
	}
	return nil, nil
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		panic(err)
	}
	return t
}

func rowsReader(rows ...domain.Event) *fakeEventReader {
	return &fakeEventReader{
		ListFn: func(ctx context.Context, f ports.StatsFilter) ([]domain.Event, error) {
			return rows, nil
		},
	}
}

// ------------------------------------------------------------
// GROUPING
// ------------------------------------------------------------

func TestTopEvents_CountAndLastSeen(t *testing.T) {
	t1 := ts("2024-01-01T10:00:00.000Z")
	t2 := ts("2024-01-01T11:00:00.000Z")
	t3 := ts("2024-01-01T12:00:00.000Z")

	reader := rowsReader(
		domain.Event{EventName: "signup", CreatedAt: t1},
		domain.Event{EventName: "signup", CreatedAt: t3},
		domain.Event{EventName: "login", CreatedAt: t2},
	)
	uc := usecase.NewGetStatsUseCase(reader)

	out, err := uc.TopEvents(context.Background(), usecase.GetStatsInput{ProjectID: "proj_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.TopEventRow{
		{EventName: "signup", Count: 2, LastSeen: t3},
		{EventName: "login", Count: 1, LastSeen: t2},
	}
	if !reflect.DeepEqual(out.Top, want) {
		t.Fatalf("unexpected top rows: %+v", out.Top)
	}
	if len(out.Events) != 3 {
		t.Fatalf("expected 3 raw events echoed, got %d", len(out.Events))
	}
}

func TestGroupEvents_LastSeenIsChronological(t *testing.T) {
	// out of order input, and offsets that would mislead a string compare
	rows := []domain.Event{
		{EventName: "a", CreatedAt: ts("2024-01-01T12:00:00+02:00")},
		{EventName: "a", CreatedAt: ts("2024-01-01T11:00:00Z")},
		{EventName: "a", CreatedAt: ts("2024-01-01T09:00:00Z")},
	}

	got := usecase.GroupEvents(rows)
	if len(got) != 1 || got[0].Count != 3 {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if !got[0].LastSeen.Equal(ts("2024-01-01T11:00:00Z")) {
		t.Fatalf("expected last_seen 11:00Z, got %s", got[0].LastSeen)
	}
}

func TestGroupEvents_Empty(t *testing.T) {
	got := usecase.GroupEvents(nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil rows, got %#v", got)
	}
}

func TestTopEvents_Idempotent(t *testing.T) {
	reader := rowsReader(
		domain.Event{EventName: "signup", CreatedAt: ts("2024-01-01T10:00:00Z")},
		domain.Event{EventName: "login", CreatedAt: ts("2024-01-01T11:00:00Z")},
		domain.Event{EventName: "signup", CreatedAt: ts("2024-01-01T12:00:00Z")},
	)
	uc := usecase.NewGetStatsUseCase(reader)
	in := usecase.GetStatsInput{ProjectID: "proj_1", From: "2024-01-01", To: "2024-01-01"}

	first, err := uc.TopEvents(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.TopEvents(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if reader.calls != 2 {
		t.Fatalf("expected the store to be read on every call, got %d reads", reader.calls)
	}
}

// ------------------------------------------------------------
// MALFORMED ROWS
// ------------------------------------------------------------

func TestRawAndTop_DropMalformedRows(t *testing.T) {
	good := domain.Event{EventName: "signup", CreatedAt: ts("2024-01-01T10:00:00Z")}
	reader := rowsReader(
		domain.Event{EventName: "", CreatedAt: ts("2024-01-01T10:00:00Z")},
		good,
		domain.Event{EventName: "login"},
	)
	uc := usecase.NewGetStatsUseCase(reader)

	raw, err := uc.RawEvents(context.Background(), usecase.GetStatsInput{ProjectID: "proj_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(raw, []domain.Event{good}) {
		t.Fatalf("unexpected raw events: %+v", raw)
	}

	top, err := uc.TopEvents(context.Background(), usecase.GetStatsInput{ProjectID: "proj_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top.Top) != 1 || top.Top[0].EventName != "signup" || len(top.Events) != 1 {
		t.Fatalf("unexpected top events: %+v", top)
	}
}

// ------------------------------------------------------------
// RANGE
// ------------------------------------------------------------

func TestRawEvents_DateOnlyRangeCoversWholeDay(t *testing.T) {
	reader := rowsReader(
		domain.Event{EventName: "before", CreatedAt: ts("2023-12-31T23:59:59.999Z")},
		domain.Event{EventName: "start", CreatedAt: ts("2024-01-01T00:00:00.000Z")},
		domain.Event{EventName: "end", CreatedAt: ts("2024-01-01T23:59:59.999Z")},
		domain.Event{EventName: "after", CreatedAt: ts("2024-01-02T00:00:00.000Z")},
	)
	uc := usecase.NewGetStatsUseCase(reader)

	raw, err := uc.RawEvents(context.Background(), usecase.GetStatsInput{
		ProjectID: "proj_1",
		From:      "2024-01-01",
		To:        "2024-01-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(raw) != 2 || raw[0].EventName != "start" || raw[1].EventName != "end" {
		t.Fatalf("unexpected events: %+v", raw)
	}

	rng := reader.lastFilter.Range
	if rng == nil {
		t.Fatalf("expected range to be passed to the reader")
	}
	if !rng.From.Equal(ts("2024-01-01T00:00:00.000Z")) || !rng.To.Equal(ts("2024-01-01T23:59:59.999Z")) {
		t.Fatalf("unexpected range: %s - %s", rng.From, rng.To)
	}
	if reader.lastFilter.ProjectID != "proj_1" {
		t.Fatalf("expected project proj_1, got %s", reader.lastFilter.ProjectID)
	}
}

func TestRawEvents_SingleBoundIsIgnored(t *testing.T) {
	reader := rowsReader(domain.Event{EventName: "old", CreatedAt: ts("2020-01-01T00:00:00Z")})
	uc := usecase.NewGetStatsUseCase(reader)

	raw, err := uc.RawEvents(context.Background(), usecase.GetStatsInput{ProjectID: "proj_1", From: "2024-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.lastFilter.Range != nil {
		t.Fatalf("expected no range with a single bound")
	}
	if len(raw) != 1 {
		t.Fatalf("expected unfiltered events, got %d", len(raw))
	}
}

func TestExpandRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantFrom string
		wantTo   string
		wantNil  bool
		wantErr  bool
	}{
		{name: "date only", from: "2024-01-01", to: "2024-01-31", wantFrom: "2024-01-01T00:00:00Z", wantTo: "2024-01-31T23:59:59.999Z"},
		{name: "timestamps verbatim", from: "2024-01-01T08:30:00Z", to: "2024-01-01T09:00:00.5Z", wantFrom: "2024-01-01T08:30:00Z", wantTo: "2024-01-01T09:00:00.5Z"},
		{name: "mixed", from: "2024-01-01T08:30:00Z", to: "2024-01-02", wantFrom: "2024-01-01T08:30:00Z", wantTo: "2024-01-02T23:59:59.999Z"},
		{name: "offset normalised", from: "2024-01-01T02:00:00+02:00", to: "2024-01-01", wantFrom: "2024-01-01T00:00:00Z", wantTo: "2024-01-01T23:59:59.999Z"},
		{name: "no zone is utc", from: "2024-01-01T08:30:00", to: "2024-01-01T09:00", wantFrom: "2024-01-01T08:30:00Z", wantTo: "2024-01-01T09:00:00Z"},
		{name: "missing to", from: "2024-01-01", wantNil: true},
		{name: "missing both", wantNil: true},
		{name: "bad date", from: "2024-13-01", to: "2024-01-01", wantErr: true},
		{name: "bad timestamp", from: "2024-01-01", to: "yesterdayTnoon", wantErr: true},
		{name: "from after to", from: "2024-02-01", to: "2024-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.ExpandRange(tt.from, tt.to)
			if tt.wantErr {
				if !errors.Is(err, usecase.ErrInvalidTimeRange) {
					t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil range, got %+v", got)
				}
				return
			}
			if !got.From.Equal(ts(tt.wantFrom)) || !got.To.Equal(ts(tt.wantTo)) {
				t.Fatalf("expected %s - %s, got %s - %s", tt.wantFrom, tt.wantTo, got.From, got.To)
			}
		})
	}
}

// ------------------------------------------------------------
// ERRORS
// ------------------------------------------------------------

func TestRawEvents_MissingProject(t *testing.T) {
	reader := &fakeEventReader{}
	uc := usecase.NewGetStatsUseCase(reader)

	_, err := uc.RawEvents(context.Background(), usecase.GetStatsInput{})
	if !errors.Is(err, usecase.ErrInvalidStatsQuery) {
		t.Fatalf("expected ErrInvalidStatsQuery, got %v", err)
	}
	if reader.calls != 0 {
		t.Fatalf("reader must not be called")
	}
}

func TestRawEvents_InvalidRangeSkipsReader(t *testing.T) {
	reader := &fakeEventReader{}
	uc := usecase.NewGetStatsUseCase(reader)

	_, err := uc.TopEvents(context.Background(), usecase.GetStatsInput{ProjectID: "proj_1", From: "nope", To: "2024-01-01"})
	if !errors.Is(err, usecase.ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
	if reader.calls != 0 {
		t.Fatalf("reader must not be called")
	}
}

func TestTopEvents_ReaderError(t *testing.T) {
	dbErr := errors.New("db failure")
	reader := &fakeEventReader{
		ListFn: func(ctx context.Context, f ports.StatsFilter) ([]domain.Event, error) {
			return nil, dbErr
		},
	}
	uc := usecase.NewGetStatsUseCase(reader)

	out, err := uc.TopEvents(context.Background(), usecase.GetStatsInput{ProjectID: "proj_1"})
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil result on error")
	}
}
