package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pulseboard/internal/events/core/domain"
	"pulseboard/internal/events/core/ports"
	"pulseboard/internal/telemetry"
)

var (
	ErrInvalidEvent     = errors.New("invalid event")
	ErrQueueUnavailable = errors.New("event queue unavailable")
)

// Mode tells the caller which path accepted the event. ModeQueued only
// means the envelope reached the queue, not that it is in the store yet.
type Mode string

const (
	ModeStored Mode = "stored"
	ModeQueued Mode = "queued"
)

type IngestEventUseCase struct {
	repo  ports.EventRepositoryPort
	queue ports.EventQueuePort
}

// NewIngestEventUseCase builds the gateway. queue may be nil, in which case
// queued submissions fail with ErrQueueUnavailable.
func NewIngestEventUseCase(repo ports.EventRepositoryPort, queue ports.EventQueuePort) *IngestEventUseCase {
	return &IngestEventUseCase{repo: repo, queue: queue}
}

type SubmitInput struct {
	ProjectID  string
	EventName  string
	UserID     string
	SessionID  string
	Properties map[string]any
	UseQueue   bool
}

type SubmitResult struct {
	Mode Mode
}

func (uc *IngestEventUseCase) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	if strings.TrimSpace(in.ProjectID) == "" {
		return SubmitResult{}, ErrInvalidEvent
	}

	e := domain.Event{
		ProjectID:  in.ProjectID,
		EventName:  in.EventName,
		UserID:     in.UserID,
		SessionID:  in.SessionID,
		Properties: in.Properties,
	}

	if !in.UseQueue {
		return uc.store(ctx, &e)
	}
	return uc.enqueue(ctx, e)
}

func (uc *IngestEventUseCase) store(ctx context.Context, e *domain.Event) (SubmitResult, error) {
	start := time.Now()
	err := uc.repo.InsertEvent(ctx, e)
	telemetry.StoreDuration.WithLabelValues(telemetry.PathDirect).Observe(time.Since(start).Seconds())
	if err != nil {
		telemetry.EventsIngested.WithLabelValues(telemetry.PathDirect, telemetry.StatusError).Inc()
		return SubmitResult{}, err
	}

	telemetry.EventsIngested.WithLabelValues(telemetry.PathDirect, telemetry.StatusOK).Inc()
	return SubmitResult{Mode: ModeStored}, nil
}

func (uc *IngestEventUseCase) enqueue(ctx context.Context, e domain.Event) (SubmitResult, error) {
	if uc.queue == nil {
		telemetry.EventsIngested.WithLabelValues(telemetry.PathQueue, telemetry.StatusError).Inc()
		return SubmitResult{}, ErrQueueUnavailable
	}

	payload, err := domain.EncodeEnvelope(e)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	if err := uc.queue.Push(ctx, payload); err != nil {
		telemetry.EventsIngested.WithLabelValues(telemetry.PathQueue, telemetry.StatusError).Inc()
		return SubmitResult{}, fmt.Errorf("%w: %v", ErrQueueUnavailable, err)
	}

	telemetry.EventsIngested.WithLabelValues(telemetry.PathQueue, telemetry.StatusOK).Inc()
	return SubmitResult{Mode: ModeQueued}, nil
}

type SubmitBatchInput struct {
	ProjectID string
	Events    []SubmitInput
}

type SubmitBatchResult struct {
	Stored int
	Failed int
}

// SubmitBatch writes every item through the direct path, one after another.
// A failing item does not stop the rest; the returned error joins every
// per-item failure.
func (uc *IngestEventUseCase) SubmitBatch(ctx context.Context, in SubmitBatchInput) (SubmitBatchResult, error) {
	var res SubmitBatchResult

	if strings.TrimSpace(in.ProjectID) == "" {
		return res, ErrInvalidEvent
	}

	var errs []error
	for i, ev := range in.Events {
		ev.ProjectID = in.ProjectID
		ev.UseQueue = false

		if _, err := uc.Submit(ctx, ev); err != nil {
			res.Failed++
			errs = append(errs, fmt.Errorf("event %d: %w", i, err))
			continue
		}
		res.Stored++
	}

	return res, errors.Join(errs...)
}
