package fiber

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"pulseboard/internal/events/core/ports"
	"pulseboard/internal/events/core/usecase"
	projectsHttp "pulseboard/internal/projects/adapters/http/fiber"

	"github.com/gofiber/fiber/v2"
)

type IngestEventUseCase interface {
	Submit(ctx context.Context, in usecase.SubmitInput) (usecase.SubmitResult, error)
	SubmitBatch(ctx context.Context, in usecase.SubmitBatchInput) (usecase.SubmitBatchResult, error)
}

type EventHandler struct {
	ingestUC IngestEventUseCase
}

func NewEventHandler(ingestUC IngestEventUseCase) *EventHandler {
	return &EventHandler{ingestUC: ingestUC}
}

// TrackEvent godoc
// @Summary Track an event
// @Description Stores an event directly (201) or queues it for the worker (202).
// @Description A 202 only confirms the enqueue; the event is not durable in the store yet.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body TrackEventRequest true "Event payload"
// @Success 201 {object} TrackEventResponse "Stored"
// @Success 202 {object} TrackEventResponse "Queued"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /track [post]
func (h *EventHandler) TrackEvent(c *fiber.Ctx) error {
	var req TrackEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: validationMessage(err),
		})
	}

	project := projectsHttp.ProjectFrom(c)
	if project == nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "project_not_attached",
			Message: "Project not attached. Middleware failure.",
		})
	}

	input := toSubmitInput(req)
	input.ProjectID = project.ID
	input.UseQueue = req.UseRedis || req.UseQueue

	res, err := h.ingestUC.Submit(c.UserContext(), input)
	if err != nil {
		return writeSubmitError(c, err)
	}

	if res.Mode == usecase.ModeQueued {
		return c.Status(http.StatusAccepted).JSON(TrackEventResponse{
			Success: true,
			Status:  string(usecase.ModeQueued),
		})
	}

	return c.Status(http.StatusCreated).JSON(TrackEventResponse{
		Success: true,
		Status:  string(usecase.ModeStored),
	})
}

// TrackBatch godoc
// @Summary Track a batch of events
// @Description Stores each event directly, in order. Every item is attempted even if an earlier one fails.
// @Description An item that fails validation counts as failed; the rest are still stored.
// @Tags Events
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body TrackBatchRequest true "Batch payload"
// @Success 201 {object} TrackBatchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /track/batch [post]
func (h *EventHandler) TrackBatch(c *fiber.Ctx) error {
	var req TrackBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Events) == 0 {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "events_list_required",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: validationMessage(err),
		})
	}

	project := projectsHttp.ProjectFrom(c)
	if project == nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "project_not_attached",
			Message: "Project not attached. Middleware failure.",
		})
	}

	// Items are validated one by one so a bad item fails alone.
	inputs := make([]usecase.SubmitInput, 0, len(req.Events))
	var invalid []error
	for i, e := range req.Events {
		if err := validate.Struct(e); err != nil {
			invalid = append(invalid, fmt.Errorf("event %d: %w: %s", i, usecase.ErrInvalidEvent, validationMessage(err)))
			continue
		}
		inputs = append(inputs, toSubmitInput(e))
	}

	var result usecase.SubmitBatchResult
	var err error
	if len(inputs) > 0 {
		result, err = h.ingestUC.SubmitBatch(
			c.UserContext(),
			usecase.SubmitBatchInput{ProjectID: project.ID, Events: inputs},
		)
	}
	result.Failed += len(invalid)
	err = errors.Join(append(invalid, err)...)

	if err != nil {
		log.Printf("events: batch project=%s stored=%d failed=%d: %v", project.ID, result.Stored, result.Failed, err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "batch_failed",
			Message: "one or more events could not be stored",
		})
	}

	return c.Status(http.StatusCreated).JSON(TrackBatchResponse{
		Success: true,
		Stored:  result.Stored,
	})
}

func toSubmitInput(req TrackEventRequest) usecase.SubmitInput {
	return usecase.SubmitInput{
		EventName:  req.Event,
		UserID:     req.UserID,
		SessionID:  req.SessionID,
		Properties: req.Properties,
	}
}

func writeSubmitError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidEvent):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_event",
			Message: err.Error(),
		})
	case errors.Is(err, ports.ErrEventRejected):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "event_rejected",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrQueueUnavailable):
		log.Printf("events: enqueue: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "queue_unavailable",
		})
	default:
		log.Printf("events: store: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
