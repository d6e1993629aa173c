package fiber

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	projectsHttp "pulseboard/internal/projects/adapters/http/fiber"
	"pulseboard/internal/stats/core/domain"
	"pulseboard/internal/stats/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetStatsUseCase interface {
	RawEvents(ctx context.Context, in usecase.GetStatsInput) ([]domain.Event, error)
	TopEvents(ctx context.Context, in usecase.GetStatsInput) (*domain.TopEvents, error)
}

type StatsHandler struct {
	uc GetStatsUseCase
}

func NewStatsHandler(uc GetStatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// GetEvents godoc
// @Summary Raw events
// @Description Returns the project's events in the range, oldest first. Date-only bounds cover whole UTC days; the range applies only when both bounds are set.
// @Tags Stats
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "From (YYYY-MM-DD or RFC3339)"
// @Param to query string false "To (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} EventResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stats/events [get]
func (h *StatsHandler) GetEvents(c *fiber.Ctx) error {
	in, ok := statsInput(c)
	if !ok {
		return projectMissing(c)
	}

	events, err := h.uc.RawEvents(c.UserContext(), in)
	if err != nil {
		return writeStatsError(c, err, "Failed to fetch event stats")
	}

	return c.Status(http.StatusOK).JSON(toEventResponses(events))
}

// GetTopEvents godoc
// @Summary Top events
// @Description Returns count and last_seen per event name, plus the events they were computed from. Rows are unsorted.
// @Tags Stats
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "From (YYYY-MM-DD or RFC3339)"
// @Param to query string false "To (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} TopEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /stats/top-events [get]
func (h *StatsHandler) GetTopEvents(c *fiber.Ctx) error {
	in, ok := statsInput(c)
	if !ok {
		return projectMissing(c)
	}

	res, err := h.uc.TopEvents(c.UserContext(), in)
	if err != nil {
		return writeStatsError(c, err, "Failed to fetch top events")
	}

	resp := TopEventsResponse{
		Top:    make([]TopEventResponse, 0, len(res.Top)),
		Events: toEventResponses(res.Events),
	}
	for _, r := range res.Top {
		resp.Top = append(resp.Top, TopEventResponse{
			EventName: r.EventName,
			Count:     r.Count,
			LastSeen:  formatTime(r.LastSeen),
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func statsInput(c *fiber.Ctx) (usecase.GetStatsInput, bool) {
	p := projectsHttp.ProjectFrom(c)
	if p == nil {
		return usecase.GetStatsInput{}, false
	}
	return usecase.GetStatsInput{
		ProjectID: p.ID,
		From:      c.Query("from", ""),
		To:        c.Query("to", ""),
	}, true
}

func projectMissing(c *fiber.Ctx) error {
	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "project_not_attached",
		Message: "Project not attached. Middleware failure.",
	})
}

func writeStatsError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidTimeRange):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_time_range",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrInvalidStatsQuery):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_stats_query",
			Message: err.Error(),
		})
	default:
		log.Printf("stats: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_server_error",
			Message: message,
		})
	}
}

func toEventResponses(events []domain.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, EventResponse{
			EventName: e.EventName,
			CreatedAt: formatTime(e.CreatedAt),
		})
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
