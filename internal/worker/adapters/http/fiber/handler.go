package fiber

import (
	"context"
	"log"
	"net/http"

	"pulseboard/internal/worker/core/domain"

	"github.com/gofiber/fiber/v2"
)

type GetStatusUseCase interface {
	Execute(ctx context.Context) (domain.Status, error)
}

type WorkerHandler struct {
	uc GetStatusUseCase
}

func NewWorkerHandler(uc GetStatusUseCase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

// GetWorkerStatus godoc
// @Summary Worker liveness
// @Description Reports whether a queue worker has refreshed its heartbeat recently
// @Tags Worker
// @Produce json
// @Success 200 {object} WorkerStatusResponse
// @Failure 503 {object} ErrorResponse
// @Router /worker-status [get]
func (h *WorkerHandler) GetWorkerStatus(c *fiber.Ctx) error {
	st, err := h.uc.Execute(c.UserContext())
	if err != nil {
		log.Printf("worker status: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "worker_status_unavailable",
			Message: "Could not read worker heartbeat",
		})
	}

	return c.Status(http.StatusOK).JSON(WorkerStatusResponse{
		Active:       st.Active,
		TTLRemaining: st.TTLRemaining,
		LastBeatAt:   st.LastBeatAt,
	})
}
