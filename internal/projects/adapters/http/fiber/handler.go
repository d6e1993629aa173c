package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

type ProjectHandler struct{}

func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{}
}

// GetProjectInfo godoc
// @Summary Project info
// @Description Returns the project bound to the API key
// @Tags Projects
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} ProjectInfoResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /project-info [get]
func (h *ProjectHandler) GetProjectInfo(c *fiber.Ctx) error {
	p := ProjectFrom(c)
	if p == nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "project_not_attached",
			Message: "Project not attached. Middleware failure.",
		})
	}

	return c.Status(http.StatusOK).JSON(ProjectInfoResponse{
		ID:        p.ID,
		ProjectID: p.ID,
		Name:      p.Name,
	})
}
