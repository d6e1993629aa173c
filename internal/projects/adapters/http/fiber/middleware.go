package fiber

import (
	"context"
	"errors"
	"log"
	"net/http"

	"pulseboard/internal/projects/core/domain"
	"pulseboard/internal/projects/core/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	APIKeyHeader = "x-api-key"

	localsProjectKey = "project"
)

type ResolveProjectUseCase interface {
	Execute(ctx context.Context, apiKey string) (*domain.Project, error)
}

// RequireAPIKey resolves the x-api-key header to a project and attaches it
// to the request. Unresolved requests stop here.
func RequireAPIKey(uc ResolveProjectUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := uc.Execute(c.UserContext(), c.Get(APIKeyHeader))
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrMissingAPIKey):
				return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
					Error:   "api_key_missing",
					Message: "API key missing",
				})
			case errors.Is(err, usecase.ErrInvalidAPIKey):
				return c.Status(http.StatusForbidden).JSON(ErrorResponse{
					Error:   "invalid_api_key",
					Message: "Invalid API key",
				})
			default:
				log.Printf("projects: resolve api key: %v", err)
				return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
					Error: "internal_server_error",
				})
			}
		}

		SetProject(c, p)
		return c.Next()
	}
}

func SetProject(c *fiber.Ctx, p *domain.Project) {
	c.Locals(localsProjectKey, p)
}

// ProjectFrom returns the project attached by RequireAPIKey, or nil.
func ProjectFrom(c *fiber.Ctx) *domain.Project {
	p, _ := c.Locals(localsProjectKey).(*domain.Project)
	return p
}
