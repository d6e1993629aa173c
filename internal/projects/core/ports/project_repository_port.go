package ports

import (
	"context"

	"pulseboard/internal/projects/core/domain"
)

type ProjectRepositoryPort interface {
	// FindByAPIKey:
	//   project, nil -> key belongs to project
	//   nil, nil     -> unknown key
	//   nil, err     -> store error
	FindByAPIKey(ctx context.Context, apiKey string) (*domain.Project, error)
}
