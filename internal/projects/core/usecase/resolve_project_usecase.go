package usecase

import (
	"context"
	"errors"
	"strings"

	"pulseboard/internal/projects/core/domain"
	"pulseboard/internal/projects/core/ports"
)

var (
	ErrMissingAPIKey = errors.New("api key missing")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

type ResolveProjectUseCase struct {
	repo ports.ProjectRepositoryPort
}

func NewResolveProjectUseCase(repo ports.ProjectRepositoryPort) *ResolveProjectUseCase {
	return &ResolveProjectUseCase{repo: repo}
}

// Execute maps an API key to its project. Lookup failures are returned as
// is so the caller can reject the request without touching anything else.
func (uc *ResolveProjectUseCase) Execute(ctx context.Context, apiKey string) (*domain.Project, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	p, err := uc.repo.FindByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if p == nil || p.ID == "" {
		return nil, ErrInvalidAPIKey
	}

	if p.Name == "" {
		p.Name = domain.DefaultProjectName
	}
	return p, nil
}
