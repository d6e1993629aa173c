package usecase_test

import (
	"context"
	"errors"
	"testing"

	"pulseboard/internal/projects/core/domain"
	"pulseboard/internal/projects/core/usecase"
)

type fakeProjectRepo struct {
	FindFn  func(ctx context.Context, apiKey string) (*domain.Project, error)
	lastKey string
	called  bool
}

func (f *fakeProjectRepo) FindByAPIKey(ctx context.Context, apiKey string) (*domain.Project, error) {
	f.called = true
	f.lastKey = apiKey
	if f.FindFn != nil {
		return f.FindFn(ctx, apiKey)
	}
	return nil, nil
}

func TestResolveProject_Success(t *testing.T) {
	repo := &fakeProjectRepo{
		FindFn: func(ctx context.Context, apiKey string) (*domain.Project, error) {
			return &domain.Project{ID: "proj_1", Name: "Shop"}, nil
		},
	}
	uc := usecase.NewResolveProjectUseCase(repo)

	p, err := uc.Execute(context.Background(), " key_1 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "proj_1" || p.Name != "Shop" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if repo.lastKey != "key_1" {
		t.Fatalf("expected trimmed key, got %q", repo.lastKey)
	}
}

func TestResolveProject_DefaultName(t *testing.T) {
	repo := &fakeProjectRepo{
		FindFn: func(ctx context.Context, apiKey string) (*domain.Project, error) {
			return &domain.Project{ID: "proj_1"}, nil
		},
	}
	uc := usecase.NewResolveProjectUseCase(repo)

	p, err := uc.Execute(context.Background(), "key_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != domain.DefaultProjectName {
		t.Fatalf("expected default name, got %q", p.Name)
	}
}

func TestResolveProject_MissingKey(t *testing.T) {
	repo := &fakeProjectRepo{}
	uc := usecase.NewResolveProjectUseCase(repo)

	_, err := uc.Execute(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if repo.called {
		t.Fatalf("expected repository not to be called")
	}
}

func TestResolveProject_UnknownKey(t *testing.T) {
	uc := usecase.NewResolveProjectUseCase(&fakeProjectRepo{})

	_, err := uc.Execute(context.Background(), "nope")
	if !errors.Is(err, usecase.ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
}

func TestResolveProject_StoreError(t *testing.T) {
	storeErr := errors.New("db failure")
	repo := &fakeProjectRepo{
		FindFn: func(ctx context.Context, apiKey string) (*domain.Project, error) {
			return nil, storeErr
		},
	}
	uc := usecase.NewResolveProjectUseCase(repo)

	_, err := uc.Execute(context.Background(), "key_1")
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}
