package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"pulseboard/internal/projects/core/domain"
	"pulseboard/internal/projects/core/ports"
)

type ProjectRepository struct {
	db DB
}

func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

var _ ports.ProjectRepositoryPort = (*ProjectRepository)(nil)

const findByAPIKeySQL = `
SELECT id, name
FROM projects
WHERE api_key = $1
LIMIT 1`

func (r *ProjectRepository) FindByAPIKey(ctx context.Context, apiKey string) (*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, findByAPIKeySQL, apiKey)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	defer rows.Close()

	var p *domain.Project
	if rows.Next() {
		var id string
		var name sql.NullString
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p = &domain.Project{ID: id, Name: name.String}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}
