package postgres

import (
	"context"
	"database/sql"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
}

// NewSQLDB adapts *sql.DB; it already satisfies DB, the wrapper only keeps
// the rest of its surface out of the repository.
func NewSQLDB(db *sql.DB) DB {
	return sqlDB{db: db}
}

type sqlDB struct {
	db *sql.DB
}

func (s sqlDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func (s sqlDB) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
