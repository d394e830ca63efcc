package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/bookdragons/storefront/pkg/errors"
)

type globalsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGlobalsRepository creates a new globals repository
func NewGlobalsRepository(db *sql.DB, logger *zap.Logger) *globalsRepository {
	return &globalsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *globalsRepository) Get(ctx context.Context, slug string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM globals WHERE slug = $1`, slug).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "global", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get global", zap.Error(err), zap.String("slug", slug))
		return nil, err
	}
	return data, nil
}

func (r *globalsRepository) Put(ctx context.Context, slug string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO globals (slug, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`, slug, data, time.Now())
	if err != nil {
		r.logger.Error("Failed to save global", zap.Error(err), zap.String("slug", slug))
		return err
	}
	return nil
}
