package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/pkg/errors"
)

type genreRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGenreRepository creates a new genre repository
func NewGenreRepository(db *sql.DB, logger *zap.Logger) *genreRepository {
	return &genreRepository{
		db:     db,
		logger: logger,
	}
}

func (r *genreRepository) List(ctx context.Context, filter repository.GenreFilter) ([]*domain.Genre, int, error) {
	var where whereClause
	if len(filter.IDs) > 0 {
		where.add("id = ANY($%d)", pq.Array(filter.IDs))
	}
	if len(filter.Slugs) > 0 {
		where.add("slug = ANY($%d)", pq.Array(filter.Slugs))
	}

	query := `SELECT id, name, slug, description, created_at, updated_at, COUNT(*) OVER() FROM genres` +
		where.String() + ` ORDER BY name ASC LIMIT $` + strconv.Itoa(where.next())
	args := append(where.args, repository.NormalizeLimit(filter.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list genres", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var genres []*domain.Genre
	total := 0
	for rows.Next() {
		var g domain.Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedAt, &g.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		genres = append(genres, &g)
	}
	return genres, total, rows.Err()
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	var g domain.Genre
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description, created_at, updated_at FROM genres WHERE slug = $1`, slug,
	).Scan(&g.ID, &g.Name, &g.Slug, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "genre", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get genre by slug", zap.Error(err))
		return nil, err
	}
	return &g, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	now := time.Now()
	if genre.CreatedAt.IsZero() {
		genre.CreatedAt = now
	}
	if genre.UpdatedAt.IsZero() {
		genre.UpdatedAt = now
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO genres (name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, genre.Name, genre.Slug, genre.Description, genre.CreatedAt, genre.UpdatedAt).Scan(&genre.ID)
	if err != nil {
		r.logger.Error("Failed to create genre", zap.Error(err), zap.String("slug", genre.Slug))
		return translateWriteError(err, "genre")
	}
	return nil
}
