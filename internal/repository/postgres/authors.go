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

const authorColumns = `id, name, slug, bio, photo_url, birth_year, nationality, created_at, updated_at`

type authorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *sql.DB, logger *zap.Logger) *authorRepository {
	return &authorRepository{
		db:     db,
		logger: logger,
	}
}

func scanAuthor(row rowScanner, extra ...interface{}) (*domain.Author, error) {
	var author domain.Author
	var photoURL, nationality sql.NullString
	var birthYear sql.NullInt64

	dest := []interface{}{
		&author.ID,
		&author.Name,
		&author.Slug,
		&author.Bio,
		&photoURL,
		&birthYear,
		&nationality,
		&author.CreatedAt,
		&author.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if photoURL.Valid {
		author.PhotoURL = &photoURL.String
	}
	if birthYear.Valid {
		y := int(birthYear.Int64)
		author.BirthYear = &y
	}
	if nationality.Valid {
		author.Nationality = &nationality.String
	}
	return &author, nil
}

func (r *authorRepository) List(ctx context.Context, filter repository.AuthorFilter) ([]*domain.Author, int, error) {
	var where whereClause
	if len(filter.IDs) > 0 {
		where.add("id = ANY($%d)", pq.Array(filter.IDs))
	}
	if len(filter.Slugs) > 0 {
		where.add("slug = ANY($%d)", pq.Array(filter.Slugs))
	}
	if len(filter.Nationalities) > 0 {
		where.add("nationality = ANY($%d)", pq.Array(filter.Nationalities))
	}

	query := `SELECT ` + authorColumns + `, COUNT(*) OVER() FROM authors` + where.String() +
		` ORDER BY name ASC LIMIT $` + strconv.Itoa(where.next())
	args := append(where.args, repository.NormalizeLimit(filter.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list authors", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var authors []*domain.Author
	total := 0
	for rows.Next() {
		author, err := scanAuthor(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		authors = append(authors, author)
	}
	return authors, total, rows.Err()
}

func (r *authorRepository) GetBySlug(ctx context.Context, slug string) (*domain.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE slug = $1`

	author, err := scanAuthor(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "author", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get author by slug", zap.Error(err))
		return nil, err
	}
	return author, nil
}

func (r *authorRepository) Create(ctx context.Context, author *domain.Author) error {
	now := time.Now()
	if author.CreatedAt.IsZero() {
		author.CreatedAt = now
	}
	if author.UpdatedAt.IsZero() {
		author.UpdatedAt = now
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO authors (name, slug, bio, photo_url, birth_year, nationality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		author.Name,
		author.Slug,
		author.Bio,
		author.PhotoURL,
		author.BirthYear,
		author.Nationality,
		author.CreatedAt,
		author.UpdatedAt,
	).Scan(&author.ID)
	if err != nil {
		r.logger.Error("Failed to create author", zap.Error(err), zap.String("slug", author.Slug))
		return translateWriteError(err, "author")
	}
	return nil
}
