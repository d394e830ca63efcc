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

const bookColumns = `
	b.id, b.title, b.slug, b.description, b.author_id, b.age_ratings, b.price, b.isbn,
	b.published_year, b.stock, b.cover_image_url, b.featured, b.created_at, b.updated_at`

type bookRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sql.DB, logger *zap.Logger) *bookRepository {
	return &bookRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner, extra ...interface{}) (*domain.Book, error) {
	var book domain.Book
	var ageRatings []string
	var publishedYear sql.NullInt64
	var coverImageURL sql.NullString

	dest := []interface{}{
		&book.ID,
		&book.Title,
		&book.Slug,
		&book.Description,
		&book.AuthorID,
		pq.Array(&ageRatings),
		&book.Price,
		&book.ISBN,
		&publishedYear,
		&book.Stock,
		&coverImageURL,
		&book.Featured,
		&book.CreatedAt,
		&book.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	for _, r := range ageRatings {
		book.AgeRatings = append(book.AgeRatings, domain.AgeRating(r))
	}
	if publishedYear.Valid {
		y := int(publishedYear.Int64)
		book.PublishedYear = &y
	}
	if coverImageURL.Valid {
		book.CoverImageURL = &coverImageURL.String
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, filter repository.BookFilter) ([]*domain.Book, int, error) {
	var where whereClause
	if len(filter.IDs) > 0 {
		where.add("b.id = ANY($%d)", pq.Array(filter.IDs))
	}
	if len(filter.Slugs) > 0 {
		where.add("b.slug = ANY($%d)", pq.Array(filter.Slugs))
	}
	if filter.Featured != nil {
		where.add("b.featured = $%d", *filter.Featured)
	}
	if len(filter.AuthorIDs) > 0 {
		where.add("b.author_id = ANY($%d)", pq.Array(filter.AuthorIDs))
	}
	if len(filter.GenreIDs) > 0 {
		where.add("EXISTS (SELECT 1 FROM book_genres bg WHERE bg.book_id = b.id AND bg.genre_id = ANY($%d))", pq.Array(filter.GenreIDs))
	}
	if len(filter.AgeRatings) > 0 {
		ratings := make([]string, len(filter.AgeRatings))
		for i, a := range filter.AgeRatings {
			ratings[i] = string(a)
		}
		where.add("b.age_ratings && $%d", pq.Array(ratings))
	}

	limitArg := where.next()
	query := `SELECT ` + bookColumns + `, COUNT(*) OVER() FROM books b` + where.String() +
		` ORDER BY b.created_at DESC, b.id DESC LIMIT $` + strconv.Itoa(limitArg)
	args := append(where.args, repository.NormalizeLimit(filter.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list books", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var books []*domain.Book
	total := 0
	for rows.Next() {
		book, err := scanBook(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadGenreIDs(ctx, books); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *bookRepository) GetBySlug(ctx context.Context, slug string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books b WHERE b.slug = $1`

	book, err := scanBook(r.db.QueryRowContext(ctx, query, slug))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "book", ID: slug}
	}
	if err != nil {
		r.logger.Error("Failed to get book by slug", zap.Error(err))
		return nil, err
	}

	if err := r.loadGenreIDs(ctx, []*domain.Book{book}); err != nil {
		return nil, err
	}
	return book, nil
}

func (r *bookRepository) loadGenreIDs(ctx context.Context, books []*domain.Book) error {
	if len(books) == 0 {
		return nil
	}
	ids := make([]int64, len(books))
	byID := make(map[int64]*domain.Book, len(books))
	for i, b := range books {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT book_id, genre_id FROM book_genres WHERE book_id = ANY($1) ORDER BY book_id, position`,
		pq.Array(ids))
	if err != nil {
		r.logger.Error("Failed to load book genres", zap.Error(err))
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, genreID int64
		if err := rows.Scan(&bookID, &genreID); err != nil {
			return err
		}
		if b, ok := byID[bookID]; ok {
			b.GenreIDs = append(b.GenreIDs, genreID)
		}
	}
	return rows.Err()
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	if book.UpdatedAt.IsZero() {
		book.UpdatedAt = now
	}
	ratings := make([]string, len(book.AgeRatings))
	for i, a := range book.AgeRatings {
		ratings[i] = string(a)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO books (
			title, slug, description, author_id, age_ratings, price, isbn,
			published_year, stock, cover_image_url, featured, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`,
		book.Title,
		book.Slug,
		book.Description,
		book.AuthorID,
		pq.Array(ratings),
		book.Price,
		book.ISBN,
		book.PublishedYear,
		book.Stock,
		book.CoverImageURL,
		book.Featured,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID)
	if err != nil {
		r.logger.Error("Failed to create book", zap.Error(err), zap.String("slug", book.Slug))
		return translateWriteError(err, "book")
	}

	for i, genreID := range book.GenreIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre_id, position) VALUES ($1, $2, $3)`,
			book.ID, genreID, i); err != nil {
			r.logger.Error("Failed to link book genre", zap.Error(err), zap.Int64("genre_id", genreID))
			return translateWriteError(err, "book genre")
		}
	}

	return tx.Commit()
}
