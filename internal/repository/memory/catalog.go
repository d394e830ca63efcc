package memory

import (
	"context"
	"time"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/pkg/errors"
)

type bookRepository struct {
	s *store
}

func (r *bookRepository) List(ctx context.Context, filter repository.BookFilter) ([]*domain.Book, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Book
	for _, b := range r.s.books {
		if filter.Matches(b) {
			c := *b
			out = append(out, &c)
		}
	}
	return page(out, filter.Limit), len(out), nil
}

func (r *bookRepository) GetBySlug(ctx context.Context, slug string) (*domain.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, b := range r.s.books {
		if b.Slug == slug {
			c := *b
			return &c, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "book", ID: slug}
}

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.books {
		if b.Slug == book.Slug {
			return &errors.ErrConflict{Message: "book slug already exists: " + book.Slug}
		}
		if b.ISBN != "" && b.ISBN == book.ISBN {
			return &errors.ErrConflict{Message: "book isbn already exists: " + book.ISBN}
		}
	}
	r.s.bookSeq++
	book.ID = r.s.bookSeq
	now := time.Now()
	book.CreatedAt, book.UpdatedAt = now, now
	c := *book
	r.s.books = append(r.s.books, &c)
	return nil
}

type authorRepository struct {
	s *store
}

func (r *authorRepository) List(ctx context.Context, filter repository.AuthorFilter) ([]*domain.Author, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Author
	for _, a := range r.s.authors {
		if filter.Matches(a) {
			c := *a
			out = append(out, &c)
		}
	}
	return page(out, filter.Limit), len(out), nil
}

func (r *authorRepository) GetBySlug(ctx context.Context, slug string) (*domain.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.authors {
		if a.Slug == slug {
			c := *a
			return &c, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "author", ID: slug}
}

func (r *authorRepository) Create(ctx context.Context, author *domain.Author) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.authors {
		if a.Slug == author.Slug {
			return &errors.ErrConflict{Message: "author slug already exists: " + author.Slug}
		}
	}
	r.s.authorSeq++
	author.ID = r.s.authorSeq
	now := time.Now()
	author.CreatedAt, author.UpdatedAt = now, now
	c := *author
	r.s.authors = append(r.s.authors, &c)
	return nil
}

type genreRepository struct {
	s *store
}

func (r *genreRepository) List(ctx context.Context, filter repository.GenreFilter) ([]*domain.Genre, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Genre
	for _, g := range r.s.genres {
		if filter.Matches(g) {
			c := *g
			out = append(out, &c)
		}
	}
	return page(out, filter.Limit), len(out), nil
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*domain.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, g := range r.s.genres {
		if g.Slug == slug {
			c := *g
			return &c, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "genre", ID: slug}
}

func (r *genreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, g := range r.s.genres {
		if g.Slug == genre.Slug || g.Name == genre.Name {
			return &errors.ErrConflict{Message: "genre already exists: " + genre.Slug}
		}
	}
	r.s.genreSeq++
	genre.ID = r.s.genreSeq
	now := time.Now()
	genre.CreatedAt, genre.UpdatedAt = now, now
	c := *genre
	r.s.genres = append(r.s.genres, &c)
	return nil
}
