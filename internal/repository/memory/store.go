// Package memory keeps every repository in process memory. It backs the
// test suites and STORAGE_DRIVER=memory for local runs without postgres.
package memory

import (
	"sync"

	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
)

// store holds all records behind one lock so cross-entity checks
// (an order referencing a book) see a consistent view.
type store struct {
	mu sync.RWMutex

	books   []*domain.Book
	authors []*domain.Author
	genres  []*domain.Genre
	orders  []*domain.Order
	events  []*domain.OrderEvent
	admins  []*domain.AdminUser
	globals map[string][]byte

	bookSeq   int64
	authorSeq int64
	genreSeq  int64
}

// NewRepositories creates a set of repositories sharing one in-memory store
func NewRepositories(logger *zap.Logger) *repository.Repositories {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &store{globals: make(map[string][]byte)}
	return &repository.Repositories{
		Book:       &bookRepository{s: s},
		Author:     &authorRepository{s: s},
		Genre:      &genreRepository{s: s},
		Order:      &orderRepository{s: s, logger: logger},
		OrderEvent: &orderEventRepository{s: s},
		AdminUser:  &adminUserRepository{s: s},
		Globals:    &globalsRepository{s: s},
	}
}

func (s *store) bookByID(id int64) *domain.Book {
	for _, b := range s.books {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func page[T any](items []T, limit int) []T {
	limit = repository.NormalizeLimit(limit)
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
