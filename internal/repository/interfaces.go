package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookdragons/storefront/internal/domain"
)

// BookRepository defines book data access methods
type BookRepository interface {
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Book, error)
	Create(ctx context.Context, book *domain.Book) error
}

// AuthorRepository defines author data access methods
type AuthorRepository interface {
	List(ctx context.Context, filter AuthorFilter) ([]*domain.Author, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Author, error)
	Create(ctx context.Context, author *domain.Author) error
}

// GenreRepository defines genre data access methods
type GenreRepository interface {
	List(ctx context.Context, filter GenreFilter) ([]*domain.Genre, int, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Genre, error)
	Create(ctx context.Context, genre *domain.Genre) error
}

// OrderRepository defines order data access methods.
// Create validates the record and writes the order with its items atomically.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// OrderEventRepository defines order event data access methods
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// AdminUserRepository defines admin user data access methods
type AdminUserRepository interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.AdminUser, error)
	Create(ctx context.Context, user *domain.AdminUser) error
}

// GlobalsRepository stores singleton JSON documents such as site settings
type GlobalsRepository interface {
	Get(ctx context.Context, slug string) ([]byte, error)
	Put(ctx context.Context, slug string, data []byte) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Book       BookRepository
	Author     AuthorRepository
	Genre      GenreRepository
	Order      OrderRepository
	OrderEvent OrderEventRepository
	AdminUser  AdminUserRepository
	Globals    GlobalsRepository
}
