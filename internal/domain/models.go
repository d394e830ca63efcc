package domain

import (
	"time"

	"github.com/google/uuid"
)

// Author represents a book author
type Author struct {
	ID          int64
	Name        string
	Slug        string
	Bio         string
	PhotoURL    *string
	BirthYear   *int
	Nationality *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Genre represents a catalog genre
type Genre struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Book represents a sellable catalog entry. Price is in whole NOK.
type Book struct {
	ID            int64
	Title         string
	Slug          string
	Description   string
	AuthorID      int64
	GenreIDs      []int64
	AgeRatings    []AgeRating
	Price         int64
	ISBN          string
	PublishedYear *int
	Stock         int
	CoverImageURL *string
	Featured      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InStock reports whether the book can be added to a cart
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// Order represents a storefront order created at checkout
type Order struct {
	ID            uuid.UUID   `json:"id"`
	OrderNumber   string      `json:"orderNumber" validate:"required,max=64"`
	CustomerName  string      `json:"customerName" validate:"required,max=200"`
	CustomerEmail string      `json:"customerEmail" validate:"required,email"`
	CustomerPhone *string     `json:"customerPhone" validate:"omitempty,max=40"`
	Items         []OrderItem `json:"items" validate:"required,min=1,dive"`
	TotalAmount   int64       `json:"totalAmount" validate:"gte=0"`
	Status        OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// OrderItem is one line of an order. Price is the unit price at checkout.
type OrderItem struct {
	BookID   int64 `json:"book" validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"min=1"`
	Price    int64 `json:"price" validate:"gte=0"`
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}

// AdminUser is an operator allowed to use the admin API
type AdminUser struct {
	ID           uuid.UUID
	Email        string
	APIKeyHash   string
	APIKeyLookup string // SHA256(apiKey) hex for fast lookup
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
