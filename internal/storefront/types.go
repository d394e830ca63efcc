package storefront

import (
	"encoding/json"
	"fmt"
	"time"
)

// Book is the catalog shape the cart needs. Author and genres stay raw
// because they are ids or expanded documents depending on depth.
type Book struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Price       int64           `json:"price"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	AgeRatings  []string        `json:"ageRating"`
	Author      json.RawMessage `json:"author"`
	Genres      json.RawMessage `json:"genres"`
	Description string          `json:"description"`
}

// BookList is one page of the books collection
type BookList struct {
	Docs      []Book `json:"docs"`
	TotalDocs int    `json:"totalDocs"`
	Limit     int    `json:"limit"`
}

// OrderLine is one submitted item
type OrderLine struct {
	Book     int64 `json:"book"`
	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"`
}

// OrderSubmission is the body of POST /api/orders
type OrderSubmission struct {
	OrderNumber   string      `json:"orderNumber"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Items         []OrderLine `json:"items"`
	TotalAmount   int64       `json:"totalAmount"`
	Status        string      `json:"status,omitempty"`
}

// Order is a stored order as returned by the API
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone *string     `json:"customerPhone"`
	Items         []OrderLine `json:"items"`
	TotalAmount   int64       `json:"totalAmount"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// APIError is a non-success response from the bookstore API
type APIError struct {
	StatusCode int               `json:"-"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bookstore API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("bookstore API returned %d: %s", e.StatusCode, e.Message)
}
