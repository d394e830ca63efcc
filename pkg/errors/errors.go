package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when a unique value is already taken (e.g. order number)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when the storage layer rejects a record
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrMalformedRequest is returned when a required top-level field is missing or has the wrong type
type ErrMalformedRequest struct {
	Field  string
	Reason string
}

func (e *ErrMalformedRequest) Error() string {
	if e.Reason != "" {
		return "malformed request: " + e.Reason
	}
	if e.Field != "" {
		return fmt.Sprintf("missing required fields: %s", e.Field)
	}
	return "missing required fields"
}

// ErrEmptyCart is returned when an order is submitted without items
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

// ErrInvalidItem reports the first line item that failed its checks
type ErrInvalidItem struct {
	Index int
	Field string
	Value interface{}
}

func (e *ErrInvalidItem) Error() string {
	switch e.Field {
	case "book":
		return fmt.Sprintf("invalid book id in cart (item %d): %v", e.Index, e.Value)
	case "quantity":
		return fmt.Sprintf("invalid quantity in cart (item %d): %v", e.Index, e.Value)
	case "price":
		return fmt.Sprintf("invalid price in cart (item %d): %v", e.Index, e.Value)
	default:
		return fmt.Sprintf("invalid cart item %d", e.Index)
	}
}

// ErrInvalidTotal is returned when totalAmount is missing or not positive
type ErrInvalidTotal struct {
	Value interface{}
}

func (e *ErrInvalidTotal) Error() string {
	return fmt.Sprintf("invalid total amount: %v", e.Value)
}
