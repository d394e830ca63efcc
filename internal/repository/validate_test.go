package repository

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/pkg/errors"
)

func TestValidateRecord_Order(t *testing.T) {
	order := &domain.Order{
		OrderNumber:   "ORD-1",
		CustomerName:  "Kari",
		CustomerEmail: "kari@example.no",
		Items:         []domain.OrderItem{{BookID: 1, Quantity: 1, Price: 10}},
		TotalAmount:   10,
		Status:        domain.OrderStatusPending,
	}
	require.NoError(t, ValidateRecord(order))

	order.CustomerEmail = "kari"
	order.Items[0].Quantity = 0
	order.Status = "lost"

	err := ValidateRecord(order)
	var verr *errors.ErrValidation
	require.True(t, stderrors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"customerEmail":    "must be a valid email address",
		"items.0.quantity": "must be at least 1",
		"status":           "must be one of: pending confirmed shipped delivered",
	}, verr.Fields)
}

func TestValidateRecord_EmptyItems(t *testing.T) {
	err := ValidateRecord(&domain.Order{
		OrderNumber:   "ORD-1",
		CustomerName:  "Kari",
		CustomerEmail: "kari@example.no",
		Items:         []domain.OrderItem{},
		Status:        domain.OrderStatusPending,
	})

	var verr *errors.ErrValidation
	require.True(t, stderrors.As(err, &verr))
	assert.Equal(t, "must have at least 1 entries", verr.Fields["items"])
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items.0.book", fieldPath("Order.items[0].book"))
	assert.Equal(t, "hero.gradientStart", fieldPath("SiteSettings.hero.gradientStart"))
	assert.Equal(t, "status", fieldPath("status"))
}
