package cart

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/storefront"
	"github.com/bookdragons/storefront/pkg/errors"
)

// OrderSubmitter sends an order to the bookstore
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, sub storefront.OrderSubmission) (*storefront.Order, error)
}

// Contact is what the customer fills in on the checkout form
type Contact struct {
	Name  string
	Email string
	Phone string
}

// NewOrderNumber derives an order number from the current time in milliseconds
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}

// BuildSubmission turns a cart snapshot into an order payload
func BuildSubmission(items []Item, contact Contact, orderNumber string) (storefront.OrderSubmission, error) {
	lines := make([]storefront.OrderLine, 0, len(items))
	for _, item := range items {
		bookID, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil {
			return storefront.OrderSubmission{}, fmt.Errorf("cart line %q has a non-numeric book id", item.ID)
		}
		lines = append(lines, storefront.OrderLine{
			Book:     bookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	return storefront.OrderSubmission{
		OrderNumber:   orderNumber,
		CustomerName:  contact.Name,
		CustomerEmail: contact.Email,
		CustomerPhone: strings.TrimSpace(contact.Phone),
		Items:         lines,
		TotalAmount:   Total(items),
		Status:        string(domain.OrderStatusPending),
	}, nil
}

// Checkout submits the cart as an order. The cart is cleared only after
// the order was created; on any error it is left as it was. There is no
// retry: a conflict means the caller should check out again, which uses a
// fresh order number.
func (c *Cart) Checkout(ctx context.Context, client OrderSubmitter, contact Contact) (*storefront.Order, error) {
	items, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &errors.ErrEmptyCart{}
	}

	sub, err := BuildSubmission(items, contact, NewOrderNumber(c.now()))
	if err != nil {
		return nil, err
	}

	c.logger.Info("Submitting order",
		zap.String("order_number", sub.OrderNumber),
		zap.Int("lines", len(sub.Items)),
		zap.Int64("total_amount", sub.TotalAmount),
	)
	order, err := client.CreateOrder(ctx, sub)
	if err != nil {
		c.logger.Warn("Order submission failed", zap.Error(err), zap.String("order_number", sub.OrderNumber))
		return nil, err
	}

	if err := c.ClearCart(); err != nil {
		c.logger.Error("Order placed but cart could not be cleared", zap.Error(err), zap.String("order_number", order.OrderNumber))
		return order, err
	}
	return order, nil
}
