package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/pkg/errors"
)

// OrderService creates storefront orders and moves them through their statuses
type OrderService struct {
	repos  *repository.Repositories
	mailer Mailer
	logger *zap.Logger
}

// NewOrderService creates a new order service. mailer may be nil.
func NewOrderService(repos *repository.Repositories, mailer Mailer, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:  repos,
		mailer: mailer,
		logger: logger,
	}
}

// CreateOrder validates a raw submission and stores it. Submission errors
// come back before anything is written; storage errors are returned as the
// repository reports them.
func (s *OrderService) CreateOrder(ctx context.Context, body []byte) (*domain.Order, error) {
	order, err := ParseOrderSubmission(body)
	if err != nil {
		s.logger.Info("Rejected order submission", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Creating order",
		zap.String("order_number", order.OrderNumber),
		zap.Int("item_count", len(order.Items)),
		zap.Int64("total_amount", order.TotalAmount),
	)
	if err := s.repos.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	// Log order creation event
	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: domain.OrderEventCreated,
		EventData: map[string]interface{}{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event", zap.Error(err), zap.String("order_number", order.OrderNumber))
	}

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(order); err != nil {
			s.logger.Warn("Failed to send order confirmation", zap.Error(err))
		}
	}

	return order, nil
}

// GetByOrderNumber returns the order shown on the confirmation page
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return s.repos.Order.GetByOrderNumber(ctx, orderNumber)
}

// ListOrders returns orders newest first, optionally filtered by status
func (s *OrderService) ListOrders(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	if status != nil && !status.IsValid() {
		return nil, &errors.ErrValidation{
			Message: "validation failed",
			Fields:  map[string]string{"status": fmt.Sprintf("unknown status %q", *status)},
		}
	}
	return s.repos.Order.List(ctx, status, limit, offset)
}

// SetStatus sets any known status regardless of the current one.
// Setting the current status again is accepted and still recorded.
func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, &errors.ErrValidation{
			Message: "validation failed",
			Fields:  map[string]string{"status": fmt.Sprintf("unknown status %q", status)},
		}
	}

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	previous := order.Status

	if err := s.repos.Order.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	// Log event
	event := &domain.OrderEvent{
		OrderID:   orderID,
		EventType: domain.OrderEventStatusChange,
		EventData: map[string]interface{}{
			"from": previous,
			"to":   status,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record status change event", zap.Error(err), zap.String("order_id", orderID.String()))
	}

	s.logger.Info("Order status updated",
		zap.String("order_number", order.OrderNumber),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)
	return s.repos.Order.GetByID(ctx, orderID)
}

// Events returns the audit trail for an order
func (s *OrderService) Events(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	if _, err := s.repos.Order.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repos.OrderEvent.GetByOrderID(ctx, orderID)
}
