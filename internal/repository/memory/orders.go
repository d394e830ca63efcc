package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/pkg/errors"
)

type orderRepository struct {
	s      *store
	logger *zap.Logger
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	c.Items = append([]domain.OrderItem(nil), o.Items...)
	if o.CustomerPhone != nil {
		p := *o.CustomerPhone
		c.CustomerPhone = &p
	}
	return &c
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := repository.ValidateRecord(order); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.OrderNumber == order.OrderNumber {
			return &errors.ErrConflict{Message: "order number already exists: " + order.OrderNumber}
		}
	}
	for i, item := range order.Items {
		if r.s.bookByID(item.BookID) == nil {
			return &errors.ErrValidation{
				Message: "validation failed",
				Fields:  map[string]string{fmt.Sprintf("items.%d.book", i): "references a book that does not exist"},
			}
		}
	}

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	r.s.orders = append(r.s.orders, cloneOrder(order))
	r.logger.Debug("Stored order in memory", zap.String("order_number", order.OrderNumber))
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.orders {
		if o.OrderNumber == orderNumber {
			return cloneOrder(o), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: orderNumber}
}

// List returns newest orders first
func (r *orderRepository) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Order
	for i := len(r.s.orders) - 1; i >= 0; i-- {
		o := r.s.orders[i]
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	if offset >= len(out) {
		return []*domain.Order{}, nil
	}
	if offset > 0 {
		out = out[offset:]
	}
	return page(out, limit), nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, o := range r.s.orders {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

type orderEventRepository struct {
	s *store
}

func (r *orderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	c := *event
	r.s.events = append(r.s.events, &c)
	return nil
}

func (r *orderEventRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.OrderEvent
	for _, e := range r.s.events {
		if e.OrderID == orderID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}

type adminUserRepository struct {
	s *store
}

func (r *adminUserRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.AdminUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	lookup := repository.APIKeyLookup(apiKey)
	for _, u := range r.s.admins {
		if !u.IsActive || u.APIKeyLookup != lookup {
			continue
		}
		if repository.VerifyAPIKey(apiKey, u.APIKeyHash) {
			c := *u
			return &c, nil
		}
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.admins {
		if u.Email == user.Email {
			return &errors.ErrConflict{Message: "admin user already exists: " + user.Email}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	c := *user
	r.s.admins = append(r.s.admins, &c)
	return nil
}

type globalsRepository struct {
	s *store
}

func (r *globalsRepository) Get(ctx context.Context, slug string) ([]byte, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	data, ok := r.s.globals[slug]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "global", ID: slug}
	}
	return append([]byte(nil), data...), nil
}

func (r *globalsRepository) Put(ctx context.Context, slug string, data []byte) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.globals[slug] = append([]byte(nil), data...)
	return nil
}
