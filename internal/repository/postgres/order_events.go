package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
)

// orderEventRepository stores the audit trail of an order. Event data is
// kept as JSONB; values come back with JSON types (statuses as strings).
type orderEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewOrderEventRepository(db *sql.DB, logger *zap.Logger) *orderEventRepository {
	return &orderEventRepository{db: db, logger: logger}
}

func (r *orderEventRepository) Create(ctx context.Context, event *domain.OrderEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	data := []byte("{}")
	if len(event.EventData) > 0 {
		var err error
		if data, err = json.Marshal(event.EventData); err != nil {
			return fmt.Errorf("encode %s event data: %w", event.EventType, err)
		}
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO order_events (id, order_id, event_type, event_data, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, event.OrderID, event.EventType, data, event.CreatedAt); err != nil {
		r.logger.Error("Failed to record order event",
			zap.Error(err),
			zap.String("order_id", event.OrderID.String()),
			zap.String("event_type", event.EventType),
		)
		return translateWriteError(err, "order event")
	}
	return nil
}

// GetByOrderID returns the events of one order, oldest first
func (r *orderEventRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, event_type, event_data, created_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY created_at, id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query events of order %s: %w", orderID, err)
	}
	defer rows.Close()

	events := []*domain.OrderEvent{}
	for rows.Next() {
		event, err := scanOrderEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func scanOrderEvent(rows *sql.Rows) (*domain.OrderEvent, error) {
	var (
		event domain.OrderEvent
		data  []byte
	)
	if err := rows.Scan(&event.ID, &event.OrderID, &event.EventType, &data, &event.CreatedAt); err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &event.EventData); err != nil {
			return nil, fmt.Errorf("decode event %s: %w", event.ID, err)
		}
	}
	return &event, nil
}
