package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/service"
)

// UpdateStatusRequest represents update status request
type UpdateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// OrderEventResponse represents one audit event
type OrderEventResponse struct {
	ID        string                 `json:"id"`
	EventType string                 `json:"eventType"`
	EventData map[string]interface{} `json:"eventData"`
	CreatedAt string                 `json:"createdAt"`
}

// HandleListOrders handles GET /api/admin/orders
func HandleListOrders(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse query parameters
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}
		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		var status *domain.OrderStatus
		if s := c.Query("status"); s != "" {
			st := domain.OrderStatus(s)
			status = &st
		}

		list, err := orders.ListOrders(c.Request.Context(), status, limit, offset)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": list,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleUpdateOrderStatus handles PATCH /api/admin/orders/:id/status
func HandleUpdateOrderStatus(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order ID"})
			return
		}

		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "validation failed",
				"details": err.Error(),
			})
			return
		}

		order, err := orders.SetStatus(c.Request.Context(), orderID, req.Status)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// HandleListOrderEvents handles GET /api/admin/orders/:id/events
func HandleListOrderEvents(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order ID"})
			return
		}

		events, err := orders.Events(c.Request.Context(), orderID)
		if err != nil {
			writeError(c, logger, err)
			return
		}

		out := make([]OrderEventResponse, len(events))
		for i, e := range events {
			out[i] = OrderEventResponse{
				ID:        e.ID.String(),
				EventType: e.EventType,
				EventData: e.EventData,
				CreatedAt: formatTime(e.CreatedAt),
			}
		}
		c.JSON(http.StatusOK, gin.H{"events": out})
	}
}
