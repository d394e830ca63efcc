package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/service"
	"github.com/bookdragons/storefront/pkg/errors"
)

const duplicateOrderMessage = "order number already exists, please try again"

// maxOrderBody bounds the size of an order submission
const maxOrderBody = 1 << 20

// HandleCreateOrder handles POST /api/orders
func HandleCreateOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxOrderBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "could not read request body"})
			return
		}

		order, err := orders.CreateOrder(c.Request.Context(), body)
		if err != nil {
			var conflict *errors.ErrConflict
			if stderrors.As(err, &conflict) {
				logger.Info("Duplicate order number", zap.Error(err))
				c.JSON(http.StatusConflict, gin.H{"message": duplicateOrderMessage})
				return
			}
			writeError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// HandleGetOrder handles GET /api/orders/:orderNumber
func HandleGetOrder(orders *service.OrderService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.GetByOrderNumber(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
