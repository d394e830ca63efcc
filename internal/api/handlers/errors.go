package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/pkg/errors"
)

// writeError maps domain errors to a status code and a {message} body
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		malformed    *errors.ErrMalformedRequest
		emptyCart    *errors.ErrEmptyCart
		invalidItem  *errors.ErrInvalidItem
		invalidTotal *errors.ErrInvalidTotal
		validation   *errors.ErrValidation
		conflict     *errors.ErrConflict
		notFound     *errors.ErrNotFound
		unauthorized *errors.ErrUnauthorized
	)

	switch {
	case stderrors.As(err, &malformed),
		stderrors.As(err, &emptyCart),
		stderrors.As(err, &invalidItem),
		stderrors.As(err, &invalidTotal):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case stderrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"message": validation.Error(),
			"errors":  validation.Fields,
		})
	case stderrors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"message": conflict.Error()})
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound.Error()})
	case stderrors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": unauthorized.Error()})
	default:
		logger.Error("Request failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		message := err.Error()
		if message == "" {
			message = "internal error"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": message})
	}
}
