package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/service"
)

// HandleGetSiteSettings handles GET /api/globals/site-settings
func HandleGetSiteSettings(settings *service.SettingsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := settings.Get(c.Request.Context())
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// HandleUpdateSiteSettings handles PUT /api/admin/globals/site-settings
func HandleUpdateSiteSettings(settings *service.SettingsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc domain.SiteSettings
		if err := c.ShouldBindJSON(&doc); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "invalid site settings document",
				"details": err.Error(),
			})
			return
		}

		view, err := settings.Update(c.Request.Context(), doc)
		if err != nil {
			writeError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
