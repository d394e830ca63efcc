package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/api/handlers"
	"github.com/bookdragons/storefront/internal/api/middleware"
	"github.com/bookdragons/storefront/internal/config"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, mailer service.Mailer, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	orders := service.NewOrderService(repos, mailer, logger)
	settings := service.NewSettingsService(repos.Globals, logger)

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Bookdragons API",
			"endpoints": []string{
				"GET /health",
				"GET /api/books",
				"GET /api/books/:slug",
				"GET /api/authors",
				"GET /api/authors/:slug",
				"GET /api/genres",
				"GET /api/genres/:slug",
				"GET /api/globals/site-settings",
				"POST /api/orders",
				"GET /api/orders/:orderNumber",
				"GET /api/admin/orders",
				"PATCH /api/admin/orders/:id/status",
				"GET /api/admin/orders/:id/events",
				"PUT /api/admin/globals/site-settings",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiRoutes := router.Group("/api")
	{
		// Catalog
		apiRoutes.GET("/books", handlers.HandleListBooks(repos, logger))
		apiRoutes.GET("/books/:slug", handlers.HandleGetBook(repos, logger))
		apiRoutes.GET("/authors", handlers.HandleListAuthors(repos, logger))
		apiRoutes.GET("/authors/:slug", handlers.HandleGetAuthor(repos, logger))
		apiRoutes.GET("/genres", handlers.HandleListGenres(repos, logger))
		apiRoutes.GET("/genres/:slug", handlers.HandleGetGenre(repos, logger))

		// Checkout
		apiRoutes.POST("/orders", handlers.HandleCreateOrder(orders, logger))
		apiRoutes.GET("/orders/:orderNumber", handlers.HandleGetOrder(orders, logger))

		apiRoutes.GET("/globals/site-settings", handlers.HandleGetSiteSettings(settings, logger))

		adminRoutes := apiRoutes.Group("/admin")
		adminRoutes.Use(middleware.AdminAuthMiddleware(repos.AdminUser, logger))
		{
			adminRoutes.GET("/orders", handlers.HandleListOrders(orders, logger))
			adminRoutes.PATCH("/orders/:id/status", handlers.HandleUpdateOrderStatus(orders, logger))
			adminRoutes.GET("/orders/:id/events", handlers.HandleListOrderEvents(orders, logger))
			adminRoutes.PUT("/globals/site-settings", handlers.HandleUpdateSiteSettings(settings, logger))
		}
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": fmt.Sprintf("internal server error: %v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
