package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
)

const AdminContextKey = "admin"

// AdminAuthMiddleware authenticates admin requests using a Bearer API key
func AdminAuthMiddleware(admins repository.AdminUserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}

		// Extract Bearer token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization header format"})
			return
		}

		apiKey := strings.TrimSpace(parts[1])
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing API key"})
			return
		}

		// Lookup by SHA256, then bcrypt verification in the repository
		admin, err := admins.GetByAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			logger.Warn("Failed to authenticate admin", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid API key"})
			return
		}

		if !admin.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "admin account is inactive"})
			return
		}

		c.Set(AdminContextKey, admin)
		c.Next()
	}
}

// GetAdminFromContext retrieves the authenticated admin from the Gin context
func GetAdminFromContext(c *gin.Context) (*domain.AdminUser, bool) {
	admin, exists := c.Get(AdminContextKey)
	if !exists {
		return nil, false
	}

	a, ok := admin.(*domain.AdminUser)
	return a, ok
}
