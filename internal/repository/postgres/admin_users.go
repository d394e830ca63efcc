package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/domain"
	"github.com/bookdragons/storefront/internal/repository"
	"github.com/bookdragons/storefront/pkg/errors"
)

type adminUserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *sql.DB, logger *zap.Logger) *adminUserRepository {
	return &adminUserRepository{
		db:     db,
		logger: logger,
	}
}

// GetByAPIKey finds the active admin by the SHA256 lookup column, then verifies with bcrypt
func (r *adminUserRepository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.AdminUser, error) {
	lookupKey := repository.APIKeyLookup(apiKey)
	query := `
		SELECT id, email, api_key_hash, api_key_lookup, is_active, created_at, updated_at
		FROM admin_users
		WHERE is_active = true AND api_key_lookup = $1
	`

	var user domain.AdminUser
	err := r.db.QueryRowContext(ctx, query, lookupKey).Scan(
		&user.ID,
		&user.Email,
		&user.APIKeyHash,
		&user.APIKeyLookup,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		r.logger.Info("API key did not match any admin user", zap.String("lookup_key_prefix", safePrefix(lookupKey, 8)))
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	if err != nil {
		r.logger.Error("Failed to query admin users", zap.Error(err))
		return nil, err
	}

	if !repository.VerifyAPIKey(apiKey, user.APIKeyHash) {
		r.logger.Debug("API key lookup found admin but bcrypt verification failed", zap.String("admin_id", user.ID.String()))
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	return &user, nil
}

func safePrefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func (r *adminUserRepository) Create(ctx context.Context, user *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, email, api_key_hash, api_key_lookup, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.APIKeyHash,
		user.APIKeyLookup,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create admin user", zap.Error(err))
		return translateWriteError(err, "admin user")
	}
	return nil
}
