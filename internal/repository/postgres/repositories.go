package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Book:       NewBookRepository(db, logger),
		Author:     NewAuthorRepository(db, logger),
		Genre:      NewGenreRepository(db, logger),
		Order:      NewOrderRepository(db, logger),
		OrderEvent: NewOrderEventRepository(db, logger),
		AdminUser:  NewAdminUserRepository(db, logger),
		Globals:    NewGlobalsRepository(db, logger),
	}
}
