package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/kikitori/kikitori-backend/internal/platform/envutil"
	"github.com/kikitori/kikitori-backend/internal/platform/logger"
)

// Service abstracts over the hosted (Postgres) and embedded (SQLite)
// store variants.
type Service interface {
	DB() *gorm.DB
	AutoMigrateAll() error
}

// NewFromEnv picks the store variant from DB_DRIVER (postgres|sqlite).
func NewFromEnv(logg *logger.Logger) (Service, error) {
	driver := envutil.String("DB_DRIVER", "postgres")
	switch driver {
	case "postgres":
		return NewPostgresService(logg)
	case "sqlite":
		return NewSQLiteService(logg)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}
