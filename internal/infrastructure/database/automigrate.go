package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/janhq/camus/internal/infrastructure/database/entities"
)

// AutoMigrate creates the schema from the gorm entities. SQL migrations are the
// source of truth for PostgreSQL; this path serves SQLite in tests and local tools.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(entities.All()...); err != nil {
		return err
	}

	log.Debug().Msg("database schema up to date")
	return nil
}
