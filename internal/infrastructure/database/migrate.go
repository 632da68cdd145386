package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	iofs "github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/janhq/camus/migrations"
)

const migrationsTable = "schema_migrations"

// Migrator runs the embedded SQL migrations over one dedicated connection.
type Migrator struct {
	m   *migrate.Migrate
	log zerolog.Logger
}

// NewMigrator opens a dedicated connection from gormDB and prepares the migration source.
func NewMigrator(ctx context.Context, gormDB *gorm.DB, log zerolog.Logger) (*Migrator, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("retrieve sql db: %w", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire dedicated connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{
		MigrationsTable: migrationsTable,
	})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize postgres driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return &Migrator{m: m, log: log.With().Str("component", "migrator").Logger()}, nil
}

// Up applies all pending migrations. A dirty version is forced clean first.
func (mg *Migrator) Up() error {
	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if dirty {
		mg.log.Warn().Uint("version", version).Msg("database is in dirty state, forcing version")
		if err := mg.m.Force(int(version)); err != nil {
			return fmt.Errorf("force version %d to clear dirty state: %w", version, err)
		}
	}

	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Info().Msg("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	if final, _, err := mg.Version(); err == nil {
		mg.log.Info().Uint("version", final).Msg("migrations applied")
	}
	return nil
}

// Down rolls back steps migrations.
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("roll back %d migrations: %w", steps, err)
	}
	return nil
}

// Version reports the applied version. An empty database is version 0, not dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Close releases the source and the dedicated connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close migration source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration connection: %w", dbErr)
	}
	return nil
}

// Migrate applies all pending migrations and closes the migrator.
func Migrate(ctx context.Context, gormDB *gorm.DB, log zerolog.Logger) (err error) {
	mg, err := NewMigrator(ctx, gormDB, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := mg.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	return mg.Up()
}
