package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/infrastructure/database/entities"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for anonymous sessions.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByClientID retrieves a session by its client generated id.
func (r *PostgresRepository) FindByClientID(ctx context.Context, clientSessionID string) (*domain.Session, error) {
	var entity entities.Session
	if err := r.db.WithContext(ctx).Where("client_session_id = ?", clientSessionID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"session not found", err, "session-find-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load session", err, "session-find-db-001")
	}
	return entity.EtoD(), nil
}

// FindOrCreate inserts the session or refreshes last_seen_at, then reads the row back.
// Concurrent first requests for the same client id converge on one row.
func (r *PostgresRepository) FindOrCreate(ctx context.Context, clientSessionID string) (*domain.Session, error) {
	now := time.Now().UTC()
	entity := &entities.Session{
		ClientSessionID: clientSessionID,
		CreatedAt:       now,
		LastSeenAt:      now,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_seen_at"}),
		}).
		Create(entity).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to upsert session", err, "session-upsert-db-001")
	}
	return r.FindByClientID(ctx, clientSessionID)
}
