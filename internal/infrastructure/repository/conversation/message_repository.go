package conversation

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/infrastructure/database/entities"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

// upsertColumns are overwritten when a message id already exists. created_at and
// conversation_id keep their first-write values so ordering never shifts.
var upsertColumns = []string{
	"role",
	"content",
	"tool_name",
	"tool_call_id",
	"tool_result_id",
	"is_error",
	"is_incomplete",
	"updated_at",
}

// MessageRepository provides persistence for messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository constructs the repository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Upsert writes the message in one INSERT ... ON CONFLICT (id) DO UPDATE statement
// and returns the stored row. The update only applies to a row of the same
// conversation; an id owned by another conversation is a CONFLICT.
func (r *MessageRepository) Upsert(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	entity := entities.NewSchemaMessage(msg)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			Where:     clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "messages.conversation_id = excluded.conversation_id"}}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(entity)
	if result.Error != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to upsert message", result.Error, "message-upsert-db-001")
	}
	if result.RowsAffected == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
			"message id belongs to another conversation", nil, "message-upsert-conflict-001")
	}
	return r.FindByID(ctx, msg.ID)
}

// FindByID retrieves a message by ID.
func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var entity entities.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"message not found", err, "message-find-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load message", err, "message-find-db-001")
	}
	return entity.EtoD(), nil
}

// ListByConversation returns messages in creation order. id breaks ties.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	var rows []entities.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list messages", err, "message-list-db-001")
	}

	result := make([]*domain.Message, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result, nil
}

// FirstUserMessage returns the earliest user message of the conversation.
func (r *MessageRepository) FirstUserMessage(ctx context.Context, conversationID string) (*domain.Message, error) {
	var entity entities.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND role = ?", conversationID, domain.RoleUser.String()).
		Order("created_at ASC").
		Order("id ASC").
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"no user message", err, "message-first-user-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load first user message", err, "message-first-user-db-001")
	}
	return entity.EtoD(), nil
}
