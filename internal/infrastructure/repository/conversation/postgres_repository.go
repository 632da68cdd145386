package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	domain "github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/infrastructure/database/entities"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for conversations.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new conversation.
func (r *PostgresRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	entity := entities.NewSchemaConversation(conv)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				"conversation already exists", err, "conversation-create-dup-001")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation", err, "conversation-create-db-001")
	}
	return nil
}

// FindByID retrieves a conversation by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, r.wrapFind(ctx, err, "conversation-find-001")
	}
	return entity.EtoD(), nil
}

// FindBySlug retrieves a public conversation by share slug.
func (r *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*domain.Conversation, error) {
	var entity entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("share_slug = ? AND is_public = ?", slug, true).
		First(&entity).Error; err != nil {
		return nil, r.wrapFind(ctx, err, "conversation-find-slug-001")
	}
	return entity.EtoD(), nil
}

// List returns conversations for one owner ordered by most recent update.
func (r *PostgresRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Conversation, error) {
	query := r.db.WithContext(ctx).Model(&entities.Conversation{})
	switch {
	case filter.UserID != nil:
		query = query.Where("user_id = ?", *filter.UserID)
	case filter.SessionID != nil:
		query = query.Where("session_id = ?", *filter.SessionID)
	default:
		return []*domain.Conversation{}, nil
	}

	limit := filter.Limit
	if limit <= 0 || limit > domain.ListLimit {
		limit = domain.ListLimit
	}

	var rows []entities.Conversation
	if err := query.Order("updated_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list conversations", err, "conversation-list-db-001")
	}

	result := make([]*domain.Conversation, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result, nil
}

// Update applies a patch to an existing conversation.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Conversation, error) {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.IsCompleted != nil {
		updates["is_completed"] = *patch.IsCompleted
	}
	if patch.IsPublic != nil {
		updates["is_public"] = *patch.IsPublic
	}
	if patch.ClearSlug {
		updates["share_slug"] = nil
	} else if patch.ShareSlug != nil {
		updates["share_slug"] = *patch.ShareSlug
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		result := r.db.WithContext(ctx).
			Model(&entities.Conversation{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
				"failed to update conversation", result.Error, "conversation-update-db-001")
		}
		if result.RowsAffected == 0 {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"conversation not found", nil, "conversation-update-001")
		}
	}

	return r.FindByID(ctx, id)
}

// TouchUpdatedAt raises updated_at to at. Rows already past at are left alone.
func (r *PostgresRepository) TouchUpdatedAt(ctx context.Context, id string, at time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ? AND updated_at < ?", id, at).
		UpdateColumn("updated_at", at).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation timestamp", err, "conversation-touch-db-001")
	}
	return nil
}

// SetTitleIfEmpty stores title only when the row has none.
func (r *PostgresRepository) SetTitleIfEmpty(ctx context.Context, id, title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("id = ? AND (title IS NULL OR title = '')", id).
		UpdateColumn("title", title)
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to set conversation title", result.Error, "conversation-title-db-001")
	}
	return result.RowsAffected > 0, nil
}

// FindUntitled returns untitled conversations that already have a user message.
func (r *PostgresRepository) FindUntitled(ctx context.Context, limit int) ([]*domain.Conversation, error) {
	if limit <= 0 {
		limit = domain.ListLimit
	}

	userMessages := r.db.Model(&entities.Message{}).
		Select("1").
		Where("messages.conversation_id = conversations.id AND messages.role = ?", domain.RoleUser.String())

	var rows []entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("(title IS NULL OR title = '')").
		Where("EXISTS (?)", userMessages).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find untitled conversations", err, "conversation-untitled-db-001")
	}

	result := make([]*domain.Conversation, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result, nil
}

// SlugExists reports whether a conversation already uses slug.
func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Conversation{}).
		Where("share_slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to check share slug", err, "conversation-slug-db-001")
	}
	return count > 0, nil
}

func (r *PostgresRepository) wrapFind(ctx context.Context, err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"conversation not found", err, code)
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
		"failed to load conversation", err, code)
}
