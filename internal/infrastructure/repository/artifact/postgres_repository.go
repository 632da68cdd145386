package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/infrastructure/database/entities"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for artifacts.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new artifact.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Artifact) error {
	entity := entities.NewSchemaArtifact(a)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
				"artifact already exists", err, "artifact-create-dup-001")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create artifact", err, "artifact-create-db-001")
	}
	return nil
}

// Update applies params and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, id string, params domain.UpdateParams) (*domain.Artifact, error) {
	updates := map[string]any{}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Content != nil {
		updates["content"] = *params.Content
	}
	if params.Title != nil {
		updates["title"] = *params.Title
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Category != nil {
		updates["category"] = *params.Category
	}
	if params.PreviewImage != nil {
		updates["preview_image"] = *params.PreviewImage
	}
	if params.IsPublic != nil {
		updates["is_public"] = *params.IsPublic
	}
	if params.ShareSlug != nil {
		if *params.ShareSlug == "" {
			updates["share_slug"] = nil
		} else {
			updates["share_slug"] = *params.ShareSlug
		}
	}
	if len(params.Metadata) > 0 {
		updates["metadata"] = datatypes.JSON(params.Metadata)
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		result := r.db.WithContext(ctx).
			Model(&entities.Artifact{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
				"failed to update artifact", result.Error, "artifact-update-db-001")
		}
		if result.RowsAffected == 0 {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"artifact not found", nil, "artifact-update-001")
		}
	}

	return r.FindByID(ctx, id)
}

// FillMetadataIfEmpty writes title, description and category only into columns that
// are still NULL or blank, in one statement so a concurrent edit is never overwritten.
func (r *PostgresRepository) FillMetadataIfEmpty(ctx context.Context, id string, params domain.UpdateParams) (bool, error) {
	updates := map[string]any{}
	var blank []string
	for _, field := range []struct {
		column string
		value  *string
	}{
		{"title", params.Title},
		{"description", params.Description},
		{"category", params.Category},
	} {
		if field.value == nil {
			continue
		}
		isBlank := fmt.Sprintf("(%[1]s IS NULL OR TRIM(%[1]s) = '')", field.column)
		updates[field.column] = gorm.Expr(fmt.Sprintf("CASE WHEN %s THEN ? ELSE %s END", isBlank, field.column), *field.value)
		blank = append(blank, isBlank)
	}
	if len(updates) == 0 {
		return false, nil
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&entities.Artifact{}).
		Where("id = ?", id).
		Where(strings.Join(blank, " OR ")).
		Updates(updates)
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to fill artifact metadata", result.Error, "artifact-fill-metadata-db-001")
	}
	return result.RowsAffected > 0, nil
}

// FindByID retrieves an artifact by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Artifact, error) {
	var entity entities.Artifact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		return nil, wrapFind(ctx, err, "artifact-find-001")
	}
	return entity.EtoD(), nil
}

// FindBySlug retrieves a public artifact by share slug.
func (r *PostgresRepository) FindBySlug(ctx context.Context, slug string) (*domain.Artifact, error) {
	var entity entities.Artifact
	if err := r.db.WithContext(ctx).
		Where("share_slug = ? AND is_public = ?", slug, true).
		First(&entity).Error; err != nil {
		return nil, wrapFind(ctx, err, "artifact-find-slug-001")
	}
	return entity.EtoD(), nil
}

// ListForConversation returns artifacts linked to the conversation or any of its messages.
func (r *PostgresRepository) ListForConversation(ctx context.Context, conversationID string, messageIDs []string) ([]*domain.Artifact, error) {
	query := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID)
	if len(messageIDs) > 0 {
		query = query.Or("message_id IN ?", messageIDs)
	}

	var rows []entities.Artifact
	if err := query.Order("timestamp ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list artifacts", err, "artifact-list-db-001")
	}

	result := make([]*domain.Artifact, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result, nil
}

// LinkMessage sets message_id only while it is still NULL, so the first link wins.
func (r *PostgresRepository) LinkMessage(ctx context.Context, id, messageID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Artifact{}).
		Where("id = ? AND message_id IS NULL", id).
		Updates(map[string]any{
			"message_id": messageID,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to link artifact", result.Error, "artifact-link-db-001")
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Nothing changed: either already linked or missing.
	if _, err := r.FindByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

// IncrementViewCount adds one view and returns the new count.
func (r *PostgresRepository) IncrementViewCount(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Artifact{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to increment view count", result.Error, "artifact-views-db-001")
	}
	if result.RowsAffected == 0 {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"artifact not found", nil, "artifact-views-001")
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Artifact{}).
		Where("id = ?", id).
		Pluck("view_count", &count).Error; err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to read view count", err, "artifact-views-db-002")
	}
	return count, nil
}

// SlugExists reports whether an artifact already uses slug.
func (r *PostgresRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Artifact{}).
		Where("share_slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to check share slug", err, "artifact-slug-db-001")
	}
	return count > 0, nil
}

func wrapFind(ctx context.Context, err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"artifact not found", err, code)
	}
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
		"failed to load artifact", err, code)
}
