package toolresult

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/infrastructure/database/entities"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

// PostgresRepository provides persistence for tool results.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new tool result.
func (r *PostgresRepository) Create(ctx context.Context, result *domain.ToolResult) error {
	if err := r.db.WithContext(ctx).Create(entities.NewSchemaToolResult(result)).Error; err != nil {
		code := "tool-result-create-db-001"
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			code = "tool-result-create-dup-001"
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create tool result", err, code)
	}
	return nil
}

// Update applies params and returns the stored row.
func (r *PostgresRepository) Update(ctx context.Context, id string, params domain.UpdateParams) (*domain.ToolResult, error) {
	updates := map[string]any{}
	if params.ToolName != nil {
		updates["tool_name"] = *params.ToolName
	}
	if len(params.Args) > 0 {
		updates["args"] = datatypes.JSON(params.Args)
	}
	if len(params.Result) > 0 {
		updates["result"] = datatypes.JSON(params.Result)
	}
	if params.DisplayName != nil {
		updates["display_name"] = *params.DisplayName
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now().UTC()
		res := r.db.WithContext(ctx).
			Model(&entities.ToolResult{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
				"failed to update tool result", res.Error, "tool-result-update-db-001")
		}
		if res.RowsAffected == 0 {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"tool result not found", nil, "tool-result-update-001")
		}
	}

	return r.FindByID(ctx, id)
}

// FindByID retrieves a tool result by ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.ToolResult, error) {
	var entity entities.ToolResult
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"tool result not found", err, "tool-result-find-001")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load tool result", err, "tool-result-find-db-001")
	}
	return entity.EtoD(), nil
}

// FindByIDs returns the tool results that exist among ids.
func (r *PostgresRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.ToolResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []entities.ToolResult
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load tool results", err, "tool-result-list-db-001")
	}

	result := make([]*domain.ToolResult, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].EtoD())
	}
	return result, nil
}
