package entities

import (
	"time"

	"gorm.io/datatypes"

	"github.com/janhq/camus/internal/domain/toolresult"
)

// ToolResult represents the persisted tool output. It has no conversation column;
// messages point at it through tool_result_id.
type ToolResult struct {
	ID          string         `gorm:"type:varchar(128);primaryKey"`
	ToolName    string         `gorm:"type:varchar(128);not null"`
	Args        datatypes.JSON `gorm:"type:jsonb"`
	Result      datatypes.JSON `gorm:"type:jsonb"`
	DisplayName *string        `gorm:"type:varchar(256)"`
	Timestamp   int64          `gorm:"not null"`
	CreatedAt   time.Time      `gorm:"not null"`
	UpdatedAt   time.Time      `gorm:"not null"`
}

// TableName specifies the table name for ToolResult.
func (ToolResult) TableName() string {
	return "tool_results"
}

// NewSchemaToolResult maps a domain tool result to its row.
func NewSchemaToolResult(t *toolresult.ToolResult) *ToolResult {
	return &ToolResult{
		ID:          t.ID,
		ToolName:    t.ToolName,
		Args:        jsonOrNil(t.Args),
		Result:      jsonOrNil(t.Result),
		DisplayName: t.DisplayName,
		Timestamp:   t.Timestamp,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// EtoD maps the row back to the domain model.
func (t *ToolResult) EtoD() *toolresult.ToolResult {
	return &toolresult.ToolResult{
		ID:          t.ID,
		ToolName:    t.ToolName,
		Args:        rawOrNil(t.Args),
		Result:      rawOrNil(t.Result),
		DisplayName: t.DisplayName,
		Timestamp:   t.Timestamp,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}
