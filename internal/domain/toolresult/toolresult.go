// Package toolresult stores the data returned by tool invocations. Tool results
// are reached from a conversation only through messages that reference them.
package toolresult

import (
	"context"
	"encoding/json"
	"time"
)

// ToolResult is the output of a single tool call. Timestamp is epoch milliseconds.
type ToolResult struct {
	ID          string
	ToolName    string
	Args        json.RawMessage
	Result      json.RawMessage
	DisplayName *string
	Timestamp   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaveParams carries a new tool result. ID and Timestamp are optional.
type SaveParams struct {
	ID          string
	ToolName    string
	Args        json.RawMessage
	Result      json.RawMessage
	DisplayName *string
	Timestamp   *int64
}

// UpdateParams lists editable fields. Nil fields are left untouched.
type UpdateParams struct {
	ToolName    *string
	Args        json.RawMessage
	Result      json.RawMessage
	DisplayName *string
}

// IsEmpty reports whether no field would change.
func (p UpdateParams) IsEmpty() bool {
	return p.ToolName == nil && p.DisplayName == nil && len(p.Args) == 0 && len(p.Result) == 0
}

// Repository defines the interface for tool result persistence.
type Repository interface {
	// Create inserts a new row; an existing id is an error.
	Create(ctx context.Context, result *ToolResult) error
	// Update applies params to an existing row and returns it.
	Update(ctx context.Context, id string, params UpdateParams) (*ToolResult, error)
	FindByID(ctx context.Context, id string) (*ToolResult, error)
	// FindByIDs returns the rows that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*ToolResult, error)
}
