package requests

import "encoding/json"

// CreateToolResultRequest saves the output of a tool call.
type CreateToolResultRequest struct {
	ID          string          `json:"id,omitempty" validate:"omitempty,max=128"`
	ToolName    string          `json:"toolName" validate:"required"`
	Args        json.RawMessage `json:"args,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	DisplayName *string         `json:"displayName,omitempty"`
	Timestamp   *json.Number    `json:"timestamp,omitempty"`
}

// UpdateToolResultRequest edits an existing tool result.
type UpdateToolResultRequest struct {
	ToolResultID string          `json:"toolResultId" validate:"required"`
	ToolName     *string         `json:"toolName,omitempty"`
	Args         json.RawMessage `json:"args,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	DisplayName  *string         `json:"displayName,omitempty"`
}
