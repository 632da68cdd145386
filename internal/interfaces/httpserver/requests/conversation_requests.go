package requests

// CreateConversationRequest creates a conversation. Id is optional.
type CreateConversationRequest struct {
	ID        string  `json:"id,omitempty" validate:"omitempty,max=64"`
	Title     *string `json:"title,omitempty"`
	SessionID string  `json:"sessionId,omitempty" validate:"omitempty,max=128"`
}

// UpdateConversationRequest renames or completes a conversation.
type UpdateConversationRequest struct {
	Title       *string `json:"title,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// CreateMessageRequest saves one message. Content may be empty but must be present.
type CreateMessageRequest struct {
	MessageID    string  `json:"messageId,omitempty" validate:"omitempty,max=64"`
	Role         string  `json:"role" validate:"required"`
	Content      *string `json:"content" validate:"required"`
	ToolName     *string `json:"toolName,omitempty"`
	ToolCallID   *string `json:"toolCallId,omitempty"`
	ToolResultID *string `json:"toolResultId,omitempty"`
	IsError      bool    `json:"isError,omitempty"`
	IsIncomplete bool    `json:"isIncomplete,omitempty"`
	ArtifactID   string  `json:"artifactId,omitempty"`
}

// UpdateMessageRequest upserts a message by id, typically while streaming.
// ThinkingContent is accepted for compatibility and never stored.
type UpdateMessageRequest struct {
	MessageID       string  `json:"messageId" validate:"required,max=64"`
	Content         *string `json:"content" validate:"required"`
	ThinkingContent *string `json:"thinkingContent,omitempty"`
	Role            string  `json:"role,omitempty"`
	IsIncomplete    bool    `json:"isIncomplete,omitempty"`
	ArtifactID      string  `json:"artifactId,omitempty"`
}
