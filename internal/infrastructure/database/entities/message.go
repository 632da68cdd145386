package entities

import (
	"time"

	"github.com/janhq/camus/internal/domain/conversation"
)

// Message represents the database schema for messages. Role is stored as its
// lowercase tag.
type Message struct {
	ID             string    `gorm:"type:varchar(64);primaryKey"`
	ConversationID string    `gorm:"type:varchar(64);not null;index:idx_message_conversation_created,priority:1"`
	Role           string    `gorm:"type:varchar(16);not null"`
	Content        string    `gorm:"type:text;not null"`
	ToolName       *string   `gorm:"type:varchar(128)"`
	ToolCallID     *string   `gorm:"type:varchar(128)"`
	ToolResultID   *string   `gorm:"type:varchar(128);index"`
	IsError        bool      `gorm:"not null"`
	IsIncomplete   bool      `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null;index:idx_message_conversation_created,priority:2"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Message.
func (Message) TableName() string {
	return "messages"
}

// NewSchemaMessage maps a domain message to its row.
func NewSchemaMessage(m *conversation.Message) *Message {
	return &Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role.String(),
		Content:        m.Content,
		ToolName:       m.ToolName,
		ToolCallID:     m.ToolCallID,
		ToolResultID:   m.ToolResultID,
		IsError:        m.IsError,
		IsIncomplete:   m.IsIncomplete,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// EtoD maps the row back to the domain model. Unknown stored roles read as assistant.
func (m *Message) EtoD() *conversation.Message {
	role, ok := conversation.ParseRole(m.Role)
	if !ok {
		role = conversation.RoleAssistant
	}
	return &conversation.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           role,
		Content:        m.Content,
		ToolName:       m.ToolName,
		ToolCallID:     m.ToolCallID,
		ToolResultID:   m.ToolResultID,
		IsError:        m.IsError,
		IsIncomplete:   m.IsIncomplete,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}
