package entities

import (
	"time"

	"github.com/janhq/camus/internal/domain/conversation"
)

// Conversation represents the database schema for conversations
type Conversation struct {
	ID          string    `gorm:"type:varchar(64);primaryKey"`
	Title       *string   `gorm:"type:text"`
	UserID      *string   `gorm:"type:varchar(128);index:idx_conversation_user_updated,priority:1"`
	SessionID   *uint     `gorm:"index:idx_conversation_session_updated,priority:1"`
	IsCompleted bool      `gorm:"not null"`
	IsPublic    bool      `gorm:"not null"`
	ShareSlug   *string   `gorm:"type:varchar(32);uniqueIndex"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null;index:idx_conversation_user_updated,priority:2;index:idx_conversation_session_updated,priority:2"`

	Messages []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for Conversation.
func (Conversation) TableName() string {
	return "conversations"
}

// NewSchemaConversation maps a domain conversation to its row.
func NewSchemaConversation(c *conversation.Conversation) *Conversation {
	return &Conversation{
		ID:          c.ID,
		Title:       c.Title,
		UserID:      c.UserID,
		SessionID:   c.SessionID,
		IsCompleted: c.IsCompleted,
		IsPublic:    c.IsPublic,
		ShareSlug:   c.ShareSlug,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// EtoD maps the row back to the domain model.
func (c *Conversation) EtoD() *conversation.Conversation {
	return &conversation.Conversation{
		ID:          c.ID,
		Title:       c.Title,
		UserID:      c.UserID,
		SessionID:   c.SessionID,
		IsCompleted: c.IsCompleted,
		IsPublic:    c.IsPublic,
		ShareSlug:   c.ShareSlug,
		CreatedAt:   c.CreatedAt.UTC(),
		UpdatedAt:   c.UpdatedAt.UTC(),
	}
}
