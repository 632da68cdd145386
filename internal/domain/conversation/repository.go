package conversation

import (
	"context"
	"time"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/toolresult"
)

// Repository defines the interface for conversation persistence.
type Repository interface {
	Create(ctx context.Context, conv *Conversation) error
	FindByID(ctx context.Context, id string) (*Conversation, error)
	FindBySlug(ctx context.Context, slug string) (*Conversation, error)
	// List returns the owner's conversations, most recently updated first.
	List(ctx context.Context, filter Filter) ([]*Conversation, error)
	Update(ctx context.Context, id string, patch Patch) (*Conversation, error)
	// TouchUpdatedAt moves updated_at forward to at. It never moves it backwards.
	TouchUpdatedAt(ctx context.Context, id string, at time.Time) error
	// SetTitleIfEmpty stores title only when none is set. updated reports whether a row changed.
	SetTitleIfEmpty(ctx context.Context, id, title string) (updated bool, err error)
	// FindUntitled returns conversations without a title that have at least one user message.
	FindUntitled(ctx context.Context, limit int) ([]*Conversation, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// MessageRepository defines the interface for message persistence.
type MessageRepository interface {
	// Upsert inserts the message or overwrites the mutable columns of the row with
	// the same id. created_at and conversation_id keep their first-write values.
	Upsert(ctx context.Context, msg *Message) (*Message, error)
	FindByID(ctx context.Context, id string) (*Message, error)
	// ListByConversation returns messages ordered by created_at, then id.
	ListByConversation(ctx context.Context, conversationID string) ([]*Message, error)
	FirstUserMessage(ctx context.Context, conversationID string) (*Message, error)
}

// ViewCache stores reconstructed views. A miss is (nil, false, nil).
// Invalidate advances the conversation's generation. Set stores a view only while
// the generation read before it was built is still current, so a write that lands
// during a rebuild never leaves the older view cached.
type ViewCache interface {
	Get(ctx context.Context, conversationID string) (*View, bool, error)
	Generation(ctx context.Context, conversationID string) (int64, error)
	Set(ctx context.Context, conversationID string, generation int64, view *View) (bool, error)
	Invalidate(ctx context.Context, conversationID string) error
}

// WriteLocker serializes writers of one conversation.
type WriteLocker interface {
	WithLock(ctx context.Context, conversationID string, fn func(ctx context.Context) error) error
}

// TitleScheduler queues title generation for a conversation without waiting for it.
type TitleScheduler interface {
	ScheduleTitle(ctx context.Context, conversationID string)
}

// ArtifactReader lists artifacts for reconstruction.
type ArtifactReader interface {
	ListForConversation(ctx context.Context, conversationID string, messageIDs []string) ([]*artifact.Artifact, error)
}

// ArtifactLinker attaches an artifact to the assistant message that produced it.
type ArtifactLinker interface {
	LinkToMessage(ctx context.Context, conversationID, artifactID, messageID string) error
}

// ToolResultReader fetches tool results by id. Unknown ids are omitted.
type ToolResultReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]*toolresult.ToolResult, error)
}
