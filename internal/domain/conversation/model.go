// Package conversation owns conversations and their messages: the upsert-by-id
// write path, the ordered reconstruction read and the recency listing.
package conversation

import (
	"strings"
	"time"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/toolresult"
)

const (
	// UntitledConversation is shown for conversations whose title was never set.
	UntitledConversation = "Untitled Conversation"

	// ListLimit caps the number of conversations returned by a listing.
	ListLimit = 50
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleThinking   Role = "thinking"
	RoleTool       Role = "tool"
	RoleToolResult Role = "tool-result"
)

// ParseRole maps external and stored role spellings onto the lowercase tags.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "user":
		return RoleUser, true
	case "assistant":
		return RoleAssistant, true
	case "thinking":
		return RoleThinking, true
	case "tool":
		return RoleTool, true
	case "tool-result", "tool_result", "toolresult":
		return RoleToolResult, true
	default:
		return "", false
	}
}

// Persistable reports whether messages with this role are stored. Thinking
// output only lives in the client.
func (r Role) Persistable() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleTool, RoleToolResult:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Conversation is owned by exactly one of a user or an anonymous session.
type Conversation struct {
	ID          string
	Title       *string
	UserID      *string
	SessionID   *uint
	IsCompleted bool
	IsPublic    bool
	ShareSlug   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DisplayTitle returns the title, or UntitledConversation when none was set.
func (c *Conversation) DisplayTitle() string {
	if c.Title == nil || strings.TrimSpace(*c.Title) == "" {
		return UntitledConversation
	}
	return *c.Title
}

// HasTitle reports whether a non-blank title is stored.
func (c *Conversation) HasTitle() bool {
	return c.Title != nil && strings.TrimSpace(*c.Title) != ""
}

// Message is a single persisted turn. Artifacts is filled only by reconstruction.
type Message struct {
	ID             string
	ConversationID string
	Role           Role
	Content        string
	ToolName       *string
	ToolCallID     *string
	ToolResultID   *string
	IsError        bool
	IsIncomplete   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Artifacts []*artifact.Artifact
}

// Summary is one row of a conversation listing.
type Summary struct {
	ID        string
	Title     string
	Timestamp int64
}

// View is a conversation rebuilt from its separately stored parts, in creation order.
type View struct {
	Conversation *Conversation
	Messages     []*Message
	Artifacts    []*artifact.Artifact
	ToolResults  []*toolresult.ToolResult
}

// Filter narrows a conversation listing to one owner.
type Filter struct {
	UserID    *string
	SessionID *uint
	Limit     int
}

// Patch holds the mutable conversation fields. Nil fields are left untouched.
type Patch struct {
	Title       *string
	IsCompleted *bool
	IsPublic    *bool
	ShareSlug   *string
	ClearSlug   bool
}
