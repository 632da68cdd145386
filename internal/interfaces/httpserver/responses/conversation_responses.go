package responses

import (
	"encoding/json"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/utils/timeutil"
)

// ConversationSummary is one row of the conversation listing.
type ConversationSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timestamp int64  `json:"timestamp"`
}

// ConversationListResponse wraps a listing.
type ConversationListResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}

// Conversation is the conversation row. Title is null until one is set.
type Conversation struct {
	ID          string  `json:"id"`
	Title       *string `json:"title"`
	UserID      *string `json:"userId,omitempty"`
	SessionID   *uint   `json:"sessionId,omitempty"`
	IsCompleted bool    `json:"isCompleted"`
	IsPublic    bool    `json:"isPublic"`
	ShareSlug   *string `json:"shareSlug,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`
}

// ConversationResponse wraps a single conversation.
type ConversationResponse struct {
	Conversation Conversation `json:"conversation"`
}

// Message is a persisted turn with the artifacts it produced.
type Message struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	Role           string     `json:"role"`
	Content        string     `json:"content"`
	ToolName       *string    `json:"toolName,omitempty"`
	ToolCallID     *string    `json:"toolCallId,omitempty"`
	ToolResultID   *string    `json:"toolResultId,omitempty"`
	IsError        bool       `json:"isError"`
	IsIncomplete   bool       `json:"isIncomplete"`
	CreatedAt      int64      `json:"createdAt"`
	UpdatedAt      int64      `json:"updatedAt"`
	Artifacts      []Artifact `json:"artifacts,omitempty"`
}

// MessageResponse wraps a single message.
type MessageResponse struct {
	Message Message `json:"message"`
}

// Artifact is an artifact as returned to clients.
type Artifact struct {
	ID             string          `json:"id"`
	ConversationID *string         `json:"conversationId,omitempty"`
	MessageID      *string         `json:"messageId,omitempty"`
	Name           string          `json:"name"`
	Content        string          `json:"content"`
	Type           string          `json:"type"`
	MimeType       string          `json:"mimeType,omitempty"`
	Timestamp      int64           `json:"timestamp"`
	ViewCount      int64           `json:"viewCount"`
	IsPublic       bool            `json:"isPublic"`
	ShareSlug      *string         `json:"shareSlug,omitempty"`
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Category       *string         `json:"category,omitempty"`
	PreviewImage   *string         `json:"previewImage,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// ArtifactResponse wraps a single artifact.
type ArtifactResponse struct {
	Artifact Artifact `json:"artifact"`
}

// ToolResult is a tool result as returned to clients.
type ToolResult struct {
	ID          string          `json:"id"`
	ToolName    string          `json:"toolName"`
	Args        json.RawMessage `json:"args,omitempty" swaggertype:"object"`
	Result      json.RawMessage `json:"result,omitempty" swaggertype:"object"`
	DisplayName *string         `json:"displayName,omitempty"`
	Timestamp   int64           `json:"timestamp"`
}

// ToolResultResponse wraps a single tool result.
type ToolResultResponse struct {
	ToolResult ToolResult `json:"toolResult"`
}

// ConversationView is a reconstructed conversation.
type ConversationView struct {
	Conversation Conversation `json:"conversation"`
	Messages     []Message    `json:"messages"`
	Artifacts    []Artifact   `json:"artifacts"`
	ToolResults  []ToolResult `json:"toolResults"`
}

// ShareResponse carries the public slug of a shared entity.
type ShareResponse struct {
	ShareSlug string `json:"shareSlug"`
}

// NewConversationList maps summaries, always emitting an array.
func NewConversationList(summaries []*conversation.Summary) ConversationListResponse {
	out := make([]ConversationSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, ConversationSummary{ID: s.ID, Title: s.Title, Timestamp: s.Timestamp})
	}
	return ConversationListResponse{Conversations: out}
}

// NewConversation maps a conversation row.
func NewConversation(c *conversation.Conversation) Conversation {
	return Conversation{
		ID:          c.ID,
		Title:       c.Title,
		UserID:      c.UserID,
		SessionID:   c.SessionID,
		IsCompleted: c.IsCompleted,
		IsPublic:    c.IsPublic,
		ShareSlug:   c.ShareSlug,
		CreatedAt:   timeutil.ToMillis(c.CreatedAt),
		UpdatedAt:   timeutil.ToMillis(c.UpdatedAt),
	}
}

// NewMessage maps a message and its attached artifacts.
func NewMessage(m *conversation.Message) Message {
	msg := Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Role:           m.Role.String(),
		Content:        m.Content,
		ToolName:       m.ToolName,
		ToolCallID:     m.ToolCallID,
		ToolResultID:   m.ToolResultID,
		IsError:        m.IsError,
		IsIncomplete:   m.IsIncomplete,
		CreatedAt:      timeutil.ToMillis(m.CreatedAt),
		UpdatedAt:      timeutil.ToMillis(m.UpdatedAt),
	}
	if len(m.Artifacts) > 0 {
		msg.Artifacts = NewArtifacts(m.Artifacts)
	}
	return msg
}

// NewArtifact maps an artifact.
func NewArtifact(a *artifact.Artifact) Artifact {
	return Artifact{
		ID:             a.ID,
		ConversationID: a.ConversationID,
		MessageID:      a.MessageID,
		Name:           a.Name,
		Content:        a.Content,
		Type:           string(a.Type),
		MimeType:       a.MimeType,
		Timestamp:      a.Timestamp,
		ViewCount:      a.ViewCount,
		IsPublic:       a.IsPublic,
		ShareSlug:      a.ShareSlug,
		Title:          a.Title,
		Description:    a.Description,
		Category:       a.Category,
		PreviewImage:   a.PreviewImage,
		Metadata:       a.Metadata,
	}
}

// NewArtifacts maps a slice of artifacts, always emitting an array.
func NewArtifacts(artifacts []*artifact.Artifact) []Artifact {
	out := make([]Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, NewArtifact(a))
	}
	return out
}

// NewToolResult maps a tool result.
func NewToolResult(r *toolresult.ToolResult) ToolResult {
	return ToolResult{
		ID:          r.ID,
		ToolName:    r.ToolName,
		Args:        r.Args,
		Result:      r.Result,
		DisplayName: r.DisplayName,
		Timestamp:   r.Timestamp,
	}
}

// NewConversationView maps a reconstructed view.
func NewConversationView(v *conversation.View) ConversationView {
	view := ConversationView{
		Conversation: NewConversation(v.Conversation),
		Messages:     make([]Message, 0, len(v.Messages)),
		Artifacts:    NewArtifacts(v.Artifacts),
		ToolResults:  make([]ToolResult, 0, len(v.ToolResults)),
	}
	for _, m := range v.Messages {
		view.Messages = append(view.Messages, NewMessage(m))
	}
	for _, r := range v.ToolResults {
		view.ToolResults = append(view.ToolResults, NewToolResult(r))
	}
	return view
}

// NewSharedConversationView maps a public view without owner fields.
func NewSharedConversationView(v *conversation.View) ConversationView {
	view := NewConversationView(v)
	view.Conversation.UserID = nil
	view.Conversation.SessionID = nil
	return view
}
