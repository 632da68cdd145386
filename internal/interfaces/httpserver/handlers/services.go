package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/infrastructure/auth"
)

// ConversationService is the part of conversation.Service the handlers call.
type ConversationService interface {
	CreateConversation(ctx context.Context, identity session.Identity, params conversation.CreateParams) (*conversation.Conversation, error)
	ListConversations(ctx context.Context, identity session.Identity) ([]*conversation.Summary, error)
	GetConversationByID(ctx context.Context, id string) (*conversation.View, error)
	UpdateConversation(ctx context.Context, id string, patch conversation.Patch) (*conversation.Conversation, error)
	SaveMessage(ctx context.Context, conversationID string, params conversation.MessageParams) (*conversation.Message, error)
}

// ToolResultService is the part of toolresult.Service the handlers call.
type ToolResultService interface {
	Save(ctx context.Context, conversationID string, params toolresult.SaveParams) (*toolresult.ToolResult, error)
	Update(ctx context.Context, conversationID, id string, params toolresult.UpdateParams) (*toolresult.ToolResult, error)
}

// ShareService publishes conversations and artifacts.
type ShareService interface {
	ShareConversation(ctx context.Context, conversationID string) (*conversation.Conversation, error)
	UnshareConversation(ctx context.Context, conversationID string) error
	ShareArtifact(ctx context.Context, conversationID, artifactID string) (*artifact.Artifact, error)
	GetSharedConversation(ctx context.Context, slug string) (*conversation.View, error)
	GetSharedArtifact(ctx context.Context, slug string) (*artifact.Artifact, error)
}

// identityFrom builds the caller identity from the auth middleware and the
// client supplied session id. A signed-in user always wins.
func identityFrom(c *gin.Context, sessionID string) session.Identity {
	return session.Identity{
		UserID:          auth.UserID(c),
		ClientSessionID: sessionID,
	}
}
