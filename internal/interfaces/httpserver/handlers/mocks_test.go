package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/infrastructure/auth"
)

// MockConversationService implements handlers.ConversationService.
type MockConversationService struct {
	CreateConversationFunc  func(ctx context.Context, identity session.Identity, params conversation.CreateParams) (*conversation.Conversation, error)
	ListConversationsFunc   func(ctx context.Context, identity session.Identity) ([]*conversation.Summary, error)
	GetConversationByIDFunc func(ctx context.Context, id string) (*conversation.View, error)
	UpdateConversationFunc  func(ctx context.Context, id string, patch conversation.Patch) (*conversation.Conversation, error)
	SaveMessageFunc         func(ctx context.Context, conversationID string, params conversation.MessageParams) (*conversation.Message, error)
}

func (m *MockConversationService) CreateConversation(ctx context.Context, identity session.Identity, params conversation.CreateParams) (*conversation.Conversation, error) {
	if m.CreateConversationFunc != nil {
		return m.CreateConversationFunc(ctx, identity, params)
	}
	return nil, nil
}

func (m *MockConversationService) ListConversations(ctx context.Context, identity session.Identity) ([]*conversation.Summary, error) {
	if m.ListConversationsFunc != nil {
		return m.ListConversationsFunc(ctx, identity)
	}
	return nil, nil
}

func (m *MockConversationService) GetConversationByID(ctx context.Context, id string) (*conversation.View, error) {
	if m.GetConversationByIDFunc != nil {
		return m.GetConversationByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockConversationService) UpdateConversation(ctx context.Context, id string, patch conversation.Patch) (*conversation.Conversation, error) {
	if m.UpdateConversationFunc != nil {
		return m.UpdateConversationFunc(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockConversationService) SaveMessage(ctx context.Context, conversationID string, params conversation.MessageParams) (*conversation.Message, error) {
	if m.SaveMessageFunc != nil {
		return m.SaveMessageFunc(ctx, conversationID, params)
	}
	return nil, nil
}

// MockArtifactService implements artifact.Service.
type MockArtifactService struct {
	SaveFunc          func(ctx context.Context, params artifact.SaveParams) (*artifact.Artifact, error)
	UpdateFunc        func(ctx context.Context, conversationID, id string, params artifact.UpdateParams) (*artifact.Artifact, error)
	GetByIDFunc       func(ctx context.Context, id string) (*artifact.Artifact, error)
	LinkToMessageFunc func(ctx context.Context, conversationID, id, messageID string) error
}

func (m *MockArtifactService) Save(ctx context.Context, params artifact.SaveParams) (*artifact.Artifact, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockArtifactService) Update(ctx context.Context, conversationID, id string, params artifact.UpdateParams) (*artifact.Artifact, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, conversationID, id, params)
	}
	return nil, nil
}

func (m *MockArtifactService) GetByID(ctx context.Context, id string) (*artifact.Artifact, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockArtifactService) LinkToMessage(ctx context.Context, conversationID, id, messageID string) error {
	if m.LinkToMessageFunc != nil {
		return m.LinkToMessageFunc(ctx, conversationID, id, messageID)
	}
	return nil
}

// MockToolResultService implements handlers.ToolResultService.
type MockToolResultService struct {
	SaveFunc   func(ctx context.Context, conversationID string, params toolresult.SaveParams) (*toolresult.ToolResult, error)
	UpdateFunc func(ctx context.Context, conversationID, id string, params toolresult.UpdateParams) (*toolresult.ToolResult, error)
}

func (m *MockToolResultService) Save(ctx context.Context, conversationID string, params toolresult.SaveParams) (*toolresult.ToolResult, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, conversationID, params)
	}
	return nil, nil
}

func (m *MockToolResultService) Update(ctx context.Context, conversationID, id string, params toolresult.UpdateParams) (*toolresult.ToolResult, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, conversationID, id, params)
	}
	return nil, nil
}

// MockShareService implements handlers.ShareService.
type MockShareService struct {
	ShareConversationFunc     func(ctx context.Context, conversationID string) (*conversation.Conversation, error)
	UnshareConversationFunc   func(ctx context.Context, conversationID string) error
	ShareArtifactFunc         func(ctx context.Context, conversationID, artifactID string) (*artifact.Artifact, error)
	GetSharedConversationFunc func(ctx context.Context, slug string) (*conversation.View, error)
	GetSharedArtifactFunc     func(ctx context.Context, slug string) (*artifact.Artifact, error)
}

func (m *MockShareService) ShareConversation(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
	if m.ShareConversationFunc != nil {
		return m.ShareConversationFunc(ctx, conversationID)
	}
	return nil, nil
}

func (m *MockShareService) UnshareConversation(ctx context.Context, conversationID string) error {
	if m.UnshareConversationFunc != nil {
		return m.UnshareConversationFunc(ctx, conversationID)
	}
	return nil
}

func (m *MockShareService) ShareArtifact(ctx context.Context, conversationID, artifactID string) (*artifact.Artifact, error) {
	if m.ShareArtifactFunc != nil {
		return m.ShareArtifactFunc(ctx, conversationID, artifactID)
	}
	return nil, nil
}

func (m *MockShareService) GetSharedConversation(ctx context.Context, slug string) (*conversation.View, error) {
	if m.GetSharedConversationFunc != nil {
		return m.GetSharedConversationFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockShareService) GetSharedArtifact(ctx context.Context, slug string) (*artifact.Artifact, error) {
	if m.GetSharedArtifactFunc != nil {
		return m.GetSharedArtifactFunc(ctx, slug)
	}
	return nil, nil
}

// withUser simulates the auth middleware for a signed-in caller.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.SetUserID(c, userID)
		c.Next()
	}
}

func strPtr(s string) *string { return &s }
