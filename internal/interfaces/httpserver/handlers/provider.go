package handlers

import (
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/artifact"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Conversation *ConversationHandler
	Message      *MessageHandler
	Artifact     *ArtifactHandler
	ToolResult   *ToolResultHandler
	Share        *ShareHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	conversations ConversationService,
	artifacts artifact.Service,
	toolResults ToolResultService,
	shares ShareService,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Conversation: NewConversationHandler(conversations, log),
		Message:      NewMessageHandler(conversations, log),
		Artifact:     NewArtifactHandler(artifacts, log),
		ToolResult:   NewToolResultHandler(toolResults, log),
		Share:        NewShareHandler(shares, log),
	}
}
