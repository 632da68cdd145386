// Package share publishes conversations and artifacts under random slugs.
package share

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

// ViewReader rebuilds conversations and drops their cached views.
type ViewReader interface {
	GetConversationByID(ctx context.Context, id string) (*conversation.View, error)
	Invalidate(ctx context.Context, conversationID string)
}

// Service manages public sharing.
type Service struct {
	conversations conversation.Repository
	artifacts     artifact.Repository
	views         ViewReader
	log           zerolog.Logger
}

// NewService creates a share service.
func NewService(conversations conversation.Repository, artifacts artifact.Repository, views ViewReader, log zerolog.Logger) *Service {
	return &Service{
		conversations: conversations,
		artifacts:     artifacts,
		views:         views,
		log:           log.With().Str("component", "share-service").Logger(),
	}
}

// ShareConversation makes a conversation public. Sharing twice keeps the first slug.
func (s *Service) ShareConversation(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch conversation")
	}
	if conv.IsPublic && conv.ShareSlug != nil {
		return conv, nil
	}

	slug := ""
	if conv.ShareSlug != nil {
		slug = *conv.ShareSlug
	} else if slug, err = UniqueSlug(ctx, s.conversations); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to share conversation", err, "f1a2b3c4-d5e6-4f70-8a9b-0c1d2e3f4a50")
	}

	public := true
	updated, err := s.conversations.Update(ctx, conversationID, conversation.Patch{IsPublic: &public, ShareSlug: &slug})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to share conversation")
	}

	s.views.Invalidate(ctx, conversationID)
	s.log.Info().Str("conversation_id", conversationID).Msg("conversation shared")
	return updated, nil
}

// UnshareConversation revokes public access and frees the slug.
func (s *Service) UnshareConversation(ctx context.Context, conversationID string) error {
	public := false
	if _, err := s.conversations.Update(ctx, conversationID, conversation.Patch{IsPublic: &public, ClearSlug: true}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to revoke share")
	}
	s.views.Invalidate(ctx, conversationID)
	return nil
}

// ShareArtifact makes a single artifact public.
func (s *Service) ShareArtifact(ctx context.Context, conversationID, artifactID string) (*artifact.Artifact, error) {
	a, err := s.artifacts.FindByID(ctx, artifactID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch artifact")
	}
	if a.IsPublic && a.ShareSlug != nil {
		return a, nil
	}

	slug := ""
	if a.ShareSlug != nil {
		slug = *a.ShareSlug
	} else if slug, err = UniqueSlug(ctx, s.artifacts); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"Failed to share artifact", err, "a0b1c2d3-e4f5-4a6b-8c7d-9e0f1a2b3c61")
	}

	public := true
	updated, err := s.artifacts.Update(ctx, artifactID, artifact.UpdateParams{IsPublic: &public, ShareSlug: &slug})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to share artifact")
	}

	s.views.Invalidate(ctx, conversationID)
	return updated, nil
}

// GetSharedConversation returns the view of a public conversation.
func (s *Service) GetSharedConversation(ctx context.Context, slug string) (*conversation.View, error) {
	if !ValidateSlug(slug) {
		return nil, sharedNotFound(ctx)
	}
	conv, err := s.conversations.FindBySlug(ctx, slug)
	if err != nil {
		if platformerrors.IsNotFound(err) {
			return nil, sharedNotFound(ctx)
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch shared conversation")
	}
	return s.views.GetConversationByID(ctx, conv.ID)
}

// GetSharedArtifact returns a public artifact and counts the view. A failed count
// still serves the artifact.
func (s *Service) GetSharedArtifact(ctx context.Context, slug string) (*artifact.Artifact, error) {
	if !ValidateSlug(slug) {
		return nil, sharedNotFound(ctx)
	}
	a, err := s.artifacts.FindBySlug(ctx, slug)
	if err != nil {
		if platformerrors.IsNotFound(err) {
			return nil, sharedNotFound(ctx)
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch shared artifact")
	}

	count, err := s.artifacts.IncrementViewCount(ctx, a.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("artifact_id", a.ID).Msg("failed to count artifact view")
		return a, nil
	}
	a.ViewCount = count
	return a, nil
}

func sharedNotFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		"shared content not found", nil, "b7c8d9e0-f1a2-4b3c-9d4e-5f6a7b8c9d72")
}
