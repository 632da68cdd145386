package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/observability"
	"github.com/janhq/camus/internal/utils/idgen"
	"github.com/janhq/camus/internal/utils/platformerrors"
	"github.com/janhq/camus/pkg/telemetry"
)

// Dependencies groups the collaborators of Service. Cache, Locker and Titles are optional.
type Dependencies struct {
	Conversations Repository
	Messages      MessageRepository
	Artifacts     ArtifactReader
	Linker        ArtifactLinker
	ToolResults   ToolResultReader
	Sessions      session.Service
	Cache         ViewCache
	Locker        WriteLocker
	Titles        TitleScheduler
	Sanitizer     *telemetry.Sanitizer
}

// Service implements conversation creation, listing, message writes and reconstruction.
type Service struct {
	conversations Repository
	messages      MessageRepository
	artifacts     ArtifactReader
	linker        ArtifactLinker
	toolResults   ToolResultReader
	sessions      session.Service
	cache         ViewCache
	locker        WriteLocker
	titles        TitleScheduler
	sanitizer     *telemetry.Sanitizer

	views singleflight.Group
	now   func() time.Time
	log   zerolog.Logger
}

// NewService creates a new conversation service.
func NewService(deps Dependencies, log zerolog.Logger) *Service {
	sanitizer := deps.Sanitizer
	if sanitizer == nil {
		sanitizer = telemetry.NewSanitizer(telemetry.PIILevelNone, "")
	}
	return &Service{
		conversations: deps.Conversations,
		messages:      deps.Messages,
		artifacts:     deps.Artifacts,
		linker:        deps.Linker,
		toolResults:   deps.ToolResults,
		sessions:      deps.Sessions,
		cache:         deps.Cache,
		locker:        deps.Locker,
		titles:        deps.Titles,
		sanitizer:     sanitizer,
		// Postgres keeps microseconds, so rows read back compare equal to what was written.
		now:           func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		log:           log.With().Str("component", "conversation-service").Logger(),
	}
}

// CreateParams carries an optional client id and title for a new conversation.
type CreateParams struct {
	ID    string
	Title *string
}

// CreateConversation creates a conversation owned by the caller. A signed-in user
// owns it directly; otherwise the anonymous session is resolved or created first.
func (s *Service) CreateConversation(ctx context.Context, identity session.Identity, params CreateParams) (*Conversation, error) {
	conv := &Conversation{
		ID: strings.TrimSpace(params.ID),
	}
	if conv.ID == "" {
		conv.ID = idgen.New(idgen.PrefixConversation)
	}
	if params.Title != nil {
		if title := strings.TrimSpace(*params.Title); title != "" {
			conv.Title = &title
		}
	}

	switch {
	case identity.IsAuthenticated():
		userID := strings.TrimSpace(identity.UserID)
		conv.UserID = &userID
	case identity.IsAnonymous():
		sess, err := s.sessions.Resolve(ctx, identity.ClientSessionID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to create conversation")
		}
		conv.SessionID = &sess.ID
	default:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"sessionId is required for anonymous conversations", nil, "c41e0a77-5d0b-4a43-8f3e-92b7d16e0c18")
	}

	now := s.now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	if err := s.conversations.Create(ctx, conv); err != nil {
		metrics.RecordSave(metrics.EntityConversation, metrics.OutcomeError, 0)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to create conversation")
	}
	metrics.RecordSave(metrics.EntityConversation, metrics.OutcomeCreated, 0)

	s.log.Info().
		Str("conversation_id", conv.ID).
		Bool("anonymous", conv.UserID == nil).
		Msg("conversation created")
	return conv, nil
}

// ListConversations returns up to ListLimit summaries for the caller, most recent first.
// A signed-in user takes precedence over a session id. An unknown session, or a caller
// with neither, gets an empty list.
func (s *Service) ListConversations(ctx context.Context, identity session.Identity) ([]*Summary, error) {
	filter := Filter{Limit: ListLimit}

	switch {
	case identity.IsAuthenticated():
		userID := strings.TrimSpace(identity.UserID)
		filter.UserID = &userID
	case identity.IsAnonymous():
		sess, found, err := s.sessions.Lookup(ctx, identity.ClientSessionID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to fetch conversations")
		}
		if !found {
			return []*Summary{}, nil
		}
		filter.SessionID = &sess.ID
	default:
		return []*Summary{}, nil
	}

	convs, err := s.conversations.List(ctx, filter)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to fetch conversations")
	}

	summaries := make([]*Summary, 0, len(convs))
	for _, c := range convs {
		summaries = append(summaries, &Summary{
			ID:        c.ID,
			Title:     c.DisplayTitle(),
			Timestamp: c.UpdatedAt.UnixMilli(),
		})
	}
	return summaries, nil
}

// UpdateConversation applies a rename or completion change.
func (s *Service) UpdateConversation(ctx context.Context, id string, patch Patch) (*Conversation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"conversation id is required", nil, "e5a3b7c1-2f4d-4c6e-9a8b-0d1e2f3a4b5c")
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
				"title must not be empty", nil, "9b2c4d6e-8f0a-4b1c-a3d5-e7f9a1b3c5d7")
		}
		patch.Title = &title
	}

	conv, err := s.conversations.Update(ctx, id, patch)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to update conversation")
	}

	s.invalidate(ctx, id)
	return conv, nil
}

// GetConversation returns the conversation row without its messages.
func (s *Service) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	conv, err := s.conversations.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch conversation")
	}
	return conv, nil
}

// Invalidate drops the cached view of a conversation. Failures are logged only.
func (s *Service) Invalidate(ctx context.Context, conversationID string) {
	s.invalidate(ctx, conversationID)
}

func (s *Service) invalidate(ctx context.Context, conversationID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, conversationID); err != nil {
		metrics.RecordBestEffortFailure("cache_invalidate")
		s.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to invalidate conversation view")
	}
}

// bestEffort logs and counts a failed secondary step.
func (s *Service) bestEffort(ctx context.Context, step, conversationID string, err error) {
	metrics.RecordBestEffortFailure(step)
	observability.AddBestEffortFailure(observability.SpanFromContext(ctx), step, err)
	s.log.Warn().Err(err).Str("step", step).Str("conversation_id", conversationID).Msg("best-effort step failed")
}
