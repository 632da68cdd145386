package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/observability"
	"github.com/janhq/camus/internal/utils/idgen"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

const logPreviewRunes = 80

// MessageParams describes one message write. ID is optional; when empty an id is
// minted before the write. ArtifactID is only honored by SaveMessage and its wrappers.
type MessageParams struct {
	ID           string
	Role         Role
	Content      string
	ToolName     *string
	ToolCallID   *string
	ToolResultID *string
	IsError      bool
	IsIncomplete bool
	ArtifactID   string
}

// AssistantOptions tunes SaveAssistantMessage.
type AssistantOptions struct {
	ArtifactID   string
	IsIncomplete bool
	IsError      bool
}

// ToolOptions tunes SaveToolMessage. Role must be RoleTool or RoleToolResult and defaults to RoleTool.
type ToolOptions struct {
	Role         Role
	ToolName     string
	ToolCallID   string
	ToolResultID string
	IsError      bool
}

// resolveMessageID returns the caller's id verbatim or mints a new one.
func resolveMessageID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return idgen.New(idgen.PrefixMessage)
}

// SaveOrUpdateMessage writes a single message with insert-or-overwrite semantics
// keyed on its id. Concurrent saves of one id leave exactly one row holding the
// content of the last writer. The parent conversation is not touched; use
// SaveMessage or a wrapper when its updatedAt should move.
func (s *Service) SaveOrUpdateMessage(ctx context.Context, conversationID string, params MessageParams) (*Message, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"conversation id is required", nil, "4d8e2a6f-1b3c-4e5d-8f7a-9b0c1d2e3f40")
	}
	if params.Role == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"role is required", nil, "7f1a3c5e-9b2d-4f6a-8c0e-2d4f6a8c0e13")
	}
	if params.Role == RoleThinking {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"thinking messages are not persisted", nil, "a2c4e6f8-0b1d-4f3a-9c5e-7a9b1c3d5e72")
	}
	if !params.Role.Persistable() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"invalid role", nil, "b3d5f7a9-1c2e-4a4b-8d6f-8b0c2d4e6f83")
	}

	now := s.now()
	msg := &Message{
		ID:             resolveMessageID(params.ID),
		ConversationID: conversationID,
		Role:           params.Role,
		Content:        params.Content,
		ToolName:       trimmed(params.ToolName),
		ToolCallID:     trimmed(params.ToolCallID),
		ToolResultID:   trimmed(params.ToolResultID),
		IsError:        params.IsError,
		IsIncomplete:   params.IsIncomplete,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, span := observability.StartMessageSpan(ctx, "save", conversationID, msg.ID, msg.Role.String())
	defer span.End()

	start := time.Now()
	var saved *Message
	write := func(ctx context.Context) error {
		var err error
		saved, err = s.messages.Upsert(ctx, msg)
		return err
	}

	var err error
	if s.locker != nil {
		err = s.locker.WithLock(ctx, conversationID, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		observability.RecordError(span, err, "error")
		metrics.RecordSave(metrics.EntityMessage, metrics.OutcomeError, time.Since(start).Seconds())
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to save message")
	}

	outcome := metrics.OutcomeCreated
	if saved.CreatedAt.Before(now) {
		outcome = metrics.OutcomeUpdated
	}
	metrics.RecordSave(metrics.EntityMessage, outcome, time.Since(start).Seconds())

	s.invalidate(ctx, conversationID)

	s.log.Debug().
		Str("conversation_id", conversationID).
		Str("message_id", saved.ID).
		Str("role", saved.Role.String()).
		Str("outcome", outcome).
		Str("content", s.sanitizer.Preview(saved.Content, logPreviewRunes)).
		Msg("message saved")

	return saved, nil
}

// SaveMessage writes the message, then runs the follow-up steps: the conversation's
// updatedAt moves forward, a given artifact is linked to the message and the first
// user message of an untitled conversation schedules a title. Follow-up failures are
// logged and never fail the save.
func (s *Service) SaveMessage(ctx context.Context, conversationID string, params MessageParams) (*Message, error) {
	msg, err := s.SaveOrUpdateMessage(ctx, conversationID, params)
	if err != nil {
		return nil, err
	}

	s.touchConversation(ctx, msg.ConversationID)

	if artifactID := strings.TrimSpace(params.ArtifactID); artifactID != "" && s.linker != nil {
		if err := s.linker.LinkToMessage(ctx, msg.ConversationID, artifactID, msg.ID); err != nil {
			s.bestEffort(ctx, "artifact_link", msg.ConversationID, err)
		}
	}

	if msg.Role == RoleUser {
		s.maybeScheduleTitle(ctx, msg.ConversationID)
	}

	return msg, nil
}

// SaveUserMessage saves a user turn.
func (s *Service) SaveUserMessage(ctx context.Context, conversationID, messageID, content string) (*Message, error) {
	return s.SaveMessage(ctx, conversationID, MessageParams{
		ID:      messageID,
		Role:    RoleUser,
		Content: content,
	})
}

// SaveAssistantMessage saves an assistant turn, partial or final. Saving again with the
// same id overwrites the content, which is how streamed text grows.
func (s *Service) SaveAssistantMessage(ctx context.Context, conversationID, messageID, content string, opts AssistantOptions) (*Message, error) {
	return s.SaveMessage(ctx, conversationID, MessageParams{
		ID:           messageID,
		Role:         RoleAssistant,
		Content:      content,
		IsIncomplete: opts.IsIncomplete,
		IsError:      opts.IsError,
		ArtifactID:   opts.ArtifactID,
	})
}

// SaveToolMessage saves a tool call or a tool result marker message.
func (s *Service) SaveToolMessage(ctx context.Context, conversationID, messageID, content string, opts ToolOptions) (*Message, error) {
	role := opts.Role
	if role == "" {
		role = RoleTool
	}
	if role != RoleTool && role != RoleToolResult {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"tool messages must use the tool or tool-result role", nil, "c4e6a8b0-2d3f-4b5c-9e7a-9c1d3e5f7a94")
	}
	return s.SaveMessage(ctx, conversationID, MessageParams{
		ID:           messageID,
		Role:         role,
		Content:      content,
		ToolName:     optional(opts.ToolName),
		ToolCallID:   optional(opts.ToolCallID),
		ToolResultID: optional(opts.ToolResultID),
		IsError:      opts.IsError,
	})
}

// touchConversation moves updatedAt forward. The repository only ever raises it.
func (s *Service) touchConversation(ctx context.Context, conversationID string) {
	if err := s.conversations.TouchUpdatedAt(ctx, conversationID, s.now()); err != nil {
		s.bestEffort(ctx, "touch_updated_at", conversationID, err)
		return
	}
	s.invalidate(ctx, conversationID)
}

func (s *Service) maybeScheduleTitle(ctx context.Context, conversationID string) {
	if s.titles == nil {
		return
	}
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		s.bestEffort(ctx, "title_schedule", conversationID, err)
		return
	}
	if conv.HasTitle() {
		return
	}
	s.titles.ScheduleTitle(ctx, conversationID)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(*s)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
