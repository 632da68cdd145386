package artifact

import (
	"context"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/observability"
	"github.com/janhq/camus/internal/utils/platformerrors"
	"github.com/janhq/camus/internal/utils/timeutil"
)

// ViewInvalidator drops cached conversation views after a write.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, conversationID string) error
}

// MetadataScheduler queues the asynchronous display-metadata pass for an artifact.
type MetadataScheduler interface {
	ScheduleMetadata(ctx context.Context, artifactID string)
}

// Service defines the interface for artifact business logic.
type Service interface {
	// Save creates the artifact. Saving an id twice is an error, never a merge.
	Save(ctx context.Context, params SaveParams) (*Artifact, error)

	// Update edits an existing artifact; it never creates one.
	Update(ctx context.Context, conversationID, id string, params UpdateParams) (*Artifact, error)

	// GetByID retrieves an artifact by ID.
	GetByID(ctx context.Context, id string) (*Artifact, error)

	// LinkToMessage attaches an unlinked artifact to the message that produced it.
	LinkToMessage(ctx context.Context, conversationID, id, messageID string) error
}

// DefaultService implements the Service interface.
type DefaultService struct {
	repo        Repository
	invalidator ViewInvalidator
	scheduler   MetadataScheduler
	log         zerolog.Logger
}

// NewService creates a new artifact service. scheduler may be nil when the metadata pass is disabled.
func NewService(repo Repository, invalidator ViewInvalidator, scheduler MetadataScheduler, log zerolog.Logger) *DefaultService {
	return &DefaultService{
		repo:        repo,
		invalidator: invalidator,
		scheduler:   scheduler,
		log:         log.With().Str("component", "artifact-service").Logger(),
	}
}

// Save creates a new artifact.
func (s *DefaultService) Save(ctx context.Context, params SaveParams) (*Artifact, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"artifact name is required", nil, "5b0de0a4-3f0b-4e37-8f0c-2f4d6c1d8e21")
	}
	if strings.TrimSpace(params.Content) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"artifact content is required", nil, "7c2a9f55-0d0e-4b8b-9a43-6f0f3e2b1c32")
	}

	id := strings.TrimSpace(params.ID)
	if id == "" {
		id = ContentID(params.Content)
	}

	artifactType := params.Type
	if artifactType == "" {
		artifactType = TypeHTML
	}

	timestamp := timeutil.NowMillis()
	if params.Timestamp != nil {
		timestamp = *params.Timestamp
	}

	now := time.Now().UTC()
	a := &Artifact{
		ID:             id,
		ConversationID: optional(params.ConversationID),
		MessageID:      optional(params.MessageID),
		UserID:         optional(params.UserID),
		Name:           strings.TrimSpace(params.Name),
		Content:        params.Content,
		Type:           artifactType,
		MimeType:       mimetype.Detect([]byte(params.Content)).String(),
		Timestamp:      timestamp,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ctx, span := observability.StartArtifactSpan(ctx, "save", id, string(artifactType))
	defer span.End()

	start := time.Now()
	if err := s.repo.Create(ctx, a); err != nil {
		observability.RecordError(span, err, "error")
		metrics.RecordSave(metrics.EntityArtifact, metrics.OutcomeError, time.Since(start).Seconds())
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to save artifact")
	}
	metrics.RecordSave(metrics.EntityArtifact, metrics.OutcomeCreated, time.Since(start).Seconds())

	s.invalidate(ctx, params.ConversationID)

	if s.scheduler != nil {
		s.scheduler.ScheduleMetadata(ctx, a.ID)
	}

	return a, nil
}

// Update edits an existing artifact.
func (s *DefaultService) Update(ctx context.Context, conversationID, id string, params UpdateParams) (*Artifact, error) {
	if strings.TrimSpace(id) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"artifactId is required", nil, "1e6a3c0b-92a4-4e11-b6f5-0d8a7c4e2f43")
	}

	ctx, span := observability.StartArtifactSpan(ctx, "update", id, string(TypeHTML))
	defer span.End()

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		observability.RecordError(span, err, "error")
		metrics.RecordSave(metrics.EntityArtifact, metrics.OutcomeError, 0)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to update artifact")
	}
	metrics.RecordSave(metrics.EntityArtifact, metrics.OutcomeUpdated, 0)

	s.invalidate(ctx, conversationID)
	if updated.ConversationID != nil && *updated.ConversationID != conversationID {
		s.invalidate(ctx, *updated.ConversationID)
	}
	return updated, nil
}

// GetByID retrieves an artifact by ID.
func (s *DefaultService) GetByID(ctx context.Context, id string) (*Artifact, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch artifact")
	}
	return a, nil
}

// LinkToMessage attaches an unlinked artifact to messageID.
func (s *DefaultService) LinkToMessage(ctx context.Context, conversationID, id, messageID string) error {
	linked, err := s.repo.LinkMessage(ctx, id, messageID)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to link artifact to message")
	}
	if linked {
		s.invalidate(ctx, conversationID)
	}
	return nil
}

func (s *DefaultService) invalidate(ctx context.Context, conversationID string) {
	if s.invalidator == nil || conversationID == "" {
		return
	}
	if err := s.invalidator.Invalidate(ctx, conversationID); err != nil {
		s.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to invalidate conversation view")
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
