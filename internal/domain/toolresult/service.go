package toolresult

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/observability"
	"github.com/janhq/camus/internal/utils/idgen"
	"github.com/janhq/camus/internal/utils/platformerrors"
	"github.com/janhq/camus/internal/utils/timeutil"
)

// ViewInvalidator drops cached conversation views after a write.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, conversationID string) error
}

// Service handles tool result writes and batch lookups.
type Service struct {
	repo        Repository
	invalidator ViewInvalidator
	log         zerolog.Logger
}

// NewService creates a tool result service.
func NewService(repo Repository, invalidator ViewInvalidator, log zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		log:         log.With().Str("component", "tool-result-service").Logger(),
	}
}

// Save creates a tool result. conversationID is only used to drop the cached view.
func (s *Service) Save(ctx context.Context, conversationID string, params SaveParams) (*ToolResult, error) {
	if strings.TrimSpace(params.ToolName) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"toolName is required", nil, "3a9d6f1e-7c42-4b0a-a8e1-0b5f2d7c9e54")
	}

	id := strings.TrimSpace(params.ID)
	if id == "" {
		id = idgen.New(idgen.PrefixToolResult)
	}

	timestamp := timeutil.NowMillis()
	if params.Timestamp != nil {
		timestamp = *params.Timestamp
	}

	now := time.Now().UTC()
	result := &ToolResult{
		ID:          id,
		ToolName:    strings.TrimSpace(params.ToolName),
		Args:        params.Args,
		Result:      params.Result,
		DisplayName: params.DisplayName,
		Timestamp:   timestamp,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, span := observability.GetTracer().Start(ctx, "tool_result.save")
	defer span.End()

	start := time.Now()
	if err := s.repo.Create(ctx, result); err != nil {
		observability.RecordError(span, err, "error")
		metrics.RecordSave(metrics.EntityToolResult, metrics.OutcomeError, time.Since(start).Seconds())
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to save tool result")
	}
	metrics.RecordSave(metrics.EntityToolResult, metrics.OutcomeCreated, time.Since(start).Seconds())

	s.invalidate(ctx, conversationID)
	return result, nil
}

// Update edits an existing tool result; it never creates one.
func (s *Service) Update(ctx context.Context, conversationID, id string, params UpdateParams) (*ToolResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"toolResultId is required", nil, "6e4b1c2d-0a3f-4d59-9b7e-1f8c3a6d2b65")
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		metrics.RecordSave(metrics.EntityToolResult, metrics.OutcomeError, 0)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Failed to update tool result")
	}
	metrics.RecordSave(metrics.EntityToolResult, metrics.OutcomeUpdated, 0)

	s.invalidate(ctx, conversationID)
	return updated, nil
}

// FindByIDs returns the tool results for ids. Unknown ids are omitted.
func (s *Service) FindByIDs(ctx context.Context, ids []string) ([]*ToolResult, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	results, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch tool results")
	}
	return results, nil
}

func (s *Service) invalidate(ctx context.Context, conversationID string) {
	if s.invalidator == nil || conversationID == "" {
		return
	}
	if err := s.invalidator.Invalidate(ctx, conversationID); err != nil {
		s.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to invalidate conversation view")
	}
}
