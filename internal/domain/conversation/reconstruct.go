package conversation

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/observability"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

const reconstructTimeout = 30 * time.Second

// GetConversationByID rebuilds the conversation from its separately stored parts.
// Messages come back in creation order, each carrying the artifacts linked to it.
// Tool results are those referenced by the messages; dangling references are dropped.
// An unknown id is a NOT_FOUND error, never an empty view.
func (s *Service) GetConversationByID(ctx context.Context, id string) (*View, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"conversation id is required", nil, "d5f7b9c1-3e4a-4c6d-8f0b-0e2a4c6e8b05")
	}

	// The shared load outlives any single caller; each caller still stops waiting
	// when its own context ends.
	flight := s.views.DoChan(id, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reconstructTimeout)
		defer cancel()
		return s.loadView(loadCtx, id)
	})
	select {
	case <-ctx.Done():
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, ctx.Err(), "failed to fetch conversation")
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*View), nil
	}
}

func (s *Service) loadView(ctx context.Context, id string) (*View, error) {
	ctx, span := observability.StartConversationSpan(ctx, "reconstruct", id)
	defer span.End()

	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		view, hit, err := s.cache.Get(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("conversation_id", id).Msg("conversation view cache read failed")
		}
		metrics.RecordCacheLookup(hit)
		observability.AddCacheEvent(span, hit)
		if hit {
			return view, nil
		}

		// Read before rebuilding so a write committed meanwhile invalidates this fill.
		generation, err = s.cache.Generation(ctx, id)
		if err != nil {
			s.log.Warn().Err(err).Str("conversation_id", id).Msg("conversation view generation read failed")
		}
		cacheable = err == nil
	}

	start := time.Now()
	view, err := s.reconstruct(ctx, id)
	if err != nil {
		observability.RecordError(span, err, "error")
		return nil, err
	}
	metrics.RecordReconstruct(time.Since(start).Seconds())

	if cacheable {
		stored, err := s.cache.Set(ctx, id, generation, view)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("conversation_id", id).Msg("conversation view cache write failed")
		case !stored:
			s.log.Debug().Str("conversation_id", id).Msg("conversation changed during rebuild, view not cached")
		}
	}
	return view, nil
}

func (s *Service) reconstruct(ctx context.Context, id string) (*View, error) {
	var (
		conv     *Conversation
		messages []*Message
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		conv, err = s.conversations.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.messages.ListByConversation(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch conversation")
	}

	messageIDs := make([]string, 0, len(messages))
	for _, m := range messages {
		messageIDs = append(messageIDs, m.ID)
	}
	toolResultIDs := referencedToolResults(messages)

	var (
		artifacts   []*artifact.Artifact
		toolResults []*toolresult.ToolResult
	)

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		artifacts, err = s.artifacts.ListForConversation(gctx, id, messageIDs)
		return err
	})
	if len(toolResultIDs) > 0 {
		g.Go(func() error {
			var err error
			toolResults, err = s.toolResults.FindByIDs(gctx, toolResultIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch conversation")
	}

	return &View{
		Conversation: conv,
		Messages:     messages,
		Artifacts:    attachArtifacts(messages, artifacts),
		ToolResults:  orderToolResults(toolResultIDs, toolResults),
	}, nil
}

// referencedToolResults collects distinct non-empty toolResultId values in first-reference order.
func referencedToolResults(messages []*Message) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, m := range messages {
		if m.ToolResultID == nil || *m.ToolResultID == "" {
			continue
		}
		if _, ok := seen[*m.ToolResultID]; ok {
			continue
		}
		seen[*m.ToolResultID] = struct{}{}
		ids = append(ids, *m.ToolResultID)
	}
	return ids
}

// attachArtifacts hangs each artifact on its message and returns the flattened list:
// linked artifacts in message order, then unlinked ones by timestamp.
func attachArtifacts(messages []*Message, artifacts []*artifact.Artifact) []*artifact.Artifact {
	sortArtifacts(artifacts)

	byID := make(map[string]*Message, len(messages))
	for _, m := range messages {
		m.Artifacts = nil
		byID[m.ID] = m
	}

	var unlinked []*artifact.Artifact
	for _, a := range artifacts {
		if a.MessageID != nil {
			if m, ok := byID[*a.MessageID]; ok {
				m.Artifacts = append(m.Artifacts, a)
				continue
			}
		}
		unlinked = append(unlinked, a)
	}

	flat := make([]*artifact.Artifact, 0, len(artifacts))
	for _, m := range messages {
		flat = append(flat, m.Artifacts...)
	}
	return append(flat, unlinked...)
}

func sortArtifacts(artifacts []*artifact.Artifact) {
	sort.SliceStable(artifacts, func(i, j int) bool {
		if artifacts[i].Timestamp != artifacts[j].Timestamp {
			return artifacts[i].Timestamp < artifacts[j].Timestamp
		}
		return artifacts[i].ID < artifacts[j].ID
	})
}

// orderToolResults returns results in the order their ids were first referenced.
func orderToolResults(ids []string, results []*toolresult.ToolResult) []*toolresult.ToolResult {
	byID := make(map[string]*toolresult.ToolResult, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}
	ordered := make([]*toolresult.ToolResult, 0, len(results))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered
}
