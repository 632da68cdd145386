package title

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/infrastructure/metrics"
	"github.com/janhq/camus/internal/infrastructure/observability"
	"github.com/janhq/camus/internal/utils/stringutils"
)

const (
	maxPromptRunes  = 1000
	maxAITitleRunes = 80
)

const systemPrompt = `You write short titles for chat conversations.
Reply with the title only: at most 6 words, no quotes, no trailing punctuation.`

// Completer produces a single chat completion.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Invalidator drops cached conversation views.
type Invalidator interface {
	Invalidate(ctx context.Context, conversationID string)
}

// Generator titles conversations that do not have one yet.
type Generator struct {
	conversations conversation.Repository
	messages      conversation.MessageRepository
	completer     Completer
	invalidator   Invalidator
	log           zerolog.Logger
}

// NewGenerator creates a title generator. completer may be nil, in which case only
// the deterministic fallback is used.
func NewGenerator(
	conversations conversation.Repository,
	messages conversation.MessageRepository,
	completer Completer,
	invalidator Invalidator,
	log zerolog.Logger,
) *Generator {
	return &Generator{
		conversations: conversations,
		messages:      messages,
		completer:     completer,
		invalidator:   invalidator,
		log:           log.With().Str("component", "title-generator").Logger(),
	}
}

// GenerateForConversation stores a title when the conversation has none and a user
// message exists. A title set meanwhile by anyone else is never overwritten.
func (g *Generator) GenerateForConversation(ctx context.Context, conversationID string) error {
	ctx, span := observability.GetTracer().Start(ctx, "title.generate")
	defer span.End()

	conv, err := g.conversations.FindByID(ctx, conversationID)
	if err != nil {
		metrics.RecordTitle("error")
		return fmt.Errorf("load conversation %s: %w", conversationID, err)
	}
	if conv.HasTitle() {
		metrics.RecordTitle("skipped")
		return nil
	}

	messages, err := g.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		metrics.RecordTitle("error")
		return fmt.Errorf("load messages for %s: %w", conversationID, err)
	}

	content, ok := firstUserContent(messages)
	if !ok {
		metrics.RecordTitle("skipped")
		return nil
	}

	title, source := g.pick(ctx, conversationID, content, GenerateConversationTitle(messages))

	updated, err := g.conversations.SetTitleIfEmpty(ctx, conversationID, title)
	if err != nil {
		metrics.RecordTitle("error")
		observability.RecordError(span, err, "warning")
		return fmt.Errorf("store title for %s: %w", conversationID, err)
	}
	if !updated {
		metrics.RecordTitle("skipped")
		return nil
	}

	metrics.RecordTitle(source)
	if g.invalidator != nil {
		g.invalidator.Invalidate(ctx, conversationID)
	}
	g.log.Debug().Str("conversation_id", conversationID).Str("source", source).Msg("conversation title stored")
	return nil
}

// pick prefers the model's title and falls back on any failure or empty reply.
func (g *Generator) pick(ctx context.Context, conversationID, content, fallback string) (string, string) {
	if g.completer == nil {
		return fallback, "fallback"
	}

	prompt := stringutils.Truncate(stringutils.SanitizeTitleContent(content), maxPromptRunes)
	if prompt == "" {
		return fallback, "fallback"
	}

	raw, err := g.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		g.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("ai title failed, using fallback")
		return fallback, "fallback"
	}

	title := stringutils.Truncate(stringutils.CleanModelTitle(raw), maxAITitleRunes)
	if title == "" {
		return fallback, "fallback"
	}
	return title, "ai"
}

// Backfill titles up to limit untitled conversations and returns how many were attempted
// without error.
func (g *Generator) Backfill(ctx context.Context, limit int) (int, error) {
	convs, err := g.conversations.FindUntitled(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("find untitled conversations: %w", err)
	}

	done := 0
	for _, c := range convs {
		if ctx.Err() != nil {
			return done, ctx.Err()
		}
		if err := g.GenerateForConversation(ctx, c.ID); err != nil {
			g.log.Warn().Err(err).Str("conversation_id", c.ID).Msg("backfill title failed")
			continue
		}
		done++
	}
	return done, nil
}
