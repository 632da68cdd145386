package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/utils/stringutils"
)

const (
	maxMetadataContentRunes = 4000
	maxTitleRunes           = 80
	maxDescriptionRunes     = 240
	maxCategoryRunes        = 40
)

const metadataSystemPrompt = `You label generated web artifacts for a gallery.
Reply with a single JSON object and nothing else:
{"title": "...", "description": "...", "category": "..."}
The title has at most 6 words. The description is one sentence.
The category is one lowercase word such as game, tool, chart, page or animation.`

// Completer produces a single chat completion.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type generatedMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// MetadataEnricher fills missing display metadata for artifacts.
type MetadataEnricher struct {
	repo        Repository
	completer   Completer
	invalidator ViewInvalidator
	log         zerolog.Logger
}

// NewMetadataEnricher creates an enricher.
func NewMetadataEnricher(repo Repository, completer Completer, invalidator ViewInvalidator, log zerolog.Logger) *MetadataEnricher {
	return &MetadataEnricher{
		repo:        repo,
		completer:   completer,
		invalidator: invalidator,
		log:         log.With().Str("component", "artifact-metadata").Logger(),
	}
}

// Enrich generates title, description and category for the artifact and stores
// only the fields that are still empty.
func (e *MetadataEnricher) Enrich(ctx context.Context, artifactID string) error {
	a, err := e.repo.FindByID(ctx, artifactID)
	if err != nil {
		return fmt.Errorf("load artifact %s: %w", artifactID, err)
	}
	if !a.NeedsMetadata() {
		return nil
	}

	prompt := fmt.Sprintf("Artifact name: %s\n\nContent:\n%s", a.Name, stringutils.Truncate(a.Content, maxMetadataContentRunes))
	raw, err := e.completer.Complete(ctx, metadataSystemPrompt, prompt)
	if err != nil {
		return fmt.Errorf("generate artifact metadata: %w", err)
	}

	generated, err := parseGeneratedMetadata(raw)
	if err != nil {
		return err
	}

	params := UpdateParams{}
	if isBlank(a.Title) && generated.Title != "" {
		v := stringutils.Truncate(stringutils.CleanModelTitle(generated.Title), maxTitleRunes)
		params.Title = &v
	}
	if isBlank(a.Description) && generated.Description != "" {
		v := stringutils.Truncate(strings.TrimSpace(generated.Description), maxDescriptionRunes)
		params.Description = &v
	}
	if isBlank(a.Category) && generated.Category != "" {
		v := stringutils.Truncate(strings.ToLower(strings.TrimSpace(generated.Category)), maxCategoryRunes)
		params.Category = &v
	}
	if params.IsEmpty() {
		return nil
	}

	// Fields edited while the model was running keep the edited value.
	filled, err := e.repo.FillMetadataIfEmpty(ctx, a.ID, params)
	if err != nil {
		return fmt.Errorf("store artifact metadata: %w", err)
	}
	if !filled {
		return nil
	}

	if e.invalidator != nil && a.ConversationID != nil {
		if err := e.invalidator.Invalidate(ctx, *a.ConversationID); err != nil {
			e.log.Warn().Err(err).Str("artifact_id", a.ID).Msg("failed to invalidate conversation view")
		}
	}

	e.log.Debug().Str("artifact_id", a.ID).Msg("artifact metadata stored")
	return nil
}

// parseGeneratedMetadata accepts bare JSON or JSON wrapped in a markdown fence.
func parseGeneratedMetadata(raw string) (generatedMetadata, error) {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return generatedMetadata{}, fmt.Errorf("artifact metadata response is not JSON: %q", stringutils.Truncate(text, 80))
	}

	var out generatedMetadata
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return generatedMetadata{}, fmt.Errorf("decode artifact metadata: %w", err)
	}
	out.Title = strings.TrimSpace(out.Title)
	out.Description = strings.TrimSpace(out.Description)
	out.Category = strings.TrimSpace(out.Category)
	return out, nil
}
