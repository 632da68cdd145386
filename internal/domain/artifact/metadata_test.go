package artifact

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	reply  string
	err    error
	calls  int
	during func()
}

func (s *stubCompleter) Complete(context.Context, string, string) (string, error) {
	s.calls++
	if s.during != nil {
		s.during()
	}
	return s.reply, s.err
}

func strPtr(s string) *string { return &s }

func seedArtifact(t *testing.T, repo *memoryRepo, a *Artifact) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), a))
}

func TestEnrich_FillsOnlyEmptyFields(t *testing.T) {
	repo := newMemoryRepo()
	existing := "Handmade Title"
	conv := "conv_1"
	seedArtifact(t, repo, &Artifact{ID: "art_1", ConversationID: &conv, Name: "a", Content: "<p>a</p>", Title: &existing})

	completer := &stubCompleter{reply: "```json\n{\"title\":\"Model Title\",\"description\":\"A small page.\",\"category\":\"Page\"}\n```"}
	inv := &recordingInvalidator{}
	enricher := NewMetadataEnricher(repo, completer, inv, zerolog.Nop())

	require.NoError(t, enricher.Enrich(context.Background(), "art_1"))

	stored, err := repo.FindByID(context.Background(), "art_1")
	require.NoError(t, err)
	assert.Equal(t, "Handmade Title", *stored.Title)
	assert.Equal(t, "A small page.", *stored.Description)
	assert.Equal(t, "page", *stored.Category)
	assert.Equal(t, []string{"conv_1"}, inv.calls)
}

func TestEnrich_KeepsFieldsEditedDuringGeneration(t *testing.T) {
	repo := newMemoryRepo()
	conv := "conv_1"
	seedArtifact(t, repo, &Artifact{ID: "art_1", ConversationID: &conv, Name: "a", Content: "<p>a</p>"})

	completer := &stubCompleter{reply: `{"title":"Model Title","description":"Model description.","category":"page"}`}
	completer.during = func() {
		_, err := repo.Update(context.Background(), "art_1", UpdateParams{Title: strPtr("User Title"), Description: strPtr("User description.")})
		require.NoError(t, err)
	}
	inv := &recordingInvalidator{}

	require.NoError(t, NewMetadataEnricher(repo, completer, inv, zerolog.Nop()).Enrich(context.Background(), "art_1"))

	stored, err := repo.FindByID(context.Background(), "art_1")
	require.NoError(t, err)
	assert.Equal(t, "User Title", *stored.Title)
	assert.Equal(t, "User description.", *stored.Description)
	assert.Equal(t, "page", *stored.Category)
	assert.Equal(t, []string{"conv_1"}, inv.calls)
}

func TestEnrich_NothingLeftToFillSkipsInvalidation(t *testing.T) {
	repo := newMemoryRepo()
	conv := "conv_1"
	seedArtifact(t, repo, &Artifact{ID: "art_1", ConversationID: &conv, Name: "a", Content: "<p>a</p>"})

	completer := &stubCompleter{reply: `{"title":"Model Title"}`}
	completer.during = func() {
		_, err := repo.Update(context.Background(), "art_1", UpdateParams{Title: strPtr("User Title")})
		require.NoError(t, err)
	}
	inv := &recordingInvalidator{}

	require.NoError(t, NewMetadataEnricher(repo, completer, inv, zerolog.Nop()).Enrich(context.Background(), "art_1"))

	stored, err := repo.FindByID(context.Background(), "art_1")
	require.NoError(t, err)
	assert.Equal(t, "User Title", *stored.Title)
	assert.Empty(t, inv.calls)
}

func TestEnrich_SkipsCompleteArtifacts(t *testing.T) {
	repo := newMemoryRepo()
	title, desc, cat := "t", "d", "c"
	seedArtifact(t, repo, &Artifact{ID: "art_1", Name: "a", Content: "x", Title: &title, Description: &desc, Category: &cat})

	completer := &stubCompleter{}
	require.NoError(t, NewMetadataEnricher(repo, completer, nil, zerolog.Nop()).Enrich(context.Background(), "art_1"))
	assert.Zero(t, completer.calls)
}

func TestEnrich_PropagatesCompletionErrors(t *testing.T) {
	repo := newMemoryRepo()
	seedArtifact(t, repo, &Artifact{ID: "art_1", Name: "a", Content: "x"})

	completer := &stubCompleter{err: errors.New("upstream unavailable")}
	err := NewMetadataEnricher(repo, completer, nil, zerolog.Nop()).Enrich(context.Background(), "art_1")
	assert.Error(t, err)
}

func TestParseGeneratedMetadata_RejectsProse(t *testing.T) {
	_, err := parseGeneratedMetadata("I think this is a calculator")
	assert.Error(t, err)
}
