package title

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

type stubConversations struct {
	conversation.Repository

	mu       sync.Mutex
	rows     map[string]*conversation.Conversation
	untitled []*conversation.Conversation
}

func (s *stubConversations) FindByID(ctx context.Context, id string) (*conversation.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "conversation not found", nil, "")
	}
	cp := *c
	return &cp, nil
}

func (s *stubConversations) SetTitleIfEmpty(_ context.Context, id, title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok || c.HasTitle() {
		return false, nil
	}
	c.Title = &title
	return true, nil
}

func (s *stubConversations) FindUntitled(context.Context, int) ([]*conversation.Conversation, error) {
	return s.untitled, nil
}

type stubMessages struct {
	conversation.MessageRepository
	byConversation map[string][]*conversation.Message
}

func (s *stubMessages) ListByConversation(_ context.Context, id string) ([]*conversation.Message, error) {
	return s.byConversation[id], nil
}

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

type countingInvalidator struct {
	ids []string
}

func (c *countingInvalidator) Invalidate(_ context.Context, id string) {
	c.ids = append(c.ids, id)
}

func newStores(convIDs ...string) (*stubConversations, *stubMessages) {
	convs := &stubConversations{rows: map[string]*conversation.Conversation{}}
	msgs := &stubMessages{byConversation: map[string][]*conversation.Message{}}
	for _, id := range convIDs {
		convs.rows[id] = &conversation.Conversation{ID: id, CreatedAt: time.Now()}
		msgs.byConversation[id] = []*conversation.Message{
			{ID: id + "-u", ConversationID: id, Role: conversation.RoleUser, Content: "Create a simple HTML page"},
		}
	}
	return convs, msgs
}

func TestGenerateForConversation_UsesModelTitle(t *testing.T) {
	convs, msgs := newStores("c1")
	inv := &countingInvalidator{}
	g := NewGenerator(convs, msgs, &stubCompleter{reply: `"Simple HTML Page"`}, inv, zerolog.Nop())

	require.NoError(t, g.GenerateForConversation(context.Background(), "c1"))
	assert.Equal(t, "Simple HTML Page", *convs.rows["c1"].Title)
	assert.Equal(t, []string{"c1"}, inv.ids)
}

func TestGenerateForConversation_FallsBackOnModelFailure(t *testing.T) {
	tests := []struct {
		name      string
		completer Completer
	}{
		{"error", &stubCompleter{err: errors.New("503 from upstream")}},
		{"blank reply", &stubCompleter{reply: "  \n"}},
		{"no model", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			convs, msgs := newStores("c1")
			g := NewGenerator(convs, msgs, tt.completer, nil, zerolog.Nop())

			require.NoError(t, g.GenerateForConversation(context.Background(), "c1"))
			assert.Equal(t, "Create a simple HTML page", *convs.rows["c1"].Title)
		})
	}
}

func TestGenerateForConversation_NeverOverwrites(t *testing.T) {
	convs, msgs := newStores("c1")
	existing := "Chosen by user"
	convs.rows["c1"].Title = &existing
	inv := &countingInvalidator{}
	g := NewGenerator(convs, msgs, &stubCompleter{reply: "Other"}, inv, zerolog.Nop())

	require.NoError(t, g.GenerateForConversation(context.Background(), "c1"))
	assert.Equal(t, "Chosen by user", *convs.rows["c1"].Title)
	assert.Empty(t, inv.ids)
}

func TestGenerateForConversation_SkipsWithoutUserMessage(t *testing.T) {
	convs, msgs := newStores("c1")
	msgs.byConversation["c1"] = []*conversation.Message{{Role: conversation.RoleAssistant, Content: "Hi"}}
	g := NewGenerator(convs, msgs, nil, nil, zerolog.Nop())

	require.NoError(t, g.GenerateForConversation(context.Background(), "c1"))
	assert.Nil(t, convs.rows["c1"].Title)
}

func TestGenerateForConversation_UnknownConversation(t *testing.T) {
	convs, msgs := newStores()
	g := NewGenerator(convs, msgs, nil, nil, zerolog.Nop())

	assert.Error(t, g.GenerateForConversation(context.Background(), "missing"))
}

func TestBackfill(t *testing.T) {
	convs, msgs := newStores("c1", "c2")
	convs.untitled = []*conversation.Conversation{{ID: "c1"}, {ID: "c2"}, {ID: "gone"}}
	g := NewGenerator(convs, msgs, nil, nil, zerolog.Nop())

	done, err := g.Backfill(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, done)
	assert.NotNil(t, convs.rows["c1"].Title)
	assert.NotNil(t, convs.rows["c2"].Title)
}
