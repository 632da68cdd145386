package conversation

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

func notFound(ctx context.Context, what string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, what+" not found", nil, "")
}

type memoryConversations struct {
	mu        sync.Mutex
	rows      map[string]*Conversation
	touchErr  error
	touches   int
	titleSets int
}

func newMemoryConversations() *memoryConversations {
	return &memoryConversations{rows: map[string]*Conversation{}}
}

func (r *memoryConversations) Create(ctx context.Context, c *Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ID]; ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "conversation already exists", nil, "")
	}
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *memoryConversations) FindByID(ctx context.Context, id string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, notFound(ctx, "conversation")
	}
	cp := *c
	return &cp, nil
}

func (r *memoryConversations) FindBySlug(ctx context.Context, slug string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.ShareSlug != nil && *c.ShareSlug == slug && c.IsPublic {
			cp := *c
			return &cp, nil
		}
	}
	return nil, notFound(ctx, "conversation")
}

func (r *memoryConversations) List(_ context.Context, f Filter) ([]*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Conversation
	for _, c := range r.rows {
		switch {
		case f.UserID != nil:
			if c.UserID == nil || *c.UserID != *f.UserID {
				continue
			}
		case f.SessionID != nil:
			if c.SessionID == nil || *c.SessionID != *f.SessionID {
				continue
			}
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *memoryConversations) Update(ctx context.Context, id string, p Patch) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, notFound(ctx, "conversation")
	}
	if p.Title != nil {
		c.Title = p.Title
	}
	if p.IsCompleted != nil {
		c.IsCompleted = *p.IsCompleted
	}
	cp := *c
	return &cp, nil
}

func (r *memoryConversations) TouchUpdatedAt(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touches++
	if r.touchErr != nil {
		return r.touchErr
	}
	if c, ok := r.rows[id]; ok && c.UpdatedAt.Before(at) {
		c.UpdatedAt = at
	}
	return nil
}

func (r *memoryConversations) SetTitleIfEmpty(_ context.Context, id, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok || c.HasTitle() {
		return false, nil
	}
	r.titleSets++
	c.Title = &title
	return true, nil
}

func (r *memoryConversations) FindUntitled(context.Context, int) ([]*Conversation, error) {
	return nil, nil
}

func (r *memoryConversations) SlugExists(context.Context, string) (bool, error) {
	return false, nil
}

type memoryMessages struct {
	mu        sync.Mutex
	rows      map[string]*Message
	upsertErr error
	// afterList runs once the rows are collected, before they are returned.
	afterList func()
}

func newMemoryMessages() *memoryMessages {
	return &memoryMessages{rows: map[string]*Message{}}
}

func (r *memoryMessages) Upsert(ctx context.Context, m *Message) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}
	if existing, ok := r.rows[m.ID]; ok {
		if existing.ConversationID != m.ConversationID {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "message id belongs to another conversation", nil, "")
		}
		existing.Role = m.Role
		existing.Content = m.Content
		existing.ToolName = m.ToolName
		existing.ToolCallID = m.ToolCallID
		existing.ToolResultID = m.ToolResultID
		existing.IsError = m.IsError
		existing.IsIncomplete = m.IsIncomplete
		existing.UpdatedAt = m.UpdatedAt
		cp := *existing
		return &cp, nil
	}
	cp := *m
	r.rows[m.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memoryMessages) FindByID(ctx context.Context, id string) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, notFound(ctx, "message")
	}
	cp := *m
	return &cp, nil
}

func (r *memoryMessages) ListByConversation(ctx context.Context, conversationID string) ([]*Message, error) {
	r.mu.Lock()
	var out []*Message
	for _, m := range r.rows {
		if m.ConversationID == conversationID {
			cp := *m
			out = append(out, &cp)
		}
	}
	hook := r.afterList
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memoryMessages) FirstUserMessage(ctx context.Context, conversationID string) (*Message, error) {
	msgs, _ := r.ListByConversation(ctx, conversationID)
	for _, m := range msgs {
		if m.Role == RoleUser {
			return m, nil
		}
	}
	return nil, notFound(ctx, "message")
}

type memoryArtifacts struct {
	mu   sync.Mutex
	rows []*artifact.Artifact
}

func (r *memoryArtifacts) add(a *artifact.Artifact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, a)
}

func (r *memoryArtifacts) ListForConversation(_ context.Context, conversationID string, messageIDs []string) ([]*artifact.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[string]bool, len(messageIDs))
	for _, id := range messageIDs {
		ids[id] = true
	}
	var out []*artifact.Artifact
	for _, a := range r.rows {
		if (a.MessageID != nil && ids[*a.MessageID]) || (a.ConversationID != nil && *a.ConversationID == conversationID) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memoryArtifacts) LinkToMessage(_ context.Context, _, artifactID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ID == artifactID {
			if a.MessageID == nil {
				a.MessageID = &messageID
			}
			return nil
		}
	}
	return errors.New("artifact not found")
}

type memoryToolResults struct {
	rows map[string]*toolresult.ToolResult
}

func (r *memoryToolResults) FindByIDs(_ context.Context, ids []string) ([]*toolresult.ToolResult, error) {
	var out []*toolresult.ToolResult
	for _, id := range ids {
		if tr, ok := r.rows[id]; ok {
			out = append(out, tr)
		}
	}
	return out, nil
}

type memorySessions struct {
	mu   sync.Mutex
	next uint
	ids  map[string]*session.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{ids: map[string]*session.Session{}}
}

func (s *memorySessions) Resolve(_ context.Context, clientID string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.ids[clientID]; ok {
		return sess, nil
	}
	s.next++
	sess := &session.Session{ID: s.next, ClientSessionID: clientID}
	s.ids[clientID] = sess
	return sess, nil
}

func (s *memorySessions) Lookup(_ context.Context, clientID string) (*session.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.ids[clientID]
	return sess, ok, nil
}

type recordingTitles struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingTitles) ScheduleTitle(_ context.Context, conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, conversationID)
}

type memoryCache struct {
	mu          sync.Mutex
	views       map[string]*View
	generations map[string]int64
	gets        int
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{views: map[string]*View{}, generations: map[string]int64{}}
}

func (c *memoryCache) cached(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.views[id]
	return ok
}

func (c *memoryCache) Get(_ context.Context, id string) (*View, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.views[id]
	return v, ok, nil
}

func (c *memoryCache) Generation(_ context.Context, id string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[id], nil
}

func (c *memoryCache) Set(_ context.Context, id string, generation int64, v *View) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[id] != generation {
		return false, nil
	}
	c.views[id] = v
	return true, nil
}

func (c *memoryCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, id)
	c.generations[id]++
	c.invalidated = append(c.invalidated, id)
	return nil
}

type fixture struct {
	svc           *Service
	conversations *memoryConversations
	messages      *memoryMessages
	artifacts     *memoryArtifacts
	toolResults   *memoryToolResults
	sessions      *memorySessions
	titles        *recordingTitles
	cache         *memoryCache
}

// newFixture wires the service over in-memory stores with a clock that advances
// one millisecond per call, so creation order is strict.
func newFixture() *fixture {
	f := &fixture{
		conversations: newMemoryConversations(),
		messages:      newMemoryMessages(),
		artifacts:     &memoryArtifacts{},
		toolResults:   &memoryToolResults{rows: map[string]*toolresult.ToolResult{}},
		sessions:      newMemorySessions(),
		titles:        &recordingTitles{},
		cache:         newMemoryCache(),
	}
	f.svc = NewService(Dependencies{
		Conversations: f.conversations,
		Messages:      f.messages,
		Artifacts:     f.artifacts,
		Linker:        f.artifacts,
		ToolResults:   f.toolResults,
		Sessions:      f.sessions,
		Cache:         f.cache,
		Titles:        f.titles,
	}, testLogger())

	var mu sync.Mutex
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return f
}

func (f *fixture) seedConversation(id string) *Conversation {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	user := "user-1"
	c := &Conversation{ID: id, UserID: &user, CreatedAt: base, UpdatedAt: base}
	_ = f.conversations.Create(context.Background(), c)
	return c
}
