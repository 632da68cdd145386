package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/domain/session"
	"github.com/janhq/camus/internal/interfaces/httpserver/handlers"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

func setupConversationTestRouter(handler *handlers.ConversationHandler, middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware...)

	conversations := r.Group("/v1/conversations")
	{
		conversations.GET("", handler.List)
		conversations.POST("", handler.Create)
		conversations.GET("/:id", handler.Get)
		conversations.PATCH("/:id", handler.Update)
	}
	return r
}

func TestConversationHandler_List(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		user         string
		wantIdentity session.Identity
	}{
		{"anonymous session", "?sessionId=sess-1", "", session.Identity{ClientSessionID: "sess-1"}},
		{"signed-in user wins", "?sessionId=sess-1", "user-1", session.Identity{UserID: "user-1", ClientSessionID: "sess-1"}},
		{"neither", "", "", session.Identity{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got session.Identity
			mock := &MockConversationService{
				ListConversationsFunc: func(ctx context.Context, identity session.Identity) ([]*conversation.Summary, error) {
					got = identity
					if identity.IsZero() {
						return []*conversation.Summary{}, nil
					}
					return []*conversation.Summary{{ID: "c1", Title: conversation.UntitledConversation, Timestamp: 42}}, nil
				},
			}

			var middleware []gin.HandlerFunc
			if tt.user != "" {
				middleware = append(middleware, withUser(tt.user))
			}
			router := setupConversationTestRouter(handlers.NewConversationHandler(mock, zerolog.Nop()), middleware...)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/conversations"+tt.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if got != tt.wantIdentity {
				t.Errorf("identity = %+v, want %+v", got, tt.wantIdentity)
			}

			var body struct {
				Conversations []map[string]any `json:"conversations"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Conversations == nil {
				t.Error("expected conversations array, got null")
			}
		})
	}
}

func TestConversationHandler_ListError(t *testing.T) {
	mock := &MockConversationService{
		ListConversationsFunc: func(ctx context.Context, identity session.Identity) ([]*conversation.Summary, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeDatabaseError, "Failed to fetch conversations", nil, "list-001")
		},
	}
	router := setupConversationTestRouter(handlers.NewConversationHandler(mock, zerolog.Nop()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/conversations?sessionId=s", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestConversationHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		mockErr      error
		wantStatus   int
		wantSession  string
		wantErrorMsg string
	}{
		{
			name:        "anonymous with body session",
			body:        `{"title":"Hello","sessionId":"sess-9"}`,
			wantStatus:  http.StatusOK,
			wantSession: "sess-9",
		},
		{
			name:         "no identity",
			body:         `{}`,
			mockErr:      platformerrors.NewError(context.Background(), platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "sessionId is required for anonymous conversations", nil, "v-1"),
			wantStatus:   http.StatusBadRequest,
			wantErrorMsg: "sessionId is required for anonymous conversations",
		},
		{
			name:       "malformed body",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIdentity session.Identity
			mock := &MockConversationService{
				CreateConversationFunc: func(ctx context.Context, identity session.Identity, params conversation.CreateParams) (*conversation.Conversation, error) {
					gotIdentity = identity
					if tt.mockErr != nil {
						return nil, tt.mockErr
					}
					return &conversation.Conversation{ID: "conv_1", Title: params.Title, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
				},
			}
			router := setupConversationTestRouter(handlers.NewConversationHandler(mock, zerolog.Nop()))

			req := httptest.NewRequest(http.MethodPost, "/v1/conversations", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantSession != "" && gotIdentity.ClientSessionID != tt.wantSession {
				t.Errorf("session = %q, want %q", gotIdentity.ClientSessionID, tt.wantSession)
			}
			if tt.wantErrorMsg != "" && !strings.Contains(w.Body.String(), tt.wantErrorMsg) {
				t.Errorf("body %s does not contain %q", w.Body.String(), tt.wantErrorMsg)
			}
		})
	}
}

func TestConversationHandler_Get(t *testing.T) {
	created := time.UnixMilli(1_700_000_000_000).UTC()
	mock := &MockConversationService{
		GetConversationByIDFunc: func(ctx context.Context, id string) (*conversation.View, error) {
			if id != "conv_1" {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "not found", nil, "conversation-find-001")
			}
			return &conversation.View{
				Conversation: &conversation.Conversation{ID: id, CreatedAt: created, UpdatedAt: created},
				Messages: []*conversation.Message{
					{ID: "m1", ConversationID: id, Role: conversation.RoleUser, Content: "hi", CreatedAt: created, UpdatedAt: created},
				},
			}, nil
		},
	}
	router := setupConversationTestRouter(handlers.NewConversationHandler(mock, zerolog.Nop()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/conversations/conv_1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Conversation struct {
			ID        string  `json:"id"`
			Title     *string `json:"title"`
			CreatedAt int64   `json:"createdAt"`
		} `json:"conversation"`
		Messages    []map[string]any `json:"messages"`
		Artifacts   []map[string]any `json:"artifacts"`
		ToolResults []map[string]any `json:"toolResults"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Conversation.CreatedAt != 1_700_000_000_000 {
		t.Errorf("createdAt = %d", body.Conversation.CreatedAt)
	}
	if body.Conversation.Title != nil {
		t.Errorf("expected null title, got %q", *body.Conversation.Title)
	}
	if len(body.Messages) != 1 || body.Messages[0]["role"] != "user" {
		t.Errorf("unexpected messages: %v", body.Messages)
	}
	if body.Artifacts == nil || body.ToolResults == nil {
		t.Error("expected empty arrays for artifacts and toolResults")
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/conversations/missing", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "failed to fetch conversation") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestConversationHandler_Update(t *testing.T) {
	var gotPatch conversation.Patch
	mock := &MockConversationService{
		UpdateConversationFunc: func(ctx context.Context, id string, patch conversation.Patch) (*conversation.Conversation, error) {
			gotPatch = patch
			return &conversation.Conversation{ID: id, Title: patch.Title}, nil
		},
	}
	router := setupConversationTestRouter(handlers.NewConversationHandler(mock, zerolog.Nop()))

	req := httptest.NewRequest(http.MethodPatch, "/v1/conversations/conv_1", strings.NewReader(`{"title":"Renamed","isCompleted":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotPatch.Title == nil || *gotPatch.Title != "Renamed" {
		t.Errorf("title patch = %v", gotPatch.Title)
	}
	if gotPatch.IsCompleted == nil || !*gotPatch.IsCompleted {
		t.Errorf("isCompleted patch = %v", gotPatch.IsCompleted)
	}

	req = httptest.NewRequest(http.MethodPatch, "/v1/conversations/conv_1", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty patch, got %d", w.Code)
	}
}
