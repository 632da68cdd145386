package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/interfaces/httpserver/handlers"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

func setupShareTestRouter(handler *handlers.ShareHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/conversations/:id/share", handler.ShareConversation)
	r.DELETE("/v1/conversations/:id/share", handler.UnshareConversation)
	r.POST("/v1/conversations/:id/artifacts/:artifactId/share", handler.ShareArtifact)
	r.GET("/v1/shared/conversations/:slug", handler.GetSharedConversation)
	r.GET("/v1/shared/artifacts/:slug", handler.GetSharedArtifact)
	return r
}

func TestShareHandler(t *testing.T) {
	userID := "user-1"
	sessionID := uint(4)
	mock := &MockShareService{
		ShareConversationFunc: func(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
			return &conversation.Conversation{ID: conversationID, IsPublic: true, ShareSlug: strPtr("AbC123")}, nil
		},
		UnshareConversationFunc: func(ctx context.Context, conversationID string) error {
			return nil
		},
		ShareArtifactFunc: func(ctx context.Context, conversationID, artifactID string) (*artifact.Artifact, error) {
			return &artifact.Artifact{ID: artifactID, IsPublic: true, ShareSlug: strPtr("Art999")}, nil
		},
		GetSharedConversationFunc: func(ctx context.Context, slug string) (*conversation.View, error) {
			if slug != "AbC123" {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "shared conversation not found", nil, "share-404")
			}
			return &conversation.View{Conversation: &conversation.Conversation{ID: "c1", UserID: &userID, SessionID: &sessionID, IsPublic: true}}, nil
		},
		GetSharedArtifactFunc: func(ctx context.Context, slug string) (*artifact.Artifact, error) {
			return &artifact.Artifact{ID: "art_1", ConversationID: strPtr("c1"), ViewCount: 3, IsPublic: true}, nil
		},
	}
	router := setupShareTestRouter(handlers.NewShareHandler(mock, zerolog.Nop()))

	tests := []struct {
		name        string
		method      string
		path        string
		wantStatus  int
		wantContain string
		wantAbsent  string
	}{
		{"share conversation", http.MethodPost, "/v1/conversations/c1/share", http.StatusOK, `"shareSlug":"AbC123"`, ""},
		{"unshare conversation", http.MethodDelete, "/v1/conversations/c1/share", http.StatusNoContent, "", ""},
		{"share artifact", http.MethodPost, "/v1/conversations/c1/artifacts/art_1/share", http.StatusOK, `"shareSlug":"Art999"`, ""},
		{"shared conversation hides owner", http.MethodGet, "/v1/shared/conversations/AbC123", http.StatusOK, `"id":"c1"`, "user-1"},
		{"unknown slug", http.MethodGet, "/v1/shared/conversations/nope", http.StatusNotFound, "shared conversation not found", ""},
		{"shared artifact", http.MethodGet, "/v1/shared/artifacts/Art999", http.StatusOK, `"viewCount":3`, "conversationId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantContain != "" && !strings.Contains(w.Body.String(), tt.wantContain) {
				t.Errorf("body %s does not contain %q", w.Body.String(), tt.wantContain)
			}
			if tt.wantAbsent != "" && strings.Contains(w.Body.String(), tt.wantAbsent) {
				t.Errorf("body %s should not contain %q", w.Body.String(), tt.wantAbsent)
			}
		})
	}
}

