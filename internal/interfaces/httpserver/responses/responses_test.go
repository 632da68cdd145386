package responses_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/interfaces/httpserver/responses"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

func run(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, responses.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)

	var body responses.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleErrorMapsPlatformType(t *testing.T) {
	ctx := platformerrors.WithRequestID(context.Background(), "req-1")
	err := platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "missing", nil, "conv-404")

	w, body := run(t, func(c *gin.Context) {
		responses.HandleError(c, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to fetch conversation"), "failed to fetch conversation")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "conv-404", body.Code)
	assert.Equal(t, "failed to fetch conversation", body.Error)
	assert.Equal(t, "req-1", body.RequestID)
}

func TestHandleErrorKeepsValidationMessage(t *testing.T) {
	ctx := context.Background()
	inner := platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "thinking messages are not persisted", nil, "v-1")

	w, body := run(t, func(c *gin.Context) {
		responses.HandleError(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, inner, "Failed to save message"), "Failed to save message")
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "thinking messages are not persisted", body.Error)
}

func TestHandleErrorPlainError(t *testing.T) {
	w, body := run(t, func(c *gin.Context) {
		responses.HandleError(c, errors.New("boom"), "Failed to save artifact")
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to save artifact", body.Error)
	assert.Empty(t, body.Code)
}

func TestNewConversationViewEmitsArraysAndMillis(t *testing.T) {
	created := time.UnixMilli(1_700_000_000_123).UTC()
	view := responses.NewConversationView(&conversation.View{
		Conversation: &conversation.Conversation{ID: "c1", CreatedAt: created, UpdatedAt: created},
	})

	raw, err := json.Marshal(view)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["messages"])
	assert.Equal(t, []any{}, decoded["artifacts"])
	assert.Equal(t, []any{}, decoded["toolResults"])

	conv := decoded["conversation"].(map[string]any)
	assert.Nil(t, conv["title"])
	assert.Equal(t, float64(1_700_000_000_123), conv["createdAt"])
}
