package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/interfaces/httpserver/handlers"
)

func setupToolResultTestRouter(handler *handlers.ToolResultHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/conversations/:id/tool-results", handler.Create)
	r.PUT("/v1/conversations/:id/tool-results", handler.Update)
	return r
}

func TestToolResultHandler_Create(t *testing.T) {
	var got toolresult.SaveParams
	mock := &MockToolResultService{
		SaveFunc: func(ctx context.Context, conversationID string, params toolresult.SaveParams) (*toolresult.ToolResult, error) {
			got = params
			return &toolresult.ToolResult{ID: "tr_1", ToolName: params.ToolName, Args: params.Args, Result: params.Result, Timestamp: *params.Timestamp}, nil
		},
	}
	router := setupToolResultTestRouter(handlers.NewToolResultHandler(mock, zerolog.Nop()))

	body := `{"id":"tr_1","toolName":"search","args":{"q":"go"},"result":[1,2],"timestamp":1700000000000}`
	req := httptest.NewRequest(http.MethodPost, "/v1/conversations/conv_1/tool-results", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.Timestamp == nil || *got.Timestamp != 1_700_000_000_000 {
		t.Errorf("timestamp = %v", got.Timestamp)
	}
	if string(got.Args) != `{"q":"go"}` {
		t.Errorf("args = %s", got.Args)
	}

	var resp struct {
		ToolResult struct {
			ID     string          `json:"id"`
			Result json.RawMessage `json:"result"`
		} `json:"toolResult"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if resp.ToolResult.ID != "tr_1" || string(resp.ToolResult.Result) != "[1,2]" {
		t.Errorf("unexpected response: %s", w.Body.String())
	}
}

func TestToolResultHandler_Validation(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		body        string
		wantMessage string
	}{
		{"create without tool name", http.MethodPost, `{"args":{}}`, "toolName is required"},
		{"create with bad timestamp", http.MethodPost, `{"toolName":"x","timestamp":"soon"}`, "invalid request body"},
		{"update without id", http.MethodPut, `{"toolName":"x"}`, "toolResultId is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mock := &MockToolResultService{
				SaveFunc: func(ctx context.Context, conversationID string, params toolresult.SaveParams) (*toolresult.ToolResult, error) {
					called = true
					return nil, nil
				},
				UpdateFunc: func(ctx context.Context, conversationID, id string, params toolresult.UpdateParams) (*toolresult.ToolResult, error) {
					called = true
					return nil, nil
				},
			}
			router := setupToolResultTestRouter(handlers.NewToolResultHandler(mock, zerolog.Nop()))

			req := httptest.NewRequest(tt.method, "/v1/conversations/conv_1/tool-results", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
			if called {
				t.Error("service should not be called on validation failure")
			}
			if !strings.Contains(w.Body.String(), tt.wantMessage) {
				t.Errorf("body %s does not contain %q", w.Body.String(), tt.wantMessage)
			}
		})
	}
}

func TestToolResultHandler_Update(t *testing.T) {
	var gotID string
	mock := &MockToolResultService{
		UpdateFunc: func(ctx context.Context, conversationID, id string, params toolresult.UpdateParams) (*toolresult.ToolResult, error) {
			gotID = id
			return &toolresult.ToolResult{ID: id, ToolName: "search", DisplayName: params.DisplayName}, nil
		},
	}
	router := setupToolResultTestRouter(handlers.NewToolResultHandler(mock, zerolog.Nop()))

	req := httptest.NewRequest(http.MethodPut, "/v1/conversations/conv_1/tool-results", strings.NewReader(`{"toolResultId":"tr_1","displayName":"Web search"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotID != "tr_1" {
		t.Errorf("id = %q", gotID)
	}
	if !strings.Contains(w.Body.String(), "Web search") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
