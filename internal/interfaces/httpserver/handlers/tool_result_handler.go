package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/toolresult"
	"github.com/janhq/camus/internal/interfaces/httpserver/requests"
	"github.com/janhq/camus/internal/interfaces/httpserver/responses"
	"github.com/janhq/camus/internal/utils/platformerrors"
	"github.com/janhq/camus/internal/utils/timeutil"
)

// ToolResultHandler exposes HTTP entrypoints for tool results.
type ToolResultHandler struct {
	service ToolResultService
	log     zerolog.Logger
}

// NewToolResultHandler constructs the handler.
func NewToolResultHandler(service ToolResultService, log zerolog.Logger) *ToolResultHandler {
	return &ToolResultHandler{
		service: service,
		log:     log.With().Str("handler", "tool-result").Logger(),
	}
}

// Create handles POST /v1/conversations/:id/tool-results
// @Summary Save tool result
// @Tags ToolResults
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.CreateToolResultRequest true "Tool result"
// @Success 200 {object} responses.ToolResultResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/tool-results [post]
func (h *ToolResultHandler) Create(c *gin.Context) {
	var req requests.CreateToolResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "tool-result-create-bind-001")
		return
	}
	if msg := requests.Validate(&req); msg != "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, msg, "tool-result-create-validate-001")
		return
	}

	var timestamp *int64
	if req.Timestamp != nil {
		ms, err := timeutil.ParseMillis(*req.Timestamp)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "timestamp must be a number", "tool-result-create-timestamp-001")
			return
		}
		timestamp = &ms
	}

	result, err := h.service.Save(c.Request.Context(), c.Param("id"), toolresult.SaveParams{
		ID:          req.ID,
		ToolName:    req.ToolName,
		Args:        req.Args,
		Result:      req.Result,
		DisplayName: req.DisplayName,
		Timestamp:   timestamp,
	})
	if err != nil {
		responses.HandleError(c, err, "Failed to save tool result")
		return
	}

	c.JSON(http.StatusOK, responses.ToolResultResponse{ToolResult: responses.NewToolResult(result)})
}

// Update handles PUT /v1/conversations/:id/tool-results
// @Summary Update tool result
// @Tags ToolResults
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.UpdateToolResultRequest true "Fields to change"
// @Success 200 {object} responses.ToolResultResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/tool-results [put]
func (h *ToolResultHandler) Update(c *gin.Context) {
	var req requests.UpdateToolResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "tool-result-update-bind-001")
		return
	}
	if msg := requests.Validate(&req); msg != "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, msg, "tool-result-update-validate-001")
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToolResultID, toolresult.UpdateParams{
		ToolName:    req.ToolName,
		Args:        req.Args,
		Result:      req.Result,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		responses.HandleError(c, err, "Failed to update tool result")
		return
	}

	c.JSON(http.StatusOK, responses.ToolResultResponse{ToolResult: responses.NewToolResult(result)})
}
