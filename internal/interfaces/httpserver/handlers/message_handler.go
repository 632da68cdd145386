package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/conversation"
	"github.com/janhq/camus/internal/interfaces/httpserver/requests"
	"github.com/janhq/camus/internal/interfaces/httpserver/responses"
	"github.com/janhq/camus/internal/utils/platformerrors"
)

// MessageHandler saves messages. POST and PUT share the same upsert.
type MessageHandler struct {
	service ConversationService
	log     zerolog.Logger
}

// NewMessageHandler constructs the handler.
func NewMessageHandler(service ConversationService, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		log:     log.With().Str("handler", "message").Logger(),
	}
}

// Create handles POST /v1/conversations/:id/messages
// @Summary Save message
// @Description Saves a message. Posting an existing messageId overwrites its content instead of duplicating it.
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.CreateMessageRequest true "Message"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	var req requests.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "message-create-bind-001")
		return
	}
	if msg := requests.Validate(&req); msg != "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, msg, "message-create-validate-001")
		return
	}

	role, ok := conversation.ParseRole(req.Role)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid role", "message-create-role-001")
		return
	}

	h.save(c, conversation.MessageParams{
		ID:           req.MessageID,
		Role:         role,
		Content:      *req.Content,
		ToolName:     req.ToolName,
		ToolCallID:   req.ToolCallID,
		ToolResultID: req.ToolResultID,
		IsError:      req.IsError,
		IsIncomplete: req.IsIncomplete,
		ArtifactID:   req.ArtifactID,
	})
}

// Update handles PUT /v1/conversations/:id/messages
// @Summary Update message
// @Description Overwrites a message by id, creating it when absent. Role defaults to assistant; thinkingContent is ignored.
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.UpdateMessageRequest true "Message"
// @Success 200 {object} responses.MessageResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/messages [put]
func (h *MessageHandler) Update(c *gin.Context) {
	var req requests.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "message-update-bind-001")
		return
	}
	if msg := requests.Validate(&req); msg != "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, msg, "message-update-validate-001")
		return
	}

	role := conversation.RoleAssistant
	if req.Role != "" {
		parsed, ok := conversation.ParseRole(req.Role)
		if !ok {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid role", "message-update-role-001")
			return
		}
		role = parsed
	}

	h.save(c, conversation.MessageParams{
		ID:           req.MessageID,
		Role:         role,
		Content:      *req.Content,
		IsIncomplete: req.IsIncomplete,
		ArtifactID:   req.ArtifactID,
	})
}

func (h *MessageHandler) save(c *gin.Context, params conversation.MessageParams) {
	msg, err := h.service.SaveMessage(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		responses.HandleError(c, err, "Failed to save message")
		return
	}

	c.JSON(http.StatusOK, responses.MessageResponse{Message: responses.NewMessage(msg)})
}
