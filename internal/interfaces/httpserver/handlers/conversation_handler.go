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

// ConversationHandler exposes conversation listing, creation, reconstruction and patch.
type ConversationHandler struct {
	service ConversationService
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service ConversationService, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// List handles GET /v1/conversations
// @Summary List conversations
// @Description Lists the caller's most recently updated conversations. A signed-in user takes precedence over sessionId.
// @Tags Conversations
// @Produce json
// @Param sessionId query string false "Anonymous session id"
// @Success 200 {object} responses.ConversationListResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	summaries, err := h.service.ListConversations(c.Request.Context(), identityFrom(c, c.Query("sessionId")))
	if err != nil {
		responses.HandleError(c, err, "Failed to fetch conversations")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationList(summaries))
}

// Create handles POST /v1/conversations
// @Summary Create conversation
// @Tags Conversations
// @Accept json
// @Produce json
// @Param request body requests.CreateConversationRequest true "Conversation"
// @Success 200 {object} responses.ConversationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	var req requests.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "conversation-create-bind-001")
		return
	}
	if msg := requests.Validate(&req); msg != "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, msg, "conversation-create-validate-001")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = c.Query("sessionId")
	}

	conv, err := h.service.CreateConversation(c.Request.Context(), identityFrom(c, sessionID), conversation.CreateParams{
		ID:    req.ID,
		Title: req.Title,
	})
	if err != nil {
		responses.HandleError(c, err, "Failed to create conversation")
		return
	}

	c.JSON(http.StatusOK, responses.ConversationResponse{Conversation: responses.NewConversation(conv)})
}

// Get handles GET /v1/conversations/:id
// @Summary Get conversation
// @Description Returns the conversation with its messages, artifacts and tool results in creation order.
// @Tags Conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} responses.ConversationView
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	view, err := h.service.GetConversationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "failed to fetch conversation")
		return
	}

	c.JSON(http.StatusOK, responses.NewConversationView(view))
}

// Update handles PATCH /v1/conversations/:id
// @Summary Update conversation
// @Description Renames a conversation or changes its completion flag.
// @Tags Conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.UpdateConversationRequest true "Fields to change"
// @Success 200 {object} responses.ConversationResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/conversations/{id} [patch]
func (h *ConversationHandler) Update(c *gin.Context) {
	var req requests.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "conversation-update-bind-001")
		return
	}
	if req.Title == nil && req.IsCompleted == nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "nothing to update", "conversation-update-empty-001")
		return
	}

	conv, err := h.service.UpdateConversation(c.Request.Context(), c.Param("id"), conversation.Patch{
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		responses.HandleError(c, err, "Failed to update conversation")
		return
	}

	c.JSON(http.StatusOK, responses.ConversationResponse{Conversation: responses.NewConversation(conv)})
}
