package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/interfaces/httpserver/responses"
)

// ShareHandler publishes conversations and artifacts and serves the public copies.
type ShareHandler struct {
	service ShareService
	log     zerolog.Logger
}

// NewShareHandler constructs the handler.
func NewShareHandler(service ShareService, log zerolog.Logger) *ShareHandler {
	return &ShareHandler{
		service: service,
		log:     log.With().Str("handler", "share").Logger(),
	}
}

// ShareConversation handles POST /v1/conversations/:id/share
// @Summary Share conversation
// @Tags Sharing
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} responses.ShareResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/share [post]
func (h *ShareHandler) ShareConversation(c *gin.Context) {
	conv, err := h.service.ShareConversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		responses.HandleError(c, err, "Failed to share conversation")
		return
	}

	slug := ""
	if conv.ShareSlug != nil {
		slug = *conv.ShareSlug
	}
	c.JSON(http.StatusOK, responses.ShareResponse{ShareSlug: slug})
}

// UnshareConversation handles DELETE /v1/conversations/:id/share
// @Summary Revoke conversation share
// @Tags Sharing
// @Param id path string true "Conversation ID"
// @Success 204
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/share [delete]
func (h *ShareHandler) UnshareConversation(c *gin.Context) {
	if err := h.service.UnshareConversation(c.Request.Context(), c.Param("id")); err != nil {
		responses.HandleError(c, err, "Failed to revoke share")
		return
	}

	c.Status(http.StatusNoContent)
}

// ShareArtifact handles POST /v1/conversations/:id/artifacts/:artifactId/share
// @Summary Share artifact
// @Tags Sharing
// @Produce json
// @Param id path string true "Conversation ID"
// @Param artifactId path string true "Artifact ID"
// @Success 200 {object} responses.ShareResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/artifacts/{artifactId}/share [post]
func (h *ShareHandler) ShareArtifact(c *gin.Context) {
	a, err := h.service.ShareArtifact(c.Request.Context(), c.Param("id"), c.Param("artifactId"))
	if err != nil {
		responses.HandleError(c, err, "Failed to share artifact")
		return
	}

	slug := ""
	if a.ShareSlug != nil {
		slug = *a.ShareSlug
	}
	c.JSON(http.StatusOK, responses.ShareResponse{ShareSlug: slug})
}

// GetSharedConversation handles GET /v1/shared/conversations/:slug
// @Summary Get shared conversation
// @Tags Sharing
// @Produce json
// @Param slug path string true "Share slug"
// @Success 200 {object} responses.ConversationView
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/shared/conversations/{slug} [get]
func (h *ShareHandler) GetSharedConversation(c *gin.Context) {
	view, err := h.service.GetSharedConversation(c.Request.Context(), c.Param("slug"))
	if err != nil {
		responses.HandleError(c, err, "shared conversation not found")
		return
	}

	c.JSON(http.StatusOK, responses.NewSharedConversationView(view))
}

// GetSharedArtifact handles GET /v1/shared/artifacts/:slug
// @Summary Get shared artifact
// @Description Returns a public artifact and counts the view.
// @Tags Sharing
// @Produce json
// @Param slug path string true "Share slug"
// @Success 200 {object} responses.ArtifactResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /v1/shared/artifacts/{slug} [get]
func (h *ShareHandler) GetSharedArtifact(c *gin.Context) {
	a, err := h.service.GetSharedArtifact(c.Request.Context(), c.Param("slug"))
	if err != nil {
		responses.HandleError(c, err, "shared artifact not found")
		return
	}

	shared := responses.NewArtifact(a)
	shared.ConversationID = nil
	shared.MessageID = nil
	c.JSON(http.StatusOK, responses.ArtifactResponse{Artifact: shared})
}
