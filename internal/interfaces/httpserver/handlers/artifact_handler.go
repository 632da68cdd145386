package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/janhq/camus/internal/domain/artifact"
	"github.com/janhq/camus/internal/infrastructure/auth"
	"github.com/janhq/camus/internal/interfaces/httpserver/requests"
	"github.com/janhq/camus/internal/interfaces/httpserver/responses"
	"github.com/janhq/camus/internal/utils/platformerrors"
	"github.com/janhq/camus/internal/utils/timeutil"
)

// ArtifactHandler exposes HTTP entrypoints for artifacts inside a conversation.
type ArtifactHandler struct {
	service artifact.Service
	log     zerolog.Logger
}

// NewArtifactHandler constructs the handler.
func NewArtifactHandler(service artifact.Service, log zerolog.Logger) *ArtifactHandler {
	return &ArtifactHandler{
		service: service,
		log:     log.With().Str("handler", "artifact").Logger(),
	}
}

// Create handles POST /v1/conversations/:id/artifacts
// @Summary Save artifact
// @Description Creates an artifact. Saving an existing id fails instead of merging.
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.CreateArtifactRequest true "Artifact"
// @Success 200 {object} responses.ArtifactResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/artifacts [post]
func (h *ArtifactHandler) Create(c *gin.Context) {
	var req requests.CreateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "artifact-create-bind-001")
		return
	}
	if msg := requests.Validate(&req); msg != "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, msg, "artifact-create-validate-001")
		return
	}

	kind, ok := artifact.ParseType(req.Artifact.Type)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "unsupported artifact type", "artifact-create-type-001")
		return
	}

	var timestamp *int64
	if req.Artifact.Timestamp != nil {
		ms, err := timeutil.ParseMillis(*req.Artifact.Timestamp)
		if err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "timestamp must be a number", "artifact-create-timestamp-001")
			return
		}
		timestamp = &ms
	}

	a, err := h.service.Save(c.Request.Context(), artifact.SaveParams{
		ID:             req.Artifact.ID,
		ConversationID: c.Param("id"),
		MessageID:      req.MessageID,
		UserID:         auth.UserID(c),
		Name:           req.Artifact.Name,
		Content:        req.Artifact.Content,
		Type:           kind,
		Timestamp:      timestamp,
	})
	if err != nil {
		responses.HandleError(c, err, "Failed to save artifact")
		return
	}

	c.JSON(http.StatusOK, responses.ArtifactResponse{Artifact: responses.NewArtifact(a)})
}

// Update handles PUT /v1/conversations/:id/artifacts
// @Summary Update artifact
// @Description Edits an existing artifact. Unknown ids are not created.
// @Tags Artifacts
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body requests.UpdateArtifactRequest true "Fields to change"
// @Success 200 {object} responses.ArtifactResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Failure 500 {object} responses.ErrorResponse
// @Router /v1/conversations/{id}/artifacts [put]
func (h *ArtifactHandler) Update(c *gin.Context) {
	var req requests.UpdateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "artifact-update-bind-001")
		return
	}
	if msg := requests.Validate(&req); msg != "" {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, msg, "artifact-update-validate-001")
		return
	}

	a, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ArtifactID, artifact.UpdateParams{
		Name:         req.Name,
		Content:      req.Content,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PreviewImage: req.PreviewImage,
	})
	if err != nil {
		responses.HandleError(c, err, "Failed to update artifact")
		return
	}

	c.JSON(http.StatusOK, responses.ArtifactResponse{Artifact: responses.NewArtifact(a)})
}
