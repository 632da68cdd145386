package requests

import "encoding/json"

// ArtifactPayload is the artifact part of CreateArtifactRequest.
type ArtifactPayload struct {
	ID        string       `json:"id,omitempty" validate:"omitempty,max=128"`
	Name      string       `json:"name" validate:"required"`
	Content   string       `json:"content" validate:"required"`
	Type      string       `json:"type,omitempty"`
	Timestamp *json.Number `json:"timestamp,omitempty"`
}

// CreateArtifactRequest saves a detected artifact, optionally linked to its message.
type CreateArtifactRequest struct {
	Artifact  *ArtifactPayload `json:"artifact" validate:"required"`
	MessageID string           `json:"messageId,omitempty"`
}

// UpdateArtifactRequest edits an existing artifact.
type UpdateArtifactRequest struct {
	ArtifactID   string  `json:"artifactId" validate:"required"`
	Name         *string `json:"name,omitempty"`
	Content      *string `json:"content,omitempty"`
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Category     *string `json:"category,omitempty"`
	PreviewImage *string `json:"previewImage,omitempty"`
}
