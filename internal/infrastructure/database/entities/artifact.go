package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/janhq/camus/internal/domain/artifact"
)

// Artifact represents the persisted artifact record. Timestamp is epoch milliseconds.
type Artifact struct {
	ID             string         `gorm:"type:varchar(128);primaryKey"`
	ConversationID *string        `gorm:"type:varchar(64);index"`
	MessageID      *string        `gorm:"type:varchar(64);index"`
	UserID         *string        `gorm:"type:varchar(128);index"`
	Name           string         `gorm:"type:varchar(512);not null"`
	Content        string         `gorm:"type:text;not null"`
	Type           string         `gorm:"type:varchar(32);not null"`
	MimeType       string         `gorm:"type:varchar(128)"`
	Timestamp      int64          `gorm:"not null"`
	ViewCount      int64          `gorm:"not null"`
	IsPublic       bool           `gorm:"not null"`
	ShareSlug      *string        `gorm:"type:varchar(32);uniqueIndex"`
	Title          *string        `gorm:"type:varchar(256)"`
	Description    *string        `gorm:"type:text"`
	Category       *string        `gorm:"type:varchar(64)"`
	PreviewImage   *string        `gorm:"type:text"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"not null"`
	UpdatedAt      time.Time      `gorm:"not null"`
}

// TableName specifies the table name for Artifact.
func (Artifact) TableName() string {
	return "artifacts"
}

// NewSchemaArtifact maps a domain artifact to its row.
func NewSchemaArtifact(a *artifact.Artifact) *Artifact {
	return &Artifact{
		ID:             a.ID,
		ConversationID: a.ConversationID,
		MessageID:      a.MessageID,
		UserID:         a.UserID,
		Name:           a.Name,
		Content:        a.Content,
		Type:           string(a.Type),
		MimeType:       a.MimeType,
		Timestamp:      a.Timestamp,
		ViewCount:      a.ViewCount,
		IsPublic:       a.IsPublic,
		ShareSlug:      a.ShareSlug,
		Title:          a.Title,
		Description:    a.Description,
		Category:       a.Category,
		PreviewImage:   a.PreviewImage,
		Metadata:       jsonOrNil(a.Metadata),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// EtoD maps the row back to the domain model.
func (a *Artifact) EtoD() *artifact.Artifact {
	return &artifact.Artifact{
		ID:             a.ID,
		ConversationID: a.ConversationID,
		MessageID:      a.MessageID,
		UserID:         a.UserID,
		Name:           a.Name,
		Content:        a.Content,
		Type:           artifact.Type(a.Type),
		MimeType:       a.MimeType,
		Timestamp:      a.Timestamp,
		ViewCount:      a.ViewCount,
		IsPublic:       a.IsPublic,
		ShareSlug:      a.ShareSlug,
		Title:          a.Title,
		Description:    a.Description,
		Category:       a.Category,
		PreviewImage:   a.PreviewImage,
		Metadata:       rawOrNil(a.Metadata),
		CreatedAt:      a.CreatedAt.UTC(),
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
}

func jsonOrNil(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	return datatypes.JSON(raw)
}

func rawOrNil(j datatypes.JSON) json.RawMessage {
	if len(j) == 0 {
		return nil
	}
	return json.RawMessage(j)
}
