// Package artifact defines generated content blobs attached to conversations.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// Artifact is a generated content blob (currently HTML) addressable on its own.
// Timestamp is epoch milliseconds.
type Artifact struct {
	ID             string
	ConversationID *string
	MessageID      *string
	UserID         *string
	Name           string
	Content        string
	Type           Type
	MimeType       string
	Timestamp      int64
	ViewCount      int64
	IsPublic       bool
	ShareSlug      *string
	Title          *string
	Description    *string
	Category       *string
	PreviewImage   *string
	Metadata       json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Type identifies the kind of artifact content.
type Type string

// TypeHTML is the only artifact kind produced today.
const TypeHTML Type = "html"

// ParseType defaults an empty value to TypeHTML.
func ParseType(raw string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "html", "text/html":
		return TypeHTML, true
	default:
		return "", false
	}
}

// NeedsMetadata reports whether any display metadata is still missing.
func (a *Artifact) NeedsMetadata() bool {
	return isBlank(a.Title) || isBlank(a.Description) || isBlank(a.Category)
}

// ContentID derives an id from content so regenerated identical content maps to the same id.
func ContentID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return "art_" + hex.EncodeToString(sum[:])[:24]
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
