package artifact

import "encoding/json"

// SaveParams carries a newly detected artifact. ID and Timestamp are optional.
type SaveParams struct {
	ID             string
	ConversationID string
	MessageID      string
	UserID         string
	Name           string
	Content        string
	Type           Type
	Timestamp      *int64
}

// UpdateParams lists editable fields. Nil fields are left untouched.
type UpdateParams struct {
	Name         *string
	Content      *string
	Title        *string
	Description  *string
	Category     *string
	PreviewImage *string
	IsPublic     *bool
	ShareSlug    *string
	Metadata     json.RawMessage
}

// IsEmpty reports whether no field would change.
func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Content == nil && p.Title == nil && p.Description == nil &&
		p.Category == nil && p.PreviewImage == nil && p.IsPublic == nil && p.ShareSlug == nil &&
		len(p.Metadata) == 0
}
