package artifact

import "context"

// Repository defines the interface for artifact persistence.
type Repository interface {
	// Create inserts a new artifact; an existing id is an error.
	Create(ctx context.Context, artifact *Artifact) error

	// Update applies params to an existing artifact and returns the stored row.
	Update(ctx context.Context, id string, params UpdateParams) (*Artifact, error)

	// FillMetadataIfEmpty writes the title, description and category of params only into
	// columns that are still NULL or blank. filled is false when nothing was written.
	FillMetadataIfEmpty(ctx context.Context, id string, params UpdateParams) (filled bool, err error)

	// FindByID retrieves an artifact by ID.
	FindByID(ctx context.Context, id string) (*Artifact, error)

	// FindBySlug retrieves a public artifact by share slug.
	FindBySlug(ctx context.Context, slug string) (*Artifact, error)

	// ListForConversation returns artifacts linked to any of messageIDs or directly to conversationID.
	ListForConversation(ctx context.Context, conversationID string, messageIDs []string) ([]*Artifact, error)

	// LinkMessage sets message_id when it is still empty. linked is false when the artifact was already linked.
	LinkMessage(ctx context.Context, id, messageID string) (linked bool, err error)

	// IncrementViewCount adds one view and returns the new count.
	IncrementViewCount(ctx context.Context, id string) (int64, error)

	// SlugExists reports whether a share slug is taken.
	SlugExists(ctx context.Context, slug string) (bool, error)
}
