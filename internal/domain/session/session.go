// Package session maps client-generated anonymous session ids to internal session rows.
package session

import (
	"context"
	"strings"
	"time"
)

// Session is the internal record behind an anonymous browser session.
type Session struct {
	ID              uint
	ClientSessionID string
	CreatedAt       time.Time
	LastSeenAt      time.Time
}

// Identity is the caller identity attached to a request. It is built per request and
// passed explicitly; nothing about it is kept in process-wide state.
type Identity struct {
	UserID          string
	ClientSessionID string
}

// IsAuthenticated reports whether the caller is a signed-in user.
func (i Identity) IsAuthenticated() bool {
	return strings.TrimSpace(i.UserID) != ""
}

// IsAnonymous reports whether the caller is identified only by a client session id.
func (i Identity) IsAnonymous() bool {
	return !i.IsAuthenticated() && strings.TrimSpace(i.ClientSessionID) != ""
}

// IsZero reports whether the caller carries neither a user nor a session.
func (i Identity) IsZero() bool {
	return !i.IsAuthenticated() && !i.IsAnonymous()
}

// Repository persists sessions.
type Repository interface {
	// FindByClientID returns a NOT_FOUND platform error when no row exists.
	FindByClientID(ctx context.Context, clientSessionID string) (*Session, error)
	// FindOrCreate inserts the session when absent and refreshes last_seen_at when present.
	FindOrCreate(ctx context.Context, clientSessionID string) (*Session, error)
}
