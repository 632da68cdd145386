package entities

import (
	"time"

	"github.com/janhq/camus/internal/domain/session"
)

// Session maps a client generated session id to an internal id.
type Session struct {
	ID              uint      `gorm:"primaryKey"`
	ClientSessionID string    `gorm:"type:varchar(128);uniqueIndex;not null"`
	CreatedAt       time.Time `gorm:"not null"`
	LastSeenAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Session.
func (Session) TableName() string {
	return "sessions"
}

// EtoD maps the row back to the domain model.
func (s *Session) EtoD() *session.Session {
	return &session.Session{
		ID:              s.ID,
		ClientSessionID: s.ClientSessionID,
		CreatedAt:       s.CreatedAt.UTC(),
		LastSeenAt:      s.LastSeenAt.UTC(),
	}
}
