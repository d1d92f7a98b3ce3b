package driven

import (
	"context"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// SessionStore persists per-chat state and the update poll cursor.
type SessionStore interface {
	// GetSession returns the session for chatID.
	// Returns nil and no error if the chat has never been seen.
	GetSession(ctx context.Context, chatID int64) (*domain.Session, error)

	// SaveSession creates or updates a session.
	SaveSession(ctx context.Context, session domain.Session) error

	// GetCursor returns the poll cursor. Zero value if none is stored.
	GetCursor(ctx context.Context) (domain.PollCursor, error)

	// SaveCursor persists the poll cursor.
	SaveCursor(ctx context.Context, cursor domain.PollCursor) error
}
