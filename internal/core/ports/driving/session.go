package driving

import (
	"context"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// SessionService tracks per-chat conversational state.
type SessionService interface {
	// Greet records a /start from chatID.
	// Returns true the first time a chat is greeted.
	Greet(ctx context.Context, chatID int64) (bool, error)

	// Touch records activity from chatID.
	Touch(ctx context.Context, chatID int64) error

	// Cursor returns the last processed update offset.
	Cursor(ctx context.Context) (int, error)

	// Advance stores offset as the last processed update.
	Advance(ctx context.Context, offset int) error

	// Get returns the session for chatID, or nil if unknown.
	Get(ctx context.Context, chatID int64) (*domain.Session, error)
}
