package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService tracks chat sessions and the update cursor in a store.
type SessionService struct {
	store driven.SessionStore
	now   func() time.Time
}

// NewSessionService creates a session service backed by store.
func NewSessionService(store driven.SessionStore) *SessionService {
	return &SessionService{
		store: store,
		now:   time.Now,
	}
}

// Greet marks chatID as greeted. Returns true on the first greeting.
func (s *SessionService) Greet(ctx context.Context, chatID int64) (bool, error) {
	session, err := s.load(ctx, chatID)
	if err != nil {
		return false, err
	}

	first := !session.Greeted
	session.Greeted = true
	session.LastSeen = s.now()

	if err := s.store.SaveSession(ctx, *session); err != nil {
		return false, fmt.Errorf("saving session %d: %w", chatID, err)
	}
	return first, nil
}

// Touch records activity from chatID without changing its greeting state.
func (s *SessionService) Touch(ctx context.Context, chatID int64) error {
	session, err := s.load(ctx, chatID)
	if err != nil {
		return err
	}
	session.LastSeen = s.now()
	if err := s.store.SaveSession(ctx, *session); err != nil {
		return fmt.Errorf("saving session %d: %w", chatID, err)
	}
	return nil
}

// Get returns the stored session, or nil if the chat is unknown.
func (s *SessionService) Get(ctx context.Context, chatID int64) (*domain.Session, error) {
	return s.store.GetSession(ctx, chatID)
}

// Cursor returns the last processed update offset.
func (s *SessionService) Cursor(ctx context.Context) (int, error) {
	cursor, err := s.store.GetCursor(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading cursor: %w", err)
	}
	return cursor.Offset, nil
}

// Advance stores offset as the last processed update.
// Offsets never move backwards.
func (s *SessionService) Advance(ctx context.Context, offset int) error {
	current, err := s.store.GetCursor(ctx)
	if err != nil {
		return fmt.Errorf("loading cursor: %w", err)
	}
	if offset <= current.Offset {
		return nil
	}
	return s.store.SaveCursor(ctx, domain.PollCursor{Offset: offset, UpdatedAt: s.now()})
}

func (s *SessionService) load(ctx context.Context, chatID int64) (*domain.Session, error) {
	session, err := s.store.GetSession(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("loading session %d: %w", chatID, err)
	}
	if session == nil {
		now := s.now()
		session = &domain.Session{ChatID: chatID, FirstSeen: now, LastSeen: now}
	}
	return session, nil
}
