package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// State lasts for the lifetime of the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]domain.Session
	cursor   domain.PollCursor
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]domain.Session),
	}
}

// GetSession returns a copy of the session, or nil if unknown.
func (s *SessionStore) GetSession(_ context.Context, chatID int64) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// SaveSession creates or updates a session.
func (s *SessionStore) SaveSession(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ChatID] = session
	return nil
}

// GetCursor returns the poll cursor.
func (s *SessionStore) GetCursor(_ context.Context) (domain.PollCursor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor, nil
}

// SaveCursor stores the poll cursor.
func (s *SessionStore) SaveCursor(_ context.Context, cursor domain.PollCursor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
	return nil
}
