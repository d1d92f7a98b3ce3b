package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
)

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// GetSession retrieves the session for chatID.
// Returns nil and no error if the chat is unknown.
func (s *sessionStore) GetSession(ctx context.Context, chatID int64) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT chat_id, greeted, first_seen, last_seen
		FROM sessions WHERE chat_id = ?
	`, chatID)

	var (
		session             domain.Session
		greeted             int
		firstSeen, lastSeen int64
	)
	err := row.Scan(&session.ChatID, &greeted, &firstSeen, &lastSeen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session %d: %w", chatID, err)
	}

	session.Greeted = greeted != 0
	session.FirstSeen = fromUnixNano(firstSeen)
	session.LastSeen = fromUnixNano(lastSeen)
	return &session, nil
}

// SaveSession creates or updates a session.
func (s *sessionStore) SaveSession(ctx context.Context, session domain.Session) error {
	greeted := 0
	if session.Greeted {
		greeted = 1
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (chat_id, greeted, first_seen, last_seen)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			greeted = excluded.greeted,
			last_seen = excluded.last_seen
	`, session.ChatID, greeted, toUnixNano(session.FirstSeen), toUnixNano(session.LastSeen))
	if err != nil {
		return fmt.Errorf("saving session %d: %w", session.ChatID, err)
	}
	return nil
}

// GetCursor returns the stored poll cursor, or the zero cursor.
func (s *sessionStore) GetCursor(ctx context.Context) (domain.PollCursor, error) {
	var offset int
	var updatedAt int64
	err := s.store.db.QueryRowContext(ctx,
		"SELECT last_offset, updated_at FROM poll_cursor WHERE id = 1",
	).Scan(&offset, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PollCursor{}, nil
	}
	if err != nil {
		return domain.PollCursor{}, fmt.Errorf("scanning poll cursor: %w", err)
	}
	return domain.PollCursor{Offset: offset, UpdatedAt: fromUnixNano(updatedAt)}, nil
}

// SaveCursor replaces the poll cursor.
func (s *sessionStore) SaveCursor(ctx context.Context, cursor domain.PollCursor) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO poll_cursor (id, last_offset, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_offset = excluded.last_offset,
			updated_at = excluded.updated_at
	`, cursor.Offset, toUnixNano(cursor.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving poll cursor: %w", err)
	}
	return nil
}

// Times are stored as Unix nanoseconds; 0 is the zero time.
func toUnixNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
