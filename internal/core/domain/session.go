package domain

import "time"

// Session is the conversational state kept per chat.
type Session struct {
	// ChatID identifies the chat on the transport.
	ChatID int64

	// Greeted is true once the welcome flow has been shown.
	Greeted bool

	// FirstSeen is when the chat first interacted.
	FirstSeen time.Time

	// LastSeen is when the chat last interacted.
	LastSeen time.Time
}

// PollCursor is the identifier of the last processed chat update.
// Polling resumes from Offset+1.
type PollCursor struct {
	// Offset is the last processed update identifier.
	Offset int

	// UpdatedAt is when the cursor last advanced.
	UpdatedAt time.Time
}
