// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docseek/internal/core/domain"
)

// SearchCompleted carries a retrieval result back to the model.
type SearchCompleted struct {
	Query  string
	Result *domain.RetrievalResult
	Err    error
}

// ListingLoaded carries the archive listing.
type ListingLoaded struct {
	Listing []domain.DocumentID
	Err     error
}

// FetchCompleted signals a document download finished.
type FetchCompleted struct {
	ID   domain.DocumentID
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewFiles is the archive listing view.
	ViewFiles
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewFiles:
		return "files"
	default:
		return "unknown"
	}
}
