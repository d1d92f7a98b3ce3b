// Package commands wraps driving port calls as Bubbletea commands.
package commands

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docseek/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// Errors reported when an optional port is missing.
var (
	ErrNoRetrievalService = errors.New("retrieval service is required")
	ErrNoArchiveService   = errors.New("archive service is not configured")
)

// Retrieve searches for query and reports messages.SearchCompleted.
func Retrieve(ctx context.Context, svc driving.RetrievalService, query string) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return messages.SearchCompleted{Query: query, Err: ErrNoRetrievalService}
		}
		result, err := svc.Retrieve(ctx, query)
		return messages.SearchCompleted{Query: query, Result: result, Err: err}
	}
}

// List loads the archive listing and reports messages.ListingLoaded.
func List(ctx context.Context, svc driving.ArchiveService) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return messages.ListingLoaded{Err: ErrNoArchiveService}
		}
		listing, err := svc.ListFiles(ctx)
		return messages.ListingLoaded{Listing: listing, Err: err}
	}
}

// Fetch downloads id into dir and reports messages.FetchCompleted.
func Fetch(ctx context.Context, svc driving.ArchiveService, id domain.DocumentID, dir string) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return messages.FetchCompleted{ID: id, Err: ErrNoArchiveService}
		}
		if dir == "" {
			dir = "."
		}
		path, err := svc.Fetch(ctx, id, dir)
		return messages.FetchCompleted{ID: id, Path: path, Err: err}
	}
}
