package driving

import (
	"context"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// RetrievalService finds archive documents matching a query.
type RetrievalService interface {
	// Retrieve matches the query against archive file names and the
	// extracted content of every archive document.
	Retrieve(ctx context.Context, query string) (*domain.RetrievalResult, error)

	// SearchImage recognises text in an image and retrieves with it.
	SearchImage(ctx context.Context, imagePath string) (*domain.ImageSearchResult, error)
}

// ArchiveService exposes direct archive operations.
type ArchiveService interface {
	// ListFiles returns the current archive listing.
	ListFiles(ctx context.Context) ([]domain.DocumentID, error)

	// Fetch downloads a document into destDir and returns the local path.
	Fetch(ctx context.Context, id domain.DocumentID, destDir string) (string, error)

	// Upload stores a local file in the watched directory under name.
	// The returned result distinguishes clean, verified and failed uploads.
	Upload(ctx context.Context, localPath, name string) (domain.UploadResult, error)
}
