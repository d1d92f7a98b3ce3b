package driven

import (
	"context"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// Archive opens sessions against the remote document archive.
type Archive interface {
	// Connect opens an authenticated session.
	// Fails with domain.ErrConnection when the archive is unreachable
	// or rejects the credentials.
	Connect(ctx context.Context) (ArchiveSession, error)
}

// ArchiveSession is an open connection to the archive.
// A session is used by one goroutine at a time.
type ArchiveSession interface {
	// List returns the identifiers of files in dir, in archive order.
	List(ctx context.Context, dir string) ([]domain.DocumentID, error)

	// Download copies the document to destPath, overwriting it.
	Download(ctx context.Context, id domain.DocumentID, destPath string) error

	// Upload stores the local file at srcPath under id.
	// An error does not guarantee absence: callers verify with List.
	Upload(ctx context.Context, srcPath string, id domain.DocumentID) error

	// Close ends the session.
	Close() error
}
