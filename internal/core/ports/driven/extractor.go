package driven

import (
	"context"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// Extractor produces plain text from a locally cached document.
// Each extractor handles specific document kinds (e.g., PDF, DOCX).
type Extractor interface {
	// SupportedKinds returns the document kinds this extractor handles.
	SupportedKinds() []domain.DocumentKind

	// Extract reads the file at path and returns its text.
	// Extraction is read-only and idempotent.
	// Errors wrap domain.ErrIO or domain.ErrParse.
	Extract(ctx context.Context, path string) (string, error)
}
