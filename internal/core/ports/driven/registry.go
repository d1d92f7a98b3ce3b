package driven

import (
	"context"

	"github.com/custodia-labs/docseek/internal/core/domain"
)

// ExtractorRegistry selects the extractor for a document kind.
type ExtractorRegistry interface {
	// Register adds an extractor for all of its supported kinds.
	Register(e Extractor)

	// Get returns the extractor for kind.
	Get(kind domain.DocumentKind) (Extractor, bool)

	// Extract dispatches to the extractor for kind.
	// Fails with domain.ErrUnsupportedKind when none is registered.
	Extract(ctx context.Context, path string, kind domain.DocumentKind) (string, error)

	// SupportedKinds lists kinds with a registered extractor.
	SupportedKinds() []domain.DocumentKind
}
