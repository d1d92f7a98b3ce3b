package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/logger"
)

// ScanReport is the outcome of scanning a set of documents.
type ScanReport struct {
	// Matches holds the identifiers whose content matched.
	Matches domain.MatchSet

	// Skipped holds documents that could not be extracted, with the reason.
	Skipped map[domain.DocumentID]error
}

// Scanner evaluates the content of materialised documents against a query.
type Scanner struct {
	extractors driven.ExtractorRegistry
}

// NewScanner creates a scanner that extracts text through the registry.
func NewScanner(extractors driven.ExtractorRegistry) *Scanner {
	return &Scanner{extractors: extractors}
}

// Scan extracts, normalises and evaluates every document against query.
// A document that fails extraction is logged, recorded in the report and
// skipped; it never aborts the scan. The result does not depend on the
// order of docs.
func (s *Scanner) Scan(ctx context.Context, docs []domain.Document, query string) ScanReport {
	report := ScanReport{
		Matches: domain.NewMatchSet(),
		Skipped: make(map[domain.DocumentID]error),
	}

	normalizedQuery := Normalize(query)
	logger.Debug("Scanning %d documents for %q", len(docs), normalizedQuery)

	for _, doc := range docs {
		content, err := s.extractors.Extract(ctx, doc.LocalPath, doc.Kind)
		if err != nil {
			if errors.Is(err, domain.ErrUnsupportedKind) {
				logger.Debug("Skipping %s: %v", doc.ID, err)
			} else {
				logger.Warn("Skipping %s: %v", doc.ID, err)
			}
			report.Skipped[doc.ID] = err
			continue
		}

		body := Normalize(content)
		logger.Debug("Extracted %d chars from %s", len(body), doc.ID)

		if Matches(normalizedQuery, body) {
			logger.Debug("Content match: %s", doc.ID)
			report.Matches.Add(doc.ID)
		}
	}

	return report
}
