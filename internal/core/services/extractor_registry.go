package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
)

// Ensure ExtractorRegistry implements the interface.
var _ driven.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry dispatches extraction by document kind.
// A later registration for the same kind replaces the earlier one.
type ExtractorRegistry struct {
	mu         sync.RWMutex
	extractors map[domain.DocumentKind]driven.Extractor
}

// NewExtractorRegistry creates a registry holding the given extractors.
func NewExtractorRegistry(extractors ...driven.Extractor) *ExtractorRegistry {
	r := &ExtractorRegistry{
		extractors: make(map[domain.DocumentKind]driven.Extractor),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for all of its supported kinds.
func (r *ExtractorRegistry) Register(e driven.Extractor) {
	if e == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, kind := range e.SupportedKinds() {
		r.extractors[kind] = e
	}
}

// Get returns the extractor for kind.
func (r *ExtractorRegistry) Get(kind domain.DocumentKind) (driven.Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.extractors[kind]
	return e, ok
}

// Extract dispatches to the extractor registered for kind.
func (r *ExtractorRegistry) Extract(ctx context.Context, path string, kind domain.DocumentKind) (string, error) {
	e, ok := r.Get(kind)
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}
	return e.Extract(ctx, path)
}

// SupportedKinds lists kinds with a registered extractor, sorted.
func (r *ExtractorRegistry) SupportedKinds() []domain.DocumentKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]domain.DocumentKind, 0, len(r.extractors))
	for k := range r.extractors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
