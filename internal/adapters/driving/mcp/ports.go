package mcp

import (
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Retrieval searches the archive.
	Retrieval driving.RetrievalService

	// Archive lists and fetches archive documents. Optional.
	Archive driving.ArchiveService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
