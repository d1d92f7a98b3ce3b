// Package tui provides an interactive terminal user interface for docseek.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Retrieval searches the archive.
	Retrieval driving.RetrievalService

	// Archive lists and downloads documents. Optional; without it the
	// file list is unavailable and matches cannot be downloaded.
	Archive driving.ArchiveService

	// DownloadDir receives downloaded documents. Empty means the
	// working directory.
	DownloadDir string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
