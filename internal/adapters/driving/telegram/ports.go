package telegram

import (
	"errors"

	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// Errors returned when the bot is misconfigured.
var (
	ErrMissingToken     = errors.New("telegram: bot token is required")
	ErrMissingAPI       = errors.New("telegram: API client is required")
	ErrMissingRetrieval = errors.New("telegram: retrieval service is required")
	ErrMissingArchive   = errors.New("telegram: archive service is required")
	ErrMissingSessions  = errors.New("telegram: session service is required")
)

// Ports aggregates the driving ports the bot needs.
type Ports struct {
	Retrieval driving.RetrievalService
	Archive   driving.ArchiveService
	Sessions  driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Retrieval == nil:
		return ErrMissingRetrieval
	case p.Archive == nil:
		return ErrMissingArchive
	case p.Sessions == nil:
		return ErrMissingSessions
	}
	return nil
}
