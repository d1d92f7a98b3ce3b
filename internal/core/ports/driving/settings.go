package driving

import "github.com/custodia-labs/docseek/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults, then the config
	// file, then DOCSEEK_* environment overrides.
	Get() (*domain.AppSettings, error)

	// Set validates and stores a single setting by key.
	Set(key, value string) error

	// Keys returns the setting keys understood by Set.
	Keys() []string
}
