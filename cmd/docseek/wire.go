package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/docseek/internal/adapters/driven/archive/filesystem"
	"github.com/custodia-labs/docseek/internal/adapters/driven/archive/ftp"
	"github.com/custodia-labs/docseek/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docseek/internal/adapters/driven/ocr/tesseract"
	"github.com/custodia-labs/docseek/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docseek/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docseek/internal/adapters/driving/cli"
	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/core/services"
	"github.com/custodia-labs/docseek/internal/extractors/docx"
	"github.com/custodia-labs/docseek/internal/extractors/pdf"
	"github.com/custodia-labs/docseek/internal/extractors/plaintext"
	"github.com/custodia-labs/docseek/internal/logger"
)

// bootstrap wires the adapters selected by the settings into services.
func bootstrap(configDir string) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	archive, err := newArchive(settings.Archive)
	if err != nil {
		return nil, err
	}

	extractors := services.NewExtractorRegistry(plaintext.New(), docx.New(), pdf.New())

	retrieval := services.NewRetrievalService(archive, extractors, settings.Archive.Directory)
	retrieval.SetRecognizer(tesseract.New(tesseract.Config{
		Binary:    settings.OCR.Binary,
		Languages: settings.OCR.Languages,
	}, nil))
	retrieval.SetCacheDir(settings.CacheDir)

	sessionStore, closeStore, err := newSessionStore(settings.Storage, filepath.Dir(configStore.Path()))
	if err != nil {
		return nil, err
	}

	return &cli.Services{
		Retrieval:  retrieval,
		Archive:    retrieval,
		Sessions:   services.NewSessionService(sessionStore),
		Settings:   settingsService,
		ConfigPath: configStore.Path(),
		Close:      closeStore,
	}, nil
}

func newArchive(cfg domain.ArchiveSettings) (driven.Archive, error) {
	switch cfg.Backend {
	case domain.ArchiveBackendFilesystem:
		if cfg.Root == "" {
			return nil, errors.New("archive.root must be set for the filesystem backend")
		}
		logger.Debug("Using local archive at %s", cfg.Root)
		return filesystem.NewArchive(cfg.Root), nil
	default:
		logger.Debug("Using FTP archive at %s:%d", cfg.Host, cfg.Port)
		return ftp.NewArchive(ftp.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			Timeout:  cfg.Timeout,
		}), nil
	}
}

func newSessionStore(cfg domain.StorageSettings, configDir string) (driven.SessionStore, func() error, error) {
	if cfg.Backend == domain.StorageBackendMemory {
		return memory.NewSessionStore(), nil, nil
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session store: %w", err)
	}
	logger.Debug("Session store at %s", store.Path())
	return store.SessionStore(), store.Close, nil
}
