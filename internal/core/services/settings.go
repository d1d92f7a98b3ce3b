package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/docseek/internal/core/domain"
	"github.com/custodia-labs/docseek/internal/core/ports/driven"
	"github.com/custodia-labs/docseek/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyArchiveBackend   = "archive.backend"
	keyArchiveHost      = "archive.host"
	keyArchivePort      = "archive.port"
	keyArchiveUser      = "archive.user"
	keyArchivePassword  = "archive.password"
	keyArchiveDirectory = "archive.directory"
	keyArchiveRoot      = "archive.root"
	keyArchiveTimeout   = "archive.timeout"
	keyOCRBinary        = "ocr.binary"
	keyOCRLanguages     = "ocr.languages"
	keyBotToken         = "bot.token"
	keyBotPollInterval  = "bot.poll_interval"
	keyBotErrorBackoff  = "bot.error_backoff"
	keyBotRateLimit     = "bot.rate_limit"
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
	keyCacheDir         = "cache.dir"
)

// settingKind describes how a setting value is parsed.
type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindFloat
	kindDuration
	kindList
)

var settingKinds = map[string]settingKind{
	keyArchiveBackend:   kindString,
	keyArchiveHost:      kindString,
	keyArchivePort:      kindInt,
	keyArchiveUser:      kindString,
	keyArchivePassword:  kindString,
	keyArchiveDirectory: kindString,
	keyArchiveRoot:      kindString,
	keyArchiveTimeout:   kindDuration,
	keyOCRBinary:        kindString,
	keyOCRLanguages:     kindList,
	keyBotToken:         kindString,
	keyBotPollInterval:  kindDuration,
	keyBotErrorBackoff:  kindDuration,
	keyBotRateLimit:     kindFloat,
	keyStorageBackend:   kindString,
	keyStorageDataDir:   kindString,
	keyCacheDir:         kindString,
}

// EnvKey returns the environment variable that overrides a setting key.
// E.g. "archive.host" becomes "DOCSEEK_ARCHIVE_HOST".
func EnvKey(key string) string {
	return "DOCSEEK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// SettingsService resolves settings from defaults, the config store and
// DOCSEEK_* environment variables, in increasing precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Keys returns the setting keys understood by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get retrieves the effective application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	port, err := s.getInt(keyArchivePort, defaults.Archive.Port)
	if err != nil {
		return nil, err
	}
	timeout, err := s.getDuration(keyArchiveTimeout, defaults.Archive.Timeout)
	if err != nil {
		return nil, err
	}
	poll, err := s.getDuration(keyBotPollInterval, defaults.Bot.PollInterval)
	if err != nil {
		return nil, err
	}
	backoff, err := s.getDuration(keyBotErrorBackoff, defaults.Bot.ErrorBackoff)
	if err != nil {
		return nil, err
	}
	rateLimit, err := s.getFloat(keyBotRateLimit, defaults.Bot.RateLimit)
	if err != nil {
		return nil, err
	}

	settings := &domain.AppSettings{
		Archive: domain.ArchiveSettings{
			Backend:   domain.ArchiveBackend(s.getString(keyArchiveBackend, defaults.Archive.Backend.String())),
			Host:      s.getString(keyArchiveHost, ""),
			Port:      port,
			User:      s.getString(keyArchiveUser, ""),
			Password:  s.getString(keyArchivePassword, ""),
			Directory: s.getString(keyArchiveDirectory, defaults.Archive.Directory),
			Root:      s.getString(keyArchiveRoot, ""),
			Timeout:   timeout,
		},
		OCR: domain.OCRSettings{
			Binary:    s.getString(keyOCRBinary, defaults.OCR.Binary),
			Languages: s.getList(keyOCRLanguages, defaults.OCR.Languages),
		},
		Bot: domain.BotSettings{
			Token:        s.getString(keyBotToken, ""),
			PollInterval: poll,
			ErrorBackoff: backoff,
			RateLimit:    rateLimit,
		},
		Storage: domain.StorageSettings{
			Backend: domain.StorageBackend(s.getString(keyStorageBackend, defaults.Storage.Backend.String())),
			DataDir: s.getString(keyStorageDataDir, ""),
		},
		CacheDir: s.getString(keyCacheDir, ""),
	}

	if !settings.Archive.Backend.IsValid() {
		return nil, fmt.Errorf("%w: archive backend %q", domain.ErrInvalidInput, settings.Archive.Backend)
	}
	if !settings.Storage.Backend.IsValid() {
		return nil, fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}

	return settings, nil
}

// Set validates value for key and persists it with its natural type.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var typed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		typed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		typed = f
	case kindDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: %s must be a duration like 5s", domain.ErrInvalidInput, key)
		}
		typed = value
	case kindList:
		typed = splitList(value)
	default:
		typed = value
	}

	switch key {
	case keyArchiveBackend:
		if !domain.ArchiveBackend(value).IsValid() {
			return fmt.Errorf("%w: archive backend must be ftp or filesystem", domain.ErrInvalidInput)
		}
	case keyStorageBackend:
		if !domain.StorageBackend(value).IsValid() {
			return fmt.Errorf("%w: storage backend must be sqlite or memory", domain.ErrInvalidInput)
		}
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// raw returns the environment override for key, falling back to the store.
func (s *SettingsService) raw(key string) (any, bool) {
	if v, ok := s.lookupEnv(EnvKey(key)); ok && v != "" {
		return v, true
	}
	return s.configStore.Get(key)
}

func (s *SettingsService) getString(key, defaultVal string) string {
	v, ok := s.raw(key)
	if !ok {
		return defaultVal
	}
	if str, ok := v.(string); ok && str != "" {
		return str
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) (int, error) {
	v, ok := s.raw(key)
	if !ok {
		return defaultVal, nil
	}
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q is not an integer", domain.ErrInvalidInput, key, n)
		}
		return i, nil
	default:
		return defaultVal, nil
	}
}

func (s *SettingsService) getFloat(key string, defaultVal float64) (float64, error) {
	v, ok := s.raw(key)
	if !ok {
		return defaultVal, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s=%q is not a number", domain.ErrInvalidInput, key, n)
		}
		return f, nil
	default:
		return defaultVal, nil
	}
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	v, ok := s.raw(key)
	if !ok {
		return defaultVal, nil
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a duration", domain.ErrInvalidInput, key, str)
	}
	return d, nil
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	if v, ok := s.lookupEnv(EnvKey(key)); ok && v != "" {
		return splitList(v)
	}
	if list := s.configStore.GetStringSlice(key); len(list) > 0 {
		return list
	}
	if str := s.configStore.GetString(key); str != "" {
		return splitList(str)
	}
	return defaultVal
}

// splitList splits a comma or plus separated list, e.g. "eng,rus" or "eng+rus".
func splitList(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '+' || r == ' '
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
