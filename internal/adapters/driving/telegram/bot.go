package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/custodia-labs/docseek/internal/logger"
)

const (
	defaultPollInterval = time.Second
	defaultErrorBackoff = 5 * time.Second
	downloadTimeout     = 2 * time.Minute
)

// Config tunes the polling loop.
type Config struct {
	// PollInterval is the pause between polls.
	PollInterval time.Duration

	// ErrorBackoff is the pause after a failed poll.
	ErrorBackoff time.Duration

	// RateLimit is the sustained outbound requests per second.
	RateLimit float64

	// TempDir is the parent of per-message working directories.
	// Empty means the system temp directory.
	TempDir string

	// HTTPClient downloads files sent to the bot. Defaults to a client
	// with a two minute timeout.
	HTTPClient *http.Client
}

// Bot answers chat updates with archive searches.
type Bot struct {
	api     API
	ports   *Ports
	cfg     Config
	limiter *rateLimiter
	http    *http.Client
}

// New creates a bot over api.
func New(api API, ports *Ports, cfg Config) (*Bot, error) {
	if api == nil {
		return nil, ErrMissingAPI
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = defaultErrorBackoff
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}

	return &Bot{
		api:     api,
		ports:   ports,
		cfg:     cfg,
		limiter: newRateLimiter(cfg.RateLimit),
		http:    client,
	}, nil
}

// Run polls for updates until ctx is cancelled.
//
// Polling resumes after the last processed update recorded by the session
// service, so a restart neither replays nor drops updates.
func (b *Bot) Run(ctx context.Context) error {
	offset, err := b.ports.Sessions.Cursor(ctx)
	if err != nil {
		return fmt.Errorf("loading update cursor: %w", err)
	}
	logger.Info("Bot started, resuming after update %d", offset)

	for {
		if ctx.Err() != nil {
			return nil
		}

		next, err := b.poll(ctx, offset)
		if err != nil {
			logger.Error("Polling updates: %v", err)
			if !sleep(ctx, b.cfg.ErrorBackoff) {
				return nil
			}
			continue
		}
		offset = next

		if !sleep(ctx, b.cfg.PollInterval) {
			return nil
		}
	}
}

// poll fetches and handles one batch of updates. Returns the new cursor.
func (b *Bot) poll(ctx context.Context, offset int) (int, error) {
	cfg := tgbotapi.NewUpdate(0)
	if offset > 0 {
		cfg.Offset = offset + 1
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return offset, err
	}
	updates, err := b.api.GetUpdates(cfg)
	if err != nil {
		b.limiter.Observe(err)
		return offset, err
	}

	// A handled update is always recorded, even if polling is being stopped,
	// so a restart does not replay it.
	detached := context.WithoutCancel(ctx)
	for _, update := range updates {
		b.HandleUpdate(detached, update)

		offset = update.UpdateID
		if err := b.ports.Sessions.Advance(detached, offset); err != nil {
			logger.Warn("Saving update cursor %d: %v", offset, err)
		}

		// The rest of the batch is redelivered after a restart.
		if ctx.Err() != nil {
			break
		}
	}
	return offset, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
