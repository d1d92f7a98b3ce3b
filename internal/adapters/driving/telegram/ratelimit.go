package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const (
	defaultRate     = 20.0
	defaultBurst    = 5
	defaultRetryFor = 30 * time.Second
)

// rateLimiter spaces outbound requests and honours retry_after from the API.
type rateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

func newRateLimiter(perSecond float64) *rateLimiter {
	if perSecond <= 0 {
		perSecond = defaultRate
	}
	return &rateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), defaultBurst),
	}
}

// Wait blocks until a request may be made.
func (r *rateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return r.limiter.Wait(ctx)
}

// Observe records a flood-control error so later requests back off.
// Returns true if err was a flood-control error.
func (r *rateLimiter) Observe(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != 429 {
		return false
	}

	retry := time.Duration(apiErr.RetryAfter) * time.Second
	if retry <= 0 {
		retry = defaultRetryFor
	}

	r.mu.Lock()
	r.retryAt = time.Now().Add(retry)
	r.mu.Unlock()
	return true
}
