package usecase

import (
	"context"
	"time"

	"skillpath/internal/domain/event"
	"skillpath/internal/domain/trend"
	"skillpath/internal/pkg/logger"
)

// Cache is the JSON cache the usecases read through. A miss is (false, nil).
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Locker hands out short-lived exclusive locks keyed by name.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

type TrendScraper interface {
	Scrape(ctx context.Context, industry string) (trend.Trends, error)
}

func LinkedInCacheKey(userID string) string {
	return "linkedin:" + userID
}

func ExtendLockKey(userID string) string {
	return "lock:extend:" + userID
}

func orNopPublisher(p event.Publisher) event.Publisher {
	if p == nil {
		return event.Nop()
	}
	return p
}

// publish delivers e best-effort; failures are logged only.
func publish(ctx context.Context, p event.Publisher, log *logger.Logger, e event.Event) {
	if err := p.Publish(ctx, e); err != nil {
		log.Warn("publish event failed", "type", e.Type, "user_id", e.UserID, "error", err)
	}
}
