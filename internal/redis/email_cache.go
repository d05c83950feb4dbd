package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mailtrack/internal/model"
	"mailtrack/pkg/metrics"
)

const emailCacheTTL = 60 * time.Second

// EmailCache keeps recently looked-up email records keyed by slug so
// tracking-pixel reads stay off the database. Entries are short-lived;
// increments additionally invalidate the shortid-keyed entry.
type EmailCache struct {
	client *redis.Client
}

func NewEmailCache(client *redis.Client) *EmailCache {
	return &EmailCache{client: client}
}

func cacheKey(slug string) string {
	return "email:" + slug
}

// GetEmail returns the cached record for slug, if any.
func (c *EmailCache) GetEmail(ctx context.Context, slug string) (*model.Email, bool) {
	data, err := c.client.Get(ctx, cacheKey(slug)).Bytes()
	if err != nil {
		metrics.EmailCacheHitCount.WithLabelValues("miss").Inc()
		return nil, false
	}

	var e model.Email
	if err := json.Unmarshal(data, &e); err != nil {
		metrics.EmailCacheHitCount.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.EmailCacheHitCount.WithLabelValues("hit").Inc()
	return &e, true
}

// SetEmail stores a record under slug with a short TTL. Failures are
// ignored; the cache is advisory.
func (c *EmailCache) SetEmail(ctx context.Context, slug string, e *model.Email) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(slug), data, emailCacheTTL)
}

// Invalidate drops the entry keyed by shortid after a counter change.
// Entries keyed by canonical id age out on their own TTL.
func (c *EmailCache) Invalidate(ctx context.Context, shortID string) {
	c.client.Del(ctx, cacheKey(shortID))
}
