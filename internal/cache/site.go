// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// siteKeyPrefix is the Valkey key prefix for generated documents.
	siteKeyPrefix = "site:"

	// DefaultSiteTTL is how long a generated site stays available for
	// preview and publishing.
	DefaultSiteTTL = time.Hour
)

// ErrNotFound is returned when no document is cached under an id.
var ErrNotFound = errors.New("cache: site not found")

// SiteCache stores finished HTML documents keyed by generation id.
type SiteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSiteCache creates a site cache backed by the given Valkey client.
func NewSiteCache(client *redis.Client, ttl time.Duration) *SiteCache {
	if ttl <= 0 {
		ttl = DefaultSiteTTL
	}
	return &SiteCache{client: client, ttl: ttl}
}

// SiteKey returns the Valkey key for a generation id.
func SiteKey(id string) string {
	return siteKeyPrefix + id
}

// Put stores the document with the configured TTL.
func (sc *SiteCache) Put(ctx context.Context, id, html string) error {
	if err := sc.client.Set(ctx, SiteKey(id), html, sc.ttl).Err(); err != nil {
		return fmt.Errorf("site cache set: %w", err)
	}
	slog.Debug("site cached", "generation_id", id, "bytes", len(html))
	return nil
}

// Get returns the cached document, or ErrNotFound on a miss.
func (sc *SiteCache) Get(ctx context.Context, id string) (string, error) {
	val, err := sc.client.Get(ctx, SiteKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("site cache get: %w", err)
	}
	return val, nil
}

// Delete removes a cached document. Missing ids are not an error.
func (sc *SiteCache) Delete(ctx context.Context, id string) error {
	if err := sc.client.Del(ctx, SiteKey(id)).Err(); err != nil {
		return fmt.Errorf("site cache delete: %w", err)
	}
	return nil
}

// Purge removes every cached site by scanning for the key prefix and
// returns how many were deleted.
func (sc *SiteCache) Purge(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := sc.client.Scan(ctx, cursor, siteKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("site cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := sc.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("site cache bulk delete: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("site cache purged", "deleted", deleted)
	}
	return deleted, nil
}
