// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalog.go provides a Valkey-backed cache of catalog query results.
// Listing endpoints store their JSON-encoded result here so repeat requests
// skip the database until the catalog changes or the TTL expires.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// catalogKeyPrefix is the Valkey key prefix for cached catalog results.
	catalogKeyPrefix = "catalog:"

	// DefaultCatalogTTL is how long a catalog result stays cached.
	DefaultCatalogTTL = 5 * time.Minute
)

// CatalogCache stores catalog query results in Valkey. A nil *CatalogCache
// is valid and behaves as a cache that always misses.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache backed by the given Valkey client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl == 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get decodes the cached value for key into dst. It reports false on a miss
// or when the cached value cannot be decoded.
func (c *CatalogCache) Get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	val, err := c.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("catalog cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("catalog cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("catalog cache hit", "key", key)
	return true
}

// Set stores v JSON-encoded under key with the configured TTL.
func (c *CatalogCache) Set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("catalog cache encode error", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, catalogKeyPrefix+key, data, c.ttl).Err(); err != nil {
		slog.Warn("catalog cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached catalog result by scanning for the
// prefix. Called whenever a game is added to or removed from the catalog.
func (c *CatalogCache) InvalidateAll(ctx context.Context) {
	if c == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, catalogKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("catalog cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("catalog cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("catalog cache cleared", "deleted", deleted)
	}
}

// AllGamesKey returns the cache key for the full catalog listing.
func AllGamesKey() string {
	return "all"
}

// CategoryKey returns the cache key for one category's listing.
func CategoryKey(category string) string {
	return "category:" + category
}

// SearchKey returns the cache key for a search query. The query is
// lowercased because search is case-insensitive.
func SearchKey(query string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(query))
}

// PopularKey returns the cache key for the top-limit popularity listing.
func PopularKey(limit int) string {
	return "popular:" + strconv.Itoa(limit)
}

// GameKey returns the cache key for a single game.
func GameKey(id string) string {
	return "game:" + id
}
