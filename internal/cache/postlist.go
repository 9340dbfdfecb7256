// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// postlist.go provides a Redis-backed cache for published post listings.
// The public list endpoints serialize their JSON response once and store
// it here so repeat requests skip the database entirely. Any post or
// category write clears the whole keyspace; listings are cheap to rebuild
// and the TTL keeps stale entries short-lived regardless.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// postKeyPrefix is the Redis key prefix for cached post listings.
	postKeyPrefix = "posts:"

	// DefaultListTTL is how long a cached listing stays valid.
	DefaultListTTL = 1 * time.Minute
)

// PostListCache manages cached post listing responses in Redis.
type PostListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPostListCache creates a post listing cache backed by the given client.
func NewPostListCache(client *redis.Client, ttl time.Duration) *PostListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &PostListCache{client: client, ttl: ttl}
}

// Get retrieves a cached listing for a key. Returns false on miss.
func (c *PostListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, postKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("post cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a serialized listing for a key with the configured TTL.
func (c *PostListCache) Set(ctx context.Context, key string, body []byte) {
	if err := c.client.Set(ctx, postKeyPrefix+key, body, c.ttl).Err(); err != nil {
		slog.Warn("post cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached listing by scanning for the prefix.
// Called on any post or category mutation.
func (c *PostListCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, postKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("post cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("post cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("post cache cleared", "deleted", deleted)
	}
}

// PublishedKey returns the cache key for the unfiltered published listing.
func PublishedKey() string {
	return "published"
}

// SearchKey returns the cache key for a search query listing.
func SearchKey(query string) string {
	return "search:" + query
}

// CategoryKey returns the cache key for a category-filtered listing.
func CategoryKey(categoryID string) string {
	return "category:" + categoryID
}

// TagKey returns the cache key for a tag-filtered listing.
func TagKey(tag string) string {
	return "tag:" + tag
}

// TagsKey returns the cache key for the distinct tag listing.
func TagsKey() string {
	return "tags"
}
