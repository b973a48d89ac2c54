package books

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/mindfulpath/internal/constants"
	"github.com/julianstephens/mindfulpath/internal/logger"
	"github.com/julianstephens/mindfulpath/internal/models"
)

// Cached memoizes search results in Redis under amazon_books:search:<keywords>.
// Cache failures are logged and never fail a search.
type Cached struct {
	Next   Provider
	Client *redis.Client
	TTL    time.Duration
}

func NewCached(next Provider, client *redis.Client, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = constants.BookCacheDuration
	}
	return &Cached{Next: next, Client: client, TTL: ttl}
}

// CacheKey returns the Redis key for a keyword search.
func CacheKey(keywords string) string {
	return constants.BookCachePrefix + "search:" + strings.ToLower(normalizeKeywords(keywords))
}

func (c *Cached) Search(ctx context.Context, keywords string) ([]models.Book, error) {
	key := CacheKey(keywords)

	raw, err := c.Client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var books []models.Book
		if jsonErr := json.Unmarshal(raw, &books); jsonErr == nil {
			logger.Debug("Book cache hit", "key", key)
			return books, nil
		}
		logger.Warn("Discarding unreadable book cache entry", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		logger.Warn("Book cache unavailable", "error", err)
	}

	books, err := c.Next.Search(ctx, keywords)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(books); err == nil {
		if err := c.Client.Set(ctx, key, data, c.TTL).Err(); err != nil {
			logger.Warn("Failed to cache book results", "key", key, "error", err)
		}
	}
	return books, nil
}

// Clear drops every cached search.
func (c *Cached) Clear(ctx context.Context) (int, error) {
	var cursor uint64
	removed := 0
	for {
		keys, next, err := c.Client.Scan(ctx, cursor, constants.BookCachePrefix+"*", 100).Result()
		if err != nil {
			return removed, err
		}
		if len(keys) > 0 {
			n, err := c.Client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, err
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			return removed, nil
		}
	}
}
