package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/highshore/one-cup-eng-sub002/models"
)

const keyPrefix = "onecup:dict:"

// Redis is the subset of go-redis commands the cache needs.
type Redis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Cache keeps dictionary responses, misses included, for TTL. A nil *Cache
// is valid and caches nothing.
type Cache struct {
	rdb Redis
	ttl time.Duration
	log *logrus.Entry
}

func NewCache(rdb Redis, ttl time.Duration, logger *logrus.Logger) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Cache{rdb: rdb, ttl: ttl, log: logger.WithField("component", "dictionary_cache")}
}

func cacheKey(word string) string {
	return keyPrefix + strings.ToLower(word)
}

func (c *Cache) get(ctx context.Context, word string) ([]models.DictionaryEntry, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, cacheKey(word)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.log.WithFields(logrus.Fields{"word": word, "error": err}).Warn("Dictionary cache read failed")
		return nil, false
	}
	var entries []models.DictionaryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	if len(entries) == 0 {
		return nil, true
	}
	return entries, true
}

func (c *Cache) put(ctx context.Context, word string, entries []models.DictionaryEntry) {
	if c == nil || c.rdb == nil {
		return
	}
	if entries == nil {
		entries = []models.DictionaryEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(word), raw, c.ttl).Err(); err != nil {
		c.log.WithFields(logrus.Fields{"word": word, "error": err}).Warn("Dictionary cache write failed")
	}
}
