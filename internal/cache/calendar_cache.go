package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/quitofx/newswindow/internal/models"
)

// CalendarCacheStats tracks cache performance metrics
type CalendarCacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
	mu     sync.RWMutex
}

// RedisCalendarCache caches the raw calendar records of a date so that
// repeated report requests do not hit the calendar source. Records are
// cached before classification; the engine always re-classifies.
type RedisCalendarCache struct {
	redis  *redis.Client
	ttl    time.Duration
	stats  *CalendarCacheStats
	prefix string
}

// NewRedisCalendarCache creates a new Redis-based calendar cache
func NewRedisCalendarCache(redisClient *redis.Client, ttl time.Duration) *RedisCalendarCache {
	return &RedisCalendarCache{
		redis:  redisClient,
		ttl:    ttl,
		stats:  &CalendarCacheStats{},
		prefix: "calendar:",
	}
}

// Get retrieves the cached records for a date. The boolean reports a
// cache hit; a corrupt entry counts as a miss.
func (c *RedisCalendarCache) Get(ctx context.Context, date time.Time) ([]models.RawCalendarRecord, bool) {
	cacheKey := c.key(date)

	data, err := c.redis.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		c.miss()
		return nil, false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", cacheKey).Warn("Calendar cache read failed")
		c.miss()
		return nil, false
	}

	var recs []models.RawCalendarRecord
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		logrus.WithError(err).WithField("key", cacheKey).Warn("Calendar cache entry corrupt, discarding")
		c.miss()
		return nil, false
	}

	c.stats.mu.Lock()
	c.stats.Hits++
	c.stats.mu.Unlock()
	return recs, true
}

// Set stores the records for a date with the configured TTL.
func (c *RedisCalendarCache) Set(ctx context.Context, date time.Time, recs []models.RawCalendarRecord) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}

	if err := c.redis.Set(ctx, c.key(date), data, c.ttl).Err(); err != nil {
		return err
	}

	c.stats.mu.Lock()
	c.stats.Sets++
	c.stats.mu.Unlock()
	return nil
}

// Stats returns a snapshot of the cache counters.
func (c *RedisCalendarCache) Stats() (hits, misses, sets int64) {
	c.stats.mu.RLock()
	defer c.stats.mu.RUnlock()
	return c.stats.Hits, c.stats.Misses, c.stats.Sets
}

func (c *RedisCalendarCache) key(date time.Time) string {
	return c.prefix + date.Format("2006-01-02")
}

func (c *RedisCalendarCache) miss() {
	c.stats.mu.Lock()
	c.stats.Misses++
	c.stats.mu.Unlock()
}
