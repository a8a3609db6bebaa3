package sweep

import (
	"context"
	"sync"

	"github.com/jmlee/dcalab/internal/analytics"
	"github.com/jmlee/dcalab/pkg/logger"
	"github.com/jmlee/dcalab/pkg/redis"
)

// Cache memoizes completed simulations by combination key.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool)
	Set(ctx context.Context, key string, result *Result)
}

// MemoryCache is a process-local Cache backed by a map
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Result
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*Result)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.entries[key]
	return result, ok
}

func (c *MemoryCache) Set(_ context.Context, key string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = result
}

// Len returns the number of cached combinations
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

type cachedResult struct {
	Combination Combination                 `json:"combination"`
	Analysis    *analytics.StrategyAnalysis `json:"analysis"`
}

// RedisCache shares simulation results across processes. Only the
// combination and its analysis are stored, not the full portfolio.
// Cache errors degrade to misses so the sweep never fails on Redis.
type RedisCache struct {
	cache  *redis.Cache
	logger *logger.Logger
}

func NewRedisCache(client *redis.Client, log *logger.Logger) *RedisCache {
	return &RedisCache{
		cache:  redis.NewCache(client, "sweep"),
		logger: log,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Result, bool) {
	var entry cachedResult
	found, err := c.cache.Get(ctx, key, &entry)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("sweep cache read failed")
		return nil, false
	}
	if !found {
		return nil, false
	}

	return &Result{Combination: entry.Combination, Analysis: entry.Analysis}, true
}

func (c *RedisCache) Set(ctx context.Context, key string, result *Result) {
	entry := cachedResult{Combination: result.Combination, Analysis: result.Analysis}
	if err := c.cache.Set(ctx, key, entry, redis.TTLDaily); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("sweep cache write failed")
	}
}
