package forecast

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/staybase/demandcast/pkg/models"
)

// cacheEntry holds the derived side information for one
// (propertyID, serviceType) pair.
type cacheEntry struct {
	pattern   *models.SeasonalPattern
	model     *models.VolatilityModel
	expiresAt time.Time
}

// modelCache memoizes seasonal patterns and volatility models within
// one process lifetime. It is an opportunistic optimization only: a
// fresh computation is always substitutable for a cached entry.
type modelCache struct {
	cache  *lru.Cache[string, *cacheEntry]
	ttl    time.Duration
	mu     sync.Mutex
	hits   uint64
	misses uint64
}

func newModelCache(size int, ttl time.Duration) (*modelCache, error) {
	cache, err := lru.New[string, *cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &modelCache{cache: cache, ttl: ttl}, nil
}

func cacheKey(propertyID, serviceType string) string {
	return propertyID + "/" + serviceType
}

func (c *modelCache) get(key string) (*cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.cache.Get(key)
	if !ok || (c.ttl > 0 && time.Now().After(entry.expiresAt)) {
		c.misses++
		return nil, false
	}
	c.hits++
	return entry, true
}

func (c *modelCache) set(key string, pattern *models.SeasonalPattern, model *models.VolatilityModel) {
	expiresAt := time.Time{}
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Add(key, &cacheEntry{
		pattern:   pattern,
		model:     model,
		expiresAt: expiresAt,
	})
}

func (c *modelCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

func (c *modelCache) stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
