package vehicle

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"detailify/models"
	"detailify/utils"

	"github.com/go-redis/redis/v8"
)

// LookupCache stores resolved registrations for the resolver. Entries expire
// after the configured TTL; a Get on an expired entry behaves like a miss.
type LookupCache interface {
	Get(ctx context.Context, registration string) (*models.RegistrationLookupResult, bool)
	Set(ctx context.Context, registration string, result models.RegistrationLookupResult) error
}

// RedisLookupCache is the production cache, backed by the shared Redis
// cache client. Expiry is delegated to Redis TTLs.
type RedisLookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLookupCache(client *redis.Client) *RedisLookupCache {
	return &RedisLookupCache{client: client, ttl: utils.RegistrationCacheTTL}
}

func cacheKey(registration string) string {
	return utils.RegistrationCachePrefix + registration
}

func (c *RedisLookupCache) Get(ctx context.Context, registration string) (*models.RegistrationLookupResult, bool) {
	val, err := c.client.Get(ctx, cacheKey(registration)).Result()
	if err != nil {
		return nil, false
	}
	var result models.RegistrationLookupResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (c *RedisLookupCache) Set(ctx context.Context, registration string, result models.RegistrationLookupResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(registration), data, c.ttl).Err()
}

// MemoryLookupCache is an in-process cache for tests; expiry is checked
// against CachedAt using an injectable clock so tests can pin TTL behavior.
type MemoryLookupCache struct {
	mu      sync.Mutex
	entries map[string]models.RegistrationLookupResult
	TTL     time.Duration
	Now     func() time.Time
}

func NewMemoryLookupCache() *MemoryLookupCache {
	return &MemoryLookupCache{
		entries: make(map[string]models.RegistrationLookupResult),
		TTL:     utils.RegistrationCacheTTL,
		Now:     time.Now,
	}
}

func (c *MemoryLookupCache) Get(_ context.Context, registration string) (*models.RegistrationLookupResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[registration]
	if !ok {
		return nil, false
	}
	if c.Now().Sub(entry.CachedAt) >= c.TTL {
		delete(c.entries, registration)
		return nil, false
	}
	return &entry, true
}

func (c *MemoryLookupCache) Set(_ context.Context, registration string, result models.RegistrationLookupResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[registration] = result
	return nil
}
