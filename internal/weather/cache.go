package weather

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache stores conditions per location for a bounded time.
type Cache interface {
	Get(ctx context.Context, key string) (*Current, bool)
	Set(ctx context.Context, key string, cur *Current)
}

// memoryCache is the default in-process cache.
type memoryCache struct {
	c   *gocache.Cache
	ttl time.Duration
}

// NewMemoryCache creates an in-process TTL cache.
func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{
		c:   gocache.New(ttl, 2*ttl),
		ttl: ttl,
	}
}

func (m *memoryCache) Get(_ context.Context, key string) (*Current, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false
	}
	cur, ok := v.(*Current)
	return cur, ok
}

func (m *memoryCache) Set(_ context.Context, key string, cur *Current) {
	m.c.Set(key, cur, m.ttl)
}

// redisCache shares cached conditions across instances.
type redisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache creates a Redis-backed cache. Values are stored as JSON.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) Cache {
	return &redisCache{rdb: rdb, ttl: ttl}
}

func (r *redisCache) Get(ctx context.Context, key string) (*Current, bool) {
	data, err := r.rdb.Get(ctx, "weather:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	var cur Current
	if err := json.Unmarshal(data, &cur); err != nil {
		return nil, false
	}
	return &cur, true
}

func (r *redisCache) Set(ctx context.Context, key string, cur *Current) {
	data, err := json.Marshal(cur)
	if err != nil {
		return
	}
	_ = r.rdb.Set(ctx, "weather:"+key, data, r.ttl).Err()
}
