package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/davesbikeparts/partshub/internal/domain/part"
	"github.com/redis/go-redis/v9"
)

const catalogKey = "catalog:bikeparts"

// Catalog caches the public parts listing. Backed by Redis when configured,
// otherwise by the in-process TTL cache, so a missing Redis never takes the
// open catalog route down.
type Catalog struct {
	rdb *redis.Client
	mem *Cache
	ttl time.Duration
}

func NewCatalog(rdb *redis.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Catalog{
		rdb: rdb,
		mem: New(ttl),
		ttl: ttl,
	}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

func (c *Catalog) Get(ctx context.Context) ([]part.Part, bool) {
	if c.rdb == nil {
		v, ok := c.mem.Get(catalogKey)

		if !ok {
			return nil, false
		}

		parts, ok := v.([]part.Part)

		return parts, ok
	}

	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()

	if err != nil {
		// cache miss or redis down; both mean "go to the store"
		return nil, false
	}

	var parts []part.Part

	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, false
	}

	return parts, true
}

func (c *Catalog) Set(ctx context.Context, parts []part.Part) {
	if c.rdb == nil {
		c.mem.Set(catalogKey, parts)
		return
	}

	raw, err := json.Marshal(parts)

	if err != nil {
		return
	}

	// best effort; a failed cache write is not an error for the caller
	_ = c.rdb.Set(ctx, catalogKey, raw, c.ttl).Err()
}

func (c *Catalog) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		c.mem.Delete(catalogKey)
		return
	}

	_ = c.rdb.Del(ctx, catalogKey).Err()
}
