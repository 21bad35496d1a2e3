package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"shipment-tracking-service/internal/domain"
	"shipment-tracking-service/internal/platform/obs"
	"shipment-tracking-service/internal/ports"
)

// RedisCollectionCache decorates a CollectionFetcher with a TTL'd Redis
// cache, keyed per collection and center. The cache is best effort: a
// Redis failure falls through to the underlying fetcher, and a failed
// write only logs. Collaborator errors from the fetcher are never
// cached.
type RedisCollectionCache struct {
	rdb  *redis.Client
	next ports.CollectionFetcher
	ttl  time.Duration
}

func NewRedisCollectionCache(rdb *redis.Client, next ports.CollectionFetcher, ttl time.Duration) (*RedisCollectionCache, error) {
	if rdb == nil {
		return nil, errors.New("redis collection cache: client is nil")
	}
	if next == nil {
		return nil, errors.New("redis collection cache: fetcher is nil")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &RedisCollectionCache{rdb: rdb, next: next, ttl: ttl}, nil
}

func (c *RedisCollectionCache) FetchShipments(ctx context.Context, centerID string) (_ []*domain.Shipment, err error) {
	defer obs.Time(ctx, "cache.FetchShipments")(&err)

	key := cacheKey("shipments", centerID)

	var cached []*domain.Shipment
	if ok := c.lookup(ctx, key, &cached); ok {
		return cached, nil
	}

	fresh, err := c.next.FetchShipments(ctx, centerID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *RedisCollectionCache) FetchRoutes(ctx context.Context, centerID string) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, "cache.FetchRoutes")(&err)

	key := cacheKey("routes", centerID)

	var cached []*domain.Route
	if ok := c.lookup(ctx, key, &cached); ok {
		return cached, nil
	}

	fresh, err := c.next.FetchRoutes(ctx, centerID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, fresh)
	return fresh, nil
}

func (c *RedisCollectionCache) FetchVehicles(ctx context.Context, centerID string) (_ []*domain.Vehicle, err error) {
	defer obs.Time(ctx, "cache.FetchVehicles")(&err)

	key := cacheKey("vehicles", centerID)

	var cached []*domain.Vehicle
	if ok := c.lookup(ctx, key, &cached); ok {
		return cached, nil
	}

	fresh, err := c.next.FetchVehicles(ctx, centerID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, fresh)
	return fresh, nil
}

func cacheKey(collection, centerID string) string {
	if centerID == "" {
		centerID = "all"
	}
	return fmt.Sprintf("collections:%s:%s", collection, centerID)
}

// lookup reports whether the key held a decodable value. Misses and
// Redis errors both read as "not cached".
func (c *RedisCollectionCache) lookup(ctx context.Context, key string, v any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache lookup failed: key=%s err=%v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("cache decode failed: key=%s err=%v", key, err)
		return false
	}
	return true
}

func (c *RedisCollectionCache) store(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache encode failed: key=%s err=%v", key, err)
		return
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("cache store failed: key=%s err=%v", key, err)
	}
}
