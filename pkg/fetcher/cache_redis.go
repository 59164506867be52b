package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/umputun/feedpulse/pkg/domain"
)

// RedisCache keeps fetched items in redis as JSON values with a TTL, so
// several instances can share one fetch budget. Every redis failure
// degrades to a cache miss and is logged, never propagated.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to redis and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis %s: %w", addr, err)
	}

	return &RedisCache{client: client, prefix: "feedpulse:items:"}, nil
}

// Get returns the cached items for key, a miss on any failure.
func (c *RedisCache) Get(ctx context.Context, key string) ([]domain.Item, bool) {
	bs, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[WARN] redis get for %q failed: %v", key, err)
		}
		return nil, false
	}

	var items []domain.Item
	if err := json.Unmarshal(bs, &items); err != nil {
		log.Printf("[WARN] corrupted cache entry for %q: %v", key, err)
		return nil, false
	}
	return items, true
}

// Set stores items under key for ttl.
func (c *RedisCache) Set(ctx context.Context, key string, items []domain.Item, ttl time.Duration) {
	bs, err := json.Marshal(items)
	if err != nil {
		log.Printf("[WARN] marshal cache entry for %q failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, bs, ttl).Err(); err != nil {
		log.Printf("[WARN] redis set for %q failed: %v", key, err)
	}
}

// Close releases the redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
