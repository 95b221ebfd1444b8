package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RepoCachePrefix is the key prefix for cached repository listings.
const RepoCachePrefix = "github:repos:"

// RepoCache stores raw repository-listing payloads keyed by username so that
// repeated profile views do not hit the third-party API. Using an interface
// enables testing with mocks and potential future backends.
type RepoCache interface {
	// Get returns the cached payload for a username. found=false on miss.
	Get(ctx context.Context, username string) (payload []byte, found bool, err error)

	// Set stores a payload for a username with the cache TTL.
	Set(ctx context.Context, username string, payload []byte) error
}

// RedisRepoCache implements RepoCache on Redis string keys with a TTL.
type RedisRepoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRepoCache creates a RepoCache backed by Redis.
func NewRepoCache(client *redis.Client, ttl time.Duration) RepoCache {
	return &RedisRepoCache{client: client, ttl: ttl}
}

func repoKey(username string) string {
	return RepoCachePrefix + username
}

func (c *RedisRepoCache) Get(ctx context.Context, username string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, repoKey(username)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached repos: %w", err)
	}
	return payload, true, nil
}

func (c *RedisRepoCache) Set(ctx context.Context, username string, payload []byte) error {
	if err := c.client.Set(ctx, repoKey(username), payload, c.ttl).Err(); err != nil {
		log.Printf("[RepoCache] Set FAILED: username=%s err=%v", username, err)
		return fmt.Errorf("cache repos: %w", err)
	}
	return nil
}
