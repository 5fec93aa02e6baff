package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taskscribe-dev/taskscribe/pkg/config"
)

// NewRedisClient creates and pings a Redis client
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// UserResolverCache caches email-to-user-ID resolution in Redis. Failures on
// either side are treated as cache misses; resolution falls back to Postgres.
type UserResolverCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserResolverCache creates a resolver cache with the given TTL
func NewUserResolverCache(client *redis.Client, ttl time.Duration) *UserResolverCache {
	return &UserResolverCache{
		client: client,
		ttl:    ttl,
	}
}

func resolverKey(email string) string {
	return "resolver:email:" + email
}

// GetUserID returns the cached user ID for an email, if any
func (c *UserResolverCache) GetUserID(ctx context.Context, email string) (uuid.UUID, bool) {
	val, err := c.client.Get(ctx, resolverKey(email)).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SetUserID caches a resolved user ID, best-effort
func (c *UserResolverCache) SetUserID(ctx context.Context, email string, id uuid.UUID) {
	c.client.Set(ctx, resolverKey(email), id.String(), c.ttl)
}
