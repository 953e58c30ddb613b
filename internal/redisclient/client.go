package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const orderListKey = "orders:list"

// Client caches the serialized order list and provides the lock used
// around order-ID generation.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient creates a Redis client and verifies the connection.
func NewClient(addr, password string, db int, cacheTTL time.Duration) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, ttl: cacheTTL}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetOrderList returns the cached order list payload and whether the
// cache held one.
func (c *Client) GetOrderList(ctx context.Context) ([]byte, bool, error) {
	payload, err := c.rdb.Get(ctx, orderListKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read order list cache: %w", err)
	}
	return payload, true, nil
}

// SetOrderList stores the serialized order list with the configured TTL.
func (c *Client) SetOrderList(ctx context.Context, payload []byte) error {
	return c.rdb.Set(ctx, orderListKey, payload, c.ttl).Err()
}

// InvalidateOrderList drops the cached order list. Called after every
// successful order mutation so the next list is read from the store.
func (c *Client) InvalidateOrderList(ctx context.Context) error {
	return c.rdb.Del(ctx, orderListKey).Err()
}

// AcquireLock acquires a distributed lock
func (c *Client) AcquireLock(ctx context.Context, lockKey string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, fmt.Sprintf("lock:%s", lockKey), "1", ttl).Result()
}

// ReleaseLock releases a distributed lock
func (c *Client) ReleaseLock(ctx context.Context, lockKey string) error {
	return c.rdb.Del(ctx, fmt.Sprintf("lock:%s", lockKey)).Err()
}
