package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a small JSON-over-Redis helper with a fixed key namespace
type Cache struct {
	rdb    *redis.Client // Underlying Redis client
	prefix string        // Namespace prepended to every key
}

// NewCache creates a namespaced cache over an existing Redis client
func NewCache(rdb *redis.Client, prefix string) *Cache {
	return &Cache{rdb: rdb, prefix: prefix}
}

// key builds the namespaced Redis key
func (c *Cache) key(k string) string {
	return c.prefix + ":" + k
}

// GetJSON retrieves a value and unmarshals it into dest
func (c *Cache) GetJSON(ctx context.Context, k string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, c.key(k)).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetJSON marshals value to JSON and stores it with a TTL
func (c *Cache) SetJSON(ctx context.Context, k string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, c.key(k), b, ttl).Err() // Set value in Redis with TTL
}

// Delete removes a key from the namespace
func (c *Cache) Delete(ctx context.Context, k string) error {
	return c.rdb.Del(ctx, c.key(k)).Err() // Delete key from Redis
}
