package session

import (
	"context" // Context for Redis operations
	"time"    // Session timestamps

	"rental_gateway/internal/domain" // Session record shape
	"rental_gateway/internal/utils"  // Redis JSON cache and session TTL

	"github.com/google/uuid"       // Session ids
	"github.com/redis/go-redis/v9" // Redis client
)

// KeyPrefix is the fixed name all persisted session records live under
const KeyPrefix = "app-auth"

// Store persists at most one authenticated user per session id. Handlers
// only see this interface; tests swap in a map-backed fake.
type Store interface {
	Save(ctx context.Context, id string, s *domain.Session) error
	Load(ctx context.Context, id string) (*domain.Session, bool, error)
	Delete(ctx context.Context, id string) error
}

// New builds a fresh session record for a user
func New(user *domain.User, token, appName string) *domain.Session {
	return &domain.Session{
		User:      user,                   // Authenticated user
		Token:     token,                  // Opaque backend token, if any
		IsAuthed:  user != nil,            // Authenticated flag
		AppName:   appName,                // Display name at login time
		CreatedAt: time.Now().UnixMilli(), // Creation timestamp
	}
}

// NewID generates a session id
func NewID() string {
	return uuid.NewString()
}

// RedisStore is the durable Store implementation
type RedisStore struct {
	cache *utils.Cache // JSON records under the fixed key prefix
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{cache: utils.NewCache(rdb, KeyPrefix)}
}

// Save persists a session record for the lifetime of its token
func (s *RedisStore) Save(ctx context.Context, id string, sess *domain.Session) error {
	return s.cache.SetJSON(ctx, id, sess, utils.SessionTTL)
}

// Load hydrates a session record; ok is false when none is persisted
func (s *RedisStore) Load(ctx context.Context, id string) (*domain.Session, bool, error) {
	var sess domain.Session // Hydration target
	ok, err := s.cache.GetJSON(ctx, id, &sess)
	if err != nil || !ok {
		return nil, false, err // Missing record or Redis error
	}
	return &sess, true, nil
}

// Delete clears a session record
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, id)
}
