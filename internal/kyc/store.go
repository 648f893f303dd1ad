package kyc

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// completionKeyPrefix is the fixed key the completion flag lives under. It is
// the only durable state the verification flow keeps.
const completionKeyPrefix = "kyc:completed:"

// Store persists the per-user completion flag.
type Store interface {
	SetCompleted(ctx context.Context, userID string) error
	Completed(ctx context.Context, userID string) (bool, error)
}

// RedisStore keeps completion flags in Redis with no expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed completion store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SetCompleted marks the user as verified.
func (s *RedisStore) SetCompleted(ctx context.Context, userID string) error {
	return s.client.Set(ctx, completionKeyPrefix+userID, "1", 0).Err()
}

// Completed reports whether the user finished verification.
func (s *RedisStore) Completed(ctx context.Context, userID string) (bool, error) {
	val, err := s.client.Get(ctx, completionKeyPrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

// MemoryStore keeps completion flags in memory, for tests and database-less
// development.
type MemoryStore struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewMemoryStore builds an in-memory completion store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[string]bool)}
}

// SetCompleted marks the user as verified.
func (s *MemoryStore) SetCompleted(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[userID] = true
	return nil
}

// Completed reports whether the user finished verification.
func (s *MemoryStore) Completed(_ context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags[userID], nil
}
