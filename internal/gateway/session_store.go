package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// SessionStore is the registry of live token ids. Deleting an entry
// revokes the session regardless of the JWT's own expiry.
type SessionStore interface {
	Create(ctx context.Context, tokenID, userID string, ttl time.Duration) error
	// Get returns the user id for a token id, or "" if unknown/expired.
	Get(ctx context.Context, tokenID string) (string, error)
	Delete(ctx context.Context, tokenID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}

type RedisSessionStore struct {
	client *redisv9.Client
}

func NewRedisSessionStore(client *redisv9.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Create(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(tokenID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session failed: %w", err)
	}
	// secondary index so all of a user's sessions can be revoked at once
	if err := s.client.SAdd(ctx, userSessionsKey(userID), tokenID).Err(); err != nil {
		return fmt.Errorf("redis index session failed: %w", err)
	}
	if err := s.client.Expire(ctx, userSessionsKey(userID), ttl).Err(); err != nil {
		return fmt.Errorf("redis expire session index failed: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, tokenID string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKey(tokenID)).Result()
	if err == redisv9.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get session failed: %w", err)
	}
	return userID, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, tokenID string) error {
	userID, err := s.Get(ctx, tokenID)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	if userID != "" {
		if err := s.client.SRem(ctx, userSessionsKey(userID), tokenID).Err(); err != nil {
			return fmt.Errorf("redis unindex session failed: %w", err)
		}
	}
	return nil
}

func (s *RedisSessionStore) DeleteAllForUser(ctx context.Context, userID string) error {
	tokenIDs, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil && err != redisv9.Nil {
		return fmt.Errorf("redis list user sessions failed: %w", err)
	}
	for _, tokenID := range tokenIDs {
		if err := s.client.Del(ctx, sessionKey(tokenID)).Err(); err != nil {
			return fmt.Errorf("redis delete session failed: %w", err)
		}
	}
	if err := s.client.Del(ctx, userSessionsKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete session index failed: %w", err)
	}
	return nil
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}

func userSessionsKey(userID string) string {
	return "session_user:" + userID
}

// MemorySessionStore is an in-process SessionStore for tests and
// single-node dev setups without Redis.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memorySession
}

type memorySession struct {
	userID    string
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memorySession)}
}

func (s *MemorySessionStore) Create(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[tokenID] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, tokenID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[tokenID]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, tokenID)
		return "", nil
	}
	return entry.userID, nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, tokenID)
	return nil
}

func (s *MemorySessionStore) DeleteAllForUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tokenID, entry := range s.entries {
		if entry.userID == userID {
			delete(s.entries, tokenID)
		}
	}
	return nil
}
