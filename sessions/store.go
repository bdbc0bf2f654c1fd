// Package sessions maps opaque session ids to authenticated user ids.
// The backing store is Redis with a per-session TTL; nothing else is
// persisted about a login.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a session id is unknown or expired.
var ErrNoSession = errors.New("no such session")

const keyPrefix = "session:"

// Store creates, resolves and destroys sessions.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, sid string) (string, error)
	Destroy(ctx context.Context, sid string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Store that keeps session state in Redis.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, userID string) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+sid, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *redisStore) Get(ctx context.Context, sid string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Destroy removes the session unconditionally; destroying an unknown
// session is not an error.
func (s *redisStore) Destroy(ctx context.Context, sid string) error {
	return s.client.Del(ctx, keyPrefix+sid).Err()
}
