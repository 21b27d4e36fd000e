package session

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/nearbuy-market/storefront-gateway/pkg/errors"
	"github.com/nearbuy-market/storefront-gateway/pkg/redis"
)

// RedisStore persists session tokens in Redis with a TTL so abandoned
// sessions expire on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps the shared Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) SaveToken(ctx context.Context, sessionID, token string) error {
	if err := s.client.Set(ctx, s.client.SessionKey(sessionID), token, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save session token")
	}
	return nil
}

func (s *RedisStore) Token(ctx context.Context, sessionID string) (string, error) {
	token, err := s.client.Get(ctx, s.client.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load session token")
	}
	return token, nil
}

func (s *RedisStore) DeleteToken(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.SessionKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete session token")
	}
	return nil
}
