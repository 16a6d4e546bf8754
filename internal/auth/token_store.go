package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:denylist:"

// TokenStore tracks revoked token IDs until their natural expiry.
type TokenStore interface {
	Denylist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsDenylisted(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore returns a Redis-backed token denylist.
func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Denylist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, denylistPrefix+tokenID, "1", ttl).Err()
}

func (s *redisTokenStore) IsDenylisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
