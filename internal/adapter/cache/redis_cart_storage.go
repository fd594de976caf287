package cache

import (
	"context"
	"time"

	"github.com/quocluongg/telectric-web-sub001/internal/usecase"
	"github.com/redis/go-redis/v9"
)

// RedisCartStorage is the keyed blob port behind the cart store. One key per
// client token; each Save rewrites the whole blob and refreshes the TTL.
type RedisCartStorage struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStorage(rdb *redis.Client, ttl time.Duration) *RedisCartStorage {
	return &RedisCartStorage{rdb: rdb, ttl: ttl}
}

func (s *RedisCartStorage) Load(ctx context.Context, cartID string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, "cart:"+cartID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (s *RedisCartStorage) Save(ctx context.Context, cartID string, data []byte) error {
	return s.rdb.Set(ctx, "cart:"+cartID, data, s.ttl).Err()
}

var _ usecase.CartStorage = (*RedisCartStorage)(nil)
