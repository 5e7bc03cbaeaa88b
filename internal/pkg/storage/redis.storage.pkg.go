package storage

import (
	"context"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/redis"
)

const redisBlobPrefix = "basseinpay:blob:"

// RedisStore keeps blobs in redis with a TTL, for deployments without a
// bucket. Objects are served by the API so URL is always empty.
type RedisStore struct {
	rds redis.IRedis
	ttl time.Duration
}

func NewRedisStore(rds redis.IRedis, ttl time.Duration) *RedisStore {
	return &RedisStore{rds: rds, ttl: ttl}
}

func (s *RedisStore) Put(_ context.Context, key string, data []byte, _ string) error {
	return s.rds.SetBytes(redisBlobPrefix+key, data, s.ttl)
}

func (s *RedisStore) Get(_ context.Context, key string) ([]byte, string, error) {
	data, err := s.rds.GetBytes(redisBlobPrefix + key)
	if err != nil || data == nil {
		return nil, "", err
	}
	return data, ContentTypeOf(key), nil
}

func (s *RedisStore) URL(context.Context, string) (string, error) {
	return "", nil
}
