package redis

import (
	"context"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// NilType is returned by go-redis for a missing key.
var NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	PoolSize int
}

type Client struct {
	Client *_redis.Client
	config *Config
	ctx    context.Context
	cancel context.CancelFunc
}

// IRedis is the key-value surface the repositories and blob store use.
// Get and GetBytes return an empty value and no error for a missing key.
type IRedis interface {
	Set(key string, value any, expiration time.Duration) error
	Get(key string) (string, error)
	SetBytes(key string, value []byte, expiration time.Duration) error
	GetBytes(key string) ([]byte, error)
}
