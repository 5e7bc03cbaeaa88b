package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	_redis "github.com/redis/go-redis/v9"
)

const (
	pingAttempts = 3
	opTimeout    = 3 * time.Second
)

// Setup pings the server a few times before giving up. After that the
// go-redis pool redials on its own.
func Setup(ctx context.Context, config *Config) (*Client, error) {
	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	rdb := _redis.NewClient(&_redis.Options{
		Addr:         addr,
		Username:     config.Username,
		Password:     config.Password,
		PoolSize:     config.PoolSize,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
		MaxRetries:   3,
	})

	ctx, cancel := context.WithCancel(ctx)
	r := &Client{Client: rdb, config: config, ctx: ctx, cancel: cancel}

	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = r.Ping(); err == nil {
			return r, nil
		}
		logger.Warning.Printf("Redis ping %d/%d at %s failed: %v", attempt, pingAttempts, addr, err)
		if attempt < pingAttempts {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	cancel()
	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
}

func (r *Client) op() (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.ctx, opTimeout)
}

func (r *Client) Ping() error {
	ctx, cancel := r.op()
	defer cancel()
	return r.Client.Ping(ctx).Err()
}

func (r *Client) Close() error {
	r.cancel()
	return r.Client.Close()
}

// Set stores strings and byte slices as-is and anything else as JSON.
func (r *Client) Set(key string, value any, expiration time.Duration) error {
	var data any
	switch v := value.(type) {
	case string, []byte:
		data = v
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		data = b
	}

	ctx, cancel := r.op()
	defer cancel()
	if err := r.Client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (r *Client) Get(key string) (string, error) {
	ctx, cancel := r.op()
	defer cancel()

	result, err := r.Client.Get(ctx, key).Result()
	if errors.Is(err, NilType) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

func (r *Client) SetBytes(key string, value []byte, expiration time.Duration) error {
	return r.Set(key, value, expiration)
}

func (r *Client) GetBytes(key string) ([]byte, error) {
	ctx, cancel := r.op()
	defer cancel()

	result, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, NilType) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}
