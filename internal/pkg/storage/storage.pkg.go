package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/redis"
	s3aws "github.com/Baru2006/EasyRecharge-MM/internal/pkg/storage/s3"
)

// BlobStore keeps receipts and slips. Get returns nil data for a missing
// key. URL returns "" when the object is only reachable through the API.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	URL(ctx context.Context, key string) (string, error)
}

type Config struct {
	Driver enum.StorageEnum
	TTL    time.Duration
	Bucket string
	S3     s3aws.S3Config
}

func New(ctx context.Context, cfg Config, rds redis.IRedis) (BlobStore, error) {
	switch cfg.Driver {
	case enum.STORAGE_S3:
		if cfg.Bucket == "" {
			return nil, errors.New("bucket name is required for s3 storage")
		}
		cfg.S3.PresignTTL = cfg.TTL
		bucket, err := s3aws.NewBucket(ctx, cfg.S3, cfg.Bucket, rds)
		if err != nil {
			return nil, err
		}
		return bucket, nil
	case enum.STORAGE_REDIS, "":
		if rds == nil {
			return nil, errors.New("redis is required for redis storage")
		}
		logger.Info.Println("Storing receipts in redis")
		return NewRedisStore(rds, cfg.TTL), nil
	}
	return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
}

func ReceiptKey(orderID string) string {
	return "receipts/" + orderID + ".png"
}

func SlipKey(orderID string) string {
	return "slips/" + orderID + ".jpg"
}

// ContentTypeOf maps a receipt or slip key to its media type.
func ContentTypeOf(key string) string {
	if t := mime.TypeByExtension(path.Ext(key)); t != "" {
		return t
	}
	return "application/octet-stream"
}
