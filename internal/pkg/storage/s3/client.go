package s3aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/logger"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/redis"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

const (
	defaultPresignTTL = 72 * time.Hour
	urlCachePrefix    = "basseinpay:presign:"
)

type S3Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	// PresignTTL bounds both the presigned URL lifetime and its cache entry.
	PresignTTL time.Duration
}

// Bucket stores receipts and slips in one private bucket and hands out
// presigned download links.
type Bucket struct {
	api        *s3.S3
	name       string
	presignTTL time.Duration
	urls       redis.IRedis
}

// NewBucket creates the bucket on first use. urls may be nil, in which case
// every URL call signs a new link.
func NewBucket(ctx context.Context, cfg S3Config, name string, urls redis.IRedis) (*Bucket, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	b := &Bucket{
		api:        s3.New(sess),
		name:       name,
		presignTTL: cfg.PresignTTL,
		urls:       urls,
	}
	if b.presignTTL <= 0 {
		b.presignTTL = defaultPresignTTL
	}

	if err := b.ensure(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func notFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey, "NotFound":
		return true
	}
	return false
}

func (b *Bucket) ensure(ctx context.Context) error {
	_, err := b.api.HeadBucketWithContext(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.name)})
	if err == nil {
		return nil
	}
	if !notFound(err) {
		return fmt.Errorf("failed to check bucket %s: %w", b.name, err)
	}

	logger.Info.Printf("Creating bucket %s", b.name)
	if _, err := b.api.CreateBucketWithContext(ctx, &s3.CreateBucketInput{Bucket: aws.String(b.name)}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", b.name, err)
	}
	return nil
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := b.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(b.name),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String(contentType),
		CacheControl:         aws.String("private, max-age=86400"),
		ServerSideEncryption: aws.String(s3.ServerSideEncryptionAes256),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// Get returns nil data and no error when the key does not exist.
func (b *Bucket) Get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := b.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if notFound(err) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, aws.StringValue(out.ContentType), nil
}

// URL signs a download link for key. Links are cached slightly shorter
// than their signature lives.
func (b *Bucket) URL(_ context.Context, key string) (string, error) {
	cacheKey := urlCachePrefix + b.name + ":" + key
	if b.urls != nil {
		if cached, err := b.urls.Get(cacheKey); err == nil && cached != "" {
			return cached, nil
		}
	}

	req, _ := b.api.GetObjectRequest(&s3.GetObjectInput{
		Bucket:                     aws.String(b.name),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", path.Base(key))),
	})
	signed, err := req.Presign(b.presignTTL)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}

	if b.urls != nil {
		if err := b.urls.Set(cacheKey, signed, max(b.presignTTL-time.Minute, time.Second)); err != nil {
			logger.Warning.Printf("failed to cache presigned URL for %s: %v", key, err)
		}
	}
	return signed, nil
}
