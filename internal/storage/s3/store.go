// Package s3 stores listing images in an S3 compatible bucket.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"realty-service/internal/domain/asset"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultUploadExpiry = 15 * time.Minute

type Config struct {
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UsePathStyle  bool
}

type Store struct {
	client     *awss3.Client
	presign    *awss3.PresignClient
	bucket     string
	publicBase string
	expiry     time.Duration
	now        func() time.Time
}

var _ asset.Store = (*Store)(nil)

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &Store{
		client:     client,
		presign:    awss3.NewPresignClient(client),
		bucket:     cfg.Bucket,
		publicBase: publicBase(cfg),
		expiry:     defaultUploadExpiry,
		now:        time.Now,
	}, nil
}

func publicBase(cfg Config) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// NewKey returns properties/YYYY/MM/DD/<uuid>.
func (s *Store) NewKey() string {
	d := s.now().UTC()
	return fmt.Sprintf("properties/%04d/%02d/%02d/%s", d.Year(), int(d.Month()), d.Day(), uuid.New())
}

// SignUpload presigns a PUT for a fresh key.
func (s *Store) SignUpload(ctx context.Context, contentType string) (*asset.SignedUpload, error) {
	key := s.NewKey()

	req, err := s.presign.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, awss3.WithPresignExpires(s.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &asset.SignedUpload{
		Key:       key,
		UploadURL: req.URL,
		PublicURL: s.publicBase + "/" + key,
		ExpiresAt: s.now().Add(s.expiry),
	}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}

func (s *Store) KeyFromURL(raw string) (string, bool) {
	prefix := s.publicBase + "/"
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(raw, prefix)
	if i := strings.IndexAny(key, "?#"); i >= 0 {
		key = key[:i]
	}
	key, err := url.PathUnescape(key)
	if err != nil || key == "" {
		return "", false
	}
	return key, true
}
