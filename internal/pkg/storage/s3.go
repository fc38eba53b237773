package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"

	appconfig "github.com/muhafiz/muhafiz-api/internal/pkg/config"
)

const s3KeyPrefix = "uploads/"

// S3Store keeps media in an S3 compatible bucket.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store creates the S3 client. Ping verifies bucket access separately.
func NewS3Store(ctx context.Context, cfg appconfig.S3Config) (*S3Store, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// S3 compatible services (MinIO, B2) expect path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	return &S3Store{
		client:  client,
		bucket:  cfg.BucketName,
		baseURL: publicBaseURL(cfg),
	}, nil
}

func publicBaseURL(cfg appconfig.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.EndpointURL != "":
		return strings.TrimRight(cfg.EndpointURL, "/") + "/" + cfg.BucketName
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.BucketName, cfg.Region)
	}
}

func (s *S3Store) Backend() string {
	return "s3"
}

// Ping checks that the bucket is reachable with the configured credentials.
func (s *S3Store) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", s.bucket, err)
	}
	log.Infof("[S3Store] Bucket %s is reachable", s.bucket)
	return nil
}

// Save uploads data as uploads/<name>. data should be seekable when the
// endpoint is plain HTTP so the payload can be signed.
func (s *S3Store) Save(ctx context.Context, name string, data io.Reader, size int64, contentType string) (*FileOperation, error) {
	startTime := time.Now()
	key := s3KeyPrefix + name

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(contentType),
	}
	if size >= 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("failed to upload %s to S3: %w", key, err)
	}

	op := &FileOperation{
		Name:     name,
		URL:      s.baseURL + "/" + key,
		Size:     size,
		Duration: time.Since(startTime),
	}
	log.Debugf("[S3Store] Uploaded s3://%s/%s in %v", s.bucket, key, op.Duration)
	return op, nil
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	key := s3KeyPrefix + name
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from S3: %w", key, err)
	}
	return nil
}
