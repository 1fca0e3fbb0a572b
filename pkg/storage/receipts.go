// Package storage holds payment receipt blobs in S3. Receipts are written
// once at booking commit and read back through short-lived presigned URLs
// when an operator reviews a booking.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReceiptStore persists receipt uploads and serves review links
type ReceiptStore interface {
	// Put stores a receipt and returns its storage key
	Put(ctx context.Context, bookingID, filename, contentType string, body io.Reader) (string, error)

	// PresignGet returns a time-limited download URL for a stored receipt
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)

	// Delete removes a stored receipt
	Delete(ctx context.Context, key string) error
}

// S3Config holds the bucket settings for the S3-backed store
type S3Config struct {
	Region    string
	Bucket    string
	KeyPrefix string
}

type s3Store struct {
	client *s3.Client
	cfg    S3Config
}

// NewS3Store creates an S3-backed receipt store using the default AWS
// credential chain
func NewS3Store(ctx context.Context, cfg S3Config) (ReceiptStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &s3Store{client: s3.NewFromConfig(awsCfg), cfg: cfg}, nil
}

func (s *s3Store) Put(ctx context.Context, bookingID, filename, contentType string, body io.Reader) (string, error) {
	key := path.Join(s.cfg.KeyPrefix, bookingID, filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt %s: %w", key, err)
	}
	return key, nil
}

func (s *s3Store) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	pre := s3.NewPresignClient(s.client)
	req, err := pre.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = expires
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign receipt %s: %w", key, err)
	}
	return req.URL, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete receipt %s: %w", key, err)
	}
	return nil
}
