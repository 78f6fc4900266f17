package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the image bucket client
type S3Config struct {
	Client     *s3.Client
	BucketName string
}

// NewS3Config builds an S3 client for the image bucket. Credentials come from
// the default AWS chain; S3_ENDPOINT points the client at an S3-compatible
// store (MinIO, LocalStack) using path-style addressing.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	if !cfg.ImagesEnabled() {
		return nil, fmt.Errorf("image bucket not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Config{Client: client, BucketName: cfg.S3BucketName}, nil
}

// GeneratePresignedURL returns a GET URL for objectKey valid for expiration.
func (s *S3Config) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	req, err := s3.NewPresignClient(s.Client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s/%s: %w", s.BucketName, objectKey, err)
	}
	return req.URL, nil
}
