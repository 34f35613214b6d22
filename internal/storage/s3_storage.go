package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const cacheControl = "max-age=3600"

type S3Config struct {
	Endpoint  string
	Region    string
	PublicURL string
}

// S3Storage 每個 Bucket 對應同名的 S3 bucket（R2 / MinIO 以 Endpoint 指定）
type S3Storage struct {
	client    *s3.Client
	endpoint  string
	publicURL string
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		endpoint:  cfg.Endpoint,
		publicURL: cfg.PublicURL,
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, bucket Bucket, path string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(string(bucket)),
		Key:          aws.String(path),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (s *S3Storage) PublicURL(bucket Bucket, path string) string {
	return s3PublicURL(s.publicURL, s.endpoint, bucket, path)
}

func (s *S3Storage) Delete(ctx context.Context, bucket Bucket, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(string(bucket)),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func s3PublicURL(publicURL, endpoint string, bucket Bucket, path string) string {
	switch {
	case publicURL != "":
		return fmt.Sprintf("%s/%s/%s", publicURL, bucket, path)
	case endpoint != "":
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, path)
	default:
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", bucket, path)
	}
}
