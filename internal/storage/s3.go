package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// reportContentType is the only object type this store holds: rendered SVG
// exam reports, served to browsers and print pipelines.
const reportContentType = "image/svg+xml"

// ReportStorage handles storage of rendered exam reports
type ReportStorage interface {
	UploadReport(ctx context.Context, key string, svg []byte) error
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	DeleteReport(ctx context.Context, key string) error
}

type reportStorage struct {
	client    *s3.Client
	bucket    string
	urlExpiry time.Duration
	endpoint  string // For MinIO compatibility
}

// S3Config holds configuration for the report store
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewReportStorage creates a new S3-backed report store
func NewReportStorage(cfg S3Config) (ReportStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	var awsCfg aws.Config
	var err error

	var client *s3.Client

	if cfg.Endpoint != "" {
		// MinIO configuration
		awsCfg, err = config.LoadDefaultConfig(context.Background(),
			config.WithRegion("us-east-1"), // MinIO doesn't care about region
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "http://" + endpoint
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true // MinIO requires path-style URLs
		})
	} else {
		// AWS S3 configuration
		awsCfg, err = config.LoadDefaultConfig(context.Background(),
			config.WithRegion(cfg.Region),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3.NewFromConfig(awsCfg)
	}

	return &reportStorage{
		client:    client,
		bucket:    cfg.Bucket,
		urlExpiry: 24 * time.Hour, // Download links live one day
		endpoint:  cfg.Endpoint,
	}, nil
}

// UploadReport stores a rendered report under the given key, overwriting any
// previous export of the same exam.
func (s *reportStorage) UploadReport(ctx context.Context, key string, svg []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(svg),
		ContentType: aws.String(reportContentType),
	})

	if err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}

	return nil
}

// GenerateDownloadURL generates a pre-signed URL for downloading a report
func (s *reportStorage) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	presignClient := s3.NewPresignClient(s.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = s.urlExpiry
	})

	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}

	return request.URL, nil
}

// DeleteReport deletes a stored report
func (s *reportStorage) DeleteReport(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}
