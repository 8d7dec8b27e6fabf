package adapter

import (
	"CommunityReportAPI/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrStorageNotConfigured = errors.New("s3 client is not initialized")

type StoredObject struct {
	Key          string
	LastModified time.Time
}

type StorageAdapter struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	region        string
	publicDomain  string
}

func NewStorageAdapter(cfg *config.AppConfig, s3Client *s3.Client) *StorageAdapter {
	var presignClient *s3.PresignClient
	if s3Client != nil {
		presignClient = s3.NewPresignClient(s3Client)
	}

	return &StorageAdapter{
		client:        s3Client,
		presignClient: presignClient,
		bucket:        cfg.S3Bucket,
		region:        cfg.S3Region,
		publicDomain:  strings.TrimRight(cfg.S3PublicDomain, "/"),
	}
}

// Store uploads body under key and returns the durable public URL.
func (s *StorageAdapter) Store(ctx context.Context, body io.Reader, key string, contentType string) (string, error) {
	if s.client == nil {
		return "", ErrStorageNotConfigured
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// PresignUpload returns a time-limited URL the client can PUT the object to.
func (s *StorageAdapter) PresignUpload(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error) {
	if s.presignClient == nil {
		return "", ErrStorageNotConfigured
	}

	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}

	return req.URL, nil
}

func (s *StorageAdapter) PublicURL(key string) string {
	key = path.Clean("/" + key)[1:]
	if s.publicDomain != "" {
		return fmt.Sprintf("%s/%s", s.publicDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *StorageAdapter) ListObjects(ctx context.Context, prefix string) ([]StoredObject, error) {
	if s.client == nil {
		return nil, ErrStorageNotConfigured
	}

	objects := make([]StoredObject, 0)
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects under %s: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, StoredObject{
				Key:          aws.ToString(obj.Key),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return objects, nil
}

func (s *StorageAdapter) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrStorageNotConfigured
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
