package service

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/constant"
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/metrics"
	"CommunityReportAPI/internal/model"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// BlobStore is the slice of the storage gateway the upload flow needs.
type BlobStore interface {
	Store(ctx context.Context, body io.Reader, key string, contentType string) (string, error)
	PresignUpload(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error)
	PublicURL(key string) string
}

type UploadService struct {
	store         BlobStore
	validator     *validator.Validate
	metrics       *metrics.Metrics
	prefix        string
	presignExpiry time.Duration
	now           func() time.Time
}

func NewUploadService(store BlobStore, cfg *config.AppConfig, validator *validator.Validate, m *metrics.Metrics) *UploadService {
	prefix := cfg.S3UploadPrefix
	if prefix == "" {
		prefix = constant.DefaultUploadPrefix
	}
	expiry := cfg.S3PresignExpirySeconds
	if expiry <= 0 {
		expiry = constant.DefaultPresignSeconds
	}

	return &UploadService{
		store:         store,
		validator:     validator,
		metrics:       m,
		prefix:        prefix,
		presignExpiry: time.Duration(expiry) * time.Second,
		now:           currentTime,
	}
}

func (s *UploadService) UploadPhoto(ctx context.Context, req model.UploadPhotoRequest) (*model.UploadPhotoResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		s.metrics.RecordUpload(metrics.UploadResultRejected)
		return nil, helper.NewValidationError(helper.ValidationDetails(err))
	}

	if req.File.Size > constant.MaxUploadBytes {
		s.metrics.RecordUpload(metrics.UploadResultRejected)
		return nil, helper.NewValidationError([]string{
			fmt.Sprintf("%s must be at most %d MiB", constant.UploadFormField, constant.MaxUploadBytes>>20),
		})
	}

	file, err := req.File.Open()
	if err != nil {
		slog.Error("Failed to open uploaded file", "error", err)
		s.metrics.RecordUpload(metrics.UploadResultFailed)
		return nil, helper.NewUploadError(err)
	}
	defer file.Close()

	contentType, err := helper.DetectFileContentType(file)
	if err != nil {
		slog.Error("Failed to detect file content type", "error", err)
		s.metrics.RecordUpload(metrics.UploadResultFailed)
		return nil, helper.NewUploadError(err)
	}

	if !constant.IsAllowedContentType(contentType) {
		slog.Warn("Rejected upload content type", "content_type", contentType)
		s.metrics.RecordUpload(metrics.UploadResultRejected)
		return nil, helper.NewValidationError([]string{unsupportedTypeDetail(constant.UploadFormField, contentType)})
	}

	key := helper.GenerateUploadKey(s.prefix, req.File.Filename, contentType)

	url, err := s.store.Store(ctx, file, key, contentType)
	if err != nil {
		slog.Error("Failed to upload file to storage", "error", err, "key", key)
		s.metrics.RecordUpload(metrics.UploadResultFailed)
		return nil, helper.NewUploadError(err)
	}

	s.metrics.RecordUpload(metrics.UploadResultSuccess)
	return &model.UploadPhotoResponse{URL: url}, nil
}

// PresignUpload hands out a short-lived PUT URL so the browser can upload
// straight to the bucket. The returned publicUrl is what goes into photos.
func (s *UploadService) PresignUpload(ctx context.Context, req model.PresignUploadRequest) (*model.PresignUploadResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewValidationError(helper.ValidationDetails(err))
	}

	contentType := strings.ToLower(strings.TrimSpace(req.FileType))
	if !constant.IsAllowedContentType(contentType) {
		return nil, helper.NewValidationError([]string{unsupportedTypeDetail("fileType", contentType)})
	}

	key := helper.GenerateUploadKey(s.prefix, req.FileName, contentType)

	url, err := s.store.PresignUpload(ctx, key, contentType, s.presignExpiry)
	if err != nil {
		slog.Error("Failed to presign upload", "error", err, "key", key)
		return nil, helper.NewUploadError(err)
	}

	return &model.PresignUploadResponse{
		URL:       url,
		PublicURL: s.store.PublicURL(key),
		Key:       key,
		ExpiresAt: helper.FormatTimestamp(s.now().Add(s.presignExpiry)),
	}, nil
}

func unsupportedTypeDetail(field, contentType string) string {
	return fmt.Sprintf("%s %q is not allowed, expected one of %s", field, contentType, strings.Join(constant.AllowedContentTypes, ", "))
}
