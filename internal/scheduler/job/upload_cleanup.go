package job

import (
	"CommunityReportAPI/internal/adapter"
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/constant"
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

type PhotoLister interface {
	ListPhotoURLs(ctx context.Context) ([]string, error)
}

type ObjectStore interface {
	ListObjects(ctx context.Context, prefix string) ([]adapter.StoredObject, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// RunUploadCleanup deletes uploaded objects that are older than the retention
// window and not referenced by any report. Reports are never touched.
func RunUploadCleanup(ctx context.Context, reports PhotoLister, storage ObjectStore, cfg *config.AppConfig, now time.Time) (int, error) {
	retentionHours := cfg.UploadRetentionHours
	if retentionHours <= 0 {
		retentionHours = 24
	}
	cutoff := now.UTC().Add(-time.Duration(retentionHours) * time.Hour)

	prefix := strings.Trim(cfg.S3UploadPrefix, "/")
	if prefix == "" {
		prefix = constant.DefaultUploadPrefix
	}

	slog.Info("Running Upload Cleanup", "retentionHours", retentionHours, "cutoff", cutoff, "prefix", prefix)

	photoURLs, err := reports.ListPhotoURLs(ctx)
	if err != nil {
		slog.Error("Failed to list referenced photos", "error", err)
		return 0, err
	}

	referencedURLs := make(map[string]struct{}, len(photoURLs))
	referencedKeys := make(map[string]struct{}, len(photoURLs))
	for _, raw := range photoURLs {
		referencedURLs[raw] = struct{}{}
		if parsed, err := url.Parse(raw); err == nil {
			referencedKeys[strings.TrimPrefix(parsed.Path, "/")] = struct{}{}
		}
	}

	objects, err := storage.ListObjects(ctx, prefix+"/")
	if err != nil {
		slog.Error("Failed to list uploaded objects", "error", err)
		return 0, err
	}

	slog.Info("Found upload candidates", "count", len(objects))

	deleted := 0
	for _, obj := range objects {
		if !obj.LastModified.Before(cutoff) {
			continue
		}
		if _, ok := referencedKeys[obj.Key]; ok {
			continue
		}
		if _, ok := referencedURLs[storage.PublicURL(obj.Key)]; ok {
			continue
		}

		if err := storage.Delete(ctx, obj.Key); err != nil {
			slog.Error("Failed to delete orphan upload", "key", obj.Key, "error", err)
			continue
		}
		deleted++
		slog.Info("Deleted orphan upload", "key", obj.Key)
	}

	return deleted, nil
}
