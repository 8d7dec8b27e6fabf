package service

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/entity"
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/repository"
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

var fixedNow = time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)

func newTestReportService(repo repository.ReportRepository) *ReportService {
	s := NewReportService(repo, config.NewValidator(), nil, nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

type fakeBlobStore struct {
	mu       sync.Mutex
	objects  map[string][]byte
	types    map[string]string
	storeErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (f *fakeBlobStore) Store(ctx context.Context, body io.Reader, key string, contentType string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	f.types[key] = contentType
	return f.PublicURL(key), nil
}

func (f *fakeBlobStore) PresignUpload(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	return "https://bucket.example.com/" + key + "?X-Amz-Expires=" + expiry.String(), nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

// failingRepository simulates an unreachable store. Reads fail with the
// repository's persistence error, writes with a raw driver error.
type failingRepository struct {
	repository.ReportRepository
}

var errStoreDown = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

func (failingRepository) CreateReport(ctx context.Context, report *entity.Report) error {
	return errStoreDown
}

func (failingRepository) ListReports(ctx context.Context) ([]entity.Report, error) {
	return nil, helper.NewPersistenceError(errStoreDown)
}

func (failingRepository) GetLocationStatus(ctx context.Context) ([]entity.LocationStatus, error) {
	return nil, helper.NewPersistenceError(errStoreDown)
}

func (failingRepository) Ping(ctx context.Context) error {
	return errStoreDown
}
