package repository

import (
	"CommunityReportAPI/internal/adapter"

	"gorm.io/gorm"
)

type Repository struct {
	Report    ReportRepository
	RateLimit *RateLimitRepository
}

// NewRepository picks the gorm store when db is set and the in-memory
// fallback otherwise. RateLimit is nil without Redis.
func NewRepository(db *gorm.DB, redisAdapter *adapter.RedisAdapter) *Repository {
	repo := &Repository{}

	if db != nil {
		repo.Report = NewReportRepository(db)
	} else {
		repo.Report = NewMemoryReportRepository()
	}

	if redisAdapter != nil {
		repo.RateLimit = NewRateLimitRepository(redisAdapter)
	}

	return repo
}
