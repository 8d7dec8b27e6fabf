package repository

import (
	"CommunityReportAPI/internal/constant"
	"CommunityReportAPI/internal/entity"
	"CommunityReportAPI/internal/helper"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReportNotFound = errors.New("report not found")

// ReportRepository persists reports and their comments. Store failures come
// back as persistence AppErrors with the cause attached; a missing report is
// ErrReportNotFound. Nothing is retried here.
type ReportRepository interface {
	CreateReport(ctx context.Context, report *entity.Report) error
	GetReportByID(ctx context.Context, id int64) (*entity.Report, error)
	ListReports(ctx context.Context) ([]entity.Report, error)
	UpdateReportStatus(ctx context.Context, id int64, update StatusUpdate) (*entity.Report, error)
	AddComment(ctx context.Context, comment *entity.Comment) error
	ListComments(ctx context.Context, reportID int64) ([]entity.Comment, error)
	GetLocationStatus(ctx context.Context) ([]entity.LocationStatus, error)
	ListPhotoURLs(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// StatusUpdate is applied as one unit. A nil ImprovementText leaves the stored
// value untouched; a pointer to "" clears it.
type StatusUpdate struct {
	Status          constant.ReportStatus
	ImprovementText *string
	UpdatedAt       time.Time
}

type GormReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{
		db: db,
	}
}

func (r *GormReportRepository) CreateReport(ctx context.Context, report *entity.Report) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error; err != nil {
		return helper.NewPersistenceError(fmt.Errorf("create report: %w", err))
	}
	return nil
}

func (r *GormReportRepository) GetReportByID(ctx context.Context, id int64) (*entity.Report, error) {
	var report entity.Report
	err := r.db.WithContext(ctx).First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, helper.NewPersistenceError(fmt.Errorf("get report %d: %w", id, err))
	}
	return &report, nil
}

func (r *GormReportRepository) ListReports(ctx context.Context) ([]entity.Report, error) {
	reports := make([]entity.Report, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, helper.NewPersistenceError(fmt.Errorf("list reports: %w", err))
	}
	return reports, nil
}

func (r *GormReportRepository) UpdateReportStatus(ctx context.Context, id int64, update StatusUpdate) (*entity.Report, error) {
	var report entity.Report

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := query.First(&report, id).Error; err != nil {
			return err
		}

		updatedAt := nextUpdatedAt(report.UpdatedAt, update.UpdatedAt)
		values := map[string]interface{}{
			"status":     string(update.Status),
			"updated_at": updatedAt,
		}
		if update.ImprovementText != nil {
			values["improvement_text"] = *update.ImprovementText
		}

		if err := tx.Model(&entity.Report{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return err
		}

		report.Status = update.Status
		report.UpdatedAt = updatedAt
		if update.ImprovementText != nil {
			text := *update.ImprovementText
			report.ImprovementText = &text
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, helper.NewPersistenceError(fmt.Errorf("update report %d status: %w", id, err))
	}

	return &report, nil
}

func (r *GormReportRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&entity.Report{}).Where("id = ?", comment.ReportID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrReportNotFound
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return ErrReportNotFound
		}
		return helper.NewPersistenceError(fmt.Errorf("add comment to report %d: %w", comment.ReportID, err))
	}
	return nil
}

func (r *GormReportRepository) ListComments(ctx context.Context, reportID int64) ([]entity.Comment, error) {
	comments := make([]entity.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, helper.NewPersistenceError(fmt.Errorf("list comments for report %d: %w", reportID, err))
	}
	return comments, nil
}

type locationStatusRow struct {
	Building         string
	Location         string
	ReportCount      int64
	LatestReportDate aggregateTime
}

func (r *GormReportRepository) GetLocationStatus(ctx context.Context) ([]entity.LocationStatus, error) {
	var rows []locationStatusRow
	err := r.db.WithContext(ctx).
		Model(&entity.Report{}).
		Select("building, location, COUNT(*) AS report_count, MAX(created_at) AS latest_report_date").
		Group("building, location").
		Order("building ASC, location ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, helper.NewPersistenceError(fmt.Errorf("aggregate location status: %w", err))
	}

	statuses := make([]entity.LocationStatus, 0, len(rows))
	for _, row := range rows {
		status := entity.LocationStatus{
			Building:    row.Building,
			Location:    row.Location,
			ReportCount: row.ReportCount,
		}
		if row.LatestReportDate.Valid {
			latest := row.LatestReportDate.Time
			status.LatestReportDate = &latest
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (r *GormReportRepository) ListPhotoURLs(ctx context.Context) ([]string, error) {
	var photoLists []entity.Photos
	if err := r.db.WithContext(ctx).Model(&entity.Report{}).Pluck("photos", &photoLists).Error; err != nil {
		return nil, helper.NewPersistenceError(fmt.Errorf("list photo urls: %w", err))
	}

	urls := make([]string, 0, len(photoLists))
	for _, photos := range photoLists {
		urls = append(urls, photos...)
	}
	return urls, nil
}

func (r *GormReportRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// nextUpdatedAt keeps updated_at strictly increasing even when two updates
// land within the store's timestamp resolution.
func nextUpdatedAt(previous, now time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Microsecond)
}
