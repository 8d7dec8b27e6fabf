package repository

import (
	"CommunityReportAPI/internal/entity"
	"context"
	"sort"
	"sync"
)

// MemoryReportRepository is the development fallback used when no database is
// configured. The mutex covers both id counters and both collections.
type MemoryReportRepository struct {
	mu            sync.RWMutex
	reports       map[int64]*entity.Report
	comments      []entity.Comment
	nextReportID  int64
	nextCommentID int64
}

func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{
		reports:       make(map[int64]*entity.Report),
		nextReportID:  1,
		nextCommentID: 1,
	}
}

func (r *MemoryReportRepository) CreateReport(ctx context.Context, report *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.ID = r.nextReportID
	r.nextReportID++

	r.reports[report.ID] = cloneReport(report)
	return nil
}

func (r *MemoryReportRepository) GetReportByID(ctx context.Context, id int64) (*entity.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return cloneReport(report), nil
}

func (r *MemoryReportRepository) ListReports(ctx context.Context) ([]entity.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reports := make([]entity.Report, 0, len(r.reports))
	for _, report := range r.reports {
		reports = append(reports, *cloneReport(report))
	}

	sort.Slice(reports, func(i, j int) bool {
		if !reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].CreatedAt.After(reports[j].CreatedAt)
		}
		return reports[i].ID > reports[j].ID
	})
	return reports, nil
}

func (r *MemoryReportRepository) UpdateReportStatus(ctx context.Context, id int64, update StatusUpdate) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}

	report.Status = update.Status
	report.UpdatedAt = nextUpdatedAt(report.UpdatedAt, update.UpdatedAt)
	if update.ImprovementText != nil {
		text := *update.ImprovementText
		report.ImprovementText = &text
	}
	return cloneReport(report), nil
}

func (r *MemoryReportRepository) AddComment(ctx context.Context, comment *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[comment.ReportID]; !ok {
		return ErrReportNotFound
	}

	comment.ID = r.nextCommentID
	r.nextCommentID++
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *MemoryReportRepository) ListComments(ctx context.Context, reportID int64) ([]entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]entity.Comment, 0)
	for _, c := range r.comments {
		if c.ReportID == reportID {
			comments = append(comments, c)
		}
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (r *MemoryReportRepository) GetLocationStatus(ctx context.Context) ([]entity.LocationStatus, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type locationKey struct {
		building string
		location string
	}

	groups := make(map[locationKey]*entity.LocationStatus)
	for _, report := range r.reports {
		key := locationKey{building: report.Building, location: report.Location}
		status, ok := groups[key]
		if !ok {
			status = &entity.LocationStatus{Building: report.Building, Location: report.Location}
			groups[key] = status
		}
		status.ReportCount++
		if status.LatestReportDate == nil || report.CreatedAt.After(*status.LatestReportDate) {
			latest := report.CreatedAt
			status.LatestReportDate = &latest
		}
	}

	statuses := make([]entity.LocationStatus, 0, len(groups))
	for _, status := range groups {
		statuses = append(statuses, *status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].Building != statuses[j].Building {
			return statuses[i].Building < statuses[j].Building
		}
		return statuses[i].Location < statuses[j].Location
	})
	return statuses, nil
}

func (r *MemoryReportRepository) ListPhotoURLs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	urls := make([]string, 0)
	for _, report := range r.reports {
		urls = append(urls, report.Photos...)
	}
	return urls, nil
}

func (r *MemoryReportRepository) Ping(ctx context.Context) error {
	return nil
}

func cloneReport(report *entity.Report) *entity.Report {
	clone := *report
	clone.Photos = append(entity.Photos(nil), report.Photos...)
	clone.Comments = nil
	if report.Contact != nil {
		contact := *report.Contact
		clone.Contact = &contact
	}
	if report.ImprovementText != nil {
		text := *report.ImprovementText
		clone.ImprovementText = &text
	}
	return &clone
}
