package service

import (
	"CommunityReportAPI/internal/constant"
	"CommunityReportAPI/internal/entity"
	"CommunityReportAPI/internal/helper"
	"CommunityReportAPI/internal/metrics"
	"CommunityReportAPI/internal/model"
	"CommunityReportAPI/internal/repository"
	"CommunityReportAPI/internal/websocket"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const msgReportNotFound = "Report not found"

type ReportService struct {
	repo      repository.ReportRepository
	validator *validator.Validate
	hub       *websocket.Hub
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewReportService(repo repository.ReportRepository, validator *validator.Validate, hub *websocket.Hub, m *metrics.Metrics) *ReportService {
	return &ReportService{
		repo:      repo,
		validator: validator,
		hub:       hub,
		metrics:   m,
		now:       currentTime,
	}
}

// Stores keep microseconds at best; truncating up front keeps what we return
// equal to what a later read gives back.
func currentTime() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *ReportService) CreateReport(ctx context.Context, req model.CreateReportRequest) (*model.CreateReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewValidationError(helper.ValidationDetails(err))
	}

	// Stored exactly as submitted; only an empty string counts as absent.
	var contact *string
	if req.Contact != nil && *req.Contact != "" {
		c := *req.Contact
		contact = &c
	}

	now := s.now()
	report := &entity.Report{
		Building:    req.Building,
		Location:    req.Location,
		ReportType:  req.ReportType,
		Description: req.Description,
		Contact:     contact,
		Photos:      append(entity.Photos(nil), req.Photos...),
		Status:      constant.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		slog.Error("Failed to create report", "error", err)
		return nil, mapRepositoryError(err)
	}

	slog.Info("Report created", "report_id", report.ID, "building", report.Building, "location", report.Location)
	s.metrics.RecordReportCreated()

	resp := &model.CreateReportResponse{
		Report:     model.ToReportResponse(report),
		ReportCode: helper.FormatReportCode(constant.ReportCodePrefix, report.CreatedAt, report.ID),
	}
	s.broadcast(websocket.EventReportCreated, report.ID, resp)

	return resp, nil
}

func (s *ReportService) GetReport(ctx context.Context, id int64) (*model.ReportDetailResponse, error) {
	if id <= 0 {
		return nil, helper.NewInvalidIDError()
	}

	report, err := s.repo.GetReportByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrReportNotFound) {
			slog.Error("Failed to get report", "error", err, "report_id", id)
		}
		return nil, mapRepositoryError(err)
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		slog.Error("Failed to list comments", "error", err, "report_id", id)
		return nil, mapRepositoryError(err)
	}

	return &model.ReportDetailResponse{
		Report:   model.ToReportResponse(report),
		Comments: model.ToCommentResponses(comments),
	}, nil
}

func (s *ReportService) ListReports(ctx context.Context) ([]model.ReportResponse, error) {
	reports, err := s.repo.ListReports(ctx)
	if err != nil {
		slog.Error("Failed to list reports", "error", err)
		return nil, mapRepositoryError(err)
	}
	return model.ToReportResponses(reports), nil
}

// UpdateReportStatus relabels a report. Any status may move to any other,
// including itself; updatedAt is refreshed every time.
func (s *ReportService) UpdateReportStatus(ctx context.Context, id int64, req model.UpdateReportStatusRequest) (*model.ReportResponse, error) {
	if id <= 0 {
		return nil, helper.NewInvalidIDError()
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewValidationError(helper.ValidationDetails(err))
	}

	update := repository.StatusUpdate{
		Status:          constant.ReportStatus(req.Status),
		ImprovementText: req.ImprovementText,
		UpdatedAt:       s.now(),
	}

	report, err := s.repo.UpdateReportStatus(ctx, id, update)
	if err != nil {
		if !errors.Is(err, repository.ErrReportNotFound) {
			slog.Error("Failed to update report status", "error", err, "report_id", id)
		}
		return nil, mapRepositoryError(err)
	}

	slog.Info("Report status updated", "report_id", report.ID, "status", report.Status)
	s.metrics.RecordStatusUpdate(string(report.Status))

	resp := model.ToReportResponse(report)
	s.broadcast(websocket.EventReportStatusUpdated, report.ID, resp)

	return &resp, nil
}

func (s *ReportService) AddComment(ctx context.Context, reportID int64, req model.CreateCommentRequest) (*model.CommentResponse, error) {
	if reportID <= 0 {
		return nil, helper.NewInvalidIDError()
	}

	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewValidationError(helper.ValidationDetails(err))
	}

	comment := &entity.Comment{
		ReportID:  reportID,
		Content:   req.Content,
		CreatedBy: strings.TrimSpace(req.CreatedBy),
		CreatedAt: s.now(),
	}

	if err := s.repo.AddComment(ctx, comment); err != nil {
		if !errors.Is(err, repository.ErrReportNotFound) {
			slog.Error("Failed to add comment", "error", err, "report_id", reportID)
		}
		return nil, mapRepositoryError(err)
	}

	s.metrics.RecordCommentCreated()

	resp := model.ToCommentResponse(comment)
	s.broadcast(websocket.EventCommentCreated, reportID, resp)

	return &resp, nil
}

func (s *ReportService) ListComments(ctx context.Context, reportID int64) ([]model.CommentResponse, error) {
	if reportID <= 0 {
		return nil, helper.NewInvalidIDError()
	}

	comments, err := s.repo.ListComments(ctx, reportID)
	if err != nil {
		slog.Error("Failed to list comments", "error", err, "report_id", reportID)
		return nil, mapRepositoryError(err)
	}
	return model.ToCommentResponses(comments), nil
}

func (s *ReportService) GetLocationStatus(ctx context.Context) (*model.LocationStatusListResponse, error) {
	statuses, err := s.repo.GetLocationStatus(ctx)
	if err != nil {
		slog.Error("Failed to aggregate location status", "error", err)
		return nil, mapRepositoryError(err)
	}
	return &model.LocationStatusListResponse{
		LocationStatus: model.ToLocationStatusResponses(statuses),
	}, nil
}

func (s *ReportService) Meta() model.MetaResponse {
	return model.MetaResponse{
		Statuses:            append([]constant.ReportStatus(nil), constant.ReportStatuses...),
		ReportTypes:         append([]string(nil), constant.ReportTypes...),
		Buildings:           append([]string(nil), constant.Buildings...),
		MaxPhotos:           constant.MaxPhotosPerReport,
		MaxUploadBytes:      constant.MaxUploadBytes,
		AllowedContentTypes: append([]string(nil), constant.AllowedContentTypes...),
	}
}

func (s *ReportService) Health(ctx context.Context) model.HealthResponse {
	resp := model.HealthResponse{
		Status:    "ok",
		Timestamp: helper.FormatTimestamp(s.now()),
		DB:        "ok",
	}
	if err := s.repo.Ping(ctx); err != nil {
		slog.Error("Database health check failed", "error", err)
		resp.DB = "unhealthy"
	}
	return resp
}

func (s *ReportService) broadcast(eventType websocket.EventType, reportID int64, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(websocket.Event{
		Type:    eventType,
		Payload: payload,
		Meta: &websocket.EventMeta{
			Timestamp: s.now().UnixMilli(),
			ReportID:  reportID,
		},
	})
}

func mapRepositoryError(err error) error {
	if errors.Is(err, repository.ErrReportNotFound) {
		return helper.NewNotFoundError(msgReportNotFound)
	}
	var appErr *helper.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return helper.NewPersistenceError(err)
}
