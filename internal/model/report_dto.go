package model

import (
	"CommunityReportAPI/internal/constant"
	"CommunityReportAPI/internal/entity"
	"CommunityReportAPI/internal/helper"
)

type CreateReportRequest struct {
	Building    string   `json:"building" validate:"required,building_code"`
	Location    string   `json:"location" validate:"required,notblank"`
	ReportType  string   `json:"reportType" validate:"required,report_type"`
	Description string   `json:"description" validate:"required,min=1,max=500"`
	Contact     *string  `json:"contact" validate:"omitempty"`
	Photos      []string `json:"photos" validate:"required,min=1,max=4,dive,required,url"`
}

// UpdateReportStatusRequest distinguishes an absent improvementText (nil, keep
// the stored value) from an explicit empty string (clear it).
type UpdateReportStatusRequest struct {
	Status          string  `json:"status" validate:"required,report_status"`
	ImprovementText *string `json:"improvementText"`
}

type CreateCommentRequest struct {
	Content   string `json:"content" validate:"required,min=1,max=500"`
	CreatedBy string `json:"createdBy" validate:"required,notblank"`
}

type ReportResponse struct {
	ID              int64                 `json:"id"`
	Building        string                `json:"building"`
	Location        string                `json:"location"`
	ReportType      string                `json:"reportType"`
	Description     string                `json:"description"`
	Contact         *string               `json:"contact"`
	Photos          []string              `json:"photos"`
	Status          constant.ReportStatus `json:"status"`
	ImprovementText *string               `json:"improvementText"`
	CreatedAt       string                `json:"createdAt"`
	UpdatedAt       string                `json:"updatedAt"`
}

type CommentResponse struct {
	ID        int64  `json:"id"`
	ReportID  int64  `json:"reportId"`
	Content   string `json:"content"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
}

type CreateReportResponse struct {
	Report     ReportResponse `json:"report"`
	ReportCode string         `json:"reportCode"`
}

type ReportDetailResponse struct {
	Report   ReportResponse    `json:"report"`
	Comments []CommentResponse `json:"comments"`
}

type LocationStatusResponse struct {
	Building         string  `json:"building"`
	Location         string  `json:"location"`
	ReportCount      int64   `json:"reportCount"`
	LatestReportDate *string `json:"latestReportDate"`
}

type LocationStatusListResponse struct {
	LocationStatus []LocationStatusResponse `json:"locationStatus"`
}

type MetaResponse struct {
	Statuses            []constant.ReportStatus `json:"statuses"`
	ReportTypes         []string                `json:"reportTypes"`
	Buildings           []string                `json:"buildings"`
	MaxPhotos           int                     `json:"maxPhotos"`
	MaxUploadBytes      int64                   `json:"maxUploadBytes"`
	AllowedContentTypes []string                `json:"allowedContentTypes"`
}

func ToReportResponse(report *entity.Report) ReportResponse {
	photos := make([]string, len(report.Photos))
	copy(photos, report.Photos)

	return ReportResponse{
		ID:              report.ID,
		Building:        report.Building,
		Location:        report.Location,
		ReportType:      report.ReportType,
		Description:     report.Description,
		Contact:         report.Contact,
		Photos:          photos,
		Status:          report.Status,
		ImprovementText: report.ImprovementText,
		CreatedAt:       helper.FormatTimestamp(report.CreatedAt),
		UpdatedAt:       helper.FormatTimestamp(report.UpdatedAt),
	}
}

func ToReportResponses(reports []entity.Report) []ReportResponse {
	responses := make([]ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, ToReportResponse(&reports[i]))
	}
	return responses
}

func ToCommentResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		ReportID:  comment.ReportID,
		Content:   comment.Content,
		CreatedBy: comment.CreatedBy,
		CreatedAt: helper.FormatTimestamp(comment.CreatedAt),
	}
}

func ToCommentResponses(comments []entity.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, ToCommentResponse(&comments[i]))
	}
	return responses
}

func ToLocationStatusResponses(statuses []entity.LocationStatus) []LocationStatusResponse {
	responses := make([]LocationStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		resp := LocationStatusResponse{
			Building:    s.Building,
			Location:    s.Location,
			ReportCount: s.ReportCount,
		}
		if s.LatestReportDate != nil {
			latest := helper.FormatTimestamp(*s.LatestReportDate)
			resp.LatestReportDate = &latest
		}
		responses = append(responses, resp)
	}
	return responses
}
